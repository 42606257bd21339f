// ==============================================================================
// SYSTEM HTTP HANDLER - internal/handler/system.go
// ==============================================================================

package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"

	"kyb/pkg/cache"
	"kyb/pkg/logger"
)

// SystemHandler serves health and readiness probes.
type SystemHandler struct {
	db        *sqlx.DB
	cache     *cache.RedisCache
	logger    logger.Logger
	startTime time.Time
}

// NewSystemHandler creates a SystemHandler. The cache may be nil.
func NewSystemHandler(db *sqlx.DB, c *cache.RedisCache, log logger.Logger) *SystemHandler {
	return &SystemHandler{
		db:        db,
		cache:     c,
		logger:    log,
		startTime: time.Now(),
	}
}

// Health reports liveness plus dependency reachability.
func (h *SystemHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	status := http.StatusOK
	checks := map[string]string{}

	if err := h.db.PingContext(ctx); err != nil {
		checks["database"] = "unreachable"
		status = http.StatusServiceUnavailable
	} else {
		checks["database"] = "ok"
	}

	if h.cache != nil {
		if err := h.cache.Ping(ctx); err != nil {
			// Redis is a cache, not a dependency; degraded but alive.
			checks["redis"] = "unreachable"
		} else {
			checks["redis"] = "ok"
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"status":         http.StatusText(status),
		"uptime_seconds": int64(time.Since(h.startTime).Seconds()),
		"checks":         checks,
	})
}
