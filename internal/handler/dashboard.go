// ==============================================================================
// DASHBOARD HTTP HANDLER - internal/handler/dashboard.go
// ==============================================================================

package handler

import (
	"encoding/json"
	"net/http"

	"kyb/internal/dashboard"
	"kyb/internal/middleware"
	"kyb/pkg/logger"
)

// DashboardHandler serves the claimant's verification overview and status.
type DashboardHandler struct {
	service *dashboard.Service
	logger  logger.Logger
}

// NewDashboardHandler creates a DashboardHandler.
func NewDashboardHandler(service *dashboard.Service, log logger.Logger) *DashboardHandler {
	return &DashboardHandler{service: service, logger: log}
}

func (h *DashboardHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("Failed to encode JSON response", map[string]interface{}{
			"error":   err.Error(),
			"status":  status,
			"handler": "dashboard",
		})
		http.Error(w, `{"error":"response encoding failed"}`, http.StatusInternalServerError)
	}
}

func (h *DashboardHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}

// GetProfile returns the full dashboard overview: the organization profile
// for form pre-fill, status badges, beneficial owners, documents, and the
// fund vaults open for contribution. A claimant with no profile yet gets a
// 200 with a nil organization.
func (h *DashboardHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	claimantID, ok := middleware.ClaimantFromContext(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	overview, err := h.service.Overview(r.Context(), claimantID)
	if err != nil {
		h.logger.Error("Failed to load dashboard overview", map[string]interface{}{
			"claimant": claimantID.String(),
			"error":    err.Error(),
		})
		h.respondError(w, http.StatusInternalServerError, "Failed to load profile")
		return
	}

	h.respondJSON(w, http.StatusOK, overview)
}

// GetStatus returns only the status projection, cache-backed for frequent
// dashboard polling.
func (h *DashboardHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	claimantID, ok := middleware.ClaimantFromContext(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	projection, err := h.service.Status(r.Context(), claimantID)
	if err != nil {
		h.logger.Error("Failed to load KYB status", map[string]interface{}{
			"claimant": claimantID.String(),
			"error":    err.Error(),
		})
		h.respondError(w, http.StatusInternalServerError, "Failed to load status")
		return
	}

	h.respondJSON(w, http.StatusOK, projection)
}
