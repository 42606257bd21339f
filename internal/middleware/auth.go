// Package middleware hosts authentication, logging, and security middleware.
package middleware

import (
	"context"
	"net/http"
	"os"
	"strings"

	"github.com/google/uuid"

	"kyb/internal/auth"
)

// contextKey avoids collisions when storing values in request contexts.
type contextKey string

const (
	ctxClaimantIDKey contextKey = "claimant_id"
	ctxEmailKey      contextKey = "email"
)

// AuthMiddleware validates bearer session tokens and injects the claimant
// identity into the request context.
type AuthMiddleware struct {
	sessions *auth.Service
}

// NewAuthMiddleware constructs an AuthMiddleware around a token service.
func NewAuthMiddleware(sessions *auth.Service) *AuthMiddleware {
	return &AuthMiddleware{sessions: sessions}
}

// Authenticate enforces bearer auth and populates the claimant on the context.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if strings.TrimSpace(authHeader) == "" {
			jsonError(w, http.StatusUnauthorized, "Authorization header required")
			return
		}

		parts := strings.Fields(authHeader)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			jsonError(w, http.StatusUnauthorized, "Invalid authorization format")
			return
		}

		session, err := m.sessions.ParseSession(parts[1])
		if err != nil {
			jsonError(w, http.StatusUnauthorized, "Invalid token")
			return
		}

		ctx := WithClaimant(r.Context(), session.ClaimantID)
		if session.Email != "" {
			ctx = WithEmail(ctx, session.Email)
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// WithClaimant returns a context carrying the authenticated claimant's UUID.
func WithClaimant(ctx context.Context, claimantID uuid.UUID) context.Context {
	return context.WithValue(ctx, ctxClaimantIDKey, claimantID)
}

// WithEmail returns a context carrying the authenticated claimant's email.
func WithEmail(ctx context.Context, email string) context.Context {
	return context.WithValue(ctx, ctxEmailKey, email)
}

// ClaimantFromContext returns the authenticated claimant's UUID from context.
func ClaimantFromContext(ctx context.Context) (uuid.UUID, bool) {
	v := ctx.Value(ctxClaimantIDKey)
	id, ok := v.(uuid.UUID)
	return id, ok
}

// EmailFromContext returns the authenticated claimant's email from context.
func EmailFromContext(ctx context.Context) (string, bool) {
	v := ctx.Value(ctxEmailKey)
	s, ok := v.(string)
	return s, ok
}

// CORS applies origin allow-listing from CORS_ALLOWED_ORIGINS and handles
// preflight requests.
func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed := os.Getenv("CORS_ALLOWED_ORIGINS")
		origin := r.Header.Get("Origin")
		if strings.TrimSpace(allowed) != "" {
			// Restrict to configured origins
			origins := strings.Split(allowed, ",")
			ok := false
			for _, o := range origins {
				if strings.EqualFold(strings.TrimSpace(o), origin) {
					ok = true
					break
				}
			}
			if ok {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Vary", "Origin")
			}
		} else {
			// Development default: reflect origin if present, fallback to *
			if origin != "" {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Vary", "Origin")
			} else {
				w.Header().Set("Access-Control-Allow-Origin", "*")
			}
		}

		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-ID")
		w.Header().Set("Access-Control-Max-Age", "3600")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
