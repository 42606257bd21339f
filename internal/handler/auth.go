// ==============================================================================
// AUTH HTTP HANDLER - internal/handler/auth.go
// ==============================================================================
// Handles the emailed confirmation link: verifies the one-time token and
// redirects the claimant into the dashboard, never echoing the token back.
// ==============================================================================

package handler

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"kyb/internal/auth"
	"kyb/internal/middleware"
	"kyb/internal/notification"
	"kyb/pkg/logger"
)

// AuthHandler handles confirmation-link redirects and re-sends.
type AuthHandler struct {
	sessions     *auth.Service
	notifier     *notification.Service
	dashboardURL string
	loginURL     string
	logger       logger.Logger
}

// NewAuthHandler creates an AuthHandler. dashboardURL and loginURL are the
// frontend targets for successful and failed confirmations; notifier may be
// nil when outbound email is not configured.
func NewAuthHandler(sessions *auth.Service, notifier *notification.Service, dashboardURL, loginURL string, log logger.Logger) *AuthHandler {
	return &AuthHandler{
		sessions:     sessions,
		notifier:     notifier,
		dashboardURL: strings.TrimRight(dashboardURL, "/"),
		loginURL:     strings.TrimRight(loginURL, "/"),
		logger:       log,
	}
}

// Confirm verifies a one-time token from the emailed link. On success the
// claimant lands on the dashboard with a fresh session cookie; on any failure
// they land on the login page with a generic error code.
func (h *AuthHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	tokenHash := r.URL.Query().Get("token_hash")
	tokenType := r.URL.Query().Get("type")

	if tokenHash == "" || tokenType == "" {
		h.redirectLogin(w, r, "missing_token")
		return
	}

	session, err := h.sessions.VerifyConfirmToken(tokenHash, tokenType)
	if err != nil {
		// The token value never appears in logs or the redirect target.
		h.logger.Warn("Confirmation token rejected", map[string]interface{}{
			"type": tokenType,
		})
		h.redirectLogin(w, r, "invalid_token")
		return
	}

	sessionToken, err := h.sessions.IssueSession(session.ClaimantID, session.Email)
	if err != nil {
		h.logger.Error("Failed to issue session after confirmation", map[string]interface{}{
			"claimant": session.ClaimantID.String(),
			"error":    err.Error(),
		})
		h.redirectLogin(w, r, "session_failed")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "kyb_session",
		Value:    sessionToken,
		Path:     "/",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})

	h.logger.Info("Claimant confirmed", map[string]interface{}{
		"claimant": session.ClaimantID.String(),
		"type":     tokenType,
	})
	http.Redirect(w, r, h.dashboardURL, http.StatusSeeOther)
}

func (h *AuthHandler) redirectLogin(w http.ResponseWriter, r *http.Request, code string) {
	http.Redirect(w, r, h.loginURL+"?error="+url.QueryEscape(code), http.StatusSeeOther)
}

// ResendConfirmation issues a fresh one-time token for the authenticated
// claimant and emails the confirmation link.
func (h *AuthHandler) ResendConfirmation(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	claimantID, ok := middleware.ClaimantFromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "Authentication required"})
		return
	}
	email, ok := middleware.EmailFromContext(r.Context())
	if !ok || email == "" {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "No email on session"})
		return
	}
	if h.notifier == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "Email delivery not configured"})
		return
	}

	token, err := h.sessions.IssueConfirmToken(claimantID, email, auth.TokenTypeConfirm)
	if err != nil {
		h.logger.Error("Failed to issue confirmation token", map[string]interface{}{
			"claimant": claimantID.String(),
			"error":    err.Error(),
		})
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "Failed to issue token"})
		return
	}

	h.notifier.SendConfirmationLink(r.Context(), email, token, auth.TokenTypeConfirm)

	w.WriteHeader(http.StatusAccepted)
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "confirmation email queued"})
}
