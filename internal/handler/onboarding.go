// ==============================================================================
// ONBOARDING HTTP HANDLER - internal/handler/onboarding.go
// ==============================================================================
// Exposes the KYB form schema and the multipart submission endpoint with
// validation, error handling, and logging.
// ==============================================================================

package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/google/uuid"

	"kyb/internal/dashboard"
	"kyb/internal/middleware"
	"kyb/internal/notification"
	"kyb/internal/onboarding"
	"kyb/pkg/domain"
	"kyb/pkg/logger"
	"kyb/pkg/validator"
)

// logoFormKey is the multipart field carrying the organization logo. Document
// files are keyed by their document type value.
const logoFormKey = "logo"

// OnboardingHandler handles the KYB intake endpoints.
type OnboardingHandler struct {
	service   *onboarding.Service
	dash      *dashboard.Service
	notifier  *notification.Service
	validator *validator.Validator
	logger    logger.Logger
	maxBytes  int64
}

// NewOnboardingHandler creates an OnboardingHandler. notifier may be nil when
// outbound email is not configured.
func NewOnboardingHandler(service *onboarding.Service, dash *dashboard.Service, notifier *notification.Service, val *validator.Validator, log logger.Logger, maxBytes int64) *OnboardingHandler {
	return &OnboardingHandler{
		service:   service,
		dash:      dash,
		notifier:  notifier,
		validator: val,
		logger:    log,
		maxBytes:  maxBytes,
	}
}

// respondJSON sends a JSON response with proper content type and status code.
func (h *OnboardingHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("Failed to encode JSON response", map[string]interface{}{
			"error":   err.Error(),
			"status":  status,
			"handler": "onboarding",
		})
		http.Error(w, `{"error":"response encoding failed"}`, http.StatusInternalServerError)
	}
}

// respondError sends a standardized error response.
func (h *OnboardingHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}

// GetSchema returns the seven-step form definition together with the option
// sets the form renders: legal structures, industry sectors, document types.
func (h *OnboardingHandler) GetSchema(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"steps":            onboarding.Steps(),
		"step_count":       onboarding.StepCount,
		"legal_structures": onboarding.LegalStructures(),
		"industry_sectors": onboarding.IndustrySectors(),
		"document_types":   onboarding.DocumentTypes(),
	})
}

// Submit accepts the completed KYB form as a multipart request: scalar profile
// fields as form values, beneficial owners as a JSON array under "ubos", the
// logo under "logo", and each document under its document type.
func (h *OnboardingHandler) Submit(w http.ResponseWriter, r *http.Request) {
	claimantID, ok := middleware.ClaimantFromContext(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)
	if err := r.ParseMultipartForm(h.maxBytes); err != nil {
		h.logger.Warn("Failed to parse multipart form", map[string]interface{}{
			"error":    err.Error(),
			"claimant": claimantID.String(),
		})
		h.respondError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	// Start from the persisted profile so stored values the client does not
	// re-post, like a previously uploaded logo URL, survive re-submission.
	draft, err := h.service.DraftFor(r.Context(), claimantID)
	if err != nil {
		h.logger.Error("Failed to load existing profile", map[string]interface{}{
			"error":    err.Error(),
			"claimant": claimantID.String(),
		})
		h.respondError(w, http.StatusInternalServerError, "Failed to load existing profile")
		return
	}

	for key, values := range r.MultipartForm.Value {
		if key == "ubos" || len(values) == 0 {
			continue
		}
		if err := draft.SetField(onboarding.Field(key), values[0]); err != nil {
			h.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	if raw := r.MultipartForm.Value["ubos"]; len(raw) > 0 {
		var forms []onboarding.UBOForm
		if err := json.Unmarshal([]byte(raw[0]), &forms); err != nil {
			h.respondError(w, http.StatusBadRequest, "Invalid beneficial owner payload")
			return
		}
		for i, f := range forms {
			if errs := h.validator.ValidateStructured(f); errs != nil {
				h.respondJSON(w, http.StatusBadRequest, map[string]interface{}{
					"error":  fmt.Sprintf("invalid beneficial owner at index %d", i),
					"fields": errs,
				})
				return
			}
			idx := draft.AddUBO()
			draft.UBOs[idx] = f
		}
	}

	for key, headers := range r.MultipartForm.File {
		if len(headers) == 0 {
			continue
		}
		// Multiple files under one key: the last attachment wins, matching
		// draft semantics.
		for _, fh := range headers {
			file, err := h.readUpload(fh)
			if err != nil {
				h.respondError(w, http.StatusBadRequest, err.Error())
				return
			}
			if key == logoFormKey {
				draft.AttachLogo(file)
				continue
			}
			if err := draft.AttachDocument(domain.DocumentType(key), file); err != nil {
				h.respondError(w, http.StatusBadRequest, err.Error())
				return
			}
		}
	}

	result, err := h.service.Submit(r.Context(), draft, claimantID)
	if err != nil {
		h.respondSubmitError(w, err, claimantID)
		return
	}

	h.dash.InvalidateStatus(r.Context(), claimantID)

	if h.notifier != nil {
		if email, ok := middleware.EmailFromContext(r.Context()); ok {
			h.notifier.SendSubmissionReceived(r.Context(), email, result)
		}
	}

	h.logger.Info("KYB submission accepted", map[string]interface{}{
		"claimant":         claimantID.String(),
		"organization_id":  result.OrganizationID.String(),
		"documents_stored": result.DocumentsStored,
		"partial_failures": len(result.PartialFailures),
	})
	h.respondJSON(w, http.StatusOK, result)
}

func (h *OnboardingHandler) respondSubmitError(w http.ResponseWriter, err error, claimantID uuid.UUID) {
	var subErr *onboarding.SubmissionError
	if errors.As(err, &subErr) {
		status := http.StatusInternalServerError
		switch subErr.Kind {
		case onboarding.KindValidation:
			status = http.StatusBadRequest
		case onboarding.KindUpload:
			status = http.StatusBadGateway
		}
		h.logger.Warn("KYB submission failed", map[string]interface{}{
			"claimant": claimantID.String(),
			"kind":     string(subErr.Kind),
			"stage":    subErr.Stage,
			"error":    subErr.Error(),
		})
		h.respondJSON(w, status, map[string]string{
			"error": subErr.Message,
			"kind":  string(subErr.Kind),
			"stage": subErr.Stage,
		})
		return
	}

	h.logger.Error("KYB submission failed", map[string]interface{}{
		"claimant": claimantID.String(),
		"error":    err.Error(),
	})
	h.respondError(w, http.StatusInternalServerError, "Submission failed")
}

func (h *OnboardingHandler) readUpload(fh *multipart.FileHeader) (*onboarding.FileHandle, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, h.maxBytes+1))
	if err != nil {
		return nil, err
	}

	return &onboarding.FileHandle{
		Name:     fh.Filename,
		Size:     int64(len(data)),
		MimeType: fh.Header.Get("Content-Type"),
		Data:     data,
	}, nil
}
