// ==============================================================================
// FILE SERVING HANDLER - internal/handler/files.go
// ==============================================================================

package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"kyb/internal/blobstore"
	"kyb/pkg/errors"
	"kyb/pkg/logger"
)

// FileHandler serves stored logos and documents back to authenticated clients.
type FileHandler struct {
	store  *blobstore.LocalStore
	logger logger.Logger
}

// NewFileHandler creates a FileHandler.
func NewFileHandler(store *blobstore.LocalStore, log logger.Logger) *FileHandler {
	return &FileHandler{store: store, logger: log}
}

// Get streams one stored object. Route: GET /files/{bucket}/{path:.*}
func (h *FileHandler) Get(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	bucket := vars["bucket"]
	path := vars["path"]

	data, contentType, err := h.store.Get(r.Context(), bucket, path)
	if err != nil {
		if errors.Is(err, errors.ErrBucketNotFound) || errors.Is(err, errors.ErrDocumentNotFound) {
			http.NotFound(w, r)
			return
		}
		h.logger.Error("Failed to read stored file", map[string]interface{}{
			"bucket": bucket,
			"error":  err.Error(),
		})
		http.Error(w, "failed to read file", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("X-Content-Type-Options", "nosniff")
	_, _ = w.Write(data)
}
