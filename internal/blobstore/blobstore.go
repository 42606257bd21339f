// ==============================================================================
// BLOB STORE - internal/blobstore/blobstore.go
// ==============================================================================
// Bucketed object storage for organization logos and KYB documents, with a
// local filesystem provider.
// ==============================================================================

package blobstore

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	kyberrors "kyb/pkg/errors"
	"kyb/pkg/logger"
)

// Store is the object storage contract: write a blob under bucket/path and
// resolve its public reference.
type Store interface {
	Upload(ctx context.Context, bucket, path string, data []byte, contentType string) error
	PublicURL(bucket, path string) string
}

// Config controls the local provider.
type Config struct {
	BasePath          string
	PublicBaseURL     string
	Buckets           []string
	MaxUploadBytes    int64
	AllowedExtensions []string
	FilePermissions   os.FileMode
	DirPermissions    os.FileMode
}

// LocalStore implements Store on the local filesystem. Each bucket is a
// directory under BasePath; public URLs are PublicBaseURL/bucket/path.
type LocalStore struct {
	config  Config
	buckets map[string]bool
	logger  logger.Logger
}

// NewLocalStore creates a local blob store and ensures bucket directories
// exist.
func NewLocalStore(config Config, log logger.Logger) (*LocalStore, error) {
	if config.FilePermissions == 0 {
		config.FilePermissions = 0644
	}
	if config.DirPermissions == 0 {
		config.DirPermissions = 0755
	}
	if config.MaxUploadBytes == 0 {
		config.MaxUploadBytes = 10 * 1024 * 1024
	}

	buckets := make(map[string]bool, len(config.Buckets))
	for _, b := range config.Buckets {
		buckets[b] = true
		if err := os.MkdirAll(filepath.Join(config.BasePath, b), config.DirPermissions); err != nil {
			return nil, fmt.Errorf("failed to create bucket directory %q: %w", b, err)
		}
	}

	return &LocalStore{config: config, buckets: buckets, logger: log}, nil
}

// Upload writes data under bucket/path after size, extension, and path
// checks.
func (s *LocalStore) Upload(ctx context.Context, bucket, path string, data []byte, contentType string) error {
	startTime := time.Now()

	if !s.buckets[bucket] {
		return kyberrors.ErrBucketNotFound
	}
	if int64(len(data)) > s.config.MaxUploadBytes {
		return fmt.Errorf("%w: %d bytes exceeds limit of %d",
			kyberrors.ErrFileTooLarge, len(data), s.config.MaxUploadBytes)
	}

	ext := strings.ToLower(filepath.Ext(path))
	if len(s.config.AllowedExtensions) > 0 && ext != "" {
		allowed := false
		for _, allowedExt := range s.config.AllowedExtensions {
			if strings.EqualFold(ext, allowedExt) {
				allowed = true
				break
			}
		}
		if !allowed {
			return fmt.Errorf("%w: %s", kyberrors.ErrFileTypeNotAllowed, ext)
		}
	}

	fullPath, err := s.resolve(bucket, path)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(fullPath), s.config.DirPermissions); err != nil {
		return kyberrors.Wrap(err, "failed to create storage directory")
	}
	if err := os.WriteFile(fullPath, data, s.config.FilePermissions); err != nil {
		return kyberrors.Wrap(err, "failed to write blob")
	}

	s.logger.Info("Blob stored", map[string]interface{}{
		"event":        "blob_stored",
		"bucket":       bucket,
		"path":         path,
		"size":         len(data),
		"content_type": contentType,
		"duration_ms":  time.Since(startTime).Milliseconds(),
	})

	return nil
}

// PublicURL resolves the public reference of a stored blob. Path segments
// are escaped; no existence check is made.
func (s *LocalStore) PublicURL(bucket, path string) string {
	segments := strings.Split(path, "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}
	return strings.TrimRight(s.config.PublicBaseURL, "/") + "/" +
		url.PathEscape(bucket) + "/" + strings.Join(segments, "/")
}

// Get reads a stored blob back; used by the storage serving endpoint.
func (s *LocalStore) Get(ctx context.Context, bucket, path string) ([]byte, string, error) {
	if !s.buckets[bucket] {
		return nil, "", kyberrors.ErrBucketNotFound
	}

	fullPath, err := s.resolve(bucket, path)
	if err != nil {
		return nil, "", err
	}

	data, err := os.ReadFile(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, "", kyberrors.ErrDocumentNotFound
		}
		return nil, "", kyberrors.Wrap(err, "failed to read blob")
	}

	contentType := "application/octet-stream"
	if len(data) > 0 {
		n := len(data)
		if n > 512 {
			n = 512
		}
		contentType = http.DetectContentType(data[:n])
	}
	return data, contentType, nil
}

// resolve joins bucket and path under BasePath and rejects traversal outside
// the bucket directory.
func (s *LocalStore) resolve(bucket, path string) (string, error) {
	bucketRoot := filepath.Join(s.config.BasePath, bucket)
	fullPath := filepath.Join(bucketRoot, filepath.FromSlash(path))
	if !strings.HasPrefix(fullPath, bucketRoot+string(filepath.Separator)) {
		return "", fmt.Errorf("access denied: path outside bucket directory")
	}
	return fullPath, nil
}
