// Package errors provides common, reusable error values and helpers.
package errors

import (
	"errors"
	"fmt"
)

// Common errors
var (
	// Organization errors
	ErrOrganizationNotFound = errors.New("organization not found")
	ErrClaimantMismatch     = errors.New("organization belongs to a different claimant")

	// UBO errors
	ErrUBOIndexOutOfRange = errors.New("ubo index out of range")

	// Document errors
	ErrDocumentNotFound      = errors.New("kyb document not found")
	ErrInvalidDocumentType   = errors.New("invalid document type")
	ErrInvalidDocumentFormat = errors.New("invalid document format")
	ErrDocumentSizeExceeded  = errors.New("document size exceeded")

	// Upload / blob store errors
	ErrUploadFailed       = errors.New("file upload failed")
	ErrFileTooLarge       = errors.New("file too large")
	ErrFileTypeNotAllowed = errors.New("file type not allowed")
	ErrBucketNotFound     = errors.New("storage bucket not found")

	// Session errors
	ErrInvalidToken     = errors.New("invalid or expired token")
	ErrSessionNotFound  = errors.New("no active session")
	ErrClaimantRequired = errors.New("authenticated claimant required")

	// Fund vault errors
	ErrFundVaultNotFound = errors.New("fund vault not found")
)

// New returns an error with the supplied message.
func New(message string) error {
	return errors.New(message)
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}
