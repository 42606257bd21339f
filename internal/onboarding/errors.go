// ==============================================================================
// ONBOARDING ERRORS - internal/onboarding/errors.go
// ==============================================================================
package onboarding

import (
	"fmt"

	"kyb/pkg/domain"
)

// ErrorKind classifies onboarding failures for callers.
type ErrorKind string

const (
	// KindValidation covers missing required fields; recoverable, no side effects.
	KindValidation ErrorKind = "validation"
	// KindUpload covers blob store rejections and timeouts.
	KindUpload ErrorKind = "upload"
	// KindPersistence covers relational store failures, constraint violations included.
	KindPersistence ErrorKind = "persistence"
	// KindIndexOutOfRange covers UBO list access with an invalid index.
	KindIndexOutOfRange ErrorKind = "index_out_of_range"
	// KindSubmissionAborted means a gating step failed and later steps never ran.
	KindSubmissionAborted ErrorKind = "submission_aborted"
)

// SubmissionError is the structured terminal outcome of a failed submission.
type SubmissionError struct {
	Kind    ErrorKind
	Stage   string
	Message string
	Err     error
}

func (e *SubmissionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s (%s): %s: %v", e.Message, e.Kind, e.Stage, e.Err)
	}
	return fmt.Sprintf("%s (%s): %s", e.Message, e.Kind, e.Stage)
}

func (e *SubmissionError) Unwrap() error { return e.Err }

// StepFailure records a non-gating failure that did not stop the submission.
type StepFailure struct {
	Stage        string              `json:"stage"`
	DocumentType domain.DocumentType `json:"document_type,omitempty"`
	Kind         ErrorKind           `json:"kind"`
	Err          error               `json:"-"`
	Message      string              `json:"message"`
}

func (f StepFailure) Error() string {
	if f.DocumentType != "" {
		return fmt.Sprintf("%s [%s]: %s", f.Stage, f.DocumentType, f.Message)
	}
	return fmt.Sprintf("%s: %s", f.Stage, f.Message)
}

// FieldViolation is a field-level validation result.
type FieldViolation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}
