// Package errors provides standardized error handling for the Beacon API.
package errors

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeEmptyDescription   ErrorCode = "EMPTY_DESCRIPTION"
	ErrCodeNoCandidates       ErrorCode = "NO_CANDIDATES"
	ErrCodeNoScoredCandidates ErrorCode = "NO_SCORED_CANDIDATES"
	ErrCodeScorerFailed       ErrorCode = "SCORER_FAILED"
	ErrCodeItemNotFound       ErrorCode = "ITEM_NOT_FOUND"
	ErrCodeUploadRejected     ErrorCode = "UPLOAD_REJECTED"
	ErrCodePersistenceFailure ErrorCode = "PERSISTENCE_FAILURE"
	ErrCodeInvalidRequest     ErrorCode = "INVALID_REQUEST"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode `json:"code"`
	Message   string    `json:"message"`
	Details   string    `json:"details,omitempty"`
	Retryable bool      `json:"retryable"`
	Timestamp time.Time `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// CodeOf extracts the error code from err, or empty string when err is not
// a StandardError.
func CodeOf(err error) ErrorCode {
	var stdErr *StandardError
	if errors.As(err, &stdErr) {
		return stdErr.Code
	}
	return ""
}

// HTTPStatus maps an error to the status code the API boundary should emit.
func HTTPStatus(err error) int {
	switch CodeOf(err) {
	case ErrCodeEmptyDescription, ErrCodeUploadRejected, ErrCodeInvalidRequest:
		return http.StatusBadRequest
	case ErrCodeNoCandidates, ErrCodeItemNotFound:
		return http.StatusNotFound
	case ErrCodeNoScoredCandidates, ErrCodeScorerFailed, ErrCodePersistenceFailure:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// NewEmptyDescriptionError creates a non-retryable validation error for a
// match query without a description.
func NewEmptyDescriptionError() *StandardError {
	return &StandardError{
		Code:      ErrCodeEmptyDescription,
		Message:   "Description is required",
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewNoCandidatesError creates a non-retryable error for an empty asset pool.
func NewNoCandidatesError() *StandardError {
	return &StandardError{
		Code:      ErrCodeNoCandidates,
		Message:   "No images uploaded yet",
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewNoScoredCandidatesError creates a non-retryable error for the case where
// the scorer produced no usable scores.
func NewNoScoredCandidatesError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeNoScoredCandidates,
		Message:   "No images could be scored",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewScorerFailedError creates a retryable error for a scorer backend failure.
func NewScorerFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeScorerFailed,
		Message:   "Similarity scoring failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewItemNotFoundError creates a non-retryable error for an absent report id.
func NewItemNotFoundError(id int) *StandardError {
	return &StandardError{
		Code:      ErrCodeItemNotFound,
		Message:   "Item not found",
		Details:   fmt.Sprintf("id: %d", id),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewUploadRejectedError creates a non-retryable error for a bad upload.
func NewUploadRejectedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeUploadRejected,
		Message:   "Upload rejected",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewPersistenceFailureError creates a retryable error for a failed asset or
// record write.
func NewPersistenceFailureError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodePersistenceFailure,
		Message:   "Failed to persist data",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidRequestError creates a non-retryable error for a malformed or
// schema-violating request body.
func NewInvalidRequestError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidRequest,
		Message:   "Invalid request",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}
