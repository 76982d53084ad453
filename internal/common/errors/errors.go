// Package errors provides standardized error handling for the scoring service.
package errors

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"

	ErrCodeEmbeddingUnavailable ErrorCode = "EMBEDDING_UNAVAILABLE"
	ErrCodeEmbeddingTimeout     ErrorCode = "EMBEDDING_TIMEOUT"

	ErrCodeRubricLoadFailed       ErrorCode = "RUBRIC_LOAD_FAILED"
	ErrCodeRubricValidationFailed ErrorCode = "RUBRIC_VALIDATION_FAILED"

	ErrCodeInternalError ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// ==========================
// 2. HTTP Integration
// ==========================

// HTTPStatus maps an error code to the status code the transport layer returns.
func (e *StandardError) HTTPStatus() int {
	switch e.Code {
	case ErrCodeInvalidInput:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// ClientMessage returns the message safe to expose to callers. Internal errors
// get a generic message; the detail stays in server-side logs.
func (e *StandardError) ClientMessage() string {
	if e.Code == ErrCodeInvalidInput {
		return e.Message
	}
	return "Internal server error"
}

// AsStandardError unwraps err into a *StandardError, or wraps it as an
// internal error when it is anything else.
func AsStandardError(err error) *StandardError {
	var stdErr *StandardError
	if errors.As(err, &stdErr) {
		return stdErr
	}
	return NewInternalError(err)
}

// ==========================
// 3. Error Constructors
// ==========================

// NewInvalidInputError creates a non-retryable client input error.
func NewInvalidInputError(message string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidInput,
		Message:   message,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewTranscriptTooShortError reports a transcript below the minimum word count.
func NewTranscriptTooShortError(wordCount, minWords int) *StandardError {
	err := NewInvalidInputError(fmt.Sprintf("Transcript must contain at least %d words", minWords))
	err.Details = fmt.Sprintf("wordCount: %d", wordCount)
	return err
}

// NewTranscriptTooLongError reports a transcript above the maximum word count.
func NewTranscriptTooLongError(wordCount, maxWords int) *StandardError {
	err := NewInvalidInputError(fmt.Sprintf("Transcript exceeds maximum length of %d words", maxWords))
	err.Details = fmt.Sprintf("wordCount: %d", wordCount)
	return err
}

// NewEmbeddingUnavailableError creates a retryable embedding provider error.
func NewEmbeddingUnavailableError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeEmbeddingUnavailable,
		Message:   "Embedding provider request failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewEmbeddingTimeoutError creates a retryable embedding timeout error.
func NewEmbeddingTimeoutError() *StandardError {
	return &StandardError{
		Code:      ErrCodeEmbeddingTimeout,
		Message:   "Embedding provider request timed out",
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewRubricLoadFailedError creates a non-retryable rubric file error.
func NewRubricLoadFailedError(path string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeRubricLoadFailed,
		Message:   "Failed to load rubric file",
		Details:   fmt.Sprintf("path: %s, error: %s", path, err.Error()),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewRubricValidationFailedError creates a non-retryable rubric validation error.
func NewRubricValidationFailedError(criterionName, details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeRubricValidationFailed,
		Message:   "Rubric criterion failed validation",
		Details:   fmt.Sprintf("criterion: %s, %s", criterionName, details),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewInternalError wraps an unexpected failure during scoring.
func NewInternalError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeInternalError,
		Message:   "Unexpected error during scoring",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}
