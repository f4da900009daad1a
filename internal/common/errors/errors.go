// internal/common/errors/errors.go

// Package errors provides the coded error taxonomy shared by the
// recommendation engine and its collaborator adapters.
package errors

import (
	"errors"
	"fmt"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	// Validation errors: surfaced to the caller immediately, never retried.
	ErrCodeLimitOutOfRange    ErrorCode = "LIMIT_OUT_OF_RANGE"
	ErrCodeUnknownContentType ErrorCode = "UNKNOWN_CONTENT_TYPE"
	ErrCodeMalformedID        ErrorCode = "MALFORMED_ID"

	// Not-found conditions. A missing profile is an expected case and is
	// handled internally by the cold-start path; a missing content item
	// surfaces from Explain.
	ErrCodeProfileNotFound ErrorCode = "PROFILE_NOT_FOUND"
	ErrCodeContentNotFound ErrorCode = "CONTENT_NOT_FOUND"

	// Data-quality conditions are logged, defaulted and never raised.
	ErrCodeDataQuality ErrorCode = "DATA_QUALITY"

	// Collaborator failures are propagated; retry policy belongs to the
	// collaborator's client, not to the engine.
	ErrCodeCollaboratorUnavailable ErrorCode = "COLLABORATOR_UNAVAILABLE"
)

// StandardError is a structured application error.
type StandardError struct {
	Code      ErrorCode `json:"code"`
	Message   string    `json:"message"`
	Details   string    `json:"details,omitempty"`
	Retryable bool      `json:"retryable"`
	Timestamp time.Time `json:"timestamp"`
	cause     error
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

func (e *StandardError) Unwrap() error { return e.cause }

// NewLimitOutOfRangeError reports a caller-supplied limit outside the
// allowed range. Limits are never silently clamped.
func NewLimitOutOfRangeError(limit, min, max int) *StandardError {
	return &StandardError{
		Code:      ErrCodeLimitOutOfRange,
		Message:   "requested limit is out of range",
		Details:   fmt.Sprintf("limit: %d, allowed: [%d, %d]", limit, min, max),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewUnknownContentTypeError reports an unrecognized content type.
func NewUnknownContentTypeError(contentType string) *StandardError {
	return &StandardError{
		Code:      ErrCodeUnknownContentType,
		Message:   "unknown content type",
		Details:   fmt.Sprintf("contentType: %q, expected job, post or startup", contentType),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewMalformedIDError reports a missing or malformed required identifier.
func NewMalformedIDError(field, value string) *StandardError {
	return &StandardError{
		Code:      ErrCodeMalformedID,
		Message:   "required identifier is missing or malformed",
		Details:   fmt.Sprintf("%s: %q", field, value),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewProfileNotFoundError signals an absent candidate profile. Rank
// treats this as routing information, not a failure.
func NewProfileNotFoundError(profileID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeProfileNotFound,
		Message:   "candidate profile not found",
		Details:   fmt.Sprintf("profileId: %s", profileID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewContentNotFoundError signals an absent content item.
func NewContentNotFoundError(contentType, contentID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeContentNotFound,
		Message:   "content item not found",
		Details:   fmt.Sprintf("contentType: %s, contentId: %s", contentType, contentID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewDataQualityError describes a content record with missing or invalid
// optional fields. Callers log it and continue with defaults.
func NewDataQualityError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeDataQuality,
		Message:   "content record has data-quality issues",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewCollaboratorUnavailableError wraps a persistence-layer failure.
func NewCollaboratorUnavailableError(collaborator string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeCollaboratorUnavailable,
		Message:   fmt.Sprintf("collaborator %q failed to respond", collaborator),
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// AsStandard reports whether err wraps a StandardError, assigning it to
// target on success.
func AsStandard(err error, target **StandardError) bool {
	return errors.As(err, target)
}

// code extracts the ErrorCode from err if it wraps a StandardError.
func code(err error) (ErrorCode, bool) {
	var se *StandardError
	if errors.As(err, &se) {
		return se.Code, true
	}
	return "", false
}

// IsValidation reports whether err is a caller-input validation error.
func IsValidation(err error) bool {
	c, ok := code(err)
	return ok && (c == ErrCodeLimitOutOfRange || c == ErrCodeUnknownContentType || c == ErrCodeMalformedID)
}

// IsNotFound reports whether err is a profile or content absence.
func IsNotFound(err error) bool {
	c, ok := code(err)
	return ok && (c == ErrCodeProfileNotFound || c == ErrCodeContentNotFound)
}

// IsUnavailable reports whether err is a collaborator failure.
func IsUnavailable(err error) bool {
	c, ok := code(err)
	return ok && c == ErrCodeCollaboratorUnavailable
}
