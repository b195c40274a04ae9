// Package errors provides standardized error handling for the translation pipeline.
package errors

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	// Validation stage. Never reaches the backend.
	ErrCodeMissingField        ErrorCode = "MISSING_FIELD"
	ErrCodeTypeMismatch        ErrorCode = "TYPE_MISMATCH"
	ErrCodeAmbiguousIdentifier ErrorCode = "AMBIGUOUS_IDENTIFIER"

	// Configuration stage. Fatal, indicates a schema/template mismatch
	// the operator has to fix.
	ErrCodeTemplateNotFound   ErrorCode = "TEMPLATE_NOT_FOUND"
	ErrCodeTemplateIncomplete ErrorCode = "TEMPLATE_INCOMPLETE"

	// Dispatch stage.
	ErrCodeTransport         ErrorCode = "TRANSPORT_ERROR"
	ErrCodeBackendRejected   ErrorCode = "BACKEND_ERROR"
	ErrCodeMalformedResponse ErrorCode = "MALFORMED_RESPONSE"

	// Response stage. The backend's contract drifted from the declared variants.
	ErrCodeUnrecognizedShape ErrorCode = "UNRECOGNIZED_RESPONSE_SHAPE"
)

// PipelineError represents a structured pipeline failure. Every failure kind
// surfaced to a caller is one of these, distinguishable by Code.
type PipelineError struct {
	Code      ErrorCode `json:"code"`
	Message   string    `json:"message"`
	Field     string    `json:"field,omitempty"`
	Operation string    `json:"operation,omitempty"`
	Status    int       `json:"status,omitempty"`
	Body      string    `json:"body,omitempty"`
	Details   string    `json:"details,omitempty"`
	Retryable bool      `json:"retryable"`
	Timestamp time.Time `json:"timestamp"`
}

func (e *PipelineError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("PipelineError[%s]: %s (field: %s)", e.Code, e.Message, e.Field)
	}
	return fmt.Sprintf("PipelineError[%s]: %s", e.Code, e.Message)
}

// ValidationErrors aggregates every violated rule from one validation pass.
// The validator reports all failures, not just the first.
type ValidationErrors []*PipelineError

func (v ValidationErrors) Error() string {
	msgs := make([]string, len(v))
	for i, e := range v {
		msgs[i] = e.Error()
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(msgs, "; "))
}

// Fields returns the offending field names, in report order.
func (v ValidationErrors) Fields() []string {
	fields := make([]string, 0, len(v))
	for _, e := range v {
		if e.Field != "" {
			fields = append(fields, e.Field)
		}
	}
	return fields
}

// HasCode reports whether any aggregated error carries the given code.
func (v ValidationErrors) HasCode(code ErrorCode) bool {
	for _, e := range v {
		if e.Code == code {
			return true
		}
	}
	return false
}

// ==========================
// 2. Error Constructors
// ==========================

// NewMissingFieldError creates a non-retryable validation error for a
// required field absent from the raw input.
func NewMissingFieldError(field string) *PipelineError {
	return &PipelineError{
		Code:      ErrCodeMissingField,
		Message:   "required field missing",
		Field:     field,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewTypeMismatchError creates a non-retryable validation error for a value
// that does not match its declared kind. No silent coercion is attempted.
func NewTypeMismatchError(field, expected string, got interface{}) *PipelineError {
	return &PipelineError{
		Code:      ErrCodeTypeMismatch,
		Message:   fmt.Sprintf("expected %s, got %T", expected, got),
		Field:     field,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewAmbiguousIdentifierError creates a non-retryable validation error for a
// mutually exclusive identifier set with zero or more than one member present.
func NewAmbiguousIdentifierError(set []string, present int) *PipelineError {
	return &PipelineError{
		Code:      ErrCodeAmbiguousIdentifier,
		Message:   fmt.Sprintf("exactly one of {%s} must be set, got %d", strings.Join(set, ", "), present),
		Field:     strings.Join(set, ","),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewTemplateNotFoundError creates a non-retryable configuration error.
func NewTemplateNotFoundError(operation string) *PipelineError {
	return &PipelineError{
		Code:      ErrCodeTemplateNotFound,
		Message:   "no request template registered for operation",
		Operation: operation,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewTemplateIncompleteError creates a non-retryable configuration error for
// placeholder slots left unfilled after a merge.
func NewTemplateIncompleteError(operation string, placeholders []string) *PipelineError {
	return &PipelineError{
		Code:      ErrCodeTemplateIncomplete,
		Message:   "template placeholders left unfilled after merge",
		Operation: operation,
		Details:   strings.Join(placeholders, ", "),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewTransportError creates a retryable dispatch error: connection refused,
// DNS failure or timeout. The retry itself belongs to the caller.
func NewTransportError(operation string, err error) *PipelineError {
	return &PipelineError{
		Code:      ErrCodeTransport,
		Message:   "backend unreachable",
		Operation: operation,
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewBackendError creates a non-retryable dispatch error carrying the
// backend's own status and body verbatim for diagnostics.
func NewBackendError(operation string, status int, body string) *PipelineError {
	return &PipelineError{
		Code:      ErrCodeBackendRejected,
		Message:   fmt.Sprintf("backend rejected request with status %d", status),
		Operation: operation,
		Status:    status,
		Body:      body,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewMalformedResponseError creates a non-retryable dispatch error for a
// response body that is not valid JSON.
func NewMalformedResponseError(operation string, err error) *PipelineError {
	return &PipelineError{
		Code:      ErrCodeMalformedResponse,
		Message:   "backend response is not valid JSON",
		Operation: operation,
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewUnrecognizedResponseShapeError creates a non-retryable response error:
// no declared variant matched the backend reply.
func NewUnrecognizedResponseShapeError(operation string, variants []string) *PipelineError {
	return &PipelineError{
		Code:      ErrCodeUnrecognizedShape,
		Message:   "response matched no declared variant",
		Operation: operation,
		Details:   fmt.Sprintf("tried variants: %s", strings.Join(variants, ", ")),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 3. Utility Functions
// ==========================

// CodeOf extracts the ErrorCode from err, or "" when err is not a pipeline
// error. For ValidationErrors the first aggregated code is returned.
func CodeOf(err error) ErrorCode {
	var pe *PipelineError
	if errors.As(err, &pe) {
		return pe.Code
	}
	var ve ValidationErrors
	if errors.As(err, &ve) && len(ve) > 0 {
		return ve[0].Code
	}
	return ""
}

// IsRetryable reports whether the caller may retry the call with its own
// backoff policy. Only transport failures qualify.
func IsRetryable(err error) bool {
	var pe *PipelineError
	if errors.As(err, &pe) {
		return pe.Retryable
	}
	return false
}

// GetErrorStage returns the pipeline stage an error code belongs to.
func GetErrorStage(code ErrorCode) string {
	switch code {
	case ErrCodeMissingField, ErrCodeTypeMismatch, ErrCodeAmbiguousIdentifier:
		return "validation"
	case ErrCodeTemplateNotFound, ErrCodeTemplateIncomplete:
		return "configuration"
	case ErrCodeTransport, ErrCodeBackendRejected, ErrCodeMalformedResponse:
		return "dispatch"
	case ErrCodeUnrecognizedShape:
		return "response"
	default:
		return "unknown"
	}
}
