package utils

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind classifies application errors so callers can branch on failure
// class without string matching.
type ErrorKind string

const (
	KindInvalidInput      ErrorKind = "invalid_input"
	KindExtraction        ErrorKind = "extraction_failed"
	KindUpstream          ErrorKind = "upstream_failed"
	KindMalformedResponse ErrorKind = "malformed_response"
)

// CustomError represents a custom application error
type CustomError struct {
	Kind    ErrorKind `json:"kind"`
	Code    int       `json:"code"`
	Message string    `json:"message"`
	Detail  string    `json:"detail,omitempty"`
	Err     error     `json:"-"`
}

func (e *CustomError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s", e.Message, e.Detail)
	}
	return e.Message
}

func (e *CustomError) Unwrap() error {
	return e.Err
}

// Common error constructors

// NewInvalidInputError reports that the request carried no usable input.
// User-correctable, maps to HTTP 400.
func NewInvalidInputError(detail string) *CustomError {
	return &CustomError{
		Kind:    KindInvalidInput,
		Code:    http.StatusBadRequest,
		Message: "Invalid input",
		Detail:  detail,
	}
}

// NewExtractionError reports a document with no recoverable text layer or a
// malformed document. User-correctable, maps to HTTP 400.
func NewExtractionError(detail string, err error) *CustomError {
	return &CustomError{
		Kind:    KindExtraction,
		Code:    http.StatusBadRequest,
		Message: "Text extraction failed",
		Detail:  detail,
		Err:     err,
	}
}

// NewUpstreamError reports a completion-service failure: unreachable service,
// non-success status, or an empty completion. Maps to HTTP 500.
func NewUpstreamError(detail string, err error) *CustomError {
	return &CustomError{
		Kind:    KindUpstream,
		Code:    http.StatusInternalServerError,
		Message: "Completion service failed",
		Detail:  detail,
		Err:     err,
	}
}

// NewMalformedResponseError reports unparseable structured content from the
// completion service. Maps to HTTP 500 and is never retried.
func NewMalformedResponseError(detail string, err error) *CustomError {
	return &CustomError{
		Kind:    KindMalformedResponse,
		Code:    http.StatusInternalServerError,
		Message: "Completion service returned malformed content",
		Detail:  detail,
		Err:     err,
	}
}

func NewValidationError(detail string) *CustomError {
	return &CustomError{
		Kind:    KindInvalidInput,
		Code:    http.StatusBadRequest,
		Message: "Validation failed",
		Detail:  detail,
	}
}

// ErrorKindOf returns the kind of err if it is (or wraps) a CustomError.
func ErrorKindOf(err error) (ErrorKind, bool) {
	var ce *CustomError
	if errors.As(err, &ce) {
		return ce.Kind, true
	}
	return "", false
}

func isKind(err error, kind ErrorKind) bool {
	k, ok := ErrorKindOf(err)
	return ok && k == kind
}

func IsInvalidInputError(err error) bool { return isKind(err, KindInvalidInput) }

func IsExtractionError(err error) bool { return isKind(err, KindExtraction) }

func IsUpstreamError(err error) bool { return isKind(err, KindUpstream) }

func IsMalformedResponseError(err error) bool { return isKind(err, KindMalformedResponse) }

// HTTPStatusFor maps an error to the status code it should surface with.
// Unknown errors are treated as internal failures.
func HTTPStatusFor(err error) int {
	var ce *CustomError
	if errors.As(err, &ce) && ce.Code != 0 {
		return ce.Code
	}
	return http.StatusInternalServerError
}
