// Package dErrors defines the domain error taxonomy shared across the
// pipeline stages and the inference service. Handlers translate these codes
// to HTTP statuses; stage binaries translate them to exit statuses.
package dErrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code identifies a class of failure.
type Code string

const (
	// CodeBadRequest marks malformed or unparseable caller input.
	CodeBadRequest Code = "bad_request"

	// CodeBadData marks malformed or missing required data encountered during
	// cleaning or feature derivation. Recoverable by the caller (reject the
	// record, fix the dataset).
	CodeBadData Code = "bad_data"

	// CodeArtifactNotFound marks a configured artifact path or key that does
	// not resolve. Recoverable by trying the next fallback source.
	CodeArtifactNotFound Code = "artifact_not_found"

	// CodeArtifactLoad marks the terminal failure where no source yielded both
	// artifacts. Fatal: the service must not start.
	CodeArtifactLoad Code = "artifact_load"

	// CodeUpstream marks a remote store that is unreachable or rejected our
	// credentials. Logged and recovered via fallback, not surfaced to callers.
	CodeUpstream Code = "upstream"

	// CodeNotFound marks a missing record or resource.
	CodeNotFound Code = "not_found"

	// CodeInternal marks unexpected failures. Descriptions are never exposed
	// to callers.
	CodeInternal Code = "internal"
)

// DomainError carries a code plus a human-readable message and an optional
// wrapped cause.
type DomainError struct {
	Code    Code
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// New creates a DomainError with the given code and message.
func New(code Code, message string) *DomainError {
	return &DomainError{Code: code, Message: message}
}

// Newf creates a DomainError with a formatted message.
func Newf(code Code, format string, args ...any) *DomainError {
	return &DomainError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates a DomainError that wraps an underlying cause.
func Wrap(code Code, message string, err error) *DomainError {
	return &DomainError{Code: code, Message: message, Err: err}
}

// Is reports whether err (or anything it wraps) is a DomainError with the
// given code.
func Is(err error, code Code) bool {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// CodeOf extracts the code from an error, defaulting to CodeInternal for
// errors outside the taxonomy.
func CodeOf(err error) Code {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// ToHTTPStatus maps a domain error code to an HTTP status.
func ToHTTPStatus(code Code) int {
	switch code {
	case CodeBadRequest:
		return http.StatusBadRequest
	case CodeBadData:
		return http.StatusUnprocessableEntity
	case CodeNotFound, CodeArtifactNotFound:
		return http.StatusNotFound
	case CodeUpstream:
		return http.StatusBadGateway
	case CodeArtifactLoad, CodeInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
