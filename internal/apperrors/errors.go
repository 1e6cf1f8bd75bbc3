package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Error is an API-facing error carrying an HTTP status. Handlers return
// these up to the respond layer, which maps them onto the response envelope.
type Error struct {
	Status  int
	Message string
	Errs    []string // extra detail, e.g. per-field validation messages
}

func (e *Error) Error() string {
	if len(e.Errs) > 0 {
		return fmt.Sprintf("%s: %s", e.Message, strings.Join(e.Errs, ", "))
	}
	return e.Message
}

// Validation reports malformed or missing input (400).
func Validation(message string, errs ...string) *Error {
	return &Error{Status: http.StatusBadRequest, Message: message, Errs: errs}
}

// Unauthorized reports a missing, invalid or expired credential (401).
func Unauthorized(message string) *Error {
	return &Error{Status: http.StatusUnauthorized, Message: message}
}

// Forbidden reports a valid identity without sufficient rights (403).
func Forbidden(message string) *Error {
	return &Error{Status: http.StatusForbidden, Message: message}
}

// NotFound reports a missing resource (404).
func NotFound(message string) *Error {
	return &Error{Status: http.StatusNotFound, Message: message}
}

// Conflict reports a duplicate unique key (409).
func Conflict(message string) *Error {
	return &Error{Status: http.StatusConflict, Message: message}
}

// Internal reports an unexpected server error (500).
func Internal(message string) *Error {
	return &Error{Status: http.StatusInternalServerError, Message: message}
}

// From translates any error into an *Error. Database uniqueness violations
// become conflicts; everything unrecognized becomes an internal error so raw
// driver messages never leak to clients.
func From(err error) *Error {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr
	}
	if IsUniqueViolation(err) {
		return Conflict("duplicate value for a unique field")
	}
	return Internal("internal server error")
}

// IsUniqueViolation reports whether err is a SQLite unique-constraint error.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	// modernc.org/sqlite surfaces constraint failures in the error text
	// (SQLITE_CONSTRAINT_UNIQUE, code 2067).
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "constraint failed: UNIQUE")
}
