package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Stable error codes surfaced to API clients. Workflow packages return
// *Error values with one of these codes; anything else maps to CodeInternal.
const (
	CodeNotFound           = "NOT_FOUND"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodePreconditionFailed = "PRECONDITION_FAILED"
	CodeConflict           = "CONFLICT"
	CodeValidationFailed   = "VALIDATION_FAILED"
	CodeInternal           = "INTERNAL"
)

// Error is a business-rule failure with a stable code and a human-readable
// message. Database and other infrastructure failures are not Errors; they
// roll back the enclosing transaction and surface as CodeInternal.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NotFound(message string) *Error {
	return &Error{Code: CodeNotFound, Message: message}
}

func Unauthorized(message string) *Error {
	return &Error{Code: CodeUnauthorized, Message: message}
}

func PreconditionFailed(message string) *Error {
	return &Error{Code: CodePreconditionFailed, Message: message}
}

func Conflict(message string) *Error {
	return &Error{Code: CodeConflict, Message: message}
}

func ValidationFailed(message string) *Error {
	return &Error{Code: CodeValidationFailed, Message: message}
}

type ErrorEnvelope struct {
	Error Error `json:"error"`
}

func WriteError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	_ = json.NewEncoder(w).Encode(ErrorEnvelope{
		Error: Error{Code: code, Message: message},
	})
}

// WriteWorkflowError translates an error returned by a workflow operation
// into the HTTP error envelope.
func WriteWorkflowError(w http.ResponseWriter, err error) {
	var werr *Error
	if !errors.As(err, &werr) {
		WriteError(w, http.StatusInternalServerError, CodeInternal, "internal error")
		return
	}
	WriteError(w, statusFor(werr.Code), werr.Code, werr.Message)
}

func statusFor(code string) int {
	switch code {
	case CodeNotFound:
		return http.StatusNotFound
	case CodeUnauthorized:
		return http.StatusForbidden
	case CodePreconditionFailed:
		return http.StatusPreconditionFailed
	case CodeConflict:
		return http.StatusConflict
	case CodeValidationFailed:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
