// Package apierror carries errors that already know their HTTP status,
// raised where the auth and todo services reject input before it
// reaches a store. The response boundary unwraps them into the JSON
// error envelope.
package apierror

import (
	"fmt"
	"net/http"
)

type APIError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Details    string `json:"details,omitempty"`
	HTTPStatus int    `json:"-"`
}

func (e *APIError) Error() string {
	if e == nil {
		return ""
	}

	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}

	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func New(code string, message string, details string, status int) *APIError {
	return &APIError{Code: code, Message: message, Details: details, HTTPStatus: status}
}

// Validation flags a field that failed the registration or todo input
// rules. Details names the offending field so the frontend can attach
// the message to it.
func Validation(message string, field string) *APIError {
	return New("VALIDATION_FAILED", message, field, http.StatusBadRequest)
}

// BadRequest covers malformed requests that never reached validation,
// such as unparseable JSON or a non-numeric todo id.
func BadRequest(message string, details string) *APIError {
	return New("BAD_REQUEST", message, details, http.StatusBadRequest)
}
