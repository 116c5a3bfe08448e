package apierror

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	CodeUnknown         = "UNKNOWN_ERROR"
	CodeInvalidResponse = "INVALID_RESPONSE"
	CodeSessionExpired  = "SESSION_EXPIRED"
	CodeBadRequest      = "BAD_REQUEST"
)

// APIError is the normalized shape every caller above the HTTP client sees.
type APIError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"statusCode"`
	Details    any    `json:"details,omitempty"`
}

// ErrSessionExpired is returned when the refresh flow gave up and the
// session was cleared.
var ErrSessionExpired = &APIError{
	Code:       CodeSessionExpired,
	Message:    "session expired, please log in again",
	StatusCode: http.StatusUnauthorized,
}

func (e *APIError) Error() string {
	if e == nil {
		return ""
	}

	if e.Details != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Details)
	}

	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is matches on code so wrapped copies of a sentinel still compare equal.
func (e *APIError) Is(target error) bool {
	t, ok := target.(*APIError)
	if !ok || e == nil || t == nil {
		return false
	}
	return e.Code == t.Code
}

func New(code string, message string, details any, status int) *APIError {
	return &APIError{Code: code, Message: message, Details: details, StatusCode: status}
}

func Unknown(err error) *APIError {
	message := "An error occurred"
	if err != nil && err.Error() != "" {
		message = err.Error()
	}
	return &APIError{Code: CodeUnknown, Message: message, StatusCode: http.StatusInternalServerError}
}

// IsStatus reports whether err carries the given HTTP status.
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == status
	}
	return false
}

// Code returns the normalized code of err, or CodeUnknown.
func Code(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code
	}
	return CodeUnknown
}
