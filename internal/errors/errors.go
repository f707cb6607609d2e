package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorType represents different categories of errors
type ErrorType string

const (
	ErrorTypeInvalidFormat      ErrorType = "invalid_format"
	ErrorTypeResolutionTooLarge ErrorType = "resolution_too_large"
	ErrorTypeInternal           ErrorType = "internal"
)

// AppError represents a structured application error
type AppError struct {
	Type       ErrorType `json:"type"`
	Message    string    `json:"message"`
	Details    string    `json:"details,omitempty"`
	StatusCode int       `json:"status_code"`
	Cause      error     `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// NewInvalidFormatError is returned when an input cannot be decoded as an image.
func NewInvalidFormatError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeInvalidFormat,
		Message:    message,
		StatusCode: http.StatusBadRequest,
		Cause:      cause,
	}
}

// NewResolutionTooLargeError is returned when a decoded image exceeds the
// configured dimension ceiling.
func NewResolutionTooLargeError(message string, width, height int) *AppError {
	return &AppError{
		Type:       ErrorTypeResolutionTooLarge,
		Message:    message,
		Details:    fmt.Sprintf("%dx%d", width, height),
		StatusCode: http.StatusRequestEntityTooLarge,
	}
}

// NewInternalError creates a new internal error. The cause's text is
// embedded in the message.
func NewInternalError(cause error) *AppError {
	msg := "Internal error"
	if cause != nil {
		msg = fmt.Sprintf("Internal error: %v", cause)
	}
	return &AppError{
		Type:       ErrorTypeInternal,
		Message:    msg,
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// IsType checks if the error is of a specific type
func IsType(err error, errorType ErrorType) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type == errorType
	}
	return false
}

// GetStatusCode extracts the status code from an error
func GetStatusCode(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}

// AsAppError returns err as an *AppError, wrapping anything else as internal.
func AsAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return NewInternalError(err)
}
