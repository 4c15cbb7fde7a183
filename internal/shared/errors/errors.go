package errors

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/textproto"
	"strings"
)

// Error codes by failure class
const (
	CodeValidation    = "VALIDATION_ERROR"
	CodeConfiguration = "CONFIGURATION_ERROR"
	CodeTransport     = "TRANSPORT_ERROR"
	CodeInternal      = "INTERNAL_ERROR"
)

// AppError represents an application error with an HTTP-equivalent status.
// Message is safe to show to callers; Err carries the underlying cause and
// is only exposed outside production.
type AppError struct {
	Code    string
	Status  int
	Message string
	Err     error
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s - %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap exposes the underlying cause
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewValidationError creates an error for a client input defect
func NewValidationError(message string, err error) *AppError {
	return &AppError{
		Code:    CodeValidation,
		Status:  http.StatusBadRequest,
		Message: message,
		Err:     err,
	}
}

// NewConfigurationError creates an error for an operator-side configuration defect
func NewConfigurationError(message string, err error) *AppError {
	return &AppError{
		Code:    CodeConfiguration,
		Status:  http.StatusInternalServerError,
		Message: message,
		Err:     err,
	}
}

// NewTransportError creates an error for a failure talking to the mail relay
func NewTransportError(message string, err error) *AppError {
	return &AppError{
		Code:    CodeTransport,
		Status:  http.StatusInternalServerError,
		Message: message,
		Err:     err,
	}
}

// NewInternalError creates an error for an unexpected failure
func NewInternalError(message string, err error) *AppError {
	return &AppError{
		Code:    CodeInternal,
		Status:  http.StatusInternalServerError,
		Message: message,
		Err:     err,
	}
}

// AsAppError extracts an AppError from an error chain
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// ClassifyTransportError maps an SMTP send failure to a transport error with
// specific remediation text. Authentication rejections and connection
// failures get targeted messages; anything else falls back to a generic one.
func ClassifyTransportError(err error) *AppError {
	if err == nil {
		return nil
	}

	if isAuthFailure(err) {
		return NewTransportError(
			"Email authentication failed. Check SMTP_USER and SMTP_PASS; Gmail accounts require an app password, not the account password.",
			err,
		)
	}

	if isConnectionFailure(err) {
		return NewTransportError(
			"Could not connect to the mail server. Check SMTP_HOST and SMTP_PORT.",
			err,
		)
	}

	return NewTransportError("Failed to send notification email. Please try again later.", err)
}

func isAuthFailure(err error) bool {
	var tpErr *textproto.Error
	if errors.As(err, &tpErr) {
		// 535 = authentication credentials invalid, 534 = auth mechanism rejected
		if tpErr.Code == 535 || tpErr.Code == 534 {
			return true
		}
	}
	msg := err.Error()
	return strings.Contains(msg, "Invalid login") ||
		strings.Contains(msg, "Username and Password not accepted") ||
		strings.Contains(msg, "authentication failed")
}

func isConnectionFailure(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "no such host") ||
		strings.Contains(msg, "timed out")
}
