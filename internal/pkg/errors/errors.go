package errors

import (
	"errors"
	"fmt"
)

// ErrorType represents the classification of a gateway error
type ErrorType int

const (
	// ErrorTypeDeclined indicates a simulated business failure: the
	// configured outcome (or an overriding token) was failure
	ErrorTypeDeclined ErrorType = iota
	// ErrorTypePersistence indicates a collaborator write failed; it is
	// propagated as-is, never retried or compensated
	ErrorTypePersistence
	// ErrorTypeNotFound indicates a referenced order or token does not exist
	ErrorTypeNotFound
	// ErrorTypeInvalid indicates malformed input, e.g. an undecodable token
	ErrorTypeInvalid
	// ErrorTypeTimeout indicates a hook handler exceeded its time budget
	ErrorTypeTimeout
)

// Well-known error codes.
const (
	CodePaymentFailure   = "PAYMENT_FAILURE"
	CodeOrderNotFound    = "ORDER_NOT_FOUND"
	CodeTokenNotFound    = "TOKEN_NOT_FOUND"
	CodeInvalidToken     = "INVALID_TOKEN"
	CodeInvalidPayload   = "INVALID_PAYLOAD"
	CodePersistenceError = "PERSISTENCE_ERROR"
	CodeOrderNotPayable  = "ORDER_NOT_PAYABLE"
	CodeHookTimeout      = "HOOK_TIMEOUT"
)

// GatewayError is a classified error with a stable code and context
type GatewayError struct {
	Type    ErrorType
	Code    string
	Message string
	Cause   error
}

// NewDeclinedError creates an error for a simulated payment failure
func NewDeclinedError(message string) *GatewayError {
	return &GatewayError{
		Type:    ErrorTypeDeclined,
		Code:    CodePaymentFailure,
		Message: message,
	}
}

// NewPersistenceError wraps a failed collaborator write
func NewPersistenceError(message string, cause error) *GatewayError {
	return &GatewayError{
		Type:    ErrorTypePersistence,
		Code:    CodePersistenceError,
		Message: message,
		Cause:   cause,
	}
}

// NewNotFoundError creates an error for a missing order or token
func NewNotFoundError(code, message string) *GatewayError {
	return &GatewayError{
		Type:    ErrorTypeNotFound,
		Code:    code,
		Message: message,
	}
}

// NewInvalidError creates an error for malformed input
func NewInvalidError(code, message string, cause error) *GatewayError {
	return &GatewayError{
		Type:    ErrorTypeInvalid,
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// NewTimeoutError creates an error for an overrunning hook handler
func NewTimeoutError(code, message string) *GatewayError {
	return &GatewayError{
		Type:    ErrorTypeTimeout,
		Code:    code,
		Message: message,
	}
}

// Error implements the error interface
func (e *GatewayError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause
func (e *GatewayError) Unwrap() error {
	return e.Cause
}

// IsDeclined reports whether err is a simulated payment failure
func IsDeclined(err error) bool {
	var ge *GatewayError
	return errors.As(err, &ge) && ge.Type == ErrorTypeDeclined
}

// IsNotFound reports whether err is a missing order or token
func IsNotFound(err error) bool {
	var ge *GatewayError
	return errors.As(err, &ge) && ge.Type == ErrorTypeNotFound
}

// IsTimeout reports whether err is a hook handler timeout
func IsTimeout(err error) bool {
	var ge *GatewayError
	return errors.As(err, &ge) && ge.Type == ErrorTypeTimeout
}

// DeclineMessage returns the shopper-facing message of a declined
// payment, or the empty string for other errors
func DeclineMessage(err error) string {
	var ge *GatewayError
	if errors.As(err, &ge) && ge.Type == ErrorTypeDeclined {
		return ge.Message
	}
	return ""
}
