package device

import (
	"errors"
	"fmt"
)

// Error codes for device controller operations.
const (
	// ErrCodeUnreachable means the controller could not be reached at
	// all: connection refused, DNS failure, or timeout.
	ErrCodeUnreachable = "DEVICE_UNREACHABLE"
	// ErrCodeProtocol means the controller answered but the exchange was
	// not usable: non-2xx status, undecodable body, or a status payload
	// without a valid pattern.
	ErrCodeProtocol = "DEVICE_PROTOCOL"
)

// Error represents a device-controller error with a code.
type Error struct {
	Code    string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func newError(code, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// CodeOf returns the device error code carried by err, or empty string
// if err is not a device error.
func CodeOf(err error) string {
	var devErr *Error
	if errors.As(err, &devErr) {
		return devErr.Code
	}
	return ""
}
