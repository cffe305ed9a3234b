package constant

import (
	"errors"
	"fmt"
	"net/http"
)

// Error 错误接口
type Error interface {
	error
	Code() int
	Message() string
	HTTPStatus() int
	Raw() any
}

// PayError carries one of the codes above together with the message shown to
// the caller and, for gateway failures, the decoded gateway body.
type PayError struct {
	code    int
	message string
	raw     any
	cause   error
}

func (e *PayError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("code: %d, message: %s: %v", e.code, e.message, e.cause)
	}
	return fmt.Sprintf("code: %d, message: %s", e.code, e.message)
}

func (e *PayError) Unwrap() error { return e.cause }

func (e *PayError) Code() int { return e.code }

func (e *PayError) Message() string { return e.message }

func (e *PayError) Raw() any { return e.raw }

func (e *PayError) HTTPStatus() int {
	if info, ok := ErrorMessages[e.code]; ok {
		return info.HTTPStatus
	}
	return http.StatusInternalServerError
}

// WithRaw attaches the upstream body.
func (e *PayError) WithRaw(raw any) *PayError {
	e.raw = raw
	return e
}

// WithCause records the underlying error for logs and errors.Is.
func (e *PayError) WithCause(err error) *PayError {
	e.cause = err
	return e
}

// NewError builds an error using the default marker of code.
func NewError(code int) *PayError {
	if info, exists := ErrorMessages[code]; exists {
		return &PayError{code: code, message: info.Marker}
	}
	return &PayError{code: code, message: MarkerInternalError}
}

// NewErrorWithMessage overrides the marker, e.g. with the gateway description.
func NewErrorWithMessage(code int, message string) *PayError {
	return &PayError{code: code, message: message}
}

// AsError extracts an Error from err's chain.
func AsError(err error) (Error, bool) {
	var pe *PayError
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}

// GetErrorInfo 获取错误信息
func GetErrorInfo(code int) (ErrorInfo, bool) {
	info, exists := ErrorMessages[code]
	return info, exists
}
