package errs

import (
	"errors"
	"fmt"
)

// Error codes used to classify pipeline failures.
const (
	CodeNotFound = "ERR_NOT_FOUND"
	CodeValue    = "ERR_VALUE"
	CodeParse    = "ERR_PARSE"
)

// AppError represents an application-level error with a classification code.
type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	return e.Message
}

// Unwrap returns underlying error.
func (e *AppError) Unwrap() error {
	return e.Err
}

// WithError wraps an underlying error.
func (e *AppError) WithError(err error) *AppError {
	e.Err = err
	return e
}

// NewAppError creates a new application error.
func NewAppError(code, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// NotFoundError creates a missing-file error.
func NotFoundError(message string) *AppError {
	return NewAppError(CodeNotFound, message)
}

// NotFoundErrorf creates a missing-file error with formatting.
func NotFoundErrorf(format string, a ...interface{}) *AppError {
	return NotFoundError(fmt.Sprintf(format, a...))
}

// ValueError creates a semantic-validation error.
func ValueError(message string) *AppError {
	return NewAppError(CodeValue, message)
}

// ValueErrorf creates a semantic-validation error with formatting.
func ValueErrorf(format string, a ...interface{}) *AppError {
	return ValueError(fmt.Sprintf(format, a...))
}

// ParseError creates a malformed-content error.
func ParseError(message string) *AppError {
	return NewAppError(CodeParse, message)
}

func hasCode(err error, code string) bool {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae.Code == code
	}
	return false
}

// IsNotFound reports whether err is a missing-file error.
func IsNotFound(err error) bool {
	return hasCode(err, CodeNotFound)
}

// IsValue reports whether err is a semantic-validation error.
func IsValue(err error) bool {
	return hasCode(err, CodeValue)
}

// IsParse reports whether err is a malformed-content error.
func IsParse(err error) bool {
	return hasCode(err, CodeParse)
}
