package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrNotFound     ErrorCode = "NOT_FOUND"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"

	// Match errors
	ErrMatchPattern ErrorCode = "MATCH_PATTERN"
	ErrMatchWalk    ErrorCode = "MATCH_WALK"

	// FileSystem errors
	ErrFileAccess ErrorCode = "FILE_ACCESS"
	ErrFileWrite  ErrorCode = "FILE_WRITE"
	ErrFileDelete ErrorCode = "FILE_DELETE"

	// Barrel errors
	ErrBarrelStale ErrorCode = "BARREL_STALE"

	// Watch errors
	ErrWatchStart ErrorCode = "WATCH_START"
)

// BarrelError represents a structured error with code and details
type BarrelError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *BarrelError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *BarrelError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *BarrelError) Is(target error) bool {
	var targetErr *BarrelError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new BarrelError with the given code and message
func New(code ErrorCode, message string) *BarrelError {
	return &BarrelError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new BarrelError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *BarrelError {
	return &BarrelError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a BarrelError
func Wrap(err error, code ErrorCode, message string) *BarrelError {
	if err == nil {
		return nil
	}
	return &BarrelError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *BarrelError {
	if err == nil {
		return nil
	}
	return &BarrelError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *BarrelError) WithDetail(key string, value interface{}) *BarrelError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var barrelErr *BarrelError
	if errors.As(err, &barrelErr) {
		return barrelErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a BarrelError
func GetErrorCode(err error) ErrorCode {
	var barrelErr *BarrelError
	if errors.As(err, &barrelErr) {
		return barrelErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a BarrelError
func GetErrorDetails(err error) map[string]interface{} {
	var barrelErr *BarrelError
	if errors.As(err, &barrelErr) {
		return barrelErr.Details
	}
	return nil
}
