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

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"

	// Version and jungle errors
	ErrInvalidVersion       ErrorCode = "INVALID_VERSION"
	ErrInvalidParent        ErrorCode = "INVALID_PARENT"
	ErrAlreadyInitialized   ErrorCode = "ALREADY_INITIALIZED"
	ErrNoVersions           ErrorCode = "NO_VERSIONS"
	ErrInsufficientVersions ErrorCode = "INSUFFICIENT_VERSIONS"
	ErrNoCurrent            ErrorCode = "NO_CURRENT"
	ErrVersionNotFound      ErrorCode = "VERSION_NOT_FOUND"
	ErrCannotDeleteCurrent  ErrorCode = "CANNOT_DELETE_CURRENT"
	ErrPruneFailed          ErrorCode = "PRUNE_FAILED"

	// FileSystem errors
	ErrFileAccess    ErrorCode = "FILE_ACCESS"
	ErrSymlinkCreate ErrorCode = "SYMLINK_CREATE"
	ErrRemove        ErrorCode = "REMOVE"
)

// JungleError is a coded error. Code decides the exit status and is what
// errors.Is compares; Details carries structured context for logs.
type JungleError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

func (e *JungleError) Error() string {
	msg := "[" + string(e.Code) + "] " + e.Message
	if e.Wrapped == nil {
		return msg
	}
	return msg + ": " + e.Wrapped.Error()
}

func (e *JungleError) Unwrap() error { return e.Wrapped }

// Is matches any JungleError carrying the same code, so callers can test
// with errors.Is(err, errors.New(code, ""))
func (e *JungleError) Is(target error) bool {
	t, ok := target.(*JungleError)
	return ok && t.Code == e.Code
}

// New creates a JungleError with the given code and message
func New(code ErrorCode, message string) *JungleError {
	return &JungleError{Code: code, Message: message, Details: map[string]interface{}{}}
}

// Newf is New with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *JungleError {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap attaches code and message to err. A nil err stays nil.
func Wrap(err error, code ErrorCode, message string) *JungleError {
	if err == nil {
		return nil
	}
	e := New(code, message)
	e.Wrapped = err
	return e
}

// Wrapf is Wrap with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *JungleError {
	if err == nil {
		return nil
	}
	return Wrap(err, code, fmt.Sprintf(format, args...))
}

// WithDetail records key=value on e and returns it for chaining
func (e *JungleError) WithDetail(key string, value interface{}) *JungleError {
	if e.Details == nil {
		e.Details = map[string]interface{}{}
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var jerr *JungleError
	if errors.As(err, &jerr) {
		return jerr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a JungleError
func GetErrorCode(err error) ErrorCode {
	var jerr *JungleError
	if errors.As(err, &jerr) {
		return jerr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a JungleError
func GetErrorDetails(err error) map[string]interface{} {
	var jerr *JungleError
	if errors.As(err, &jerr) {
		return jerr.Details
	}
	return nil
}
