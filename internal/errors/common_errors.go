package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorType represents the type of error
type ErrorType string

const (
	ErrTypeSequence      ErrorType = "SEQUENCE"
	ErrTypeLookupKey     ErrorType = "LOOKUP_KEY"
	ErrTypeMalformedDate ErrorType = "MALFORMED_DATE"
	ErrTypeParsing       ErrorType = "PARSING"
	ErrTypeStorage       ErrorType = "STORAGE"
	ErrTypeValidation    ErrorType = "VALIDATION"
	ErrTypeNotFound      ErrorType = "NOT_FOUND"
	ErrTypeConfig        ErrorType = "CONFIG"
)

// Sentinel causes, matched with errors.Is through AppError.Unwrap.
var (
	ErrSequenceViolation = stderrors.New("record inserted out of applicant order")
	ErrMalformedDate     = stderrors.New("date has no '-' delimiter")
	ErrIncomplete        = stderrors.New("applicant collection has empty slots")
	ErrNotAbsolute       = stderrors.New("path is not absolute")
	ErrIndexOutOfRange   = stderrors.New("slot index out of range")
)

// AppError represents an application-specific error
type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap allows errors.Is and errors.As to work with AppError
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithContext adds context to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewAppError creates a new application error
func NewAppError(errType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// IsType reports whether err carries an AppError of the given type.
func IsType(err error, errType ErrorType) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr) && appErr.Type == errType
}

// NewSequenceError reports a record whose id does not match the slot it was
// inserted into.
func NewSequenceError(position int, expected, got string) *AppError {
	return NewAppError(ErrTypeSequence,
		fmt.Sprintf("slot %d expects applicant %q, got %q", position, expected, got),
		ErrSequenceViolation).
		WithContext("position", position).
		WithContext("expected", expected).
		WithContext("got", got)
}

// NewLookupKeyError wraps an unknown-key failure.
func NewLookupKeyError(key string, cause error) *AppError {
	return NewAppError(ErrTypeLookupKey, fmt.Sprintf("no grade list named %q", key), cause).
		WithContext("key", key)
}

// NewMalformedDateError reports a date cell that cannot yield a year.
func NewMalformedDateError(applicantID, kind string, row int, date string) *AppError {
	return NewAppError(ErrTypeMalformedDate,
		fmt.Sprintf("applicant %s %s row %d: date %q", applicantID, kind, row, date),
		ErrMalformedDate).
		WithContext("applicant_id", applicantID).
		WithContext("kind", kind).
		WithContext("row", row)
}

// NewParsingError creates a parsing-related error
func NewParsingError(message string, cause error) *AppError {
	return NewAppError(ErrTypeParsing, message, cause)
}

// NewStorageError creates a storage-related error
func NewStorageError(message string, cause error) *AppError {
	return NewAppError(ErrTypeStorage, message, cause)
}

// NewAppValidationError creates a validation error for AppError type
func NewAppValidationError(message string) *AppError {
	return NewAppError(ErrTypeValidation, message, nil)
}

// NewNotFoundError creates a not found error
func NewNotFoundError(resource string) *AppError {
	return NewAppError(ErrTypeNotFound, fmt.Sprintf("%s not found", resource), nil)
}

// NewConfigError creates a configuration error
func NewConfigError(message string, cause error) *AppError {
	return NewAppError(ErrTypeConfig, message, cause)
}
