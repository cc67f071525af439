package errors

import (
	"errors"
	"fmt"
)

// NewInvalidArgumentError creates an error for a rejected argument such as an empty title
func NewInvalidArgumentError(field string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeInvalidArgument,
		Message: fmt.Sprintf("invalid %s", field),
		Code:    "INVALID_ARGUMENT",
		Cause:   cause,
		Context: map[string]interface{}{
			"field": field,
		},
	}
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(resource string, identifier string) *AppError {
	return &AppError{
		Type:    ErrorTypeNotFound,
		Message: fmt.Sprintf("%s not found: %s", resource, identifier),
		Code:    "NOT_FOUND",
		Context: map[string]interface{}{
			"resource":   resource,
			"identifier": identifier,
		},
	}
}

// NewMalformedRecordError creates an error for persisted data that cannot be decoded
func NewMalformedRecordError(source string, detail string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeMalformedRecord,
		Message: fmt.Sprintf("malformed data in %s: %s", source, detail),
		Code:    "MALFORMED_RECORD",
		Cause:   cause,
		Context: map[string]interface{}{
			"source": source,
			"detail": detail,
		},
	}
}

// NewIOError creates a new file access error
func NewIOError(operation string, path string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeIO,
		Message: fmt.Sprintf("%s failed for %s", operation, path),
		Code:    "IO_FAILURE",
		Cause:   cause,
		Context: map[string]interface{}{
			"operation": operation,
			"path":      path,
		},
	}
}

// NewInvalidInputError creates a new invalid input error
func NewInvalidInputError(field string, value interface{}, reason string) *AppError {
	return &AppError{
		Type:    ErrorTypeInvalidInput,
		Message: fmt.Sprintf("invalid input for %s: %s", field, reason),
		Code:    "INVALID_INPUT",
		Context: map[string]interface{}{
			"field":  field,
			"value":  value,
			"reason": reason,
		},
	}
}

// NewConfigError creates a new configuration error
func NewConfigError(field string, reason string) *AppError {
	return &AppError{
		Type:    ErrorTypeConfig,
		Message: fmt.Sprintf("%s: %s", field, reason),
		Code:    "CONFIG_INVALID",
		Context: map[string]interface{}{
			"field":  field,
			"reason": reason,
		},
	}
}

// WrapError wraps an existing error with additional context
func WrapError(err error, errorType ErrorType, message string) *AppError {
	return &AppError{
		Type:    errorType,
		Message: message,
		Code:    errorType.String(),
		Cause:   err,
		Context: make(map[string]interface{}),
	}
}

// IsAppError checks if the error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// AsAppError converts an error to an AppError if possible
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsErrorType checks if the error is of the specified type
func IsErrorType(err error, errorType ErrorType) bool {
	if appErr, ok := AsAppError(err); ok {
		return appErr.IsType(errorType)
	}
	return false
}

// userMessager is implemented by causes that carry their own user-facing text
type userMessager interface {
	GetUserFriendlyMessage() string
}

// GetUserMessage returns a user-friendly error message
func GetUserMessage(err error) string {
	if appErr, ok := AsAppError(err); ok {
		switch appErr.Type {
		case ErrorTypeInvalidArgument:
			var um userMessager
			if errors.As(appErr.Cause, &um) {
				return um.GetUserFriendlyMessage()
			}
			return appErr.Message
		case ErrorTypeNotFound, ErrorTypeInvalidInput, ErrorTypeConfig:
			return appErr.Message
		case ErrorTypeMalformedRecord:
			return appErr.Message
		case ErrorTypeIO:
			if appErr.Cause != nil {
				return fmt.Sprintf("%s: %v", appErr.Message, appErr.Cause)
			}
			return appErr.Message
		default:
			return "An unexpected error occurred. Please try again."
		}
	}
	return err.Error()
}

// GetErrorCode returns the error code for the error
func GetErrorCode(err error) string {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code
	}
	return "UNKNOWN_ERROR"
}

// ShouldLogError determines if an error should be logged based on its type
func ShouldLogError(err error) bool {
	if appErr, ok := AsAppError(err); ok {
		switch appErr.Type {
		case ErrorTypeInvalidArgument, ErrorTypeNotFound, ErrorTypeInvalidInput:
			return false // These are user errors, not system errors
		case ErrorTypeIO, ErrorTypeMalformedRecord, ErrorTypeConfig:
			return true
		default:
			return true
		}
	}
	return true // Unknown errors should be logged
}
