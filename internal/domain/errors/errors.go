package errors

import (
	"net/http"

	"fairway/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Predefined error types
var (
	// Authentication-related errors
	ErrAuthFailed = NewBaseError(
		http.StatusUnauthorized,
		"AUTH_FAILED",
		"Sign-in was rejected by the authentication provider",
		"",
	)

	ErrNotAuthenticated = NewBaseError(
		http.StatusUnauthorized,
		"NOT_AUTHENTICATED",
		"You must be signed in to do that",
		"",
	)

	ErrInvalidPhoneNumber = NewBaseError(
		http.StatusBadRequest,
		"INVALID_PHONE_NUMBER",
		"That phone number could not be verified",
		"",
	)

	ErrVerificationCodeInvalid = NewBaseError(
		http.StatusUnauthorized,
		"VERIFICATION_CODE_INVALID",
		"The verification code is invalid or has expired",
		"",
	)

	// Backend-related errors
	ErrBackendUnavailable = NewBaseError(
		http.StatusBadGateway,
		"BACKEND_UNAVAILABLE",
		"The service is temporarily unavailable, please try again",
		"",
	)

	// Validation-related errors
	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"A required field is missing or invalid",
		"",
	)

	// Resource errors
	ErrNotFound = NewBaseError(
		http.StatusNotFound,
		"NOT_FOUND",
		"The requested record was not found",
		"",
	)

	ErrCourseNotFound = NewBaseError(
		http.StatusNotFound,
		"COURSE_NOT_FOUND",
		"That course was not found",
		"",
	)

	// Account deletion errors. A partial failure means some data was removed
	// before the cascade halted; the identity is never deleted in that case.
	ErrAccountDeleteFailed = NewBaseError(
		http.StatusInternalServerError,
		"ACCOUNT_DELETE_FAILED",
		"Account deletion failed; no data was removed",
		"",
	)

	ErrAccountDeletePartial = NewBaseError(
		http.StatusInternalServerError,
		"ACCOUNT_DELETE_PARTIAL",
		"Account deletion was interrupted; some data may remain and your account still exists",
		"",
	)

	// General errors
	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"Something went wrong on our side",
		"",
	)
)
