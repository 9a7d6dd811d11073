package utils

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes with HTTP status mapping
const (
	// General errors
	ErrCodeInvalidRequest     = "INVALID_REQUEST"
	ErrCodeValidationFailed   = "VALIDATION_ERROR"
	ErrCodeUnauthorized       = "UNAUTHORIZED"
	ErrCodeForbidden          = "FORBIDDEN"
	ErrCodeNotFound           = "NOT_FOUND"
	ErrCodeInternalError      = "INTERNAL_ERROR"
	ErrCodeServiceUnavailable = "SERVICE_UNAVAILABLE"
	ErrCodeRateLimitExceeded  = "RATE_LIMIT_EXCEEDED"

	// Persistence errors
	ErrCodeDatabaseError = "DATABASE_ERROR"

	// Data source errors
	ErrCodeDataSourceNotFound     = "DATASOURCE_NOT_FOUND"
	ErrCodeCatalogItemNotFound    = "CATALOG_ITEM_NOT_FOUND"
	ErrCodeMissingParameter       = "MISSING_CONNECTION_PARAMETER"
	ErrCodeInvalidConnection      = "INVALID_CONNECTION_PARAMETERS"
	ErrCodeConnectivityFailed     = "CONNECTIVITY_TEST_FAILED"
	ErrCodeUnsupportedCatalogItem = "UNSUPPORTED_CATALOG_ITEM"

	ErrCodeInvalidUUID = "INVALID_UUID"
)

// HTTPStatus maps error codes to HTTP status codes
var HTTPStatus = map[string]int{
	ErrCodeInvalidRequest:     http.StatusBadRequest,
	ErrCodeValidationFailed:   http.StatusUnprocessableEntity,
	ErrCodeUnauthorized:       http.StatusUnauthorized,
	ErrCodeForbidden:          http.StatusForbidden,
	ErrCodeNotFound:           http.StatusNotFound,
	ErrCodeInternalError:      http.StatusInternalServerError,
	ErrCodeServiceUnavailable: http.StatusServiceUnavailable,
	ErrCodeRateLimitExceeded:  http.StatusTooManyRequests,

	ErrCodeDatabaseError: http.StatusInternalServerError,

	ErrCodeDataSourceNotFound:     http.StatusNotFound,
	ErrCodeCatalogItemNotFound:    http.StatusNotFound,
	ErrCodeMissingParameter:       http.StatusUnprocessableEntity,
	ErrCodeInvalidConnection:      http.StatusUnprocessableEntity,
	ErrCodeConnectivityFailed:     http.StatusBadGateway,
	ErrCodeUnsupportedCatalogItem: http.StatusBadRequest,

	ErrCodeInvalidUUID: http.StatusBadRequest,
}

// AppError represents an application error with additional context
type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
	Cause   error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s - %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// ErrorBuilder provides a fluent interface for creating errors
type ErrorBuilder struct {
	code    string
	message string
	details string
	cause   error
}

// NewErrorBuilder creates a new error builder
func NewErrorBuilder(code string) *ErrorBuilder {
	return &ErrorBuilder{code: code}
}

// WithMessage sets the error message
func (eb *ErrorBuilder) WithMessage(message string) *ErrorBuilder {
	eb.message = message
	return eb
}

// WithDetails sets the error details
func (eb *ErrorBuilder) WithDetails(details string) *ErrorBuilder {
	eb.details = details
	return eb
}

// WithCause sets the underlying error cause
func (eb *ErrorBuilder) WithCause(cause error) *ErrorBuilder {
	eb.cause = cause
	return eb
}

// Build constructs the final AppError
func (eb *ErrorBuilder) Build() *AppError {
	if eb.message == "" {
		eb.message = getDefaultMessage(eb.code)
	}

	return &AppError{
		Code:    eb.code,
		Message: eb.message,
		Details: eb.details,
		Cause:   eb.cause,
	}
}

func getDefaultMessage(code string) string {
	messages := map[string]string{
		ErrCodeInvalidRequest:     "The request is invalid",
		ErrCodeValidationFailed:   "Validation failed",
		ErrCodeUnauthorized:       "Unauthorized access",
		ErrCodeForbidden:          "Access forbidden",
		ErrCodeNotFound:           "Resource not found",
		ErrCodeInternalError:      "Internal server error",
		ErrCodeServiceUnavailable: "Service temporarily unavailable",
		ErrCodeRateLimitExceeded:  "Rate limit exceeded",

		ErrCodeDatabaseError: "Database error",

		ErrCodeDataSourceNotFound:     "Data source not found",
		ErrCodeCatalogItemNotFound:    "Data catalog item not found",
		ErrCodeMissingParameter:       "A connection parameter is missing",
		ErrCodeInvalidConnection:      "Invalid connection parameters",
		ErrCodeConnectivityFailed:     "Connectivity test failed",
		ErrCodeUnsupportedCatalogItem: "No connectivity test available for this catalog item",

		ErrCodeInvalidUUID: "Invalid UUID format",
	}

	if msg, exists := messages[code]; exists {
		return msg
	}
	return "Unknown error"
}

func NewValidationError(message string, details string) *AppError {
	return NewErrorBuilder(ErrCodeValidationFailed).
		WithMessage(message).
		WithDetails(details).
		Build()
}

// GetErrorStatus returns the HTTP status code for an error
func GetErrorStatus(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		if status, exists := HTTPStatus[appErr.Code]; exists {
			return status
		}
	}
	return http.StatusInternalServerError
}
