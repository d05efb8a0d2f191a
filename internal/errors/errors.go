// Package errors defines the API error types shared by handlers and services.
package errors

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// APIError is the error type surfaced to HTTP clients. Message is what the
// caller sees; internal detail stays in logs.
type APIError struct {
	HTTPStatus int    `json:"-"`
	Code       string `json:"code"`
	Message    string `json:"message"`
}

func (e *APIError) Error() string {
	return e.Message
}

// Predefined errors. Authorization failures deliberately share one generic
// message so responses never reveal which specific check failed.
var (
	ErrBadRequest        = &APIError{HTTPStatus: http.StatusBadRequest, Code: "BAD_REQUEST", Message: "Invalid request parameters"}
	ErrInvalidJSON       = &APIError{HTTPStatus: http.StatusBadRequest, Code: "INVALID_JSON", Message: "Invalid JSON payload"}
	ErrValidation        = &APIError{HTTPStatus: http.StatusBadRequest, Code: "VALIDATION_FAILED", Message: "Validation failed"}
	ErrUnauthorized      = &APIError{HTTPStatus: http.StatusUnauthorized, Code: "UNAUTHORIZED", Message: "Authentication required"}
	ErrForbidden         = &APIError{HTTPStatus: http.StatusForbidden, Code: "FORBIDDEN", Message: "Permission denied"}
	ErrResourceNotFound  = &APIError{HTTPStatus: http.StatusNotFound, Code: "NOT_FOUND", Message: "Resource not found"}
	ErrDuplicateResource = &APIError{HTTPStatus: http.StatusConflict, Code: "DUPLICATE_RESOURCE", Message: "Resource already exists"}
	ErrAlreadyRestored   = &APIError{HTTPStatus: http.StatusConflict, Code: "ALREADY_RESTORED", Message: "Backup has already been restored"}
	ErrInternalServer    = &APIError{HTTPStatus: http.StatusInternalServerError, Code: "INTERNAL_SERVER_ERROR", Message: "Internal server error"}
	ErrDatabase          = &APIError{HTTPStatus: http.StatusInternalServerError, Code: "DATABASE_ERROR", Message: "Database operation failed"}
	ErrUpstreamFetch     = &APIError{HTTPStatus: http.StatusBadGateway, Code: "UPSTREAM_FETCH_FAILED", Message: "Failed to fetch the external results page"}
)

// NewAPIError creates a copy of a predefined error with a custom message.
func NewAPIError(base *APIError, message string) *APIError {
	return &APIError{
		HTTPStatus: base.HTTPStatus,
		Code:       base.Code,
		Message:    message,
	}
}

// NewValidationError creates a validation error with a custom message.
func NewValidationError(message string) *APIError {
	return NewAPIError(ErrValidation, message)
}

// NewAuthenticationError creates an authentication error with a custom message.
func NewAuthenticationError(message string) *APIError {
	return NewAPIError(ErrUnauthorized, message)
}

// NewNotFoundError creates a not-found error with a custom message.
func NewNotFoundError(message string) *APIError {
	return NewAPIError(ErrResourceNotFound, message)
}

// NewForbiddenError creates a forbidden error with a custom message.
func NewForbiddenError(message string) *APIError {
	return NewAPIError(ErrForbidden, message)
}

// ParseDBError maps database driver errors to APIErrors. Returns nil for nil
// input so callers can chain it directly on gorm results.
func ParseDBError(err error) *APIError {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrResourceNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateResource
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrDuplicateResource
	}

	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
		return ErrDuplicateResource
	}

	// SQLite reports constraint violations as plain strings
	if strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return ErrDuplicateResource
	}

	return ErrDatabase
}
