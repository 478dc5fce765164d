package internal

import (
	"encoding/json"
	"fmt"
	"net/http"
)

type ErrorType string

const (
	ErrorTypeValidation   ErrorType = "VALIDATION_ERROR"
	ErrorTypeNotFound     ErrorType = "NOT_FOUND"
	ErrorTypeUnauthorized ErrorType = "UNAUTHORIZED"
	ErrorTypeForbidden    ErrorType = "FORBIDDEN"
	ErrorTypeConflict     ErrorType = "CONFLICT"
	ErrorTypeInternal     ErrorType = "INTERNAL_ERROR"
	ErrorTypeMigration    ErrorType = "MIGRATION_ERROR"
)

type ErrorCode string

const (
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	ErrCodeInvalidAmount    ErrorCode = "INVALID_AMOUNT"
	ErrCodeInvalidKind      ErrorCode = "INVALID_DOCUMENT_KIND"
	ErrCodeInvalidStatus    ErrorCode = "INVALID_DOCUMENT_STATUS"

	ErrCodeDocumentNotFound ErrorCode = "DOCUMENT_NOT_FOUND"
	ErrCodeLineNotFound     ErrorCode = "DOCUMENT_LINE_NOT_FOUND"
	ErrCodePartnerNotFound  ErrorCode = "PARTNER_NOT_FOUND"
	ErrCodeProductNotFound  ErrorCode = "PRODUCT_NOT_FOUND"
	ErrCodeSettingNotFound  ErrorCode = "SETTING_NOT_FOUND"

	ErrCodeDuplicateNumber ErrorCode = "DUPLICATE_DOCUMENT_NUMBER"
	ErrCodeDuplicateSKU    ErrorCode = "DUPLICATE_SKU"

	ErrCodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	ErrCodeUserInactive       ErrorCode = "USER_INACTIVE"
	ErrCodeInvalidToken       ErrorCode = "INVALID_TOKEN"
	ErrCodeTokenExpired       ErrorCode = "TOKEN_EXPIRED"

	ErrCodeMigrationFailed ErrorCode = "MIGRATION_FAILED"
	ErrCodeStorageFailure  ErrorCode = "STORAGE_FAILURE"
)

type AppError struct {
	Type       ErrorType   `json:"type"`
	Code       ErrorCode   `json:"code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
	StatusCode int         `json:"-"`
	Cause      error       `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

func (e *AppError) WithDetails(details interface{}) *AppError {
	e.Details = details
	return e
}

func NewValidationError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

func NewNotFoundError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeNotFound,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusNotFound,
	}
}

func NewUnauthorizedError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeUnauthorized,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusUnauthorized,
	}
}

func NewConflictError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeConflict,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusConflict,
	}
}

func NewInternalError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Code:       ErrCodeStorageFailure,
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// NewMigrationError marks a schema script failure. These are fatal at
// startup: no partial application marker is recorded for the version.
func NewMigrationError(version string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeMigration,
		Code:       ErrCodeMigrationFailed,
		Message:    fmt.Sprintf("migration %s failed", version),
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

var (
	ErrDocumentNotFound = NewNotFoundError("document not found", ErrCodeDocumentNotFound)
	ErrLineNotFound     = NewNotFoundError("document line not found", ErrCodeLineNotFound)
	ErrPartnerNotFound  = NewNotFoundError("partner not found", ErrCodePartnerNotFound)
	ErrProductNotFound  = NewNotFoundError("product not found", ErrCodeProductNotFound)

	ErrInvalidCredentials = NewUnauthorizedError("invalid username or password", ErrCodeInvalidCredentials)
	ErrInvalidToken       = NewUnauthorizedError("invalid token", ErrCodeInvalidToken)
	ErrTokenExpired       = NewUnauthorizedError("token has expired", ErrCodeTokenExpired)
)

func IsAppError(err error) (*AppError, bool) {
	if appErr, ok := err.(*AppError); ok {
		return appErr, true
	}
	return nil, false
}

type Response struct {
	Error *AppError `json:"error"`
}

func (e *AppError) ToHTTPResponse() (int, interface{}) {
	return e.StatusCode, Response{Error: e}
}

func (e *AppError) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type    ErrorType   `json:"type"`
		Code    ErrorCode   `json:"code"`
		Message string      `json:"message"`
		Details interface{} `json:"details,omitempty"`
	}{
		Type:    e.Type,
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
	})
}
