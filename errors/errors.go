package errors

import (
	"fmt"

	"github.com/FrankenSama/COM714-Travel-Managment-System-Assignment/logger"
)

type ErrorType string

const (
	ValidationError   ErrorType = "VALIDATION_ERROR"
	NotFoundError     ErrorType = "NOT_FOUND"
	AuthError         ErrorType = "AUTHENTICATION_ERROR"
	DuplicateError    ErrorType = "DUPLICATE"
	StorageError      ErrorType = "STORAGE_ERROR"
	IntegrityGapError ErrorType = "INTEGRITY_GAP"
	ForbiddenError    ErrorType = "FORBIDDEN"
	ServerError       ErrorType = "SERVER_ERROR"
)

// AppError represents a structured application error
type AppError struct {
	Type    ErrorType `json:"type"`
	Code    string    `json:"code,omitempty"`
	Message string    `json:"message"`
	Detail  string    `json:"detail,omitempty"`
	Raw     error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Type, e.Message, e.Detail)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Raw
}

// New creates a new AppError
func New(errType ErrorType, message string, detail string) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Detail:  detail,
	}
}

// Wrap wraps a raw error with AppError context
func Wrap(err error, errType ErrorType, message string) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{
		Type:    errType,
		Message: message,
		Detail:  err.Error(),
		Raw:     err,
	}
}

// IsType reports whether err is an *AppError of the given type.
func IsType(err error, errType ErrorType) bool {
	appErr, ok := err.(*AppError)
	return ok && appErr.Type == errType
}

// Helper functions for common errors

func NotFound(entity string, id interface{}) *AppError {
	return &AppError{
		Type:    NotFoundError,
		Message: fmt.Sprintf("%s not found", entity),
		Detail:  fmt.Sprintf("ID: %v", id),
	}
}

func ValidationFailed(message string, details string) *AppError {
	return &AppError{
		Type:    ValidationError,
		Message: message,
		Detail:  details,
	}
}

func AuthenticationFailed(message string) *AppError {
	return &AppError{
		Type:    AuthError,
		Message: message,
	}
}

// Duplicate signals an identifier collision, e.g. a username that is already
// taken. Distinct from ValidationError so callers can show a specific message.
func Duplicate(entity string, value string) *AppError {
	return &AppError{
		Type:    DuplicateError,
		Message: fmt.Sprintf("%s already exists", entity),
		Detail:  value,
	}
}

func NewStorageError(err error) *AppError {
	// Log original error but return sanitized message
	logger.GetLogger().Errorw("Storage error", "error", err)
	return &AppError{
		Type:    StorageError,
		Message: "Storage operation failed",
		Detail:  "Please try again later",
		Raw:     err,
	}
}

// IntegrityGap marks a cross-reference that could not be resolved on load
// (orphaned invoice, missing coordinator). Never fatal.
func IntegrityGap(message string, detail string) *AppError {
	return &AppError{
		Type:    IntegrityGapError,
		Message: message,
		Detail:  detail,
	}
}

func Forbidden(message string, details string) *AppError {
	return &AppError{
		Type:    ForbiddenError,
		Message: message,
		Detail:  details,
	}
}

func InternalServerError(message string) *AppError {
	return &AppError{
		Type:    ServerError,
		Message: message,
	}
}
