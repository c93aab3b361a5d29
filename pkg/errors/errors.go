// Package errors provides structured error handling for the application
// Following enterprise patterns for error management and observability
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"

	"github.com/alchemorsel/pantry/internal/domain/pantry"
)

// ErrorCode represents an error code
type ErrorCode string

// Common error codes following RESTful API conventions
const (
	// Client errors (4xx)
	CodeBadRequest       ErrorCode = "BAD_REQUEST"
	CodeUnauthorized     ErrorCode = "UNAUTHORIZED"
	CodeForbidden        ErrorCode = "FORBIDDEN"
	CodeNotFound         ErrorCode = "NOT_FOUND"
	CodeConflict         ErrorCode = "CONFLICT"
	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"

	// Server errors (5xx)
	CodeInternal      ErrorCode = "INTERNAL_ERROR"
	CodeDatabaseError ErrorCode = "DATABASE_ERROR"

	// Business logic errors
	CodeRecipeNotFound    ErrorCode = "RECIPE_NOT_FOUND"
	CodeNotOwner          ErrorCode = "NOT_OWNER"
	CodeInsufficientStock ErrorCode = "INSUFFICIENT_STOCK"
	CodeItemNotFound      ErrorCode = "ITEM_NOT_FOUND"
	CodeNothingToDeduct   ErrorCode = "NOTHING_TO_DEDUCT"
	CodeNothingToUndo     ErrorCode = "NOTHING_TO_UNDO"
)

// AppError represents an application error with structured information
type AppError struct {
	Code     ErrorCode              `json:"code"`
	Message  string                 `json:"message"`
	Details  string                 `json:"details,omitempty"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
	Cause    error                  `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// StatusCode returns the appropriate HTTP status code
func (e *AppError) StatusCode() int {
	switch e.Code {
	case CodeBadRequest, CodeValidationFailed, CodeNothingToDeduct, CodeNothingToUndo:
		return http.StatusBadRequest
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeForbidden, CodeNotOwner:
		return http.StatusForbidden
	case CodeNotFound, CodeRecipeNotFound, CodeItemNotFound:
		return http.StatusNotFound
	case CodeConflict, CodeInsufficientStock:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Retryable reports whether the caller may retry the operation. Only
// storage failures are retryable; gate violations are final.
func (e *AppError) Retryable() bool {
	return e.Code == CodeDatabaseError || e.Code == CodeInternal
}

// WithMetadata adds metadata to the error
func (e *AppError) WithMetadata(key string, value interface{}) *AppError {
	if e.Metadata == nil {
		e.Metadata = make(map[string]interface{})
	}
	e.Metadata[key] = value
	return e
}

// WithCause adds a cause error
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// NewAppError creates a new application error
func NewAppError(code ErrorCode, message, details string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Details: details,
	}
}

// NewValidationError creates a validation error
func NewValidationError(details string) *AppError {
	return NewAppError(CodeValidationFailed, "Validation failed", details)
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError(message string) *AppError {
	if message == "" {
		message = "Authentication required"
	}
	return NewAppError(CodeUnauthorized, message, "")
}

// NewInternalError creates an internal server error
func NewInternalError(message string) *AppError {
	if message == "" {
		message = "An unexpected error occurred"
	}
	return NewAppError(CodeInternal, message, "")
}

// NewDatabaseError creates a retryable database error
func NewDatabaseError(operation string, cause error) *AppError {
	return NewAppError(
		CodeDatabaseError,
		"Database operation failed",
		fmt.Sprintf("Failed to %s", operation),
	).WithCause(cause)
}

// NewRecipeNotFoundError creates a recipe not found error
func NewRecipeNotFoundError(recipeID string) *AppError {
	return NewAppError(
		CodeRecipeNotFound,
		"Recipe not found",
		fmt.Sprintf("Recipe with ID %s does not exist", recipeID),
	).WithMetadata("recipe_id", recipeID)
}

// NewNotOwnerError creates an ownership gate error
func NewNotOwnerError(recipeID string) *AppError {
	return NewAppError(
		CodeNotOwner,
		"Not the recipe owner",
		"Only the recipe owner can confirm use of its ingredients",
	).WithMetadata("recipe_id", recipeID)
}

// NewInsufficientStockError creates an insufficient stock error naming
// the deficient ingredient
func NewInsufficientStockError(ingredient string) *AppError {
	return NewAppError(
		CodeInsufficientStock,
		"Insufficient stock",
		fmt.Sprintf("Not enough %s in the pantry", ingredient),
	).WithMetadata("ingredient", ingredient)
}

// NewItemNotFoundError creates a missing pantry item error
func NewItemNotFoundError(ingredient string) *AppError {
	return NewAppError(
		CodeItemNotFound,
		"Pantry item not found",
		fmt.Sprintf("No pantry item matches %s", ingredient),
	).WithMetadata("ingredient", ingredient)
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) *AppError {
	if err == nil {
		return nil
	}
	if appErr, ok := err.(*AppError); ok {
		return &AppError{
			Code:     appErr.Code,
			Message:  message,
			Details:  appErr.Error(),
			Metadata: appErr.Metadata,
			Cause:    appErr,
		}
	}
	return NewAppError(CodeInternal, message, err.Error()).WithCause(err)
}

// FromDomain maps pantry domain sentinels onto coded application
// errors, preserving the original error for errors.Is checks.
func FromDomain(err error) *AppError {
	if err == nil {
		return nil
	}
	if appErr, ok := err.(*AppError); ok {
		return appErr
	}
	switch {
	case stderrors.Is(err, pantry.ErrRecipeNotFound):
		return NewAppError(CodeRecipeNotFound, "Recipe not found", err.Error()).WithCause(err)
	case stderrors.Is(err, pantry.ErrNotOwner):
		return NewAppError(CodeNotOwner, "Not the recipe owner", err.Error()).WithCause(err)
	case stderrors.Is(err, pantry.ErrInsufficientStock):
		return NewAppError(CodeInsufficientStock, "Insufficient stock", err.Error()).WithCause(err)
	case stderrors.Is(err, pantry.ErrItemMissing):
		return NewAppError(CodeItemNotFound, "Pantry item not found", err.Error()).WithCause(err)
	case stderrors.Is(err, pantry.ErrNothingToDeduct):
		return NewAppError(CodeNothingToDeduct, "Nothing to deduct", err.Error()).WithCause(err)
	case stderrors.Is(err, pantry.ErrNothingToUndo):
		return NewAppError(CodeNothingToUndo, "Nothing to undo", err.Error()).WithCause(err)
	default:
		return NewDatabaseError("complete pantry operation", err)
	}
}
