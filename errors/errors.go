package errors

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Error represents an application error with an HTTP status code.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Err
}

// JSON returns the error as a JSON string
func (e *Error) JSON() string {
	b, _ := json.Marshal(e)
	return string(b)
}

// New creates a new Error
func New(code int, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common error types
var (
	ErrBadRequest     = New(http.StatusBadRequest, "Bad request", nil)
	ErrUnauthorized   = New(http.StatusUnauthorized, "Unauthorized", nil)
	ErrForbidden      = New(http.StatusForbidden, "Forbidden", nil)
	ErrNotFound       = New(http.StatusNotFound, "Not found", nil)
	ErrConflict       = New(http.StatusConflict, "Conflict", nil)
	ErrInternalServer = New(http.StatusInternalServerError, "Internal server error", nil)
)

// Validation error types
var (
	ErrValidation   = New(http.StatusBadRequest, "Validation error", nil)
	ErrInvalidInput = New(http.StatusBadRequest, "Invalid input", nil)
)

// Business logic error types
var (
	ErrInsufficientStock  = New(http.StatusConflict, "Insufficient stock", nil)
	ErrCategoryInUse      = New(http.StatusConflict, "Category still referenced by products", nil)
	ErrSlugTaken          = New(http.StatusConflict, "Slug already in use", nil)
	ErrAreaUnavailable    = New(http.StatusBadRequest, "Shipping area unavailable", nil)
	ErrInvalidOrderStatus = New(http.StatusBadRequest, "Invalid order status", nil)
	ErrInvalidStockValue  = New(http.StatusBadRequest, "Stock value must be a non-negative integer", nil)
	ErrAdjustmentConflict = New(http.StatusConflict, "Concurrent stock adjustment, retry", nil)
	ErrInvalidCredentials = New(http.StatusUnauthorized, "Invalid credentials", nil)
	ErrSessionExpired     = New(http.StatusUnauthorized, "Session expired", nil)
)
