// Package apierror provides standardized error response structures for the API.
// All errors returned to clients go through this package to ensure consistency
// and to prevent leaking internal details (stack traces, DB errors, etc.).
package apierror

import "net/http"

// Machine-readable error codes returned in the response body.
const (
	CodeValidation        = "VALIDATION_ERROR"
	CodePaymentMismatch   = "PAYMENT_MISMATCH"
	CodeInsufficientStock = "INSUFFICIENT_STOCK"
	CodeInvalidState      = "INVALID_STATE"
	CodeNotFound          = "NOT_FOUND"
	CodeAuthorization     = "AUTHORIZATION_ERROR"
	CodeAuthentication    = "AUTHENTICATION_ERROR"
)

// Error is the canonical error envelope for all 4xx/5xx HTTP responses.
// Status is the HTTP status to respond with; it is never serialized.
type Error struct {
	Code   string `json:"code,omitempty"`
	Detail string `json:"detail"`
	Status int    `json:"-"`
}

func (e *Error) Error() string { return e.Detail }

func New(msg string) *Error {
	return &Error{Detail: msg, Status: http.StatusBadRequest}
}

func Validation(msg string) *Error {
	return &Error{Code: CodeValidation, Detail: msg, Status: http.StatusBadRequest}
}

func PaymentMismatch(msg string) *Error {
	return &Error{Code: CodePaymentMismatch, Detail: msg, Status: http.StatusBadRequest}
}

func InsufficientStock(msg string) *Error {
	return &Error{Code: CodeInsufficientStock, Detail: msg, Status: http.StatusConflict}
}

func InvalidState(msg string) *Error {
	return &Error{Code: CodeInvalidState, Detail: msg, Status: http.StatusConflict}
}

func NotFound(msg string) *Error {
	return &Error{Code: CodeNotFound, Detail: msg, Status: http.StatusNotFound}
}

func Authorization(msg string) *Error {
	return &Error{Code: CodeAuthorization, Detail: msg, Status: http.StatusForbidden}
}

func Authentication(msg string) *Error {
	return &Error{Code: CodeAuthentication, Detail: msg, Status: http.StatusUnauthorized}
}

// ValidationFields wraps multiple field errors from request binding.
type ValidationFields struct {
	Code   string            `json:"code"`
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationFields {
	return &ValidationFields{Code: CodeValidation, Detail: "Validation failed", Fields: fields}
}
