package dto

import "net/http"

// General error codes
const (
	ErrCodeInternal   = "INTERNAL_ERROR"
	ErrCodeBadRequest = "BAD_REQUEST"
	ErrCodeValidation = "VALIDATION_ERROR"
)

// Auth error codes
const (
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeForbidden    = "FORBIDDEN"
	ErrCodeTokenExpired = "TOKEN_EXPIRED"
	ErrCodeTokenInvalid = "INVALID_TOKEN"
)

// Resource error codes
const (
	ErrCodeNotFound = "NOT_FOUND"
	ErrCodeConflict = "CONFLICT"
)

// ErrorCodeHTTPStatus maps domain error codes to HTTP status codes.
// Codes not listed here fall back to 500.
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:   http.StatusInternalServerError,
	ErrCodeBadRequest: http.StatusBadRequest,
	ErrCodeValidation: http.StatusBadRequest,
	"INVALID_INPUT":   http.StatusBadRequest,

	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeTokenExpired: http.StatusUnauthorized,
	ErrCodeTokenInvalid: http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,

	ErrCodeNotFound:      http.StatusNotFound,
	"PRODUCT_NOT_FOUND":  http.StatusNotFound,
	"ORDER_NOT_FOUND":    http.StatusNotFound,
	"LOCATION_NOT_FOUND": http.StatusNotFound,

	ErrCodeConflict:          http.StatusConflict,
	"ALREADY_EXISTS":         http.StatusConflict,
	"DUPLICATE_CODE":         http.StatusConflict,
	"CONCURRENCY_CONFLICT":   http.StatusConflict,
	"OPTIMISTIC_LOCK_FAILED": http.StatusConflict,
	"HAS_DEPENDENT_ORDERS":   http.StatusConflict,

	// Business rule violations -> 422 Unprocessable Entity
	"PRODUCT_INACTIVE":                 http.StatusUnprocessableEntity,
	"INSUFFICIENT_STOCK":               http.StatusUnprocessableEntity,
	"INSUFFICIENT_GLOBAL_STOCK":        http.StatusUnprocessableEntity,
	"INSUFFICIENT_LOCATION_STOCK":      http.StatusUnprocessableEntity,
	"SAME_LOCATION":                    http.StatusUnprocessableEntity,
	"NO_LOCATION_HAS_SUFFICIENT_STOCK": http.StatusUnprocessableEntity,
	"NO_ACTIVE_DELIVERY_ADDRESS":       http.StatusUnprocessableEntity,
	"INVALID_TRANSITION":               http.StatusUnprocessableEntity,

	"STORAGE_UNAVAILABLE": http.StatusServiceUnavailable,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Returns 500 Internal Server Error if the error code is not found.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
