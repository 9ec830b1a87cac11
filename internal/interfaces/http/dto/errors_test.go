package dto

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code string
		want int
	}{
		{ErrCodeNotFound, http.StatusNotFound},
		{"PRODUCT_NOT_FOUND", http.StatusNotFound},
		{"ORDER_NOT_FOUND", http.StatusNotFound},
		{ErrCodeUnauthorized, http.StatusUnauthorized},
		{ErrCodeTokenExpired, http.StatusUnauthorized},
		{ErrCodeForbidden, http.StatusForbidden},
		{"DUPLICATE_CODE", http.StatusConflict},
		{"OPTIMISTIC_LOCK_FAILED", http.StatusConflict},
		{"HAS_DEPENDENT_ORDERS", http.StatusConflict},
		{"INSUFFICIENT_STOCK", http.StatusUnprocessableEntity},
		{"INSUFFICIENT_GLOBAL_STOCK", http.StatusUnprocessableEntity},
		{"NO_LOCATION_HAS_SUFFICIENT_STOCK", http.StatusUnprocessableEntity},
		{"INVALID_TRANSITION", http.StatusUnprocessableEntity},
		{"SAME_LOCATION", http.StatusUnprocessableEntity},
		{"STORAGE_UNAVAILABLE", http.StatusServiceUnavailable},
		{ErrCodeValidation, http.StatusBadRequest},
		{"INVALID_INPUT", http.StatusBadRequest},
		{"SOMETHING_NOBODY_MAPPED", http.StatusInternalServerError},
		{"", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, GetHTTPStatus(tt.code), tt.code)
	}
}

func TestNewSuccessResponseWithMeta(t *testing.T) {
	t.Run("computes total pages with remainder", func(t *testing.T) {
		resp := NewSuccessResponseWithMeta([]string{"a"}, 21, 1, 10)
		assert.True(t, resp.Success)
		assert.Equal(t, 3, resp.Meta.TotalPages)
		assert.Equal(t, int64(21), resp.Meta.Total)
	})

	t.Run("computes total pages without remainder", func(t *testing.T) {
		resp := NewSuccessResponseWithMeta(nil, 20, 2, 10)
		assert.Equal(t, 2, resp.Meta.TotalPages)
		assert.Equal(t, 2, resp.Meta.Page)
	})
}

func TestNewErrorResponseWithRequestID(t *testing.T) {
	resp := NewErrorResponseWithRequestID("NOT_FOUND", "Order not found", "req-1")
	assert.False(t, resp.Success)
	assert.Equal(t, "NOT_FOUND", resp.Error.Code)
	assert.Equal(t, "Order not found", resp.Error.Message)
	assert.Equal(t, "req-1", resp.Error.RequestID)
}

func TestNewValidationErrorResponse(t *testing.T) {
	resp := NewValidationErrorResponse("Request validation failed", "req-2", []ValidationDetail{
		{Field: "quantity", Message: "Must be greater than 0"},
	})
	assert.False(t, resp.Success)
	assert.Equal(t, ErrCodeValidation, resp.Error.Code)
	assert.Len(t, resp.Error.Details, 1)
	assert.Equal(t, "quantity", resp.Error.Details[0].Field)
}
