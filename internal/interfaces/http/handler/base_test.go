package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/retail/backend/internal/domain/shared"
	"github.com/retail/backend/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/test", nil)
	return c, w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestBaseHandler_Success(t *testing.T) {
	h := &BaseHandler{}
	c, w := newTestContext()

	h.Success(c, gin.H{"value": 42})

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	assert.True(t, resp.Success)
	assert.Nil(t, resp.Error)
}

func TestBaseHandler_SuccessWithMeta(t *testing.T) {
	h := &BaseHandler{}
	c, w := newTestContext()

	h.SuccessWithMeta(c, []string{"a", "b"}, 42, 2, 20)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, int64(42), resp.Meta.Total)
	assert.Equal(t, 3, resp.Meta.TotalPages)
}

func TestBaseHandler_HandleError(t *testing.T) {
	h := &BaseHandler{}

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "not found",
			err:        shared.ErrOrderNotFound,
			wantStatus: http.StatusNotFound,
			wantCode:   "ORDER_NOT_FOUND",
		},
		{
			name:       "business rule violation",
			err:        shared.ErrNoLocationHasSufficientStock,
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   "NO_LOCATION_HAS_SUFFICIENT_STOCK",
		},
		{
			name:       "conflict",
			err:        shared.ErrDuplicateCode,
			wantStatus: http.StatusConflict,
			wantCode:   "DUPLICATE_CODE",
		},
		{
			name:       "wrapped domain error",
			err:        fmt.Errorf("placing order: %w", shared.ErrInsufficientStock),
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   "INSUFFICIENT_STOCK",
		},
		{
			name:       "storage outage",
			err:        shared.ErrStorageUnavailable,
			wantStatus: http.StatusServiceUnavailable,
			wantCode:   "STORAGE_UNAVAILABLE",
		},
		{
			name:       "unknown error",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   dto.ErrCodeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newTestContext()
			h.HandleError(c, tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)
			resp := decodeResponse(t, w)
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.wantCode, resp.Error.Code)
		})
	}
}

func TestBaseHandler_HandleError_NilIsNoop(t *testing.T) {
	h := &BaseHandler{}
	c, w := newTestContext()

	h.HandleError(c, nil)
	assert.Empty(t, w.Body.String())
}

func TestBaseHandler_ErrorWithCode(t *testing.T) {
	h := &BaseHandler{}
	c, w := newTestContext()
	c.Set("request_id", "req-42")

	h.ErrorWithCode(c, "PRODUCT_INACTIVE", "Product is not for sale")

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "req-42", resp.Error.RequestID)
}
