package logger

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func requestLog(t *testing.T, recorded *observer.ObservedLogs) observer.LoggedEntry {
	t.Helper()
	for _, entry := range recorded.All() {
		if entry.Message == "HTTP Request" {
			return entry
		}
	}
	t.Fatal("no HTTP Request log entry")
	return observer.LoggedEntry{}
}

func serveWithMiddleware(status int, path string, setup ...gin.HandlerFunc) *observer.ObservedLogs {
	core, recorded := observer.New(zapcore.InfoLevel)
	router := gin.New()
	for _, mw := range setup {
		router.Use(mw)
	}
	router.Use(GinMiddleware(zap.New(core)))
	router.GET("/orders", func(c *gin.Context) {
		c.JSON(status, gin.H{})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", path, nil)
	req.Header.Set("User-Agent", "checkout-client/1.0")
	router.ServeHTTP(w, req)
	return recorded
}

func TestGinMiddleware_FieldsAndLevels(t *testing.T) {
	t.Run("2xx logs at info with request fields", func(t *testing.T) {
		recorded := serveWithMiddleware(http.StatusOK, "/orders")
		entry := requestLog(t, recorded)

		assert.Equal(t, zapcore.InfoLevel, entry.Level)

		fields := make(map[string]zapcore.Field)
		for _, f := range entry.Context {
			fields[f.Key] = f
		}
		for _, key := range []string{"status", "latency", "client_ip", "user_agent", "method", "path"} {
			assert.Contains(t, fields, key)
		}
		assert.Equal(t, "/orders", fields["path"].String)
	})

	t.Run("4xx logs at warn", func(t *testing.T) {
		recorded := serveWithMiddleware(http.StatusConflict, "/orders")
		assert.Equal(t, zapcore.WarnLevel, requestLog(t, recorded).Level)
	})

	t.Run("5xx logs at error", func(t *testing.T) {
		recorded := serveWithMiddleware(http.StatusInternalServerError, "/orders")
		assert.Equal(t, zapcore.ErrorLevel, requestLog(t, recorded).Level)
	})

	t.Run("query string recorded when present", func(t *testing.T) {
		recorded := serveWithMiddleware(http.StatusOK, "/orders?status=PAID&page=1")
		entry := requestLog(t, recorded)

		found := false
		for _, f := range entry.Context {
			if f.Key == "query" {
				found = true
				assert.Contains(t, f.String, "status=PAID")
			}
		}
		assert.True(t, found, "query should be in log fields")
	})

	t.Run("request id carried from context", func(t *testing.T) {
		recorded := serveWithMiddleware(http.StatusOK, "/orders", func(c *gin.Context) {
			c.Set("request_id", "req-42")
			c.Next()
		})
		entry := requestLog(t, recorded)

		found := false
		for _, f := range entry.Context {
			if f.Key == "request_id" {
				found = true
				assert.Equal(t, "req-42", f.String)
			}
		}
		assert.True(t, found, "request_id should be in log fields")
	})
}

func TestRecovery(t *testing.T) {
	core, recorded := observer.New(zapcore.ErrorLevel)

	router := gin.New()
	router.Use(Recovery(zap.New(core)))
	router.GET("/panic", func(c *gin.Context) {
		panic("boom")
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/panic", nil)
	assert.NotPanics(t, func() {
		router.ServeHTTP(w, req)
	})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	require.NotEmpty(t, recorded.All())
	assert.Equal(t, "Panic recovered", recorded.All()[0].Message)
}

func TestGetGinLogger(t *testing.T) {
	t.Run("returns request-scoped logger", func(t *testing.T) {
		core, _ := observer.New(zapcore.InfoLevel)

		var got *zap.Logger
		router := gin.New()
		router.Use(GinMiddleware(zap.New(core)))
		router.GET("/orders", func(c *gin.Context) {
			got = GetGinLogger(c)
			c.Status(http.StatusOK)
		})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", "/orders", nil))
		assert.NotNil(t, got)
	})

	t.Run("returns no-op logger outside middleware", func(t *testing.T) {
		var got *zap.Logger
		router := gin.New()
		router.GET("/orders", func(c *gin.Context) {
			got = GetGinLogger(c)
			c.Status(http.StatusOK)
		})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", "/orders", nil))

		require.NotNil(t, got)
		assert.NotPanics(t, func() { got.Info("noop") })
	})
}
