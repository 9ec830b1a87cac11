package logger

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestWithContext(t *testing.T) {
	logger := zap.NewNop()

	ctx := context.Background()
	ctxWithLogger := WithContext(ctx, logger)

	retrievedLogger := FromContext(ctxWithLogger)
	assert.NotNil(t, retrievedLogger)
}

func TestFromContext_NotFound(t *testing.T) {
	ctx := context.Background()
	logger := FromContext(ctx)

	// Should return a no-op logger
	assert.NotNil(t, logger)
}

func TestWithRequestID(t *testing.T) {
	logger := zap.NewNop()

	ctx := context.Background()
	requestID := "req-123"

	newCtx, newLogger := WithRequestID(ctx, logger, requestID)

	assert.NotNil(t, newCtx)
	assert.NotNil(t, newLogger)
	assert.Equal(t, requestID, GetRequestID(newCtx))
}

func TestWithUserID(t *testing.T) {
	logger := zap.NewNop()

	ctx := context.Background()
	userID := "user-789"

	newCtx, newLogger := WithUserID(ctx, logger, userID)

	assert.NotNil(t, newCtx)
	assert.NotNil(t, newLogger)
	assert.Equal(t, userID, GetUserID(newCtx))
}

func TestGetRequestID_NotFound(t *testing.T) {
	ctx := context.Background()
	requestID := GetRequestID(ctx)
	assert.Empty(t, requestID)
}

func TestGetUserID_NotFound(t *testing.T) {
	ctx := context.Background()
	userID := GetUserID(ctx)
	assert.Empty(t, userID)
}

func TestContextChaining(t *testing.T) {
	logger := zap.NewNop()

	ctx := context.Background()

	// Chain multiple context enrichments
	ctx, logger = WithRequestID(ctx, logger, "req-1")
	ctx, logger = WithUserID(ctx, logger, "user-1")

	assert.Equal(t, "req-1", GetRequestID(ctx))
	assert.Equal(t, "user-1", GetUserID(ctx))
	assert.NotNil(t, logger)
}

func TestContextKeys(t *testing.T) {
	// Verify context keys are unique
	assert.NotEqual(t, LoggerKey, RequestIDKey)
	assert.NotEqual(t, RequestIDKey, UserIDKey)
	assert.NotEqual(t, LoggerKey, UserIDKey)
}

func TestFromContext_WrongType(t *testing.T) {
	ctx := context.WithValue(context.Background(), LoggerKey, "not a logger")
	logger := FromContext(ctx)

	// Should return a no-op logger when value is wrong type
	assert.NotNil(t, logger)
	// The no-op logger should not panic when used
	logger.Info("test")
}

func TestLoggerFromEnrichedContext(t *testing.T) {
	var buf bytes.Buffer
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
		zapcore.AddSync(&buf),
		zapcore.DebugLevel,
	)
	baseLogger := zap.New(core)

	ctx := context.Background()
	ctx, _ = WithRequestID(ctx, baseLogger, "req-test")

	// The logger stored in context carries the request id field.
	FromContext(ctx).Info("enriched")
	assert.Contains(t, buf.String(), `"request_id":"req-test"`)
}

func TestMultipleWithRequestID(t *testing.T) {
	logger := zap.NewNop()

	ctx := context.Background()

	// First call
	ctx, _ = WithRequestID(ctx, logger, "first-id")
	assert.Equal(t, "first-id", GetRequestID(ctx))

	// Second call should override
	ctx, _ = WithRequestID(ctx, logger, "second-id")
	assert.Equal(t, "second-id", GetRequestID(ctx))
}

func TestNopLoggerDoesNotPanic(t *testing.T) {
	ctx := context.Background()
	logger := FromContext(ctx)

	// These should not panic
	assert.NotPanics(t, func() {
		logger.Info("test message")
		logger.Debug("debug message")
		logger.Warn("warn message")
		logger.Error("error message")
		logger.With(zap.String("key", "value")).Info("with field")
	})
}

func TestL_EnrichesWithContextFields(t *testing.T) {
	// Create a buffer to capture log output
	var buf bytes.Buffer
	encoder := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	core := zapcore.NewCore(encoder, zapcore.AddSync(&buf), zapcore.DebugLevel)
	baseLogger := zap.New(core)

	ctx := context.Background()
	ctx = context.WithValue(ctx, RequestIDKey, "req-123")
	ctx = context.WithValue(ctx, UserIDKey, "user-789")
	ctx = WithContext(ctx, baseLogger)

	L(ctx).Info("test message", zap.String("extra_field", "extra_value"))

	output := buf.String()
	assert.Contains(t, output, `"request_id":"req-123"`)
	assert.Contains(t, output, `"user_id":"user-789"`)
	assert.Contains(t, output, `"extra_field":"extra_value"`)
	assert.Contains(t, output, `"msg":"test message"`)
}

func TestL_EmptyContextFields(t *testing.T) {
	var buf bytes.Buffer
	encoder := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	core := zapcore.NewCore(encoder, zapcore.AddSync(&buf), zapcore.DebugLevel)
	baseLogger := zap.New(core)

	ctx := WithContext(context.Background(), baseLogger)
	L(ctx).Info("test")

	// Empty context fields should not be added to the entry
	output := buf.String()
	assert.Contains(t, output, `"msg":"test"`)
	assert.NotContains(t, output, `"request_id":""`)
	assert.NotContains(t, output, `"user_id":""`)
}

func TestL_NoLoggerInContext(t *testing.T) {
	// Falls back to the no-op logger
	assert.NotPanics(t, func() {
		L(context.Background()).Info("test")
	})
}
