package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name string
		cfg  *Config
	}{
		{"console to stdout", &Config{Level: "debug", Format: "console", Output: "stdout"}},
		{"json to stderr", &Config{Level: "info", Format: "json", Output: "stderr"}},
		{"empty config falls back to defaults", &Config{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, err := New(tt.cfg)
			require.NoError(t, err)
			assert.NotNil(t, log)
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		level    string
		expected zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"DEBUG", zapcore.DebugLevel},
		{"info", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"warning", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"fatal", zapcore.FatalLevel},
		{"bogus", zapcore.InfoLevel},
		{"", zapcore.InfoLevel},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, parseLevel(tt.level), "level %q", tt.level)
	}
}

func TestOpenSink_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.log")

	sink := openSink(path)
	require.NotNil(t, sink)

	_, err := sink.Write([]byte("log line\n"))
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "log line")
}

func TestOpenSink_UnwritablePathFallsBack(t *testing.T) {
	sink := openSink(filepath.Join(t.TempDir(), "missing", "nested", "server.log"))
	assert.NotNil(t, sink)
}

func TestJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(zapcore.EncoderConfig{
			LevelKey:    "level",
			MessageKey:  "msg",
			EncodeLevel: zapcore.LowercaseLevelEncoder,
		}),
		zapcore.AddSync(&buf),
		zapcore.InfoLevel,
	)
	log := zap.New(core)

	log.Debug("filtered out")
	log.Info("order created", zap.String("order_number", "ORD000001"))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "order created", entry["msg"])
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "ORD000001", entry["order_number"])
}

func TestSync(t *testing.T) {
	log, err := New(&Config{Level: "info", Format: "json", Output: "stdout"})
	require.NoError(t, err)

	// Sync on stdout may fail on some platforms; it just must not panic.
	assert.NotPanics(t, func() {
		_ = Sync(log)
	})
}
