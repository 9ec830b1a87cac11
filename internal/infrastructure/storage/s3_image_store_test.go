package storage

import (
	"strings"
	"testing"

	infraconfig "github.com/retail/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func validStorageConfig() *infraconfig.StorageConfig {
	return &infraconfig.StorageConfig{
		Endpoint:  "http://localhost:9000",
		Region:    "ap-southeast-1",
		Bucket:    "test-bucket",
		AccessKey: "test-access",
		SecretKey: "test-secret",
		PathStyle: true,
	}
}

func TestNewS3ImageStore(t *testing.T) {
	t.Run("creates store with valid config", func(t *testing.T) {
		store, err := NewS3ImageStore(validStorageConfig(), WithLogger(zap.NewNop()))
		require.NoError(t, err)
		assert.Equal(t, "test-bucket", store.GetBucket())
	})

	t.Run("requires config", func(t *testing.T) {
		_, err := NewS3ImageStore(nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "configuration is required")
	})

	t.Run("requires bucket", func(t *testing.T) {
		cfg := validStorageConfig()
		cfg.Bucket = ""
		_, err := NewS3ImageStore(cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "bucket is required")
	})

	t.Run("requires access key", func(t *testing.T) {
		cfg := validStorageConfig()
		cfg.AccessKey = ""
		_, err := NewS3ImageStore(cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "access key is required")
	})

	t.Run("requires secret key", func(t *testing.T) {
		cfg := validStorageConfig()
		cfg.SecretKey = ""
		_, err := NewS3ImageStore(cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "secret key is required")
	})

	t.Run("derives public URL from endpoint and bucket", func(t *testing.T) {
		store, err := NewS3ImageStore(validStorageConfig())
		require.NoError(t, err)
		assert.Equal(t, "http://localhost:9000/test-bucket", store.publicURL)
	})

	t.Run("explicit public URL wins and is normalized", func(t *testing.T) {
		cfg := validStorageConfig()
		cfg.PublicURL = "https://cdn.example.com/proofs/"
		store, err := NewS3ImageStore(cfg)
		require.NoError(t, err)
		assert.Equal(t, "https://cdn.example.com/proofs", store.publicURL)
	})

	t.Run("defaults to AWS URL without endpoint", func(t *testing.T) {
		cfg := validStorageConfig()
		cfg.Endpoint = ""
		store, err := NewS3ImageStore(cfg)
		require.NoError(t, err)
		assert.Equal(t, "https://test-bucket.s3.ap-southeast-1.amazonaws.com", store.publicURL)
	})
}

func TestPaymentProofKey(t *testing.T) {
	t.Run("keys are grouped by order number", func(t *testing.T) {
		key := paymentProofKey("ORD000042", "image/png")
		assert.True(t, strings.HasPrefix(key, "payments/ORD000042/"))
		assert.True(t, strings.HasSuffix(key, ".png"))
	})

	t.Run("keys are unique per upload", func(t *testing.T) {
		first := paymentProofKey("ORD000042", "image/png")
		second := paymentProofKey("ORD000042", "image/png")
		assert.NotEqual(t, first, second)
	})
}

func TestExtensionFor(t *testing.T) {
	tests := []struct {
		contentType string
		want        string
	}{
		{"image/png", ".png"},
		{"image/jpeg", ".jpg"},
		{"image/jpg", ".jpg"},
		{"IMAGE/PNG", ".png"},
		{"image/gif", ".gif"},
		{"image/webp", ".webp"},
		{"application/octet-stream", ".bin"},
		{"", ".bin"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, extensionFor(tt.contentType), tt.contentType)
	}
}
