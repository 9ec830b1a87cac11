// Package storage provides object storage implementations for file operations.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"
	orderapp "github.com/retail/backend/internal/application/order"
	infraconfig "github.com/retail/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

var _ orderapp.ImageStore = (*S3ImageStore)(nil)

// S3ImageStore stores payment proof images in an S3 bucket. It is compatible
// with any S3-compatible storage (AWS S3, MinIO, etc.)
type S3ImageStore struct {
	client    *s3.Client
	bucket    string
	publicURL string
	logger    *zap.Logger
}

// S3ImageStoreOption is a functional option for configuring S3ImageStore
type S3ImageStoreOption func(*S3ImageStore)

// WithLogger sets a custom logger for S3ImageStore
func WithLogger(logger *zap.Logger) S3ImageStoreOption {
	return func(s *S3ImageStore) {
		s.logger = logger
	}
}

// NewS3ImageStore creates a new S3ImageStore from configuration
func NewS3ImageStore(cfg *infraconfig.StorageConfig, opts ...S3ImageStoreOption) (*S3ImageStore, error) {
	if cfg == nil {
		return nil, errors.New("storage configuration is required")
	}
	if cfg.Bucket == "" {
		return nil, errors.New("storage bucket is required")
	}
	if cfg.AccessKey == "" {
		return nil, errors.New("storage access key is required")
	}
	if cfg.SecretKey == "" {
		return nil, errors.New("storage secret key is required")
	}

	awsCfg, err := config.LoadDefaultConfig(context.Background(),
		config.WithRegion(cfg.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"", // session token (not used for static credentials)
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.PathStyle
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})

	publicURL := cfg.PublicURL
	if publicURL == "" {
		if cfg.Endpoint != "" {
			publicURL = strings.TrimSuffix(cfg.Endpoint, "/") + "/" + cfg.Bucket
		} else {
			publicURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
		}
	}

	store := &S3ImageStore{
		client:    client,
		bucket:    cfg.Bucket,
		publicURL: strings.TrimSuffix(publicURL, "/"),
		logger:    zap.NewNop(),
	}

	for _, opt := range opts {
		opt(store)
	}

	return store, nil
}

// EnsureBucket creates the bucket if it doesn't exist.
// Call this during application startup to ensure the bucket is ready.
func (s *S3ImageStore) EnsureBucket(ctx context.Context) error {
	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(s.bucket),
	})
	if err == nil {
		return nil
	}

	var notFound *types.NotFound
	var noSuchBucket *types.NoSuchBucket
	if !errors.As(err, &notFound) && !errors.As(err, &noSuchBucket) {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}

	s.logger.Info("Creating storage bucket", zap.String("bucket", s.bucket))
	_, err = s.client.CreateBucket(ctx, &s3.CreateBucketInput{
		Bucket: aws.String(s.bucket),
	})
	if err != nil {
		// Another instance may have created the bucket in the meantime
		var alreadyOwned *types.BucketAlreadyOwnedByYou
		if errors.As(err, &alreadyOwned) {
			return nil
		}
		return fmt.Errorf("failed to create bucket: %w", err)
	}

	s.logger.Info("Storage bucket created successfully", zap.String("bucket", s.bucket))
	return nil
}

// StorePaymentProof uploads a payment proof image and returns its public URL.
// Objects are keyed under the order number so repeated uploads for the same
// order stay grouped together.
func (s *S3ImageStore) StorePaymentProof(ctx context.Context, orderNumber string, data []byte, contentType string) (string, error) {
	if orderNumber == "" {
		return "", errors.New("order number is required")
	}
	if len(data) == 0 {
		return "", errors.New("image data is required")
	}

	key := paymentProofKey(orderNumber, contentType)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload payment proof: %w", err)
	}

	s.logger.Debug("stored payment proof",
		zap.String("order_number", orderNumber),
		zap.String("key", key),
		zap.Int("bytes", len(data)),
	)

	return s.publicURL + "/" + key, nil
}

// DeleteObject deletes an object from storage
func (s *S3ImageStore) DeleteObject(ctx context.Context, key string) error {
	if key == "" {
		return errors.New("storage key is required")
	}

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete object: %w", err)
	}

	return nil
}

// GetBucket returns the bucket name
func (s *S3ImageStore) GetBucket() string {
	return s.bucket
}

// paymentProofKey builds a unique object key for a payment proof upload
func paymentProofKey(orderNumber, contentType string) string {
	return fmt.Sprintf("payments/%s/%s%s",
		url.PathEscape(orderNumber), uuid.New().String(), extensionFor(contentType))
}

// extensionFor maps a content type to a file extension
func extensionFor(contentType string) string {
	switch strings.ToLower(contentType) {
	case "image/png":
		return ".png"
	case "image/jpeg", "image/jpg":
		return ".jpg"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ".bin"
	}
}
