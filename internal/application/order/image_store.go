package order

import "context"

// ImageStore persists payment proof images and returns a durable URL.
// The S3 implementation lives in infrastructure/storage.
type ImageStore interface {
	// StorePaymentProof uploads the image bytes under a key derived from the
	// order number and returns the public URL of the stored object.
	StorePaymentProof(ctx context.Context, orderNumber string, data []byte, contentType string) (string, error)
}
