package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/retail/backend/internal/domain/shared"
)

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	// FindByID finds a product by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindByIDs finds multiple products by their IDs
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Product, error)

	// FindAll finds all products matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Product, error)

	// FindByStatus finds products by status
	FindByStatus(ctx context.Context, status ProductStatus, filter shared.Filter) ([]Product, error)

	// Save creates or updates a product
	Save(ctx context.Context, product *Product) error

	// SaveWithLock updates a product guarded by its version column
	SaveWithLock(ctx context.Context, product *Product) error

	// AdjustGlobalStock atomically changes the unallocated pool by delta.
	// A negative delta only succeeds when the pool holds at least -delta units.
	// Returns shared.ErrInsufficientGlobalStock otherwise.
	AdjustGlobalStock(ctx context.Context, id uuid.UUID, delta int64) error

	// Delete deletes a product
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts products matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
