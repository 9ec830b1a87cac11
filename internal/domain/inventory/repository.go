package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/retail/backend/internal/domain/shared"
)

// AllocationRepository defines the interface for allocation persistence
type AllocationRepository interface {
	// FindByID finds an allocation by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Allocation, error)

	// FindByProductAndLocation finds the allocation for a (product, location) pair
	FindByProductAndLocation(ctx context.Context, productID, locationID uuid.UUID) (*Allocation, error)

	// GetOrCreate returns the allocation for the pair, creating an empty row
	// when none exists yet
	GetOrCreate(ctx context.Context, productID, locationID uuid.UUID) (*Allocation, error)

	// FindByLocation lists allocations held at a sales location
	FindByLocation(ctx context.Context, locationID uuid.UUID, filter shared.Filter) ([]Allocation, error)

	// FindByLocationAndProducts lists the location's allocations for the
	// given products, oldest first, without pagination
	FindByLocationAndProducts(ctx context.Context, locationID uuid.UUID, productIDs []uuid.UUID) ([]Allocation, error)

	// FindByProduct lists allocations of a product across locations
	FindByProduct(ctx context.Context, productID uuid.UUID) ([]Allocation, error)

	// FindLowStock lists allocations at or below the threshold
	FindLowStock(ctx context.Context, locationID uuid.UUID, threshold int64) ([]Allocation, error)

	// Save creates or updates an allocation
	Save(ctx context.Context, alloc *Allocation) error

	// SetStock sets the allocation's stock level only while it still holds
	// expectedStock units, failing with shared.ErrConcurrencyConflict when
	// another transaction moved it in between
	SetStock(ctx context.Context, id uuid.UUID, expectedStock, stock int64) error

	// DecrementStock atomically subtracts quantity, failing with
	// shared.ErrInsufficientStock when fewer units are held
	DecrementStock(ctx context.Context, productID, locationID uuid.UUID, quantity int64) error

	// IncrementStock atomically adds quantity to an existing allocation
	IncrementStock(ctx context.Context, productID, locationID uuid.UUID, quantity int64) error

	// Delete removes an allocation row only while it still holds
	// expectedStock units, failing with shared.ErrConcurrencyConflict
	// otherwise
	Delete(ctx context.Context, id uuid.UUID, expectedStock int64) error

	// DeleteByProduct removes all allocations of a product
	DeleteByProduct(ctx context.Context, productID uuid.UUID) error
}
