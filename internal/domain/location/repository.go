package location

import (
	"context"

	"github.com/google/uuid"
	"github.com/retail/backend/internal/domain/shared"
)

// SalesLocationRepository defines the interface for sales location persistence
type SalesLocationRepository interface {
	// FindByID finds a sales location by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*SalesLocation, error)

	// FindByCode finds a sales location by its unique code
	FindByCode(ctx context.Context, code string) (*SalesLocation, error)

	// FindAll finds all sales locations matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]SalesLocation, error)

	// FindActive finds active sales locations in stable creation order
	FindActive(ctx context.Context) ([]SalesLocation, error)

	// Save creates or updates a sales location
	Save(ctx context.Context, loc *SalesLocation) error

	// Delete deletes a sales location
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts sales locations matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// DeliveryAddressRepository defines the interface for delivery address persistence
type DeliveryAddressRepository interface {
	// FindByID finds a delivery address by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*DeliveryAddress, error)

	// FindByCode finds a delivery address by its unique code
	FindByCode(ctx context.Context, code string) (*DeliveryAddress, error)

	// FindAll finds all delivery addresses matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]DeliveryAddress, error)

	// FindActive finds active delivery addresses in stable creation order
	FindActive(ctx context.Context) ([]DeliveryAddress, error)

	// Save creates or updates a delivery address
	Save(ctx context.Context, addr *DeliveryAddress) error

	// Delete deletes a delivery address
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts delivery addresses matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
