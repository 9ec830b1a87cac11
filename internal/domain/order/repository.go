package order

import (
	"context"

	"github.com/google/uuid"
	"github.com/retail/backend/internal/domain/shared"
)

// Repository defines the interface for order persistence
type Repository interface {
	// FindByID finds an order with its items by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)

	// FindByOrderNumber finds an order with its items by order number
	FindByOrderNumber(ctx context.Context, orderNumber string) (*Order, error)

	// FindAll finds orders matching the filter, newest first
	FindAll(ctx context.Context, filter shared.Filter) ([]Order, error)

	// FindByCustomer finds a customer's orders matching the filter
	FindByCustomer(ctx context.Context, customerID string, filter shared.Filter) ([]Order, error)

	// Save creates or updates an order together with its items
	Save(ctx context.Context, o *Order) error

	// SaveWithLock updates an order guarded by its version column
	SaveWithLock(ctx context.Context, o *Order) error

	// NextOrderNumber returns the next order number in sequence
	NextOrderNumber(ctx context.Context) (string, error)

	// MarkCancelled flips the order to CANCELLED only while it is still in a
	// cancellable status. Returns false when the flip did not happen because
	// the order was already shipped, delivered, or cancelled.
	MarkCancelled(ctx context.Context, id uuid.UUID) (bool, error)

	// CountByLocation counts orders referencing a sales location
	CountByLocation(ctx context.Context, salesLocationID uuid.UUID) (int64, error)

	// CountByDeliveryAddress counts orders referencing a delivery address
	CountByDeliveryAddress(ctx context.Context, deliveryAddressID uuid.UUID) (int64, error)

	// Count counts orders matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
