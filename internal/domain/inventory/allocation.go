package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/retail/backend/internal/domain/shared"
)

// Allocation records how much of a product's stock is held at one sales
// location. There is at most one row per (product, location) pair.
//
// Stock only enters an allocation from the product's global pool and only
// leaves back to the pool or to another allocation, so for every product
// globalStock + sum(allocation.Stock) stays constant outside of admin
// pool edits.
type Allocation struct {
	shared.BaseAggregateRoot
	ProductID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_alloc_product_location,priority:1"`
	SalesLocationID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_alloc_product_location,priority:2"`
	Stock           int64     `gorm:"not null;default:0"`
	IsAvailable     bool      `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Allocation) TableName() string {
	return "product_location_allocations"
}

// NewAllocation creates an empty allocation for a (product, location) pair
func NewAllocation(productID, salesLocationID uuid.UUID) *Allocation {
	return &Allocation{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ProductID:         productID,
		SalesLocationID:   salesLocationID,
		Stock:             0,
		IsAvailable:       true,
	}
}

// SetAvailability toggles whether this allocation is offered for fulfillment
func (a *Allocation) SetAvailability(available bool) {
	a.IsAvailable = available
	a.UpdatedAt = time.Now()
	a.IncrementVersion()
}

// CanFulfill reports whether this allocation can cover the quantity
func (a *Allocation) CanFulfill(quantity int64) bool {
	return a.IsAvailable && a.Stock >= quantity
}
