package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/retail/backend/internal/domain/inventory"
)

// UpdateStockRequest is an administrative stock edit for one
// (location, product) pair
type UpdateStockRequest struct {
	SalesLocationID uuid.UUID `json:"sales_location_id" binding:"required"`
	ProductID       uuid.UUID `json:"product_id" binding:"required"`
	Quantity        int64     `json:"quantity" binding:"min=0"`
	Action          string    `json:"action" binding:"required,oneof=SET ADD SUBTRACT"`
}

// TransferRequest moves stock between two locations
type TransferRequest struct {
	ProductID      uuid.UUID `json:"product_id" binding:"required"`
	FromLocationID uuid.UUID `json:"from_location_id" binding:"required"`
	ToLocationID   uuid.UUID `json:"to_location_id" binding:"required"`
	Quantity       int64     `json:"quantity" binding:"required,min=1"`
}

// SetAvailabilityRequest toggles whether an allocation is offered for fulfillment
type SetAvailabilityRequest struct {
	SalesLocationID uuid.UUID `json:"sales_location_id" binding:"required"`
	ProductID       uuid.UUID `json:"product_id" binding:"required"`
	IsAvailable     bool      `json:"is_available"`
}

// AllocationResponse represents an allocation in API responses
type AllocationResponse struct {
	ID              uuid.UUID `json:"id"`
	ProductID       uuid.UUID `json:"product_id"`
	SalesLocationID uuid.UUID `json:"sales_location_id"`
	Stock           int64     `json:"stock"`
	IsAvailable     bool      `json:"is_available"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// ToAllocationResponse maps an allocation to its response shape
func ToAllocationResponse(a *inventory.Allocation) AllocationResponse {
	return AllocationResponse{
		ID:              a.ID,
		ProductID:       a.ProductID,
		SalesLocationID: a.SalesLocationID,
		Stock:           a.Stock,
		IsAvailable:     a.IsAvailable,
		UpdatedAt:       a.UpdatedAt,
	}
}

// StockLevelResponse pairs an allocation with the product pool level
type StockLevelResponse struct {
	Allocation  AllocationResponse `json:"allocation"`
	GlobalStock int64              `json:"global_stock"`
}
