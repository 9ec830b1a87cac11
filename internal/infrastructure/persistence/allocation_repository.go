package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/retail/backend/internal/domain/inventory"
	"github.com/retail/backend/internal/domain/shared"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormAllocationRepository implements inventory.AllocationRepository using GORM.
// Find methods return nil without an error when no row matches.
type GormAllocationRepository struct {
	db *gorm.DB
}

// NewGormAllocationRepository creates a new GormAllocationRepository
func NewGormAllocationRepository(db *gorm.DB) *GormAllocationRepository {
	return &GormAllocationRepository{db: db}
}

// FindByID finds an allocation by its ID
func (r *GormAllocationRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.Allocation, error) {
	var alloc inventory.Allocation
	if err := r.db.WithContext(ctx).First(&alloc, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &alloc, nil
}

// FindByProductAndLocation finds the allocation for a (product, location) pair
func (r *GormAllocationRepository) FindByProductAndLocation(ctx context.Context, productID, locationID uuid.UUID) (*inventory.Allocation, error) {
	var alloc inventory.Allocation
	if err := r.db.WithContext(ctx).
		Where("product_id = ? AND sales_location_id = ?", productID, locationID).
		First(&alloc).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &alloc, nil
}

// GetOrCreate returns the allocation for the pair, creating an empty row
// when none exists yet. ON CONFLICT DO NOTHING absorbs the race where two
// transactions create the pair at once.
func (r *GormAllocationRepository) GetOrCreate(ctx context.Context, productID, locationID uuid.UUID) (*inventory.Allocation, error) {
	alloc, err := r.FindByProductAndLocation(ctx, productID, locationID)
	if err != nil {
		return nil, err
	}
	if alloc != nil {
		return alloc, nil
	}

	alloc = inventory.NewAllocation(productID, locationID)
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "product_id"}, {Name: "sales_location_id"}},
			DoNothing: true,
		}).
		Create(alloc).Error; err != nil {
		return nil, err
	}

	return r.FindByProductAndLocation(ctx, productID, locationID)
}

// FindByLocation lists allocations held at a sales location
func (r *GormAllocationRepository) FindByLocation(ctx context.Context, locationID uuid.UUID, filter shared.Filter) ([]inventory.Allocation, error) {
	var allocs []inventory.Allocation
	query := r.db.WithContext(ctx).
		Model(&inventory.Allocation{}).
		Where("sales_location_id = ?", locationID)

	orderBy := ValidateSortField(filter.OrderBy, AllocationSortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)
	query = query.Order(fmt.Sprintf("%s %s", orderBy, orderDir)).
		Limit(filter.Limit()).Offset(filter.Offset())

	if err := query.Find(&allocs).Error; err != nil {
		return nil, err
	}
	return allocs, nil
}

// FindByLocationAndProducts lists the location's allocations for the given
// products. The result is unpaginated and oldest first so fulfillment
// selection sees every requested line no matter how large the location's
// catalog is.
func (r *GormAllocationRepository) FindByLocationAndProducts(ctx context.Context, locationID uuid.UUID, productIDs []uuid.UUID) ([]inventory.Allocation, error) {
	if len(productIDs) == 0 {
		return []inventory.Allocation{}, nil
	}
	var allocs []inventory.Allocation
	if err := r.db.WithContext(ctx).
		Where("sales_location_id = ? AND product_id IN ?", locationID, productIDs).
		Order("created_at ASC").
		Find(&allocs).Error; err != nil {
		return nil, err
	}
	return allocs, nil
}

// FindByProduct lists allocations of a product across locations
func (r *GormAllocationRepository) FindByProduct(ctx context.Context, productID uuid.UUID) ([]inventory.Allocation, error) {
	var allocs []inventory.Allocation
	if err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at ASC").
		Find(&allocs).Error; err != nil {
		return nil, err
	}
	return allocs, nil
}

// FindLowStock lists allocations at or below the threshold
func (r *GormAllocationRepository) FindLowStock(ctx context.Context, locationID uuid.UUID, threshold int64) ([]inventory.Allocation, error) {
	var allocs []inventory.Allocation
	if err := r.db.WithContext(ctx).
		Where("sales_location_id = ? AND stock <= ?", locationID, threshold).
		Order("stock ASC").
		Find(&allocs).Error; err != nil {
		return nil, err
	}
	return allocs, nil
}

// Save creates or updates an allocation
func (r *GormAllocationRepository) Save(ctx context.Context, alloc *inventory.Allocation) error {
	return r.db.WithContext(ctx).Save(alloc).Error
}

// SetStock compare-and-sets the allocation's stock level. The WHERE on the
// current stock makes a write planned from a stale read affect zero rows
// instead of silently overwriting a concurrent edit.
func (r *GormAllocationRepository) SetStock(ctx context.Context, id uuid.UUID, expectedStock, stock int64) error {
	result := r.db.WithContext(ctx).
		Model(&inventory.Allocation{}).
		Where("id = ? AND stock = ?", id, expectedStock).
		Update("stock", stock)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// DecrementStock atomically subtracts quantity. The stock >= ? guard makes
// overselling impossible no matter how stale the caller's read was.
func (r *GormAllocationRepository) DecrementStock(ctx context.Context, productID, locationID uuid.UUID, quantity int64) error {
	result := r.db.WithContext(ctx).
		Model(&inventory.Allocation{}).
		Where("product_id = ? AND sales_location_id = ? AND is_available AND stock >= ?",
			productID, locationID, quantity).
		Update("stock", gorm.Expr("stock - ?", quantity))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrInsufficientStock
	}
	return nil
}

// IncrementStock atomically adds quantity to an existing allocation
func (r *GormAllocationRepository) IncrementStock(ctx context.Context, productID, locationID uuid.UUID, quantity int64) error {
	result := r.db.WithContext(ctx).
		Model(&inventory.Allocation{}).
		Where("product_id = ? AND sales_location_id = ?", productID, locationID).
		Update("stock", gorm.Expr("stock + ?", quantity))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete removes an allocation row only while it still holds exactly
// expectedStock units, so the amount returned to the pool is the amount
// the row actually carried at delete time.
func (r *GormAllocationRepository) Delete(ctx context.Context, id uuid.UUID, expectedStock int64) error {
	result := r.db.WithContext(ctx).
		Delete(&inventory.Allocation{}, "id = ? AND stock = ?", id, expectedStock)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// DeleteByProduct removes all allocations of a product
func (r *GormAllocationRepository) DeleteByProduct(ctx context.Context, productID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Delete(&inventory.Allocation{}, "product_id = ?", productID).Error
}

var _ inventory.AllocationRepository = (*GormAllocationRepository)(nil)
