package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/retail/backend/internal/domain/order"
	"github.com/retail/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormOrderRepository implements order.Repository using GORM.
// Find methods return nil without an error when no row matches.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// FindByID finds an order with its items by ID
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	var o order.Order
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&o, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &o, nil
}

// FindByOrderNumber finds an order with its items by order number
func (r *GormOrderRepository) FindByOrderNumber(ctx context.Context, orderNumber string) (*order.Order, error) {
	var o order.Order
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("order_number = ?", orderNumber).
		First(&o).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &o, nil
}

// FindAll finds orders matching the filter, newest first
func (r *GormOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]order.Order, error) {
	var orders []order.Order
	query := r.applyFilter(r.db.WithContext(ctx).Model(&order.Order{}).Preload("Items"), filter)
	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// FindByCustomer finds a customer's orders matching the filter
func (r *GormOrderRepository) FindByCustomer(ctx context.Context, customerID string, filter shared.Filter) ([]order.Order, error) {
	var orders []order.Order
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&order.Order{}).Preload("Items").
			Where("customer_id = ?", customerID),
		filter,
	)
	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// Save creates or updates an order together with its items
func (r *GormOrderRepository) Save(ctx context.Context, o *order.Order) error {
	return r.db.WithContext(ctx).Save(o).Error
}

// SaveWithLock updates an order's own columns guarded by its version.
// Items are immutable after creation and are not written here.
func (r *GormOrderRepository) SaveWithLock(ctx context.Context, o *order.Order) error {
	result := r.db.WithContext(ctx).
		Model(o).
		Where("id = ? AND version = ?", o.ID, o.Version-1).
		Updates(map[string]interface{}{
			"status":          o.Status,
			"payment_image":   o.PaymentImage,
			"payment_at":      o.PaymentAt,
			"tracking_number": o.TrackingNumber,
			"note":            o.Note,
			"version":         o.Version,
			"updated_at":      o.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewDomainError("OPTIMISTIC_LOCK_FAILED", "Order was modified by another transaction")
	}
	return nil
}

// NextOrderNumber derives the next order number from the running count.
// The unique index on order_number backstops the race between two
// creating transactions; the loser retries through the transaction scope.
func (r *GormOrderRepository) NextOrderNumber(ctx context.Context) (string, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&order.Order{}).Count(&count).Error; err != nil {
		return "", err
	}
	return order.FormatOrderNumber(count + 1), nil
}

// MarkCancelled flips the order to CANCELLED only while it is still in a
// cancellable status. The conditional WHERE makes the flip happen at most
// once, so the stock restore tied to it cannot run twice.
func (r *GormOrderRepository) MarkCancelled(ctx context.Context, id uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&order.Order{}).
		Where("id = ? AND status NOT IN ?", id, []order.Status{
			order.StatusShipped, order.StatusDelivered, order.StatusCancelled,
		}).
		Updates(map[string]interface{}{
			"status":  order.StatusCancelled,
			"version": gorm.Expr("version + 1"),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// CountByLocation counts orders referencing a sales location
func (r *GormOrderRepository) CountByLocation(ctx context.Context, salesLocationID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&order.Order{}).
		Where("sales_location_id = ?", salesLocationID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByDeliveryAddress counts orders referencing a delivery address
func (r *GormOrderRepository) CountByDeliveryAddress(ctx context.Context, deliveryAddressID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&order.Order{}).
		Where("delivery_address_id = ?", deliveryAddressID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Count counts orders matching the filter
func (r *GormOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&order.Order{})
	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormOrderRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}
	if filter.Search != "" {
		query = query.Where("order_number ILIKE ?", "%"+filter.Search+"%")
	}

	orderBy := ValidateSortField(filter.OrderBy, OrderSortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)
	return query.Order(fmt.Sprintf("%s %s", orderBy, orderDir)).
		Limit(filter.Limit()).Offset(filter.Offset())
}

var _ order.Repository = (*GormOrderRepository)(nil)
