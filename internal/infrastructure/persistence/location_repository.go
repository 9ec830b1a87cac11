package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/retail/backend/internal/domain/location"
	"github.com/retail/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormSalesLocationRepository implements location.SalesLocationRepository using GORM.
// Find methods return nil without an error when no row matches.
type GormSalesLocationRepository struct {
	db *gorm.DB
}

// NewGormSalesLocationRepository creates a new GormSalesLocationRepository
func NewGormSalesLocationRepository(db *gorm.DB) *GormSalesLocationRepository {
	return &GormSalesLocationRepository{db: db}
}

// FindByID finds a sales location by its ID
func (r *GormSalesLocationRepository) FindByID(ctx context.Context, id uuid.UUID) (*location.SalesLocation, error) {
	var loc location.SalesLocation
	if err := r.db.WithContext(ctx).First(&loc, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &loc, nil
}

// FindByCode finds a sales location by its unique code
func (r *GormSalesLocationRepository) FindByCode(ctx context.Context, code string) (*location.SalesLocation, error) {
	var loc location.SalesLocation
	if err := r.db.WithContext(ctx).
		Where("code = ?", strings.ToUpper(code)).
		First(&loc).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &loc, nil
}

// FindAll finds all sales locations matching the filter
func (r *GormSalesLocationRepository) FindAll(ctx context.Context, filter shared.Filter) ([]location.SalesLocation, error) {
	var locs []location.SalesLocation
	query := applyLocationFilter(r.db.WithContext(ctx).Model(&location.SalesLocation{}), filter)
	if err := query.Find(&locs).Error; err != nil {
		return nil, err
	}
	return locs, nil
}

// FindActive finds active sales locations in stable creation order.
// The fulfillment selector depends on this ordering being deterministic.
func (r *GormSalesLocationRepository) FindActive(ctx context.Context) ([]location.SalesLocation, error) {
	var locs []location.SalesLocation
	if err := r.db.WithContext(ctx).
		Where("status = ?", location.LocationStatusActive).
		Order("created_at ASC").
		Find(&locs).Error; err != nil {
		return nil, err
	}
	return locs, nil
}

// Save creates or updates a sales location
func (r *GormSalesLocationRepository) Save(ctx context.Context, loc *location.SalesLocation) error {
	return r.db.WithContext(ctx).Save(loc).Error
}

// Delete deletes a sales location
func (r *GormSalesLocationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&location.SalesLocation{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts sales locations matching the filter
func (r *GormSalesLocationRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&location.SalesLocation{})
	if filter.Search != "" {
		query = query.Where("name ILIKE ? OR code ILIKE ?", "%"+filter.Search+"%", "%"+filter.Search+"%")
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// GormDeliveryAddressRepository implements location.DeliveryAddressRepository using GORM
type GormDeliveryAddressRepository struct {
	db *gorm.DB
}

// NewGormDeliveryAddressRepository creates a new GormDeliveryAddressRepository
func NewGormDeliveryAddressRepository(db *gorm.DB) *GormDeliveryAddressRepository {
	return &GormDeliveryAddressRepository{db: db}
}

// FindByID finds a delivery address by its ID
func (r *GormDeliveryAddressRepository) FindByID(ctx context.Context, id uuid.UUID) (*location.DeliveryAddress, error) {
	var addr location.DeliveryAddress
	if err := r.db.WithContext(ctx).First(&addr, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &addr, nil
}

// FindByCode finds a delivery address by its unique code
func (r *GormDeliveryAddressRepository) FindByCode(ctx context.Context, code string) (*location.DeliveryAddress, error) {
	var addr location.DeliveryAddress
	if err := r.db.WithContext(ctx).
		Where("code = ?", strings.ToUpper(code)).
		First(&addr).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &addr, nil
}

// FindAll finds all delivery addresses matching the filter
func (r *GormDeliveryAddressRepository) FindAll(ctx context.Context, filter shared.Filter) ([]location.DeliveryAddress, error) {
	var addrs []location.DeliveryAddress
	query := applyLocationFilter(r.db.WithContext(ctx).Model(&location.DeliveryAddress{}), filter)
	if err := query.Find(&addrs).Error; err != nil {
		return nil, err
	}
	return addrs, nil
}

// FindActive finds active delivery addresses in stable creation order
func (r *GormDeliveryAddressRepository) FindActive(ctx context.Context) ([]location.DeliveryAddress, error) {
	var addrs []location.DeliveryAddress
	if err := r.db.WithContext(ctx).
		Where("status = ?", location.LocationStatusActive).
		Order("created_at ASC").
		Find(&addrs).Error; err != nil {
		return nil, err
	}
	return addrs, nil
}

// Save creates or updates a delivery address
func (r *GormDeliveryAddressRepository) Save(ctx context.Context, addr *location.DeliveryAddress) error {
	return r.db.WithContext(ctx).Save(addr).Error
}

// Delete deletes a delivery address
func (r *GormDeliveryAddressRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&location.DeliveryAddress{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts delivery addresses matching the filter
func (r *GormDeliveryAddressRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&location.DeliveryAddress{})
	if filter.Search != "" {
		query = query.Where("name ILIKE ? OR code ILIKE ?", "%"+filter.Search+"%", "%"+filter.Search+"%")
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func applyLocationFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		query = query.Where("name ILIKE ? OR code ILIKE ?", "%"+filter.Search+"%", "%"+filter.Search+"%")
	}
	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}

	orderBy := ValidateSortField(filter.OrderBy, LocationSortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)
	return query.Order(fmt.Sprintf("%s %s", orderBy, orderDir)).
		Limit(filter.Limit()).Offset(filter.Offset())
}

var _ location.SalesLocationRepository = (*GormSalesLocationRepository)(nil)
var _ location.DeliveryAddressRepository = (*GormDeliveryAddressRepository)(nil)
