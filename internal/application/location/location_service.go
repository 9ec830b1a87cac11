// Package location manages sales locations and delivery addresses.
package location

import (
	"context"

	"github.com/google/uuid"
	"github.com/retail/backend/internal/domain/location"
	"github.com/retail/backend/internal/domain/order"
	"github.com/retail/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// CreateSalesLocationRequest creates a sales location
type CreateSalesLocationRequest struct {
	Code         string   `json:"code" binding:"required"`
	Name         string   `json:"name" binding:"required"`
	Province     string   `json:"province" binding:"required"`
	District     string   `json:"district"`
	Address      string   `json:"address"`
	PostalCode   string   `json:"postal_code"`
	Phone        string   `json:"phone"`
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
	LocationType string   `json:"location_type" binding:"omitempty,oneof=STORE WAREHOUSE"`
}

// UpdateLocationRequest updates contact and address details
type UpdateLocationRequest struct {
	Name       string `json:"name" binding:"required"`
	Province   string `json:"province" binding:"required"`
	District   string `json:"district"`
	Address    string `json:"address"`
	PostalCode string `json:"postal_code"`
	Phone      string `json:"phone"`
	Status     string `json:"status" binding:"omitempty,oneof=ACTIVE INACTIVE"`
}

// CreateDeliveryAddressRequest creates a delivery address
type CreateDeliveryAddressRequest struct {
	Code       string `json:"code" binding:"required"`
	Name       string `json:"name" binding:"required"`
	Province   string `json:"province" binding:"required"`
	District   string `json:"district"`
	Address    string `json:"address"`
	PostalCode string `json:"postal_code"`
	Phone      string `json:"phone"`
}

// Service manages the location records the fulfillment selector and
// shipping calculator read from.
type Service struct {
	locationRepo location.SalesLocationRepository
	addressRepo  location.DeliveryAddressRepository
	orderRepo    order.Repository
	logger       *zap.Logger
}

// NewService creates a new location Service
func NewService(
	locationRepo location.SalesLocationRepository,
	addressRepo location.DeliveryAddressRepository,
	orderRepo order.Repository,
	logger *zap.Logger,
) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		locationRepo: locationRepo,
		addressRepo:  addressRepo,
		orderRepo:    orderRepo,
		logger:       logger,
	}
}

// CreateSalesLocation creates a sales location; the code must be unique
func (s *Service) CreateSalesLocation(ctx context.Context, req CreateSalesLocationRequest) (*location.SalesLocation, error) {
	existing, err := s.locationRepo.FindByCode(ctx, req.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, shared.ErrDuplicateCode
	}

	loc, err := location.NewSalesLocation(req.Code, req.Name, req.Province, location.LocationType(req.LocationType))
	if err != nil {
		return nil, err
	}
	loc.District = req.District
	loc.Address = req.Address
	loc.PostalCode = req.PostalCode
	loc.Phone = req.Phone
	if req.Latitude != nil && req.Longitude != nil {
		loc.SetCoordinates(*req.Latitude, *req.Longitude)
	}

	if err := s.locationRepo.Save(ctx, loc); err != nil {
		return nil, err
	}

	s.logger.Info("sales location created", zap.String("code", loc.Code))
	return loc, nil
}

// GetSalesLocation returns one sales location
func (s *Service) GetSalesLocation(ctx context.Context, id uuid.UUID) (*location.SalesLocation, error) {
	loc, err := s.locationRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		return nil, shared.ErrNotFound
	}
	return loc, nil
}

// ListSalesLocations lists sales locations
func (s *Service) ListSalesLocations(ctx context.Context, filter shared.Filter) (*shared.Paginated[location.SalesLocation], error) {
	locs, err := s.locationRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.locationRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	page := shared.NewPaginated(locs, total, filter.Page, filter.PageSize)
	return &page, nil
}

// UpdateSalesLocation updates details and status of a sales location
func (s *Service) UpdateSalesLocation(ctx context.Context, id uuid.UUID, req UpdateLocationRequest) (*location.SalesLocation, error) {
	loc, err := s.GetSalesLocation(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := loc.Update(req.Name, req.Province, req.District, req.Address, req.PostalCode, req.Phone); err != nil {
		return nil, err
	}
	switch location.LocationStatus(req.Status) {
	case location.LocationStatusActive:
		loc.Activate()
	case location.LocationStatusInactive:
		loc.Deactivate()
	}
	if err := s.locationRepo.Save(ctx, loc); err != nil {
		return nil, err
	}
	return loc, nil
}

// DeleteSalesLocation removes a sales location. Locations referenced by
// orders cannot be deleted, only deactivated; order history must keep
// pointing at the place that fulfilled it.
func (s *Service) DeleteSalesLocation(ctx context.Context, id uuid.UUID) error {
	loc, err := s.GetSalesLocation(ctx, id)
	if err != nil {
		return err
	}

	dependents, err := s.orderRepo.CountByLocation(ctx, id)
	if err != nil {
		return err
	}
	if dependents > 0 {
		return shared.ErrHasDependentOrders
	}

	if err := s.locationRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("sales location deleted", zap.String("code", loc.Code))
	return nil
}

// CreateDeliveryAddress creates a delivery address; the code must be unique
func (s *Service) CreateDeliveryAddress(ctx context.Context, req CreateDeliveryAddressRequest) (*location.DeliveryAddress, error) {
	existing, err := s.addressRepo.FindByCode(ctx, req.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, shared.ErrDuplicateCode
	}

	addr, err := location.NewDeliveryAddress(req.Code, req.Name, req.Province)
	if err != nil {
		return nil, err
	}
	addr.District = req.District
	addr.Address = req.Address
	addr.PostalCode = req.PostalCode
	addr.Phone = req.Phone

	if err := s.addressRepo.Save(ctx, addr); err != nil {
		return nil, err
	}

	s.logger.Info("delivery address created", zap.String("code", addr.Code))
	return addr, nil
}

// GetDeliveryAddress returns one delivery address
func (s *Service) GetDeliveryAddress(ctx context.Context, id uuid.UUID) (*location.DeliveryAddress, error) {
	addr, err := s.addressRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if addr == nil {
		return nil, shared.ErrNotFound
	}
	return addr, nil
}

// ListDeliveryAddresses lists delivery addresses
func (s *Service) ListDeliveryAddresses(ctx context.Context, filter shared.Filter) (*shared.Paginated[location.DeliveryAddress], error) {
	addrs, err := s.addressRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.addressRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	page := shared.NewPaginated(addrs, total, filter.Page, filter.PageSize)
	return &page, nil
}

// UpdateDeliveryAddress updates details and status of a delivery address
func (s *Service) UpdateDeliveryAddress(ctx context.Context, id uuid.UUID, req UpdateLocationRequest) (*location.DeliveryAddress, error) {
	addr, err := s.GetDeliveryAddress(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := addr.Update(req.Name, req.Province, req.District, req.Address, req.PostalCode, req.Phone); err != nil {
		return nil, err
	}
	switch location.LocationStatus(req.Status) {
	case location.LocationStatusActive:
		addr.Activate()
	case location.LocationStatusInactive:
		addr.Deactivate()
	}
	if err := s.addressRepo.Save(ctx, addr); err != nil {
		return nil, err
	}
	return addr, nil
}

// DeleteDeliveryAddress removes a delivery address unless orders reference it
func (s *Service) DeleteDeliveryAddress(ctx context.Context, id uuid.UUID) error {
	addr, err := s.GetDeliveryAddress(ctx, id)
	if err != nil {
		return err
	}

	dependents, err := s.orderRepo.CountByDeliveryAddress(ctx, id)
	if err != nil {
		return err
	}
	if dependents > 0 {
		return shared.ErrHasDependentOrders
	}

	if err := s.addressRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("delivery address deleted", zap.String("code", addr.Code))
	return nil
}
