// Package shipping exposes shipping quotes and product availability
// lookups without placing an order.
package shipping

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/retail/backend/internal/domain/fulfillment"
	"github.com/retail/backend/internal/domain/inventory"
	"github.com/retail/backend/internal/domain/location"
	"github.com/retail/backend/internal/domain/shipping"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ItemRequest is one requested product line on a quote
type ItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int64     `json:"quantity" binding:"required,min=1"`
}

// QuoteRequest asks what shipping an online order would cost
type QuoteRequest struct {
	Items    []ItemRequest `json:"items" binding:"required,min=1,dive"`
	Province string        `json:"province" binding:"required"`
}

// QuoteResponse is the fulfillment plan a quote resolves to
type QuoteResponse struct {
	SalesLocationID   uuid.UUID       `json:"sales_location_id"`
	SalesLocationName string          `json:"sales_location_name"`
	DeliveryAddressID uuid.UUID       `json:"delivery_address_id"`
	DispatchProvince  string          `json:"dispatch_province"`
	Fee               decimal.Decimal `json:"fee"`
	EstimatedETA      string          `json:"estimated_eta"`
	SameProvince      bool            `json:"same_province"`
}

// AvailabilityEntry is one location's stock for a product
type AvailabilityEntry struct {
	SalesLocationID uuid.UUID `json:"sales_location_id"`
	LocationName    string    `json:"location_name"`
	Province        string    `json:"province"`
	Stock           int64     `json:"stock"`
	SameProvince    bool      `json:"same_province"`
}

// Repositories are the read-only lookups quoting needs
type Repositories struct {
	Locations   location.SalesLocationRepository
	Addresses   location.DeliveryAddressRepository
	Allocations inventory.AllocationRepository
}

// QuoteService resolves shipping quotes and availability lookups. Reads
// only; placing the order re-runs selection inside its own transaction.
type QuoteService struct {
	repos  Repositories
	logger *zap.Logger
}

// NewQuoteService creates a new QuoteService
func NewQuoteService(repos Repositories, logger *zap.Logger) *QuoteService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QuoteService{repos: repos, logger: logger}
}

// Quote runs the fulfillment selector and fee calculator for a would-be
// online order without reserving anything.
func (s *QuoteService) Quote(ctx context.Context, req QuoteRequest) (*QuoteResponse, error) {
	locations, err := s.repos.Locations.FindActive(ctx)
	if err != nil {
		return nil, err
	}

	lines := make([]fulfillment.Line, 0, len(req.Items))
	productIDs := make([]uuid.UUID, 0, len(req.Items))
	for _, item := range req.Items {
		lines = append(lines, fulfillment.Line{ProductID: item.ProductID, Quantity: item.Quantity})
		productIDs = append(productIDs, item.ProductID)
	}

	// Fetch only the quoted lines' allocations, unpaginated, so a large
	// catalog at one location cannot hide a line from the selector.
	snap := fulfillment.Snapshot{
		Locations:   locations,
		Allocations: make(map[uuid.UUID][]inventory.Allocation, len(locations)),
	}
	for i := range locations {
		allocs, err := s.repos.Allocations.FindByLocationAndProducts(ctx, locations[i].ID, productIDs)
		if err != nil {
			return nil, err
		}
		snap.Allocations[locations[i].ID] = allocs
	}
	selected, err := fulfillment.SelectLocation(snap, lines)
	if err != nil {
		return nil, err
	}

	addresses, err := s.repos.Addresses.FindActive(ctx)
	if err != nil {
		return nil, err
	}
	dispatch, err := fulfillment.SelectDeliveryAddress(addresses, req.Province)
	if err != nil {
		return nil, err
	}

	quote := shipping.Calculate(dispatch.Province, req.Province)
	return &QuoteResponse{
		SalesLocationID:   selected.ID,
		SalesLocationName: selected.Name,
		DeliveryAddressID: dispatch.ID,
		DispatchProvince:  dispatch.Province,
		Fee:               quote.Fee,
		EstimatedETA:      quote.EstimatedETA,
		SameProvince:      quote.SameProvince,
	}, nil
}

// CheckAvailability lists the locations holding stock of a product,
// same-province matches first.
func (s *QuoteService) CheckAvailability(ctx context.Context, productID uuid.UUID, province string) ([]AvailabilityEntry, error) {
	allocs, err := s.repos.Allocations.FindByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	var same, other []AvailabilityEntry
	for i := range allocs {
		a := &allocs[i]
		if !a.IsAvailable || a.Stock <= 0 {
			continue
		}
		loc, err := s.repos.Locations.FindByID(ctx, a.SalesLocationID)
		if err != nil {
			return nil, err
		}
		if loc == nil || !loc.IsActive() {
			continue
		}
		entry := AvailabilityEntry{
			SalesLocationID: loc.ID,
			LocationName:    loc.Name,
			Province:        loc.Province,
			Stock:           a.Stock,
			SameProvince:    strings.EqualFold(loc.Province, province),
		}
		if entry.SameProvince {
			same = append(same, entry)
		} else {
			other = append(other, entry)
		}
	}
	return append(same, other...), nil
}
