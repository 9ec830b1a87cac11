package order

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/retail/backend/internal/domain/fulfillment"
	"github.com/retail/backend/internal/domain/inventory"
	"github.com/retail/backend/internal/domain/location"
	"github.com/retail/backend/internal/domain/order"
	"github.com/retail/backend/internal/domain/shared"
	"github.com/retail/backend/internal/domain/shipping"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Service drives the order lifecycle from creation through delivery or
// cancellation. Stock movements always pair with the status change inside
// one transaction: creation decrements the chosen location's allocations,
// cancellation restores them.
type Service struct {
	txScope    TransactionScope
	imageStore ImageStore
	idemStore  shared.IdempotencyStore
	idemConfig shared.IdempotencyConfig
	logger     *zap.Logger
}

// NewService creates a new order Service
func NewService(txScope TransactionScope, imageStore ImageStore, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		txScope:    txScope,
		imageStore: imageStore,
		idemConfig: shared.DefaultIdempotencyConfig(),
		logger:     logger,
	}
}

// SetIdempotencyStore enables duplicate suppression for order creation
func (s *Service) SetIdempotencyStore(store shared.IdempotencyStore, cfg shared.IdempotencyConfig) {
	s.idemStore = store
	s.idemConfig = cfg
}

// Create places an order for the customer. In-store orders name their sales
// location and ship for free; online orders name a destination province and
// the fulfillment selector picks the location and dispatch address.
//
// idempotencyKey is optional; a repeated key within the store's TTL is
// rejected instead of creating a second order.
func (s *Service) Create(ctx context.Context, customerID string, req CreateOrderRequest, idempotencyKey string) (*Response, error) {
	if customerID == "" {
		return nil, shared.ErrUnauthorized
	}
	if len(req.Items) == 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Order must contain at least one item")
	}
	if req.SalesLocationID == nil && req.Province == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Either sales_location_id or province is required")
	}

	if s.idemStore != nil && s.idemConfig.Enabled && idempotencyKey != "" {
		seen, err := s.idemStore.IsProcessed(ctx, idempotencyKey)
		if err != nil {
			s.logger.Warn("idempotency check failed, proceeding", zap.Error(err))
		} else if seen {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "This order was already submitted")
		}
	}

	var resp *Response
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		o, err := s.createInTx(ctx, repos, customerID, req)
		if err != nil {
			return err
		}
		r := ToResponse(o)
		resp = &r
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.idemStore != nil && s.idemConfig.Enabled && idempotencyKey != "" {
		if _, err := s.idemStore.MarkProcessed(ctx, idempotencyKey, s.idemConfig.TTL); err != nil {
			s.logger.Warn("failed to record idempotency key", zap.Error(err))
		}
	}

	s.logger.Info("order created",
		zap.String("order_number", resp.OrderNumber),
		zap.String("customer_id", customerID),
		zap.String("total", resp.TotalAmount.String()))
	return resp, nil
}

func (s *Service) createInTx(ctx context.Context, repos TransactionalRepositories, customerID string, req CreateOrderRequest) (*order.Order, error) {
	prices, err := s.snapshotPrices(ctx, repos, req.Items)
	if err != nil {
		return nil, err
	}

	lines := make([]fulfillment.Line, 0, len(req.Items))
	for _, item := range req.Items {
		lines = append(lines, fulfillment.Line{ProductID: item.ProductID, Quantity: item.Quantity})
	}

	var (
		selected   *location.SalesLocation
		dispatchID *uuid.UUID
		fee        = decimal.Zero
	)
	if req.SalesLocationID != nil {
		// In-store order: the named location must cover every line.
		selected, err = s.resolveInStoreLocation(ctx, repos, *req.SalesLocationID, lines)
	} else {
		selected, dispatchID, fee, err = s.resolveOnlineFulfillment(ctx, repos, req.Province, lines)
	}
	if err != nil {
		return nil, err
	}

	number, err := repos.Orders().NextOrderNumber(ctx)
	if err != nil {
		return nil, err
	}

	o, err := order.NewOrder(number, customerID)
	if err != nil {
		return nil, err
	}
	for _, item := range req.Items {
		if err := o.AddItem(item.ProductID, item.Quantity, prices[item.ProductID]); err != nil {
			return nil, err
		}
	}
	o.SetDestination(req.Province, req.District, req.Address, req.PostalCode, req.Phone)
	o.Note = req.Note
	o.AssignFulfillment(selected.ID, dispatchID)
	if err := o.SetShippingFee(fee); err != nil {
		return nil, err
	}

	// Conditional decrements re-validate sufficiency at write time; a
	// concurrent order that drained the location rolls this one back.
	for _, item := range req.Items {
		if err := repos.Allocations().DecrementStock(ctx, item.ProductID, selected.ID, item.Quantity); err != nil {
			if errors.Is(err, shared.ErrInsufficientStock) {
				return nil, shared.NewDomainError("INSUFFICIENT_STOCK",
					fmt.Sprintf("Insufficient stock for product %s at the selected location", item.ProductID))
			}
			return nil, err
		}
	}

	if err := repos.Orders().Save(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

// snapshotPrices verifies every product exists and is sellable, returning
// the unit prices to freeze onto the order
func (s *Service) snapshotPrices(ctx context.Context, repos TransactionalRepositories, items []ItemRequest) (map[uuid.UUID]decimal.Decimal, error) {
	ids := make([]uuid.UUID, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID)
	}

	products, err := repos.Products().FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	prices := make(map[uuid.UUID]decimal.Decimal, len(products))
	for i := range products {
		p := &products[i]
		if !p.CanSell() {
			return nil, shared.NewDomainError("PRODUCT_INACTIVE",
				fmt.Sprintf("Product %s is not available for sale", p.Name))
		}
		prices[p.ID] = p.Price
	}
	for _, item := range items {
		if _, ok := prices[item.ProductID]; !ok {
			return nil, shared.NewDomainError("PRODUCT_NOT_FOUND",
				fmt.Sprintf("Product %s not found", item.ProductID))
		}
	}
	return prices, nil
}

func lineProductIDs(lines []fulfillment.Line) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(lines))
	for _, line := range lines {
		ids = append(ids, line.ProductID)
	}
	return ids
}

func (s *Service) resolveInStoreLocation(ctx context.Context, repos TransactionalRepositories, locationID uuid.UUID, lines []fulfillment.Line) (*location.SalesLocation, error) {
	loc, err := repos.SalesLocations().FindByID(ctx, locationID)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		return nil, shared.ErrNotFound
	}

	allocs, err := repos.Allocations().FindByLocationAndProducts(ctx, locationID, lineProductIDs(lines))
	if err != nil {
		return nil, err
	}
	snap := fulfillment.Snapshot{
		Locations:   []location.SalesLocation{*loc},
		Allocations: map[uuid.UUID][]inventory.Allocation{locationID: allocs},
	}
	return fulfillment.SelectLocation(snap, lines)
}

func (s *Service) resolveOnlineFulfillment(ctx context.Context, repos TransactionalRepositories, province string, lines []fulfillment.Line) (*location.SalesLocation, *uuid.UUID, decimal.Decimal, error) {
	locations, err := repos.SalesLocations().FindActive(ctx)
	if err != nil {
		return nil, nil, decimal.Zero, err
	}

	// The snapshot only needs the ordered lines' allocations, fetched
	// whole so a location with a large catalog never drops a line.
	productIDs := lineProductIDs(lines)
	snap := fulfillment.Snapshot{Locations: locations}
	snap.Allocations = make(map[uuid.UUID][]inventory.Allocation, len(locations))
	for i := range locations {
		allocs, err := repos.Allocations().FindByLocationAndProducts(ctx, locations[i].ID, productIDs)
		if err != nil {
			return nil, nil, decimal.Zero, err
		}
		snap.Allocations[locations[i].ID] = allocs
	}

	selected, err := fulfillment.SelectLocation(snap, lines)
	if err != nil {
		return nil, nil, decimal.Zero, err
	}

	addresses, err := repos.DeliveryAddresses().FindActive(ctx)
	if err != nil {
		return nil, nil, decimal.Zero, err
	}
	dispatch, err := fulfillment.SelectDeliveryAddress(addresses, province)
	if err != nil {
		return nil, nil, decimal.Zero, err
	}

	quote := shipping.Calculate(dispatch.Province, province)
	id := dispatch.ID
	return selected, &id, quote.Fee, nil
}

// UploadPayment stores the payment proof and moves the order to PAID.
// Payment is either a URL (stored as-is) or a base64 image uploaded to the
// image store first.
func (s *Service) UploadPayment(ctx context.Context, orderID uuid.UUID, req UploadPaymentRequest) (*Response, error) {
	var pending *order.Order
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		o, err := repos.Orders().FindByID(ctx, orderID)
		if err != nil {
			return err
		}
		if o == nil {
			return shared.ErrOrderNotFound
		}
		pending = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	url, err := s.resolvePaymentURL(ctx, pending.OrderNumber, req.Payment)
	if err != nil {
		return nil, err
	}

	var resp *Response
	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		o, err := repos.Orders().FindByID(ctx, orderID)
		if err != nil {
			return err
		}
		if o == nil {
			return shared.ErrOrderNotFound
		}
		if err := o.RecordPayment(url); err != nil {
			return err
		}
		if err := repos.Orders().SaveWithLock(ctx, o); err != nil {
			return err
		}
		r := ToResponse(o)
		resp = &r
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("payment recorded", zap.String("order_id", orderID.String()))
	return resp, nil
}

// resolvePaymentURL passes URLs through and uploads base64 payloads
func (s *Service) resolvePaymentURL(ctx context.Context, orderNumber, payment string) (string, error) {
	if strings.HasPrefix(payment, "http://") || strings.HasPrefix(payment, "https://") {
		return payment, nil
	}

	contentType := "image/jpeg"
	raw := payment
	if strings.HasPrefix(raw, "data:") {
		// data:image/png;base64,....
		parts := strings.SplitN(raw, ",", 2)
		if len(parts) != 2 {
			return "", shared.NewDomainError("INVALID_INPUT", "Malformed payment image data")
		}
		meta := strings.TrimPrefix(parts[0], "data:")
		contentType = strings.TrimSuffix(strings.SplitN(meta, ";", 2)[0], ";")
		raw = parts[1]
	}

	data, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return "", shared.NewDomainError("INVALID_INPUT", "Payment image is not valid base64")
	}
	if s.imageStore == nil {
		return "", shared.ErrStorageUnavailable
	}

	url, err := s.imageStore.StorePaymentProof(ctx, orderNumber, data, contentType)
	if err != nil {
		s.logger.Error("payment image upload failed", zap.Error(err))
		return "", shared.ErrStorageUnavailable
	}
	return url, nil
}

// Confirm acknowledges payment review
func (s *Service) Confirm(ctx context.Context, orderID uuid.UUID) (*Response, error) {
	return s.mutate(ctx, orderID, func(o *order.Order) error { return o.Confirm() })
}

// AddTracking ships the order with a carrier reference
func (s *Service) AddTracking(ctx context.Context, orderID uuid.UUID, req AddTrackingRequest) (*Response, error) {
	resp, err := s.mutate(ctx, orderID, func(o *order.Order) error {
		return o.AssignTracking(req.TrackingNumber)
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("order shipped",
		zap.String("order_id", orderID.String()),
		zap.String("tracking_number", req.TrackingNumber))
	return resp, nil
}

// MarkDelivered completes the order
func (s *Service) MarkDelivered(ctx context.Context, orderID uuid.UUID) (*Response, error) {
	return s.mutate(ctx, orderID, func(o *order.Order) error { return o.MarkDelivered() })
}

// UpdateStatus force-sets the status without transition guards. The actor
// is logged so administrative overrides stay auditable.
func (s *Service) UpdateStatus(ctx context.Context, orderID uuid.UUID, req UpdateStatusRequest, actor string) (*Response, error) {
	target := order.Status(req.Status)
	resp, err := s.mutate(ctx, orderID, func(o *order.Order) error {
		return o.OverrideStatus(target)
	})
	if err != nil {
		return nil, err
	}
	s.logger.Warn("order status overridden",
		zap.String("order_id", orderID.String()),
		zap.String("status", req.Status),
		zap.String("actor", actor))
	return resp, nil
}

// Cancel voids the order and restores each line's quantity to the sales
// location that fulfilled it. The status flip is conditional so two racing
// cancels restore the stock exactly once.
func (s *Service) Cancel(ctx context.Context, orderID uuid.UUID) (*Response, error) {
	var resp *Response
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		o, err := repos.Orders().FindByID(ctx, orderID)
		if err != nil {
			return err
		}
		if o == nil {
			return shared.ErrOrderNotFound
		}

		flipped, err := repos.Orders().MarkCancelled(ctx, orderID)
		if err != nil {
			return err
		}
		if !flipped {
			return shared.NewDomainError("INVALID_TRANSITION",
				fmt.Sprintf("Cannot cancel an order in status %s", o.Status))
		}

		if o.SalesLocationID != nil {
			for i := range o.Items {
				item := &o.Items[i]
				if item.ProductID == nil {
					continue
				}
				// Restoration recreates the allocation row if an admin
				// removed it while the order was open.
				if _, err := repos.Allocations().GetOrCreate(ctx, *item.ProductID, *o.SalesLocationID); err != nil {
					return err
				}
				if err := repos.Allocations().IncrementStock(ctx, *item.ProductID, *o.SalesLocationID, item.Quantity); err != nil {
					return err
				}
			}
		}

		o.Status = order.StatusCancelled
		r := ToResponse(o)
		resp = &r
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("order cancelled", zap.String("order_id", orderID.String()))
	return resp, nil
}

// Get returns one order with its items
func (s *Service) Get(ctx context.Context, orderID uuid.UUID) (*Response, error) {
	var resp *Response
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		o, err := repos.Orders().FindByID(ctx, orderID)
		if err != nil {
			return err
		}
		if o == nil {
			return shared.ErrOrderNotFound
		}
		r := ToResponse(o)
		resp = &r
		return nil
	})
	return resp, err
}

// List returns orders matching the filter, newest first
func (s *Service) List(ctx context.Context, filter ListFilter) (*shared.Paginated[Response], error) {
	f := shared.DefaultFilter()
	if filter.Page > 0 {
		f.Page = filter.Page
	}
	if filter.PageSize > 0 {
		f.PageSize = filter.PageSize
	}
	if filter.Status != "" {
		f.Filters["status"] = filter.Status
	}

	var page *shared.Paginated[Response]
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var (
			orders []order.Order
			err    error
		)
		if filter.CustomerID != "" {
			orders, err = repos.Orders().FindByCustomer(ctx, filter.CustomerID, f)
		} else {
			orders, err = repos.Orders().FindAll(ctx, f)
		}
		if err != nil {
			return err
		}
		total, err := repos.Orders().Count(ctx, f)
		if err != nil {
			return err
		}

		items := make([]Response, 0, len(orders))
		for i := range orders {
			items = append(items, ToResponse(&orders[i]))
		}
		p := shared.NewPaginated(items, total, f.Page, f.PageSize)
		page = &p
		return nil
	})
	return page, err
}

// mutate loads an order, applies fn, and saves it with optimistic locking
func (s *Service) mutate(ctx context.Context, orderID uuid.UUID, fn func(*order.Order) error) (*Response, error) {
	var resp *Response
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		o, err := repos.Orders().FindByID(ctx, orderID)
		if err != nil {
			return err
		}
		if o == nil {
			return shared.ErrOrderNotFound
		}
		if err := fn(o); err != nil {
			return err
		}
		if err := repos.Orders().SaveWithLock(ctx, o); err != nil {
			return err
		}
		r := ToResponse(o)
		resp = &r
		return nil
	})
	return resp, err
}
