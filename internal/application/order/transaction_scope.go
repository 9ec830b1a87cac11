package order

import (
	"context"

	"github.com/retail/backend/internal/domain/catalog"
	"github.com/retail/backend/internal/domain/inventory"
	"github.com/retail/backend/internal/domain/location"
	"github.com/retail/backend/internal/domain/order"
)

// TransactionScope provides transactional access to the repositories an
// order operation touches. Order creation writes the order, its items, and
// the allocation decrements in one unit; cancellation writes the status
// flip and the stock restore in one unit.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to all repositories within a
// transaction. All repositories returned share the same underlying
// database transaction.
type TransactionalRepositories interface {
	// Orders returns the order repository scoped to the current transaction
	Orders() order.Repository
	// Allocations returns the allocation repository scoped to the current transaction
	Allocations() inventory.AllocationRepository
	// Products returns the product repository scoped to the current transaction
	Products() catalog.ProductRepository
	// SalesLocations returns the sales location repository scoped to the current transaction
	SalesLocations() location.SalesLocationRepository
	// DeliveryAddresses returns the delivery address repository scoped to the current transaction
	DeliveryAddresses() location.DeliveryAddressRepository
}

// NoOpTransactionScope runs the function without a real transaction.
// Useful in tests where the repositories are already transactional or in-memory.
type NoOpTransactionScope struct {
	orderRepo      order.Repository
	allocationRepo inventory.AllocationRepository
	productRepo    catalog.ProductRepository
	locationRepo   location.SalesLocationRepository
	addressRepo    location.DeliveryAddressRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope over the given repositories
func NewNoOpTransactionScope(
	orderRepo order.Repository,
	allocationRepo inventory.AllocationRepository,
	productRepo catalog.ProductRepository,
	locationRepo location.SalesLocationRepository,
	addressRepo location.DeliveryAddressRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		orderRepo:      orderRepo,
		allocationRepo: allocationRepo,
		productRepo:    productRepo,
		locationRepo:   locationRepo,
		addressRepo:    addressRepo,
	}
}

// Execute runs the function without transaction boundaries
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// Orders returns the order repository
func (s *NoOpTransactionScope) Orders() order.Repository { return s.orderRepo }

// Allocations returns the allocation repository
func (s *NoOpTransactionScope) Allocations() inventory.AllocationRepository {
	return s.allocationRepo
}

// Products returns the product repository
func (s *NoOpTransactionScope) Products() catalog.ProductRepository { return s.productRepo }

// SalesLocations returns the sales location repository
func (s *NoOpTransactionScope) SalesLocations() location.SalesLocationRepository {
	return s.locationRepo
}

// DeliveryAddresses returns the delivery address repository
func (s *NoOpTransactionScope) DeliveryAddresses() location.DeliveryAddressRepository {
	return s.addressRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
