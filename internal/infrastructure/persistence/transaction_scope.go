package persistence

import (
	"context"

	invapp "github.com/retail/backend/internal/application/inventory"
	orderapp "github.com/retail/backend/internal/application/order"
	"github.com/retail/backend/internal/domain/catalog"
	"github.com/retail/backend/internal/domain/inventory"
	"github.com/retail/backend/internal/domain/location"
	"github.com/retail/backend/internal/domain/order"
	"gorm.io/gorm"
)

// GormTransactionScope implements the application transaction scopes over
// GORM transactions. Retryable failures (serialization, deadlock) re-run
// the whole unit a bounded number of times before surfacing
// STORAGE_UNAVAILABLE.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs the given function within a database transaction
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos invapp.TransactionalRepositories) error) error {
	return withTxRetry(ctx, func() error {
		return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return fn(&gormTransactionalRepositories{tx: tx})
		})
	})
}

// OrderScope exposes the same underlying database as an order transaction scope
func (s *GormTransactionScope) OrderScope() *GormOrderTransactionScope {
	return &GormOrderTransactionScope{db: s.db}
}

// GormOrderTransactionScope implements the order application's transaction scope
type GormOrderTransactionScope struct {
	db *gorm.DB
}

// NewGormOrderTransactionScope creates a new GormOrderTransactionScope
func NewGormOrderTransactionScope(db *gorm.DB) *GormOrderTransactionScope {
	return &GormOrderTransactionScope{db: db}
}

// Execute runs the given function within a database transaction
func (s *GormOrderTransactionScope) Execute(ctx context.Context, fn func(repos orderapp.TransactionalRepositories) error) error {
	return withTxRetry(ctx, func() error {
		return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return fn(&gormTransactionalRepositories{tx: tx})
		})
	})
}

// gormTransactionalRepositories hands out repositories bound to one transaction.
// It satisfies both the inventory and order repository bundles.
type gormTransactionalRepositories struct {
	tx *gorm.DB
}

// Allocations returns the allocation repository scoped to the current transaction
func (r *gormTransactionalRepositories) Allocations() inventory.AllocationRepository {
	return NewGormAllocationRepository(r.tx)
}

// Products returns the product repository scoped to the current transaction
func (r *gormTransactionalRepositories) Products() catalog.ProductRepository {
	return NewGormProductRepository(r.tx)
}

// Orders returns the order repository scoped to the current transaction
func (r *gormTransactionalRepositories) Orders() order.Repository {
	return NewGormOrderRepository(r.tx)
}

// SalesLocations returns the sales location repository scoped to the current transaction
func (r *gormTransactionalRepositories) SalesLocations() location.SalesLocationRepository {
	return NewGormSalesLocationRepository(r.tx)
}

// DeliveryAddresses returns the delivery address repository scoped to the current transaction
func (r *gormTransactionalRepositories) DeliveryAddresses() location.DeliveryAddressRepository {
	return NewGormDeliveryAddressRepository(r.tx)
}

var _ invapp.TransactionScope = (*GormTransactionScope)(nil)
var _ orderapp.TransactionScope = (*GormOrderTransactionScope)(nil)
var _ invapp.TransactionalRepositories = (*gormTransactionalRepositories)(nil)
var _ orderapp.TransactionalRepositories = (*gormTransactionalRepositories)(nil)
