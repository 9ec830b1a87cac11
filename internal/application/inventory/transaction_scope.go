package inventory

import (
	"context"

	"github.com/retail/backend/internal/domain/catalog"
	"github.com/retail/backend/internal/domain/inventory"
)

// TransactionScope provides transactional access to stock repositories.
// When a function is executed within a transaction scope, all repository
// operations are part of the same database transaction and commit or roll
// back atomically.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the repositories a ledger
// operation touches, all sharing one underlying transaction. A ledger
// movement always writes both sides: the allocation row and the product's
// global pool.
type TransactionalRepositories interface {
	// Allocations returns the allocation repository scoped to the current transaction
	Allocations() inventory.AllocationRepository
	// Products returns the product repository scoped to the current transaction
	Products() catalog.ProductRepository
}

// NoOpTransactionScope runs the function without a real transaction.
// Useful in tests where the repositories are already transactional or in-memory.
type NoOpTransactionScope struct {
	allocationRepo inventory.AllocationRepository
	productRepo    catalog.ProductRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope over the given repositories
func NewNoOpTransactionScope(
	allocationRepo inventory.AllocationRepository,
	productRepo catalog.ProductRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		allocationRepo: allocationRepo,
		productRepo:    productRepo,
	}
}

// Execute runs the function without transaction boundaries
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// Allocations returns the allocation repository
func (s *NoOpTransactionScope) Allocations() inventory.AllocationRepository {
	return s.allocationRepo
}

// Products returns the product repository
func (s *NoOpTransactionScope) Products() catalog.ProductRepository {
	return s.productRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
