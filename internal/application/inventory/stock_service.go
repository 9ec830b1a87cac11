package inventory

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/retail/backend/internal/domain/inventory"
	"github.com/retail/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// StockService handles administrative stock ledger operations.
//
// Every mutation runs inside one transaction and re-validates its
// preconditions with conditional updates at write time, so concurrent
// edits can fail but never oversell or break conservation.
type StockService struct {
	txScope TransactionScope
	logger  *zap.Logger
}

// NewStockService creates a new StockService
func NewStockService(txScope TransactionScope, logger *zap.Logger) *StockService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StockService{txScope: txScope, logger: logger}
}

// UpdateStock applies a SET, ADD, or SUBTRACT edit to one allocation,
// draining or refilling the product's global pool by the resulting delta.
func (s *StockService) UpdateStock(ctx context.Context, req UpdateStockRequest) (*StockLevelResponse, error) {
	action, err := inventory.ParseStockAction(req.Action)
	if err != nil {
		return nil, err
	}

	var resp *StockLevelResponse
	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		product, err := repos.Products().FindByID(ctx, req.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return shared.ErrProductNotFound
		}

		alloc, err := repos.Allocations().GetOrCreate(ctx, req.ProductID, req.SalesLocationID)
		if err != nil {
			return err
		}

		plan, err := inventory.PlanStockChange(alloc.Stock, product.GlobalStock, req.Quantity, action)
		if err != nil {
			return err
		}

		// The compare-and-set rejects the plan if another transaction moved
		// the allocation after the read above; the conditional pool
		// adjustment keeps the pool non-negative the same way.
		if err := repos.Allocations().SetStock(ctx, alloc.ID, alloc.Stock, plan.TargetStock); err != nil {
			return err
		}
		if plan.PoolDelta != 0 {
			if err := repos.Products().AdjustGlobalStock(ctx, product.ID, -plan.PoolDelta); err != nil {
				return err
			}
			if product, err = repos.Products().FindByID(ctx, req.ProductID); err != nil {
				return err
			}
			if product == nil {
				return shared.ErrProductNotFound
			}
		}

		alloc.Stock = plan.TargetStock
		resp = &StockLevelResponse{
			Allocation:  ToAllocationResponse(alloc),
			GlobalStock: product.GlobalStock,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("stock updated",
		zap.String("product_id", req.ProductID.String()),
		zap.String("location_id", req.SalesLocationID.String()),
		zap.String("action", string(action)),
		zap.Int64("quantity", req.Quantity))
	return resp, nil
}

// Transfer moves stock between two locations. The move is zero-sum across
// allocations and never touches the product's global pool.
func (s *StockService) Transfer(ctx context.Context, req TransferRequest) error {
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		product, err := repos.Products().FindByID(ctx, req.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return shared.ErrProductNotFound
		}

		source, err := repos.Allocations().FindByProductAndLocation(ctx, req.ProductID, req.FromLocationID)
		if err != nil {
			return err
		}
		if source == nil {
			return shared.ErrInsufficientLocationStock
		}

		if err := inventory.PlanTransfer(req.FromLocationID, req.ToLocationID, source.Stock, req.Quantity); err != nil {
			return err
		}

		// Decrement re-checks the source balance under the transaction.
		if err := repos.Allocations().DecrementStock(ctx, req.ProductID, req.FromLocationID, req.Quantity); err != nil {
			if errors.Is(err, shared.ErrInsufficientStock) {
				return shared.ErrInsufficientLocationStock
			}
			return err
		}

		if _, err := repos.Allocations().GetOrCreate(ctx, req.ProductID, req.ToLocationID); err != nil {
			return err
		}
		return repos.Allocations().IncrementStock(ctx, req.ProductID, req.ToLocationID, req.Quantity)
	})
	if err != nil {
		return err
	}

	s.logger.Info("stock transferred",
		zap.String("product_id", req.ProductID.String()),
		zap.String("from", req.FromLocationID.String()),
		zap.String("to", req.ToLocationID.String()),
		zap.Int64("quantity", req.Quantity))
	return nil
}

// SetAvailability toggles whether an allocation is offered for fulfillment
func (s *StockService) SetAvailability(ctx context.Context, req SetAvailabilityRequest) (*AllocationResponse, error) {
	var resp *AllocationResponse
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		alloc, err := repos.Allocations().FindByProductAndLocation(ctx, req.ProductID, req.SalesLocationID)
		if err != nil {
			return err
		}
		if alloc == nil {
			return shared.ErrNotFound
		}

		alloc.SetAvailability(req.IsAvailable)
		if err := repos.Allocations().Save(ctx, alloc); err != nil {
			return err
		}
		r := ToAllocationResponse(alloc)
		resp = &r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// RemoveAllocation deletes the allocation row and returns its remaining
// stock to the product's global pool.
func (s *StockService) RemoveAllocation(ctx context.Context, locationID, productID uuid.UUID) error {
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		alloc, err := repos.Allocations().FindByProductAndLocation(ctx, productID, locationID)
		if err != nil {
			return err
		}
		if alloc == nil {
			return shared.ErrNotFound
		}

		// The delete is conditional on the stock just read, so the amount
		// returned to the pool is exactly what the row held. A concurrent
		// restore or edit makes the delete miss and rolls everything back.
		if err := repos.Allocations().Delete(ctx, alloc.ID, alloc.Stock); err != nil {
			return err
		}
		if alloc.Stock > 0 {
			return repos.Products().AdjustGlobalStock(ctx, productID, alloc.Stock)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("allocation removed",
		zap.String("product_id", productID.String()),
		zap.String("location_id", locationID.String()))
	return nil
}

// ListLocationStock lists allocations held at a sales location
func (s *StockService) ListLocationStock(ctx context.Context, locationID uuid.UUID, filter shared.Filter) ([]AllocationResponse, error) {
	var out []AllocationResponse
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		allocs, err := repos.Allocations().FindByLocation(ctx, locationID, filter)
		if err != nil {
			return err
		}
		out = make([]AllocationResponse, 0, len(allocs))
		for i := range allocs {
			out = append(out, ToAllocationResponse(&allocs[i]))
		}
		return nil
	})
	return out, err
}

// ListLowStock lists allocations at or below the threshold at a location
func (s *StockService) ListLowStock(ctx context.Context, locationID uuid.UUID, threshold int64) ([]AllocationResponse, error) {
	var out []AllocationResponse
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		allocs, err := repos.Allocations().FindLowStock(ctx, locationID, threshold)
		if err != nil {
			return err
		}
		out = make([]AllocationResponse, 0, len(allocs))
		for i := range allocs {
			out = append(out, ToAllocationResponse(&allocs[i]))
		}
		return nil
	})
	return out, err
}

// GetProductAllocations lists a product's allocations across locations
func (s *StockService) GetProductAllocations(ctx context.Context, productID uuid.UUID) ([]AllocationResponse, error) {
	var out []AllocationResponse
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		allocs, err := repos.Allocations().FindByProduct(ctx, productID)
		if err != nil {
			return err
		}
		out = make([]AllocationResponse, 0, len(allocs))
		for i := range allocs {
			out = append(out, ToAllocationResponse(&allocs[i]))
		}
		return nil
	})
	return out, err
}
