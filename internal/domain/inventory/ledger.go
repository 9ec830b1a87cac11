package inventory

import (
	"github.com/google/uuid"
	"github.com/retail/backend/internal/domain/shared"
)

// StockAction is the verb of an administrative stock edit
type StockAction string

const (
	StockActionSet      StockAction = "SET"
	StockActionAdd      StockAction = "ADD"
	StockActionSubtract StockAction = "SUBTRACT"
)

// ParseStockAction validates and normalizes a stock action string
func ParseStockAction(s string) (StockAction, error) {
	switch StockAction(s) {
	case StockActionSet, StockActionAdd, StockActionSubtract:
		return StockAction(s), nil
	default:
		return "", shared.NewDomainError("INVALID_INPUT", "Stock action must be SET, ADD, or SUBTRACT")
	}
}

// StockPlan is the outcome of planning a ledger movement: the target stock
// for the location allocation and the delta drained from (positive) or
// returned to (negative) the product's global pool.
type StockPlan struct {
	TargetStock int64
	PoolDelta   int64
}

// PlanStockChange computes the effect of an administrative stock edit
// against the current allocation and pool levels. It is pure arithmetic;
// callers re-validate the pool and allocation conditions at write time.
func PlanStockChange(currentStock, globalStock, quantity int64, action StockAction) (StockPlan, error) {
	if quantity < 0 {
		return StockPlan{}, shared.NewDomainError("INVALID_INPUT", "Quantity cannot be negative")
	}

	var target int64
	switch action {
	case StockActionSet:
		target = quantity
	case StockActionAdd:
		target = currentStock + quantity
	case StockActionSubtract:
		target = currentStock - quantity
		if target < 0 {
			return StockPlan{}, shared.ErrInsufficientLocationStock
		}
	default:
		return StockPlan{}, shared.NewDomainError("INVALID_INPUT", "Unknown stock action")
	}

	delta := target - currentStock
	if delta > globalStock {
		return StockPlan{}, shared.ErrInsufficientGlobalStock
	}

	return StockPlan{TargetStock: target, PoolDelta: delta}, nil
}

// PlanTransfer validates a stock movement between two locations.
// Transfers are zero-sum across allocations and never touch the pool.
func PlanTransfer(fromLocationID, toLocationID uuid.UUID, sourceStock, quantity int64) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_INPUT", "Transfer quantity must be positive")
	}
	if fromLocationID == toLocationID {
		return shared.ErrSameLocation
	}
	if sourceStock < quantity {
		return shared.ErrInsufficientLocationStock
	}
	return nil
}
