package persistence

import (
	"testing"

	inventoryapp "github.com/retail/backend/internal/application/inventory"
	orderapp "github.com/retail/backend/internal/application/order"
	"github.com/retail/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newStockService(db *gorm.DB) *inventoryapp.StockService {
	return inventoryapp.NewStockService(NewGormTransactionScope(db), nil)
}

func TestStockFlow_SetDrainsGlobalPool(t *testing.T) {
	db := setupSQLiteDB(t)
	svc := newStockService(db)

	product := seedProduct(t, db, "Desk Lamp", decimal.NewFromInt(100), 100)
	loc := seedLocation(t, db, "BKK01", "Bangkok")

	resp, err := svc.UpdateStock(testCtx, inventoryapp.UpdateStockRequest{
		SalesLocationID: loc.ID,
		ProductID:       product.ID,
		Quantity:        30,
		Action:          "SET",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(30), resp.Allocation.Stock)
	assert.Equal(t, int64(70), resp.GlobalStock)
	assert.Equal(t, int64(70), productGlobalStock(t, db, product.ID))
	assert.Equal(t, int64(100), totalStock(t, db, product.ID))
}

func TestStockFlow_AddAndSubtractMoveThePoolBothWays(t *testing.T) {
	db := setupSQLiteDB(t)
	svc := newStockService(db)

	product := seedProduct(t, db, "Desk Lamp", decimal.NewFromInt(100), 100)
	loc := seedLocation(t, db, "BKK01", "Bangkok")

	_, err := svc.UpdateStock(testCtx, inventoryapp.UpdateStockRequest{
		SalesLocationID: loc.ID,
		ProductID:       product.ID,
		Quantity:        40,
		Action:          "ADD",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(40), allocationStock(t, db, product.ID, loc.ID))
	assert.Equal(t, int64(60), productGlobalStock(t, db, product.ID))

	resp, err := svc.UpdateStock(testCtx, inventoryapp.UpdateStockRequest{
		SalesLocationID: loc.ID,
		ProductID:       product.ID,
		Quantity:        15,
		Action:          "SUBTRACT",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(25), resp.Allocation.Stock)
	assert.Equal(t, int64(75), resp.GlobalStock)
	// The response reports the pool level the update actually produced.
	assert.Equal(t, productGlobalStock(t, db, product.ID), resp.GlobalStock)
	assert.Equal(t, int64(100), totalStock(t, db, product.ID))
}

func TestStockFlow_AddBeyondPoolRejected(t *testing.T) {
	db := setupSQLiteDB(t)
	svc := newStockService(db)

	product := seedProduct(t, db, "Desk Lamp", decimal.NewFromInt(100), 10)
	loc := seedLocation(t, db, "BKK01", "Bangkok")

	_, err := svc.UpdateStock(testCtx, inventoryapp.UpdateStockRequest{
		SalesLocationID: loc.ID,
		ProductID:       product.ID,
		Quantity:        25,
		Action:          "ADD",
	})
	requireDomainCode(t, err, "INSUFFICIENT_GLOBAL_STOCK")
	assert.Equal(t, int64(10), productGlobalStock(t, db, product.ID))
}

func TestStockFlow_TransferIsZeroSum(t *testing.T) {
	db := setupSQLiteDB(t)
	svc := newStockService(db)

	product := seedProduct(t, db, "Desk Lamp", decimal.NewFromInt(100), 50)
	source := seedLocation(t, db, "BKK01", "Bangkok")
	target := seedLocation(t, db, "CNX01", "Chiang Mai")
	seedAllocation(t, db, product.ID, source.ID, 30)

	err := svc.Transfer(testCtx, inventoryapp.TransferRequest{
		ProductID:      product.ID,
		FromLocationID: source.ID,
		ToLocationID:   target.ID,
		Quantity:       10,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(20), allocationStock(t, db, product.ID, source.ID))
	assert.Equal(t, int64(10), allocationStock(t, db, product.ID, target.ID))
	// Transfers never touch the global pool.
	assert.Equal(t, int64(50), productGlobalStock(t, db, product.ID))
	assert.Equal(t, int64(80), totalStock(t, db, product.ID))
}

func TestStockFlow_TransferBeyondSourceRejected(t *testing.T) {
	db := setupSQLiteDB(t)
	svc := newStockService(db)

	product := seedProduct(t, db, "Desk Lamp", decimal.NewFromInt(100), 0)
	source := seedLocation(t, db, "BKK01", "Bangkok")
	target := seedLocation(t, db, "CNX01", "Chiang Mai")
	seedAllocation(t, db, product.ID, source.ID, 5)

	err := svc.Transfer(testCtx, inventoryapp.TransferRequest{
		ProductID:      product.ID,
		FromLocationID: source.ID,
		ToLocationID:   target.ID,
		Quantity:       10,
	})
	requireDomainCode(t, err, "INSUFFICIENT_LOCATION_STOCK")

	assert.Equal(t, int64(5), allocationStock(t, db, product.ID, source.ID))
	assert.Equal(t, int64(0), allocationStock(t, db, product.ID, target.ID))
}

func TestStockFlow_RemoveAllocationReturnsStockToPool(t *testing.T) {
	db := setupSQLiteDB(t)
	svc := newStockService(db)

	product := seedProduct(t, db, "Desk Lamp", decimal.NewFromInt(100), 40)
	loc := seedLocation(t, db, "BKK01", "Bangkok")
	seedAllocation(t, db, product.ID, loc.ID, 25)

	require.NoError(t, svc.RemoveAllocation(testCtx, loc.ID, product.ID))

	assert.Equal(t, int64(65), productGlobalStock(t, db, product.ID))
	assert.Equal(t, int64(0), allocationStock(t, db, product.ID, loc.ID))
	assert.Equal(t, int64(65), totalStock(t, db, product.ID))
}

func TestStockFlow_SetAvailabilityHidesAllocationFromFulfillment(t *testing.T) {
	db := setupSQLiteDB(t)
	svc := newStockService(db)

	product := seedProduct(t, db, "Desk Lamp", decimal.NewFromInt(100), 0)
	loc := seedLocation(t, db, "BKK01", "Bangkok")
	seedAllocation(t, db, product.ID, loc.ID, 10)

	resp, err := svc.SetAvailability(testCtx, inventoryapp.SetAvailabilityRequest{
		SalesLocationID: loc.ID,
		ProductID:       product.ID,
		IsAvailable:     false,
	})
	require.NoError(t, err)
	assert.False(t, resp.IsAvailable)

	// An unavailable allocation cannot be drained by orders.
	orderSvc := newOrderService(db)
	seedDeliveryAddress(t, db, "DEPOT01", "Bangkok")
	_, err = orderSvc.Create(testCtx, "customer-1", orderapp.CreateOrderRequest{
		Items:    []orderapp.ItemRequest{{ProductID: product.ID, Quantity: 1}},
		Province: "Bangkok",
	}, "")
	requireDomainCode(t, err, "NO_LOCATION_HAS_SUFFICIENT_STOCK")
}

func TestStockLedger_StaleStockWriteRejected(t *testing.T) {
	db := setupSQLiteDB(t)
	repo := NewGormAllocationRepository(db)

	product := seedProduct(t, db, "Desk Lamp", decimal.NewFromInt(100), 0)
	loc := seedLocation(t, db, "BKK01", "Bangkok")
	alloc := seedAllocation(t, db, product.ID, loc.ID, 10)

	// A write planned while the row held 7 units must miss now that it
	// holds 10, instead of overwriting the newer balance.
	err := repo.SetStock(testCtx, alloc.ID, 7, 12)
	require.ErrorIs(t, err, shared.ErrConcurrencyConflict)
	assert.Equal(t, int64(10), allocationStock(t, db, product.ID, loc.ID))

	require.NoError(t, repo.SetStock(testCtx, alloc.ID, 10, 12))
	assert.Equal(t, int64(12), allocationStock(t, db, product.ID, loc.ID))
}

func TestStockLedger_StaleDeleteRejected(t *testing.T) {
	db := setupSQLiteDB(t)
	repo := NewGormAllocationRepository(db)

	product := seedProduct(t, db, "Desk Lamp", decimal.NewFromInt(100), 0)
	loc := seedLocation(t, db, "BKK01", "Bangkok")
	alloc := seedAllocation(t, db, product.ID, loc.ID, 10)

	// A delete planned before a restore bumped the row must not discard
	// the restored units.
	err := repo.Delete(testCtx, alloc.ID, 9)
	require.ErrorIs(t, err, shared.ErrConcurrencyConflict)
	assert.Equal(t, int64(10), allocationStock(t, db, product.ID, loc.ID))

	require.NoError(t, repo.Delete(testCtx, alloc.ID, 10))
	gone, err := repo.FindByID(testCtx, alloc.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestStockFlow_ListLowStock(t *testing.T) {
	db := setupSQLiteDB(t)
	svc := newStockService(db)

	productA := seedProduct(t, db, "Desk Lamp", decimal.NewFromInt(100), 0)
	productB := seedProduct(t, db, "Office Chair", decimal.NewFromInt(300), 0)
	loc := seedLocation(t, db, "BKK01", "Bangkok")
	seedAllocation(t, db, productA.ID, loc.ID, 3)
	seedAllocation(t, db, productB.ID, loc.ID, 80)

	low, err := svc.ListLowStock(testCtx, loc.ID, 10)
	require.NoError(t, err)
	require.Len(t, low, 1)
	assert.Equal(t, productA.ID, low[0].ProductID)
}
