package persistence

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/retail/backend/internal/domain/catalog"
	"github.com/retail/backend/internal/domain/inventory"
	"github.com/retail/backend/internal/domain/location"
	"github.com/retail/backend/internal/domain/order"
	"github.com/retail/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// setupSQLiteDB opens an in-memory database and migrates the full schema.
// The pool is capped at one connection so every query sees the same
// in-memory database.
func setupSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&catalog.Product{},
		&location.SalesLocation{},
		&location.DeliveryAddress{},
		&inventory.Allocation{},
		&order.Order{},
		&order.Item{},
	))
	return db
}

func seedProduct(t *testing.T, db *gorm.DB, name string, price decimal.Decimal, globalStock int64) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct(name, price, price.Div(decimal.NewFromInt(2)), price, globalStock)
	require.NoError(t, err)
	require.NoError(t, db.Create(p).Error)
	return p
}

func seedLocation(t *testing.T, db *gorm.DB, code, province string) *location.SalesLocation {
	t.Helper()
	loc, err := location.NewSalesLocation(code, code+" store", province, location.LocationTypeStore)
	require.NoError(t, err)
	require.NoError(t, db.Create(loc).Error)
	return loc
}

func seedDeliveryAddress(t *testing.T, db *gorm.DB, code, province string) *location.DeliveryAddress {
	t.Helper()
	addr, err := location.NewDeliveryAddress(code, code+" depot", province)
	require.NoError(t, err)
	require.NoError(t, db.Create(addr).Error)
	return addr
}

func seedAllocation(t *testing.T, db *gorm.DB, productID, locationID uuid.UUID, stock int64) *inventory.Allocation {
	t.Helper()
	alloc := inventory.NewAllocation(productID, locationID)
	alloc.Stock = stock
	require.NoError(t, db.Create(alloc).Error)
	return alloc
}

// allocationStock reads the current stock of one (product, location) pair
func allocationStock(t *testing.T, db *gorm.DB, productID, locationID uuid.UUID) int64 {
	t.Helper()
	var alloc inventory.Allocation
	err := db.Where("product_id = ? AND sales_location_id = ?", productID, locationID).
		First(&alloc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0
	}
	require.NoError(t, err)
	return alloc.Stock
}

func productGlobalStock(t *testing.T, db *gorm.DB, productID uuid.UUID) int64 {
	t.Helper()
	var p catalog.Product
	require.NoError(t, db.First(&p, "id = ?", productID).Error)
	return p.GlobalStock
}

// totalStock sums the global pool and every allocation of one product.
// Order flows and transfers must leave this constant.
func totalStock(t *testing.T, db *gorm.DB, productID uuid.UUID) int64 {
	t.Helper()
	total := productGlobalStock(t, db, productID)
	var allocs []inventory.Allocation
	require.NoError(t, db.Where("product_id = ?", productID).Find(&allocs).Error)
	for i := range allocs {
		total += allocs[i].Stock
	}
	return total
}

func requireDomainCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr), "expected domain error, got %v", err)
	require.Equal(t, code, domainErr.Code)
}

func countRows(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}

var testCtx = context.Background()
