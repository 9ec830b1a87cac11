package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/retail/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ProductStatus represents the status of a product
type ProductStatus string

const (
	ProductStatusActive   ProductStatus = "ACTIVE"
	ProductStatusInactive ProductStatus = "INACTIVE"
)

// Product is the aggregate root for catalog items.
//
// GlobalStock is the unallocated pool. Stock held at sales locations lives in
// inventory.Allocation rows; the conserved quantity for a product is
// GlobalStock plus the sum of its allocations.
type Product struct {
	shared.BaseAggregateRoot
	Name        string          `gorm:"type:varchar(200);not null"`
	Description string          `gorm:"type:text"`
	Price       decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Cost        decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	BasePrice   decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	GlobalStock int64           `gorm:"not null;default:0"`
	Status      ProductStatus   `gorm:"type:varchar(20);not null;default:'ACTIVE'"`
	ImageURL    string          `gorm:"type:text"`
	CategoryID  *uuid.UUID      `gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new active product with an empty allocation pool
func NewProduct(name string, price, cost, basePrice decimal.Decimal, globalStock int64) (*Product, error) {
	if err := validateProductName(name); err != nil {
		return nil, err
	}
	if price.IsNegative() || cost.IsNegative() || basePrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Prices cannot be negative")
	}
	if globalStock < 0 {
		return nil, shared.NewDomainError("INVALID_STOCK", "Global stock cannot be negative")
	}

	return &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Price:             price,
		Cost:              cost,
		BasePrice:         basePrice,
		GlobalStock:       globalStock,
		Status:            ProductStatusActive,
	}, nil
}

// Update updates the product's basic information
func (p *Product) Update(name, description string, price, cost, basePrice decimal.Decimal) error {
	if err := validateProductName(name); err != nil {
		return err
	}
	if price.IsNegative() || cost.IsNegative() || basePrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Prices cannot be negative")
	}

	p.Name = name
	p.Description = description
	p.Price = price
	p.Cost = cost
	p.BasePrice = basePrice
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// SetImageURL sets the product image location
func (p *Product) SetImageURL(url string) {
	p.ImageURL = url
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// SetCategory sets the product category
func (p *Product) SetCategory(categoryID *uuid.UUID) {
	p.CategoryID = categoryID
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// Activate makes the product sellable again
func (p *Product) Activate() error {
	if p.Status == ProductStatusActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Product is already active")
	}
	p.Status = ProductStatusActive
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}

// Deactivate removes the product from sale without touching stock
func (p *Product) Deactivate() error {
	if p.Status == ProductStatusInactive {
		return shared.NewDomainError("ALREADY_INACTIVE", "Product is already inactive")
	}
	p.Status = ProductStatusInactive
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}

// CanSell reports whether the product may appear on new orders
func (p *Product) CanSell() bool {
	return p.Status == ProductStatusActive
}

// IsActive returns true if the product is active
func (p *Product) IsActive() bool {
	return p.Status == ProductStatusActive
}

// GetProfitMargin returns the profit margin percentage.
// Returns 0 if cost is zero.
func (p *Product) GetProfitMargin() decimal.Decimal {
	if p.Cost.IsZero() {
		return decimal.Zero
	}
	return p.Price.Sub(p.Cost).Div(p.Cost).Mul(decimal.NewFromInt(100))
}

func validateProductName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 200 characters")
	}
	return nil
}
