// Package catalog manages products at the depth the order flow needs:
// price and status snapshots, the global stock pool, and delete-with-history
// semantics.
package catalog

import (
	"context"

	"github.com/google/uuid"
	inventoryapp "github.com/retail/backend/internal/application/inventory"
	"github.com/retail/backend/internal/domain/catalog"
	"github.com/retail/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CreateProductRequest creates a product
type CreateProductRequest struct {
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	Cost        decimal.Decimal `json:"cost"`
	BasePrice   decimal.Decimal `json:"base_price"`
	GlobalStock int64           `json:"global_stock" binding:"min=0"`
	ImageURL    string          `json:"image_url"`
	CategoryID  *uuid.UUID      `json:"category_id"`
}

// UpdateProductRequest updates a product's details
type UpdateProductRequest struct {
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	Cost        decimal.Decimal `json:"cost"`
	BasePrice   decimal.Decimal `json:"base_price"`
	ImageURL    string          `json:"image_url"`
	Status      string          `json:"status" binding:"omitempty,oneof=ACTIVE INACTIVE"`
}

// ProductService manages the catalog boundary of the stock ledger
type ProductService struct {
	txScope inventoryapp.TransactionScope
	logger  *zap.Logger
}

// NewProductService creates a new ProductService
func NewProductService(txScope inventoryapp.TransactionScope, logger *zap.Logger) *ProductService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProductService{txScope: txScope, logger: logger}
}

// Create creates a product whose initial stock sits entirely in the pool
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*catalog.Product, error) {
	product, err := catalog.NewProduct(req.Name, req.Price, req.Cost, req.BasePrice, req.GlobalStock)
	if err != nil {
		return nil, err
	}
	product.Description = req.Description
	product.ImageURL = req.ImageURL
	product.CategoryID = req.CategoryID

	err = s.txScope.Execute(ctx, func(repos inventoryapp.TransactionalRepositories) error {
		return repos.Products().Save(ctx, product)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("product created", zap.String("product_id", product.ID.String()), zap.String("name", product.Name))
	return product, nil
}

// Get returns one product
func (s *ProductService) Get(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	var product *catalog.Product
	err := s.txScope.Execute(ctx, func(repos inventoryapp.TransactionalRepositories) error {
		p, err := repos.Products().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if p == nil {
			return shared.ErrProductNotFound
		}
		product = p
		return nil
	})
	return product, err
}

// List returns products matching the filter
func (s *ProductService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[catalog.Product], error) {
	var page *shared.Paginated[catalog.Product]
	err := s.txScope.Execute(ctx, func(repos inventoryapp.TransactionalRepositories) error {
		products, err := repos.Products().FindAll(ctx, filter)
		if err != nil {
			return err
		}
		total, err := repos.Products().Count(ctx, filter)
		if err != nil {
			return err
		}
		p := shared.NewPaginated(products, total, filter.Page, filter.PageSize)
		page = &p
		return nil
	})
	return page, err
}

// Update updates product details and status. Stock is never edited here;
// pool and allocation changes go through the stock ledger.
func (s *ProductService) Update(ctx context.Context, id uuid.UUID, req UpdateProductRequest) (*catalog.Product, error) {
	var product *catalog.Product
	err := s.txScope.Execute(ctx, func(repos inventoryapp.TransactionalRepositories) error {
		p, err := repos.Products().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if p == nil {
			return shared.ErrProductNotFound
		}

		if err := p.Update(req.Name, req.Description, req.Price, req.Cost, req.BasePrice); err != nil {
			return err
		}
		if req.ImageURL != "" {
			p.SetImageURL(req.ImageURL)
		}
		switch catalog.ProductStatus(req.Status) {
		case catalog.ProductStatusActive:
			if !p.IsActive() {
				if err := p.Activate(); err != nil {
					return err
				}
			}
		case catalog.ProductStatusInactive:
			if p.IsActive() {
				if err := p.Deactivate(); err != nil {
					return err
				}
			}
		}

		if err := repos.Products().SaveWithLock(ctx, p); err != nil {
			return err
		}
		product = p
		return nil
	})
	return product, err
}

// Delete removes a product and its allocations. Order history survives:
// the order_items foreign key nulls product_id on delete while the price
// snapshot stays on the line.
func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.txScope.Execute(ctx, func(repos inventoryapp.TransactionalRepositories) error {
		p, err := repos.Products().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if p == nil {
			return shared.ErrProductNotFound
		}

		if err := repos.Allocations().DeleteByProduct(ctx, id); err != nil {
			return err
		}
		return repos.Products().Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	s.logger.Info("product deleted", zap.String("product_id", id.String()))
	return nil
}
