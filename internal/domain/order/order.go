package order

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/retail/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Item is a line item on an order. ProductID is nullable so that deleting
// a product keeps the order history intact (the price snapshot survives).
type Item struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID *uuid.UUID      `gorm:"type:uuid;index"`
	Quantity  int64           `gorm:"not null"`
	Price     decimal.Decimal `gorm:"type:decimal(18,2);not null"` // unit price at order time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName returns the table name for GORM
func (Item) TableName() string {
	return "order_items"
}

// NewItem creates an order line with a price snapshot
func NewItem(orderID, productID uuid.UUID, quantity int64, price decimal.Decimal) (*Item, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}

	now := time.Now()
	pid := productID
	return &Item{
		ID:        uuid.New(),
		OrderID:   orderID,
		ProductID: &pid,
		Quantity:  quantity,
		Price:     price,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Subtotal returns quantity times the snapshotted unit price
func (i *Item) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(i.Quantity))
}

// Order is the aggregate root of the order lifecycle.
//
// SalesLocationID points at the location whose allocations were drained at
// creation; cancellation restores stock there. DeliveryAddressID is set for
// online orders only.
type Order struct {
	shared.BaseAggregateRoot
	OrderNumber       string          `gorm:"type:varchar(20);not null;uniqueIndex"`
	CustomerID        string          `gorm:"type:varchar(100);not null;index"`
	Status            Status          `gorm:"type:varchar(20);not null;default:'CREATED';index"`
	TotalAmount       decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	ShippingFee       decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Province          string          `gorm:"type:varchar(100)"`
	District          string          `gorm:"type:varchar(100)"`
	PostalCode        string          `gorm:"type:varchar(20)"`
	Phone             string          `gorm:"type:varchar(30)"`
	Address           string          `gorm:"type:text"`
	Note              string          `gorm:"type:text"`
	SalesLocationID   *uuid.UUID      `gorm:"type:uuid;index"`
	DeliveryAddressID *uuid.UUID      `gorm:"type:uuid"`
	PaymentImage      string          `gorm:"type:text"`
	PaymentAt         *time.Time
	TrackingNumber    string `gorm:"type:varchar(100)"`
	Items             []Item `gorm:"foreignKey:OrderID"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// FormatOrderNumber renders the running order sequence as ORD000001 style
func FormatOrderNumber(seq int64) string {
	return fmt.Sprintf("ORD%06d", seq)
}

// NewOrder creates an order in CREATED with no items attached yet
func NewOrder(orderNumber, customerID string) (*Order, error) {
	if orderNumber == "" {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot be empty")
	}
	if customerID == "" {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}

	return &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OrderNumber:       orderNumber,
		CustomerID:        customerID,
		Status:            StatusCreated,
		TotalAmount:       decimal.Zero,
		ShippingFee:       decimal.Zero,
	}, nil
}

// AddItem appends a line and folds its subtotal into the order total
func (o *Order) AddItem(productID uuid.UUID, quantity int64, price decimal.Decimal) error {
	item, err := NewItem(o.ID, productID, quantity, price)
	if err != nil {
		return err
	}
	o.Items = append(o.Items, *item)
	o.TotalAmount = o.TotalAmount.Add(item.Subtotal())
	o.UpdatedAt = time.Now()
	return nil
}

// SetShippingFee folds the delivery fee into the order total
func (o *Order) SetShippingFee(fee decimal.Decimal) error {
	if fee.IsNegative() {
		return shared.NewDomainError("INVALID_FEE", "Shipping fee cannot be negative")
	}
	o.TotalAmount = o.TotalAmount.Sub(o.ShippingFee).Add(fee)
	o.ShippingFee = fee
	o.UpdatedAt = time.Now()
	return nil
}

// SetDestination records where the order ships to
func (o *Order) SetDestination(province, district, address, postalCode, phone string) {
	o.Province = province
	o.District = district
	o.Address = address
	o.PostalCode = postalCode
	o.Phone = phone
	o.UpdatedAt = time.Now()
}

// AssignFulfillment records which location and dispatch address serve the order
func (o *Order) AssignFulfillment(salesLocationID uuid.UUID, deliveryAddressID *uuid.UUID) {
	id := salesLocationID
	o.SalesLocationID = &id
	o.DeliveryAddressID = deliveryAddressID
	o.UpdatedAt = time.Now()
}

// RecordPayment stores the payment proof and moves the order to PAID
func (o *Order) RecordPayment(imageURL string) error {
	if !o.Status.CanTransitionTo(StatusPaid) {
		return transitionError(o.Status, StatusPaid)
	}
	now := time.Now()
	o.PaymentImage = imageURL
	o.PaymentAt = &now
	o.Status = StatusPaid
	o.UpdatedAt = now
	o.IncrementVersion()
	return nil
}

// Confirm acknowledges payment review and moves the order to CONFIRMED
func (o *Order) Confirm() error {
	if !o.Status.CanTransitionTo(StatusConfirmed) {
		return transitionError(o.Status, StatusConfirmed)
	}
	o.Status = StatusConfirmed
	o.UpdatedAt = time.Now()
	o.IncrementVersion()
	return nil
}

// AssignTracking stores the carrier reference and moves the order to SHIPPED
func (o *Order) AssignTracking(trackingNumber string) error {
	if trackingNumber == "" {
		return shared.NewDomainError("INVALID_TRACKING", "Tracking number cannot be empty")
	}
	if !o.Status.CanTransitionTo(StatusShipped) {
		return transitionError(o.Status, StatusShipped)
	}
	o.TrackingNumber = trackingNumber
	o.Status = StatusShipped
	o.UpdatedAt = time.Now()
	o.IncrementVersion()
	return nil
}

// MarkDelivered completes the order
func (o *Order) MarkDelivered() error {
	if !o.Status.CanTransitionTo(StatusDelivered) {
		return transitionError(o.Status, StatusDelivered)
	}
	o.Status = StatusDelivered
	o.UpdatedAt = time.Now()
	o.IncrementVersion()
	return nil
}

// Cancel voids the order. Shipped and delivered orders cannot be cancelled;
// stock restoration is the caller's responsibility.
func (o *Order) Cancel() error {
	if !o.Status.IsCancellable() {
		return transitionError(o.Status, StatusCancelled)
	}
	o.Status = StatusCancelled
	o.UpdatedAt = time.Now()
	o.IncrementVersion()
	return nil
}

// OverrideStatus force-sets the status without transition guards. Reserved
// for administrative correction; callers must audit the change.
func (o *Order) OverrideStatus(target Status) error {
	if !target.IsValid() {
		return shared.NewDomainError("INVALID_INPUT", fmt.Sprintf("Unknown order status %q", target))
	}
	o.Status = target
	o.UpdatedAt = time.Now()
	o.IncrementVersion()
	return nil
}

// IsCancellable reports whether the order may still be cancelled
func (o *Order) IsCancellable() bool {
	return o.Status.IsCancellable()
}

func transitionError(from, to Status) error {
	return shared.NewDomainError("INVALID_TRANSITION",
		fmt.Sprintf("Cannot transition order from %s to %s", from, to))
}
