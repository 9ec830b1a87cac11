package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/retail/backend/internal/domain/order"
	"github.com/shopspring/decimal"
)

// ItemRequest is one requested product line on a new order
type ItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int64     `json:"quantity" binding:"required,min=1"`
}

// CreateOrderRequest creates an order. Exactly one of SalesLocationID
// (in-store pickup, no shipping) or Province (online, selector picks the
// location) drives fulfillment.
type CreateOrderRequest struct {
	Items           []ItemRequest `json:"items" binding:"required,min=1,dive"`
	SalesLocationID *uuid.UUID    `json:"sales_location_id"`
	Province        string        `json:"province"`
	District        string        `json:"district"`
	Address         string        `json:"address"`
	PostalCode      string        `json:"postal_code"`
	Phone           string        `json:"phone"`
	Note            string        `json:"note"`
}

// UploadPaymentRequest attaches a payment proof to an order. Payment is
// either a URL to an already stored image or a base64 encoded image body.
type UploadPaymentRequest struct {
	Payment string `json:"payment" binding:"required"`
}

// AddTrackingRequest ships an order with a carrier reference
type AddTrackingRequest struct {
	TrackingNumber string `json:"tracking_number" binding:"required"`
}

// UpdateStatusRequest force-sets an order status (administrative)
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ListFilter narrows order listings
type ListFilter struct {
	Status     string `form:"status"`
	CustomerID string `form:"customer_id"`
	Page       int    `form:"page"`
	PageSize   int    `form:"page_size"`
}

// ItemResponse represents an order line in API responses
type ItemResponse struct {
	ID        uuid.UUID       `json:"id"`
	ProductID *uuid.UUID      `json:"product_id"`
	Quantity  int64           `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// Response represents an order in API responses
type Response struct {
	ID                uuid.UUID       `json:"id"`
	OrderNumber       string          `json:"order_number"`
	CustomerID        string          `json:"customer_id"`
	Status            string          `json:"status"`
	TotalAmount       decimal.Decimal `json:"total_amount"`
	ShippingFee       decimal.Decimal `json:"shipping_fee"`
	Province          string          `json:"province,omitempty"`
	District          string          `json:"district,omitempty"`
	Address           string          `json:"address,omitempty"`
	PostalCode        string          `json:"postal_code,omitempty"`
	Phone             string          `json:"phone,omitempty"`
	Note              string          `json:"note,omitempty"`
	SalesLocationID   *uuid.UUID      `json:"sales_location_id,omitempty"`
	DeliveryAddressID *uuid.UUID      `json:"delivery_address_id,omitempty"`
	PaymentImage      string          `json:"payment_image,omitempty"`
	PaymentAt         *time.Time      `json:"payment_at,omitempty"`
	TrackingNumber    string          `json:"tracking_number,omitempty"`
	Items             []ItemResponse  `json:"items"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// ToResponse maps an order to its response shape
func ToResponse(o *order.Order) Response {
	items := make([]ItemResponse, 0, len(o.Items))
	for i := range o.Items {
		item := &o.Items[i]
		items = append(items, ItemResponse{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
			Subtotal:  item.Subtotal(),
		})
	}
	return Response{
		ID:                o.ID,
		OrderNumber:       o.OrderNumber,
		CustomerID:        o.CustomerID,
		Status:            o.Status.String(),
		TotalAmount:       o.TotalAmount,
		ShippingFee:       o.ShippingFee,
		Province:          o.Province,
		District:          o.District,
		Address:           o.Address,
		PostalCode:        o.PostalCode,
		Phone:             o.Phone,
		Note:              o.Note,
		SalesLocationID:   o.SalesLocationID,
		DeliveryAddressID: o.DeliveryAddressID,
		PaymentImage:      o.PaymentImage,
		PaymentAt:         o.PaymentAt,
		TrackingNumber:    o.TrackingNumber,
		Items:             items,
		CreatedAt:         o.CreatedAt,
		UpdatedAt:         o.UpdatedAt,
	}
}
