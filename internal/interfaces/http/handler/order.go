package handler

import (
	"github.com/gin-gonic/gin"
	orderapp "github.com/retail/backend/internal/application/order"
	"github.com/retail/backend/internal/infrastructure/auth"
	"github.com/retail/backend/internal/interfaces/http/middleware"
)

// IdempotencyKeyHeader carries the client supplied duplicate suppression key
const IdempotencyKeyHeader = "Idempotency-Key"

// OrderHandler handles order lifecycle API endpoints
type OrderHandler struct {
	BaseHandler
	orderService *orderapp.Service
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService *orderapp.Service) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// Create handles POST /orders
func (h *OrderHandler) Create(c *gin.Context) {
	customerID := middleware.GetJWTUserID(c)
	if customerID == "" {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req orderapp.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	idempotencyKey := c.GetHeader(IdempotencyKeyHeader)
	resp, err := h.orderService.Create(c.Request.Context(), customerID, req, idempotencyKey)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Get handles GET /orders/:id
func (h *OrderHandler) Get(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	resp, err := h.orderService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if !h.canAccessOrder(c, resp.CustomerID) {
		h.Forbidden(c, "You can only access your own orders")
		return
	}
	h.Success(c, resp)
}

// List handles GET /orders. Customers see their own orders; admins see all
// and may filter by customer_id.
func (h *OrderHandler) List(c *gin.Context) {
	var filter orderapp.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if middleware.GetJWTRole(c) != auth.RoleAdmin {
		filter.CustomerID = middleware.GetJWTUserID(c)
		if filter.CustomerID == "" {
			h.Unauthorized(c, "Authentication required")
			return
		}
	}

	page, err := h.orderService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// UploadPayment handles POST /orders/:id/payment
func (h *OrderHandler) UploadPayment(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	var req orderapp.UploadPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	existing, err := h.orderService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if !h.canAccessOrder(c, existing.CustomerID) {
		h.Forbidden(c, "You can only access your own orders")
		return
	}

	resp, err := h.orderService.UploadPayment(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Confirm handles POST /orders/:id/confirm
func (h *OrderHandler) Confirm(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	resp, err := h.orderService.Confirm(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// AddTracking handles POST /orders/:id/tracking
func (h *OrderHandler) AddTracking(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	var req orderapp.AddTrackingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.orderService.AddTracking(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// MarkDelivered handles POST /orders/:id/delivered
func (h *OrderHandler) MarkDelivered(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	resp, err := h.orderService.MarkDelivered(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// UpdateStatus handles PUT /orders/:id/status
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	var req orderapp.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.orderService.UpdateStatus(c.Request.Context(), id, req, middleware.GetJWTUserID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Cancel handles POST /orders/:id/cancel
func (h *OrderHandler) Cancel(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	existing, err := h.orderService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if !h.canAccessOrder(c, existing.CustomerID) {
		h.Forbidden(c, "You can only access your own orders")
		return
	}

	resp, err := h.orderService.Cancel(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// canAccessOrder reports whether the caller owns the order or is an admin
func (h *OrderHandler) canAccessOrder(c *gin.Context, customerID string) bool {
	if middleware.GetJWTRole(c) == auth.RoleAdmin {
		return true
	}
	return middleware.GetJWTUserID(c) == customerID
}
