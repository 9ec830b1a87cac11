package handler

import (
	"github.com/gin-gonic/gin"
	shippingapp "github.com/retail/backend/internal/application/shipping"
)

// ShippingHandler handles shipping quote and availability API endpoints
type ShippingHandler struct {
	BaseHandler
	quoteService *shippingapp.QuoteService
}

// NewShippingHandler creates a new ShippingHandler
func NewShippingHandler(quoteService *shippingapp.QuoteService) *ShippingHandler {
	return &ShippingHandler{quoteService: quoteService}
}

// Quote handles POST /shipping/quote
func (h *ShippingHandler) Quote(c *gin.Context) {
	var req shippingapp.QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	quote, err := h.quoteService.Quote(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, quote)
}

// CheckAvailability handles GET /products/:id/availability
func (h *ShippingHandler) CheckAvailability(c *gin.Context) {
	productID, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	entries, err := h.quoteService.CheckAvailability(c.Request.Context(), productID, c.Query("province"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, entries)
}
