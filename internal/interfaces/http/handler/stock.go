package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	inventoryapp "github.com/retail/backend/internal/application/inventory"
)

// StockHandler handles stock ledger API endpoints
type StockHandler struct {
	BaseHandler
	stockService *inventoryapp.StockService
}

// NewStockHandler creates a new StockHandler
func NewStockHandler(stockService *inventoryapp.StockService) *StockHandler {
	return &StockHandler{stockService: stockService}
}

// UpdateStock handles POST /stock/update
func (h *StockHandler) UpdateStock(c *gin.Context) {
	var req inventoryapp.UpdateStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	level, err := h.stockService.UpdateStock(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, level)
}

// Transfer handles POST /stock/transfer
func (h *StockHandler) Transfer(c *gin.Context) {
	var req inventoryapp.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if err := h.stockService.Transfer(c.Request.Context(), req); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"transferred": req.Quantity})
}

// SetAvailability handles POST /stock/availability
func (h *StockHandler) SetAvailability(c *gin.Context) {
	var req inventoryapp.SetAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	alloc, err := h.stockService.SetAvailability(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, alloc)
}

// RemoveAllocation handles DELETE /locations/:id/stock/:product_id
func (h *StockHandler) RemoveAllocation(c *gin.Context) {
	locationID, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid location ID")
		return
	}
	productID, err := uuid.Parse(c.Param("product_id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	if err := h.stockService.RemoveAllocation(c.Request.Context(), locationID, productID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// ListLocationStock handles GET /locations/:id/stock
func (h *StockHandler) ListLocationStock(c *gin.Context) {
	locationID, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid location ID")
		return
	}
	filter, err := parseFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	allocs, err := h.stockService.ListLocationStock(c.Request.Context(), locationID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, allocs)
}

// ListLowStock handles GET /locations/:id/stock/low
func (h *StockHandler) ListLowStock(c *gin.Context) {
	locationID, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid location ID")
		return
	}

	threshold := int64(10)
	if raw := c.Query("threshold"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed < 0 {
			h.BadRequest(c, "Invalid threshold")
			return
		}
		threshold = parsed
	}

	allocs, err := h.stockService.ListLowStock(c.Request.Context(), locationID, threshold)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, allocs)
}

// GetProductAllocations handles GET /products/:id/allocations
func (h *StockHandler) GetProductAllocations(c *gin.Context) {
	productID, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	allocs, err := h.stockService.GetProductAllocations(c.Request.Context(), productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, allocs)
}
