package handler

import (
	"github.com/gin-gonic/gin"
	locationapp "github.com/retail/backend/internal/application/location"
)

// LocationHandler handles sales location and delivery address API endpoints
type LocationHandler struct {
	BaseHandler
	locationService *locationapp.Service
}

// NewLocationHandler creates a new LocationHandler
func NewLocationHandler(locationService *locationapp.Service) *LocationHandler {
	return &LocationHandler{locationService: locationService}
}

// CreateSalesLocation handles POST /locations
func (h *LocationHandler) CreateSalesLocation(c *gin.Context) {
	var req locationapp.CreateSalesLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	loc, err := h.locationService.CreateSalesLocation(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, loc)
}

// GetSalesLocation handles GET /locations/:id
func (h *LocationHandler) GetSalesLocation(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid location ID")
		return
	}

	loc, err := h.locationService.GetSalesLocation(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, loc)
}

// ListSalesLocations handles GET /locations
func (h *LocationHandler) ListSalesLocations(c *gin.Context) {
	filter, err := parseFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	page, err := h.locationService.ListSalesLocations(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// UpdateSalesLocation handles PUT /locations/:id
func (h *LocationHandler) UpdateSalesLocation(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid location ID")
		return
	}

	var req locationapp.UpdateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	loc, err := h.locationService.UpdateSalesLocation(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, loc)
}

// DeleteSalesLocation handles DELETE /locations/:id
func (h *LocationHandler) DeleteSalesLocation(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid location ID")
		return
	}

	if err := h.locationService.DeleteSalesLocation(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// CreateDeliveryAddress handles POST /delivery-addresses
func (h *LocationHandler) CreateDeliveryAddress(c *gin.Context) {
	var req locationapp.CreateDeliveryAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	addr, err := h.locationService.CreateDeliveryAddress(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, addr)
}

// GetDeliveryAddress handles GET /delivery-addresses/:id
func (h *LocationHandler) GetDeliveryAddress(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid delivery address ID")
		return
	}

	addr, err := h.locationService.GetDeliveryAddress(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, addr)
}

// ListDeliveryAddresses handles GET /delivery-addresses
func (h *LocationHandler) ListDeliveryAddresses(c *gin.Context) {
	filter, err := parseFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	page, err := h.locationService.ListDeliveryAddresses(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// UpdateDeliveryAddress handles PUT /delivery-addresses/:id
func (h *LocationHandler) UpdateDeliveryAddress(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid delivery address ID")
		return
	}

	var req locationapp.UpdateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	addr, err := h.locationService.UpdateDeliveryAddress(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, addr)
}

// DeleteDeliveryAddress handles DELETE /delivery-addresses/:id
func (h *LocationHandler) DeleteDeliveryAddress(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid delivery address ID")
		return
	}

	if err := h.locationService.DeleteDeliveryAddress(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
