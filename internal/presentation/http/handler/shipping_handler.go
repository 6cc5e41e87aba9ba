package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/vialtrack/vialtrack-api/internal/application/service"
	"github.com/vialtrack/vialtrack-api/internal/domain/enum"
	"github.com/vialtrack/vialtrack-api/internal/presentation/http/dto/response"
)

// ShippingHandler handles order shipping HTTP requests
type ShippingHandler struct {
	shippingService *service.ShippingService
}

// NewShippingHandler creates a new shipping handler
func NewShippingHandler(shippingService *service.ShippingService) *ShippingHandler {
	return &ShippingHandler{shippingService: shippingService}
}

// GetRates handles quoting carrier rates for an order
func (h *ShippingHandler) GetRates(c *gin.Context) {
	id := parseUUIDParam(c, "id")
	if id == nil {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	rates, err := h.shippingService.GetRates(c.Request.Context(), *id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Rates retrieved successfully", rates)
}

// BuyLabel handles purchasing a label for a previously quoted rate
func (h *ShippingHandler) BuyLabel(c *gin.Context) {
	id := parseUUIDParam(c, "id")
	if id == nil {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	var req struct {
		RateID string `json:"rate_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	order, err := h.shippingService.BuyLabel(c.Request.Context(), *id, req.RateID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Label purchased successfully", order)
}

// QuickShip handles buying the cheapest label in one call
func (h *ShippingHandler) QuickShip(c *gin.Context) {
	id := parseUUIDParam(c, "id")
	if id == nil {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	order, err := h.shippingService.QuickShip(c.Request.Context(), *id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Label purchased successfully", order)
}

// PrintLabel handles sending an order's label to the print agent
func (h *ShippingHandler) PrintLabel(c *gin.Context) {
	id := parseUUIDParam(c, "id")
	if id == nil {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	result, err := h.shippingService.PrintLabel(c.Request.Context(), *id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Print dispatched", result)
}

// AdvanceStatus handles moving an order along the shipping pipeline
func (h *ShippingHandler) AdvanceStatus(c *gin.Context) {
	id := parseUUIDParam(c, "id")
	if id == nil {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	order, err := h.shippingService.AdvanceStatus(c.Request.Context(), *id, enum.ShippingStatus(req.Status))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Shipping status updated successfully", order)
}
