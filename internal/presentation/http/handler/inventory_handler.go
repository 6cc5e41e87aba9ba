package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/vialtrack/vialtrack-api/internal/application/service"
	"github.com/vialtrack/vialtrack-api/internal/domain/enum"
	"github.com/vialtrack/vialtrack-api/internal/domain/repository"
	"github.com/vialtrack/vialtrack-api/internal/presentation/http/dto/response"
)

// InventoryHandler handles peptide, lot and bottle HTTP requests
type InventoryHandler struct {
	inventoryService *service.InventoryService
}

// NewInventoryHandler creates a new inventory handler
func NewInventoryHandler(inventoryService *service.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventoryService: inventoryService}
}

// CreatePeptide handles creating a peptide product
func (h *InventoryHandler) CreatePeptide(c *gin.Context) {
	var req struct {
		Name      string  `json:"name" binding:"required"`
		SKU       string  `json:"sku"`
		BasePrice float64 `json:"base_price"`
		VialSize  *string `json:"vial_size"`
		Notes     *string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	peptide, err := h.inventoryService.CreatePeptide(c.Request.Context(), &service.CreatePeptideInput{
		Name:      req.Name,
		SKU:       req.SKU,
		BasePrice: req.BasePrice,
		VialSize:  req.VialSize,
		Notes:     req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Peptide created successfully", peptide)
}

// GetPeptide handles retrieving a single peptide
func (h *InventoryHandler) GetPeptide(c *gin.Context) {
	id := parseUUIDParam(c, "id")
	if id == nil {
		response.BadRequest(c, "Invalid peptide ID")
		return
	}

	peptide, err := h.inventoryService.GetPeptide(c.Request.Context(), *id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Peptide retrieved successfully", peptide)
}

// ListPeptides handles listing peptides with derived stock counts
func (h *InventoryHandler) ListPeptides(c *gin.Context) {
	params := &repository.PeptideFilterParams{
		Pagination: pageParams(c),
		Search:     c.Query("search"),
		SortBy:     c.Query("sort_by"),
		SortOrder:  c.Query("sort_order"),
	}

	result, err := h.inventoryService.ListPeptides(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Peptides retrieved successfully", result)
}

// UpdatePeptide handles updating a peptide's fields
func (h *InventoryHandler) UpdatePeptide(c *gin.Context) {
	id := parseUUIDParam(c, "id")
	if id == nil {
		response.BadRequest(c, "Invalid peptide ID")
		return
	}

	var req struct {
		Name      *string  `json:"name"`
		SKU       *string  `json:"sku"`
		BasePrice *float64 `json:"base_price"`
		VialSize  *string  `json:"vial_size"`
		Notes     *string  `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	peptide, err := h.inventoryService.UpdatePeptide(c.Request.Context(), *id, &service.UpdatePeptideInput{
		Name:      req.Name,
		SKU:       req.SKU,
		BasePrice: req.BasePrice,
		VialSize:  req.VialSize,
		Notes:     req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Peptide updated successfully", peptide)
}

// DeletePeptide handles deleting a peptide without stock
func (h *InventoryHandler) DeletePeptide(c *gin.Context) {
	id := parseUUIDParam(c, "id")
	if id == nil {
		response.BadRequest(c, "Invalid peptide ID")
		return
	}

	if err := h.inventoryService.DeletePeptide(c.Request.Context(), *id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Peptide deleted successfully", nil)
}

// CreateLot handles receiving a lot and generating its bottles
func (h *InventoryHandler) CreateLot(c *gin.Context) {
	var req struct {
		PeptideID        uuid.UUID  `json:"peptide_id" binding:"required"`
		LotNumber        string     `json:"lot_number"`
		QuantityReceived int        `json:"quantity_received" binding:"required"`
		CostPerUnit      float64    `json:"cost_per_unit"`
		PaymentStatus    string     `json:"payment_status"`
		ReceivedDate     *time.Time `json:"received_date"`
		ExpiryDate       *time.Time `json:"expiry_date"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	lot, err := h.inventoryService.CreateLot(c.Request.Context(), &service.CreateLotInput{
		PeptideID:        req.PeptideID,
		LotNumber:        req.LotNumber,
		QuantityReceived: req.QuantityReceived,
		CostPerUnit:      req.CostPerUnit,
		PaymentStatus:    enum.PaymentStatus(req.PaymentStatus),
		ReceivedDate:     req.ReceivedDate,
		ExpiryDate:       req.ExpiryDate,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Lot received successfully", lot)
}

// GetLot handles retrieving a lot with its bottles
func (h *InventoryHandler) GetLot(c *gin.Context) {
	id := parseUUIDParam(c, "id")
	if id == nil {
		response.BadRequest(c, "Invalid lot ID")
		return
	}

	lot, err := h.inventoryService.GetLot(c.Request.Context(), *id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Lot retrieved successfully", lot)
}

// ListLots handles listing lots
func (h *InventoryHandler) ListLots(c *gin.Context) {
	params := &repository.LotFilterParams{
		Pagination: pageParams(c),
		PeptideID:  optionalUUIDQuery(c, "peptide_id"),
		SortBy:     c.Query("sort_by"),
		SortOrder:  c.Query("sort_order"),
	}
	if raw := c.Query("payment_status"); raw != "" {
		status := enum.PaymentStatus(raw)
		params.PaymentStatus = &status
	}

	result, err := h.inventoryService.ListLots(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Lots retrieved successfully", result)
}

// UpdateLotPaymentStatus handles marking a lot's supplier payment state
func (h *InventoryHandler) UpdateLotPaymentStatus(c *gin.Context) {
	id := parseUUIDParam(c, "id")
	if id == nil {
		response.BadRequest(c, "Invalid lot ID")
		return
	}

	var req struct {
		PaymentStatus string `json:"payment_status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	if err := h.inventoryService.UpdateLotPaymentStatus(c.Request.Context(), *id, enum.PaymentStatus(req.PaymentStatus)); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Lot payment status updated successfully", nil)
}

// DeleteLot handles deleting a lot and its unsold bottles
func (h *InventoryHandler) DeleteLot(c *gin.Context) {
	id := parseUUIDParam(c, "id")
	if id == nil {
		response.BadRequest(c, "Invalid lot ID")
		return
	}

	if err := h.inventoryService.DeleteLot(c.Request.Context(), *id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Lot deleted successfully", nil)
}

// ListBottles handles listing bottles filtered by status
func (h *InventoryHandler) ListBottles(c *gin.Context) {
	status := enum.BottleStatus(c.DefaultQuery("status", string(enum.BottleStatusInStock)))

	result, err := h.inventoryService.ListBottles(c.Request.Context(), status, pageParams(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Bottles retrieved successfully", result)
}
