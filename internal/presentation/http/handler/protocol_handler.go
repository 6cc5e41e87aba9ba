package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/vialtrack/vialtrack-api/internal/application/service"
	"github.com/vialtrack/vialtrack-api/internal/domain/repository"
	"github.com/vialtrack/vialtrack-api/internal/presentation/http/dto/response"
)

// ProtocolHandler handles protocol HTTP requests
type ProtocolHandler struct {
	protocolService *service.ProtocolService
}

// NewProtocolHandler creates a new protocol handler
func NewProtocolHandler(protocolService *service.ProtocolService) *ProtocolHandler {
	return &ProtocolHandler{protocolService: protocolService}
}

// protocolItemReq is the wire shape of a protocol line
type protocolItemReq struct {
	ID             *uuid.UUID `json:"id"`
	PeptideID      uuid.UUID  `json:"peptide_id" binding:"required"`
	Dosage         string     `json:"dosage"`
	Frequency      string     `json:"frequency"`
	DurationWeeks  int        `json:"duration_weeks"`
	DurationDays   *int       `json:"duration_days"`
	CostMultiplier float64    `json:"cost_multiplier"`
}

func toProtocolItemInputs(items []protocolItemReq) []service.ProtocolItemInput {
	inputs := make([]service.ProtocolItemInput, 0, len(items))
	for _, item := range items {
		inputs = append(inputs, service.ProtocolItemInput{
			ID:             item.ID,
			PeptideID:      item.PeptideID,
			Dosage:         item.Dosage,
			Frequency:      item.Frequency,
			DurationWeeks:  item.DurationWeeks,
			DurationDays:   item.DurationDays,
			CostMultiplier: item.CostMultiplier,
		})
	}
	return inputs
}

// Create handles creating a protocol or org-level template
func (h *ProtocolHandler) Create(c *gin.Context) {
	var req struct {
		Name        string            `json:"name" binding:"required"`
		Description *string           `json:"description"`
		ContactID   *uuid.UUID        `json:"contact_id"`
		Items       []protocolItemReq `json:"items"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	protocol, err := h.protocolService.CreateProtocol(c.Request.Context(), &service.CreateProtocolInput{
		Name:        req.Name,
		Description: req.Description,
		ContactID:   req.ContactID,
		Items:       toProtocolItemInputs(req.Items),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Protocol created successfully", protocol)
}

// Get handles retrieving a protocol with its items
func (h *ProtocolHandler) Get(c *gin.Context) {
	id := parseUUIDParam(c, "id")
	if id == nil {
		response.BadRequest(c, "Invalid protocol ID")
		return
	}

	protocol, err := h.protocolService.GetProtocol(c.Request.Context(), *id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Protocol retrieved successfully", protocol)
}

// List handles listing protocols, optionally restricted to templates
func (h *ProtocolHandler) List(c *gin.Context) {
	params := &repository.ProtocolFilterParams{
		Pagination:    pageParams(c),
		Search:        c.Query("search"),
		ContactID:     optionalUUIDQuery(c, "contact_id"),
		TemplatesOnly: c.Query("templates_only") == "true",
		SortBy:        c.Query("sort_by"),
		SortOrder:     c.Query("sort_order"),
	}

	result, err := h.protocolService.ListProtocols(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Protocols retrieved successfully", result)
}

// Update handles updating a protocol header and reconciling its items
func (h *ProtocolHandler) Update(c *gin.Context) {
	id := parseUUIDParam(c, "id")
	if id == nil {
		response.BadRequest(c, "Invalid protocol ID")
		return
	}

	var req struct {
		Name        *string           `json:"name"`
		Description *string           `json:"description"`
		ContactID   *uuid.UUID        `json:"contact_id"`
		Items       []protocolItemReq `json:"items"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	protocol, err := h.protocolService.UpdateProtocol(c.Request.Context(), *id, &service.UpdateProtocolInput{
		Name:        req.Name,
		Description: req.Description,
		ContactID:   req.ContactID,
		Items:       toProtocolItemInputs(req.Items),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Protocol updated successfully", protocol)
}

// Delete handles deleting a protocol
func (h *ProtocolHandler) Delete(c *gin.Context) {
	id := parseUUIDParam(c, "id")
	if id == nil {
		response.BadRequest(c, "Invalid protocol ID")
		return
	}

	if err := h.protocolService.DeleteProtocol(c.Request.Context(), *id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Protocol deleted successfully", nil)
}

// AssignTemplate handles cloning a template protocol onto a contact
func (h *ProtocolHandler) AssignTemplate(c *gin.Context) {
	id := parseUUIDParam(c, "id")
	if id == nil {
		response.BadRequest(c, "Invalid protocol ID")
		return
	}

	var req struct {
		ContactID uuid.UUID `json:"contact_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	protocol, err := h.protocolService.AssignTemplate(c.Request.Context(), *id, req.ContactID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Template assigned successfully", protocol)
}
