package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/vialtrack/vialtrack-api/internal/application/service"
	"github.com/vialtrack/vialtrack-api/internal/presentation/http/dto/response"
)

// LeadHandler handles lead submission HTTP requests
type LeadHandler struct {
	leadService *service.LeadService
}

// NewLeadHandler creates a new lead handler
func NewLeadHandler(leadService *service.LeadService) *LeadHandler {
	return &LeadHandler{leadService: leadService}
}

// Submit handles a public lead form submission. No auth required.
func (h *LeadHandler) Submit(c *gin.Context) {
	var req service.SubmitLeadInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	lead, err := h.leadService.SubmitLead(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Thanks, we'll be in touch", lead)
}

// List handles listing submitted leads for review
func (h *LeadHandler) List(c *gin.Context) {
	result, err := h.leadService.ListLeads(c.Request.Context(), pageParams(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Leads retrieved successfully", result)
}
