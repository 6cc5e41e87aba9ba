package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/vialtrack/vialtrack-api/internal/application/service"
	"github.com/vialtrack/vialtrack-api/internal/presentation/http/dto/response"
)

// OrgHandler handles organization HTTP requests
type OrgHandler struct {
	orgService *service.OrgService
}

// NewOrgHandler creates a new org handler
func NewOrgHandler(orgService *service.OrgService) *OrgHandler {
	return &OrgHandler{orgService: orgService}
}

// GetCurrent handles retrieving the caller's organization
func (h *OrgHandler) GetCurrent(c *gin.Context) {
	org, err := h.orgService.GetCurrent(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Org retrieved successfully", org)
}

// UpdateCurrent handles updating the caller's organization
func (h *OrgHandler) UpdateCurrent(c *gin.Context) {
	var req struct {
		Name *string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	org, err := h.orgService.UpdateCurrent(c.Request.Context(), &service.UpdateCurrentInput{
		Name: req.Name,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Org updated successfully", org)
}
