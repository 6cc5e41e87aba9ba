package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/vialtrack/vialtrack-api/internal/application/service"
	"github.com/vialtrack/vialtrack-api/internal/domain/enum"
	"github.com/vialtrack/vialtrack-api/internal/domain/repository"
	"github.com/vialtrack/vialtrack-api/internal/presentation/http/dto/response"
)

// ContactHandler handles contact HTTP requests
type ContactHandler struct {
	contactService *service.ContactService
}

// NewContactHandler creates a new contact handler
func NewContactHandler(contactService *service.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

// Create handles creating a contact
func (h *ContactHandler) Create(c *gin.Context) {
	var req struct {
		Name            string     `json:"name" binding:"required"`
		Email           *string    `json:"email"`
		Phone           *string    `json:"phone"`
		Type            string     `json:"type"`
		AssignedRepID   *uuid.UUID `json:"assigned_rep_id"`
		ShippingAddress *string    `json:"shipping_address"`
		Notes           *string    `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	contact, err := h.contactService.CreateContact(c.Request.Context(), &service.CreateContactInput{
		Name:            req.Name,
		Email:           req.Email,
		Phone:           req.Phone,
		Type:            enum.ContactType(req.Type),
		AssignedRepID:   req.AssignedRepID,
		ShippingAddress: req.ShippingAddress,
		Notes:           req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Contact created successfully", contact)
}

// Get handles retrieving a single contact
func (h *ContactHandler) Get(c *gin.Context) {
	id := parseUUIDParam(c, "id")
	if id == nil {
		response.BadRequest(c, "Invalid contact ID")
		return
	}

	contact, err := h.contactService.GetContact(c.Request.Context(), *id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Contact retrieved successfully", contact)
}

// List handles listing contacts with search and type filters
func (h *ContactHandler) List(c *gin.Context) {
	params := &repository.ContactFilterParams{
		Pagination:    pageParams(c),
		Search:        c.Query("search"),
		AssignedRepID: optionalUUIDQuery(c, "assigned_rep_id"),
		SortBy:        c.Query("sort_by"),
		SortOrder:     c.Query("sort_order"),
	}
	if raw := c.Query("type"); raw != "" {
		contactType := enum.ContactType(raw)
		params.Type = &contactType
	}

	result, err := h.contactService.ListContacts(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Contacts retrieved successfully", result)
}

// Update handles updating a contact's fields
func (h *ContactHandler) Update(c *gin.Context) {
	id := parseUUIDParam(c, "id")
	if id == nil {
		response.BadRequest(c, "Invalid contact ID")
		return
	}

	var req struct {
		Name            *string    `json:"name"`
		Email           *string    `json:"email"`
		Phone           *string    `json:"phone"`
		Type            *string    `json:"type"`
		AssignedRepID   *uuid.UUID `json:"assigned_rep_id"`
		ShippingAddress *string    `json:"shipping_address"`
		Notes           *string    `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	input := &service.UpdateContactInput{
		Name:            req.Name,
		Email:           req.Email,
		Phone:           req.Phone,
		AssignedRepID:   req.AssignedRepID,
		ShippingAddress: req.ShippingAddress,
		Notes:           req.Notes,
	}
	if req.Type != nil {
		contactType := enum.ContactType(*req.Type)
		input.Type = &contactType
	}

	contact, err := h.contactService.UpdateContact(c.Request.Context(), *id, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Contact updated successfully", contact)
}

// Delete handles deleting a contact
func (h *ContactHandler) Delete(c *gin.Context) {
	id := parseUUIDParam(c, "id")
	if id == nil {
		response.BadRequest(c, "Invalid contact ID")
		return
	}

	if err := h.contactService.DeleteContact(c.Request.Context(), *id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Contact deleted successfully", nil)
}

// Me handles retrieving the contact linked to the authenticated portal user
func (h *ContactHandler) Me(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	contact, err := h.contactService.GetContactForUser(c.Request.Context(), *userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Contact retrieved successfully", contact)
}
