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

// MovementHandler handles stock movement HTTP requests
type MovementHandler struct {
	movementService *service.MovementService
}

// NewMovementHandler creates a new movement handler
func NewMovementHandler(movementService *service.MovementService) *MovementHandler {
	return &MovementHandler{movementService: movementService}
}

// Create handles recording a manual stock movement
func (h *MovementHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req struct {
		Type          string      `json:"type" binding:"required"`
		ContactID     *uuid.UUID  `json:"contact_id"`
		MovementDate  *time.Time  `json:"movement_date"`
		PaymentStatus string      `json:"payment_status"`
		PaymentMethod *string     `json:"payment_method"`
		AmountPaid    float64     `json:"amount_paid"`
		Notes         *string     `json:"notes"`
		BottleIDs     []uuid.UUID `json:"bottle_ids" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	movement, err := h.movementService.CreateMovement(c.Request.Context(), &service.CreateMovementInput{
		Type:          enum.MovementType(req.Type),
		ContactID:     req.ContactID,
		MovementDate:  req.MovementDate,
		PaymentStatus: enum.PaymentStatus(req.PaymentStatus),
		PaymentMethod: req.PaymentMethod,
		AmountPaid:    req.AmountPaid,
		Notes:         req.Notes,
		BottleIDs:     req.BottleIDs,
		CreatedBy:     *userID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Movement recorded successfully", movement)
}

// Get handles retrieving a movement with its items
func (h *MovementHandler) Get(c *gin.Context) {
	id := parseUUIDParam(c, "id")
	if id == nil {
		response.BadRequest(c, "Invalid movement ID")
		return
	}

	movement, err := h.movementService.GetMovement(c.Request.Context(), *id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Movement retrieved successfully", movement)
}

// List handles listing movements
func (h *MovementHandler) List(c *gin.Context) {
	params := &repository.MovementFilterParams{
		Pagination: pageParams(c),
		ContactID:  optionalUUIDQuery(c, "contact_id"),
		SortBy:     c.Query("sort_by"),
		SortOrder:  c.Query("sort_order"),
	}
	if raw := c.Query("type"); raw != "" {
		movementType := enum.MovementType(raw)
		params.Type = &movementType
	}
	params.StartDate, params.EndDate = dateRangeQuery(c)

	result, err := h.movementService.ListMovements(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Movements retrieved successfully", result)
}
