package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/vialtrack/vialtrack-api/internal/application/service"
	"github.com/vialtrack/vialtrack-api/internal/domain/enum"
	"github.com/vialtrack/vialtrack-api/internal/domain/repository"
	"github.com/vialtrack/vialtrack-api/internal/presentation/http/dto/response"
)

// ProfileHandler handles profile and partner-settings HTTP requests
type ProfileHandler struct {
	profileService *service.ProfileService
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(profileService *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// Me handles retrieving the authenticated user's profile
func (h *ProfileHandler) Me(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	profile, err := h.profileService.GetProfile(c.Request.Context(), *userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Profile retrieved successfully", profile)
}

// UpdateMe handles updating the authenticated user's own profile
func (h *ProfileHandler) UpdateMe(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req struct {
		FullName *string `json:"full_name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	profile, err := h.profileService.UpdateProfile(c.Request.Context(), *userID, &service.UpdateProfileInput{
		FullName: req.FullName,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Profile updated successfully", profile)
}

// List handles listing profiles with role and search filters
func (h *ProfileHandler) List(c *gin.Context) {
	params := &repository.ProfileFilterParams{
		Pagination:  pageParams(c),
		Search:      c.Query("search"),
		ParentRepID: optionalUUIDQuery(c, "parent_rep_id"),
		SortBy:      c.Query("sort_by"),
		SortOrder:   c.Query("sort_order"),
	}
	if raw := c.Query("role"); raw != "" {
		role := enum.AppRole(raw)
		params.Role = &role
	}

	result, err := h.profileService.ListProfiles(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Profiles retrieved successfully", result)
}

// ListReps handles listing sales reps for assignment dropdowns
func (h *ProfileHandler) ListReps(c *gin.Context) {
	reps, err := h.profileService.ListReps(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Reps retrieved successfully", reps)
}

// UpdatePartnerSettings handles updating a profile's commission and pricing terms
func (h *ProfileHandler) UpdatePartnerSettings(c *gin.Context) {
	id := parseUUIDParam(c, "id")
	if id == nil {
		response.BadRequest(c, "Invalid profile ID")
		return
	}

	var req struct {
		Role           *string    `json:"role"`
		PartnerTier    *string    `json:"partner_tier"`
		CommissionRate *float64   `json:"commission_rate"`
		PriceMult      *float64   `json:"price_mult"`
		PricingMode    *string    `json:"pricing_mode"`
		CostPlusMarkup *float64   `json:"cost_plus_markup"`
		ParentRepID    *uuid.UUID `json:"parent_rep_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	input := &service.UpdatePartnerSettingsInput{
		CommissionRate: req.CommissionRate,
		PriceMult:      req.PriceMult,
		CostPlusMarkup: req.CostPlusMarkup,
		ParentRepID:    req.ParentRepID,
	}
	if req.Role != nil {
		role := enum.AppRole(*req.Role)
		input.Role = &role
	}
	if req.PartnerTier != nil {
		tier := enum.PartnerTier(*req.PartnerTier)
		input.PartnerTier = &tier
	}
	if req.PricingMode != nil {
		mode := enum.PricingMode(*req.PricingMode)
		input.PricingMode = &mode
	}

	profile, err := h.profileService.UpdatePartnerSettings(c.Request.Context(), *id, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Partner settings updated successfully", profile)
}

// GetBalance handles retrieving a partner's pending commission and credit
func (h *ProfileHandler) GetBalance(c *gin.Context) {
	id := parseUUIDParam(c, "id")
	if id == nil {
		response.BadRequest(c, "Invalid profile ID")
		return
	}

	balance, err := h.profileService.GetPartnerBalance(c.Request.Context(), *id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Balance retrieved successfully", balance)
}

// GrantCredit handles adding store credit to a user's account
func (h *ProfileHandler) GrantCredit(c *gin.Context) {
	var req struct {
		UserID uuid.UUID `json:"user_id" binding:"required"`
		Amount float64   `json:"amount" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	if err := h.profileService.GrantCredit(c.Request.Context(), req.UserID, req.Amount); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Credit granted successfully", nil)
}
