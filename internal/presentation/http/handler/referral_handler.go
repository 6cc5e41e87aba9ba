package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/vialtrack/vialtrack-api/internal/application/service"
	"github.com/vialtrack/vialtrack-api/internal/presentation/http/dto/response"
)

// ReferralHandler handles referral link HTTP requests
type ReferralHandler struct {
	referralService *service.ReferralService
}

// NewReferralHandler creates a new referral handler
func NewReferralHandler(referralService *service.ReferralService) *ReferralHandler {
	return &ReferralHandler{referralService: referralService}
}

// Link attaches the authenticated user to the referrer's org. Called once
// after signup when the client followed a referral link.
func (h *ReferralHandler) Link(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req struct {
		ReferrerUserID uuid.UUID `json:"referrer_user_id" binding:"required"`
		FullName       string    `json:"full_name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	result, err := h.referralService.Link(c.Request.Context(), &service.LinkReferralInput{
		UserID:         *userID,
		Email:          GetUserEmail(c),
		FullName:       req.FullName,
		ReferrerUserID: req.ReferrerUserID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	if result.AlreadyLinked {
		response.OK(c, "Referral already linked", result)
		return
	}
	response.Created(c, "Referral linked successfully", result)
}
