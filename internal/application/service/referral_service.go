package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/vialtrack/vialtrack-api/internal/application/pricing"
	"github.com/vialtrack/vialtrack-api/internal/domain/entity"
	"github.com/vialtrack/vialtrack-api/internal/domain/enum"
	"github.com/vialtrack/vialtrack-api/internal/domain/repository"
	"github.com/vialtrack/vialtrack-api/pkg/apperror"
)

// ReferralService links newly signed-up users to the org and rep that
// invited them. The whole link is one transaction of upserts, so replays
// and concurrent attempts for the same user settle on one row each.
type ReferralService struct {
	profileRepo  repository.ProfileRepository
	referralRepo repository.ReferralRepository
	log          *logrus.Entry
}

// NewReferralService creates a new referral service
func NewReferralService(
	profileRepo repository.ProfileRepository,
	referralRepo repository.ReferralRepository,
) *ReferralService {
	return &ReferralService{
		profileRepo:  profileRepo,
		referralRepo: referralRepo,
		log:          logrus.WithField("component", "referral"),
	}
}

// LinkReferralInput represents the link referral input
type LinkReferralInput struct {
	// UserID is the invitee's auth subject
	UserID   uuid.UUID
	Email    string
	FullName string
	// ReferrerUserID identifies who shared the link
	ReferrerUserID uuid.UUID
}

// LinkResult reports the outcome of a referral link
type LinkResult struct {
	Profile       *entity.Profile `json:"profile"`
	Contact       *entity.Contact `json:"contact"`
	AlreadyLinked bool            `json:"already_linked"`
}

// Link attaches the invitee to the referrer's org. A customer referrer
// produces a client login with a customer contact; a partner referrer
// produces a sales rep with associate-tier defaults.
func (s *ReferralService) Link(ctx context.Context, input *LinkReferralInput) (*LinkResult, error) {
	referrer, err := s.profileRepo.GetByUserID(ctx, input.ReferrerUserID)
	if err != nil {
		return nil, err
	}
	if referrer == nil {
		return nil, apperror.NewNotFoundError("Referrer")
	}
	if referrer.OrgID == nil {
		return nil, apperror.NewBadRequestError("Referrer has no org")
	}

	params := &repository.ReferralLinkParams{
		UserID:   input.UserID,
		Email:    input.Email,
		FullName: input.FullName,
		OrgID:    *referrer.OrgID,
	}

	// a client referred by a customer contact; a rep referred by a partner
	switch referrer.Role {
	case enum.AppRoleSalesRep, enum.AppRoleAdmin:
		params.Role = enum.AppRoleSalesRep
		params.ContactType = enum.ContactTypePartner
		params.ReferrerRepID = &referrer.ID
		params.PartnerTier = enum.PartnerTierAssociate
		params.CommissionRate = pricing.DefaultCommissionRate
		params.PriceMult = pricing.DefaultPriceMult
	default:
		params.Role = enum.AppRoleClient
		params.ContactType = enum.ContactTypeCustomer
		params.ReferrerRepID = referrer.ParentRepID
		params.PriceMult = 1
	}

	result, err := s.referralRepo.Link(ctx, params)
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"user_id":        input.UserID,
		"referrer":       input.ReferrerUserID,
		"role":           params.Role,
		"already_linked": result.AlreadyLinked,
	}).Info("referral link processed")

	return &LinkResult{
		Profile:       result.Profile,
		Contact:       result.Contact,
		AlreadyLinked: result.AlreadyLinked,
	}, nil
}
