package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/vialtrack/vialtrack-api/internal/application/pricing"
	"github.com/vialtrack/vialtrack-api/internal/domain/entity"
	"github.com/vialtrack/vialtrack-api/internal/domain/enum"
	"github.com/vialtrack/vialtrack-api/internal/domain/repository"
	"github.com/vialtrack/vialtrack-api/pkg/apperror"
	"github.com/vialtrack/vialtrack-api/pkg/pagination"
)

// ProfileService handles profile and partner settings operations
type ProfileService struct {
	profileRepo    repository.ProfileRepository
	commissionRepo repository.CommissionRepository
}

// NewProfileService creates a new profile service
func NewProfileService(
	profileRepo repository.ProfileRepository,
	commissionRepo repository.CommissionRepository,
) *ProfileService {
	return &ProfileService{
		profileRepo:    profileRepo,
		commissionRepo: commissionRepo,
	}
}

// GetProfile retrieves a profile by its auth subject
func (s *ProfileService) GetProfile(ctx context.Context, userID uuid.UUID) (*entity.Profile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, apperror.NewNotFoundError("Profile")
	}
	return profile, nil
}

// UpdateProfileInput represents the update profile input
type UpdateProfileInput struct {
	FullName *string
}

// UpdateProfile lets a user update their own display fields
func (s *ProfileService) UpdateProfile(ctx context.Context, userID uuid.UUID, input *UpdateProfileInput) (*entity.Profile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, apperror.NewNotFoundError("Profile")
	}

	if input.FullName != nil {
		profile.FullName = *input.FullName
	}

	if err := s.profileRepo.Update(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// UpdatePartnerSettingsInput represents admin-set partner terms
type UpdatePartnerSettingsInput struct {
	Role           *enum.AppRole
	PartnerTier    *enum.PartnerTier
	CommissionRate *float64
	PriceMult      *float64
	PricingMode    *enum.PricingMode
	CostPlusMarkup *float64
	ParentRepID    *uuid.UUID
}

// UpdatePartnerSettings updates a profile's commission and pricing terms.
// Admin only; enforced at the route layer.
func (s *ProfileService) UpdatePartnerSettings(ctx context.Context, profileID uuid.UUID, input *UpdatePartnerSettingsInput) (*entity.Profile, error) {
	profile, err := s.profileRepo.GetByID(ctx, profileID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, apperror.NewNotFoundError("Profile")
	}

	if input.Role != nil {
		profile.Role = *input.Role
	}
	if input.PartnerTier != nil {
		profile.PartnerTier = *input.PartnerTier
	}
	if input.CommissionRate != nil {
		if *input.CommissionRate < 0 || *input.CommissionRate > 1 {
			return nil, apperror.NewBadRequestError("Commission rate must be between 0 and 1")
		}
		profile.CommissionRate = *input.CommissionRate
	}
	if input.PriceMult != nil {
		if *input.PriceMult <= 0 {
			return nil, apperror.NewBadRequestError("Price multiplier must be positive")
		}
		profile.PriceMult = *input.PriceMult
	}
	if input.PricingMode != nil {
		profile.PricingMode = *input.PricingMode
	}
	if input.CostPlusMarkup != nil {
		profile.CostPlusMarkup = pricing.DollarsToCents(*input.CostPlusMarkup)
	}
	if input.ParentRepID != nil {
		if *input.ParentRepID == profile.ID {
			return nil, apperror.NewBadRequestError("A rep cannot be their own parent")
		}
		parent, err := s.profileRepo.GetByID(ctx, *input.ParentRepID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, apperror.NewNotFoundError("Parent rep")
		}
		profile.ParentRepID = input.ParentRepID
	}

	if err := s.profileRepo.Update(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// ListProfiles lists profiles with filtering
func (s *ProfileService) ListProfiles(ctx context.Context, params *repository.ProfileFilterParams) (*pagination.PaginatedResult[entity.Profile], error) {
	profiles, total, err := s.profileRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(profiles, pag), nil
}

// ListReps lists the org's sales reps
func (s *ProfileService) ListReps(ctx context.Context) ([]entity.Profile, error) {
	return s.profileRepo.ListByRole(ctx, enum.AppRoleSalesRep)
}

// PartnerBalance summarizes a partner's commission standing, in dollars
type PartnerBalance struct {
	Profile           *entity.Profile `json:"profile"`
	PendingCommission float64         `json:"pending_commission"`
	CreditBalance     float64         `json:"credit_balance"`
}

// GetPartnerBalance returns a partner's pending commission and store credit
func (s *ProfileService) GetPartnerBalance(ctx context.Context, profileID uuid.UUID) (*PartnerBalance, error) {
	profile, err := s.profileRepo.GetByID(ctx, profileID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, apperror.NewNotFoundError("Profile")
	}

	pending, err := s.commissionRepo.TotalPending(ctx, profileID)
	if err != nil {
		return nil, err
	}

	return &PartnerBalance{
		Profile:           profile,
		PendingCommission: float64(pending) / 100,
		CreditBalance:     float64(profile.CreditBalance) / 100,
	}, nil
}

// GrantCredit adds store credit to a user's balance
func (s *ProfileService) GrantCredit(ctx context.Context, userID uuid.UUID, amount float64) error {
	if amount <= 0 {
		return apperror.NewBadRequestError("Credit amount must be positive")
	}
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return err
	}
	if profile == nil {
		return apperror.NewNotFoundError("Profile")
	}
	return s.profileRepo.CreditBalance(ctx, userID, pricing.DollarsToCents(amount))
}
