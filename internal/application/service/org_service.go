package service

import (
	"context"

	"github.com/vialtrack/vialtrack-api/internal/domain/entity"
	"github.com/vialtrack/vialtrack-api/internal/domain/repository"
	infraRepo "github.com/vialtrack/vialtrack-api/internal/infrastructure/repository"
	"github.com/vialtrack/vialtrack-api/pkg/apperror"
)

// OrgService handles organization operations
type OrgService struct {
	orgRepo repository.OrgRepository
}

// NewOrgService creates a new org service
func NewOrgService(orgRepo repository.OrgRepository) *OrgService {
	return &OrgService{orgRepo: orgRepo}
}

// GetCurrent returns the caller's organization
func (s *OrgService) GetCurrent(ctx context.Context) (*entity.Org, error) {
	orgID, ok := infraRepo.GetOrgID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Org context required")
	}
	org, err := s.orgRepo.GetByID(ctx, orgID)
	if err != nil {
		return nil, err
	}
	if org == nil {
		return nil, apperror.NewNotFoundError("Org")
	}
	return org, nil
}

// UpdateCurrentInput represents the update org input
type UpdateCurrentInput struct {
	Name *string
}

// UpdateCurrent updates the caller's organization. The slug is immutable
// once set; it identifies the org in referral links.
func (s *OrgService) UpdateCurrent(ctx context.Context, input *UpdateCurrentInput) (*entity.Org, error) {
	org, err := s.GetCurrent(ctx)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, apperror.NewBadRequestError("Org name cannot be empty")
		}
		org.Name = *input.Name
	}

	if err := s.orgRepo.Update(ctx, org); err != nil {
		return nil, err
	}
	return org, nil
}
