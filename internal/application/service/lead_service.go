package service

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/vialtrack/vialtrack-api/internal/domain/entity"
	"github.com/vialtrack/vialtrack-api/internal/domain/repository"
	"github.com/vialtrack/vialtrack-api/pkg/apperror"
	"github.com/vialtrack/vialtrack-api/pkg/pagination"
)

// LeadService captures marketing-form submissions from public pages
type LeadService struct {
	leadRepo repository.LeadRepository
}

// NewLeadService creates a new lead service
func NewLeadService(leadRepo repository.LeadRepository) *LeadService {
	return &LeadService{leadRepo: leadRepo}
}

// SubmitLeadInput carries a public lead form submission
type SubmitLeadInput struct {
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Phone   *string `json:"phone"`
	Company *string `json:"company"`
	Message *string `json:"message"`
	Source  string  `json:"source"`
}

// SubmitLead records a lead from a public form
func (s *LeadService) SubmitLead(ctx context.Context, input *SubmitLeadInput) (*entity.LeadSubmission, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.TrimSpace(input.Email)
	if name == "" || email == "" {
		return nil, apperror.NewBadRequestError("Name and email are required")
	}
	if !strings.Contains(email, "@") {
		return nil, apperror.NewBadRequestError("Invalid email address")
	}

	source := input.Source
	if source == "" {
		source = "website"
	}

	lead := &entity.LeadSubmission{
		Name:    name,
		Email:   strings.ToLower(email),
		Phone:   input.Phone,
		Company: input.Company,
		Message: input.Message,
		Source:  source,
	}
	if err := s.leadRepo.Create(ctx, lead); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"lead_id": lead.ID,
		"source":  lead.Source,
	}).Info("Lead submitted")
	return lead, nil
}

// ListLeads returns captured leads for staff review
func (s *LeadService) ListLeads(ctx context.Context, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.LeadSubmission], error) {
	params.Validate()
	leads, total, err := s.leadRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}
	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(leads, pag), nil
}
