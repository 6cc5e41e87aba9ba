package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/vialtrack/vialtrack-api/internal/domain/entity"
	"github.com/vialtrack/vialtrack-api/internal/domain/repository"
	infraRepo "github.com/vialtrack/vialtrack-api/internal/infrastructure/repository"
	"github.com/vialtrack/vialtrack-api/pkg/apperror"
	"github.com/vialtrack/vialtrack-api/pkg/pagination"
)

// ProtocolService handles dosing protocol operations
type ProtocolService struct {
	protocolRepo repository.ProtocolRepository
	contactRepo  repository.ContactRepository
	peptideRepo  repository.PeptideRepository
}

// NewProtocolService creates a new protocol service
func NewProtocolService(
	protocolRepo repository.ProtocolRepository,
	contactRepo repository.ContactRepository,
	peptideRepo repository.PeptideRepository,
) *ProtocolService {
	return &ProtocolService{
		protocolRepo: protocolRepo,
		contactRepo:  contactRepo,
		peptideRepo:  peptideRepo,
	}
}

// ProtocolItemInput represents one peptide line in a protocol
type ProtocolItemInput struct {
	// ID is set when updating an existing item
	ID             *uuid.UUID
	PeptideID      uuid.UUID
	Dosage         string
	Frequency      string
	DurationWeeks  int
	DurationDays   *int
	CostMultiplier float64
}

// CreateProtocolInput represents the create protocol input
type CreateProtocolInput struct {
	Name        string
	Description *string
	ContactID   *uuid.UUID
	Items       []ProtocolItemInput
}

// CreateProtocol creates a protocol with its items. A nil contact makes it
// an org-level template.
func (s *ProtocolService) CreateProtocol(ctx context.Context, input *CreateProtocolInput) (*entity.Protocol, error) {
	orgID, ok := infraRepo.GetOrgID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Org context required")
	}
	if input.Name == "" {
		return nil, apperror.NewBadRequestError("Protocol name is required")
	}

	if input.ContactID != nil {
		contact, err := s.contactRepo.GetByID(ctx, *input.ContactID)
		if err != nil {
			return nil, err
		}
		if contact == nil {
			return nil, apperror.NewNotFoundError("Contact")
		}
	}

	items, err := s.buildItems(ctx, input.Items)
	if err != nil {
		return nil, err
	}

	protocol := &entity.Protocol{
		OrgID:       orgID,
		ContactID:   input.ContactID,
		Name:        input.Name,
		Description: input.Description,
		Items:       items,
	}
	if err := s.protocolRepo.Create(ctx, protocol); err != nil {
		return nil, err
	}
	return s.protocolRepo.GetWithItems(ctx, protocol.ID)
}

func (s *ProtocolService) buildItems(ctx context.Context, inputs []ProtocolItemInput) ([]entity.ProtocolItem, error) {
	items := make([]entity.ProtocolItem, 0, len(inputs))
	for _, input := range inputs {
		peptide, err := s.peptideRepo.GetByID(ctx, input.PeptideID)
		if err != nil {
			return nil, err
		}
		if peptide == nil {
			return nil, apperror.NewNotFoundError("Peptide " + input.PeptideID.String())
		}

		multiplier := input.CostMultiplier
		if multiplier <= 0 {
			multiplier = 1
		}

		item := entity.ProtocolItem{
			PeptideID:      input.PeptideID,
			Dosage:         input.Dosage,
			Frequency:      input.Frequency,
			DurationWeeks:  input.DurationWeeks,
			DurationDays:   input.DurationDays,
			CostMultiplier: multiplier,
		}
		if input.ID != nil {
			item.ID = *input.ID
		}
		items = append(items, item)
	}
	return items, nil
}

// GetProtocol retrieves a protocol with its items
func (s *ProtocolService) GetProtocol(ctx context.Context, id uuid.UUID) (*entity.Protocol, error) {
	protocol, err := s.protocolRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if protocol == nil {
		return nil, apperror.NewNotFoundError("Protocol")
	}
	return protocol, nil
}

// UpdateProtocolInput represents the update protocol input
type UpdateProtocolInput struct {
	Name        *string
	Description *string
	ContactID   *uuid.UUID
	// Items, when present, replaces the full item set via reconciliation
	Items []ProtocolItemInput
}

// UpdateProtocol updates the protocol header and reconciles its items
func (s *ProtocolService) UpdateProtocol(ctx context.Context, id uuid.UUID, input *UpdateProtocolInput) (*entity.Protocol, error) {
	protocol, err := s.protocolRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if protocol == nil {
		return nil, apperror.NewNotFoundError("Protocol")
	}

	if input.Name != nil {
		protocol.Name = *input.Name
	}
	if input.Description != nil {
		protocol.Description = input.Description
	}
	if input.ContactID != nil {
		contact, err := s.contactRepo.GetByID(ctx, *input.ContactID)
		if err != nil {
			return nil, err
		}
		if contact == nil {
			return nil, apperror.NewNotFoundError("Contact")
		}
		protocol.ContactID = input.ContactID
	}

	if err := s.protocolRepo.Update(ctx, protocol); err != nil {
		return nil, err
	}

	if input.Items != nil {
		items, err := s.buildItems(ctx, input.Items)
		if err != nil {
			return nil, err
		}
		if err := s.protocolRepo.SyncItems(ctx, id, items); err != nil {
			return nil, err
		}
	}

	return s.protocolRepo.GetWithItems(ctx, id)
}

// DeleteProtocol removes a protocol and its items
func (s *ProtocolService) DeleteProtocol(ctx context.Context, id uuid.UUID) error {
	protocol, err := s.protocolRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if protocol == nil {
		return apperror.NewNotFoundError("Protocol")
	}
	return s.protocolRepo.Delete(ctx, id)
}

// ListProtocols lists protocols with filtering
func (s *ProtocolService) ListProtocols(ctx context.Context, params *repository.ProtocolFilterParams) (*pagination.PaginatedResult[entity.Protocol], error) {
	protocols, total, err := s.protocolRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(protocols, pag), nil
}

// AssignTemplate copies an org-level template onto a contact as a new protocol
func (s *ProtocolService) AssignTemplate(ctx context.Context, templateID, contactID uuid.UUID) (*entity.Protocol, error) {
	template, err := s.protocolRepo.GetWithItems(ctx, templateID)
	if err != nil {
		return nil, err
	}
	if template == nil {
		return nil, apperror.NewNotFoundError("Protocol template")
	}
	if template.ContactID != nil {
		return nil, apperror.NewBadRequestError("Protocol is already assigned to a contact")
	}

	contact, err := s.contactRepo.GetByID(ctx, contactID)
	if err != nil {
		return nil, err
	}
	if contact == nil {
		return nil, apperror.NewNotFoundError("Contact")
	}

	items := make([]entity.ProtocolItem, 0, len(template.Items))
	for _, item := range template.Items {
		items = append(items, entity.ProtocolItem{
			PeptideID:      item.PeptideID,
			Dosage:         item.Dosage,
			Frequency:      item.Frequency,
			DurationWeeks:  item.DurationWeeks,
			DurationDays:   item.DurationDays,
			CostMultiplier: item.CostMultiplier,
		})
	}

	assigned := &entity.Protocol{
		OrgID:       template.OrgID,
		ContactID:   &contactID,
		Name:        template.Name,
		Description: template.Description,
		Items:       items,
	}
	if err := s.protocolRepo.Create(ctx, assigned); err != nil {
		return nil, err
	}
	return s.protocolRepo.GetWithItems(ctx, assigned.ID)
}
