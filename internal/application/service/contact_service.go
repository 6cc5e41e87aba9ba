package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/vialtrack/vialtrack-api/internal/domain/entity"
	"github.com/vialtrack/vialtrack-api/internal/domain/enum"
	"github.com/vialtrack/vialtrack-api/internal/domain/repository"
	infraRepo "github.com/vialtrack/vialtrack-api/internal/infrastructure/repository"
	"github.com/vialtrack/vialtrack-api/pkg/apperror"
	"github.com/vialtrack/vialtrack-api/pkg/pagination"
)

// ContactService handles CRM contact operations
type ContactService struct {
	contactRepo repository.ContactRepository
	profileRepo repository.ProfileRepository
}

// NewContactService creates a new contact service
func NewContactService(
	contactRepo repository.ContactRepository,
	profileRepo repository.ProfileRepository,
) *ContactService {
	return &ContactService{
		contactRepo: contactRepo,
		profileRepo: profileRepo,
	}
}

// CreateContactInput represents the create contact input
type CreateContactInput struct {
	Name            string
	Email           *string
	Phone           *string
	Type            enum.ContactType
	AssignedRepID   *uuid.UUID
	ShippingAddress *string
	Notes           *string
}

// CreateContact creates a new contact
func (s *ContactService) CreateContact(ctx context.Context, input *CreateContactInput) (*entity.Contact, error) {
	orgID, ok := infraRepo.GetOrgID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Org context required")
	}
	if input.Name == "" {
		return nil, apperror.NewBadRequestError("Contact name is required")
	}

	contactType := input.Type
	if contactType == "" {
		contactType = enum.ContactTypeCustomer
	}
	if !contactType.Valid() {
		return nil, apperror.NewBadRequestError("Unknown contact type")
	}

	if input.AssignedRepID != nil {
		rep, err := s.profileRepo.GetByID(ctx, *input.AssignedRepID)
		if err != nil {
			return nil, err
		}
		if rep == nil {
			return nil, apperror.NewNotFoundError("Assigned rep")
		}
	}

	contact := &entity.Contact{
		OrgID:           orgID,
		Name:            input.Name,
		Email:           input.Email,
		Phone:           input.Phone,
		Type:            contactType,
		AssignedRepID:   input.AssignedRepID,
		ShippingAddress: input.ShippingAddress,
		Notes:           input.Notes,
	}
	if err := s.contactRepo.Create(ctx, contact); err != nil {
		return nil, err
	}
	return contact, nil
}

// GetContact retrieves a contact with its orders and protocols
func (s *ContactService) GetContact(ctx context.Context, id uuid.UUID) (*entity.Contact, error) {
	contact, err := s.contactRepo.GetWithDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	if contact == nil {
		return nil, apperror.NewNotFoundError("Contact")
	}
	return contact, nil
}

// UpdateContactInput represents the update contact input
type UpdateContactInput struct {
	Name            *string
	Email           *string
	Phone           *string
	Type            *enum.ContactType
	AssignedRepID   *uuid.UUID
	ShippingAddress *string
	Notes           *string
}

// UpdateContact updates a contact's fields
func (s *ContactService) UpdateContact(ctx context.Context, id uuid.UUID, input *UpdateContactInput) (*entity.Contact, error) {
	contact, err := s.contactRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if contact == nil {
		return nil, apperror.NewNotFoundError("Contact")
	}

	if input.Name != nil {
		contact.Name = *input.Name
	}
	if input.Email != nil {
		contact.Email = input.Email
	}
	if input.Phone != nil {
		contact.Phone = input.Phone
	}
	if input.Type != nil {
		if !input.Type.Valid() {
			return nil, apperror.NewBadRequestError("Unknown contact type")
		}
		contact.Type = *input.Type
	}
	if input.AssignedRepID != nil {
		rep, err := s.profileRepo.GetByID(ctx, *input.AssignedRepID)
		if err != nil {
			return nil, err
		}
		if rep == nil {
			return nil, apperror.NewNotFoundError("Assigned rep")
		}
		contact.AssignedRepID = input.AssignedRepID
	}
	if input.ShippingAddress != nil {
		contact.ShippingAddress = input.ShippingAddress
	}
	if input.Notes != nil {
		contact.Notes = input.Notes
	}

	if err := s.contactRepo.Update(ctx, contact); err != nil {
		return nil, err
	}
	return contact, nil
}

// DeleteContact soft-deletes a contact
func (s *ContactService) DeleteContact(ctx context.Context, id uuid.UUID) error {
	contact, err := s.contactRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if contact == nil {
		return apperror.NewNotFoundError("Contact")
	}
	return s.contactRepo.Delete(ctx, id)
}

// ListContacts lists contacts with filtering
func (s *ContactService) ListContacts(ctx context.Context, params *repository.ContactFilterParams) (*pagination.PaginatedResult[entity.Contact], error) {
	contacts, total, err := s.contactRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(contacts, pag), nil
}

// GetContactForUser returns the contact record linked to a portal login
func (s *ContactService) GetContactForUser(ctx context.Context, userID uuid.UUID) (*entity.Contact, error) {
	contact, err := s.contactRepo.GetByLinkedUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if contact == nil {
		return nil, apperror.NewNotFoundError("Contact")
	}
	return contact, nil
}
