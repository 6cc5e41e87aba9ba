package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/vialtrack/vialtrack-api/internal/domain/entity"
	"github.com/vialtrack/vialtrack-api/internal/domain/enum"
	"github.com/vialtrack/vialtrack-api/pkg/pagination"
)

// ContactRepository defines the interface for contact data operations
type ContactRepository interface {
	Create(ctx context.Context, contact *entity.Contact) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Contact, error)
	GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.Contact, error)
	GetByLinkedUserID(ctx context.Context, userID uuid.UUID) (*entity.Contact, error)
	Update(ctx context.Context, contact *entity.Contact) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *ContactFilterParams) ([]entity.Contact, int64, error)
	// UpsertLinked inserts the contact or, when the (org_id, linked_user_id)
	// row already exists, leaves it untouched and returns the existing row.
	UpsertLinked(ctx context.Context, contact *entity.Contact) (*entity.Contact, error)
}

// ContactFilterParams contains filtering parameters for contact queries
type ContactFilterParams struct {
	Pagination    *pagination.PaginationParams
	Search        string
	Type          *enum.ContactType
	AssignedRepID *uuid.UUID
	SortBy        string
	SortOrder     string
}
