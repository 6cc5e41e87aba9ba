package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/vialtrack/vialtrack-api/internal/domain/entity"
	"github.com/vialtrack/vialtrack-api/pkg/pagination"
)

// ProtocolRepository defines the interface for protocol data operations
type ProtocolRepository interface {
	Create(ctx context.Context, protocol *entity.Protocol) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Protocol, error)
	GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Protocol, error)
	Update(ctx context.Context, protocol *entity.Protocol) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *ProtocolFilterParams) ([]entity.Protocol, int64, error)
	// SyncItems reconciles the protocol's items against the given set in one
	// transaction: rows with a known ID are updated, rows without one are
	// inserted, and existing rows missing from the set are deleted.
	SyncItems(ctx context.Context, protocolID uuid.UUID, items []entity.ProtocolItem) error
}

// ProtocolFilterParams contains filtering parameters for protocol queries
type ProtocolFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	ContactID  *uuid.UUID
	// TemplatesOnly restricts to org-level templates (nil contact_id)
	TemplatesOnly bool
	SortBy        string
	SortOrder     string
}
