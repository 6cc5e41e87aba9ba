package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/vialtrack/vialtrack-api/internal/domain/entity"
	"github.com/vialtrack/vialtrack-api/internal/domain/enum"
	"github.com/vialtrack/vialtrack-api/pkg/pagination"
)

// MovementRepository defines the interface for inventory movement operations
type MovementRepository interface {
	// CreateWithItems writes the movement, its items, and the bottle status
	// flips implied by the movement type in one transaction
	CreateWithItems(ctx context.Context, movement *entity.Movement, bottleIDs []uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Movement, error)
	GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Movement, error)
	List(ctx context.Context, params *MovementFilterParams) ([]entity.Movement, int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// MovementFilterParams contains filtering parameters for movement queries
type MovementFilterParams struct {
	Pagination *pagination.PaginationParams
	Type       *enum.MovementType
	ContactID  *uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
	SortBy     string
	SortOrder  string
}
