package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/vialtrack/vialtrack-api/internal/domain/entity"
	"github.com/vialtrack/vialtrack-api/internal/domain/enum"
	"github.com/vialtrack/vialtrack-api/pkg/pagination"
)

// CommissionRepository defines the interface for commission data operations
type CommissionRepository interface {
	// UpsertBatch inserts the commissions, skipping rows whose
	// (sale_id, partner_id, type) already exists
	UpsertBatch(ctx context.Context, commissions []entity.Commission) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Commission, error)
	ListBySale(ctx context.Context, saleID uuid.UUID) ([]entity.Commission, error)
	List(ctx context.Context, params *CommissionFilterParams) ([]entity.Commission, int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enum.CommissionStatus) error
	// VoidBySale marks every pending commission on the sale voided, used
	// when a fulfilled order is cancelled
	VoidBySale(ctx context.Context, saleID uuid.UUID) error
	// TotalPending sums pending commission cents for a partner
	TotalPending(ctx context.Context, partnerID uuid.UUID) (int64, error)
}

// CommissionFilterParams contains filtering parameters for commission queries
type CommissionFilterParams struct {
	Pagination *pagination.PaginationParams
	PartnerID  *uuid.UUID
	Status     *enum.CommissionStatus
	Type       *enum.CommissionType
	SortBy     string
	SortOrder  string
}
