package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/vialtrack/vialtrack-api/internal/domain/entity"
	"github.com/vialtrack/vialtrack-api/internal/domain/enum"
	"github.com/vialtrack/vialtrack-api/pkg/pagination"
)

// PeptideRepository defines the interface for peptide data operations
type PeptideRepository interface {
	Create(ctx context.Context, peptide *entity.Peptide) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Peptide, error)
	GetBySKU(ctx context.Context, sku string) (*entity.Peptide, error)
	Update(ctx context.Context, peptide *entity.Peptide) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *PeptideFilterParams) ([]entity.Peptide, int64, error)
	// StockCounts returns in-stock bottle counts keyed by peptide ID
	StockCounts(ctx context.Context, peptideIDs []uuid.UUID) (map[uuid.UUID]int, error)
	// AverageCost returns the mean lot cost per unit for a peptide, in cents
	AverageCost(ctx context.Context, peptideID uuid.UUID) (int64, error)
}

// PeptideFilterParams contains filtering parameters for peptide queries
type PeptideFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	SortBy     string
	SortOrder  string
}

// LotRepository defines the interface for lot data operations
type LotRepository interface {
	// CreateWithBottles creates the lot and its quantity_received bottles
	// in one transaction
	CreateWithBottles(ctx context.Context, lot *entity.Lot) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Lot, error)
	Update(ctx context.Context, lot *entity.Lot) error
	// DeleteCascade removes the lot and all its bottles in one transaction
	DeleteCascade(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *LotFilterParams) ([]entity.Lot, int64, error)
	UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status enum.PaymentStatus) error
}

// LotFilterParams contains filtering parameters for lot queries
type LotFilterParams struct {
	Pagination    *pagination.PaginationParams
	PeptideID     *uuid.UUID
	PaymentStatus *enum.PaymentStatus
	SortBy        string
	SortOrder     string
}

// BottleRepository defines the interface for bottle data operations
type BottleRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Bottle, error)
	ListByLot(ctx context.Context, lotID uuid.UUID) ([]entity.Bottle, error)
	ListByStatus(ctx context.Context, status enum.BottleStatus, params *pagination.PaginationParams) ([]entity.Bottle, int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enum.BottleStatus) error
	// UpdateStatusBatch atomically moves a set of bottles from one status to
	// another; it fails when any bottle is not in the expected status.
	UpdateStatusBatch(ctx context.Context, ids []uuid.UUID, from, to enum.BottleStatus) error
}
