package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/vialtrack/vialtrack-api/internal/application/pricing"
	"github.com/vialtrack/vialtrack-api/internal/domain/entity"
	"github.com/vialtrack/vialtrack-api/internal/domain/enum"
	"github.com/vialtrack/vialtrack-api/internal/domain/repository"
	infraRepo "github.com/vialtrack/vialtrack-api/internal/infrastructure/repository"
	"github.com/vialtrack/vialtrack-api/pkg/apperror"
	"github.com/vialtrack/vialtrack-api/pkg/pagination"
)

// InventoryService handles peptide, lot and bottle operations
type InventoryService struct {
	peptideRepo repository.PeptideRepository
	lotRepo     repository.LotRepository
	bottleRepo  repository.BottleRepository
}

// NewInventoryService creates a new inventory service
func NewInventoryService(
	peptideRepo repository.PeptideRepository,
	lotRepo repository.LotRepository,
	bottleRepo repository.BottleRepository,
) *InventoryService {
	return &InventoryService{
		peptideRepo: peptideRepo,
		lotRepo:     lotRepo,
		bottleRepo:  bottleRepo,
	}
}

// CreatePeptideInput represents the create peptide input
type CreatePeptideInput struct {
	Name      string
	SKU       string
	BasePrice float64
	VialSize  *string
	Notes     *string
}

// CreatePeptide creates a new peptide product
func (s *InventoryService) CreatePeptide(ctx context.Context, input *CreatePeptideInput) (*entity.Peptide, error) {
	orgID, ok := infraRepo.GetOrgID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Org context required")
	}
	if input.Name == "" {
		return nil, apperror.NewBadRequestError("Peptide name is required")
	}

	if input.SKU != "" {
		existing, err := s.peptideRepo.GetBySKU(ctx, input.SKU)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, apperror.NewConflictError("A peptide with this SKU already exists")
		}
	}

	peptide := &entity.Peptide{
		OrgID:     orgID,
		Name:      input.Name,
		SKU:       input.SKU,
		BasePrice: pricing.DollarsToCents(input.BasePrice),
		VialSize:  input.VialSize,
		Notes:     input.Notes,
	}
	if err := s.peptideRepo.Create(ctx, peptide); err != nil {
		return nil, err
	}
	return peptide, nil
}

// GetPeptide retrieves a peptide by ID
func (s *InventoryService) GetPeptide(ctx context.Context, id uuid.UUID) (*entity.Peptide, error) {
	peptide, err := s.peptideRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if peptide == nil {
		return nil, apperror.NewNotFoundError("Peptide")
	}
	return peptide, nil
}

// UpdatePeptideInput represents the update peptide input
type UpdatePeptideInput struct {
	Name      *string
	SKU       *string
	BasePrice *float64
	VialSize  *string
	Notes     *string
}

// UpdatePeptide updates a peptide's fields
func (s *InventoryService) UpdatePeptide(ctx context.Context, id uuid.UUID, input *UpdatePeptideInput) (*entity.Peptide, error) {
	peptide, err := s.peptideRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if peptide == nil {
		return nil, apperror.NewNotFoundError("Peptide")
	}

	if input.Name != nil {
		peptide.Name = *input.Name
	}
	if input.SKU != nil {
		peptide.SKU = *input.SKU
	}
	if input.BasePrice != nil {
		peptide.BasePrice = pricing.DollarsToCents(*input.BasePrice)
	}
	if input.VialSize != nil {
		peptide.VialSize = input.VialSize
	}
	if input.Notes != nil {
		peptide.Notes = input.Notes
	}

	if err := s.peptideRepo.Update(ctx, peptide); err != nil {
		return nil, err
	}
	return peptide, nil
}

// DeletePeptide soft-deletes a peptide
func (s *InventoryService) DeletePeptide(ctx context.Context, id uuid.UUID) error {
	peptide, err := s.peptideRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if peptide == nil {
		return apperror.NewNotFoundError("Peptide")
	}
	return s.peptideRepo.Delete(ctx, id)
}

// PeptideWithStock pairs a peptide with its derived stock count
type PeptideWithStock struct {
	entity.Peptide
	InStock int `json:"in_stock"`
}

// ListPeptides lists peptides with their in-stock bottle counts
func (s *InventoryService) ListPeptides(ctx context.Context, params *repository.PeptideFilterParams) (*pagination.PaginatedResult[PeptideWithStock], error) {
	peptides, total, err := s.peptideRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, len(peptides))
	for i, p := range peptides {
		ids[i] = p.ID
	}
	counts, err := s.peptideRepo.StockCounts(ctx, ids)
	if err != nil {
		return nil, err
	}

	withStock := make([]PeptideWithStock, len(peptides))
	for i, p := range peptides {
		withStock[i] = PeptideWithStock{Peptide: p, InStock: counts[p.ID]}
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(withStock, pag), nil
}

// CreateLotInput represents the create lot input
type CreateLotInput struct {
	PeptideID        uuid.UUID
	LotNumber        string
	QuantityReceived int
	CostPerUnit      float64
	PaymentStatus    enum.PaymentStatus
	ReceivedDate     *time.Time
	ExpiryDate       *time.Time
}

// CreateLot receives a lot and generates its bottles in one transaction
func (s *InventoryService) CreateLot(ctx context.Context, input *CreateLotInput) (*entity.Lot, error) {
	orgID, ok := infraRepo.GetOrgID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Org context required")
	}
	if input.QuantityReceived < 1 {
		return nil, apperror.NewBadRequestError("Quantity received must be at least 1")
	}

	peptide, err := s.peptideRepo.GetByID(ctx, input.PeptideID)
	if err != nil {
		return nil, err
	}
	if peptide == nil {
		return nil, apperror.NewNotFoundError("Peptide")
	}

	paymentStatus := input.PaymentStatus
	if paymentStatus == "" {
		paymentStatus = enum.PaymentStatusUnpaid
	}

	lot := &entity.Lot{
		OrgID:            orgID,
		PeptideID:        input.PeptideID,
		LotNumber:        input.LotNumber,
		QuantityReceived: input.QuantityReceived,
		CostPerUnit:      pricing.DollarsToCents(input.CostPerUnit),
		PaymentStatus:    paymentStatus,
		ReceivedDate:     input.ReceivedDate,
		ExpiryDate:       input.ExpiryDate,
	}
	if err := s.lotRepo.CreateWithBottles(ctx, lot); err != nil {
		return nil, err
	}
	return s.lotRepo.GetByID(ctx, lot.ID)
}

// GetLot retrieves a lot by ID
func (s *InventoryService) GetLot(ctx context.Context, id uuid.UUID) (*entity.Lot, error) {
	lot, err := s.lotRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if lot == nil {
		return nil, apperror.NewNotFoundError("Lot")
	}
	return lot, nil
}

// ListLots lists lots with filtering
func (s *InventoryService) ListLots(ctx context.Context, params *repository.LotFilterParams) (*pagination.PaginatedResult[entity.Lot], error) {
	lots, total, err := s.lotRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(lots, pag), nil
}

// UpdateLotPaymentStatus updates a lot's supplier payment status
func (s *InventoryService) UpdateLotPaymentStatus(ctx context.Context, id uuid.UUID, status enum.PaymentStatus) error {
	if !status.Valid() {
		return apperror.NewBadRequestError("Unknown payment status")
	}
	lot, err := s.lotRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if lot == nil {
		return apperror.NewNotFoundError("Lot")
	}
	return s.lotRepo.UpdatePaymentStatus(ctx, id, status)
}

// DeleteLot removes a lot and all its bottles. Lots with sold bottles
// cannot be removed because sales history references them.
func (s *InventoryService) DeleteLot(ctx context.Context, id uuid.UUID) error {
	lot, err := s.lotRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if lot == nil {
		return apperror.NewNotFoundError("Lot")
	}

	bottles, err := s.bottleRepo.ListByLot(ctx, id)
	if err != nil {
		return err
	}
	for _, bottle := range bottles {
		if bottle.Status == enum.BottleStatusSold {
			return apperror.NewBadRequestError("Cannot delete a lot with sold bottles")
		}
	}

	return s.lotRepo.DeleteCascade(ctx, id)
}

// ListBottles lists bottles in a given status
func (s *InventoryService) ListBottles(ctx context.Context, status enum.BottleStatus, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.Bottle], error) {
	bottles, total, err := s.bottleRepo.ListByStatus(ctx, status, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(bottles, pag), nil
}
