package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/vialtrack/vialtrack-api/internal/domain/entity"
	"github.com/vialtrack/vialtrack-api/internal/domain/enum"
	domainRepo "github.com/vialtrack/vialtrack-api/internal/domain/repository"
	"github.com/vialtrack/vialtrack-api/pkg/pagination"
	"gorm.io/gorm"
)

type peptideRepository struct {
	db *gorm.DB
}

// NewPeptideRepository creates a new peptide repository
func NewPeptideRepository(db *gorm.DB) domainRepo.PeptideRepository {
	return &peptideRepository{db: db}
}

func (r *peptideRepository) Create(ctx context.Context, peptide *entity.Peptide) error {
	return r.db.WithContext(ctx).Create(peptide).Error
}

func (r *peptideRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Peptide, error) {
	var peptide entity.Peptide
	err := r.db.WithContext(ctx).
		Scopes(OrgScope(ctx)).
		First(&peptide, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &peptide, err
}

func (r *peptideRepository) GetBySKU(ctx context.Context, sku string) (*entity.Peptide, error) {
	var peptide entity.Peptide
	err := r.db.WithContext(ctx).
		Scopes(OrgScope(ctx)).
		First(&peptide, "sku = ?", sku).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &peptide, err
}

func (r *peptideRepository) Update(ctx context.Context, peptide *entity.Peptide) error {
	return r.db.WithContext(ctx).Save(peptide).Error
}

func (r *peptideRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Peptide{}, "id = ?", id).Error
}

func (r *peptideRepository) List(ctx context.Context, params *domainRepo.PeptideFilterParams) ([]entity.Peptide, int64, error) {
	var peptides []entity.Peptide
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Peptide{}).Scopes(OrgScope(ctx))

	if params.Search != "" {
		pattern := "%" + params.Search + "%"
		query = query.Where("LOWER(name) LIKE LOWER(?) OR LOWER(sku) LIKE LOWER(?)", pattern, pattern)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortBy := "name"
	sortOrder := "ASC"
	if params.SortBy != "" {
		sortBy = params.SortBy
	}
	if params.SortOrder == "DESC" || params.SortOrder == "desc" {
		sortOrder = "DESC"
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Order(sortBy + " " + sortOrder).
		Find(&peptides).Error

	return peptides, total, err
}

// StockCounts counts in-stock bottles per peptide across its lots
func (r *peptideRepository) StockCounts(ctx context.Context, peptideIDs []uuid.UUID) (map[uuid.UUID]int, error) {
	type row struct {
		PeptideID uuid.UUID
		Count     int
	}
	var rows []row

	query := r.db.WithContext(ctx).Model(&entity.Bottle{}).
		Select("lots.peptide_id AS peptide_id, COUNT(bottles.id) AS count").
		Joins("JOIN lots ON lots.id = bottles.lot_id").
		Where("bottles.status = ?", enum.BottleStatusInStock).
		Group("lots.peptide_id")
	if len(peptideIDs) > 0 {
		query = query.Where("lots.peptide_id IN ?", peptideIDs)
	}

	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[uuid.UUID]int, len(rows))
	for _, row := range rows {
		counts[row.PeptideID] = row.Count
	}
	return counts, nil
}

// AverageCost returns the mean lot cost per unit for a peptide, in cents
func (r *peptideRepository) AverageCost(ctx context.Context, peptideID uuid.UUID) (int64, error) {
	var avg float64
	err := r.db.WithContext(ctx).Model(&entity.Lot{}).
		Select("COALESCE(AVG(cost_per_unit), 0)").
		Where("peptide_id = ?", peptideID).
		Scan(&avg).Error
	return int64(avg + 0.5), err
}

type lotRepository struct {
	db *gorm.DB
}

// NewLotRepository creates a new lot repository
func NewLotRepository(db *gorm.DB) domainRepo.LotRepository {
	return &lotRepository{db: db}
}

// CreateWithBottles creates the lot and one bottle per unit received in a
// single transaction
func (r *lotRepository) CreateWithBottles(ctx context.Context, lot *entity.Lot) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(lot).Error; err != nil {
			return err
		}

		if lot.QuantityReceived <= 0 {
			return nil
		}

		bottles := make([]entity.Bottle, lot.QuantityReceived)
		for i := range bottles {
			bottles[i] = entity.Bottle{
				OrgID:  lot.OrgID,
				LotID:  lot.ID,
				Status: enum.BottleStatusInStock,
			}
		}
		return tx.CreateInBatches(&bottles, 500).Error
	})
}

func (r *lotRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Lot, error) {
	var lot entity.Lot
	err := r.db.WithContext(ctx).
		Scopes(OrgScope(ctx)).
		Preload("Peptide").
		First(&lot, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &lot, err
}

func (r *lotRepository) Update(ctx context.Context, lot *entity.Lot) error {
	return r.db.WithContext(ctx).Save(lot).Error
}

// DeleteCascade removes the lot and all its bottles in one transaction
func (r *lotRepository) DeleteCascade(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("lot_id = ?", id).Delete(&entity.Bottle{}).Error; err != nil {
			return err
		}
		return tx.Delete(&entity.Lot{}, "id = ?", id).Error
	})
}

func (r *lotRepository) List(ctx context.Context, params *domainRepo.LotFilterParams) ([]entity.Lot, int64, error) {
	var lots []entity.Lot
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Lot{}).Scopes(OrgScope(ctx))

	if params.PeptideID != nil {
		query = query.Where("peptide_id = ?", *params.PeptideID)
	}
	if params.PaymentStatus != nil {
		query = query.Where("payment_status = ?", *params.PaymentStatus)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortBy := "created_at"
	sortOrder := "DESC"
	if params.SortBy != "" {
		sortBy = params.SortBy
	}
	if params.SortOrder == "ASC" || params.SortOrder == "asc" {
		sortOrder = "ASC"
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Peptide").
		Order(sortBy + " " + sortOrder).
		Find(&lots).Error

	return lots, total, err
}

func (r *lotRepository) UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status enum.PaymentStatus) error {
	return r.db.WithContext(ctx).Model(&entity.Lot{}).
		Where("id = ?", id).
		Update("payment_status", status).Error
}

type bottleRepository struct {
	db *gorm.DB
}

// NewBottleRepository creates a new bottle repository
func NewBottleRepository(db *gorm.DB) domainRepo.BottleRepository {
	return &bottleRepository{db: db}
}

func (r *bottleRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Bottle, error) {
	var bottle entity.Bottle
	err := r.db.WithContext(ctx).
		Scopes(OrgScope(ctx)).
		Preload("Lot").
		First(&bottle, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &bottle, err
}

func (r *bottleRepository) ListByLot(ctx context.Context, lotID uuid.UUID) ([]entity.Bottle, error) {
	var bottles []entity.Bottle
	err := r.db.WithContext(ctx).
		Where("lot_id = ?", lotID).
		Order("created_at ASC").
		Find(&bottles).Error
	return bottles, err
}

func (r *bottleRepository) ListByStatus(ctx context.Context, status enum.BottleStatus, params *pagination.PaginationParams) ([]entity.Bottle, int64, error) {
	var bottles []entity.Bottle
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Bottle{}).
		Scopes(OrgScope(ctx)).
		Where("status = ?", status)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Preload("Lot").
		Order("created_at ASC").
		Find(&bottles).Error

	return bottles, total, err
}

func (r *bottleRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.BottleStatus) error {
	return r.db.WithContext(ctx).Model(&entity.Bottle{}).
		Where("id = ?", id).
		Update("status", status).Error
}

// UpdateStatusBatch flips a set of bottles from one status to another,
// rolling back if any bottle is not in the expected starting status
func (r *bottleRepository) UpdateStatusBatch(ctx context.Context, ids []uuid.UUID, from, to enum.BottleStatus) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&entity.Bottle{}).
			Where("id IN ? AND status = ?", ids, from).
			Update("status", to)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected != int64(len(ids)) {
			return gorm.ErrInvalidTransaction
		}
		return nil
	})
}
