package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/vialtrack/vialtrack-api/internal/domain/entity"
	"github.com/vialtrack/vialtrack-api/internal/domain/enum"
	domainRepo "github.com/vialtrack/vialtrack-api/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type commissionRepository struct {
	db *gorm.DB
}

// NewCommissionRepository creates a new commission repository
func NewCommissionRepository(db *gorm.DB) domainRepo.CommissionRepository {
	return &commissionRepository{db: db}
}

// UpsertBatch inserts commissions, skipping rows whose
// (sale_id, partner_id, type) already exists
func (r *commissionRepository) UpsertBatch(ctx context.Context, commissions []entity.Commission) error {
	if len(commissions) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "sale_id"}, {Name: "partner_id"}, {Name: "type"}},
		DoNothing: true,
	}).Create(&commissions).Error
}

func (r *commissionRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Commission, error) {
	var commission entity.Commission
	err := r.db.WithContext(ctx).
		Scopes(OrgScope(ctx)).
		Preload("Partner").
		First(&commission, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &commission, err
}

func (r *commissionRepository) ListBySale(ctx context.Context, saleID uuid.UUID) ([]entity.Commission, error) {
	var commissions []entity.Commission
	err := r.db.WithContext(ctx).
		Where("sale_id = ?", saleID).
		Order("created_at ASC").
		Find(&commissions).Error
	return commissions, err
}

func (r *commissionRepository) List(ctx context.Context, params *domainRepo.CommissionFilterParams) ([]entity.Commission, int64, error) {
	var commissions []entity.Commission
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Commission{}).Scopes(OrgScope(ctx))

	if params.PartnerID != nil {
		query = query.Where("partner_id = ?", *params.PartnerID)
	}
	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}
	if params.Type != nil {
		query = query.Where("type = ?", *params.Type)
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
		Preload("Partner").
		Order(sortBy + " " + sortOrder).
		Find(&commissions).Error

	return commissions, total, err
}

func (r *commissionRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.CommissionStatus) error {
	return r.db.WithContext(ctx).Model(&entity.Commission{}).
		Where("id = ?", id).
		Update("status", status).Error
}

// VoidBySale marks every pending commission on the sale voided
func (r *commissionRepository) VoidBySale(ctx context.Context, saleID uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&entity.Commission{}).
		Where("sale_id = ? AND status = ?", saleID, enum.CommissionStatusPending).
		Update("status", enum.CommissionStatusVoided).Error
}

// TotalPending sums pending commission cents for a partner
func (r *commissionRepository) TotalPending(ctx context.Context, partnerID uuid.UUID) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&entity.Commission{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("partner_id = ? AND status = ?", partnerID, enum.CommissionStatusPending).
		Scan(&total).Error
	return total, err
}
