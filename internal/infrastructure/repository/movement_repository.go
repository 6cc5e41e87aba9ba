package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/vialtrack/vialtrack-api/internal/domain/entity"
	"github.com/vialtrack/vialtrack-api/internal/domain/enum"
	domainRepo "github.com/vialtrack/vialtrack-api/internal/domain/repository"
	"gorm.io/gorm"
)

type movementRepository struct {
	db *gorm.DB
}

// NewMovementRepository creates a new movement repository
func NewMovementRepository(db *gorm.DB) domainRepo.MovementRepository {
	return &movementRepository{db: db}
}

// CreateWithItems writes the movement, one item per bottle, and the bottle
// status flips implied by the movement type in one transaction. Bottles must
// be in stock when the movement takes them out of stock, and not in stock
// when a return brings them back.
func (r *movementRepository) CreateWithItems(ctx context.Context, movement *entity.Movement, bottleIDs []uuid.UUID) error {
	outcome := movement.Type.BottleOutcome()

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(movement).Error; err != nil {
			return err
		}

		if len(bottleIDs) == 0 {
			return nil
		}

		items := make([]entity.MovementItem, len(bottleIDs))
		for i, id := range bottleIDs {
			items[i] = entity.MovementItem{
				MovementID: movement.ID,
				BottleID:   id,
			}
		}
		if err := tx.Create(&items).Error; err != nil {
			return err
		}

		query := tx.Model(&entity.Bottle{}).Where("id IN ?", bottleIDs)
		if movement.Type.TakesStock() {
			query = query.Where("status = ?", enum.BottleStatusInStock)
		}
		res := query.Update("status", outcome)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected != int64(len(bottleIDs)) {
			return gorm.ErrInvalidTransaction
		}
		return nil
	})
}

func (r *movementRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Movement, error) {
	var movement entity.Movement
	err := r.db.WithContext(ctx).
		Scopes(OrgScope(ctx)).
		First(&movement, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &movement, err
}

func (r *movementRepository) GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Movement, error) {
	var movement entity.Movement
	err := r.db.WithContext(ctx).
		Scopes(OrgScope(ctx)).
		Preload("Contact").
		Preload("Items.Bottle.Lot").
		First(&movement, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &movement, err
}

func (r *movementRepository) List(ctx context.Context, params *domainRepo.MovementFilterParams) ([]entity.Movement, int64, error) {
	var movements []entity.Movement
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Movement{}).Scopes(OrgScope(ctx))

	if params.Type != nil {
		query = query.Where("type = ?", *params.Type)
	}
	if params.ContactID != nil {
		query = query.Where("contact_id = ?", *params.ContactID)
	}
	if params.StartDate != nil {
		query = query.Where("movement_date >= ?", *params.StartDate)
	}
	if params.EndDate != nil {
		query = query.Where("movement_date <= ?", *params.EndDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortBy := "movement_date"
	sortOrder := "DESC"
	if params.SortBy != "" {
		sortBy = params.SortBy
	}
	if params.SortOrder == "ASC" || params.SortOrder == "asc" {
		sortOrder = "ASC"
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Contact").
		Preload("Items").
		Order(sortBy + " " + sortOrder).
		Find(&movements).Error

	return movements, total, err
}

func (r *movementRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Movement{}, "id = ?", id).Error
}
