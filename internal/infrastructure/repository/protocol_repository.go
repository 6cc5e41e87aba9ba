package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/vialtrack/vialtrack-api/internal/domain/entity"
	domainRepo "github.com/vialtrack/vialtrack-api/internal/domain/repository"
	"gorm.io/gorm"
)

type protocolRepository struct {
	db *gorm.DB
}

// NewProtocolRepository creates a new protocol repository
func NewProtocolRepository(db *gorm.DB) domainRepo.ProtocolRepository {
	return &protocolRepository{db: db}
}

func (r *protocolRepository) Create(ctx context.Context, protocol *entity.Protocol) error {
	return r.db.WithContext(ctx).Create(protocol).Error
}

func (r *protocolRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Protocol, error) {
	var protocol entity.Protocol
	err := r.db.WithContext(ctx).
		Scopes(OrgScope(ctx)).
		First(&protocol, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &protocol, err
}

func (r *protocolRepository) GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Protocol, error) {
	var protocol entity.Protocol
	err := r.db.WithContext(ctx).
		Scopes(OrgScope(ctx)).
		Preload("Contact").
		Preload("Items.Peptide").
		First(&protocol, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &protocol, err
}

func (r *protocolRepository) Update(ctx context.Context, protocol *entity.Protocol) error {
	return r.db.WithContext(ctx).Save(protocol).Error
}

func (r *protocolRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("protocol_id = ?", id).Delete(&entity.ProtocolItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&entity.Protocol{}, "id = ?", id).Error
	})
}

func (r *protocolRepository) List(ctx context.Context, params *domainRepo.ProtocolFilterParams) ([]entity.Protocol, int64, error) {
	var protocols []entity.Protocol
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Protocol{}).Scopes(OrgScope(ctx))

	if params.Search != "" {
		query = query.Where("LOWER(name) LIKE LOWER(?)", "%"+params.Search+"%")
	}
	if params.ContactID != nil {
		query = query.Where("contact_id = ?", *params.ContactID)
	}
	if params.TemplatesOnly {
		query = query.Where("contact_id IS NULL")
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
		Preload("Items").
		Order(sortBy + " " + sortOrder).
		Find(&protocols).Error

	return protocols, total, err
}

// SyncItems reconciles the protocol's items against the given set in one
// transaction: known IDs are updated, new rows inserted, missing rows deleted
func (r *protocolRepository) SyncItems(ctx context.Context, protocolID uuid.UUID, items []entity.ProtocolItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing []entity.ProtocolItem
		if err := tx.Where("protocol_id = ?", protocolID).Find(&existing).Error; err != nil {
			return err
		}

		keep := make(map[uuid.UUID]bool, len(items))
		for i := range items {
			item := &items[i]
			item.ProtocolID = protocolID

			if item.DurationDays != nil && item.DurationWeeks <= 0 {
				item.DurationWeeks = (*item.DurationDays + 6) / 7
			}

			if item.ID != uuid.Nil {
				keep[item.ID] = true
				if err := tx.Model(&entity.ProtocolItem{}).
					Where("id = ? AND protocol_id = ?", item.ID, protocolID).
					Updates(map[string]interface{}{
						"peptide_id":      item.PeptideID,
						"dosage":          item.Dosage,
						"frequency":       item.Frequency,
						"duration_weeks":  item.DurationWeeks,
						"duration_days":   item.DurationDays,
						"cost_multiplier": item.CostMultiplier,
					}).Error; err != nil {
					return err
				}
				continue
			}

			if err := tx.Create(item).Error; err != nil {
				return err
			}
			keep[item.ID] = true
		}

		for _, old := range existing {
			if !keep[old.ID] {
				if err := tx.Delete(&entity.ProtocolItem{}, "id = ?", old.ID).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
}
