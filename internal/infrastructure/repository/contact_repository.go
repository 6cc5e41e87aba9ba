package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/vialtrack/vialtrack-api/internal/domain/entity"
	domainRepo "github.com/vialtrack/vialtrack-api/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type contactRepository struct {
	db *gorm.DB
}

// NewContactRepository creates a new contact repository
func NewContactRepository(db *gorm.DB) domainRepo.ContactRepository {
	return &contactRepository{db: db}
}

func (r *contactRepository) Create(ctx context.Context, contact *entity.Contact) error {
	return r.db.WithContext(ctx).Create(contact).Error
}

func (r *contactRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Contact, error) {
	var contact entity.Contact
	err := r.db.WithContext(ctx).
		Scopes(OrgScope(ctx)).
		First(&contact, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &contact, err
}

func (r *contactRepository) GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.Contact, error) {
	var contact entity.Contact
	err := r.db.WithContext(ctx).
		Scopes(OrgScope(ctx)).
		Preload("AssignedRep").
		Preload("Orders", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		Preload("Protocols.Items").
		First(&contact, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &contact, err
}

func (r *contactRepository) GetByLinkedUserID(ctx context.Context, userID uuid.UUID) (*entity.Contact, error) {
	var contact entity.Contact
	err := r.db.WithContext(ctx).
		Scopes(OrgScope(ctx)).
		First(&contact, "linked_user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &contact, err
}

func (r *contactRepository) Update(ctx context.Context, contact *entity.Contact) error {
	return r.db.WithContext(ctx).Save(contact).Error
}

func (r *contactRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Contact{}, "id = ?", id).Error
}

func (r *contactRepository) List(ctx context.Context, params *domainRepo.ContactFilterParams) ([]entity.Contact, int64, error) {
	var contacts []entity.Contact
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Contact{}).Scopes(OrgScope(ctx))

	if params.Search != "" {
		pattern := "%" + params.Search + "%"
		query = query.Where("LOWER(name) LIKE LOWER(?) OR LOWER(email) LIKE LOWER(?)", pattern, pattern)
	}
	if params.Type != nil {
		query = query.Where("type = ?", *params.Type)
	}
	if params.AssignedRepID != nil {
		query = query.Where("assigned_rep_id = ?", *params.AssignedRepID)
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
		Order(sortBy + " " + sortOrder).
		Find(&contacts).Error

	return contacts, total, err
}

// UpsertLinked inserts the contact, relying on the (org_id, linked_user_id)
// unique index to make replays no-ops. The row that ends up in the table is
// returned either way.
func (r *contactRepository) UpsertLinked(ctx context.Context, contact *entity.Contact) (*entity.Contact, error) {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "org_id"}, {Name: "linked_user_id"}},
		DoNothing: true,
	}).Create(contact).Error
	if err != nil {
		return nil, err
	}

	var existing entity.Contact
	err = r.db.WithContext(ctx).
		First(&existing, "org_id = ? AND linked_user_id = ?", contact.OrgID, contact.LinkedUserID).Error
	if err != nil {
		return nil, err
	}
	return &existing, nil
}
