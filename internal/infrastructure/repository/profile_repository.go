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

type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db *gorm.DB) domainRepo.ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) Create(ctx context.Context, profile *entity.Profile) error {
	return r.db.WithContext(ctx).Create(profile).Error
}

func (r *profileRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Profile, error) {
	var profile entity.Profile
	err := r.db.WithContext(ctx).First(&profile, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &profile, err
}

func (r *profileRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*entity.Profile, error) {
	var profile entity.Profile
	err := r.db.WithContext(ctx).First(&profile, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &profile, err
}

func (r *profileRepository) Update(ctx context.Context, profile *entity.Profile) error {
	return r.db.WithContext(ctx).Save(profile).Error
}

func (r *profileRepository) List(ctx context.Context, params *domainRepo.ProfileFilterParams) ([]entity.Profile, int64, error) {
	var profiles []entity.Profile
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Profile{}).Scopes(OrgScope(ctx))

	if params.Search != "" {
		pattern := "%" + params.Search + "%"
		query = query.Where("LOWER(full_name) LIKE LOWER(?) OR LOWER(email) LIKE LOWER(?)", pattern, pattern)
	}
	if params.Role != nil {
		query = query.Where("role = ?", *params.Role)
	}
	if params.ParentRepID != nil {
		query = query.Where("parent_rep_id = ?", *params.ParentRepID)
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
		Find(&profiles).Error

	return profiles, total, err
}

func (r *profileRepository) ListByRole(ctx context.Context, role enum.AppRole) ([]entity.Profile, error) {
	var profiles []entity.Profile
	err := r.db.WithContext(ctx).
		Scopes(OrgScope(ctx)).
		Where("role = ?", role).
		Order("full_name ASC").
		Find(&profiles).Error
	return profiles, err
}

// DebitCredit atomically decrements the store-credit balance only if the
// balance covers the amount.
// Uses: UPDATE profiles SET credit_balance = credit_balance - amount
// WHERE user_id = ? AND credit_balance >= amount
func (r *profileRepository) DebitCredit(ctx context.Context, userID uuid.UUID, amount int64) (bool, error) {
	result := r.db.WithContext(ctx).Model(&entity.Profile{}).
		Where("user_id = ? AND credit_balance >= ?", userID, amount).
		Update("credit_balance", gorm.Expr("credit_balance - ?", amount))

	if result.Error != nil {
		return false, result.Error
	}

	// no rows affected means insufficient balance
	return result.RowsAffected > 0, nil
}

func (r *profileRepository) CreditBalance(ctx context.Context, userID uuid.UUID, amount int64) error {
	return r.db.WithContext(ctx).Model(&entity.Profile{}).
		Where("user_id = ?", userID).
		Update("credit_balance", gorm.Expr("credit_balance + ?", amount)).Error
}

type orgRepository struct {
	db *gorm.DB
}

// NewOrgRepository creates a new org repository
func NewOrgRepository(db *gorm.DB) domainRepo.OrgRepository {
	return &orgRepository{db: db}
}

func (r *orgRepository) Create(ctx context.Context, org *entity.Org) error {
	return r.db.WithContext(ctx).Create(org).Error
}

func (r *orgRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Org, error) {
	var org entity.Org
	err := r.db.WithContext(ctx).First(&org, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &org, err
}

func (r *orgRepository) GetBySlug(ctx context.Context, slug string) (*entity.Org, error) {
	var org entity.Org
	err := r.db.WithContext(ctx).First(&org, "slug = ?", slug).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &org, err
}

func (r *orgRepository) Update(ctx context.Context, org *entity.Org) error {
	return r.db.WithContext(ctx).Save(org).Error
}

func (r *orgRepository) List(ctx context.Context) ([]entity.Org, error) {
	var orgs []entity.Org
	err := r.db.WithContext(ctx).Order("name ASC").Find(&orgs).Error
	return orgs, err
}

type userRoleRepository struct {
	db *gorm.DB
}

// NewUserRoleRepository creates a new user role repository
func NewUserRoleRepository(db *gorm.DB) domainRepo.UserRoleRepository {
	return &userRoleRepository{db: db}
}

func (r *userRoleRepository) GetByUserAndOrg(ctx context.Context, userID, orgID uuid.UUID) (*entity.UserRole, error) {
	var role entity.UserRole
	err := r.db.WithContext(ctx).First(&role, "user_id = ? AND org_id = ?", userID, orgID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &role, err
}

func (r *userRoleRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]entity.UserRole, error) {
	var roles []entity.UserRole
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Find(&roles).Error
	return roles, err
}

// Upsert relies on the (user_id, org_id) unique index to make replays no-ops
func (r *userRoleRepository) Upsert(ctx context.Context, role *entity.UserRole) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "org_id"}},
		DoNothing: true,
	}).Create(role).Error
}

type referralRepository struct {
	db *gorm.DB
}

// NewReferralRepository creates a new referral repository
func NewReferralRepository(db *gorm.DB) domainRepo.ReferralRepository {
	return &referralRepository{db: db}
}

// Link runs the referral-link write set as one transaction. Every write is
// an upsert against a unique constraint, so replaying the same link changes
// nothing and reports AlreadyLinked.
func (r *referralRepository) Link(ctx context.Context, params *domainRepo.ReferralLinkParams) (*domainRepo.ReferralLinkResult, error) {
	result := &domainRepo.ReferralLinkResult{}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var profile entity.Profile
		err := tx.First(&profile, "user_id = ?", params.UserID).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			profile = entity.Profile{
				UserID:         params.UserID,
				OrgID:          &params.OrgID,
				FullName:       params.FullName,
				Email:          params.Email,
				Role:           params.Role,
				ParentRepID:    params.ReferrerRepID,
				PartnerTier:    params.PartnerTier,
				CommissionRate: params.CommissionRate,
				PriceMult:      params.PriceMult,
			}
			if err := tx.Create(&profile).Error; err != nil {
				return err
			}
		case err != nil:
			return err
		default:
			result.AlreadyLinked = true
			// an existing profile keeps its org, rep and commission settings
		}

		role := entity.UserRole{
			UserID: params.UserID,
			OrgID:  params.OrgID,
			Role:   string(params.Role),
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "org_id"}},
			DoNothing: true,
		}).Create(&role).Error; err != nil {
			return err
		}

		contact := entity.Contact{
			OrgID:         params.OrgID,
			Name:          params.FullName,
			Email:         &params.Email,
			Type:          params.ContactType,
			AssignedRepID: params.ReferrerRepID,
			LinkedUserID:  &params.UserID,
		}
		res := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "org_id"}, {Name: "linked_user_id"}},
			DoNothing: true,
		}).Create(&contact)
		if res.Error != nil {
			return res.Error
		}
		result.CreatedContact = res.RowsAffected > 0

		var linked entity.Contact
		if err := tx.First(&linked, "org_id = ? AND linked_user_id = ?", params.OrgID, params.UserID).Error; err != nil {
			return err
		}

		result.Profile = &profile
		result.Contact = &linked
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}
