package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/vialtrack/vialtrack-api/internal/domain/entity"
	"github.com/vialtrack/vialtrack-api/internal/domain/enum"
	"github.com/vialtrack/vialtrack-api/pkg/pagination"
)

// ProfileRepository defines the interface for profile data operations
type ProfileRepository interface {
	Create(ctx context.Context, profile *entity.Profile) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Profile, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*entity.Profile, error)
	Update(ctx context.Context, profile *entity.Profile) error
	List(ctx context.Context, params *ProfileFilterParams) ([]entity.Profile, int64, error)
	ListByRole(ctx context.Context, role enum.AppRole) ([]entity.Profile, error)
	// DebitCredit atomically decrements the store-credit balance only if the
	// balance covers the amount. Returns false when it does not.
	DebitCredit(ctx context.Context, userID uuid.UUID, amount int64) (bool, error)
	// CreditBalance atomically adds to the store-credit balance
	CreditBalance(ctx context.Context, userID uuid.UUID, amount int64) error
}

// ProfileFilterParams contains filtering parameters for profile queries
type ProfileFilterParams struct {
	Pagination  *pagination.PaginationParams
	Search      string
	Role        *enum.AppRole
	ParentRepID *uuid.UUID
	SortBy      string
	SortOrder   string
}

// OrgRepository defines the interface for org data operations
type OrgRepository interface {
	Create(ctx context.Context, org *entity.Org) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Org, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Org, error)
	Update(ctx context.Context, org *entity.Org) error
	List(ctx context.Context) ([]entity.Org, error)
}

// UserRoleRepository defines the interface for per-org role assignments
type UserRoleRepository interface {
	GetByUserAndOrg(ctx context.Context, userID, orgID uuid.UUID) (*entity.UserRole, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]entity.UserRole, error)
	// Upsert inserts the assignment or leaves an existing (user_id, org_id)
	// row untouched, relying on the unique constraint
	Upsert(ctx context.Context, role *entity.UserRole) error
}

// ReferralLinkParams carries everything a referral link writes
type ReferralLinkParams struct {
	UserID   uuid.UUID
	Email    string
	FullName string
	OrgID    uuid.UUID
	// ReferrerRepID is the inviting rep's profile ID, nil for org-level links
	ReferrerRepID *uuid.UUID
	Role          enum.AppRole
	ContactType   enum.ContactType
	// Defaults applied when the profile is first created
	PartnerTier    enum.PartnerTier
	CommissionRate float64
	PriceMult      float64
}

// ReferralLinkResult reports what the link transaction found or created
type ReferralLinkResult struct {
	Profile        *entity.Profile
	Contact        *entity.Contact
	AlreadyLinked  bool
	CreatedContact bool
}

// ReferralRepository runs the referral-link write set as one transaction:
// profile upsert, user-role upsert, and linked-contact upsert. Replays of
// the same link are no-ops by constraint.
type ReferralRepository interface {
	Link(ctx context.Context, params *ReferralLinkParams) (*ReferralLinkResult, error)
}
