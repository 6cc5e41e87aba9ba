package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Org is a tenant: one peptide business with its own inventory and CRM data
type Org struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	Slug      string         `gorm:"size:255;unique;not null" json:"slug"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new org
func (o *Org) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Org model
func (Org) TableName() string {
	return "orgs"
}

// UserRole assigns an application role to a user within an org.
// The (user_id, org_id) pair is unique so referral linking can upsert
// instead of check-then-insert.
type UserRole struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_org" json:"user_id"`
	OrgID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_org" json:"org_id"`
	Role      string    `gorm:"size:50;not null" json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new user role
func (r *UserRole) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the UserRole model
func (UserRole) TableName() string {
	return "user_roles"
}
