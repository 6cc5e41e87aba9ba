package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/vialtrack/vialtrack-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Contact is a CRM contact: a customer, partner or internal record.
// LinkedUserID ties a contact to a portal login; the (linked_user_id, org_id)
// pair is unique so referral linking can rely on the constraint instead of a
// lookup-then-insert sequence.
type Contact struct {
	ID              uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	OrgID           uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_contact_user_org" json:"org_id"`
	Name            string           `gorm:"size:255;not null" json:"name"`
	Email           *string          `gorm:"size:255" json:"email,omitempty"`
	Phone           *string          `gorm:"size:50" json:"phone,omitempty"`
	Type            enum.ContactType `gorm:"size:50;default:'customer'" json:"type"`
	AssignedRepID   *uuid.UUID       `gorm:"type:uuid;index" json:"assigned_rep_id,omitempty"`
	LinkedUserID    *uuid.UUID       `gorm:"type:uuid;uniqueIndex:idx_contact_user_org" json:"linked_user_id,omitempty"`
	ShippingAddress *string          `gorm:"type:text" json:"shipping_address,omitempty"`
	Notes           *string        `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`

	Org         *Org         `gorm:"foreignKey:OrgID" json:"-"`
	AssignedRep *Profile     `gorm:"foreignKey:AssignedRepID" json:"assigned_rep,omitempty"`
	Orders      []SalesOrder `gorm:"foreignKey:ClientID" json:"-"`
	Protocols   []Protocol   `gorm:"foreignKey:ContactID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new contact
func (c *Contact) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Contact model
func (Contact) TableName() string {
	return "contacts"
}
