package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/vialtrack/vialtrack-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Profile is the business-facing record for an authenticated user: role,
// commission settings, pricing settings and store-credit balance.
// Credentials live with the hosted auth provider; UserID is its subject.
type Profile struct {
	ID             uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	UserID         uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	OrgID          *uuid.UUID       `gorm:"type:uuid;index" json:"org_id,omitempty"`
	FullName       string           `gorm:"size:255" json:"full_name"`
	Email          string           `gorm:"size:255;not null" json:"email"`
	Role           enum.AppRole     `gorm:"size:50;default:'client'" json:"role"`
	ParentRepID    *uuid.UUID       `gorm:"type:uuid;index" json:"parent_rep_id,omitempty"`
	PartnerTier    enum.PartnerTier `gorm:"size:50" json:"partner_tier,omitempty"`
	CommissionRate float64          `gorm:"default:0" json:"commission_rate"`
	PriceMult      float64          `gorm:"column:price_multiplier;default:1" json:"price_multiplier"`
	PricingMode    enum.PricingMode `gorm:"size:50;default:'percentage'" json:"pricing_mode"`
	CostPlusMarkup int64            `gorm:"default:0" json:"-"` // cents per unit
	CreditBalance  int64            `gorm:"default:0" json:"-"` // cents
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
	DeletedAt      gorm.DeletedAt   `gorm:"index" json:"-"`

	Org *Org `gorm:"foreignKey:OrgID" json:"-"`
}

// MarshalJSON converts cent-denominated fields to decimal for API responses
func (p Profile) MarshalJSON() ([]byte, error) {
	type Alias Profile
	return json.Marshal(&struct {
		Alias
		CostPlusMarkup float64 `json:"cost_plus_markup"`
		CreditBalance  float64 `json:"credit_balance"`
	}{
		Alias:          Alias(p),
		CostPlusMarkup: float64(p.CostPlusMarkup) / 100,
		CreditBalance:  float64(p.CreditBalance) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new profile
func (p *Profile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Profile model
func (Profile) TableName() string {
	return "profiles"
}
