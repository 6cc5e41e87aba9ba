package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Peptide is a sellable product. Stock is not stored here; it is derived
// from in-stock bottles across the peptide's lots.
type Peptide struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	OrgID     uuid.UUID      `gorm:"type:uuid;not null;index" json:"org_id"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	SKU       string         `gorm:"size:100;index" json:"sku"`
	BasePrice int64          `gorm:"default:0" json:"-"` // cents
	VialSize  *string        `gorm:"size:50" json:"vial_size,omitempty"`
	Notes     *string        `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Org  *Org  `gorm:"foreignKey:OrgID" json:"-"`
	Lots []Lot `gorm:"foreignKey:PeptideID" json:"-"`
}

// MarshalJSON converts cents to decimal for API responses
func (p Peptide) MarshalJSON() ([]byte, error) {
	type Alias Peptide
	return json.Marshal(&struct {
		Alias
		BasePrice float64 `json:"base_price"`
	}{
		Alias:     Alias(p),
		BasePrice: float64(p.BasePrice) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new peptide
func (p *Peptide) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Peptide model
func (Peptide) TableName() string {
	return "peptides"
}
