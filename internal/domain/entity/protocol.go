package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Protocol is a reusable dosing-schedule template, optionally assigned to a
// contact. Org-level templates have a nil ContactID.
type Protocol struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	OrgID       uuid.UUID      `gorm:"type:uuid;not null;index" json:"org_id"`
	ContactID   *uuid.UUID     `gorm:"type:uuid;index" json:"contact_id,omitempty"`
	Name        string         `gorm:"size:255;not null" json:"name"`
	Description *string        `gorm:"type:text" json:"description,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	Org     *Org           `gorm:"foreignKey:OrgID" json:"-"`
	Contact *Contact       `gorm:"foreignKey:ContactID" json:"contact,omitempty"`
	Items   []ProtocolItem `gorm:"foreignKey:ProtocolID" json:"items,omitempty"`
}

// BeforeCreate generates a UUID before creating a new protocol
func (p *Protocol) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Protocol model
func (Protocol) TableName() string {
	return "protocols"
}

// ProtocolItem is one peptide line in a protocol: dosage, frequency, duration
type ProtocolItem struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	ProtocolID     uuid.UUID `gorm:"type:uuid;not null;index" json:"protocol_id"`
	PeptideID      uuid.UUID `gorm:"type:uuid;not null;index" json:"peptide_id"`
	Dosage         string    `gorm:"size:100" json:"dosage"`
	Frequency      string    `gorm:"size:100" json:"frequency"`
	DurationWeeks  int       `gorm:"default:1" json:"duration_weeks"`
	DurationDays   *int      `json:"duration_days,omitempty"`
	CostMultiplier float64   `gorm:"default:1" json:"cost_multiplier"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	Protocol *Protocol `gorm:"foreignKey:ProtocolID" json:"-"`
	Peptide  *Peptide  `gorm:"foreignKey:PeptideID" json:"peptide,omitempty"`
}

// BeforeCreate generates a UUID and backfills duration_weeks from
// duration_days for rows written by callers still using the day field.
func (i *ProtocolItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	if i.DurationDays != nil && i.DurationWeeks <= 0 {
		i.DurationWeeks = (*i.DurationDays + 6) / 7
	}
	return nil
}

// TableName returns the table name for the ProtocolItem model
func (ProtocolItem) TableName() string {
	return "protocol_items"
}
