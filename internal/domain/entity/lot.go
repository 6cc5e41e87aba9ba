package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/vialtrack/vialtrack-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Lot is a received batch of a peptide with its own cost and expiry.
// Creating a lot generates quantity_received bottles in the same transaction.
type Lot struct {
	ID               uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	OrgID            uuid.UUID          `gorm:"type:uuid;not null;index" json:"org_id"`
	PeptideID        uuid.UUID          `gorm:"type:uuid;not null;index" json:"peptide_id"`
	LotNumber        string             `gorm:"size:100;not null" json:"lot_number"`
	QuantityReceived int                `gorm:"not null" json:"quantity_received"`
	CostPerUnit      int64              `gorm:"default:0" json:"-"` // cents
	PaymentStatus    enum.PaymentStatus `gorm:"size:50;default:'unpaid'" json:"payment_status"`
	ReceivedDate     *time.Time         `gorm:"type:date" json:"received_date,omitempty"`
	ExpiryDate       *time.Time         `gorm:"type:date" json:"expiry_date,omitempty"`
	CreatedAt        time.Time          `json:"created_at"`
	UpdatedAt        time.Time          `json:"updated_at"`
	DeletedAt        gorm.DeletedAt     `gorm:"index" json:"-"`

	Org     *Org     `gorm:"foreignKey:OrgID" json:"-"`
	Peptide *Peptide `gorm:"foreignKey:PeptideID" json:"peptide,omitempty"`
	Bottles []Bottle `gorm:"foreignKey:LotID" json:"-"`
}

// MarshalJSON converts cents to decimal for API responses
func (l Lot) MarshalJSON() ([]byte, error) {
	type Alias Lot
	return json.Marshal(&struct {
		Alias
		CostPerUnit float64 `json:"cost_per_unit"`
	}{
		Alias:       Alias(l),
		CostPerUnit: float64(l.CostPerUnit) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new lot
func (l *Lot) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Lot model
func (Lot) TableName() string {
	return "lots"
}

// Bottle is an individually trackable unit generated from a lot
type Bottle struct {
	ID        uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	OrgID     uuid.UUID         `gorm:"type:uuid;not null;index" json:"org_id"`
	LotID     uuid.UUID         `gorm:"type:uuid;not null;index" json:"lot_id"`
	Status    enum.BottleStatus `gorm:"size:50;default:'in_stock';index" json:"status"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`

	Lot *Lot `gorm:"foreignKey:LotID" json:"lot,omitempty"`
}

// BeforeCreate generates a UUID before creating a new bottle
func (b *Bottle) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Bottle model
func (Bottle) TableName() string {
	return "bottles"
}
