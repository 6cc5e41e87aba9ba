package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/vialtrack/vialtrack-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Movement records a change in inventory disposition: a sale, giveaway,
// internal use, loss or return, together with the bottles it touched.
type Movement struct {
	ID            uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	OrgID         uuid.UUID          `gorm:"type:uuid;not null;index" json:"org_id"`
	Type          enum.MovementType  `gorm:"size:50;not null" json:"type"`
	ContactID     *uuid.UUID         `gorm:"type:uuid;index" json:"contact_id,omitempty"`
	SalesOrderID  *uuid.UUID         `gorm:"type:uuid;index" json:"sales_order_id,omitempty"`
	MovementDate  time.Time          `gorm:"type:date;not null" json:"movement_date"`
	PaymentStatus enum.PaymentStatus `gorm:"size:50;default:'unpaid'" json:"payment_status"`
	PaymentMethod *string            `gorm:"size:50" json:"payment_method,omitempty"`
	AmountPaid    int64              `gorm:"default:0" json:"-"` // cents
	Notes         *string            `gorm:"type:text" json:"notes,omitempty"`
	CreatedBy     uuid.UUID          `gorm:"type:uuid;not null" json:"created_by"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
	DeletedAt     gorm.DeletedAt     `gorm:"index" json:"-"`

	Org     *Org           `gorm:"foreignKey:OrgID" json:"-"`
	Contact *Contact       `gorm:"foreignKey:ContactID" json:"contact,omitempty"`
	Items   []MovementItem `gorm:"foreignKey:MovementID" json:"items,omitempty"`
}

// MarshalJSON converts cents to decimal for API responses
func (m Movement) MarshalJSON() ([]byte, error) {
	type Alias Movement
	return json.Marshal(&struct {
		Alias
		AmountPaid float64 `json:"amount_paid"`
	}{
		Alias:      Alias(m),
		AmountPaid: float64(m.AmountPaid) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new movement
func (m *Movement) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Movement model
func (Movement) TableName() string {
	return "movements"
}

// MovementItem links one bottle to a movement with the price it moved at
type MovementItem struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	MovementID  uuid.UUID `gorm:"type:uuid;not null;index" json:"movement_id"`
	BottleID    uuid.UUID `gorm:"type:uuid;not null;index" json:"bottle_id"`
	PriceAtSale int64     `gorm:"default:0" json:"-"` // cents
	CreatedAt   time.Time `json:"created_at"`

	Movement *Movement `gorm:"foreignKey:MovementID" json:"-"`
	Bottle   *Bottle   `gorm:"foreignKey:BottleID" json:"bottle,omitempty"`
}

// MarshalJSON converts cents to decimal for API responses
func (mi MovementItem) MarshalJSON() ([]byte, error) {
	type Alias MovementItem
	return json.Marshal(&struct {
		Alias
		PriceAtSale float64 `json:"price_at_sale"`
	}{
		Alias:       Alias(mi),
		PriceAtSale: float64(mi.PriceAtSale) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new movement item
func (mi *MovementItem) BeforeCreate(tx *gorm.DB) error {
	if mi.ID == uuid.Nil {
		mi.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the MovementItem model
func (MovementItem) TableName() string {
	return "movement_items"
}
