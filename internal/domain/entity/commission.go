package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/vialtrack/vialtrack-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Commission is one partner's cut of a sale. The (sale_id, partner_id, type)
// triple is unique so commission processing stays idempotent when an order
// is fulfilled and later marked paid.
type Commission struct {
	ID             uuid.UUID             `gorm:"type:uuid;primary_key" json:"id"`
	OrgID          uuid.UUID             `gorm:"type:uuid;not null;index" json:"org_id"`
	SaleID         uuid.UUID             `gorm:"type:uuid;not null;uniqueIndex:idx_sale_partner_type" json:"sale_id"`
	PartnerID      uuid.UUID             `gorm:"type:uuid;not null;uniqueIndex:idx_sale_partner_type" json:"partner_id"`
	Type           enum.CommissionType   `gorm:"size:50;not null;uniqueIndex:idx_sale_partner_type" json:"type"`
	Amount         int64                 `gorm:"not null" json:"-"` // cents
	CommissionRate float64               `gorm:"default:0" json:"commission_rate"`
	Status         enum.CommissionStatus `gorm:"size:50;default:'pending'" json:"status"`
	CreatedAt      time.Time             `json:"created_at"`
	UpdatedAt      time.Time             `json:"updated_at"`

	Partner *Profile    `gorm:"foreignKey:PartnerID" json:"partner,omitempty"`
	Sale    *SalesOrder `gorm:"foreignKey:SaleID" json:"-"`
}

// MarshalJSON converts cents to decimal for API responses
func (c Commission) MarshalJSON() ([]byte, error) {
	type Alias Commission
	return json.Marshal(&struct {
		Alias
		Amount float64 `json:"amount"`
	}{
		Alias:  Alias(c),
		Amount: float64(c.Amount) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new commission
func (c *Commission) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Commission model
func (Commission) TableName() string {
	return "commissions"
}
