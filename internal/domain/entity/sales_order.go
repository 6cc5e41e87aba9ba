package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/vialtrack/vialtrack-api/internal/domain/enum"
	"gorm.io/gorm"
)

// SalesOrder is an order placed for a client, carrying payment and
// shipping bookkeeping alongside the profit breakdown.
// All monetary columns are stored in cents.
type SalesOrder struct {
	ID            uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	OrgID         uuid.UUID          `gorm:"type:uuid;not null;index" json:"org_id"`
	ClientID      *uuid.UUID         `gorm:"type:uuid;index" json:"client_id,omitempty"`
	RepID         *uuid.UUID         `gorm:"type:uuid;index" json:"rep_id,omitempty"`
	Status        enum.OrderStatus   `gorm:"size:50;default:'draft';index" json:"status"`
	PaymentStatus enum.PaymentStatus `gorm:"size:50;default:'unpaid'" json:"payment_status"`
	PaymentMethod *string            `gorm:"size:50" json:"payment_method,omitempty"`
	PaymentDate   *time.Time         `json:"payment_date,omitempty"`

	TotalAmount      int64 `gorm:"default:0" json:"-"`
	AmountPaid       int64 `gorm:"default:0" json:"-"`
	CommissionAmount int64 `gorm:"default:0" json:"-"`
	COGSAmount       int64 `gorm:"column:cogs_amount;default:0" json:"-"`
	ShippingCost     int64 `gorm:"default:0" json:"-"`
	MerchantFee      int64 `gorm:"default:0" json:"-"`
	ProfitAmount     int64 `gorm:"default:0" json:"-"`

	ShippingAddress *string             `gorm:"type:text" json:"shipping_address,omitempty"`
	DeliveryMethod  enum.DeliveryMethod `gorm:"size:50;default:'ship'" json:"delivery_method"`
	ShippingStatus  enum.ShippingStatus `gorm:"size:50;default:'pending'" json:"shipping_status"`
	TrackingNumber  *string             `gorm:"size:100" json:"tracking_number,omitempty"`
	Carrier         *string             `gorm:"size:100" json:"carrier,omitempty"`
	LabelURL        *string             `gorm:"size:512" json:"label_url,omitempty"`
	ShipDate        *time.Time          `json:"ship_date,omitempty"`
	ShippingError   *string             `gorm:"type:text" json:"shipping_error,omitempty"`

	OrderSource enum.OrderSource `gorm:"size:50;default:'app'" json:"order_source"`
	WooOrderID  *int64           `json:"woo_order_id,omitempty"`
	Notes       *string          `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
	DeletedAt   gorm.DeletedAt   `gorm:"index" json:"-"`

	Org     *Org             `gorm:"foreignKey:OrgID" json:"-"`
	Client  *Contact         `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	Rep     *Profile         `gorm:"foreignKey:RepID" json:"rep,omitempty"`
	Items   []SalesOrderItem `gorm:"foreignKey:SalesOrderID" json:"items,omitempty"`
}

// MarshalJSON converts cent columns to decimal for API responses
func (o SalesOrder) MarshalJSON() ([]byte, error) {
	type Alias SalesOrder
	return json.Marshal(&struct {
		Alias
		TotalAmount      float64 `json:"total_amount"`
		AmountPaid       float64 `json:"amount_paid"`
		CommissionAmount float64 `json:"commission_amount"`
		COGSAmount       float64 `json:"cogs_amount"`
		ShippingCost     float64 `json:"shipping_cost"`
		MerchantFee      float64 `json:"merchant_fee"`
		ProfitAmount     float64 `json:"profit_amount"`
	}{
		Alias:            Alias(o),
		TotalAmount:      float64(o.TotalAmount) / 100,
		AmountPaid:       float64(o.AmountPaid) / 100,
		CommissionAmount: float64(o.CommissionAmount) / 100,
		COGSAmount:       float64(o.COGSAmount) / 100,
		ShippingCost:     float64(o.ShippingCost) / 100,
		MerchantFee:      float64(o.MerchantFee) / 100,
		ProfitAmount:     float64(o.ProfitAmount) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new order
func (o *SalesOrder) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the SalesOrder model
func (SalesOrder) TableName() string {
	return "sales_orders"
}

// ItemsTotal returns the sum of quantity x unit price over the order's items, in cents
func (o *SalesOrder) ItemsTotal() int64 {
	var total int64
	for _, item := range o.Items {
		total += int64(item.Quantity) * item.UnitPrice
	}
	return total
}

// SalesOrderItem is one line of a sales order
type SalesOrderItem struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	SalesOrderID uuid.UUID `gorm:"type:uuid;not null;index" json:"sales_order_id"`
	PeptideID    uuid.UUID `gorm:"type:uuid;not null;index" json:"peptide_id"`
	Quantity     int       `gorm:"not null" json:"quantity"`
	UnitPrice    int64     `gorm:"not null" json:"-"` // cents
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Order   *SalesOrder `gorm:"foreignKey:SalesOrderID" json:"-"`
	Peptide *Peptide    `gorm:"foreignKey:PeptideID" json:"peptide,omitempty"`
}

// MarshalJSON converts cents to decimal for API responses
func (i SalesOrderItem) MarshalJSON() ([]byte, error) {
	type Alias SalesOrderItem
	return json.Marshal(&struct {
		Alias
		UnitPrice float64 `json:"unit_price"`
		Total     float64 `json:"total"`
	}{
		Alias:     Alias(i),
		UnitPrice: float64(i.UnitPrice) / 100,
		Total:     float64(int64(i.Quantity)*i.UnitPrice) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new order item
func (i *SalesOrderItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the SalesOrderItem model
func (SalesOrderItem) TableName() string {
	return "sales_order_items"
}
