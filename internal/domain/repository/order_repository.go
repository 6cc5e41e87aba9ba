package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/vialtrack/vialtrack-api/internal/domain/entity"
	"github.com/vialtrack/vialtrack-api/internal/domain/enum"
	"github.com/vialtrack/vialtrack-api/pkg/pagination"
)

// SalesOrderRepository defines the interface for sales order data operations
type SalesOrderRepository interface {
	Create(ctx context.Context, order *entity.SalesOrder) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.SalesOrder, error)
	GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.SalesOrder, error)
	GetByWooOrderID(ctx context.Context, wooOrderID int64) (*entity.SalesOrder, error)
	Update(ctx context.Context, order *entity.SalesOrder) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *OrderFilterParams) ([]entity.SalesOrder, int64, error)
	ListWithCursor(ctx context.Context, params *OrderCursorFilterParams) ([]entity.SalesOrder, error)
	ListAllForExport(ctx context.Context, params *OrderFilterParams) ([]entity.SalesOrder, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enum.OrderStatus) error
	// ReplaceItems atomically swaps an order's line items and writes the
	// recomputed total in the same transaction.
	ReplaceItems(ctx context.Context, orderID uuid.UUID, items []entity.SalesOrderItem, totalAmount int64) error
	// Fulfill runs the whole fulfillment write set in one transaction:
	// FIFO bottle allocation, the sale movement with its items, commission
	// upserts, and the order's status/COGS/profit update. It fails without
	// side effects when any peptide lacks stock.
	Fulfill(ctx context.Context, params *FulfillParams) (*FulfillResult, error)
	// CancelFulfillment reverses a fulfilled order in one transaction:
	// its sale movement and items are removed, the allocated bottles go
	// back in stock, the fulfillment financials are cleared, and the
	// order is marked cancelled.
	CancelFulfillment(ctx context.Context, orderID uuid.UUID) error
}

// OrderFilterParams contains filtering parameters for order queries
type OrderFilterParams struct {
	Pagination     *pagination.PaginationParams
	Search         string
	Status         *enum.OrderStatus
	PaymentStatus  *enum.PaymentStatus
	ShippingStatus *enum.ShippingStatus
	ClientID       *uuid.UUID
	RepID          *uuid.UUID
	StartDate      *time.Time
	EndDate        *time.Time
	SortBy         string
	SortOrder      string
}

// OrderCursorFilterParams contains cursor-based filtering for order queries
type OrderCursorFilterParams struct {
	Cursor        *pagination.CursorParams
	Search        string
	Status        *enum.OrderStatus
	PaymentStatus *enum.PaymentStatus
	ClientID      *uuid.UUID
	RepID         *uuid.UUID
	StartDate     *time.Time
	EndDate       *time.Time
}

// FulfillParams carries the precomputed pieces of a fulfillment.
// Commission and merchant fee are computed by the caller from the order
// total; COGS and profit come out of the transaction because they depend
// on which bottles get allocated.
type FulfillParams struct {
	Order            *entity.SalesOrder // loaded with items
	MovementDate     time.Time
	CreatedBy        uuid.UUID
	CommissionAmount int64 // cents
	MerchantFee      int64 // cents
	Commissions      []entity.Commission
}

// FulfillResult reports what the fulfillment transaction wrote
type FulfillResult struct {
	MovementID   uuid.UUID
	BottleIDs    []uuid.UUID
	COGSAmount   int64 // cents
	ProfitAmount int64 // cents
	// OutOfStock lists peptide IDs short on bottles when the transaction
	// was rolled back
	OutOfStock []uuid.UUID
}

// SalesOrderItemRepository defines the interface for order line item operations
type SalesOrderItemRepository interface {
	CreateBatch(ctx context.Context, items []entity.SalesOrderItem) error
	GetByOrderID(ctx context.Context, orderID uuid.UUID) ([]entity.SalesOrderItem, error)
	DeleteByOrderID(ctx context.Context, orderID uuid.UUID) error
}
