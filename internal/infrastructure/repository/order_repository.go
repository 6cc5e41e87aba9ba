package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/vialtrack/vialtrack-api/internal/domain/entity"
	"github.com/vialtrack/vialtrack-api/internal/domain/enum"
	domainRepo "github.com/vialtrack/vialtrack-api/internal/domain/repository"
	"github.com/vialtrack/vialtrack-api/pkg/pagination"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type salesOrderRepository struct {
	db *gorm.DB
}

// NewSalesOrderRepository creates a new sales order repository
func NewSalesOrderRepository(db *gorm.DB) domainRepo.SalesOrderRepository {
	return &salesOrderRepository{db: db}
}

func (r *salesOrderRepository) Create(ctx context.Context, order *entity.SalesOrder) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *salesOrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.SalesOrder, error) {
	var order entity.SalesOrder
	err := r.db.WithContext(ctx).
		Scopes(OrgScope(ctx)).
		Preload("Items").
		First(&order, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &order, err
}

func (r *salesOrderRepository) GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.SalesOrder, error) {
	var order entity.SalesOrder
	err := r.db.WithContext(ctx).
		Scopes(OrgScope(ctx)).
		Preload("Client").
		Preload("Rep").
		Preload("Items.Peptide").
		First(&order, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &order, err
}

func (r *salesOrderRepository) GetByWooOrderID(ctx context.Context, wooOrderID int64) (*entity.SalesOrder, error) {
	var order entity.SalesOrder
	err := r.db.WithContext(ctx).
		Scopes(OrgScope(ctx)).
		First(&order, "woo_order_id = ?", wooOrderID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &order, err
}

func (r *salesOrderRepository) Update(ctx context.Context, order *entity.SalesOrder) error {
	return r.db.WithContext(ctx).Save(order).Error
}

func (r *salesOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.SalesOrder{}, "id = ?", id).Error
}

func (r *salesOrderRepository) applyFilters(query *gorm.DB, params *domainRepo.OrderFilterParams) *gorm.DB {
	if params.Search != "" {
		pattern := "%" + params.Search + "%"
		query = query.Where("LOWER(tracking_number) LIKE LOWER(?) OR LOWER(notes) LIKE LOWER(?)", pattern, pattern)
	}
	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}
	if params.PaymentStatus != nil {
		query = query.Where("payment_status = ?", *params.PaymentStatus)
	}
	if params.ShippingStatus != nil {
		query = query.Where("shipping_status = ?", *params.ShippingStatus)
	}
	if params.ClientID != nil {
		query = query.Where("client_id = ?", *params.ClientID)
	}
	if params.RepID != nil {
		query = query.Where("rep_id = ?", *params.RepID)
	}
	if params.StartDate != nil {
		query = query.Where("created_at >= ?", *params.StartDate)
	}
	if params.EndDate != nil {
		query = query.Where("created_at <= ?", *params.EndDate)
	}
	return query
}

func (r *salesOrderRepository) List(ctx context.Context, params *domainRepo.OrderFilterParams) ([]entity.SalesOrder, int64, error) {
	var orders []entity.SalesOrder
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.SalesOrder{}).Scopes(OrgScope(ctx))
	query = r.applyFilters(query, params)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortBy := "created_at"
	sortOrder := "DESC"
	if params.SortBy != "" {
		sortBy = params.SortBy
	}
	if params.SortOrder == "ASC" || params.SortOrder == "asc" {
		sortOrder = "ASC"
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Client").
		Preload("Items").
		Order(sortBy + " " + sortOrder).
		Find(&orders).Error

	return orders, total, err
}

// ListWithCursor returns orders using cursor-based pagination
func (r *salesOrderRepository) ListWithCursor(ctx context.Context, params *domainRepo.OrderCursorFilterParams) ([]entity.SalesOrder, error) {
	var orders []entity.SalesOrder

	params.Cursor.Validate()
	query := r.db.WithContext(ctx).Model(&entity.SalesOrder{}).Scopes(OrgScope(ctx))

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}
	if params.PaymentStatus != nil {
		query = query.Where("payment_status = ?", *params.PaymentStatus)
	}
	if params.ClientID != nil {
		query = query.Where("client_id = ?", *params.ClientID)
	}
	if params.RepID != nil {
		query = query.Where("rep_id = ?", *params.RepID)
	}
	if params.StartDate != nil {
		query = query.Where("created_at >= ?", *params.StartDate)
	}
	if params.EndDate != nil {
		query = query.Where("created_at <= ?", *params.EndDate)
	}

	cursor, err := params.Cursor.DecodeCursor()
	if err != nil {
		return nil, err
	}

	if cursor != nil {
		if params.Cursor.Direction == pagination.CursorDirectionNext {
			query = query.Where("(created_at, id) > (?, ?)", cursor.CreatedAt, cursor.ID)
		} else {
			query = query.Where("(created_at, id) < (?, ?)", cursor.CreatedAt, cursor.ID)
		}
	}

	err = query.Limit(params.Cursor.Limit + 1).
		Preload("Client").
		Order("created_at ASC, id ASC").
		Find(&orders).Error

	return orders, err
}

// ListAllForExport returns every matching order with items and client loaded,
// without pagination
func (r *salesOrderRepository) ListAllForExport(ctx context.Context, params *domainRepo.OrderFilterParams) ([]entity.SalesOrder, error) {
	var orders []entity.SalesOrder

	query := r.db.WithContext(ctx).Model(&entity.SalesOrder{}).Scopes(OrgScope(ctx))
	query = r.applyFilters(query, params)

	err := query.
		Preload("Client").
		Preload("Items.Peptide").
		Order("created_at ASC").
		Find(&orders).Error

	return orders, err
}

func (r *salesOrderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.OrderStatus) error {
	return r.db.WithContext(ctx).Model(&entity.SalesOrder{}).
		Where("id = ?", id).
		Update("status", status).Error
}

// ReplaceItems swaps the order's line items and writes the recomputed total
// in one transaction
func (r *salesOrderRepository) ReplaceItems(ctx context.Context, orderID uuid.UUID, items []entity.SalesOrderItem, totalAmount int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("sales_order_id = ?", orderID).Delete(&entity.SalesOrderItem{}).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].ID = uuid.Nil
			items[i].SalesOrderID = orderID
		}
		if len(items) > 0 {
			if err := tx.Create(&items).Error; err != nil {
				return err
			}
		}
		return tx.Model(&entity.SalesOrder{}).
			Where("id = ?", orderID).
			Update("total_amount", totalAmount).Error
	})
}

// Fulfill runs the whole fulfillment write set in one transaction.
// Bottles are allocated oldest lot first; if any peptide comes up short the
// transaction is rolled back and the short peptide IDs are reported.
func (r *salesOrderRepository) Fulfill(ctx context.Context, params *domainRepo.FulfillParams) (*domainRepo.FulfillResult, error) {
	order := params.Order
	result := &domainRepo.FulfillResult{}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cogs int64
		var allocated []entity.MovementItem

		for _, item := range order.Items {
			var bottles []entity.Bottle
			err := tx.Model(&entity.Bottle{}).
				Joins("JOIN lots ON lots.id = bottles.lot_id").
				Where("lots.peptide_id = ? AND bottles.status = ? AND bottles.org_id = ?",
					item.PeptideID, enum.BottleStatusInStock, order.OrgID).
				Order("bottles.created_at ASC, bottles.id ASC").
				Limit(item.Quantity).
				Preload("Lot").
				Find(&bottles).Error
			if err != nil {
				return err
			}

			if len(bottles) < item.Quantity {
				result.OutOfStock = append(result.OutOfStock, item.PeptideID)
				continue
			}

			ids := make([]uuid.UUID, len(bottles))
			for i, b := range bottles {
				ids[i] = b.ID
				if b.Lot != nil {
					cogs += b.Lot.CostPerUnit
				}
				allocated = append(allocated, entity.MovementItem{
					BottleID:    b.ID,
					PriceAtSale: item.UnitPrice,
				})
			}

			// guard against a concurrent allocation of the same bottles
			res := tx.Model(&entity.Bottle{}).
				Where("id IN ? AND status = ?", ids, enum.BottleStatusInStock).
				Update("status", enum.BottleStatusSold)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected != int64(len(ids)) {
				result.OutOfStock = append(result.OutOfStock, item.PeptideID)
				continue
			}

			result.BottleIDs = append(result.BottleIDs, ids...)
		}

		if len(result.OutOfStock) > 0 {
			return gorm.ErrInvalidTransaction
		}

		movement := &entity.Movement{
			OrgID:         order.OrgID,
			Type:          enum.MovementTypeSale,
			ContactID:     order.ClientID,
			SalesOrderID:  &order.ID,
			MovementDate:  params.MovementDate,
			PaymentStatus: order.PaymentStatus,
			PaymentMethod: order.PaymentMethod,
			AmountPaid:    order.AmountPaid,
			CreatedBy:     params.CreatedBy,
		}
		if err := tx.Create(movement).Error; err != nil {
			return err
		}
		for i := range allocated {
			allocated[i].MovementID = movement.ID
		}
		if len(allocated) > 0 {
			if err := tx.Create(&allocated).Error; err != nil {
				return err
			}
		}
		result.MovementID = movement.ID

		if len(params.Commissions) > 0 {
			commissions := params.Commissions
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "sale_id"}, {Name: "partner_id"}, {Name: "type"}},
				DoNothing: true,
			}).Create(&commissions).Error; err != nil {
				return err
			}
		}

		profit := order.TotalAmount - cogs - order.ShippingCost - params.CommissionAmount - params.MerchantFee
		result.COGSAmount = cogs
		result.ProfitAmount = profit

		return tx.Model(&entity.SalesOrder{}).
			Where("id = ?", order.ID).
			Updates(map[string]interface{}{
				"status":            enum.OrderStatusFulfilled,
				"cogs_amount":       cogs,
				"commission_amount": params.CommissionAmount,
				"merchant_fee":      params.MerchantFee,
				"profit_amount":     profit,
			}).Error
	})

	// rolled back for insufficient stock; report the short peptides without a transaction error
	if errors.Is(err, gorm.ErrInvalidTransaction) && len(result.OutOfStock) > 0 {
		return &domainRepo.FulfillResult{OutOfStock: result.OutOfStock}, nil
	}
	if err != nil {
		return nil, err
	}

	return result, nil
}

// CancelFulfillment unwinds a fulfilled order's write set in one transaction.
func (r *salesOrderRepository) CancelFulfillment(ctx context.Context, orderID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var movements []entity.Movement
		if err := tx.Where("sales_order_id = ? AND type = ?", orderID, enum.MovementTypeSale).
			Find(&movements).Error; err != nil {
			return err
		}

		for _, movement := range movements {
			var items []entity.MovementItem
			if err := tx.Where("movement_id = ?", movement.ID).Find(&items).Error; err != nil {
				return err
			}

			if len(items) > 0 {
				bottleIDs := make([]uuid.UUID, len(items))
				for i, item := range items {
					bottleIDs[i] = item.BottleID
				}
				if err := tx.Model(&entity.Bottle{}).
					Where("id IN ? AND status = ?", bottleIDs, enum.BottleStatusSold).
					Update("status", enum.BottleStatusInStock).Error; err != nil {
					return err
				}
				if err := tx.Where("movement_id = ?", movement.ID).
					Delete(&entity.MovementItem{}).Error; err != nil {
					return err
				}
			}

			if err := tx.Delete(&entity.Movement{}, "id = ?", movement.ID).Error; err != nil {
				return err
			}
		}

		return tx.Model(&entity.SalesOrder{}).
			Where("id = ?", orderID).
			Updates(map[string]interface{}{
				"status":            enum.OrderStatusCancelled,
				"cogs_amount":       0,
				"commission_amount": 0,
				"merchant_fee":      0,
				"profit_amount":     0,
			}).Error
	})
}

type salesOrderItemRepository struct {
	db *gorm.DB
}

// NewSalesOrderItemRepository creates a new sales order item repository
func NewSalesOrderItemRepository(db *gorm.DB) domainRepo.SalesOrderItemRepository {
	return &salesOrderItemRepository{db: db}
}

func (r *salesOrderItemRepository) CreateBatch(ctx context.Context, items []entity.SalesOrderItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&items).Error
}

func (r *salesOrderItemRepository) GetByOrderID(ctx context.Context, orderID uuid.UUID) ([]entity.SalesOrderItem, error) {
	var items []entity.SalesOrderItem
	err := r.db.WithContext(ctx).
		Where("sales_order_id = ?", orderID).
		Order("created_at ASC").
		Find(&items).Error
	return items, err
}

func (r *salesOrderItemRepository) DeleteByOrderID(ctx context.Context, orderID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("sales_order_id = ?", orderID).
		Delete(&entity.SalesOrderItem{}).Error
}
