package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/vialtrack/vialtrack-api/internal/application/pricing"
	"github.com/vialtrack/vialtrack-api/internal/domain/entity"
	"github.com/vialtrack/vialtrack-api/internal/domain/enum"
	"github.com/vialtrack/vialtrack-api/internal/domain/repository"
	infraRepo "github.com/vialtrack/vialtrack-api/internal/infrastructure/repository"
	"github.com/vialtrack/vialtrack-api/pkg/apperror"
	"github.com/vialtrack/vialtrack-api/pkg/csvutil"
	"github.com/vialtrack/vialtrack-api/pkg/pagination"
)

// OrderService handles sales order operations
type OrderService struct {
	orderRepo      repository.SalesOrderRepository
	contactRepo    repository.ContactRepository
	peptideRepo    repository.PeptideRepository
	profileRepo    repository.ProfileRepository
	commissionRepo repository.CommissionRepository
}

// NewOrderService creates a new order service
func NewOrderService(
	orderRepo repository.SalesOrderRepository,
	contactRepo repository.ContactRepository,
	peptideRepo repository.PeptideRepository,
	profileRepo repository.ProfileRepository,
	commissionRepo repository.CommissionRepository,
) *OrderService {
	return &OrderService{
		orderRepo:      orderRepo,
		contactRepo:    contactRepo,
		peptideRepo:    peptideRepo,
		profileRepo:    profileRepo,
		commissionRepo: commissionRepo,
	}
}

// OrderItemInput represents one line of an order
type OrderItemInput struct {
	PeptideID uuid.UUID
	Quantity  int
	// UnitPrice in dollars; zero means derive from the rep's pricing settings
	UnitPrice float64
}

// CreateOrderInput represents the create order input
type CreateOrderInput struct {
	ClientID        *uuid.UUID
	RepID           *uuid.UUID
	DeliveryMethod  enum.DeliveryMethod
	ShippingAddress *string
	Notes           *string
	OrderSource     enum.OrderSource
	WooOrderID      *int64
	Items           []OrderItemInput
}

// CreateOrder creates a draft order with its line items
func (s *OrderService) CreateOrder(ctx context.Context, input *CreateOrderInput) (*entity.SalesOrder, error) {
	orgID, ok := infraRepo.GetOrgID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Org context required")
	}

	if len(input.Items) == 0 {
		return nil, apperror.NewBadRequestError("Order requires at least one item")
	}

	repID := input.RepID
	if input.ClientID != nil {
		client, err := s.contactRepo.GetByID(ctx, *input.ClientID)
		if err != nil {
			return nil, err
		}
		if client == nil {
			return nil, apperror.NewNotFoundError("Client")
		}
		// orders inherit the client's assigned rep unless one was given
		if repID == nil {
			repID = client.AssignedRepID
		}
	}

	var repProfile *entity.Profile
	if repID != nil {
		var err error
		repProfile, err = s.profileRepo.GetByID(ctx, *repID)
		if err != nil {
			return nil, err
		}
	}

	items := make([]entity.SalesOrderItem, 0, len(input.Items))
	var total int64

	for _, item := range input.Items {
		if item.Quantity < 1 {
			return nil, apperror.NewBadRequestError("Item quantity must be at least 1")
		}

		unitPrice := pricing.DollarsToCents(item.UnitPrice)
		if unitPrice < 0 {
			return nil, apperror.NewBadRequestError("Item price cannot be negative")
		}
		if unitPrice == 0 {
			peptide, err := s.peptideRepo.GetByID(ctx, item.PeptideID)
			if err != nil {
				return nil, err
			}
			if peptide == nil {
				return nil, apperror.NewNotFoundError(fmt.Sprintf("Peptide %s", item.PeptideID))
			}
			unitPrice = s.derivedUnitPrice(ctx, peptide, repProfile)
		}

		items = append(items, entity.SalesOrderItem{
			PeptideID: item.PeptideID,
			Quantity:  item.Quantity,
			UnitPrice: unitPrice,
		})
		total += int64(item.Quantity) * unitPrice
	}

	source := input.OrderSource
	if source == "" {
		source = enum.OrderSourceApp
	}
	deliveryMethod := input.DeliveryMethod
	if deliveryMethod == "" {
		deliveryMethod = enum.DeliveryMethodShip
	}

	order := &entity.SalesOrder{
		OrgID:           orgID,
		ClientID:        input.ClientID,
		RepID:           repID,
		Status:          enum.OrderStatusDraft,
		PaymentStatus:   enum.PaymentStatusUnpaid,
		TotalAmount:     total,
		ShippingAddress: input.ShippingAddress,
		DeliveryMethod:  deliveryMethod,
		ShippingStatus:  enum.ShippingStatusPending,
		OrderSource:     source,
		WooOrderID:      input.WooOrderID,
		Notes:           input.Notes,
		Items:           items,
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}

	return s.orderRepo.GetWithDetails(ctx, order.ID)
}

// derivedUnitPrice computes a sale price from the rep's pricing settings,
// falling back to the peptide base price
func (s *OrderService) derivedUnitPrice(ctx context.Context, peptide *entity.Peptide, rep *entity.Profile) int64 {
	if rep == nil {
		return peptide.BasePrice
	}

	avgCost := int64(0)
	if rep.PricingMode == enum.PricingModeCostPlus {
		if cost, err := s.peptideRepo.AverageCost(ctx, peptide.ID); err == nil {
			avgCost = cost
		}
	}
	return pricing.UnitPrice(rep.PricingMode, peptide.BasePrice, rep.PriceMult, avgCost, rep.CostPlusMarkup)
}

// GetOrder retrieves an order by ID
func (s *OrderService) GetOrder(ctx context.Context, id uuid.UUID) (*entity.SalesOrder, error) {
	order, err := s.orderRepo.GetWithDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	return order, nil
}

// ListOrders lists orders with filtering
func (s *OrderService) ListOrders(ctx context.Context, params *repository.OrderFilterParams) (*pagination.PaginatedResult[entity.SalesOrder], error) {
	orders, total, err := s.orderRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(orders, pag), nil
}

// ListOrdersWithCursor lists orders with cursor-based pagination
func (s *OrderService) ListOrdersWithCursor(ctx context.Context, params *repository.OrderCursorFilterParams) (*pagination.CursorPaginatedResult[entity.SalesOrder], error) {
	orders, err := s.orderRepo.ListWithCursor(ctx, params)
	if err != nil {
		return nil, err
	}

	hasPrev := params.Cursor.Cursor != ""

	cursorPag, items := pagination.NewCursorPagination(orders, params.Cursor.Limit,
		func(o entity.SalesOrder) string { return o.ID.String() },
		func(o entity.SalesOrder) time.Time { return o.CreatedAt },
	)
	cursorPag.HasPrev = hasPrev

	return pagination.NewCursorPaginatedResult(items, cursorPag), nil
}

// EditItems replaces an order's line items and recomputes its total.
// Fulfilled and cancelled orders are immutable.
func (s *OrderService) EditItems(ctx context.Context, orderID uuid.UUID, inputs []OrderItemInput) (*entity.SalesOrder, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}

	if order.Status == enum.OrderStatusFulfilled || order.Status == enum.OrderStatusCancelled {
		return nil, apperror.NewBadRequestError("Cannot edit items on a " + string(order.Status) + " order")
	}
	if len(inputs) == 0 {
		return nil, apperror.NewBadRequestError("Order requires at least one item")
	}

	items := make([]entity.SalesOrderItem, 0, len(inputs))
	var total int64
	for _, input := range inputs {
		if input.Quantity < 1 {
			return nil, apperror.NewBadRequestError("Item quantity must be at least 1")
		}
		unitPrice := pricing.DollarsToCents(input.UnitPrice)
		if unitPrice < 0 {
			return nil, apperror.NewBadRequestError("Item price cannot be negative")
		}
		items = append(items, entity.SalesOrderItem{
			PeptideID: input.PeptideID,
			Quantity:  input.Quantity,
			UnitPrice: unitPrice,
		})
		total += int64(input.Quantity) * unitPrice
	}

	if err := s.orderRepo.ReplaceItems(ctx, orderID, items, total); err != nil {
		return nil, err
	}

	return s.orderRepo.GetWithDetails(ctx, orderID)
}

// UpdateStatus moves an order through its lifecycle. Fulfillment goes
// through FulfillOrder, not here.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID uuid.UUID, target enum.OrderStatus) error {
	if !target.Valid() {
		return apperror.NewBadRequestError("Unknown order status")
	}
	if target == enum.OrderStatusFulfilled {
		return apperror.NewBadRequestError("Use the fulfill operation to fulfill an order")
	}

	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	if order == nil {
		return apperror.NewNotFoundError("Order")
	}

	if !order.Status.CanTransitionTo(target) {
		return apperror.NewBadRequestError(fmt.Sprintf("Cannot move order from %s to %s", order.Status, target))
	}

	// cancelling a fulfilled order voids its unpaid commissions and
	// unwinds the fulfillment: bottles restock, the sale movement is
	// removed and the financials are cleared
	if target == enum.OrderStatusCancelled && order.Status == enum.OrderStatusFulfilled {
		if err := s.commissionRepo.VoidBySale(ctx, orderID); err != nil {
			return err
		}
		return s.orderRepo.CancelFulfillment(ctx, orderID)
	}

	return s.orderRepo.UpdateStatus(ctx, orderID, target)
}

// MarkPaid records full settlement of an order. A manually entered partial
// amount is preserved; amount_paid is only filled in when nothing has been
// recorded yet.
func (s *OrderService) MarkPaid(ctx context.Context, orderID uuid.UUID, method string) (*entity.SalesOrder, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	if order.PaymentStatus.Settled() {
		return nil, apperror.NewBadRequestError("Order is already settled")
	}

	now := time.Now()
	if order.AmountPaid == 0 {
		order.AmountPaid = order.TotalAmount
	}
	order.PaymentStatus = enum.PaymentStatusPaid
	if method == "commission_offset" {
		order.PaymentStatus = enum.PaymentStatusCommissionOffset
	}
	order.PaymentMethod = &method
	order.PaymentDate = &now

	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// PayWithCredit settles an order from the client's store-credit balance.
// The debit is conditional on sufficient balance, so two concurrent attempts
// cannot overdraw.
func (s *OrderService) PayWithCredit(ctx context.Context, orderID, userID uuid.UUID) (*entity.SalesOrder, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	if order.PaymentStatus.Settled() {
		return nil, apperror.NewBadRequestError("Order is already settled")
	}

	due := order.TotalAmount - order.AmountPaid
	if due <= 0 {
		return nil, apperror.NewBadRequestError("Order has no outstanding balance")
	}

	ok, err := s.profileRepo.DebitCredit(ctx, userID, due)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperror.NewBadRequestError("Insufficient store credit")
	}

	now := time.Now()
	method := "store_credit"
	order.AmountPaid = order.TotalAmount
	order.PaymentStatus = enum.PaymentStatusPaid
	order.PaymentMethod = &method
	order.PaymentDate = &now

	if err := s.orderRepo.Update(ctx, order); err != nil {
		// restore the debited credit
		_ = s.profileRepo.CreditBalance(ctx, userID, due)
		return nil, err
	}
	return order, nil
}

// FulfillOrder allocates inventory and completes the order. The payment
// gate requires the order to be settled; force overrides the gate after the
// caller has acknowledged the warning.
func (s *OrderService) FulfillOrder(ctx context.Context, orderID, actorUserID uuid.UUID, force bool) (*entity.SalesOrder, error) {
	order, err := s.orderRepo.GetWithDetails(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}

	if !order.Status.CanTransitionTo(enum.OrderStatusFulfilled) {
		return nil, apperror.NewBadRequestError(fmt.Sprintf("Cannot fulfill a %s order", order.Status))
	}
	if len(order.Items) == 0 {
		return nil, apperror.NewBadRequestError("Order has no items to fulfill")
	}
	if !order.PaymentStatus.Settled() && !force {
		return nil, apperror.NewBadRequestError("Order is not settled; pass force to fulfill anyway")
	}

	method := ""
	if order.PaymentMethod != nil {
		method = *order.PaymentMethod
	}
	fee := pricing.MerchantFee(order.TotalAmount, method)

	commissionTotal, commissions, err := s.buildCommissions(ctx, order)
	if err != nil {
		return nil, err
	}

	result, err := s.orderRepo.Fulfill(ctx, &repository.FulfillParams{
		Order:            order,
		MovementDate:     time.Now(),
		CreatedBy:        actorUserID,
		CommissionAmount: commissionTotal,
		MerchantFee:      fee,
		Commissions:      commissions,
	})
	if err != nil {
		return nil, err
	}

	if len(result.OutOfStock) > 0 {
		names := make([]string, 0, len(result.OutOfStock))
		for _, id := range result.OutOfStock {
			name := id.String()
			if peptide, err := s.peptideRepo.GetByID(ctx, id); err == nil && peptide != nil {
				name = peptide.Name
			}
			names = append(names, name)
		}
		return nil, apperror.NewAppError(400, fmt.Sprintf("Insufficient stock for: %v", names))
	}

	return s.orderRepo.GetWithDetails(ctx, orderID)
}

// buildCommissions computes the commission chain for a sale: the selling
// rep's direct cut plus flat overrides for up to two upline levels
func (s *OrderService) buildCommissions(ctx context.Context, order *entity.SalesOrder) (int64, []entity.Commission, error) {
	if order.RepID == nil {
		return 0, nil, nil
	}

	rep, err := s.profileRepo.GetByID(ctx, *order.RepID)
	if err != nil {
		return 0, nil, err
	}
	if rep == nil {
		return 0, nil, nil
	}

	var commissions []entity.Commission
	var total int64

	direct := pricing.Commission(order.TotalAmount, rep.CommissionRate)
	if direct > 0 {
		commissions = append(commissions, entity.Commission{
			OrgID:          order.OrgID,
			SaleID:         order.ID,
			PartnerID:      rep.ID,
			Type:           enum.CommissionTypeDirect,
			Amount:         direct,
			CommissionRate: rep.CommissionRate,
			Status:         enum.CommissionStatusPending,
		})
		total += direct
	}

	overrides := []struct {
		rate float64
		typ  enum.CommissionType
	}{
		{pricing.SecondTierOverrideRate, enum.CommissionTypeSecondTierOverride},
		{pricing.ThirdTierOverrideRate, enum.CommissionTypeThirdTierOverride},
	}

	parentID := rep.ParentRepID
	for _, override := range overrides {
		if parentID == nil {
			break
		}
		parent, err := s.profileRepo.GetByID(ctx, *parentID)
		if err != nil {
			return 0, nil, err
		}
		if parent == nil {
			break
		}

		amount := pricing.Commission(order.TotalAmount, override.rate)
		if amount > 0 {
			commissions = append(commissions, entity.Commission{
				OrgID:          order.OrgID,
				SaleID:         order.ID,
				PartnerID:      parent.ID,
				Type:           override.typ,
				Amount:         amount,
				CommissionRate: override.rate,
				Status:         enum.CommissionStatusPending,
			})
			total += amount
		}
		parentID = parent.ParentRepID
	}

	return total, commissions, nil
}

// DeleteOrder soft-deletes a draft or cancelled order
func (s *OrderService) DeleteOrder(ctx context.Context, orderID uuid.UUID) error {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	if order == nil {
		return apperror.NewNotFoundError("Order")
	}
	if order.Status != enum.OrderStatusDraft && order.Status != enum.OrderStatusCancelled {
		return apperror.NewBadRequestError("Only draft or cancelled orders can be deleted")
	}
	return s.orderRepo.Delete(ctx, orderID)
}

var exportHeader = []string{
	"Order ID", "Date", "Client", "Status", "Payment Status", "Payment Method",
	"Total", "Amount Paid", "COGS", "Shipping", "Commission", "Merchant Fee",
	"Profit", "Tracking Number", "Notes",
}

// ExportCSV renders the matching orders as a CSV document
func (s *OrderService) ExportCSV(ctx context.Context, params *repository.OrderFilterParams) (string, error) {
	orders, err := s.orderRepo.ListAllForExport(ctx, params)
	if err != nil {
		return "", err
	}

	rows := make([][]string, 0, len(orders))
	for _, order := range orders {
		clientName := ""
		if order.Client != nil {
			clientName = order.Client.Name
		}
		method := ""
		if order.PaymentMethod != nil {
			method = *order.PaymentMethod
		}
		tracking := ""
		if order.TrackingNumber != nil {
			tracking = *order.TrackingNumber
		}
		notes := ""
		if order.Notes != nil {
			notes = *order.Notes
		}

		rows = append(rows, []string{
			order.ID.String(),
			order.CreatedAt.Format("2006-01-02"),
			clientName,
			string(order.Status),
			string(order.PaymentStatus),
			method,
			centsToDecimal(order.TotalAmount),
			centsToDecimal(order.AmountPaid),
			centsToDecimal(order.COGSAmount),
			centsToDecimal(order.ShippingCost),
			centsToDecimal(order.CommissionAmount),
			centsToDecimal(order.MerchantFee),
			centsToDecimal(order.ProfitAmount),
			tracking,
			notes,
		})
	}

	return csvutil.Document(exportHeader, rows), nil
}

func centsToDecimal(cents int64) string {
	return strconv.FormatFloat(float64(cents)/100, 'f', 2, 64)
}
