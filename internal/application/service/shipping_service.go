package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/vialtrack/vialtrack-api/internal/application/pricing"
	"github.com/vialtrack/vialtrack-api/internal/domain/entity"
	"github.com/vialtrack/vialtrack-api/internal/domain/enum"
	"github.com/vialtrack/vialtrack-api/internal/domain/repository"
	"github.com/vialtrack/vialtrack-api/pkg/apperror"
	"github.com/vialtrack/vialtrack-api/pkg/printclient"
	"github.com/vialtrack/vialtrack-api/pkg/shipping"
)

// ShippingService drives the manual shipping sub-flow on orders: rate
// shopping, label purchase, printing and the linear status progression.
type ShippingService struct {
	orderRepo        repository.SalesOrderRepository
	contactRepo      repository.ContactRepository
	notificationRepo repository.NotificationRepository
	provider         *shipping.Client
	printer          *printclient.Client
	log              *logrus.Entry
}

// NewShippingService creates a new shipping service
func NewShippingService(
	orderRepo repository.SalesOrderRepository,
	contactRepo repository.ContactRepository,
	notificationRepo repository.NotificationRepository,
	provider *shipping.Client,
	printer *printclient.Client,
) *ShippingService {
	return &ShippingService{
		orderRepo:        orderRepo,
		contactRepo:      contactRepo,
		notificationRepo: notificationRepo,
		provider:         provider,
		printer:          printer,
		log:              logrus.WithField("component", "shipping"),
	}
}

func (s *ShippingService) shippableOrder(ctx context.Context, orderID uuid.UUID) (*entity.SalesOrder, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	if order.DeliveryMethod != enum.DeliveryMethodShip {
		return nil, apperror.NewBadRequestError("Order is a local pickup")
	}
	if order.Status == enum.OrderStatusCancelled {
		return nil, apperror.NewBadRequestError("Order is cancelled")
	}
	return order, nil
}

// GetRates fetches carrier quotes for the order's shipping address
func (s *ShippingService) GetRates(ctx context.Context, orderID uuid.UUID) (*shipping.RatesResponse, error) {
	order, err := s.shippableOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.ShippingAddress == nil || *order.ShippingAddress == "" {
		return nil, apperror.NewBadRequestError("Order has no shipping address")
	}

	rates, err := s.provider.GetRates(ctx, orderID.String(), *order.ShippingAddress)
	if err != nil {
		s.recordShippingError(ctx, order, err)
		return nil, apperror.NewAppError(502, "Rate lookup failed: "+err.Error())
	}

	// labels are idempotent at the provider; surface an existing one
	if order.LabelURL != nil {
		rates.HasExistingLabel = true
	}
	return rates, nil
}

// BuyLabel purchases a label for a quoted rate and records the tracking
// details on the order
func (s *ShippingService) BuyLabel(ctx context.Context, orderID uuid.UUID, rateID string) (*entity.SalesOrder, error) {
	order, err := s.shippableOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.ShippingStatus != enum.ShippingStatusPending && order.ShippingStatus != enum.ShippingStatusError {
		return nil, apperror.NewBadRequestError("Order already has a label")
	}

	label, err := s.provider.BuyLabel(ctx, orderID.String(), rateID)
	if err != nil {
		s.recordShippingError(ctx, order, err)
		return nil, apperror.NewAppError(502, "Label purchase failed: "+err.Error())
	}

	return s.applyLabel(ctx, order, label)
}

// QuickShip buys a label on the default carrier without rate shopping
func (s *ShippingService) QuickShip(ctx context.Context, orderID uuid.UUID) (*entity.SalesOrder, error) {
	order, err := s.shippableOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.ShippingStatus != enum.ShippingStatusPending && order.ShippingStatus != enum.ShippingStatusError {
		return nil, apperror.NewBadRequestError("Order already has a label")
	}

	label, err := s.provider.QuickShip(ctx, orderID.String())
	if err != nil {
		s.recordShippingError(ctx, order, err)
		return nil, apperror.NewAppError(502, "Label purchase failed: "+err.Error())
	}

	return s.applyLabel(ctx, order, label)
}

func (s *ShippingService) applyLabel(ctx context.Context, order *entity.SalesOrder, label *shipping.Label) (*entity.SalesOrder, error) {
	order.TrackingNumber = &label.TrackingNumber
	order.Carrier = &label.Carrier
	order.LabelURL = &label.LabelURL
	order.ShippingCost = pricing.DollarsToCents(label.ShippingCost)
	order.ShippingStatus = enum.ShippingStatusLabelCreated
	order.ShippingError = nil

	// a label bought after fulfillment changes the order's cost basis
	if order.Status == enum.OrderStatusFulfilled {
		order.ProfitAmount = order.TotalAmount - order.COGSAmount - order.ShippingCost -
			order.CommissionAmount - order.MerchantFee
	}

	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}

	s.notifyClient(ctx, order, "Label created",
		fmt.Sprintf("A shipping label was created for your order (%s %s)", label.Carrier, label.TrackingNumber))
	return order, nil
}

// PrintResult reports a print attempt plus the updated order
type PrintResult struct {
	Order *entity.SalesOrder `json:"order"`
	Print printclient.Result `json:"print"`
}

// PrintLabel sends the order's label to the local print helper and advances
// the shipping status to printed. Printing is best-effort; when no helper
// answers the caller gets the label URL to open instead.
func (s *ShippingService) PrintLabel(ctx context.Context, orderID uuid.UUID) (*PrintResult, error) {
	order, err := s.shippableOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.LabelURL == nil {
		return nil, apperror.NewBadRequestError("Order has no label")
	}

	result := s.printer.Print(ctx, *order.LabelURL)

	if order.ShippingStatus == enum.ShippingStatusLabelCreated {
		order.ShippingStatus = enum.ShippingStatusPrinted
		if err := s.orderRepo.Update(ctx, order); err != nil {
			return nil, err
		}
	}

	return &PrintResult{Order: order, Print: result}, nil
}

// AdvanceStatus moves the shipping flow one step forward. Steps cannot be
// skipped; delivery notifies the client.
func (s *ShippingService) AdvanceStatus(ctx context.Context, orderID uuid.UUID, target enum.ShippingStatus) (*entity.SalesOrder, error) {
	order, err := s.shippableOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !target.Valid() {
		return nil, apperror.NewBadRequestError("Unknown shipping status")
	}

	if target != enum.ShippingStatusError && order.ShippingStatus.Next() != target {
		return nil, apperror.NewBadRequestError(
			fmt.Sprintf("Cannot move shipping from %s to %s", order.ShippingStatus, target))
	}

	order.ShippingStatus = target
	if target == enum.ShippingStatusInTransit {
		now := time.Now()
		order.ShipDate = &now
	}

	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}

	switch target {
	case enum.ShippingStatusInTransit:
		tracking := ""
		if order.TrackingNumber != nil {
			tracking = *order.TrackingNumber
		}
		s.notifyClient(ctx, order, "Order shipped", "Your order is on its way. Tracking: "+tracking)
	case enum.ShippingStatusDelivered:
		s.notifyClient(ctx, order, "Order delivered", "Your order has been delivered.")
	}

	return order, nil
}

func (s *ShippingService) recordShippingError(ctx context.Context, order *entity.SalesOrder, cause error) {
	msg := cause.Error()
	order.ShippingStatus = enum.ShippingStatusError
	order.ShippingError = &msg
	if err := s.orderRepo.Update(ctx, order); err != nil {
		s.log.WithError(err).Error("failed to record shipping error")
	}
}

// notifyClient creates an in-app notification for the order's linked portal
// user, if there is one. Notification failures are logged, not surfaced.
func (s *ShippingService) notifyClient(ctx context.Context, order *entity.SalesOrder, title, message string) {
	if order.ClientID == nil {
		return
	}
	contact, err := s.contactRepo.GetByID(ctx, *order.ClientID)
	if err != nil || contact == nil || contact.LinkedUserID == nil {
		return
	}

	notification := &entity.Notification{
		UserID:  *contact.LinkedUserID,
		Title:   title,
		Message: message,
		Type:    "shipping",
	}
	if err := s.notificationRepo.Create(ctx, notification); err != nil {
		s.log.WithError(err).Warn("failed to create shipping notification")
	}
}
