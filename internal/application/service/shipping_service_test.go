package service_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vialtrack/vialtrack-api/internal/application/service"
	"github.com/vialtrack/vialtrack-api/internal/domain/entity"
	"github.com/vialtrack/vialtrack-api/internal/domain/enum"
	infraRepo "github.com/vialtrack/vialtrack-api/internal/infrastructure/repository"
	"github.com/vialtrack/vialtrack-api/pkg/printclient"
	"github.com/vialtrack/vialtrack-api/pkg/shipping"
)

func newShippingEnv(t *testing.T, provider http.HandlerFunc) (*testEnv, *service.ShippingService) {
	t.Helper()
	env := newTestEnv(t)

	server := httptest.NewServer(provider)
	t.Cleanup(server.Close)

	svc := service.NewShippingService(
		infraRepo.NewSalesOrderRepository(env.db),
		infraRepo.NewContactRepository(env.db),
		infraRepo.NewNotificationRepository(env.db),
		shipping.NewClient(server.URL, "test-key"),
		printclient.NewClientWithEndpoints(), // no print helper reachable
	)
	return env, svc
}

func createShippableOrder(t *testing.T, env *testEnv, client *entity.Contact) *entity.SalesOrder {
	t.Helper()
	peptide := env.createStock(t, "BPC-157", 5, 4.00)
	address := "123 Main St, Springfield"

	input := &service.CreateOrderInput{
		DeliveryMethod:  enum.DeliveryMethodShip,
		ShippingAddress: &address,
		Items: []service.OrderItemInput{
			{PeptideID: peptide.ID, Quantity: 1, UnitPrice: 50.00},
		},
	}
	if client != nil {
		input.ClientID = &client.ID
	}
	order, err := env.orders.CreateOrder(env.ctx, input)
	require.NoError(t, err)
	return order
}

func labelProvider(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/labels":
			json.NewEncoder(w).Encode(shipping.Label{
				TrackingNumber: "1Z999AA10123456784",
				Carrier:        "UPS",
				LabelURL:       "https://labels.test/label.pdf",
				ShippingCost:   8.45,
			})
		case "/rates":
			json.NewEncoder(w).Encode(shipping.RatesResponse{
				ShipmentID: "ship_123",
				Rates: []shipping.Rate{
					{ObjectID: "rate_1", Provider: "USPS", Amount: "7.20"},
					{ObjectID: "rate_2", Provider: "UPS", Amount: "8.45"},
				},
			})
		default:
			t.Errorf("unexpected provider path %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}
}

func TestQuickShipRecordsLabel(t *testing.T) {
	env, svc := newShippingEnv(t, labelProvider(t))
	order := createShippableOrder(t, env, nil)

	updated, err := svc.QuickShip(env.ctx, order.ID)
	require.NoError(t, err)

	assert.Equal(t, enum.ShippingStatusLabelCreated, updated.ShippingStatus)
	require.NotNil(t, updated.TrackingNumber)
	assert.Equal(t, "1Z999AA10123456784", *updated.TrackingNumber)
	require.NotNil(t, updated.Carrier)
	assert.Equal(t, "UPS", *updated.Carrier)
	require.NotNil(t, updated.LabelURL)
	assert.Equal(t, int64(845), updated.ShippingCost)
	assert.Nil(t, updated.ShippingError)
}

func TestQuickShipAfterFulfillmentRecomputesProfit(t *testing.T) {
	env, svc := newShippingEnv(t, labelProvider(t))
	order := createShippableOrder(t, env, nil)

	require.NoError(t, env.orders.UpdateStatus(env.ctx, order.ID, enum.OrderStatusSubmitted))
	_, err := env.orders.MarkPaid(env.ctx, order.ID, "cash")
	require.NoError(t, err)
	fulfilled, err := env.orders.FulfillOrder(env.ctx, order.ID, uuid.New(), false)
	require.NoError(t, err)
	profitBefore := fulfilled.ProfitAmount
	require.NotZero(t, profitBefore)

	updated, err := svc.QuickShip(env.ctx, order.ID)
	require.NoError(t, err)

	assert.Equal(t, int64(845), updated.ShippingCost)
	assert.Equal(t, profitBefore-845, updated.ProfitAmount)
	assert.Equal(t, updated.TotalAmount-updated.COGSAmount-updated.ShippingCost-
		updated.CommissionAmount-updated.MerchantFee, updated.ProfitAmount)
}

func TestBuyLabelRejectedWhenLabelExists(t *testing.T) {
	env, svc := newShippingEnv(t, labelProvider(t))
	order := createShippableOrder(t, env, nil)

	_, err := svc.QuickShip(env.ctx, order.ID)
	require.NoError(t, err)

	_, err = svc.BuyLabel(env.ctx, order.ID, "rate_1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already has a label")
}

func TestGetRatesReportsExistingLabel(t *testing.T) {
	env, svc := newShippingEnv(t, labelProvider(t))
	order := createShippableOrder(t, env, nil)

	rates, err := svc.GetRates(env.ctx, order.ID)
	require.NoError(t, err)
	assert.Len(t, rates.Rates, 2)
	assert.False(t, rates.HasExistingLabel)

	_, err = svc.QuickShip(env.ctx, order.ID)
	require.NoError(t, err)

	rates, err = svc.GetRates(env.ctx, order.ID)
	require.NoError(t, err)
	assert.True(t, rates.HasExistingLabel)
}

func TestShippingRejectsLocalPickup(t *testing.T) {
	env, svc := newShippingEnv(t, labelProvider(t))
	peptide := env.createStock(t, "BPC-157", 5, 4.00)

	order, err := env.orders.CreateOrder(env.ctx, &service.CreateOrderInput{
		DeliveryMethod: enum.DeliveryMethodLocalPickup,
		Items: []service.OrderItemInput{
			{PeptideID: peptide.ID, Quantity: 1, UnitPrice: 50.00},
		},
	})
	require.NoError(t, err)

	_, err = svc.QuickShip(env.ctx, order.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "local pickup")
}

func TestProviderFailureRecordsShippingError(t *testing.T) {
	env, svc := newShippingEnv(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"error": "address not serviceable"}`))
	})
	order := createShippableOrder(t, env, nil)

	_, err := svc.QuickShip(env.ctx, order.ID)
	require.Error(t, err)

	fresh, err := env.orders.GetOrder(env.ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.ShippingStatusError, fresh.ShippingStatus)
	require.NotNil(t, fresh.ShippingError)
}

func TestBuyLabelAllowedAfterError(t *testing.T) {
	failing := true
	env, svc := newShippingEnv(t, func(w http.ResponseWriter, r *http.Request) {
		if failing {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		labelProvider(t)(w, r)
	})
	order := createShippableOrder(t, env, nil)

	_, err := svc.QuickShip(env.ctx, order.ID)
	require.Error(t, err)

	failing = false
	updated, err := svc.QuickShip(env.ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.ShippingStatusLabelCreated, updated.ShippingStatus)
	assert.Nil(t, updated.ShippingError)
}

func TestPrintLabelFallsBackToURL(t *testing.T) {
	env, svc := newShippingEnv(t, labelProvider(t))
	order := createShippableOrder(t, env, nil)

	_, err := svc.QuickShip(env.ctx, order.ID)
	require.NoError(t, err)

	result, err := svc.PrintLabel(env.ctx, order.ID)
	require.NoError(t, err)

	// no print helper is running, so the caller gets the label URL instead
	assert.False(t, result.Print.Printed)
	assert.Equal(t, "https://labels.test/label.pdf", result.Print.FallbackURL)
	assert.Equal(t, enum.ShippingStatusPrinted, result.Order.ShippingStatus)
}

func TestAdvanceStatusEnforcesProgression(t *testing.T) {
	env, svc := newShippingEnv(t, labelProvider(t))
	order := createShippableOrder(t, env, nil)

	_, err := svc.QuickShip(env.ctx, order.ID)
	require.NoError(t, err)

	// skipping printed is not allowed
	_, err = svc.AdvanceStatus(env.ctx, order.ID, enum.ShippingStatusDelivered)
	require.Error(t, err)

	_, err = svc.AdvanceStatus(env.ctx, order.ID, enum.ShippingStatusPrinted)
	require.NoError(t, err)

	inTransit, err := svc.AdvanceStatus(env.ctx, order.ID, enum.ShippingStatusInTransit)
	require.NoError(t, err)
	require.NotNil(t, inTransit.ShipDate)

	delivered, err := svc.AdvanceStatus(env.ctx, order.ID, enum.ShippingStatusDelivered)
	require.NoError(t, err)
	assert.Equal(t, enum.ShippingStatusDelivered, delivered.ShippingStatus)
}

func TestShippingMilestonesNotifyLinkedClient(t *testing.T) {
	env, svc := newShippingEnv(t, labelProvider(t))

	portalUser := uuid.New()
	client := env.createContact(t, "Alice", nil)
	require.NoError(t, env.db.Model(&entity.Contact{}).
		Where("id = ?", client.ID).
		Update("linked_user_id", portalUser).Error)

	order := createShippableOrder(t, env, client)

	_, err := svc.QuickShip(env.ctx, order.ID)
	require.NoError(t, err)
	_, err = svc.AdvanceStatus(env.ctx, order.ID, enum.ShippingStatusPrinted)
	require.NoError(t, err)
	_, err = svc.AdvanceStatus(env.ctx, order.ID, enum.ShippingStatusInTransit)
	require.NoError(t, err)
	_, err = svc.AdvanceStatus(env.ctx, order.ID, enum.ShippingStatusDelivered)
	require.NoError(t, err)

	var notifications []entity.Notification
	require.NoError(t, env.db.Where("user_id = ?", portalUser).Order("created_at ASC").Find(&notifications).Error)
	require.Len(t, notifications, 3)

	titles := make([]string, len(notifications))
	for i, n := range notifications {
		titles[i] = n.Title
	}
	assert.Contains(t, titles, "Label created")
	assert.Contains(t, titles, "Order shipped")
	assert.Contains(t, titles, "Order delivered")
}
