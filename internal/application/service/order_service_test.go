package service_test

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vialtrack/vialtrack-api/internal/application/service"
	"github.com/vialtrack/vialtrack-api/internal/domain/entity"
	"github.com/vialtrack/vialtrack-api/internal/domain/enum"
	"github.com/vialtrack/vialtrack-api/internal/domain/repository"
	"github.com/vialtrack/vialtrack-api/pkg/apperror"
	"github.com/vialtrack/vialtrack-api/pkg/pagination"
)

func TestCreateOrderComputesTotal(t *testing.T) {
	env := newTestEnv(t)
	peptideA := env.createStock(t, "BPC-157", 10, 4.00)
	peptideB := env.createStock(t, "TB-500", 10, 6.00)

	order, err := env.orders.CreateOrder(env.ctx, &service.CreateOrderInput{
		Items: []service.OrderItemInput{
			{PeptideID: peptideA.ID, Quantity: 2, UnitPrice: 10.00},
			{PeptideID: peptideB.ID, Quantity: 1, UnitPrice: 5.00},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, enum.OrderStatusDraft, order.Status)
	assert.Equal(t, enum.PaymentStatusUnpaid, order.PaymentStatus)
	assert.Equal(t, int64(2500), order.TotalAmount)
	assert.Len(t, order.Items, 2)
}

func TestCreateOrderRejectsZeroQuantity(t *testing.T) {
	env := newTestEnv(t)
	peptide := env.createStock(t, "BPC-157", 5, 4.00)

	_, err := env.orders.CreateOrder(env.ctx, &service.CreateOrderInput{
		Items: []service.OrderItemInput{
			{PeptideID: peptide.ID, Quantity: 0, UnitPrice: 10.00},
		},
	})
	require.Error(t, err)

	appErr, ok := err.(*apperror.AppError)
	require.True(t, ok)
	assert.Equal(t, 400, appErr.Code)
}

func TestCreateOrderInheritsClientRep(t *testing.T) {
	env := newTestEnv(t)
	rep := env.createProfile(t, enum.AppRoleSalesRep, 0.10, nil)
	client := env.createContact(t, "Alice", rep)
	peptide := env.createStock(t, "BPC-157", 5, 4.00)

	order, err := env.orders.CreateOrder(env.ctx, &service.CreateOrderInput{
		ClientID: &client.ID,
		Items: []service.OrderItemInput{
			{PeptideID: peptide.ID, Quantity: 1, UnitPrice: 10.00},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, order.RepID)
	assert.Equal(t, rep.ID, *order.RepID)
}

func TestEditItemsRecomputesTotal(t *testing.T) {
	env := newTestEnv(t)
	peptideA := env.createStock(t, "BPC-157", 10, 4.00)
	peptideB := env.createStock(t, "TB-500", 10, 6.00)

	order, err := env.orders.CreateOrder(env.ctx, &service.CreateOrderInput{
		Items: []service.OrderItemInput{
			{PeptideID: peptideA.ID, Quantity: 2, UnitPrice: 10.00},
			{PeptideID: peptideB.ID, Quantity: 1, UnitPrice: 5.00},
		},
	})
	require.NoError(t, err)
	require.Equal(t, int64(2500), order.TotalAmount)

	// drop the second line and bump the first to three units
	updated, err := env.orders.EditItems(env.ctx, order.ID, []service.OrderItemInput{
		{PeptideID: peptideA.ID, Quantity: 3, UnitPrice: 10.00},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(3000), updated.TotalAmount)
	assert.Len(t, updated.Items, 1)
	assert.Equal(t, 3, updated.Items[0].Quantity)
}

func TestEditItemsBlockedOnCancelledOrder(t *testing.T) {
	env := newTestEnv(t)
	peptide := env.createStock(t, "BPC-157", 5, 4.00)

	order, err := env.orders.CreateOrder(env.ctx, &service.CreateOrderInput{
		Items: []service.OrderItemInput{
			{PeptideID: peptide.ID, Quantity: 1, UnitPrice: 10.00},
		},
	})
	require.NoError(t, err)
	require.NoError(t, env.orders.UpdateStatus(env.ctx, order.ID, enum.OrderStatusCancelled))

	_, err = env.orders.EditItems(env.ctx, order.ID, []service.OrderItemInput{
		{PeptideID: peptide.ID, Quantity: 2, UnitPrice: 10.00},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cancelled")
}

func TestUpdateStatusRejectsFulfilledTarget(t *testing.T) {
	env := newTestEnv(t)
	peptide := env.createStock(t, "BPC-157", 5, 4.00)

	order, err := env.orders.CreateOrder(env.ctx, &service.CreateOrderInput{
		Items: []service.OrderItemInput{
			{PeptideID: peptide.ID, Quantity: 1, UnitPrice: 10.00},
		},
	})
	require.NoError(t, err)

	err = env.orders.UpdateStatus(env.ctx, order.ID, enum.OrderStatusFulfilled)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fulfill operation")
}

func TestMarkPaidFillsAmountOnlyWhenZero(t *testing.T) {
	env := newTestEnv(t)
	peptide := env.createStock(t, "BPC-157", 5, 4.00)

	order, err := env.orders.CreateOrder(env.ctx, &service.CreateOrderInput{
		Items: []service.OrderItemInput{
			{PeptideID: peptide.ID, Quantity: 2, UnitPrice: 10.00},
		},
	})
	require.NoError(t, err)

	paid, err := env.orders.MarkPaid(env.ctx, order.ID, "zelle")
	require.NoError(t, err)
	assert.Equal(t, enum.PaymentStatusPaid, paid.PaymentStatus)
	assert.Equal(t, int64(2000), paid.AmountPaid)
	require.NotNil(t, paid.PaymentDate)
}

func TestMarkPaidPreservesManualPartialAmount(t *testing.T) {
	env := newTestEnv(t)
	peptide := env.createStock(t, "BPC-157", 5, 4.00)

	order, err := env.orders.CreateOrder(env.ctx, &service.CreateOrderInput{
		Items: []service.OrderItemInput{
			{PeptideID: peptide.ID, Quantity: 2, UnitPrice: 10.00},
		},
	})
	require.NoError(t, err)

	// a manually recorded partial payment stays as entered
	require.NoError(t, env.db.Model(&entity.SalesOrder{}).
		Where("id = ?", order.ID).
		Update("amount_paid", 1500).Error)

	paid, err := env.orders.MarkPaid(env.ctx, order.ID, "zelle")
	require.NoError(t, err)
	assert.Equal(t, int64(1500), paid.AmountPaid)
	assert.Equal(t, enum.PaymentStatusPaid, paid.PaymentStatus)
}

func TestMarkPaidRejectsSettledOrder(t *testing.T) {
	env := newTestEnv(t)
	peptide := env.createStock(t, "BPC-157", 5, 4.00)

	order, err := env.orders.CreateOrder(env.ctx, &service.CreateOrderInput{
		Items: []service.OrderItemInput{
			{PeptideID: peptide.ID, Quantity: 1, UnitPrice: 10.00},
		},
	})
	require.NoError(t, err)

	_, err = env.orders.MarkPaid(env.ctx, order.ID, "commission_offset")
	require.NoError(t, err)

	_, err = env.orders.MarkPaid(env.ctx, order.ID, "zelle")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already settled")
}

func TestMarkPaidCommissionOffsetStatus(t *testing.T) {
	env := newTestEnv(t)
	peptide := env.createStock(t, "BPC-157", 5, 4.00)

	order, err := env.orders.CreateOrder(env.ctx, &service.CreateOrderInput{
		Items: []service.OrderItemInput{
			{PeptideID: peptide.ID, Quantity: 1, UnitPrice: 10.00},
		},
	})
	require.NoError(t, err)

	paid, err := env.orders.MarkPaid(env.ctx, order.ID, "commission_offset")
	require.NoError(t, err)
	assert.Equal(t, enum.PaymentStatusCommissionOffset, paid.PaymentStatus)
}

func TestPayWithCreditDebitsBalance(t *testing.T) {
	env := newTestEnv(t)
	profile := env.createProfile(t, enum.AppRoleClient, 0, nil)
	require.NoError(t, env.db.Model(&entity.Profile{}).
		Where("id = ?", profile.ID).
		Update("credit_balance", 5000).Error)

	peptide := env.createStock(t, "BPC-157", 5, 4.00)
	order, err := env.orders.CreateOrder(env.ctx, &service.CreateOrderInput{
		Items: []service.OrderItemInput{
			{PeptideID: peptide.ID, Quantity: 2, UnitPrice: 10.00},
		},
	})
	require.NoError(t, err)

	paid, err := env.orders.PayWithCredit(env.ctx, order.ID, profile.UserID)
	require.NoError(t, err)
	assert.Equal(t, enum.PaymentStatusPaid, paid.PaymentStatus)
	assert.Equal(t, int64(2000), paid.AmountPaid)

	var fresh entity.Profile
	require.NoError(t, env.db.First(&fresh, "id = ?", profile.ID).Error)
	assert.Equal(t, int64(3000), fresh.CreditBalance)
}

func TestPayWithCreditInsufficientBalance(t *testing.T) {
	env := newTestEnv(t)
	profile := env.createProfile(t, enum.AppRoleClient, 0, nil)
	require.NoError(t, env.db.Model(&entity.Profile{}).
		Where("id = ?", profile.ID).
		Update("credit_balance", 500).Error)

	peptide := env.createStock(t, "BPC-157", 5, 4.00)
	order, err := env.orders.CreateOrder(env.ctx, &service.CreateOrderInput{
		Items: []service.OrderItemInput{
			{PeptideID: peptide.ID, Quantity: 2, UnitPrice: 10.00},
		},
	})
	require.NoError(t, err)

	_, err = env.orders.PayWithCredit(env.ctx, order.ID, profile.UserID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Insufficient store credit")

	// the balance is untouched
	var fresh entity.Profile
	require.NoError(t, env.db.First(&fresh, "id = ?", profile.ID).Error)
	assert.Equal(t, int64(500), fresh.CreditBalance)
}

func TestFulfillRequiresSettlementUnlessForced(t *testing.T) {
	env := newTestEnv(t)
	peptide := env.createStock(t, "BPC-157", 5, 4.00)

	order, err := env.orders.CreateOrder(env.ctx, &service.CreateOrderInput{
		Items: []service.OrderItemInput{
			{PeptideID: peptide.ID, Quantity: 1, UnitPrice: 10.00},
		},
	})
	require.NoError(t, err)

	require.NoError(t, env.orders.UpdateStatus(env.ctx, order.ID, enum.OrderStatusSubmitted))

	actor := uuid.New()
	_, err = env.orders.FulfillOrder(env.ctx, order.ID, actor, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not settled")

	fulfilled, err := env.orders.FulfillOrder(env.ctx, order.ID, actor, true)
	require.NoError(t, err)
	assert.Equal(t, enum.OrderStatusFulfilled, fulfilled.Status)
}

func TestFulfillAllocatesOldestBottlesFirst(t *testing.T) {
	env := newTestEnv(t)
	peptide := env.createStock(t, "BPC-157", 3, 4.00)

	var oldLot entity.Lot
	require.NoError(t, env.db.First(&oldLot, "peptide_id = ?", peptide.ID).Error)
	env.backdateBottles(t, oldLot.ID, 48*time.Hour)

	// a newer, more expensive lot that should not be touched
	_, err := env.inventory.CreateLot(env.ctx, &service.CreateLotInput{
		PeptideID:        peptide.ID,
		LotNumber:        "LOT-NEW",
		QuantityReceived: 3,
		CostPerUnit:      9.00,
	})
	require.NoError(t, err)

	order, err := env.orders.CreateOrder(env.ctx, &service.CreateOrderInput{
		Items: []service.OrderItemInput{
			{PeptideID: peptide.ID, Quantity: 2, UnitPrice: 20.00},
		},
	})
	require.NoError(t, err)
	require.NoError(t, env.orders.UpdateStatus(env.ctx, order.ID, enum.OrderStatusSubmitted))
	_, err = env.orders.MarkPaid(env.ctx, order.ID, "zelle")
	require.NoError(t, err)

	fulfilled, err := env.orders.FulfillOrder(env.ctx, order.ID, uuid.New(), false)
	require.NoError(t, err)

	// COGS comes from the old lot at $4.00 per bottle
	assert.Equal(t, int64(800), fulfilled.COGSAmount)

	var soldFromOld, soldFromNew int64
	env.db.Model(&entity.Bottle{}).
		Where("lot_id = ? AND status = ?", oldLot.ID, enum.BottleStatusSold).
		Count(&soldFromOld)
	env.db.Model(&entity.Bottle{}).
		Where("lot_id <> ? AND status = ?", oldLot.ID, enum.BottleStatusSold).
		Count(&soldFromNew)
	assert.Equal(t, int64(2), soldFromOld)
	assert.Equal(t, int64(0), soldFromNew)

	// a sale movement with one item per bottle was recorded
	var movement entity.Movement
	require.NoError(t, env.db.First(&movement, "sales_order_id = ?", order.ID).Error)
	assert.Equal(t, enum.MovementTypeSale, movement.Type)
	var itemCount int64
	env.db.Model(&entity.MovementItem{}).Where("movement_id = ?", movement.ID).Count(&itemCount)
	assert.Equal(t, int64(2), itemCount)
}

func TestFulfillComputesProfitAndFee(t *testing.T) {
	env := newTestEnv(t)
	rep := env.createProfile(t, enum.AppRoleSalesRep, 0.10, nil)
	client := env.createContact(t, "Alice", rep)
	peptide := env.createStock(t, "BPC-157", 5, 4.00)

	order, err := env.orders.CreateOrder(env.ctx, &service.CreateOrderInput{
		ClientID: &client.ID,
		Items: []service.OrderItemInput{
			{PeptideID: peptide.ID, Quantity: 2, UnitPrice: 50.00},
		},
	})
	require.NoError(t, err)
	require.NoError(t, env.orders.UpdateStatus(env.ctx, order.ID, enum.OrderStatusSubmitted))

	// card payment, so the merchant fee applies
	_, err = env.orders.MarkPaid(env.ctx, order.ID, "card")
	require.NoError(t, err)

	fulfilled, err := env.orders.FulfillOrder(env.ctx, order.ID, uuid.New(), false)
	require.NoError(t, err)

	// total 10000, cogs 800, commission 10% = 1000, fee 5% = 500
	assert.Equal(t, int64(800), fulfilled.COGSAmount)
	assert.Equal(t, int64(1000), fulfilled.CommissionAmount)
	assert.Equal(t, int64(500), fulfilled.MerchantFee)
	assert.Equal(t, int64(10000-800-1000-500), fulfilled.ProfitAmount)
}

func TestFulfillSkipsFeeForExemptMethods(t *testing.T) {
	env := newTestEnv(t)
	peptide := env.createStock(t, "BPC-157", 5, 4.00)

	order, err := env.orders.CreateOrder(env.ctx, &service.CreateOrderInput{
		Items: []service.OrderItemInput{
			{PeptideID: peptide.ID, Quantity: 1, UnitPrice: 100.00},
		},
	})
	require.NoError(t, err)
	require.NoError(t, env.orders.UpdateStatus(env.ctx, order.ID, enum.OrderStatusSubmitted))
	_, err = env.orders.MarkPaid(env.ctx, order.ID, "cash")
	require.NoError(t, err)

	fulfilled, err := env.orders.FulfillOrder(env.ctx, order.ID, uuid.New(), false)
	require.NoError(t, err)
	assert.Equal(t, int64(0), fulfilled.MerchantFee)
}

func TestFulfillCommissionChain(t *testing.T) {
	env := newTestEnv(t)
	grandparent := env.createProfile(t, enum.AppRoleSalesRep, 0.20, nil)
	parent := env.createProfile(t, enum.AppRoleSalesRep, 0.15, grandparent)
	rep := env.createProfile(t, enum.AppRoleSalesRep, 0.10, parent)
	client := env.createContact(t, "Alice", rep)
	peptide := env.createStock(t, "BPC-157", 5, 4.00)

	order, err := env.orders.CreateOrder(env.ctx, &service.CreateOrderInput{
		ClientID: &client.ID,
		Items: []service.OrderItemInput{
			{PeptideID: peptide.ID, Quantity: 1, UnitPrice: 100.00},
		},
	})
	require.NoError(t, err)
	require.NoError(t, env.orders.UpdateStatus(env.ctx, order.ID, enum.OrderStatusSubmitted))
	_, err = env.orders.MarkPaid(env.ctx, order.ID, "cash")
	require.NoError(t, err)

	fulfilled, err := env.orders.FulfillOrder(env.ctx, order.ID, uuid.New(), false)
	require.NoError(t, err)

	var commissions []entity.Commission
	require.NoError(t, env.db.Where("sale_id = ?", order.ID).Order("amount DESC").Find(&commissions).Error)
	require.Len(t, commissions, 3)

	byType := make(map[enum.CommissionType]entity.Commission)
	for _, c := range commissions {
		byType[c.Type] = c
	}

	// direct at the rep's own rate, flat overrides up the chain
	assert.Equal(t, rep.ID, byType[enum.CommissionTypeDirect].PartnerID)
	assert.Equal(t, int64(1000), byType[enum.CommissionTypeDirect].Amount)
	assert.Equal(t, parent.ID, byType[enum.CommissionTypeSecondTierOverride].PartnerID)
	assert.Equal(t, int64(500), byType[enum.CommissionTypeSecondTierOverride].Amount)
	assert.Equal(t, grandparent.ID, byType[enum.CommissionTypeThirdTierOverride].PartnerID)
	assert.Equal(t, int64(200), byType[enum.CommissionTypeThirdTierOverride].Amount)

	assert.Equal(t, int64(1700), fulfilled.CommissionAmount)
}

func TestFulfillInsufficientStockRollsBack(t *testing.T) {
	env := newTestEnv(t)
	peptideA := env.createStock(t, "BPC-157", 5, 4.00)
	peptideB := env.createStock(t, "TB-500", 1, 6.00)

	order, err := env.orders.CreateOrder(env.ctx, &service.CreateOrderInput{
		Items: []service.OrderItemInput{
			{PeptideID: peptideA.ID, Quantity: 2, UnitPrice: 10.00},
			{PeptideID: peptideB.ID, Quantity: 3, UnitPrice: 10.00},
		},
	})
	require.NoError(t, err)
	require.NoError(t, env.orders.UpdateStatus(env.ctx, order.ID, enum.OrderStatusSubmitted))
	_, err = env.orders.MarkPaid(env.ctx, order.ID, "cash")
	require.NoError(t, err)

	_, err = env.orders.FulfillOrder(env.ctx, order.ID, uuid.New(), false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TB-500")

	// nothing moved: the first item's allocation rolled back too
	countsA := env.bottleStatuses(t, peptideA.ID)
	assert.Equal(t, 5, countsA[enum.BottleStatusInStock])
	countsB := env.bottleStatuses(t, peptideB.ID)
	assert.Equal(t, 1, countsB[enum.BottleStatusInStock])

	fresh, err := env.orders.GetOrder(env.ctx, order.ID)
	require.NoError(t, err)
	assert.NotEqual(t, enum.OrderStatusFulfilled, fresh.Status)
}

func TestCancelFulfilledOrderVoidsCommissions(t *testing.T) {
	env := newTestEnv(t)
	rep := env.createProfile(t, enum.AppRoleSalesRep, 0.10, nil)
	client := env.createContact(t, "Alice", rep)
	peptide := env.createStock(t, "BPC-157", 5, 4.00)

	order, err := env.orders.CreateOrder(env.ctx, &service.CreateOrderInput{
		ClientID: &client.ID,
		Items: []service.OrderItemInput{
			{PeptideID: peptide.ID, Quantity: 1, UnitPrice: 100.00},
		},
	})
	require.NoError(t, err)
	require.NoError(t, env.orders.UpdateStatus(env.ctx, order.ID, enum.OrderStatusSubmitted))
	_, err = env.orders.MarkPaid(env.ctx, order.ID, "cash")
	require.NoError(t, err)
	_, err = env.orders.FulfillOrder(env.ctx, order.ID, uuid.New(), false)
	require.NoError(t, err)

	require.NoError(t, env.orders.UpdateStatus(env.ctx, order.ID, enum.OrderStatusCancelled))

	var commissions []entity.Commission
	require.NoError(t, env.db.Where("sale_id = ?", order.ID).Find(&commissions).Error)
	require.NotEmpty(t, commissions)
	for _, c := range commissions {
		assert.Equal(t, enum.CommissionStatusVoided, c.Status)
	}
}

func TestCancelFulfilledOrderRestoresStock(t *testing.T) {
	env := newTestEnv(t)
	peptide := env.createStock(t, "BPC-157", 3, 4.00)

	order, err := env.orders.CreateOrder(env.ctx, &service.CreateOrderInput{
		Items: []service.OrderItemInput{
			{PeptideID: peptide.ID, Quantity: 2, UnitPrice: 50.00},
		},
	})
	require.NoError(t, err)
	require.NoError(t, env.orders.UpdateStatus(env.ctx, order.ID, enum.OrderStatusSubmitted))
	_, err = env.orders.MarkPaid(env.ctx, order.ID, "cash")
	require.NoError(t, err)
	_, err = env.orders.FulfillOrder(env.ctx, order.ID, uuid.New(), false)
	require.NoError(t, err)

	counts := env.bottleStatuses(t, peptide.ID)
	require.Equal(t, 2, counts[enum.BottleStatusSold])

	require.NoError(t, env.orders.UpdateStatus(env.ctx, order.ID, enum.OrderStatusCancelled))

	counts = env.bottleStatuses(t, peptide.ID)
	assert.Equal(t, 3, counts[enum.BottleStatusInStock])
	assert.Zero(t, counts[enum.BottleStatusSold])

	var movements []entity.Movement
	require.NoError(t, env.db.Where("sales_order_id = ?", order.ID).Find(&movements).Error)
	assert.Empty(t, movements)

	cancelled, err := env.orders.GetOrder(env.ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.OrderStatusCancelled, cancelled.Status)
	assert.Zero(t, cancelled.COGSAmount)
	assert.Zero(t, cancelled.CommissionAmount)
	assert.Zero(t, cancelled.MerchantFee)
	assert.Zero(t, cancelled.ProfitAmount)
}

func TestDeleteOrderOnlyDraftOrCancelled(t *testing.T) {
	env := newTestEnv(t)
	peptide := env.createStock(t, "BPC-157", 5, 4.00)

	order, err := env.orders.CreateOrder(env.ctx, &service.CreateOrderInput{
		Items: []service.OrderItemInput{
			{PeptideID: peptide.ID, Quantity: 1, UnitPrice: 10.00},
		},
	})
	require.NoError(t, err)

	require.NoError(t, env.orders.UpdateStatus(env.ctx, order.ID, enum.OrderStatusSubmitted))
	err = env.orders.DeleteOrder(env.ctx, order.ID)
	require.Error(t, err)

	require.NoError(t, env.orders.UpdateStatus(env.ctx, order.ID, enum.OrderStatusCancelled))
	require.NoError(t, env.orders.DeleteOrder(env.ctx, order.ID))

	_, err = env.orders.GetOrder(env.ctx, order.ID)
	require.Error(t, err)
}

func TestExportCSV(t *testing.T) {
	env := newTestEnv(t)
	rep := env.createProfile(t, enum.AppRoleSalesRep, 0.10, nil)
	client := env.createContact(t, "Alice Example", rep)
	peptide := env.createStock(t, "BPC-157", 5, 4.00)

	order, err := env.orders.CreateOrder(env.ctx, &service.CreateOrderInput{
		ClientID: &client.ID,
		Items: []service.OrderItemInput{
			{PeptideID: peptide.ID, Quantity: 2, UnitPrice: 19.99},
		},
	})
	require.NoError(t, err)

	doc, err := env.orders.ExportCSV(env.ctx, &repository.OrderFilterParams{
		Pagination: pagination.DefaultPagination(),
	})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(doc), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "Order ID")
	assert.Contains(t, lines[0], "Profit")
	assert.Contains(t, lines[1], order.ID.String())
	assert.Contains(t, lines[1], "Alice Example")
	assert.Contains(t, lines[1], "39.98")
}
