package service_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vialtrack/vialtrack-api/internal/application/service"
	"github.com/vialtrack/vialtrack-api/internal/domain/entity"
	"github.com/vialtrack/vialtrack-api/internal/domain/enum"
)

func TestUpdatePartnerSettingsValidatesRate(t *testing.T) {
	env := newTestEnv(t)
	rep := env.createProfile(t, enum.AppRoleSalesRep, 0.10, nil)

	bad := 1.5
	_, err := env.profiles.UpdatePartnerSettings(env.ctx, rep.ID, &service.UpdatePartnerSettingsInput{
		CommissionRate: &bad,
	})
	require.Error(t, err)

	good := 0.12
	updated, err := env.profiles.UpdatePartnerSettings(env.ctx, rep.ID, &service.UpdatePartnerSettingsInput{
		CommissionRate: &good,
	})
	require.NoError(t, err)
	assert.Equal(t, 0.12, updated.CommissionRate)
}

func TestUpdatePartnerSettingsRejectsSelfParent(t *testing.T) {
	env := newTestEnv(t)
	rep := env.createProfile(t, enum.AppRoleSalesRep, 0.10, nil)

	_, err := env.profiles.UpdatePartnerSettings(env.ctx, rep.ID, &service.UpdatePartnerSettingsInput{
		ParentRepID: &rep.ID,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "own parent")
}

func TestUpdatePartnerSettingsCostPlus(t *testing.T) {
	env := newTestEnv(t)
	rep := env.createProfile(t, enum.AppRoleSalesRep, 0.10, nil)

	mode := enum.PricingModeCostPlus
	markup := 12.50
	updated, err := env.profiles.UpdatePartnerSettings(env.ctx, rep.ID, &service.UpdatePartnerSettingsInput{
		PricingMode:    &mode,
		CostPlusMarkup: &markup,
	})
	require.NoError(t, err)
	assert.Equal(t, enum.PricingModeCostPlus, updated.PricingMode)
	assert.Equal(t, int64(1250), updated.CostPlusMarkup)
}

func TestGetPartnerBalanceSumsPendingCommissions(t *testing.T) {
	env := newTestEnv(t)
	rep := env.createProfile(t, enum.AppRoleSalesRep, 0.10, nil)
	require.NoError(t, env.db.Model(&entity.Profile{}).
		Where("id = ?", rep.ID).
		Update("credit_balance", 2500).Error)

	saleA, saleB := uuid.New(), uuid.New()
	require.NoError(t, env.db.Create(&[]entity.Commission{
		{OrgID: env.org.ID, SaleID: saleA, PartnerID: rep.ID, Type: enum.CommissionTypeDirect, Amount: 1000, Status: enum.CommissionStatusPending},
		{OrgID: env.org.ID, SaleID: saleB, PartnerID: rep.ID, Type: enum.CommissionTypeDirect, Amount: 750, Status: enum.CommissionStatusPending},
		{OrgID: env.org.ID, SaleID: saleA, PartnerID: rep.ID, Type: enum.CommissionTypeSecondTierOverride, Amount: 500, Status: enum.CommissionStatusPaid},
	}).Error)

	balance, err := env.profiles.GetPartnerBalance(env.ctx, rep.ID)
	require.NoError(t, err)

	// paid commissions are excluded from the pending total
	assert.Equal(t, 17.50, balance.PendingCommission)
	assert.Equal(t, 25.00, balance.CreditBalance)
}

func TestGrantCredit(t *testing.T) {
	env := newTestEnv(t)
	client := env.createProfile(t, enum.AppRoleClient, 0, nil)

	require.NoError(t, env.profiles.GrantCredit(env.ctx, client.UserID, 19.99))

	var fresh entity.Profile
	require.NoError(t, env.db.First(&fresh, "id = ?", client.ID).Error)
	assert.Equal(t, int64(1999), fresh.CreditBalance)

	require.Error(t, env.profiles.GrantCredit(env.ctx, client.UserID, -5))
}

func TestListRepsExcludesClients(t *testing.T) {
	env := newTestEnv(t)
	env.createProfile(t, enum.AppRoleSalesRep, 0.10, nil)
	env.createProfile(t, enum.AppRoleSalesRep, 0.10, nil)
	env.createProfile(t, enum.AppRoleClient, 0, nil)

	reps, err := env.profiles.ListReps(env.ctx)
	require.NoError(t, err)
	assert.Len(t, reps, 2)
}
