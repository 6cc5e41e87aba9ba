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

func TestLinkPartnerReferralCreatesAssociateRep(t *testing.T) {
	env := newTestEnv(t)
	referrer := env.createProfile(t, enum.AppRoleSalesRep, 0.15, nil)

	invitee := uuid.New()
	result, err := env.referrals.Link(env.ctx, &service.LinkReferralInput{
		UserID:         invitee,
		Email:          "new.rep@test.local",
		FullName:       "New Rep",
		ReferrerUserID: referrer.UserID,
	})
	require.NoError(t, err)
	assert.False(t, result.AlreadyLinked)

	profile := result.Profile
	require.NotNil(t, profile)
	assert.Equal(t, enum.AppRoleSalesRep, profile.Role)
	assert.Equal(t, enum.PartnerTierAssociate, profile.PartnerTier)
	assert.Equal(t, 0.075, profile.CommissionRate)
	assert.Equal(t, 0.75, profile.PriceMult)
	require.NotNil(t, profile.ParentRepID)
	assert.Equal(t, referrer.ID, *profile.ParentRepID)

	contact := result.Contact
	require.NotNil(t, contact)
	assert.Equal(t, enum.ContactTypePartner, contact.Type)
	require.NotNil(t, contact.LinkedUserID)
	assert.Equal(t, invitee, *contact.LinkedUserID)

	var role entity.UserRole
	require.NoError(t, env.db.First(&role, "user_id = ? AND org_id = ?", invitee, env.org.ID).Error)
	assert.Equal(t, string(enum.AppRoleSalesRep), role.Role)
}

func TestLinkClientReferralCreatesCustomerContact(t *testing.T) {
	env := newTestEnv(t)
	rep := env.createProfile(t, enum.AppRoleSalesRep, 0.10, nil)
	referrer := env.createProfile(t, enum.AppRoleClient, 0, rep)

	result, err := env.referrals.Link(env.ctx, &service.LinkReferralInput{
		UserID:         uuid.New(),
		Email:          "friend@test.local",
		FullName:       "Referred Friend",
		ReferrerUserID: referrer.UserID,
	})
	require.NoError(t, err)

	assert.Equal(t, enum.AppRoleClient, result.Profile.Role)
	assert.Equal(t, enum.ContactTypeCustomer, result.Contact.Type)

	// the new client lands under the referrer's rep
	require.NotNil(t, result.Contact.AssignedRepID)
	assert.Equal(t, rep.ID, *result.Contact.AssignedRepID)
	assert.Equal(t, float64(1), result.Profile.PriceMult)
}

func TestLinkReferralIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	referrer := env.createProfile(t, enum.AppRoleSalesRep, 0.15, nil)

	input := &service.LinkReferralInput{
		UserID:         uuid.New(),
		Email:          "new.rep@test.local",
		FullName:       "New Rep",
		ReferrerUserID: referrer.UserID,
	}

	first, err := env.referrals.Link(env.ctx, input)
	require.NoError(t, err)
	require.False(t, first.AlreadyLinked)

	second, err := env.referrals.Link(env.ctx, input)
	require.NoError(t, err)
	assert.True(t, second.AlreadyLinked)
	assert.Equal(t, first.Profile.ID, second.Profile.ID)
	assert.Equal(t, first.Contact.ID, second.Contact.ID)

	var contactCount int64
	env.db.Model(&entity.Contact{}).
		Where("linked_user_id = ?", input.UserID).
		Count(&contactCount)
	assert.Equal(t, int64(1), contactCount)
}

func TestLinkKeepsExistingProfileSettings(t *testing.T) {
	env := newTestEnv(t)
	referrer := env.createProfile(t, enum.AppRoleSalesRep, 0.15, nil)
	existing := env.createProfile(t, enum.AppRoleSalesRep, 0.20, nil)

	result, err := env.referrals.Link(env.ctx, &service.LinkReferralInput{
		UserID:         existing.UserID,
		Email:          existing.Email,
		FullName:       existing.FullName,
		ReferrerUserID: referrer.UserID,
	})
	require.NoError(t, err)
	assert.True(t, result.AlreadyLinked)

	// the replay does not overwrite the established commission rate or parent
	assert.Equal(t, 0.20, result.Profile.CommissionRate)
	assert.Nil(t, result.Profile.ParentRepID)
}

func TestLinkUnknownReferrer(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.referrals.Link(env.ctx, &service.LinkReferralInput{
		UserID:         uuid.New(),
		Email:          "x@test.local",
		FullName:       "X",
		ReferrerUserID: uuid.New(),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Referrer")
}
