package service_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vialtrack/vialtrack-api/internal/application/service"
	"github.com/vialtrack/vialtrack-api/internal/domain/entity"
	"github.com/vialtrack/vialtrack-api/internal/domain/enum"
	"github.com/vialtrack/vialtrack-api/internal/domain/repository"
	"github.com/vialtrack/vialtrack-api/pkg/pagination"
)

func TestCreateContactDefaultsToCustomer(t *testing.T) {
	env := newTestEnv(t)

	email := "alice@test.local"
	contact, err := env.contacts.CreateContact(env.ctx, &service.CreateContactInput{
		Name:  "Alice",
		Email: &email,
	})
	require.NoError(t, err)

	assert.Equal(t, enum.ContactTypeCustomer, contact.Type)
	assert.Equal(t, env.org.ID, contact.OrgID)
}

func TestUpdateContactReassignsRep(t *testing.T) {
	env := newTestEnv(t)
	repA := env.createProfile(t, enum.AppRoleSalesRep, 0.10, nil)
	repB := env.createProfile(t, enum.AppRoleSalesRep, 0.10, nil)
	contact := env.createContact(t, "Alice", repA)

	updated, err := env.contacts.UpdateContact(env.ctx, contact.ID, &service.UpdateContactInput{
		AssignedRepID: &repB.ID,
	})
	require.NoError(t, err)
	require.NotNil(t, updated.AssignedRepID)
	assert.Equal(t, repB.ID, *updated.AssignedRepID)
}

func TestListContactsFiltersByType(t *testing.T) {
	env := newTestEnv(t)
	env.createContact(t, "Alice", nil)

	partnerType := enum.ContactTypePartner
	partner := &entity.Contact{OrgID: env.org.ID, Name: "Partner Bob", Type: partnerType}
	require.NoError(t, env.db.Create(partner).Error)

	result, err := env.contacts.ListContacts(env.ctx, &repository.ContactFilterParams{
		Pagination: pagination.DefaultPagination(),
		Type:       &partnerType,
	})
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "Partner Bob", result.Items[0].Name)
}

func TestListContactsSearchIsCaseInsensitive(t *testing.T) {
	env := newTestEnv(t)
	env.createContact(t, "Alice Anderson", nil)
	env.createContact(t, "Bob Brown", nil)

	result, err := env.contacts.ListContacts(env.ctx, &repository.ContactFilterParams{
		Pagination: pagination.DefaultPagination(),
		Search:     "alice",
	})
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "Alice Anderson", result.Items[0].Name)
}

func TestGetContactForUser(t *testing.T) {
	env := newTestEnv(t)
	portalUser := uuid.New()
	contact := env.createContact(t, "Alice", nil)
	require.NoError(t, env.db.Model(&entity.Contact{}).
		Where("id = ?", contact.ID).
		Update("linked_user_id", portalUser).Error)

	found, err := env.contacts.GetContactForUser(env.ctx, portalUser)
	require.NoError(t, err)
	assert.Equal(t, contact.ID, found.ID)

	_, err = env.contacts.GetContactForUser(env.ctx, uuid.New())
	require.Error(t, err)
}

func TestContactsAreOrgScoped(t *testing.T) {
	env := newTestEnv(t)
	env.createContact(t, "Alice", nil)

	otherOrg := &entity.Org{Name: "Other Org", Slug: "other-org"}
	require.NoError(t, env.db.Create(otherOrg).Error)
	require.NoError(t, env.db.Create(&entity.Contact{
		OrgID: otherOrg.ID,
		Name:  "Stranger",
		Type:  enum.ContactTypeCustomer,
	}).Error)

	result, err := env.contacts.ListContacts(env.ctx, &repository.ContactFilterParams{
		Pagination: pagination.DefaultPagination(),
	})
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "Alice", result.Items[0].Name)
}
