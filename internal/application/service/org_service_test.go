package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vialtrack/vialtrack-api/internal/application/service"
	infrarepo "github.com/vialtrack/vialtrack-api/internal/infrastructure/repository"
)

func TestGetCurrentOrg(t *testing.T) {
	env := newTestEnv(t)
	orgs := service.NewOrgService(infrarepo.NewOrgRepository(env.db))

	org, err := orgs.GetCurrent(env.ctx)
	require.NoError(t, err)
	assert.Equal(t, env.org.ID, org.ID)
	assert.Equal(t, "test-org", org.Slug)
}

func TestGetCurrentOrgRequiresContext(t *testing.T) {
	env := newTestEnv(t)
	orgs := service.NewOrgService(infrarepo.NewOrgRepository(env.db))

	_, err := orgs.GetCurrent(context.Background())
	require.Error(t, err)
}

func TestUpdateCurrentOrgName(t *testing.T) {
	env := newTestEnv(t)
	orgs := service.NewOrgService(infrarepo.NewOrgRepository(env.db))

	name := "Peptide Partners LLC"
	org, err := orgs.UpdateCurrent(env.ctx, &service.UpdateCurrentInput{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Peptide Partners LLC", org.Name)
	// slug stays as-is
	assert.Equal(t, "test-org", org.Slug)

	empty := ""
	_, err = orgs.UpdateCurrent(env.ctx, &service.UpdateCurrentInput{Name: &empty})
	require.Error(t, err)
}
