package service_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vialtrack/vialtrack-api/internal/application/service"
	"github.com/vialtrack/vialtrack-api/internal/domain/entity"
	"github.com/vialtrack/vialtrack-api/internal/domain/repository"
	"github.com/vialtrack/vialtrack-api/pkg/pagination"
)

func TestCreateProtocolTemplate(t *testing.T) {
	env := newTestEnv(t)
	peptide := env.createStock(t, "BPC-157", 1, 4.00)

	protocol, err := env.protocols.CreateProtocol(env.ctx, &service.CreateProtocolInput{
		Name: "Healing Stack",
		Items: []service.ProtocolItemInput{
			{PeptideID: peptide.ID, Dosage: "250mcg", Frequency: "daily", DurationWeeks: 4},
		},
	})
	require.NoError(t, err)

	assert.Nil(t, protocol.ContactID)
	require.Len(t, protocol.Items, 1)
	// an unset multiplier defaults to 1
	assert.Equal(t, float64(1), protocol.Items[0].CostMultiplier)
}

func TestCreateProtocolRejectsUnknownPeptide(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.protocols.CreateProtocol(env.ctx, &service.CreateProtocolInput{
		Name: "Bad Stack",
		Items: []service.ProtocolItemInput{
			{PeptideID: uuid.New(), Dosage: "250mcg", Frequency: "daily"},
		},
	})
	require.Error(t, err)
}

func TestUpdateProtocolReconcilesItems(t *testing.T) {
	env := newTestEnv(t)
	peptideA := env.createStock(t, "BPC-157", 1, 4.00)
	peptideB := env.createStock(t, "TB-500", 1, 6.00)

	protocol, err := env.protocols.CreateProtocol(env.ctx, &service.CreateProtocolInput{
		Name: "Healing Stack",
		Items: []service.ProtocolItemInput{
			{PeptideID: peptideA.ID, Dosage: "250mcg", Frequency: "daily", DurationWeeks: 4},
			{PeptideID: peptideB.ID, Dosage: "2mg", Frequency: "weekly", DurationWeeks: 4},
		},
	})
	require.NoError(t, err)
	require.Len(t, protocol.Items, 2)

	var keep *entity.ProtocolItem
	for i := range protocol.Items {
		if protocol.Items[i].PeptideID == peptideA.ID {
			keep = &protocol.Items[i]
		}
	}
	require.NotNil(t, keep)

	// keep the first item with a new dosage, drop the second, add nothing
	updated, err := env.protocols.UpdateProtocol(env.ctx, protocol.ID, &service.UpdateProtocolInput{
		Items: []service.ProtocolItemInput{
			{ID: &keep.ID, PeptideID: peptideA.ID, Dosage: "500mcg", Frequency: "daily", DurationWeeks: 6},
		},
	})
	require.NoError(t, err)

	require.Len(t, updated.Items, 1)
	assert.Equal(t, keep.ID, updated.Items[0].ID)
	assert.Equal(t, "500mcg", updated.Items[0].Dosage)
	assert.Equal(t, 6, updated.Items[0].DurationWeeks)

	var count int64
	env.db.Model(&entity.ProtocolItem{}).Where("protocol_id = ?", protocol.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestUpdateProtocolBackfillsWeeksFromDays(t *testing.T) {
	env := newTestEnv(t)
	peptide := env.createStock(t, "BPC-157", 1, 4.00)

	protocol, err := env.protocols.CreateProtocol(env.ctx, &service.CreateProtocolInput{
		Name: "Healing Stack",
		Items: []service.ProtocolItemInput{
			{PeptideID: peptide.ID, Dosage: "250mcg", Frequency: "daily", DurationWeeks: 4},
		},
	})
	require.NoError(t, err)
	require.Len(t, protocol.Items, 1)
	itemID := protocol.Items[0].ID

	// a day count without a week count fills in weeks, rounded up
	days := 10
	updated, err := env.protocols.UpdateProtocol(env.ctx, protocol.ID, &service.UpdateProtocolInput{
		Items: []service.ProtocolItemInput{
			{ID: &itemID, PeptideID: peptide.ID, Dosage: "250mcg", Frequency: "daily", DurationDays: &days},
		},
	})
	require.NoError(t, err)

	require.Len(t, updated.Items, 1)
	require.NotNil(t, updated.Items[0].DurationDays)
	assert.Equal(t, 10, *updated.Items[0].DurationDays)
	assert.Equal(t, 2, updated.Items[0].DurationWeeks)
}

func TestAssignTemplateCopiesItems(t *testing.T) {
	env := newTestEnv(t)
	peptide := env.createStock(t, "BPC-157", 1, 4.00)
	contact := env.createContact(t, "Alice", nil)

	template, err := env.protocols.CreateProtocol(env.ctx, &service.CreateProtocolInput{
		Name: "Healing Stack",
		Items: []service.ProtocolItemInput{
			{PeptideID: peptide.ID, Dosage: "250mcg", Frequency: "daily", DurationWeeks: 4},
		},
	})
	require.NoError(t, err)

	assigned, err := env.protocols.AssignTemplate(env.ctx, template.ID, contact.ID)
	require.NoError(t, err)

	require.NotNil(t, assigned.ContactID)
	assert.Equal(t, contact.ID, *assigned.ContactID)
	assert.NotEqual(t, template.ID, assigned.ID)
	require.Len(t, assigned.Items, 1)
	assert.Equal(t, "250mcg", assigned.Items[0].Dosage)

	// the template itself is untouched
	fresh, err := env.protocols.GetProtocol(env.ctx, template.ID)
	require.NoError(t, err)
	assert.Nil(t, fresh.ContactID)
}

func TestAssignTemplateRejectsAssignedProtocol(t *testing.T) {
	env := newTestEnv(t)
	peptide := env.createStock(t, "BPC-157", 1, 4.00)
	contact := env.createContact(t, "Alice", nil)
	other := env.createContact(t, "Bob", nil)

	assigned, err := env.protocols.CreateProtocol(env.ctx, &service.CreateProtocolInput{
		Name:      "Alice's Stack",
		ContactID: &contact.ID,
		Items: []service.ProtocolItemInput{
			{PeptideID: peptide.ID, Dosage: "250mcg", Frequency: "daily"},
		},
	})
	require.NoError(t, err)

	_, err = env.protocols.AssignTemplate(env.ctx, assigned.ID, other.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already assigned")
}

func TestListProtocolTemplatesOnly(t *testing.T) {
	env := newTestEnv(t)
	peptide := env.createStock(t, "BPC-157", 1, 4.00)
	contact := env.createContact(t, "Alice", nil)

	_, err := env.protocols.CreateProtocol(env.ctx, &service.CreateProtocolInput{
		Name: "Template",
		Items: []service.ProtocolItemInput{
			{PeptideID: peptide.ID, Dosage: "250mcg", Frequency: "daily"},
		},
	})
	require.NoError(t, err)
	_, err = env.protocols.CreateProtocol(env.ctx, &service.CreateProtocolInput{
		Name:      "Assigned",
		ContactID: &contact.ID,
		Items: []service.ProtocolItemInput{
			{PeptideID: peptide.ID, Dosage: "250mcg", Frequency: "daily"},
		},
	})
	require.NoError(t, err)

	result, err := env.protocols.ListProtocols(env.ctx, &repository.ProtocolFilterParams{
		Pagination:    pagination.DefaultPagination(),
		TemplatesOnly: true,
	})
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "Template", result.Items[0].Name)
}

func TestDeleteProtocolRemovesItems(t *testing.T) {
	env := newTestEnv(t)
	peptide := env.createStock(t, "BPC-157", 1, 4.00)

	protocol, err := env.protocols.CreateProtocol(env.ctx, &service.CreateProtocolInput{
		Name: "Healing Stack",
		Items: []service.ProtocolItemInput{
			{PeptideID: peptide.ID, Dosage: "250mcg", Frequency: "daily"},
		},
	})
	require.NoError(t, err)

	require.NoError(t, env.protocols.DeleteProtocol(env.ctx, protocol.ID))

	var count int64
	env.db.Model(&entity.ProtocolItem{}).Where("protocol_id = ?", protocol.ID).Count(&count)
	assert.Equal(t, int64(0), count)
}
