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

func bottleIDsForPeptide(t *testing.T, env *testEnv, peptideID uuid.UUID, n int) []uuid.UUID {
	t.Helper()
	var bottles []entity.Bottle
	err := env.db.
		Joins("JOIN lots ON lots.id = bottles.lot_id").
		Where("lots.peptide_id = ?", peptideID).
		Limit(n).
		Find(&bottles).Error
	require.NoError(t, err)
	require.Len(t, bottles, n)

	ids := make([]uuid.UUID, n)
	for i, b := range bottles {
		ids[i] = b.ID
	}
	return ids
}

func TestCreateMovementFlipsBottleStatus(t *testing.T) {
	env := newTestEnv(t)
	peptide := env.createStock(t, "BPC-157", 5, 4.00)
	ids := bottleIDsForPeptide(t, env, peptide.ID, 2)

	movement, err := env.movements.CreateMovement(env.ctx, &service.CreateMovementInput{
		Type:      enum.MovementTypeGiveaway,
		BottleIDs: ids,
		CreatedBy: uuid.New(),
	})
	require.NoError(t, err)
	assert.Equal(t, enum.MovementTypeGiveaway, movement.Type)

	counts := env.bottleStatuses(t, peptide.ID)
	assert.Equal(t, 2, counts[enum.BottleStatusGivenAway])
	assert.Equal(t, 3, counts[enum.BottleStatusInStock])
}

func TestCreateMovementRejectsSaleType(t *testing.T) {
	env := newTestEnv(t)
	peptide := env.createStock(t, "BPC-157", 5, 4.00)
	ids := bottleIDsForPeptide(t, env, peptide.ID, 1)

	_, err := env.movements.CreateMovement(env.ctx, &service.CreateMovementInput{
		Type:      enum.MovementTypeSale,
		BottleIDs: ids,
		CreatedBy: uuid.New(),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "order fulfillment")
}

func TestCreateMovementRejectsUnavailableBottle(t *testing.T) {
	env := newTestEnv(t)
	peptide := env.createStock(t, "BPC-157", 5, 4.00)
	ids := bottleIDsForPeptide(t, env, peptide.ID, 1)

	require.NoError(t, env.db.Model(&entity.Bottle{}).
		Where("id = ?", ids[0]).
		Update("status", enum.BottleStatusLost).Error)

	_, err := env.movements.CreateMovement(env.ctx, &service.CreateMovementInput{
		Type:      enum.MovementTypeInternalUse,
		BottleIDs: ids,
		CreatedBy: uuid.New(),
	})
	require.Error(t, err)
}

func TestCreateMovementRequiresBottles(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.movements.CreateMovement(env.ctx, &service.CreateMovementInput{
		Type:      enum.MovementTypeLoss,
		CreatedBy: uuid.New(),
	})
	require.Error(t, err)
}

func TestReturnMovementRestocksBottles(t *testing.T) {
	env := newTestEnv(t)
	peptide := env.createStock(t, "BPC-157", 2, 4.00)
	ids := bottleIDsForPeptide(t, env, peptide.ID, 1)

	// simulate an earlier sale, then return the bottle
	require.NoError(t, env.db.Model(&entity.Bottle{}).
		Where("id = ?", ids[0]).
		Update("status", enum.BottleStatusSold).Error)

	_, err := env.movements.CreateMovement(env.ctx, &service.CreateMovementInput{
		Type:      enum.MovementTypeReturn,
		BottleIDs: ids,
		CreatedBy: uuid.New(),
	})
	require.NoError(t, err)

	counts := env.bottleStatuses(t, peptide.ID)
	assert.Equal(t, 2, counts[enum.BottleStatusInStock])
}
