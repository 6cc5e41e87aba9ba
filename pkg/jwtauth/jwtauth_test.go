package jwtauth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignAndValidate(t *testing.T) {
	m := NewManager("secret", "vialtrack-api")
	userID := uuid.New()
	orgID := uuid.New()

	token, err := m.Sign(userID, "rep@example.com", &orgID, "sales_rep", time.Hour)
	require.NoError(t, err)

	claims, err := m.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "rep@example.com", claims.Email)
	require.NotNil(t, claims.OrgID)
	assert.Equal(t, orgID, *claims.OrgID)
	assert.Equal(t, "sales_rep", claims.Role)
	assert.Equal(t, "vialtrack-api", claims.Issuer)
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	token, err := NewManager("secret-a", "vialtrack-api").Sign(uuid.New(), "a@b.c", nil, "client", time.Hour)
	require.NoError(t, err)

	_, err = NewManager("secret-b", "vialtrack-api").Validate(token)
	assert.Error(t, err)
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	m := NewManager("secret", "vialtrack-api")
	token, err := m.Sign(uuid.New(), "a@b.c", nil, "client", -time.Minute)
	require.NoError(t, err)

	_, err = m.Validate(token)
	assert.Error(t, err)
}
