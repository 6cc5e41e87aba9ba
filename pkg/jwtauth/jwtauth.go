// Package jwtauth validates access tokens issued by the hosted auth
// provider. Tokens are HS256-signed with a shared secret; this service
// never issues credentials of its own.
package jwtauth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims represents the claims in an access token
type Claims struct {
	UserID uuid.UUID  `json:"user_id"`
	Email  string     `json:"email"`
	OrgID  *uuid.UUID `json:"org_id,omitempty"`
	Role   string     `json:"role"`
	jwt.RegisteredClaims
}

// Manager validates access tokens against the shared signing secret
type Manager struct {
	secretKey []byte
	issuer    string
}

// NewManager creates a token manager
func NewManager(secret, issuer string) *Manager {
	return &Manager{secretKey: []byte(secret), issuer: issuer}
}

// Validate parses and verifies an access token and returns its claims
func (m *Manager) Validate(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secretKey, nil
	})

	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}

// Sign mints a token for the given identity. Used by tests and local
// development; production tokens come from the auth provider.
func (m *Manager) Sign(userID uuid.UUID, email string, orgID *uuid.UUID, role string, expiry time.Duration) (string, error) {
	claims := &Claims{
		UserID: userID,
		Email:  email,
		OrgID:  orgID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			Issuer:    m.issuer,
			Subject:   userID.String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secretKey)
}
