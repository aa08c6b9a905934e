//go:build unit || e2e

package authtest

import (
	"testing"
	"time"

	pkgjwt "praxis-booking/internal/pkg/jwt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// IssueToken signs an access token the way the external identity provider
// would, so requests can pass the validate-only auth middleware.
func IssueToken(t *testing.T, secret string, userID uuid.UUID, role string) string {
	t.Helper()

	claims := pkgjwt.Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err, "Failed to sign test token")
	return signed
}

// IssueExpiredToken returns a token past its expiry, for negative cases.
func IssueExpiredToken(t *testing.T, secret string, userID uuid.UUID, role string) string {
	t.Helper()

	claims := pkgjwt.Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err, "Failed to sign test token")
	return signed
}
