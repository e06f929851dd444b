package maestro_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	maestro "github.com/maestro-marketing/go-maestro"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mintToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("test-signing-key"))
	require.NoError(t, err)
	return signed
}

func TestPeekClaimsDecodesRegisteredClaims(t *testing.T) {
	issued := time.Now().Add(-time.Minute).Truncate(time.Second)
	expires := time.Now().Add(time.Hour).Truncate(time.Second)

	signed := mintToken(t, jwt.MapClaims{
		"sub": "42",
		"iss": "maestro",
		"iat": issued.Unix(),
		"exp": expires.Unix(),
	})

	claims, err := maestro.PeekClaims(signed)
	require.NoError(t, err)

	assert.Equal(t, "42", claims.Subject)
	assert.Equal(t, "maestro", claims.Issuer)
	require.NotNil(t, claims.IssuedAt)
	assert.True(t, claims.IssuedAt.Equal(issued))
	require.NotNil(t, claims.ExpiresAt)
	assert.True(t, claims.ExpiresAt.Equal(expires))
}

func TestPeekClaimsToleratesMissingClaims(t *testing.T) {
	signed := mintToken(t, jwt.MapClaims{"sub": "42"})

	claims, err := maestro.PeekClaims(signed)
	require.NoError(t, err)

	assert.Equal(t, "42", claims.Subject)
	assert.Empty(t, claims.Issuer)
	assert.Nil(t, claims.ExpiresAt)
}

func TestPeekClaimsDoesNotVerifySignature(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "42"})
	signed, err := token.SignedString([]byte("some-other-key"))
	require.NoError(t, err)

	// Peek is display-only; an unverifiable signature still decodes.
	claims, err := maestro.PeekClaims(signed)
	require.NoError(t, err)
	assert.Equal(t, "42", claims.Subject)
}

func TestPeekClaimsRejectsGarbage(t *testing.T) {
	_, err := maestro.PeekClaims("not-a-jwt")
	require.Error(t, err)

	_, err = maestro.PeekClaims("")
	require.Error(t, err)
}
