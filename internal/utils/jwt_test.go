package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	SetJWTSecret("test-secret")

	token, err := GenerateJWT("m1", "dana@aurorahair.example", "manager", "salon-aurora")
	require.NoError(t, err)

	claims, err := ValidateJWT(token)
	require.NoError(t, err)
	assert.Equal(t, "m1", claims.ActorID)
	assert.Equal(t, "dana@aurorahair.example", claims.Email)
	assert.Equal(t, "manager", claims.Role)
	assert.Equal(t, "salon-aurora", claims.SalonID)
}

func TestJWTSuperAdminHasNoSalon(t *testing.T) {
	SetJWTSecret("test-secret")

	token, err := GenerateJWT("root", "admin@strands.app", "super_admin", "")
	require.NoError(t, err)

	claims, err := ValidateJWT(token)
	require.NoError(t, err)
	assert.Empty(t, claims.SalonID)
}

func TestJWTTamperedTokenRejected(t *testing.T) {
	SetJWTSecret("test-secret")

	token, err := GenerateJWT("m1", "a@b.example", "manager", "salon-a")
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	tampered := parts[0] + "." + parts[1] + "." + strings.Repeat("A", len(parts[2]))

	_, err = ValidateJWT(tampered)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTWrongSecretRejected(t *testing.T) {
	SetJWTSecret("first-secret")
	token, err := GenerateJWT("m1", "a@b.example", "manager", "salon-a")
	require.NoError(t, err)

	SetJWTSecret("second-secret")
	_, err = ValidateJWT(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	SetJWTSecret("first-secret")
	_, err = ValidateJWT(token)
	assert.NoError(t, err)
}
