package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndVerifyToken(t *testing.T) {
	manager := NewJWTManager("test-secret", time.Hour)

	token, err := manager.GenerateToken(42, "user@test.local", "tenant")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := manager.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "user@test.local", claims.Email)
	assert.Equal(t, "tenant", claims.Role)
	assert.Equal(t, "RentHub", claims.Issuer)
}

func TestVerifyTokenWrongSecret(t *testing.T) {
	manager := NewJWTManager("test-secret", time.Hour)
	other := NewJWTManager("other-secret", time.Hour)

	token, err := manager.GenerateToken(1, "user@test.local", "tenant")
	require.NoError(t, err)

	_, err = other.VerifyToken(token)
	assert.Error(t, err)
}

func TestVerifyExpiredToken(t *testing.T) {
	manager := NewJWTManager("test-secret", -time.Minute)

	token, err := manager.GenerateToken(1, "user@test.local", "tenant")
	require.NoError(t, err)

	_, err = manager.VerifyToken(token)
	assert.Error(t, err)
}

func TestRefreshToken(t *testing.T) {
	manager := NewJWTManager("test-secret", time.Hour)

	token, err := manager.GenerateToken(7, "user@test.local", "landlord")
	require.NoError(t, err)

	refreshed, err := manager.RefreshToken(token)
	require.NoError(t, err)

	claims, err := manager.VerifyToken(refreshed)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "landlord", claims.Role)
}
