package crypto

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndVerifyToken(t *testing.T) {
	userID := uuid.New()
	secret := "test-secret"

	token, err := GenerateToken(userID, secret, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	status, parsedID := VerifyToken(token, secret)
	assert.Equal(t, TokenValid, status)
	assert.Equal(t, userID, parsedID)
}

func TestGenerateTokenRequiresSecret(t *testing.T) {
	_, err := GenerateToken(uuid.New(), "", time.Hour)
	assert.ErrorIs(t, err, ErrSecretNotConfigured)
}

func TestVerifyTokenExpired(t *testing.T) {
	token, err := GenerateToken(uuid.New(), "test-secret", -time.Minute)
	require.NoError(t, err)

	status, parsedID := VerifyToken(token, "test-secret")
	assert.Equal(t, TokenExpired, status)
	assert.Equal(t, uuid.Nil, parsedID)
}

func TestVerifyTokenWrongSecret(t *testing.T) {
	token, err := GenerateToken(uuid.New(), "test-secret", time.Hour)
	require.NoError(t, err)

	status, _ := VerifyToken(token, "other-secret")
	assert.Equal(t, TokenMalformed, status)
}

func TestVerifyTokenTampered(t *testing.T) {
	token, err := GenerateToken(uuid.New(), "test-secret", time.Hour)
	require.NoError(t, err)

	tampered := token + "xx"
	status, _ := VerifyToken(tampered, "test-secret")
	assert.Equal(t, TokenMalformed, status)
}

func TestVerifyTokenGarbage(t *testing.T) {
	status, parsedID := VerifyToken("not-a-token", "test-secret")
	assert.Equal(t, TokenMalformed, status)
	assert.Equal(t, uuid.Nil, parsedID)
}
