package service_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskhive/task-service/internal/auth/service"
	apperror "github.com/taskhive/task-service/internal/errors"
)

func TestTokenService_GenerateAndVerify(t *testing.T) {
	ts := service.NewTokenService("test-secret", 30)

	token, expiresAt, err := ts.Generate("user-123", "alice@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(30*time.Minute), expiresAt, 5*time.Second)

	claims, err := ts.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", claims.Subject)
	assert.Equal(t, "user-123", claims.UserID)
	assert.WithinDuration(t, expiresAt, claims.ExpiresAt.Time, time.Second)
}

func TestTokenService_VerifyExpired(t *testing.T) {
	// Negative expiry produces a token whose exp is already in the past.
	ts := service.NewTokenService("test-secret", -1)

	token, _, err := ts.Generate("user-123", "alice@example.com")
	require.NoError(t, err)

	_, err = ts.Verify(token)
	assert.ErrorIs(t, err, apperror.ErrTokenExpired)
	assert.NotErrorIs(t, err, apperror.ErrInvalidToken)
}

func TestTokenService_VerifyTamperedSignature(t *testing.T) {
	ts := service.NewTokenService("test-secret", 30)

	token, _, err := ts.Generate("user-123", "alice@example.com")
	require.NoError(t, err)

	// Flip a byte in the signature segment.
	last := token[len(token)-1]
	flipped := byte('A')
	if last == 'A' {
		flipped = 'B'
	}
	tampered := token[:len(token)-1] + string(flipped)

	_, err = ts.Verify(tampered)
	assert.ErrorIs(t, err, apperror.ErrInvalidToken)
}

func TestTokenService_VerifyWrongSecret(t *testing.T) {
	ts := service.NewTokenService("test-secret", 30)
	other := service.NewTokenService("other-secret", 30)

	token, _, err := ts.Generate("user-123", "alice@example.com")
	require.NoError(t, err)

	_, err = other.Verify(token)
	assert.ErrorIs(t, err, apperror.ErrInvalidToken)
}

func TestTokenService_VerifyMalformed(t *testing.T) {
	ts := service.NewTokenService("test-secret", 30)

	for _, tokenString := range []string{
		"",
		"garbage",
		"a.b.c",
		strings.Repeat("x", 200),
	} {
		_, err := ts.Verify(tokenString)
		assert.ErrorIs(t, err, apperror.ErrInvalidToken, "token %q", tokenString)
	}
}

func TestTokenService_Expiry(t *testing.T) {
	ts := service.NewTokenService("test-secret", 45)

	assert.Equal(t, 45*time.Minute, ts.Expiry())
}
