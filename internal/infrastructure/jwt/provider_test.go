package jwtinfra

import (
	"testing"
	"time"

	"github.com/otp-auth-api/internal/config"
	"github.com/otp-auth-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProvider(t *testing.T, accessTTL time.Duration) *Provider {
	t.Helper()
	p, err := NewProvider(&config.Config{
		JWTSecret:       "unit-test-secret",
		AccessTokenTTL:  accessTTL,
		RefreshTokenTTL: 24 * time.Hour,
	})
	require.NoError(t, err)
	return p
}

func TestNewProvider_RequiresSecret(t *testing.T) {
	_, err := NewProvider(&config.Config{})
	assert.Error(t, err)
}

func TestSignAccess_VerifyRoundTrip(t *testing.T) {
	p := newProvider(t, time.Hour)

	token, err := p.SignAccess("u1", "+15551234567")
	require.NoError(t, err)

	claims, err := p.Verify(token, UseAccess)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.Subject)
	assert.Equal(t, "+15551234567", claims.Phone)
	assert.Equal(t, UseAccess, claims.TokenUse)
	assert.NotEmpty(t, claims.ID)
}

func TestVerify_RejectsCrossKindUse(t *testing.T) {
	p := newProvider(t, time.Hour)

	refreshToken, err := p.SignRefresh("u1", "+15551234567")
	require.NoError(t, err)

	_, err = p.Verify(refreshToken, UseAccess)
	assert.ErrorIs(t, err, ErrWrongUse)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)

	accessToken, err := p.SignAccess("u1", "+15551234567")
	require.NoError(t, err)

	_, err = p.Verify(accessToken, UseRefresh)
	assert.ErrorIs(t, err, ErrWrongUse)
}

func TestVerify_Expired(t *testing.T) {
	p := newProvider(t, -time.Minute)

	token, err := p.SignAccess("u1", "+15551234567")
	require.NoError(t, err)

	_, err = p.Verify(token, UseAccess)
	assert.ErrorIs(t, err, ErrExpired)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestVerify_TamperedSignature(t *testing.T) {
	p := newProvider(t, time.Hour)

	token, err := p.SignAccess("u1", "+15551234567")
	require.NoError(t, err)

	tampered := token[:len(token)-2] + "xx"
	_, err = p.Verify(tampered, UseAccess)
	assert.ErrorIs(t, err, ErrSignatureInvalid)
}

func TestVerify_WrongSecret(t *testing.T) {
	p := newProvider(t, time.Hour)
	other, err := NewProvider(&config.Config{
		JWTSecret:       "a-different-secret",
		AccessTokenTTL:  time.Hour,
		RefreshTokenTTL: 24 * time.Hour,
	})
	require.NoError(t, err)

	token, err := p.SignAccess("u1", "+15551234567")
	require.NoError(t, err)

	_, err = other.Verify(token, UseAccess)
	assert.ErrorIs(t, err, ErrSignatureInvalid)
}

func TestVerify_Malformed(t *testing.T) {
	p := newProvider(t, time.Hour)

	_, err := p.Verify("definitely-not-a-jwt", UseAccess)
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestSign_TokensAreUniquePerCall(t *testing.T) {
	p := newProvider(t, time.Hour)

	a, err := p.SignAccess("u1", "+15551234567")
	require.NoError(t, err)
	b, err := p.SignAccess("u1", "+15551234567")
	require.NoError(t, err)
	assert.NotEqual(t, a, b) // jti differs even within the same second
}
