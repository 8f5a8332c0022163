package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecretKey = "test-secret-key-that-is-long-enough"

func newTestTokenService(t *testing.T, accessTTL, refreshTTL time.Duration) TokenService {
	t.Helper()
	svc, err := NewTokenService(accessTTL, refreshTTL, "yatagarasu-test", "yatagarasu-api", false, "", "", testSecretKey)
	require.NoError(t, err)
	return svc
}

func TestNewTokenServiceRequiresSecret(t *testing.T) {
	_, err := NewTokenService(time.Minute, time.Hour, "iss", "aud", false, "", "", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "secret key is required")
}

func TestNewTokenServiceRequiresRSAKeys(t *testing.T) {
	_, err := NewTokenService(time.Minute, time.Hour, "iss", "aud", true, "", "", "")
	require.Error(t, err)
}

func TestGenerateAndValidateTokens(t *testing.T) {
	svc := newTestTokenService(t, 15*time.Minute, 24*time.Hour)

	accessToken, refreshToken, err := svc.GenerateTokens(42)
	require.NoError(t, err)
	require.NotEmpty(t, accessToken)
	require.NotEmpty(t, refreshToken)
	assert.NotEqual(t, accessToken, refreshToken)

	accessClaims, err := svc.ValidateToken(accessToken)
	require.NoError(t, err)
	assert.Equal(t, uint(42), accessClaims.SalesRepID)
	assert.Equal(t, "access", accessClaims.TokenType)
	assert.NotEmpty(t, accessClaims.TokenID)
	assert.True(t, accessClaims.ExpiresAt.After(accessClaims.IssuedAt))

	refreshClaims, err := svc.ValidateToken(refreshToken)
	require.NoError(t, err)
	assert.Equal(t, uint(42), refreshClaims.SalesRepID)
	assert.Equal(t, "refresh", refreshClaims.TokenType)
	assert.NotEqual(t, accessClaims.TokenID, refreshClaims.TokenID)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	svc := newTestTokenService(t, 15*time.Minute, 24*time.Hour)

	_, err := svc.ValidateToken("not.a.token")
	assert.ErrorIs(t, err, ErrTokenInvalid)

	_, err = svc.ValidateToken("")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestValidateTokenRejectsWrongKey(t *testing.T) {
	svc := newTestTokenService(t, 15*time.Minute, 24*time.Hour)

	other, err := NewTokenService(15*time.Minute, 24*time.Hour, "yatagarasu-test", "yatagarasu-api", false, "", "", "a-different-secret-key")
	require.NoError(t, err)

	accessToken, _, err := other.GenerateTokens(7)
	require.NoError(t, err)

	_, err = svc.ValidateToken(accessToken)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestValidateTokenExpired(t *testing.T) {
	svc := newTestTokenService(t, -time.Minute, 24*time.Hour)

	accessToken, _, err := svc.GenerateTokens(42)
	require.NoError(t, err)

	_, err = svc.ValidateToken(accessToken)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestRefreshTokenRotation(t *testing.T) {
	svc := newTestTokenService(t, 15*time.Minute, 24*time.Hour)

	_, refreshToken, err := svc.GenerateTokens(42)
	require.NoError(t, err)

	newAccess, newRefresh, err := svc.RefreshToken(refreshToken)
	require.NoError(t, err)
	require.NotEmpty(t, newAccess)
	require.NotEmpty(t, newRefresh)
	assert.NotEqual(t, refreshToken, newRefresh)

	claims, err := svc.ValidateToken(newAccess)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.SalesRepID)
	assert.Equal(t, "access", claims.TokenType)
}

func TestRefreshTokenRejectsAccessToken(t *testing.T) {
	svc := newTestTokenService(t, 15*time.Minute, 24*time.Hour)

	accessToken, _, err := svc.GenerateTokens(42)
	require.NoError(t, err)

	_, _, err = svc.RefreshToken(accessToken)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a refresh token")
}

func TestRevokeToken(t *testing.T) {
	svc := newTestTokenService(t, 15*time.Minute, 24*time.Hour)

	accessToken, refreshToken, err := svc.GenerateTokens(42)
	require.NoError(t, err)

	require.NoError(t, svc.RevokeToken(accessToken))
	assert.True(t, svc.IsTokenRevoked(accessToken))

	_, err = svc.ValidateToken(accessToken)
	assert.ErrorIs(t, err, ErrTokenRevoked)

	// Revoking the access token does not touch the refresh token
	assert.False(t, svc.IsTokenRevoked(refreshToken))
	_, err = svc.ValidateToken(refreshToken)
	assert.NoError(t, err)
}

func TestRevokedRefreshTokenCannotRotate(t *testing.T) {
	svc := newTestTokenService(t, 15*time.Minute, 24*time.Hour)

	_, refreshToken, err := svc.GenerateTokens(42)
	require.NoError(t, err)

	require.NoError(t, svc.RevokeToken(refreshToken))

	_, _, err = svc.RefreshToken(refreshToken)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTokenRevoked)
}

func TestIsTokenRevokedUnparsable(t *testing.T) {
	svc := newTestTokenService(t, 15*time.Minute, 24*time.Hour)
	assert.True(t, svc.IsTokenRevoked("garbage"))
}
