package jwt

import (
	"testing"
	"time"

	"content-admin/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:        "test-secret",
		AccessExpiry:  5 * time.Minute,
		RefreshExpiry: 24 * time.Hour,
	})
}

func TestGeneratePair(t *testing.T) {
	s := newTestService()
	sub := Subject{IdentityID: 7, Kind: "admin", Group: "ADMIN"}

	pair, err := s.GeneratePair(sub)
	require.NoError(t, err)
	assert.NotEqual(t, pair.AccessClaims.TokenID(), pair.RefreshClaims.TokenID())

	access, err := s.ValidateTyped(pair.Access, AccessToken)
	require.NoError(t, err)
	assert.Equal(t, uint(7), access.IdentityID)
	assert.Equal(t, "ADMIN", access.Group)

	refresh, err := s.ValidateTyped(pair.Refresh, RefreshToken)
	require.NoError(t, err)
	assert.Greater(t, refresh.Remaining(), 23*time.Hour)
}

func TestValidateTyped_WrongType(t *testing.T) {
	s := newTestService()
	pair, err := s.GeneratePair(Subject{IdentityID: 1, Kind: "mobile", Group: "USER"})
	require.NoError(t, err)

	_, err = s.ValidateTyped(pair.Access, RefreshToken)
	assert.ErrorIs(t, err, ErrUnexpectedType)
}

func TestValidateToken_Expired(t *testing.T) {
	s := newTestService()
	token, _, err := s.GenerateAccessToken(Subject{IdentityID: 1})
	require.NoError(t, err)

	s.now = func() time.Time { return time.Now().Add(10 * time.Minute) }
	_, err = s.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	token, _, err := newTestService().GenerateAccessToken(Subject{IdentityID: 1})
	require.NoError(t, err)

	other := NewJWTService(config.JWTConfig{Secret: "other", AccessExpiry: time.Minute})
	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}
