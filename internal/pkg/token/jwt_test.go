package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_GenerateAndValidate(t *testing.T) {
	svc := NewService("segredo", time.Hour)

	tok, err := svc.GenerateToken("u-1", "ana", "user")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(tok)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, "ana", claims.Username)
	assert.Equal(t, "user", claims.Role)
	assert.Equal(t, "u-1", claims.Subject)
}

func TestService_ValidateToken_Rejections(t *testing.T) {
	svc := NewService("segredo", time.Hour)

	t.Run("WrongSecret", func(t *testing.T) {
		other := NewService("outro", time.Hour)
		tok, err := other.GenerateToken("u-1", "ana", "admin")
		require.NoError(t, err)

		_, err = svc.ValidateToken(tok)
		assert.Error(t, err)
	})

	t.Run("Expired", func(t *testing.T) {
		past := NewService("segredo", time.Minute)
		past.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
		tok, err := past.GenerateToken("u-1", "ana", "user")
		require.NoError(t, err)

		_, err = svc.ValidateToken(tok)
		assert.ErrorIs(t, err, jwt.ErrTokenExpired)
	})

	t.Run("Garbage", func(t *testing.T) {
		_, err := svc.ValidateToken("not-a-token")
		assert.Error(t, err)
	})
}
