package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenIssuer_CreateToken(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", 24*time.Hour)

	t.Run("Token carries user_id, username and a one day expiry", func(t *testing.T) {
		tokenString, err := issuer.CreateToken("123", "alice")
		require.NoError(t, err)
		require.NotEmpty(t, tokenString)

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			return []byte("test-secret"), nil
		})
		require.NoError(t, err)
		require.True(t, token.Valid)

		claims, ok := token.Claims.(jwt.MapClaims)
		require.True(t, ok)
		assert.Equal(t, float64(123), claims["user_id"])
		assert.Equal(t, "alice", claims["username"])

		exp := int64(claims["exp"].(float64))
		expected := time.Now().Add(24 * time.Hour).Unix()
		assert.InDelta(t, expected, exp, 5)
	})

	t.Run("Token is rejected with another secret", func(t *testing.T) {
		tokenString, err := issuer.CreateToken("123", "alice")
		require.NoError(t, err)

		_, err = jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			return []byte("wrong-secret"), nil
		})
		assert.Error(t, err)
	})

	t.Run("Non-numeric user ID is an error", func(t *testing.T) {
		_, err := issuer.CreateToken("not-a-number", "alice")
		assert.Error(t, err)
	})
}
