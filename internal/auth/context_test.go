package auth

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithIdentityAndContextAccessors(t *testing.T) {
	t.Run("Store and retrieve identity from context", func(t *testing.T) {
		ctx := WithIdentity(context.Background(), uint(123), "alice")

		retrievedID, err := GetUserIDFromContext(ctx)
		assert.NoError(t, err)
		assert.Equal(t, uint(123), retrievedID)

		username, err := GetUsernameFromContext(ctx)
		assert.NoError(t, err)
		assert.Equal(t, "alice", username)
	})

	t.Run("Error when identity not in context", func(t *testing.T) {
		ctx := context.Background()

		_, err := GetUserIDFromContext(ctx)
		assert.Error(t, err)

		_, err = GetUsernameFromContext(ctx)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "not found in context")
	})

	t.Run("Error when context value has the wrong type", func(t *testing.T) {
		// Создаем контекст с неправильным типом значения
		ctx := context.WithValue(context.Background(), usernameKey, 42)

		_, err := GetUsernameFromContext(ctx)
		assert.Error(t, err)
	})
}

func TestExtractTokenFromHeader(t *testing.T) {
	t.Run("Valid Bearer token", func(t *testing.T) {
		assert.Equal(t, "token123", extractTokenFromHeader("Bearer token123"))
	})

	t.Run("Invalid format - no Bearer prefix", func(t *testing.T) {
		assert.Equal(t, "", extractTokenFromHeader("NotBearer token123"))
	})

	t.Run("Invalid format - no space", func(t *testing.T) {
		assert.Equal(t, "", extractTokenFromHeader("Bearertoken123"))
	})

	t.Run("Empty header", func(t *testing.T) {
		assert.Equal(t, "", extractTokenFromHeader(""))
	})
}

func TestAuthMiddleware(t *testing.T) {
	const secret = "test-secret"

	// Тестовый обработчик отвечает личностью из контекста, если она есть
	testHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		username, err := GetUsernameFromContext(r.Context())
		if err == nil {
			fmt.Fprintf(w, "user: %s", username)
		} else {
			fmt.Fprint(w, "anonymous")
		}
	})

	t.Run("Request without token passes through as anonymous", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/query", nil)
		rec := httptest.NewRecorder()

		AuthMiddleware(secret, testHandler).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "anonymous", rec.Body.String())
	})

	t.Run("Request with valid token carries the identity", func(t *testing.T) {
		issuer := NewTokenIssuer(secret, 24*time.Hour)
		token, err := issuer.CreateToken("123", "alice")
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodPost, "/query", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()

		AuthMiddleware(secret, testHandler).ServeHTTP(rec, req)

		assert.Equal(t, "user: alice", rec.Body.String())
	})

	t.Run("Request with token signed by another secret stays anonymous", func(t *testing.T) {
		issuer := NewTokenIssuer("other-secret", 24*time.Hour)
		token, err := issuer.CreateToken("123", "alice")
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodPost, "/query", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()

		AuthMiddleware(secret, testHandler).ServeHTTP(rec, req)

		assert.Equal(t, "anonymous", rec.Body.String())
	})

	t.Run("Request with expired token stays anonymous", func(t *testing.T) {
		expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"user_id":  123,
			"username": "alice",
			"exp":      time.Now().Add(-time.Hour).Unix(),
		})
		tokenString, err := expired.SignedString([]byte(secret))
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodPost, "/query", nil)
		req.Header.Set("Authorization", "Bearer "+tokenString)
		rec := httptest.NewRecorder()

		AuthMiddleware(secret, testHandler).ServeHTTP(rec, req)

		assert.Equal(t, "anonymous", rec.Body.String())
	})
}
