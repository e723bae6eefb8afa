package auth

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// TokenIssuer выпускает подписанные токены сессии.
// Секрет и срок жизни задаются один раз при старте процесса.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// CreateToken выпускает HS256 токен с user_id, username и сроком жизни ttl
func (t *TokenIssuer) CreateToken(userID string, username string) (string, error) {
	idInt, err := strconv.Atoi(userID)
	if err != nil {
		return "", fmt.Errorf("invalid user ID %q: %w", userID, err)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  idInt,
		"username": username,
		"exp":      time.Now().Add(t.ttl).Unix(),
	})

	tokenString, err := token.SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}
