package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConflictError(t *testing.T) {
	t.Run("Message names the taken value", func(t *testing.T) {
		err := &ConflictError{Field: "Email", Value: "alice@example.com"}
		assert.Equal(t, "Email - alice@example.com - already taken. Please, choose another.", err.Error())
	})

	t.Run("IsConflict sees through wrapping", func(t *testing.T) {
		err := fmt.Errorf("register: %w", &ConflictError{Field: "Username", Value: "alice"})
		assert.True(t, IsConflict(err))
		assert.False(t, IsNotFound(err))
	})
}

func TestNotFoundError(t *testing.T) {
	err := &NotFoundError{Entity: "post", ID: "42"}
	assert.Equal(t, "post with ID 42 not found", err.Error())
	assert.True(t, IsNotFound(err))
	assert.False(t, IsConflict(err))
}

func TestErrInvalidCredentials(t *testing.T) {
	// текст одинаков для неизвестного пользователя и неверного пароля
	assert.Equal(t, "Incorrect username or password.", ErrInvalidCredentials.Error())
	assert.True(t, errors.Is(fmt.Errorf("login: %w", ErrInvalidCredentials), ErrInvalidCredentials))
}
