// Package apperr содержит ошибки, текст которых является частью контракта API.
package apperr

import (
	"errors"
	"fmt"
)

// ErrInvalidCredentials — единый текст и для неизвестного пользователя, и для
// неверного пароля, чтобы не раскрывать, что именно не совпало.
var ErrInvalidCredentials = errors.New("Incorrect username or password.")

// ConflictError — попытка регистрации с занятым email или username.
// Field — "Email" или "Username", Value попадает в сообщение клиенту.
type ConflictError struct {
	Field string
	Value string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s - %s - already taken. Please, choose another.", e.Field, e.Value)
}

// NotFoundError — сущность, на которую ссылается операция, не существует.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with ID %s not found", e.Entity, e.ID)
}

func IsConflict(err error) bool {
	var conflict *ConflictError
	return errors.As(err, &conflict)
}

func IsNotFound(err error) bool {
	var notFound *NotFoundError
	return errors.As(err, &notFound)
}
