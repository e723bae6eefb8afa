package user

import (
	"github.com/VitaminP8/picshare/graph/model"
)

type UserStorage interface {
	// RegisterUser создает пользователя, возвращает apperr.ConflictError если
	// email или username уже заняты (email проверяется первым)
	RegisterUser(username, email, password string) (*model.User, error)
	// LoginUser сверяет пароль, возвращает apperr.ErrInvalidCredentials
	// и для неизвестного пользователя, и для неверного пароля
	LoginUser(username, password string) (*model.User, error)
	// GetUserByUsername возвращает пользователя с раскрытым списком favorites
	GetUserByUsername(username string) (*model.User, error)
	// AddFavorite добавляет пост в избранное (повторное добавление — no-op)
	// и возвращает обновленный раскрытый список
	AddFavorite(username, postID string) ([]*model.Post, error)
	RemoveFavorite(username, postID string) ([]*model.Post, error)
}
