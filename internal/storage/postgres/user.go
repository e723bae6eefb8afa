package postgres

import (
	"fmt"
	"time"

	"github.com/VitaminP8/picshare/graph/model"
	"github.com/VitaminP8/picshare/internal/apperr"
	"github.com/VitaminP8/picshare/models"

	"golang.org/x/crypto/bcrypt"
)

type UserPostgresStorage struct{}

func NewUserPostgresStorage() *UserPostgresStorage {
	return &UserPostgresStorage{}
}

func (s *UserPostgresStorage) RegisterUser(username, email, password string) (*model.User, error) {
	// Сначала email, потом username — порядок проверок часть контракта
	var existing models.User
	if err := DB.Where("email = ?", email).First(&existing).Error; err == nil {
		return nil, &apperr.ConflictError{Field: "Email", Value: existing.Email}
	}
	if err := DB.Where("username = ?", username).First(&existing).Error; err == nil {
		return nil, &apperr.ConflictError{Field: "Username", Value: existing.Username}
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username: username,
		Email:    email,
		Password: string(hashedPassword),
	}

	if err := DB.Create(user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return toGQLUser(user, []*model.Post{}), nil
}

func (s *UserPostgresStorage) LoginUser(username, password string) (*model.User, error) {
	var user models.User
	err := DB.Where("username = ?", username).First(&user).Error
	if err != nil {
		// тот же текст, что и при неверном пароле
		return nil, apperr.ErrInvalidCredentials
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password))
	if err != nil {
		return nil, apperr.ErrInvalidCredentials
	}

	return toGQLUser(&user, nil), nil
}

func (s *UserPostgresStorage) GetUserByUsername(username string) (*model.User, error) {
	var user models.User
	err := DB.Preload("Favorites").Where("username = ?", username).First(&user).Error
	if err != nil {
		return nil, &apperr.NotFoundError{Entity: "user", ID: username}
	}

	return toGQLUser(&user, favoritesOf(&user)), nil
}

func (s *UserPostgresStorage) AddFavorite(username, postID string) ([]*model.Post, error) {
	var user models.User
	err := DB.Preload("Favorites").Where("username = ?", username).First(&user).Error
	if err != nil {
		return nil, &apperr.NotFoundError{Entity: "user", ID: username}
	}

	var post models.Post
	err = DB.First(&post, postID).Error
	if err != nil {
		return nil, &apperr.NotFoundError{Entity: "post", ID: postID}
	}

	// Семантика множества: повторный лайк не создает дубликат
	already := false
	for _, fav := range user.Favorites {
		if fav.ID == post.ID {
			already = true
			break
		}
	}
	if !already {
		err = DB.Model(&user).Association("Favorites").Append(&post).Error
		if err != nil {
			return nil, fmt.Errorf("could not add favorite: %w", err)
		}
		user.Favorites = append(user.Favorites, post)
	}

	return favoritesOf(&user), nil
}

func (s *UserPostgresStorage) RemoveFavorite(username, postID string) ([]*model.Post, error) {
	var user models.User
	err := DB.Where("username = ?", username).First(&user).Error
	if err != nil {
		return nil, &apperr.NotFoundError{Entity: "user", ID: username}
	}

	var post models.Post
	err = DB.First(&post, postID).Error
	if err != nil {
		return nil, &apperr.NotFoundError{Entity: "post", ID: postID}
	}

	err = DB.Model(&user).Association("Favorites").Delete(&post).Error
	if err != nil {
		return nil, fmt.Errorf("could not remove favorite: %w", err)
	}

	err = DB.Preload("Favorites").Where("username = ?", username).First(&user).Error
	if err != nil {
		return nil, fmt.Errorf("could not reload favorites: %w", err)
	}

	return favoritesOf(&user), nil
}

func favoritesOf(user *models.User) []*model.Post {
	favorites := make([]*model.Post, 0, len(user.Favorites))
	for i := range user.Favorites {
		favorites = append(favorites, toGQLPost(&user.Favorites[i]))
	}
	return favorites
}

func toGQLUser(user *models.User, favorites []*model.Post) *model.User {
	return &model.User{
		ID:        fmt.Sprint(user.ID),
		Username:  user.Username,
		Email:     user.Email,
		JoinDate:  user.CreatedAt.Format(time.RFC3339),
		Favorites: favorites,
	}
}
