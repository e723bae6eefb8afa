package mocks

import (
	"sort"
	"strconv"
	"sync"

	"github.com/VitaminP8/picshare/graph/model"
	"github.com/VitaminP8/picshare/internal/apperr"
)

// MockUserStorage реализует интерфейс user.UserStorage для тестирования.
// Пароли хранятся открытым текстом, ошибки — те же apperr, что и у настоящих
// хранилищ, чтобы тесты резолверов проверяли точный текст сообщений.
type MockUserStorage struct {
	mu        sync.Mutex
	users     map[string]*model.User     // username -> user
	emails    map[string]string          // email -> username
	passwords map[string]string          // username -> password
	favorites map[string]map[string]bool // username -> множество postID
	posts     *MockPostStorage
	nextID    int
}

// NewMockUserStorage создает мок хранилища пользователей; posts нужен
// для раскрытия favorites и может быть nil
func NewMockUserStorage(posts *MockPostStorage) *MockUserStorage {
	return &MockUserStorage{
		users:     make(map[string]*model.User),
		emails:    make(map[string]string),
		passwords: make(map[string]string),
		favorites: make(map[string]map[string]bool),
		posts:     posts,
		nextID:    1,
	}
}

func (m *MockUserStorage) RegisterUser(username, email, password string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.emails[email]; exists {
		return nil, &apperr.ConflictError{Field: "Email", Value: email}
	}
	if _, exists := m.users[username]; exists {
		return nil, &apperr.ConflictError{Field: "Username", Value: username}
	}

	id := m.nextID
	m.nextID++

	user := &model.User{
		ID:        strconv.Itoa(id),
		Username:  username,
		Email:     email,
		Favorites: []*model.Post{},
	}

	m.users[username] = user
	m.emails[email] = username
	m.passwords[username] = password
	m.favorites[username] = make(map[string]bool)

	return user, nil
}

func (m *MockUserStorage) LoginUser(username, password string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, exists := m.users[username]
	if !exists {
		return nil, apperr.ErrInvalidCredentials
	}

	if m.passwords[username] != password {
		return nil, apperr.ErrInvalidCredentials
	}

	return user, nil
}

func (m *MockUserStorage) GetUserByUsername(username string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, exists := m.users[username]
	if !exists {
		return nil, &apperr.NotFoundError{Entity: "user", ID: username}
	}

	expanded := *user
	expanded.Favorites = m.expandFavorites(username)
	return &expanded, nil
}

func (m *MockUserStorage) AddFavorite(username, postID string) ([]*model.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.users[username]; !exists {
		return nil, &apperr.NotFoundError{Entity: "user", ID: username}
	}

	m.favorites[username][postID] = true
	return m.expandFavorites(username), nil
}

func (m *MockUserStorage) RemoveFavorite(username, postID string) ([]*model.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.users[username]; !exists {
		return nil, &apperr.NotFoundError{Entity: "user", ID: username}
	}

	delete(m.favorites[username], postID)
	return m.expandFavorites(username), nil
}

func (m *MockUserStorage) expandFavorites(username string) []*model.Post {
	ids := make([]string, 0, len(m.favorites[username]))
	for id := range m.favorites[username] {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	posts := make([]*model.Post, 0, len(ids))
	for _, id := range ids {
		if m.posts != nil {
			if post := m.posts.lookup(id); post != nil {
				posts = append(posts, post)
				continue
			}
		}
		posts = append(posts, &model.Post{ID: id})
	}
	return posts
}
