package memory

import (
	"fmt"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/VitaminP8/picshare/graph/model"
	"github.com/VitaminP8/picshare/internal/apperr"

	"golang.org/x/crypto/bcrypt"
)

type UserMemoryStorage struct {
	mu        sync.Mutex
	users     map[string]*model.User     // username -> user
	emails    map[string]string          // email -> username
	passwords map[string]string          // username -> bcrypt-хэш
	favorites map[string]map[string]bool // username -> множество postID
	nextID    int
	posts     *PostMemoryStorage
}

func (s *UserMemoryStorage) RegisterUser(username, email, password string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Сначала email, потом username — порядок проверок часть контракта
	if _, exists := s.emails[email]; exists {
		return nil, &apperr.ConflictError{Field: "Email", Value: email}
	}
	if _, exists := s.users[username]; exists {
		return nil, &apperr.ConflictError{Field: "Username", Value: username}
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	id := strconv.Itoa(s.nextID)
	s.nextID++

	user := &model.User{
		ID:        id,
		Username:  username,
		Email:     email,
		JoinDate:  time.Now().Format(time.RFC3339),
		Favorites: []*model.Post{},
	}

	s.users[username] = user
	s.emails[email] = username
	s.passwords[username] = string(hashedPassword)
	s.favorites[username] = make(map[string]bool)

	return user, nil
}

func (s *UserMemoryStorage) LoginUser(username, password string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, exists := s.users[username]
	if !exists {
		return nil, apperr.ErrInvalidCredentials
	}

	err := bcrypt.CompareHashAndPassword([]byte(s.passwords[username]), []byte(password))
	if err != nil {
		return nil, apperr.ErrInvalidCredentials
	}

	return user, nil
}

func (s *UserMemoryStorage) GetUserByUsername(username string) (*model.User, error) {
	s.mu.Lock()
	user, exists := s.users[username]
	if !exists {
		s.mu.Unlock()
		return nil, &apperr.NotFoundError{Entity: "user", ID: username}
	}
	postIDs := s.favoriteIDs(username)
	s.mu.Unlock()

	// Раскрытие favorites — без мьютекса, см. комментарий в post.go
	expanded := *user
	expanded.Favorites = s.expandFavorites(postIDs)
	return &expanded, nil
}

func (s *UserMemoryStorage) AddFavorite(username, postID string) ([]*model.Post, error) {
	s.mu.Lock()
	if _, exists := s.users[username]; !exists {
		s.mu.Unlock()
		return nil, &apperr.NotFoundError{Entity: "user", ID: username}
	}
	s.favorites[username][postID] = true // множество: повторное добавление — no-op
	postIDs := s.favoriteIDs(username)
	s.mu.Unlock()

	return s.expandFavorites(postIDs), nil
}

func (s *UserMemoryStorage) RemoveFavorite(username, postID string) ([]*model.Post, error) {
	s.mu.Lock()
	if _, exists := s.users[username]; !exists {
		s.mu.Unlock()
		return nil, &apperr.NotFoundError{Entity: "user", ID: username}
	}
	delete(s.favorites[username], postID)
	postIDs := s.favoriteIDs(username)
	s.mu.Unlock()

	return s.expandFavorites(postIDs), nil
}

// favoriteIDs — снимок ID избранного; вызывается под мьютексом
func (s *UserMemoryStorage) favoriteIDs(username string) []string {
	ids := make([]string, 0, len(s.favorites[username]))
	for id := range s.favorites[username] {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return idNum(ids[i]) < idNum(ids[j]) })
	return ids
}

func (s *UserMemoryStorage) expandFavorites(postIDs []string) []*model.Post {
	posts := make([]*model.Post, 0, len(postIDs))
	for _, id := range postIDs {
		if post := s.posts.lookup(id); post != nil {
			posts = append(posts, post)
		}
	}
	return posts
}

// lookupByID отдает пользователя без раскрытия favorites (для хранилища постов)
func (s *UserMemoryStorage) lookupByID(id string) *model.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, user := range s.users {
		if user.ID == id {
			return user
		}
	}
	return nil
}
