package memory

import (
	"testing"

	"github.com/VitaminP8/picshare/internal/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserMemoryStorage_RegisterUser(t *testing.T) {
	_, users := NewMemoryStorages(nil)

	t.Run("Successful registration", func(t *testing.T) {
		user, err := users.RegisterUser("alice", "alice@example.com", "password123")
		require.NoError(t, err)
		assert.NotEmpty(t, user.ID)
		assert.Equal(t, "alice", user.Username)
		assert.Equal(t, "alice@example.com", user.Email)
		assert.NotNil(t, user.Favorites)
	})

	t.Run("Duplicate email", func(t *testing.T) {
		_, err := users.RegisterUser("bob", "alice@example.com", "password123")
		require.Error(t, err)
		assert.True(t, apperr.IsConflict(err))
		assert.Equal(t, "Email - alice@example.com - already taken. Please, choose another.", err.Error())
	})

	t.Run("Duplicate username", func(t *testing.T) {
		_, err := users.RegisterUser("alice", "fresh@example.com", "password123")
		require.Error(t, err)
		assert.True(t, apperr.IsConflict(err))
		assert.Equal(t, "Username - alice - already taken. Please, choose another.", err.Error())
	})

	t.Run("Email check comes before username check", func(t *testing.T) {
		_, err := users.RegisterUser("alice", "alice@example.com", "password123")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Email")
	})
}

func TestUserMemoryStorage_LoginUser(t *testing.T) {
	_, users := NewMemoryStorages(nil)

	_, err := users.RegisterUser("alice", "alice@example.com", "password123")
	require.NoError(t, err)

	t.Run("Successful login", func(t *testing.T) {
		user, err := users.LoginUser("alice", "password123")
		require.NoError(t, err)
		assert.Equal(t, "alice", user.Username)
	})

	t.Run("Password is stored hashed, not plain", func(t *testing.T) {
		users.mu.Lock()
		stored := users.passwords["alice"]
		users.mu.Unlock()
		assert.NotEqual(t, "password123", stored)
	})

	t.Run("Unknown user and wrong password are indistinguishable", func(t *testing.T) {
		_, errUnknown := users.LoginUser("nobody", "password123")
		require.Error(t, errUnknown)

		_, errWrongPass := users.LoginUser("alice", "wrong")
		require.Error(t, errWrongPass)

		assert.Equal(t, apperr.ErrInvalidCredentials.Error(), errUnknown.Error())
		assert.Equal(t, errUnknown.Error(), errWrongPass.Error())
	})
}

func TestUserMemoryStorage_Favorites(t *testing.T) {
	posts, users := NewMemoryStorages(nil)

	author, err := users.RegisterUser("alice", "alice@example.com", "password123")
	require.NoError(t, err)

	post, err := posts.CreatePost("Sunset", "img.png", nil, "a sunset", author.ID)
	require.NoError(t, err)

	t.Run("AddFavorite is a set operation", func(t *testing.T) {
		favorites, err := users.AddFavorite("alice", post.ID)
		require.NoError(t, err)
		require.Len(t, favorites, 1)
		assert.Equal(t, post.ID, favorites[0].ID)
		assert.Equal(t, "Sunset", favorites[0].Title)

		// повторный лайк не создает дубликат
		favorites, err = users.AddFavorite("alice", post.ID)
		require.NoError(t, err)
		assert.Len(t, favorites, 1)
	})

	t.Run("GetUserByUsername expands favorites to full posts", func(t *testing.T) {
		user, err := users.GetUserByUsername("alice")
		require.NoError(t, err)
		require.Len(t, user.Favorites, 1)
		assert.Equal(t, "Sunset", user.Favorites[0].Title)
	})

	t.Run("RemoveFavorite empties the set", func(t *testing.T) {
		favorites, err := users.RemoveFavorite("alice", post.ID)
		require.NoError(t, err)
		assert.Len(t, favorites, 0)

		// удаление отсутствующего — no-op
		favorites, err = users.RemoveFavorite("alice", post.ID)
		require.NoError(t, err)
		assert.Len(t, favorites, 0)
	})

	t.Run("Unknown user is a NotFound error", func(t *testing.T) {
		_, err := users.AddFavorite("nobody", post.ID)
		require.Error(t, err)
		assert.True(t, apperr.IsNotFound(err))
	})
}

func TestUserMemoryStorage_GetUserByUsername(t *testing.T) {
	_, users := NewMemoryStorages(nil)

	t.Run("Unknown username", func(t *testing.T) {
		_, err := users.GetUserByUsername("nobody")
		require.Error(t, err)
		assert.True(t, apperr.IsNotFound(err))
	})
}
