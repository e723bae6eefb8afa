package postgres

import (
	"testing"

	"github.com/VitaminP8/picshare/internal/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserPostgresStorage_RegisterUser(t *testing.T) {
	storage := NewUserPostgresStorage()

	t.Run("Successful user registration", func(t *testing.T) {
		oldDB := setupTestDB(t)
		defer teardownTestDB(oldDB)

		user, err := storage.RegisterUser("alice", "alice@example.com", "password123")
		require.NoError(t, err)
		assert.NotEmpty(t, user.ID)
		assert.Equal(t, "alice", user.Username)
		assert.Equal(t, "alice@example.com", user.Email)
	})

	t.Run("Duplicate email names the email", func(t *testing.T) {
		oldDB := setupTestDB(t)
		defer teardownTestDB(oldDB)

		_, err := storage.RegisterUser("alice", "alice@example.com", "password123")
		require.NoError(t, err)

		_, err = storage.RegisterUser("bob", "alice@example.com", "password123")
		require.Error(t, err)
		assert.True(t, apperr.IsConflict(err))
		assert.Equal(t, "Email - alice@example.com - already taken. Please, choose another.", err.Error())
	})

	t.Run("Duplicate username names the username", func(t *testing.T) {
		oldDB := setupTestDB(t)
		defer teardownTestDB(oldDB)

		_, err := storage.RegisterUser("alice", "alice@example.com", "password123")
		require.NoError(t, err)

		_, err = storage.RegisterUser("alice", "fresh@example.com", "password123")
		require.Error(t, err)
		assert.Equal(t, "Username - alice - already taken. Please, choose another.", err.Error())
	})

	t.Run("Email conflict is checked first", func(t *testing.T) {
		oldDB := setupTestDB(t)
		defer teardownTestDB(oldDB)

		_, err := storage.RegisterUser("alice", "alice@example.com", "password123")
		require.NoError(t, err)

		_, err = storage.RegisterUser("alice", "alice@example.com", "password123")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Email")
	})
}

func TestUserPostgresStorage_LoginUser(t *testing.T) {
	storage := NewUserPostgresStorage()

	t.Run("Successful login", func(t *testing.T) {
		oldDB := setupTestDB(t)
		defer teardownTestDB(oldDB)

		registered, err := storage.RegisterUser("alice", "alice@example.com", "password123")
		require.NoError(t, err)

		user, err := storage.LoginUser("alice", "password123")
		require.NoError(t, err)
		assert.Equal(t, registered.ID, user.ID)
	})

	t.Run("Unknown user and wrong password give the same message", func(t *testing.T) {
		oldDB := setupTestDB(t)
		defer teardownTestDB(oldDB)

		_, err := storage.RegisterUser("alice", "alice@example.com", "password123")
		require.NoError(t, err)

		_, errUnknown := storage.LoginUser("nobody", "password123")
		require.Error(t, errUnknown)

		_, errWrongPass := storage.LoginUser("alice", "wrong")
		require.Error(t, errWrongPass)

		assert.Equal(t, "Incorrect username or password.", errUnknown.Error())
		assert.Equal(t, errUnknown.Error(), errWrongPass.Error())
	})
}

func TestUserPostgresStorage_Favorites(t *testing.T) {
	userStorage := NewUserPostgresStorage()
	postStorage := NewPostPostgresStorage(nil)

	t.Run("Add, repeat and remove favorite", func(t *testing.T) {
		oldDB := setupTestDB(t)
		defer teardownTestDB(oldDB)

		user, err := userStorage.RegisterUser("alice", "alice@example.com", "password123")
		require.NoError(t, err)

		post, err := postStorage.CreatePost("Sunset", "img.png", []string{"nature"}, "a sunset", user.ID)
		require.NoError(t, err)

		favorites, err := userStorage.AddFavorite("alice", post.ID)
		require.NoError(t, err)
		require.Len(t, favorites, 1)
		assert.Equal(t, post.ID, favorites[0].ID)

		// повторный лайк не создает дубликат
		favorites, err = userStorage.AddFavorite("alice", post.ID)
		require.NoError(t, err)
		assert.Len(t, favorites, 1)

		favorites, err = userStorage.RemoveFavorite("alice", post.ID)
		require.NoError(t, err)
		assert.Len(t, favorites, 0)
	})

	t.Run("GetUserByUsername expands favorites", func(t *testing.T) {
		oldDB := setupTestDB(t)
		defer teardownTestDB(oldDB)

		user, err := userStorage.RegisterUser("alice", "alice@example.com", "password123")
		require.NoError(t, err)

		post, err := postStorage.CreatePost("Sunset", "img.png", nil, "a sunset", user.ID)
		require.NoError(t, err)

		_, err = userStorage.AddFavorite("alice", post.ID)
		require.NoError(t, err)

		loaded, err := userStorage.GetUserByUsername("alice")
		require.NoError(t, err)
		require.Len(t, loaded.Favorites, 1)
		assert.Equal(t, "Sunset", loaded.Favorites[0].Title)
	})

	t.Run("Favorite of unknown user fails", func(t *testing.T) {
		oldDB := setupTestDB(t)
		defer teardownTestDB(oldDB)

		_, err := userStorage.AddFavorite("nobody", "1")
		require.Error(t, err)
		assert.True(t, apperr.IsNotFound(err))
	})
}
