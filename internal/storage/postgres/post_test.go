package postgres

import (
	"fmt"
	"testing"

	"github.com/VitaminP8/picshare/internal/apperr"
	"github.com/VitaminP8/picshare/internal/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostPostgresStorage_CreatePost(t *testing.T) {
	storage := NewPostPostgresStorage(nil)

	t.Run("Successful post creation", func(t *testing.T) {
		oldDB := setupTestDB(t)
		defer teardownTestDB(oldDB)

		post, err := storage.CreatePost("Sunset", "sunset.png", []string{"nature", "travel"}, "a nice sunset", "1")
		require.NoError(t, err)
		assert.NotEmpty(t, post.ID)
		assert.Equal(t, "Sunset", post.Title)
		assert.Equal(t, "sunset.png", post.ImageURL)
		assert.Equal(t, []string{"nature", "travel"}, post.Categories)
		assert.Equal(t, "1", post.AuthorID)
		assert.Equal(t, 0, post.Likes)
		assert.NotEmpty(t, post.CreatedDate)
	})

	t.Run("Invalid creator ID", func(t *testing.T) {
		oldDB := setupTestDB(t)
		defer teardownTestDB(oldDB)

		_, err := storage.CreatePost("Sunset", "img.png", nil, "content", "not-a-number")
		assert.Error(t, err)
	})
}

func TestPostPostgresStorage_GetPostByID(t *testing.T) {
	userStorage := NewUserPostgresStorage()
	storage := NewPostPostgresStorage(nil)

	t.Run("Post with comments newest first and authors expanded", func(t *testing.T) {
		oldDB := setupTestDB(t)
		defer teardownTestDB(oldDB)

		user, err := userStorage.RegisterUser("alice", "alice@example.com", "password123")
		require.NoError(t, err)

		post, err := storage.CreatePost("Sunset", "img.png", nil, "a sunset", user.ID)
		require.NoError(t, err)

		first, err := storage.AddComment(post.ID, user.ID, "first!")
		require.NoError(t, err)
		second, err := storage.AddComment(post.ID, user.ID, "second!")
		require.NoError(t, err)

		loaded, err := storage.GetPostByID(post.ID)
		require.NoError(t, err)
		require.Len(t, loaded.Messages, 2)
		// новый комментарий стоит первым
		assert.Equal(t, second.ID, loaded.Messages[0].ID)
		assert.Equal(t, first.ID, loaded.Messages[1].ID)

		for _, message := range loaded.Messages {
			require.NotNil(t, message.MessageUser)
			assert.Equal(t, "alice", message.MessageUser.Username)
		}
	})

	t.Run("Missing post is a NotFound error", func(t *testing.T) {
		oldDB := setupTestDB(t)
		defer teardownTestDB(oldDB)

		_, err := storage.GetPostByID("9999")
		require.Error(t, err)
		assert.True(t, apperr.IsNotFound(err))
	})
}

func TestPostPostgresStorage_GetAllPosts(t *testing.T) {
	userStorage := NewUserPostgresStorage()
	storage := NewPostPostgresStorage(nil)

	t.Run("Newest first with createdBy expanded", func(t *testing.T) {
		oldDB := setupTestDB(t)
		defer teardownTestDB(oldDB)

		user, err := userStorage.RegisterUser("alice", "alice@example.com", "password123")
		require.NoError(t, err)

		for i := 1; i <= 3; i++ {
			_, err := storage.CreatePost(fmt.Sprintf("post %d", i), "img.png", nil, "content", user.ID)
			require.NoError(t, err)
		}

		posts, err := storage.GetAllPosts()
		require.NoError(t, err)
		require.Len(t, posts, 3)

		assert.Equal(t, "post 3", posts[0].Title)
		assert.Equal(t, "post 1", posts[2].Title)

		for _, post := range posts {
			require.NotNil(t, post.CreatedBy)
			assert.Equal(t, "alice", post.CreatedBy.Username)
		}
	})
}

func TestPostPostgresStorage_GetUserPosts(t *testing.T) {
	storage := NewPostPostgresStorage(nil)

	oldDB := setupTestDB(t)
	defer teardownTestDB(oldDB)

	_, err := storage.CreatePost("mine", "img.png", nil, "content", "1")
	require.NoError(t, err)
	_, err = storage.CreatePost("theirs", "img.png", nil, "content", "2")
	require.NoError(t, err)

	posts, err := storage.GetUserPosts("1")
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "mine", posts[0].Title)
}

func TestPostPostgresStorage_PagePosts(t *testing.T) {
	storage := NewPostPostgresStorage(nil)

	oldDB := setupTestDB(t)
	defer teardownTestDB(oldDB)

	for i := 1; i <= 5; i++ {
		_, err := storage.CreatePost(fmt.Sprintf("post %d", i), "img.png", nil, "content", "1")
		require.NoError(t, err)
	}

	t.Run("First page of 2 from 5 has more", func(t *testing.T) {
		page, hasMore, err := storage.PagePosts(1, 2)
		require.NoError(t, err)
		assert.Len(t, page, 2)
		assert.True(t, hasMore)
		assert.Equal(t, "post 5", page[0].Title)
	})

	t.Run("Third page holds the rest and no more", func(t *testing.T) {
		page, hasMore, err := storage.PagePosts(3, 2)
		require.NoError(t, err)
		assert.Len(t, page, 1)
		assert.False(t, hasMore)
		assert.Equal(t, "post 1", page[0].Title)
	})

	t.Run("Page number zero does not reach OFFSET", func(t *testing.T) {
		page, _, err := storage.PagePosts(0, 2)
		require.NoError(t, err)
		assert.Len(t, page, 2)
		assert.Equal(t, "post 5", page[0].Title)
	})
}

func TestPostPostgresStorage_AddComment(t *testing.T) {
	storage := NewPostPostgresStorage(nil)

	t.Run("Missing post is a NotFound error", func(t *testing.T) {
		oldDB := setupTestDB(t)
		defer teardownTestDB(oldDB)

		_, err := storage.AddComment("9999", "1", "hello")
		require.Error(t, err)
		assert.True(t, apperr.IsNotFound(err))
	})

	t.Run("Comment is published to the subscription manager", func(t *testing.T) {
		oldDB := setupTestDB(t)
		defer teardownTestDB(oldDB)

		manager := mocks.NewMockSubscriptionManager()
		publishing := NewPostPostgresStorage(manager)

		post, err := publishing.CreatePost("Sunset", "img.png", nil, "a sunset", "1")
		require.NoError(t, err)

		comment, err := publishing.AddComment(post.ID, "1", "hello")
		require.NoError(t, err)

		require.Len(t, manager.Published[post.ID], 1)
		assert.Equal(t, comment.ID, manager.Published[post.ID][0].ID)
	})
}

func TestPostPostgresStorage_IncrementLikes(t *testing.T) {
	storage := NewPostPostgresStorage(nil)

	oldDB := setupTestDB(t)
	defer teardownTestDB(oldDB)

	post, err := storage.CreatePost("Sunset", "img.png", nil, "a sunset", "1")
	require.NoError(t, err)

	t.Run("Increment and decrement without floor", func(t *testing.T) {
		likes, err := storage.IncrementLikes(post.ID, 1)
		require.NoError(t, err)
		assert.Equal(t, 1, likes)

		likes, err = storage.IncrementLikes(post.ID, -1)
		require.NoError(t, err)
		assert.Equal(t, 0, likes)

		likes, err = storage.IncrementLikes(post.ID, -1)
		require.NoError(t, err)
		assert.Equal(t, -1, likes)
	})

	t.Run("Missing post is a NotFound error", func(t *testing.T) {
		_, err := storage.IncrementLikes("9999", 1)
		require.Error(t, err)
		assert.True(t, apperr.IsNotFound(err))
	})
}

// Примечание: тест SearchPosts не включен — ts_rank и plainto_tsquery требуют
// настоящую PostgreSQL базу данных, sqlite в тестах их не поддерживает.
// Логика ранжирования покрыта тестами in-memory хранилища.
