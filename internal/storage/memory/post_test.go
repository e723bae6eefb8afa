package memory

import (
	"fmt"
	"sync"
	"testing"

	"github.com/VitaminP8/picshare/internal/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostMemoryStorage_CreatePost(t *testing.T) {
	posts, _ := NewMemoryStorages(nil)

	t.Run("Success post creation", func(t *testing.T) {
		post, err := posts.CreatePost("Sunset", "sunset.png", []string{"nature", "travel"}, "a nice sunset", "1")
		require.NoError(t, err)
		assert.NotEmpty(t, post.ID)
		assert.Equal(t, "Sunset", post.Title)
		assert.Equal(t, "sunset.png", post.ImageURL)
		assert.Equal(t, []string{"nature", "travel"}, post.Categories)
		assert.Equal(t, "1", post.AuthorID)
		assert.Equal(t, 0, post.Likes)
		// createdDate проставляет хранилище
		assert.NotEmpty(t, post.CreatedDate)

		fromStorage, err := posts.GetPostByID(post.ID)
		require.NoError(t, err)
		assert.Equal(t, post.ID, fromStorage.ID)
	})

	t.Run("Nil categories become an empty list", func(t *testing.T) {
		post, err := posts.CreatePost("Plain", "plain.png", nil, "no tags", "1")
		require.NoError(t, err)
		assert.NotNil(t, post.Categories)
		assert.Len(t, post.Categories, 0)
	})
}

func TestPostMemoryStorage_GetPostByID(t *testing.T) {
	posts, _ := NewMemoryStorages(nil)

	post, err := posts.CreatePost("Sunset", "sunset.png", nil, "a nice sunset", "1")
	require.NoError(t, err)

	t.Run("Getting exists post", func(t *testing.T) {
		retrieved, err := posts.GetPostByID(post.ID)
		require.NoError(t, err)
		assert.Equal(t, post.Title, retrieved.Title)
	})

	t.Run("Trying to get not exist post", func(t *testing.T) {
		_, err := posts.GetPostByID("23425532")
		assert.Error(t, err)
		assert.True(t, apperr.IsNotFound(err))
	})
}

func TestPostMemoryStorage_GetAllPosts(t *testing.T) {
	posts, users := NewMemoryStorages(nil)

	author, err := users.RegisterUser("alice", "alice@example.com", "password123")
	require.NoError(t, err)

	for i := 1; i <= 3; i++ {
		_, err := posts.CreatePost(fmt.Sprintf("post %d", i), "img.png", nil, "content", author.ID)
		require.NoError(t, err)
	}

	t.Run("Posts come newest first with createdBy expanded", func(t *testing.T) {
		all, err := posts.GetAllPosts()
		require.NoError(t, err)
		require.Len(t, all, 3)

		assert.Equal(t, "post 3", all[0].Title)
		assert.Equal(t, "post 2", all[1].Title)
		assert.Equal(t, "post 1", all[2].Title)

		for _, post := range all {
			require.NotNil(t, post.CreatedBy)
			assert.Equal(t, "alice", post.CreatedBy.Username)
		}
	})
}

func TestPostMemoryStorage_GetUserPosts(t *testing.T) {
	posts, _ := NewMemoryStorages(nil)

	_, err := posts.CreatePost("mine 1", "img.png", nil, "content", "1")
	require.NoError(t, err)
	_, err = posts.CreatePost("theirs", "img.png", nil, "content", "2")
	require.NoError(t, err)
	_, err = posts.CreatePost("mine 2", "img.png", nil, "content", "1")
	require.NoError(t, err)

	t.Run("Only the author's posts, insertion order", func(t *testing.T) {
		mine, err := posts.GetUserPosts("1")
		require.NoError(t, err)
		require.Len(t, mine, 2)
		assert.Equal(t, "mine 1", mine[0].Title)
		assert.Equal(t, "mine 2", mine[1].Title)
	})

	t.Run("Unknown author gets no posts", func(t *testing.T) {
		none, err := posts.GetUserPosts("999")
		require.NoError(t, err)
		assert.Len(t, none, 0)
	})
}

func TestPostMemoryStorage_SearchPosts(t *testing.T) {
	posts, _ := NewMemoryStorages(nil)

	t.Run("Results are ranked by term frequency then likes", func(t *testing.T) {
		once, err := posts.CreatePost("foo", "img.png", nil, "plain text", "1")
		require.NoError(t, err)
		twice, err := posts.CreatePost("foo", "img.png", nil, "more foo here", "1")
		require.NoError(t, err)
		liked, err := posts.CreatePost("foo again", "img.png", nil, "nothing else", "1")
		require.NoError(t, err)
		_, err = posts.CreatePost("unrelated", "img.png", nil, "bar only", "1")
		require.NoError(t, err)

		// при равной релевантности выигрывают лайки
		_, err = posts.IncrementLikes(liked.ID, 3)
		require.NoError(t, err)

		hits, err := posts.SearchPosts("foo")
		require.NoError(t, err)
		require.Len(t, hits, 3)

		assert.Equal(t, twice.ID, hits[0].ID)
		assert.Equal(t, liked.ID, hits[1].ID)
		assert.Equal(t, once.ID, hits[2].ID)

		for _, hit := range hits {
			require.NotNil(t, hit.Score)
			assert.Greater(t, *hit.Score, 0.0)
		}
		assert.Greater(t, *hits[0].Score, *hits[1].Score)
	})

	t.Run("No more than 5 results", func(t *testing.T) {
		posts, _ := NewMemoryStorages(nil)
		for i := 0; i < 8; i++ {
			_, err := posts.CreatePost("gopher", "img.png", nil, "gopher content", "1")
			require.NoError(t, err)
		}

		hits, err := posts.SearchPosts("gopher")
		require.NoError(t, err)
		assert.Len(t, hits, 5)
	})

	t.Run("No matches is an empty list, not nil", func(t *testing.T) {
		hits, err := posts.SearchPosts("zzznothing")
		require.NoError(t, err)
		assert.NotNil(t, hits)
		assert.Len(t, hits, 0)
	})

	t.Run("Categories are searched too", func(t *testing.T) {
		posts, _ := NewMemoryStorages(nil)
		tagged, err := posts.CreatePost("plain title", "img.png", []string{"mountains"}, "plain", "1")
		require.NoError(t, err)

		hits, err := posts.SearchPosts("mountains")
		require.NoError(t, err)
		require.Len(t, hits, 1)
		assert.Equal(t, tagged.ID, hits[0].ID)
	})
}

func TestPostMemoryStorage_PagePosts(t *testing.T) {
	posts, _ := NewMemoryStorages(nil)

	for i := 1; i <= 5; i++ {
		_, err := posts.CreatePost(fmt.Sprintf("post %d", i), "img.png", nil, "content", "1")
		require.NoError(t, err)
	}

	t.Run("Page 1 of size 2 out of 5 has more", func(t *testing.T) {
		page, hasMore, err := posts.PagePosts(1, 2)
		require.NoError(t, err)
		assert.Len(t, page, 2)
		assert.True(t, hasMore)
		assert.Equal(t, "post 5", page[0].Title)
		assert.Equal(t, "post 4", page[1].Title)
	})

	t.Run("Page 3 of size 2 holds the last post and no more", func(t *testing.T) {
		page, hasMore, err := posts.PagePosts(3, 2)
		require.NoError(t, err)
		assert.Len(t, page, 1)
		assert.False(t, hasMore)
		assert.Equal(t, "post 1", page[0].Title)
	})

	t.Run("Page beyond the end is empty", func(t *testing.T) {
		page, hasMore, err := posts.PagePosts(10, 2)
		require.NoError(t, err)
		assert.Len(t, page, 0)
		assert.False(t, hasMore)
	})

	t.Run("Page number zero does not panic", func(t *testing.T) {
		// pageNum приходит прямо от клиента, Int! не запрещает ноль
		page, _, err := posts.PagePosts(0, 2)
		require.NoError(t, err)
		assert.Len(t, page, 2)
		assert.Equal(t, "post 5", page[0].Title)
	})

	t.Run("Negative page number does not panic", func(t *testing.T) {
		page, _, err := posts.PagePosts(-3, 2)
		require.NoError(t, err)
		assert.Len(t, page, 2)
	})

	t.Run("Negative page size does not panic", func(t *testing.T) {
		page, hasMore, err := posts.PagePosts(1, -2)
		require.NoError(t, err)
		assert.Len(t, page, 0)
		assert.True(t, hasMore) // total > pageSize*pageNum при отрицательном pageSize
	})
}

func TestPostMemoryStorage_AddComment(t *testing.T) {
	posts, users := NewMemoryStorages(nil)

	author, err := users.RegisterUser("alice", "alice@example.com", "password123")
	require.NoError(t, err)

	post, err := posts.CreatePost("Sunset", "img.png", nil, "a sunset", author.ID)
	require.NoError(t, err)

	t.Run("New comment goes to the front with messageUser expanded", func(t *testing.T) {
		first, err := posts.AddComment(post.ID, author.ID, "first!")
		require.NoError(t, err)
		require.NotNil(t, first.MessageUser)
		assert.Equal(t, "alice", first.MessageUser.Username)

		second, err := posts.AddComment(post.ID, author.ID, "second!")
		require.NoError(t, err)

		stored, err := posts.GetPostByID(post.ID)
		require.NoError(t, err)
		require.Len(t, stored.Messages, 2)
		assert.Equal(t, second.ID, stored.Messages[0].ID)
		assert.Equal(t, first.ID, stored.Messages[1].ID)
	})

	t.Run("Comment on missing post is a NotFound error", func(t *testing.T) {
		_, err := posts.AddComment("9999", author.ID, "hello")
		require.Error(t, err)
		assert.True(t, apperr.IsNotFound(err))
	})
}

func TestPostMemoryStorage_ResponsesAreIsolated(t *testing.T) {
	posts, users := NewMemoryStorages(nil)

	author, err := users.RegisterUser("alice", "alice@example.com", "password123")
	require.NoError(t, err)

	created, err := posts.CreatePost("Sunset", "img.png", nil, "a sunset", author.ID)
	require.NoError(t, err)

	t.Run("Expansion in one response does not leak into another", func(t *testing.T) {
		mine, err := posts.GetUserPosts(author.ID)
		require.NoError(t, err)
		require.Len(t, mine, 1)
		assert.Nil(t, mine[0].CreatedBy)

		// GetAllPosts раскрывает createdBy, но на собственной копии
		all, err := posts.GetAllPosts()
		require.NoError(t, err)
		require.NotNil(t, all[0].CreatedBy)

		assert.NotSame(t, mine[0], all[0])
		assert.Nil(t, mine[0].CreatedBy)
	})

	t.Run("Comment author expansion stays in its own response", func(t *testing.T) {
		_, err := posts.AddComment(created.ID, author.ID, "first!")
		require.NoError(t, err)

		first, err := posts.GetPostByID(created.ID)
		require.NoError(t, err)
		second, err := posts.GetPostByID(created.ID)
		require.NoError(t, err)

		require.Len(t, first.Messages, 1)
		assert.NotSame(t, first.Messages[0], second.Messages[0])
	})

	t.Run("Concurrent readers and writers", func(t *testing.T) {
		// go test -race ловит здесь гонку, если ответы не копируются
		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func(n int) {
				defer wg.Done()
				switch n % 4 {
				case 0:
					_, _ = posts.GetAllPosts()
				case 1:
					_, _ = posts.GetUserPosts(author.ID)
				case 2:
					_, _ = posts.GetPostByID(created.ID)
				case 3:
					_, _ = posts.AddComment(created.ID, author.ID, "hi")
				}
			}(i)
		}
		wg.Wait()
	})
}

func TestPostMemoryStorage_IncrementLikes(t *testing.T) {
	posts, _ := NewMemoryStorages(nil)

	post, err := posts.CreatePost("Sunset", "img.png", nil, "a sunset", "1")
	require.NoError(t, err)

	t.Run("Likes go up by delta", func(t *testing.T) {
		likes, err := posts.IncrementLikes(post.ID, 1)
		require.NoError(t, err)
		assert.Equal(t, 1, likes)

		likes, err = posts.IncrementLikes(post.ID, 1)
		require.NoError(t, err)
		assert.Equal(t, 2, likes)
	})

	t.Run("No floor below zero", func(t *testing.T) {
		fresh, err := posts.CreatePost("Zero", "img.png", nil, "content", "1")
		require.NoError(t, err)

		likes, err := posts.IncrementLikes(fresh.ID, -1)
		require.NoError(t, err)
		assert.Equal(t, -1, likes)
	})

	t.Run("Missing post is a NotFound error", func(t *testing.T) {
		_, err := posts.IncrementLikes("9999", 1)
		require.Error(t, err)
		assert.True(t, apperr.IsNotFound(err))
	})
}
