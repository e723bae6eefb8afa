package graph

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/VitaminP8/picshare/internal/auth"
	"github.com/VitaminP8/picshare/internal/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestResolver() (*Resolver, *mocks.MockPostStorage, *mocks.MockUserStorage, *mocks.MockSubscriptionManager) {
	manager := mocks.NewMockSubscriptionManager()
	postStore := mocks.NewMockPostStorage(manager)
	userStore := mocks.NewMockUserStorage(postStore)

	resolver := &Resolver{
		PostStore:           postStore,
		UserStore:           userStore,
		Tokens:              auth.NewTokenIssuer("test-secret", 24*time.Hour),
		SubscriptionManager: manager,
	}

	return resolver, postStore, userStore, manager
}

func TestMutationResolver_RegisterUser(t *testing.T) {
	resolver, _, _, _ := newTestResolver()
	ctx := context.Background()

	t.Run("Successful registration returns token and new user id", func(t *testing.T) {
		token, err := resolver.Mutation().RegisterUser(ctx, "alice", "alice@example.com", "password123")
		require.NoError(t, err)
		assert.NotEmpty(t, token.Token)
		assert.Equal(t, "1", token.UserID)
	})

	t.Run("Duplicate email names the taken email", func(t *testing.T) {
		_, err := resolver.Mutation().RegisterUser(ctx, "bob", "alice@example.com", "password123")
		require.Error(t, err)
		assert.Equal(t, "Email - alice@example.com - already taken. Please, choose another.", err.Error())
	})

	t.Run("Duplicate username names the taken username", func(t *testing.T) {
		_, err := resolver.Mutation().RegisterUser(ctx, "alice", "other@example.com", "password123")
		require.Error(t, err)
		assert.Equal(t, "Username - alice - already taken. Please, choose another.", err.Error())
	})

	t.Run("Email conflict wins when both are taken", func(t *testing.T) {
		_, err := resolver.Mutation().RegisterUser(ctx, "alice", "alice@example.com", "password123")
		require.Error(t, err)
		assert.Equal(t, "Email - alice@example.com - already taken. Please, choose another.", err.Error())
	})
}

func TestMutationResolver_LoginUser(t *testing.T) {
	resolver, _, _, _ := newTestResolver()
	ctx := context.Background()

	_, err := resolver.Mutation().RegisterUser(ctx, "alice", "alice@example.com", "password123")
	require.NoError(t, err)

	t.Run("Successful login", func(t *testing.T) {
		token, err := resolver.Mutation().LoginUser(ctx, "alice", "password123")
		require.NoError(t, err)
		assert.NotEmpty(t, token.Token)
		assert.Equal(t, "1", token.UserID)
	})

	t.Run("Unknown user and wrong password give identical messages", func(t *testing.T) {
		_, errUnknown := resolver.Mutation().LoginUser(ctx, "nobody", "password123")
		require.Error(t, errUnknown)

		_, errWrongPass := resolver.Mutation().LoginUser(ctx, "alice", "wrong")
		require.Error(t, errWrongPass)

		assert.Equal(t, "Incorrect username or password.", errUnknown.Error())
		assert.Equal(t, errUnknown.Error(), errWrongPass.Error())
	})
}

func TestQueryResolver_GetCurrentUser(t *testing.T) {
	resolver, _, _, _ := newTestResolver()

	_, err := resolver.Mutation().RegisterUser(context.Background(), "alice", "alice@example.com", "password123")
	require.NoError(t, err)

	t.Run("Anonymous context returns nil without error", func(t *testing.T) {
		user, err := resolver.Query().GetCurrentUser(context.Background())
		require.NoError(t, err)
		assert.Nil(t, user)
	})

	t.Run("Authenticated context returns the user", func(t *testing.T) {
		ctx := auth.WithIdentity(context.Background(), 1, "alice")

		user, err := resolver.Query().GetCurrentUser(ctx)
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, "alice", user.Username)
		assert.NotNil(t, user.Favorites)
	})

	t.Run("Valid token for a vanished user returns nil without error", func(t *testing.T) {
		// токен пережил пользователя — для клиента это null, не ошибка
		ctx := auth.WithIdentity(context.Background(), 99, "ghost")

		user, err := resolver.Query().GetCurrentUser(ctx)
		require.NoError(t, err)
		assert.Nil(t, user)
	})
}

func TestQueryResolver_SearchPosts(t *testing.T) {
	resolver, postStore, _, _ := newTestResolver()
	ctx := context.Background()

	for i := 0; i < 7; i++ {
		_, err := postStore.CreatePost(fmt.Sprintf("foo post %d", i), "img.png", []string{"travel"}, "about foo", "1")
		require.NoError(t, err)
	}

	t.Run("Empty term is an explicit non-result, not an empty list", func(t *testing.T) {
		empty := ""
		posts, err := resolver.Query().SearchPosts(ctx, &empty)
		require.NoError(t, err)
		assert.Nil(t, posts)

		posts, err = resolver.Query().SearchPosts(ctx, nil)
		require.NoError(t, err)
		assert.Nil(t, posts)
	})

	t.Run("Matching term is capped at 5 results with scores", func(t *testing.T) {
		term := "foo"
		posts, err := resolver.Query().SearchPosts(ctx, &term)
		require.NoError(t, err)
		require.NotNil(t, posts)
		assert.Len(t, posts, 5)
		for _, post := range posts {
			assert.NotNil(t, post.Score)
		}
	})

	t.Run("Term without matches returns an empty list, not nil", func(t *testing.T) {
		term := "zzznothing"
		posts, err := resolver.Query().SearchPosts(ctx, &term)
		require.NoError(t, err)
		assert.NotNil(t, posts)
		assert.Len(t, posts, 0)
	})
}

func TestQueryResolver_InfiniteScrollPosts(t *testing.T) {
	resolver, postStore, _, _ := newTestResolver()
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		_, err := postStore.CreatePost(fmt.Sprintf("post %d", i), "img.png", nil, "content", "1")
		require.NoError(t, err)
	}

	t.Run("First page of 2 from 5 posts has more", func(t *testing.T) {
		page, err := resolver.Query().InfiniteScrollPosts(ctx, 1, 2)
		require.NoError(t, err)
		assert.Len(t, page.Posts, 2)
		assert.True(t, page.HasMore)
	})

	t.Run("Third page holds the remaining post and no more", func(t *testing.T) {
		page, err := resolver.Query().InfiniteScrollPosts(ctx, 3, 2)
		require.NoError(t, err)
		assert.Len(t, page.Posts, 1)
		assert.False(t, page.HasMore)
	})

	t.Run("Page number zero from a client does not panic", func(t *testing.T) {
		page, err := resolver.Query().InfiniteScrollPosts(ctx, 0, 2)
		require.NoError(t, err)
		assert.Len(t, page.Posts, 2)
	})

	t.Run("Pages do not overlap and go from newest to oldest", func(t *testing.T) {
		first, err := resolver.Query().InfiniteScrollPosts(ctx, 1, 2)
		require.NoError(t, err)
		second, err := resolver.Query().InfiniteScrollPosts(ctx, 2, 2)
		require.NoError(t, err)

		assert.Equal(t, "post 5", first.Posts[0].Title)
		assert.Equal(t, "post 4", first.Posts[1].Title)
		assert.Equal(t, "post 3", second.Posts[0].Title)
		assert.Equal(t, "post 2", second.Posts[1].Title)
	})
}

func TestMutationResolver_LikeUnlikePost(t *testing.T) {
	resolver, postStore, _, _ := newTestResolver()
	ctx := context.Background()

	_, err := resolver.Mutation().RegisterUser(ctx, "alice", "alice@example.com", "password123")
	require.NoError(t, err)

	post, err := postStore.CreatePost("Sunset", "img.png", []string{"nature"}, "a sunset", "1")
	require.NoError(t, err)

	t.Run("Double like increments twice but keeps favorites a set", func(t *testing.T) {
		result, err := resolver.Mutation().LikePost(ctx, post.ID, "alice")
		require.NoError(t, err)
		assert.Equal(t, 1, result.Likes)
		assert.Len(t, result.Favorites, 1)

		result, err = resolver.Mutation().LikePost(ctx, post.ID, "alice")
		require.NoError(t, err)
		assert.Equal(t, 2, result.Likes)
		assert.Len(t, result.Favorites, 1)
		assert.Equal(t, post.ID, result.Favorites[0].ID)
	})

	t.Run("Unlike decrements and removes the favorite", func(t *testing.T) {
		result, err := resolver.Mutation().UnlikePost(ctx, post.ID, "alice")
		require.NoError(t, err)
		assert.Equal(t, 1, result.Likes)
		assert.Len(t, result.Favorites, 0)
	})

	t.Run("Unlike has no lower bound", func(t *testing.T) {
		fresh, err := postStore.CreatePost("Zero likes", "img.png", nil, "content", "1")
		require.NoError(t, err)

		result, err := resolver.Mutation().UnlikePost(ctx, fresh.ID, "alice")
		require.NoError(t, err)
		assert.Equal(t, -1, result.Likes)
	})

	t.Run("Like of a missing post fails", func(t *testing.T) {
		_, err := resolver.Mutation().LikePost(ctx, "9999", "alice")
		assert.Error(t, err)
	})
}

func TestMutationResolver_AddPostComment(t *testing.T) {
	resolver, postStore, _, manager := newTestResolver()
	ctx := context.Background()

	post, err := postStore.CreatePost("Sunset", "img.png", nil, "a sunset", "1")
	require.NoError(t, err)

	t.Run("Comment is prepended and returned expanded", func(t *testing.T) {
		first, err := resolver.Mutation().AddPostComment(ctx, "first!", post.ID, "1")
		require.NoError(t, err)
		second, err := resolver.Mutation().AddPostComment(ctx, "second!", post.ID, "1")
		require.NoError(t, err)
		require.NotNil(t, second.MessageUser)

		stored, err := postStore.GetPostByID(post.ID)
		require.NoError(t, err)
		require.Len(t, stored.Messages, 2)
		// самый свежий комментарий стоит первым
		assert.Equal(t, second.ID, stored.Messages[0].ID)
		assert.Equal(t, first.ID, stored.Messages[1].ID)
	})

	t.Run("Comment on a missing post is a guarded error", func(t *testing.T) {
		_, err := resolver.Mutation().AddPostComment(ctx, "hello", "9999", "1")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not found")
	})

	t.Run("Comment is published to subscribers", func(t *testing.T) {
		assert.NotEmpty(t, manager.Published[post.ID])
	})
}

func TestSubscriptionResolver_CommentAdded(t *testing.T) {
	resolver, postStore, _, _ := newTestResolver()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	post, err := postStore.CreatePost("Sunset", "img.png", nil, "a sunset", "1")
	require.NoError(t, err)

	ch, err := resolver.Subscription().CommentAdded(ctx, post.ID)
	require.NoError(t, err)

	comment, err := resolver.Mutation().AddPostComment(context.Background(), "hello", post.ID, "1")
	require.NoError(t, err)

	select {
	case received := <-ch:
		assert.Equal(t, comment.ID, received.ID)
		assert.Equal(t, "hello", received.MessageBody)
	case <-time.After(time.Second):
		t.Fatal("comment was not delivered to subscriber")
	}
}
