package graph

// This file will be automatically regenerated based on the schema, any resolver implementations
// will be copied through when generating and any unknown code will be moved to the end.
// Code generated by github.com/99designs/gqlgen version v0.17.49

import (
	"context"

	"github.com/VitaminP8/picshare/graph/generated"
	"github.com/VitaminP8/picshare/graph/model"
	"github.com/VitaminP8/picshare/internal/apperr"
	"github.com/VitaminP8/picshare/internal/auth"
)

// RegisterUser is the resolver for the registerUser field.
func (r *mutationResolver) RegisterUser(ctx context.Context, username string, email string, password string) (*model.Token, error) {
	newUser, err := r.UserStore.RegisterUser(username, email, password)
	if err != nil {
		return nil, err
	}

	token, err := r.Tokens.CreateToken(newUser.ID, newUser.Username)
	if err != nil {
		return nil, err
	}

	// userId в ответе — ID только что созданного пользователя
	return &model.Token{Token: token, UserID: newUser.ID}, nil
}

// LoginUser is the resolver for the loginUser field.
func (r *mutationResolver) LoginUser(ctx context.Context, username string, password string) (*model.Token, error) {
	user, err := r.UserStore.LoginUser(username, password)
	if err != nil {
		return nil, err
	}

	token, err := r.Tokens.CreateToken(user.ID, user.Username)
	if err != nil {
		return nil, err
	}

	return &model.Token{Token: token, UserID: user.ID}, nil
}

// AddPost is the resolver for the addPost field.
func (r *mutationResolver) AddPost(ctx context.Context, title string, imageURL string, categories []string, description string, creatorID string) (*model.Post, error) {
	return r.PostStore.CreatePost(title, imageURL, categories, description, creatorID)
}

// AddPostComment is the resolver for the addPostComment field.
func (r *mutationResolver) AddPostComment(ctx context.Context, commentBody string, postID string, userID string) (*model.Comment, error) {
	return r.PostStore.AddComment(postID, userID, commentBody)
}

// LikePost is the resolver for the likePost field.
func (r *mutationResolver) LikePost(ctx context.Context, postID string, username string) (*model.LikesFaves, error) {
	// Два независимых атомарных обновления; между ними нет общей транзакции
	likes, err := r.PostStore.IncrementLikes(postID, 1)
	if err != nil {
		return nil, err
	}

	favorites, err := r.UserStore.AddFavorite(username, postID)
	if err != nil {
		return nil, err
	}

	return &model.LikesFaves{Likes: likes, Favorites: favorites}, nil
}

// UnlikePost is the resolver for the unlikePost field.
func (r *mutationResolver) UnlikePost(ctx context.Context, postID string, username string) (*model.LikesFaves, error) {
	likes, err := r.PostStore.IncrementLikes(postID, -1)
	if err != nil {
		return nil, err
	}

	favorites, err := r.UserStore.RemoveFavorite(username, postID)
	if err != nil {
		return nil, err
	}

	return &model.LikesFaves{Likes: likes, Favorites: favorites}, nil
}

// GetCurrentUser is the resolver for the getCurrentUser field.
func (r *queryResolver) GetCurrentUser(ctx context.Context) (*model.User, error) {
	username, err := auth.GetUsernameFromContext(ctx)
	if err != nil {
		// анонимный запрос — это null, а не ошибка
		return nil, nil
	}

	user, err := r.UserStore.GetUserByUsername(username)
	if err != nil {
		// валидный токен на уже исчезнувшего пользователя — тоже null
		if apperr.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	return user, nil
}

// GetPosts is the resolver for the getPosts field.
func (r *queryResolver) GetPosts(ctx context.Context) ([]*model.Post, error) {
	return r.PostStore.GetAllPosts()
}

// GetUserPosts is the resolver for the getUserPosts field.
func (r *queryResolver) GetUserPosts(ctx context.Context, userID string) ([]*model.Post, error) {
	return r.PostStore.GetUserPosts(userID)
}

// GetPost is the resolver for the getPost field.
func (r *queryResolver) GetPost(ctx context.Context, postID string) (*model.Post, error) {
	return r.PostStore.GetPostByID(postID)
}

// SearchPosts is the resolver for the searchPosts field.
func (r *queryResolver) SearchPosts(ctx context.Context, searchTerm *string) ([]*model.Post, error) {
	// Пустой запрос — явное отсутствие результата (nil), не пустой список
	if searchTerm == nil || *searchTerm == "" {
		return nil, nil
	}

	return r.PostStore.SearchPosts(*searchTerm)
}

// InfiniteScrollPosts is the resolver for the infiniteScrollPosts field.
func (r *queryResolver) InfiniteScrollPosts(ctx context.Context, pageNum int, pageSize int) (*model.PostsPage, error) {
	posts, hasMore, err := r.PostStore.PagePosts(pageNum, pageSize)
	if err != nil {
		return nil, err
	}

	return &model.PostsPage{Posts: posts, HasMore: hasMore}, nil
}

// CommentAdded is the resolver for the commentAdded field.
func (r *subscriptionResolver) CommentAdded(ctx context.Context, postID string) (<-chan *model.Comment, error) {
	ch, cancel := r.SubscriptionManager.Subscribe(postID)

	go func() {
		<-ctx.Done()
		cancel()
	}()

	return ch, nil
}

// Mutation returns generated.MutationResolver implementation.
func (r *Resolver) Mutation() generated.MutationResolver { return &mutationResolver{r} }

// Query returns generated.QueryResolver implementation.
func (r *Resolver) Query() generated.QueryResolver { return &queryResolver{r} }

// Subscription returns generated.SubscriptionResolver implementation.
func (r *Resolver) Subscription() generated.SubscriptionResolver { return &subscriptionResolver{r} }

type mutationResolver struct{ *Resolver }
type queryResolver struct{ *Resolver }
type subscriptionResolver struct{ *Resolver }
