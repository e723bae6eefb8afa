package postgres

import (
	"fmt"
	"strconv"
	"time"

	"github.com/VitaminP8/picshare/graph/model"
	"github.com/VitaminP8/picshare/internal/apperr"
	"github.com/VitaminP8/picshare/internal/subscription"
	"github.com/VitaminP8/picshare/models"

	"github.com/jinzhu/gorm"
)

const searchResultLimit = 5

type PostPostgresStorage struct {
	manager subscription.Manager
}

func NewPostPostgresStorage(manager subscription.Manager) *PostPostgresStorage {
	return &PostPostgresStorage{manager: manager}
}

func (s *PostPostgresStorage) CreatePost(title, imageURL string, categories []string, description, creatorID string) (*model.Post, error) {
	creatorIDInt, err := strconv.Atoi(creatorID)
	if err != nil {
		return nil, fmt.Errorf("invalid creator ID: %w", err)
	}

	post := &models.Post{
		Title:       title,
		ImageURL:    imageURL,
		Categories:  models.JoinCategories(categories),
		Description: description,
		UserID:      uint(creatorIDInt),
		// CreatedAt проставит gorm — createdDate задается хранилищем
	}

	if err := DB.Create(post).Error; err != nil {
		return nil, fmt.Errorf("could not create post: %w", err)
	}

	return toGQLPost(post), nil
}

func (s *PostPostgresStorage) GetPostByID(id string) (*model.Post, error) {
	var post models.Post
	err := DB.First(&post, id).Error
	if err != nil {
		return nil, &apperr.NotFoundError{Entity: "post", ID: id}
	}

	result := toGQLPost(&post)

	// Комментарии от новых к старым: вставка "в начало" выражена сортировкой
	var comments []models.Comment
	err = DB.Where("post_id = ?", post.ID).Order("created_at DESC, id DESC").Find(&comments).Error
	if err != nil {
		return nil, fmt.Errorf("could not get comments: %w", err)
	}

	for i := range comments {
		comment := toGQLComment(&comments[i])
		comment.MessageUser = loadUser(comments[i].UserID)
		result.Messages = append(result.Messages, comment)
	}

	return result, nil
}

func (s *PostPostgresStorage) GetUserPosts(userID string) ([]*model.Post, error) {
	var posts []models.Post
	err := DB.Where("user_id = ?", userID).Find(&posts).Error
	if err != nil {
		return nil, fmt.Errorf("could not get user posts: %w", err)
	}

	var results []*model.Post
	for i := range posts {
		results = append(results, toGQLPost(&posts[i]))
	}

	return results, nil
}

func (s *PostPostgresStorage) GetAllPosts() ([]*model.Post, error) {
	var posts []models.Post
	err := DB.Order("created_at DESC, id DESC").Find(&posts).Error
	if err != nil {
		return nil, fmt.Errorf("could not get posts: %w", err)
	}

	var results []*model.Post
	for i := range posts {
		result := toGQLPost(&posts[i])
		result.CreatedBy = loadUser(posts[i].UserID)
		results = append(results, result)
	}

	return results, nil
}

func (s *PostPostgresStorage) SearchPosts(term string) ([]*model.Post, error) {
	// ts_rank повторяет поведение textScore: сортировка по релевантности,
	// при равенстве — по лайкам
	type hit struct {
		ID    uint
		Score float64
	}

	var hits []hit
	err := DB.Raw(`
		SELECT id,
		       ts_rank(to_tsvector('english', title || ' ' || description || ' ' || categories),
		               plainto_tsquery('english', ?)) AS score
		FROM posts
		WHERE deleted_at IS NULL
		  AND to_tsvector('english', title || ' ' || description || ' ' || categories)
		      @@ plainto_tsquery('english', ?)
		ORDER BY score DESC, likes DESC
		LIMIT ?`, term, term, searchResultLimit).Scan(&hits).Error
	if err != nil {
		return nil, fmt.Errorf("could not search posts: %w", err)
	}

	results := make([]*model.Post, 0, len(hits))
	for _, h := range hits {
		var post models.Post
		if err := DB.First(&post, h.ID).Error; err != nil {
			return nil, fmt.Errorf("could not load search hit: %w", err)
		}
		result := toGQLPost(&post)
		score := h.Score
		result.Score = &score
		results = append(results, result)
	}

	return results, nil
}

func (s *PostPostgresStorage) PagePosts(pageNum, pageSize int) ([]*model.Post, bool, error) {
	// pageNum меньше 1 приходит прямо от клиента — не отдаем в OFFSET мусор
	skips := pageSize * (pageNum - 1)
	if skips < 0 {
		skips = 0
	}

	var posts []models.Post
	err := DB.Order("created_at DESC, id DESC").Offset(skips).Limit(pageSize).Find(&posts).Error
	if err != nil {
		return nil, false, fmt.Errorf("could not get posts page: %w", err)
	}

	page := make([]*model.Post, 0, len(posts))
	for i := range posts {
		result := toGQLPost(&posts[i])
		result.CreatedBy = loadUser(posts[i].UserID)
		page = append(page, result)
	}

	// Отдельный count: hasMore может разойтись с реальностью при
	// конкурентных вставках, транзакционной гарантии здесь нет
	var total int
	err = DB.Model(&models.Post{}).Count(&total).Error
	if err != nil {
		return nil, false, fmt.Errorf("could not count posts: %w", err)
	}

	hasMore := total > pageSize*pageNum

	return page, hasMore, nil
}

func (s *PostPostgresStorage) AddComment(postID, userID, body string) (*model.Comment, error) {
	var post models.Post
	err := DB.First(&post, postID).Error
	if err != nil {
		return nil, &apperr.NotFoundError{Entity: "post", ID: postID}
	}

	userIDInt, err := strconv.Atoi(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID: %w", err)
	}

	comment := &models.Comment{
		MessageBody: body,
		PostID:      post.ID,
		UserID:      uint(userIDInt),
	}

	if err := DB.Create(comment).Error; err != nil {
		return nil, fmt.Errorf("could not create comment: %w", err)
	}

	result := toGQLComment(comment)
	result.MessageUser = loadUser(comment.UserID)

	if s.manager != nil {
		s.manager.Publish(postID, result)
	}

	return result, nil
}

func (s *PostPostgresStorage) IncrementLikes(id string, delta int) (int, error) {
	var post models.Post
	err := DB.First(&post, id).Error
	if err != nil {
		return 0, &apperr.NotFoundError{Entity: "post", ID: id}
	}

	// Атомарный сдвиг счетчика одним UPDATE; нижней границы нет
	err = DB.Model(&models.Post{}).Where("id = ?", post.ID).
		Update("likes", gorm.Expr("likes + ?", delta)).Error
	if err != nil {
		return 0, fmt.Errorf("could not update likes: %w", err)
	}

	err = DB.First(&post, id).Error
	if err != nil {
		return 0, fmt.Errorf("could not reload post: %w", err)
	}

	return post.Likes, nil
}

func loadUser(id uint) *model.User {
	var user models.User
	if err := DB.First(&user, id).Error; err != nil {
		return nil
	}
	return toGQLUser(&user, nil)
}

func toGQLPost(post *models.Post) *model.Post {
	return &model.Post{
		ID:          fmt.Sprint(post.ID),
		Title:       post.Title,
		ImageURL:    post.ImageURL,
		Categories:  models.SplitCategories(post.Categories),
		Description: post.Description,
		CreatedDate: post.CreatedAt.Format(time.RFC3339),
		Likes:       post.Likes,
		AuthorID:    fmt.Sprint(post.UserID),
		Messages:    []*model.Comment{},
	}
}

func toGQLComment(comment *models.Comment) *model.Comment {
	return &model.Comment{
		ID:          fmt.Sprint(comment.ID),
		MessageBody: comment.MessageBody,
		MessageDate: comment.CreatedAt.Format(time.RFC3339),
		AuthorID:    fmt.Sprint(comment.UserID),
	}
}
