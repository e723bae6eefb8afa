package mocks

import (
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/VitaminP8/picshare/graph/model"
	"github.com/VitaminP8/picshare/internal/apperr"
	"github.com/VitaminP8/picshare/internal/subscription"
)

// MockPostStorage реализует интерфейс post.PostStorage для тестирования
type MockPostStorage struct {
	mu            sync.Mutex
	posts         []*model.Post
	nextID        int
	nextCommentID int
	manager       subscription.Manager
}

func NewMockPostStorage(manager subscription.Manager) *MockPostStorage {
	return &MockPostStorage{
		nextID:        1,
		nextCommentID: 1,
		manager:       manager,
	}
}

func (m *MockPostStorage) CreatePost(title, imageURL string, categories []string, description, creatorID string) (*model.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := strconv.Itoa(m.nextID)
	m.nextID++

	post := &model.Post{
		ID:          id,
		Title:       title,
		ImageURL:    imageURL,
		Categories:  categories,
		Description: description,
		CreatedDate: time.Now().Format(time.RFC3339),
		AuthorID:    creatorID,
		Messages:    []*model.Comment{},
	}

	m.posts = append(m.posts, post)
	return post, nil
}

func (m *MockPostStorage) GetPostByID(id string) (*model.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	post := m.find(id)
	if post == nil {
		return nil, &apperr.NotFoundError{Entity: "post", ID: id}
	}
	return post, nil
}

func (m *MockPostStorage) GetUserPosts(userID string) ([]*model.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var posts []*model.Post
	for _, post := range m.posts {
		if post.AuthorID == userID {
			posts = append(posts, post)
		}
	}
	return posts, nil
}

func (m *MockPostStorage) GetAllPosts() ([]*model.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.newestFirst(), nil
}

func (m *MockPostStorage) SearchPosts(term string) ([]*model.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	hits := []*model.Post{}
	for _, post := range m.posts {
		var score float64
		haystack := strings.ToLower(post.Title + " " + post.Description)
		for _, word := range strings.Fields(strings.ToLower(term)) {
			score += float64(strings.Count(haystack, word))
		}
		if score == 0 {
			continue
		}
		hit := *post
		hit.Score = &score
		hits = append(hits, &hit)
	}

	sort.Slice(hits, func(i, j int) bool {
		if *hits[i].Score != *hits[j].Score {
			return *hits[i].Score > *hits[j].Score
		}
		return hits[i].Likes > hits[j].Likes
	})

	if len(hits) > 5 {
		hits = hits[:5]
	}
	return hits, nil
}

func (m *MockPostStorage) PagePosts(pageNum, pageSize int) ([]*model.Post, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	posts := m.newestFirst()
	total := len(posts)

	skips := pageSize * (pageNum - 1)
	if skips < 0 {
		skips = 0
	}
	if skips > total {
		skips = total
	}
	end := skips + pageSize
	if end < skips {
		end = skips
	}
	if end > total {
		end = total
	}

	return posts[skips:end], total > pageSize*pageNum, nil
}

func (m *MockPostStorage) AddComment(postID, userID, body string) (*model.Comment, error) {
	m.mu.Lock()

	post := m.find(postID)
	if post == nil {
		m.mu.Unlock()
		return nil, &apperr.NotFoundError{Entity: "post", ID: postID}
	}

	comment := &model.Comment{
		ID:          strconv.Itoa(m.nextCommentID),
		MessageBody: body,
		MessageDate: time.Now().Format(time.RFC3339),
		AuthorID:    userID,
		MessageUser: &model.User{ID: userID},
	}
	m.nextCommentID++

	post.Messages = append([]*model.Comment{comment}, post.Messages...)
	m.mu.Unlock()

	if m.manager != nil {
		m.manager.Publish(postID, comment)
	}

	return comment, nil
}

func (m *MockPostStorage) IncrementLikes(id string, delta int) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	post := m.find(id)
	if post == nil {
		return 0, &apperr.NotFoundError{Entity: "post", ID: id}
	}

	post.Likes += delta
	return post.Likes, nil
}

func (m *MockPostStorage) find(id string) *model.Post {
	for _, post := range m.posts {
		if post.ID == id {
			return post
		}
	}
	return nil
}

func (m *MockPostStorage) lookup(id string) *model.Post {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.find(id)
}

// newestFirst — от новых к старым; ID растет с каждой вставкой,
// поэтому сортировки по нему достаточно
func (m *MockPostStorage) newestFirst() []*model.Post {
	posts := append([]*model.Post{}, m.posts...)
	sort.Slice(posts, func(i, j int) bool {
		ni, _ := strconv.Atoi(posts[i].ID)
		nj, _ := strconv.Atoi(posts[j].ID)
		return ni > nj
	})
	return posts
}
