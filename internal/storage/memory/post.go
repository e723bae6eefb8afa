package memory

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

const searchResultLimit = 5

type PostMemoryStorage struct {
	mu            sync.Mutex
	posts         map[string]*model.Post
	order         []string // ID в порядке вставки
	nextID        int      // Для хранения актуального ID (можно было использовать UUID)
	nextCommentID int
	users         *UserMemoryStorage
	manager       subscription.Manager
}

// NewMemoryStorages создает оба in-memory хранилища и связывает их между собой:
// посты раскрывают авторов через хранилище пользователей, пользователи
// раскрывают favorites через хранилище постов.
func NewMemoryStorages(manager subscription.Manager) (*PostMemoryStorage, *UserMemoryStorage) {
	posts := &PostMemoryStorage{
		posts:         make(map[string]*model.Post),
		nextID:        1,
		nextCommentID: 1,
		manager:       manager,
	}
	users := &UserMemoryStorage{
		users:     make(map[string]*model.User),
		emails:    make(map[string]string),
		passwords: make(map[string]string),
		favorites: make(map[string]map[string]bool),
		nextID:    1,
	}
	posts.users = users
	users.posts = posts
	return posts, users
}

func (s *PostMemoryStorage) CreatePost(title, imageURL string, categories []string, description, creatorID string) (*model.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := strconv.Itoa(s.nextID)
	s.nextID++

	if categories == nil {
		categories = []string{}
	}

	post := &model.Post{
		ID:          id,
		Title:       title,
		ImageURL:    imageURL,
		Categories:  categories,
		Description: description,
		// createdDate выставляет хранилище, а не резолвер
		CreatedDate: time.Now().Format(time.RFC3339),
		Likes:       0,
		AuthorID:    creatorID,
		Messages:    []*model.Comment{},
	}

	s.posts[id] = post
	s.order = append(s.order, id)
	return clonePost(post), nil
}

func (s *PostMemoryStorage) GetPostByID(id string) (*model.Post, error) {
	s.mu.Lock()
	stored, exists := s.posts[id]
	if !exists {
		s.mu.Unlock()
		return nil, &apperr.NotFoundError{Entity: "post", ID: id}
	}
	// Ответ собирается из копий: хранимые объекты разделяются между
	// запросами, писать в них после разблокировки нельзя
	post := clonePost(stored)
	s.mu.Unlock()

	// Раскрываем авторов комментариев уже без мьютекса,
	// иначе встречный вызов из хранилища пользователей даст дедлок
	for _, message := range post.Messages {
		message.MessageUser = s.users.lookupByID(message.AuthorID)
	}

	return post, nil
}

func (s *PostMemoryStorage) GetUserPosts(userID string) ([]*model.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Порядок вставки, как отдает хранилище
	var posts []*model.Post
	for _, id := range s.order {
		if post := s.posts[id]; post != nil && post.AuthorID == userID {
			posts = append(posts, clonePost(post))
		}
	}

	return posts, nil
}

func (s *PostMemoryStorage) GetAllPosts() ([]*model.Post, error) {
	posts := s.sortedByDateDesc()

	for _, post := range posts {
		post.CreatedBy = s.users.lookupByID(post.AuthorID)
	}

	return posts, nil
}

func (s *PostMemoryStorage) SearchPosts(term string) ([]*model.Post, error) {
	s.mu.Lock()
	var hits []*model.Post
	for _, id := range s.order {
		post := s.posts[id]
		score := relevance(post, term)
		if score == 0 {
			continue
		}
		// Копия, чтобы score одного поиска не протекал в другие ответы
		hit := clonePost(post)
		hit.Score = &score
		hits = append(hits, hit)
	}
	s.mu.Unlock()

	sort.Slice(hits, func(i, j int) bool {
		if *hits[i].Score != *hits[j].Score {
			return *hits[i].Score > *hits[j].Score
		}
		return hits[i].Likes > hits[j].Likes
	})

	if len(hits) > searchResultLimit {
		hits = hits[:searchResultLimit]
	}

	// Пустой поиск без результатов — это все равно список, а не отсутствие ответа
	if hits == nil {
		hits = []*model.Post{}
	}

	return hits, nil
}

// relevance считает частоту термов запроса в заголовке, описании и категориях
func relevance(post *model.Post, term string) float64 {
	var score float64
	haystack := strings.ToLower(post.Title + " " + post.Description + " " + strings.Join(post.Categories, " "))

	for _, word := range strings.Fields(strings.ToLower(term)) {
		score += float64(strings.Count(haystack, word))
	}

	return score
}

func (s *PostMemoryStorage) PagePosts(pageNum, pageSize int) ([]*model.Post, bool, error) {
	posts := s.sortedByDateDesc()
	total := len(posts)

	// pageNum меньше 1 (и отрицательный pageSize) приходит прямо от клиента,
	// границы среза нужно зажать с обеих сторон
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
	page := posts[skips:end]

	for _, post := range page {
		post.CreatedBy = s.users.lookupByID(post.AuthorID)
	}

	// hasMore считается от общего числа постов, не от размера страницы
	hasMore := total > pageSize*pageNum

	return page, hasMore, nil
}

func (s *PostMemoryStorage) AddComment(postID, userID, body string) (*model.Comment, error) {
	// Автора раскрываем до захвата мьютекса: после вставки комментарий
	// разделяется с хранимым постом и дописывать его уже нельзя
	messageUser := s.users.lookupByID(userID)

	s.mu.Lock()

	post, exists := s.posts[postID]
	if !exists {
		s.mu.Unlock()
		return nil, &apperr.NotFoundError{Entity: "post", ID: postID}
	}

	id := strconv.Itoa(s.nextCommentID)
	s.nextCommentID++

	comment := &model.Comment{
		ID:          id,
		MessageBody: body,
		MessageDate: time.Now().Format(time.RFC3339),
		AuthorID:    userID,
		MessageUser: messageUser,
	}

	// Новый комментарий встает в начало последовательности
	post.Messages = append([]*model.Comment{comment}, post.Messages...)
	s.mu.Unlock()

	if s.manager != nil {
		s.manager.Publish(postID, comment)
	}

	return comment, nil
}

func (s *PostMemoryStorage) IncrementLikes(id string, delta int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	post, exists := s.posts[id]
	if !exists {
		return 0, &apperr.NotFoundError{Entity: "post", ID: id}
	}

	post.Likes += delta
	return post.Likes, nil
}

// sortedByDateDesc — копии постов от новых к старым; при равном createdDate
// новее тот, у кого больше ID
func (s *PostMemoryStorage) sortedByDateDesc() []*model.Post {
	s.mu.Lock()
	defer s.mu.Unlock()

	posts := make([]*model.Post, 0, len(s.posts))
	for _, id := range s.order {
		posts = append(posts, clonePost(s.posts[id]))
	}

	sort.Slice(posts, func(i, j int) bool {
		if posts[i].CreatedDate == posts[j].CreatedDate {
			return idNum(posts[i].ID) > idNum(posts[j].ID)
		}
		return posts[i].CreatedDate > posts[j].CreatedDate
	})

	return posts
}

// lookup отдает копию поста без раскрытия ссылок (для хранилища пользователей)
func (s *PostMemoryStorage) lookup(id string) *model.Post {
	s.mu.Lock()
	defer s.mu.Unlock()

	post, exists := s.posts[id]
	if !exists {
		return nil
	}
	return clonePost(post)
}

// clonePost — копия поста вместе с комментариями; вызывается под мьютексом.
// Все, что уходит наружу, собирается из таких копий
func clonePost(post *model.Post) *model.Post {
	clone := *post
	clone.Messages = make([]*model.Comment, len(post.Messages))
	for i, message := range post.Messages {
		m := *message
		clone.Messages[i] = &m
	}
	return &clone
}

func idNum(id string) int {
	n, _ := strconv.Atoi(id)
	return n
}
