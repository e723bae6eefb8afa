package post

import (
	"github.com/VitaminP8/picshare/graph/model"
)

type PostStorage interface {
	CreatePost(title, imageURL string, categories []string, description, creatorID string) (*model.Post, error)
	// GetPostByID возвращает пост с раскрытыми авторами комментариев
	GetPostByID(id string) (*model.Post, error)
	GetUserPosts(userID string) ([]*model.Post, error)
	// GetAllPosts возвращает посты от новых к старым с раскрытым createdBy
	GetAllPosts() ([]*model.Post, error)
	// SearchPosts — полнотекстовый поиск, не больше 5 результатов,
	// сортировка по релевантности, затем по лайкам (по убыванию)
	SearchPosts(term string) ([]*model.Post, error)
	// PagePosts возвращает страницу pageNum (начиная с 1) размера pageSize
	// и признак hasMore, посчитанный от общего числа постов
	PagePosts(pageNum, pageSize int) ([]*model.Post, bool, error)
	// AddComment вставляет комментарий в начало последовательности поста
	// и возвращает его с раскрытым messageUser
	AddComment(postID, userID, body string) (*model.Comment, error)
	// IncrementLikes атомарно сдвигает счетчик лайков на delta
	// (нижней границы нет) и возвращает новое значение
	IncrementLikes(id string, delta int) (int, error)
}
