package mocks

import (
	"sync"

	"github.com/VitaminP8/picshare/graph/model"
)

// MockSubscriptionManager запоминает опубликованные комментарии
// и раздает их подписчикам без таймаутов
type MockSubscriptionManager struct {
	mu        sync.Mutex
	subs      map[string][]chan *model.Comment
	Published map[string][]*model.Comment // postID -> все опубликованные комментарии
}

func NewMockSubscriptionManager() *MockSubscriptionManager {
	return &MockSubscriptionManager{
		subs:      make(map[string][]chan *model.Comment),
		Published: make(map[string][]*model.Comment),
	}
}

func (m *MockSubscriptionManager) Subscribe(postID string) (<-chan *model.Comment, func()) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ch := make(chan *model.Comment, 16)
	m.subs[postID] = append(m.subs[postID], ch)

	cancel := func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		subscribers := m.subs[postID]
		for i, sub := range subscribers {
			if sub == ch {
				m.subs[postID] = append(subscribers[:i], subscribers[i+1:]...)
				close(ch)
				break
			}
		}
	}

	return ch, cancel
}

func (m *MockSubscriptionManager) Publish(postID string, comment *model.Comment) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Published[postID] = append(m.Published[postID], comment)
	for _, sub := range m.subs[postID] {
		select {
		case sub <- comment:
		default:
		}
	}
}
