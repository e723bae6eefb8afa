package subscription

import (
	"sync"
	"time"

	"github.com/VitaminP8/picshare/graph/model"
)

// Сколько ждем медленного подписчика, прежде чем бросить доставку ему
const publishTimeout = 500 * time.Millisecond

// SubscriptionManager раздает новые комментарии подписчикам конкретного поста.
// Подписка живет, пока не вызвана функция отписки.
type SubscriptionManager struct {
	mu   sync.Mutex
	subs map[string][]chan *model.Comment // postID -> каналы подписчиков
}

func NewSubscriptionManager() *SubscriptionManager {
	return &SubscriptionManager{
		subs: make(map[string][]chan *model.Comment),
	}
}

// Subscribe возвращает канал с комментариями поста и функцию отписки.
// Отписка убирает канал из списка и закрывает его.
func (m *SubscriptionManager) Subscribe(postID string) (<-chan *model.Comment, func()) {
	m.mu.Lock()
	defer m.mu.Unlock()

	// буфер на один комментарий, чтобы издатель не ждал читателя
	ch := make(chan *model.Comment, 1)
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

// Publish доставляет комментарий всем подписчикам поста.
// Подписчик, не разобравший буфер за publishTimeout, этот комментарий теряет
func (m *SubscriptionManager) Publish(postID string, comment *model.Comment) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, sub := range m.subs[postID] {
		select {
		case sub <- comment:
		case <-time.After(publishTimeout):
		}
	}
}
