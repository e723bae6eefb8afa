package subscription

import (
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/VitaminP8/picshare/graph/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubscriptionManager_Subscribe(t *testing.T) {
	t.Run("Should create a subscription channel", func(t *testing.T) {
		manager := NewSubscriptionManager()
		postID := "123"

		ch, cancel := manager.Subscribe(postID)
		assert.NotNil(t, ch)
		assert.NotNil(t, cancel)

		manager.mu.Lock()
		subscribers, exists := manager.subs[postID]
		manager.mu.Unlock()
		assert.True(t, exists)
		assert.Len(t, subscribers, 1)

		// Вызываем отмену подписки
		cancel()

		manager.mu.Lock()
		subscribers = manager.subs[postID]
		manager.mu.Unlock()
		assert.Len(t, subscribers, 0)
	})

	t.Run("Multiple subscriptions to the same post", func(t *testing.T) {
		manager := NewSubscriptionManager()
		postID := "123"

		_, cancel1 := manager.Subscribe(postID)
		_, cancel2 := manager.Subscribe(postID)
		_, cancel3 := manager.Subscribe(postID)

		manager.mu.Lock()
		subscribers := manager.subs[postID]
		manager.mu.Unlock()
		assert.Len(t, subscribers, 3)

		cancel2()

		manager.mu.Lock()
		subscribers = manager.subs[postID]
		manager.mu.Unlock()
		assert.Len(t, subscribers, 2)

		cancel1()
		cancel3()
	})
}

func TestSubscriptionManager_Publish(t *testing.T) {
	t.Run("Subscriber receives the published comment", func(t *testing.T) {
		manager := NewSubscriptionManager()
		postID := "123"

		ch, cancel := manager.Subscribe(postID)
		defer cancel()

		comment := &model.Comment{ID: "1", MessageBody: "hello"}
		manager.Publish(postID, comment)

		select {
		case received := <-ch:
			assert.Equal(t, comment, received)
		case <-time.After(time.Second):
			t.Fatal("comment was not delivered")
		}
	})

	t.Run("Comments are not delivered to another post", func(t *testing.T) {
		manager := NewSubscriptionManager()

		ch, cancel := manager.Subscribe("123")
		defer cancel()

		manager.Publish("456", &model.Comment{ID: "1", MessageBody: "hello"})

		select {
		case <-ch:
			t.Fatal("comment leaked to another post's subscriber")
		case <-time.After(100 * time.Millisecond):
		}
	})

	t.Run("Concurrent publishers do not race", func(t *testing.T) {
		manager := NewSubscriptionManager()
		postID := "123"

		ch, cancel := manager.Subscribe(postID)

		var wg sync.WaitGroup
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func(n int) {
				defer wg.Done()
				manager.Publish(postID, &model.Comment{ID: strconv.Itoa(n)})
			}(i)
		}

		// вычитываем, чтобы издатели не ждали таймаут на заполненном буфере
		done := make(chan struct{})
		received := 0
		go func() {
			for range ch {
				received++
			}
			close(done)
		}()

		wg.Wait()
		cancel()
		<-done

		require.Greater(t, received, 0)
	})
}
