package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"fittrack/backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeNotificationStore is mutex-protected because dispatch runs in a
// background goroutine.
type fakeNotificationStore struct {
	mu     sync.Mutex
	rows   []*models.Notification
	tokens map[uint][]string
}

func newFakeNotificationStore() *fakeNotificationStore {
	return &fakeNotificationStore{tokens: make(map[uint][]string)}
}

func (f *fakeNotificationStore) Create(n *models.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	n.ID = uint(len(f.rows) + 1)
	f.rows = append(f.rows, n)
	return nil
}

func (f *fakeNotificationStore) Tokens(userID uint) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.tokens[userID], nil
}

func (f *fakeNotificationStore) rowCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.rows)
}

type fakeSender struct {
	mu    sync.Mutex
	sends []string
	done  chan struct{}
}

func (f *fakeSender) Send(ctx context.Context, token, title, body string, data map[string]interface{}) bool {
	f.mu.Lock()
	f.sends = append(f.sends, token)
	f.mu.Unlock()
	select {
	case f.done <- struct{}{}:
	default:
	}
	return true
}

func (f *fakeSender) sent() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.sends...)
}

func TestNotifier_Notify(t *testing.T) {
	t.Run("writes the row and pushes to every registered token", func(t *testing.T) {
		store := newFakeNotificationStore()
		store.tokens[2] = []string{"ExponentPushToken[aaa]", "ExponentPushToken[bbb]"}
		sender := &fakeSender{done: make(chan struct{}, 2)}
		n := NewNotifier(store, sender)

		refID := uint(7)
		err := n.Notify(Event{
			RecipientID: 2,
			Type:        models.NotificationFriendRequest,
			ActorID:     1,
			ActorName:   "Alice",
			RefID:       &refID,
		})
		require.NoError(t, err)
		require.Equal(t, 1, store.rowCount())

		// Dispatch is asynchronous; wait for both deliveries.
		for i := 0; i < 2; i++ {
			select {
			case <-sender.done:
			case <-time.After(2 * time.Second):
				t.Fatal("timed out waiting for push dispatch")
			}
		}
		assert.ElementsMatch(t,
			[]string{"ExponentPushToken[aaa]", "ExponentPushToken[bbb]"},
			sender.sent())
	})

	t.Run("self-notifications are dropped entirely", func(t *testing.T) {
		store := newFakeNotificationStore()
		store.tokens[1] = []string{"ExponentPushToken[aaa]"}
		sender := &fakeSender{done: make(chan struct{}, 1)}
		n := NewNotifier(store, sender)

		err := n.Notify(Event{RecipientID: 1, Type: models.NotificationLike, ActorID: 1})
		require.NoError(t, err)
		assert.Zero(t, store.rowCount())

		select {
		case <-sender.done:
			t.Fatal("unexpected push for a self-notification")
		case <-time.After(50 * time.Millisecond):
		}
	})

	t.Run("no tokens means a row but no push", func(t *testing.T) {
		store := newFakeNotificationStore()
		sender := &fakeSender{done: make(chan struct{}, 1)}
		n := NewNotifier(store, sender)

		err := n.Notify(Event{RecipientID: 2, Type: models.NotificationComment, ActorID: 1})
		require.NoError(t, err)
		assert.Equal(t, 1, store.rowCount())

		select {
		case <-sender.done:
			t.Fatal("unexpected push with no registered tokens")
		case <-time.After(50 * time.Millisecond):
		}
	})
}
