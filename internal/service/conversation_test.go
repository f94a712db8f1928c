package service

import (
	"testing"
	"time"

	"fittrack/backend/internal/models"
	apperrors "fittrack/backend/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageService_Send(t *testing.T) {
	t.Run("stores the message and notifies the receiver", func(t *testing.T) {
		store := newFakeMessageStore()
		sink := &recordingSink{}
		svc := NewMessageService(store, sink)

		msg, err := svc.Send(1, 2, "hey, nice lift today", "Alice")
		require.NoError(t, err)
		assert.Equal(t, uint(1), msg.SenderID)
		assert.Equal(t, uint(2), msg.ReceiverID)
		assert.False(t, msg.Read)

		events := sink.ofType(models.NotificationMessage)
		require.Len(t, events, 1)
		assert.Equal(t, uint(2), events[0].RecipientID)
	})

	t.Run("strips markup and rejects empty text", func(t *testing.T) {
		store := newFakeMessageStore()
		svc := NewMessageService(store, &recordingSink{})

		msg, err := svc.Send(1, 2, "  <b>hello</b>  ", "Alice")
		require.NoError(t, err)
		assert.Equal(t, "hello", msg.Text)

		_, err = svc.Send(1, 2, "   ", "Alice")
		assertCode(t, err, apperrors.ErrCodeValidation)

		_, err = svc.Send(1, 2, "<script>alert(1)</script>", "Alice")
		assertCode(t, err, apperrors.ErrCodeValidation)
	})
}

func TestMessageService_Thread(t *testing.T) {
	t.Run("returns both directions oldest first and marks received read", func(t *testing.T) {
		store := newFakeMessageStore()
		svc := NewMessageService(store, &recordingSink{})

		_, err := svc.Send(1, 2, "first", "Alice")
		require.NoError(t, err)
		_, err = svc.Send(2, 1, "second", "Bob")
		require.NoError(t, err)
		_, err = svc.Send(1, 2, "third", "Alice")
		require.NoError(t, err)

		messages, err := svc.Thread(2, 1)
		require.NoError(t, err)
		require.Len(t, messages, 3)
		assert.Equal(t, "first", messages[0].Text)
		assert.Equal(t, "second", messages[1].Text)
		assert.Equal(t, "third", messages[2].Text)

		// Fetching the thread reset the unread counter for user 2.
		total, err := svc.UnreadTotal(2)
		require.NoError(t, err)
		assert.Zero(t, total)

		// User 1 still has Bob's reply unread.
		total, err = svc.UnreadTotal(1)
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
	})
}

func TestMessageService_Conversations(t *testing.T) {
	t.Run("one entry per peer, newest activity first, with unread counts", func(t *testing.T) {
		store := newFakeMessageStore()
		store.users[1] = models.User{Name: "Alice"}
		store.users[3] = models.User{Name: "Carol"}
		svc := NewMessageService(store, &recordingSink{})

		_, err := svc.Send(1, 2, "hi from alice", "Alice")
		require.NoError(t, err)
		_, err = svc.Send(2, 1, "hi back", "Bob")
		require.NoError(t, err)
		_, err = svc.Send(3, 2, "hi from carol", "Carol")
		require.NoError(t, err)
		_, err = svc.Send(3, 2, "you there?", "Carol")
		require.NoError(t, err)

		list, err := svc.Conversations(2)
		require.NoError(t, err)
		require.Len(t, list, 2)

		// Carol's thread has the latest activity.
		assert.Equal(t, uint(3), list[0].PeerID)
		assert.Equal(t, "you there?", list[0].LastText)
		assert.Equal(t, int64(2), list[0].UnreadCount)
		assert.Equal(t, "Carol", list[0].Peer.Name)

		// Alice's thread: the latest message is the one user 2 sent, so it
		// is the preview, while the unread count only covers received mail.
		assert.Equal(t, uint(1), list[1].PeerID)
		assert.Equal(t, "hi back", list[1].LastText)
		assert.Equal(t, int64(1), list[1].UnreadCount)
	})

	t.Run("a timestamp tie keeps the received message as preview", func(t *testing.T) {
		store := newFakeMessageStore()
		svc := NewMessageService(store, &recordingSink{})

		at := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
		require.NoError(t, store.Create(&models.Message{SenderID: 2, ReceiverID: 1, Text: "sent", CreatedAt: at}))
		require.NoError(t, store.Create(&models.Message{SenderID: 1, ReceiverID: 2, Text: "received", CreatedAt: at}))

		list, err := svc.Conversations(2)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "received", list[0].LastText)
	})

	t.Run("no history means an empty list", func(t *testing.T) {
		svc := NewMessageService(newFakeMessageStore(), &recordingSink{})
		list, err := svc.Conversations(7)
		require.NoError(t, err)
		assert.Empty(t, list)
	})
}

func TestMessageService_Clear(t *testing.T) {
	t.Run("clearing a thread removes both directions only for that peer", func(t *testing.T) {
		store := newFakeMessageStore()
		svc := NewMessageService(store, &recordingSink{})

		_, err := svc.Send(1, 2, "to bob", "Alice")
		require.NoError(t, err)
		_, err = svc.Send(2, 1, "to alice", "Bob")
		require.NoError(t, err)
		_, err = svc.Send(1, 3, "to carol", "Alice")
		require.NoError(t, err)

		require.NoError(t, svc.ClearThread(1, 2))

		gone, err := svc.Thread(1, 2)
		require.NoError(t, err)
		assert.Empty(t, gone)

		kept, err := svc.Thread(1, 3)
		require.NoError(t, err)
		assert.Len(t, kept, 1)
	})

	t.Run("clearing a thread with yourself fails validation", func(t *testing.T) {
		svc := NewMessageService(newFakeMessageStore(), &recordingSink{})
		assertCode(t, svc.ClearThread(4, 4), apperrors.ErrCodeValidation)
	})

	t.Run("clear all removes every message the user touches", func(t *testing.T) {
		store := newFakeMessageStore()
		svc := NewMessageService(store, &recordingSink{})

		_, err := svc.Send(1, 2, "one", "Alice")
		require.NoError(t, err)
		_, err = svc.Send(3, 1, "two", "Carol")
		require.NoError(t, err)
		_, err = svc.Send(2, 3, "three", "Bob")
		require.NoError(t, err)

		require.NoError(t, svc.ClearAll(1))

		remaining, err := svc.Thread(2, 3)
		require.NoError(t, err)
		assert.Len(t, remaining, 1)
		assert.Empty(t, store.messagesInvolving(1))
	})
}
