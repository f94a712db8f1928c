package service

import (
	"testing"

	"fittrack/backend/internal/models"
	apperrors "fittrack/backend/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok, "expected *AppError, got %T", err)
	assert.Equal(t, code, appErr.Code)
}

func TestFriendshipService_SendRequest(t *testing.T) {
	t.Run("creates a pending request and notifies the recipient", func(t *testing.T) {
		store := newFakeFriendStore()
		sink := &recordingSink{}
		svc := NewFriendshipService(store, sink)

		id, err := svc.SendRequest(1, 2, "Alice")
		require.NoError(t, err)
		require.NotZero(t, id)

		req, err := store.RequestByID(id)
		require.NoError(t, err)
		require.NotNil(t, req)
		assert.Equal(t, models.RequestPending, req.Status)

		events := sink.ofType(models.NotificationFriendRequest)
		require.Len(t, events, 1)
		assert.Equal(t, uint(2), events[0].RecipientID)
		assert.Equal(t, uint(1), events[0].ActorID)
		require.NotNil(t, events[0].RefID)
		assert.Equal(t, id, *events[0].RefID)
	})

	t.Run("rejects self-requests", func(t *testing.T) {
		svc := NewFriendshipService(newFakeFriendStore(), &recordingSink{})
		_, err := svc.SendRequest(1, 1, "Alice")
		assertCode(t, err, apperrors.ErrCodeValidation)
	})

	t.Run("duplicate pending request fails", func(t *testing.T) {
		store := newFakeFriendStore()
		svc := NewFriendshipService(store, &recordingSink{})

		_, err := svc.SendRequest(1, 2, "Alice")
		require.NoError(t, err)

		_, err = svc.SendRequest(1, 2, "Alice")
		assertCode(t, err, apperrors.ErrCodeDuplicateRequest)
	})

	t.Run("request to an existing friend fails", func(t *testing.T) {
		store := newFakeFriendStore()
		sink := &recordingSink{}
		svc := NewFriendshipService(store, sink)

		id, err := svc.SendRequest(1, 2, "Alice")
		require.NoError(t, err)
		require.NoError(t, svc.Respond(id, 2, true, "Bob"))

		_, err = svc.SendRequest(1, 2, "Alice")
		assertCode(t, err, apperrors.ErrCodeAlreadyFriends)
	})

	t.Run("re-request after rejection revives the same row", func(t *testing.T) {
		store := newFakeFriendStore()
		svc := NewFriendshipService(store, &recordingSink{})

		id, err := svc.SendRequest(1, 2, "Alice")
		require.NoError(t, err)
		require.NoError(t, svc.Respond(id, 2, false, "Bob"))

		again, err := svc.SendRequest(1, 2, "Alice")
		require.NoError(t, err)
		assert.Equal(t, id, again)

		req, _ := store.RequestByID(id)
		assert.Equal(t, models.RequestPending, req.Status)
	})

	t.Run("re-request after unfriending starts a fresh cycle", func(t *testing.T) {
		store := newFakeFriendStore()
		svc := NewFriendshipService(store, &recordingSink{})

		id, err := svc.SendRequest(1, 2, "Alice")
		require.NoError(t, err)
		require.NoError(t, svc.Respond(id, 2, true, "Bob"))
		require.NoError(t, svc.Unfriend(1, 2))

		again, err := svc.SendRequest(1, 2, "Alice")
		require.NoError(t, err)
		assert.Equal(t, id, again)

		req, _ := store.RequestByID(id)
		assert.Equal(t, models.RequestPending, req.Status)
	})
}

func TestFriendshipService_Respond(t *testing.T) {
	t.Run("accept creates the friendship and notifies the sender once", func(t *testing.T) {
		store := newFakeFriendStore()
		sink := &recordingSink{}
		svc := NewFriendshipService(store, sink)

		id, err := svc.SendRequest(1, 2, "Alice")
		require.NoError(t, err)
		require.NoError(t, svc.Respond(id, 2, true, "Bob"))

		friendship, err := store.FriendshipByPair(1, 2)
		require.NoError(t, err)
		require.NotNil(t, friendship)

		accepted := sink.ofType(models.NotificationFriendAccepted)
		require.Len(t, accepted, 1)
		assert.Equal(t, uint(1), accepted[0].RecipientID)
		assert.Equal(t, uint(2), accepted[0].ActorID)
	})

	t.Run("reject leaves no friendship and sends no notification", func(t *testing.T) {
		store := newFakeFriendStore()
		sink := &recordingSink{}
		svc := NewFriendshipService(store, sink)

		id, err := svc.SendRequest(1, 2, "Alice")
		require.NoError(t, err)
		require.NoError(t, svc.Respond(id, 2, false, "Bob"))

		friendship, _ := store.FriendshipByPair(1, 2)
		assert.Nil(t, friendship)
		assert.Empty(t, sink.ofType(models.NotificationFriendAccepted))
	})

	t.Run("only the recipient may respond", func(t *testing.T) {
		store := newFakeFriendStore()
		svc := NewFriendshipService(store, &recordingSink{})

		id, err := svc.SendRequest(1, 2, "Alice")
		require.NoError(t, err)

		assertCode(t, svc.Respond(id, 1, true, "Alice"), apperrors.ErrCodeForbidden)
		assertCode(t, svc.Respond(id, 3, true, "Carol"), apperrors.ErrCodeForbidden)
	})

	t.Run("responding to a missing or settled request is not found", func(t *testing.T) {
		store := newFakeFriendStore()
		svc := NewFriendshipService(store, &recordingSink{})

		assertCode(t, svc.Respond(99, 2, true, "Bob"), apperrors.ErrCodeNotFound)

		id, err := svc.SendRequest(1, 2, "Alice")
		require.NoError(t, err)
		require.NoError(t, svc.Respond(id, 2, false, "Bob"))
		assertCode(t, svc.Respond(id, 2, true, "Bob"), apperrors.ErrCodeNotFound)
	})
}

func TestFriendshipService_Cancel(t *testing.T) {
	t.Run("sender cancels a pending request", func(t *testing.T) {
		store := newFakeFriendStore()
		svc := NewFriendshipService(store, &recordingSink{})

		id, err := svc.SendRequest(1, 2, "Alice")
		require.NoError(t, err)
		require.NoError(t, svc.Cancel(id, 1))

		req, _ := store.RequestByID(id)
		assert.Equal(t, models.RequestCancelled, req.Status)
	})

	t.Run("only the sender may cancel", func(t *testing.T) {
		store := newFakeFriendStore()
		svc := NewFriendshipService(store, &recordingSink{})

		id, err := svc.SendRequest(1, 2, "Alice")
		require.NoError(t, err)
		assertCode(t, svc.Cancel(id, 2), apperrors.ErrCodeForbidden)
	})

	t.Run("cancelling a settled request fails validation", func(t *testing.T) {
		store := newFakeFriendStore()
		svc := NewFriendshipService(store, &recordingSink{})

		id, err := svc.SendRequest(1, 2, "Alice")
		require.NoError(t, err)
		require.NoError(t, svc.Respond(id, 2, true, "Bob"))
		assertCode(t, svc.Cancel(id, 1), apperrors.ErrCodeValidation)
	})
}

func TestFriendshipService_Unfriend(t *testing.T) {
	t.Run("removes an existing friendship", func(t *testing.T) {
		store := newFakeFriendStore()
		svc := NewFriendshipService(store, &recordingSink{})

		id, err := svc.SendRequest(1, 2, "Alice")
		require.NoError(t, err)
		require.NoError(t, svc.Respond(id, 2, true, "Bob"))

		require.NoError(t, svc.Unfriend(2, 1))
		friendship, _ := store.FriendshipByPair(1, 2)
		assert.Nil(t, friendship)
	})

	t.Run("unfriending a non-friend conflicts", func(t *testing.T) {
		svc := NewFriendshipService(newFakeFriendStore(), &recordingSink{})
		assertCode(t, svc.Unfriend(1, 2), apperrors.ErrCodeNotFriends)
	})

	t.Run("unfriending yourself fails validation", func(t *testing.T) {
		svc := NewFriendshipService(newFakeFriendStore(), &recordingSink{})
		assertCode(t, svc.Unfriend(1, 1), apperrors.ErrCodeValidation)
	})
}
