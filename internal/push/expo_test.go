package push

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpoClient_Send(t *testing.T) {
	t.Run("posts a well-formed message and reports success", func(t *testing.T) {
		var got expoMessage
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			w.Write([]byte(`{"data":[{"status":"ok"}]}`))
		}))
		defer srv.Close()

		client := NewExpoClient(srv.URL)
		ok := client.Send(context.Background(), "ExponentPushToken[abc]", "FitTrack", "hello", map[string]interface{}{"type": "message"})
		assert.True(t, ok)
		assert.Equal(t, "ExponentPushToken[abc]", got.To)
		assert.Equal(t, "FitTrack", got.Title)
		assert.Equal(t, "hello", got.Body)
		assert.Equal(t, "default", got.Sound)
	})

	t.Run("skips tokens that are not Expo push tokens", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Error("unexpected request for a non-Expo token")
		}))
		defer srv.Close()

		client := NewExpoClient(srv.URL)
		assert.False(t, client.Send(context.Background(), "apns-token", "t", "b", nil))
		assert.False(t, client.Send(context.Background(), "", "t", "b", nil))
	})

	t.Run("reports failure for unregistered devices", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"data":[{"status":"error","details":{"error":"DeviceNotRegistered"}}]}`))
		}))
		defer srv.Close()

		client := NewExpoClient(srv.URL)
		assert.False(t, client.Send(context.Background(), "ExponentPushToken[gone]", "t", "b", nil))
	})

	t.Run("reports failure on server errors", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()

		client := NewExpoClient(srv.URL)
		assert.False(t, client.Send(context.Background(), "ExponentPushToken[abc]", "t", "b", nil))
	})
}

func TestBody(t *testing.T) {
	assert.Equal(t, "Alice sent you a friend request", Body("friend_request", "Alice"))
	assert.Equal(t, "Alice accepted your friend request", Body("friend_accepted", "Alice"))
	assert.Equal(t, "Alice liked your post", Body("like", "Alice"))
	assert.Equal(t, "Alice commented on your post", Body("comment", "Alice"))
	assert.Equal(t, "Alice sent you a message", Body("message", "Alice"))
	assert.Equal(t, "Someone liked your post", Body("like", ""))
}
