package push

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Sender delivers a push message to a single device token. Implementations
// are best-effort: a false return means the token did not receive the
// message, including the DeviceNotRegistered case.
type Sender interface {
	Send(ctx context.Context, token, title, body string, data map[string]interface{}) bool
}

// ExpoClient talks to the Expo push API.
// https://docs.expo.dev/push-notifications/sending-notifications/
type ExpoClient struct {
	url    string
	client *http.Client
}

func NewExpoClient(url string) *ExpoClient {
	return &ExpoClient{
		url: url,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type expoMessage struct {
	To        string                 `json:"to"`
	Title     string                 `json:"title"`
	Body      string                 `json:"body"`
	Data      map[string]interface{} `json:"data"`
	Sound     string                 `json:"sound"`
	ChannelID string                 `json:"channelId"`
}

type expoResponse struct {
	Data []struct {
		Status  string `json:"status"`
		Message string `json:"message"`
		Details struct {
			Error string `json:"error"`
		} `json:"details"`
	} `json:"data"`
}

// Send posts one message to the Expo API. Tokens that are not Expo push
// tokens are skipped outright.
func (e *ExpoClient) Send(ctx context.Context, token, title, body string, data map[string]interface{}) bool {
	if token == "" || !strings.HasPrefix(token, "ExponentPushToken[") {
		return false
	}

	if data == nil {
		data = map[string]interface{}{}
	}

	payload, err := json.Marshal(expoMessage{
		To:        token,
		Title:     title,
		Body:      body,
		Data:      data,
		Sound:     "default",
		ChannelID: "default",
	})
	if err != nil {
		return false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.url, bytes.NewReader(payload))
	if err != nil {
		return false
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := e.client.Do(req)
	if err != nil {
		return false
	}
	defer res.Body.Close()

	var parsed expoResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err == nil && len(parsed.Data) > 0 {
		status := parsed.Data[0].Status
		if status == "error" || parsed.Data[0].Details.Error == "DeviceNotRegistered" {
			return false
		}
	}

	return res.StatusCode >= 200 && res.StatusCode < 300
}

var _ Sender = (*ExpoClient)(nil)

// Body renders the user-facing push body for a notification type.
func Body(notificationType, actorName string) string {
	name := actorName
	if name == "" {
		name = "Someone"
	}

	switch notificationType {
	case "friend_request":
		return fmt.Sprintf("%s sent you a friend request", name)
	case "friend_accepted":
		return fmt.Sprintf("%s accepted your friend request", name)
	case "comment":
		return fmt.Sprintf("%s commented on your post", name)
	case "message":
		return fmt.Sprintf("%s sent you a message", name)
	case "like":
		return fmt.Sprintf("%s liked your post", name)
	default:
		return fmt.Sprintf("%s - new activity", name)
	}
}
