package service

import (
	"context"
	"time"

	"fittrack/backend/internal/models"
	"fittrack/backend/internal/push"
	apperrors "fittrack/backend/pkg/errors"
	"fittrack/backend/pkg/logger"
)

const pushTitle = "FitTrack"

// Event describes one social action to fan out to its recipient.
type Event struct {
	RecipientID uint
	Type        models.NotificationType
	ActorID     uint
	ActorName   string
	RefID       *uint
	PostID      *uint
}

// NotificationSink receives fan-out events. Services emit through this so
// tests can observe fan-out without a store or a push provider.
type NotificationSink interface {
	Notify(ev Event) error
}

// NotificationStore is the persistence the notifier needs.
type NotificationStore interface {
	Create(n *models.Notification) error
	Tokens(userID uint) ([]string, error)
}

// Notifier writes Notification rows synchronously as part of the
// triggering action, then dispatches push messages best-effort in the
// background. Push failures never surface to the caller.
type Notifier struct {
	store  NotificationStore
	sender push.Sender
}

func NewNotifier(store NotificationStore, sender push.Sender) *Notifier {
	return &Notifier{store: store, sender: sender}
}

func (n *Notifier) Notify(ev Event) error {
	// A user never notifies themselves.
	if ev.RecipientID == ev.ActorID {
		return nil
	}

	row := &models.Notification{
		UserID:  ev.RecipientID,
		Type:    ev.Type,
		ActorID: ev.ActorID,
		RefID:   ev.RefID,
		PostID:  ev.PostID,
	}
	if err := n.store.Create(row); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeInternalError, "failed to create notification")
	}

	go n.dispatch(ev)
	return nil
}

// dispatch sends the push to every registered token of the recipient.
// Fire-and-forget: rejected tokens are logged, not pruned.
func (n *Notifier) dispatch(ev Event) {
	tokens, err := n.store.Tokens(ev.RecipientID)
	if err != nil {
		logger.Warn("failed to load push tokens", "user_id", ev.RecipientID, "error", err)
		return
	}
	if len(tokens) == 0 {
		return
	}

	data := map[string]interface{}{
		"type":    string(ev.Type),
		"actorId": ev.ActorID,
	}
	if ev.RefID != nil {
		data["refId"] = *ev.RefID
	}
	if ev.PostID != nil {
		data["postId"] = *ev.PostID
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	body := push.Body(string(ev.Type), ev.ActorName)
	for _, token := range tokens {
		if !n.sender.Send(ctx, token, pushTitle, body, data) {
			logger.Debug("push delivery failed", "user_id", ev.RecipientID, "type", ev.Type)
		}
	}
}

var _ NotificationSink = (*Notifier)(nil)
