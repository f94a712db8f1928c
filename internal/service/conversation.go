package service

import (
	"sort"
	"time"

	"fittrack/backend/internal/models"
	"fittrack/backend/internal/security"
	apperrors "fittrack/backend/pkg/errors"
)

// MessageStore is the persistence the message service needs.
type MessageStore interface {
	Create(msg *models.Message) error
	Thread(userID, peerID uint) ([]models.Message, error)
	MarkThreadRead(userID, peerID uint) error
	LatestPerReceiver(senderID uint) ([]models.Message, error)
	LatestPerSender(receiverID uint) ([]models.Message, error)
	UnreadCountsBySender(userID uint) (map[uint]int64, error)
	UnreadTotal(userID uint) (int64, error)
	ClearThread(userID, peerID uint) error
	ClearAll(userID uint) error
	Users(ids []uint) (map[uint]models.User, error)
}

// Conversation is a derived view: one entry per peer the user has ever
// exchanged messages with, annotated with the latest message and the count
// of unread messages received from that peer.
type Conversation struct {
	PeerID      uint
	Peer        models.User
	LastAt      time.Time
	LastText    string
	UnreadCount int64
}

// MessageService handles direct messages and the derived conversation
// list.
type MessageService struct {
	store    MessageStore
	notifier NotificationSink
}

func NewMessageService(store MessageStore, notifier NotificationSink) *MessageService {
	return &MessageService{store: store, notifier: notifier}
}

// Send stores a message and notifies the receiver.
func (s *MessageService) Send(senderID, receiverID uint, text, senderName string) (*models.Message, error) {
	text = security.SanitizeText(text)
	if text == "" {
		return nil, apperrors.New(apperrors.ErrCodeValidation, "text required")
	}
	if receiverID == 0 {
		return nil, apperrors.New(apperrors.ErrCodeValidation, "receiver required")
	}

	msg := &models.Message{SenderID: senderID, ReceiverID: receiverID, Text: text}
	if err := s.store.Create(msg); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternalError, "failed to send message")
	}

	if err := s.notifier.Notify(Event{
		RecipientID: receiverID,
		Type:        models.NotificationMessage,
		ActorID:     senderID,
		ActorName:   senderName,
		RefID:       &msg.ID,
	}); err != nil {
		return nil, err
	}
	return msg, nil
}

// Thread returns all messages between the user and the peer, oldest first,
// and — as an explicit side effect — marks every unread message from the
// peer as read. Client unread badges depend on this read-on-fetch
// transition.
func (s *MessageService) Thread(userID, peerID uint) ([]models.Message, error) {
	messages, err := s.store.Thread(userID, peerID)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternalError, "failed to fetch messages")
	}
	if err := s.store.MarkThreadRead(userID, peerID); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternalError, "failed to mark thread read")
	}
	return messages, nil
}

// Conversations derives the per-peer conversation list: exactly one entry
// per peer with any message history, newest activity first.
func (s *MessageService) Conversations(userID uint) ([]Conversation, error) {
	received, err := s.store.LatestPerSender(userID)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternalError, "failed to fetch conversations")
	}
	sent, err := s.store.LatestPerReceiver(userID)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternalError, "failed to fetch conversations")
	}

	// Seed from the received side, then let a sent message win only when
	// strictly newer. Equal timestamps keep the received entry.
	byPeer := make(map[uint]Conversation)
	for _, m := range received {
		byPeer[m.SenderID] = Conversation{PeerID: m.SenderID, LastAt: m.CreatedAt, LastText: m.Text}
	}
	for _, m := range sent {
		existing, ok := byPeer[m.ReceiverID]
		if !ok || m.CreatedAt.After(existing.LastAt) {
			byPeer[m.ReceiverID] = Conversation{PeerID: m.ReceiverID, LastAt: m.CreatedAt, LastText: m.Text}
		}
	}

	unread, err := s.store.UnreadCountsBySender(userID)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternalError, "failed to count unread messages")
	}

	peerIDs := make([]uint, 0, len(byPeer))
	for id := range byPeer {
		peerIDs = append(peerIDs, id)
	}
	peers, err := s.store.Users(peerIDs)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternalError, "failed to load peers")
	}

	list := make([]Conversation, 0, len(byPeer))
	for id, conv := range byPeer {
		conv.Peer = peers[id]
		conv.UnreadCount = unread[id]
		list = append(list, conv)
	}

	sort.Slice(list, func(i, j int) bool {
		return list[i].LastAt.After(list[j].LastAt)
	})
	return list, nil
}

// UnreadTotal counts all unread messages addressed to the user.
func (s *MessageService) UnreadTotal(userID uint) (int64, error) {
	count, err := s.store.UnreadTotal(userID)
	if err != nil {
		return 0, apperrors.Wrap(err, apperrors.ErrCodeInternalError, "failed to count unread messages")
	}
	return count, nil
}

// ClearThread hard-deletes the thread with a peer. Irreversible.
func (s *MessageService) ClearThread(userID, peerID uint) error {
	if userID == peerID {
		return apperrors.New(apperrors.ErrCodeValidation, "cannot clear a thread with yourself")
	}
	if err := s.store.ClearThread(userID, peerID); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeInternalError, "failed to clear thread")
	}
	return nil
}

// ClearAll hard-deletes every message the user has sent or received.
func (s *MessageService) ClearAll(userID uint) error {
	if err := s.store.ClearAll(userID); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeInternalError, "failed to clear messages")
	}
	return nil
}
