package repository

import (
	"fittrack/backend/internal/models"

	"gorm.io/gorm"
)

// MessageRepository owns Message persistence. Messages are hard-deleted;
// nothing here soft-deletes.
type MessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

func (r *MessageRepository) Create(msg *models.Message) error {
	if err := r.db.Create(msg).Error; err != nil {
		return err
	}
	// Reload with the sender for the response payload.
	return r.db.Preload("Sender").First(msg, msg.ID).Error
}

// Thread returns every message between the pair, oldest first.
func (r *MessageRepository) Thread(userID, peerID uint) ([]models.Message, error) {
	var messages []models.Message
	err := r.db.Where(
		"(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
		userID, peerID, peerID, userID,
	).
		Order("created_at ASC").
		Preload("Sender").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

// MarkThreadRead flips every unread message from peerID to userID to read.
func (r *MessageRepository) MarkThreadRead(userID, peerID uint) error {
	return r.db.Model(&models.Message{}).
		Where("receiver_id = ? AND sender_id = ? AND read = ?", userID, peerID, false).
		Update("read", true).Error
}

// LatestPerReceiver returns, for each distinct receiver, the most recent
// message userID sent them.
func (r *MessageRepository) LatestPerReceiver(senderID uint) ([]models.Message, error) {
	var messages []models.Message
	err := r.db.Raw(`
		SELECT DISTINCT ON (receiver_id) *
		FROM messages
		WHERE sender_id = ?
		ORDER BY receiver_id, created_at DESC`, senderID).
		Scan(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

// LatestPerSender returns, for each distinct sender, the most recent
// message they sent userID.
func (r *MessageRepository) LatestPerSender(receiverID uint) ([]models.Message, error) {
	var messages []models.Message
	err := r.db.Raw(`
		SELECT DISTINCT ON (sender_id) *
		FROM messages
		WHERE receiver_id = ?
		ORDER BY sender_id, created_at DESC`, receiverID).
		Scan(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

// UnreadCountsBySender groups userID's unread received messages by sender.
func (r *MessageRepository) UnreadCountsBySender(userID uint) (map[uint]int64, error) {
	var rows []struct {
		SenderID uint
		Count    int64
	}
	err := r.db.Model(&models.Message{}).
		Select("sender_id, COUNT(*) as count").
		Where("receiver_id = ? AND read = ?", userID, false).
		Group("sender_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[uint]int64, len(rows))
	for _, row := range rows {
		counts[row.SenderID] = row.Count
	}
	return counts, nil
}

// UnreadTotal counts all unread messages addressed to userID.
func (r *MessageRepository) UnreadTotal(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Message{}).
		Where("receiver_id = ? AND read = ?", userID, false).
		Count(&count).Error
	return count, err
}

// ClearThread hard-deletes every message between the pair.
func (r *MessageRepository) ClearThread(userID, peerID uint) error {
	return r.db.Where(
		"(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
		userID, peerID, peerID, userID,
	).Delete(&models.Message{}).Error
}

// ClearAll hard-deletes every message userID has sent or received.
func (r *MessageRepository) ClearAll(userID uint) error {
	return r.db.Where("sender_id = ? OR receiver_id = ?", userID, userID).
		Delete(&models.Message{}).Error
}

// Users returns the users with the given IDs keyed by ID, for annotating
// conversation entries.
func (r *MessageRepository) Users(ids []uint) (map[uint]models.User, error) {
	if len(ids) == 0 {
		return map[uint]models.User{}, nil
	}
	var users []models.User
	if err := r.db.Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, err
	}
	byID := make(map[uint]models.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}
	return byID, nil
}
