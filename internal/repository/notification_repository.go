package repository

import (
	"fittrack/backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// NotificationRepository owns Notification and PushToken persistence.
type NotificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(n *models.Notification) error {
	return r.db.Create(n).Error
}

// ListRecent returns the newest notifications for userID with the actor
// preloaded for display.
func (r *NotificationRepository) ListRecent(userID uint, limit int) ([]models.Notification, error) {
	var notifications []models.Notification
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Preload("Actor").
		Find(&notifications).Error
	if err != nil {
		return nil, err
	}
	return notifications, nil
}

func (r *NotificationRepository) UnreadCount(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Count(&count).Error
	return count, err
}

// MarkRead marks one notification read, scoped to its owner. Reports
// whether a row matched.
func (r *NotificationRepository) MarkRead(id, userID uint) (bool, error) {
	result := r.db.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("read", true)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *NotificationRepository) MarkAllRead(userID uint) error {
	return r.db.Model(&models.Notification{}).
		Where("user_id = ?", userID).
		Update("read", true).Error
}

// UpsertToken registers a push token for a user; re-registering the same
// token is a no-op.
func (r *NotificationRepository) UpsertToken(userID uint, token string) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "token"}},
		DoNothing: true,
	}).Create(&models.PushToken{UserID: userID, Token: token}).Error
}

// Tokens returns all registered push tokens for a user.
func (r *NotificationRepository) Tokens(userID uint) ([]string, error) {
	var tokens []string
	err := r.db.Model(&models.PushToken{}).
		Where("user_id = ?", userID).
		Pluck("token", &tokens).Error
	if err != nil {
		return nil, err
	}
	return tokens, nil
}
