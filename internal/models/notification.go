package models

import (
	"time"

	"gorm.io/gorm"
)

// NotificationType identifies the social event behind a notification.
type NotificationType string

const (
	NotificationFriendRequest  NotificationType = "friend_request"
	NotificationFriendAccepted NotificationType = "friend_accepted"
	NotificationLike           NotificationType = "like"
	NotificationComment        NotificationType = "comment"
	NotificationMessage        NotificationType = "message"
)

// Notification is a fan-out record written alongside the triggering social
// action. The actor is never its own recipient.
type Notification struct {
	gorm.Model
	UserID  uint             `gorm:"not null;index"` // recipient
	Type    NotificationType `gorm:"type:varchar(20);not null"`
	ActorID uint             `gorm:"not null"`
	RefID   *uint            // id of the triggering entity (message, like, comment, request)
	PostID  *uint
	Read    bool `gorm:"not null;default:false"`

	Actor User `gorm:"foreignKey:ActorID;constraint:OnDelete:CASCADE"`
}

// PushToken is a device token registered for push delivery. Upsert-only;
// stale tokens are currently never pruned.
type PushToken struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"not null;uniqueIndex:idx_push_user_token"`
	Token     string `gorm:"size:255;not null;uniqueIndex:idx_push_user_token"`
	CreatedAt time.Time

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}
