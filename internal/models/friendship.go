package models

import (
	"time"

	"gorm.io/gorm"
)

// Friendship is an unordered pair of users stored in canonical order
// (lower ID first) so the composite unique index covers both directions.
// Rows are only ever created by an accepted FriendRequest.
type Friendship struct {
	ID        uint `gorm:"primaryKey"`
	UserAID   uint `gorm:"not null;uniqueIndex:idx_friendship_pair"`
	UserBID   uint `gorm:"not null;uniqueIndex:idx_friendship_pair"`
	CreatedAt time.Time

	UserA User `gorm:"foreignKey:UserAID;constraint:OnDelete:CASCADE"`
	UserB User `gorm:"foreignKey:UserBID;constraint:OnDelete:CASCADE"`
}

func (Friendship) TableName() string {
	return "friendships"
}

// BeforeCreate normalizes the pair to canonical order.
func (f *Friendship) BeforeCreate(_ *gorm.DB) error {
	if f.UserAID > f.UserBID {
		f.UserAID, f.UserBID = f.UserBID, f.UserAID
	}
	return nil
}
