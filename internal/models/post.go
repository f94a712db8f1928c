package models

import (
	"time"

	"gorm.io/gorm"
)

// Post is a progress photo shared to the feed.
type Post struct {
	gorm.Model
	UserID   uint   `gorm:"not null;index"`
	ImageURL string `gorm:"size:512;not null"`
	Caption  *string

	User     User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Comments []Comment `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
	Likes    []Like    `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
}

// Comment belongs to a post.
type Comment struct {
	gorm.Model
	UserID uint   `gorm:"not null"`
	PostID uint   `gorm:"not null;index"`
	Text   string `gorm:"not null"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// Like is unique per (user, post); liking again removes the row.
type Like struct {
	ID        uint `gorm:"primaryKey"`
	UserID    uint `gorm:"not null;uniqueIndex:idx_like_user_post"`
	PostID    uint `gorm:"not null;uniqueIndex:idx_like_user_post"`
	CreatedAt time.Time

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}
