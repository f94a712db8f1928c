package models

import "time"

// Message is an immutable direct message. Read flips false->true only when
// the receiver fetches the thread with the sender. Deletion is a hard
// delete, so there is no DeletedAt column.
type Message struct {
	ID         uint   `gorm:"primaryKey"`
	SenderID   uint   `gorm:"not null;index"`
	ReceiverID uint   `gorm:"not null;index"`
	Text       string `gorm:"not null"`
	Read       bool   `gorm:"not null;default:false;index"`
	CreatedAt  time.Time

	Sender   User `gorm:"foreignKey:SenderID;constraint:OnDelete:CASCADE"`
	Receiver User `gorm:"foreignKey:ReceiverID;constraint:OnDelete:CASCADE"`
}
