package models

import "gorm.io/gorm"

// RequestStatus is the lifecycle state of a friend request.
// Legal transitions: pending -> accepted | rejected | cancelled, and
// rejected/cancelled -> pending when the sender re-requests. The row for an
// ordered (from, to) pair is reused across cycles rather than re-inserted,
// so only the latest cycle is visible.
type RequestStatus string

const (
	RequestPending   RequestStatus = "pending"
	RequestAccepted  RequestStatus = "accepted"
	RequestRejected  RequestStatus = "rejected"
	RequestCancelled RequestStatus = "cancelled"
)

// FriendRequest is a directed edge from the sender to the recipient.
type FriendRequest struct {
	gorm.Model
	FromID uint          `gorm:"not null;uniqueIndex:idx_friend_request_pair"`
	ToID   uint          `gorm:"not null;uniqueIndex:idx_friend_request_pair"`
	Status RequestStatus `gorm:"type:varchar(20);not null;default:'pending'"`

	From User `gorm:"foreignKey:FromID;constraint:OnDelete:CASCADE"`
	To   User `gorm:"foreignKey:ToID;constraint:OnDelete:CASCADE"`
}
