package repository

import (
	"errors"

	"fittrack/backend/internal/models"

	"gorm.io/gorm"
)

// FriendRepository owns FriendRequest and Friendship persistence.
type FriendRepository struct {
	db *gorm.DB
}

func NewFriendRepository(db *gorm.DB) *FriendRepository {
	return &FriendRepository{db: db}
}

// RequestByPair returns the request for the ordered (from, to) pair, or
// nil when none exists.
func (r *FriendRepository) RequestByPair(fromID, toID uint) (*models.FriendRequest, error) {
	var req models.FriendRequest
	err := r.db.Where("from_id = ? AND to_id = ?", fromID, toID).First(&req).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// RequestByID returns the request with the given ID, or nil when missing.
func (r *FriendRepository) RequestByID(id uint) (*models.FriendRequest, error) {
	var req models.FriendRequest
	err := r.db.First(&req, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *FriendRepository) CreateRequest(req *models.FriendRequest) error {
	return r.db.Create(req).Error
}

func (r *FriendRepository) UpdateRequestStatus(id uint, status models.RequestStatus) error {
	return r.db.Model(&models.FriendRequest{}).Where("id = ?", id).
		Update("status", status).Error
}

// AcceptRequest marks the request accepted and materializes the symmetric
// friendship in a single transaction, so a crash between the two writes
// cannot leave them inconsistent.
func (r *FriendRepository) AcceptRequest(req *models.FriendRequest) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.FriendRequest{}).Where("id = ?", req.ID).
			Update("status", models.RequestAccepted).Error; err != nil {
			return err
		}
		friendship := models.Friendship{UserAID: req.FromID, UserBID: req.ToID}
		return tx.Create(&friendship).Error
	})
}

// FriendshipByPair looks up the friendship for the unordered pair, or nil
// when the users are not friends.
func (r *FriendRepository) FriendshipByPair(userID, otherID uint) (*models.Friendship, error) {
	a, b := userID, otherID
	if a > b {
		a, b = b, a
	}
	var friendship models.Friendship
	err := r.db.Where("user_a_id = ? AND user_b_id = ?", a, b).First(&friendship).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &friendship, nil
}

// DeleteFriendship removes the friendship for the unordered pair and
// reports whether a row was deleted.
func (r *FriendRepository) DeleteFriendship(userID, otherID uint) (bool, error) {
	a, b := userID, otherID
	if a > b {
		a, b = b, a
	}
	result := r.db.Where("user_a_id = ? AND user_b_id = ?", a, b).Delete(&models.Friendship{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Friends returns the users on the far side of every friendship involving
// userID.
func (r *FriendRepository) Friends(userID uint) ([]models.User, error) {
	var friends []models.User
	err := r.db.Table("users").
		Select("users.*").
		Joins("JOIN friendships ON (friendships.user_a_id = users.id OR friendships.user_b_id = users.id)").
		Where("(friendships.user_a_id = ? OR friendships.user_b_id = ?) AND users.id != ?",
			userID, userID, userID).
		Find(&friends).Error
	if err != nil {
		return nil, err
	}
	return friends, nil
}

// FriendIDs returns the IDs of all friends of userID.
func (r *FriendRepository) FriendIDs(userID uint) ([]uint, error) {
	var friendships []models.Friendship
	if err := r.db.Where("user_a_id = ? OR user_b_id = ?", userID, userID).
		Find(&friendships).Error; err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(friendships))
	for _, f := range friendships {
		if f.UserAID == userID {
			ids = append(ids, f.UserBID)
		} else {
			ids = append(ids, f.UserAID)
		}
	}
	return ids, nil
}

// PendingRequestsTo returns pending requests addressed to userID, with the
// sender preloaded for display.
func (r *FriendRepository) PendingRequestsTo(userID uint) ([]models.FriendRequest, error) {
	var requests []models.FriendRequest
	err := r.db.Where("to_id = ? AND status = ?", userID, models.RequestPending).
		Preload("From").
		Find(&requests).Error
	if err != nil {
		return nil, err
	}
	return requests, nil
}

// PendingRequestsFrom returns pending requests sent by userID.
func (r *FriendRepository) PendingRequestsFrom(userID uint) ([]models.FriendRequest, error) {
	var requests []models.FriendRequest
	err := r.db.Where("from_id = ? AND status = ?", userID, models.RequestPending).
		Find(&requests).Error
	if err != nil {
		return nil, err
	}
	return requests, nil
}
