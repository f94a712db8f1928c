package repository

import (
	"errors"

	"fittrack/backend/internal/models"

	"gorm.io/gorm"
)

// PostRepository covers the post interactions the feed service needs
// (likes and comments). Post CRUD itself lives in the handlers.
type PostRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) *PostRepository {
	return &PostRepository{db: db}
}

// Post returns the post with the given ID, or nil when missing.
func (r *PostRepository) Post(id uint) (*models.Post, error) {
	var post models.Post
	err := r.db.First(&post, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// Like returns the user's like on a post, or nil when absent.
func (r *PostRepository) Like(userID, postID uint) (*models.Like, error) {
	var like models.Like
	err := r.db.Where("user_id = ? AND post_id = ?", userID, postID).First(&like).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &like, nil
}

func (r *PostRepository) CreateLike(like *models.Like) error {
	return r.db.Create(like).Error
}

func (r *PostRepository) DeleteLike(id uint) error {
	return r.db.Delete(&models.Like{}, id).Error
}

func (r *PostRepository) CreateComment(comment *models.Comment) error {
	if err := r.db.Create(comment).Error; err != nil {
		return err
	}
	return r.db.Preload("User").First(comment, comment.ID).Error
}
