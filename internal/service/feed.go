package service

import (
	"fittrack/backend/internal/models"
	"fittrack/backend/internal/security"
	apperrors "fittrack/backend/pkg/errors"
)

// PostStore is the persistence the feed service needs for interactions.
type PostStore interface {
	Post(id uint) (*models.Post, error)
	Like(userID, postID uint) (*models.Like, error)
	CreateLike(like *models.Like) error
	DeleteLike(id uint) error
	CreateComment(comment *models.Comment) error
}

// FeedService handles post interactions: the idempotent like toggle and
// comments, both with owner notification.
type FeedService struct {
	store    PostStore
	notifier NotificationSink
}

func NewFeedService(store PostStore, notifier NotificationSink) *FeedService {
	return &FeedService{store: store, notifier: notifier}
}

// ToggleLike likes an unliked post or unlikes a liked one. Returns the
// resulting liked state. The post owner is notified on like only, and
// never about their own likes.
func (s *FeedService) ToggleLike(userID, postID uint, userName string) (bool, error) {
	post, err := s.store.Post(postID)
	if err != nil {
		return false, apperrors.Wrap(err, apperrors.ErrCodeInternalError, "failed to look up post")
	}
	if post == nil {
		return false, apperrors.New(apperrors.ErrCodeNotFound, "post not found")
	}

	existing, err := s.store.Like(userID, postID)
	if err != nil {
		return false, apperrors.Wrap(err, apperrors.ErrCodeInternalError, "failed to look up like")
	}
	if existing != nil {
		if err := s.store.DeleteLike(existing.ID); err != nil {
			return false, apperrors.Wrap(err, apperrors.ErrCodeInternalError, "failed to unlike")
		}
		return false, nil
	}

	like := &models.Like{UserID: userID, PostID: postID}
	if err := s.store.CreateLike(like); err != nil {
		return false, apperrors.Wrap(err, apperrors.ErrCodeInternalError, "failed to like")
	}

	if err := s.notifier.Notify(Event{
		RecipientID: post.UserID,
		Type:        models.NotificationLike,
		ActorID:     userID,
		ActorName:   userName,
		RefID:       &like.ID,
		PostID:      &post.ID,
	}); err != nil {
		return false, err
	}
	return true, nil
}

// AddComment creates a comment on a post and notifies the post owner,
// unless the commenter is the owner.
func (s *FeedService) AddComment(userID, postID uint, text, userName string) (*models.Comment, error) {
	text = security.SanitizeText(text)
	if text == "" {
		return nil, apperrors.New(apperrors.ErrCodeValidation, "comment text required")
	}

	post, err := s.store.Post(postID)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternalError, "failed to look up post")
	}
	if post == nil {
		return nil, apperrors.New(apperrors.ErrCodeNotFound, "post not found")
	}

	comment := &models.Comment{UserID: userID, PostID: postID, Text: text}
	if err := s.store.CreateComment(comment); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternalError, "failed to add comment")
	}

	if err := s.notifier.Notify(Event{
		RecipientID: post.UserID,
		Type:        models.NotificationComment,
		ActorID:     userID,
		ActorName:   userName,
		RefID:       &comment.ID,
		PostID:      &postID,
	}); err != nil {
		return nil, err
	}
	return comment, nil
}
