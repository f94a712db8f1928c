package service

import (
	"fittrack/backend/internal/models"
	apperrors "fittrack/backend/pkg/errors"
)

// FriendStore is the persistence the friendship service needs.
type FriendStore interface {
	RequestByPair(fromID, toID uint) (*models.FriendRequest, error)
	RequestByID(id uint) (*models.FriendRequest, error)
	CreateRequest(req *models.FriendRequest) error
	UpdateRequestStatus(id uint, status models.RequestStatus) error
	AcceptRequest(req *models.FriendRequest) error
	FriendshipByPair(userID, otherID uint) (*models.Friendship, error)
	DeleteFriendship(userID, otherID uint) (bool, error)
	Friends(userID uint) ([]models.User, error)
	PendingRequestsTo(userID uint) ([]models.FriendRequest, error)
}

// FriendshipService mediates the social-graph edge lifecycle. A request
// row is unique per ordered (from, to) pair and is reused across cycles:
// rejected or cancelled requests go back to pending on re-request.
type FriendshipService struct {
	store    FriendStore
	notifier NotificationSink
}

func NewFriendshipService(store FriendStore, notifier NotificationSink) *FriendshipService {
	return &FriendshipService{store: store, notifier: notifier}
}

// SendRequest creates (or revives) a pending request from fromID to toID
// and notifies the recipient. Returns the request ID.
func (s *FriendshipService) SendRequest(fromID, toID uint, fromName string) (uint, error) {
	if fromID == toID {
		return 0, apperrors.New(apperrors.ErrCodeValidation, "cannot send request to yourself")
	}

	existing, err := s.store.RequestByPair(fromID, toID)
	if err != nil {
		return 0, apperrors.Wrap(err, apperrors.ErrCodeInternalError, "failed to look up request")
	}

	// The friendship row, not the request's terminal status, decides
	// whether the pair are friends: an accepted request whose friendship
	// was later removed by unfriending must not block a fresh request.
	friendship, err := s.store.FriendshipByPair(fromID, toID)
	if err != nil {
		return 0, apperrors.Wrap(err, apperrors.ErrCodeInternalError, "failed to look up friendship")
	}
	if friendship != nil {
		return 0, apperrors.New(apperrors.ErrCodeAlreadyFriends, "already friends")
	}

	if existing != nil {
		switch existing.Status {
		case models.RequestPending:
			return 0, apperrors.New(apperrors.ErrCodeDuplicateRequest, "request already sent")
		case models.RequestAccepted, models.RequestRejected, models.RequestCancelled:
			// Reuse the row: a prior decline (or a friendship since
			// unfriended) does not block re-requesting.
			if err := s.store.UpdateRequestStatus(existing.ID, models.RequestPending); err != nil {
				return 0, apperrors.Wrap(err, apperrors.ErrCodeInternalError, "failed to revive request")
			}
			if err := s.notifyRequest(existing.ID, fromID, toID, fromName); err != nil {
				return 0, err
			}
			return existing.ID, nil
		}
	}

	req := &models.FriendRequest{FromID: fromID, ToID: toID, Status: models.RequestPending}
	if err := s.store.CreateRequest(req); err != nil {
		return 0, apperrors.Wrap(err, apperrors.ErrCodeInternalError, "failed to create request")
	}
	if err := s.notifyRequest(req.ID, fromID, toID, fromName); err != nil {
		return 0, err
	}
	return req.ID, nil
}

func (s *FriendshipService) notifyRequest(requestID, fromID, toID uint, fromName string) error {
	return s.notifier.Notify(Event{
		RecipientID: toID,
		Type:        models.NotificationFriendRequest,
		ActorID:     fromID,
		ActorName:   fromName,
		RefID:       &requestID,
	})
}

// Respond lets the recipient accept or reject a pending request. Accepting
// atomically materializes the friendship and notifies the original sender.
func (s *FriendshipService) Respond(requestID, actorID uint, accept bool, actorName string) error {
	req, err := s.store.RequestByID(requestID)
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeInternalError, "failed to look up request")
	}
	if req == nil {
		return apperrors.New(apperrors.ErrCodeNotFound, "request not found")
	}
	if req.ToID != actorID {
		return apperrors.New(apperrors.ErrCodeForbidden, "only the recipient may respond")
	}
	if req.Status != models.RequestPending {
		return apperrors.New(apperrors.ErrCodeNotFound, "request is not pending")
	}

	if !accept {
		if err := s.store.UpdateRequestStatus(req.ID, models.RequestRejected); err != nil {
			return apperrors.Wrap(err, apperrors.ErrCodeInternalError, "failed to reject request")
		}
		return nil
	}

	if err := s.store.AcceptRequest(req); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeInternalError, "failed to accept request")
	}
	return s.notifier.Notify(Event{
		RecipientID: req.FromID,
		Type:        models.NotificationFriendAccepted,
		ActorID:     actorID,
		ActorName:   actorName,
		RefID:       &req.ID,
	})
}

// Cancel lets the sender withdraw their own pending request.
func (s *FriendshipService) Cancel(requestID, actorID uint) error {
	req, err := s.store.RequestByID(requestID)
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeInternalError, "failed to look up request")
	}
	if req == nil {
		return apperrors.New(apperrors.ErrCodeNotFound, "request not found")
	}
	if req.FromID != actorID {
		return apperrors.New(apperrors.ErrCodeForbidden, "only the sender may cancel")
	}
	if req.Status != models.RequestPending {
		return apperrors.New(apperrors.ErrCodeValidation, "only pending requests can be cancelled")
	}

	if err := s.store.UpdateRequestStatus(req.ID, models.RequestCancelled); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeInternalError, "failed to cancel request")
	}
	return nil
}

// Unfriend deletes the friendship for the unordered pair. Request history
// is untouched, so unfriending and re-requesting starts a fresh cycle.
func (s *FriendshipService) Unfriend(userID, otherID uint) error {
	if userID == otherID {
		return apperrors.New(apperrors.ErrCodeValidation, "cannot unfriend yourself")
	}

	deleted, err := s.store.DeleteFriendship(userID, otherID)
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeInternalError, "failed to unfriend")
	}
	if !deleted {
		return apperrors.New(apperrors.ErrCodeNotFriends, "not friends")
	}
	return nil
}

// Friends lists the users on the far side of every friendship of userID.
func (s *FriendshipService) Friends(userID uint) ([]models.User, error) {
	friends, err := s.store.Friends(userID)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternalError, "failed to fetch friends")
	}
	return friends, nil
}

// PendingRequests lists pending requests addressed to userID.
func (s *FriendshipService) PendingRequests(userID uint) ([]models.FriendRequest, error) {
	requests, err := s.store.PendingRequestsTo(userID)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternalError, "failed to fetch requests")
	}
	return requests, nil
}
