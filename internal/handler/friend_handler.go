package handler

import (
	"net/http"
	"strconv"
	"time"

	"fittrack/backend/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// FriendHandler serves the friendship graph endpoints.
type FriendHandler struct {
	db  *gorm.DB
	svc *service.FriendshipService
}

func NewFriendHandler(db *gorm.DB, svc *service.FriendshipService) *FriendHandler {
	return &FriendHandler{db: db, svc: svc}
}

// region --- DTOs ---

// SendRequestInput identifies the recipient of a friend request.
type SendRequestInput struct {
	ToID uint `json:"to_id" binding:"required" example:"2"`
}

// SendRequestResponse reports the created (or revived) request.
type SendRequestResponse struct {
	Ok        bool `json:"ok"`
	RequestID uint `json:"request_id"`
}

// RespondInput carries the action on a pending request.
type RespondInput struct {
	Action string `json:"action" binding:"required,oneof=accept reject cancel" example:"accept"`
}

// FriendRequestResponse is a pending incoming request with its sender.
type FriendRequestResponse struct {
	ID        uint        `json:"id"`
	From      UserSummary `json:"from"`
	CreatedAt time.Time   `json:"created_at"`
}

// endregion

// List godoc
// @Summary      List friends
// @Tags         friends
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   UserSummary
// @Failure      401  {object}  ErrorResponse
// @Router       /friends [get]
func (h *FriendHandler) List(c *gin.Context) {
	friends, err := h.svc.Friends(currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	summaries := make([]UserSummary, 0, len(friends))
	for _, f := range friends {
		summaries = append(summaries, newUserSummary(f))
	}
	c.JSON(http.StatusOK, summaries)
}

// Requests godoc
// @Summary      List pending incoming friend requests
// @Tags         friends
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   FriendRequestResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /friends/requests [get]
func (h *FriendHandler) Requests(c *gin.Context) {
	requests, err := h.svc.PendingRequests(currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]FriendRequestResponse, 0, len(requests))
	for _, req := range requests {
		responses = append(responses, FriendRequestResponse{
			ID:        req.ID,
			From:      newUserSummary(req.From),
			CreatedAt: req.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, responses)
}

// SendRequest godoc
// @Summary      Send a friend request
// @Description  Creates a pending request, or revives a rejected/cancelled one, and notifies the recipient.
// @Tags         friends
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body SendRequestInput true "Recipient"
// @Success      201  {object}  SendRequestResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse "Duplicate request or already friends"
// @Router       /friends/requests [post]
func (h *FriendHandler) SendRequest(c *gin.Context) {
	user, ok := currentUser(c, h.db)
	if !ok {
		return
	}

	var input SendRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	requestID, err := h.svc.SendRequest(user.ID, input.ToID, user.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, SendRequestResponse{Ok: true, RequestID: requestID})
}

// Respond godoc
// @Summary      Accept, reject or cancel a friend request
// @Description  Accept/reject are recipient actions; cancel is a sender action. All require the request to be pending.
// @Tags         friends
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  int           true  "Request ID"
// @Param        input body  RespondInput  true  "Action"
// @Success      200  {object}  OkResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /friends/requests/{id} [post]
func (h *FriendHandler) Respond(c *gin.Context) {
	user, ok := currentUser(c, h.db)
	if !ok {
		return
	}

	requestID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request ID"})
		return
	}

	var input RespondInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	switch input.Action {
	case "accept":
		err = h.svc.Respond(uint(requestID), user.ID, true, user.Name)
	case "reject":
		err = h.svc.Respond(uint(requestID), user.ID, false, user.Name)
	case "cancel":
		err = h.svc.Cancel(uint(requestID), user.ID)
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, OkResponse{Ok: true})
}

// Unfriend godoc
// @Summary      Remove a friend
// @Description  Deletes the friendship with the given user. Friend-request history is untouched.
// @Tags         friends
// @Produce      json
// @Security     BearerAuth
// @Param        userId  path  int  true  "Friend's user ID"
// @Success      200  {object}  OkResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse "Not friends"
// @Router       /friends/{userId} [delete]
func (h *FriendHandler) Unfriend(c *gin.Context) {
	otherID, err := strconv.ParseUint(c.Param("userId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	if err := h.svc.Unfriend(currentUserID(c), uint(otherID)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, OkResponse{Ok: true})
}
