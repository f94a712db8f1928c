package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"fittrack/backend/internal/models"
	"fittrack/backend/internal/repository"

	"github.com/gin-gonic/gin"
)

// NotificationHandler serves the in-app notification list and push token
// registration.
type NotificationHandler struct {
	repo *repository.NotificationRepository
}

func NewNotificationHandler(repo *repository.NotificationRepository) *NotificationHandler {
	return &NotificationHandler{repo: repo}
}

// NotificationResponse is one entry in the notification list.
type NotificationResponse struct {
	ID        uint         `json:"id"`
	Type      string       `json:"type"`
	Actor     *UserSummary `json:"actor,omitempty"`
	RefID     *uint        `json:"ref_id,omitempty"`
	PostID    *uint        `json:"post_id,omitempty"`
	Read      bool         `json:"read"`
	CreatedAt time.Time    `json:"created_at"`
}

// NotificationListResponse bundles the list with the unread count so
// clients can render the badge from one request.
type NotificationListResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	UnreadCount   int64                  `json:"unread_count"`
}

// PushTokenInput is the body for registering an Expo push token.
type PushTokenInput struct {
	Token string `json:"token" binding:"required"`
}

func newNotificationResponse(n models.Notification) NotificationResponse {
	resp := NotificationResponse{
		ID:        n.ID,
		Type:      string(n.Type),
		RefID:     n.RefID,
		PostID:    n.PostID,
		Read:      n.Read,
		CreatedAt: n.CreatedAt,
	}
	if n.Actor.ID != 0 {
		actor := newUserSummary(n.Actor)
		resp.Actor = &actor
	}
	return resp
}

// List godoc
// @Summary      List notifications
// @Description  The caller's 50 most recent notifications plus the unread count.
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  NotificationListResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /notifications [get]
func (h *NotificationHandler) List(c *gin.Context) {
	userID := currentUserID(c)

	notifications, err := h.repo.ListRecent(userID, 50)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch notifications"})
		return
	}
	unread, err := h.repo.UnreadCount(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch notifications"})
		return
	}

	out := make([]NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		out = append(out, newNotificationResponse(n))
	}
	c.JSON(http.StatusOK, NotificationListResponse{Notifications: out, UnreadCount: unread})
}

// UnreadCount godoc
// @Summary      Unread notification count
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  UnreadCountResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /notifications/unread-count [get]
func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	count, err := h.repo.UnreadCount(currentUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch unread count"})
		return
	}
	c.JSON(http.StatusOK, UnreadCountResponse{Count: count})
}

// MarkRead godoc
// @Summary      Mark one notification read
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  int  true  "Notification ID"
// @Success      200  {object}  OkResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /notifications/{id}/read [patch]
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid notification ID"})
		return
	}

	matched, err := h.repo.MarkRead(uint(id), currentUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update notification"})
		return
	}
	if !matched {
		c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
		return
	}
	c.JSON(http.StatusOK, OkResponse{Ok: true})
}

// ReadAll godoc
// @Summary      Mark all notifications read
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  OkResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /notifications/read-all [post]
func (h *NotificationHandler) ReadAll(c *gin.Context) {
	if err := h.repo.MarkAllRead(currentUserID(c)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update notifications"})
		return
	}
	c.JSON(http.StatusOK, OkResponse{Ok: true})
}

// RegisterToken godoc
// @Summary      Register a push token
// @Description  Stores an Expo push token for the caller. Re-registering the same token is a no-op.
// @Tags         notifications
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body PushTokenInput true "Push token"
// @Success      200  {object}  OkResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /push/token [post]
func (h *NotificationHandler) RegisterToken(c *gin.Context) {
	var input PushTokenInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token := strings.TrimSpace(input.Token)
	if token == "" || len(token) > 255 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid token"})
		return
	}

	if err := h.repo.UpsertToken(currentUserID(c), token); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register token"})
		return
	}
	c.JSON(http.StatusOK, OkResponse{Ok: true})
}
