package handler

import (
	"net/http"
	"strconv"
	"time"

	"fittrack/backend/internal/models"
	"fittrack/backend/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// MessageHandler serves direct messages and the derived conversation list.
type MessageHandler struct {
	db  *gorm.DB
	svc *service.MessageService
}

func NewMessageHandler(db *gorm.DB, svc *service.MessageService) *MessageHandler {
	return &MessageHandler{db: db, svc: svc}
}

// region --- DTOs ---

// SendMessageInput is the body for sending a direct message.
type SendMessageInput struct {
	Text       string `json:"text" binding:"required" example:"Hi"`
	ReceiverID uint   `json:"receiver_id" binding:"required" example:"2"`
}

// MessageResponse is one direct message with its sender.
type MessageResponse struct {
	ID         uint        `json:"id"`
	SenderID   uint        `json:"sender_id"`
	ReceiverID uint        `json:"receiver_id"`
	Text       string      `json:"text"`
	Read       bool        `json:"read"`
	CreatedAt  time.Time   `json:"created_at"`
	Sender     UserSummary `json:"sender"`
}

// ConversationResponse is one entry of the derived conversation list.
type ConversationResponse struct {
	UserID      uint        `json:"user_id"`
	User        UserSummary `json:"user"`
	LastAt      time.Time   `json:"last_at"`
	LastText    string      `json:"last_text"`
	UnreadCount int64       `json:"unread_count"`
}

// UnreadCountResponse carries a single unread counter.
type UnreadCountResponse struct {
	Count int64 `json:"count"`
}

func newMessageResponse(m models.Message) MessageResponse {
	return MessageResponse{
		ID:         m.ID,
		SenderID:   m.SenderID,
		ReceiverID: m.ReceiverID,
		Text:       m.Text,
		Read:       m.Read,
		CreatedAt:  m.CreatedAt,
		Sender:     newUserSummary(m.Sender),
	}
}

// endregion

// Thread godoc
// @Summary      Fetch the thread with a peer
// @Description  Returns all messages with the peer oldest-first. Side effect: every unread message from the peer is marked read.
// @Tags         messages
// @Produce      json
// @Security     BearerAuth
// @Param        with  query  int  true  "Peer user ID"
// @Success      200  {array}   MessageResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /messages [get]
func (h *MessageHandler) Thread(c *gin.Context) {
	peerID, err := strconv.ParseUint(c.Query("with"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "with (user id) required"})
		return
	}

	messages, err := h.svc.Thread(currentUserID(c), uint(peerID))
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]MessageResponse, 0, len(messages))
	for _, m := range messages {
		responses = append(responses, newMessageResponse(m))
	}
	c.JSON(http.StatusOK, responses)
}

// Send godoc
// @Summary      Send a direct message
// @Description  Stores the message and notifies the receiver.
// @Tags         messages
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body SendMessageInput true "Message"
// @Success      201  {object}  MessageResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /messages [post]
func (h *MessageHandler) Send(c *gin.Context) {
	user, ok := currentUser(c, h.db)
	if !ok {
		return
	}

	var input SendMessageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	msg, err := h.svc.Send(user.ID, input.ReceiverID, input.Text, user.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newMessageResponse(*msg))
}

// Clear godoc
// @Summary      Delete messages
// @Description  Hard-deletes the thread with a peer (?with=) or every message of the caller (?all=true). Irreversible.
// @Tags         messages
// @Produce      json
// @Security     BearerAuth
// @Param        with  query  int     false  "Peer user ID"
// @Param        all   query  bool    false  "Delete all threads"
// @Success      200  {object}  OkResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /messages [delete]
func (h *MessageHandler) Clear(c *gin.Context) {
	userID := currentUserID(c)

	if c.Query("all") == "true" {
		if err := h.svc.ClearAll(userID); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, OkResponse{Ok: true})
		return
	}

	peerID, err := strconv.ParseUint(c.Query("with"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "with (user id) or all=true required"})
		return
	}

	if err := h.svc.ClearThread(userID, uint(peerID)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, OkResponse{Ok: true})
}

// Conversations godoc
// @Summary      List conversations
// @Description  One entry per peer with any message history, newest activity first, each with the unread count from that peer.
// @Tags         messages
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   ConversationResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /messages/conversations [get]
func (h *MessageHandler) Conversations(c *gin.Context) {
	conversations, err := h.svc.Conversations(currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]ConversationResponse, 0, len(conversations))
	for _, conv := range conversations {
		responses = append(responses, ConversationResponse{
			UserID:      conv.PeerID,
			User:        newUserSummary(conv.Peer),
			LastAt:      conv.LastAt,
			LastText:    conv.LastText,
			UnreadCount: conv.UnreadCount,
		})
	}
	c.JSON(http.StatusOK, responses)
}

// UnreadCount godoc
// @Summary      Total unread message count
// @Tags         messages
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  UnreadCountResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /messages/unread-count [get]
func (h *MessageHandler) UnreadCount(c *gin.Context) {
	count, err := h.svc.UnreadTotal(currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, UnreadCountResponse{Count: count})
}
