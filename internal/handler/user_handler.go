package handler

import (
	"net/http"
	"strconv"
	"strings"

	"fittrack/backend/internal/models"
	"fittrack/backend/internal/repository"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// UserHandler serves user lookup, search and friend suggestions.
type UserHandler struct {
	db      *gorm.DB
	friends *repository.FriendRepository
}

func NewUserHandler(db *gorm.DB, friends *repository.FriendRepository) *UserHandler {
	return &UserHandler{db: db, friends: friends}
}

// escapeLike neutralizes LIKE metacharacters so the search term matches
// literally instead of acting as a user-controlled pattern.
var escapeLike = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace

// SearchResult is a user search hit annotated with the viewer's
// relationship to it.
type SearchResult struct {
	ID             uint    `json:"id"`
	Name           string  `json:"name"`
	AvatarURL      *string `json:"avatar_url"`
	IsFriend       bool    `json:"is_friend"`
	PendingRequest bool    `json:"pending_request"`
	SentRequestID  *uint   `json:"sent_request_id"`
}

// Search godoc
// @Summary      Search for users
// @Description  Searches other users by name or email substring; results are annotated with friendship state.
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        q  query  string  true  "Search query (min 2 chars)"
// @Success      200  {array}   SearchResult
// @Failure      401  {object}  ErrorResponse
// @Router       /users/search [get]
func (h *UserHandler) Search(c *gin.Context) {
	viewerID := currentUserID(c)
	q := strings.TrimSpace(c.Query("q"))
	if len(q) < 2 {
		c.JSON(http.StatusOK, []SearchResult{})
		return
	}

	pattern := "%" + escapeLike(q) + "%"
	var users []models.User
	if err := h.db.Where("id != ?", viewerID).
		Where("name ILIKE ? OR email ILIKE ?", pattern, pattern).
		Limit(20).
		Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Search failed"})
		return
	}

	results, err := h.annotate(viewerID, users)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Search failed"})
		return
	}
	c.JSON(http.StatusOK, results)
}

// Suggested godoc
// @Summary      Suggested users
// @Description  Lists recent users who are not yet friends and have no pending request from the viewer.
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   SearchResult
// @Failure      401  {object}  ErrorResponse
// @Router       /users/suggested [get]
func (h *UserHandler) Suggested(c *gin.Context) {
	viewerID := currentUserID(c)

	friendIDs, err := h.friends.FriendIDs(viewerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch suggestions"})
		return
	}
	pending, err := h.friends.PendingRequestsFrom(viewerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch suggestions"})
		return
	}

	exclude := []uint{viewerID}
	exclude = append(exclude, friendIDs...)
	for _, req := range pending {
		exclude = append(exclude, req.ToID)
	}

	var users []models.User
	if err := h.db.Where("id NOT IN ?", exclude).
		Order("created_at DESC").
		Limit(24).
		Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch suggestions"})
		return
	}

	results := make([]SearchResult, 0, len(users))
	for _, u := range users {
		results = append(results, SearchResult{
			ID:        u.ID,
			Name:      u.Name,
			AvatarURL: u.AvatarURL,
		})
	}
	c.JSON(http.StatusOK, results)
}

// GetByID godoc
// @Summary      Get user by ID
// @Description  Retrieves the public profile for a specific user.
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "User ID"
// @Success      200  {object}  UserSummary
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /users/{id} [get]
func (h *UserHandler) GetByID(c *gin.Context) {
	targetID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	var user models.User
	if err := h.db.First(&user, uint(targetID)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, newUserSummary(user))
}

func (h *UserHandler) annotate(viewerID uint, users []models.User) ([]SearchResult, error) {
	friendIDs, err := h.friends.FriendIDs(viewerID)
	if err != nil {
		return nil, err
	}
	friendSet := make(map[uint]bool, len(friendIDs))
	for _, id := range friendIDs {
		friendSet[id] = true
	}

	pending, err := h.friends.PendingRequestsFrom(viewerID)
	if err != nil {
		return nil, err
	}
	sentRequestByTo := make(map[uint]uint, len(pending))
	for _, req := range pending {
		sentRequestByTo[req.ToID] = req.ID
	}

	results := make([]SearchResult, 0, len(users))
	for _, u := range users {
		result := SearchResult{
			ID:        u.ID,
			Name:      u.Name,
			AvatarURL: u.AvatarURL,
			IsFriend:  friendSet[u.ID],
		}
		if reqID, ok := sentRequestByTo[u.ID]; ok {
			result.PendingRequest = true
			id := reqID
			result.SentRequestID = &id
		}
		results = append(results, result)
	}
	return results, nil
}
