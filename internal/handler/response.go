package handler

import (
	"errors"
	"net/http"

	"fittrack/backend/internal/models"
	apperrors "fittrack/backend/pkg/errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ErrorResponse represents a generic error response.
type ErrorResponse struct {
	Error string `json:"error" example:"An error message"`
}

// OkResponse is the body for mutations with nothing else to report.
type OkResponse struct {
	Ok bool `json:"ok" example:"true"`
}

// UserSummary is the public shape of a user embedded in other payloads.
type UserSummary struct {
	ID        uint    `json:"id" example:"1"`
	Name      string  `json:"name" example:"Alice"`
	AvatarURL *string `json:"avatar_url"`
}

func newUserSummary(user models.User) UserSummary {
	return UserSummary{
		ID:        user.ID,
		Name:      user.Name,
		AvatarURL: user.AvatarURL,
	}
}

var statusByCode = map[string]int{
	apperrors.ErrCodeValidation:       http.StatusBadRequest,
	apperrors.ErrCodeUnauthorized:     http.StatusUnauthorized,
	apperrors.ErrCodeForbidden:        http.StatusForbidden,
	apperrors.ErrCodeNotFound:         http.StatusNotFound,
	apperrors.ErrCodeDuplicateRequest: http.StatusConflict,
	apperrors.ErrCodeAlreadyFriends:   http.StatusConflict,
	apperrors.ErrCodeNotFriends:       http.StatusConflict,
}

// respondError maps an AppError code to its HTTP status; anything else is
// a 500 with a generic message.
func respondError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if status, ok := statusByCode[appErr.Code]; ok {
			c.JSON(status, gin.H{"error": appErr.Message})
			return
		}
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}

// currentUserID reads the authenticated user ID set by the auth middleware.
func currentUserID(c *gin.Context) uint {
	userID, _ := c.Get("userID")
	return userID.(uint)
}

// currentUser loads the authenticated user's row.
func currentUser(c *gin.Context, db *gorm.DB) (*models.User, bool) {
	var user models.User
	if err := db.First(&user, currentUserID(c)).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authenticated user not found"})
		return nil, false
	}
	return &user, true
}
