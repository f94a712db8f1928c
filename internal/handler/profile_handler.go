package handler

import (
	"net/http"

	"fittrack/backend/internal/models"
	"fittrack/backend/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ProfileHandler serves the authenticated user's profile stats and the
// derived energy estimate.
type ProfileHandler struct {
	db *gorm.DB
}

func NewProfileHandler(db *gorm.DB) *ProfileHandler {
	return &ProfileHandler{db: db}
}

// region --- DTOs ---

// ProfileResponse is the authenticated user's profile stats.
type ProfileResponse struct {
	Age          *int     `json:"age"`
	Sex          *string  `json:"sex"`
	HeightInches *float64 `json:"height_inches"`
	WeightLbs    *float64 `json:"weight_lbs"`
	AvatarURL    *string  `json:"avatar_url"`
}

// ProfileUpdateInput carries partial profile updates. Absent fields are
// left untouched; out-of-range values are ignored rather than rejected.
type ProfileUpdateInput struct {
	AvatarURL    *string  `json:"avatar_url"`
	Age          *int     `json:"age"`
	Sex          *string  `json:"sex"`
	HeightInches *float64 `json:"height_inches"`
	WeightLbs    *float64 `json:"weight_lbs"`
}

// endregion

// Get godoc
// @Summary      Get profile stats
// @Tags         profile
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ProfileResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /profile [get]
func (h *ProfileHandler) Get(c *gin.Context) {
	user, ok := currentUser(c, h.db)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, ProfileResponse{
		Age:          user.Age,
		Sex:          user.Sex,
		HeightInches: user.HeightInches,
		WeightLbs:    user.WeightLbs,
		AvatarURL:    user.AvatarURL,
	})
}

// Update godoc
// @Summary      Update profile stats
// @Description  Partially updates profile stats and avatar. Out-of-range values are silently dropped.
// @Tags         profile
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body ProfileUpdateInput true "Fields to update"
// @Success      200  {object}  OkResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /profile [patch]
func (h *ProfileHandler) Update(c *gin.Context) {
	userID := currentUserID(c)

	var input ProfileUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := map[string]interface{}{}
	if input.AvatarURL != nil {
		updates["avatar_url"] = *input.AvatarURL
	}
	if input.Age != nil && *input.Age >= 0 && *input.Age <= 150 {
		updates["age"] = *input.Age
	}
	if input.Sex != nil {
		updates["sex"] = *input.Sex
	}
	if input.HeightInches != nil && *input.HeightInches >= 0 && *input.HeightInches <= 120 {
		updates["height_inches"] = *input.HeightInches
	}
	if input.WeightLbs != nil && *input.WeightLbs >= 0 && *input.WeightLbs <= 1000 {
		updates["weight_lbs"] = *input.WeightLbs
	}

	if len(updates) > 0 {
		if err := h.db.Model(&models.User{}).Where("id = ?", userID).
			Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Update failed"})
			return
		}
	}

	c.JSON(http.StatusOK, OkResponse{Ok: true})
}

// Energy godoc
// @Summary      Derived BMR/TDEE estimate
// @Description  Computes the Mifflin-St Jeor basal metabolic rate and activity-adjusted TDEE from the stored profile stats.
// @Tags         profile
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  service.EnergyEstimate
// @Failure      400  {object}  ErrorResponse "Profile stats incomplete"
// @Failure      401  {object}  ErrorResponse
// @Router       /profile/energy [get]
func (h *ProfileHandler) Energy(c *gin.Context) {
	user, ok := currentUser(c, h.db)
	if !ok {
		return
	}

	if user.Age == nil || user.Sex == nil || user.HeightInches == nil || user.WeightLbs == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Set age, sex, height and weight first"})
		return
	}

	estimate, err := service.Energy(*user.Sex, *user.Age, *user.HeightInches, *user.WeightLbs)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, estimate)
}
