package handler

import (
	"net/http"
	"regexp"
	"strconv"

	"fittrack/backend/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var logDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// HealthLogHandler serves daily health metric logs.
type HealthLogHandler struct {
	db *gorm.DB
}

func NewHealthLogHandler(db *gorm.DB) *HealthLogHandler {
	return &HealthLogHandler{db: db}
}

// HealthLogInput upserts one day's metrics. Absent fields keep their
// stored values; the (user, log_date) pair is the upsert key.
type HealthLogInput struct {
	LogDate     string   `json:"log_date" binding:"required" example:"2026-08-29"`
	Weight      *float64 `json:"weight"`
	Calories    *int     `json:"calories"`
	Protein     *int     `json:"protein"`
	Carbs       *int     `json:"carbs"`
	Fat         *int     `json:"fat"`
	SleepHours  *float64 `json:"sleep_hours"`
	EnergyLevel *int     `json:"energy_level"`
	Steps       *int     `json:"steps"`
}

// List godoc
// @Summary      List health logs
// @Description  The caller's logs, newest date first.
// @Tags         health
// @Produce      json
// @Security     BearerAuth
// @Param        limit  query  int  false  "Max entries"  default(30)
// @Success      200  {array}   models.HealthLog
// @Failure      401  {object}  ErrorResponse
// @Router       /health-logs [get]
func (h *HealthLogHandler) List(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "30"))
	if err != nil || limit < 1 {
		limit = 30
	}
	if limit > 500 {
		limit = 500
	}

	var logs []models.HealthLog
	if err := h.db.Where("user_id = ?", currentUserID(c)).
		Order("log_date DESC").
		Limit(limit).
		Find(&logs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch logs"})
		return
	}
	c.JSON(http.StatusOK, logs)
}

// Upsert godoc
// @Summary      Save a day's metrics
// @Description  Creates or updates the log for (user, date). Only provided fields change.
// @Tags         health
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body HealthLogInput true "Metrics"
// @Success      200  {object}  models.HealthLog
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /health-logs [post]
func (h *HealthLogHandler) Upsert(c *gin.Context) {
	userID := currentUserID(c)

	var input HealthLogInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !logDatePattern.MatchString(input.LogDate) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "log_date required (YYYY-MM-DD)"})
		return
	}

	updates := map[string]interface{}{}
	if input.Weight != nil {
		updates["weight"] = *input.Weight
	}
	if input.Calories != nil {
		updates["calories"] = *input.Calories
	}
	if input.Protein != nil {
		updates["protein"] = *input.Protein
	}
	if input.Carbs != nil {
		updates["carbs"] = *input.Carbs
	}
	if input.Fat != nil {
		updates["fat"] = *input.Fat
	}
	if input.SleepHours != nil {
		updates["sleep_hours"] = *input.SleepHours
	}
	if input.EnergyLevel != nil && *input.EnergyLevel >= 1 && *input.EnergyLevel <= 10 {
		updates["energy_level"] = *input.EnergyLevel
	}
	if input.Steps != nil {
		updates["steps"] = *input.Steps
	}

	log := models.HealthLog{
		UserID:     userID,
		LogDate:    input.LogDate,
		Weight:     input.Weight,
		Calories:   input.Calories,
		Protein:    input.Protein,
		Carbs:      input.Carbs,
		Fat:        input.Fat,
		SleepHours: input.SleepHours,
		Steps:      input.Steps,
	}
	if input.EnergyLevel != nil && *input.EnergyLevel >= 1 && *input.EnergyLevel <= 10 {
		log.EnergyLevel = input.EnergyLevel
	}

	conflict := clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "log_date"}},
		DoNothing: true,
	}
	if len(updates) > 0 {
		conflict.DoNothing = false
		conflict.DoUpdates = clause.Assignments(updates)
	}

	err := h.db.Clauses(conflict).Create(&log).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save log"})
		return
	}

	// Reload to return the merged row after a conflict update.
	if err := h.db.Where("user_id = ? AND log_date = ?", userID, input.LogDate).
		First(&log).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save log"})
		return
	}
	c.JSON(http.StatusOK, log)
}

// Delete godoc
// @Summary      Delete a health log
// @Tags         health
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  int  true  "Log ID"
// @Success      200  {object}  OkResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /health-logs/{id} [delete]
func (h *HealthLogHandler) Delete(c *gin.Context) {
	logID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid log ID"})
		return
	}

	var log models.HealthLog
	if err := h.db.First(&log, uint(logID)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Log not found"})
		return
	}
	if log.UserID != currentUserID(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		return
	}

	if err := h.db.Delete(&log).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete"})
		return
	}
	c.JSON(http.StatusOK, OkResponse{Ok: true})
}
