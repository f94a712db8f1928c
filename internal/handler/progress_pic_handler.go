package handler

import (
	"net/http"
	"strconv"

	"fittrack/backend/internal/models"
	"fittrack/backend/internal/security"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ProgressPicHandler serves the caller's private progress photos.
type ProgressPicHandler struct {
	db *gorm.DB
}

func NewProgressPicHandler(db *gorm.DB) *ProgressPicHandler {
	return &ProgressPicHandler{db: db}
}

// ProgressPicInput is the body for adding a progress photo.
type ProgressPicInput struct {
	ImageURL string `json:"image_url" binding:"required,url"`
	Label    string `json:"label"`
}

// List godoc
// @Summary      List progress pics
// @Description  The caller's progress photos, newest first, paginated.
// @Tags         progress-pics
// @Produce      json
// @Security     BearerAuth
// @Param        page   query  int  false  "Page number"     default(1)
// @Param        limit  query  int  false  "Items per page"  default(25)
// @Success      200  {object}  PaginatedResponse[models.ProgressPic]
// @Failure      401  {object}  ErrorResponse
// @Router       /progress-pics [get]
func (h *ProgressPicHandler) List(c *gin.Context) {
	page, limit := pageParams(c, 25, 100)

	query := h.db.Where("user_id = ?", currentUserID(c)).Order("created_at DESC")
	response, err := Paginate[models.ProgressPic](query, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch progress pics"})
		return
	}
	c.JSON(http.StatusOK, response)
}

// Create godoc
// @Summary      Add a progress pic
// @Tags         progress-pics
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body ProgressPicInput true "Photo"
// @Success      201  {object}  models.ProgressPic
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /progress-pics [post]
func (h *ProgressPicHandler) Create(c *gin.Context) {
	var input ProgressPicInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	pic := models.ProgressPic{UserID: currentUserID(c), ImageURL: input.ImageURL}
	if label := security.SanitizeText(input.Label); label != "" {
		pic.Label = &label
	}

	if err := h.db.Create(&pic).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add progress pic"})
		return
	}
	c.JSON(http.StatusCreated, pic)
}

// Delete godoc
// @Summary      Delete a progress pic
// @Tags         progress-pics
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  int  true  "Pic ID"
// @Success      200  {object}  OkResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /progress-pics/{id} [delete]
func (h *ProgressPicHandler) Delete(c *gin.Context) {
	picID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid pic ID"})
		return
	}

	var pic models.ProgressPic
	if err := h.db.First(&pic, uint(picID)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Progress pic not found"})
		return
	}
	if pic.UserID != currentUserID(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		return
	}

	if err := h.db.Delete(&pic).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete"})
		return
	}
	c.JSON(http.StatusOK, OkResponse{Ok: true})
}
