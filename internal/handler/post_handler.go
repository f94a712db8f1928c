package handler

import (
	"net/http"
	"strconv"
	"time"

	"fittrack/backend/internal/models"
	"fittrack/backend/internal/security"
	"fittrack/backend/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// PostHandler serves the progress-photo feed.
type PostHandler struct {
	db   *gorm.DB
	feed *service.FeedService
}

func NewPostHandler(db *gorm.DB, feed *service.FeedService) *PostHandler {
	return &PostHandler{db: db, feed: feed}
}

// region --- DTOs ---

// PostInput is the body for creating a feed post.
type PostInput struct {
	ImageURL string `json:"image_url" binding:"required,url"`
	Caption  string `json:"caption"`
}

// CommentInput is the body for commenting on a post.
type CommentInput struct {
	Text string `json:"text" binding:"required" example:"Great progress!"`
}

// CommentResponse is one comment with its author.
type CommentResponse struct {
	ID        uint        `json:"id"`
	Text      string      `json:"text"`
	CreatedAt time.Time   `json:"created_at"`
	User      UserSummary `json:"user"`
}

// PostResponse is one feed post with comments and like user IDs.
type PostResponse struct {
	ID        uint              `json:"id"`
	ImageURL  string            `json:"image_url"`
	Caption   *string           `json:"caption"`
	CreatedAt time.Time         `json:"created_at"`
	User      UserSummary       `json:"user"`
	Comments  []CommentResponse `json:"comments"`
	LikeIDs   []uint            `json:"like_user_ids"`
}

// LikeResponse reports the resulting liked state of a toggle.
type LikeResponse struct {
	Liked bool `json:"liked"`
}

func newCommentResponse(comment models.Comment) CommentResponse {
	return CommentResponse{
		ID:        comment.ID,
		Text:      comment.Text,
		CreatedAt: comment.CreatedAt,
		User:      newUserSummary(comment.User),
	}
}

func newPostResponse(post models.Post) PostResponse {
	comments := make([]CommentResponse, 0, len(post.Comments))
	for _, comment := range post.Comments {
		comments = append(comments, newCommentResponse(comment))
	}

	likeIDs := make([]uint, 0, len(post.Likes))
	for _, like := range post.Likes {
		likeIDs = append(likeIDs, like.UserID)
	}

	return PostResponse{
		ID:        post.ID,
		ImageURL:  post.ImageURL,
		Caption:   post.Caption,
		CreatedAt: post.CreatedAt,
		User:      newUserSummary(post.User),
		Comments:  comments,
		LikeIDs:   likeIDs,
	}
}

// endregion

// List godoc
// @Summary      List feed posts
// @Description  All posts newest-first, each with author, comments (oldest first) and liking user IDs.
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   PostResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /posts [get]
func (h *PostHandler) List(c *gin.Context) {
	var posts []models.Post
	err := h.db.Order("created_at DESC").
		Preload("User").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("comments.created_at ASC")
		}).
		Preload("Comments.User").
		Preload("Likes").
		Find(&posts).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch posts"})
		return
	}

	responses := make([]PostResponse, 0, len(posts))
	for _, post := range posts {
		responses = append(responses, newPostResponse(post))
	}
	c.JSON(http.StatusOK, responses)
}

// Create godoc
// @Summary      Create a feed post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body PostInput true "Post"
// @Success      201  {object}  PostResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /posts [post]
func (h *PostHandler) Create(c *gin.Context) {
	userID := currentUserID(c)

	var input PostInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post := models.Post{UserID: userID, ImageURL: input.ImageURL}
	if caption := security.SanitizeText(input.Caption); caption != "" {
		post.Caption = &caption
	}

	if err := h.db.Create(&post).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create post"})
		return
	}

	h.db.Preload("User").First(&post, post.ID)
	c.JSON(http.StatusCreated, newPostResponse(post))
}

// Delete godoc
// @Summary      Delete a post
// @Description  Deletes the caller's own post; deleting someone else's is forbidden.
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  int  true  "Post ID"
// @Success      200  {object}  OkResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /posts/{id} [delete]
func (h *PostHandler) Delete(c *gin.Context) {
	postID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return
	}

	var post models.Post
	if err := h.db.First(&post, uint(postID)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}
	if post.UserID != currentUserID(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only delete your own posts"})
		return
	}

	if err := h.db.Delete(&post).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete post"})
		return
	}
	c.JSON(http.StatusOK, OkResponse{Ok: true})
}

// Like godoc
// @Summary      Toggle a like
// @Description  Likes an unliked post, unlikes a liked one. The post owner is notified on like.
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  int  true  "Post ID"
// @Success      200  {object}  LikeResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /posts/{id}/like [post]
func (h *PostHandler) Like(c *gin.Context) {
	user, ok := currentUser(c, h.db)
	if !ok {
		return
	}

	postID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return
	}

	liked, err := h.feed.ToggleLike(user.ID, uint(postID), user.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, LikeResponse{Liked: liked})
}

// Comment godoc
// @Summary      Comment on a post
// @Description  Adds a comment and notifies the post owner.
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  int           true  "Post ID"
// @Param        input body  CommentInput  true  "Comment"
// @Success      201  {object}  CommentResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /posts/{id}/comments [post]
func (h *PostHandler) Comment(c *gin.Context) {
	user, ok := currentUser(c, h.db)
	if !ok {
		return
	}

	postID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return
	}

	var input CommentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment, err := h.feed.AddComment(user.ID, uint(postID), input.Text, user.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newCommentResponse(*comment))
}
