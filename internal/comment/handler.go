package comment

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/streamtube/streamtube/internal/utils"
	"github.com/streamtube/streamtube/internal/video"
)

// CommentRequest is the payload for adding or updating a comment.
type CommentRequest struct {
	Content string `json:"content" binding:"required"`
}

type Handler struct {
	service Service
	userID  func(*gin.Context) (uint, bool)
	logger  *zap.Logger
}

func NewHandler(protected *gin.RouterGroup, service Service, userID func(*gin.Context) (uint, bool), logger *zap.Logger) *Handler {
	h := &Handler{service: service, userID: userID, logger: logger}
	protected.GET("/comments/:videoId", h.List)
	protected.POST("/comments/:videoId", h.Add)
	protected.PATCH("/comments/c/:commentId", h.Update)
	protected.DELETE("/comments/c/:commentId", h.Delete)
	return h
}

// List godoc
// @Summary      List comments of a video
// @Tags         comments
// @Produce      json
// @Security     BearerAuth
// @Param        videoId  path      int  true   "Video ID"
// @Param        page     query     int  false  "Page number"
// @Param        limit    query     int  false  "Page size"
// @Success      200      {object}  utils.APIResponse
// @Router       /comments/{videoId} [get]
func (h *Handler) List(c *gin.Context) {
	videoID, ok := pathID(c, "videoId")
	if !ok {
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	comments, total, err := h.service.ListByVideo(c.Request.Context(), videoID, page, limit)
	if err != nil {
		h.mapError(c, err, "could not list comments")
		return
	}
	utils.RespondOK(c, http.StatusOK, gin.H{"comments": comments, "total_comments": total},
		"comments fetched successfully")
}

// Add godoc
// @Summary      Add a comment
// @Tags         comments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        videoId  path      int             true  "Video ID"
// @Param        payload  body      CommentRequest  true  "Comment content"
// @Success      201      {object}  utils.APIResponse
// @Failure      400      {object}  utils.APIError
// @Router       /comments/{videoId} [post]
func (h *Handler) Add(c *gin.Context) {
	ownerID, ok := h.userID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "unauthenticated")
		return
	}
	videoID, ok := pathID(c, "videoId")
	if !ok {
		return
	}

	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "comment content is required")
		return
	}

	comment, err := h.service.Add(c.Request.Context(), videoID, ownerID, req.Content)
	if err != nil {
		h.mapError(c, err, "could not add comment")
		return
	}
	utils.RespondOK(c, http.StatusCreated, comment, "comment added successfully")
}

// Update godoc
// @Summary      Update a comment
// @Tags         comments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        commentId  path      int             true  "Comment ID"
// @Param        payload    body      CommentRequest  true  "New content"
// @Success      200        {object}  utils.APIResponse
// @Failure      403        {object}  utils.APIError
// @Router       /comments/c/{commentId} [patch]
func (h *Handler) Update(c *gin.Context) {
	ownerID, ok := h.userID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "unauthenticated")
		return
	}
	commentID, ok := pathID(c, "commentId")
	if !ok {
		return
	}

	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "comment content is required")
		return
	}

	comment, err := h.service.Update(c.Request.Context(), commentID, ownerID, req.Content)
	if err != nil {
		h.mapError(c, err, "could not update comment")
		return
	}
	utils.RespondOK(c, http.StatusOK, comment, "comment updated successfully")
}

// Delete godoc
// @Summary      Delete a comment
// @Tags         comments
// @Produce      json
// @Security     BearerAuth
// @Param        commentId  path      int  true  "Comment ID"
// @Success      200        {object}  utils.APIResponse
// @Failure      403        {object}  utils.APIError
// @Router       /comments/c/{commentId} [delete]
func (h *Handler) Delete(c *gin.Context) {
	ownerID, ok := h.userID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "unauthenticated")
		return
	}
	commentID, ok := pathID(c, "commentId")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), commentID, ownerID); err != nil {
		h.mapError(c, err, "could not delete comment")
		return
	}
	utils.RespondOK(c, http.StatusOK, gin.H{}, "comment deleted successfully")
}

func (h *Handler) mapError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrCommentNotFound):
		utils.RespondError(c, http.StatusNotFound, "comment not found")
	case errors.Is(err, video.ErrVideoNotFound):
		utils.RespondError(c, http.StatusNotFound, "video not found")
	case errors.Is(err, ErrEmptyContent):
		utils.RespondError(c, http.StatusBadRequest, "empty comment not allowed")
	case errors.Is(err, ErrNotOwner):
		utils.RespondError(c, http.StatusForbidden, "you are not authorized to modify this comment")
	default:
		h.logger.Error(fallback, zap.Error(err))
		utils.RespondError(c, http.StatusInternalServerError, fallback)
	}
}

func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		utils.RespondError(c, http.StatusBadRequest, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}
