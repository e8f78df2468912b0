package like

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/streamtube/streamtube/internal/utils"
)

type Handler struct {
	service Service
	userID  func(*gin.Context) (uint, bool)
	logger  *zap.Logger
}

func NewHandler(protected *gin.RouterGroup, service Service, userID func(*gin.Context) (uint, bool), logger *zap.Logger) *Handler {
	h := &Handler{service: service, userID: userID, logger: logger}
	protected.POST("/likes/toggle/v/:videoId", h.ToggleVideoLike)
	protected.POST("/likes/toggle/c/:commentId", h.ToggleCommentLike)
	protected.POST("/likes/toggle/t/:tweetId", h.ToggleTweetLike)
	protected.GET("/likes/videos", h.GetLikedVideos)
	return h
}

// ToggleVideoLike godoc
// @Summary      Toggle a like on a video
// @Tags         likes
// @Produce      json
// @Security     BearerAuth
// @Param        videoId  path      int  true  "Video ID"
// @Success      200      {object}  utils.APIResponse
// @Failure      404      {object}  utils.APIError
// @Router       /likes/toggle/v/{videoId} [post]
func (h *Handler) ToggleVideoLike(c *gin.Context) {
	h.toggle(c, "videoId", h.service.ToggleVideoLike)
}

// ToggleCommentLike godoc
// @Summary      Toggle a like on a comment
// @Tags         likes
// @Produce      json
// @Security     BearerAuth
// @Param        commentId  path      int  true  "Comment ID"
// @Success      200        {object}  utils.APIResponse
// @Failure      404        {object}  utils.APIError
// @Router       /likes/toggle/c/{commentId} [post]
func (h *Handler) ToggleCommentLike(c *gin.Context) {
	h.toggle(c, "commentId", h.service.ToggleCommentLike)
}

// ToggleTweetLike godoc
// @Summary      Toggle a like on a tweet
// @Tags         likes
// @Produce      json
// @Security     BearerAuth
// @Param        tweetId  path      int  true  "Tweet ID"
// @Success      200      {object}  utils.APIResponse
// @Failure      404      {object}  utils.APIError
// @Router       /likes/toggle/t/{tweetId} [post]
func (h *Handler) ToggleTweetLike(c *gin.Context) {
	h.toggle(c, "tweetId", h.service.ToggleTweetLike)
}

func (h *Handler) toggle(c *gin.Context, param string, fn func(ctx context.Context, likedByID, targetID uint) (*ToggleResult, error)) {
	likedByID, ok := h.userID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "unauthenticated")
		return
	}
	targetID, err := strconv.ParseUint(c.Param(param), 10, 64)
	if err != nil || targetID == 0 {
		utils.RespondError(c, http.StatusBadRequest, "invalid "+param)
		return
	}

	result, err := fn(c.Request.Context(), likedByID, uint(targetID))
	if err != nil {
		h.mapError(c, err, "could not toggle like")
		return
	}

	message := "liked successfully"
	if !result.Liked {
		message = "unliked successfully"
	}
	utils.RespondOK(c, http.StatusOK, result, message)
}

// GetLikedVideos godoc
// @Summary      List videos liked by the current user
// @Tags         likes
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  utils.APIResponse
// @Router       /likes/videos [get]
func (h *Handler) GetLikedVideos(c *gin.Context) {
	likedByID, ok := h.userID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "unauthenticated")
		return
	}

	videos, err := h.service.GetLikedVideos(c.Request.Context(), likedByID)
	if err != nil {
		h.mapError(c, err, "could not fetch liked videos")
		return
	}
	utils.RespondOK(c, http.StatusOK, videos, "liked videos fetched successfully")
}

func (h *Handler) mapError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrTargetNotFound):
		utils.RespondError(c, http.StatusNotFound, "target not found")
	default:
		h.logger.Error(fallback, zap.Error(err))
		utils.RespondError(c, http.StatusInternalServerError, fallback)
	}
}
