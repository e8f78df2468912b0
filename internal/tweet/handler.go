package tweet

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/streamtube/streamtube/internal/utils"
)

// TweetRequest is the payload for creating or updating a tweet.
type TweetRequest struct {
	Content string `json:"content" binding:"required"`
}

type Handler struct {
	service Service
	userID  func(*gin.Context) (uint, bool)
	logger  *zap.Logger
}

func NewHandler(protected *gin.RouterGroup, service Service, userID func(*gin.Context) (uint, bool), logger *zap.Logger) *Handler {
	h := &Handler{service: service, userID: userID, logger: logger}
	protected.POST("/tweets", h.Create)
	protected.GET("/tweets/user/:userId", h.ListByUser)
	protected.PATCH("/tweets/:tweetId", h.Update)
	protected.DELETE("/tweets/:tweetId", h.Delete)
	return h
}

// Create godoc
// @Summary      Create a tweet
// @Tags         tweets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      TweetRequest  true  "Tweet content"
// @Success      201      {object}  utils.APIResponse
// @Failure      400      {object}  utils.APIError
// @Router       /tweets [post]
func (h *Handler) Create(c *gin.Context) {
	ownerID, ok := h.userID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "unauthenticated")
		return
	}

	var req TweetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "tweet content is required")
		return
	}

	tweet, err := h.service.Create(c.Request.Context(), ownerID, req.Content)
	if err != nil {
		h.mapError(c, err, "could not create tweet")
		return
	}
	utils.RespondOK(c, http.StatusCreated, tweet, "tweet created successfully")
}

// ListByUser godoc
// @Summary      List a user's tweets
// @Tags         tweets
// @Produce      json
// @Security     BearerAuth
// @Param        userId  path      int  true  "User ID"
// @Success      200     {object}  utils.APIResponse
// @Router       /tweets/user/{userId} [get]
func (h *Handler) ListByUser(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("userId"), 10, 64)
	if err != nil || userID == 0 {
		utils.RespondError(c, http.StatusBadRequest, "invalid userId")
		return
	}

	tweets, err := h.service.ListByOwner(c.Request.Context(), uint(userID))
	if err != nil {
		h.mapError(c, err, "could not list tweets")
		return
	}
	utils.RespondOK(c, http.StatusOK, gin.H{"tweets": tweets, "total_tweets": len(tweets)}, "tweets fetched successfully")
}

// Update godoc
// @Summary      Update a tweet
// @Tags         tweets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        tweetId  path      int           true  "Tweet ID"
// @Param        payload  body      TweetRequest  true  "New content"
// @Success      200      {object}  utils.APIResponse
// @Failure      403      {object}  utils.APIError
// @Router       /tweets/{tweetId} [patch]
func (h *Handler) Update(c *gin.Context) {
	ownerID, ok := h.userID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "unauthenticated")
		return
	}
	tweetID, err := strconv.ParseUint(c.Param("tweetId"), 10, 64)
	if err != nil || tweetID == 0 {
		utils.RespondError(c, http.StatusBadRequest, "invalid tweetId")
		return
	}

	var req TweetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "tweet content is required")
		return
	}

	tweet, err := h.service.Update(c.Request.Context(), uint(tweetID), ownerID, req.Content)
	if err != nil {
		h.mapError(c, err, "could not update tweet")
		return
	}
	utils.RespondOK(c, http.StatusOK, tweet, "tweet updated successfully")
}

// Delete godoc
// @Summary      Delete a tweet
// @Tags         tweets
// @Produce      json
// @Security     BearerAuth
// @Param        tweetId  path      int  true  "Tweet ID"
// @Success      200      {object}  utils.APIResponse
// @Failure      403      {object}  utils.APIError
// @Router       /tweets/{tweetId} [delete]
func (h *Handler) Delete(c *gin.Context) {
	ownerID, ok := h.userID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "unauthenticated")
		return
	}
	tweetID, err := strconv.ParseUint(c.Param("tweetId"), 10, 64)
	if err != nil || tweetID == 0 {
		utils.RespondError(c, http.StatusBadRequest, "invalid tweetId")
		return
	}

	if err := h.service.Delete(c.Request.Context(), uint(tweetID), ownerID); err != nil {
		h.mapError(c, err, "could not delete tweet")
		return
	}
	utils.RespondOK(c, http.StatusOK, gin.H{}, "tweet deleted successfully")
}

func (h *Handler) mapError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrTweetNotFound):
		utils.RespondError(c, http.StatusNotFound, "tweet not found")
	case errors.Is(err, ErrEmptyContent):
		utils.RespondError(c, http.StatusBadRequest, "empty tweet not allowed")
	case errors.Is(err, ErrNotOwner):
		utils.RespondError(c, http.StatusForbidden, "you are not authorized to modify this tweet")
	default:
		h.logger.Error(fallback, zap.Error(err))
		utils.RespondError(c, http.StatusInternalServerError, fallback)
	}
}
