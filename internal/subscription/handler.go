package subscription

import (
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
	protected.POST("/subscriptions/c/:channelId", h.Toggle)
	protected.GET("/subscriptions/c/:channelId", h.GetSubscribers)
	protected.GET("/subscriptions/u/:subscriberId", h.GetSubscribedChannels)
	return h
}

// Toggle godoc
// @Summary      Toggle a subscription to a channel
// @Tags         subscriptions
// @Produce      json
// @Security     BearerAuth
// @Param        channelId  path      int  true  "Channel ID"
// @Success      200        {object}  utils.APIResponse
// @Failure      400        {object}  utils.APIError
// @Failure      404        {object}  utils.APIError
// @Router       /subscriptions/c/{channelId} [post]
func (h *Handler) Toggle(c *gin.Context) {
	subscriberID, ok := h.userID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "unauthenticated")
		return
	}
	channelID, ok := pathID(c, "channelId")
	if !ok {
		return
	}

	result, err := h.service.Toggle(c.Request.Context(), subscriberID, channelID)
	if err != nil {
		h.mapError(c, err, "could not toggle subscription")
		return
	}

	message := "subscribed successfully"
	if !result.Subscribed {
		message = "unsubscribed successfully"
	}
	utils.RespondOK(c, http.StatusOK, result, message)
}

// GetSubscribers godoc
// @Summary      List subscribers of a channel
// @Tags         subscriptions
// @Produce      json
// @Security     BearerAuth
// @Param        channelId  path      int  true  "Channel ID"
// @Success      200        {object}  utils.APIResponse
// @Failure      404        {object}  utils.APIError
// @Router       /subscriptions/c/{channelId} [get]
func (h *Handler) GetSubscribers(c *gin.Context) {
	channelID, ok := pathID(c, "channelId")
	if !ok {
		return
	}

	subscribers, err := h.service.GetSubscribers(c.Request.Context(), channelID)
	if err != nil {
		h.mapError(c, err, "could not fetch subscribers")
		return
	}
	utils.RespondOK(c, http.StatusOK, subscribers, "subscribers fetched successfully")
}

// GetSubscribedChannels godoc
// @Summary      List channels an account is subscribed to
// @Tags         subscriptions
// @Produce      json
// @Security     BearerAuth
// @Param        subscriberId  path      int  true  "Subscriber ID"
// @Success      200           {object}  utils.APIResponse
// @Router       /subscriptions/u/{subscriberId} [get]
func (h *Handler) GetSubscribedChannels(c *gin.Context) {
	subscriberID, ok := pathID(c, "subscriberId")
	if !ok {
		return
	}

	channels, err := h.service.GetSubscribedChannels(c.Request.Context(), subscriberID)
	if err != nil {
		h.mapError(c, err, "could not fetch subscribed channels")
		return
	}
	utils.RespondOK(c, http.StatusOK, channels, "subscribed channels fetched successfully")
}

func pathID(c *gin.Context, param string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(param), 10, 64)
	if err != nil || id == 0 {
		utils.RespondError(c, http.StatusBadRequest, "invalid "+param)
		return 0, false
	}
	return uint(id), true
}

func (h *Handler) mapError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrChannelNotFound):
		utils.RespondError(c, http.StatusNotFound, "channel not found")
	case errors.Is(err, ErrSelfSubscription):
		utils.RespondError(c, http.StatusBadRequest, "subscribing to your own channel is not allowed")
	default:
		h.logger.Error(fallback, zap.Error(err))
		utils.RespondError(c, http.StatusInternalServerError, fallback)
	}
}
