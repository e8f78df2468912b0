package dashboard

import (
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
	protected.GET("/dashboard/stats", h.GetChannelStats)
	protected.GET("/dashboard/videos", h.GetChannelVideos)
	return h
}

// GetChannelStats godoc
// @Summary      Fetch the current channel's aggregate stats
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  utils.APIResponse
// @Router       /dashboard/stats [get]
func (h *Handler) GetChannelStats(c *gin.Context) {
	channelID, ok := h.userID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "unauthenticated")
		return
	}

	stats, err := h.service.GetChannelStats(c.Request.Context(), channelID)
	if err != nil {
		h.logger.Error("could not aggregate channel stats", zap.Error(err))
		utils.RespondError(c, http.StatusInternalServerError, "could not fetch channel stats")
		return
	}
	utils.RespondOK(c, http.StatusOK, stats, "channel stats fetched successfully")
}

// GetChannelVideos godoc
// @Summary      List the current channel's videos
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "Page number"
// @Param        limit  query     int  false  "Page size"
// @Success      200    {object}  utils.APIResponse
// @Router       /dashboard/videos [get]
func (h *Handler) GetChannelVideos(c *gin.Context) {
	channelID, ok := h.userID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "unauthenticated")
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	videos, total, err := h.service.GetChannelVideos(c.Request.Context(), channelID, page, limit)
	if err != nil {
		h.logger.Error("could not list channel videos", zap.Error(err))
		utils.RespondError(c, http.StatusInternalServerError, "could not fetch channel videos")
		return
	}
	utils.RespondOK(c, http.StatusOK, gin.H{"videos": videos, "total": total, "page": page, "limit": limit}, "channel videos fetched successfully")
}
