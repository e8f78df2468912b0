package playlist

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/streamtube/streamtube/internal/utils"
)

// CreateRequest is the payload for creating a playlist.
type CreateRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// UpdateRequest is the payload for updating a playlist.
type UpdateRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

type Handler struct {
	service Service
	userID  func(*gin.Context) (uint, bool)
	logger  *zap.Logger
}

func NewHandler(protected *gin.RouterGroup, service Service, userID func(*gin.Context) (uint, bool), logger *zap.Logger) *Handler {
	h := &Handler{service: service, userID: userID, logger: logger}
	protected.POST("/playlists", h.Create)
	protected.GET("/playlists/user/:userId", h.ListByUser)
	protected.GET("/playlists/:playlistId", h.Get)
	protected.PATCH("/playlists/:playlistId", h.Update)
	protected.DELETE("/playlists/:playlistId", h.Delete)
	protected.PATCH("/playlists/add/:videoId/:playlistId", h.AddVideo)
	protected.PATCH("/playlists/remove/:videoId/:playlistId", h.RemoveVideo)
	return h
}

// Create godoc
// @Summary      Create a playlist
// @Tags         playlists
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      CreateRequest  true  "Playlist fields"
// @Success      201      {object}  utils.APIResponse
// @Failure      400      {object}  utils.APIError
// @Router       /playlists [post]
func (h *Handler) Create(c *gin.Context) {
	ownerID, ok := h.userID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "unauthenticated")
		return
	}

	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "playlist name is required")
		return
	}

	playlist, err := h.service.Create(c.Request.Context(), ownerID, req.Name, req.Description)
	if err != nil {
		h.mapError(c, err, "could not create playlist")
		return
	}
	utils.RespondOK(c, http.StatusCreated, playlist, "playlist created successfully")
}

// ListByUser godoc
// @Summary      List an account's playlists
// @Tags         playlists
// @Produce      json
// @Security     BearerAuth
// @Param        userId  path      int  true  "Owner ID"
// @Success      200     {object}  utils.APIResponse
// @Router       /playlists/user/{userId} [get]
func (h *Handler) ListByUser(c *gin.Context) {
	ownerID, ok := pathID(c, "userId")
	if !ok {
		return
	}

	playlists, err := h.service.ListByOwner(c.Request.Context(), ownerID)
	if err != nil {
		h.mapError(c, err, "could not fetch playlists")
		return
	}
	utils.RespondOK(c, http.StatusOK, playlists, "playlists fetched successfully")
}

// Get godoc
// @Summary      Fetch a playlist with its videos
// @Tags         playlists
// @Produce      json
// @Security     BearerAuth
// @Param        playlistId  path      int  true  "Playlist ID"
// @Success      200         {object}  utils.APIResponse
// @Failure      404         {object}  utils.APIError
// @Router       /playlists/{playlistId} [get]
func (h *Handler) Get(c *gin.Context) {
	id, ok := pathID(c, "playlistId")
	if !ok {
		return
	}

	detail, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.mapError(c, err, "could not fetch playlist")
		return
	}
	utils.RespondOK(c, http.StatusOK, detail, "playlist fetched successfully")
}

// Update godoc
// @Summary      Update a playlist's name or description
// @Tags         playlists
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        playlistId  path      int            true  "Playlist ID"
// @Param        payload     body      UpdateRequest  true  "Fields to update"
// @Success      200         {object}  utils.APIResponse
// @Failure      403         {object}  utils.APIError
// @Router       /playlists/{playlistId} [patch]
func (h *Handler) Update(c *gin.Context) {
	ownerID, ok := h.userID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "unauthenticated")
		return
	}
	id, ok := pathID(c, "playlistId")
	if !ok {
		return
	}

	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "invalid payload")
		return
	}

	playlist, err := h.service.Update(c.Request.Context(), id, ownerID, UpdateInput{Name: req.Name, Description: req.Description})
	if err != nil {
		h.mapError(c, err, "could not update playlist")
		return
	}
	utils.RespondOK(c, http.StatusOK, playlist, "playlist updated successfully")
}

// Delete godoc
// @Summary      Delete a playlist
// @Tags         playlists
// @Produce      json
// @Security     BearerAuth
// @Param        playlistId  path      int  true  "Playlist ID"
// @Success      200         {object}  utils.APIResponse
// @Failure      403         {object}  utils.APIError
// @Router       /playlists/{playlistId} [delete]
func (h *Handler) Delete(c *gin.Context) {
	ownerID, ok := h.userID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "unauthenticated")
		return
	}
	id, ok := pathID(c, "playlistId")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id, ownerID); err != nil {
		h.mapError(c, err, "could not delete playlist")
		return
	}
	utils.RespondOK(c, http.StatusOK, gin.H{}, "playlist deleted successfully")
}

// AddVideo godoc
// @Summary      Add a video to a playlist
// @Tags         playlists
// @Produce      json
// @Security     BearerAuth
// @Param        videoId     path      int  true  "Video ID"
// @Param        playlistId  path      int  true  "Playlist ID"
// @Success      200         {object}  utils.APIResponse
// @Failure      404         {object}  utils.APIError
// @Router       /playlists/add/{videoId}/{playlistId} [patch]
func (h *Handler) AddVideo(c *gin.Context) {
	h.linkVideo(c, h.service.AddVideo, "video added to playlist")
}

// RemoveVideo godoc
// @Summary      Remove a video from a playlist
// @Tags         playlists
// @Produce      json
// @Security     BearerAuth
// @Param        videoId     path      int  true  "Video ID"
// @Param        playlistId  path      int  true  "Playlist ID"
// @Success      200         {object}  utils.APIResponse
// @Failure      404         {object}  utils.APIError
// @Router       /playlists/remove/{videoId}/{playlistId} [patch]
func (h *Handler) RemoveVideo(c *gin.Context) {
	h.linkVideo(c, h.service.RemoveVideo, "video removed from playlist")
}

func (h *Handler) linkVideo(c *gin.Context, fn func(ctx context.Context, id, ownerID, videoID uint) error, message string) {
	ownerID, ok := h.userID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "unauthenticated")
		return
	}
	videoID, ok := pathID(c, "videoId")
	if !ok {
		return
	}
	playlistID, ok := pathID(c, "playlistId")
	if !ok {
		return
	}

	if err := fn(c.Request.Context(), playlistID, ownerID, videoID); err != nil {
		h.mapError(c, err, "could not update playlist videos")
		return
	}
	utils.RespondOK(c, http.StatusOK, gin.H{}, message)
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
	case errors.Is(err, ErrPlaylistNotFound):
		utils.RespondError(c, http.StatusNotFound, "playlist not found")
	case errors.Is(err, ErrVideoNotFound):
		utils.RespondError(c, http.StatusNotFound, "video not found")
	case errors.Is(err, ErrVideoNotInPlaylist):
		utils.RespondError(c, http.StatusNotFound, "video is not in the playlist")
	case errors.Is(err, ErrVideoAlreadyInList):
		utils.RespondError(c, http.StatusConflict, "video is already in the playlist")
	case errors.Is(err, ErrEmptyName):
		utils.RespondError(c, http.StatusBadRequest, "playlist name is required")
	case errors.Is(err, ErrNotOwner):
		utils.RespondError(c, http.StatusForbidden, "you are not authorized to modify this playlist")
	default:
		h.logger.Error(fallback, zap.Error(err))
		utils.RespondError(c, http.StatusInternalServerError, fallback)
	}
}
