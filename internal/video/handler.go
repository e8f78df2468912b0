package video

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/streamtube/streamtube/internal/storage"
	"github.com/streamtube/streamtube/internal/utils"
)

type Handler struct {
	service Service
	userID  func(*gin.Context) (uint, bool)
	logger  *zap.Logger
}

func NewHandler(protected *gin.RouterGroup, service Service, userID func(*gin.Context) (uint, bool), logger *zap.Logger) *Handler {
	h := &Handler{service: service, userID: userID, logger: logger}
	protected.GET("/videos", h.List)
	protected.POST("/videos", h.Publish)
	protected.GET("/videos/:videoId", h.Get)
	protected.PATCH("/videos/:videoId", h.Update)
	protected.DELETE("/videos/:videoId", h.Delete)
	protected.PATCH("/videos/toggle/publish/:videoId", h.TogglePublish)
	return h
}

// List godoc
// @Summary      List videos
// @Description  Published videos filtered by free-text query and owner, sorted and paginated
// @Tags         videos
// @Produce      json
// @Security     BearerAuth
// @Param        page      query     int     false  "Page number"
// @Param        limit     query     int     false  "Page size"
// @Param        query     query     string  false  "Text matched against title and description"
// @Param        userId    query     int     false  "Restrict to one owner"
// @Param        sortBy    query     string  false  "created_at, views, duration or title"
// @Param        sortType  query     string  false  "asc or desc"
// @Success      200       {object}  utils.APIResponse
// @Router       /videos [get]
func (h *Handler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	ownerID, _ := strconv.ParseUint(c.Query("userId"), 10, 64)

	params := ListParams{
		Query:     c.Query("query"),
		OwnerID:   uint(ownerID),
		SortBy:    c.DefaultQuery("sortBy", "created_at"),
		Ascending: c.Query("sortType") == "asc",
		Page:      page,
		Limit:     limit,
	}

	videos, total, err := h.service.List(c.Request.Context(), params)
	if err != nil {
		h.mapError(c, err, "could not list videos")
		return
	}
	utils.RespondOK(c, http.StatusOK, gin.H{"videos": videos, "total_videos": total, "page": params.Page, "limit": params.Limit},
		"videos fetched successfully")
}

// Publish godoc
// @Summary      Publish a video
// @Description  Multipart upload of a video file and thumbnail plus title/description
// @Tags         videos
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Success      201  {object}  utils.APIResponse
// @Failure      400  {object}  utils.APIError
// @Router       /videos [post]
func (h *Handler) Publish(c *gin.Context) {
	ownerID, ok := h.userID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "unauthenticated")
		return
	}

	duration, _ := strconv.ParseFloat(c.PostForm("duration"), 64)
	input := PublishInput{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		Duration:    duration,
	}

	videoFile, closeVideo, err := formFileUpload(c, "videoFile")
	if err == nil {
		defer closeVideo()
		input.VideoFile = videoFile
	}
	thumbnail, closeThumb, err := formFileUpload(c, "thumbnail")
	if err == nil {
		defer closeThumb()
		input.Thumbnail = thumbnail
	}

	v, err := h.service.Publish(c.Request.Context(), ownerID, input)
	switch {
	case err == nil:
		utils.RespondOK(c, http.StatusCreated, v, "video uploaded successfully")
	case errors.Is(err, ErrMissingFields):
		utils.RespondError(c, http.StatusBadRequest, "title, description, video file and thumbnail are required")
	case errors.Is(err, storage.ErrUploadFailed):
		utils.RespondError(c, http.StatusBadGateway, "could not upload file")
	default:
		h.mapError(c, err, "could not publish video")
	}
}

// Get godoc
// @Summary      Get a video
// @Description  Fetch one video, bumping its view counter and the viewer's watch history
// @Tags         videos
// @Produce      json
// @Security     BearerAuth
// @Param        videoId  path      int  true  "Video ID"
// @Success      200      {object}  utils.APIResponse
// @Failure      404      {object}  utils.APIError
// @Router       /videos/{videoId} [get]
func (h *Handler) Get(c *gin.Context) {
	id, ok := pathID(c, "videoId")
	if !ok {
		return
	}
	viewerID, _ := h.userID(c)

	v, err := h.service.Get(c.Request.Context(), id, viewerID)
	if err != nil {
		h.mapError(c, err, "could not fetch video")
		return
	}
	utils.RespondOK(c, http.StatusOK, v, "video fetched successfully")
}

// Update godoc
// @Summary      Update a video
// @Description  Owner-only update of title, description and/or thumbnail
// @Tags         videos
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        videoId  path      int  true  "Video ID"
// @Success      200      {object}  utils.APIResponse
// @Failure      403      {object}  utils.APIError
// @Router       /videos/{videoId} [patch]
func (h *Handler) Update(c *gin.Context) {
	ownerID, ok := h.userID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "unauthenticated")
		return
	}
	id, ok := pathID(c, "videoId")
	if !ok {
		return
	}

	input := UpdateInput{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
	}
	thumbnail, closeThumb, err := formFileUpload(c, "thumbnail")
	if err == nil {
		defer closeThumb()
		input.Thumbnail = thumbnail
	}

	v, err := h.service.Update(c.Request.Context(), id, ownerID, input)
	switch {
	case err == nil:
		utils.RespondOK(c, http.StatusOK, v, "video details updated successfully")
	case errors.Is(err, ErrNothingToDo):
		utils.RespondError(c, http.StatusBadRequest, "at least one field is required")
	case errors.Is(err, storage.ErrUploadFailed):
		utils.RespondError(c, http.StatusBadGateway, "could not upload file")
	default:
		h.mapError(c, err, "could not update video")
	}
}

// Delete godoc
// @Summary      Delete a video
// @Description  Owner-only; removes the stored blobs first
// @Tags         videos
// @Produce      json
// @Security     BearerAuth
// @Param        videoId  path      int  true  "Video ID"
// @Success      200      {object}  utils.APIResponse
// @Failure      403      {object}  utils.APIError
// @Router       /videos/{videoId} [delete]
func (h *Handler) Delete(c *gin.Context) {
	ownerID, ok := h.userID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "unauthenticated")
		return
	}
	id, ok := pathID(c, "videoId")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id, ownerID); err != nil {
		h.mapError(c, err, "could not delete video")
		return
	}
	utils.RespondOK(c, http.StatusOK, gin.H{}, "video deleted successfully")
}

// TogglePublish godoc
// @Summary      Toggle publish status
// @Tags         videos
// @Produce      json
// @Security     BearerAuth
// @Param        videoId  path      int  true  "Video ID"
// @Success      200      {object}  utils.APIResponse
// @Router       /videos/toggle/publish/{videoId} [patch]
func (h *Handler) TogglePublish(c *gin.Context) {
	ownerID, ok := h.userID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "unauthenticated")
		return
	}
	id, ok := pathID(c, "videoId")
	if !ok {
		return
	}

	published, err := h.service.TogglePublish(c.Request.Context(), id, ownerID)
	if err != nil {
		h.mapError(c, err, "could not toggle publish status")
		return
	}
	utils.RespondOK(c, http.StatusOK, gin.H{"is_published": published}, "publish status toggled successfully")
}

func (h *Handler) mapError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrVideoNotFound):
		utils.RespondError(c, http.StatusNotFound, "video not found")
	case errors.Is(err, ErrNotOwner):
		utils.RespondError(c, http.StatusForbidden, "you are not authorized to modify this video")
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

func formFileUpload(c *gin.Context, field string) (*storage.FileUpload, func(), error) {
	header, err := c.FormFile(field)
	if err != nil {
		return nil, nil, err
	}
	f, err := header.Open()
	if err != nil {
		return nil, nil, err
	}
	ct := header.Header.Get("Content-Type")
	if ct == "" {
		ct = "application/octet-stream"
	}
	return &storage.FileUpload{Reader: f, ContentType: ct}, func() { _ = f.Close() }, nil
}
