package user

import (
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/streamtube/streamtube/internal/storage"
	"github.com/streamtube/streamtube/internal/utils"
)

// UpdateAccountRequest is the payload for updating display fields.
type UpdateAccountRequest struct {
	FullName string `json:"fullname" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
}

type Handler struct {
	service Service
	userID  func(*gin.Context) (uint, bool)
	logger  *zap.Logger
}

// NewHandler registers registration on the public group and the account
// endpoints on the authenticated group. userID extracts the
// authenticated account from the request context.
func NewHandler(public, protected *gin.RouterGroup, service Service, userID func(*gin.Context) (uint, bool), logger *zap.Logger) *Handler {
	h := &Handler{service: service, userID: userID, logger: logger}
	public.POST("/users/register", h.Register)
	protected.GET("/users/current-user", h.CurrentUser)
	protected.PATCH("/users/update-account", h.UpdateAccount)
	protected.PATCH("/users/avatar", h.UpdateAvatar)
	protected.PATCH("/users/cover-image", h.UpdateCoverImage)
	protected.GET("/users/c/:username", h.ChannelProfile)
	protected.GET("/users/history", h.WatchHistory)
	return h
}

// Register godoc
// @Summary      Register
// @Description  Create an account; multipart form with an avatar file and an optional cover image
// @Tags         users
// @Accept       multipart/form-data
// @Produce      json
// @Success      201  {object}  utils.APIResponse
// @Failure      400  {object}  utils.APIError
// @Failure      409  {object}  utils.APIError
// @Failure      500  {object}  utils.APIError
// @Router       /users/register [post]
func (h *Handler) Register(c *gin.Context) {
	input := RegisterInput{
		Username: c.PostForm("username"),
		Email:    c.PostForm("email"),
		FullName: c.PostForm("fullname"),
		Password: c.PostForm("password"),
	}

	avatar, closeAvatar, err := formFileUpload(c, "avatar")
	if err == nil {
		defer closeAvatar()
		input.Avatar = avatar
	}
	cover, closeCover, err := formFileUpload(c, "coverImage")
	if err == nil {
		defer closeCover()
		input.CoverImage = cover
	}

	profile, err := h.service.Register(c.Request.Context(), input)
	switch {
	case err == nil:
		utils.RespondOK(c, http.StatusCreated, profile, "user registered successfully")
	case errors.Is(err, ErrMissingFields), errors.Is(err, ErrAvatarRequired),
		errors.Is(err, ErrInvalidEmailFormat),
		errors.Is(err, ErrPasswordTooShort), errors.Is(err, ErrPasswordNotAlphanumeric):
		utils.RespondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrUsernameOrEmailExists):
		utils.RespondError(c, http.StatusConflict, "user with email or username already exists")
	case errors.Is(err, storage.ErrUploadFailed):
		utils.RespondError(c, http.StatusBadGateway, "could not upload file")
	default:
		h.logger.Error("registration failed", zap.Error(err))
		utils.RespondError(c, http.StatusInternalServerError, "could not register user")
	}
}

// CurrentUser godoc
// @Summary      Current user
// @Description  Fetch the live account record of the authenticated user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  utils.APIResponse
// @Failure      401  {object}  utils.APIError
// @Router       /users/current-user [get]
func (h *Handler) CurrentUser(c *gin.Context) {
	id, ok := h.userID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "unauthenticated")
		return
	}

	u, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.mapReadError(c, err)
		return
	}
	utils.RespondOK(c, http.StatusOK, u.Profile(), "current user fetched successfully")
}

// UpdateAccount godoc
// @Summary      Update account details
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      UpdateAccountRequest  true  "New display fields"
// @Success      200      {object}  utils.APIResponse
// @Failure      400      {object}  utils.APIError
// @Router       /users/update-account [patch]
func (h *Handler) UpdateAccount(c *gin.Context) {
	id, ok := h.userID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "unauthenticated")
		return
	}

	var req UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "fullname and email are required")
		return
	}

	profile, err := h.service.UpdateAccount(c.Request.Context(), id, req.FullName, req.Email)
	switch {
	case err == nil:
		utils.RespondOK(c, http.StatusOK, profile, "account details updated successfully")
	case errors.Is(err, ErrUsernameOrEmailExists):
		utils.RespondError(c, http.StatusConflict, "email already in use")
	case errors.Is(err, ErrInvalidEmailFormat), errors.Is(err, ErrMissingFields):
		utils.RespondError(c, http.StatusBadRequest, err.Error())
	default:
		h.mapReadError(c, err)
	}
}

// UpdateAvatar godoc
// @Summary      Update avatar
// @Tags         users
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  utils.APIResponse
// @Failure      400  {object}  utils.APIError
// @Router       /users/avatar [patch]
func (h *Handler) UpdateAvatar(c *gin.Context) {
	h.updateImage(c, "avatar", h.service.UpdateAvatar, "avatar updated successfully")
}

// UpdateCoverImage godoc
// @Summary      Update cover image
// @Tags         users
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  utils.APIResponse
// @Failure      400  {object}  utils.APIError
// @Router       /users/cover-image [patch]
func (h *Handler) UpdateCoverImage(c *gin.Context) {
	h.updateImage(c, "coverImage", h.service.UpdateCoverImage, "cover image updated successfully")
}

func (h *Handler) updateImage(c *gin.Context, field string,
	update func(ctx context.Context, id uint, file *storage.FileUpload) (*Profile, error), message string) {
	id, ok := h.userID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "unauthenticated")
		return
	}

	file, closeFile, err := formFileUpload(c, field)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, field+" file is missing")
		return
	}
	defer closeFile()

	profile, err := update(c.Request.Context(), id, file)
	switch {
	case err == nil:
		utils.RespondOK(c, http.StatusOK, profile, message)
	case errors.Is(err, storage.ErrUploadFailed):
		utils.RespondError(c, http.StatusBadGateway, "could not upload file")
	default:
		h.mapReadError(c, err)
	}
}

// ChannelProfile godoc
// @Summary      Channel profile
// @Description  Public channel view with subscriber counters relative to the viewer
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        username  path      string  true  "Channel username"
// @Success      200       {object}  utils.APIResponse
// @Failure      404       {object}  utils.APIError
// @Router       /users/c/{username} [get]
func (h *Handler) ChannelProfile(c *gin.Context) {
	username := c.Param("username")
	if username == "" {
		utils.RespondError(c, http.StatusBadRequest, "username is missing")
		return
	}

	viewerID, _ := h.userID(c)
	profile, err := h.service.GetChannelProfile(c.Request.Context(), username, viewerID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			utils.RespondError(c, http.StatusNotFound, "channel does not exist")
			return
		}
		h.mapReadError(c, err)
		return
	}
	utils.RespondOK(c, http.StatusOK, profile, "user channel fetched successfully")
}

// WatchHistory godoc
// @Summary      Watch history
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "Page number"
// @Param        limit  query     int  false  "Page size"
// @Success      200    {object}  utils.APIResponse
// @Router       /users/history [get]
func (h *Handler) WatchHistory(c *gin.Context) {
	id, ok := h.userID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "unauthenticated")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	history, err := h.service.GetWatchHistory(c.Request.Context(), id, page, limit)
	if err != nil {
		h.mapReadError(c, err)
		return
	}
	utils.RespondOK(c, http.StatusOK, gin.H{"videos": history, "total": len(history)}, "watch history fetched successfully")
}

func (h *Handler) mapReadError(c *gin.Context, err error) {
	if errors.Is(err, ErrUserNotFound) {
		utils.RespondError(c, http.StatusNotFound, "user not found")
		return
	}
	h.logger.Error("user request failed", zap.Error(err))
	utils.RespondError(c, http.StatusInternalServerError, "internal server error")
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
	return &storage.FileUpload{Reader: f, ContentType: contentTypeOf(header)}, func() { _ = f.Close() }, nil
}

func contentTypeOf(header *multipart.FileHeader) string {
	if ct := header.Header.Get("Content-Type"); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
