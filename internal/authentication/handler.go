package authentication

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/streamtube/streamtube/internal/user"
	"github.com/streamtube/streamtube/internal/utils"
)

// LoginRequest is the payload for logging in. Identifier is a username
// or an email address.
type LoginRequest struct {
	Identifier string `json:"identifier" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

// ChangePasswordRequest is the payload for changing the password of the
// authenticated account.
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// LoginResponse carries the minted pair plus the sanitized account.
type LoginResponse struct {
	User         *user.Profile `json:"user"`
	AccessToken  string        `json:"access_token"`
	RefreshToken string        `json:"refresh_token"`
}

// Handler exposes the session endpoints. Tokens travel both in the JSON
// body and as secure cookies.
type Handler struct {
	service Service
	cookies cookieCarrier
	logger  *zap.Logger
}

// NewHandler registers login/refresh on the public group and
// logout/change-password on the authenticated group.
func NewHandler(public, protected *gin.RouterGroup, service Service, tokenCfg utils.TokenConfig, logger *zap.Logger) *Handler {
	h := &Handler{service: service, cookies: cookieCarrier{cfg: tokenCfg}, logger: logger}
	public.POST("/auth/login", h.Login)
	public.POST("/auth/refresh", h.Refresh)
	protected.POST("/auth/logout", h.Logout)
	protected.POST("/auth/change-password", h.ChangePassword)
	return h
}

// Login godoc
// @Summary      Login
// @Description  Authenticate with username/email and password, issue an access/refresh pair
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        payload  body      LoginRequest  true  "Login credentials"
// @Success      200      {object}  utils.APIResponse
// @Failure      400      {object}  utils.APIError
// @Failure      401      {object}  utils.APIError
// @Failure      500      {object}  utils.APIError
// @Router       /auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "username or email and password are required")
		return
	}

	pair, profile, err := h.service.Login(c.Request.Context(), req.Identifier, req.Password)
	switch {
	case err == nil:
		h.cookies.set(c, pair)
		utils.RespondOK(c, http.StatusOK, LoginResponse{
			User:         profile,
			AccessToken:  pair.AccessToken,
			RefreshToken: pair.RefreshToken,
		}, "user logged in successfully")
	case errors.Is(err, ErrInvalidCredentials):
		utils.RespondError(c, http.StatusUnauthorized, "invalid credentials")
	default:
		h.logger.Error("login failed", zap.Error(err))
		utils.RespondError(c, http.StatusInternalServerError, "could not login")
	}
}

// Refresh godoc
// @Summary      Refresh tokens
// @Description  Rotate the refresh token and issue a new access/refresh pair
// @Tags         auth
// @Accept       json
// @Produce      json
// @Success      200  {object}  utils.APIResponse
// @Failure      401  {object}  utils.APIError
// @Failure      500  {object}  utils.APIError
// @Router       /auth/refresh [post]
func (h *Handler) Refresh(c *gin.Context) {
	presented := refreshTokenFromRequest(c)
	if presented == "" {
		utils.RespondError(c, http.StatusUnauthorized, "refresh token required")
		return
	}

	pair, err := h.service.Refresh(c.Request.Context(), presented)
	switch {
	case err == nil:
		h.cookies.set(c, pair)
		utils.RespondOK(c, http.StatusOK, pair, "access token refreshed")
	case errors.Is(err, utils.ErrTokenExpired),
		errors.Is(err, utils.ErrTokenMalformed),
		errors.Is(err, utils.ErrTokenSignatureInvalid),
		errors.Is(err, user.ErrStaleRefreshToken),
		errors.Is(err, user.ErrUserNotFound):
		h.logger.Warn("refresh rejected", zap.Error(err))
		utils.RespondError(c, http.StatusUnauthorized, "invalid or expired refresh token")
	default:
		h.logger.Error("refresh failed", zap.Error(err))
		utils.RespondError(c, http.StatusInternalServerError, "could not refresh token")
	}
}

// Logout godoc
// @Summary      Logout
// @Description  Clear the stored refresh token and discard both cookies
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  utils.APIResponse
// @Failure      401  {object}  utils.APIError
// @Failure      500  {object}  utils.APIError
// @Router       /auth/logout [post]
func (h *Handler) Logout(c *gin.Context) {
	id, ok := CurrentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "unauthenticated")
		return
	}

	if err := h.service.Logout(c.Request.Context(), id); err != nil && !errors.Is(err, user.ErrUserNotFound) {
		h.logger.Error("logout failed", zap.Uint("user_id", id), zap.Error(err))
		utils.RespondError(c, http.StatusInternalServerError, "could not logout")
		return
	}

	h.cookies.clear(c)
	utils.RespondOK(c, http.StatusOK, gin.H{}, "user logged out")
}

// ChangePassword godoc
// @Summary      Change password
// @Description  Re-verify the old password, store a new hash and revoke the live session
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      ChangePasswordRequest  true  "Old and new passwords"
// @Success      200      {object}  utils.APIResponse
// @Failure      400      {object}  utils.APIError
// @Failure      401      {object}  utils.APIError
// @Failure      500      {object}  utils.APIError
// @Router       /auth/change-password [post]
func (h *Handler) ChangePassword(c *gin.Context) {
	id, ok := CurrentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "unauthenticated")
		return
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "old and new passwords are required")
		return
	}

	err := h.service.ChangePassword(c.Request.Context(), id, req.OldPassword, req.NewPassword)
	switch {
	case err == nil:
		utils.RespondOK(c, http.StatusOK, gin.H{}, "password changed successfully")
	case errors.Is(err, ErrInvalidCredentials):
		utils.RespondError(c, http.StatusUnauthorized, "invalid old password")
	case errors.Is(err, user.ErrPasswordTooShort), errors.Is(err, user.ErrPasswordNotAlphanumeric):
		utils.RespondError(c, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error("password change failed", zap.Uint("user_id", id), zap.Error(err))
		utils.RespondError(c, http.StatusInternalServerError, "could not change password")
	}
}
