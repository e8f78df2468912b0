package authentication

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/streamtube/streamtube/internal/utils"
)

// ContextUserKey holds the *utils.AccessClaims of the authenticated
// request.
const ContextUserKey = "currentUser"

// ContextUserIDKey holds the numeric account identifier.
const ContextUserIDKey = "currentUserID"

// AuthMiddleware authenticates a request from its access token, taken
// from the Authorization header or the accessToken cookie. The claims
// carry everything most handlers need, so no account lookup happens
// here; every failure collapses into one generic 401 so callers know to
// run the refresh flow.
func AuthMiddleware(accessSecret string, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		rawToken := tokenFromRequest(c)
		if rawToken == "" {
			utils.AbortError(c, http.StatusUnauthorized, "unauthenticated")
			return
		}

		claims, err := utils.ParseAccessToken(rawToken, accessSecret)
		if err != nil {
			logger.Warn("access token rejected", zap.Error(err))
			utils.AbortError(c, http.StatusUnauthorized, "unauthenticated")
			return
		}

		id, err := claims.UserID()
		if err != nil {
			utils.AbortError(c, http.StatusUnauthorized, "unauthenticated")
			return
		}

		c.Set(ContextUserKey, claims)
		c.Set(ContextUserIDKey, id)
		c.Next()
	}
}

func tokenFromRequest(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); header != "" {
		parts := strings.Fields(header)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return parts[1]
		}
		return ""
	}
	if cookie, err := c.Cookie(accessTokenCookie); err == nil {
		return cookie
	}
	return ""
}

// CurrentUserID returns the authenticated account identifier set by
// AuthMiddleware.
func CurrentUserID(c *gin.Context) (uint, bool) {
	raw, exists := c.Get(ContextUserIDKey)
	if !exists {
		return 0, false
	}
	id, ok := raw.(uint)
	return id, ok
}

// CurrentClaims returns the access token claims set by AuthMiddleware.
func CurrentClaims(c *gin.Context) (*utils.AccessClaims, bool) {
	raw, exists := c.Get(ContextUserKey)
	if !exists {
		return nil, false
	}
	claims, ok := raw.(*utils.AccessClaims)
	return claims, ok
}
