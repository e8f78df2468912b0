package authentication

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/streamtube/streamtube/internal/utils"
)

const (
	accessTokenCookie  = "accessToken"
	refreshTokenCookie = "refreshToken"
)

// cookieCarrier transports the token pair to browser clients as
// HttpOnly, SameSite=Strict cookies. Non-browser clients use the JSON
// body instead; both are always produced.
type cookieCarrier struct {
	cfg utils.TokenConfig
}

func (cc cookieCarrier) set(c *gin.Context, pair *TokenPair) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(accessTokenCookie, pair.AccessToken,
		int(cc.cfg.AccessTokenExpiry.Seconds()), "/", "", cc.cfg.CookieSecure, true)
	c.SetCookie(refreshTokenCookie, pair.RefreshToken,
		int(cc.cfg.RefreshTokenExpiry.Seconds()), "/", "", cc.cfg.CookieSecure, true)
}

func (cc cookieCarrier) clear(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(accessTokenCookie, "", -1, "/", "", cc.cfg.CookieSecure, true)
	c.SetCookie(refreshTokenCookie, "", -1, "/", "", cc.cfg.CookieSecure, true)
}

// refreshTokenFromRequest reads the refresh token from the standard
// cookie with a request-body fallback for non-browser clients.
func refreshTokenFromRequest(c *gin.Context) string {
	if cookie, err := c.Cookie(refreshTokenCookie); err == nil && cookie != "" {
		return cookie
	}
	var body struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := c.ShouldBindJSON(&body); err == nil {
		return body.RefreshToken
	}
	return ""
}
