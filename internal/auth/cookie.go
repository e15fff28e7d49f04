package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mrnoori/projecthub/internal/constants"
)

// SetSessionCookie writes the signed session token as an httpOnly, secure,
// SameSite=Strict cookie with the same lifetime as the token.
func SetSessionCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(
		constants.SessionCookieName,
		token,
		int(constants.SessionTTL.Seconds()),
		"/",
		"",
		true,
		true,
	)
}

// ClearSessionCookie removes the session cookie.
func ClearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(constants.SessionCookieName, "", -1, "/", "", true, true)
}
