package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dtroode/account-server/internal/api/http/middleware"
	"github.com/dtroode/account-server/internal/token"
)

// SessionCookieName is the cookie that carries the signed session token.
const SessionCookieName = middleware.SessionCookieName

func setSessionCookie(c *gin.Context, sessionToken string, secure bool) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(SessionCookieName, sessionToken, int(token.SessionTTL.Seconds()), "/", "", secure, true)
}

func clearSessionCookie(c *gin.Context, secure bool) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(SessionCookieName, "", -1, "/", "", secure, true)
}
