package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/shidoukh/shidoukh/internal/sessions"
)

// authPages are reachable only while signed out. A signed-in visitor is
// bounced back to the dashboard home.
var authPages = map[string]struct{}{
	"/auth/login":           {},
	"/auth/register":        {},
	"/auth/forgot-password": {},
	"/auth/reset-password":  {},
	"/auth/confirm-email":   {},
}

// SessionGuard gates page navigation on the presence of the session cookie.
// The check is presence-only: a stale cookie still passes the guard and is
// caught when the page resolves the current user. API routes, health and
// metrics endpoints and static assets are never redirected.
func SessionGuard() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path

		if skipGuard(path) {
			c.Next()
			return
		}

		_, authPage := authPages[path]

		cookie, err := c.Cookie(sessions.CookieName)
		authed := err == nil && cookie != ""

		switch {
		case authed && authPage:
			c.Redirect(http.StatusTemporaryRedirect, "/")
			c.Abort()
		case !authed && !authPage:
			c.Redirect(http.StatusTemporaryRedirect, "/auth/login")
			c.Abort()
		default:
			c.Next()
		}
	}
}

func skipGuard(path string) bool {
	if strings.HasPrefix(path, "/api") {
		return true
	}
	if path == "/health" || path == "/metrics" {
		return true
	}
	// Static assets carry an extension.
	return strings.Contains(path, ".")
}
