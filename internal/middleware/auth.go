package middleware

import (
	"net/http"
	"strings"

	session "clabs.com/website/internal/modules/session/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	LoginPagePath = "/admin/login"
	LoginAPIPath  = "/api/admin/login"
	LogoutAPIPath = "/api/admin/logout"
)

type AuthMiddleware struct {
	sessions session.AuthService
	logger   *zap.Logger
}

func NewAuthMiddleware(sessions session.AuthService, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{sessions: sessions, logger: logger}
}

// IsAuthenticated reports whether the request carries a live session. Lookup
// failures count as unauthenticated.
func (m *AuthMiddleware) IsAuthenticated(c *gin.Context) bool {
	ok, err := m.sessions.Validate(c.Request.Context(), session.TokenFromRequest(c.Request))
	if err != nil {
		m.logger.Error("session lookup failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
		return false
	}
	return ok
}

// RequireAuth gates the admin pages and the admin JSON API. Pages redirect to
// the login form; API calls get a 401. Logout stays open so a stale session
// can always sign out.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if path == LoginPagePath || path == LoginAPIPath || path == LogoutAPIPath {
			c.Next()
			return
		}

		if m.IsAuthenticated(c) {
			c.Next()
			return
		}

		switch {
		case strings.HasPrefix(path, "/api/admin"):
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "unauthorized"})
		case path == "/admin" || strings.HasPrefix(path, "/admin/"):
			c.Redirect(http.StatusFound, LoginPagePath)
			c.Abort()
		default:
			c.Next()
		}
	}
}
