package middlewares

import (
	"net/http"
	"strings"

	"citysense-be/session"
	authUtils "citysense-be/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const sessionKey = "session_user"

// AuthMiddleware requires a valid bearer token (or auth_token cookie) and
// stores the caller in the gin context.
func AuthMiddleware(secret string, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "No authorization token provided"})
			return
		}

		user, err := authUtils.ParseToken(tokenString, secret)
		if err != nil {
			logger.Debug("token validation failed", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Invalid authorization token"})
			return
		}

		c.Set(sessionKey, user)
		c.Next()
	}
}

// AdminOnly rejects callers without the admin role. It must run after
// AuthMiddleware.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !CurrentSession(c).IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "error": "Admin access required"})
			return
		}
		c.Next()
	}
}

// CurrentUser returns the authenticated caller, or nil.
func CurrentUser(c *gin.Context) *session.User {
	v, ok := c.Get(sessionKey)
	if !ok {
		return nil
	}
	user, _ := v.(*session.User)
	return user
}

// CurrentSession wraps the caller in a session context.
func CurrentSession(c *gin.Context) *session.Context {
	return &session.Context{CurrentUser: CurrentUser(c)}
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	if cookie, err := c.Cookie("auth_token"); err == nil {
		return cookie
	}
	return ""
}
