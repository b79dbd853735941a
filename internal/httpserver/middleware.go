package httpserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"bookstore/internal/domain"
)

const (
	ctxKeyUser       = "currentUser"
	ctxKeySessionKey = "sessionKey"
)

func requestLogger(logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("duration", time.Since(start)).
			Msg("request")
	}
}

// sessionMiddleware assigns every visitor an anonymous session key carried
// in a cookie. The key addresses the cart in the session store.
func sessionMiddleware(cookieName string, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		key, err := c.Cookie(cookieName)
		if err != nil || key == "" {
			key = uuid.NewString()
			c.SetCookie(cookieName, key, int(ttl.Seconds()), "/", "", false, true)
		}
		c.Set(ctxKeySessionKey, key)
		c.Next()
	}
}

// authMiddleware resolves a Bearer token to a user when one is presented.
// Routes that need a user gate on requireUser.
func authMiddleware(accounts AccountService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if token, ok := strings.CutPrefix(header, "Bearer "); ok && token != "" {
			if u, err := accounts.LookupByToken(c.Request.Context(), token); err == nil {
				c.Set(ctxKeyUser, u)
			}
		}
		c.Next()
	}
}

func requireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if currentUser(c) == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		c.Next()
	}
}

func requireAdmin(check AdminChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		u := currentUser(c)
		if u == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		isAdmin, err := check.IsAdmin(c.Request.Context(), u.ID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		if !isAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			return
		}
		c.Next()
	}
}

func currentUser(c *gin.Context) *domain.User {
	v, ok := c.Get(ctxKeyUser)
	if !ok {
		return nil
	}
	u, _ := v.(*domain.User)
	return u
}

func sessionKey(c *gin.Context) string {
	return c.GetString(ctxKeySessionKey)
}
