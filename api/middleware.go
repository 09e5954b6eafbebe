package api

import (
	"net/http"
	"strings"
	"time"

	"akashic/config"
	"akashic/domain/entities"
	"akashic/domain/interfaces"
	"akashic/infrastructure/observability"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

const ctxUserKey = "current_user"

// sessionToken extracts the session token from the cookie or, failing that,
// a bearer Authorization header
func sessionToken(c *gin.Context) string {
	if token, err := c.Cookie(config.Get().SessionCookieName); err == nil && token != "" {
		return token
	}
	h := c.GetHeader("Authorization")
	if strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	return ""
}

// RequireSession resolves the session token to a user and aborts with 401
// when there is none
func RequireSession(accounts interfaces.AccountService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := sessionToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}

		user, err := accounts.Authenticate(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}

		c.Set(ctxUserKey, user)
		c.Next()
	}
}

// currentUser returns the authenticated user set by RequireSession
func currentUser(c *gin.Context) *entities.User {
	return c.MustGet(ctxUserKey).(*entities.User)
}

// RequestLogger logs each request with its status and duration
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.WithFields(log.Fields{
			"method":   c.Request.Method,
			"path":     c.Request.URL.Path,
			"status":   c.Writer.Status(),
			"duration": time.Since(start),
		}).Info("Handled request")
	}
}

// RequestMetrics records per-route request counts and durations
func RequestMetrics(metrics *observability.MetricsProvider) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.RecordHTTPRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
