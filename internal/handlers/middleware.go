package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"tastycorner/internal/session"
	"tastycorner/pkg/logger"
)

const (
	requestIDKey    = "request_id"
	requestIDHeader = "X-Request-ID"
)

// RequestLogger tags each request with an id and logs its outcome.
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(requestIDHeader, id)

		start := time.Now()
		c.Next()

		log.WithFields(id, "http_request", map[string]interface{}{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"latency_ms": time.Since(start).Milliseconds(),
			"client_ip":  c.ClientIP(),
		}).Info("request completed")
	}
}

func requestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}

// RequireRole sends visitors without a live grant for role to loginPath,
// queueing notice first when it is not empty.
func RequireRole(log *logger.Logger, role session.Role, loginPath, notice string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := session.Current(c, role); ok {
			c.Next()
			return
		}
		if notice != "" {
			flash(c, session.FlashError, notice)
		}
		redirect(c, log, loginPath)
		c.Abort()
	}
}

// RequireRoleAPI answers 401 JSON instead of redirecting.
func RequireRoleAPI(role session.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := session.Current(c, role); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Next()
	}
}
