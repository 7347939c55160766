package ratelimit

import (
	"github.com/gin-gonic/gin"

	"github.com/itc-club/club-applications/internal/errors"
)

// Middleware rejects clients that exceed their per-IP budget with 429.
func (l *Limiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.Allow(c.ClientIP()) {
			appErr := errors.NewRateLimitError("1s")
			c.Header("Retry-After", "1")
			c.AbortWithStatusJSON(appErr.HTTPStatus, appErr)
			return
		}
		c.Next()
	}
}
