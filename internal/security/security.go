package security

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/itc-club/club-applications/internal/errors"
)

// Config holds security middleware configuration.
type Config struct {
	// MaxBodyBytes caps the submission payload size.
	MaxBodyBytes int64
	// RequestTimeout bounds handler execution.
	RequestTimeout time.Duration
	// EnableHSTS adds the Strict-Transport-Security header. Only enable
	// behind TLS.
	EnableHSTS bool
}

// DefaultConfig returns secure defaults sized for form submissions.
func DefaultConfig() Config {
	return Config{
		MaxBodyBytes:   256 * 1024,
		RequestTimeout: 30 * time.Second,
	}
}

// Middleware bundles the request-hardening handlers.
type Middleware struct {
	config Config
}

// NewMiddleware creates a security middleware instance.
func NewMiddleware(config Config) *Middleware {
	return &Middleware{config: config}
}

// Headers adds security headers to all responses.
func (m *Middleware) Headers(c *gin.Context) {
	c.Header("X-Frame-Options", "DENY")
	c.Header("X-Content-Type-Options", "nosniff")
	c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
	c.Header("Permissions-Policy", "geolocation=(), microphone=(), camera=()")

	if m.config.EnableHSTS {
		c.Header("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
	}

	c.Next()
}

// RequestTimeout aborts handlers that exceed the configured deadline.
func (m *Middleware) RequestTimeout(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), m.config.RequestTimeout)
	defer cancel()

	c.Request = c.Request.WithContext(ctx)
	c.Next()
}

// ValidateContentType requires JSON bodies on mutating requests.
func (m *Middleware) ValidateContentType(c *gin.Context) {
	if c.Request.Method == http.MethodPost || c.Request.Method == http.MethodPut {
		contentType := c.GetHeader("Content-Type")
		if !strings.HasPrefix(contentType, "application/json") {
			appErr := errors.NewValidationError("Content-Type must be application/json")
			c.AbortWithStatusJSON(appErr.HTTPStatus, appErr)
			return
		}
	}
	c.Next()
}

// LimitBodySize caps request body size so a runaway payload cannot exhaust
// memory before JSON binding fails.
func (m *Middleware) LimitBodySize(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, m.config.MaxBodyBytes)
	c.Next()
}
