package security

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newTestRouter(m *Middleware) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(m.Headers, m.ValidateContentType, m.LimitBodySize)
	r.POST("/submit", func(c *gin.Context) {
		if _, err := io.ReadAll(c.Request.Body); err != nil {
			c.Status(http.StatusRequestEntityTooLarge)
			return
		}
		c.Status(http.StatusOK)
	})
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func TestHeaders(t *testing.T) {
	r := newTestRouter(NewMiddleware(DefaultConfig()))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Empty(t, w.Header().Get("Strict-Transport-Security"), "HSTS off by default")
}

func TestHeadersHSTS(t *testing.T) {
	cfg := DefaultConfig()
	cfg.EnableHSTS = true
	r := newTestRouter(NewMiddleware(cfg))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Contains(t, w.Header().Get("Strict-Transport-Security"), "max-age=")
}

func TestValidateContentType(t *testing.T) {
	r := newTestRouter(NewMiddleware(DefaultConfig()))

	t.Run("json accepted", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/submit", strings.NewReader("{}"))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("form data rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/submit", strings.NewReader("a=b"))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("get requests unaffected", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestLimitBodySize(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxBodyBytes = 16
	r := newTestRouter(NewMiddleware(cfg))

	req := httptest.NewRequest(http.MethodPost, "/submit", strings.NewReader(strings.Repeat("x", 64)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}
