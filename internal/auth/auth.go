package auth

import (
	"crypto/subtle"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/itc-club/club-applications/internal/errors"
)

const sessionTTL = 24 * time.Hour

// Service authenticates dashboard admins. Admins share a single password;
// a successful login yields a short-lived session token.
type Service struct {
	adminPassword string
	jwtSecret     []byte
	now           func() time.Time
}

// NewService creates an auth service.
func NewService(adminPassword, jwtSecret string) *Service {
	return &Service{
		adminPassword: adminPassword,
		jwtSecret:     []byte(jwtSecret),
		now:           time.Now,
	}
}

// Login checks the shared password and issues a session token for adminName.
func (s *Service) Login(adminName, password string) (string, error) {
	if strings.TrimSpace(adminName) == "" {
		return "", errors.NewMissingFieldError("admin_name")
	}
	if subtle.ConstantTimeCompare([]byte(password), []byte(s.adminPassword)) != 1 {
		return "", errors.NewUnauthorizedError("invalid admin password")
	}
	return s.generateSessionToken(adminName)
}

func (s *Service) generateSessionToken(adminName string) (string, error) {
	claims := jwt.MapClaims{
		"admin": adminName,
		"exp":   s.now().Add(sessionTTL).Unix(),
		"iat":   s.now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	return tokenString, nil
}

// ValidateSessionToken validates a session token and returns the admin name.
func (s *Service) ValidateSessionToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})

	if err != nil {
		return "", err
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		adminName, ok := claims["admin"].(string)
		if !ok {
			return "", fmt.Errorf("admin not found in token")
		}
		return adminName, nil
	}

	return "", fmt.Errorf("invalid token")
}

// AdminKey is the gin context key holding the authenticated admin name.
const AdminKey = "admin_name"

// Middleware rejects requests without a valid Bearer session token.
func (s *Service) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		tokenString, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || tokenString == "" {
			appErr := errors.NewUnauthorizedError("missing bearer token")
			c.AbortWithStatusJSON(appErr.HTTPStatus, appErr)
			return
		}

		adminName, err := s.ValidateSessionToken(tokenString)
		if err != nil {
			appErr := errors.NewUnauthorizedError("invalid or expired session token")
			c.AbortWithStatusJSON(appErr.HTTPStatus, appErr)
			return
		}

		c.Set(AdminKey, adminName)
		c.Next()
	}
}
