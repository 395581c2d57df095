package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	jwt "gitlab.com/maplesense1/wrk.registration_server/src/production/WRK.ApiService/implementation/jwt"
	logger "gitlab.com/maplesense1/wrk.registration_server/src/production/WRK.Logger"
)

// Key types for request context
type contextKey string

const (
	AdminIDContextKey   contextKey = "admin_id"
	RequestIDContextKey contextKey = "request_id"
)

const (
	MsgNoToken      = "No token, authorization denied"
	MsgInvalidToken = "Token is not valid"
)

// AuthMiddleware gates admin routes on a valid bearer token
type AuthMiddleware struct {
	jwtService *jwt.Service
	logger     *logger.Logger
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(jwtService *jwt.Service, logger *logger.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		logger:     logger.WithComponent("auth"),
	}
}

// extractBearerToken returns the token from "Authorization: Bearer <token>", or ""
func extractBearerToken(r *http.Request) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(r.Header.Get("Authorization")), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// Authenticate verifies the bearer token and attaches the admin id
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractBearerToken(c.Request)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"msg": MsgNoToken})
			return
		}

		claims, err := m.jwtService.ValidateToken(token)
		if err != nil {
			m.logger.Logger.Debug().Err(err).Str("path", c.Request.URL.Path).Msg("Rejected admin token")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"msg": MsgInvalidToken})
			return
		}

		c.Set(string(AdminIDContextKey), claims.Admin.ID)

		c.Next()
	}
}

// GetAdminIDFromGinContext retrieves the admin id from a Gin context
func GetAdminIDFromGinContext(c *gin.Context) (string, error) {
	adminID := c.GetString(string(AdminIDContextKey))
	if adminID == "" {
		return "", errors.New("admin not found in context")
	}
	return adminID, nil
}
