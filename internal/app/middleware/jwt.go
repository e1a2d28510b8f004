package middleware

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"mineral-catalog-service/internal/domain/models"
	"mineral-catalog-service/internal/domain/services"
	"mineral-catalog-service/internal/error/code"
	"mineral-catalog-service/internal/error/response"
)

// Context keys set by the authentication middleware
const (
	ContextUserID   = "userID"
	ContextUsername = "username"
	ContextRole     = "role"
	ContextClaims   = "claims"
)

var jwtService services.InterfaceJWTService

// InitAuthMiddleware sets the JWT service used by the auth middleware
func InitAuthMiddleware(svc services.InterfaceJWTService) {
	jwtService = svc
}

// extractToken strips the Bearer prefix. It returns "" for any other scheme.
func extractToken(authHeader string) string {
	parts := strings.SplitN(strings.TrimSpace(authHeader), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func parseClaims(c *gin.Context) (*services.JWTClaims, bool) {
	if jwtService == nil {
		return nil, false
	}
	tokenString := extractToken(c.GetHeader("Authorization"))
	if tokenString == "" {
		return nil, false
	}
	claims, err := jwtService.ExtractClaims(tokenString)
	if err != nil {
		return nil, false
	}
	return claims, true
}

func setIdentity(c *gin.Context, claims *services.JWTClaims) {
	c.Set(ContextUserID, claims.UserID)
	c.Set(ContextUsername, claims.Username)
	c.Set(ContextRole, claims.Role)
	c.Set(ContextClaims, claims)
}

// Authentication rejects requests without a valid bearer token
func Authentication() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			response.Abort(c, code.ErrTokenInvalid, "Authorization header is required")
			return
		}
		claims, ok := parseClaims(c)
		if !ok {
			response.Abort(c, code.ErrTokenInvalid, "Invalid or expired token")
			return
		}
		setIdentity(c, claims)
		c.Next()
	}
}

// OptionalAuthentication sets the identity when a valid token is sent and
// otherwise continues anonymously
func OptionalAuthentication() gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, ok := parseClaims(c); ok {
			setIdentity(c, claims)
		}
		c.Next()
	}
}

// RequireAdmin must run after Authentication
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, _ := c.Get(ContextRole)
		if r, ok := role.(models.Role); !ok || !r.IsAdmin() {
			response.Abort(c, code.ErrForbidden, "Insufficient permissions: requires admin role")
			return
		}
		c.Next()
	}
}

// UserKey keys per-account limits on the user id, falling back to the client IP
func UserKey(c *gin.Context) string {
	if id := UserID(c); id != nil {
		return "user:" + strconv.FormatUint(uint64(*id), 10)
	}
	return c.ClientIP()
}

// UserID returns the authenticated user, or nil for anonymous requests
func UserID(c *gin.Context) *uint {
	v, ok := c.Get(ContextUserID)
	if !ok {
		return nil
	}
	id, ok := v.(uint)
	if !ok {
		return nil
	}
	return &id
}
