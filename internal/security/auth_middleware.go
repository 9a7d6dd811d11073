package security

import (
	"net/http"

	"dataflow-backend/internal/middleware"
	"dataflow-backend/pkg/response"

	"github.com/gin-gonic/gin"
)

const (
	claimsKey = "user_claims"
	userIDKey = "user_id"
)

// AuthMiddleware provides JWT authentication middleware
type AuthMiddleware struct {
	jwtManager *JWTManager
	enabled    bool
}

// NewAuthMiddleware creates a new AuthMiddleware. When enabled is false every
// middleware it returns lets requests through.
func NewAuthMiddleware(jwtManager *JWTManager, enabled bool) *AuthMiddleware {
	return &AuthMiddleware{
		jwtManager: jwtManager,
		enabled:    enabled,
	}
}

// RequireAuth rejects requests without a valid bearer token
func (am *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !am.enabled {
			c.Next()
			return
		}

		token, err := ExtractTokenFromHeader(c.GetHeader("Authorization"))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.UnauthorizedResponse(
				err.Error(),
				middleware.GetCorrelationID(c),
			))
			return
		}

		claims, err := am.jwtManager.ValidateToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.UnauthorizedResponse(
				"Invalid or expired token",
				middleware.GetCorrelationID(c),
			))
			return
		}

		c.Set(claimsKey, claims)
		c.Set(userIDKey, claims.UserID)
		c.Next()
	}
}

// RequireAnyRole rejects requests whose token carries none of roles. It must
// run after RequireAuth.
func (am *AuthMiddleware) RequireAnyRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !am.enabled {
			c.Next()
			return
		}

		claims, ok := GetUserClaims(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.UnauthorizedResponse(
				"User claims not found",
				middleware.GetCorrelationID(c),
			))
			return
		}

		if !claims.HasAnyRole(roles...) {
			c.AbortWithStatusJSON(http.StatusForbidden, response.ForbiddenResponse(
				"Insufficient permissions",
				middleware.GetCorrelationID(c),
			))
			return
		}

		c.Next()
	}
}

// RequireWriteAccess lets reads through for any authenticated user and
// requires the editor or admin role for everything else
func (am *AuthMiddleware) RequireWriteAccess() gin.HandlerFunc {
	writers := am.RequireAnyRole(RoleEditor, RoleAdmin)
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
		default:
			writers(c)
		}
	}
}

// GetUserClaims extracts user claims from context
func GetUserClaims(c *gin.Context) (*Claims, bool) {
	claims, exists := c.Get(claimsKey)
	if !exists {
		return nil, false
	}
	userClaims, ok := claims.(*Claims)
	return userClaims, ok
}
