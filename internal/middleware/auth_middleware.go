package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/savi/placement-portal/internal/app/models/dto"
	"github.com/savi/placement-portal/internal/pkg/auth"
	"github.com/savi/placement-portal/internal/pkg/logger"
)

// Context keys set by JWTAuth for downstream handlers.
const (
	ContextIdentity = "identity"
	ContextRole     = "role"
)

// RoleResolver looks up the role of an identity when the token carries
// none. Login issues role-bearing tokens, so this only runs for tokens
// minted before roles were embedded in the claims.
type RoleResolver interface {
	ResolveRole(ctx context.Context, identity string) (string, error)
}

// JWTAuth validates the bearer token and stores the caller's identity and
// role on the request context. Requests without a valid token are rejected
// with 401. Tokens without a role claim fall back to the resolver.
func JWTAuth(jwtService *auth.JWTService, resolver RoleResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := auth.ExtractBearerToken(c.GetHeader("Authorization"))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse("missing or malformed authorization header"))
			return
		}

		claims, err := jwtService.ValidateToken(tokenString)
		if err != nil {
			message := "invalid token"
			if errors.Is(err, auth.ErrExpiredToken) {
				message = "token has expired"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(message))
			return
		}

		role := claims.Role
		if role == "" {
			if resolver == nil {
				c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse("invalid token"))
				return
			}
			role, err = resolver.ResolveRole(c.Request.Context(), claims.Identity)
			if err != nil {
				logger.Debug().Err(err).Str("identity", claims.Identity).
					Msg("Role resolution failed for roleless token")
				c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse("invalid token"))
				return
			}
		}

		c.Set(ContextIdentity, claims.Identity)
		c.Set(ContextRole, role)
		c.Next()
	}
}

// RolesRequired allows only callers whose token role is in the list. It
// must run after JWTAuth.
func RolesRequired(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(roles))
	for _, role := range roles {
		allowed[role] = true
	}
	return func(c *gin.Context) {
		role := c.GetString(ContextRole)
		if !allowed[role] {
			logger.Debug().Str("role", role).Str("path", c.Request.URL.Path).
				Msg("Role denied")
			c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse("insufficient permissions"))
			return
		}
		c.Next()
	}
}

// Identity returns the authenticated caller's identity from the context.
func Identity(c *gin.Context) string {
	return c.GetString(ContextIdentity)
}

// Role returns the authenticated caller's role from the context.
func Role(c *gin.Context) string {
	return c.GetString(ContextRole)
}
