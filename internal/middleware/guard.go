package middleware

import (
	"context"
	"net/http"

	"studysphere/internal/domain"
	"studysphere/internal/guard"
	"studysphere/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// RoleResolver looks up the current role for an identity, keyed by
// email. Implemented by the user repository.
type RoleResolver interface {
	ResolveRole(ctx context.Context, email string) (domain.UserRole, error)
}

// RequireCapability is the HTTP projection of the access guard: the
// JWT middleware has already resolved the identity, the role is
// re-fetched per request so a role change or deletion takes effect
// immediately instead of living until token expiry.
func RequireCapability(cap guard.Capability, roles RoleResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		requested := c.Request.URL.Path

		email := c.GetString("email")
		identity := guard.IdentityResult{Settled: true}
		if email != "" {
			identity.Identity = &guard.Identity{Email: email}
		}

		role := guard.RoleResult{Settled: true}
		if identity.Identity != nil {
			r, err := roles.ResolveRole(c.Request.Context(), email)
			if err != nil {
				// Covers gorm.ErrRecordNotFound too: an identity without
				// a role record is denied, never defaulted.
				role.Err = err
			} else {
				role.Role = r
			}
		}

		decision := guard.Evaluate(identity, role, cap, requested)
		if decision.State != guard.StateAuthorized {
			status := http.StatusForbidden
			code := "FORBIDDEN"
			if identity.Identity == nil {
				status = http.StatusUnauthorized
				code = "UNAUTHORIZED"
			}
			response.ErrorWithDetails(c, status, code, "Access denied: insufficient permissions", gin.H{
				"redirect_to": decision.RedirectTo,
				"from":        decision.From,
			})
			c.Abort()
			return
		}

		if role.Role != "" {
			c.Set("role", string(role.Role))
		}
		c.Next()
	}
}

// AdminOnly requires the admin capability.
func AdminOnly(roles RoleResolver) gin.HandlerFunc {
	return RequireCapability(guard.CapAdmin, roles)
}
