package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/NandiniVerma123/Ecommerce-BE/internal/model"
	"github.com/NandiniVerma123/Ecommerce-BE/internal/service"
)

const userKey = "current_user"

// AuthMiddleware resolves a bearer token to a user: revocation check, signature
// verify, then a live lookup so role and status changes apply mid-session.
type AuthMiddleware struct {
	tokens *service.TokenService
	users  service.UserStore
}

func NewAuthMiddleware(tokens *service.TokenService, users service.UserStore) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, users: users}
}

// BearerToken extracts the token from the Authorization header, or "".
func BearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// RequireAuth rejects requests without a valid, unrevoked token belonging to an
// active user.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := BearerToken(c)
		if token == "" {
			abortUnauthenticated(c, service.ErrNoCredential)
			return
		}

		claims, err := m.tokens.Verify(c.Request.Context(), token)
		if err != nil {
			abortUnauthenticated(c, err)
			return
		}

		// Role is re-read from the current record, not trusted from the claim.
		// A store outage is not a bad credential.
		user, err := m.users.GetByID(c.Request.Context(), claims.UserID)
		switch {
		case err == nil:
		case errors.Is(err, service.ErrNotFound):
			abortUnauthenticated(c, service.ErrUserNotFound)
			return
		default:
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error":   "internal error",
			})
			return
		}
		if !user.Active() {
			abortUnauthenticated(c, service.ErrAccountDeactivated)
			return
		}

		c.Set(userKey, user)
		c.Next()
	}
}

// RequireRole allows only the listed roles through. Must run after RequireAuth.
func (m *AuthMiddleware) RequireRole(roles ...model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			abortUnauthenticated(c, service.ErrUnauthenticated)
			return
		}
		if err := service.Authorize(user, roles...); err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"error":   "access denied: insufficient role",
			})
			return
		}
		c.Next()
	}
}

// CurrentUser returns the authenticated user attached by RequireAuth, or nil.
func CurrentUser(c *gin.Context) *model.User {
	v, ok := c.Get(userKey)
	if !ok {
		return nil
	}
	user, _ := v.(*model.User)
	return user
}

func abortUnauthenticated(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"error":   err.Error(),
	})
}
