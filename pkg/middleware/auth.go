package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/signupdesk/signupdesk/backend/internal/admin"
	"github.com/signupdesk/signupdesk/backend/pkg/logger"
)

// TokenKey is the gin context key holding the accepted bearer token.
const TokenKey = "adminToken"

// Authorizer is the minimal interface the middleware depends on
type Authorizer interface {
	Authorize(ctx context.Context, token string) error
}

// BearerToken extracts <token> from an "Authorization: Bearer <token>" header.
func BearerToken(c *gin.Context) (string, bool) {
	token, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
	return token, ok && token != ""
}

// AuthMiddleware returns a Gin middleware that admits only requests carrying a
// bearer token the authorizer accepts.
func AuthMiddleware(a Authorizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := BearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			return
		}
		if err := a.Authorize(c.Request.Context(), token); err != nil {
			if errors.Is(err, admin.ErrUnauthorized) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
				return
			}
			logger.Errorf("authorization check failed: %v", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "Authorization check failed"})
			return
		}
		c.Set(TokenKey, token)
		c.Next()
	}
}
