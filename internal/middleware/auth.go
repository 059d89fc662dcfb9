package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"article-api/internal/auth"
	"article-api/internal/domain"
)

// PrincipalKey is the gin context key for the resolved principal.
const PrincipalKey = "principal"

// Authenticate resolves the Authorization header into a principal.
// Requests without a bearer token proceed as anonymous; a present but
// invalid token is rejected outright so callers never run with silently
// dropped credentials.
func Authenticate(jwt *auth.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Set(PrincipalKey, domain.Anonymous)
			c.Next()
			return
		}

		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header"})
			return
		}

		principal, err := jwt.VerifyAccessToken(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set(PrincipalKey, principal)
		c.Next()
	}
}

// RequireAuth rejects anonymous requests. It must run after
// Authenticate.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !GetPrincipal(c).Authenticated {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		c.Next()
	}
}

// GetPrincipal retrieves the principal from the gin context, falling
// back to anonymous.
func GetPrincipal(c *gin.Context) domain.Principal {
	if v, exists := c.Get(PrincipalKey); exists {
		if p, ok := v.(domain.Principal); ok {
			return p
		}
	}
	return domain.Anonymous
}
