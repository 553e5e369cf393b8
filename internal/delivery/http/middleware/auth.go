package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/group-fitness/backend/internal/usecase/auth"
)

// Context keys set by RequireAuth.
const (
	ContextUserKey  = "user"
	ContextTokenKey = "access_token"
)

type AuthMiddleware struct {
	authUseCase *auth.AuthUseCase
}

func NewAuthMiddleware(authUseCase *auth.AuthUseCase) *AuthMiddleware {
	return &AuthMiddleware{authUseCase: authUseCase}
}

// RequireAuth resolves the bearer token through the identity provider on
// every request and stores the resulting identity in the gin context. There
// is no local token verification and no session cache.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "missing authorization token",
			})
			return
		}

		token := strings.TrimPrefix(header, "Bearer ")
		if token == header || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "invalid authorization header",
			})
			return
		}

		info, err := m.authUseCase.GetUserInfo(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "invalid authentication credentials",
			})
			return
		}

		c.Set(ContextUserKey, info)
		c.Set(ContextTokenKey, token)
		c.Next()
	}
}
