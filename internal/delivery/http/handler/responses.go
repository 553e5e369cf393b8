package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/group-fitness/backend/internal/delivery/http/middleware"
	"github.com/group-fitness/backend/internal/domain"
)

// ErrorResponse represents error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// SuccessResponse represents success response
type SuccessResponse struct {
	Message string `json:"message"`
}

// currentUser pulls the identity stored by the auth middleware.
func currentUser(c *gin.Context) (*domain.UserInfo, bool) {
	value, exists := c.Get(middleware.ContextUserKey)
	if !exists {
		return nil, false
	}
	info, ok := value.(*domain.UserInfo)
	return info, ok
}

// currentToken pulls the raw bearer token stored by the auth middleware.
func currentToken(c *gin.Context) (string, bool) {
	value, exists := c.Get(middleware.ContextTokenKey)
	if !exists {
		return "", false
	}
	token, ok := value.(string)
	return token, ok
}
