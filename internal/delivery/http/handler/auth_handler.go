package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/group-fitness/backend/internal/domain"
	"github.com/group-fitness/backend/internal/usecase/auth"
)

type AuthHandler struct {
	authUseCase *auth.AuthUseCase
}

func NewAuthHandler(authUseCase *auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{authUseCase: authUseCase}
}

type SignUpRequest struct {
	Email    string  `json:"email" binding:"required,email"`
	Password string  `json:"password" binding:"required,min=8"`
	Name     *string `json:"name" binding:"omitempty,max=255"`
}

type SignUpResponse struct {
	UserID  string `json:"user_id"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// SignUp handles POST /auth/signup
func (h *AuthHandler) SignUp(c *gin.Context) {
	var req SignUpRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.authUseCase.SignUp(c.Request.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		h.writeAuthError(c, http.StatusBadRequest, err)
		return
	}

	c.JSON(http.StatusOK, SignUpResponse{
		UserID:  result.UserID,
		Email:   result.Email,
		Message: "User created successfully. Please check your email for confirmation code.",
	})
}

type ConfirmSignUpRequest struct {
	Email            string `json:"email" binding:"required,email"`
	ConfirmationCode string `json:"confirmation_code" binding:"required"`
}

// ConfirmSignUp handles POST /auth/confirm-signup
func (h *AuthHandler) ConfirmSignUp(c *gin.Context) {
	var req ConfirmSignUpRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.authUseCase.ConfirmSignUp(c.Request.Context(), req.Email, req.ConfirmationCode); err != nil {
		h.writeAuthError(c, http.StatusBadRequest, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "Email confirmed successfully"})
}

type SignInRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// SignIn handles POST /auth/signin
func (h *AuthHandler) SignIn(c *gin.Context) {
	var req SignInRequest
	if !bindJSON(c, &req) {
		return
	}

	tokens, err := h.authUseCase.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.writeAuthError(c, http.StatusUnauthorized, err)
		return
	}

	c.JSON(http.StatusOK, tokens)
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// Refresh handles POST /auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if !bindJSON(c, &req) {
		return
	}

	tokens, err := h.authUseCase.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		h.writeAuthError(c, http.StatusUnauthorized, err)
		return
	}

	c.JSON(http.StatusOK, tokens)
}

// Me handles GET /auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	info, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}
	c.JSON(http.StatusOK, info)
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ForgotPassword handles POST /auth/forgot-password
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.authUseCase.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		h.writeAuthError(c, http.StatusBadRequest, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "Password reset code sent to your email"})
}

type ResetPasswordRequest struct {
	Email            string `json:"email" binding:"required,email"`
	ConfirmationCode string `json:"confirmation_code" binding:"required"`
	NewPassword      string `json:"new_password" binding:"required,min=8"`
}

// ResetPassword handles POST /auth/reset-password
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if !bindJSON(c, &req) {
		return
	}

	err := h.authUseCase.ConfirmForgotPassword(c.Request.Context(), req.Email, req.ConfirmationCode, req.NewPassword)
	if err != nil {
		h.writeAuthError(c, http.StatusBadRequest, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "Password reset successfully"})
}

// SignOut handles POST /auth/signout
func (h *AuthHandler) SignOut(c *gin.Context) {
	token, ok := currentToken(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	if err := h.authUseCase.SignOut(c.Request.Context(), token); err != nil {
		h.writeAuthError(c, http.StatusBadRequest, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "Sign out successful"})
}

// writeAuthError maps a provider rejection to the route's failure status;
// anything else is an internal error with no detail leaked.
func (h *AuthHandler) writeAuthError(c *gin.Context, status int, err error) {
	if domain.IsAuthError(err) {
		c.JSON(status, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
}
