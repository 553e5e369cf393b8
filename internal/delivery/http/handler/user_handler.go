package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/group-fitness/backend/internal/domain"
	"github.com/group-fitness/backend/internal/usecase/user"
)

type UserHandler struct {
	userUseCase *user.UserUseCase
}

func NewUserHandler(userUseCase *user.UserUseCase) *UserHandler {
	return &UserHandler{userUseCase: userUseCase}
}

// GetProfile handles GET /users/profile
func (h *UserHandler) GetProfile(c *gin.Context) {
	info, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	profile, err := h.userUseCase.GetProfile(c.Request.Context(), info.UserID)
	if err != nil {
		h.writeUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// UpdateProfile handles PUT /users/profile
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	info, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	var req user.UpdateProfileRequest
	if !bindJSON(c, &req) {
		return
	}

	profile, err := h.userUseCase.UpdateProfile(c.Request.Context(), info.UserID, &req)
	if err != nil {
		h.writeUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// GetPreferences handles GET /users/preferences
func (h *UserHandler) GetPreferences(c *gin.Context) {
	info, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	prefs, err := h.userUseCase.GetPreferences(c.Request.Context(), info.UserID)
	if err != nil {
		h.writeUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, prefs)
}

// UpdatePreferences handles PUT /users/preferences with upsert semantics.
func (h *UserHandler) UpdatePreferences(c *gin.Context) {
	info, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	var req user.UpdatePreferencesRequest
	if !bindJSON(c, &req) {
		return
	}

	prefs, err := h.userUseCase.UpsertPreferences(c.Request.Context(), info.UserID, &req)
	if err != nil {
		h.writeUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, prefs)
}

// Me handles GET /users/me
func (h *UserHandler) Me(c *gin.Context) {
	info, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	result, err := h.userUseCase.GetProfileWithPreferences(c.Request.Context(), info.UserID)
	if err != nil {
		h.writeUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// OnboardingRequest combines the first-time profile and preferences write.
type OnboardingRequest struct {
	Profile     user.UpdateProfileRequest     `json:"profile" binding:"required"`
	Preferences user.UpdatePreferencesRequest `json:"preferences" binding:"required"`
}

type OnboardingResponse struct {
	Profile     *domain.Profile     `json:"profile"`
	Preferences *domain.Preferences `json:"preferences"`
	Message     string              `json:"message"`
}

// CompleteOnboarding handles POST /users/onboarding. A missing profile is a
// 400: the client is expected to call auto-create after first sign-in.
func (h *UserHandler) CompleteOnboarding(c *gin.Context) {
	info, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	var req OnboardingRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.userUseCase.CompleteOnboarding(c.Request.Context(), info.UserID, &req.Profile, &req.Preferences)
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "user profile not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to complete onboarding"})
		return
	}

	c.JSON(http.StatusOK, OnboardingResponse{
		Profile:     result.Profile,
		Preferences: result.Preferences,
		Message:     "Onboarding completed successfully",
	})
}

type AutoCreateResponse struct {
	Message string          `json:"message"`
	Profile *domain.Profile `json:"profile"`
}

// AutoCreateProfile handles POST /users/profile/auto-create. Calling it
// again for the same identity returns the existing row.
func (h *UserHandler) AutoCreateProfile(c *gin.Context) {
	info, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	profile, err := h.userUseCase.CreateProfile(c.Request.Context(), info)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to create profile"})
		return
	}

	c.JSON(http.StatusOK, AutoCreateResponse{
		Message: "Profile created successfully",
		Profile: profile,
	})
}

func (h *UserHandler) writeUserError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrProfileNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "user profile not found"})
	case errors.Is(err, domain.ErrPreferencesNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "user preferences not found"})
	default:
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
	}
}
