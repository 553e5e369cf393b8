package http

import (
	"github.com/gin-gonic/gin"
	"github.com/group-fitness/backend/internal/delivery/http/handler"
	"github.com/group-fitness/backend/internal/delivery/http/middleware"
)

type Router struct {
	authHandler    *handler.AuthHandler
	userHandler    *handler.UserHandler
	eventHandler   *handler.GroupEventHandler
	systemHandler  *handler.SystemHandler
	authMiddleware *middleware.AuthMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	eventHandler *handler.GroupEventHandler,
	systemHandler *handler.SystemHandler,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		authHandler:    authHandler,
		userHandler:    userHandler,
		eventHandler:   eventHandler,
		systemHandler:  systemHandler,
		authMiddleware: authMiddleware,
	}
}

func (r *Router) Setup() *gin.Engine {
	router := gin.Default()

	// Liveness and debug (public)
	router.GET("/", r.systemHandler.Root)
	router.GET("/ping", r.systemHandler.Ping)
	router.GET("/health", r.systemHandler.Health)
	router.HEAD("/health", r.systemHandler.Health)
	router.GET("/debug/env", r.systemHandler.DebugEnv)

	// Auth routes
	auth := router.Group("/auth")
	{
		auth.POST("/signup", r.authHandler.SignUp)
		auth.POST("/confirm-signup", r.authHandler.ConfirmSignUp)
		auth.POST("/signin", r.authHandler.SignIn)
		auth.POST("/refresh", r.authHandler.Refresh)
		auth.POST("/forgot-password", r.authHandler.ForgotPassword)
		auth.POST("/reset-password", r.authHandler.ResetPassword)
		auth.GET("/me", r.authMiddleware.RequireAuth(), r.authHandler.Me)
		auth.POST("/signout", r.authMiddleware.RequireAuth(), r.authHandler.SignOut)
	}

	// User routes (all protected)
	users := router.Group("/users")
	users.Use(r.authMiddleware.RequireAuth())
	{
		users.GET("/profile", r.userHandler.GetProfile)
		users.PUT("/profile", r.userHandler.UpdateProfile)
		users.POST("/profile/auto-create", r.userHandler.AutoCreateProfile)
		users.GET("/preferences", r.userHandler.GetPreferences)
		users.PUT("/preferences", r.userHandler.UpdatePreferences)
		users.GET("/me", r.userHandler.Me)
		users.POST("/onboarding", r.userHandler.CompleteOnboarding)
	}

	// Group event routes; listing and single reads are public
	events := router.Group("/group_events")
	{
		events.POST("/", r.authMiddleware.RequireAuth(), r.eventHandler.Create)
		events.GET("/", r.eventHandler.List)
		events.GET("/upload-url", r.authMiddleware.RequireAuth(), r.eventHandler.UploadURL)
		events.GET("/:id", r.eventHandler.GetByID)
		events.PUT("/:id", r.authMiddleware.RequireAuth(), r.eventHandler.Update)
		events.DELETE("/:id", r.authMiddleware.RequireAuth(), r.eventHandler.Delete)
	}

	return router
}
