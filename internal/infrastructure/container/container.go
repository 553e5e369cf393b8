package container

import (
	"context"
	"fmt"
	nethttp "net/http"

	"github.com/group-fitness/backend/internal/config"
	"github.com/group-fitness/backend/internal/delivery/http"
	"github.com/group-fitness/backend/internal/delivery/http/handler"
	"github.com/group-fitness/backend/internal/delivery/http/middleware"
	"github.com/group-fitness/backend/internal/infrastructure/cognito"
	"github.com/group-fitness/backend/internal/infrastructure/database"
	"github.com/group-fitness/backend/internal/infrastructure/server"
	"github.com/group-fitness/backend/internal/infrastructure/storage"
	"github.com/group-fitness/backend/internal/repository/postgres"
	"github.com/group-fitness/backend/internal/usecase/auth"
	"github.com/group-fitness/backend/internal/usecase/groupevent"
	"github.com/group-fitness/backend/internal/usecase/user"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"
)

// Container holds all application dependencies
type Container struct {
	Config *config.Config
	DB     *sqlx.DB
	Redis  *redis.Client
	Server *server.Server
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *config.Config) (*Container, error) {
	ctx := context.Background()

	// Initialize database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := database.Migrate(ctx, db); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	// Initialize Redis (optional; only the health endpoint uses it)
	var redisClient *redis.Client
	if cfg.Redis.URL != "" {
		redisClient, err = database.NewRedisClient(&cfg.Redis)
		if err != nil {
			fmt.Printf("Warning: Failed to initialize redis: %v\n", err)
			redisClient = nil
		}
	}

	// Initialize Cognito client
	cognitoClient, err := cognito.NewClient(ctx, cfg.Cognito.Region)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cognito client: %w", err)
	}

	// Initialize object storage (optional)
	storageClient, err := storage.NewClient(ctx, &cfg.Storage, cfg.Cognito.Region)
	if err != nil {
		fmt.Printf("Warning: Failed to initialize object storage: %v\n", err)
		storageClient = nil
	}

	// Initialize repositories
	profileRepo := postgres.NewProfileRepository(db)
	prefsRepo := postgres.NewPreferencesRepository(db)
	eventRepo := postgres.NewGroupEventRepository(db)

	// Initialize use cases
	authUseCase := auth.NewAuthUseCase(cognitoClient, cfg.Cognito.UserPoolID, cfg.Cognito.ClientID)
	userUseCase := user.NewUserUseCase(profileRepo, prefsRepo)
	eventUseCase := groupevent.NewGroupEventUseCase(eventRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authUseCase)
	userHandler := handler.NewUserHandler(userUseCase)
	eventHandler := handler.NewGroupEventHandler(eventUseCase, storageClient)
	systemHandler := handler.NewSystemHandler(cfg, db, redisClient)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(authUseCase)

	// Initialize router
	router := http.NewRouter(
		authHandler,
		userHandler,
		eventHandler,
		systemHandler,
		authMiddleware,
	)
	ginRouter := router.Setup()

	// CORS for the development frontend
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000", "http://127.0.0.1:3000"},
		AllowedMethods:   []string{nethttp.MethodGet, nethttp.MethodPost, nethttp.MethodPut, nethttp.MethodDelete, nethttp.MethodHead, nethttp.MethodOptions},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}).Handler(ginRouter)

	// Initialize server
	srv := server.NewServer(&cfg.Server, corsHandler)

	return &Container{
		Config: cfg,
		DB:     db,
		Redis:  redisClient,
		Server: srv,
	}, nil
}

// Close closes all connections
func (c *Container) Close() error {
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			fmt.Printf("Error closing redis: %v\n", err)
		}
	}

	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
	}

	return nil
}
