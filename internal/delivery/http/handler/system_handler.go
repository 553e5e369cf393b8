package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/group-fitness/backend/internal/config"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
)

const apiVersion = "1.0.0"

// SystemHandler serves the unauthenticated liveness and debug endpoints.
// The redis client is optional and only checked when present.
type SystemHandler struct {
	cfg   *config.Config
	db    *sqlx.DB
	redis *redis.Client
}

func NewSystemHandler(cfg *config.Config, db *sqlx.DB, redisClient *redis.Client) *SystemHandler {
	return &SystemHandler{
		cfg:   cfg,
		db:    db,
		redis: redisClient,
	}
}

// Root handles GET /
func (h *SystemHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Group Fitness API",
		"version": apiVersion,
		"status":  "running",
	})
}

// Ping handles GET /ping
func (h *SystemHandler) Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "pong",
		"status":  "healthy",
	})
}

// Health handles GET /health with dependency connectivity checks.
func (h *SystemHandler) Health(c *gin.Context) {
	checks := gin.H{}
	status := "healthy"

	if err := h.db.PingContext(c.Request.Context()); err != nil {
		checks["database"] = "unreachable"
		status = "degraded"
	} else {
		checks["database"] = "ok"
	}

	if h.redis != nil {
		if err := h.redis.Ping(c.Request.Context()).Err(); err != nil {
			checks["redis"] = "unreachable"
			status = "degraded"
		} else {
			checks["redis"] = "ok"
		}
	}

	code := http.StatusOK
	if status != "healthy" {
		code = http.StatusServiceUnavailable
	}

	c.JSON(code, gin.H{
		"status":    status,
		"service":   "group-fitness-api",
		"version":   apiVersion,
		"checks":    checks,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// DebugEnv handles GET /debug/env: an echo of the configuration with
// credentials truncated and connection strings redacted.
func (h *SystemHandler) DebugEnv(c *gin.Context) {
	c.JSON(http.StatusOK, h.cfg.MaskedView())
}
