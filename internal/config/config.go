package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Cognito  CognitoConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Storage  StorageConfig
	JWT      JWTConfig
}

type ServerConfig struct {
	Host         string
	Port         int
	Debug        bool
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type CognitoConfig struct {
	Region     string
	UserPoolID string
	ClientID   string
}

type DatabaseConfig struct {
	URL      string
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type RedisConfig struct {
	URL string
}

// StorageConfig configures the S3/MinIO bucket for GPS route files.
type StorageConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
}

// JWTConfig is a development fallback slot. The server never issues or
// verifies tokens locally; the values are only echoed (masked) by the
// debug endpoint.
type JWTConfig struct {
	SecretKey string
	Algorithm string
}

// Load loads configuration from environment variables or .env file
func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	// Try to read from .env file, but don't fail if it doesn't exist
	_ = viper.ReadInConfig()

	viper.SetDefault("AWS_REGION", "us-east-1")
	viper.SetDefault("API_HOST", "0.0.0.0")
	viper.SetDefault("API_PORT", 8000)
	viper.SetDefault("DEBUG", true)
	viper.SetDefault("DB_SSL_MODE", "disable")
	viper.SetDefault("JWT_ALGORITHM", "HS256")

	config := &Config{
		Server: ServerConfig{
			Host:         viper.GetString("API_HOST"),
			Port:         viper.GetInt("API_PORT"),
			Debug:        viper.GetBool("DEBUG"),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
		},
		Cognito: CognitoConfig{
			Region:     viper.GetString("AWS_REGION"),
			UserPoolID: viper.GetString("COGNITO_USER_POOL_ID"),
			ClientID:   viper.GetString("COGNITO_CLIENT_ID"),
		},
		Database: DatabaseConfig{
			URL:      viper.GetString("DATABASE_URL"),
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetInt("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			DBName:   viper.GetString("DB_NAME"),
			SSLMode:  viper.GetString("DB_SSL_MODE"),
		},
		Redis: RedisConfig{
			URL: viper.GetString("REDIS_URL"),
		},
		Storage: StorageConfig{
			Endpoint:  viper.GetString("S3_ENDPOINT"),
			AccessKey: viper.GetString("S3_ACCESS_KEY"),
			SecretKey: viper.GetString("S3_SECRET_KEY"),
			Bucket:    viper.GetString("S3_BUCKET"),
		},
		JWT: JWTConfig{
			SecretKey: viper.GetString("JWT_SECRET_KEY"),
			Algorithm: viper.GetString("JWT_ALGORITHM"),
		},
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate validates critical configuration values
func (c *Config) Validate() error {
	if c.Database.URL == "" && c.Database.Host == "" {
		return fmt.Errorf("database configuration is required (DATABASE_URL or DB_HOST)")
	}
	if c.Database.URL == "" {
		if c.Database.User == "" {
			return fmt.Errorf("database user is required")
		}
		if c.Database.DBName == "" {
			return fmt.Errorf("database name is required")
		}
	}
	if c.Cognito.Region == "" {
		return fmt.Errorf("AWS region is required")
	}
	return nil
}

// GetDSN returns the PostgreSQL connection string. DATABASE_URL wins when
// set; otherwise it is assembled from the discrete DB_* parts.
func (c *DatabaseConfig) GetDSN() string {
	if c.URL != "" {
		return c.URL
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

// Addr returns the server listen address
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// MaskedView returns the configuration with credentials truncated and
// connection strings redacted, for the debug endpoint.
func (c *Config) MaskedView() map[string]any {
	return map[string]any{
		"aws_region":           c.Cognito.Region,
		"cognito_user_pool_id": truncateSecret(c.Cognito.UserPoolID),
		"cognito_client_id":    truncateSecret(c.Cognito.ClientID),
		"database_url":         redactConnString(c.Database.GetDSN()),
		"redis_url":            redactConnString(c.Redis.URL),
		"s3_endpoint":          c.Storage.Endpoint,
		"s3_bucket":            c.Storage.Bucket,
		"debug":                c.Server.Debug,
	}
}

func truncateSecret(s string) string {
	if s == "" {
		return "Not set"
	}
	if len(s) <= 10 {
		return s + "..."
	}
	return s[:10] + "..."
}

// redactConnString hides everything after the credentials separator in a
// URL-style connection string.
func redactConnString(s string) string {
	if s == "" {
		return "Not set"
	}
	if idx := strings.Index(s, "@"); idx >= 0 {
		return s[:idx] + "@***"
	}
	return s
}
