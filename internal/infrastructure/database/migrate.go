package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS user_profiles (
		id SERIAL PRIMARY KEY,
		user_id VARCHAR(128) UNIQUE NOT NULL,
		email VARCHAR(255) NOT NULL,
		name VARCHAR(255),
		bio TEXT,
		location_lat DECIMAL(10,8),
		location_lng DECIMAL(11,8),
		location_name VARCHAR(255),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_user_profiles_user_id ON user_profiles (user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_user_profiles_email ON user_profiles (email)`,
	`CREATE TABLE IF NOT EXISTS user_preferences (
		id SERIAL PRIMARY KEY,
		user_id VARCHAR(128) NOT NULL REFERENCES user_profiles (user_id),
		sports TEXT[],
		preferred_pace VARCHAR(50),
		ride_type VARCHAR(50),
		distance_range_min INTEGER,
		distance_range_max INTEGER,
		availability TEXT[],
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_user_preferences_user_id ON user_preferences (user_id)`,
	`CREATE TABLE IF NOT EXISTS group_events (
		id SERIAL PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		sport_type TEXT NOT NULL,
		start_at TIMESTAMP NOT NULL,
		lat DECIMAL(10,8),
		lng DECIMAL(11,8),
		access TEXT NOT NULL,
		event_type TEXT NOT NULL,
		distance INTEGER NOT NULL,
		gps_file_link TEXT,
		created_by VARCHAR(128) NOT NULL REFERENCES user_profiles (user_id),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_group_events_created_by ON group_events (created_by)`,
	`CREATE INDEX IF NOT EXISTS idx_group_events_created_at ON group_events (created_at DESC)`,
}

// Migrate applies the schema. Every statement is idempotent so it runs at
// each startup.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	for _, stmt := range migrations {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}
