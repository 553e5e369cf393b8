package repository

import (
	"context"

	"github.com/group-fitness/backend/internal/domain"
)

type ProfileRepository interface {
	// Create inserts a new profile. Returns domain.ErrProfileAlreadyExists
	// when a row for the same user_id is already present.
	Create(ctx context.Context, profile *domain.Profile) error
	GetByUserID(ctx context.Context, userID string) (*domain.Profile, error)
	GetByEmail(ctx context.Context, email string) (*domain.Profile, error)
	Update(ctx context.Context, profile *domain.Profile) error
}

type PreferencesRepository interface {
	Create(ctx context.Context, prefs *domain.Preferences) error
	// GetByUserID returns the oldest preferences row for the user; duplicate
	// rows are tolerated at the storage level.
	GetByUserID(ctx context.Context, userID string) (*domain.Preferences, error)
	Update(ctx context.Context, prefs *domain.Preferences) error
}
