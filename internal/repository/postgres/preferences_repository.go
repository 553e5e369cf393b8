package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/group-fitness/backend/internal/domain"
	"github.com/group-fitness/backend/internal/repository"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type preferencesRepository struct {
	db *sqlx.DB
}

func NewPreferencesRepository(db *sqlx.DB) repository.PreferencesRepository {
	return &preferencesRepository{db: db}
}

func (r *preferencesRepository) Create(ctx context.Context, prefs *domain.Preferences) error {
	query := `
		INSERT INTO user_preferences (
			user_id, sports, preferred_pace, ride_type,
			distance_range_min, distance_range_max, availability
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`
	return r.db.QueryRowContext(
		ctx, query,
		prefs.UserID, pq.Array(prefs.Sports), prefs.PreferredPace, prefs.RideType,
		prefs.DistanceRangeMin, prefs.DistanceRangeMax, pq.Array(prefs.Availability),
	).Scan(&prefs.ID, &prefs.CreatedAt, &prefs.UpdatedAt)
}

func (r *preferencesRepository) GetByUserID(ctx context.Context, userID string) (*domain.Preferences, error) {
	var prefs domain.Preferences
	// Multiple rows per user are tolerated; the oldest one wins.
	query := `
		SELECT id, user_id, sports, preferred_pace, ride_type,
		       distance_range_min, distance_range_max, availability,
		       created_at, updated_at
		FROM user_preferences WHERE user_id = $1
		ORDER BY id ASC
		LIMIT 1
	`
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&prefs.ID, &prefs.UserID, pq.Array(&prefs.Sports), &prefs.PreferredPace, &prefs.RideType,
		&prefs.DistanceRangeMin, &prefs.DistanceRangeMax, pq.Array(&prefs.Availability),
		&prefs.CreatedAt, &prefs.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrPreferencesNotFound
		}
		return nil, err
	}
	return &prefs, nil
}

func (r *preferencesRepository) Update(ctx context.Context, prefs *domain.Preferences) error {
	query := `
		UPDATE user_preferences
		SET sports = $1, preferred_pace = $2, ride_type = $3,
		    distance_range_min = $4, distance_range_max = $5, availability = $6,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $7
		RETURNING updated_at
	`
	err := r.db.QueryRowContext(
		ctx, query,
		pq.Array(prefs.Sports), prefs.PreferredPace, prefs.RideType,
		prefs.DistanceRangeMin, prefs.DistanceRangeMax, pq.Array(prefs.Availability),
		prefs.ID,
	).Scan(&prefs.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrPreferencesNotFound
		}
		return err
	}
	return nil
}
