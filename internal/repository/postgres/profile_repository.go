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

type profileRepository struct {
	db *sqlx.DB
}

func NewProfileRepository(db *sqlx.DB) repository.ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) Create(ctx context.Context, profile *domain.Profile) error {
	query := `
		INSERT INTO user_profiles (user_id, email, name, bio, location_lat, location_lng, location_name)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRowContext(
		ctx, query,
		profile.UserID, profile.Email, profile.Name, profile.Bio,
		profile.LocationLat, profile.LocationLng, profile.LocationName,
	).Scan(&profile.ID, &profile.CreatedAt, &profile.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrProfileAlreadyExists
		}
		return err
	}
	return nil
}

func (r *profileRepository) GetByUserID(ctx context.Context, userID string) (*domain.Profile, error) {
	var profile domain.Profile
	query := `
		SELECT id, user_id, email, name, bio, location_lat, location_lng, location_name,
		       created_at, updated_at
		FROM user_profiles WHERE user_id = $1
	`
	err := r.db.GetContext(ctx, &profile, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) GetByEmail(ctx context.Context, email string) (*domain.Profile, error) {
	var profile domain.Profile
	query := `
		SELECT id, user_id, email, name, bio, location_lat, location_lng, location_name,
		       created_at, updated_at
		FROM user_profiles WHERE email = $1
	`
	err := r.db.GetContext(ctx, &profile, query, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) Update(ctx context.Context, profile *domain.Profile) error {
	query := `
		UPDATE user_profiles
		SET email = $1, name = $2, bio = $3, location_lat = $4, location_lng = $5,
		    location_name = $6, updated_at = CURRENT_TIMESTAMP
		WHERE user_id = $7
		RETURNING updated_at
	`
	err := r.db.QueryRowContext(
		ctx, query,
		profile.Email, profile.Name, profile.Bio,
		profile.LocationLat, profile.LocationLng, profile.LocationName,
		profile.UserID,
	).Scan(&profile.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrProfileNotFound
		}
		return err
	}
	return nil
}

// isUniqueViolation reports a postgres unique_violation (23505).
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
