package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/group-fitness/backend/internal/domain"
	"github.com/group-fitness/backend/internal/repository"
	"github.com/jmoiron/sqlx"
)

type groupEventRepository struct {
	db *sqlx.DB
}

func NewGroupEventRepository(db *sqlx.DB) repository.GroupEventRepository {
	return &groupEventRepository{db: db}
}

func (r *groupEventRepository) Create(ctx context.Context, event *domain.GroupEvent) error {
	query := `
		INSERT INTO group_events (
			name, sport_type, start_at, lat, lng, access,
			event_type, distance, gps_file_link, created_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at
	`
	return r.db.QueryRowContext(
		ctx, query,
		event.Name, event.SportType, event.StartAt, event.Lat, event.Lng,
		event.Access, event.EventType, event.Distance, event.GPSFileLink, event.CreatedBy,
	).Scan(&event.ID, &event.CreatedAt, &event.UpdatedAt)
}

func (r *groupEventRepository) GetByID(ctx context.Context, id int) (*domain.GroupEvent, error) {
	var event domain.GroupEvent
	query := `
		SELECT id, name, sport_type, start_at, lat, lng, access,
		       event_type, distance, gps_file_link, created_by, created_at, updated_at
		FROM group_events WHERE id = $1
	`
	err := r.db.GetContext(ctx, &event, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrEventNotFound
		}
		return nil, err
	}
	return &event, nil
}

func (r *groupEventRepository) ListAll(ctx context.Context) ([]*domain.GroupEvent, error) {
	events := []*domain.GroupEvent{}
	query := `
		SELECT id, name, sport_type, start_at, lat, lng, access,
		       event_type, distance, gps_file_link, created_by, created_at, updated_at
		FROM group_events
		ORDER BY created_at DESC
	`
	if err := r.db.SelectContext(ctx, &events, query); err != nil {
		return nil, err
	}
	return events, nil
}

func (r *groupEventRepository) Update(ctx context.Context, event *domain.GroupEvent) error {
	query := `
		UPDATE group_events
		SET name = $1, sport_type = $2, start_at = $3, lat = $4, lng = $5,
		    access = $6, event_type = $7, distance = $8, gps_file_link = $9,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $10
		RETURNING updated_at
	`
	err := r.db.QueryRowContext(
		ctx, query,
		event.Name, event.SportType, event.StartAt, event.Lat, event.Lng,
		event.Access, event.EventType, event.Distance, event.GPSFileLink,
		event.ID,
	).Scan(&event.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrEventNotFound
		}
		return err
	}
	return nil
}

func (r *groupEventRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM group_events WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrEventNotFound
	}
	return nil
}
