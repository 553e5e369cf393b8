package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/group-fitness/backend/internal/domain"
	"github.com/group-fitness/backend/internal/repository"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })
	return sqlx.NewDb(mockDB, "sqlmock"), mock
}

func TestProfileCreateReturnsGeneratedColumns(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProfileRepository(db)

	now := time.Now()
	mock.ExpectQuery(`INSERT INTO user_profiles`).
		WithArgs("sub-123", "rider@example.com", nil, nil, nil, nil, nil).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(1, now, now))

	profile := &domain.Profile{UserID: "sub-123", Email: "rider@example.com"}
	require.NoError(t, repo.Create(context.Background(), profile))
	assert.Equal(t, 1, profile.ID)
	assert.Equal(t, now, profile.CreatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileCreateUniqueViolation(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProfileRepository(db)

	mock.ExpectQuery(`INSERT INTO user_profiles`).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "user_profiles_user_id_key"})

	err := repo.Create(context.Background(), &domain.Profile{UserID: "sub-123", Email: "rider@example.com"})
	assert.ErrorIs(t, err, domain.ErrProfileAlreadyExists)
}

func TestProfileGetByUserIDNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProfileRepository(db)

	mock.ExpectQuery(`SELECT (.+) FROM user_profiles WHERE user_id`).
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetByUserID(context.Background(), "ghost")
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)
}

func TestProfileUpdateNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProfileRepository(db)

	mock.ExpectQuery(`UPDATE user_profiles`).
		WillReturnRows(sqlmock.NewRows([]string{"updated_at"}))

	err := repo.Update(context.Background(), &domain.Profile{UserID: "ghost", Email: "x@example.com"})
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)
}

func TestPreferencesGetPicksOldestRow(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPreferencesRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{
		"id", "user_id", "sports", "preferred_pace", "ride_type",
		"distance_range_min", "distance_range_max", "availability",
		"created_at", "updated_at",
	}).AddRow(7, "sub-123", "{running,cycling}", "moderate", nil, 10, 80, "{saturday,sunday}", now, now)

	mock.ExpectQuery(`FROM user_preferences WHERE user_id = \$1\s+ORDER BY id ASC\s+LIMIT 1`).
		WithArgs("sub-123").
		WillReturnRows(rows)

	prefs, err := repo.GetByUserID(context.Background(), "sub-123")
	require.NoError(t, err)
	assert.Equal(t, 7, prefs.ID)
	assert.Equal(t, []string{"running", "cycling"}, prefs.Sports)
	assert.Equal(t, []string{"saturday", "sunday"}, prefs.Availability)
	require.NotNil(t, prefs.PreferredPace)
	assert.Equal(t, "moderate", *prefs.PreferredPace)
}

func TestPreferencesGetNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPreferencesRepository(db)

	mock.ExpectQuery(`FROM user_preferences`).
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetByUserID(context.Background(), "ghost")
	assert.ErrorIs(t, err, domain.ErrPreferencesNotFound)
}

func TestGroupEventListOrdersNewestFirst(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewGroupEventRepository(db)

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	columns := []string{
		"id", "name", "sport_type", "start_at", "lat", "lng", "access",
		"event_type", "distance", "gps_file_link", "created_by", "created_at", "updated_at",
	}
	rows := sqlmock.NewRows(columns).
		AddRow(3, "third", "cycling", base, nil, nil, "public", "casual", 50, nil, "sub-a", base.Add(3*time.Minute), base.Add(3*time.Minute)).
		AddRow(2, "second", "cycling", base, nil, nil, "public", "casual", 50, nil, "sub-a", base.Add(2*time.Minute), base.Add(2*time.Minute)).
		AddRow(1, "first", "cycling", base, nil, nil, "public", "casual", 50, nil, "sub-a", base.Add(1*time.Minute), base.Add(1*time.Minute))

	mock.ExpectQuery(`FROM group_events\s+ORDER BY created_at DESC`).WillReturnRows(rows)

	events, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, "third", events[0].Name)
	assert.Equal(t, "first", events[2].Name)
}

func TestGroupEventDeleteMissing(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewGroupEventRepository(db)

	mock.ExpectExec(`DELETE FROM group_events WHERE id = \$1`).
		WithArgs(404).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), 404)
	assert.ErrorIs(t, err, domain.ErrEventNotFound)
}

// Compile-time checks that the postgres implementations satisfy the
// repository interfaces.
var (
	_ repository.ProfileRepository     = (*profileRepository)(nil)
	_ repository.PreferencesRepository = (*preferencesRepository)(nil)
	_ repository.GroupEventRepository  = (*groupEventRepository)(nil)
)
