package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestActivityRepositoryListByEvent(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewActivityRepository(db)

	rows := sqlmock.NewRows([]string{"id", "event_id", "title", "description", "date", "time", "location", "enrollment_enabled", "survey_window_start", "survey_window_end", "created_at", "updated_at"}).
		AddRow("a1", "e1", "Opening", "", "2025-03-01", "08:00", "Aula Magna", true, nil, nil, time.Now(), time.Now()).
		AddRow("a2", "e1", "Workshop", "", "2025-03-01", "10:30", "Lab 2", false, nil, nil, time.Now(), time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("FROM activities WHERE event_id = $1")).
		WithArgs("e1").
		WillReturnRows(rows)

	activities, err := repo.ListByEvent(context.Background(), "e1")
	require.NoError(t, err)
	require.Len(t, activities, 2)
	require.Equal(t, "2025-03-01", activities[0].Date)
	require.Equal(t, "08:00", activities[0].Time)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestActivityRepositoryDelete(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewActivityRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM activities WHERE id = $1")).
		WithArgs("a1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Delete(context.Background(), "a1"))
	require.NoError(t, mock.ExpectationsWereMet())
}
