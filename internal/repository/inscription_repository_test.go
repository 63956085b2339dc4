package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func TestInscriptionRepositoryListDetailsByUser(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewInscriptionRepository(db)

	windowStart := time.Now().Add(-time.Hour)
	windowEnd := time.Now().Add(time.Hour)
	rows := sqlmock.NewRows([]string{
		"id", "user_id", "activity_id", "enrolled_at", "survey_window_start", "survey_window_end",
		"activity_title", "activity_date", "activity_time", "activity_location", "already_responded",
	}).AddRow("i1", "u1", "a1", time.Now(), windowStart, windowEnd, "Opening", "2025-03-01", "08:00", "Aula Magna", false)

	mock.ExpectQuery(regexp.QuoteMeta("JOIN activities a ON a.id = i.activity_id")).
		WithArgs("u1", "e1").
		WillReturnRows(rows)

	details, err := repo.ListDetailsByUser(context.Background(), "u1", "e1")
	require.NoError(t, err)
	require.Len(t, details, 1)
	require.Equal(t, "Opening", details[0].ActivityTitle)
	require.False(t, details[0].AlreadyResponded)
	require.NotNil(t, details[0].SurveyWindowStart)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestInscriptionRepositoryFindByUserAndActivity(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewInscriptionRepository(db)

	rows := sqlmock.NewRows([]string{"id", "user_id", "activity_id", "enrolled_at", "survey_window_start", "survey_window_end"}).
		AddRow("i1", "u1", "a1", time.Now(), nil, nil)
	mock.ExpectQuery(regexp.QuoteMeta("FROM inscriptions WHERE user_id = $1 AND activity_id = $2")).
		WithArgs("u1", "a1").
		WillReturnRows(rows)

	inscription, err := repo.FindByUserAndActivity(context.Background(), "u1", "a1")
	require.NoError(t, err)
	require.Equal(t, "i1", inscription.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestInscriptionRepositoryUpdateWindowByActivity(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewInscriptionRepository(db)

	start := time.Now()
	end := start.Add(2 * time.Hour)
	mock.ExpectExec(regexp.QuoteMeta("UPDATE inscriptions SET survey_window_start = $2, survey_window_end = $3 WHERE activity_id = $1")).
		WithArgs("a1", start, end).
		WillReturnResult(sqlmock.NewResult(0, 3))

	require.NoError(t, repo.UpdateWindowByActivity(context.Background(), "a1", &start, &end))
	require.NoError(t, mock.ExpectationsWereMet())
}
