package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/pupuk-kujang/siadil-api/internal/models"
)

func TestPreferenceRepositoryUpsertAndGet(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewPreferenceRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO preferences")).
		WillReturnResult(sqlmock.NewResult(1, 1))

	pref := &models.Preference{UserID: "user-1", Key: models.PrefSortKey, Value: "documentDate"}
	require.NoError(t, repo.Upsert(context.Background(), pref))
	require.False(t, pref.UpdatedAt.IsZero())

	rows := sqlmock.NewRows([]string{"user_id", "key", "value", "updated_at"}).
		AddRow("user-1", models.PrefSortKey, "documentDate", time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT user_id, key, value, updated_at FROM preferences")).
		WithArgs("user-1", models.PrefSortKey).
		WillReturnRows(rows)

	found, err := repo.Get(context.Background(), "user-1", models.PrefSortKey)
	require.NoError(t, err)
	require.Equal(t, "documentDate", found.Value)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPreferenceRepositoryDeleteMissing(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewPreferenceRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM preferences")).
		WithArgs("user-1", models.PrefSortKey).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.Error(t, repo.Delete(context.Background(), "user-1", models.PrefSortKey))
}
