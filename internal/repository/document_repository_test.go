package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"

	"github.com/pupuk-kujang/siadil-api/internal/models"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func documentRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "number_title", "description", "document_date", "expire_date",
		"contributors", "archive", "updated_created_by", "created_at", "updated_at", "deleted_at",
	})
}

func TestDocumentRepositoryCreateAndGet(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewDocumentRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO documents")).
		WillReturnResult(sqlmock.NewResult(1, 1))

	doc := &models.Document{
		NumberTitle:  "SRT-001 • Server License",
		DocumentDate: "2026-01-15",
		ExpireDate:   "2026-09-10",
		Contributors: pq.StringArray{"Andi Prasetyo"},
		Archive:      "Teknologi Informasi & Komunikasi",
	}
	require.NoError(t, repo.Create(context.Background(), doc))
	require.NotEmpty(t, doc.ID)

	rows := documentRows().
		AddRow(doc.ID, doc.NumberTitle, "", doc.DocumentDate, doc.ExpireDate,
			doc.Contributors, doc.Archive, "", time.Now(), time.Now(), nil)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, number_title")).
		WithArgs(doc.ID).
		WillReturnRows(rows)

	found, err := repo.GetByID(context.Background(), doc.ID)
	require.NoError(t, err)
	require.Equal(t, doc.NumberTitle, found.NumberTitle)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentRepositoryListActiveExcludesDeleted(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewDocumentRepository(db)
	rows := documentRows().
		AddRow("DOC-1", "DOC-1 • First", "", "", "", pq.StringArray{}, "Finance", "", time.Now(), time.Now(), nil)
	mock.ExpectQuery(regexp.QuoteMeta("WHERE deleted_at IS NULL")).
		WillReturnRows(rows)

	docs, err := repo.ListActive(context.Background())
	require.NoError(t, err)
	require.Len(t, docs, 1)
	require.Equal(t, "DOC-1", docs[0].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentRepositoryUpdateMissingRow(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewDocumentRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("UPDATE documents")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), &models.Document{ID: "missing", NumberTitle: "x", Archive: "Finance"})
	require.Error(t, err)
}

func TestDocumentRepositorySoftDelete(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewDocumentRepository(db)
	now := time.Now()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE documents SET deleted_at = $2")).
		WithArgs("DOC-1", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.SoftDelete(context.Background(), "DOC-1", now))

	mock.ExpectExec(regexp.QuoteMeta("UPDATE documents SET deleted_at = $2")).
		WithArgs("DOC-2", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))
	require.Error(t, repo.SoftDelete(context.Background(), "DOC-2", now))
}

func TestDocumentRepositoryListArchives(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewDocumentRepository(db)
	rows := sqlmock.NewRows([]string{"archive", "count"}).
		AddRow("Finance", 3).
		AddRow("Legal", 1)
	mock.ExpectQuery(regexp.QuoteMeta("GROUP BY archive")).
		WillReturnRows(rows)

	summaries, err := repo.ListArchives(context.Background())
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	require.Equal(t, "Finance", summaries[0].Archive)
	require.Equal(t, 3, summaries[0].Count)
}
