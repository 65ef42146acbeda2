package service

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pupuk-kujang/siadil-api/internal/models"
)

func ids(entries []docEntry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.doc.ID)
	}
	return out
}

func TestSortDocumentsIDIsNumericAware(t *testing.T) {
	entries := indexDocuments(filterDocs(
		models.Document{ID: "A-10"},
		models.Document{ID: "A-2"},
		models.Document{ID: "A-1"},
	))

	sortDocuments(entries, models.SortByID, "asc")
	require.Equal(t, []string{"A-1", "A-2", "A-10"}, ids(entries))

	sortDocuments(entries, models.SortByID, "desc")
	require.Equal(t, []string{"A-10", "A-2", "A-1"}, ids(entries))
}

func TestSortDocumentsIDWithoutDigitsSortsAsZero(t *testing.T) {
	entries := indexDocuments(filterDocs(
		models.Document{ID: "B-5"},
		models.Document{ID: "DRAFT"},
		models.Document{ID: "3"},
	))

	sortDocuments(entries, models.SortByID, "asc")
	require.Equal(t, []string{"DRAFT", "3", "B-5"}, ids(entries))
}

func TestSortDocumentsByDateUnparseableFirstAscending(t *testing.T) {
	entries := indexDocuments(filterDocs(
		models.Document{ID: "new", DocumentDate: "2026-06-01"},
		models.Document{ID: "broken", DocumentDate: "n/a"},
		models.Document{ID: "old", DocumentDate: "2024-01-01"},
	))

	sortDocuments(entries, models.SortByDocumentDate, "asc")
	require.Equal(t, []string{"broken", "old", "new"}, ids(entries))

	sortDocuments(entries, models.SortByDocumentDate, "desc")
	require.Equal(t, []string{"new", "old", "broken"}, ids(entries))
}

func TestSortDocumentsLexicographicCaseInsensitive(t *testing.T) {
	entries := indexDocuments(filterDocs(
		models.Document{ID: "1", NumberTitle: "zeta"},
		models.Document{ID: "2", NumberTitle: "Alpha"},
		models.Document{ID: "3", NumberTitle: "beta"},
	))

	sortDocuments(entries, models.SortByNumberTitle, "asc")
	require.Equal(t, []string{"2", "3", "1"}, ids(entries))
}

func TestSortDocumentsIsStableOnTies(t *testing.T) {
	entries := indexDocuments(filterDocs(
		models.Document{ID: "first", Archive: "Finance"},
		models.Document{ID: "second", Archive: "Finance"},
		models.Document{ID: "third", Archive: "Finance"},
	))

	sortDocuments(entries, models.SortByArchive, "asc")
	require.Equal(t, []string{"first", "second", "third"}, ids(entries))

	sortDocuments(entries, models.SortByArchive, "desc")
	require.Equal(t, []string{"first", "second", "third"}, ids(entries))
}
