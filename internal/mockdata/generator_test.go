package mockdata

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestGenerateIsDeterministicPerArchive(t *testing.T) {
	now := time.Date(2026, 8, 29, 0, 0, 0, 0, time.Local)

	first := Generate("Teknologi Informasi & Komunikasi", 10, now)
	second := Generate("Teknologi Informasi & Komunikasi", 10, now)
	require.Equal(t, first, second)

	other := Generate("Finance", 10, now)
	require.NotEqual(t, first[0].ID, other[0].ID)
}

func TestGenerateRowShape(t *testing.T) {
	now := time.Date(2026, 8, 29, 0, 0, 0, 0, time.Local)
	docs := Generate("Teknologi Informasi & Komunikasi", 5, now)
	require.Len(t, docs, 5)

	for _, doc := range docs {
		require.Equal(t, "Teknologi Informasi & Komunikasi", doc.Archive)
		require.True(t, strings.HasPrefix(doc.ID, "TIK-"), "id %q", doc.ID)
		require.Contains(t, doc.NumberTitle, " • ")
		require.True(t, strings.HasPrefix(doc.NumberTitle, doc.ID))
		require.Len(t, doc.Contributors, 2)
		require.NotEqual(t, doc.Contributors[0], doc.Contributors[1])

		docDate, err := time.Parse("2006-01-02", doc.DocumentDate)
		require.NoError(t, err)
		require.Equal(t, now.Year(), docDate.Year())

		_, err = time.Parse("2006-01-02", doc.ExpireDate)
		require.NoError(t, err)

		require.Contains(t, doc.ID, "-")
	}
}

func TestCodePrefixFallback(t *testing.T) {
	require.Equal(t, "TIK", codePrefix("Teknologi Informasi & Komunikasi"))
	require.Equal(t, "F", codePrefix("Finance"))
	require.Equal(t, "DOC", codePrefix("123 456"))
	require.Equal(t, "DOC", codePrefix(""))
}

func TestGenerateZeroCount(t *testing.T) {
	require.Nil(t, Generate("Finance", 0, time.Now()))
}
