package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pupuk-kujang/siadil-api/internal/models"
)

func filterDocs(archive ...models.Document) []models.Document {
	return archive
}

func sampleDocs() []models.Document {
	return filterDocs(
		models.Document{
			ID:           "SRT-001",
			NumberTitle:  "SRT-001 • Server License",
			Description:  "Annual license renewal",
			DocumentDate: "2026-01-15",
			ExpireDate:   "2026-09-10",
			Contributors: []string{"Andi Prasetyo", "Citra Lestari"},
			Archive:      "Teknologi Informasi & Komunikasi",
		},
		models.Document{
			ID:           "FIN-002",
			NumberTitle:  "FIN-002 • Budget Report",
			Description:  "Quarterly budget",
			DocumentDate: "2026/03/07",
			ExpireDate:   "",
			Archive:      "Finance",
		},
		models.Document{
			ID:           "LGL-003",
			NumberTitle:  "LGL-003 • Vendor Contract",
			Description:  "Master service agreement",
			DocumentDate: "sometime last year",
			ExpireDate:   "2026-12-31",
			Archive:      "Legal",
		},
	)
}

func TestFilterDocumentsEmptyQueryKeepsEverything(t *testing.T) {
	entries := indexDocuments(sampleDocs())
	today := dayStart(time.Date(2026, 8, 29, 10, 0, 0, 0, time.Local))

	filtered := filterDocuments(entries, models.DocumentQuery{}, today)
	require.Len(t, filtered, 3)
	for i, entry := range filtered {
		require.Equal(t, entries[i].doc.ID, entry.doc.ID)
	}
}

func TestFilterDocumentsSearchMatchesAnyColumn(t *testing.T) {
	entries := indexDocuments(sampleDocs())
	today := dayStart(time.Now())

	byContributor := filterDocuments(entries, models.DocumentQuery{Search: "citra"}, today)
	require.Len(t, byContributor, 1)
	require.Equal(t, "SRT-001", byContributor[0].doc.ID)

	byDescription := filterDocuments(entries, models.DocumentQuery{Search: "BUDGET"}, today)
	require.Len(t, byDescription, 1)
	require.Equal(t, "FIN-002", byDescription[0].doc.ID)

	none := filterDocuments(entries, models.DocumentQuery{Search: "nonexistent"}, today)
	require.Empty(t, none)
}

func TestFilterDocumentsArchiveMembership(t *testing.T) {
	entries := indexDocuments(sampleDocs())
	today := dayStart(time.Now())

	filtered := filterDocuments(entries, models.DocumentQuery{
		Archives: []string{"Finance", "Legal"},
	}, today)
	require.Len(t, filtered, 2)
	require.Equal(t, "FIN-002", filtered[0].doc.ID)
	require.Equal(t, "LGL-003", filtered[1].doc.ID)
}

func TestFilterDocumentsDateRangeExcludesUnparseable(t *testing.T) {
	entries := indexDocuments(sampleDocs())
	today := dayStart(time.Now())
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.Local)
	to := time.Date(2026, 12, 31, 0, 0, 0, 0, time.Local)

	filtered := filterDocuments(entries, models.DocumentQuery{
		DocDateFrom: &from,
		DocDateTo:   &to,
	}, today)
	// LGL-003 has no parseable document date and drops out.
	require.Len(t, filtered, 2)
	require.Equal(t, "SRT-001", filtered[0].doc.ID)
	require.Equal(t, "FIN-002", filtered[1].doc.ID)
}

func TestFilterDocumentsDateRangeInclusiveBounds(t *testing.T) {
	entries := indexDocuments(sampleDocs())
	today := dayStart(time.Now())
	exact := time.Date(2026, 1, 15, 0, 0, 0, 0, time.Local)

	filtered := filterDocuments(entries, models.DocumentQuery{
		DocDateFrom: &exact,
		DocDateTo:   &exact,
	}, today)
	require.Len(t, filtered, 1)
	require.Equal(t, "SRT-001", filtered[0].doc.ID)
}

func TestFilterDocumentsInvertedRangeIsEmpty(t *testing.T) {
	entries := indexDocuments(sampleDocs())
	today := dayStart(time.Now())
	from := time.Date(2026, 12, 1, 0, 0, 0, 0, time.Local)
	to := time.Date(2026, 1, 1, 0, 0, 0, 0, time.Local)

	filtered := filterDocuments(entries, models.DocumentQuery{
		DocDateFrom: &from,
		DocDateTo:   &to,
	}, today)
	require.Empty(t, filtered)
}

func TestFilterDocumentsExpireWithinWindow(t *testing.T) {
	entries := indexDocuments(sampleDocs())
	today := dayStart(time.Date(2026, 8, 29, 0, 0, 0, 0, time.Local))
	days := 30

	filtered := filterDocuments(entries, models.DocumentQuery{ExpireWithinDays: &days}, today)
	// Only SRT-001 expires inside [today, today+30]; FIN-002 has no expire
	// date and LGL-003 is past the window.
	require.Len(t, filtered, 1)
	require.Equal(t, "SRT-001", filtered[0].doc.ID)
}

func TestParseFlexibleDateFormats(t *testing.T) {
	cases := []struct {
		raw  string
		ok   bool
		want time.Time
	}{
		{"2026-02-03", true, time.Date(2026, 2, 3, 0, 0, 0, 0, time.Local)},
		{"2026/2/3", true, time.Date(2026, 2, 3, 0, 0, 0, 0, time.Local)},
		{"2026-2-3 extra text", true, time.Date(2026, 2, 3, 0, 0, 0, 0, time.Local)},
		{"2026-01-02T15:04:05", true, time.Date(2026, 1, 2, 0, 0, 0, 0, time.Local)},
		{"", false, time.Time{}},
		{"not a date", false, time.Time{}},
		{"2026-13-01", false, time.Time{}},
	}
	for _, tc := range cases {
		got, ok := parseFlexibleDate(tc.raw)
		require.Equal(t, tc.ok, ok, "input %q", tc.raw)
		if tc.ok {
			require.True(t, got.Equal(tc.want), "input %q parsed to %v", tc.raw, got)
		}
	}
}
