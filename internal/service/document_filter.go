package service

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/pupuk-kujang/siadil-api/internal/models"
)

// docEntry pairs a document with its dates parsed once per request, so the
// filter and sort passes never re-parse per comparison.
type docEntry struct {
	doc        models.Document
	docDate    *time.Time
	expireDate *time.Time
	searchBlob string
}

func indexDocuments(docs []models.Document) []docEntry {
	entries := make([]docEntry, 0, len(docs))
	for _, doc := range docs {
		entry := docEntry{doc: doc}
		if t, ok := parseFlexibleDate(doc.DocumentDate); ok {
			entry.docDate = &t
		}
		if t, ok := parseFlexibleDate(doc.ExpireDate); ok {
			entry.expireDate = &t
		}
		entry.searchBlob = strings.ToLower(strings.Join([]string{
			doc.ID,
			doc.NumberTitle,
			doc.Description,
			doc.DocumentDate,
			doc.ExpireDate,
			strings.Join(doc.Contributors, " "),
			doc.Archive,
			doc.UpdatedCreatedBy,
		}, " "))
		entries = append(entries, entry)
	}
	return entries
}

// filterDocuments applies every active criterion with AND semantics; the
// archive criterion ORs across its selected values. Rows whose dates cannot
// be parsed are excluded whenever a date-driven criterion is active.
func filterDocuments(entries []docEntry, q models.DocumentQuery, today time.Time) []docEntry {
	term := strings.ToLower(strings.TrimSpace(q.Search))
	archiveSet := make(map[string]struct{}, len(q.Archives))
	for _, archive := range q.Archives {
		archiveSet[archive] = struct{}{}
	}

	result := make([]docEntry, 0, len(entries))
	for _, entry := range entries {
		if term != "" && !strings.Contains(entry.searchBlob, term) {
			continue
		}
		if len(archiveSet) > 0 {
			if _, ok := archiveSet[entry.doc.Archive]; !ok {
				continue
			}
		}
		if !withinRange(entry.docDate, q.DocDateFrom, q.DocDateTo) {
			continue
		}
		if !withinRange(entry.expireDate, q.ExpireDateFrom, q.ExpireDateTo) {
			continue
		}
		if q.ExpireWithinDays != nil {
			limit := today.AddDate(0, 0, *q.ExpireWithinDays)
			if !withinRange(entry.expireDate, &today, &limit) {
				continue
			}
		}
		result = append(result, entry)
	}
	return result
}

// withinRange is an inclusive [from, to] check. With no bounds every row
// passes; with any bound set a missing date fails.
func withinRange(value, from, to *time.Time) bool {
	if from == nil && to == nil {
		return true
	}
	if value == nil {
		return false
	}
	if from != nil && value.Before(*from) {
		return false
	}
	if to != nil && value.After(*to) {
		return false
	}
	return true
}

var (
	flexDatePattern = regexp.MustCompile(`^(\d{4})[-/](\d{1,2})[-/](\d{1,2})`)
	digitRunPattern = regexp.MustCompile(`\d+`)
)

// parseFlexibleDate accepts ISO timestamps and dates first, then falls back
// to a lenient YYYY-MM-DD / YYYY/MM/DD prefix match. The result is
// normalized to local midnight; document granularity is whole days.
func parseFlexibleDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return dayStart(t), true
		}
	}
	if m := flexDatePattern.FindStringSubmatch(raw); m != nil {
		year, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		day, _ := strconv.Atoi(m[3])
		if month >= 1 && month <= 12 && day >= 1 && day <= 31 {
			return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local), true
		}
	}
	return time.Time{}, false
}

// dayStart strips the time-of-day in local time.
func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local)
}
