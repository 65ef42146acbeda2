package service

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/pupuk-kujang/siadil-api/internal/models"
)

// sortDocuments orders entries by the requested column. The sort is stable:
// rows comparing equal keep their input order.
func sortDocuments(entries []docEntry, key models.DocumentSortKey, order string) {
	descending := strings.EqualFold(order, "desc")

	var less func(a, b docEntry) int
	switch key {
	case models.SortByID:
		less = func(a, b docEntry) int {
			an := idNumericValue(a.doc.ID)
			bn := idNumericValue(b.doc.ID)
			switch {
			case an < bn:
				return -1
			case an > bn:
				return 1
			default:
				return 0
			}
		}
	case models.SortByDocumentDate:
		less = func(a, b docEntry) int {
			at := dateSortValue(a.docDate)
			bt := dateSortValue(b.docDate)
			switch {
			case at < bt:
				return -1
			case at > bt:
				return 1
			default:
				return 0
			}
		}
	default:
		less = func(a, b docEntry) int {
			return strings.Compare(
				strings.ToLower(fieldString(a.doc, key)),
				strings.ToLower(fieldString(b.doc, key)),
			)
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		cmp := less(entries[i], entries[j])
		if descending {
			return cmp > 0
		}
		return cmp < 0
	})
}

// idNumericValue coerces an id for numeric ordering: a parseable number is
// used directly, otherwise the first run of digits, otherwise 0. "ABC-7"
// therefore sorts as 7.
func idNumericValue(id string) float64 {
	if n, err := strconv.ParseFloat(strings.TrimSpace(id), 64); err == nil {
		return n
	}
	if digits := digitRunPattern.FindString(id); digits != "" {
		if n, err := strconv.ParseFloat(digits, 64); err == nil {
			return n
		}
	}
	return 0
}

// dateSortValue maps an unparseable date to epoch 0 so it sorts earliest
// under ascending order.
func dateSortValue(t *time.Time) int64 {
	if t == nil {
		return 0
	}
	return t.UnixMilli()
}

func fieldString(doc models.Document, key models.DocumentSortKey) string {
	switch key {
	case models.SortByNumberTitle:
		return doc.NumberTitle
	case models.SortByDescription:
		return doc.Description
	case models.SortByExpireDate:
		return doc.ExpireDate
	case models.SortByContributors:
		return strings.Join(doc.Contributors, " ")
	case models.SortByArchive:
		return doc.Archive
	case models.SortByUpdatedCreatedBy:
		return doc.UpdatedCreatedBy
	default:
		return doc.ID
	}
}
