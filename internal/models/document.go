package models

import (
	"strings"
	"time"

	"github.com/lib/pq"
)

// Document represents one archived document row in the digital archive.
// DocumentDate and ExpireDate are stored as the free text the uploader
// supplied; parsing is permissive and happens at query time.
type Document struct {
	ID               string         `db:"id" json:"id"`
	NumberTitle      string         `db:"number_title" json:"numberTitle"`
	Description      string         `db:"description" json:"description,omitempty"`
	DocumentDate     string         `db:"document_date" json:"documentDate,omitempty"`
	ExpireDate       string         `db:"expire_date" json:"expireDate,omitempty"`
	Contributors     pq.StringArray `db:"contributors" json:"contributors"`
	Archive          string         `db:"archive" json:"archive"`
	UpdatedCreatedBy string         `db:"updated_created_by" json:"updatedCreatedBy,omitempty"`
	CreatedAt        time.Time      `db:"created_at" json:"createdAt"`
	UpdatedAt        time.Time      `db:"updated_at" json:"updatedAt"`
	DeletedAt        *time.Time     `db:"deleted_at" json:"deletedAt,omitempty"`
}

// SplitNumberTitle separates the "<CODE> • <LABEL>" composite. A missing
// bullet yields an empty label.
func (d Document) SplitNumberTitle() (code, label string) {
	parts := strings.SplitN(d.NumberTitle, "•", 2)
	code = strings.TrimSpace(parts[0])
	if len(parts) > 1 {
		label = strings.TrimSpace(parts[1])
	}
	return code, label
}

// ArchiveTone names the badge color bucket for an archive label. Matching is
// by case-insensitive substring against a fixed keyword map.
func ArchiveTone(archive string) string {
	lowered := strings.ToLower(archive)
	for _, tone := range archiveTones {
		if strings.Contains(lowered, tone.keyword) {
			return tone.name
		}
	}
	return "default"
}

var archiveTones = []struct {
	keyword string
	name    string
}{
	{"personal", "personal"},
	{"finance", "finance"},
	{"legal", "legal"},
	{"operations", "operations"},
	{"marketing", "marketing"},
	{"it", "it"},
}

// DocumentSortKey enumerates the sortable columns.
type DocumentSortKey string

const (
	SortByID               DocumentSortKey = "id"
	SortByNumberTitle      DocumentSortKey = "numberTitle"
	SortByDescription      DocumentSortKey = "description"
	SortByDocumentDate     DocumentSortKey = "documentDate"
	SortByExpireDate       DocumentSortKey = "expireDate"
	SortByContributors     DocumentSortKey = "contributors"
	SortByArchive          DocumentSortKey = "archive"
	SortByUpdatedCreatedBy DocumentSortKey = "updatedCreatedBy"
)

// DocumentQuery captures the full list-view criteria: free text search,
// archive membership, date ranges, relative expiry window, sort and paging.
type DocumentQuery struct {
	Search           string
	Archives         []string
	DocDateFrom      *time.Time
	DocDateTo        *time.Time
	ExpireDateFrom   *time.Time
	ExpireDateTo     *time.Time
	ExpireWithinDays *int
	SortBy           DocumentSortKey
	SortOrder        string
	Page             int
	PageSize         int
}
