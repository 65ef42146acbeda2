package models

import "time"

// Preference is one persisted per-user view setting. Values are strings;
// multi-select filters are JSON-encoded arrays inside the value.
type Preference struct {
	UserID    string    `db:"user_id" json:"-"`
	Key       string    `db:"key" json:"key"`
	Value     string    `db:"value" json:"value"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// Known preference keys written by the document table UI.
const (
	PrefViewMode         = "view_mode"
	PrefPageSize         = "page_size"
	PrefSortKey          = "sort_key"
	PrefSortDir          = "sort_dir"
	PrefCurrentPage      = "current_page"
	PrefSearch           = "search"
	PrefFilterArchives   = "filter_archives"
	PrefFilterDocDate    = "filter_doc_date"
	PrefFilterExpireDate = "filter_expire_date"
	PrefExpireWithinDays = "expire_within_days"
	PrefReminderTab      = "reminder_tab"
)
