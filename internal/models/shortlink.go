package models

import "time"

// Shortlink maps a short code onto a long URL.
type Shortlink struct {
	ID        string     `db:"id" json:"id"`
	Code      string     `db:"code" json:"code"`
	TargetURL string     `db:"target_url" json:"targetUrl"`
	CreatedBy string     `db:"created_by" json:"createdBy"`
	Hits      int64      `db:"hits" json:"hits"`
	CreatedAt time.Time  `db:"created_at" json:"createdAt"`
	DeletedAt *time.Time `db:"deleted_at" json:"deletedAt,omitempty"`
}
