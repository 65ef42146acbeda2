package models

// UrgencyStatus is the reminder tier for a document nearing expiry.
type UrgencyStatus string

const (
	UrgencyRed    UrgencyStatus = "red"
	UrgencyYellow UrgencyStatus = "yellow"
)

// ReminderStatusFilter restricts the reminder rail to one tab.
type ReminderStatusFilter string

const (
	ReminderFilterUrgent  ReminderStatusFilter = "urgent"
	ReminderFilterWarning ReminderStatusFilter = "warning"
	ReminderFilterExpired ReminderStatusFilter = "expired"
)

// Reminder is the derived classification of a document with a parseable
// expire date. DiffDays is negative once the document is past due.
type Reminder struct {
	Document Document      `json:"document"`
	DiffDays int           `json:"diffDays"`
	Status   UrgencyStatus `json:"status"`
	Expired  bool          `json:"expired"`
	DueLabel string        `json:"dueLabel"`
}
