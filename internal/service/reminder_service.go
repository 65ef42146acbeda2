package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/pupuk-kujang/siadil-api/internal/models"
	appErrors "github.com/pupuk-kujang/siadil-api/pkg/errors"
)

type reminderDocumentLister interface {
	ListActive(ctx context.Context) ([]models.Document, error)
}

type reminderCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

// ReminderServiceConfig sets the default urgency windows and cache TTL.
type ReminderServiceConfig struct {
	DangerDays  int
	WarningDays int
	CacheTTL    time.Duration
}

// ReminderOptions are per-request overrides.
type ReminderOptions struct {
	DangerDays  *int
	WarningDays *int
	Status      models.ReminderStatusFilter
}

// ReminderService derives the expiry reminder rail from the document set.
type ReminderService struct {
	docs   reminderDocumentLister
	cache  reminderCache
	logger *zap.Logger
	cfg    ReminderServiceConfig
	now    func() time.Time
}

// NewReminderService constructs the service with defaults.
func NewReminderService(docs reminderDocumentLister, cache reminderCache, logger *zap.Logger, cfg ReminderServiceConfig) *ReminderService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.DangerDays <= 0 {
		cfg.DangerDays = 14
	}
	if cfg.WarningDays <= 0 {
		cfg.WarningDays = 60
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 5 * time.Minute
	}
	return &ReminderService{docs: docs, cache: cache, logger: logger, cfg: cfg, now: time.Now}
}

// List returns the reminder rail, cached per threshold pair. The optional
// status filter restricts the result to exactly one tab.
func (s *ReminderService) List(ctx context.Context, opts ReminderOptions) ([]models.Reminder, error) {
	danger := s.cfg.DangerDays
	if opts.DangerDays != nil && *opts.DangerDays > 0 {
		danger = *opts.DangerDays
	}
	warning := s.cfg.WarningDays
	if opts.WarningDays != nil && *opts.WarningDays > 0 {
		warning = *opts.WarningDays
	}
	if warning < danger {
		return nil, appErrors.Clone(appErrors.ErrValidation, "warningDays must not be below dangerDays")
	}

	key := fmt.Sprintf("reminders:%d:%d", danger, warning)
	var reminders []models.Reminder
	if s.cache != nil {
		if err := s.cache.Get(ctx, key, &reminders); err == nil {
			return filterReminderStatus(reminders, opts.Status), nil
		} else if !errors.Is(err, appErrors.ErrCacheMiss) {
			s.logger.Warn("reminder cache read failed", zap.Error(err))
		}
	}

	docs, err := s.docs.ListActive(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list documents")
	}
	reminders = Classify(docs, danger, warning, s.now())

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, reminders, s.cfg.CacheTTL); err != nil {
			s.logger.Warn("reminder cache write failed", zap.Error(err))
		}
	}
	return filterReminderStatus(reminders, opts.Status), nil
}

// Classify buckets documents by day distance to expiry relative to the start
// of the current day. Documents without a parseable expire date never appear.
//
// Ordering: every red before every yellow; within red the not-yet-due rows
// ascend by diffDays followed by past-due rows with the most recently lapsed
// first; within yellow ascending by diffDays.
func Classify(docs []models.Document, dangerDays, warningDays int, now time.Time) []models.Reminder {
	today := dayStart(now)
	reminders := make([]models.Reminder, 0)
	for _, doc := range docs {
		expire, ok := parseFlexibleDate(doc.ExpireDate)
		if !ok {
			continue
		}
		diffDays := int(expire.Sub(today).Hours() / 24)
		var status models.UrgencyStatus
		switch {
		case diffDays <= dangerDays:
			status = models.UrgencyRed
		case diffDays <= warningDays:
			status = models.UrgencyYellow
		default:
			continue
		}
		reminders = append(reminders, models.Reminder{
			Document: doc,
			DiffDays: diffDays,
			Status:   status,
			Expired:  diffDays < 0,
			DueLabel: dueLabel(diffDays),
		})
	}

	sort.SliceStable(reminders, func(i, j int) bool {
		a, b := reminders[i], reminders[j]
		if a.Status != b.Status {
			return a.Status == models.UrgencyRed
		}
		if a.Status == models.UrgencyRed {
			if a.Expired != b.Expired {
				return !a.Expired
			}
			if a.Expired {
				// most recently lapsed first
				return a.DiffDays > b.DiffDays
			}
		}
		return a.DiffDays < b.DiffDays
	})
	return reminders
}

// FormatDayCount renders a day total as whole 30-day months plus remainder,
// e.g. 97 -> "3 months 7 days".
func FormatDayCount(totalDays int) string {
	months := totalDays / 30
	days := totalDays % 30
	switch {
	case months > 0 && days > 0:
		return fmt.Sprintf("%d months %d days", months, days)
	case months > 0:
		return fmt.Sprintf("%d months", months)
	default:
		return fmt.Sprintf("%d days", days)
	}
}

func dueLabel(diffDays int) string {
	if diffDays < 0 {
		return fmt.Sprintf("expired %s ago", FormatDayCount(-diffDays))
	}
	return fmt.Sprintf("expires in %s", FormatDayCount(diffDays))
}

func filterReminderStatus(reminders []models.Reminder, status models.ReminderStatusFilter) []models.Reminder {
	if status == "" {
		return reminders
	}
	filtered := make([]models.Reminder, 0, len(reminders))
	for _, r := range reminders {
		switch status {
		case models.ReminderFilterUrgent:
			if r.Status == models.UrgencyRed && !r.Expired {
				filtered = append(filtered, r)
			}
		case models.ReminderFilterWarning:
			if r.Status == models.UrgencyYellow {
				filtered = append(filtered, r)
			}
		case models.ReminderFilterExpired:
			if r.Expired {
				filtered = append(filtered, r)
			}
		}
	}
	return filtered
}
