package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pupuk-kujang/siadil-api/internal/models"
	appErrors "github.com/pupuk-kujang/siadil-api/pkg/errors"
)

type reminderListerStub struct {
	docs  []models.Document
	calls int
}

func (s *reminderListerStub) ListActive(ctx context.Context) ([]models.Document, error) {
	s.calls++
	return s.docs, nil
}

type reminderCacheStub struct {
	values map[string][]byte
}

func newReminderCacheStub() *reminderCacheStub {
	return &reminderCacheStub{values: map[string][]byte{}}
}

func (s *reminderCacheStub) Get(ctx context.Context, key string, dest interface{}) error {
	raw, ok := s.values[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (s *reminderCacheStub) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	s.values[key] = raw
	return nil
}

func docExpiring(id string, daysFromNow int, now time.Time) models.Document {
	return models.Document{
		ID:          id,
		NumberTitle: id + " • Sample",
		Archive:     "Licenses",
		ExpireDate:  now.AddDate(0, 0, daysFromNow).Format("2006-01-02"),
	}
}

func TestClassifyBucketsAndExclusions(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.Local)
	docs := []models.Document{
		docExpiring("expired", -5, now),
		docExpiring("danger", 10, now),
		docExpiring("warning", 40, now),
		docExpiring("far", 90, now),
		{ID: "undated", NumberTitle: "undated • No expiry", Archive: "Finance"},
	}

	reminders := Classify(docs, 14, 60, now)
	require.Len(t, reminders, 3)

	byID := map[string]models.Reminder{}
	for _, r := range reminders {
		byID[r.Document.ID] = r
	}

	require.Equal(t, models.UrgencyRed, byID["expired"].Status)
	require.True(t, byID["expired"].Expired)
	require.Equal(t, -5, byID["expired"].DiffDays)

	require.Equal(t, models.UrgencyRed, byID["danger"].Status)
	require.False(t, byID["danger"].Expired)

	require.Equal(t, models.UrgencyYellow, byID["warning"].Status)
	require.NotContains(t, byID, "far")
	require.NotContains(t, byID, "undated")
}

func TestClassifyOrdering(t *testing.T) {
	now := time.Date(2026, 8, 29, 0, 0, 0, 0, time.Local)
	docs := []models.Document{
		docExpiring("yellow-45", 45, now),
		docExpiring("red-10", 10, now),
		docExpiring("red-minus9", -9, now),
		docExpiring("red-3", 3, now),
		docExpiring("red-minus2", -2, now),
		docExpiring("yellow-20", 20, now),
	}

	reminders := Classify(docs, 14, 60, now)
	got := make([]string, 0, len(reminders))
	for _, r := range reminders {
		got = append(got, r.Document.ID)
	}
	// Red upcoming ascending, then red expired most recently lapsed first,
	// then yellow ascending.
	require.Equal(t, []string{"red-3", "red-10", "red-minus2", "red-minus9", "yellow-20", "yellow-45"}, got)
}

func TestClassifyBoundaryDays(t *testing.T) {
	now := time.Date(2026, 8, 29, 0, 0, 0, 0, time.Local)
	docs := []models.Document{
		docExpiring("at-danger", 14, now),
		docExpiring("past-danger", 15, now),
		docExpiring("at-warning", 60, now),
		docExpiring("past-warning", 61, now),
	}

	reminders := Classify(docs, 14, 60, now)
	byID := map[string]models.UrgencyStatus{}
	for _, r := range reminders {
		byID[r.Document.ID] = r.Status
	}
	require.Equal(t, models.UrgencyRed, byID["at-danger"])
	require.Equal(t, models.UrgencyYellow, byID["past-danger"])
	require.Equal(t, models.UrgencyYellow, byID["at-warning"])
	require.NotContains(t, byID, "past-warning")
}

func TestFormatDayCount(t *testing.T) {
	cases := map[int]string{
		0:   "0 days",
		5:   "5 days",
		30:  "1 months",
		60:  "2 months",
		97:  "3 months 7 days",
		365: "12 months 5 days",
	}
	for days, want := range cases {
		require.Equal(t, want, FormatDayCount(days), "days=%d", days)
	}
}

func TestReminderServiceCachesRail(t *testing.T) {
	now := time.Now()
	lister := &reminderListerStub{docs: []models.Document{docExpiring("doc-1", 5, now)}}
	cache := newReminderCacheStub()
	svc := NewReminderService(lister, cache, nil, ReminderServiceConfig{DangerDays: 14, WarningDays: 60, CacheTTL: time.Minute})

	first, err := svc.List(context.Background(), ReminderOptions{})
	require.NoError(t, err)
	require.Len(t, first, 1)
	require.Equal(t, 1, lister.calls)

	second, err := svc.List(context.Background(), ReminderOptions{})
	require.NoError(t, err)
	require.Len(t, second, 1)
	require.Equal(t, 1, lister.calls, "second read should come from cache")
}

func TestReminderServiceStatusFilter(t *testing.T) {
	now := time.Now()
	lister := &reminderListerStub{docs: []models.Document{
		docExpiring("urgent-doc", 5, now),
		docExpiring("expired-doc", -3, now),
		docExpiring("warning-doc", 30, now),
	}}
	svc := NewReminderService(lister, nil, nil, ReminderServiceConfig{})

	for status, wantID := range map[models.ReminderStatusFilter]string{
		models.ReminderFilterUrgent:  "urgent-doc",
		models.ReminderFilterExpired: "expired-doc",
		models.ReminderFilterWarning: "warning-doc",
	} {
		got, err := svc.List(context.Background(), ReminderOptions{Status: status})
		require.NoError(t, err, "status %s", status)
		require.Len(t, got, 1, "status %s", status)
		require.Equal(t, wantID, got[0].Document.ID)
	}
}

func TestReminderServiceRejectsInvertedThresholds(t *testing.T) {
	svc := NewReminderService(&reminderListerStub{}, nil, nil, ReminderServiceConfig{})
	danger := 30
	warning := 10

	_, err := svc.List(context.Background(), ReminderOptions{DangerDays: &danger, WarningDays: &warning})
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}

func TestReminderServiceThresholdOverrides(t *testing.T) {
	now := time.Now()
	lister := &reminderListerStub{docs: []models.Document{docExpiring("doc-1", 20, now)}}
	svc := NewReminderService(lister, nil, nil, ReminderServiceConfig{})

	base, err := svc.List(context.Background(), ReminderOptions{})
	require.NoError(t, err)
	require.Equal(t, models.UrgencyYellow, base[0].Status)

	danger := 25
	widened, err := svc.List(context.Background(), ReminderOptions{DangerDays: &danger})
	require.NoError(t, err)
	require.Equal(t, models.UrgencyRed, widened[0].Status)
}
