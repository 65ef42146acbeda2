package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pupuk-kujang/siadil-api/internal/models"
	"github.com/pupuk-kujang/siadil-api/internal/service"
)

type reminderServiceMock struct {
	resp []models.Reminder
	err  error
	last service.ReminderOptions
}

func (m *reminderServiceMock) List(ctx context.Context, opts service.ReminderOptions) ([]models.Reminder, error) {
	m.last = opts
	return m.resp, m.err
}

func TestReminderHandlerList(t *testing.T) {
	mockSvc := &reminderServiceMock{resp: []models.Reminder{
		{Document: models.Document{ID: "DOC-1"}, DiffDays: 3, Status: models.UrgencyRed},
	}}
	h := NewReminderHandler(mockSvc)

	c, w := testContext(t, http.MethodGet, "/reminders?dangerDays=7&warningDays=30&status=urgent", nil)
	h.List(c)

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, mockSvc.last.DangerDays)
	assert.Equal(t, 7, *mockSvc.last.DangerDays)
	require.NotNil(t, mockSvc.last.WarningDays)
	assert.Equal(t, 30, *mockSvc.last.WarningDays)
	assert.Equal(t, models.ReminderFilterUrgent, mockSvc.last.Status)
}

func TestReminderHandlerListRejectsBadParams(t *testing.T) {
	h := NewReminderHandler(&reminderServiceMock{})

	c, w := testContext(t, http.MethodGet, "/reminders?dangerDays=zero", nil)
	h.List(c)
	require.Equal(t, http.StatusBadRequest, w.Code)

	c, w = testContext(t, http.MethodGet, "/reminders?status=panic", nil)
	h.List(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
}
