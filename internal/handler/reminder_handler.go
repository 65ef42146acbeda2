package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/pupuk-kujang/siadil-api/internal/models"
	"github.com/pupuk-kujang/siadil-api/internal/service"
	appErrors "github.com/pupuk-kujang/siadil-api/pkg/errors"
	"github.com/pupuk-kujang/siadil-api/pkg/response"
)

type reminderService interface {
	List(ctx context.Context, opts service.ReminderOptions) ([]models.Reminder, error)
}

// ReminderHandler serves the expiry reminder rail.
type ReminderHandler struct {
	service reminderService
}

// NewReminderHandler constructs the handler.
func NewReminderHandler(service reminderService) *ReminderHandler {
	return &ReminderHandler{service: service}
}

// List godoc
// @Summary List expiry reminders
// @Tags Reminders
// @Produce json
// @Param dangerDays query int false "Red threshold override"
// @Param warningDays query int false "Yellow threshold override"
// @Param status query string false "urgent, warning or expired"
// @Success 200 {object} response.Envelope
// @Router /reminders [get]
func (h *ReminderHandler) List(c *gin.Context) {
	opts := service.ReminderOptions{}

	if raw := c.Query("dangerDays"); raw != "" {
		days, err := strconv.Atoi(raw)
		if err != nil || days < 1 {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "dangerDays must be a positive integer"))
			return
		}
		opts.DangerDays = &days
	}
	if raw := c.Query("warningDays"); raw != "" {
		days, err := strconv.Atoi(raw)
		if err != nil || days < 1 {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "warningDays must be a positive integer"))
			return
		}
		opts.WarningDays = &days
	}
	if raw := c.Query("status"); raw != "" {
		status := models.ReminderStatusFilter(raw)
		switch status {
		case models.ReminderFilterUrgent, models.ReminderFilterWarning, models.ReminderFilterExpired:
			opts.Status = status
		default:
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "status must be urgent, warning or expired"))
			return
		}
	}

	reminders, err := h.service.List(c.Request.Context(), opts)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, reminders, nil, map[string]interface{}{"total": len(reminders)})
}
