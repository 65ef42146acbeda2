package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pupuk-kujang/siadil-api/internal/dto"
	"github.com/pupuk-kujang/siadil-api/internal/models"
	appErrors "github.com/pupuk-kujang/siadil-api/pkg/errors"
	"github.com/pupuk-kujang/siadil-api/pkg/response"
)

type employeeService interface {
	Profile(ctx context.Context, employeeID string) (*models.EmployeeProfile, error)
	Employment(ctx context.Context, employeeID string) (*models.EmploymentInfo, error)
	Attendance(ctx context.Context, employeeID string, filter models.AttendanceFilter) (*dto.AttendanceResponse, error)
}

// EmployeeHandler serves the self-service pages. All lookups use the
// authenticated caller's identity.
type EmployeeHandler struct {
	service employeeService
}

// NewEmployeeHandler constructs the handler.
func NewEmployeeHandler(service employeeService) *EmployeeHandler {
	return &EmployeeHandler{service: service}
}

// Profile godoc
// @Summary Get the caller's profile
// @Tags Employee
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /me/profile [get]
func (h *EmployeeHandler) Profile(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	profile, err := h.service.Profile(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, profile, nil)
}

// Employment godoc
// @Summary Get the caller's employment info
// @Tags Employee
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /me/employment [get]
func (h *EmployeeHandler) Employment(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	info, err := h.service.Employment(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, info, nil)
}

// Attendance godoc
// @Summary List the caller's attendance records
// @Tags Employee
// @Produce json
// @Param from query string false "Window start (YYYY-MM-DD)"
// @Param to query string false "Window end (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope
// @Router /me/attendance [get]
func (h *EmployeeHandler) Attendance(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	filter := models.AttendanceFilter{}
	if raw := c.Query("from"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "from must be YYYY-MM-DD"))
			return
		}
		filter.From = &t
	}
	if raw := c.Query("to"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "to must be YYYY-MM-DD"))
			return
		}
		filter.To = &t
	}

	result, err := h.service.Attendance(c.Request.Context(), claims.UserID, filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}
