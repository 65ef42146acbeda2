package service

import (
	"context"
	"database/sql"
	"errors"

	"go.uber.org/zap"

	"github.com/pupuk-kujang/siadil-api/internal/dto"
	"github.com/pupuk-kujang/siadil-api/internal/models"
	appErrors "github.com/pupuk-kujang/siadil-api/pkg/errors"
)

type employeeStore interface {
	GetProfile(ctx context.Context, employeeID string) (*models.EmployeeProfile, error)
	GetEmployment(ctx context.Context, employeeID string) (*models.EmploymentInfo, error)
	ListAttendance(ctx context.Context, employeeID string, filter models.AttendanceFilter) ([]models.AttendanceRecord, error)
}

// EmployeeService serves the self-service pages of the portal: profile,
// employment details and attendance history. All lookups are scoped to the
// authenticated employee.
type EmployeeService struct {
	repo   employeeStore
	logger *zap.Logger
}

// NewEmployeeService constructs the service.
func NewEmployeeService(repo employeeStore, logger *zap.Logger) *EmployeeService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EmployeeService{repo: repo, logger: logger}
}

// Profile loads the caller's profile card.
func (s *EmployeeService) Profile(ctx context.Context, employeeID string) (*models.EmployeeProfile, error) {
	profile, err := s.repo.GetProfile(ctx, employeeID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrNotFound
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load profile")
	}
	return profile, nil
}

// Employment loads the caller's employment page.
func (s *EmployeeService) Employment(ctx context.Context, employeeID string) (*models.EmploymentInfo, error) {
	info, err := s.repo.GetEmployment(ctx, employeeID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrNotFound
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load employment info")
	}
	return info, nil
}

// Attendance lists clock records in the requested window together with
// per-status totals for the summary cards.
func (s *EmployeeService) Attendance(ctx context.Context, employeeID string, filter models.AttendanceFilter) (*dto.AttendanceResponse, error) {
	if filter.From != nil && filter.To != nil && filter.To.Before(*filter.From) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "attendance window end precedes start")
	}
	records, err := s.repo.ListAttendance(ctx, employeeID, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list attendance")
	}
	summary := map[string]int{}
	for _, record := range records {
		summary[string(record.Status)]++
	}
	return &dto.AttendanceResponse{Records: records, Summary: summary}, nil
}
