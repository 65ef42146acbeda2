package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/pupuk-kujang/siadil-api/internal/models"
)

// EmployeeRepository loads self-service employee data.
type EmployeeRepository struct {
	db *sqlx.DB
}

// NewEmployeeRepository constructs the repository.
func NewEmployeeRepository(db *sqlx.DB) *EmployeeRepository {
	return &EmployeeRepository{db: db}
}

// GetProfile loads the profile card fields.
func (r *EmployeeRepository) GetProfile(ctx context.Context, employeeID string) (*models.EmployeeProfile, error) {
	const query = `SELECT id, full_name, email, phone, division, position, photo_url
		FROM employees WHERE id = $1`
	var profile models.EmployeeProfile
	if err := r.db.GetContext(ctx, &profile, query, employeeID); err != nil {
		return nil, err
	}
	return &profile, nil
}

// GetEmployment loads the employment page fields.
func (r *EmployeeRepository) GetEmployment(ctx context.Context, employeeID string) (*models.EmploymentInfo, error) {
	const query = `SELECT employee_id, status, division, supervisor, start_date, end_date, work_location
		FROM employment_info WHERE employee_id = $1`
	var info models.EmploymentInfo
	if err := r.db.GetContext(ctx, &info, query, employeeID); err != nil {
		return nil, err
	}
	return &info, nil
}

// ListAttendance returns clock records inside the optional date window,
// newest day first.
func (r *EmployeeRepository) ListAttendance(ctx context.Context, employeeID string, filter models.AttendanceFilter) ([]models.AttendanceRecord, error) {
	args := []interface{}{employeeID}
	conditions := []string{"employee_id = $1"}

	if filter.From != nil {
		args = append(args, *filter.From)
		conditions = append(conditions, fmt.Sprintf("date >= $%d", len(args)))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		conditions = append(conditions, fmt.Sprintf("date <= $%d", len(args)))
	}

	query := `SELECT id, employee_id, date, clock_in, clock_out, status FROM attendance_records WHERE ` +
		strings.Join(conditions, " AND ") + ` ORDER BY date DESC`
	var records []models.AttendanceRecord
	if err := r.db.SelectContext(ctx, &records, query, args...); err != nil {
		return nil, fmt.Errorf("list attendance: %w", err)
	}
	return records, nil
}
