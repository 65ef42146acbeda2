package models

import "time"

// EmployeeProfile is the self-service profile card.
type EmployeeProfile struct {
	ID       string `db:"id" json:"id"`
	FullName string `db:"full_name" json:"fullName"`
	Email    string `db:"email" json:"email"`
	Phone    string `db:"phone" json:"phone,omitempty"`
	Division string `db:"division" json:"division"`
	Position string `db:"position" json:"position"`
	PhotoURL string `db:"photo_url" json:"photoUrl,omitempty"`
}

// EmploymentInfo mirrors the employment page fields.
type EmploymentInfo struct {
	EmployeeID   string  `db:"employee_id" json:"employeeId"`
	Status       string  `db:"status" json:"status"`
	Division     string  `db:"division" json:"division"`
	Supervisor   string  `db:"supervisor" json:"supervisor"`
	StartDate    string  `db:"start_date" json:"startDate"`
	EndDate      *string `db:"end_date" json:"endDate,omitempty"`
	WorkLocation string  `db:"work_location" json:"workLocation"`
}

// AttendanceStatus enumerates daily attendance outcomes.
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "PRESENT"
	AttendanceLate    AttendanceStatus = "LATE"
	AttendanceLeave   AttendanceStatus = "LEAVE"
	AttendanceAbsent  AttendanceStatus = "ABSENT"
)

// AttendanceRecord is one clock-in/out row for an employee day.
type AttendanceRecord struct {
	ID         string           `db:"id" json:"id"`
	EmployeeID string           `db:"employee_id" json:"employeeId"`
	Date       time.Time        `db:"date" json:"date"`
	ClockIn    *string          `db:"clock_in" json:"clockIn,omitempty"`
	ClockOut   *string          `db:"clock_out" json:"clockOut,omitempty"`
	Status     AttendanceStatus `db:"status" json:"status"`
}

// AttendanceFilter bounds attendance listings by date.
type AttendanceFilter struct {
	From *time.Time
	To   *time.Time
}
