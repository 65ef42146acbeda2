package dto

import "github.com/pupuk-kujang/siadil-api/internal/models"

// AttendanceResponse bundles the records with per-status totals for the
// attendance page summary cards.
type AttendanceResponse struct {
	Records []models.AttendanceRecord `json:"records"`
	Summary map[string]int            `json:"summary"`
}
