package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pupuk-kujang/siadil-api/internal/dto"
	"github.com/pupuk-kujang/siadil-api/internal/models"
	appErrors "github.com/pupuk-kujang/siadil-api/pkg/errors"
)

type documentListerStub struct {
	docs []models.Document
	last dto.ListDocumentsQuery
}

func (s *documentListerStub) FilteredSorted(ctx context.Context, raw dto.ListDocumentsQuery) ([]models.Document, error) {
	s.last = raw
	return s.docs, nil
}

func TestBuildExportDataset(t *testing.T) {
	dataset := BuildExportDataset([]models.Document{
		{
			ID:               "SRT-001",
			NumberTitle:      "SRT-001 • Server License",
			Description:      "Annual renewal",
			DocumentDate:     "2026-01-15",
			ExpireDate:       "2026-09-10",
			Contributors:     []string{"Andi Prasetyo", "Citra Lestari"},
			Archive:          "Teknologi Informasi & Komunikasi",
			UpdatedCreatedBy: "Andi Prasetyo",
		},
	})

	require.Equal(t, []string{
		"ID", "Number & Title", "Description", "Document Date",
		"Expire Date", "Contributors", "Archive", "Updated/Created by",
	}, dataset.Headers)
	require.Len(t, dataset.Rows, 1)
	require.Equal(t, "Andi Prasetyo | Citra Lestari", dataset.Rows[0][5])
	require.Equal(t, "SRT-001", dataset.Rows[0][0])
}

func TestSanitizeFilename(t *testing.T) {
	cases := map[string]string{
		"Teknologi Informasi & Komunikasi": "teknologi-informasi-komunikasi",
		"Quarterly Report (Q3)":            "quarterly-report-q3",
		"already-clean_name":               "already-clean_name",
		"///":                              "export",
		"":                                 "export",
	}
	for input, want := range cases {
		require.Equal(t, want, SanitizeFilename(input), "input %q", input)
	}
}

func TestExportServiceRendersCSV(t *testing.T) {
	lister := &documentListerStub{docs: []models.Document{
		{ID: "A-1", NumberTitle: "A-1 • First", Archive: "Finance", Contributors: []string{"Budi Santoso"}},
		{ID: "A-2", NumberTitle: "A-2 • Second", Archive: "Finance"},
	}}
	audit := &auditStub{}
	svc := NewExportService(lister, nil, nil, audit, nil, ExportServiceConfig{})

	result, err := svc.Export(context.Background(), dto.ExportQuery{Title: "Finance Docs"}, testClaims())
	require.NoError(t, err)
	require.Equal(t, "text/csv", result.ContentType)
	require.Contains(t, result.Filename, "finance-docs-")
	require.Contains(t, result.Filename, ".csv")

	records, err := csv.NewReader(bytes.NewReader(result.Data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	require.Equal(t, exportHeaders, records[0])
	require.Equal(t, "A-1", records[1][0])
	require.Equal(t, "Budi Santoso", records[1][5])

	require.Len(t, audit.logs, 1)
	require.Equal(t, models.AuditActionDocumentExport, audit.logs[0].Action)
}

func TestExportServiceRendersPDF(t *testing.T) {
	lister := &documentListerStub{docs: []models.Document{
		{ID: "A-1", NumberTitle: "A-1 • First", Archive: "Legal"},
	}}
	svc := NewExportService(lister, nil, nil, nil, nil, ExportServiceConfig{})

	result, err := svc.Export(context.Background(), dto.ExportQuery{Format: "pdf"}, testClaims())
	require.NoError(t, err)
	require.Equal(t, "application/pdf", result.ContentType)
	require.True(t, bytes.HasPrefix(result.Data, []byte("%PDF")))
}

func TestExportServiceRejectsUnknownFormat(t *testing.T) {
	svc := NewExportService(&documentListerStub{}, nil, nil, nil, nil, ExportServiceConfig{})

	_, err := svc.Export(context.Background(), dto.ExportQuery{Format: "xlsx"}, testClaims())
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}

func TestExportServiceRequiresActor(t *testing.T) {
	svc := NewExportService(&documentListerStub{}, nil, nil, nil, nil, ExportServiceConfig{})

	_, err := svc.Export(context.Background(), dto.ExportQuery{}, nil)
	require.ErrorIs(t, err, appErrors.ErrUnauthorized)
}

func TestExportServicePassesFilterCriteria(t *testing.T) {
	lister := &documentListerStub{}
	svc := NewExportService(lister, nil, nil, nil, nil, ExportServiceConfig{})

	query := dto.ExportQuery{
		ListDocumentsQuery: dto.ListDocumentsQuery{
			Search:   "license",
			Archives: []string{"Licenses"},
			SortBy:   "documentDate",
		},
	}
	_, err := svc.Export(context.Background(), query, testClaims())
	require.NoError(t, err)
	require.Equal(t, "license", lister.last.Search)
	require.Equal(t, []string{"Licenses"}, lister.last.Archives)
	require.Equal(t, "documentDate", lister.last.SortBy)
}
