package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pupuk-kujang/siadil-api/internal/dto"
	"github.com/pupuk-kujang/siadil-api/internal/models"
	appErrors "github.com/pupuk-kujang/siadil-api/pkg/errors"
	"github.com/pupuk-kujang/siadil-api/pkg/export"
)

// exportHeaders is the fixed column set of every document export, in order.
var exportHeaders = []string{
	"ID",
	"Number & Title",
	"Description",
	"Document Date",
	"Expire Date",
	"Contributors",
	"Archive",
	"Updated/Created by",
}

type documentLister interface {
	FilteredSorted(ctx context.Context, raw dto.ListDocumentsQuery) ([]models.Document, error)
}

type exportStorage interface {
	Save(filename string, data []byte) (string, error)
	Open(filename string) (io.ReadCloser, error)
	CleanupOlderThan(ttl time.Duration) ([]string, error)
}

type urlSigner interface {
	Generate(exportID, relPath string) (string, time.Time, error)
	Parse(token string, allowExpired bool) (exportID, relPath string, expiresAt time.Time, err error)
}

// ExportResult carries the rendered bytes plus the signed re-download token
// for the stored copy.
type ExportResult struct {
	Filename    string    `json:"filename"`
	ContentType string    `json:"contentType"`
	Data        []byte    `json:"-"`
	Token       string    `json:"token,omitempty"`
	ExpiresAt   time.Time `json:"expiresAt,omitempty"`
}

// ExportServiceConfig controls retention of stored export copies.
type ExportServiceConfig struct {
	CleanupTTL time.Duration
}

// ExportService renders the current filtered document view as CSV or PDF.
// The export always covers the full filtered and sorted set, never a single
// page.
type ExportService struct {
	docs    documentLister
	csv     *export.CSVExporter
	pdf     *export.PDFExporter
	storage exportStorage
	signer  urlSigner
	audit   auditLogger
	logger  *zap.Logger
	cfg     ExportServiceConfig
	now     func() time.Time
}

// NewExportService wires the renderers over the document list view.
func NewExportService(docs documentLister, storage exportStorage, signer urlSigner, audit auditLogger, logger *zap.Logger, cfg ExportServiceConfig) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.CleanupTTL <= 0 {
		cfg.CleanupTTL = 24 * time.Hour
	}
	return &ExportService{
		docs:    docs,
		csv:     export.NewCSVExporter(),
		pdf:     export.NewPDFExporter(),
		storage: storage,
		signer:  signer,
		audit:   audit,
		logger:  logger,
		cfg:     cfg,
		now:     time.Now,
	}
}

// Export renders the filtered set in the requested format and stores a copy
// for signed re-download.
func (s *ExportService) Export(ctx context.Context, q dto.ExportQuery, actor *models.JWTClaims) (*ExportResult, error) {
	if actor == nil {
		return nil, appErrors.ErrUnauthorized
	}
	format := strings.ToLower(strings.TrimSpace(q.Format))
	if format == "" {
		format = "csv"
	}
	if format != "csv" && format != "pdf" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf")
	}

	docs, err := s.docs.FilteredSorted(ctx, q.ListDocumentsQuery)
	if err != nil {
		return nil, err
	}
	dataset := BuildExportDataset(docs)

	title := q.Title
	if title == "" {
		title = "documents"
	}

	var data []byte
	var contentType string
	switch format {
	case "csv":
		data, err = s.csv.Render(dataset)
		contentType = "text/csv"
	case "pdf":
		data, err = s.pdf.Render(dataset, title)
		contentType = "application/pdf"
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export")
	}

	result := &ExportResult{
		Filename:    fmt.Sprintf("%s-%s.%s", SanitizeFilename(title), s.now().Format("2006-01-02"), format),
		ContentType: contentType,
		Data:        data,
	}
	s.storeCopy(result)
	s.emitExportAudit(ctx, actor, format, len(docs))
	return result, nil
}

// Download re-serves a stored export copy via its signed token.
func (s *ExportService) Download(ctx context.Context, token string) (io.ReadCloser, string, error) {
	if s.signer == nil || s.storage == nil {
		return nil, "", appErrors.ErrNotFound
	}
	_, relPath, _, err := s.signer.Parse(token, false)
	if err != nil {
		return nil, "", appErrors.Clone(appErrors.ErrUnauthorized, "invalid or expired download token")
	}
	file, err := s.storage.Open(relPath)
	if err != nil {
		return nil, "", appErrors.ErrNotFound
	}
	return file, contentTypeFor(relPath), nil
}

// Cleanup drops stored copies past their retention window. Intended to run on
// a timer from the process entrypoint.
func (s *ExportService) Cleanup(ctx context.Context) {
	if s.storage == nil {
		return
	}
	deleted, err := s.storage.CleanupOlderThan(s.cfg.CleanupTTL)
	if err != nil {
		s.logger.Warn("export cleanup failed", zap.Error(err))
		return
	}
	if len(deleted) > 0 {
		s.logger.Info("removed stale export copies", zap.Int("count", len(deleted)))
	}
}

// BuildExportDataset flattens documents to the fixed export columns.
// Contributors collapse into one cell joined by " | ".
func BuildExportDataset(docs []models.Document) export.Dataset {
	rows := make([][]string, 0, len(docs))
	for _, doc := range docs {
		rows = append(rows, []string{
			doc.ID,
			doc.NumberTitle,
			doc.Description,
			doc.DocumentDate,
			doc.ExpireDate,
			strings.Join(doc.Contributors, " | "),
			doc.Archive,
			doc.UpdatedCreatedBy,
		})
	}
	return export.Dataset{Headers: exportHeaders, Rows: rows}
}

var filenamePattern = regexp.MustCompile(`[^a-z0-9-_]+`)

// SanitizeFilename lowercases the name and collapses anything outside
// [a-z0-9-_] to a single dash.
func SanitizeFilename(name string) string {
	sanitized := filenamePattern.ReplaceAllString(strings.ToLower(name), "-")
	sanitized = strings.Trim(sanitized, "-")
	if sanitized == "" {
		return "export"
	}
	return sanitized
}

func (s *ExportService) storeCopy(result *ExportResult) {
	if s.storage == nil || s.signer == nil {
		return
	}
	relPath := fmt.Sprintf("%s/%s-%s", s.now().Format("2006/01"), uuid.NewString()[:8], result.Filename)
	if _, err := s.storage.Save(relPath, result.Data); err != nil {
		s.logger.Warn("failed to store export copy", zap.Error(err))
		return
	}
	token, expiresAt, err := s.signer.Generate(uuid.NewString(), relPath)
	if err != nil {
		s.logger.Warn("failed to sign export url", zap.Error(err))
		return
	}
	result.Token = token
	result.ExpiresAt = expiresAt
}

func (s *ExportService) emitExportAudit(ctx context.Context, actor *models.JWTClaims, format string, rowCount int) {
	if s.audit == nil {
		return
	}
	payload, _ := json.Marshal(map[string]interface{}{
		"format": format,
		"rows":   rowCount,
	})
	log := &models.AuditLog{
		UserID:    &actor.UserID,
		Action:    models.AuditActionDocumentExport,
		Resource:  "document",
		NewValues: payload,
		IPAddress: "system",
		UserAgent: "export-service",
	}
	if err := s.audit.CreateAuditLog(ctx, log); err != nil {
		s.logger.Warn("failed to create export audit", zap.Error(err))
	}
}

func contentTypeFor(path string) string {
	if strings.HasSuffix(path, ".pdf") {
		return "application/pdf"
	}
	return "text/csv"
}
