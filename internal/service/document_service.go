package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/pupuk-kujang/siadil-api/internal/dto"
	"github.com/pupuk-kujang/siadil-api/internal/models"
	appErrors "github.com/pupuk-kujang/siadil-api/pkg/errors"
)

type documentStore interface {
	ListActive(ctx context.Context) ([]models.Document, error)
	GetByID(ctx context.Context, id string) (*models.Document, error)
	Create(ctx context.Context, doc *models.Document) error
	Update(ctx context.Context, doc *models.Document) error
	SoftDelete(ctx context.Context, id string, deletedAt time.Time) error
	ListArchives(ctx context.Context) ([]dto.ArchiveSummary, error)
}

type auditLogger interface {
	CreateAuditLog(ctx context.Context, log *models.AuditLog) error
}

type cacheInvalidator interface {
	DeleteByPattern(ctx context.Context, pattern string) error
}

// DocumentServiceConfig bounds list queries.
type DocumentServiceConfig struct {
	DefaultPageSize int
	MaxPageSize     int
}

// DocumentService owns the archive list view: search, filtering, sorting and
// pagination all run in memory over the active row set, which stays small
// (tens to low hundreds of rows per tenant).
type DocumentService struct {
	repo   documentStore
	audit  auditLogger
	cache  cacheInvalidator
	logger *zap.Logger
	cfg    DocumentServiceConfig
}

// NewDocumentService constructs the service with defaults.
func NewDocumentService(repo documentStore, audit auditLogger, cache cacheInvalidator, logger *zap.Logger, cfg DocumentServiceConfig) *DocumentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.DefaultPageSize <= 0 {
		cfg.DefaultPageSize = 10
	}
	if cfg.MaxPageSize <= 0 {
		cfg.MaxPageSize = 100
	}
	return &DocumentService{repo: repo, audit: audit, cache: cache, logger: logger, cfg: cfg}
}

// List returns one page of the filtered and sorted archive along with
// pagination metadata. An out-of-range page is clamped, never an error.
func (s *DocumentService) List(ctx context.Context, raw dto.ListDocumentsQuery) ([]models.Document, *models.Pagination, error) {
	query, err := s.toQuery(raw)
	if err != nil {
		return nil, nil, err
	}
	entries, err := s.filteredSorted(ctx, query)
	if err != nil {
		return nil, nil, err
	}

	page, pagination := paginate(len(entries), query.Page, query.PageSize)
	docs := make([]models.Document, 0, page.length)
	for _, entry := range entries[page.start : page.start+page.length] {
		docs = append(docs, entry.doc)
	}
	return docs, pagination, nil
}

// FilteredSorted exposes the pre-pagination view for exports.
func (s *DocumentService) FilteredSorted(ctx context.Context, raw dto.ListDocumentsQuery) ([]models.Document, error) {
	query, err := s.toQuery(raw)
	if err != nil {
		return nil, err
	}
	entries, err := s.filteredSorted(ctx, query)
	if err != nil {
		return nil, err
	}
	docs := make([]models.Document, 0, len(entries))
	for _, entry := range entries {
		docs = append(docs, entry.doc)
	}
	return docs, nil
}

// Get loads one document.
func (s *DocumentService) Get(ctx context.Context, id string) (*models.Document, error) {
	doc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrNotFound
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load document")
	}
	if doc.DeletedAt != nil {
		return nil, appErrors.ErrNotFound
	}
	return doc, nil
}

// Create inserts a new row. ID uniqueness is enforced here: a duplicate id is
// rejected rather than silently shadowing an existing row.
func (s *DocumentService) Create(ctx context.Context, req dto.CreateDocumentRequest, actor *models.JWTClaims) (*models.Document, error) {
	if actor == nil {
		return nil, appErrors.ErrUnauthorized
	}
	if strings.TrimSpace(req.NumberTitle) == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "numberTitle is required")
	}
	if strings.TrimSpace(req.Archive) == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "archive is required")
	}
	doc := &models.Document{
		ID:               strings.TrimSpace(req.ID),
		NumberTitle:      req.NumberTitle,
		Description:      req.Description,
		DocumentDate:     req.DocumentDate,
		ExpireDate:       req.ExpireDate,
		Contributors:     req.Contributors,
		Archive:          req.Archive,
		UpdatedCreatedBy: req.UpdatedCreatedBy,
	}
	if doc.ID != "" {
		existing, err := s.repo.GetByID(ctx, doc.ID)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check document id")
		}
		if existing != nil {
			return nil, appErrors.ErrDuplicateDocument
		}
	}
	if err := s.repo.Create(ctx, doc); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create document")
	}
	s.invalidateReminders(ctx)
	s.emitAudit(ctx, actor, models.AuditActionDocumentCreate, doc.ID, map[string]string{
		"numberTitle": doc.NumberTitle,
		"archive":     doc.Archive,
	})
	return doc, nil
}

// Update edits an existing row. Failures from the store are surfaced, never
// swallowed.
func (s *DocumentService) Update(ctx context.Context, id string, req dto.UpdateDocumentRequest, actor *models.JWTClaims) (*models.Document, error) {
	if actor == nil {
		return nil, appErrors.ErrUnauthorized
	}
	doc, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	doc.NumberTitle = req.NumberTitle
	doc.Description = req.Description
	doc.DocumentDate = req.DocumentDate
	doc.ExpireDate = req.ExpireDate
	doc.Contributors = req.Contributors
	doc.Archive = req.Archive
	doc.UpdatedCreatedBy = req.UpdatedCreatedBy
	if err := s.repo.Update(ctx, doc); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrNotFound
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update document")
	}
	s.invalidateReminders(ctx)
	s.emitAudit(ctx, actor, models.AuditActionDocumentUpdate, doc.ID, map[string]string{
		"numberTitle": doc.NumberTitle,
		"archive":     doc.Archive,
	})
	return doc, nil
}

// Delete soft deletes a row after the handler's confirmation step.
func (s *DocumentService) Delete(ctx context.Context, id string, actor *models.JWTClaims) error {
	if actor == nil {
		return appErrors.ErrUnauthorized
	}
	if err := s.repo.SoftDelete(ctx, id, time.Now().UTC()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.ErrNotFound
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete document")
	}
	s.invalidateReminders(ctx)
	s.emitAudit(ctx, actor, models.AuditActionDocumentDelete, id, nil)
	return nil
}

// Archives lists distinct archive labels with row counts for the filter chips.
func (s *DocumentService) Archives(ctx context.Context) ([]dto.ArchiveSummary, error) {
	summaries, err := s.repo.ListArchives(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list archives")
	}
	for i := range summaries {
		summaries[i].Tone = models.ArchiveTone(summaries[i].Archive)
	}
	return summaries, nil
}

func (s *DocumentService) filteredSorted(ctx context.Context, query models.DocumentQuery) ([]docEntry, error) {
	docs, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list documents")
	}
	entries := indexDocuments(docs)
	entries = filterDocuments(entries, query, dayStart(time.Now()))
	sortDocuments(entries, query.SortBy, query.SortOrder)
	return entries, nil
}

func (s *DocumentService) toQuery(raw dto.ListDocumentsQuery) (models.DocumentQuery, error) {
	query := models.DocumentQuery{
		Search:    raw.Search,
		Archives:  raw.Archives,
		SortBy:    models.SortByID,
		SortOrder: "asc",
		Page:      raw.Page,
		PageSize:  raw.PageSize,
	}
	if raw.SortBy != "" {
		switch key := models.DocumentSortKey(raw.SortBy); key {
		case models.SortByID, models.SortByNumberTitle, models.SortByDescription,
			models.SortByDocumentDate, models.SortByExpireDate, models.SortByContributors,
			models.SortByArchive, models.SortByUpdatedCreatedBy:
			query.SortBy = key
		default:
			return query, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown sort key %q", raw.SortBy))
		}
	}
	if raw.SortOrder != "" {
		order := strings.ToLower(raw.SortOrder)
		if order != "asc" && order != "desc" {
			return query, appErrors.Clone(appErrors.ErrValidation, "sortOrder must be asc or desc")
		}
		query.SortOrder = order
	}

	var err error
	if query.DocDateFrom, err = parseBound(raw.DocDateFrom, "docDateFrom"); err != nil {
		return query, err
	}
	if query.DocDateTo, err = parseBound(raw.DocDateTo, "docDateTo"); err != nil {
		return query, err
	}
	if query.ExpireDateFrom, err = parseBound(raw.ExpireDateFrom, "expireDateFrom"); err != nil {
		return query, err
	}
	if query.ExpireDateTo, err = parseBound(raw.ExpireDateTo, "expireDateTo"); err != nil {
		return query, err
	}
	if raw.ExpireWithinDays != nil {
		if *raw.ExpireWithinDays < 0 {
			return query, appErrors.Clone(appErrors.ErrValidation, "expireWithinDays must not be negative")
		}
		query.ExpireWithinDays = raw.ExpireWithinDays
	}

	if query.PageSize <= 0 {
		query.PageSize = s.cfg.DefaultPageSize
	}
	if query.PageSize > s.cfg.MaxPageSize {
		query.PageSize = s.cfg.MaxPageSize
	}
	return query, nil
}

func parseBound(raw, name string) (*time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	t, ok := parseFlexibleDate(raw)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("invalid date for %s", name))
	}
	return &t, nil
}

type pageSlice struct {
	start  int
	length int
}

// paginate clamps the requested 1-indexed page against the result length and
// returns the effective slice window with pagination metadata.
func paginate(total, requestedPage, pageSize int) (pageSlice, *models.Pagination) {
	if pageSize <= 0 {
		pageSize = 10
	}
	totalPages := (total + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}
	page := requestedPage
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}
	start := (page - 1) * pageSize
	if start > total {
		start = total
	}
	length := pageSize
	if start+length > total {
		length = total - start
	}
	return pageSlice{start: start, length: length}, &models.Pagination{
		Page:       page,
		PageSize:   pageSize,
		TotalCount: total,
		TotalPages: totalPages,
	}
}

func (s *DocumentService) invalidateReminders(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeleteByPattern(ctx, "reminders:*"); err != nil {
		s.logger.Warn("failed to invalidate reminder cache", zap.Error(err))
	}
}

func (s *DocumentService) emitAudit(ctx context.Context, actor *models.JWTClaims, action, resourceID string, values map[string]string) {
	if s.audit == nil {
		return
	}
	log := &models.AuditLog{
		UserID:     &actor.UserID,
		Action:     action,
		Resource:   "document",
		ResourceID: &resourceID,
		IPAddress:  "system",
		UserAgent:  "document-service",
	}
	if values != nil {
		if payload, err := json.Marshal(values); err == nil {
			log.NewValues = payload
		}
	}
	if err := s.audit.CreateAuditLog(ctx, log); err != nil {
		s.logger.Warn("failed to create document audit", zap.Error(err))
	}
}
