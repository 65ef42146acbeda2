package service

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pupuk-kujang/siadil-api/internal/dto"
	"github.com/pupuk-kujang/siadil-api/internal/models"
	appErrors "github.com/pupuk-kujang/siadil-api/pkg/errors"
)

type documentStoreStub struct {
	docs    []models.Document
	created []models.Document
	deleted []string
}

func (s *documentStoreStub) ListActive(ctx context.Context) ([]models.Document, error) {
	active := make([]models.Document, 0, len(s.docs))
	for _, doc := range s.docs {
		if doc.DeletedAt == nil {
			active = append(active, doc)
		}
	}
	return active, nil
}

func (s *documentStoreStub) GetByID(ctx context.Context, id string) (*models.Document, error) {
	for i := range s.docs {
		if s.docs[i].ID == id {
			copy := s.docs[i]
			return &copy, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (s *documentStoreStub) Create(ctx context.Context, doc *models.Document) error {
	if doc.ID == "" {
		doc.ID = fmt.Sprintf("doc-%d", len(s.docs)+1)
	}
	s.docs = append(s.docs, *doc)
	s.created = append(s.created, *doc)
	return nil
}

func (s *documentStoreStub) Update(ctx context.Context, doc *models.Document) error {
	for i := range s.docs {
		if s.docs[i].ID == doc.ID && s.docs[i].DeletedAt == nil {
			s.docs[i] = *doc
			return nil
		}
	}
	return sql.ErrNoRows
}

func (s *documentStoreStub) SoftDelete(ctx context.Context, id string, deletedAt time.Time) error {
	for i := range s.docs {
		if s.docs[i].ID == id && s.docs[i].DeletedAt == nil {
			s.docs[i].DeletedAt = &deletedAt
			s.deleted = append(s.deleted, id)
			return nil
		}
	}
	return sql.ErrNoRows
}

func (s *documentStoreStub) ListArchives(ctx context.Context) ([]dto.ArchiveSummary, error) {
	counts := map[string]int{}
	for _, doc := range s.docs {
		if doc.DeletedAt == nil {
			counts[doc.Archive]++
		}
	}
	summaries := make([]dto.ArchiveSummary, 0, len(counts))
	for archive, count := range counts {
		summaries = append(summaries, dto.ArchiveSummary{Archive: archive, Count: count})
	}
	return summaries, nil
}

type auditStub struct {
	logs []models.AuditLog
}

func (s *auditStub) CreateAuditLog(ctx context.Context, log *models.AuditLog) error {
	s.logs = append(s.logs, *log)
	return nil
}

type cacheInvalidatorStub struct {
	patterns []string
}

func (s *cacheInvalidatorStub) DeleteByPattern(ctx context.Context, pattern string) error {
	s.patterns = append(s.patterns, pattern)
	return nil
}

func testClaims() *models.JWTClaims {
	return &models.JWTClaims{UserID: "user-1", Username: "andi", Role: models.RoleAdmin}
}

func newDocumentServiceForTest(store *documentStoreStub) (*DocumentService, *auditStub, *cacheInvalidatorStub) {
	audit := &auditStub{}
	cache := &cacheInvalidatorStub{}
	svc := NewDocumentService(store, audit, cache, nil, DocumentServiceConfig{DefaultPageSize: 10, MaxPageSize: 100})
	return svc, audit, cache
}

func TestDocumentServiceListPaginates(t *testing.T) {
	store := &documentStoreStub{}
	for i := 1; i <= 25; i++ {
		store.docs = append(store.docs, models.Document{
			ID:      fmt.Sprintf("DOC-%03d", i),
			Archive: "Finance",
		})
	}
	svc, _, _ := newDocumentServiceForTest(store)

	docs, pagination, err := svc.List(context.Background(), dto.ListDocumentsQuery{Page: 1, PageSize: 10})
	require.NoError(t, err)
	require.Len(t, docs, 10)
	require.Equal(t, 25, pagination.TotalCount)
	require.Equal(t, 3, pagination.TotalPages)

	// An out-of-range page clamps to the last page instead of erroring.
	docs, pagination, err = svc.List(context.Background(), dto.ListDocumentsQuery{Page: 9, PageSize: 10})
	require.NoError(t, err)
	require.Len(t, docs, 5)
	require.Equal(t, 3, pagination.Page)
}

func TestDocumentServiceListEmptyStillOnePage(t *testing.T) {
	svc, _, _ := newDocumentServiceForTest(&documentStoreStub{})

	docs, pagination, err := svc.List(context.Background(), dto.ListDocumentsQuery{})
	require.NoError(t, err)
	require.Empty(t, docs)
	require.Equal(t, 1, pagination.TotalPages)
	require.Equal(t, 1, pagination.Page)
}

func TestDocumentServiceListRejectsUnknownSortKey(t *testing.T) {
	svc, _, _ := newDocumentServiceForTest(&documentStoreStub{})

	_, _, err := svc.List(context.Background(), dto.ListDocumentsQuery{SortBy: "owner"})
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}

func TestDocumentServiceListRejectsBadDateBound(t *testing.T) {
	svc, _, _ := newDocumentServiceForTest(&documentStoreStub{})

	_, _, err := svc.List(context.Background(), dto.ListDocumentsQuery{DocDateFrom: "yesterday"})
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, appErrors.ErrValidation.Code, appErr.Code)

	_, _, err = svc.List(context.Background(), dto.ListDocumentsQuery{SortOrder: "sideways"})
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}

func TestDocumentServiceCreateRejectsDuplicateID(t *testing.T) {
	store := &documentStoreStub{docs: []models.Document{{ID: "DOC-001", Archive: "Finance"}}}
	svc, _, _ := newDocumentServiceForTest(store)

	_, err := svc.Create(context.Background(), dto.CreateDocumentRequest{
		ID:          "DOC-001",
		NumberTitle: "DOC-001 • Duplicate",
		Archive:     "Finance",
	}, testClaims())
	require.ErrorIs(t, err, appErrors.ErrDuplicateDocument)
	require.Empty(t, store.created)
}

func TestDocumentServiceCreateAuditsAndInvalidates(t *testing.T) {
	store := &documentStoreStub{}
	svc, audit, cache := newDocumentServiceForTest(store)

	doc, err := svc.Create(context.Background(), dto.CreateDocumentRequest{
		NumberTitle: "DOC-001 • License",
		Archive:     "Teknologi Informasi & Komunikasi",
		ExpireDate:  "2026-12-01",
	}, testClaims())
	require.NoError(t, err)
	require.NotEmpty(t, doc.ID)
	require.Len(t, audit.logs, 1)
	require.Equal(t, models.AuditActionDocumentCreate, audit.logs[0].Action)
	require.Contains(t, cache.patterns, "reminders:*")
}

func TestDocumentServiceGetHidesDeletedRows(t *testing.T) {
	deletedAt := time.Now()
	store := &documentStoreStub{docs: []models.Document{
		{ID: "DOC-001", Archive: "Finance", DeletedAt: &deletedAt},
	}}
	svc, _, _ := newDocumentServiceForTest(store)

	_, err := svc.Get(context.Background(), "DOC-001")
	require.ErrorIs(t, err, appErrors.ErrNotFound)

	_, err = svc.Get(context.Background(), "missing")
	require.ErrorIs(t, err, appErrors.ErrNotFound)
}

func TestDocumentServiceDelete(t *testing.T) {
	store := &documentStoreStub{docs: []models.Document{{ID: "DOC-001", Archive: "Finance"}}}
	svc, audit, _ := newDocumentServiceForTest(store)

	require.NoError(t, svc.Delete(context.Background(), "DOC-001", testClaims()))
	require.Equal(t, []string{"DOC-001"}, store.deleted)
	require.Len(t, audit.logs, 1)
	require.Equal(t, models.AuditActionDocumentDelete, audit.logs[0].Action)

	require.ErrorIs(t, svc.Delete(context.Background(), "DOC-001", testClaims()), appErrors.ErrNotFound)
}

func TestDocumentServiceArchivesFillsTones(t *testing.T) {
	store := &documentStoreStub{docs: []models.Document{
		{ID: "1", Archive: "Finance"},
	}}
	svc, _, _ := newDocumentServiceForTest(store)

	summaries, err := svc.Archives(context.Background())
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	require.Equal(t, "finance", summaries[0].Tone)
}
