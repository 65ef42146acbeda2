package service

import (
	"context"
	"database/sql"
	"errors"

	"go.uber.org/zap"

	"github.com/pupuk-kujang/siadil-api/internal/models"
	appErrors "github.com/pupuk-kujang/siadil-api/pkg/errors"
)

type bookStore interface {
	List(ctx context.Context, filter models.BookFilter) ([]models.Book, int, error)
	GetByID(ctx context.Context, id string) (*models.Book, error)
}

// LibraryService serves the read-only company book catalog.
type LibraryService struct {
	repo   bookStore
	logger *zap.Logger
}

// NewLibraryService constructs the service.
func NewLibraryService(repo bookStore, logger *zap.Logger) *LibraryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LibraryService{repo: repo, logger: logger}
}

// List pages through the catalog, optionally narrowed by search text and
// category. Filtering happens in SQL; the catalog can grow well past the
// document archive.
func (s *LibraryService) List(ctx context.Context, filter models.BookFilter) ([]models.Book, *models.Pagination, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 || filter.PageSize > 100 {
		filter.PageSize = 20
	}
	books, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list books")
	}
	totalPages := (total + filter.PageSize - 1) / filter.PageSize
	if totalPages < 1 {
		totalPages = 1
	}
	return books, &models.Pagination{
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		TotalCount: total,
		TotalPages: totalPages,
	}, nil
}

// Get loads one catalog entry.
func (s *LibraryService) Get(ctx context.Context, id string) (*models.Book, error) {
	book, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrNotFound
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load book")
	}
	return book, nil
}
