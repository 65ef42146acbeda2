package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/pupuk-kujang/siadil-api/internal/models"
)

// LibraryRepository reads the company book catalog.
type LibraryRepository struct {
	db *sqlx.DB
}

// NewLibraryRepository constructs the repository.
func NewLibraryRepository(db *sqlx.DB) *LibraryRepository {
	return &LibraryRepository{db: db}
}

const bookColumns = `id, title, author, category, year, isbn, available, created_at`

// List returns one catalog page plus the total matching count. Search matches
// title and author case-insensitively.
func (r *LibraryRepository) List(ctx context.Context, filter models.BookFilter) ([]models.Book, int, error) {
	args := make([]interface{}, 0, 3)
	conditions := make([]string, 0, 2)

	if filter.Search != "" {
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
		conditions = append(conditions, fmt.Sprintf("(LOWER(title) LIKE $%d OR LOWER(author) LIKE $%d)", len(args), len(args)))
	}
	if filter.Category != "" {
		args = append(args, filter.Category)
		conditions = append(conditions, fmt.Sprintf("category = $%d", len(args)))
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM books"+where, args...); err != nil {
		return nil, 0, fmt.Errorf("count books: %w", err)
	}

	pageSize := filter.PageSize
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}

	query := fmt.Sprintf("SELECT %s FROM books%s ORDER BY title LIMIT %d OFFSET %d",
		bookColumns, where, pageSize, (page-1)*pageSize)
	var books []models.Book
	if err := r.db.SelectContext(ctx, &books, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list books: %w", err)
	}
	return books, total, nil
}

// GetByID retrieves one catalog entry.
func (r *LibraryRepository) GetByID(ctx context.Context, id string) (*models.Book, error) {
	query := fmt.Sprintf(`SELECT %s FROM books WHERE id = $1`, bookColumns)
	var book models.Book
	if err := r.db.GetContext(ctx, &book, query, id); err != nil {
		return nil, err
	}
	return &book, nil
}
