package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/pupuk-kujang/siadil-api/internal/dto"
	"github.com/pupuk-kujang/siadil-api/internal/models"
)

// DocumentRepository persists archive document rows.
type DocumentRepository struct {
	db *sqlx.DB
}

// NewDocumentRepository constructs the repository.
func NewDocumentRepository(db *sqlx.DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

const documentColumns = `id, number_title, description, document_date, expire_date, contributors, archive, updated_created_by, created_at, updated_at, deleted_at`

// ListActive returns every non-deleted row. Filtering, sorting and paging
// happen in the service so the permissive date semantics stay in one place.
func (r *DocumentRepository) ListActive(ctx context.Context) ([]models.Document, error) {
	query := fmt.Sprintf(`SELECT %s FROM documents WHERE deleted_at IS NULL ORDER BY created_at`, documentColumns)
	var docs []models.Document
	if err := r.db.SelectContext(ctx, &docs, query); err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	return docs, nil
}

// GetByID retrieves one row regardless of deletion state.
func (r *DocumentRepository) GetByID(ctx context.Context, id string) (*models.Document, error) {
	query := fmt.Sprintf(`SELECT %s FROM documents WHERE id = $1`, documentColumns)
	var doc models.Document
	if err := r.db.GetContext(ctx, &doc, query, id); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Create stores a new document row, assigning an id when absent.
func (r *DocumentRepository) Create(ctx context.Context, doc *models.Document) error {
	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	doc.CreatedAt = now
	doc.UpdatedAt = now
	const query = `INSERT INTO documents
	(id, number_title, description, document_date, expire_date, contributors, archive, updated_created_by, created_at, updated_at)
	VALUES (:id, :number_title, :description, :document_date, :expire_date, :contributors, :archive, :updated_created_by, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, doc); err != nil {
		return fmt.Errorf("create document: %w", err)
	}
	return nil
}

// Update rewrites the editable columns of an existing row.
func (r *DocumentRepository) Update(ctx context.Context, doc *models.Document) error {
	doc.UpdatedAt = time.Now().UTC()
	const query = `UPDATE documents
	SET number_title = :number_title,
	    description = :description,
	    document_date = :document_date,
	    expire_date = :expire_date,
	    contributors = :contributors,
	    archive = :archive,
	    updated_created_by = :updated_created_by,
	    updated_at = :updated_at
	WHERE id = :id AND deleted_at IS NULL`
	res, err := r.db.NamedExecContext(ctx, query, doc)
	if err != nil {
		return fmt.Errorf("update document: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("check document update rows: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// SoftDelete marks a row as deleted.
func (r *DocumentRepository) SoftDelete(ctx context.Context, id string, deletedAt time.Time) error {
	const query = `UPDATE documents SET deleted_at = $2 WHERE id = $1 AND deleted_at IS NULL`
	res, err := r.db.ExecContext(ctx, query, id, deletedAt)
	if err != nil {
		return fmt.Errorf("soft delete document: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("check document delete rows: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// ListArchives returns distinct archive labels with active row counts.
func (r *DocumentRepository) ListArchives(ctx context.Context) ([]dto.ArchiveSummary, error) {
	const query = `SELECT archive, COUNT(*) AS count FROM documents WHERE deleted_at IS NULL GROUP BY archive ORDER BY archive`
	var summaries []dto.ArchiveSummary
	if err := r.db.SelectContext(ctx, &summaries, query); err != nil {
		return nil, fmt.Errorf("list archives: %w", err)
	}
	return summaries, nil
}
