package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/pupuk-kujang/siadil-api/internal/models"
)

// ShortlinkRepository persists short code mappings.
type ShortlinkRepository struct {
	db *sqlx.DB
}

// NewShortlinkRepository constructs the repository.
func NewShortlinkRepository(db *sqlx.DB) *ShortlinkRepository {
	return &ShortlinkRepository{db: db}
}

// Create stores a new shortlink.
func (r *ShortlinkRepository) Create(ctx context.Context, link *models.Shortlink) error {
	if link.ID == "" {
		link.ID = uuid.NewString()
	}
	if link.CreatedAt.IsZero() {
		link.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO shortlinks (id, code, target_url, created_by, hits, created_at)
		VALUES (:id, :code, :target_url, :created_by, :hits, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, link); err != nil {
		return fmt.Errorf("create shortlink: %w", err)
	}
	return nil
}

// GetByCode retrieves a live shortlink by its code.
func (r *ShortlinkRepository) GetByCode(ctx context.Context, code string) (*models.Shortlink, error) {
	const query = `SELECT id, code, target_url, created_by, hits, created_at, deleted_at
		FROM shortlinks WHERE code = $1 AND deleted_at IS NULL`
	var link models.Shortlink
	if err := r.db.GetContext(ctx, &link, query, code); err != nil {
		return nil, err
	}
	return &link, nil
}

// ListByUser returns the caller's live shortlinks, newest first.
func (r *ShortlinkRepository) ListByUser(ctx context.Context, userID string) ([]models.Shortlink, error) {
	const query = `SELECT id, code, target_url, created_by, hits, created_at, deleted_at
		FROM shortlinks WHERE created_by = $1 AND deleted_at IS NULL ORDER BY created_at DESC`
	var links []models.Shortlink
	if err := r.db.SelectContext(ctx, &links, query, userID); err != nil {
		return nil, fmt.Errorf("list shortlinks: %w", err)
	}
	return links, nil
}

// SoftDelete marks an owned shortlink as deleted.
func (r *ShortlinkRepository) SoftDelete(ctx context.Context, id, userID string, deletedAt time.Time) error {
	const query = `UPDATE shortlinks SET deleted_at = $3 WHERE id = $1 AND created_by = $2 AND deleted_at IS NULL`
	res, err := r.db.ExecContext(ctx, query, id, userID, deletedAt)
	if err != nil {
		return fmt.Errorf("soft delete shortlink: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("check shortlink delete rows: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// IncrementHits bumps the resolution counter.
func (r *ShortlinkRepository) IncrementHits(ctx context.Context, id string) error {
	const query = `UPDATE shortlinks SET hits = hits + 1 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("increment shortlink hits: %w", err)
	}
	return nil
}
