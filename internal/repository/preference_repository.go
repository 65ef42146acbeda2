package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/pupuk-kujang/siadil-api/internal/models"
)

// PreferenceRepository persists per-user view settings.
type PreferenceRepository struct {
	db *sqlx.DB
}

// NewPreferenceRepository constructs the repository.
func NewPreferenceRepository(db *sqlx.DB) *PreferenceRepository {
	return &PreferenceRepository{db: db}
}

// Get returns one stored preference.
func (r *PreferenceRepository) Get(ctx context.Context, userID, key string) (*models.Preference, error) {
	const query = `SELECT user_id, key, value, updated_at FROM preferences WHERE user_id = $1 AND key = $2`
	var pref models.Preference
	if err := r.db.GetContext(ctx, &pref, query, userID, key); err != nil {
		return nil, err
	}
	return &pref, nil
}

// ListByUser returns every stored preference for a user.
func (r *PreferenceRepository) ListByUser(ctx context.Context, userID string) ([]models.Preference, error) {
	const query = `SELECT user_id, key, value, updated_at FROM preferences WHERE user_id = $1 ORDER BY key`
	var prefs []models.Preference
	if err := r.db.SelectContext(ctx, &prefs, query, userID); err != nil {
		return nil, fmt.Errorf("list preferences: %w", err)
	}
	return prefs, nil
}

// Upsert writes a preference, last write wins.
func (r *PreferenceRepository) Upsert(ctx context.Context, pref *models.Preference) error {
	pref.UpdatedAt = time.Now().UTC()
	const query = `INSERT INTO preferences (user_id, key, value, updated_at)
		VALUES (:user_id, :key, :value, :updated_at)
		ON CONFLICT (user_id, key) DO UPDATE
		SET value = EXCLUDED.value,
		    updated_at = EXCLUDED.updated_at`
	if _, err := r.db.NamedExecContext(ctx, query, pref); err != nil {
		return fmt.Errorf("upsert preference: %w", err)
	}
	return nil
}

// Delete removes a stored preference.
func (r *PreferenceRepository) Delete(ctx context.Context, userID, key string) error {
	const query = `DELETE FROM preferences WHERE user_id = $1 AND key = $2`
	res, err := r.db.ExecContext(ctx, query, userID, key)
	if err != nil {
		return fmt.Errorf("delete preference: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("check preference delete rows: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
