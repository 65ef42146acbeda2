package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/pupuk-kujang/siadil-api/internal/dto"
	"github.com/pupuk-kujang/siadil-api/internal/models"
	appErrors "github.com/pupuk-kujang/siadil-api/pkg/errors"
)

type preferenceStore interface {
	Get(ctx context.Context, userID, key string) (*models.Preference, error)
	ListByUser(ctx context.Context, userID string) ([]models.Preference, error)
	Upsert(ctx context.Context, pref *models.Preference) error
	Delete(ctx context.Context, userID, key string) error
}

// preferenceDefaults backs every known key. A missing or unreadable stored
// value falls back here without surfacing an error to the caller.
var preferenceDefaults = map[string]string{
	models.PrefViewMode:         "list",
	models.PrefPageSize:         "10",
	models.PrefSortKey:          "id",
	models.PrefSortDir:          "asc",
	models.PrefCurrentPage:      "1",
	models.PrefSearch:           "",
	models.PrefFilterArchives:   "[]",
	models.PrefFilterDocDate:    "",
	models.PrefFilterExpireDate: "",
	models.PrefExpireWithinDays: "",
	models.PrefReminderTab:      "urgent",
}

// PreferenceService persists per-user view settings as a string key/value
// map. Writes are last-write-wins; reads never fail on corrupt or missing
// values, they fall back to the defaults.
type PreferenceService struct {
	repo   preferenceStore
	logger *zap.Logger
}

// NewPreferenceService constructs the service.
func NewPreferenceService(repo preferenceStore, logger *zap.Logger) *PreferenceService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PreferenceService{repo: repo, logger: logger}
}

// Get returns one preference value, defaulted when nothing is stored.
func (s *PreferenceService) Get(ctx context.Context, userID, key string) (dto.PreferenceItem, error) {
	def, known := preferenceDefaults[key]
	if !known {
		return dto.PreferenceItem{}, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown preference key %q", key))
	}
	pref, err := s.repo.Get(ctx, userID, key)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			s.logger.Warn("preference read failed, using default",
				zap.String("key", key), zap.Error(err))
		}
		return dto.PreferenceItem{Key: key, Value: def, Default: true}, nil
	}
	return dto.PreferenceItem{Key: key, Value: pref.Value}, nil
}

// List returns every known key with either the stored or default value.
func (s *PreferenceService) List(ctx context.Context, userID string) ([]dto.PreferenceItem, error) {
	stored := map[string]string{}
	prefs, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Warn("preference list failed, using defaults", zap.Error(err))
	} else {
		for _, p := range prefs {
			stored[p.Key] = p.Value
		}
	}

	items := make([]dto.PreferenceItem, 0, len(preferenceDefaults))
	for key, def := range preferenceDefaults {
		if value, ok := stored[key]; ok {
			items = append(items, dto.PreferenceItem{Key: key, Value: value})
			continue
		}
		items = append(items, dto.PreferenceItem{Key: key, Value: def, Default: true})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Key < items[j].Key })
	return items, nil
}

// Set writes one preference, replacing any previous value.
func (s *PreferenceService) Set(ctx context.Context, userID, key, value string) (dto.PreferenceItem, error) {
	if _, known := preferenceDefaults[key]; !known {
		return dto.PreferenceItem{}, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown preference key %q", key))
	}
	pref := &models.Preference{UserID: userID, Key: key, Value: value}
	if err := s.repo.Upsert(ctx, pref); err != nil {
		return dto.PreferenceItem{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save preference")
	}
	return dto.PreferenceItem{Key: key, Value: value}, nil
}

// Reset removes a stored preference so the default applies again.
func (s *PreferenceService) Reset(ctx context.Context, userID, key string) error {
	if _, known := preferenceDefaults[key]; !known {
		return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown preference key %q", key))
	}
	if err := s.repo.Delete(ctx, userID, key); err != nil && !errors.Is(err, sql.ErrNoRows) {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to reset preference")
	}
	return nil
}
