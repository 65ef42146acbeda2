package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pupuk-kujang/siadil-api/internal/models"
	appErrors "github.com/pupuk-kujang/siadil-api/pkg/errors"
)

type preferenceStoreStub struct {
	values map[string]string
}

func newPreferenceStoreStub() *preferenceStoreStub {
	return &preferenceStoreStub{values: map[string]string{}}
}

func (s *preferenceStoreStub) key(userID, key string) string {
	return userID + "/" + key
}

func (s *preferenceStoreStub) Get(ctx context.Context, userID, key string) (*models.Preference, error) {
	if value, ok := s.values[s.key(userID, key)]; ok {
		return &models.Preference{UserID: userID, Key: key, Value: value}, nil
	}
	return nil, sql.ErrNoRows
}

func (s *preferenceStoreStub) ListByUser(ctx context.Context, userID string) ([]models.Preference, error) {
	prefs := make([]models.Preference, 0)
	for composite, value := range s.values {
		if len(composite) > len(userID) && composite[:len(userID)] == userID {
			prefs = append(prefs, models.Preference{UserID: userID, Key: composite[len(userID)+1:], Value: value})
		}
	}
	return prefs, nil
}

func (s *preferenceStoreStub) Upsert(ctx context.Context, pref *models.Preference) error {
	s.values[s.key(pref.UserID, pref.Key)] = pref.Value
	return nil
}

func (s *preferenceStoreStub) Delete(ctx context.Context, userID, key string) error {
	composite := s.key(userID, key)
	if _, ok := s.values[composite]; !ok {
		return sql.ErrNoRows
	}
	delete(s.values, composite)
	return nil
}

func TestPreferenceServiceRoundTrip(t *testing.T) {
	store := newPreferenceStoreStub()
	svc := NewPreferenceService(store, nil)
	ctx := context.Background()

	item, err := svc.Set(ctx, "user-1", models.PrefSortKey, "documentDate")
	require.NoError(t, err)
	require.Equal(t, "documentDate", item.Value)

	got, err := svc.Get(ctx, "user-1", models.PrefSortKey)
	require.NoError(t, err)
	require.Equal(t, "documentDate", got.Value)
	require.False(t, got.Default)

	// Last write wins.
	_, err = svc.Set(ctx, "user-1", models.PrefSortKey, "archive")
	require.NoError(t, err)
	got, err = svc.Get(ctx, "user-1", models.PrefSortKey)
	require.NoError(t, err)
	require.Equal(t, "archive", got.Value)
}

func TestPreferenceServiceDefaultFallback(t *testing.T) {
	svc := NewPreferenceService(newPreferenceStoreStub(), nil)

	got, err := svc.Get(context.Background(), "user-1", models.PrefViewMode)
	require.NoError(t, err)
	require.Equal(t, "list", got.Value)
	require.True(t, got.Default)
}

func TestPreferenceServiceUnknownKeyRejected(t *testing.T) {
	svc := NewPreferenceService(newPreferenceStoreStub(), nil)
	ctx := context.Background()

	_, err := svc.Get(ctx, "user-1", "theme_color")
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, appErrors.ErrValidation.Code, appErr.Code)

	_, err = svc.Set(ctx, "user-1", "theme_color", "blue")
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}

func TestPreferenceServiceResetRestoresDefault(t *testing.T) {
	store := newPreferenceStoreStub()
	svc := NewPreferenceService(store, nil)
	ctx := context.Background()

	_, err := svc.Set(ctx, "user-1", models.PrefPageSize, "50")
	require.NoError(t, err)
	require.NoError(t, svc.Reset(ctx, "user-1", models.PrefPageSize))

	got, err := svc.Get(ctx, "user-1", models.PrefPageSize)
	require.NoError(t, err)
	require.Equal(t, "10", got.Value)
	require.True(t, got.Default)

	// Resetting an unset key is a no-op, not an error.
	require.NoError(t, svc.Reset(ctx, "user-1", models.PrefPageSize))
}

func TestPreferenceServiceListMergesDefaults(t *testing.T) {
	store := newPreferenceStoreStub()
	svc := NewPreferenceService(store, nil)
	ctx := context.Background()

	_, err := svc.Set(ctx, "user-1", models.PrefViewMode, "card")
	require.NoError(t, err)

	items, err := svc.List(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, items, len(preferenceDefaults))

	byKey := map[string]string{}
	for _, item := range items {
		byKey[item.Key] = item.Value
	}
	require.Equal(t, "card", byKey[models.PrefViewMode])
	require.Equal(t, "asc", byKey[models.PrefSortDir])
}
