package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pupuk-kujang/siadil-api/internal/dto"
	appErrors "github.com/pupuk-kujang/siadil-api/pkg/errors"
)

type preferenceServiceMock struct {
	item    dto.PreferenceItem
	items   []dto.PreferenceItem
	err     error
	lastKey string
	lastVal string
}

func (m *preferenceServiceMock) Get(ctx context.Context, userID, key string) (dto.PreferenceItem, error) {
	m.lastKey = key
	return m.item, m.err
}

func (m *preferenceServiceMock) List(ctx context.Context, userID string) ([]dto.PreferenceItem, error) {
	return m.items, m.err
}

func (m *preferenceServiceMock) Set(ctx context.Context, userID, key, value string) (dto.PreferenceItem, error) {
	m.lastKey = key
	m.lastVal = value
	return dto.PreferenceItem{Key: key, Value: value}, m.err
}

func (m *preferenceServiceMock) Reset(ctx context.Context, userID, key string) error {
	m.lastKey = key
	return m.err
}

func TestPreferenceHandlerSet(t *testing.T) {
	mockSvc := &preferenceServiceMock{}
	h := NewPreferenceHandler(mockSvc)

	c, w := testContext(t, http.MethodPut, "/preferences/sort_key", []byte(`{"value":"documentDate"}`))
	c.Params = []gin.Param{{Key: "key", Value: "sort_key"}}
	h.Set(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "sort_key", mockSvc.lastKey)
	assert.Equal(t, "documentDate", mockSvc.lastVal)
}

func TestPreferenceHandlerSetUnknownKey(t *testing.T) {
	mockSvc := &preferenceServiceMock{err: appErrors.Clone(appErrors.ErrValidation, "unknown preference key")}
	h := NewPreferenceHandler(mockSvc)

	c, w := testContext(t, http.MethodPut, "/preferences/favorite_color", []byte(`{"value":"blue"}`))
	c.Params = []gin.Param{{Key: "key", Value: "favorite_color"}}
	h.Set(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPreferenceHandlerResetNoContent(t *testing.T) {
	mockSvc := &preferenceServiceMock{}
	h := NewPreferenceHandler(mockSvc)

	c, w := testContext(t, http.MethodDelete, "/preferences/page_size", nil)
	c.Params = []gin.Param{{Key: "key", Value: "page_size"}}
	h.Reset(c)
	// gin defers the status header until the response is flushed; with
	// CreateTestContext and no body nothing flushes it, so do it here.
	c.Writer.WriteHeaderNow()

	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "page_size", mockSvc.lastKey)
}
