package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pupuk-kujang/siadil-api/internal/dto"
	appErrors "github.com/pupuk-kujang/siadil-api/pkg/errors"
	"github.com/pupuk-kujang/siadil-api/pkg/response"
)

type preferenceService interface {
	Get(ctx context.Context, userID, key string) (dto.PreferenceItem, error)
	List(ctx context.Context, userID string) ([]dto.PreferenceItem, error)
	Set(ctx context.Context, userID, key, value string) (dto.PreferenceItem, error)
	Reset(ctx context.Context, userID, key string) error
}

// PreferenceHandler serves the per-user view settings endpoints.
type PreferenceHandler struct {
	service preferenceService
}

// NewPreferenceHandler constructs the handler.
func NewPreferenceHandler(service preferenceService) *PreferenceHandler {
	return &PreferenceHandler{service: service}
}

// List godoc
// @Summary List the caller's preferences
// @Tags Preferences
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /preferences [get]
func (h *PreferenceHandler) List(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	items, err := h.service.List(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, nil)
}

// Get godoc
// @Summary Get one preference
// @Tags Preferences
// @Produce json
// @Param key path string true "Preference key"
// @Success 200 {object} response.Envelope
// @Router /preferences/{key} [get]
func (h *PreferenceHandler) Get(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	item, err := h.service.Get(c.Request.Context(), claims.UserID, c.Param("key"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item, nil)
}

// Set godoc
// @Summary Write one preference
// @Tags Preferences
// @Accept json
// @Produce json
// @Param key path string true "Preference key"
// @Param payload body dto.UpdatePreferenceRequest true "Value"
// @Success 200 {object} response.Envelope
// @Router /preferences/{key} [put]
func (h *PreferenceHandler) Set(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	var req dto.UpdatePreferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid preference payload"))
		return
	}
	item, err := h.service.Set(c.Request.Context(), claims.UserID, c.Param("key"), req.Value)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item, nil)
}

// Reset godoc
// @Summary Reset one preference to its default
// @Tags Preferences
// @Param key path string true "Preference key"
// @Success 204
// @Router /preferences/{key} [delete]
func (h *PreferenceHandler) Reset(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	if err := h.service.Reset(c.Request.Context(), claims.UserID, c.Param("key")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
