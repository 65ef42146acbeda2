package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pupuk-kujang/siadil-api/internal/dto"
	"github.com/pupuk-kujang/siadil-api/internal/models"
	"github.com/pupuk-kujang/siadil-api/internal/service"
	appErrors "github.com/pupuk-kujang/siadil-api/pkg/errors"
	"github.com/pupuk-kujang/siadil-api/pkg/response"
)

type shortlinkService interface {
	Create(ctx context.Context, req dto.CreateShortlinkRequest, actor *models.JWTClaims) (*models.Shortlink, error)
	List(ctx context.Context, actor *models.JWTClaims) ([]models.Shortlink, error)
	Delete(ctx context.Context, id string, actor *models.JWTClaims) error
	Resolve(ctx context.Context, code string) (string, error)
}

// ShortlinkHandler manages short code endpoints. Resolution is public, the
// rest requires authentication.
type ShortlinkHandler struct {
	service shortlinkService
	metrics *service.MetricsService
}

// NewShortlinkHandler constructs the handler.
func NewShortlinkHandler(service shortlinkService, metrics *service.MetricsService) *ShortlinkHandler {
	return &ShortlinkHandler{service: service, metrics: metrics}
}

// Create godoc
// @Summary Create a shortlink
// @Tags Shortlinks
// @Accept json
// @Produce json
// @Param payload body dto.CreateShortlinkRequest true "Target"
// @Success 201 {object} response.Envelope
// @Router /shortlinks [post]
func (h *ShortlinkHandler) Create(c *gin.Context) {
	var req dto.CreateShortlinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid shortlink payload"))
		return
	}
	link, err := h.service.Create(c.Request.Context(), req, claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusCreated, link, nil)
}

// List godoc
// @Summary List the caller's shortlinks
// @Tags Shortlinks
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /shortlinks [get]
func (h *ShortlinkHandler) List(c *gin.Context) {
	links, err := h.service.List(c.Request.Context(), claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, links, nil)
}

// Delete godoc
// @Summary Delete a shortlink
// @Tags Shortlinks
// @Param id path string true "Shortlink id"
// @Success 204
// @Router /shortlinks/{id} [delete]
func (h *ShortlinkHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id"), claimsFromContext(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Resolve godoc
// @Summary Resolve a short code
// @Tags Shortlinks
// @Param code path string true "Short code"
// @Success 302
// @Router /s/{code} [get]
func (h *ShortlinkHandler) Resolve(c *gin.Context) {
	target, err := h.service.Resolve(c.Request.Context(), c.Param("code"))
	if err != nil {
		response.Error(c, err)
		return
	}
	if h.metrics != nil {
		h.metrics.RecordShortlinkHit()
	}
	c.Redirect(http.StatusFound, target)
}
