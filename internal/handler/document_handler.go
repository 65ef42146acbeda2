package handler

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pupuk-kujang/siadil-api/internal/dto"
	"github.com/pupuk-kujang/siadil-api/internal/models"
	"github.com/pupuk-kujang/siadil-api/internal/service"
	appErrors "github.com/pupuk-kujang/siadil-api/pkg/errors"
	"github.com/pupuk-kujang/siadil-api/pkg/response"
)

type documentService interface {
	List(ctx context.Context, raw dto.ListDocumentsQuery) ([]models.Document, *models.Pagination, error)
	Get(ctx context.Context, id string) (*models.Document, error)
	Create(ctx context.Context, req dto.CreateDocumentRequest, actor *models.JWTClaims) (*models.Document, error)
	Update(ctx context.Context, id string, req dto.UpdateDocumentRequest, actor *models.JWTClaims) (*models.Document, error)
	Delete(ctx context.Context, id string, actor *models.JWTClaims) error
	Archives(ctx context.Context) ([]dto.ArchiveSummary, error)
}

type exportService interface {
	Export(ctx context.Context, q dto.ExportQuery, actor *models.JWTClaims) (*service.ExportResult, error)
	Download(ctx context.Context, token string) (io.ReadCloser, string, error)
}

// DocumentHandler manages the archive table HTTP endpoints.
type DocumentHandler struct {
	service documentService
	exports exportService
	metrics *service.MetricsService
}

// NewDocumentHandler constructs the handler.
func NewDocumentHandler(service documentService, exports exportService, metrics *service.MetricsService) *DocumentHandler {
	return &DocumentHandler{service: service, exports: exports, metrics: metrics}
}

// List godoc
// @Summary List archive documents
// @Tags Documents
// @Produce json
// @Param search query string false "Free text search"
// @Param archive query []string false "Archive filter, repeatable"
// @Param docDateFrom query string false "Document date lower bound"
// @Param docDateTo query string false "Document date upper bound"
// @Param expireDateFrom query string false "Expire date lower bound"
// @Param expireDateTo query string false "Expire date upper bound"
// @Param expireWithinDays query int false "Only rows expiring within N days"
// @Param sortBy query string false "Sort column"
// @Param sortOrder query string false "asc or desc"
// @Param page query int false "Page number"
// @Param pageSize query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /documents [get]
func (h *DocumentHandler) List(c *gin.Context) {
	query, err := parseListQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	docs, pagination, err := h.service.List(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, docs, pagination)
}

// Get godoc
// @Summary Get one document
// @Tags Documents
// @Produce json
// @Param id path string true "Document id"
// @Success 200 {object} response.Envelope
// @Router /documents/{id} [get]
func (h *DocumentHandler) Get(c *gin.Context) {
	doc, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, doc, nil)
}

// Create godoc
// @Summary Create a document
// @Tags Documents
// @Accept json
// @Produce json
// @Param payload body dto.CreateDocumentRequest true "Document"
// @Success 201 {object} response.Envelope
// @Router /documents [post]
func (h *DocumentHandler) Create(c *gin.Context) {
	var req dto.CreateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid document payload"))
		return
	}
	doc, err := h.service.Create(c.Request.Context(), req, claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusCreated, doc, nil)
}

// Update godoc
// @Summary Update a document
// @Tags Documents
// @Accept json
// @Produce json
// @Param id path string true "Document id"
// @Param payload body dto.UpdateDocumentRequest true "Document"
// @Success 200 {object} response.Envelope
// @Router /documents/{id} [put]
func (h *DocumentHandler) Update(c *gin.Context) {
	var req dto.UpdateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid document payload"))
		return
	}
	doc, err := h.service.Update(c.Request.Context(), c.Param("id"), req, claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, doc, nil)
}

// Delete godoc
// @Summary Delete a document
// @Tags Documents
// @Param id path string true "Document id"
// @Success 204
// @Router /documents/{id} [delete]
func (h *DocumentHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id"), claimsFromContext(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Archives godoc
// @Summary List archive labels with counts
// @Tags Documents
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /documents/archives [get]
func (h *DocumentHandler) Archives(c *gin.Context) {
	summaries, err := h.service.Archives(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, summaries, nil)
}

// Export godoc
// @Summary Export the filtered document set
// @Tags Documents
// @Produce text/csv
// @Produce application/pdf
// @Param format query string false "csv or pdf"
// @Param title query string false "Export title"
// @Success 200 {file} file
// @Router /documents/export [get]
func (h *DocumentHandler) Export(c *gin.Context) {
	if h.exports == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrInternal, "export service not configured"))
		return
	}
	listQuery, err := parseListQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	query := dto.ExportQuery{
		ListDocumentsQuery: listQuery,
		Format:             c.Query("format"),
		Title:              c.Query("title"),
	}
	result, err := h.exports.Export(c.Request.Context(), query, claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	if h.metrics != nil {
		h.metrics.RecordExport(strings.TrimPrefix(result.ContentType, "application/"))
	}
	if result.Token != "" {
		c.Header("X-Export-Token", result.Token)
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	c.Data(http.StatusOK, result.ContentType, result.Data)
}

// Download godoc
// @Summary Re-download a stored export copy
// @Tags Documents
// @Param token query string true "Signed download token"
// @Success 200 {file} file
// @Router /documents/export/download [get]
func (h *DocumentHandler) Download(c *gin.Context) {
	if h.exports == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrInternal, "export service not configured"))
		return
	}
	token := c.Query("token")
	if token == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "token is required"))
		return
	}
	file, contentType, err := h.exports.Download(c.Request.Context(), token)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer file.Close()
	c.Header("Content-Type", contentType)
	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, file)
}

// parseListQuery reads the shared list criteria. The archive filter accepts
// both repeated params and a comma separated value.
func parseListQuery(c *gin.Context) (dto.ListDocumentsQuery, error) {
	query := dto.ListDocumentsQuery{
		Search:         c.Query("search"),
		DocDateFrom:    c.Query("docDateFrom"),
		DocDateTo:      c.Query("docDateTo"),
		ExpireDateFrom: c.Query("expireDateFrom"),
		ExpireDateTo:   c.Query("expireDateTo"),
		SortBy:         c.Query("sortBy"),
		SortOrder:      c.Query("sortOrder"),
	}

	for _, raw := range c.QueryArray("archive") {
		for _, part := range strings.Split(raw, ",") {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				query.Archives = append(query.Archives, trimmed)
			}
		}
	}

	if raw := c.Query("expireWithinDays"); raw != "" {
		days, err := strconv.Atoi(raw)
		if err != nil {
			return query, appErrors.Clone(appErrors.ErrValidation, "expireWithinDays must be an integer")
		}
		query.ExpireWithinDays = &days
	}
	if raw := c.Query("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil {
			return query, appErrors.Clone(appErrors.ErrValidation, "page must be an integer")
		}
		query.Page = page
	}
	if raw := c.Query("pageSize"); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil {
			return query, appErrors.Clone(appErrors.ErrValidation, "pageSize must be an integer")
		}
		query.PageSize = size
	}
	return query, nil
}
