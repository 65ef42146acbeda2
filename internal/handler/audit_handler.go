package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/pupuk-kujang/siadil-api/internal/models"
	"github.com/pupuk-kujang/siadil-api/pkg/response"
)

type auditListService interface {
	List(ctx context.Context, page, pageSize int) ([]models.AuditLog, *models.Pagination, error)
}

// AuditHandler exposes the trail to administrators.
type AuditHandler struct {
	service auditListService
}

// NewAuditHandler constructs the handler.
func NewAuditHandler(service auditListService) *AuditHandler {
	return &AuditHandler{service: service}
}

// List godoc
// @Summary List audit trail entries
// @Tags Audit
// @Produce json
// @Param page query int false "Page number"
// @Param pageSize query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /admin/audit-logs [get]
func (h *AuditHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "20"))
	logs, pagination, err := h.service.List(c.Request.Context(), page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, logs, pagination)
}
