package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/pupuk-kujang/siadil-api/internal/models"
	appErrors "github.com/pupuk-kujang/siadil-api/pkg/errors"
	"github.com/pupuk-kujang/siadil-api/pkg/response"
)

type libraryService interface {
	List(ctx context.Context, filter models.BookFilter) ([]models.Book, *models.Pagination, error)
	Get(ctx context.Context, id string) (*models.Book, error)
}

// LibraryHandler serves the company book catalog.
type LibraryHandler struct {
	service libraryService
}

// NewLibraryHandler constructs the handler.
func NewLibraryHandler(service libraryService) *LibraryHandler {
	return &LibraryHandler{service: service}
}

// List godoc
// @Summary List library books
// @Tags Library
// @Produce json
// @Param search query string false "Title or author search"
// @Param category query string false "Category filter"
// @Param page query int false "Page number"
// @Param pageSize query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /library/books [get]
func (h *LibraryHandler) List(c *gin.Context) {
	filter := models.BookFilter{
		Search:   c.Query("search"),
		Category: c.Query("category"),
	}
	if raw := c.Query("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "page must be an integer"))
			return
		}
		filter.Page = page
	}
	if raw := c.Query("pageSize"); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "pageSize must be an integer"))
			return
		}
		filter.PageSize = size
	}

	books, pagination, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, books, pagination)
}

// Get godoc
// @Summary Get one book
// @Tags Library
// @Produce json
// @Param id path string true "Book id"
// @Success 200 {object} response.Envelope
// @Router /library/books/{id} [get]
func (h *LibraryHandler) Get(c *gin.Context) {
	book, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, book, nil)
}
