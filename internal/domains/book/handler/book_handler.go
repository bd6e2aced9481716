package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"library-catalog/internal/domains/book/model"
	"library-catalog/internal/domains/book/service"
	"library-catalog/internal/shared/response"
	"library-catalog/internal/shared/routes"
	"library-catalog/internal/shared/utils"
)

// Handler - REST handler cho /api/books
type Handler struct {
	service        service.ServiceInterface
	defaultPerPage int
}

func NewHandler(svc service.ServiceInterface, defaultPerPage int) *Handler {
	return &Handler{
		service:        svc,
		defaultPerPage: defaultPerPage,
	}
}

// List - GET /api/books?page=1&count=20
func (h *Handler) List(c *gin.Context) {
	page, perPage, err := utils.ParsePaging(c, h.defaultPerPage)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.List(c.Request.Context(), service.ListParams{
		Page:    page,
		PerPage: perPage,
		Route:   routes.APIBooks,
	})
	if model.HandleBookError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, result)
}

// GetByID - GET /api/books/:id
func (h *Handler) GetByID(c *gin.Context) {
	id, err := utils.ParseID(c)
	if err != nil {
		response.NotFound(c, "Book not found")
		return
	}

	result, err := h.service.GetByID(c.Request.Context(), id)
	if model.HandleBookError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, result)
}

// Create - POST /api/books
func (h *Handler) Create(c *gin.Context) {
	var req model.BookRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, "Malformed request body")
		return
	}

	result, err := h.service.Create(c.Request.Context(), req)
	if model.HandleBookError(c, err) {
		return
	}

	response.Success(c, http.StatusCreated, result)
}

// Update - PUT /api/books/:id
func (h *Handler) Update(c *gin.Context) {
	id, err := utils.ParseID(c)
	if err != nil {
		response.NotFound(c, "Book not found")
		return
	}

	var req model.BookRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, "Malformed request body")
		return
	}

	result, err := h.service.Update(c.Request.Context(), id, req)
	if model.HandleBookError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, result)
}

// Delete - DELETE /api/books/:id
func (h *Handler) Delete(c *gin.Context) {
	id, err := utils.ParseID(c)
	if err != nil {
		response.NotFound(c, "Book not found")
		return
	}

	if model.HandleBookError(c, h.service.Delete(c.Request.Context(), id)) {
		return
	}

	response.Deleted(c)
}
