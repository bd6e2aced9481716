package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"library-catalog/internal/domains/author/model"
	"library-catalog/internal/domains/author/service"
	"library-catalog/internal/shared/response"
	"library-catalog/internal/shared/routes"
	"library-catalog/internal/shared/utils"
)

type AuthorHandler struct {
	service        service.ServiceInterface
	defaultPerPage int
}

func NewAuthorHandler(svc service.ServiceInterface, defaultPerPage int) *AuthorHandler {
	return &AuthorHandler{
		service:        svc,
		defaultPerPage: defaultPerPage,
	}
}

// ════════════════════════════════════════════════════════════════
// LIST: GET /api/authors?page=1&count=20
// ════════════════════════════════════════════════════════════════

func (h *AuthorHandler) List(c *gin.Context) {
	page, perPage, err := utils.ParsePaging(c, h.defaultPerPage)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.List(c.Request.Context(), service.ListParams{
		Page:    page,
		PerPage: perPage,
		Route:   routes.APIAuthors,
	})
	if model.HandleAuthorError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, result)
}

// ════════════════════════════════════════════════════════════════
// SHOW: GET /api/authors/:id
// ════════════════════════════════════════════════════════════════

func (h *AuthorHandler) GetByID(c *gin.Context) {
	id, err := utils.ParseID(c)
	if err != nil {
		response.NotFound(c, "Author not found")
		return
	}

	result, err := h.service.GetByID(c.Request.Context(), id)
	if model.HandleAuthorError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, result)
}

// ════════════════════════════════════════════════════════════════
// CREATE: POST /api/authors
// ════════════════════════════════════════════════════════════════

func (h *AuthorHandler) Create(c *gin.Context) {
	var req model.AuthorRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, "Malformed request body")
		return
	}

	result, err := h.service.Create(c.Request.Context(), req)
	if model.HandleAuthorError(c, err) {
		return
	}

	response.Success(c, http.StatusCreated, result)
}

// ════════════════════════════════════════════════════════════════
// UPDATE: PUT /api/authors/:id
// ════════════════════════════════════════════════════════════════

func (h *AuthorHandler) Update(c *gin.Context) {
	id, err := utils.ParseID(c)
	if err != nil {
		response.NotFound(c, "Author not found")
		return
	}

	var req model.AuthorRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, "Malformed request body")
		return
	}

	result, err := h.service.Update(c.Request.Context(), id, req)
	if model.HandleAuthorError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, result)
}

// ════════════════════════════════════════════════════════════════
// DELETE: DELETE /api/authors/:id
// ════════════════════════════════════════════════════════════════

func (h *AuthorHandler) Delete(c *gin.Context) {
	id, err := utils.ParseID(c)
	if err != nil {
		response.NotFound(c, "Author not found")
		return
	}

	if model.HandleAuthorError(c, h.service.Delete(c.Request.Context(), id)) {
		return
	}

	response.Deleted(c)
}
