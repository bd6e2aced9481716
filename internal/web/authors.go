package web

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	authormodel "library-catalog/internal/domains/author/model"
	authorsvc "library-catalog/internal/domains/author/service"
	"library-catalog/internal/shared/response"
	"library-catalog/internal/shared/routes"
	"library-catalog/internal/shared/utils"
	"library-catalog/internal/shared/validation"
)

type authorFormView struct {
	Title  string
	Action string
	Submit string
	Form   authormodel.AuthorRequest
	Errors validation.Errors
}

// AuthorList - GET /authors
func (h *Handler) AuthorList(c *gin.Context) {
	page, err := utils.ParsePage(c)
	if err != nil {
		h.errorPage(c, http.StatusBadRequest, err.Error())
		return
	}

	authors, err := h.authors.List(c.Request.Context(), authorsvc.ListParams{
		Page:    page,
		PerPage: ListPerPage,
		Route:   routes.WebAuthors,
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	c.HTML(http.StatusOK, "authors.html", gin.H{
		"Title":   "Authors",
		"Authors": authors,
	})
}

// AuthorCreateForm - GET /authors/create
func (h *Handler) AuthorCreateForm(c *gin.Context) {
	c.HTML(http.StatusOK, "author_form.html", newAuthorForm())
}

// AuthorCreate - POST /authors/create
func (h *Handler) AuthorCreate(c *gin.Context) {
	view := newAuthorForm()
	if err := c.ShouldBind(&view.Form); err != nil {
		view.Errors = formErrors()
		c.HTML(http.StatusBadRequest, "author_form.html", view)
		return
	}

	_, err := h.authors.Create(c.Request.Context(), view.Form)
	if h.renderAuthorErrors(c, view, err) {
		return
	}

	c.Redirect(http.StatusSeeOther, "/authors")
}

// AuthorEditForm - GET /authors/:id/edit
func (h *Handler) AuthorEditForm(c *gin.Context) {
	id, err := utils.ParseID(c)
	if err != nil {
		h.fail(c, authormodel.ErrAuthorNotFound)
		return
	}

	author, err := h.authors.GetByID(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}

	view := editAuthorForm(id)
	view.Form.FirstName = author.FirstName
	view.Form.LastName = author.LastName
	if author.SecondName != nil {
		view.Form.SecondName = *author.SecondName
	}
	c.HTML(http.StatusOK, "author_form.html", view)
}

// AuthorUpdate - POST /authors/:id/edit
func (h *Handler) AuthorUpdate(c *gin.Context) {
	id, err := utils.ParseID(c)
	if err != nil {
		h.fail(c, authormodel.ErrAuthorNotFound)
		return
	}

	view := editAuthorForm(id)
	if err := c.ShouldBind(&view.Form); err != nil {
		view.Errors = formErrors()
		c.HTML(http.StatusBadRequest, "author_form.html", view)
		return
	}

	_, err = h.authors.Update(c.Request.Context(), id, view.Form)
	if h.renderAuthorErrors(c, view, err) {
		return
	}

	c.Redirect(http.StatusSeeOther, "/authors")
}

// AuthorDelete - DELETE /authors/:id (JSON, gọi từ nút delete)
func (h *Handler) AuthorDelete(c *gin.Context) {
	id, err := utils.ParseID(c)
	if err != nil {
		response.NotFound(c, "Author not found")
		return
	}

	if authormodel.HandleAuthorError(c, h.authors.Delete(c.Request.Context(), id)) {
		return
	}
	response.Deleted(c)
}

func newAuthorForm() *authorFormView {
	return &authorFormView{
		Title:  "New author",
		Action: "/authors/create",
		Submit: "Add",
	}
}

func editAuthorForm(id int64) *authorFormView {
	return &authorFormView{
		Title:  "Edit author",
		Action: "/authors/" + strconv.FormatInt(id, 10) + "/edit",
		Submit: "Save",
	}
}

// renderAuthorErrors re-renders the form on validation errors. Returns false when err is nil.
func (h *Handler) renderAuthorErrors(c *gin.Context, view *authorFormView, err error) bool {
	if err == nil {
		return false
	}

	var verrs validation.Errors
	if errors.As(err, &verrs) {
		view.Errors = verrs
		c.HTML(http.StatusUnprocessableEntity, "author_form.html", view)
		return true
	}

	h.fail(c, err)
	return true
}
