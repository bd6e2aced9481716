package web

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	authormodel "library-catalog/internal/domains/author/model"
	bookmodel "library-catalog/internal/domains/book/model"
	booksvc "library-catalog/internal/domains/book/service"
	"library-catalog/internal/shared/response"
	"library-catalog/internal/shared/routes"
	"library-catalog/internal/shared/utils"
	"library-catalog/internal/shared/validation"
)

// bookFormValues giữ nguyên input dạng string để re-render khi lỗi
type bookFormValues struct {
	Name   string
	Author string
	Year   string
	Pages  string
}

type bookFormView struct {
	Title   string
	Action  string
	Submit  string
	Form    bookFormValues
	Authors []authormodel.AuthorResponse
	Errors  validation.Errors
}

// BookList - GET /books
func (h *Handler) BookList(c *gin.Context) {
	page, err := utils.ParsePage(c)
	if err != nil {
		h.errorPage(c, http.StatusBadRequest, err.Error())
		return
	}

	books, err := h.books.List(c.Request.Context(), booksvc.ListParams{
		Page:    page,
		PerPage: ListPerPage,
		Route:   routes.WebBooks,
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	c.HTML(http.StatusOK, "books.html", gin.H{
		"Title": "Books",
		"Books": books,
	})
}

// BookCreateForm - GET /books/create
func (h *Handler) BookCreateForm(c *gin.Context) {
	view, err := h.newBookForm(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.HTML(http.StatusOK, "book_form.html", view)
}

// BookCreate - POST /books/create
func (h *Handler) BookCreate(c *gin.Context) {
	view, err := h.newBookForm(c)
	if err != nil {
		h.fail(c, err)
		return
	}

	req, ok := h.bindBook(c, view)
	if !ok {
		return
	}

	_, err = h.books.Create(c.Request.Context(), req)
	if h.renderBookErrors(c, view, err) {
		return
	}

	c.Redirect(http.StatusSeeOther, "/books")
}

// BookEditForm - GET /books/:id/edit
func (h *Handler) BookEditForm(c *gin.Context) {
	id, err := utils.ParseID(c)
	if err != nil {
		h.fail(c, bookmodel.ErrBookNotFound)
		return
	}

	book, err := h.books.GetByID(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}

	view, err := h.editBookForm(c, id)
	if err != nil {
		h.fail(c, err)
		return
	}
	view.Form = bookFormValues{
		Name:  book.Name,
		Year:  strconv.Itoa(book.Year),
		Pages: strconv.Itoa(book.Pages),
	}
	if book.Author != nil {
		view.Form.Author = strconv.FormatInt(book.Author.ID, 10)
	}
	c.HTML(http.StatusOK, "book_form.html", view)
}

// BookUpdate - POST /books/:id/edit
func (h *Handler) BookUpdate(c *gin.Context) {
	id, err := utils.ParseID(c)
	if err != nil {
		h.fail(c, bookmodel.ErrBookNotFound)
		return
	}

	view, err := h.editBookForm(c, id)
	if err != nil {
		h.fail(c, err)
		return
	}

	req, ok := h.bindBook(c, view)
	if !ok {
		return
	}

	_, err = h.books.Update(c.Request.Context(), id, req)
	if h.renderBookErrors(c, view, err) {
		return
	}

	c.Redirect(http.StatusSeeOther, "/books")
}

// BookDelete - DELETE /books/:id (JSON)
func (h *Handler) BookDelete(c *gin.Context) {
	id, err := utils.ParseID(c)
	if err != nil {
		response.NotFound(c, "Book not found")
		return
	}

	if bookmodel.HandleBookError(c, h.books.Delete(c.Request.Context(), id)) {
		return
	}
	response.Deleted(c)
}

// ============================================
// HELPERS
// ============================================

func (h *Handler) newBookForm(c *gin.Context) (*bookFormView, error) {
	authors, err := h.authors.ListAll(c.Request.Context())
	if err != nil {
		return nil, err
	}
	return &bookFormView{
		Title:   "New book",
		Action:  "/books/create",
		Submit:  "Add",
		Authors: authors,
	}, nil
}

func (h *Handler) editBookForm(c *gin.Context, id int64) (*bookFormView, error) {
	view, err := h.newBookForm(c)
	if err != nil {
		return nil, err
	}
	view.Title = "Edit book"
	view.Action = "/books/" + strconv.FormatInt(id, 10) + "/edit"
	view.Submit = "Save"
	return view, nil
}

// bindBook copies raw values into the view, then binds the request.
// On a bind failure the form is rendered and ok is false.
func (h *Handler) bindBook(c *gin.Context, view *bookFormView) (req bookmodel.BookRequest, ok bool) {
	view.Form = bookFormValues{
		Name:   c.PostForm("name"),
		Author: c.PostForm("author"),
		Year:   c.PostForm("year"),
		Pages:  c.PostForm("pages"),
	}

	if err := c.ShouldBind(&req); err != nil {
		view.Errors = formErrors()
		c.HTML(http.StatusBadRequest, "book_form.html", view)
		return req, false
	}
	return req, true
}

func (h *Handler) renderBookErrors(c *gin.Context, view *bookFormView, err error) bool {
	if err == nil {
		return false
	}

	var verrs validation.Errors
	if errors.As(err, &verrs) {
		view.Errors = verrs
		c.HTML(http.StatusUnprocessableEntity, "book_form.html", view)
		return true
	}

	h.fail(c, err)
	return true
}
