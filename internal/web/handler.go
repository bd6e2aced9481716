// Package web serves the server-rendered catalog pages. Pages read through the
// same services as the REST API, so they share its cache and invalidation.
package web

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	authormodel "library-catalog/internal/domains/author/model"
	authorsvc "library-catalog/internal/domains/author/service"
	bookmodel "library-catalog/internal/domains/book/model"
	booksvc "library-catalog/internal/domains/book/service"
	"library-catalog/internal/shared/routes"
	"library-catalog/internal/shared/utils"
	"library-catalog/internal/shared/validation"
)

const (
	HomePerPage = 9
	ListPerPage = 10
)

type Handler struct {
	authors authorsvc.ServiceInterface
	books   booksvc.ServiceInterface
}

func NewHandler(authors authorsvc.ServiceInterface, books booksvc.ServiceInterface) *Handler {
	return &Handler{
		authors: authors,
		books:   books,
	}
}

// Register installs the template set and mounts every HTML route on r.
func (h *Handler) Register(r *gin.Engine) error {
	tmpl, err := Templates()
	if err != nil {
		return err
	}
	r.SetHTMLTemplate(tmpl)

	r.GET("/", h.Home)

	authors := r.Group("/authors")
	{
		authors.GET("", h.AuthorList)
		authors.GET("/create", h.AuthorCreateForm)
		authors.POST("/create", h.AuthorCreate)
		authors.GET("/:id/edit", h.AuthorEditForm)
		authors.POST("/:id/edit", h.AuthorUpdate)
		authors.DELETE("/:id", h.AuthorDelete)
	}

	books := r.Group("/books")
	{
		books.GET("", h.BookList)
		books.GET("/create", h.BookCreateForm)
		books.POST("/create", h.BookCreate)
		books.GET("/:id/edit", h.BookEditForm)
		books.POST("/:id/edit", h.BookUpdate)
		books.DELETE("/:id", h.BookDelete)
	}

	return nil
}

// Home - GET / (9 books per page)
func (h *Handler) Home(c *gin.Context) {
	page, err := utils.ParsePage(c)
	if err != nil {
		h.errorPage(c, http.StatusBadRequest, err.Error())
		return
	}

	books, err := h.books.List(c.Request.Context(), booksvc.ListParams{
		Page:    page,
		PerPage: HomePerPage,
		Route:   routes.WebHome,
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	c.HTML(http.StatusOK, "home.html", gin.H{
		"Title": "Catalog",
		"Books": books,
	})
}

// ============================================
// HELPERS
// ============================================

// formErrors là lỗi chung của form (body không parse được)
func formErrors() validation.Errors {
	return validation.Field("form", "The submitted form is malformed.")
}

func (h *Handler) errorPage(c *gin.Context, status int, message string) {
	c.HTML(status, "error.html", gin.H{
		"Title":   http.StatusText(status),
		"Message": message,
	})
}

func (h *Handler) fail(c *gin.Context, err error) {
	if errors.Is(err, authormodel.ErrAuthorNotFound) || errors.Is(err, bookmodel.ErrBookNotFound) {
		h.errorPage(c, http.StatusNotFound, "The page you are looking for does not exist.")
		return
	}

	log.Error().Err(err).
		Str("request_id", c.GetString("request_id")).
		Str("path", c.Request.URL.Path).
		Msg("[Web] Unhandled error")
	h.errorPage(c, http.StatusInternalServerError, "Something went wrong.")
}
