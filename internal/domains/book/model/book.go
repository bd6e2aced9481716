package model

import (
	"strings"
	"time"

	ozzo "github.com/go-ozzo/ozzo-validation/v4"

	authormodel "library-catalog/internal/domains/author/model"
	"library-catalog/internal/shared/validation"
)

// CacheTag gắn vào book list/detail; entries đó cũng mang authormodel.CacheTag
const CacheTag = "book"

// ReadTags là tag set của mọi book read (list + detail join author)
var ReadTags = []string{CacheTag, authormodel.CacheTag}

type Book struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Year      int       `json:"year" db:"year"`
	Pages     int       `json:"pages" db:"pages"`
	AuthorID  int64     `json:"author_id" db:"author_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	// Populated by joined reads
	Author *authormodel.Author `json:"-"`
}

// BookRequest is bound from JSON or form bodies. Pointers distinguish "missing" from zero.
type BookRequest struct {
	Name     string `json:"name" form:"name"`
	AuthorID *int64 `json:"author" form:"author"`
	Year     *int   `json:"year" form:"year"`
	Pages    *int   `json:"pages" form:"pages"`
}

func (r *BookRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
}

func (r BookRequest) Validate() error {
	return validation.FromOzzo(ozzo.ValidateStruct(&r,
		ozzo.Field(&r.Name, validation.RequiredString()...),
		ozzo.Field(&r.AuthorID, ozzo.Required.Error(validation.MsgNotBlank)),
		ozzo.Field(&r.Year, validation.PositiveInt()...),
		ozzo.Field(&r.Pages, validation.PositiveInt()...),
	))
}

// Apply copies validated request fields onto b. Call only after Validate.
func (r BookRequest) Apply(b *Book) {
	b.Name = r.Name
	b.AuthorID = *r.AuthorID
	b.Year = *r.Year
	b.Pages = *r.Pages
}

type BookResponse struct {
	ID        int64                       `json:"id"`
	Name      string                      `json:"name"`
	Year      int                         `json:"year"`
	Pages     int                         `json:"pages"`
	Author    *authormodel.AuthorResponse `json:"author"`
	CreatedAt time.Time                   `json:"created_at"`
}

func (b *Book) ToResponse() BookResponse {
	resp := BookResponse{
		ID:        b.ID,
		Name:      b.Name,
		Year:      b.Year,
		Pages:     b.Pages,
		CreatedAt: b.CreatedAt,
	}
	if b.Author != nil {
		a := b.Author.ToResponse()
		resp.Author = &a
	}
	return resp
}
