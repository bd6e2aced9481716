package model

import (
	"strings"
	"time"

	ozzo "github.com/go-ozzo/ozzo-validation/v4"

	"library-catalog/internal/shared/validation"
)

// CacheTag được gắn vào mọi cache entry có chứa dữ liệu author
// (kể cả book list/detail vì chúng join author)
const CacheTag = "author"

type Author struct {
	ID         int64     `json:"id" db:"id"`
	FirstName  string    `json:"first_name" db:"first_name"`
	LastName   string    `json:"last_name" db:"last_name"`
	SecondName *string   `json:"second_name" db:"second_name"`
	CountBooks int       `json:"count_books" db:"count_books"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}

// FullName returns "first last second", skipping an empty second name.
func (a *Author) FullName() string {
	parts := []string{a.FirstName, a.LastName}
	if a.SecondName != nil && *a.SecondName != "" {
		parts = append(parts, *a.SecondName)
	}
	return strings.Join(parts, " ")
}

// AuthorRequest is bound from JSON or form bodies on create and update.
type AuthorRequest struct {
	FirstName  string `json:"first_name" form:"first_name"`
	LastName   string `json:"last_name" form:"last_name"`
	SecondName string `json:"second_name" form:"second_name"`
}

// Normalize trims every field in place.
func (r *AuthorRequest) Normalize() {
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
	r.SecondName = strings.TrimSpace(r.SecondName)
}

func (r AuthorRequest) Validate() error {
	return validation.FromOzzo(ozzo.ValidateStruct(&r,
		ozzo.Field(&r.FirstName, validation.RequiredString()...),
		ozzo.Field(&r.LastName, validation.RequiredString()...),
		ozzo.Field(&r.SecondName, validation.OptionalString()...),
	))
}

type AuthorResponse struct {
	ID         int64     `json:"id"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	SecondName *string   `json:"second_name"`
	FullName   string    `json:"full_name"`
	CountBooks int       `json:"count_books"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ToResponse converts Author to AuthorResponse
func (a *Author) ToResponse() AuthorResponse {
	return AuthorResponse{
		ID:         a.ID,
		FirstName:  a.FirstName,
		LastName:   a.LastName,
		SecondName: a.SecondName,
		FullName:   a.FullName(),
		CountBooks: a.CountBooks,
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
	}
}
