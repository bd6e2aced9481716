package service

import (
	"context"

	"library-catalog/internal/domains/book/model"
	"library-catalog/pkg/pagination"
)

type ListParams struct {
	Page    int
	PerPage int
	Route   string
}

// ServiceInterface - business logic cho books
type ServiceInterface interface {
	// List returns one cached page tagged "book" and "author"
	List(ctx context.Context, params ListParams) (*pagination.Collection[model.BookResponse], error)

	GetByID(ctx context.Context, id int64) (*model.BookResponse, error)

	// Create validates (author phải tồn tại), persists and recounts the author
	Create(ctx context.Context, req model.BookRequest) (*model.BookResponse, error)

	// Update validates first. Errors: validation.Errors, ErrBookNotFound
	Update(ctx context.Context, id int64, req model.BookRequest) (*model.BookResponse, error)

	Delete(ctx context.Context, id int64) error
}
