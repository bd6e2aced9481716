package service

import (
	"context"

	"library-catalog/internal/domains/author/model"
	"library-catalog/pkg/pagination"
)

// ListParams là input của List: page/count từ query string và route dùng cho links
type ListParams struct {
	Page    int
	PerPage int
	Route   string
}

// ServiceInterface - business logic cho authors
type ServiceInterface interface {
	// List returns one cached page tagged "author"
	List(ctx context.Context, params ListParams) (*pagination.Collection[model.AuthorResponse], error)

	// ListAll returns every author for form selects (not cached)
	ListAll(ctx context.Context) ([]model.AuthorResponse, error)

	// GetByID returns the cached author. Errors: ErrAuthorNotFound
	GetByID(ctx context.Context, id int64) (*model.AuthorResponse, error)

	// Create validates, persists and invalidates "author"
	Create(ctx context.Context, req model.AuthorRequest) (*model.AuthorResponse, error)

	// Update validates first, then applies names. An empty second name keeps the stored one.
	// Errors: validation.Errors, ErrAuthorNotFound
	Update(ctx context.Context, id int64, req model.AuthorRequest) (*model.AuthorResponse, error)

	// Delete removes the author and its books. Errors: ErrAuthorNotFound
	Delete(ctx context.Context, id int64) error
}
