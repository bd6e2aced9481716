package repository

import (
	"context"

	"library-catalog/internal/domains/author/model"
)

//go:generate mockgen -source=interface.go -destination=../mocks/mock_repository.go -package=mocks

// RepositoryInterface - data access cho authors
type RepositoryInterface interface {
	// Count returns the total number of authors
	Count(ctx context.Context) (int, error)

	// List returns one page ordered by id
	List(ctx context.Context, limit, offset int) ([]model.Author, error)

	// ListAll returns every author ordered by last and first name (form selects)
	ListAll(ctx context.Context) ([]model.Author, error)

	// GetByID returns ErrAuthorNotFound if not exists
	GetByID(ctx context.Context, id int64) (*model.Author, error)

	Exists(ctx context.Context, id int64) (bool, error)

	Create(ctx context.Context, a *model.Author) (*model.Author, error)

	// Update overwrites the names. Returns ErrAuthorNotFound if not exists
	Update(ctx context.Context, a *model.Author) (*model.Author, error)

	// Delete removes the author; books go with it (ON DELETE CASCADE)
	Delete(ctx context.Context, id int64) error
}
