package repository

import (
	"context"

	"library-catalog/internal/domains/book/model"
)

//go:generate mockgen -source=interface.go -destination=../mocks/mock_repository.go -package=mocks

// RepositoryInterface - data access cho books. Reads join author;
// writes chạy trong transaction cùng count maintenance.
type RepositoryInterface interface {
	Count(ctx context.Context) (int, error)

	// List returns one page ordered by created_at, id
	List(ctx context.Context, limit, offset int) ([]model.Book, error)

	// GetByID returns ErrBookNotFound if not exists
	GetByID(ctx context.Context, id int64) (*model.Book, error)

	// Create inserts the book and recounts its author
	Create(ctx context.Context, b *model.Book) (*model.Book, error)

	// Update returns ErrBookNotFound if not exists; moves the count when author changes
	Update(ctx context.Context, b *model.Book) (*model.Book, error)

	// Delete removes the book and recounts its former author
	Delete(ctx context.Context, id int64) error
}
