package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"library-catalog/internal/domains/author/model"
	"library-catalog/pkg/database"
)

// postgresRepository implements RepositoryInterface on pgx
type postgresRepository struct {
	db database.DBTX
}

// NewPostgresRepository creates a new author repository instance
func NewPostgresRepository(db database.DBTX) RepositoryInterface {
	return &postgresRepository{db: db}
}

const authorColumns = `id, first_name, last_name, second_name, count_books, created_at, updated_at`

func scanAuthor(row pgx.Row) (*model.Author, error) {
	var a model.Author
	err := row.Scan(
		&a.ID,
		&a.FirstName,
		&a.LastName,
		&a.SecondName,
		&a.CountBooks,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func collectAuthors(rows pgx.Rows) ([]model.Author, error) {
	defer rows.Close()

	authors := make([]model.Author, 0)
	for rows.Next() {
		a, err := scanAuthor(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan author: %w", err)
		}
		authors = append(authors, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate authors: %w", err)
	}
	return authors, nil
}

func (r *postgresRepository) Count(ctx context.Context) (int, error) {
	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM authors`).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count authors: %w", err)
	}
	return total, nil
}

func (r *postgresRepository) List(ctx context.Context, limit, offset int) ([]model.Author, error) {
	query := `
        SELECT ` + authorColumns + `
        FROM authors
        ORDER BY id ASC
        LIMIT $1 OFFSET $2
    `

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list authors: %w", err)
	}
	return collectAuthors(rows)
}

func (r *postgresRepository) ListAll(ctx context.Context) ([]model.Author, error) {
	query := `
        SELECT ` + authorColumns + `
        FROM authors
        ORDER BY last_name ASC, first_name ASC, id ASC
    `

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list authors: %w", err)
	}
	return collectAuthors(rows)
}

func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*model.Author, error) {
	query := `SELECT ` + authorColumns + ` FROM authors WHERE id = $1`

	a, err := scanAuthor(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("failed to get author by id: %w", err)
	}
	return a, nil
}

func (r *postgresRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM authors WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check author existence: %w", err)
	}
	return exists, nil
}

// Create inserts new author; count_books starts at 0
func (r *postgresRepository) Create(ctx context.Context, a *model.Author) (*model.Author, error) {
	query := `
        INSERT INTO authors (first_name, last_name, second_name)
        VALUES ($1, $2, $3)
        RETURNING ` + authorColumns

	created, err := scanAuthor(r.db.QueryRow(ctx, query, a.FirstName, a.LastName, a.SecondName))
	if err != nil {
		return nil, fmt.Errorf("failed to create author: %w", err)
	}
	return created, nil
}

func (r *postgresRepository) Update(ctx context.Context, a *model.Author) (*model.Author, error) {
	query := `
        UPDATE authors
        SET first_name = $2, last_name = $3, second_name = $4, updated_at = NOW()
        WHERE id = $1
        RETURNING ` + authorColumns

	updated, err := scanAuthor(r.db.QueryRow(ctx, query, a.ID, a.FirstName, a.LastName, a.SecondName))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("failed to update author: %w", err)
	}
	return updated, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM authors WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete author: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrAuthorNotFound
	}
	return nil
}
