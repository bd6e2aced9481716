package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	authormodel "library-catalog/internal/domains/author/model"
	"library-catalog/internal/domains/book/model"
	"library-catalog/pkg/database"
)

const pgForeignKeyViolation = "23503"

// postgresRepository - raw SQL trên pgx, writes bọc trong WithTransaction
type postgresRepository struct {
	db     database.Pool
	counts *CountMaintainer
}

func NewPostgresRepository(db database.Pool, counts *CountMaintainer) RepositoryInterface {
	return &postgresRepository{
		db:     db,
		counts: counts,
	}
}

const selectBookWithAuthor = `
    SELECT
        b.id, b.name, b.year, b.pages, b.author_id, b.created_at,
        a.id, a.first_name, a.last_name, a.second_name, a.count_books, a.created_at, a.updated_at
    FROM books b
    JOIN authors a ON a.id = b.author_id
`

func scanBook(row pgx.Row) (*model.Book, error) {
	var (
		b model.Book
		a authormodel.Author
	)
	err := row.Scan(
		&b.ID, &b.Name, &b.Year, &b.Pages, &b.AuthorID, &b.CreatedAt,
		&a.ID, &a.FirstName, &a.LastName, &a.SecondName, &a.CountBooks, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	b.Author = &a
	return &b, nil
}

// ============================================
// READS
// ============================================

func (r *postgresRepository) Count(ctx context.Context) (int, error) {
	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM books`).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count books: %w", err)
	}
	return total, nil
}

func (r *postgresRepository) List(ctx context.Context, limit, offset int) ([]model.Book, error) {
	query := selectBookWithAuthor + `
    ORDER BY b.created_at ASC, b.id ASC
    LIMIT $1 OFFSET $2
    `

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}
	defer rows.Close()

	books := make([]model.Book, 0, limit)
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan book: %w", err)
		}
		books = append(books, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate books: %w", err)
	}
	return books, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*model.Book, error) {
	return getByID(ctx, r.db, id)
}

func getByID(ctx context.Context, db database.DBTX, id int64) (*model.Book, error) {
	b, err := scanBook(db.QueryRow(ctx, selectBookWithAuthor+` WHERE b.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrBookNotFound
		}
		return nil, fmt.Errorf("failed to get book by id: %w", err)
	}
	return b, nil
}

// ============================================
// WRITES (book + count_books trong cùng transaction)
// ============================================

func (r *postgresRepository) Create(ctx context.Context, b *model.Book) (*model.Book, error) {
	return database.WithTransactionResult(ctx, r.db, func(tx pgx.Tx) (*model.Book, error) {
		var id int64
		err := tx.QueryRow(ctx, `
            INSERT INTO books (name, year, pages, author_id)
            VALUES ($1, $2, $3, $4)
            RETURNING id
        `, b.Name, b.Year, b.Pages, b.AuthorID).Scan(&id)
		if err != nil {
			return nil, mapWriteError("create", err)
		}

		if err := r.counts.Recount(ctx, tx, b.AuthorID); err != nil {
			return nil, err
		}
		return getByID(ctx, tx, id)
	})
}

func (r *postgresRepository) Update(ctx context.Context, b *model.Book) (*model.Book, error) {
	return database.WithTransactionResult(ctx, r.db, func(tx pgx.Tx) (*model.Book, error) {
		var oldAuthorID int64
		err := tx.QueryRow(ctx, `SELECT author_id FROM books WHERE id = $1 FOR UPDATE`, b.ID).Scan(&oldAuthorID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, model.ErrBookNotFound
			}
			return nil, fmt.Errorf("failed to lock book: %w", err)
		}

		_, err = tx.Exec(ctx, `
            UPDATE books
            SET name = $2, year = $3, pages = $4, author_id = $5
            WHERE id = $1
        `, b.ID, b.Name, b.Year, b.Pages, b.AuthorID)
		if err != nil {
			return nil, mapWriteError("update", err)
		}

		if err := r.counts.BookMoved(ctx, tx, oldAuthorID, b.AuthorID); err != nil {
			return nil, err
		}
		return getByID(ctx, tx, b.ID)
	})
}

func (r *postgresRepository) Delete(ctx context.Context, id int64) error {
	return database.WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		var authorID int64
		err := tx.QueryRow(ctx, `DELETE FROM books WHERE id = $1 RETURNING author_id`, id).Scan(&authorID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return model.ErrBookNotFound
			}
			return fmt.Errorf("failed to delete book: %w", err)
		}
		return r.counts.Recount(ctx, tx, authorID)
	})
}

// mapWriteError chuyển FK violation (author bị xóa giữa chừng) thành lỗi validation
func mapWriteError(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
		return model.AuthorFieldError()
	}
	return fmt.Errorf("failed to %s book: %w", op, err)
}
