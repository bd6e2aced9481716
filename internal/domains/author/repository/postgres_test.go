package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/require"

	"library-catalog/internal/domains/author/model"
)

var errInternal = errors.New("internal")

var columns = []string{"id", "first_name", "last_name", "second_name", "count_books", "created_at", "updated_at"}

func strPtr(s string) *string { return &s }

func TestPostgresRepository_GetByID(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		rows       *pgxmock.Rows
		queryErr   error
		want       *model.Author
		errRequire error
	}{
		{
			name: "found",
			rows: pgxmock.NewRows(columns).
				AddRow(int64(7), "Leo", "Tolstoy", strPtr("Nikolayevich"), 3, now, now),
			want: &model.Author{
				ID: 7, FirstName: "Leo", LastName: "Tolstoy", SecondName: strPtr("Nikolayevich"),
				CountBooks: 3, CreatedAt: now, UpdatedAt: now,
			},
		},
		{
			name:       "not found",
			queryErr:   pgx.ErrNoRows,
			errRequire: model.ErrAuthorNotFound,
		},
		{
			name:       "db error",
			queryErr:   errInternal,
			errRequire: errInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()

			expected := mock.ExpectQuery(`FROM authors WHERE id = \$1`).WithArgs(int64(7))
			if tt.queryErr != nil {
				expected.WillReturnError(tt.queryErr)
			} else {
				expected.WillReturnRows(tt.rows)
			}

			got, err := NewPostgresRepository(mock).GetByID(context.Background(), 7)
			require.ErrorIs(t, err, tt.errRequire)
			require.Equal(t, tt.want, got)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPostgresRepository_CountAndList(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	now := time.Now()
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM authors`).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectQuery(`ORDER BY id ASC\s+LIMIT \$1 OFFSET \$2`).
		WithArgs(20, 0).
		WillReturnRows(pgxmock.NewRows(columns).
			AddRow(int64(1), "Anna", "Akhmatova", (*string)(nil), 0, now, now).
			AddRow(int64(2), "Ivan", "Bunin", strPtr("Alekseyevich"), 1, now, now))

	repo := NewPostgresRepository(mock)
	ctx := context.Background()

	total, err := repo.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, total)

	authors, err := repo.List(ctx, 20, 0)
	require.NoError(t, err)
	require.Len(t, authors, 2)
	require.Nil(t, authors[0].SecondName)
	require.Equal(t, "Ivan Bunin Alekseyevich", authors[1].FullName())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_Create(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	now := time.Now()
	mock.ExpectQuery(`INSERT INTO authors`).
		WithArgs("Anna", "Akhmatova", (*string)(nil)).
		WillReturnRows(pgxmock.NewRows(columns).
			AddRow(int64(11), "Anna", "Akhmatova", (*string)(nil), 0, now, now))

	created, err := NewPostgresRepository(mock).Create(context.Background(), &model.Author{
		FirstName: "Anna",
		LastName:  "Akhmatova",
	})
	require.NoError(t, err)
	require.Equal(t, int64(11), created.ID)
	require.Zero(t, created.CountBooks)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_Update_NotFound(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`UPDATE authors`).
		WithArgs(int64(5), "A", "B", (*string)(nil)).
		WillReturnError(pgx.ErrNoRows)

	_, err = NewPostgresRepository(mock).Update(context.Background(), &model.Author{ID: 5, FirstName: "A", LastName: "B"})
	require.ErrorIs(t, err, model.ErrAuthorNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_Delete(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		affected   int64
		execErr    error
		errRequire error
	}{
		{name: "deleted", affected: 1},
		{name: "not found", affected: 0, errRequire: model.ErrAuthorNotFound},
		{name: "db error", execErr: errInternal, errRequire: errInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()

			expected := mock.ExpectExec(`DELETE FROM authors WHERE id = \$1`).WithArgs(int64(3))
			if tt.execErr != nil {
				expected.WillReturnError(tt.execErr)
			} else {
				expected.WillReturnResult(pgxmock.NewResult("DELETE", tt.affected))
			}

			err = NewPostgresRepository(mock).Delete(context.Background(), 3)
			require.ErrorIs(t, err, tt.errRequire)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPostgresRepository_Exists(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`SELECT EXISTS`).WithArgs(int64(9)).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))

	ok, err := NewPostgresRepository(mock).Exists(context.Background(), 9)
	require.NoError(t, err)
	require.False(t, ok)
	require.NoError(t, mock.ExpectationsWereMet())
}
