package repository

import (
	"context"
	"fmt"

	"library-catalog/pkg/database"
)

// CountMaintainer giữ authors.count_books đồng bộ với bảng books.
// Mọi method nhận db là transaction của book write đang chạy.
type CountMaintainer struct{}

func NewCountMaintainer() *CountMaintainer {
	return &CountMaintainer{}
}

// Recount khóa row author rồi đếm lại books của author đó.
// Row lock serialize các recount đồng thời trên cùng author.
func (m *CountMaintainer) Recount(ctx context.Context, db database.DBTX, authorID int64) error {
	if _, err := db.Exec(ctx, `SELECT id FROM authors WHERE id = $1 FOR UPDATE`, authorID); err != nil {
		return fmt.Errorf("failed to lock author %d: %w", authorID, err)
	}

	var count int
	if err := db.QueryRow(ctx, `SELECT COUNT(*) FROM books WHERE author_id = $1`, authorID).Scan(&count); err != nil {
		return fmt.Errorf("failed to count books of author %d: %w", authorID, err)
	}

	// Không ghi nếu count không đổi
	_, err := db.Exec(ctx,
		`UPDATE authors SET count_books = $2 WHERE id = $1 AND count_books <> $2`,
		authorID, count,
	)
	if err != nil {
		return fmt.Errorf("failed to store count of author %d: %w", authorID, err)
	}
	return nil
}

// Decrement trừ 1 mà không đếm lại, không xuống dưới 0
func (m *CountMaintainer) Decrement(ctx context.Context, db database.DBTX, authorID int64) error {
	_, err := db.Exec(ctx,
		`UPDATE authors SET count_books = GREATEST(count_books - 1, 0) WHERE id = $1`,
		authorID,
	)
	if err != nil {
		return fmt.Errorf("failed to decrement count of author %d: %w", authorID, err)
	}
	return nil
}

// BookMoved xử lý update book: đổi author thì old giảm 1, new đếm lại;
// không đổi thì chỉ đếm lại.
func (m *CountMaintainer) BookMoved(ctx context.Context, db database.DBTX, oldAuthorID, newAuthorID int64) error {
	if oldAuthorID == newAuthorID {
		return m.Recount(ctx, db, newAuthorID)
	}
	if err := m.Decrement(ctx, db, oldAuthorID); err != nil {
		return err
	}
	return m.Recount(ctx, db, newAuthorID)
}
