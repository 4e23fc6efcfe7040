package book

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

//go:generate mockgen -source=repository.go -destination=../mocks/book/mock_repository.go -package=mock_book Repository

// Repository defines read access to book records. The streak engine only
// ever consumes the full list; it never mutates books.
type Repository interface {
	List(ctx context.Context) ([]Book, error)
}

// DBRepository implements Repository using MySQL.
type DBRepository struct {
	db *sqlx.DB
}

// NewDBRepository creates a new DBRepository.
func NewDBRepository(db *sqlx.DB) *DBRepository {
	return &DBRepository{db: db}
}

// List returns all books ordered by id.
func (r *DBRepository) List(ctx context.Context) ([]Book, error) {
	var books []Book
	if err := r.db.SelectContext(ctx, &books,
		"SELECT id, title, author, status, progress, notes, date_added, date_started, date_finished, date_modified FROM books ORDER BY id"); err != nil {
		return nil, fmt.Errorf("db.SelectContext(books) > %w", err)
	}
	return books, nil
}
