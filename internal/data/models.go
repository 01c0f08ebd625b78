// internal/data/models.go
package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// queryTimeout bounds every single-statement call made by the models.
const queryTimeout = 3 * time.Second

// Models is a top-level container that groups all database model types together.
// It is passed around the application via applicationDependencies so every handler
// has access to the database without importing sql directly.
type Models struct {
	Books BookModel // Handles all database operations for the books table
}

// NewModels constructs a Models value wired up to the given database connection pool.
// driver is the database/sql driver name the pool was opened with; it selects
// the placeholder style used in queries.
func NewModels(db *sql.DB, driver string) Models {
	return Models{
		Books: BookModel{DB: db, Driver: driver},
	}
}

// ErrRecordNotFound is returned when a query finds no matching row.
var ErrRecordNotFound = errors.New("record not found")

// BookModel wraps a *sql.DB connection and provides methods for
// creating, listing and deleting book records.
type BookModel struct {
	DB     *sql.DB // Shared database connection pool
	Driver string  // DriverSQLite or DriverPostgres
}

// Insert adds a new book record to the database.
// After a successful insert, the database-assigned id is written back into
// the book struct.
func (m BookModel) Insert(ctx context.Context, book *Book) error {
	query := `
		INSERT INTO books (title, author)
		VALUES (?, ?)
		RETURNING id`

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	err := m.DB.QueryRowContext(ctx, m.rebind(query), book.Title, book.Author).Scan(&book.ID)
	if err != nil {
		return fmt.Errorf("insert book: %w", err)
	}
	return nil
}

// GetAll retrieves every book ordered by id, i.e. insertion order.
// An empty table yields an empty, non-nil slice.
func (m BookModel) GetAll(ctx context.Context) ([]*Book, error) {
	query := `
		SELECT id, title, author
		FROM books
		ORDER BY id ASC`

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := m.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	defer rows.Close()

	books := []*Book{}
	for rows.Next() {
		var book Book
		if err := rows.Scan(&book.ID, &book.Title, &book.Author); err != nil {
			return nil, fmt.Errorf("scan book: %w", err)
		}
		books = append(books, &book)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	return books, nil
}

// Delete removes the book with the given id from the database.
// Lookup and removal happen in one statement; ErrRecordNotFound is returned
// when no row was affected.
func (m BookModel) Delete(ctx context.Context, id int64) error {
	if id < 1 {
		return ErrRecordNotFound
	}

	query := `DELETE FROM books WHERE id = ?`

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	result, err := m.DB.ExecContext(ctx, m.rebind(query), id)
	if err != nil {
		return fmt.Errorf("delete book %d: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete book %d: %w", id, err)
	}
	if rowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

// rebind rewrites "?" placeholders into "$N" form for PostgreSQL.
func (m BookModel) rebind(query string) string {
	if m.Driver != DriverPostgres {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
