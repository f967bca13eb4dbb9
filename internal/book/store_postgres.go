// Copyright (c) 2026 Shelfnote. All rights reserved.

package book

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shelfnote/shelfnote/internal/platform/apperr"
	"github.com/shelfnote/shelfnote/internal/platform/database/schema"
	"github.com/shelfnote/shelfnote/internal/platform/dberr"
)

// PostgresStore implements the Store interface using pgx.
type PostgresStore struct {
	db *pgxpool.Pool
}

// NewPostgresStore creates a new PostgreSQL implementation of the book Store.
func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

func (store *PostgresStore) Create(ctx context.Context, b *Book) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, $3, $4)
		RETURNING %s, %s
	`,
		schema.CoreBook.Table, schema.CoreBook.Title, schema.CoreBook.Author,
		schema.CoreBook.Genre, schema.CoreBook.Description,
		schema.CoreBook.ID, schema.CoreBook.CreatedAt,
	)

	err := store.db.QueryRow(ctx, query, b.Title, b.Author, b.Genre, b.Description).
		Scan(&b.ID, &b.CreatedAt)
	return dberr.Wrap(err, "create_book")
}

// List builds the filtered listing query. Predicates are assembled in a fixed
// order (author, then genre) and joined with AND; an absent filter contributes
// no predicate rather than a wildcard match.
func (store *PostgresStore) List(ctx context.Context, f ListFilter, limit, offset int) ([]*Book, int, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s`,
		strings.Join(schema.CoreBook.Columns(), ", "), schema.CoreBook.Table)
	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s`, schema.CoreBook.Table)

	var conditions []string
	var args []any

	if f.Author != "" {
		conditions = append(conditions, schema.CoreBook.Author+" ILIKE $"+itos(len(args)+1))
		args = append(args, "%"+f.Author+"%")
	}
	if f.Genre != "" {
		conditions = append(conditions, schema.CoreBook.Genre+" ILIKE $"+itos(len(args)+1))
		args = append(args, "%"+f.Genre+"%")
	}

	if len(conditions) > 0 {
		where := " WHERE " + strings.Join(conditions, " AND ")
		query += where
		countQuery += where
	}

	var total int
	if err := store.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_books")
	}

	query += fmt.Sprintf(" ORDER BY %s ASC LIMIT $", schema.CoreBook.ID) + itos(len(args)+1) + ` OFFSET $` + itos(len(args)+2)
	args = append(args, limit, offset)

	rows, err := store.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_books")
	}
	defer rows.Close()

	books, err := scanBooks(rows)
	if err != nil {
		return nil, 0, err
	}

	return books, total, nil
}

// Search builds the search query. In contrast to List, predicates are joined
// with OR, and an empty filter matches the whole catalog.
func (store *PostgresStore) Search(ctx context.Context, f SearchFilter) ([]*Book, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s`,
		strings.Join(schema.CoreBook.Columns(), ", "), schema.CoreBook.Table)

	var conditions []string
	var args []any

	if f.Title != "" {
		conditions = append(conditions, schema.CoreBook.Title+" ILIKE $"+itos(len(args)+1))
		args = append(args, "%"+f.Title+"%")
	}
	if f.Author != "" {
		conditions = append(conditions, schema.CoreBook.Author+" ILIKE $"+itos(len(args)+1))
		args = append(args, "%"+f.Author+"%")
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " OR ")
	}

	query += fmt.Sprintf(" ORDER BY %s ASC", schema.CoreBook.ID)

	rows, err := store.db.Query(ctx, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, "search_books")
	}
	defer rows.Close()

	return scanBooks(rows)
}

func (store *PostgresStore) Get(ctx context.Context, id int64) (*Book, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		strings.Join(schema.CoreBook.Columns(), ", "), schema.CoreBook.Table, schema.CoreBook.ID)

	b := &Book{}
	err := store.db.QueryRow(ctx, query, id).
		Scan(&b.ID, &b.Title, &b.Author, &b.Genre, &b.Description, &b.CreatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Book")
		}
		return nil, dberr.Wrap(err, "get_book")
	}

	return b, nil
}

func (store *PostgresStore) Reviews(ctx context.Context, bookID int64) ([]Review, error) {
	query := fmt.Sprintf(`
		SELECT r.%s, r.%s, u.%s, r.%s, r.%s, r.%s
		FROM %s r
		JOIN %s u ON r.%s = u.%s
		WHERE r.%s = $1
		ORDER BY r.%s ASC
	`,
		schema.SocialReview.ID, schema.SocialReview.UserID, schema.UserAccount.Username,
		schema.SocialReview.Rating, schema.SocialReview.Comment, schema.SocialReview.CreatedAt,
		schema.SocialReview.Table, schema.UserAccount.Table,
		schema.SocialReview.UserID, schema.UserAccount.ID,
		schema.SocialReview.BookID, schema.SocialReview.ID,
	)

	rows, err := store.db.Query(ctx, query, bookID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_book_reviews")
	}
	defer rows.Close()

	var reviews []Review
	for rows.Next() {
		var r Review
		if err := rows.Scan(&r.ID, &r.UserID, &r.Username, &r.Rating, &r.Comment, &r.CreatedAt); err != nil {
			return nil, dberr.Wrap(err, "scan_book_review")
		}
		reviews = append(reviews, r)
	}

	return reviews, dberr.Wrap(rows.Err(), "iterate_book_reviews")
}

// scanBooks drains a result set into book entities.
func scanBooks(rows pgx.Rows) ([]*Book, error) {
	var books []*Book
	for rows.Next() {
		b := &Book{}
		if err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.Genre, &b.Description, &b.CreatedAt); err != nil {
			return nil, dberr.Wrap(err, "scan_book")
		}
		books = append(books, b)
	}
	return books, dberr.Wrap(rows.Err(), "iterate_books")
}

func itos(i int) string {
	return strconv.Itoa(i)
}
