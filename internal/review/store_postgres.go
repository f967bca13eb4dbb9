// Copyright (c) 2026 Shelfnote. All rights reserved.

package review

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shelfnote/shelfnote/internal/platform/apperr"
	"github.com/shelfnote/shelfnote/internal/platform/database/schema"
	"github.com/shelfnote/shelfnote/internal/platform/dberr"
)

// PostgresStore implements the Store interface using pgx.
type PostgresStore struct {
	db *pgxpool.Pool
}

// NewPostgresStore creates a new PostgreSQL implementation of the review Store.
func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

func (store *PostgresStore) Create(ctx context.Context, r *Review) error {
	const query = `
		INSERT INTO social.review (bookid, userid, rating, comment)
		VALUES ($1, $2, $3, $4)
		RETURNING id, createdat`

	err := store.db.QueryRow(ctx, query, r.BookID, r.UserID, r.Rating, r.Comment).
		Scan(&r.ID, &r.CreatedAt)
	if err != nil {
		return classifyCreateError(err)
	}

	return nil
}

// classifyCreateError translates constraint rejections on a review insert
// into domain errors, matching constraints by name: the table carries a
// unique key and two foreign keys, and only the book reference may surface
// as a book not-found.
func classifyCreateError(err error) error {
	switch {
	// The unique constraint on (userid, bookid) wins the race the
	// pre-check cannot: translate it to the same duplicate error.
	case dberr.IsUniqueViolation(err) && dberr.ConstraintName(err) == schema.UniqueUserBookConstraint:
		return ErrAlreadyReviewed
	case dberr.IsForeignKeyViolation(err) && dberr.ConstraintName(err) == schema.BookRefConstraint:
		return apperr.NotFound("Book")
	default:
		return dberr.Wrap(err, "create_review")
	}
}

func (store *PostgresStore) ExistsForUserAndBook(ctx context.Context, userID string, bookID int64) (bool, error) {
	const query = `
		SELECT EXISTS (
			SELECT 1 FROM social.review WHERE userid = $1 AND bookid = $2
		)`

	var exists bool
	if err := store.db.QueryRow(ctx, query, userID, bookID).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, "review_exists_check")
	}

	return exists, nil
}

func (store *PostgresStore) ListByBook(ctx context.Context, bookID int64, limit, offset int) ([]BookReview, error) {
	// Newest first; id breaks creation-timestamp ties in insertion order.
	const query = `
		SELECT r.id, r.bookid, r.userid, r.rating, r.comment, r.createdat, u.username
		FROM social.review r
		JOIN users.account u ON r.userid = u.id
		WHERE r.bookid = $1
		ORDER BY r.createdat DESC, r.id DESC
		LIMIT $2 OFFSET $3`

	rows, err := store.db.Query(ctx, query, bookID, limit, offset)
	if err != nil {
		return nil, dberr.Wrap(err, "list_reviews_by_book")
	}
	defer rows.Close()

	var reviews []BookReview
	for rows.Next() {
		var r BookReview
		if err := rows.Scan(&r.ID, &r.BookID, &r.UserID, &r.Rating, &r.Comment, &r.CreatedAt, &r.Username); err != nil {
			return nil, dberr.Wrap(err, "scan_book_review")
		}
		reviews = append(reviews, r)
	}

	return reviews, dberr.Wrap(rows.Err(), "iterate_book_reviews")
}

func (store *PostgresStore) CountByBook(ctx context.Context, bookID int64) (int, error) {
	const query = `SELECT count(*) FROM social.review WHERE bookid = $1`

	var total int
	if err := store.db.QueryRow(ctx, query, bookID).Scan(&total); err != nil {
		return 0, dberr.Wrap(err, "count_reviews_by_book")
	}

	return total, nil
}

func (store *PostgresStore) AverageByBook(ctx context.Context, bookID int64) (float64, error) {
	// COALESCE keeps the aggregate total: zero reviews means 0, not NULL.
	const query = `SELECT COALESCE(AVG(rating), 0) FROM social.review WHERE bookid = $1`

	var average float64
	if err := store.db.QueryRow(ctx, query, bookID).Scan(&average); err != nil {
		return 0, dberr.Wrap(err, "average_rating_by_book")
	}

	return average, nil
}

func (store *PostgresStore) ListByUser(ctx context.Context, userID string, limit, offset int) ([]UserReview, error) {
	const query = `
		SELECT r.id, r.bookid, r.userid, r.rating, r.comment, r.createdat, b.title, b.author
		FROM social.review r
		JOIN core.book b ON r.bookid = b.id
		WHERE r.userid = $1
		ORDER BY r.createdat DESC, r.id DESC
		LIMIT $2 OFFSET $3`

	rows, err := store.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, dberr.Wrap(err, "list_reviews_by_user")
	}
	defer rows.Close()

	var reviews []UserReview
	for rows.Next() {
		var r UserReview
		if err := rows.Scan(&r.ID, &r.BookID, &r.UserID, &r.Rating, &r.Comment, &r.CreatedAt, &r.BookTitle, &r.BookAuthor); err != nil {
			return nil, dberr.Wrap(err, "scan_user_review")
		}
		reviews = append(reviews, r)
	}

	return reviews, dberr.Wrap(rows.Err(), "iterate_user_reviews")
}

func (store *PostgresStore) CountByUser(ctx context.Context, userID string) (int, error) {
	const query = `SELECT count(*) FROM social.review WHERE userid = $1`

	var total int
	if err := store.db.QueryRow(ctx, query, userID).Scan(&total); err != nil {
		return 0, dberr.Wrap(err, "count_reviews_by_user")
	}

	return total, nil
}

func (store *PostgresStore) Update(ctx context.Context, reviewID int64, userID string, ratingValue int, comment *string) error {
	// Ownership lives in the statement itself: a non-owner and a missing
	// row are indistinguishable, both land in the zero-rows branch.
	const query = `
		UPDATE social.review
		SET rating = $1, comment = $2
		WHERE id = $3 AND userid = $4`

	cmd, err := store.db.Exec(ctx, query, ratingValue, comment, reviewID, userID)
	if err != nil {
		return dberr.Wrap(err, "update_review")
	}

	if cmd.RowsAffected() == 0 {
		return ErrNotOwned
	}

	return nil
}

func (store *PostgresStore) Delete(ctx context.Context, reviewID int64, userID string) error {
	const query = `DELETE FROM social.review WHERE id = $1 AND userid = $2`

	cmd, err := store.db.Exec(ctx, query, reviewID, userID)
	if err != nil {
		return dberr.Wrap(err, "delete_review")
	}

	if cmd.RowsAffected() == 0 {
		return ErrNotOwned
	}

	return nil
}
