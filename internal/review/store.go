// Copyright (c) 2026 Shelfnote. All rights reserved.

package review

import "context"

// Store defines the data access contract for reviews.
//
// # Ownership
//
// Update and Delete take the caller's verified user id and match it inside
// the statement itself (WHERE id AND userid); "zero rows affected" is the
// single not-found-or-unauthorized signal and must surface as [ErrNotOwned].
type Store interface {
	// Create persists a new review and fills in its server-generated ID and
	// CreatedAt. A unique-constraint rejection on the (user, book) pair
	// surfaces as [ErrAlreadyReviewed]; a foreign-key rejection on the book
	// reference surfaces as a book not-found.
	Create(ctx context.Context, r *Review) error

	// ExistsForUserAndBook reports whether the user has already reviewed
	// the book. Used as a pre-check; the unique constraint backstops it
	// under concurrency.
	ExistsForUserAndBook(ctx context.Context, userID string, bookID int64) (bool, error)

	// ListByBook returns one page of a book's reviews joined with reviewer
	// usernames, newest first (ties broken by insertion order).
	ListByBook(ctx context.Context, bookID int64, limit, offset int) ([]BookReview, error)

	// CountByBook returns the total number of reviews for the book.
	CountByBook(ctx context.Context, bookID int64) (int, error)

	// AverageByBook returns the mean rating over all the book's reviews,
	// or 0 when it has none.
	AverageByBook(ctx context.Context, bookID int64) (float64, error)

	// ListByUser returns one page of the user's reviews joined with book
	// title/author, newest first.
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]UserReview, error)

	// CountByUser returns the total number of reviews authored by the user.
	CountByUser(ctx context.Context, userID string) (int, error)

	// Update replaces rating and comment on the review matching both the
	// review id and the owning user id. Returns [ErrNotOwned] when no row
	// matched.
	Update(ctx context.Context, reviewID int64, userID string, ratingValue int, comment *string) error

	// Delete removes the review matching both the review id and the owning
	// user id. Returns [ErrNotOwned] when no row matched.
	Delete(ctx context.Context, reviewID int64, userID string) error
}
