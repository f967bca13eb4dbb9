// Copyright (c) 2026 Shelfnote. All rights reserved.

// Package review implements the social side of Shelfnote: one review per
// (user, book) pair, ownership-scoped mutation, and the per-book rating
// aggregate exposed alongside paginated review listings.
package review

import (
	"time"

	"github.com/shelfnote/shelfnote/internal/platform/apperr"
	"github.com/shelfnote/shelfnote/pkg/pagination"
)

var (
	// ErrAlreadyReviewed reports a second review attempt for the same
	// (caller, book) pair. Both the service-level pre-check and the store's
	// unique-constraint backstop surface this same error, so callers see one
	// consistent failure shape regardless of which layer caught it.
	ErrAlreadyReviewed = apperr.Conflict("You have already reviewed this book")

	// ErrNotOwned reports a mutation on a review that either does not exist
	// or belongs to another user. The two cases are deliberately conflated
	// so non-owners cannot probe whether a review id exists.
	ErrNotOwned = apperr.NotFoundMsg("Review not found or not owned by caller")
)

// Review represents a single user's rating and comment on a book.
type Review struct {
	ID        int64     `json:"id"`
	BookID    int64     `json:"bookId"`
	UserID    string    `json:"userId"`
	Rating    int       `json:"rating"`
	Comment   *string   `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
}

// BookReview is a review row annotated with the reviewer's username, as
// returned by the per-book listing.
type BookReview struct {
	Review
	Username string `json:"username"`
}

// UserReview is a review row annotated with the reviewed book's title and
// author, as returned by the per-user listing.
type UserReview struct {
	Review
	BookTitle  string `json:"bookTitle"`
	BookAuthor string `json:"bookAuthor"`
}

// BookReviewsResult is the composite for a paginated per-book listing.
//
// AverageRating is the mean over ALL reviews of the book, not just the
// returned page, and is 0 when the book has no reviews.
type BookReviewsResult struct {
	Reviews       []BookReview    `json:"reviews"`
	Pagination    pagination.Meta `json:"pagination"`
	AverageRating float64         `json:"averageRating"`
}

// UserReviewsResult is the composite for a paginated per-user listing.
//
// There is no average here: the rating aggregate is book-scoped.
type UserReviewsResult struct {
	Reviews    []UserReview    `json:"reviews"`
	Pagination pagination.Meta `json:"pagination"`
}

// Field names used by the service-layer validator.
const (
	FieldRating  = "rating"
	FieldComment = "comment"
)
