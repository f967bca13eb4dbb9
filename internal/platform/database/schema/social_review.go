package schema

// SocialReviewTable represents the 'social.review' table
type SocialReviewTable struct {
	Table     string
	ID        string
	BookID    string
	UserID    string
	Rating    string
	Comment   string
	CreatedAt string
}

// SocialReview is the schema definition for social.review.
//
// The (userid, bookid) pair carries a UNIQUE constraint so concurrent
// duplicate inserts are rejected by the store itself.
var SocialReview = SocialReviewTable{
	Table:     "social.review",
	ID:        "id",
	BookID:    "bookid",
	UserID:    "userid",
	Rating:    "rating",
	Comment:   "comment",
	CreatedAt: "createdat",
}

// UniqueUserBookConstraint is the name of the one-review-per-user-per-book
// unique constraint, used by the store to classify 23505 rejections.
const UniqueUserBookConstraint = "review_user_book_key"

// BookRefConstraint is the name of the review → book foreign key. The review
// table carries a second FK on userid, so 23503 rejections must be matched by
// name before being attributed to a missing book.
const BookRefConstraint = "review_book_fkey"
