// Copyright (c) 2026 Shelfnote. All rights reserved.

package review

import (
	"context"
	"log/slog"

	"github.com/shelfnote/shelfnote/internal/platform/validate"
	"github.com/shelfnote/shelfnote/pkg/pagination"
)

// Service implements the review use cases on top of a [Store].
//
// Every mutating method takes the verified caller identifier supplied by the
// authentication middleware; it is trusted as-is and scopes all ownership
// checks.
type Service struct {
	store  Store
	logger *slog.Logger
}

// NewService constructs a review Service.
func NewService(store Store, logger *slog.Logger) *Service {
	return &Service{
		store:  store,
		logger: logger,
	}
}

// GetBookReviews assembles the paginated per-book listing from three
// independent queries: one page of rows, the total count, and the rating
// aggregate. The aggregate always covers the whole book, not just the page.
func (service *Service) GetBookReviews(ctx context.Context, bookID int64, params pagination.Params) (*BookReviewsResult, error) {
	reviews, err := service.store.ListByBook(ctx, bookID, params.Limit, params.Offset())
	if err != nil {
		return nil, err
	}

	total, err := service.store.CountByBook(ctx, bookID)
	if err != nil {
		return nil, err
	}

	average, err := service.store.AverageByBook(ctx, bookID)
	if err != nil {
		return nil, err
	}

	if reviews == nil {
		reviews = []BookReview{}
	}

	return &BookReviewsResult{
		Reviews:       reviews,
		Pagination:    pagination.NewMeta(params.Page, params.Limit, total),
		AverageRating: average,
	}, nil
}

// GetUserReviews assembles the paginated listing of the caller's own reviews.
func (service *Service) GetUserReviews(ctx context.Context, callerID string, params pagination.Params) (*UserReviewsResult, error) {
	reviews, err := service.store.ListByUser(ctx, callerID, params.Limit, params.Offset())
	if err != nil {
		return nil, err
	}

	total, err := service.store.CountByUser(ctx, callerID)
	if err != nil {
		return nil, err
	}

	if reviews == nil {
		reviews = []UserReview{}
	}

	return &UserReviewsResult{
		Reviews:    reviews,
		Pagination: pagination.NewMeta(params.Page, params.Limit, total),
	}, nil
}

// AddInput holds the fields a caller supplies when reviewing a book.
type AddInput struct {
	BookID  int64
	Rating  int
	Comment *string
}

// AddReview validates and persists a new review for the caller.
//
// The existence pre-check gives the common duplicate case a fast, clean
// failure; the store's unique constraint catches the concurrent race and
// surfaces the identical [ErrAlreadyReviewed].
func (service *Service) AddReview(ctx context.Context, callerID string, input AddInput) (*Review, error) {
	if err := validateRating(input.Rating, input.Comment); err != nil {
		return nil, err
	}

	exists, err := service.store.ExistsForUserAndBook(ctx, callerID, input.BookID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadyReviewed
	}

	r := &Review{
		BookID:  input.BookID,
		UserID:  callerID,
		Rating:  input.Rating,
		Comment: input.Comment,
	}

	if err := service.store.Create(ctx, r); err != nil {
		return nil, err
	}

	service.logger.Info("review_created",
		slog.Int64("review_id", r.ID),
		slog.Int64("book_id", r.BookID),
		slog.Int("rating", r.Rating),
	)
	return r, nil
}

// UpdateReview replaces the rating and comment of a review the caller owns.
//
// Returns [ErrNotOwned] when the review does not exist or belongs to
// someone else; the two cases are never distinguished.
func (service *Service) UpdateReview(ctx context.Context, reviewID int64, callerID string, ratingValue int, comment *string) error {
	if err := validateRating(ratingValue, comment); err != nil {
		return err
	}

	if err := service.store.Update(ctx, reviewID, callerID, ratingValue, comment); err != nil {
		return err
	}

	service.logger.Info("review_updated", slog.Int64("review_id", reviewID))
	return nil
}

// DeleteReview removes a review the caller owns, with the same conflated
// failure semantics as [Service.UpdateReview].
func (service *Service) DeleteReview(ctx context.Context, reviewID int64, callerID string) error {
	if err := service.store.Delete(ctx, reviewID, callerID); err != nil {
		return err
	}

	service.logger.Warn("review_deleted", slog.Int64("review_id", reviewID))
	return nil
}

// validateRating enforces the 1–5 rating bound and comment size before
// anything reaches the store, which assumes pre-validated input.
func validateRating(ratingValue int, comment *string) error {
	validator := &validate.Validator{}

	validator.Range(FieldRating, ratingValue, 1, 5)
	if comment != nil {
		validator.MaxLen(FieldComment, *comment, 2000)
	}

	return validator.Err()
}
