// Copyright (c) 2026 Shelfnote. All rights reserved.

package book

import (
	"context"
	"log/slog"

	"github.com/shelfnote/shelfnote/internal/platform/apperr"
	"github.com/shelfnote/shelfnote/internal/platform/validate"
	"github.com/shelfnote/shelfnote/pkg/rating"
)

// ErrNoSearchMatches reports a search that matched nothing. Unlike an empty
// listing page (which is a success), a fruitless search is a client-visible
// not-found condition that echoes the search parameters back to the caller.
var ErrNoSearchMatches = apperr.NotFoundMsg("No books found matching your search criteria")

// Service implements the catalog use cases on top of a [Store].
type Service struct {
	store  Store
	logger *slog.Logger
}

// NewService constructs a book Service.
func NewService(store Store, logger *slog.Logger) *Service {
	return &Service{
		store:  store,
		logger: logger,
	}
}

// CreateInput holds the fields a client supplies when adding a book.
type CreateInput struct {
	Title       string
	Author      string
	Genre       *string
	Description *string
}

// CreateBook validates and persists a new catalog entry.
//
// Title and author must be non-empty; genre and description are optional.
// The store itself performs no validation, so this is the only gate.
func (service *Service) CreateBook(ctx context.Context, input CreateInput) (*Book, error) {
	validator := &validate.Validator{}

	validator.Required(FieldTitle, input.Title).MaxLen(FieldTitle, input.Title, 500)
	validator.Required(FieldAuthor, input.Author).MaxLen(FieldAuthor, input.Author, 200)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	b := &Book{
		Title:       input.Title,
		Author:      input.Author,
		Genre:       input.Genre,
		Description: input.Description,
	}

	if err := service.store.Create(ctx, b); err != nil {
		return nil, err
	}

	service.logger.Info("book_created", slog.Int64("book_id", b.ID), slog.String("title", b.Title))
	return b, nil
}

// ListBooks returns one page of the catalog with the total match count.
//
// An empty page is a successful result, not an error.
func (service *Service) ListBooks(ctx context.Context, f ListFilter, limit, offset int) ([]*Book, int, error) {
	return service.store.List(ctx, f, limit, offset)
}

// SearchBooks returns every book matching the filter (OR semantics).
//
// Returns [ErrNoSearchMatches] when nothing matched, so the transport can
// echo the search parameters back in its not-found payload.
func (service *Service) SearchBooks(ctx context.Context, f SearchFilter) ([]*Book, error) {
	books, err := service.store.Search(ctx, f)
	if err != nil {
		return nil, err
	}

	if len(books) == 0 {
		return nil, ErrNoSearchMatches
	}

	return books, nil
}

// GetBook returns the book detail composite: the catalog entry, all of its
// reviews joined with reviewer usernames, and the mean rating.
//
// A book with zero reviews yields an empty review slice and an average of 0.
func (service *Service) GetBook(ctx context.Context, id int64) (*Detail, error) {
	b, err := service.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	reviews, err := service.store.Reviews(ctx, id)
	if err != nil {
		return nil, err
	}

	ratings := make([]int, 0, len(reviews))
	for _, r := range reviews {
		ratings = append(ratings, r.Rating)
	}

	if reviews == nil {
		reviews = []Review{}
	}

	return &Detail{
		Book:          *b,
		Reviews:       reviews,
		AverageRating: rating.Average(ratings),
	}, nil
}
