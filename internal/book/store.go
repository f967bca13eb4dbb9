// Copyright (c) 2026 Shelfnote. All rights reserved.

package book

import "context"

// Store defines the data access contract for the book catalog.
//
// # Implementations
//
// The canonical implementation is PostgreSQL ([PostgresStore]). Implementations
// must pass all variable input as bound parameters, never interpolated into
// statement text.
type Store interface {
	// Create persists a new book and fills in its server-generated ID and
	// CreatedAt. No field validation happens at this layer.
	Create(ctx context.Context, b *Book) error

	// List returns one page of books matching the filter predicates (ANDed)
	// plus the total match count. An empty page is a successful result.
	List(ctx context.Context, f ListFilter, limit, offset int) ([]*Book, int, error)

	// Search returns all books matching the filter predicates (ORed), or the
	// whole catalog when the filter is empty. Emptiness is the caller's
	// concern; the store reports it as a plain empty slice.
	Search(ctx context.Context, f SearchFilter) ([]*Book, error)

	// Get returns the book with the given ID.
	//
	// Returns [apperr.NotFound] if the book does not exist.
	Get(ctx context.Context, id int64) (*Book, error)

	// Reviews returns every review of the given book joined with the
	// reviewing user's username, oldest first.
	Reviews(ctx context.Context, bookID int64) ([]Review, error)
}
