// Copyright (c) 2026 Shelfnote. All rights reserved.

package book_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelfnote/shelfnote/internal/book"
	"github.com/shelfnote/shelfnote/internal/platform/apperr"
)

// fakeStore is an in-memory Store implementation for service tests.
type fakeStore struct {
	books   []*book.Book
	reviews map[int64][]book.Review
	nextID  int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{reviews: make(map[int64][]book.Review), nextID: 1}
}

func (s *fakeStore) Create(_ context.Context, b *book.Book) error {
	b.ID = s.nextID
	s.nextID++
	s.books = append(s.books, b)
	return nil
}

func (s *fakeStore) List(_ context.Context, f book.ListFilter, limit, offset int) ([]*book.Book, int, error) {
	matched := make([]*book.Book, 0)
	for _, b := range s.books {
		if f.Author != "" && !contains(b.Author, f.Author) {
			continue
		}
		if f.Genre != "" && (b.Genre == nil || !contains(*b.Genre, f.Genre)) {
			continue
		}
		matched = append(matched, b)
	}

	total := len(matched)
	if offset >= total {
		return nil, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return matched[offset:end], total, nil
}

func (s *fakeStore) Search(_ context.Context, f book.SearchFilter) ([]*book.Book, error) {
	if f.Title == "" && f.Author == "" {
		return s.books, nil
	}

	matched := make([]*book.Book, 0)
	for _, b := range s.books {
		if (f.Title != "" && contains(b.Title, f.Title)) ||
			(f.Author != "" && contains(b.Author, f.Author)) {
			matched = append(matched, b)
		}
	}
	return matched, nil
}

func (s *fakeStore) Get(_ context.Context, id int64) (*book.Book, error) {
	for _, b := range s.books {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, apperr.NotFound("Book")
}

func (s *fakeStore) Reviews(_ context.Context, bookID int64) ([]book.Review, error) {
	return s.reviews[bookID], nil
}

func contains(haystack, needle string) bool {
	// Case sensitivity does not matter for these tests.
	for i := 0; i+len(needle) <= len(haystack); i++ {
		if haystack[i:i+len(needle)] == needle {
			return true
		}
	}
	return false
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func seededService(t *testing.T) (*book.Service, *fakeStore) {
	t.Helper()

	store := newFakeStore()
	service := book.NewService(store, testLogger())

	fantasy := "Fantasy"
	scifi := "Science Fiction"
	seed := []book.CreateInput{
		{Title: "The Hobbit", Author: "J.R.R. Tolkien", Genre: &fantasy},
		{Title: "The Silmarillion", Author: "J.R.R. Tolkien", Genre: &fantasy},
		{Title: "Dune", Author: "Frank Herbert", Genre: &scifi},
	}
	for _, input := range seed {
		_, err := service.CreateBook(context.Background(), input)
		require.NoError(t, err)
	}

	return service, store
}

/*
TestService_CreateBook_Validation verifies that title and author are mandatory.
*/
func TestService_CreateBook_Validation(t *testing.T) {
	service := book.NewService(newFakeStore(), testLogger())

	tests := []struct {
		name   string
		input  book.CreateInput
		fields []string
	}{
		{"missing_title", book.CreateInput{Author: "Someone"}, []string{"title"}},
		{"missing_author", book.CreateInput{Title: "Something"}, []string{"author"}},
		{"missing_both", book.CreateInput{}, []string{"title", "author"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.CreateBook(context.Background(), tt.input)
			require.Error(t, err)

			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, "VALIDATION_ERROR", ae.Code)
			require.Len(t, ae.Details, len(tt.fields))
			for i, field := range tt.fields {
				assert.Equal(t, field, ae.Details[i].Field)
			}
		})
	}
}

/*
TestService_ListBooks_Filters verifies AND semantics of the listing filters.
*/
func TestService_ListBooks_Filters(t *testing.T) {
	service, _ := seededService(t)

	tests := []struct {
		name      string
		filter    book.ListFilter
		wantTotal int
	}{
		{"no_filter_returns_all", book.ListFilter{}, 3},
		{"author_only", book.ListFilter{Author: "Tolkien"}, 2},
		{"genre_only", book.ListFilter{Genre: "Science"}, 1},
		{"author_and_genre_both_must_match", book.ListFilter{Author: "Tolkien", Genre: "Science"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			books, total, err := service.ListBooks(context.Background(), tt.filter, 10, 0)
			require.NoError(t, err)
			assert.Equal(t, tt.wantTotal, total)
			assert.Len(t, books, tt.wantTotal)
		})
	}
}

/*
TestService_SearchBooks verifies OR semantics and the no-match error.
*/
func TestService_SearchBooks(t *testing.T) {
	service, _ := seededService(t)

	t.Run("title_or_author_widens", func(t *testing.T) {
		books, err := service.SearchBooks(context.Background(), book.SearchFilter{
			Title:  "Dune",
			Author: "Tolkien",
		})
		require.NoError(t, err)
		assert.Len(t, books, 3)
	})

	t.Run("empty_filter_returns_catalog", func(t *testing.T) {
		books, err := service.SearchBooks(context.Background(), book.SearchFilter{})
		require.NoError(t, err)
		assert.Len(t, books, 3)
	})

	t.Run("no_match_is_an_error", func(t *testing.T) {
		_, err := service.SearchBooks(context.Background(), book.SearchFilter{Title: "Moby Dick"})
		require.Error(t, err)
		assert.ErrorIs(t, err, book.ErrNoSearchMatches)

		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, 404, ae.HTTPStatus)
	})
}

/*
TestService_GetBook verifies the detail composite, including the zero-review case.
*/
func TestService_GetBook(t *testing.T) {
	service, store := seededService(t)

	t.Run("no_reviews_yields_empty_slice_and_zero_average", func(t *testing.T) {
		detail, err := service.GetBook(context.Background(), 1)
		require.NoError(t, err)

		assert.NotNil(t, detail.Reviews)
		assert.Empty(t, detail.Reviews)
		assert.Zero(t, detail.AverageRating)
	})

	t.Run("average_covers_all_reviews", func(t *testing.T) {
		store.reviews[1] = []book.Review{
			{ID: 1, Username: "ines", Rating: 4},
			{ID: 2, Username: "marc", Rating: 5},
		}

		detail, err := service.GetBook(context.Background(), 1)
		require.NoError(t, err)

		assert.Len(t, detail.Reviews, 2)
		assert.InDelta(t, 4.5, detail.AverageRating, 1e-9)
	})

	t.Run("unknown_book_not_found", func(t *testing.T) {
		_, err := service.GetBook(context.Background(), 999)
		require.Error(t, err)

		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "NOT_FOUND", ae.Code)
	})
}
