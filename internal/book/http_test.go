// Copyright (c) 2026 Shelfnote. All rights reserved.

package book_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelfnote/shelfnote/internal/book"
)

func newTestRouter(t *testing.T) (*chi.Mux, *fakeStore) {
	t.Helper()

	store := newFakeStore()
	service := book.NewService(store, testLogger())
	handler := book.NewHandler(service)

	router := chi.NewRouter()
	router.Route("/books", handler.RegisterRoutes)

	fantasy := "Fantasy"
	_, err := service.CreateBook(context.Background(), book.CreateInput{
		Title:  "The Hobbit",
		Author: "J.R.R. Tolkien",
		Genre:  &fantasy,
	})
	require.NoError(t, err)

	return router, store
}

/*
TestHandler_Search_NotFoundEnvelope verifies the 404 payload echoes the
caller's search parameters instead of the standard error envelope.
*/
func TestHandler_Search_NotFoundEnvelope(t *testing.T) {
	router, _ := newTestRouter(t)

	request := httptest.NewRequest("GET", "/books/search?title=Moby+Dick&author=Melville", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusNotFound, recorder.Code)

	var payload struct {
		Error        string `json:"error"`
		Code         string `json:"code"`
		SearchParams struct {
			Title  string `json:"title"`
			Author string `json:"author"`
		} `json:"searchParams"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &payload))

	assert.Equal(t, "NOT_FOUND", payload.Code)
	assert.Equal(t, "No books found matching your search criteria", payload.Error)
	assert.Equal(t, "Moby Dick", payload.SearchParams.Title)
	assert.Equal(t, "Melville", payload.SearchParams.Author)
}

/*
TestHandler_Search_Match verifies a successful search returns the plain
success envelope, not the pagination one.
*/
func TestHandler_Search_Match(t *testing.T) {
	router, _ := newTestRouter(t)

	request := httptest.NewRequest("GET", "/books/search?title=Hobbit", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)

	var payload struct {
		Data []book.Book `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &payload))
	require.Len(t, payload.Data, 1)
	assert.Equal(t, "The Hobbit", payload.Data[0].Title)
}

/*
TestHandler_List verifies the paginated envelope with its metadata block.
*/
func TestHandler_List(t *testing.T) {
	router, _ := newTestRouter(t)

	request := httptest.NewRequest("GET", "/books?page=1&limit=10", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)

	var payload struct {
		Data []book.Book `json:"data"`
		Meta struct {
			Total int `json:"total"`
			Page  int `json:"page"`
			Limit int `json:"limit"`
			Pages int `json:"pages"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &payload))

	assert.Len(t, payload.Data, 1)
	assert.Equal(t, 1, payload.Meta.Total)
	assert.Equal(t, 1, payload.Meta.Pages)
	assert.Equal(t, 10, payload.Meta.Limit)
}

/*
TestHandler_List_EmptyPage verifies that a filtered listing with no matches
is a 200, unlike the search endpoint.
*/
func TestHandler_List_EmptyPage(t *testing.T) {
	router, _ := newTestRouter(t)

	request := httptest.NewRequest("GET", "/books?author=Nobody", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)

	var payload struct {
		Data []book.Book `json:"data"`
		Meta struct {
			Total int `json:"total"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &payload))

	assert.NotNil(t, payload.Data)
	assert.Empty(t, payload.Data)
	assert.Zero(t, payload.Meta.Total)
}

/*
TestHandler_GetBook verifies the detail payload and the invalid-id rejection.
*/
func TestHandler_GetBook(t *testing.T) {
	router, _ := newTestRouter(t)

	t.Run("detail_with_zero_reviews", func(t *testing.T) {
		request := httptest.NewRequest("GET", "/books/1", nil)
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, request)

		require.Equal(t, http.StatusOK, recorder.Code)

		var payload struct {
			Data struct {
				Title         string        `json:"title"`
				Reviews       []book.Review `json:"reviews"`
				AverageRating float64       `json:"averageRating"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &payload))

		assert.Equal(t, "The Hobbit", payload.Data.Title)
		assert.NotNil(t, payload.Data.Reviews)
		assert.Zero(t, payload.Data.AverageRating)
	})

	t.Run("unknown_id_not_found", func(t *testing.T) {
		request := httptest.NewRequest("GET", "/books/999", nil)
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})

	t.Run("non_numeric_id_rejected", func(t *testing.T) {
		request := httptest.NewRequest("GET", "/books/abc", nil)
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("unauthenticated_create_rejected", func(t *testing.T) {
		request := httptest.NewRequest("POST", "/books", nil)
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})
}
