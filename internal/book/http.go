// Copyright (c) 2026 Shelfnote. All rights reserved.

package book

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shelfnote/shelfnote/internal/platform/middleware"
	requestutil "github.com/shelfnote/shelfnote/internal/platform/request"
	"github.com/shelfnote/shelfnote/internal/platform/respond"
	"github.com/shelfnote/shelfnote/pkg/pagination"
)

// Handler implements the catalog HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the catalog endpoints on the /books router.
//
// The search route must be registered before the {bookID} wildcard so that
// GET /books/search is not captured as a book lookup.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	// Public
	router.Get("/", handler.listBooks)
	router.Get("/search", handler.searchBooks)
	router.Get("/{bookID}", handler.getBook)

	// Authenticated
	router.With(middleware.RequireAuth).Post("/", handler.createBook)
}

// createRequest represents the JSON payload expected for adding a book.
type createRequest struct {
	Title       string  `json:"title"`
	Author      string  `json:"author"`
	Genre       *string `json:"genre"`
	Description *string `json:"description"`
}

// createBook handles POST /api/v1/books requests.
func (handler *Handler) createBook(writer http.ResponseWriter, request *http.Request) {
	var input createRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	created, err := handler.service.CreateBook(request.Context(), CreateInput{
		Title:       input.Title,
		Author:      input.Author,
		Genre:       input.Genre,
		Description: input.Description,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, created)
}

// listBooks handles GET /api/v1/books requests.
//
// Optional author and genre query parameters narrow the listing (AND).
func (handler *Handler) listBooks(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	filter := ListFilter{
		Author: request.URL.Query().Get("author"),
		Genre:  request.URL.Query().Get("genre"),
	}

	books, total, err := handler.service.ListBooks(request.Context(), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if books == nil {
		books = []*Book{}
	}

	respond.Paginated(writer, books, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

// searchParams echoes the caller's search input back in a not-found response.
type searchParams struct {
	Title  string `json:"title"`
	Author string `json:"author"`
}

// searchNotFoundEnvelope is the payload for a search that matched nothing.
type searchNotFoundEnvelope struct {
	Error        string       `json:"error"`
	Code         string       `json:"code"`
	SearchParams searchParams `json:"searchParams"`
}

// searchBooks handles GET /api/v1/books/search requests.
//
// Optional title and author query parameters widen the search (OR). A search
// that matches nothing is a 404 carrying the echoed search parameters, which
// distinguishes it from an empty-but-successful listing page.
func (handler *Handler) searchBooks(writer http.ResponseWriter, request *http.Request) {
	filter := SearchFilter{
		Title:  request.URL.Query().Get("title"),
		Author: request.URL.Query().Get("author"),
	}

	books, err := handler.service.SearchBooks(request.Context(), filter)
	if err != nil {
		if errors.Is(err, ErrNoSearchMatches) {
			respond.JSON(writer, http.StatusNotFound, searchNotFoundEnvelope{
				Error:        ErrNoSearchMatches.Message,
				Code:         ErrNoSearchMatches.Code,
				SearchParams: searchParams{Title: filter.Title, Author: filter.Author},
			})
			return
		}
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, books)
}

// getBook handles GET /api/v1/books/{bookID} requests.
func (handler *Handler) getBook(writer http.ResponseWriter, request *http.Request) {
	bookID, err := requestutil.IntParam(request, "bookID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	detail, err := handler.service.GetBook(request.Context(), bookID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, detail)
}
