// Copyright (c) 2026 Shelfnote. All rights reserved.

package review

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shelfnote/shelfnote/internal/platform/middleware"
	requestutil "github.com/shelfnote/shelfnote/internal/platform/request"
	"github.com/shelfnote/shelfnote/internal/platform/respond"
	"github.com/shelfnote/shelfnote/pkg/pagination"
)

// Handler implements the review HTTP endpoints.
//
// Routes are split across three mount points mirroring the API surface:
// book-scoped listing/creation under /books, direct mutation under /reviews,
// and the caller's own listing under /user.
type Handler struct {
	service *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterBookRoutes mounts the book-scoped review endpoints on the /books
// router, alongside the catalog routes.
func (handler *Handler) RegisterBookRoutes(router chi.Router) {
	router.Get("/{bookID}/reviews", handler.listBookReviews)
	router.With(middleware.RequireAuth).Post("/{bookID}/reviews", handler.createReview)
}

// Routes returns the router for direct review mutation under /reviews.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Put("/{reviewID}", handler.updateReview)
	router.Delete("/{reviewID}", handler.deleteReview)

	return router
}

// UserRoutes returns the router for the caller's own listings under /user.
func (handler *Handler) UserRoutes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Get("/reviews", handler.listUserReviews)

	return router
}

// listBookReviews handles GET /api/v1/books/{bookID}/reviews requests.
func (handler *Handler) listBookReviews(writer http.ResponseWriter, request *http.Request) {
	bookID, err := requestutil.IntParam(request, "bookID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.service.GetBookReviews(request.Context(), bookID, pagination.FromRequest(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, result)
}

// listUserReviews handles GET /api/v1/user/reviews requests.
func (handler *Handler) listUserReviews(writer http.ResponseWriter, request *http.Request) {
	callerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.service.GetUserReviews(request.Context(), callerID, pagination.FromRequest(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, result)
}

// reviewRequest represents the JSON payload for creating or updating a review.
type reviewRequest struct {
	Rating  int     `json:"rating"`
	Comment *string `json:"comment"`
}

// createReview handles POST /api/v1/books/{bookID}/reviews requests.
func (handler *Handler) createReview(writer http.ResponseWriter, request *http.Request) {
	bookID, err := requestutil.IntParam(request, "bookID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	callerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input reviewRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	created, err := handler.service.AddReview(request.Context(), callerID, AddInput{
		BookID:  bookID,
		Rating:  input.Rating,
		Comment: input.Comment,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, created)
}

// updateReview handles PUT /api/v1/reviews/{reviewID} requests.
func (handler *Handler) updateReview(writer http.ResponseWriter, request *http.Request) {
	reviewID, err := requestutil.IntParam(request, "reviewID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	callerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input reviewRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.UpdateReview(request.Context(), reviewID, callerID, input.Rating, input.Comment); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{"message": "Review updated successfully"})
}

// deleteReview handles DELETE /api/v1/reviews/{reviewID} requests.
func (handler *Handler) deleteReview(writer http.ResponseWriter, request *http.Request) {
	reviewID, err := requestutil.IntParam(request, "reviewID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	callerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteReview(request.Context(), reviewID, callerID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
