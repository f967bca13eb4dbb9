// Copyright (c) 2026 Shelfnote. All rights reserved.

// Package book implements the catalog side of Shelfnote: creating books,
// filtered/paginated listing, substring search, and the book detail view
// with its embedded reviews and rating aggregate.
package book

import "time"

// Book represents a single catalog entry.
//
// Books are immutable once created; there is no update or delete path.
type Book struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Author      string    `json:"author"`
	Genre       *string   `json:"genre"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Review is a reviewer-annotated review row as embedded in a book detail.
type Review struct {
	ID        int64     `json:"id"`
	UserID    string    `json:"userId"`
	Username  string    `json:"username"`
	Rating    int       `json:"rating"`
	Comment   *string   `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
}

// Detail is the composite returned for a single book: the catalog entry,
// every review joined with the reviewer's username, and the mean rating
// (0 when the book has no reviews).
type Detail struct {
	Book
	Reviews       []Review `json:"reviews"`
	AverageRating float64  `json:"averageRating"`
}

// ListFilter holds the optional predicates for a paginated listing.
//
// Both filters are substring matches; when both are set they are ANDed,
// author predicate first. An empty field contributes no predicate at all.
type ListFilter struct {
	Author string
	Genre  string
}

// SearchFilter holds the optional predicates for a catalog search.
//
// Unlike [ListFilter], predicates here are ORed when both are set: a search
// for a title OR an author widens the result. With neither set, the search
// returns the whole catalog.
type SearchFilter struct {
	Title  string
	Author string
}

// Field names used by the service-layer validator.
const (
	FieldTitle  = "title"
	FieldAuthor = "author"
)
