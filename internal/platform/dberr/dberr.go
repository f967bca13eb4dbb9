// Copyright (c) 2026 Shelfnote. All rights reserved.

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
//
// # Taxonomy
//
// Storage failures fall into four classes:
//
//   - connectivity: the store is unreachable or the dial failed (503)
//   - not found: the queried row does not exist (404)
//   - constraint: a unique or foreign-key constraint rejected the statement
//   - statement: any other rejected or malformed statement (500)
//
// Repositories call [Wrap] at the storage boundary so that nothing above
// them ever sees a pgx error type. Constraint violations that carry domain
// meaning (e.g. "one review per user per book") are classified by the
// repository itself via [IsUniqueViolation] before falling back to Wrap.
package dberr

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/shelfnote/shelfnote/internal/platform/apperr"
)

var (
	// ErrNotFound is a standard error returned when a queried row doesn't exist.
	ErrNotFound = apperr.NotFound("Resource")
)

// Wrap inspects a database error and wraps it into a meaningful [apperr.AppError].
// It hides internal database details from the client while classifying the error type.
//
// The action string names the failing operation for server-side logs; it is
// never echoed to the client.
func Wrap(err error, action string) error {
	if err == nil {
		return nil
	}

	// 1. Not Found mapping
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}

	// 2. Constraint violations that reach this point were not claimed by the
	// repository, so they surface as conflicts with a generic message.
	if IsUniqueViolation(err) {
		return apperr.Conflict("Resource already exists")
	}

	// 3. Connectivity failures are fatal to the request and not retried here.
	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return apperr.ServiceUnavailable(err)
	}

	// 4. Unknown statement errors become internal server errors.
	return apperr.Internal(&actionError{action: action, cause: err})
}

// IsUniqueViolation reports whether err is a Postgres unique_violation (23505).
func IsUniqueViolation(err error) bool {
	return sqlState(err) == pgerrcode.UniqueViolation
}

// IsForeignKeyViolation reports whether err is a Postgres foreign_key_violation (23503).
func IsForeignKeyViolation(err error) bool {
	return sqlState(err) == pgerrcode.ForeignKeyViolation
}

// ConstraintName returns the name of the violated constraint, or "" when err
// carries none. Repositories use it to tell apart multiple constraints on the
// same table.
func ConstraintName(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.ConstraintName
	}
	return ""
}

// sqlState extracts the SQLSTATE code from a pgconn error chain.
func sqlState(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// actionError pairs the failing repository action with its cause so that
// server-side logs can pinpoint the query without parsing SQL.
type actionError struct {
	action string
	cause  error
}

func (e *actionError) Error() string { return e.action + ": " + e.cause.Error() }

func (e *actionError) Unwrap() error { return e.cause }
