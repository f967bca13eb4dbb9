// Copyright (c) 2026 Shelfnote. All rights reserved.

package dberr_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelfnote/shelfnote/internal/platform/apperr"
	"github.com/shelfnote/shelfnote/internal/platform/dberr"
)

/*
TestWrap_Classification verifies the mapping from driver errors to AppErrors.
*/
func TestWrap_Classification(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantCode   string
		wantStatus int
	}{
		{
			name:       "no_rows_maps_to_not_found",
			err:        pgx.ErrNoRows,
			wantCode:   "NOT_FOUND",
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "unique_violation_maps_to_conflict",
			err:        &pgconn.PgError{Code: pgerrcode.UniqueViolation},
			wantCode:   "CONFLICT",
			wantStatus: http.StatusConflict,
		},
		{
			name:       "unknown_error_maps_to_internal",
			err:        errors.New("syntax error at or near"),
			wantCode:   "INTERNAL_ERROR",
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := dberr.Wrap(tt.err, "test_action")
			require.Error(t, wrapped)

			ae := apperr.As(wrapped)
			require.NotNil(t, ae)
			assert.Equal(t, tt.wantCode, ae.Code)
			assert.Equal(t, tt.wantStatus, ae.HTTPStatus)
		})
	}
}

/*
TestWrap_Nil verifies that a nil error passes through untouched.
*/
func TestWrap_Nil(t *testing.T) {
	assert.NoError(t, dberr.Wrap(nil, "noop"))
}

/*
TestConstraintHelpers verifies SQLSTATE classification of constraint errors.
*/
func TestConstraintHelpers(t *testing.T) {
	uniqueErr := &pgconn.PgError{Code: pgerrcode.UniqueViolation}
	fkErr := &pgconn.PgError{Code: pgerrcode.ForeignKeyViolation}

	assert.True(t, dberr.IsUniqueViolation(uniqueErr))
	assert.False(t, dberr.IsUniqueViolation(fkErr))

	assert.True(t, dberr.IsForeignKeyViolation(fkErr))
	assert.False(t, dberr.IsForeignKeyViolation(uniqueErr))

	// Non-postgres errors carry no SQLSTATE at all
	assert.False(t, dberr.IsUniqueViolation(errors.New("plain")))
	assert.False(t, dberr.IsForeignKeyViolation(nil))
}

/*
TestConstraintName verifies constraint-name extraction from driver errors.
*/
func TestConstraintName(t *testing.T) {
	named := &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "review_user_book_key"}

	assert.Equal(t, "review_user_book_key", dberr.ConstraintName(named))
	assert.Empty(t, dberr.ConstraintName(errors.New("plain")))
}

/*
TestWrap_InternalKeepsCause verifies the action/cause pairing survives Unwrap.
*/
func TestWrap_InternalKeepsCause(t *testing.T) {
	cause := errors.New("column does not exist")
	wrapped := dberr.Wrap(cause, "list_books")

	assert.True(t, errors.Is(wrapped, cause))
}
