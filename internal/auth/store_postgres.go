// Copyright (c) 2026 Shelfnote. All rights reserved.

package auth

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shelfnote/shelfnote/internal/platform/apperr"
	"github.com/shelfnote/shelfnote/internal/platform/dberr"
)

// PostgresUserStore implements the UserStore interface using pgx.
type PostgresUserStore struct {
	db *pgxpool.Pool
}

// NewPostgresUserStore creates a new PostgreSQL implementation of the UserStore.
func NewPostgresUserStore(db *pgxpool.Pool) *PostgresUserStore {
	return &PostgresUserStore{db: db}
}

func (store *PostgresUserStore) Create(ctx context.Context, user *User) error {
	const query = `
		INSERT INTO users.account (id, username, email, passwordhash)
		VALUES ($1, $2, $3, $4)
		RETURNING createdat`

	err := store.db.QueryRow(ctx, query, user.ID, user.Username, user.Email, user.PasswordHash).
		Scan(&user.CreatedAt)
	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return ErrAccountExists
		}
		return dberr.Wrap(err, "create_account")
	}

	return nil
}

func (store *PostgresUserStore) FindByEmail(ctx context.Context, email string) (*User, error) {
	const query = `
		SELECT id, username, email, passwordhash, createdat
		FROM users.account
		WHERE email = $1`

	user, err := store.scanOne(ctx, query, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Same error as a wrong password: lookups must not reveal
			// which emails are registered.
			return nil, ErrInvalidCredentials
		}
		return nil, dberr.Wrap(err, "find_account_by_email")
	}

	return user, nil
}

func (store *PostgresUserStore) FindByID(ctx context.Context, id string) (*User, error) {
	const query = `
		SELECT id, username, email, passwordhash, createdat
		FROM users.account
		WHERE id = $1`

	user, err := store.scanOne(ctx, query, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("User")
		}
		return nil, dberr.Wrap(err, "find_account_by_id")
	}

	return user, nil
}

func (store *PostgresUserStore) scanOne(ctx context.Context, query string, arg any) (*User, error) {
	var user User
	err := store.db.QueryRow(ctx, query, arg).
		Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		return nil, err
	}

	return &user, nil
}
