// Copyright (c) 2026 Shelfnote. All rights reserved.

package auth

import "context"

// UserStore defines the data access contract for accounts.
type UserStore interface {
	// Create persists a new account and fills in its CreatedAt. A
	// unique-constraint rejection on username or email surfaces as
	// [ErrAccountExists].
	Create(ctx context.Context, user *User) error

	// FindByEmail returns the account with the given email, or
	// [ErrInvalidCredentials] when none exists.
	FindByEmail(ctx context.Context, email string) (*User, error)

	// FindByID returns the account with the given id, or a not-found error.
	FindByID(ctx context.Context, id string) (*User, error)
}

// SessionStore defines the refresh-session contract.
//
// Keys are token digests, never raw tokens; values are the owning user id.
type SessionStore interface {
	// Save records a session under the token digest with the store's TTL.
	Save(ctx context.Context, tokenHash, userID string) error

	// Find returns the user id owning the session, or "" when the digest is
	// unknown or has expired.
	Find(ctx context.Context, tokenHash string) (string, error)

	// Revoke removes the session. Revoking an unknown digest is not an error.
	Revoke(ctx context.Context, tokenHash string) error
}
