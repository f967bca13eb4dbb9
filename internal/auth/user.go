// Copyright (c) 2026 Shelfnote. All rights reserved.

// Package auth implements account registration and session management.
//
// # Session model
//
// Access is granted through short-lived RS256 JWTs carrying the caller's
// identity. Long-lived sessions are opaque refresh tokens: the client holds
// the random token, the server stores only its SHA-256 digest in Redis, so a
// leaked session store cannot be replayed against the API.
package auth

import (
	"time"

	"github.com/shelfnote/shelfnote/internal/platform/apperr"
)

var (
	// ErrInvalidCredentials reports a failed login. Unknown email and wrong
	// password are deliberately indistinguishable.
	ErrInvalidCredentials = apperr.Unauthorized("Invalid email or password")

	// ErrInvalidSession reports an unknown, expired or revoked refresh token.
	ErrInvalidSession = apperr.Unauthorized("Invalid or expired session")

	// ErrAccountExists reports a registration clash on username or email.
	ErrAccountExists = apperr.Conflict("Username or email already in use")
)

// User represents a registered account.
//
// The password hash never leaves the server: it is excluded from JSON
// serialization entirely rather than relying on handlers to strip it.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// TokenPair is the credential set returned by login and refresh.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Field names used by the service-layer validator.
const (
	FieldUsername = "username"
	FieldEmail    = "email"
	FieldPassword = "password"
)
