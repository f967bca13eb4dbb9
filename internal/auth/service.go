// Copyright (c) 2026 Shelfnote. All rights reserved.

package auth

import (
	"context"
	"log/slog"
	"time"

	"github.com/shelfnote/shelfnote/internal/platform/constants"
	"github.com/shelfnote/shelfnote/internal/platform/sec"
	"github.com/shelfnote/shelfnote/internal/platform/validate"
	"github.com/shelfnote/shelfnote/pkg/uuidv7"
)

// TokenProvider abstracts access-token generation so the service can be
// tested without RSA key material. [sec.TokenService] is the production
// implementation.
type TokenProvider interface {
	GenerateAccessToken(userID, username string, timeToLive time.Duration) (string, error)
}

// refreshTokenBytes is the entropy of an opaque refresh token before
// hex encoding.
const refreshTokenBytes = 32

// Service implements the authentication use cases.
type Service struct {
	users    UserStore
	sessions SessionStore
	tokens   TokenProvider
	logger   *slog.Logger
}

// NewService constructs an auth Service.
func NewService(users UserStore, sessions SessionStore, tokens TokenProvider, logger *slog.Logger) *Service {
	return &Service{
		users:    users,
		sessions: sessions,
		tokens:   tokens,
		logger:   logger,
	}
}

// RegisterInput holds the fields supplied at account creation.
type RegisterInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register validates and creates a new account.
//
// The username/email uniqueness check is delegated entirely to the store's
// constraints; there is no pre-check, so concurrent registrations cannot race
// past it.
func (service *Service) Register(ctx context.Context, input RegisterInput) (*User, error) {
	validator := &validate.Validator{}
	validator.Required(FieldUsername, input.Username).
		MinLen(FieldUsername, input.Username, 3).
		MaxLen(FieldUsername, input.Username, 50)
	validator.Required(FieldEmail, input.Email).Email(FieldEmail, input.Email)
	validator.Required(FieldPassword, input.Password).
		MinLen(FieldPassword, input.Password, 8).
		MaxLen(FieldPassword, input.Password, 72)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	hash, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &User{
		ID:           uuidv7.New(),
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
	}

	if err := service.users.Create(ctx, user); err != nil {
		return nil, err
	}

	service.logger.Info("account_created", slog.String("user_id", user.ID))
	return user, nil
}

// Login verifies the credentials and opens a new session.
func (service *Service) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	user, err := service.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if !sec.CheckPasswordHash(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	pair, err := service.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	service.logger.Info("login", slog.String("user_id", user.ID))
	return pair, nil
}

// Refresh exchanges a valid refresh token for a fresh token pair.
//
// The presented token is revoked before the new one is issued, so each
// refresh token is single-use.
func (service *Service) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	tokenHash := sec.HashToken(refreshToken)

	userID, err := service.sessions.Find(ctx, tokenHash)
	if err != nil {
		return nil, err
	}
	if userID == "" {
		return nil, ErrInvalidSession
	}

	user, err := service.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := service.sessions.Revoke(ctx, tokenHash); err != nil {
		return nil, err
	}

	return service.issueTokens(ctx, user)
}

// Logout revokes the presented refresh token. The short-lived access token is
// left to expire on its own.
func (service *Service) Logout(ctx context.Context, refreshToken string) error {
	return service.sessions.Revoke(ctx, sec.HashToken(refreshToken))
}

// issueTokens mints an access token and opens a refresh session.
func (service *Service) issueTokens(ctx context.Context, user *User) (*TokenPair, error) {
	accessToken, err := service.tokens.GenerateAccessToken(user.ID, user.Username, constants.AccessTokenTTL)
	if err != nil {
		return nil, err
	}

	refreshToken, err := sec.GenerateSecureToken(refreshTokenBytes)
	if err != nil {
		return nil, err
	}

	if err := service.sessions.Save(ctx, sec.HashToken(refreshToken), user.ID); err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}
