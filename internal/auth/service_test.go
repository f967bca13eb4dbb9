// Copyright (c) 2026 Shelfnote. All rights reserved.

package auth_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelfnote/shelfnote/internal/auth"
	"github.com/shelfnote/shelfnote/internal/platform/apperr"
	"github.com/shelfnote/shelfnote/internal/platform/sec"
)

// fakeUserStore is an in-memory UserStore implementation.
type fakeUserStore struct {
	users []*auth.User
}

func (s *fakeUserStore) Create(_ context.Context, user *auth.User) error {
	for _, existing := range s.users {
		if existing.Username == user.Username || existing.Email == user.Email {
			return auth.ErrAccountExists
		}
	}
	user.CreatedAt = time.Now()
	s.users = append(s.users, user)
	return nil
}

func (s *fakeUserStore) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, auth.ErrInvalidCredentials
}

func (s *fakeUserStore) FindByID(_ context.Context, id string) (*auth.User, error) {
	for _, u := range s.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, apperr.NotFound("User")
}

// fakeSessionStore is an in-memory SessionStore implementation.
type fakeSessionStore struct {
	sessions map[string]string
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: make(map[string]string)}
}

func (s *fakeSessionStore) Save(_ context.Context, tokenHash, userID string) error {
	s.sessions[tokenHash] = userID
	return nil
}

func (s *fakeSessionStore) Find(_ context.Context, tokenHash string) (string, error) {
	return s.sessions[tokenHash], nil
}

func (s *fakeSessionStore) Revoke(_ context.Context, tokenHash string) error {
	delete(s.sessions, tokenHash)
	return nil
}

// fakeTokenProvider mints predictable access tokens without RSA keys.
type fakeTokenProvider struct{}

func (fakeTokenProvider) GenerateAccessToken(userID, _ string, _ time.Duration) (string, error) {
	return "access-for-" + userID, nil
}

func newTestService() (*auth.Service, *fakeUserStore, *fakeSessionStore) {
	users := &fakeUserStore{}
	sessions := newFakeSessionStore()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	service := auth.NewService(users, sessions, fakeTokenProvider{}, logger)
	return service, users, sessions
}

func registered(t *testing.T, service *auth.Service) *auth.User {
	t.Helper()

	user, err := service.Register(context.Background(), auth.RegisterInput{
		Username: "ines",
		Email:    "ines@example.com",
		Password: "correct horse battery",
	})
	require.NoError(t, err)
	return user
}

/*
TestService_Register verifies account creation, validation, and uniqueness.
*/
func TestService_Register(t *testing.T) {
	service, _, _ := newTestService()
	ctx := context.Background()

	t.Run("valid_registration", func(t *testing.T) {
		user := registered(t, service)

		assert.NotEmpty(t, user.ID)
		assert.NotEmpty(t, user.PasswordHash)
		assert.NotEqual(t, "correct horse battery", user.PasswordHash)
	})

	t.Run("duplicate_username_conflicts", func(t *testing.T) {
		_, err := service.Register(ctx, auth.RegisterInput{
			Username: "ines",
			Email:    "other@example.com",
			Password: "another password",
		})
		assert.ErrorIs(t, err, auth.ErrAccountExists)
	})

	t.Run("invalid_input_rejected", func(t *testing.T) {
		tests := []struct {
			name  string
			input auth.RegisterInput
		}{
			{"short_password", auth.RegisterInput{Username: "marc", Email: "marc@example.com", Password: "short"}},
			{"bad_email", auth.RegisterInput{Username: "marc", Email: "not-an-email", Password: "long enough pass"}},
			{"short_username", auth.RegisterInput{Username: "ab", Email: "marc@example.com", Password: "long enough pass"}},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := service.Register(ctx, tt.input)
				require.Error(t, err)

				ae := apperr.As(err)
				require.NotNil(t, ae)
				assert.Equal(t, "VALIDATION_ERROR", ae.Code)
			})
		}
	})
}

/*
TestService_Login verifies credential checking and session issuance.
*/
func TestService_Login(t *testing.T) {
	service, _, sessions := newTestService()
	ctx := context.Background()
	user := registered(t, service)

	t.Run("valid_credentials", func(t *testing.T) {
		pair, err := service.Login(ctx, "ines@example.com", "correct horse battery")
		require.NoError(t, err)

		assert.Equal(t, "access-for-"+user.ID, pair.AccessToken)
		assert.NotEmpty(t, pair.RefreshToken)

		// The raw refresh token must never be a session key.
		_, rawStored := sessions.sessions[pair.RefreshToken]
		assert.False(t, rawStored)
		assert.Equal(t, user.ID, sessions.sessions[sec.HashToken(pair.RefreshToken)])
	})

	t.Run("wrong_password", func(t *testing.T) {
		_, err := service.Login(ctx, "ines@example.com", "wrong password!!")
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("unknown_email_same_error", func(t *testing.T) {
		_, err := service.Login(ctx, "nobody@example.com", "correct horse battery")
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})
}

/*
TestService_Refresh verifies single-use rotation of refresh tokens.
*/
func TestService_Refresh(t *testing.T) {
	service, _, _ := newTestService()
	ctx := context.Background()
	registered(t, service)

	pair, err := service.Login(ctx, "ines@example.com", "correct horse battery")
	require.NoError(t, err)

	t.Run("valid_refresh_rotates", func(t *testing.T) {
		fresh, err := service.Refresh(ctx, pair.RefreshToken)
		require.NoError(t, err)
		assert.NotEqual(t, pair.RefreshToken, fresh.RefreshToken)

		// The old token is now revoked.
		_, err = service.Refresh(ctx, pair.RefreshToken)
		assert.ErrorIs(t, err, auth.ErrInvalidSession)
	})

	t.Run("unknown_token_rejected", func(t *testing.T) {
		_, err := service.Refresh(ctx, "made-up-token")
		assert.ErrorIs(t, err, auth.ErrInvalidSession)
	})
}

/*
TestService_Logout verifies session revocation.
*/
func TestService_Logout(t *testing.T) {
	service, _, _ := newTestService()
	ctx := context.Background()
	registered(t, service)

	pair, err := service.Login(ctx, "ines@example.com", "correct horse battery")
	require.NoError(t, err)

	require.NoError(t, service.Logout(ctx, pair.RefreshToken))

	_, err = service.Refresh(ctx, pair.RefreshToken)
	assert.ErrorIs(t, err, auth.ErrInvalidSession)

	// Logout of an already-revoked token is idempotent.
	assert.NoError(t, service.Logout(ctx, pair.RefreshToken))
}
