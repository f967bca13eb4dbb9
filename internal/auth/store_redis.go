// Copyright (c) 2026 Shelfnote. All rights reserved.

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/shelfnote/shelfnote/internal/platform/constants"
)

// RedisSessionStore implements the SessionStore interface on Redis.
//
// Sessions expire server-side via key TTLs, so there is no sweep job:
// an expired session simply stops resolving.
type RedisSessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisSessionStore creates a session store with the given session lifetime.
func NewRedisSessionStore(client *redis.Client, ttl time.Duration) *RedisSessionStore {
	return &RedisSessionStore{client: client, ttl: ttl}
}

func (store *RedisSessionStore) Save(ctx context.Context, tokenHash, userID string) error {
	key := constants.RedisPrefixSession + tokenHash

	if err := store.client.Set(ctx, key, userID, store.ttl).Err(); err != nil {
		return fmt.Errorf("auth: failed to save session: %w", err)
	}

	return nil
}

func (store *RedisSessionStore) Find(ctx context.Context, tokenHash string) (string, error) {
	key := constants.RedisPrefixSession + tokenHash

	userID, err := store.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", fmt.Errorf("auth: failed to look up session: %w", err)
	}

	return userID, nil
}

func (store *RedisSessionStore) Revoke(ctx context.Context, tokenHash string) error {
	key := constants.RedisPrefixSession + tokenHash

	if err := store.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("auth: failed to revoke session: %w", err)
	}

	return nil
}
