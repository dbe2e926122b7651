package redisstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/niksmo/fashion-store/internal/core/domain"
	"github.com/redis/go-redis/v9"
)

const defaultTokenTTL = 12 * time.Hour

// TokenStore keeps opaque admin session tokens with a ttl.
type TokenStore struct {
	rdb redis.Cmdable
	ttl time.Duration
}

func NewTokenStore(rdb redis.Cmdable, ttl time.Duration) TokenStore {
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return TokenStore{rdb: rdb, ttl: ttl}
}

func (s TokenStore) Issue(ctx context.Context, subject string) (string, error) {
	const op = "TokenStore.Issue"

	token := uuid.NewString()
	if err := s.rdb.Set(ctx, adminTokenKey(token), subject, s.ttl).Err(); err != nil {
		return "", persistErr(op, err)
	}
	return token, nil
}

// Lookup returns the subject of a live token or [domain.ErrUnauthorized].
func (s TokenStore) Lookup(ctx context.Context, token string) (string, error) {
	const op = "TokenStore.Lookup"

	subject, err := s.rdb.Get(ctx, adminTokenKey(token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", fmt.Errorf("%s: %w", op, domain.ErrUnauthorized)
		}
		return "", persistErr(op, err)
	}
	return subject, nil
}

func (s TokenStore) Revoke(ctx context.Context, token string) error {
	const op = "TokenStore.Revoke"

	if err := s.rdb.Del(ctx, adminTokenKey(token)).Err(); err != nil {
		return persistErr(op, err)
	}
	return nil
}
