package redisstore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/niksmo/fashion-store/internal/core/domain"
	"github.com/niksmo/fashion-store/internal/core/port"
	"github.com/redis/go-redis/v9"
)

var _ port.SessionStore = (*SessionStore)(nil)

const defaultSessionTTL = 30 * 24 * time.Hour

// A SessionStore keeps bags and checkouts as JSON values keyed by
// session id. Every write refreshes the ttl.
type SessionStore struct {
	rdb redis.Cmdable
	ttl time.Duration
}

func NewSessionStore(rdb redis.Cmdable, ttl time.Duration) SessionStore {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return SessionStore{rdb: rdb, ttl: ttl}
}

// LoadBag returns an empty bag for unknown sessions and for
// unreadable records.
func (s SessionStore) LoadBag(ctx context.Context, sessionID string) (domain.Bag, error) {
	const op = "SessionStore.LoadBag"

	data, err := s.rdb.Get(ctx, bagKey(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.Bag{}, nil
		}
		return domain.Bag{}, persistErr(op, err)
	}

	bag, err := decodeBag(data)
	if err != nil {
		slog.Warn("discard corrupt bag", "op", op, "sessionID", sessionID, "err", err)
		return domain.Bag{}, nil
	}
	return bag, nil
}

func (s SessionStore) SaveBag(ctx context.Context, sessionID string, bag domain.Bag) error {
	const op = "SessionStore.SaveBag"

	data, err := encodeBag(bag)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.rdb.Set(ctx, bagKey(sessionID), data, s.ttl).Err(); err != nil {
		return persistErr(op, err)
	}
	return nil
}

// LoadCheckout reports false for unknown sessions and unreadable records.
func (s SessionStore) LoadCheckout(
	ctx context.Context, sessionID string,
) (domain.Checkout, bool, error) {
	const op = "SessionStore.LoadCheckout"

	data, err := s.rdb.Get(ctx, checkoutKey(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.Checkout{}, false, nil
		}
		return domain.Checkout{}, false, persistErr(op, err)
	}

	c, err := decodeCheckout(data)
	if err != nil {
		slog.Warn("discard corrupt checkout", "op", op, "sessionID", sessionID, "err", err)
		return domain.Checkout{}, false, nil
	}
	return c, true, nil
}

func (s SessionStore) SaveCheckout(
	ctx context.Context, sessionID string, c domain.Checkout,
) error {
	const op = "SessionStore.SaveCheckout"

	data, err := encodeCheckout(c)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.rdb.Set(ctx, checkoutKey(sessionID), data, s.ttl).Err(); err != nil {
		return persistErr(op, err)
	}
	return nil
}

// CompleteCheckout stores the finished checkout and deletes the bag
// in a MULTI/EXEC transaction.
func (s SessionStore) CompleteCheckout(
	ctx context.Context, sessionID string, c domain.Checkout,
) error {
	const op = "SessionStore.CompleteCheckout"

	data, err := encodeCheckout(c)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	_, err = s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, checkoutKey(sessionID), data, s.ttl)
		pipe.Del(ctx, bagKey(sessionID))
		return nil
	})
	if err != nil {
		return persistErr(op, err)
	}
	return nil
}

func persistErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, domain.ErrPersistence, err)
}
