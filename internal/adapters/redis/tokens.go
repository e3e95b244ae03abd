package redisad

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"

	"hoteldesk/internal/adapters/observability"
)

// TokenStore persists the single opaque bearer token under a fixed key.
// A missing key means "unauthenticated" and is not an error. The token has no
// TTL: the backend decides when it stops being valid, and a 401 clears it.
type TokenStore struct {
	c   *redis.Client
	key string
}

func New(addr, pass string, db int, key string) *TokenStore {
	return &TokenStore{
		c:   redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db}),
		key: key,
	}
}

func (s *TokenStore) Token(ctx context.Context) (string, error) {
	v, err := s.c.Get(ctx, s.key).Result()
	if errors.Is(err, redis.Nil) {
		observability.ObserveSession("token_miss")
		return "", nil
	}
	if err != nil {
		return "", err
	}
	observability.ObserveSession("token_hit")
	return v, nil
}

func (s *TokenStore) Save(ctx context.Context, token string) error {
	observability.ObserveSession("token_save")
	return s.c.Set(ctx, s.key, token, 0).Err()
}

func (s *TokenStore) Clear(ctx context.Context) error {
	observability.ObserveSession("token_clear")
	return s.c.Del(ctx, s.key).Err()
}

func (s *TokenStore) Close() error { return s.c.Close() }
