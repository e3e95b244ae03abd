package redisad_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	redisad "hoteldesk/internal/adapters/redis"
)

func newStore(t *testing.T) *redisad.TokenStore {
	t.Helper()
	mr := miniredis.RunT(t)
	s := redisad.New(mr.Addr(), "", 0, "hoteldesk:access_token")
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestTokenStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	tok, err := s.Token(ctx)
	require.NoError(t, err)
	assert.Empty(t, tok, "absent key reads as unauthenticated, not an error")

	require.NoError(t, s.Save(ctx, "opaque-token"))
	tok, err = s.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, "opaque-token", tok)

	require.NoError(t, s.Clear(ctx))
	tok, err = s.Token(ctx)
	require.NoError(t, err)
	assert.Empty(t, tok)
}

func TestTokenStore_ClearIsIdempotent(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	require.NoError(t, s.Clear(ctx))
	require.NoError(t, s.Clear(ctx))
}
