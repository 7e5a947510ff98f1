package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return New(rdb, 5*time.Minute), mr
}

func TestGetSetRoundtrip(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	type payload struct {
		Name  string  `json:"name"`
		Score float64 `json:"score"`
	}
	require.NoError(t, c.Set(ctx, "k", payload{Name: "alice", Score: 1.5}, 0))

	var got payload
	require.NoError(t, c.Get(ctx, "k", &got))
	assert.Equal(t, payload{Name: "alice", Score: 1.5}, got)
}

func TestGetMissingKeyReturnsErrMiss(t *testing.T) {
	c, _ := newTestCache(t)

	var got string
	err := c.Get(context.Background(), "absent", &got)
	assert.ErrorIs(t, err, ErrMiss)
}

func TestSetAppliesDefaultTTL(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", "v", 0))
	mr.FastForward(5*time.Minute + time.Second)

	var got string
	err := c.Get(ctx, "k", &got)
	assert.ErrorIs(t, err, ErrMiss)
}

func TestDelAndExists(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", "v", 0))
	ok, err := c.Exists(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, c.Del(ctx, "k"))
	ok, err = c.Exists(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCachedComputesOnceThenServesFromCache(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	calls := 0
	compute := func(context.Context) (int, error) {
		calls++
		return 42, nil
	}

	for i := 0; i < 3; i++ {
		got, err := Cached(ctx, c, "answer", compute)
		require.NoError(t, err)
		assert.Equal(t, 42, got)
	}
	assert.Equal(t, 1, calls)
}

func TestCachedFallsBackWhenStoreUnreachable(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()
	mr.Close()

	calls := 0
	compute := func(context.Context) (string, error) {
		calls++
		return "from-source", nil
	}

	// 缓存完全不可用：每次都回源，但对调用方不可见任何错误
	for i := 0; i < 2; i++ {
		got, err := Cached(ctx, c, "k", compute)
		require.NoError(t, err)
		assert.Equal(t, "from-source", got)
	}
	assert.Equal(t, 2, calls)
}
