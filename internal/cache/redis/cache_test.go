package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewWithClient(client), mr
}

func TestCache_SetGetMiss(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	_, ok, err := c.Get(ctx, "absent")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, c.Set(ctx, "k", []byte(`{"a":1}`), time.Hour))
	got, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	require.JSONEq(t, `{"a":1}`, string(got))
}

func TestCache_TTL(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", []byte("v"), time.Minute))
	require.Equal(t, time.Minute, mr.TTL("k"))

	mr.FastForward(2 * time.Minute)
	_, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestCache_DeletePrefix(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	for _, k := range []string{
		"orders:list:customer=all:page=1",
		"orders:list:customer=all:page=2",
		"orders:list:customer=food%20eka:page=1",
		"orders:detail:1",
	} {
		require.NoError(t, c.Set(ctx, k, []byte("x"), time.Hour))
	}

	n, err := c.DeletePrefix(ctx, "orders:list:")
	require.NoError(t, err)
	require.Equal(t, 3, n)
	require.False(t, mr.Exists("orders:list:customer=all:page=1"))
	require.True(t, mr.Exists("orders:detail:1"))

	require.NoError(t, c.Delete(ctx, "orders:detail:1", "orders:detail:404"))
	require.False(t, mr.Exists("orders:detail:1"))
}

func TestCache_Unavailable(t *testing.T) {
	c, mr := newTestCache(t)
	mr.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	_, _, err := c.Get(ctx, "k")
	require.Error(t, err)
	_, err = c.DeletePrefix(ctx, "orders:list:")
	require.Error(t, err)
}
