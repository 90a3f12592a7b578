package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	prev := client
	SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { SetClient(prev) })

	return mr
}

type payload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestGetSetJSON(t *testing.T) {
	setupMiniredis(t)
	ctx := context.Background()

	found, err := GetJSON(ctx, "missing", &payload{})
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, SetJSON(ctx, "key", payload{Name: "hollow", Count: 3}, time.Minute))

	var got payload
	found, err = GetJSON(ctx, "key", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "hollow", got.Name)
	assert.Equal(t, 3, got.Count)
}

func TestAside_CachesFetchResult(t *testing.T) {
	setupMiniredis(t)
	ctx := context.Background()

	calls := 0
	fetch := func(dest *payload) func() error {
		return func() error {
			calls++
			dest.Name = "celeste"
			dest.Count = 7
			return nil
		}
	}

	var first payload
	require.NoError(t, Aside(ctx, "aside", &first, time.Minute, fetch(&first)))
	assert.Equal(t, 1, calls)
	assert.Equal(t, "celeste", first.Name)

	// Second call is served from Redis; fetch must not run again.
	var second payload
	require.NoError(t, Aside(ctx, "aside", &second, time.Minute, fetch(&second)))
	assert.Equal(t, 1, calls)
	assert.Equal(t, "celeste", second.Name)
	assert.Equal(t, 7, second.Count)
}

func TestAside_FetchErrorPropagates(t *testing.T) {
	setupMiniredis(t)
	ctx := context.Background()

	wantErr := errors.New("db down")
	var dest payload
	err := Aside(ctx, "err", &dest, time.Minute, func() error { return wantErr })
	assert.ErrorIs(t, err, wantErr)

	// Nothing should have been cached.
	found, err := GetJSON(ctx, "err", &dest)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestAside_NilClientFallsThrough(t *testing.T) {
	prev := client
	SetClient(nil)
	t.Cleanup(func() { SetClient(prev) })

	ctx := context.Background()
	calls := 0
	var dest payload
	fetch := func() error {
		calls++
		dest.Name = "nocache"
		return nil
	}

	require.NoError(t, Aside(ctx, "k", &dest, time.Minute, fetch))
	require.NoError(t, Aside(ctx, "k", &dest, time.Minute, fetch))
	assert.Equal(t, 2, calls)
}

func TestInvalidate(t *testing.T) {
	mr := setupMiniredis(t)
	ctx := context.Background()

	require.NoError(t, SetJSON(ctx, GameKey(42), payload{Name: "hades"}, time.Minute))
	require.NoError(t, SetJSON(ctx, GamesListKey(20), []payload{{Name: "hades"}}, time.Minute))
	require.NoError(t, SetJSON(ctx, GamesListKey(50), []payload{{Name: "hades"}}, time.Minute))

	InvalidateGame(ctx, 42)

	assert.False(t, mr.Exists(GameKey(42)))
	assert.False(t, mr.Exists(GamesListKey(20)), "every cached page size is dropped")
	assert.False(t, mr.Exists(GamesListKey(50)), "every cached page size is dropped")
}
