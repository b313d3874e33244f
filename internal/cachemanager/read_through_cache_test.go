package cachemanager

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReadThroughCache_LoaderRunsOncePerKey(t *testing.T) {
	cache := NewInMemoryCacheManager[string, string]("resolved-values", DefaultExpiration, DefaultCleanupInterval)
	ctx := context.Background()

	loads := 0
	rtc := NewReadThroughCache[string, string, string](cache, func(_ context.Context, token string) (string, error) {
		loads++
		return "resolved:" + token, nil
	}, false)

	for i := 0; i < 3; i++ {
		v, err := rtc.Get(ctx, "editor.background", "editor.background", DefaultExpiration)
		require.NoError(t, err)
		require.Equal(t, "resolved:editor.background", v)
	}
	require.Equal(t, 1, loads)
}

func TestReadThroughCache_FlushForcesReload(t *testing.T) {
	cache := NewInMemoryCacheManager[string, string]("resolved-values", DefaultExpiration, DefaultCleanupInterval)
	ctx := context.Background()

	loads := 0
	rtc := NewReadThroughCache[string, string, string](cache, func(_ context.Context, token string) (string, error) {
		loads++
		return token, nil
	}, false)

	_, err := rtc.Get(ctx, "k", "k", DefaultExpiration)
	require.NoError(t, err)
	require.NoError(t, rtc.Flush(ctx))
	_, err = rtc.Get(ctx, "k", "k", DefaultExpiration)
	require.NoError(t, err)
	require.Equal(t, 2, loads)
}

func TestReadThroughCache_SkipCache(t *testing.T) {
	cache := NewInMemoryCacheManager[string, string]("resolved-values", DefaultExpiration, DefaultCleanupInterval)
	ctx := context.Background()

	loads := 0
	rtc := NewReadThroughCache[string, string, string](cache, func(_ context.Context, token string) (string, error) {
		loads++
		return token, nil
	}, true)

	_, _ = rtc.Get(ctx, "k", "k", DefaultExpiration)
	_, _ = rtc.Get(ctx, "k", "k", DefaultExpiration)
	require.Equal(t, 2, loads)
	require.Equal(t, 0, cache.Len(ctx))
}
