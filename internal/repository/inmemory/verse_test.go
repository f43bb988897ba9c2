package inmemory

import (
	"context"
	"testing"
	"time"

	versedomain "church-app-go/internal/domain/verse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerseCacheExpires(t *testing.T) {
	cache := NewVerseCache()
	now := time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return now }
	ctx := context.Background()

	verse := versedomain.Verse{Reference: "Psalm 23:1", Text: "The Lord is my shepherd", Date: "2026-10-15"}
	cache.Set(ctx, "verse:2026-10-15", verse, time.Hour)

	got, ok := cache.Get(ctx, "verse:2026-10-15")
	require.True(t, ok)
	assert.Equal(t, verse, *got)

	got.Text = "mutated"
	again, ok := cache.Get(ctx, "verse:2026-10-15")
	require.True(t, ok)
	assert.Equal(t, "The Lord is my shepherd", again.Text)

	now = now.Add(2 * time.Hour)
	_, ok = cache.Get(ctx, "verse:2026-10-15")
	assert.False(t, ok)
	assert.Zero(t, cache.Len())
}

func TestVerseCacheNonPositiveTTLDeletes(t *testing.T) {
	cache := NewVerseCache()
	ctx := context.Background()

	cache.Set(ctx, "k", versedomain.Verse{Text: "x"}, time.Minute)
	cache.Set(ctx, "k", versedomain.Verse{Text: "y"}, 0)

	_, ok := cache.Get(ctx, "k")
	assert.False(t, ok)
}

func TestVerseCacheSetSweepsPastDays(t *testing.T) {
	cache := NewVerseCache()
	now := time.Date(2026, 10, 14, 0, 5, 0, 0, time.UTC)
	cache.now = func() time.Time { return now }
	ctx := context.Background()

	cache.Set(ctx, "verse:2026-10-14", versedomain.Verse{Date: "2026-10-14"}, 24*time.Hour)
	cache.Set(ctx, "verse:2026-10-13", versedomain.Verse{Date: "2026-10-13"}, time.Hour)
	assert.Equal(t, 2, cache.Len())

	now = now.Add(24 * time.Hour)
	cache.Set(ctx, "verse:2026-10-15", versedomain.Verse{Date: "2026-10-15"}, 24*time.Hour)

	assert.Equal(t, 1, cache.Len())
	_, ok := cache.Get(ctx, "verse:2026-10-15")
	assert.True(t, ok)
}
