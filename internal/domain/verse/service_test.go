package verse

import (
	"context"
	"errors"
	"testing"
	"time"

	"church-app-go/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGenerator struct {
	verse Verse
	err   error
	calls int
}

func (g *fakeGenerator) Generate(ctx context.Context, day time.Time) (Verse, error) {
	g.calls++
	return g.verse, g.err
}

type mapCache struct {
	items map[string]Verse
}

func (c *mapCache) Get(ctx context.Context, key string) (*Verse, bool) {
	v, ok := c.items[key]
	if !ok {
		return nil, false
	}
	return &v, true
}

func (c *mapCache) Set(ctx context.Context, key string, verse Verse, ttl time.Duration) {
	c.items[key] = verse
}

var fixedNow = time.Date(2026, time.October, 15, 23, 30, 0, 0, time.UTC)

func newTestService(gen Generator, cache Cache) *Service {
	service := NewService(gen, cache, time.Hour, logger.Discard())
	service.now = func() time.Time { return fixedNow }
	return service
}

func TestTodayUsesGeneratorAndCaches(t *testing.T) {
	gen := &fakeGenerator{verse: Verse{Reference: " Psalm 121:1 ", Text: "I will lift up mine eyes unto the hills."}}
	cache := &mapCache{items: map[string]Verse{}}
	service := newTestService(gen, cache)

	first := service.Today(context.Background())
	assert.Equal(t, "Psalm 121:1", first.Reference)
	assert.Equal(t, SourceGenerated, first.Source)
	assert.Equal(t, "2026-10-15", first.Date)

	second := service.Today(context.Background())
	assert.Equal(t, first, second)
	assert.Equal(t, 1, gen.calls)
	assert.Contains(t, cache.items, "verse:2026-10-15")
}

func TestTodayFallsBackToStaticList(t *testing.T) {
	tests := []struct {
		name string
		gen  Generator
	}{
		{name: "no generator", gen: nil},
		{name: "generator error", gen: &fakeGenerator{err: errors.New("quota exceeded")}},
		{name: "empty verse", gen: &fakeGenerator{verse: Verse{Reference: "John 1:1"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cache := &mapCache{items: map[string]Verse{}}
			service := newTestService(tt.gen, cache)

			verse := service.Today(context.Background())
			assert.Equal(t, SourceStatic, verse.Source)
			assert.Equal(t, StaticFor(time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)), verse)
			assert.Empty(t, cache.items)
		})
	}
}

func TestTodayRespectsLocation(t *testing.T) {
	service := newTestService(nil, nil)
	service.WithLocation(time.FixedZone("KST", 9*60*60))

	assert.Equal(t, "2026-10-16", service.Today(context.Background()).Date)
}

func TestStaticForIsDeterministic(t *testing.T) {
	day := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, staticVerses[0].Reference, StaticFor(day).Reference)
	assert.Equal(t, StaticFor(day), StaticFor(day))

	next := day.AddDate(0, 0, len(staticVerses))
	assert.Equal(t, staticVerses[0].Reference, StaticFor(next).Reference)
}

func TestPrewarm(t *testing.T) {
	gen := &fakeGenerator{verse: Verse{Reference: "Psalm 1:1", Text: "Blessed is the man."}}
	cache := &mapCache{items: map[string]Verse{}}
	service := newTestService(gen, cache)

	require.True(t, service.Prewarm(context.Background()))
	require.True(t, service.Prewarm(context.Background()))
	assert.Equal(t, 1, gen.calls)

	failing := newTestService(&fakeGenerator{err: errors.New("down")}, &mapCache{items: map[string]Verse{}})
	assert.False(t, failing.Prewarm(context.Background()))
}
