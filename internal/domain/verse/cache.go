package verse

import (
	"context"
	"time"
)

type Cache interface {
	Get(ctx context.Context, key string) (*Verse, bool)
	Set(ctx context.Context, key string, verse Verse, ttl time.Duration)
}

type noopCache struct{}

func (noopCache) Get(context.Context, string) (*Verse, bool) {
	return nil, false
}

func (noopCache) Set(context.Context, string, Verse, time.Duration) {}
