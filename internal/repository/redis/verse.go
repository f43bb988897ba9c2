package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	versedomain "church-app-go/internal/domain/verse"
	"church-app-go/pkg/logger"
	goredis "github.com/redis/go-redis/v9"
)

// VerseCache stores verses as JSON strings. Backend failures are logged and
// reported as misses so the verse endpoint keeps working without redis.
type VerseCache struct {
	client goredis.Cmdable
	prefix string
	log    logger.Logger
}

func NewVerseCache(client goredis.Cmdable, log logger.Logger) *VerseCache {
	return &VerseCache{client: client, prefix: "church-app:", log: log}
}

// NewClient builds a client from a redis:// URL.
func NewClient(url string) (*goredis.Client, error) {
	opts, err := goredis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	return goredis.NewClient(opts), nil
}

func (c *VerseCache) Get(ctx context.Context, key string) (*versedomain.Verse, bool) {
	raw, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if err != nil {
		if !errors.Is(err, goredis.Nil) {
			c.log.Warn("verse cache: get failed", "key", key, "err", err)
		}
		return nil, false
	}

	var verse versedomain.Verse
	if err := json.Unmarshal(raw, &verse); err != nil {
		c.log.Warn("verse cache: corrupt entry", "key", key, "err", err)
		return nil, false
	}
	return &verse, true
}

func (c *VerseCache) Set(ctx context.Context, key string, verse versedomain.Verse, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	raw, err := json.Marshal(verse)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, c.prefix+key, raw, ttl).Err(); err != nil {
		c.log.Warn("verse cache: set failed", "key", key, "err", err)
	}
}
