package inmemory

import (
	"context"
	"sync"
	"time"

	versedomain "church-app-go/internal/domain/verse"
)

// VerseCache keeps verses in process memory. Expired entries are evicted on
// read and swept on every write.
type VerseCache struct {
	mu    sync.RWMutex
	items map[string]verseItem
	now   func() time.Time
}

type verseItem struct {
	value     versedomain.Verse
	expiresAt time.Time
}

func NewVerseCache() *VerseCache {
	return &VerseCache{
		items: make(map[string]verseItem),
		now:   time.Now,
	}
}

func (c *VerseCache) Get(_ context.Context, key string) (*versedomain.Verse, bool) {
	now := c.now()

	c.mu.RLock()
	item, ok := c.items[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}

	if !item.expiresAt.After(now) {
		c.mu.Lock()
		item, ok = c.items[key]
		if ok && !item.expiresAt.After(now) {
			delete(c.items, key)
		}
		c.mu.Unlock()
		return nil, false
	}

	value := item.value
	return &value, true
}

func (c *VerseCache) Set(_ context.Context, key string, verse versedomain.Verse, ttl time.Duration) {
	if ttl <= 0 {
		c.Delete(key)
		return
	}

	now := c.now()

	c.mu.Lock()
	for existing, item := range c.items {
		if !item.expiresAt.After(now) {
			delete(c.items, existing)
		}
	}
	c.items[key] = verseItem{
		value:     verse,
		expiresAt: now.Add(ttl),
	}
	c.mu.Unlock()
}

func (c *VerseCache) Delete(key string) {
	c.mu.Lock()
	delete(c.items, key)
	c.mu.Unlock()
}

func (c *VerseCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
