package store

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/pbaille/entrykit/internal/domain"
	"github.com/pbaille/entrykit/internal/ingredients"
)

// TagCache serves tag membership from memory, falling back to the store.
// Writes through the cache invalidate the touched tag.
type TagCache struct {
	store *Store
	cache *gocache.Cache
}

// NewTagCache caches lookups for ttl; a non-positive ttl never expires
func NewTagCache(store *Store, ttl time.Duration) *TagCache {
	if ttl <= 0 {
		ttl = gocache.NoExpiration
	}
	cleanup := ttl * 2
	if ttl == gocache.NoExpiration {
		cleanup = 0
	}
	return &TagCache{store: store, cache: gocache.New(ttl, cleanup)}
}

func cacheKey(kind string, name domain.Identifier) string {
	return kind + "|" + name.String()
}

// TagMembers returns the members of a tag of kind
func (c *TagCache) TagMembers(kind string, name domain.Identifier) ([]domain.Identifier, error) {
	key := cacheKey(kind, name)
	if v, ok := c.cache.Get(key); ok {
		return v.([]domain.Identifier), nil
	}
	members, err := c.store.TagMembers(kind, name)
	if err != nil {
		return nil, err
	}
	c.cache.SetDefault(key, members)
	return members, nil
}

// AddTagMembers writes through to the store
func (c *TagCache) AddTagMembers(kind string, name domain.Identifier, members []domain.Identifier) (*domain.Tag, error) {
	tag, err := c.store.AddTagMembers(kind, name, members)
	c.cache.Delete(cacheKey(kind, name))
	return tag, err
}

// Len is the number of cached tags
func (c *TagCache) Len() int {
	return c.cache.ItemCount()
}

// Flush drops every cached tag
func (c *TagCache) Flush() {
	c.cache.Flush()
}

// Source binds the cache to one kind for ingredient resolution
func (c *TagCache) Source(kind string) ingredients.TagSource[domain.Identifier] {
	return ingredients.TagSourceFunc[domain.Identifier](func(tag domain.Identifier) ([]domain.Identifier, error) {
		return c.TagMembers(kind, tag)
	})
}
