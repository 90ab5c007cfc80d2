package cache

import (
	"time"

	"github.com/patrickmn/go-cache"
)

// GoCache is the volatile tier: an in-memory store of Records backed by go-cache.
// go-cache expiration only frees memory; servability is decided by Record.Expired.
type GoCache struct {
	cache *cache.Cache
}

// NewGoCache creates a new GoCache instance
// defaultExpiration: default expiration time for items
// cleanupInterval: interval for cleaning up expired items
func NewGoCache(defaultExpiration, cleanupInterval time.Duration) *GoCache {
	return &GoCache{
		cache: cache.New(defaultExpiration, cleanupInterval),
	}
}

// Get returns the record stored under key
func (gc *GoCache) Get(key string) (Record, bool) {
	value, found := gc.cache.Get(key)
	if !found {
		return Record{}, false
	}

	record, ok := value.(Record)
	if !ok {
		return Record{}, false
	}
	return record, true
}

// Set stores a record with the specified timeout
// If timeout is 0, uses cache's default expiration
func (gc *GoCache) Set(key string, record Record, timeout time.Duration) {
	gc.cache.Set(key, record, timeout)
}

// Delete removes an item from cache
func (gc *GoCache) Delete(key string) {
	gc.cache.Delete(key)
}

// Clear removes all items from cache
func (gc *GoCache) Clear() {
	gc.cache.Flush()
}

// ItemCount returns the number of items in cache
func (gc *GoCache) ItemCount() int {
	return gc.cache.ItemCount()
}

// DeleteExpired manually triggers deletion of expired items
func (gc *GoCache) DeleteExpired() {
	gc.cache.DeleteExpired()
}
