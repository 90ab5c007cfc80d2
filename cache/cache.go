package cache

import (
	"net/url"
	"strings"
	"time"
)

//go:generate mockgen -destination=mocks/store.go . Store

// Tier identifies where a record lives
type Tier string

const (
	TierVolatile Tier = "volatile"
	TierDurable  Tier = "durable"
)

// Record is one cached payload with its lifetime in epoch milliseconds.
// A record is never returned once now >= ExpiresAt.
type Record struct {
	Key       string
	Payload   []byte
	CreatedAt int64
	ExpiresAt int64
	Tier      Tier
}

// Expired reports whether the record is no longer servable at now
func (r Record) Expired(now time.Time) bool {
	return now.UnixMilli() >= r.ExpiresAt
}

// Remaining returns the time left before expiry, never negative
func (r Record) Remaining(now time.Time) time.Duration {
	left := time.UnixMilli(r.ExpiresAt).Sub(now)
	if left < 0 {
		return 0
	}
	return left
}

// Store is the two-tier cache contract used by the Riot client.
// Implementations never surface storage errors; a failing tier is a miss.
type Store interface {
	// Get returns the payload for key from the volatile tier, falling back to the durable tier
	Get(key string) ([]byte, bool)

	// Set writes the volatile tier and, when durable is true, the durable document
	Set(key string, value []byte, durable bool, ttl time.Duration)

	// Clear removes every entry from both tiers
	Clear()
}

// LoaderFunc loads the value of a missing key
type LoaderFunc func() ([]byte, error)

// GetOrLoad returns the cached value for key or calls loader and caches its result.
// The boolean reports whether the value came from cache. Loader errors are returned
// unchanged and nothing is cached.
func GetOrLoad(store Store, key string, durable bool, ttl time.Duration, loader LoaderFunc) ([]byte, bool, error) {
	if value, ok := store.Get(key); ok {
		return value, true, nil
	}

	value, err := loader()
	if err != nil {
		return nil, false, err
	}

	store.Set(key, value, durable, ttl)
	return value, false, nil
}

// BuildKey derives a cache key from a routing value, an endpoint path and query parameters.
// Parameters are encoded in sorted order so equal requests share a key.
func BuildKey(routing, path string, params url.Values) string {
	var sb strings.Builder
	sb.WriteString(strings.ToLower(routing))
	sb.WriteString(":")
	sb.WriteString(path)
	if len(params) > 0 {
		sb.WriteString("?")
		sb.WriteString(params.Encode())
	}
	return sb.String()
}
