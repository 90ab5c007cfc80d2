package cache

import (
	"context"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/reithediver/lol-smurfguard-sub000/clock"
	"github.com/reithediver/lol-smurfguard-sub000/metrics"
)

// Service implements Store with a go-cache volatile tier over an optional durable document
type Service struct {
	goCache *GoCache
	durable DurableBackend
	config  Config
	clock   clock.Clock
	logger  *zap.Logger

	// durableMu serializes every read-modify-write of the durable document
	durableMu sync.Mutex

	volatileHits atomic.Int64
	durableHits  atomic.Int64
	misses       atomic.Int64
	durableErrs  atomic.Int64
}

var _ Store = (*Service)(nil)

// NewService creates a new cache service. durable may be nil for a volatile-only cache.
func NewService(config Config, durable DurableBackend, clk clock.Clock, logger *zap.Logger) *Service {
	if clk == nil {
		clk = clock.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Service{
		goCache: NewGoCache(config.GoCache.DefaultExpiration, config.GoCache.CleanupInterval),
		durable: durable,
		config:  config,
		clock:   clk,
		logger:  logger.Named("cache"),
	}
}

// Start implements core.Interface
func (s *Service) Start(ctx context.Context) error {
	if s.goCache == nil {
		return fmt.Errorf("cache service not properly initialized")
	}
	return nil
}

// Stop implements core.Interface
func (s *Service) Stop() {
	if closer, ok := s.durable.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			s.logger.Warn("failed to close durable backend", zap.Error(err))
		}
	}
}

// Get checks the volatile tier, then the durable tier. A durable hit is promoted
// into the volatile tier for its remaining lifetime.
func (s *Service) Get(key string) ([]byte, bool) {
	now := s.clock.Now()

	if record, ok := s.goCache.Get(key); ok {
		if !record.Expired(now) {
			s.volatileHits.Add(1)
			metrics.RecordCacheLookup(string(TierVolatile), true)
			return record.Payload, true
		}
		s.goCache.Delete(key)
	}
	metrics.RecordCacheLookup(string(TierVolatile), false)

	if s.durable == nil {
		s.misses.Add(1)
		return nil, false
	}

	s.durableMu.Lock()
	doc, err := s.durable.Load()
	s.durableMu.Unlock()
	if err != nil {
		s.onDurableError("load", err)
		s.misses.Add(1)
		return nil, false
	}

	record, ok := doc[key]
	if !ok || record.Expired(now) {
		metrics.RecordCacheLookup(string(TierDurable), false)
		s.misses.Add(1)
		return nil, false
	}

	record.Tier = TierVolatile
	s.goCache.Set(key, record, record.Remaining(now))
	s.durableHits.Add(1)
	metrics.RecordCacheLookup(string(TierDurable), true)

	return record.Payload, true
}

// Set always writes the volatile tier. With durable it also rewrites the durable
// document, pruning every expired entry on the way.
func (s *Service) Set(key string, value []byte, durable bool, ttl time.Duration) {
	if ttl <= 0 {
		ttl = s.config.GoCache.DefaultExpiration
	}

	now := s.clock.Now()
	payload := make([]byte, len(value))
	copy(payload, value)

	record := Record{
		Key:       key,
		Payload:   payload,
		CreatedAt: now.UnixMilli(),
		ExpiresAt: now.Add(ttl).UnixMilli(),
		Tier:      TierVolatile,
	}
	s.goCache.Set(key, record, ttl)

	if !durable || s.durable == nil {
		return
	}

	record.Tier = TierDurable
	s.durableMu.Lock()
	defer s.durableMu.Unlock()

	doc, err := s.durable.Load()
	if err != nil {
		// An unreadable document is replaced rather than kept unusable
		s.onDurableError("load", err)
		doc = make(map[string]Record)
	}

	if removed := pruneExpired(doc, now); removed > 0 {
		s.logger.Debug("compacted durable document on write", zap.Int("removed", removed))
	}
	doc[key] = record

	if err := s.durable.Save(doc); err != nil {
		s.onDurableError("save", err)
		return
	}
	metrics.RecordCacheSize(string(TierDurable), len(doc))
}

// Clear removes all items from both tiers
func (s *Service) Clear() {
	s.goCache.Clear()

	if s.durable == nil {
		return
	}

	s.durableMu.Lock()
	defer s.durableMu.Unlock()
	if err := s.durable.Save(make(map[string]Record)); err != nil {
		s.onDurableError("save", err)
	}
}

// Compact prunes expired entries from the durable document and returns how many were removed
func (s *Service) Compact() int {
	s.goCache.DeleteExpired()
	metrics.RecordCacheSize(string(TierVolatile), s.goCache.ItemCount())

	if s.durable == nil {
		return 0
	}

	s.durableMu.Lock()
	defer s.durableMu.Unlock()

	doc, err := s.durable.Load()
	if err != nil {
		s.onDurableError("load", err)
		return 0
	}

	removed := pruneExpired(doc, s.clock.Now())
	if removed == 0 {
		return 0
	}

	if err := s.durable.Save(doc); err != nil {
		s.onDurableError("save", err)
		return 0
	}

	metrics.RecordCacheSize(string(TierDurable), len(doc))
	s.logger.Info("compacted durable document", zap.Int("removed", removed), zap.Int("remaining", len(doc)))
	return removed
}

func (s *Service) onDurableError(operation string, err error) {
	s.durableErrs.Add(1)
	metrics.RecordCacheDurableError(operation)
	s.logger.Warn("durable cache unavailable, continuing without it",
		zap.String("operation", operation), zap.Error(err))
}

// Stats returns statistics about the cache service
func (s *Service) Stats() ServiceStats {
	stats := ServiceStats{
		VolatileItems:  s.goCache.ItemCount(),
		VolatileHits:   s.volatileHits.Load(),
		DurableHits:    s.durableHits.Load(),
		Misses:         s.misses.Load(),
		DurableErrors:  s.durableErrs.Load(),
		DurableEnabled: s.durable != nil,
	}

	if s.durable != nil {
		s.durableMu.Lock()
		doc, err := s.durable.Load()
		s.durableMu.Unlock()
		if err == nil {
			stats.DurableEntries = len(doc)
		}
	}

	return stats
}

// ServiceStats represents cache service statistics
type ServiceStats struct {
	VolatileItems  int   `json:"volatile_items"`
	DurableEntries int   `json:"durable_entries"`
	VolatileHits   int64 `json:"volatile_hits"`
	DurableHits    int64 `json:"durable_hits"`
	Misses         int64 `json:"misses"`
	DurableErrors  int64 `json:"durable_errors"`
	DurableEnabled bool  `json:"durable_enabled"`
}
