package riot

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/reithediver/lol-smurfguard-sub000/cache"
	"github.com/reithediver/lol-smurfguard-sub000/clock"
	"github.com/reithediver/lol-smurfguard-sub000/config"
	rc "github.com/reithediver/lol-smurfguard-sub000/riot_common"
	"github.com/reithediver/lol-smurfguard-sub000/scheduler"
)

// Service owns a Client and the periodic compaction of its durable cache
type Service struct {
	*Client

	cacheService *cache.Service
	compactor    *scheduler.Scheduler
	logger       *zap.Logger
}

// NewService creates the Riot data service. Compaction runs every
// cfg.Cache.Durable.CompactionInterval while the service is started.
func NewService(cfg *config.Config, cacheService *cache.Service, limiter rc.IRateLimiterManager, clk clock.Clock, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Service{
		Client:       NewClient(cfg, cacheService, limiter, clk, logger),
		cacheService: cacheService,
		logger:       logger.Named("riot"),
	}

	s.compactor = scheduler.New("cache-compaction", cfg.Cache.Durable.CompactionInterval, func(ctx context.Context) {
		s.compact()
	}, logger)

	return s
}

// Start implements core.Interface
func (s *Service) Start(ctx context.Context) error {
	if s.cacheService == nil {
		return fmt.Errorf("cache dependency not provided")
	}
	if s.config.APIKey == "" {
		s.logger.Warn("no Riot API key configured, upstream requests will be rejected")
	}

	s.compactor.Start(ctx, false)
	return nil
}

// Stop implements core.Interface
func (s *Service) Stop() {
	s.compactor.Stop()
}

func (s *Service) compact() int {
	removed := s.cacheService.Compact()
	if removed > 0 {
		s.logger.Debug("cache compaction finished", zap.Int("removed", removed))
	}
	return removed
}
