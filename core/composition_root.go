package core

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/reithediver/lol-smurfguard-sub000/api"
	"github.com/reithediver/lol-smurfguard-sub000/cache"
	"github.com/reithediver/lol-smurfguard-sub000/clock"
	"github.com/reithediver/lol-smurfguard-sub000/config"
	"github.com/reithediver/lol-smurfguard-sub000/riot"
	rc "github.com/reithediver/lol-smurfguard-sub000/riot_common"
)

// Components is the wired data-access core without the HTTP surface
type Components struct {
	Cache   *cache.Service
	Limiter *rc.RateLimiterManager
	Riot    *riot.Service
}

// Build creates the cache, rate limiter and Riot client. One limiter manager is
// shared by every caller so the ledgers see all outgoing traffic.
func Build(ctx context.Context, cfg *config.Config, clk clock.Clock, logger *zap.Logger) (*Components, error) {
	if clk == nil {
		clk = clock.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	durable, err := cache.NewDurableBackend(ctx, cfg.Cache.Durable)
	if err != nil {
		return nil, fmt.Errorf("failed to create durable cache backend: %w", err)
	}

	cacheService := cache.NewService(cfg.Cache, durable, clk, logger)
	limiter := rc.NewRateLimiterManager(cfg.RateLimits, clk, logger)
	riotService := riot.NewService(cfg, cacheService, limiter, clk, logger)

	return &Components{
		Cache:   cacheService,
		Limiter: limiter,
		Riot:    riotService,
	}, nil
}

// Register adds the components to registry in start order
func (c *Components) Register(registry *Registry) {
	registry.Register(c.Cache)
	registry.Register(c.Riot)
}

// Setup creates and registers all services, including the HTTP server
func Setup(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Registry, error) {
	components, err := Build(ctx, cfg, nil, logger)
	if err != nil {
		return nil, err
	}

	registry := NewRegistry(logger)
	components.Register(registry)

	// Create HTTP server and register it as a core
	server := api.New(cfg.Server.Port, components.Riot, components.Riot.Progress(), logger)
	registry.Register(server)

	return registry, nil
}
