package riot

import (
	"context"
	"fmt"
	"net/url"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/reithediver/lol-smurfguard-sub000/cache"
	"github.com/reithediver/lol-smurfguard-sub000/clock"
	"github.com/reithediver/lol-smurfguard-sub000/config"
	"github.com/reithediver/lol-smurfguard-sub000/events"
	"github.com/reithediver/lol-smurfguard-sub000/metrics"
	rc "github.com/reithediver/lol-smurfguard-sub000/riot_common"
)

// APIClient is the data-access surface used by scoring and the HTTP layer.
// Payloads are the upstream JSON bodies, unmodified.
//
//go:generate mockgen -destination=mocks/api_client.go . APIClient
type APIClient interface {
	GetAccountByRiotID(ctx context.Context, gameName, tagLine string) ([]byte, error)
	GetAccountByPUUID(ctx context.Context, puuid string) ([]byte, error)
	GetSummonerByPUUID(ctx context.Context, puuid string) ([]byte, error)
	GetMatchIDs(ctx context.Context, puuid string, query MatchListQuery) ([]byte, error)
	GetMatch(ctx context.Context, matchID string) ([]byte, error)
	GetMatchTimeline(ctx context.Context, matchID string) ([]byte, error)
	GetChampionMasteries(ctx context.Context, puuid string) ([]byte, error)
	GetLeagueEntries(ctx context.Context, puuid string) ([]byte, error)

	// FetchMatches fetches many matches; every id ends up in Results or Failures
	FetchMatches(ctx context.Context, matchIDs []string) *rc.BatchResult[[]byte]
	FetchMatchTimelines(ctx context.Context, matchIDs []string) *rc.BatchResult[[]byte]

	// Reset clears rate limiter ledgers and both cache tiers
	Reset()
	Stats() Stats
	// Healthy reports whether at least one upstream fetch succeeded
	Healthy() bool
}

// Stats is a point-in-time view of the client
type Stats struct {
	Cache      *cache.ServiceStats `json:"cache,omitempty"`
	RateLimits []rc.ClassUsage     `json:"rate_limits"`
	Fetches    int64               `json:"fetches"`
	CacheHits  int64               `json:"cache_hits"`
}

// statsProvider is implemented by stores that report statistics
type statsProvider interface {
	Stats() cache.ServiceStats
}

// Client implements APIClient: cache lookup, then a rate-limited, retried upstream call,
// then a cache write with the resource's policy.
type Client struct {
	config     *config.Config
	store      cache.Store
	limiter    rc.IRateLimiterManager
	httpClient *rc.HTTPClientWithRetries
	progress   *events.SubscriptionManager[rc.BatchProgress]
	clock      clock.Clock
	logger     *zap.Logger

	// group coalesces concurrent misses of the same key into one upstream call
	group singleflight.Group

	fetches         atomic.Int64
	cacheHits       atomic.Int64
	successfulFetch atomic.Bool
}

var _ APIClient = (*Client)(nil)

// NewClient creates a Riot API client over store and limiter
func NewClient(cfg *config.Config, store cache.Store, limiter rc.IRateLimiterManager, clk clock.Clock, logger *zap.Logger) *Client {
	if clk == nil {
		clk = clock.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("riot")

	httpClient := rc.NewHTTPClientWithRetries(
		rc.RetryOptionsFromConfig(cfg.Retry),
		rc.NewHttpRequestMetricsWriter(metrics.ServiceRiot),
		limiter,
		clk,
		logger,
	)

	return &Client{
		config:     cfg,
		store:      store,
		limiter:    limiter,
		httpClient: httpClient,
		progress:   events.NewSubscriptionManager[rc.BatchProgress](),
		clock:      clk,
		logger:     logger,
	}
}

// Progress returns the batch progress event stream
func (c *Client) Progress() *events.SubscriptionManager[rc.BatchProgress] {
	return c.progress
}

// Healthy checks if the API has had at least one successful fetch
func (c *Client) Healthy() bool {
	return c.successfulFetch.Load()
}

func (c *Client) routingValue(routing Routing) string {
	if routing == RoutingPlatform {
		return c.config.Riot.Platform
	}
	return c.config.Riot.Region
}

func (c *Client) baseURL(routing Routing) string {
	switch routing {
	case RoutingPlatform:
		if c.config.Riot.OverridePlatformURL != "" {
			return c.config.Riot.OverridePlatformURL
		}
	case RoutingRegional:
		if c.config.Riot.OverrideRegionalURL != "" {
			return c.config.Riot.OverrideRegionalURL
		}
	}
	return fmt.Sprintf(RiotHostTemplate, c.routingValue(routing))
}

// fetch serves resource from cache or loads it upstream and caches it per the resource policy
func (c *Client) fetch(ctx context.Context, resource string, routing Routing, path string, params map[string]string) ([]byte, error) {
	rb := NewRequestBuilder(c.baseURL(routing), path).WithAPIKey(c.config.APIKey)
	for k, v := range params {
		rb.With(k, v)
	}

	key := cache.BuildKey(c.routingValue(routing), rb.Path(), rb.Params())
	if payload, ok := c.store.Get(key); ok {
		c.cacheHits.Add(1)
		return payload, nil
	}

	policy := c.config.Policy(resource)
	value, err, shared := c.group.Do(key, func() (interface{}, error) {
		// A coalesced caller may have filled the key while this one waited
		payload, cached, err := cache.GetOrLoad(c.store, key, policy.Durable, policy.TTL, func() ([]byte, error) {
			req, err := rb.Build(ctx)
			if err != nil {
				return nil, err
			}

			c.fetches.Add(1)
			payload, err := c.httpClient.ExecuteRequest(ctx, req)
			if err != nil {
				return nil, err
			}
			c.successfulFetch.Store(true)
			return payload, nil
		})
		if cached {
			c.cacheHits.Add(1)
		}
		return payload, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s %s: %w", resource, path, err)
	}

	if shared {
		c.logger.Debug("coalesced upstream fetch", zap.String("key", key))
	}
	return value.([]byte), nil
}

// GetAccountByRiotID fetches an account by game name and tag line
func (c *Client) GetAccountByRiotID(ctx context.Context, gameName, tagLine string) ([]byte, error) {
	path := fmt.Sprintf("/riot/account/v1/accounts/by-riot-id/%s/%s", url.PathEscape(gameName), url.PathEscape(tagLine))
	return c.fetch(ctx, config.ResourceAccount, RoutingRegional, path, nil)
}

func (c *Client) GetAccountByPUUID(ctx context.Context, puuid string) ([]byte, error) {
	path := "/riot/account/v1/accounts/by-puuid/" + url.PathEscape(puuid)
	return c.fetch(ctx, config.ResourceAccount, RoutingRegional, path, nil)
}

func (c *Client) GetSummonerByPUUID(ctx context.Context, puuid string) ([]byte, error) {
	path := "/lol/summoner/v4/summoners/by-puuid/" + url.PathEscape(puuid)
	return c.fetch(ctx, config.ResourceSummoner, RoutingPlatform, path, nil)
}

// GetMatchIDs fetches one page of match ids, most recent first
func (c *Client) GetMatchIDs(ctx context.Context, puuid string, query MatchListQuery) ([]byte, error) {
	path := fmt.Sprintf("/lol/match/v5/matches/by-puuid/%s/ids", url.PathEscape(puuid))
	return c.fetch(ctx, config.ResourceMatchIDs, RoutingRegional, path, query.params())
}

func (c *Client) GetMatch(ctx context.Context, matchID string) ([]byte, error) {
	path := "/lol/match/v5/matches/" + url.PathEscape(matchID)
	return c.fetch(ctx, config.ResourceMatch, RoutingRegional, path, nil)
}

func (c *Client) GetMatchTimeline(ctx context.Context, matchID string) ([]byte, error) {
	path := fmt.Sprintf("/lol/match/v5/matches/%s/timeline", url.PathEscape(matchID))
	return c.fetch(ctx, config.ResourceMatchTimeline, RoutingRegional, path, nil)
}

func (c *Client) GetChampionMasteries(ctx context.Context, puuid string) ([]byte, error) {
	path := "/lol/champion-mastery/v4/champion-masteries/by-puuid/" + url.PathEscape(puuid)
	return c.fetch(ctx, config.ResourceMastery, RoutingPlatform, path, nil)
}

func (c *Client) GetLeagueEntries(ctx context.Context, puuid string) ([]byte, error) {
	path := "/lol/league/v4/entries/by-puuid/" + url.PathEscape(puuid)
	return c.fetch(ctx, config.ResourceLeague, RoutingPlatform, path, nil)
}

// FetchMatches fetches matchIDs through the batch orchestrator
func (c *Client) FetchMatches(ctx context.Context, matchIDs []string) *rc.BatchResult[[]byte] {
	return c.fetchBatch(ctx, matchIDs, c.GetMatch)
}

// FetchMatchTimelines fetches timelines of matchIDs through the batch orchestrator
func (c *Client) FetchMatchTimelines(ctx context.Context, matchIDs []string) *rc.BatchResult[[]byte] {
	return c.fetchBatch(ctx, matchIDs, c.GetMatchTimeline)
}

func (c *Client) fetchBatch(ctx context.Context, ids []string, fetch func(context.Context, string) ([]byte, error)) *rc.BatchResult[[]byte] {
	return rc.FetchBatch(ctx, ids, rc.BatchOptions{
		ConcurrencyLimit: c.config.Batch.ConcurrencyLimit,
		ChunkDelay:       c.config.Batch.ChunkDelay,
		OnProgress: func(p rc.BatchProgress) {
			c.progress.Emit(ctx, p)
		},
		Clock:  c.clock,
		Logger: c.logger,
	}, fetch)
}

// Reset clears rate limiter ledgers and both cache tiers
func (c *Client) Reset() {
	if c.limiter != nil {
		c.limiter.Reset()
	}
	c.store.Clear()
	c.logger.Info("client state reset")
}

// Stats returns cache and rate limiter statistics
func (c *Client) Stats() Stats {
	stats := Stats{
		Fetches:   c.fetches.Load(),
		CacheHits: c.cacheHits.Load(),
	}
	if c.limiter != nil {
		stats.RateLimits = c.limiter.Snapshot()
	}
	if provider, ok := c.store.(statsProvider); ok {
		cacheStats := provider.Stats()
		stats.Cache = &cacheStats
	}
	return stats
}
