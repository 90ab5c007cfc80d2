package config

import (
	"strings"
	"time"
)

// Resource names used as keys of Config.Resources
const (
	ResourceAccount       = "account"
	ResourceSummoner      = "summoner"
	ResourceMatchIDs      = "match_ids"
	ResourceMatch         = "match"
	ResourceMatchTimeline = "match_timeline"
	ResourceMastery       = "mastery"
	ResourceLeague        = "league"
)

// ResourcePolicy is the cache policy of one resource
type ResourcePolicy struct {
	TTL     time.Duration `yaml:"ttl"`
	Durable bool          `yaml:"durable"` // Also persist in the durable tier
}

// DefaultResourcePolicies returns cache policies per resource.
// Identity and finished-match data rarely change and go to the durable tier;
// collections and standings change often and stay volatile.
func DefaultResourcePolicies() map[string]ResourcePolicy {
	return map[string]ResourcePolicy{
		ResourceAccount:       {TTL: 24 * time.Hour, Durable: true},
		ResourceSummoner:      {TTL: 24 * time.Hour, Durable: true},
		ResourceMatchIDs:      {TTL: 5 * time.Minute},
		ResourceMatch:         {TTL: 7 * 24 * time.Hour, Durable: true},
		ResourceMatchTimeline: {TTL: 7 * 24 * time.Hour, Durable: true},
		ResourceMastery:       {TTL: time.Hour},
		ResourceLeague:        {TTL: 30 * time.Minute},
	}
}

// Policy returns the configured policy for a resource, falling back to defaults
func (c *Config) Policy(resource string) ResourcePolicy {
	if policy, ok := c.Resources[resource]; ok && policy.TTL > 0 {
		return policy
	}
	if policy, ok := DefaultResourcePolicies()[resource]; ok {
		return policy
	}
	return ResourcePolicy{TTL: 5 * time.Minute}
}

func firstLine(s string) string {
	if idx := strings.IndexAny(s, "\r\n"); idx >= 0 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}
