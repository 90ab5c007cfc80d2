package config

import (
	"fmt"
	"time"
)

// Endpoint class names used as keys of Config.RateLimits
const (
	ClassAccount  = "account"
	ClassSummoner = "summoner"
	ClassMatch    = "match"
	ClassMastery  = "mastery"
	ClassLeague   = "league"
	ClassDefault  = "default"
)

// RateLimitWindow is one rolling window: at most MaxRequests within Duration
type RateLimitWindow struct {
	Duration    time.Duration `yaml:"duration"`
	MaxRequests int           `yaml:"max_requests"`
}

// String formats the window as "20/1s"
func (w RateLimitWindow) String() string {
	return fmt.Sprintf("%d/%s", w.MaxRequests, w.Duration)
}

// defaultWindows is a conservative personal-key table; all four must hold at once
func defaultWindows() []RateLimitWindow {
	return []RateLimitWindow{
		{Duration: time.Second, MaxRequests: 20},
		{Duration: 10 * time.Second, MaxRequests: 100},
		{Duration: time.Minute, MaxRequests: 300},
		{Duration: 10 * time.Minute, MaxRequests: 1500},
	}
}

// DefaultRateLimits returns the default window table for every endpoint class
func DefaultRateLimits() map[string][]RateLimitWindow {
	classes := []string{ClassAccount, ClassSummoner, ClassMatch, ClassMastery, ClassLeague, ClassDefault}

	result := make(map[string][]RateLimitWindow, len(classes))
	for _, class := range classes {
		result[class] = defaultWindows()
	}

	// Match-v5 is the hottest class during an analysis run; keep it below the app ceiling
	result[ClassMatch] = []RateLimitWindow{
		{Duration: time.Second, MaxRequests: 15},
		{Duration: 10 * time.Second, MaxRequests: 80},
		{Duration: time.Minute, MaxRequests: 250},
		{Duration: 10 * time.Minute, MaxRequests: 1200},
	}

	return result
}

func validateWindows(class string, windows []RateLimitWindow) error {
	if len(windows) == 0 {
		return fmt.Errorf("rate_limits '%s': at least one window is required", class)
	}

	seen := make(map[time.Duration]struct{}, len(windows))
	for i, w := range windows {
		if w.Duration <= 0 {
			return fmt.Errorf("rate_limits '%s' window %d: duration must be greater than 0", class, i)
		}
		if w.MaxRequests <= 0 {
			return fmt.Errorf("rate_limits '%s' window %d: max_requests must be greater than 0", class, i)
		}
		if _, dup := seen[w.Duration]; dup {
			return fmt.Errorf("rate_limits '%s': duplicate window duration %s", class, w.Duration)
		}
		seen[w.Duration] = struct{}{}
	}

	return nil
}
