package riot_common

import (
	"context"
	"reflect"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/reithediver/lol-smurfguard-sub000/clock"
	"github.com/reithediver/lol-smurfguard-sub000/config"
)

// IRateLimiterManager admits upstream requests per endpoint class
//
//go:generate mockgen -destination=mocks/rate_limiter_manager.go . IRateLimiterManager
type IRateLimiterManager interface {
	// Acquire waits until a request of class may be sent and returns the time waited
	Acquire(ctx context.Context, class EndpointClass) (time.Duration, error)
	SetLimits(limits map[string][]config.RateLimitWindow)
	Reset()
	Snapshot() []ClassUsage
}

// ClassUsage reports window occupancy for one endpoint class
type ClassUsage struct {
	Class   EndpointClass `json:"class"`
	Windows []WindowUsage `json:"windows"`
}

// RateLimiterManager owns one sliding-window limiter per endpoint class
type RateLimiterManager struct {
	mu       sync.RWMutex
	limiters map[EndpointClass]*SlidingWindowLimiter
	limits   map[string][]config.RateLimitWindow
	clock    clock.Clock
	logger   *zap.Logger
}

var _ IRateLimiterManager = (*RateLimiterManager)(nil)

// NewRateLimiterManager creates a manager for the given window tables. Classes missing
// from limits use the built-in defaults.
func NewRateLimiterManager(limits map[string][]config.RateLimitWindow, clk clock.Clock, logger *zap.Logger) *RateLimiterManager {
	if clk == nil {
		clk = clock.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &RateLimiterManager{
		limiters: make(map[EndpointClass]*SlidingWindowLimiter),
		limits:   mergeLimits(limits),
		clock:    clk,
		logger:   logger.Named("ratelimit"),
	}
}

func mergeLimits(limits map[string][]config.RateLimitWindow) map[string][]config.RateLimitWindow {
	merged := config.DefaultRateLimits()
	for class, windows := range limits {
		if len(windows) > 0 {
			merged[class] = windows
		}
	}
	return merged
}

// Acquire implements IRateLimiterManager
func (m *RateLimiterManager) Acquire(ctx context.Context, class EndpointClass) (time.Duration, error) {
	return m.limiterFor(class).Acquire(ctx)
}

// limiterFor returns the limiter of class, creating it if missing. Classes without a
// table share the default limiter.
func (m *RateLimiterManager) limiterFor(class EndpointClass) *SlidingWindowLimiter {
	m.mu.RLock()
	if lim, ok := m.limiters[class]; ok {
		m.mu.RUnlock()
		return lim
	}
	if _, ok := m.limits[string(class)]; !ok {
		class = ClassDefault
		if lim, ok := m.limiters[class]; ok {
			m.mu.RUnlock()
			return lim
		}
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	if lim, ok := m.limiters[class]; ok {
		return lim
	}

	limiter := NewSlidingWindowLimiter(class, m.limits[string(class)], m.clock, m.logger)
	m.limiters[class] = limiter
	return limiter
}

// SetLimits applies new window tables and rebuilds limiters of classes whose table changed.
// A rebuilt limiter starts with an empty ledger.
func (m *RateLimiterManager) SetLimits(limits map[string][]config.RateLimitWindow) {
	m.mu.Lock()
	defer m.mu.Unlock()

	newLimits := mergeLimits(limits)
	for class, limiter := range m.limiters {
		windows := newLimits[string(class)]
		if reflect.DeepEqual(limiter.Windows(), sortedWindows(windows)) {
			continue
		}
		m.limiters[class] = NewSlidingWindowLimiter(class, windows, m.clock, m.logger)
		m.logger.Info("rate limits updated", zap.String("class", string(class)))
	}
	m.limits = newLimits
}

// Reset clears every ledger
func (m *RateLimiterManager) Reset() {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, limiter := range m.limiters {
		limiter.Reset()
	}
}

// Snapshot returns current window usage for every configured class, sorted by class
func (m *RateLimiterManager) Snapshot() []ClassUsage {
	m.mu.RLock()
	classes := make([]string, 0, len(m.limits))
	for class := range m.limits {
		classes = append(classes, class)
	}
	m.mu.RUnlock()
	sort.Strings(classes)

	result := make([]ClassUsage, 0, len(classes))
	for _, class := range classes {
		result = append(result, ClassUsage{
			Class:   EndpointClass(class),
			Windows: m.limiterFor(EndpointClass(class)).Usage(),
		})
	}
	return result
}

// sortedWindows copies windows ordered by duration. A ceiling below one
// request is raised to one.
func sortedWindows(windows []config.RateLimitWindow) []config.RateLimitWindow {
	out := make([]config.RateLimitWindow, len(windows))
	copy(out, windows)
	for i := range out {
		if out[i].MaxRequests < 1 {
			out[i].MaxRequests = 1
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Duration < out[j].Duration })
	return out
}
