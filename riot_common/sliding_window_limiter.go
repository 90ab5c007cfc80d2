package riot_common

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/reithediver/lol-smurfguard-sub000/clock"
	"github.com/reithediver/lol-smurfguard-sub000/config"
	"github.com/reithediver/lol-smurfguard-sub000/metrics"
)

// SlidingWindowLimiter admits requests of one endpoint class against a ledger of
// admission timestamps. Every configured window must hold at the moment a new
// timestamp is appended.
type SlidingWindowLimiter struct {
	mu        sync.Mutex
	class     EndpointClass
	windows   []config.RateLimitWindow
	maxWindow time.Duration
	ledger    []time.Time

	clock   clock.Clock
	logger  *zap.Logger
	logWait *rate.Sometimes
}

// NewSlidingWindowLimiter creates a limiter for class. Windows are copied and sorted by duration.
func NewSlidingWindowLimiter(class EndpointClass, windows []config.RateLimitWindow, clk clock.Clock, logger *zap.Logger) *SlidingWindowLimiter {
	if clk == nil {
		clk = clock.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	sorted := sortedWindows(windows)

	var maxWindow time.Duration
	if len(sorted) > 0 {
		maxWindow = sorted[len(sorted)-1].Duration
	}

	return &SlidingWindowLimiter{
		class:     class,
		windows:   sorted,
		maxWindow: maxWindow,
		clock:     clk,
		logger:    logger,
		logWait:   &rate.Sometimes{First: 1, Interval: 10 * time.Second},
	}
}

// Acquire blocks until one more request fits every window, records it and returns
// the total time spent waiting. It only fails when ctx is done.
func (l *SlidingWindowLimiter) Acquire(ctx context.Context) (time.Duration, error) {
	start := l.clock.Now()

	for {
		l.mu.Lock()
		now := l.clock.Now()
		l.pruneLocked(now)
		wait := l.requiredWaitLocked(now)
		if wait <= 0 {
			l.ledger = append(l.ledger, now)
			l.mu.Unlock()

			waited := now.Sub(start)
			metrics.RecordRateLimitWait(string(l.class), waited)
			return waited, nil
		}
		l.mu.Unlock()

		l.logWait.Do(func() {
			l.logger.Info("rate limit window full, waiting",
				zap.String("class", string(l.class)),
				zap.Duration("wait", wait))
		})

		// The wait may not clear every window at once, so re-check after sleeping
		if err := l.clock.Sleep(ctx, wait); err != nil {
			return l.clock.Now().Sub(start), err
		}
	}
}

// pruneLocked drops entries that left the largest window
func (l *SlidingWindowLimiter) pruneLocked(now time.Time) {
	drop := 0
	for drop < len(l.ledger) && now.Sub(l.ledger[drop]) >= l.maxWindow {
		drop++
	}
	if drop > 0 {
		l.ledger = append(l.ledger[:0], l.ledger[drop:]...)
	}
}

// requiredWaitLocked returns the longest wait among windows at their ceiling, or 0
func (l *SlidingWindowLimiter) requiredWaitLocked(now time.Time) time.Duration {
	var maxWait time.Duration

	for _, w := range l.windows {
		inWindow := l.entriesWithin(now, w.Duration)
		count := len(inWindow)
		if count < w.MaxRequests {
			continue
		}

		// The entry that has to leave before one more fits under the ceiling
		boundary := inWindow[count-w.MaxRequests]
		wait := w.Duration - now.Sub(boundary)
		if wait > maxWait {
			maxWait = wait
		}
	}
	return maxWait
}

// entriesWithin returns the ledger suffix younger than d
func (l *SlidingWindowLimiter) entriesWithin(now time.Time, d time.Duration) []time.Time {
	idx := sort.Search(len(l.ledger), func(i int) bool {
		return now.Sub(l.ledger[i]) < d
	})
	return l.ledger[idx:]
}

// Usage returns the number of ledger entries inside each window at now
func (l *SlidingWindowLimiter) Usage() []WindowUsage {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.clock.Now()
	l.pruneLocked(now)

	usage := make([]WindowUsage, 0, len(l.windows))
	for _, w := range l.windows {
		usage = append(usage, WindowUsage{
			Window: w.Duration,
			Limit:  w.MaxRequests,
			Used:   len(l.entriesWithin(now, w.Duration)),
		})
	}
	return usage
}

// Windows returns the configured windows, shortest first
func (l *SlidingWindowLimiter) Windows() []config.RateLimitWindow {
	out := make([]config.RateLimitWindow, len(l.windows))
	copy(out, l.windows)
	return out
}

// Reset clears the ledger
func (l *SlidingWindowLimiter) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.ledger = nil
}

// WindowUsage is the occupancy of one window
type WindowUsage struct {
	Window time.Duration `json:"window"`
	Limit  int           `json:"limit"`
	Used   int           `json:"used"`
}
