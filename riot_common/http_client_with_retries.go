package riot_common

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/reithediver/lol-smurfguard-sub000/clock"
	"github.com/reithediver/lol-smurfguard-sub000/config"
)

// RetryOptions configures retry behavior for upstream requests
type RetryOptions struct {
	MaxAttempts int
	BaseBackoff time.Duration

	// HonorRetryAfter sleeps for the server hint on 429 instead of the computed backoff
	HonorRetryAfter bool

	// RetryClientErrors retries non-429 4xx responses like any other failure
	RetryClientErrors bool

	// Jitter adds up to 50% to computed backoffs; server hints are never jittered
	Jitter bool

	ConnectionTimeout time.Duration // Timeout for establishing connection
	RequestTimeout    time.Duration // Total request timeout including reading response
}

// DefaultRetryOptions returns default retry options
func DefaultRetryOptions() RetryOptions {
	return RetryOptions{
		MaxAttempts:       3,
		BaseBackoff:       time.Second,
		HonorRetryAfter:   true,
		Jitter:            true,
		ConnectionTimeout: 10 * time.Second,
		RequestTimeout:    30 * time.Second,
	}
}

// RetryOptionsFromConfig builds options from the retry config section
func RetryOptionsFromConfig(cfg config.RetryConfig) RetryOptions {
	opts := DefaultRetryOptions()
	if cfg.MaxAttempts > 0 {
		opts.MaxAttempts = cfg.MaxAttempts
	}
	if cfg.BaseBackoff > 0 {
		opts.BaseBackoff = cfg.BaseBackoff
	}
	if cfg.ConnectionTimeout > 0 {
		opts.ConnectionTimeout = cfg.ConnectionTimeout
	}
	if cfg.RequestTimeout > 0 {
		opts.RequestTimeout = cfg.RequestTimeout
	}
	opts.HonorRetryAfter = cfg.ShouldHonorRetryAfter()
	opts.RetryClientErrors = cfg.RetryClientErrors
	return opts
}

// Operation performs one upstream attempt. Failures should be *UpstreamError;
// any other error is treated as a network failure.
type Operation func(ctx context.Context) ([]byte, error)

// HTTPClientWithRetries wraps an HTTP Client with rate limiting and retry capabilities
type HTTPClientWithRetries struct {
	Client         *http.Client
	Opts           RetryOptions
	StatusHandler  IHttpStatusHandler
	LimiterManager IRateLimiterManager

	clock  clock.Clock
	logger *zap.Logger
}

// NewHTTPClientWithRetries creates a new HTTP Client with retry capabilities
func NewHTTPClientWithRetries(opts RetryOptions, handler IHttpStatusHandler, limiterManager IRateLimiterManager, clk clock.Clock, logger *zap.Logger) *HTTPClientWithRetries {
	if clk == nil {
		clk = clock.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = 1
	}

	client := &http.Client{
		Timeout: opts.RequestTimeout,
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout: opts.ConnectionTimeout,
			}).DialContext,
		},
	}

	return &HTTPClientWithRetries{
		Client:         client,
		Opts:           opts,
		StatusHandler:  handler,
		LimiterManager: limiterManager,
		clock:          clk,
		logger:         logger.Named("executor"),
	}
}

// SetStatusHandler sets the status handler for this Client
func (c *HTTPClientWithRetries) SetStatusHandler(handler IHttpStatusHandler) {
	c.StatusHandler = handler
}

// ExecuteRequest sends a GET for req with retries. The endpoint class is derived from the path.
func (c *HTTPClientWithRetries) ExecuteRequest(ctx context.Context, req *http.Request) ([]byte, error) {
	class := ClassifyPath(req.URL.Path)
	return c.Execute(ctx, class, func(ctx context.Context) ([]byte, error) {
		return c.do(req.Clone(ctx))
	})
}

// Execute runs op until it succeeds, fails with a non-retryable error or runs out of attempts.
// Every attempt is admitted by the rate limiter of class first.
func (c *HTTPClientWithRetries) Execute(ctx context.Context, class EndpointClass, op Operation) ([]byte, error) {
	var lastErr *UpstreamError

	for attempt := 0; attempt < c.Opts.MaxAttempts; attempt++ {
		if attempt > 0 {
			if c.StatusHandler != nil {
				c.StatusHandler.OnRetry()
			}

			backoff := c.backoffFor(lastErr, attempt-1)
			c.logger.Info("retrying upstream request",
				zap.String("class", string(class)),
				zap.Int("attempt", attempt+1),
				zap.Int("max_attempts", c.Opts.MaxAttempts),
				zap.Duration("backoff", backoff),
				zap.Error(lastErr))

			if err := c.clock.Sleep(ctx, backoff); err != nil {
				return nil, fmt.Errorf("retry aborted after %d attempts: %w", attempt, err)
			}
		}

		if c.LimiterManager != nil {
			if _, err := c.LimiterManager.Acquire(ctx, class); err != nil {
				return nil, fmt.Errorf("rate limiter wait failed: %w", err)
			}
		}

		body, err := op(ctx)
		if err == nil {
			if c.StatusHandler != nil {
				c.StatusHandler.OnRequest("success")
			}
			return body, nil
		}

		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("request aborted: %w", ctxErr)
		}

		var upstreamErr *UpstreamError
		if !errors.As(err, &upstreamErr) {
			upstreamErr = &UpstreamError{Kind: KindNetwork, Path: string(class), Err: err}
		}
		lastErr = upstreamErr

		if c.StatusHandler != nil {
			c.StatusHandler.OnRequest(upstreamErr.Kind.String())
		}

		if !upstreamErr.Retryable(c.Opts.RetryClientErrors) {
			return nil, upstreamErr
		}
	}

	c.logger.Warn("upstream request failed after all attempts",
		zap.String("class", string(class)),
		zap.Int("attempts", c.Opts.MaxAttempts),
		zap.Error(lastErr))

	return nil, fmt.Errorf("all %d attempts failed, last error: %w", c.Opts.MaxAttempts, lastErr)
}

// backoffFor returns the wait after the failed attempt with index attempt (0-based)
func (c *HTTPClientWithRetries) backoffFor(lastErr *UpstreamError, attempt int) time.Duration {
	if c.Opts.HonorRetryAfter && lastErr != nil && lastErr.Kind == KindRateLimited && lastErr.RetryAfter > 0 {
		return lastErr.RetryAfter
	}
	backoff := calculateBackoff(c.Opts.BaseBackoff, attempt)
	if c.Opts.Jitter {
		backoff = addJitter(backoff)
	}
	return backoff
}

// do performs one HTTP exchange and classifies the response
func (c *HTTPClientWithRetries) do(req *http.Request) ([]byte, error) {
	requestStart := c.clock.Now()

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, &UpstreamError{Kind: KindNetwork, Path: req.URL.Path, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &UpstreamError{Kind: KindNetwork, Path: req.URL.Path, Err: fmt.Errorf("error reading response: %w", err)}
	}

	c.logger.Debug("upstream response",
		zap.String("path", req.URL.Path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", c.clock.Now().Sub(requestStart)))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		retryAfter := parseRetryAfter(resp.Header.Get(RetryAfterHeader), c.clock.Now())
		return nil, newStatusError(req.URL.Path, resp.StatusCode, body, retryAfter)
	}

	return body, nil
}

// maxBackoff caps the computed wait between attempts
const maxBackoff = 10 * time.Minute

// calculateBackoff returns base * 2^attempt, saturating at maxBackoff
func calculateBackoff(base time.Duration, attempt int) time.Duration {
	backoff := base
	for i := 0; i < attempt && backoff < maxBackoff; i++ {
		backoff *= 2
	}
	if backoff > maxBackoff {
		return maxBackoff
	}
	return backoff
}

func addJitter(backoff time.Duration) time.Duration {
	if backoff < 2 {
		return backoff
	}
	return backoff + time.Duration(rand.Int63n(int64(backoff/2)))
}

// parseRetryAfter accepts delay-seconds or an HTTP date. Unusable values yield 0.
func parseRetryAfter(value string, now time.Time) time.Duration {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0
	}

	if seconds, err := strconv.Atoi(value); err == nil {
		if seconds <= 0 {
			return 0
		}
		return time.Duration(seconds) * time.Second
	}

	if at, err := http.ParseTime(value); err == nil {
		if wait := at.Sub(now); wait > 0 {
			return wait
		}
	}
	return 0
}
