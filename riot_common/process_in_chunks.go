package riot_common

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/reithediver/lol-smurfguard-sub000/clock"
	"github.com/reithediver/lol-smurfguard-sub000/metrics"
)

// BatchOptions configures one batch fetch
type BatchOptions struct {
	// ConcurrencyLimit bounds the items in flight; it is also the chunk size
	ConcurrencyLimit int
	ChunkDelay       time.Duration

	// JobID labels logs and progress events; generated when empty
	JobID string

	// OnProgress is called after every item, serialized, with monotonically growing counts
	OnProgress func(BatchProgress)

	Clock  clock.Clock
	Logger *zap.Logger
}

// BatchProgress is reported after each item completes
type BatchProgress struct {
	JobID     string `json:"job_id"`
	ID        string `json:"id"`
	Completed int    `json:"completed"`
	Total     int    `json:"total"`
	Succeeded int    `json:"succeeded"`
	Failed    int    `json:"failed"`
	Error     string `json:"error,omitempty"`
}

// BatchResult holds every requested id exactly once, either in Results or in Failures
type BatchResult[T any] struct {
	JobID    string
	IDs      []string
	Results  map[string]T
	Failures map[string]error
}

// Requested returns the number of distinct ids in the batch
func (r *BatchResult[T]) Requested() int {
	return len(r.IDs)
}

func (r *BatchResult[T]) Succeeded() int {
	return len(r.Results)
}

func (r *BatchResult[T]) Failed() int {
	return len(r.Failures)
}

// Complete reports whether every id succeeded
func (r *BatchResult[T]) Complete() bool {
	return len(r.Failures) == 0 && len(r.Results) == len(r.IDs)
}

// FailureMessages returns the failures as strings, for serialization
func (r *BatchResult[T]) FailureMessages() map[string]string {
	out := make(map[string]string, len(r.Failures))
	for id, err := range r.Failures {
		out[id] = err.Error()
	}
	return out
}

// FetchBatch fetches ids in chunks of opts.ConcurrencyLimit. Each item fails on its own:
// a failure is recorded under its id and never aborts siblings or later chunks. When ctx
// is done the ids not yet started are recorded as failures with the context error.
func FetchBatch[T any](ctx context.Context, ids []string, opts BatchOptions, fetch func(context.Context, string) (T, error)) *BatchResult[T] {
	clk := opts.Clock
	if clk == nil {
		clk = clock.New()
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	limit := opts.ConcurrencyLimit
	if limit <= 0 {
		limit = 1
	}
	jobID := opts.JobID
	if jobID == "" {
		jobID = uuid.NewString()
	}

	unique := dedupe(ids)
	result := &BatchResult[T]{
		JobID:    jobID,
		IDs:      unique,
		Results:  make(map[string]T, len(unique)),
		Failures: make(map[string]error),
	}

	logger = logger.With(zap.String("job_id", jobID))
	logger.Info("batch started", zap.Int("items", len(unique)), zap.Int("concurrency", limit))
	start := clk.Now()

	var mu sync.Mutex
	completed := 0
	record := func(id string, value T, err error) {
		mu.Lock()
		defer mu.Unlock()

		progress := BatchProgress{JobID: jobID, ID: id, Total: len(unique)}
		if err != nil {
			result.Failures[id] = err
			progress.Error = err.Error()
		} else {
			result.Results[id] = value
		}
		completed++
		progress.Completed = completed
		progress.Succeeded = len(result.Results)
		progress.Failed = len(result.Failures)

		if opts.OnProgress != nil {
			opts.OnProgress(progress)
		}
	}

	err := processInChunks(ctx, clk, unique, limit, opts.ChunkDelay, func(ctx context.Context, chunk []string) error {
		var g errgroup.Group
		for _, id := range chunk {
			g.Go(func() error {
				value, err := safeFetch(ctx, id, fetch)
				record(id, value, err)
				return nil
			})
		}
		return g.Wait()
	})

	if err != nil {
		var zero T
		for _, id := range unique {
			mu.Lock()
			_, ok := result.Results[id]
			_, failed := result.Failures[id]
			mu.Unlock()
			if !ok && !failed {
				record(id, zero, fmt.Errorf("batch cancelled: %w", err))
			}
		}
		logger.Warn("batch cancelled", zap.Error(err))
	}

	duration := clk.Now().Sub(start)
	metrics.RecordBatch(result.Succeeded(), result.Failed(), duration)
	logger.Info("batch finished",
		zap.Int("requested", result.Requested()),
		zap.Int("succeeded", result.Succeeded()),
		zap.Int("failed", result.Failed()),
		zap.Duration("duration", duration))

	return result
}

// processInChunks runs fn over consecutive chunks of items, pausing delay between
// chunks. It stops early only when ctx is done.
func processInChunks(
	ctx context.Context,
	clk clock.Clock,
	items []string,
	chunkLimit int,
	delay time.Duration,
	fn func(context.Context, []string) error,
) error {
	if len(items) == 0 || chunkLimit <= 0 {
		return nil
	}

	isFirst := true
	for start := 0; start < len(items); start += chunkLimit {
		end := start + chunkLimit
		if end > len(items) {
			end = len(items)
		}
		chunk := items[start:end]

		if delay > 0 && !isFirst {
			if err := clk.Sleep(ctx, delay); err != nil {
				return err
			}
		}
		isFirst = false

		if err := ctx.Err(); err != nil {
			return err
		}

		if err := fn(ctx, chunk); err != nil {
			return fmt.Errorf("failed to process chunk: %w", err)
		}
	}

	return nil
}

// safeFetch converts a panicking fetch into an item failure
func safeFetch[T any](ctx context.Context, id string, fetch func(context.Context, string) (T, error)) (value T, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("fetch of %s panicked: %v", id, r)
		}
	}()
	return fetch(ctx, id)
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
