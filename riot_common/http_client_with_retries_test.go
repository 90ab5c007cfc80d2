package riot_common_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/reithediver/lol-smurfguard-sub000/clock"
	"github.com/reithediver/lol-smurfguard-sub000/config"
	"github.com/reithediver/lol-smurfguard-sub000/riot_common"
	mock_riot_common "github.com/reithediver/lol-smurfguard-sub000/riot_common/mocks"
)

func testOptions() riot_common.RetryOptions {
	opts := riot_common.DefaultRetryOptions()
	opts.MaxAttempts = 3
	opts.BaseBackoff = time.Second
	opts.Jitter = false
	return opts
}

func newTestClient(t *testing.T, opts riot_common.RetryOptions, manager riot_common.IRateLimiterManager) (*riot_common.HTTPClientWithRetries, *clock.Fake) {
	t.Helper()
	clk := clock.NewFake(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC))
	return riot_common.NewHTTPClientWithRetries(opts, nil, manager, clk, nil), clk
}

// rateLimitedThenOK fails with 429 carrying hints[i] for the first len(hints) calls
func rateLimitedThenOK(hints []time.Duration, calls *int) riot_common.Operation {
	return func(ctx context.Context) ([]byte, error) {
		*calls++
		if *calls <= len(hints) {
			return nil, &riot_common.UpstreamError{Kind: riot_common.KindRateLimited, StatusCode: 429, Path: "/lol/match/v5/matches/X", RetryAfter: hints[*calls-1]}
		}
		return []byte(`{"ok":true}`), nil
	}
}

func TestExecute_RetryBoundary(t *testing.T) {
	hints := []time.Duration{2 * time.Second, 3 * time.Second, 5 * time.Second, 7 * time.Second}

	tests := []struct {
		name          string
		failures      int
		wantErr       bool
		wantCalls     int
		wantTotalWait time.Duration
	}{
		{name: "no failures", failures: 0, wantCalls: 1},
		{name: "one 429", failures: 1, wantCalls: 2, wantTotalWait: 2 * time.Second},
		{name: "max attempts minus one", failures: 2, wantCalls: 3, wantTotalWait: 5 * time.Second},
		{name: "exactly max attempts", failures: 3, wantErr: true, wantCalls: 3, wantTotalWait: 5 * time.Second},
		{name: "more than max attempts", failures: 4, wantErr: true, wantCalls: 3, wantTotalWait: 5 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			manager := mock_riot_common.NewMockIRateLimiterManager(ctrl)
			manager.EXPECT().Acquire(gomock.Any(), riot_common.ClassMatch).Return(time.Duration(0), nil).Times(tt.wantCalls)

			client, clk := newTestClient(t, testOptions(), manager)

			calls := 0
			body, err := client.Execute(context.Background(), riot_common.ClassMatch, rateLimitedThenOK(hints[:tt.failures], &calls))

			assert.Equal(t, tt.wantCalls, calls)
			assert.Equal(t, tt.wantTotalWait, clk.TotalSlept(), "waits equal the server hints")
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, riot_common.ErrUpstreamRateLimitExhausted)
				assert.Nil(t, body)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, []byte(`{"ok":true}`), body)
		})
	}
}

func TestExecute_RateLimitWithoutHintUsesBackoff(t *testing.T) {
	client, clk := newTestClient(t, testOptions(), nil)

	_, err := client.Execute(context.Background(), riot_common.ClassMatch, func(ctx context.Context) ([]byte, error) {
		return nil, &riot_common.UpstreamError{Kind: riot_common.KindRateLimited, StatusCode: 429}
	})

	assert.ErrorIs(t, err, riot_common.ErrUpstreamRateLimitExhausted)
	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second}, clk.Sleeps())
}

func TestExecute_IgnoresHintWhenNotHonored(t *testing.T) {
	opts := testOptions()
	opts.HonorRetryAfter = false
	client, clk := newTestClient(t, opts, nil)

	calls := 0
	_, err := client.Execute(context.Background(), riot_common.ClassMatch, rateLimitedThenOK([]time.Duration{30 * time.Second}, &calls))

	require.NoError(t, err)
	assert.Equal(t, []time.Duration{time.Second}, clk.Sleeps())
}

func TestExecute_NotFoundFailsFast(t *testing.T) {
	ctrl := gomock.NewController(t)
	manager := mock_riot_common.NewMockIRateLimiterManager(ctrl)
	manager.EXPECT().Acquire(gomock.Any(), riot_common.ClassSummoner).Return(time.Duration(0), nil).Times(1)

	client, clk := newTestClient(t, testOptions(), manager)

	calls := 0
	_, err := client.Execute(context.Background(), riot_common.ClassSummoner, func(ctx context.Context) ([]byte, error) {
		calls++
		return nil, &riot_common.UpstreamError{Kind: riot_common.KindNotFound, StatusCode: 404, Path: "/lol/summoner/v4/summoners/by-puuid/x"}
	})

	assert.Equal(t, 1, calls)
	assert.ErrorIs(t, err, riot_common.ErrNotFound)
	assert.ErrorIs(t, err, riot_common.ErrUpstreamClient)
	assert.NotErrorIs(t, err, riot_common.ErrUpstreamRateLimitExhausted)
	assert.Empty(t, clk.Sleeps())
}

func TestExecute_RetryClientErrors(t *testing.T) {
	opts := testOptions()
	opts.RetryClientErrors = true
	client, _ := newTestClient(t, opts, nil)

	calls := 0
	_, err := client.Execute(context.Background(), riot_common.ClassSummoner, func(ctx context.Context) ([]byte, error) {
		calls++
		return nil, &riot_common.UpstreamError{Kind: riot_common.KindNotFound, StatusCode: 404}
	})

	assert.Equal(t, 3, calls)
	assert.ErrorIs(t, err, riot_common.ErrNotFound)
}

func TestExecute_ServerErrorThenSuccess(t *testing.T) {
	client, clk := newTestClient(t, testOptions(), nil)

	calls := 0
	body, err := client.Execute(context.Background(), riot_common.ClassLeague, func(ctx context.Context) ([]byte, error) {
		calls++
		if calls < 3 {
			return nil, &riot_common.UpstreamError{Kind: riot_common.KindServer, StatusCode: 503}
		}
		return []byte(`[]`), nil
	})

	require.NoError(t, err)
	assert.Equal(t, []byte(`[]`), body)
	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second}, clk.Sleeps())
}

func TestExecute_NetworkErrorIsRetried(t *testing.T) {
	client, _ := newTestClient(t, testOptions(), nil)

	calls := 0
	_, err := client.Execute(context.Background(), riot_common.ClassAccount, func(ctx context.Context) ([]byte, error) {
		calls++
		return nil, errors.New("connection reset by peer")
	})

	assert.Equal(t, 3, calls)
	assert.ErrorIs(t, err, riot_common.ErrNetwork)
	assert.Contains(t, err.Error(), "connection reset by peer")
}

func TestExecute_CancelledContextStopsRetries(t *testing.T) {
	client, _ := newTestClient(t, testOptions(), nil)
	ctx, cancel := context.WithCancel(context.Background())

	calls := 0
	_, err := client.Execute(ctx, riot_common.ClassMatch, func(ctx context.Context) ([]byte, error) {
		calls++
		cancel()
		return nil, &riot_common.UpstreamError{Kind: riot_common.KindServer, StatusCode: 500}
	})

	assert.Equal(t, 1, calls)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestExecute_LimiterErrorAborts(t *testing.T) {
	ctrl := gomock.NewController(t)
	manager := mock_riot_common.NewMockIRateLimiterManager(ctrl)
	manager.EXPECT().Acquire(gomock.Any(), riot_common.ClassMatch).Return(time.Duration(0), context.DeadlineExceeded)

	client, _ := newTestClient(t, testOptions(), manager)

	_, err := client.Execute(context.Background(), riot_common.ClassMatch, func(ctx context.Context) ([]byte, error) {
		t.Fatal("operation must not run without admission")
		return nil, nil
	})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

type countingHandler struct {
	requests map[string]int
	retries  int
}

func (h *countingHandler) OnRequest(status string) {
	h.requests[status]++
}

func (h *countingHandler) OnRetry() {
	h.retries++
}

func TestExecuteRequest_AgainstServer(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/lol/match/v5/matches/NA1_1":
			if hits.Add(1) == 1 {
				w.Header().Set("Retry-After", "4")
				w.WriteHeader(http.StatusTooManyRequests)
				return
			}
			fmt.Fprint(w, `{"metadata":{"matchId":"NA1_1"}}`)
		default:
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, `{"status":{"message":"Data not found"}}`)
		}
	}))
	defer server.Close()

	ctrl := gomock.NewController(t)
	manager := mock_riot_common.NewMockIRateLimiterManager(ctrl)
	manager.EXPECT().Acquire(gomock.Any(), riot_common.ClassMatch).Return(time.Duration(0), nil).Times(3)

	client, clk := newTestClient(t, testOptions(), manager)
	handler := &countingHandler{requests: make(map[string]int)}
	client.SetStatusHandler(handler)

	req, err := http.NewRequest(http.MethodGet, server.URL+"/lol/match/v5/matches/NA1_1", nil)
	require.NoError(t, err)

	body, err := client.ExecuteRequest(context.Background(), req)
	require.NoError(t, err)
	assert.JSONEq(t, `{"metadata":{"matchId":"NA1_1"}}`, string(body))
	assert.Equal(t, []time.Duration{4 * time.Second}, clk.Sleeps())

	req, err = http.NewRequest(http.MethodGet, server.URL+"/lol/match/v5/matches/NA1_404", nil)
	require.NoError(t, err)

	_, err = client.ExecuteRequest(context.Background(), req)
	var upstreamErr *riot_common.UpstreamError
	require.ErrorAs(t, err, &upstreamErr)
	assert.Equal(t, http.StatusNotFound, upstreamErr.StatusCode)
	assert.Equal(t, "/lol/match/v5/matches/NA1_404", upstreamErr.Path)
	assert.Contains(t, upstreamErr.Body, "Data not found")

	assert.Equal(t, map[string]int{"success": 1, "rate_limited": 1, "not_found": 1}, handler.requests)
	assert.Equal(t, 1, handler.retries)
}

func TestRetryOptionsFromConfig(t *testing.T) {
	honor := false
	opts := riot_common.RetryOptionsFromConfig(config.RetryConfig{
		MaxAttempts:       5,
		BaseBackoff:       250 * time.Millisecond,
		HonorRetryAfter:   &honor,
		RetryClientErrors: true,
	})
	assert.Equal(t, 5, opts.MaxAttempts)
	assert.Equal(t, 250*time.Millisecond, opts.BaseBackoff)
	assert.False(t, opts.HonorRetryAfter)
	assert.True(t, opts.RetryClientErrors)
	assert.Equal(t, 30*time.Second, opts.RequestTimeout, "zero values keep defaults")
}
