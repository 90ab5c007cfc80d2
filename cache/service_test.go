package cache

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reithediver/lol-smurfguard-sub000/clock"
)

func newTestService(t *testing.T, durable DurableBackend) (*Service, *clock.Fake) {
	t.Helper()
	clk := clock.NewFake(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC))
	return NewService(DefaultCacheConfig(), durable, clk, nil), clk
}

func TestService_SetGet(t *testing.T) {
	service, _ := newTestService(t, nil)

	service.Set("na1:/lol/summoner/v4/summoners/by-puuid/abc", []byte(`{"id":"1"}`), false, time.Minute)

	value, ok := service.Get("na1:/lol/summoner/v4/summoners/by-puuid/abc")
	require.True(t, ok)
	assert.Equal(t, []byte(`{"id":"1"}`), value)

	_, ok = service.Get("missing")
	assert.False(t, ok)

	stats := service.Stats()
	assert.Equal(t, int64(1), stats.VolatileHits)
	assert.Equal(t, int64(1), stats.Misses)
	assert.False(t, stats.DurableEnabled)
}

func TestService_ExpiryUsesClock(t *testing.T) {
	service, clk := newTestService(t, nil)

	service.Set("key", []byte("value"), false, 10*time.Second)

	clk.Advance(9999 * time.Millisecond)
	_, ok := service.Get("key")
	assert.True(t, ok)

	clk.Advance(time.Millisecond)
	_, ok = service.Get("key")
	assert.False(t, ok, "a record is not served once now reaches its expiry")
}

func TestService_NonPositiveTTLUsesDefault(t *testing.T) {
	service, clk := newTestService(t, nil)

	service.Set("key", []byte("value"), false, 0)

	clk.Advance(DefaultCacheConfig().GoCache.DefaultExpiration - time.Second)
	_, ok := service.Get("key")
	assert.True(t, ok)

	clk.Advance(time.Second)
	_, ok = service.Get("key")
	assert.False(t, ok)
}

func TestService_DurableSurvivesRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")
	clk := clock.NewFake(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC))

	first := NewService(DefaultCacheConfig(), NewFileBackend(path), clk, nil)
	first.Set("americas:/riot/account/v1/accounts/by-puuid/p1", []byte(`{"puuid":"p1"}`), true, time.Hour)
	first.Set("volatile-only", []byte("x"), false, time.Hour)

	second := NewService(DefaultCacheConfig(), NewFileBackend(path), clk, nil)

	value, ok := second.Get("americas:/riot/account/v1/accounts/by-puuid/p1")
	require.True(t, ok)
	assert.Equal(t, []byte(`{"puuid":"p1"}`), value)

	_, ok = second.Get("volatile-only")
	assert.False(t, ok)

	stats := second.Stats()
	assert.Equal(t, int64(1), stats.DurableHits)
	assert.Equal(t, 1, stats.DurableEntries)
}

func TestService_DurablePayloadIsByteExact(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")
	clk := clock.NewFake(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC))
	payload := []byte("{\"gameName\": \"<Faker>\",\n  \"tag\": \"KR1 & co\"}\n")

	first := NewService(DefaultCacheConfig(), NewFileBackend(path), clk, nil)
	first.Set("asia:/riot/account/v1/accounts/by-riot-id/Faker/KR1", payload, true, time.Hour)

	second := NewService(DefaultCacheConfig(), NewFileBackend(path), clk, nil)
	value, ok := second.Get("asia:/riot/account/v1/accounts/by-riot-id/Faker/KR1")
	require.True(t, ok)
	assert.Equal(t, payload, value)

	// promoted copy in the volatile tier
	value, ok = second.Get("asia:/riot/account/v1/accounts/by-riot-id/Faker/KR1")
	require.True(t, ok)
	assert.Equal(t, payload, value)
	assert.Equal(t, int64(1), second.Stats().VolatileHits)
}

func TestService_DurableHitIsPromoted(t *testing.T) {
	backend := NewFileBackend(filepath.Join(t.TempDir(), "cache.json"))
	clk := clock.NewFake(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC))

	writer := NewService(DefaultCacheConfig(), backend, clk, nil)
	writer.Set("key", []byte(`"v"`), true, time.Minute)

	reader := NewService(DefaultCacheConfig(), backend, clk, nil)
	_, ok := reader.Get("key")
	require.True(t, ok)

	// Second read is served from the volatile tier
	_, ok = reader.Get("key")
	require.True(t, ok)
	stats := reader.Stats()
	assert.Equal(t, int64(1), stats.DurableHits)
	assert.Equal(t, int64(1), stats.VolatileHits)

	// The promoted copy keeps the original expiry
	clk.Advance(time.Minute)
	_, ok = reader.Get("key")
	assert.False(t, ok)
}

func TestService_WriteCompactsDurableDocument(t *testing.T) {
	backend := NewFileBackend(filepath.Join(t.TempDir(), "cache.json"))
	service, clk := newTestService(t, backend)

	service.Set("short", []byte(`1`), true, time.Second)
	service.Set("long", []byte(`2`), true, time.Hour)

	clk.Advance(2 * time.Second)
	service.Set("fresh", []byte(`3`), true, time.Hour)

	doc, err := backend.Load()
	require.NoError(t, err)
	assert.Len(t, doc, 2)
	assert.NotContains(t, doc, "short")
	assert.Contains(t, doc, "long")
	assert.Contains(t, doc, "fresh")
}

func TestService_Compact(t *testing.T) {
	backend := NewFileBackend(filepath.Join(t.TempDir(), "cache.json"))
	service, clk := newTestService(t, backend)

	service.Set("a", []byte(`1`), true, time.Second)
	service.Set("b", []byte(`2`), true, time.Second)
	service.Set("c", []byte(`3`), true, time.Hour)

	assert.Equal(t, 0, service.Compact())

	clk.Advance(time.Second)
	assert.Equal(t, 2, service.Compact())
	assert.Equal(t, 1, service.Stats().DurableEntries)
}

func TestService_CorruptDocumentFailsOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	service, _ := newTestService(t, NewFileBackend(path))

	_, ok := service.Get("key")
	assert.False(t, ok)

	// A write replaces the unreadable document
	service.Set("key", []byte(`"v"`), true, time.Hour)
	doc, err := NewFileBackend(path).Load()
	require.NoError(t, err)
	assert.Contains(t, doc, "key")
	assert.GreaterOrEqual(t, service.Stats().DurableErrors, int64(1))
}

func TestService_UnwritableBackendFailsOpen(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("file"), 0o644))

	// The parent of the document is a regular file, so every write fails
	service, _ := newTestService(t, NewFileBackend(filepath.Join(blocker, "cache.json")))

	service.Set("key", []byte(`"v"`), true, time.Hour)

	value, ok := service.Get("key")
	require.True(t, ok, "the volatile tier still serves the value")
	assert.Equal(t, []byte(`"v"`), value)
	assert.Greater(t, service.Stats().DurableErrors, int64(0))
}

func TestService_Clear(t *testing.T) {
	backend := NewFileBackend(filepath.Join(t.TempDir(), "cache.json"))
	service, _ := newTestService(t, backend)

	service.Set("a", []byte(`1`), true, time.Hour)
	service.Set("b", []byte(`2`), false, time.Hour)

	service.Clear()

	_, ok := service.Get("a")
	assert.False(t, ok)
	_, ok = service.Get("b")
	assert.False(t, ok)

	doc, err := backend.Load()
	require.NoError(t, err)
	assert.Empty(t, doc)
}

func TestService_StoredValueIsCopied(t *testing.T) {
	service, _ := newTestService(t, nil)

	value := []byte("original")
	service.Set("key", value, false, time.Minute)
	value[0] = 'X'

	got, ok := service.Get("key")
	require.True(t, ok)
	assert.Equal(t, []byte("original"), got)
}

func TestGetOrLoad(t *testing.T) {
	service, _ := newTestService(t, nil)

	calls := 0
	loader := func() ([]byte, error) {
		calls++
		return []byte("loaded"), nil
	}

	value, fromCache, err := GetOrLoad(service, "key", false, time.Minute, loader)
	require.NoError(t, err)
	assert.False(t, fromCache)
	assert.Equal(t, []byte("loaded"), value)

	value, fromCache, err = GetOrLoad(service, "key", false, time.Minute, loader)
	require.NoError(t, err)
	assert.True(t, fromCache)
	assert.Equal(t, []byte("loaded"), value)
	assert.Equal(t, 1, calls)
}

func TestGetOrLoad_LoaderError(t *testing.T) {
	service, _ := newTestService(t, nil)
	loadErr := errors.New("upstream down")

	_, _, err := GetOrLoad(service, "key", false, time.Minute, func() ([]byte, error) {
		return nil, loadErr
	})
	assert.ErrorIs(t, err, loadErr)

	_, ok := service.Get("key")
	assert.False(t, ok, "failed loads are not cached")
}

func TestBuildKey(t *testing.T) {
	tests := []struct {
		name    string
		routing string
		path    string
		params  map[string][]string
		want    string
	}{
		{
			name:    "no params",
			routing: "NA1",
			path:    "/lol/summoner/v4/summoners/by-puuid/abc",
			want:    "na1:/lol/summoner/v4/summoners/by-puuid/abc",
		},
		{
			name:    "params sorted",
			routing: "americas",
			path:    "/lol/match/v5/matches/by-puuid/abc/ids",
			params:  map[string][]string{"start": {"0"}, "count": {"20"}},
			want:    "americas:/lol/match/v5/matches/by-puuid/abc/ids?count=20&start=0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BuildKey(tt.routing, tt.path, tt.params))
		})
	}
}
