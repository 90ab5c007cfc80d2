package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/reithediver/lol-smurfguard-sub000/events"
	"github.com/reithediver/lol-smurfguard-sub000/riot"
	mock_riot "github.com/reithediver/lol-smurfguard-sub000/riot/mocks"
	rc "github.com/reithediver/lol-smurfguard-sub000/riot_common"
)

func newTestServer(t *testing.T) (*Server, *mock_riot.MockAPIClient, *events.SubscriptionManager[rc.BatchProgress]) {
	t.Helper()
	ctrl := gomock.NewController(t)
	client := mock_riot.NewMockAPIClient(ctrl)
	progress := events.NewSubscriptionManager[rc.BatchProgress]()
	return New("0", client, progress, nil), client, progress
}

func serve(s *Server, method, target string) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	s.Router().ServeHTTP(recorder, httptest.NewRequest(method, target, nil))
	return recorder
}

func TestHandleHealth(t *testing.T) {
	s, client, _ := newTestServer(t)
	client.EXPECT().Healthy().Return(true)

	recorder := serve(s, http.MethodGet, "/health")

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"status":"ok","services":{"riot":"up"}}`, recorder.Body.String())
}

func TestHandleStats(t *testing.T) {
	s, client, _ := newTestServer(t)
	client.EXPECT().Stats().Return(riot.Stats{Fetches: 7, CacheHits: 3})

	recorder := serve(s, http.MethodGet, "/api/v1/stats")

	require.Equal(t, http.StatusOK, recorder.Code)
	var stats riot.Stats
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &stats))
	assert.Equal(t, int64(7), stats.Fetches)
	assert.Equal(t, int64(3), stats.CacheHits)
}

func TestHandleAccount(t *testing.T) {
	s, client, _ := newTestServer(t)
	payload := []byte(`{"puuid":"p1","gameName":"Hide on bush","tagLine":"KR1"}`)
	client.EXPECT().GetAccountByRiotID(gomock.Any(), "Hide on bush", "KR1").Return(payload, nil)

	recorder := serve(s, http.MethodGet, "/api/v1/accounts/Hide%20on%20bush/KR1")

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, string(payload), recorder.Body.String())
	assert.NotEmpty(t, recorder.Header().Get("ETag"))
}

func TestHandleAccount_NotFound(t *testing.T) {
	s, client, _ := newTestServer(t)
	client.EXPECT().GetAccountByRiotID(gomock.Any(), "ghost", "NA1").
		Return(nil, &rc.UpstreamError{Kind: rc.KindNotFound, StatusCode: 404, Path: "/riot/account/v1/accounts/by-riot-id/ghost/NA1"})

	recorder := serve(s, http.MethodGet, "/api/v1/accounts/ghost/NA1")

	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestHandlePlayerMatches(t *testing.T) {
	s, client, _ := newTestServer(t)

	gomock.InOrder(
		client.EXPECT().GetAccountByRiotID(gomock.Any(), "Faker", "KR1").
			Return([]byte(`{"puuid":"p1","gameName":"Faker","tagLine":"KR1"}`), nil),
		client.EXPECT().GetMatchIDs(gomock.Any(), "p1", riot.MatchListQuery{Count: 3}).
			Return([]byte(`["KR_1","KR_2","KR_3"]`), nil),
		client.EXPECT().FetchMatches(gomock.Any(), []string{"KR_1", "KR_2", "KR_3"}).
			Return(&rc.BatchResult[[]byte]{
				JobID:   "job-1",
				IDs:     []string{"KR_1", "KR_2", "KR_3"},
				Results: map[string][]byte{"KR_1": []byte(`{"m":1}`), "KR_2": []byte(`{"m":2}`)},
				Failures: map[string]error{
					"KR_3": &rc.UpstreamError{Kind: rc.KindServer, StatusCode: 503, Path: "/lol/match/v5/matches/KR_3"},
				},
			}),
	)

	recorder := serve(s, http.MethodGet, "/api/v1/players/Faker/KR1/matches?count=3")

	require.Equal(t, http.StatusOK, recorder.Code)
	var response MatchesResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	assert.Equal(t, "job-1", response.JobID)
	assert.Equal(t, "p1", response.PUUID)
	assert.Equal(t, 3, response.Requested)
	assert.Equal(t, 2, response.Succeeded)
	assert.Equal(t, 1, response.Failed)
	assert.JSONEq(t, `{"m":1}`, string(response.Results["KR_1"]))
	assert.Contains(t, response.Failures["KR_3"], "returned status 503")
}

func TestHandlePlayerMatches_BadCount(t *testing.T) {
	s, _, _ := newTestServer(t)

	recorder := serve(s, http.MethodGet, "/api/v1/players/Faker/KR1/matches?count=zero")

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestHandlePlayerMatches_RateLimitExhausted(t *testing.T) {
	s, client, _ := newTestServer(t)
	client.EXPECT().GetAccountByRiotID(gomock.Any(), "Faker", "KR1").
		Return(nil, &rc.UpstreamError{Kind: rc.KindRateLimited, StatusCode: 429, Path: "/riot/account/v1/accounts/by-riot-id/Faker/KR1"})

	recorder := serve(s, http.MethodGet, "/api/v1/players/Faker/KR1/matches")

	assert.Equal(t, http.StatusTooManyRequests, recorder.Code)
}

func TestHandleProgress_StreamsEvents(t *testing.T) {
	s, _, progress := newTestServer(t)
	server := httptest.NewServer(s.Router())
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws/progress"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)

	require.Eventually(t, func() bool { return progress.Count() == 1 }, time.Second, 5*time.Millisecond)

	event := rc.BatchProgress{JobID: "job-1", ID: "NA1_1", Completed: 1, Total: 2, Succeeded: 1}
	progress.Emit(context.Background(), event)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(time.Second)))
	var got rc.BatchProgress
	require.NoError(t, conn.ReadJSON(&got))
	assert.Equal(t, event, got)

	require.NoError(t, conn.Close())
	assert.Eventually(t, func() bool { return progress.Count() == 0 }, time.Second, 5*time.Millisecond)
}

func TestRouter_NoProgressRouteWithoutManager(t *testing.T) {
	ctrl := gomock.NewController(t)
	s := New("0", mock_riot.NewMockAPIClient(ctrl), nil, nil)

	recorder := serve(s, http.MethodGet, "/ws/progress")

	assert.Equal(t, http.StatusNotFound, recorder.Code)
}
