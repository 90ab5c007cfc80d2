package e2etest

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"

	rc "github.com/reithediver/lol-smurfguard-sub000/riot_common"
)

const (
	testAPIKey = "RGAPI-e2e-key"
	testPUUID  = "puuid-faker"
)

// MockServer emulates the platform and regional Riot hosts on one httptest server
type MockServer struct {
	server *httptest.Server

	mu sync.Mutex
	// FailingMatches answer with 500 on every attempt
	FailingMatches map[string]bool
	MatchIDs       []string
	requests       map[string]int
}

// NewMockServer creates and returns a new mock server
func NewMockServer() *MockServer {
	ms := &MockServer{
		FailingMatches: make(map[string]bool),
		MatchIDs:       []string{"KR_1", "KR_2", "KR_3", "KR_4", "KR_5"},
		requests:       make(map[string]int),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", ms.handleRequest)
	ms.server = httptest.NewServer(mux)

	return ms
}

// GetURL returns the base URL of the mock server
func (ms *MockServer) GetURL() string {
	return ms.server.URL
}

// Close closes the mock server
func (ms *MockServer) Close() {
	if ms.server != nil {
		ms.server.Close()
	}
}

// Requests returns how many times path was requested
func (ms *MockServer) Requests(path string) int {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	return ms.requests[path]
}

// SetFailingMatch makes matchID answer with 500
func (ms *MockServer) SetFailingMatch(matchID string) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.FailingMatches[matchID] = true
}

// handleRequest processes incoming requests and returns mock data
func (ms *MockServer) handleRequest(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path

	ms.mu.Lock()
	ms.requests[path]++
	matchIDs := ms.MatchIDs
	ms.mu.Unlock()

	if r.Header.Get(rc.RiotTokenHeader) != testAPIKey {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	switch {
	case path == "/riot/account/v1/accounts/by-riot-id/Faker/KR1":
		fmt.Fprintf(w, `{"puuid":%q,"gameName":"Faker","tagLine":"KR1"}`, testPUUID)
		return

	case path == "/lol/match/v5/matches/by-puuid/"+testPUUID+"/ids":
		count := len(matchIDs)
		if _, err := fmt.Sscanf(r.URL.Query().Get("count"), "%d", &count); err != nil || count > len(matchIDs) {
			count = len(matchIDs)
		}
		fmt.Fprintf(w, `["%s"]`, strings.Join(matchIDs[:count], `","`))
		return

	case strings.HasPrefix(path, "/lol/match/v5/matches/"):
		matchID := strings.TrimPrefix(path, "/lol/match/v5/matches/")
		ms.mu.Lock()
		failing := ms.FailingMatches[matchID]
		ms.mu.Unlock()
		if failing {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		fmt.Fprintf(w, `{"metadata":{"matchId":%q,"participants":[%q]}}`, matchID, testPUUID)
		return
	}

	// Return 404 for unknown paths
	w.WriteHeader(http.StatusNotFound)
	fmt.Fprint(w, `{"status":{"status_code":404,"message":"Data not found"}}`)
}
