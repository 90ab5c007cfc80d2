package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/reithediver/lol-smurfguard-sub000/riot"
)

const (
	defaultMatchCount = 20
	maxMatchCount     = 100
)

// MatchesResponse is the body of the player matches endpoint
type MatchesResponse struct {
	JobID     string                     `json:"job_id"`
	PUUID     string                     `json:"puuid"`
	Requested int                        `json:"requested"`
	Succeeded int                        `json:"succeeded"`
	Failed    int                        `json:"failed"`
	Results   map[string]json.RawMessage `json:"results"`
	Failures  map[string]string          `json:"failures"`
}

// handleAccount passes the account-v1 payload through unchanged
func (s *Server) handleAccount(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	payload, err := s.client.GetAccountByRiotID(r.Context(), vars["gameName"], vars["tagLine"])
	if err != nil {
		s.sendError(w, err)
		return
	}

	s.sendRawJSON(w, payload)
}

// handlePlayerMatches resolves a Riot ID, lists its most recent match ids and fetches them as a batch.
// Failed matches are reported per id; the request itself only fails when the player cannot be resolved.
func (s *Server) handlePlayerMatches(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	count, err := getIntParam(r, "count", defaultMatchCount, maxMatchCount)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	accountPayload, err := s.client.GetAccountByRiotID(r.Context(), vars["gameName"], vars["tagLine"])
	if err != nil {
		s.sendError(w, err)
		return
	}
	account, err := riot.Decode[riot.Account](accountPayload)
	if err != nil {
		s.sendError(w, err)
		return
	}

	idsPayload, err := s.client.GetMatchIDs(r.Context(), account.PUUID, riot.MatchListQuery{Count: count})
	if err != nil {
		s.sendError(w, err)
		return
	}
	matchIDs, err := riot.Decode[[]string](idsPayload)
	if err != nil {
		s.sendError(w, err)
		return
	}

	result := s.client.FetchMatches(r.Context(), matchIDs)

	response := MatchesResponse{
		JobID:     result.JobID,
		PUUID:     account.PUUID,
		Requested: result.Requested(),
		Succeeded: result.Succeeded(),
		Failed:    result.Failed(),
		Results:   make(map[string]json.RawMessage, len(result.Results)),
		Failures:  result.FailureMessages(),
	}
	for id, payload := range result.Results {
		response.Results[id] = payload
	}

	s.sendJSONResponse(w, response)
}
