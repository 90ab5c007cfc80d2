package riot

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Routing selects which host family serves an endpoint
type Routing int

const (
	// RoutingPlatform is the shard host (na1, euw1, ...) for summoner, league and mastery
	RoutingPlatform Routing = iota
	// RoutingRegional is the cluster host (americas, europe, ...) for account and match
	RoutingRegional
)

// MatchListQuery filters a match id page. Zero values are omitted from the request.
type MatchListQuery struct {
	Start int
	Count int
	Queue int
	Type  string
}

func (q MatchListQuery) params() map[string]string {
	params := make(map[string]string)
	if q.Start > 0 {
		params["start"] = strconv.Itoa(q.Start)
	}
	if q.Count > 0 {
		params["count"] = strconv.Itoa(q.Count)
	}
	if q.Queue > 0 {
		params["queue"] = strconv.Itoa(q.Queue)
	}
	if q.Type != "" {
		params["type"] = q.Type
	}
	return params
}

// Account is the subset of account-v1 consumers rely on
type Account struct {
	PUUID    string `json:"puuid"`
	GameName string `json:"gameName"`
	TagLine  string `json:"tagLine"`
}

// RiotID returns "GameName#TagLine"
func (a Account) RiotID() string {
	return a.GameName + "#" + a.TagLine
}

// ParseRiotID splits "GameName#TagLine"
func ParseRiotID(riotID string) (gameName, tagLine string, err error) {
	idx := strings.LastIndex(riotID, "#")
	if idx <= 0 || idx == len(riotID)-1 {
		return "", "", fmt.Errorf("invalid riot id %q, expected GameName#TagLine", riotID)
	}
	return strings.TrimSpace(riotID[:idx]), strings.TrimSpace(riotID[idx+1:]), nil
}

// Decode unmarshals an opaque payload into T
func Decode[T any](payload []byte) (T, error) {
	var out T
	if err := json.Unmarshal(payload, &out); err != nil {
		return out, fmt.Errorf("failed to decode payload: %w", err)
	}
	return out, nil
}
