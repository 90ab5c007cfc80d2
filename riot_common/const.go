package riot_common

import (
	"strings"

	"github.com/reithediver/lol-smurfguard-sub000/config"
)

// EndpointClass groups upstream endpoints that share one rate-limit table
type EndpointClass string

const (
	ClassAccount  EndpointClass = config.ClassAccount
	ClassSummoner EndpointClass = config.ClassSummoner
	ClassMatch    EndpointClass = config.ClassMatch
	ClassMastery  EndpointClass = config.ClassMastery
	ClassLeague   EndpointClass = config.ClassLeague
	ClassDefault  EndpointClass = config.ClassDefault
)

const (
	// RiotTokenHeader carries the API key on every upstream request
	RiotTokenHeader = "X-Riot-Token"

	// RetryAfterHeader is the upstream wait hint on 429, in seconds
	RetryAfterHeader = "Retry-After"
)

var classPrefixes = []struct {
	prefix string
	class  EndpointClass
}{
	{"/riot/account/", ClassAccount},
	{"/lol/match/", ClassMatch},
	{"/lol/summoner/", ClassSummoner},
	{"/lol/champion-mastery/", ClassMastery},
	{"/lol/league/", ClassLeague},
}

// ClassifyPath maps an upstream URL path to its endpoint class
func ClassifyPath(path string) EndpointClass {
	for _, p := range classPrefixes {
		if strings.HasPrefix(path, p.prefix) {
			return p.class
		}
	}
	return ClassDefault
}
