package riot_common

import (
	"errors"
	"fmt"
	"net/http"
	"time"
	"unicode/utf8"
)

// Error kinds surfaced by the retry executor. Match them with errors.Is.
var (
	// ErrUpstreamRateLimitExhausted means a 429 survived every attempt
	ErrUpstreamRateLimitExhausted = errors.New("upstream rate limit exhausted")

	// ErrUpstreamClient is a non-429 4xx response; it is not retried by default
	ErrUpstreamClient = errors.New("upstream client error")

	// ErrNotFound refines ErrUpstreamClient for 404
	ErrNotFound = errors.New("upstream resource not found")

	ErrUpstreamServer = errors.New("upstream server error")
	ErrNetwork        = errors.New("network error")
)

// ErrorKind classifies an upstream failure
type ErrorKind int

const (
	KindNetwork ErrorKind = iota
	KindRateLimited
	KindClient
	KindNotFound
	KindServer
)

func (k ErrorKind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindRateLimited:
		return "rate_limited"
	case KindClient:
		return "client_error"
	case KindNotFound:
		return "not_found"
	case KindServer:
		return "server_error"
	default:
		return "unknown"
	}
}

// UpstreamError describes one failed upstream attempt
type UpstreamError struct {
	Kind       ErrorKind
	StatusCode int
	Path       string
	// RetryAfter is the server wait hint, zero when absent
	RetryAfter time.Duration
	Body       string
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		msg := fmt.Sprintf("%s: %s returned status %d", e.Kind, e.Path, e.StatusCode)
		if e.Body != "" {
			msg += ": " + e.Body
		}
		return msg
	}
	return fmt.Sprintf("%s: %s: %v", e.Kind, e.Path, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// Is matches the sentinel of the error kind
func (e *UpstreamError) Is(target error) bool {
	switch target {
	case ErrUpstreamRateLimitExhausted:
		return e.Kind == KindRateLimited
	case ErrUpstreamClient:
		return e.Kind == KindClient || e.Kind == KindNotFound
	case ErrNotFound:
		return e.Kind == KindNotFound
	case ErrUpstreamServer:
		return e.Kind == KindServer
	case ErrNetwork:
		return e.Kind == KindNetwork
	}
	return false
}

// Retryable reports whether another attempt may succeed
func (e *UpstreamError) Retryable(retryClientErrors bool) bool {
	switch e.Kind {
	case KindRateLimited, KindServer, KindNetwork:
		return true
	case KindClient, KindNotFound:
		return retryClientErrors
	}
	return false
}

// maxBodyInError bounds the response body kept in an error
const maxBodyInError = 512

func newStatusError(path string, statusCode int, body []byte, retryAfter time.Duration) *UpstreamError {
	kind := KindClient
	switch {
	case statusCode == http.StatusTooManyRequests:
		kind = KindRateLimited
	case statusCode == http.StatusNotFound:
		kind = KindNotFound
	case statusCode >= 500:
		kind = KindServer
	}

	text := string(body)
	if len(text) > maxBodyInError {
		cut := maxBodyInError
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}
		text = text[:cut]
	}

	return &UpstreamError{
		Kind:       kind,
		StatusCode: statusCode,
		Path:       path,
		RetryAfter: retryAfter,
		Body:       text,
	}
}
