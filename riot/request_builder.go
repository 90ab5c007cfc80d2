package riot

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	rc "github.com/reithediver/lol-smurfguard-sub000/riot_common"
)

const (
	// RiotHostTemplate is formatted with a platform or regional routing value
	RiotHostTemplate = "https://%s.api.riotgames.com"

	defaultUserAgent = "lol-smurfguard/1.0"
)

// buildURL safely combines a base URL with a path
func buildURL(baseURL, path string) string {
	baseURL = strings.TrimRight(baseURL, "/")
	trimmedPath := strings.TrimLeft(path, "/")

	return baseURL + "/" + trimmedPath
}

// RequestBuilder implements the Builder pattern for Riot API requests
type RequestBuilder struct {
	baseURL   string
	apiPath   string
	params    url.Values
	apiKey    string
	userAgent string
	headers   map[string]string
}

// NewRequestBuilder creates a new request builder for a Riot endpoint
func NewRequestBuilder(baseURL, apiPath string) *RequestBuilder {
	rb := &RequestBuilder{
		baseURL:   baseURL,
		apiPath:   apiPath,
		params:    url.Values{},
		headers:   make(map[string]string),
		userAgent: defaultUserAgent,
	}

	rb.headers["Accept"] = "application/json"

	return rb
}

// With adds a query parameter; empty values are skipped
func (rb *RequestBuilder) With(key, value string) *RequestBuilder {
	if value != "" {
		rb.params.Set(key, value)
	}
	return rb
}

// WithAPIKey sets the X-Riot-Token header value
func (rb *RequestBuilder) WithAPIKey(apiKey string) *RequestBuilder {
	rb.apiKey = apiKey
	return rb
}

// WithHeader adds a custom HTTP header
func (rb *RequestBuilder) WithHeader(name, value string) *RequestBuilder {
	rb.headers[name] = value
	return rb
}

// Path returns the endpoint path
func (rb *RequestBuilder) Path() string {
	return rb.apiPath
}

// Params returns a copy of the query parameters
func (rb *RequestBuilder) Params() url.Values {
	out := make(url.Values, len(rb.params))
	for k, v := range rb.params {
		out[k] = append([]string(nil), v...)
	}
	return out
}

// BuildURL builds the complete URL for the request
func (rb *RequestBuilder) BuildURL() string {
	finalURL := buildURL(rb.baseURL, rb.apiPath)
	if queryString := rb.params.Encode(); queryString != "" {
		finalURL = fmt.Sprintf("%s?%s", finalURL, queryString)
	}
	return finalURL
}

// Build creates the GET request
func (rb *RequestBuilder) Build(ctx context.Context) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rb.BuildURL(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	for name, value := range rb.headers {
		req.Header.Set(name, value)
	}
	req.Header.Set("User-Agent", rb.userAgent)
	if rb.apiKey != "" {
		req.Header.Set(rc.RiotTokenHeader, rb.apiKey)
	}

	return req, nil
}
