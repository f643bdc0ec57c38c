package jobsearch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
)

// SessionTokenProvider issues the short-lived bearer credential job-platform
// requests require. The token is also attached to job_search responses so
// the frontend can call the platform API directly.
type SessionTokenProvider interface {
	IssueToken(ctx context.Context) (string, error)
}

// HerkeySessionEndpoint issues anonymous session tokens.
const HerkeySessionEndpoint = "https://api-prod.herkey.com/api/v1/herkey/generate-session"

// HerkeyTokenProvider fetches session tokens from the Herkey API.
type HerkeyTokenProvider struct {
	endpoint   string
	httpClient *http.Client
}

// NewHerkeyTokenProvider creates a token provider against the production
// session endpoint.
func NewHerkeyTokenProvider() *HerkeyTokenProvider {
	return &HerkeyTokenProvider{
		endpoint:   HerkeySessionEndpoint,
		httpClient: &http.Client{Timeout: defaultHTTPTimeout},
	}
}

// WithEndpoint overrides the session endpoint, used by tests.
func (p *HerkeyTokenProvider) WithEndpoint(endpoint string) *HerkeyTokenProvider {
	p.endpoint = endpoint
	return p
}

// IssueToken fetches a fresh session token.
func (p *HerkeyTokenProvider) IssueToken(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create session request: %w", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("session request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("session endpoint returned status %d", resp.StatusCode)
	}

	var body struct {
		Body struct {
			SessionID string `json:"session_id"`
		} `json:"body"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("failed to decode session response: %w", err)
	}
	if body.Body.SessionID == "" {
		return "", fmt.Errorf("session endpoint returned empty session_id")
	}
	return body.Body.SessionID, nil
}

// tokenCacheKey is where the cached session token lives in redis.
const tokenCacheKey = "asha:jobsearch:session_token"

// tokenCacheTTL keeps cached tokens well inside the platform's session
// lifetime.
const tokenCacheTTL = 5 * time.Minute

// CachedTokenProvider fronts another provider with a redis cache so bursts
// of requests do not hammer the session endpoint. Cache failures fall
// through to the underlying provider.
type CachedTokenProvider struct {
	inner SessionTokenProvider
	rdb   *redis.Client
}

// NewCachedTokenProvider wraps a provider with redis caching.
func NewCachedTokenProvider(inner SessionTokenProvider, rdb *redis.Client) *CachedTokenProvider {
	return &CachedTokenProvider{inner: inner, rdb: rdb}
}

// IssueToken returns the cached token when present, otherwise fetches and
// caches a fresh one.
func (p *CachedTokenProvider) IssueToken(ctx context.Context) (string, error) {
	if p.rdb != nil {
		if token, err := p.rdb.Get(ctx, tokenCacheKey).Result(); err == nil && token != "" {
			return token, nil
		}
	}

	token, err := p.inner.IssueToken(ctx)
	if err != nil {
		return "", err
	}

	if p.rdb != nil {
		// A cache write failure only costs the next caller a fetch.
		_ = p.rdb.Set(ctx, tokenCacheKey, token, tokenCacheTTL).Err()
	}
	return token, nil
}
