package jobsearch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/askasha/asha-agent/internal/types"
)

// Capability is a named operation the agent can invoke on behalf of the
// user. Capabilities wrap platform calls behind a uniform signature so the
// dispatch layer can pick one by name.
type Capability struct {
	Name        string
	Description string
	Invoke      func(ctx context.Context, args map[string]any) (any, error)
}

// Capability names.
const (
	CapabilityJobSearch     = "job_search"
	CapabilitySessionSearch = "session_search"
	CapabilityGroupSearch   = "group_search"
)

// CapabilitySet holds the capabilities available to the agent.
type CapabilitySet struct {
	byName map[string]Capability
	order  []string
}

// NewCapabilitySet builds a set from the given capabilities. Later entries
// with a duplicate name replace earlier ones.
func NewCapabilitySet(caps ...Capability) *CapabilitySet {
	s := &CapabilitySet{byName: make(map[string]Capability)}
	for _, c := range caps {
		if _, exists := s.byName[c.Name]; !exists {
			s.order = append(s.order, c.Name)
		}
		s.byName[c.Name] = c
	}
	return s
}

// Get returns the capability with the given name.
func (s *CapabilitySet) Get(name string) (Capability, bool) {
	c, ok := s.byName[name]
	return c, ok
}

// Names returns capability names in registration order.
func (s *CapabilitySet) Names() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// JobSearchCapability wraps the aggregator as an invocable capability. The
// args map must carry a "params" entry holding *types.JobSearchParams.
func JobSearchCapability(agg *Aggregator) Capability {
	return Capability{
		Name:        CapabilityJobSearch,
		Description: "Search job postings across the supported platforms.",
		Invoke: func(ctx context.Context, args map[string]any) (any, error) {
			params, ok := args["params"].(*types.JobSearchParams)
			if !ok {
				return nil, fmt.Errorf("job_search capability requires params")
			}
			return agg.Search(ctx, params), nil
		},
	}
}

// HerkeySessionsEndpoint lists community sessions and events.
const HerkeySessionsEndpoint = "https://api-prod.herkey.com/api/v1/herkey/sessions/es_sessions"

// HerkeyGroupsEndpoint lists community groups.
const HerkeyGroupsEndpoint = "https://api-prod.herkey.com/api/v1/herkey/groups/es_groups"

// CommunityClient queries Herkey community sessions and groups.
type CommunityClient struct {
	sessionsEndpoint string
	groupsEndpoint   string
	tokens           SessionTokenProvider
	httpClient       *http.Client
}

// NewCommunityClient creates a community client using the given token
// provider for authentication.
func NewCommunityClient(tokens SessionTokenProvider) *CommunityClient {
	return &CommunityClient{
		sessionsEndpoint: HerkeySessionsEndpoint,
		groupsEndpoint:   HerkeyGroupsEndpoint,
		tokens:           tokens,
		httpClient:       &http.Client{Timeout: defaultHTTPTimeout},
	}
}

// WithEndpoints overrides both endpoints, used by tests.
func (c *CommunityClient) WithEndpoints(sessions, groups string) *CommunityClient {
	c.sessionsEndpoint = sessions
	c.groupsEndpoint = groups
	return c
}

// SearchSessions returns sessions matching the query.
func (c *CommunityClient) SearchSessions(ctx context.Context, query string) ([]map[string]any, error) {
	return c.fetch(ctx, c.sessionsEndpoint, query)
}

// SearchGroups returns groups matching the query.
func (c *CommunityClient) SearchGroups(ctx context.Context, query string) ([]map[string]any, error) {
	return c.fetch(ctx, c.groupsEndpoint, query)
}

func (c *CommunityClient) fetch(ctx context.Context, endpoint, query string) ([]map[string]any, error) {
	token, err := c.tokens.IssueToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to obtain session token: %w", err)
	}

	values := url.Values{}
	values.Set("search", query)
	values.Set("page_no", "1")
	values.Set("page_size", "15")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+values.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create community request: %w", err)
	}
	req.Header.Set("Authorization", "Token "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("community request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("community endpoint returned status %d", resp.StatusCode)
	}

	var payload struct {
		Body []map[string]any `json:"body"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode community response: %w", err)
	}
	return payload.Body, nil
}

// SessionSearchCapability wraps community session search. The args map must
// carry a "query" string.
func SessionSearchCapability(client *CommunityClient) Capability {
	return Capability{
		Name:        CapabilitySessionSearch,
		Description: "Find community sessions and events matching a topic.",
		Invoke: func(ctx context.Context, args map[string]any) (any, error) {
			query, _ := args["query"].(string)
			return client.SearchSessions(ctx, query)
		},
	}
}

// GroupSearchCapability wraps community group search. The args map must
// carry a "query" string.
func GroupSearchCapability(client *CommunityClient) Capability {
	return Capability{
		Name:        CapabilityGroupSearch,
		Description: "Find community groups matching a topic.",
		Invoke: func(ctx context.Context, args map[string]any) (any, error) {
			query, _ := args["query"].(string)
			return client.SearchGroups(ctx, query)
		},
	}
}
