package jobsearch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/askasha/asha-agent/internal/types"
)

// defaultHTTPTimeout bounds one platform round-trip. A timeout is a
// recoverable per-platform failure, never a request-level fault.
const defaultHTTPTimeout = 15 * time.Second

// HerkeyJobsEndpoint is the candidate job search API.
const HerkeyJobsEndpoint = "https://api-prod.herkey.com/api/v1/herkey/jobs/es_candidate_jobs"

// HerkeyClient searches the Herkey jobs API.
type HerkeyClient struct {
	endpoint   string
	tokens     SessionTokenProvider
	httpClient *http.Client
}

// NewHerkeyClient creates a Herkey client using the given token provider.
func NewHerkeyClient(tokens SessionTokenProvider) *HerkeyClient {
	return &HerkeyClient{
		endpoint:   HerkeyJobsEndpoint,
		tokens:     tokens,
		httpClient: &http.Client{Timeout: defaultHTTPTimeout},
	}
}

// WithEndpoint overrides the jobs endpoint, used by tests.
func (c *HerkeyClient) WithEndpoint(endpoint string) *HerkeyClient {
	c.endpoint = endpoint
	return c
}

// Platform implements JobPlatformClient.
func (c *HerkeyClient) Platform() string { return types.PlatformHerkey }

// SearchJobs runs one search against the Herkey API and normalizes the
// response body into postings.
func (c *HerkeyClient) SearchJobs(ctx context.Context, params *types.JobSearchParams) ([]types.JobPosting, error) {
	token, err := c.tokens.IssueToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("herkey token fetch failed: %w", err)
	}

	endpoint := c.endpoint + "?" + EncodeQuery(params)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create herkey request: %w", err)
	}
	req.Header.Set("Authorization", "Token "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("herkey request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("herkey API returned status %d", resp.StatusCode)
	}

	var body struct {
		Body []herkeyPosting `json:"body"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode herkey response: %w", err)
	}

	postings := make([]types.JobPosting, 0, len(body.Body))
	for _, raw := range body.Body {
		postings = append(postings, raw.normalize())
	}
	return postings, nil
}

// herkeyPosting is the platform's raw job shape.
type herkeyPosting struct {
	ID              json.Number `json:"id"`
	Title           string      `json:"title"`
	CompanyName     string      `json:"company_name"`
	LocationName    string      `json:"location_name"`
	ExpiresOn       string      `json:"expires_on"`
	SkillMatchScore float64     `json:"skill_match_score"`
	ApplyURL        string      `json:"apply_url"`
}

func (p herkeyPosting) normalize() types.JobPosting {
	applyURL := p.ApplyURL
	if applyURL == "" && p.ID.String() != "" {
		applyURL = "https://www.herkey.com/jobs/" + p.ID.String()
	}
	return types.JobPosting{
		ID:              p.ID.String(),
		Title:           p.Title,
		CompanyName:     p.CompanyName,
		LocationName:    p.LocationName,
		Platform:        types.PlatformHerkey,
		ExpiresOn:       p.ExpiresOn,
		SkillMatchScore: p.SkillMatchScore,
		ApplyURL:        applyURL,
	}
}

// EncodeQuery renders params as a URL query string in the shape the Herkey
// API expects. Platforms are excluded: they select clients, they are not an
// API filter.
func EncodeQuery(params *types.JobSearchParams) string {
	values := url.Values{}
	values.Set("keyword", params.Keyword)
	values.Set("page_no", strconv.Itoa(params.PageNo))
	values.Set("page_size", strconv.Itoa(params.PageSize))
	values.Set("is_global_query", strconv.FormatBool(params.IsGlobalQuery))
	if params.LocationName != "" {
		values.Set("location_name", params.LocationName)
	}
	if params.WorkMode != "" {
		values.Set("work_mode", params.WorkMode)
	}
	if params.JobType != "" {
		values.Set("job_types", params.JobType)
	}
	if params.JobSkills != "" {
		values.Set("job_skills", params.JobSkills)
	}
	return values.Encode()
}
