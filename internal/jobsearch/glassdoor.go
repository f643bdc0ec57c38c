package jobsearch

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/askasha/asha-agent/internal/types"
)

// GlassdoorSearchEndpoint is the public job search page.
const GlassdoorSearchEndpoint = "https://www.glassdoor.com/Job/jobs.htm"

// GlassdoorClient scrapes the public Glassdoor search results page.
type GlassdoorClient struct {
	endpoint   string
	httpClient *http.Client
}

// NewGlassdoorClient creates a Glassdoor client.
func NewGlassdoorClient() *GlassdoorClient {
	return &GlassdoorClient{
		endpoint:   GlassdoorSearchEndpoint,
		httpClient: &http.Client{Timeout: defaultHTTPTimeout},
	}
}

// WithEndpoint overrides the search endpoint, used by tests.
func (c *GlassdoorClient) WithEndpoint(endpoint string) *GlassdoorClient {
	c.endpoint = endpoint
	return c
}

// Platform implements JobPlatformClient.
func (c *GlassdoorClient) Platform() string { return types.PlatformGlassdoor }

// SearchJobs fetches the first results page and normalizes its listings.
func (c *GlassdoorClient) SearchJobs(ctx context.Context, params *types.JobSearchParams) ([]types.JobPosting, error) {
	values := url.Values{}
	values.Set("sc.keyword", params.Keyword)
	if params.LocationName != "" {
		values.Set("locKeyword", params.LocationName)
	}
	if params.WorkMode == "remote" {
		values.Set("remoteWorkType", "1")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+values.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create glassdoor request: %w", err)
	}
	req.Header.Set("User-Agent", scrapeUserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("glassdoor request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("glassdoor returned status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse glassdoor response: %w", err)
	}

	var postings []types.JobPosting
	doc.Find(`li[data-test="jobListing"]`).EachWithBreak(func(i int, card *goquery.Selection) bool {
		if i >= params.PageSize {
			return false
		}

		titleLink := card.Find(`a[data-test="job-title"]`)
		title := strings.TrimSpace(titleLink.Text())
		if title == "" {
			return true
		}

		applyURL, _ := titleLink.Attr("href")
		if applyURL != "" && strings.HasPrefix(applyURL, "/") {
			applyURL = "https://www.glassdoor.com" + applyURL
		}
		id, _ := card.Attr("data-jobid")

		posting := types.JobPosting{
			ID:              id,
			Title:           title,
			CompanyName:     strings.TrimSpace(card.Find(`span[data-test="employer-name"]`).Text()),
			LocationName:    strings.TrimSpace(card.Find(`div[data-test="emp-location"]`).Text()),
			Platform:        types.PlatformGlassdoor,
			SkillMatchScore: ScoreTitle(title, params),
			ApplyURL:        applyURL,
		}
		postings = append(postings, posting)
		return true
	})

	return postings, nil
}
