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

// LinkedInGuestEndpoint serves paginated job cards as HTML fragments
// without authentication.
const LinkedInGuestEndpoint = "https://www.linkedin.com/jobs-guest/jobs/api/seeMoreJobPostings/search"

// scrapeUserAgent identifies the agent on scraping requests.
const scrapeUserAgent = "Mozilla/5.0 (compatible; AshaAgent/1.0)"

// LinkedInClient scrapes the LinkedIn guest jobs endpoint. LinkedIn has no
// public search API, so postings are parsed out of the returned job-card
// markup.
type LinkedInClient struct {
	endpoint   string
	httpClient *http.Client
}

// NewLinkedInClient creates a LinkedIn client.
func NewLinkedInClient() *LinkedInClient {
	return &LinkedInClient{
		endpoint:   LinkedInGuestEndpoint,
		httpClient: &http.Client{Timeout: defaultHTTPTimeout},
	}
}

// WithEndpoint overrides the guest endpoint, used by tests.
func (c *LinkedInClient) WithEndpoint(endpoint string) *LinkedInClient {
	c.endpoint = endpoint
	return c
}

// Platform implements JobPlatformClient.
func (c *LinkedInClient) Platform() string { return types.PlatformLinkedIn }

// SearchJobs fetches one page of job cards and normalizes them.
func (c *LinkedInClient) SearchJobs(ctx context.Context, params *types.JobSearchParams) ([]types.JobPosting, error) {
	values := url.Values{}
	values.Set("keywords", params.Keyword)
	if params.LocationName != "" {
		values.Set("location", params.LocationName)
	}
	if params.WorkMode == "remote" {
		values.Set("f_WT", "2")
	}
	values.Set("start", "0")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+values.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create linkedin request: %w", err)
	}
	req.Header.Set("User-Agent", scrapeUserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("linkedin request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("linkedin returned status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse linkedin response: %w", err)
	}

	var postings []types.JobPosting
	doc.Find("div.base-card").EachWithBreak(func(i int, card *goquery.Selection) bool {
		if i >= params.PageSize {
			return false
		}

		title := strings.TrimSpace(card.Find("h3.base-search-card__title").Text())
		if title == "" {
			return true
		}

		applyURL, _ := card.Find("a.base-card__full-link").Attr("href")
		posting := types.JobPosting{
			ID:              linkedInJobID(card, applyURL),
			Title:           title,
			CompanyName:     strings.TrimSpace(card.Find("h4.base-search-card__subtitle").Text()),
			LocationName:    strings.TrimSpace(card.Find("span.job-search-card__location").Text()),
			Platform:        types.PlatformLinkedIn,
			SkillMatchScore: ScoreTitle(title, params),
			ApplyURL:        applyURL,
		}
		postings = append(postings, posting)
		return true
	})

	return postings, nil
}

// linkedInJobID pulls the numeric job id from the card's data attribute or,
// failing that, the tail of the apply URL.
func linkedInJobID(card *goquery.Selection, applyURL string) string {
	if urn, ok := card.Attr("data-entity-urn"); ok {
		if idx := strings.LastIndex(urn, ":"); idx >= 0 && idx < len(urn)-1 {
			return urn[idx+1:]
		}
	}
	trimmed := strings.TrimRight(applyURL, "/")
	if idx := strings.LastIndex(trimmed, "-"); idx >= 0 && idx < len(trimmed)-1 {
		return trimmed[idx+1:]
	}
	return ""
}
