package jobsearch

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/askasha/asha-agent/internal/types"
)

// maxPageSize caps how many postings any single platform may return.
const maxPageSize = 25

// expiresOnLayout is the timestamp layout platforms use for posting expiry.
const expiresOnLayout = "2006-01-02 15:04:05"

// Aggregator fans a single search out to every requested platform and
// merges the results. Platform failures degrade to error messages rather
// than failing the whole search.
type Aggregator struct {
	registry *Registry
	now      func() time.Time
}

// NewAggregator creates an aggregator over the given platform registry.
func NewAggregator(registry *Registry) *Aggregator {
	return &Aggregator{registry: registry, now: time.Now}
}

// WithClock overrides the clock, used by tests.
func (a *Aggregator) WithClock(now func() time.Time) *Aggregator {
	a.now = now
	return a
}

// Search queries every platform named in params concurrently and returns
// the merged, filtered, and ranked postings. It never returns an error:
// per-platform failures are collected into ErrorMessages.
func (a *Aggregator) Search(ctx context.Context, params *types.JobSearchParams) *types.JobSearchResult {
	platforms := params.Platforms
	if len(platforms) == 0 {
		platforms = types.DefaultPlatforms()
	}

	capped := *params
	if capped.PageSize <= 0 || capped.PageSize > maxPageSize {
		capped.PageSize = maxPageSize
	}

	// Per-platform slots keep the merge order independent of goroutine
	// completion order.
	slots := make([][]types.JobPosting, len(platforms))
	errs := make([]string, len(platforms))

	g, gctx := errgroup.WithContext(ctx)
	for i, platform := range platforms {
		g.Go(func() error {
			client, err := a.registry.Get(platform)
			if err != nil {
				errs[i] = fmt.Sprintf("%s: %v", platform, err)
				return nil
			}
			postings, err := client.SearchJobs(gctx, &capped)
			if err != nil {
				log.Printf("jobsearch: %s search failed: %v", platform, err)
				errs[i] = fmt.Sprintf("%s: %v", platform, err)
				return nil
			}
			slots[i] = postings
			return nil
		})
	}
	_ = g.Wait()

	result := &types.JobSearchResult{PlatformsSearched: platforms}
	for i, postings := range slots {
		result.Postings = append(result.Postings, a.filterExpired(postings)...)
		if errs[i] != "" {
			result.ErrorMessages = append(result.ErrorMessages, errs[i])
		}
	}

	rankPostings(result.Postings)
	return result
}

// filterExpired drops postings whose expiry is in the past. Postings with
// no expiry, or one that fails to parse, are kept.
func (a *Aggregator) filterExpired(postings []types.JobPosting) []types.JobPosting {
	now := a.now()
	kept := postings[:0]
	for _, p := range postings {
		if p.ExpiresOn != "" {
			expires, err := time.Parse(expiresOnLayout, p.ExpiresOn)
			if err == nil && !expires.After(now) {
				continue
			}
		}
		kept = append(kept, p)
	}
	return kept
}

// rankPostings orders Herkey postings ahead of every other platform, then
// by descending skill match score. The sort is stable so postings that tie
// keep their platform order.
func rankPostings(postings []types.JobPosting) {
	sort.SliceStable(postings, func(i, j int) bool {
		iHerkey := postings[i].Platform == types.PlatformHerkey
		jHerkey := postings[j].Platform == types.PlatformHerkey
		if iHerkey != jHerkey {
			return iHerkey
		}
		return postings[i].SkillMatchScore > postings[j].SkillMatchScore
	})
}
