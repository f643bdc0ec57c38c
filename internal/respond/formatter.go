package respond

import (
	"context"
	"log"
	"net/url"

	"github.com/askasha/asha-agent/internal/jobsearch"
	"github.com/askasha/asha-agent/internal/types"
)

// Formatter converts per-intent results into response envelopes. It depends
// on a token provider because job-search and events payloads carry a fresh
// session token for the frontend's own platform calls.
type Formatter struct {
	templates TemplateProvider
	tokens    jobsearch.SessionTokenProvider
}

// NewFormatter creates a formatter. tokens may be nil, in which case token
// fields in the payload stay empty.
func NewFormatter(templates TemplateProvider, tokens jobsearch.SessionTokenProvider) *Formatter {
	return &Formatter{templates: templates, tokens: tokens}
}

// issueToken fetches a fresh token, degrading to "" on any failure. A
// missing token never blocks the response; the frontend just gets a job
// link without a session parameter.
func (f *Formatter) issueToken(ctx context.Context) string {
	if f.tokens == nil {
		return ""
	}
	token, err := f.tokens.IssueToken(ctx)
	if err != nil {
		log.Printf("respond: token fetch failed, omitting from payload: %v", err)
		return ""
	}
	return token
}

// JobSearch builds the job_search envelope: response text chosen by
// outcome, plus the canvas payload the job widget renders.
func (f *Formatter) JobSearch(ctx context.Context, params *types.JobSearchParams, result *types.JobSearchResult, usedResume bool) *types.ResponseEnvelope {
	postings := result.Postings
	if postings == nil {
		postings = []types.JobPosting{}
	}

	text := f.templates.JobSearch(JobSearchContext{
		Keyword:     params.Keyword,
		Location:    params.LocationName,
		Platforms:   result.PlatformsSearched,
		ResultCount: len(postings),
		UsedResume:  usedResume,
	})

	return &types.ResponseEnvelope{
		Text:       text,
		CanvasType: types.CanvasJobSearch,
		CanvasUtils: map[string]any{
			"params":             params,
			"job_link":           jobsearch.HerkeyJobsEndpoint + "?" + jobsearch.EncodeQuery(params),
			"job_api_token":      f.issueToken(ctx),
			"job_results":        postings,
			"platforms_searched": result.PlatformsSearched,
			"error_messages":     result.ErrorMessages,
		},
	}
}

// Roadmap builds the roadmap envelope. Steps missing a calendar label get
// one from their title, so the calendar integration always has something
// to show.
func (f *Formatter) Roadmap(topic string, steps []types.RoadmapStep) *types.ResponseEnvelope {
	for i := range steps {
		if steps[i].CalendarEvent == "" {
			steps[i].CalendarEvent = steps[i].Title
		}
	}

	return &types.ResponseEnvelope{
		Text:       f.templates.Roadmap(topic),
		CanvasType: types.CanvasRoadmap,
		CanvasUtils: map[string]any{
			"roadmap":                     steps,
			"enable_calendar_integration": true,
		},
	}
}

// Events builds the sessions envelope with a link the frontend can query
// directly.
func (f *Formatter) Events(ctx context.Context, topic string) *types.ResponseEnvelope {
	values := url.Values{}
	values.Set("search", topic)

	return &types.ResponseEnvelope{
		Text:       f.templates.Events(topic),
		CanvasType: types.CanvasSessions,
		CanvasUtils: map[string]any{
			"session_link":      jobsearch.HerkeySessionsEndpoint + "?" + values.Encode(),
			"session_api_token": f.issueToken(ctx),
		},
	}
}

// Gibberish builds the fixed clarification envelope.
func (f *Formatter) Gibberish() *types.ResponseEnvelope {
	return types.NewTextEnvelope(f.templates.Gibberish())
}

// Profanity builds a canned envelope from the profanity pool.
func (f *Formatter) Profanity() *types.ResponseEnvelope {
	return types.NewTextEnvelope(f.templates.Profanity())
}

// Text wraps generated prose (guidance and small talk) in a plain envelope.
func (f *Formatter) Text(text string) *types.ResponseEnvelope {
	if text == "" {
		text = f.templates.Refusal()
	}
	return types.NewTextEnvelope(text)
}
