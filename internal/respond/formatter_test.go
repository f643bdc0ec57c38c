package respond

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askasha/asha-agent/internal/types"
)

type fakeTokens struct {
	token string
	err   error
}

func (f fakeTokens) IssueToken(context.Context) (string, error) { return f.token, f.err }

func containsTemplate(t *testing.T, text string, pool []string) {
	t.Helper()
	for _, tmpl := range pool {
		// Match on the template's leading literal, up to the first placeholder.
		prefix := tmpl
		if idx := strings.Index(tmpl, "{{"); idx >= 0 {
			prefix = tmpl[:idx]
		}
		if strings.HasPrefix(text, prefix) {
			return
		}
	}
	t.Fatalf("text %q matches no template in pool", text)
}

func TestFormatterJobSearchSuccess(t *testing.T) {
	f := NewFormatter(NewStaticTemplates(), fakeTokens{token: "tok-1"})

	params := &types.JobSearchParams{Keyword: "data", LocationName: "Mumbai", PageNo: 1, PageSize: 15}
	result := &types.JobSearchResult{
		Postings:          []types.JobPosting{{ID: "1", Platform: types.PlatformHerkey}},
		PlatformsSearched: types.DefaultPlatforms(),
	}

	env := f.JobSearch(context.Background(), params, result, false)

	assert.Equal(t, types.CanvasJobSearch, env.CanvasType)
	containsTemplate(t, env.Text, jobSearchSuccess)
	assert.Contains(t, env.Text, "in Mumbai")

	assert.Equal(t, "tok-1", env.CanvasUtils["job_api_token"])
	assert.Equal(t, params, env.CanvasUtils["params"])
	assert.Equal(t, result.Postings, env.CanvasUtils["job_results"])

	link, ok := env.CanvasUtils["job_link"].(string)
	require.True(t, ok)
	assert.Contains(t, link, "keyword=data")
	assert.NotContains(t, link, "platforms")
}

func TestFormatterJobSearchEmptyWithResume(t *testing.T) {
	f := NewFormatter(NewStaticTemplates(), fakeTokens{token: "tok"})

	params := &types.JobSearchParams{Keyword: "design", PageNo: 1, PageSize: 15}
	result := &types.JobSearchResult{PlatformsSearched: []string{types.PlatformHerkey}}

	env := f.JobSearch(context.Background(), params, result, true)

	containsTemplate(t, env.Text, jobSearchEmptyResume)
	// Nil postings surface as an empty slice, never null.
	assert.Equal(t, []types.JobPosting{}, env.CanvasUtils["job_results"])
}

func TestFormatterJobSearchTokenFailure(t *testing.T) {
	f := NewFormatter(NewStaticTemplates(), fakeTokens{err: errors.New("boom")})

	params := &types.JobSearchParams{Keyword: "data", PageNo: 1, PageSize: 15}
	env := f.JobSearch(context.Background(), params, &types.JobSearchResult{}, false)

	// The envelope survives; the token is simply empty.
	assert.Equal(t, types.CanvasJobSearch, env.CanvasType)
	assert.Equal(t, "", env.CanvasUtils["job_api_token"])
}

func TestFormatterRoadmapBackfillsCalendarEvents(t *testing.T) {
	f := NewFormatter(NewStaticTemplates(), nil)

	steps := []types.RoadmapStep{
		{Title: "Learn SQL", Description: "d", Link: "https://www.edx.org"},
		{Title: "Learn Python", Description: "d", Link: "https://www.edx.org", CalendarEvent: "Python time"},
	}
	env := f.Roadmap("data science", steps)

	assert.Equal(t, types.CanvasRoadmap, env.CanvasType)
	assert.Contains(t, env.Text, "data science")
	assert.Equal(t, true, env.CanvasUtils["enable_calendar_integration"])

	got := env.CanvasUtils["roadmap"].([]types.RoadmapStep)
	assert.Equal(t, "Learn SQL", got[0].CalendarEvent)
	assert.Equal(t, "Python time", got[1].CalendarEvent)
}

func TestFormatterEvents(t *testing.T) {
	f := NewFormatter(NewStaticTemplates(), fakeTokens{token: "tok-9"})

	env := f.Events(context.Background(), "mentorship")

	assert.Equal(t, types.CanvasSessions, env.CanvasType)
	assert.Equal(t, "tok-9", env.CanvasUtils["session_api_token"])
	link := env.CanvasUtils["session_link"].(string)
	assert.Contains(t, link, "search=mentorship")
}

func TestFormatterCannedEnvelopes(t *testing.T) {
	f := NewFormatter(NewStaticTemplates(), nil)

	gib := f.Gibberish()
	assert.Equal(t, types.CanvasNone, gib.CanvasType)
	assert.Equal(t, gibberishText, gib.Text)

	prof := f.Profanity()
	assert.Equal(t, types.CanvasNone, prof.CanvasType)
	assert.Contains(t, profanityPool, prof.Text)

	empty := f.Text("")
	assert.Equal(t, refusalText, empty.Text)

	plain := f.Text("hello there")
	assert.Equal(t, "hello there", plain.Text)
	assert.Equal(t, types.CanvasNone, plain.CanvasType)
}

func TestTemplatesPlatformHighlight(t *testing.T) {
	tmpl := NewStaticTemplates()

	text := tmpl.JobSearch(JobSearchContext{
		Keyword:     "data",
		Platforms:   []string{types.PlatformHerkey},
		ResultCount: 3,
	})
	assert.Contains(t, text, "Herkey")

	multi := tmpl.JobSearch(JobSearchContext{
		Keyword:     "data",
		Platforms:   types.DefaultPlatforms(),
		ResultCount: 3,
	})
	assert.NotContains(t, multi, "Herkey")
}

func TestTemplatesGreetingByHour(t *testing.T) {
	tmpl := NewStaticTemplates()

	morning := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	assert.Contains(t, morningGreetings, tmpl.Greeting(morning))

	afternoon := time.Date(2025, 6, 1, 14, 0, 0, 0, time.UTC)
	assert.Contains(t, afternoonGreetings, tmpl.Greeting(afternoon))

	evening := time.Date(2025, 6, 1, 20, 0, 0, 0, time.UTC)
	assert.Contains(t, eveningGreetings, tmpl.Greeting(evening))
}
