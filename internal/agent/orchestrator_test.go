package agent

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askasha/asha-agent/internal/jobsearch"
	"github.com/askasha/asha-agent/internal/llm/llmtest"
	"github.com/askasha/asha-agent/internal/respond"
	"github.com/askasha/asha-agent/internal/safety"
	"github.com/askasha/asha-agent/internal/types"
)

type fakePlatform struct {
	name     string
	postings []types.JobPosting
	err      error
	calls    int
}

func (f *fakePlatform) Platform() string { return f.name }

func (f *fakePlatform) SearchJobs(context.Context, *types.JobSearchParams) ([]types.JobPosting, error) {
	f.calls++
	return f.postings, f.err
}

type fakeGibberish struct {
	label string
	score float64
	calls int
}

func (f *fakeGibberish) Classify(context.Context, string) (string, float64, error) {
	f.calls++
	return f.label, f.score, nil
}

type fakeProfanity struct {
	profane bool
	calls   int
}

func (f *fakeProfanity) Check(context.Context, string) (bool, error) {
	f.calls++
	return f.profane, nil
}

type fakeTokens struct{}

func (fakeTokens) IssueToken(context.Context) (string, error) { return "tok", nil }

// newOrchestrator builds an orchestrator over fakes. The filter passes
// unless the caller supplies flagged classifiers.
func newOrchestrator(fake *llmtest.Fake, filter *safety.Filter, platforms ...jobsearch.JobPlatformClient) *Orchestrator {
	if filter == nil {
		filter = safety.NewFilter(nil, nil)
	}
	templates := respond.NewStaticTemplates()
	formatter := respond.NewFormatter(templates, fakeTokens{})
	agg := jobsearch.NewAggregator(jobsearch.NewRegistry(platforms...))
	return New(fake, filter, agg, nil, templates, formatter)
}

func TestRespondJobSearchScenario(t *testing.T) {
	fake := llmtest.NewFake(
		llmtest.Reply("job_search"),
		llmtest.Reply(`{"keyword": "data science", "location_name": "Mumbai"}`),
	)
	herkey := &fakePlatform{name: types.PlatformHerkey, postings: []types.JobPosting{
		{ID: "1", Title: "Data Scientist", Platform: types.PlatformHerkey},
	}}
	o := newOrchestrator(fake, nil, herkey,
		&fakePlatform{name: types.PlatformLinkedIn},
		&fakePlatform{name: types.PlatformGlassdoor})

	env := o.Respond(context.Background(), Request{Query: "Find me data science jobs in Mumbai"})

	assert.Equal(t, types.CanvasJobSearch, env.CanvasType)

	params := env.CanvasUtils["params"].(*types.JobSearchParams)
	assert.Contains(t, strings.ToLower(params.Keyword), "data")
	assert.Equal(t, "Mumbai", params.LocationName)

	results := env.CanvasUtils["job_results"].([]types.JobPosting)
	require.Len(t, results, 1)
	assert.Equal(t, "Data Scientist", results[0].Title)
	assert.Equal(t, "tok", env.CanvasUtils["job_api_token"])
}

func TestRespondRoadmapScenario(t *testing.T) {
	fake := llmtest.NewFake(
		llmtest.Reply("roadmap"),
		llmtest.Reply(`[{"title": "Basics", "description": "Start here.", "link": "https://www.coursera.org"}]`),
	)
	o := newOrchestrator(fake, nil)

	env := o.Respond(context.Background(), Request{Query: "Can you give me a roadmap to learn machine learning"})

	assert.Equal(t, types.CanvasRoadmap, env.CanvasType)

	steps := env.CanvasUtils["roadmap"].([]types.RoadmapStep)
	require.NotEmpty(t, steps)
	require.LessOrEqual(t, len(steps), 8)
	for _, step := range steps {
		assert.True(t, strings.HasPrefix(step.Link, "https://"), "link %q", step.Link)
		assert.NotEmpty(t, step.CalendarEvent)
	}
	assert.Equal(t, true, env.CanvasUtils["enable_calendar_integration"])
}

func TestRespondNormalTextScenario(t *testing.T) {
	fake := llmtest.NewFake(
		llmtest.Reply("normal_text"),
		llmtest.Reply("I'm doing great, thanks for asking! How can I help with your career today?"),
	)
	o := newOrchestrator(fake, nil)

	env := o.Respond(context.Background(), Request{Query: "Hello, how are you today?"})

	assert.Equal(t, types.CanvasNone, env.CanvasType)
	assert.NotEmpty(t, env.Text)
	assert.Contains(t, env.Text, "How can I help with your career today?")
}

func TestRespondProfanityShortCircuits(t *testing.T) {
	fake := llmtest.NewFake()
	profanity := &fakeProfanity{profane: true}
	herkey := &fakePlatform{name: types.PlatformHerkey}
	o := newOrchestrator(fake, safety.NewFilter(nil, profanity), herkey)

	env := o.Respond(context.Background(), Request{Query: "some flagged text"})

	assert.Equal(t, types.CanvasNone, env.CanvasType)
	assert.NotEmpty(t, env.Text)
	// Nothing downstream runs: no model call, no platform call.
	assert.Zero(t, fake.CallCount())
	assert.Zero(t, herkey.calls)
}

func TestRespondGibberishShortCircuits(t *testing.T) {
	fake := llmtest.NewFake()
	gibberish := &fakeGibberish{label: "noise", score: 0.95}
	o := newOrchestrator(fake, safety.NewFilter(gibberish, nil))

	env := o.Respond(context.Background(), Request{Query: "asdkjhasd kjahsdkj"})

	assert.Equal(t, types.CanvasNone, env.CanvasType)
	assert.NotEmpty(t, env.Text)
	assert.Zero(t, fake.CallCount())
}

func TestRespondJobSearchAllPlatformsDown(t *testing.T) {
	fake := llmtest.NewFake(
		llmtest.Reply("job_search"),
		llmtest.Reply(`{"keyword": "data"}`),
	)
	o := newOrchestrator(fake, nil,
		&fakePlatform{name: types.PlatformHerkey, err: errors.New("down")},
		&fakePlatform{name: types.PlatformLinkedIn, err: errors.New("down")},
		&fakePlatform{name: types.PlatformGlassdoor, err: errors.New("down")})

	env := o.Respond(context.Background(), Request{Query: "find data jobs"})

	assert.Equal(t, types.CanvasJobSearch, env.CanvasType)
	assert.Empty(t, env.CanvasUtils["job_results"])

	errs := env.CanvasUtils["error_messages"].([]string)
	require.Len(t, errs, 3)
	for _, msg := range errs {
		assert.Contains(t, msg, "down")
	}
}

func TestRespondResumeGatedByMarkerOrFlag(t *testing.T) {
	resume := &types.ResumeProfile{Skills: []string{"python", "sql"}}

	// Without the marker or flag, extraction sees no profile; the model
	// returns no skills and none get backfilled.
	fake := llmtest.NewFake(
		llmtest.Reply("job_search"),
		llmtest.Reply(`{"keyword": "data"}`),
	)
	o := newOrchestrator(fake, nil, &fakePlatform{name: types.PlatformHerkey})
	env := o.Respond(context.Background(), Request{Query: "find data jobs", Resume: resume})
	params := env.CanvasUtils["params"].(*types.JobSearchParams)
	assert.Empty(t, params.JobSkills)

	// The @resume marker opts in.
	fake = llmtest.NewFake(
		llmtest.Reply("job_search"),
		llmtest.Reply(`{"keyword": "data"}`),
	)
	o = newOrchestrator(fake, nil, &fakePlatform{name: types.PlatformHerkey})
	env = o.Respond(context.Background(), Request{Query: "find data jobs @resume", Resume: resume})
	params = env.CanvasUtils["params"].(*types.JobSearchParams)
	assert.Equal(t, "python,sql", params.JobSkills)

	// So does the explicit flag.
	fake = llmtest.NewFake(
		llmtest.Reply("job_search"),
		llmtest.Reply(`{"keyword": "data"}`),
	)
	o = newOrchestrator(fake, nil, &fakePlatform{name: types.PlatformHerkey})
	env = o.Respond(context.Background(), Request{Query: "find data jobs", Resume: resume, UseResume: true})
	params = env.CanvasUtils["params"].(*types.JobSearchParams)
	assert.Equal(t, "python,sql", params.JobSkills)
}

func TestRespondEventsIncludesSessionLink(t *testing.T) {
	fake := llmtest.NewFake(llmtest.Reply("events"))
	o := newOrchestrator(fake, nil)

	env := o.Respond(context.Background(), Request{Query: "any workshops on leadership?"})

	assert.Equal(t, types.CanvasSessions, env.CanvasType)
	link := env.CanvasUtils["session_link"].(string)
	assert.Contains(t, link, "search=")
	assert.Equal(t, "tok", env.CanvasUtils["session_api_token"])
}

func TestRespondGuidanceFallsBackOnModelError(t *testing.T) {
	fake := llmtest.NewFake(
		llmtest.Reply("job_guidance"),
		llmtest.Fail(errors.New("model down")),
	)
	o := newOrchestrator(fake, nil)

	env := o.Respond(context.Background(), Request{Query: "how do I negotiate salary?"})

	assert.Equal(t, types.CanvasNone, env.CanvasType)
	assert.NotEmpty(t, env.Text)
}

func TestRespondClassifierErrorDefaultsToText(t *testing.T) {
	fake := llmtest.NewFake(
		llmtest.Fail(errors.New("classifier down")),
		llmtest.Reply("Happy to chat! What would you like to work on?"),
	)
	o := newOrchestrator(fake, nil)

	env := o.Respond(context.Background(), Request{Query: "tell me something nice"})

	assert.Equal(t, types.CanvasNone, env.CanvasType)
	assert.Contains(t, env.Text, "Happy to chat!")
}
