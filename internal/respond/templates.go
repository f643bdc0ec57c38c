// Package respond turns per-intent results into the uniform response
// envelope. Response text comes from small pools of equivalent phrasings so
// repeated queries do not read identically.
package respond

import (
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/askasha/asha-agent/internal/prompts"
)

// JobSearchContext carries what the job-search text templates interpolate.
type JobSearchContext struct {
	Keyword     string
	Location    string
	Platforms   []string
	ResultCount int
	UsedResume  bool
}

// TemplateProvider selects response text per outcome. The default
// implementation keeps pools as data; an enhanced provider can be injected
// at composition time.
type TemplateProvider interface {
	JobSearch(ctx JobSearchContext) string
	Roadmap(topic string) string
	Events(topic string) string
	Guidance(topic string, usedResume bool) string
	Profanity() string
	Gibberish() string
	Refusal() string
	Greeting(now time.Time) string
}

var jobSearchSuccess = []string{
	"Here are some {{.Keyword}} opportunities I found{{.LocationPhrase}}. Take a look and let me know if any catch your eye!",
	"Great news! I found {{.Keyword}} roles{{.LocationPhrase}} that could be a good fit for you.",
	"I've pulled together {{.Keyword}} openings{{.LocationPhrase}}. Have a look through them!",
}

var jobSearchSuccessResume = []string{
	"Based on your resume, here are {{.Keyword}} opportunities{{.LocationPhrase}} that match your background.",
	"I matched your resume against current openings and found these {{.Keyword}} roles{{.LocationPhrase}}.",
	"Going by the skills on your resume, these {{.Keyword}} positions{{.LocationPhrase}} look promising.",
}

var jobSearchEmpty = []string{
	"I couldn't find any {{.Keyword}} opportunities{{.LocationPhrase}} right now. Try broadening the search or checking back soon.",
	"No {{.Keyword}} openings{{.LocationPhrase}} turned up this time. A wider location or different keywords might help.",
}

var jobSearchEmptyResume = []string{
	"I couldn't find openings matching your resume{{.LocationPhrase}} just now. We could try different keywords from your experience.",
	"Nothing matched your resume profile{{.LocationPhrase}} this time. Want me to search with broader terms?",
}

var platformHighlight = []string{
	" These results come from {{.Platform}}.",
	" All of these are sourced from {{.Platform}}.",
}

var roadmapPool = []string{
	"Here's a step-by-step roadmap for {{.Topic}}. Work through the phases in order and adjust the pace to what suits you.",
	"I've put together a {{.Topic}} roadmap for you. Each phase builds on the last, with a resource to get you started.",
	"Your {{.Topic}} learning path is ready! Take it one phase at a time.",
}

var eventsPool = []string{
	"Here are community sessions and events around {{.Topic}} you might enjoy.",
	"I found some sessions on {{.Topic}} happening in the community. Have a look!",
}

var guidancePool = []string{
	"Here are some thoughts on {{.Topic}} that should help you move forward.",
	"Let's work through {{.Topic}} together. Here's my advice.",
}

var guidanceResumePool = []string{
	"Looking at your background, here's my advice on {{.Topic}}.",
	"Based on your resume, here's how I'd approach {{.Topic}}.",
}

var profanityPool = []string{
	"I'd love to keep helping, but let's keep our conversation respectful.",
	"Let's keep things professional so I can give you my best help.",
	"I'm here to support your career journey. Let's keep the conversation positive.",
	"I understand you may be frustrated, but I can only continue if we keep things respectful.",
	"Let's take a breath and refocus on your career goals.",
}

// gibberishText asks for a rephrase. A single fixed string, not a pool.
const gibberishText = "I didn't quite catch that. Could you rephrase your question? I can help with job searches, learning roadmaps, career guidance, and community events."

// refusalText is the fallback when generation fails on a text branch.
const refusalText = "I'm here to help with career topics like job searches, learning roadmaps, and professional guidance. Could you tell me a bit more about what you're looking for?"

var morningGreetings = []string{
	"Good morning! ",
	"Morning! Hope your day is off to a great start. ",
}

var afternoonGreetings = []string{
	"Good afternoon! ",
	"Hope your day is going well! ",
}

var eveningGreetings = []string{
	"Good evening! ",
	"Hope you had a good day! ",
}

// StaticTemplates is the default TemplateProvider. Selection within a pool
// is uniformly random.
type StaticTemplates struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewStaticTemplates creates a provider seeded from the current time.
func NewStaticTemplates() *StaticTemplates {
	return &StaticTemplates{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

func (t *StaticTemplates) pick(pool []string) string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return pool[t.rng.Intn(len(pool))]
}

// JobSearch renders the job-search response line for the given outcome.
func (t *StaticTemplates) JobSearch(ctx JobSearchContext) string {
	var pool []string
	switch {
	case ctx.ResultCount > 0 && ctx.UsedResume:
		pool = jobSearchSuccessResume
	case ctx.ResultCount > 0:
		pool = jobSearchSuccess
	case ctx.UsedResume:
		pool = jobSearchEmptyResume
	default:
		pool = jobSearchEmpty
	}

	locationPhrase := ""
	if ctx.Location != "" {
		locationPhrase = " in " + ctx.Location
	}
	text := prompts.Format(t.pick(pool), map[string]string{
		"Keyword":        ctx.Keyword,
		"LocationPhrase": locationPhrase,
	})

	if ctx.ResultCount > 0 && len(ctx.Platforms) == 1 {
		text += prompts.Format(t.pick(platformHighlight), map[string]string{
			"Platform": capitalize(ctx.Platforms[0]),
		})
	}
	return text
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func (t *StaticTemplates) Roadmap(topic string) string {
	return prompts.Format(t.pick(roadmapPool), map[string]string{"Topic": topic})
}

func (t *StaticTemplates) Events(topic string) string {
	return prompts.Format(t.pick(eventsPool), map[string]string{"Topic": topic})
}

func (t *StaticTemplates) Guidance(topic string, usedResume bool) string {
	pool := guidancePool
	if usedResume {
		pool = guidanceResumePool
	}
	return prompts.Format(t.pick(pool), map[string]string{"Topic": topic})
}

func (t *StaticTemplates) Profanity() string { return t.pick(profanityPool) }

func (t *StaticTemplates) Gibberish() string { return gibberishText }

func (t *StaticTemplates) Refusal() string { return refusalText }

// Greeting returns a time-of-day opener, including its trailing space.
func (t *StaticTemplates) Greeting(now time.Time) string {
	switch hour := now.Hour(); {
	case hour < 12:
		return t.pick(morningGreetings)
	case hour < 17:
		return t.pick(afternoonGreetings)
	default:
		return t.pick(eveningGreetings)
	}
}
