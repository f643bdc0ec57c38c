// Package agent sequences one chat request end to end: safety screening,
// intent classification, the intent's branch, and response formatting. The
// orchestrator never returns an error; every path terminates in a valid
// response envelope.
package agent

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/askasha/asha-agent/internal/extraction"
	"github.com/askasha/asha-agent/internal/intent"
	"github.com/askasha/asha-agent/internal/jobsearch"
	"github.com/askasha/asha-agent/internal/llm"
	"github.com/askasha/asha-agent/internal/prompts"
	"github.com/askasha/asha-agent/internal/respond"
	"github.com/askasha/asha-agent/internal/roadmap"
	"github.com/askasha/asha-agent/internal/safety"
	"github.com/askasha/asha-agent/internal/types"
)

// resumeMarker in the query asks for the user's profile to inform the
// answer. Request.UseResume is the explicit equivalent; either triggers it.
const resumeMarker = "@resume"

// textHistoryWindow is how many recent turns the free-text branches see.
const textHistoryWindow = 3

// Request is one user message plus its externally supplied context. History
// is chronological, oldest first. Resume may be nil.
type Request struct {
	Query     string
	History   []types.ConversationTurn
	Resume    *types.ResumeProfile
	UseResume bool
}

// Orchestrator wires the pipeline stages together.
type Orchestrator struct {
	client       llm.Client
	safety       *safety.Filter
	intents      *intent.Classifier
	extractor    *extraction.Extractor
	search       *jobsearch.Aggregator
	roadmaps     *roadmap.Generator
	capabilities *jobsearch.CapabilitySet
	templates    respond.TemplateProvider
	formatter    *respond.Formatter
	now          func() time.Time
}

// New assembles an orchestrator. capabilities may be nil; the events branch
// then returns only the session link without inline results.
func New(
	client llm.Client,
	filter *safety.Filter,
	search *jobsearch.Aggregator,
	capabilities *jobsearch.CapabilitySet,
	templates respond.TemplateProvider,
	formatter *respond.Formatter,
) *Orchestrator {
	return &Orchestrator{
		client:       client,
		safety:       filter,
		intents:      intent.NewClassifier(client),
		extractor:    extraction.NewExtractor(client),
		search:       search,
		roadmaps:     roadmap.NewGenerator(client),
		capabilities: capabilities,
		templates:    templates,
		formatter:    formatter,
		now:          time.Now,
	}
}

// WithClock overrides the clock, used by tests.
func (o *Orchestrator) WithClock(now func() time.Time) *Orchestrator {
	o.now = now
	return o
}

// Respond processes one request. Safety flags short-circuit before intent
// classification, so flagged input never reaches the model.
func (o *Orchestrator) Respond(ctx context.Context, req Request) *types.ResponseEnvelope {
	screened := o.safety.Classify(ctx, req.Query)
	if screened.IsProfane {
		return o.formatter.Profanity()
	}
	if screened.IsGibberish {
		return o.formatter.Gibberish()
	}

	switch o.intents.Classify(ctx, req.Query) {
	case types.IntentJobSearch:
		return o.respondJobSearch(ctx, req)
	case types.IntentRoadmap:
		return o.respondRoadmap(ctx, req)
	case types.IntentEvents:
		return o.respondEvents(ctx, req)
	case types.IntentGibberish:
		return o.formatter.Gibberish()
	case types.IntentJobGuidance:
		return o.respondGenerated(ctx, req, "job-guidance", "")
	default:
		greeting := o.templates.Greeting(o.now())
		return o.respondGenerated(ctx, req, "normal-text", greeting)
	}
}

func (o *Orchestrator) respondJobSearch(ctx context.Context, req Request) *types.ResponseEnvelope {
	profile := o.resumeProfile(req)
	params := o.extractor.Extract(ctx, req.Query, req.History, profile)
	result := o.search.Search(ctx, params)
	return o.formatter.JobSearch(ctx, params, result, profile != nil)
}

func (o *Orchestrator) respondRoadmap(ctx context.Context, req Request) *types.ResponseEnvelope {
	topic, steps := o.roadmaps.Generate(ctx, req.Query, req.History)
	return o.formatter.Roadmap(topic, steps)
}

func (o *Orchestrator) respondEvents(ctx context.Context, req Request) *types.ResponseEnvelope {
	topic := roadmap.ExtractTopic(req.Query)
	env := o.formatter.Events(ctx, topic)

	if o.capabilities != nil {
		if capability, ok := o.capabilities.Get(jobsearch.CapabilitySessionSearch); ok {
			sessions, err := capability.Invoke(ctx, map[string]any{"query": topic})
			if err != nil {
				log.Printf("agent: session search failed, returning link only: %v", err)
			} else {
				env.CanvasUtils["session_results"] = sessions
			}
		}
	}
	return env
}

// respondGenerated handles the free-text branches. On model failure the
// job-guidance branch falls back to a guidance template; small talk falls
// back to the refusal text.
func (o *Orchestrator) respondGenerated(ctx context.Context, req Request, promptKey, prefix string) *types.ResponseEnvelope {
	profile := o.resumeProfile(req)

	text, err := o.client.Complete(ctx, o.textMessages(promptKey, req, profile), llm.TierStandard)
	if err != nil {
		log.Printf("agent: %s generation failed: %v", promptKey, err)
		if promptKey == "job-guidance" {
			topic := roadmap.ExtractTopic(req.Query)
			return o.formatter.Text(o.templates.Guidance(topic, profile != nil))
		}
		return o.formatter.Text("")
	}
	return o.formatter.Text(prefix + strings.TrimSpace(text))
}

func (o *Orchestrator) textMessages(promptKey string, req Request, profile *types.ResumeProfile) []llm.Message {
	var sb strings.Builder

	recent := types.RecentTurns(req.History, textHistoryWindow)
	if len(recent) > 0 {
		sb.WriteString("Previous messages (in chronological order):\n")
		for _, turn := range recent {
			if turn.UserMessage != "" {
				sb.WriteString("User: " + turn.UserMessage + "\n")
			}
			if turn.AssistantText != "" {
				sb.WriteString("Assistant: " + turn.AssistantText + "\n")
			}
		}
		sb.WriteString("\n")
	}

	if profile != nil {
		if skills := profile.TopSkills(5); len(skills) > 0 {
			sb.WriteString("The user's resume lists these skills: " + strings.Join(skills, ", ") + "\n\n")
		}
	}

	if sb.Len() > 0 {
		sb.WriteString("Current query:\n")
	}
	sb.WriteString(req.Query)

	return []llm.Message{
		llm.System(prompts.MustGet("agent.json", promptKey)),
		llm.User(sb.String()),
	}
}

// resumeProfile returns the profile only when the request opted in, via the
// explicit flag or the in-text marker.
func (o *Orchestrator) resumeProfile(req Request) *types.ResumeProfile {
	if req.Resume == nil {
		return nil
	}
	if req.UseResume || strings.Contains(req.Query, resumeMarker) {
		return req.Resume
	}
	return nil
}
