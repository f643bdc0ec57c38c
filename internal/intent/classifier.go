// Package intent maps free-form user text to one of the closed set of
// intent labels that drive the agent's dispatch.
package intent

import (
	"context"
	"log"
	"strings"

	"github.com/askasha/asha-agent/internal/llm"
	"github.com/askasha/asha-agent/internal/prompts"
	"github.com/askasha/asha-agent/internal/types"
)

// Classifier resolves queries to intents via a single constrained LLM call
// with a deterministic heuristic cascade for off-label outputs.
type Classifier struct {
	client llm.Client
}

// NewClassifier creates a classifier over the given LLM client.
func NewClassifier(client llm.Client) *Classifier {
	return &Classifier{client: client}
}

// Classify returns the intent for a query. The result is always a member of
// the closed intent set: off-label model output is coerced through substring
// heuristics and an LLM failure defaults to normal_text, so classification
// itself can never fail a request.
func (c *Classifier) Classify(ctx context.Context, query string) types.Intent {
	systemPrompt := prompts.MustGet("agent.json", "classify-intent")

	raw, err := c.client.Complete(ctx, []llm.Message{
		llm.System(systemPrompt),
		llm.User(query),
	}, llm.TierLite)
	if err != nil {
		log.Printf("intent: classification call failed, defaulting to normal_text: %v", err)
		return types.IntentNormalText
	}

	return Coerce(raw)
}

// Coerce maps a raw model label onto the closed intent set. Exact matches
// pass through; anything else goes through substring heuristics in priority
// order.
func Coerce(raw string) types.Intent {
	label := strings.ToLower(strings.TrimSpace(raw))

	switch types.Intent(label) {
	case types.IntentJobSearch, types.IntentJobGuidance, types.IntentRoadmap,
		types.IntentEvents, types.IntentNormalText:
		return types.Intent(label)
	}

	switch {
	case strings.Contains(label, "job"):
		if strings.Contains(label, "search") || strings.Contains(label, "list") || strings.Contains(label, "find") {
			return types.IntentJobSearch
		}
		return types.IntentJobGuidance
	case strings.Contains(label, "road"), strings.Contains(label, "path"), strings.Contains(label, "learn"):
		return types.IntentRoadmap
	case strings.Contains(label, "event"), strings.Contains(label, "workshop"):
		return types.IntentEvents
	default:
		return types.IntentNormalText
	}
}
