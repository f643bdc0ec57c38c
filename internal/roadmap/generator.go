package roadmap

import (
	"context"
	"encoding/json"
	"log"
	"strings"

	"github.com/askasha/asha-agent/internal/llm"
	"github.com/askasha/asha-agent/internal/prompts"
	"github.com/askasha/asha-agent/internal/schemas"
	"github.com/askasha/asha-agent/internal/types"
)

// historyWindow is how many recent turns are shown to the model. Roadmap
// requests rarely depend on deep context, so the window is small.
const historyWindow = 2

// maxSteps caps the roadmap length; the model is asked for 5 to 8 steps
// and anything beyond 8 is truncated.
const maxSteps = 8

// Generator produces learning roadmaps. Model failures degrade to a fixed
// general-purpose roadmap, so Generate always returns usable steps.
type Generator struct {
	client llm.Client
}

// NewGenerator creates a roadmap generator.
func NewGenerator(client llm.Client) *Generator {
	return &Generator{client: client}
}

// Generate returns the extracted topic and its roadmap steps.
func (g *Generator) Generate(ctx context.Context, query string, history []types.ConversationTurn) (string, []types.RoadmapStep) {
	topic := ExtractTopic(query)

	raw, err := g.client.CompleteJSON(ctx, g.buildMessages(query, topic, history), llm.TierStandard)
	if err != nil {
		log.Printf("roadmap: generation failed, using fallback: %v", err)
		return topic, FallbackSteps(topic)
	}

	steps, err := parseSteps(raw)
	if err != nil {
		log.Printf("roadmap: unusable model output, using fallback: %v", err)
		return topic, FallbackSteps(topic)
	}
	return topic, steps
}

func (g *Generator) buildMessages(query, topic string, history []types.ConversationTurn) []llm.Message {
	systemPrompt := prompts.Format(prompts.MustGet("agent.json", "generate-roadmap"), map[string]string{
		"TimeframeNote": timeframeNote(query),
		"AudienceNote":  audienceNote(query),
	})

	var sb strings.Builder
	recent := types.RecentTurns(history, historyWindow)
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
	sb.WriteString("Topic: " + topic)

	return []llm.Message{
		llm.System(systemPrompt),
		llm.User(sb.String()),
	}
}

// parseSteps validates and decodes the model's JSON output, then fills any
// missing calendar labels from the step title.
func parseSteps(raw string) ([]types.RoadmapStep, error) {
	clean := llm.CleanJSONBlock(raw)
	if err := schemas.Validate(schemas.SchemaRoadmap, clean); err != nil {
		return nil, err
	}

	var steps []types.RoadmapStep
	if err := json.Unmarshal([]byte(clean), &steps); err != nil {
		return nil, err
	}
	if len(steps) > maxSteps {
		steps = steps[:maxSteps]
	}

	for i := range steps {
		if steps[i].CalendarEvent == "" {
			steps[i].CalendarEvent = steps[i].Title
		}
	}
	return steps, nil
}

// FallbackSteps is the static roadmap used when generation fails. Links
// stay within the allowed resource domains.
func FallbackSteps(topic string) []types.RoadmapStep {
	return []types.RoadmapStep{
		{
			Title:         "Build the fundamentals",
			Description:   "Work through an introductory course on " + topic + " to build a solid base.",
			Link:          "https://www.coursera.org",
			CalendarEvent: "Fundamentals: " + topic,
		},
		{
			Title:         "Practice hands-on",
			Description:   "Apply what you learned through free guided exercises and small projects.",
			Link:          "https://www.freecodecamp.org",
			CalendarEvent: "Practice: " + topic,
		},
		{
			Title:         "Go deeper",
			Description:   "Take an intermediate course to cover the areas the basics skipped.",
			Link:          "https://www.linkedin.com/learning",
			CalendarEvent: "Deep dive: " + topic,
		},
		{
			Title:         "Build a portfolio project",
			Description:   "Create one substantial project that shows your " + topic + " skills end to end.",
			Link:          "https://roadmap.sh",
			CalendarEvent: "Portfolio project",
		},
		{
			Title:         "Prepare for interviews",
			Description:   "Practice explaining your work and answering questions with mock interviews.",
			Link:          "https://www.pramp.com",
			CalendarEvent: "Interview prep",
		},
	}
}
