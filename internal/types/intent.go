// Package types defines the shared domain types for the career-assistance
// agent: intents, conversation history, resume profiles, job search
// structures, roadmaps, and the response envelope returned to the frontend.
package types

// Intent is the closed set of query categories the classifier can produce.
type Intent string

// Intent values. Every request resolves to exactly one of these; the
// classifier never surfaces a raw model label outside this set.
const (
	IntentJobSearch   Intent = "job_search"
	IntentJobGuidance Intent = "job_guidance"
	IntentRoadmap     Intent = "roadmap"
	IntentEvents      Intent = "events"
	IntentGibberish   Intent = "gibberish"
	IntentNormalText  Intent = "normal_text"
)

// ValidIntents lists every intent value, in classification priority order.
var ValidIntents = []Intent{
	IntentJobSearch,
	IntentJobGuidance,
	IntentRoadmap,
	IntentEvents,
	IntentGibberish,
	IntentNormalText,
}

// IsValid reports whether i is a member of the closed intent set.
func (i Intent) IsValid() bool {
	for _, v := range ValidIntents {
		if i == v {
			return true
		}
	}
	return false
}
