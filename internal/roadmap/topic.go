// Package roadmap turns a learning request into an ordered set of
// phase-based steps, each with a curated resource link and a calendar
// label.
package roadmap

import (
	"regexp"
	"strings"
)

// defaultTopic stands in when nothing usable survives topic extraction.
const defaultTopic = "career development"

// leadingPhrases strip the conversational framing that precedes the actual
// topic ("can you create a roadmap for learning ..."). They only ever match
// at the start, so "machine learning" in the middle of a topic survives.
var leadingPhrases = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^(please\s+)?(can you\s+|could you\s+)?` +
		`(create|make|generate|build|give me|show me|suggest|i want|i need|i would like)\s+`),
	regexp.MustCompile(`(?i)^(a|an|the)\s+((learning|career)\s+)?(roadmap|path|plan)(\s+(for|to|on))?\s*`),
	regexp.MustCompile(`(?i)^(roadmap|path|plan)(\s+(for|to|on))?\s*`),
	regexp.MustCompile(`(?i)^(to\s+)?(learn(ing)?|study(ing)?|master(ing)?|become|becoming)\s+`),
}

// topicStopwords are filler tokens dropped from the extracted topic.
var topicStopwords = map[string]struct{}{
	"a": {}, "an": {}, "the": {}, "for": {}, "to": {}, "of": {}, "on": {},
	"in": {}, "me": {}, "my": {}, "that": {}, "please": {},
	"roadmap": {}, "path": {}, "plan": {},
}

// ExtractTopic reduces a roadmap request to its subject. "Create a roadmap
// for learning data science" becomes "data science".
func ExtractTopic(query string) string {
	topic := strings.TrimSpace(query)
	for changed := true; changed; {
		changed = false
		for _, re := range leadingPhrases {
			if stripped := re.ReplaceAllString(topic, ""); stripped != topic {
				topic = stripped
				changed = true
			}
		}
	}

	var kept []string
	for _, token := range strings.Fields(topic) {
		word := strings.ToLower(strings.Trim(token, ".,!?"))
		if _, drop := topicStopwords[word]; drop || word == "" {
			continue
		}
		kept = append(kept, word)
	}
	if len(kept) == 0 {
		return defaultTopic
	}
	return strings.Join(kept, " ")
}
