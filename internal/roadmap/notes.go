package roadmap

import (
	"fmt"
	"regexp"
	"strings"
)

// numericTimeframe matches explicit durations like "3 weeks" or "30 days".
var numericTimeframe = regexp.MustCompile(`(?i)\b(\d+|a|an|one|two|three|four|five|six|seven|eight|nine|ten)\s+(day|week|month)s?\b`)

var spelledNumbers = map[string]int{
	"a": 1, "an": 1, "one": 1, "two": 2, "three": 3, "four": 4, "five": 5,
	"six": 6, "seven": 7, "eight": 8, "nine": 9, "ten": 10,
}

// timeframeNote detects how long the user wants to spend and renders a
// steering line for the prompt. Returns "" when the query carries no
// duration cue.
func timeframeNote(query string) string {
	lowered := strings.ToLower(query)

	if m := numericTimeframe.FindStringSubmatch(lowered); m != nil {
		count, ok := spelledNumbers[m[1]]
		if !ok {
			fmt.Sscanf(m[1], "%d", &count)
		}
		unit := m[2]
		if count != 1 {
			unit += "s"
		}
		return fmt.Sprintf("The user wants to complete this in about %d %s; size the phases so the whole roadmap fits that window.\n", count, unit)
	}

	if strings.Contains(lowered, "quick") || strings.Contains(lowered, "short") {
		return "The user wants a short-term roadmap; keep it compact and focus on essentials.\n"
	}
	if strings.Contains(lowered, "thorough") || strings.Contains(lowered, "comprehensive") || strings.Contains(lowered, "detailed") {
		return "The user wants a thorough, long-term roadmap; cover fundamentals through advanced topics.\n"
	}
	return ""
}

// audienceCues maps a phrase in the query to the audience note it triggers.
// Order matters: the first match wins.
var audienceCues = []struct {
	phrase string
	note   string
}{
	{"career break", "The user is returning after a career break; favor returner-focused resources and a confidence-building ramp.\n"},
	{"returning", "The user is returning after a career break; favor returner-focused resources and a confidence-building ramp.\n"},
	{"restarting", "The user is restarting their career; favor returner-focused resources and a confidence-building ramp.\n"},
	{"mother", "The user is balancing family responsibilities; favor flexible, self-paced resources.\n"},
	{"balance", "The user is balancing other responsibilities; favor flexible, self-paced resources.\n"},
	{"starting out", "The user is just starting out; begin with true beginner resources.\n"},
	{"beginner", "The user is a beginner; begin with true beginner resources.\n"},
	{"new to", "The user is new to this field; begin with true beginner resources.\n"},
}

// audienceNote renders a steering line for who the roadmap is for, or ""
// when the query gives no signal.
func audienceNote(query string) string {
	lowered := strings.ToLower(query)
	for _, cue := range audienceCues {
		if strings.Contains(lowered, cue.phrase) {
			return cue.note
		}
	}
	return ""
}
