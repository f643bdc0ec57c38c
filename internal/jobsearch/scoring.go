package jobsearch

import (
	"strings"

	"github.com/askasha/asha-agent/internal/types"
)

// ScoreTitle estimates how well a posting title matches the requested skills.
// Scraped platforms carry no relevance score of their own, so the fraction of
// requested skills found in the title stands in for one. With no skills the
// keyword tokens are used instead. The result is in [0, 1].
func ScoreTitle(title string, params *types.JobSearchParams) float64 {
	lowered := strings.ToLower(title)

	terms := params.SkillList()
	if len(terms) == 0 {
		terms = strings.Fields(params.Keyword)
	}
	if len(terms) == 0 {
		return 0
	}

	matched := 0
	for _, term := range terms {
		term = strings.ToLower(strings.TrimSpace(term))
		if term != "" && strings.Contains(lowered, term) {
			matched++
		}
	}
	return float64(matched) / float64(len(terms))
}
