// Package extraction turns free-form job queries into structured
// JobSearchParams via LLM extraction with deterministic normalization and
// fallbacks. Extract never fails: malformed model output degrades to a
// minimal parameter object.
package extraction

import (
	"context"
	"encoding/json"
	"log"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/askasha/asha-agent/internal/llm"
	"github.com/askasha/asha-agent/internal/prompts"
	"github.com/askasha/asha-agent/internal/schemas"
	"github.com/askasha/asha-agent/internal/types"
)

// historyWindow is how many recent turns are rendered into the prompt.
const historyWindow = 3

// defaultPageSize is the initial page size for a fresh search.
const defaultPageSize = 15

// restrictedKeys are parameter names the model is forbidden to emit because
// they over-constrain searches into empty results. They are stripped even if
// the model produces them anyway.
var restrictedKeys = []string{
	"industries", "company_name", "min_year", "max_year", "salary_min", "salary_max",
}

// placeholderValues are model outputs that mean "not specified" and are
// treated as absent.
var placeholderValues = map[string]bool{
	"any": true, "all": true, "none": true, "not specified": true,
}

// keywordBuckets maps coarse query substrings to broad fallback keywords,
// checked in order.
var keywordBuckets = []struct {
	cues    []string
	keyword string
}{
	{[]string{"data", "analyst", "science"}, "data"},
	{[]string{"software", "developer", "engineer"}, "software"},
	{[]string{"marketing", "digital"}, "marketing"},
	{[]string{"design", "ui", "ux"}, "design"},
}

var validate = validator.New()

// Extractor derives JobSearchParams from natural-language queries.
type Extractor struct {
	client llm.Client
}

// NewExtractor creates an extractor over the given LLM client.
func NewExtractor(client llm.Client) *Extractor {
	return &Extractor{client: client}
}

// Extract builds job search parameters from the query, recent conversation
// history, and the optional resume profile. The returned params always have
// a non-empty keyword, defaults filled, and restrictive fields stripped.
func (e *Extractor) Extract(ctx context.Context, query string, history []types.ConversationTurn, profile *types.ResumeProfile) *types.JobSearchParams {
	raw, err := e.client.CompleteJSON(ctx, e.buildMessages(query, history, profile), llm.TierStandard)
	if err != nil {
		log.Printf("extraction: LLM call failed, using fallback params: %v", err)
		return minimalParams(query)
	}

	raw = llm.CleanJSONBlock(raw)
	if err := schemas.Validate(schemas.SchemaJobParams, raw); err != nil {
		log.Printf("extraction: model output failed schema check, using fallback params: %v", err)
		return minimalParams(query)
	}

	var fields map[string]any
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		log.Printf("extraction: model output was not valid JSON, using fallback params: %v", err)
		return minimalParams(query)
	}

	return normalize(fields, query, profile)
}

// buildMessages assembles the extraction prompt: fixed instructions, up to
// the last three history turns, resume context when present, then the query.
func (e *Extractor) buildMessages(query string, history []types.ConversationTurn, profile *types.ResumeProfile) []llm.Message {
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

	if profile != nil {
		if resumeCtx := renderResumeContext(profile); resumeCtx != "" {
			sb.WriteString(resumeCtx)
			sb.WriteString("\n")
		}
	}

	if sb.Len() > 0 {
		sb.WriteString("Current query:\n")
	}
	sb.WriteString(query)

	return []llm.Message{
		llm.System(prompts.MustGet("agent.json", "extract-job-params")),
		llm.User(sb.String()),
	}
}

// renderResumeContext renders skills and work experience as plain text.
func renderResumeContext(profile *types.ResumeProfile) string {
	var sb strings.Builder

	if len(profile.Skills) > 0 {
		sb.WriteString("Candidate skills: " + strings.Join(profile.Skills, ", ") + "\n")
	}
	for _, exp := range profile.WorkExperience {
		if exp.Company == "" || exp.Role == "" {
			continue
		}
		sb.WriteString("- " + exp.Role + " at " + exp.Company + "\n")
	}

	if sb.Len() == 0 {
		return ""
	}
	return "Candidate profile:\n" + sb.String()
}

// normalize applies defaults, placeholder stripping, restricted-key removal,
// keyword fallback, and skill capping to the parsed model output.
func normalize(fields map[string]any, query string, profile *types.ResumeProfile) *types.JobSearchParams {
	for _, key := range restrictedKeys {
		delete(fields, key)
	}

	params := &types.JobSearchParams{
		Keyword:      cleanString(fields["keyword"]),
		LocationName: cleanString(fields["location_name"]),
		WorkMode:     cleanString(fields["work_mode"]),
		JobType:      cleanString(fields["job_types"]),
		JobSkills:    cleanString(fields["job_skills"]),
		PageNo:       1,
		PageSize:     defaultPageSize,
		Platforms:    coercePlatforms(fields["platforms"]),
	}

	if params.Keyword == "" {
		params.Keyword = fallbackKeyword(query, profile)
	}

	params.JobSkills = capSkills(params.JobSkills, profile)

	if err := validate.Struct(params); err != nil {
		log.Printf("extraction: dropping out-of-range enum fields: %v", err)
		params.WorkMode = ""
		params.JobType = ""
	}

	return params
}

// minimalParams is the deterministic result when the model output could not
// be parsed at all.
func minimalParams(query string) *types.JobSearchParams {
	return &types.JobSearchParams{
		Keyword:   fallbackKeyword(query, nil),
		PageNo:    1,
		PageSize:  defaultPageSize,
		Platforms: types.DefaultPlatforms(),
	}
}

// fallbackKeyword derives a keyword when extraction produced none: the
// first couple of resume skills if available, else a coarse bucket match on
// the query, else the trimmed query itself, else the literal "jobs".
func fallbackKeyword(query string, profile *types.ResumeProfile) string {
	if skills := profile.TopSkills(2); len(skills) > 0 {
		return strings.Join(skills, " ")
	}

	lower := strings.ToLower(query)
	for _, bucket := range keywordBuckets {
		for _, cue := range bucket.cues {
			if strings.Contains(lower, cue) {
				return bucket.keyword
			}
		}
	}

	if trimmed := strings.TrimSpace(query); trimmed != "" {
		return trimmed
	}
	return "jobs"
}

// capSkills keeps at most three comma-separated skills, backfilling from
// the resume when extraction produced none.
func capSkills(skills string, profile *types.ResumeProfile) string {
	if skills == "" {
		if resumeSkills := profile.TopSkills(3); len(resumeSkills) > 0 {
			return strings.Join(resumeSkills, ",")
		}
		return ""
	}

	parts := strings.Split(skills, ",")
	kept := make([]string, 0, 3)
	for _, part := range parts {
		if s := strings.TrimSpace(part); s != "" {
			kept = append(kept, s)
		}
		if len(kept) == 3 {
			break
		}
	}
	return strings.Join(kept, ",")
}

// cleanString extracts a usable string value, dropping placeholders.
func cleanString(v any) string {
	s, ok := v.(string)
	if !ok {
		return ""
	}
	s = strings.TrimSpace(s)
	if s == "" || placeholderValues[strings.ToLower(s)] {
		return ""
	}
	return s
}

// coercePlatforms accepts either a list or a bare string from the model and
// always returns a non-empty platform list.
func coercePlatforms(v any) []string {
	switch val := v.(type) {
	case []any:
		out := make([]string, 0, len(val))
		for _, item := range val {
			if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
				out = append(out, strings.ToLower(strings.TrimSpace(s)))
			}
		}
		if len(out) > 0 {
			return out
		}
	case string:
		if s := strings.ToLower(strings.TrimSpace(val)); s != "" && !placeholderValues[s] {
			return []string{s}
		}
	}
	return types.DefaultPlatforms()
}
