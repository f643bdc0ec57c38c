package types

import "strings"

// Platform identifiers for job sources. Herkey is the primary platform and
// always sorts first in aggregated results.
const (
	PlatformHerkey    = "herkey"
	PlatformLinkedIn  = "linkedin"
	PlatformGlassdoor = "glassdoor"
)

// DefaultPlatforms is the platform order used when the caller does not
// specify one.
func DefaultPlatforms() []string {
	return []string{PlatformHerkey, PlatformLinkedIn, PlatformGlassdoor}
}

// JobSearchParams is the structured query handed to the aggregator.
// Keyword is always non-empty by the time a params object reaches the
// aggregator; the extractor substitutes a deterministic fallback otherwise.
// Restrictive fields (industry, company name, salary and experience bounds)
// are deliberately absent: they over-constrain searches into empty results.
type JobSearchParams struct {
	Keyword       string   `json:"keyword" validate:"required"`
	LocationName  string   `json:"location_name,omitempty"`
	WorkMode      string   `json:"work_mode,omitempty" validate:"omitempty,oneof=remote onsite hybrid freelance"`
	JobType       string   `json:"job_types,omitempty" validate:"omitempty,oneof=full_time part_time freelance returnee_program volunteer"`
	JobSkills     string   `json:"job_skills,omitempty"`
	Platforms     []string `json:"platforms,omitempty"`
	PageNo        int      `json:"page_no"`
	PageSize      int      `json:"page_size"`
	IsGlobalQuery bool     `json:"is_global_query"`
}

// SkillList splits the comma-joined JobSkills field into trimmed entries.
func (p *JobSearchParams) SkillList() []string {
	if p.JobSkills == "" {
		return nil
	}
	parts := strings.Split(p.JobSkills, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if s := strings.TrimSpace(part); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// JobPosting is the normalized posting shape shared by all platforms.
// ExpiresOn, when set, uses the "2006-01-02 15:04:05" layout.
type JobPosting struct {
	ID              string  `json:"id"`
	Title           string  `json:"title"`
	CompanyName     string  `json:"company_name"`
	LocationName    string  `json:"location_name,omitempty"`
	Platform        string  `json:"platform"`
	ExpiresOn       string  `json:"expires_on,omitempty"`
	SkillMatchScore float64 `json:"skill_match_score,omitempty"`
	ApplyURL        string  `json:"apply_url,omitempty"`
}

// JobSearchResult is the aggregator's combined output. Postings are sorted
// herkey-first, then by descending skill match score. ErrorMessages holds
// one human-readable string per failed platform.
type JobSearchResult struct {
	Postings          []JobPosting `json:"postings"`
	PlatformsSearched []string     `json:"platforms_searched"`
	ErrorMessages     []string     `json:"error_messages,omitempty"`
}
