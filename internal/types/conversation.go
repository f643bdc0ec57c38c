package types

// ConversationTurn is one historical exchange between the user and the
// assistant. Turns are stored newest-first; callers reverse to chronological
// order before rendering prompt context.
type ConversationTurn struct {
	UserMessage   string `json:"message"`
	AssistantText string `json:"response_text"`
}

// RecentTurns returns the last k turns of a chronologically ordered history,
// preserving oldest-to-newest order. k <= 0 returns an empty slice.
func RecentTurns(history []ConversationTurn, k int) []ConversationTurn {
	if k <= 0 || len(history) == 0 {
		return nil
	}
	if len(history) > k {
		return history[len(history)-k:]
	}
	return history
}

// ResumeProfile is the user's parsed resume, supplied by the profile store.
// Skills are ordered by relevance (first entries are the strongest). The
// profile is read-only to the agent core.
type ResumeProfile struct {
	Skills         []string         `json:"skills"`
	WorkExperience []WorkExperience `json:"work_experience"`
	Education      []Education      `json:"education"`
}

// WorkExperience is one prior role on the resume.
type WorkExperience struct {
	Company     string `json:"company"`
	Role        string `json:"role"`
	Description string `json:"description,omitempty"`
}

// Education is one degree record. Education is always a typed record here;
// free-text education strings are normalized into this shape at the profile
// ingestion boundary, never at consumption sites.
type Education struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
}

// TopSkills returns up to n leading skills from the profile, skipping
// empty entries. Insertion order is relevance order.
func (p *ResumeProfile) TopSkills(n int) []string {
	if p == nil || n <= 0 {
		return nil
	}
	out := make([]string, 0, n)
	for _, s := range p.Skills {
		if s == "" {
			continue
		}
		out = append(out, s)
		if len(out) == n {
			break
		}
	}
	return out
}
