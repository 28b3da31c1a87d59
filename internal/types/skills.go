package types

// SkillCategory is the fixed category enumeration for lexicon entries.
type SkillCategory string

// Skill categories recognized by the lexicon.
const (
	CategoryTechnical    SkillCategory = "technical"
	CategoryTool         SkillCategory = "tool"
	CategoryCloud        SkillCategory = "cloud"
	CategoryNonTechnical SkillCategory = "non-technical"
	CategoryIndustry     SkillCategory = "industry"
)

// SkillTag is a canonical skill attached to a profile or extraction result.
// Confidence is only meaningful for resume-derived skills; Proficiency is
// only meaningful on a user profile.
type SkillTag struct {
	Name        string        `json:"name"` // canonical, lowercase, trimmed
	Category    SkillCategory `json:"category,omitempty"`
	Confidence  float64       `json:"confidence,omitempty"`  // 0.0-1.0
	Proficiency int           `json:"proficiency,omitempty"` // 1-5
}
