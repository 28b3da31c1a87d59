package skills

import (
	"math"
	"strings"

	"github.com/jonathan/jobscout/internal/types"
)

// Extraction is the result of running the lexicon against free text.
type Extraction struct {
	Skills      []string                         `json:"skills"`
	Categorized map[types.SkillCategory][]string `json:"categorized"`
	Confidence  float64                          `json:"confidence"`
}

// Extract scans text for every canonical skill in the lexicon. For each
// skill the aliases are tried in order and the first match marks the skill
// found; remaining aliases are skipped. Confidence is the fraction of the
// dictionary's total alias count matched, rounded to two decimals. The
// alias-count normalization is deliberate: lexicons padded with many
// aliases per skill earn proportionally less confidence per hit.
func Extract(text string) Extraction {
	if strings.TrimSpace(text) == "" {
		return Extraction{Skills: []string{}, Categorized: map[types.SkillCategory][]string{}}
	}

	lowered := strings.ToLower(text)

	found := make([]string, 0)
	seen := make(map[string]bool)
	categorized := make(map[types.SkillCategory][]string)
	matched := 0

	for _, cat := range lexicon {
		for _, entry := range cat.entries {
			for _, alias := range entry.aliases {
				if !aliasPatterns[alias].MatchString(lowered) {
					continue
				}
				matched++
				if !seen[entry.name] {
					seen[entry.name] = true
					found = append(found, entry.name)
				}
				categorized[cat.category] = append(categorized[cat.category], entry.name)
				break
			}
		}
	}

	confidence := 0.0
	if totalAliases > 0 {
		confidence = math.Round(float64(matched)/float64(totalAliases)*100) / 100
	}

	return Extraction{
		Skills:      found,
		Categorized: categorized,
		Confidence:  confidence,
	}
}

// proficiency maps overall extraction confidence to a 1-5 profile rating.
func proficiency(confidence float64) int {
	switch {
	case confidence > 0.8:
		return 4
	case confidence > 0.4:
		return 3
	default:
		return 2
	}
}

// Tags converts an extraction into profile-ready skill tags. Each tag
// carries its category, the extraction-wide confidence, and a proficiency
// estimate derived from it.
func (e Extraction) Tags() []types.SkillTag {
	tags := make([]types.SkillTag, 0, len(e.Skills))
	for _, skill := range e.Skills {
		category := types.CategoryTechnical
		for cat, names := range e.Categorized {
			if contains(names, skill) {
				category = cat
				break
			}
		}
		tags = append(tags, types.SkillTag{
			Name:        skill,
			Category:    category,
			Confidence:  e.Confidence,
			Proficiency: proficiency(e.Confidence),
		})
	}
	return tags
}

func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}
