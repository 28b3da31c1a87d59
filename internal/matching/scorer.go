// Package matching computes compatibility scores between user profiles and
// postings. Everything here is a pure function: no state, no side effects,
// safe to call concurrently without synchronization.
package matching

import (
	"math"
	"sort"
	"strings"

	"github.com/jonathan/jobscout/internal/types"
)

// Factor weights. The overall score is the weighted sum of the four
// sub-scores normalized by the total weight applied.
const (
	skillWeight      = 50.0
	locationWeight   = 20.0
	salaryWeight     = 15.0
	experienceWeight = 15.0
)

// Blend of match percentage versus coverage inside the skill sub-score.
const (
	matchPctBlend = 0.7
	coverageBlend = 0.3
)

// Score computes the overall 0-100 compatibility between a user and a
// posting.
func Score(user *types.UserProfile, posting *types.Posting) int {
	totalScore := 0.0
	totalWeight := 0.0

	totalScore += computeSkillScore(user, posting) * skillWeight
	totalWeight += skillWeight

	totalScore += computeLocationScore(user, posting) * locationWeight
	totalWeight += locationWeight

	totalScore += computeSalaryScore(user, posting) * salaryWeight
	totalWeight += salaryWeight

	totalScore += computeExperienceScore(user, posting) * experienceWeight
	totalWeight += experienceWeight

	if totalWeight == 0 {
		return 0
	}
	return int(math.Round(totalScore / totalWeight * 100))
}

// Breakdown reports the overall score plus each sub-score scaled to 0-100.
// Recomputing either side independently must agree; both derive from the
// same sub-score functions.
func Breakdown(user *types.UserProfile, posting *types.Posting) types.MatchResult {
	return types.MatchResult{
		Overall: Score(user, posting),
		Breakdown: types.FactorScores{
			Skills:     round100(computeSkillScore(user, posting)),
			Location:   round100(computeLocationScore(user, posting)),
			Salary:     round100(computeSalaryScore(user, posting)),
			Experience: round100(computeExperienceScore(user, posting)),
		},
	}
}

// computeSkillScore blends how much of the posting's skill set the user
// covers with how much of the user's skill set is relevant.
func computeSkillScore(user *types.UserProfile, posting *types.Posting) float64 {
	if user == nil || len(user.Skills) == 0 {
		return 0.0
	}
	if len(posting.Skills) == 0 {
		return 0.5 // Neutral when the posting lists no skills
	}

	userSkills := make(map[string]bool, len(user.Skills))
	for _, tag := range user.Skills {
		userSkills[strings.ToLower(tag.Name)] = true
	}

	matching := 0
	for _, skill := range posting.Skills {
		if userSkills[strings.ToLower(skill)] {
			matching++
		}
	}

	if matching == 0 {
		return 0.0
	}

	matchPct := float64(matching) / float64(len(posting.Skills))
	coverageBonus := float64(matching) / float64(len(userSkills))

	return matchPct*matchPctBlend + coverageBonus*coverageBlend
}

// computeLocationScore compares the user's location preference with the
// posting's location.
func computeLocationScore(user *types.UserProfile, posting *types.Posting) float64 {
	if user == nil || user.Profile.Location == nil {
		return 0.5
	}

	userLoc := user.Profile.Location
	jobLoc := posting.Location

	if jobLoc.Remote && userLoc.Remote {
		return 1.0
	}

	if userLoc.City != "" && jobLoc.City != "" {
		if strings.EqualFold(userLoc.City, jobLoc.City) {
			return 1.0
		}
		if userLoc.State != "" && jobLoc.State != "" &&
			strings.EqualFold(userLoc.State, jobLoc.State) {
			return 0.6
		}
	}

	// Remote postings stay attractive even for city-bound users.
	if jobLoc.Remote {
		return 0.7
	}

	return 0.2
}

// computeSalaryScore compares the posting's range with the user's desired
// range.
func computeSalaryScore(user *types.UserProfile, posting *types.Posting) float64 {
	if user == nil || user.Preferences.SalaryRange == nil {
		return 0.5
	}
	if posting.Salary == nil || (posting.Salary.Min == 0 && posting.Salary.Max == 0) {
		return 0.5
	}

	userMin := user.Preferences.SalaryRange.Min
	userMax := user.Preferences.SalaryRange.Max
	if userMax == 0 {
		userMax = math.MaxInt
	}

	jobMin := posting.Salary.Min
	jobMax := posting.Salary.Max
	if jobMax == 0 {
		jobMax = jobMin
	}

	switch {
	case jobMin >= userMin && jobMax <= userMax:
		return 1.0 // Fully inside the desired range
	case jobMax >= userMin && jobMin <= userMax:
		return 0.7 // Ranges overlap
	case jobMin > userMax:
		return 0.8 // Above the desired range: a favorable surprise
	case jobMax < userMin:
		return 0.3
	default:
		return 0.5
	}
}

// seniorityLadder maps title keywords to inferred years of required
// experience. Checked most senior first so that a title like "Senior
// Software Architect" resolves to the architect rung, not the senior one.
var seniorityLadder = []struct {
	keywords []string
	years    int
}{
	{[]string{"staff", "distinguished"}, 10},
	{[]string{"lead", "principal", "architect"}, 7},
	{[]string{"senior", "sr."}, 5},
	{[]string{"mid", "intermediate"}, 3},
	{[]string{"junior", "entry"}, 1},
	{[]string{"intern", "trainee"}, 0},
}

// assumedMidLevelYears is used when a title carries no seniority signal.
const assumedMidLevelYears = 3

// computeExperienceScore infers the posting's required years from its
// title and compares them with the user's experience.
func computeExperienceScore(user *types.UserProfile, posting *types.Posting) float64 {
	if user == nil || user.Profile.Experience == nil {
		return 0.5
	}
	if posting.Title == "" {
		return 0.5
	}

	required := inferRequiredYears(posting.Title)
	d := abs(*user.Profile.Experience - required)

	switch {
	case d == 0:
		return 1.0
	case d <= 1:
		return 0.9
	case d <= 2:
		return 0.7
	case d <= 3:
		return 0.5
	default:
		return 0.3
	}
}

// inferRequiredYears walks the seniority ladder against a lowercased title.
func inferRequiredYears(title string) int {
	lowered := strings.ToLower(title)
	for _, rung := range seniorityLadder {
		for _, kw := range rung.keywords {
			if strings.Contains(lowered, kw) {
				return rung.years
			}
		}
	}
	return assumedMidLevelYears
}

// Ranked pairs a posting with its computed match.
type Ranked struct {
	Posting types.Posting     `json:"posting"`
	Match   types.MatchResult `json:"match"`
}

// Rank scores every posting against the user and orders the result best
// first, breaking score ties by newer posted date.
func Rank(user *types.UserProfile, postings []types.Posting) []Ranked {
	ranked := make([]Ranked, len(postings))
	for i, posting := range postings {
		p := posting
		ranked[i] = Ranked{Posting: p, Match: Breakdown(user, &p)}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Match.Overall != ranked[j].Match.Overall {
			return ranked[i].Match.Overall > ranked[j].Match.Overall
		}
		return ranked[i].Posting.PostedDate.After(ranked[j].Posting.PostedDate)
	})

	return ranked
}

func round100(score float64) int {
	return int(math.Round(score * 100))
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
