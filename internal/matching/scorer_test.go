package matching

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/jobscout/internal/types"
)

func userWithSkills(names ...string) *types.UserProfile {
	tags := make([]types.SkillTag, len(names))
	for i, name := range names {
		tags[i] = types.SkillTag{Name: name}
	}
	return &types.UserProfile{Skills: tags}
}

func intPtr(n int) *int { return &n }

func TestComputeSkillScore_ExactMatch(t *testing.T) {
	user := userWithSkills("javascript", "react", "node", "mongodb")
	posting := &types.Posting{Skills: []string{"javascript", "react", "node", "mongodb"}}

	score := computeSkillScore(user, posting)

	// Full match and full coverage: 0.7*1.0 + 0.3*1.0 = 1.0
	assert.Greater(t, score, 0.8)
	assert.InDelta(t, 1.0, score, 0.001)
}

func TestComputeSkillScore_PartialMatch(t *testing.T) {
	user := userWithSkills("javascript", "python")
	posting := &types.Posting{Skills: []string{"javascript", "react", "node", "mongodb"}}

	score := computeSkillScore(user, posting)

	// matchPct = 1/4, coverage = 1/2
	assert.InDelta(t, 0.7*0.25+0.3*0.5, score, 0.001)
}

func TestComputeSkillScore_NoUserSkills(t *testing.T) {
	posting := &types.Posting{Skills: []string{"go"}}
	assert.Equal(t, 0.0, computeSkillScore(&types.UserProfile{}, posting))
}

func TestComputeSkillScore_NoPostingSkills(t *testing.T) {
	user := userWithSkills("go")
	assert.Equal(t, 0.5, computeSkillScore(user, &types.Posting{}))
}

func TestComputeSkillScore_CaseInsensitive(t *testing.T) {
	user := userWithSkills("JavaScript")
	posting := &types.Posting{Skills: []string{"javascript"}}

	assert.Greater(t, computeSkillScore(user, posting), 0.9)
}

func TestComputeSkillScore_Monotonicity(t *testing.T) {
	// Growing the intersection with posting skill count fixed must never
	// decrease the sub-score.
	posting := &types.Posting{Skills: []string{"a", "b", "c", "d"}}
	allSkills := []string{"a", "b", "c", "d"}

	prev := -1.0
	for n := 1; n <= len(allSkills); n++ {
		user := userWithSkills(allSkills[:n]...)
		score := computeSkillScore(user, posting)
		assert.GreaterOrEqual(t, score, prev)
		prev = score
	}
}

func TestComputeLocationScore_Ladder(t *testing.T) {
	city := func(city, state string, remote bool) *types.UserProfile {
		return &types.UserProfile{Profile: types.ProfileDetails{
			Location: &types.Location{City: city, State: state, Remote: remote},
		}}
	}
	posting := func(cityName, state string, remote bool) *types.Posting {
		return &types.Posting{Location: types.Location{City: cityName, State: state, Remote: remote}}
	}

	// Both remote-preferring
	assert.Equal(t, 1.0, computeLocationScore(city("", "", true), posting("", "", true)))
	// Same city, case-insensitive
	assert.Equal(t, 1.0, computeLocationScore(city("mumbai", "", false), posting("Mumbai", "", false)))
	// Same state, different city
	assert.Equal(t, 0.6, computeLocationScore(city("Pune", "Maharashtra", false), posting("Mumbai", "Maharashtra", false)))
	// Posting remote, user not remote-preferring
	assert.Equal(t, 0.7, computeLocationScore(city("Pune", "", false), posting("", "", true)))
	// No relationship at all
	assert.Equal(t, 0.2, computeLocationScore(city("Pune", "", false), posting("Chennai", "Tamil Nadu", false)))
	// Missing user location
	assert.Equal(t, 0.5, computeLocationScore(&types.UserProfile{}, posting("Mumbai", "", false)))
}

func TestComputeSalaryScore_Ladder(t *testing.T) {
	user := &types.UserProfile{Preferences: types.UserPreferences{
		SalaryRange: &types.SalaryRange{Min: 400000, Max: 800000},
	}}
	posting := func(min, max int) *types.Posting {
		return &types.Posting{Salary: &types.Salary{Min: min, Max: max, Currency: "INR"}}
	}

	// Fully inside
	assert.Equal(t, 1.0, computeSalaryScore(user, posting(500000, 700000)))
	// Overlap
	assert.Equal(t, 0.7, computeSalaryScore(user, posting(300000, 500000)))
	// Entirely above: favorable surprise
	assert.Equal(t, 0.8, computeSalaryScore(user, posting(900000, 1200000)))
	// Entirely below
	assert.Equal(t, 0.3, computeSalaryScore(user, posting(100000, 200000)))
	// Missing posting salary
	assert.Equal(t, 0.5, computeSalaryScore(user, &types.Posting{}))
	// Missing user preference
	assert.Equal(t, 0.5, computeSalaryScore(&types.UserProfile{}, posting(500000, 700000)))
}

func TestComputeExperienceScore_SeniorityLadder(t *testing.T) {
	user := func(years int) *types.UserProfile {
		return &types.UserProfile{Profile: types.ProfileDetails{Experience: intPtr(years)}}
	}

	// Senior title needs 5 years; exact match
	assert.Equal(t, 1.0, computeExperienceScore(user(5), &types.Posting{Title: "Senior Engineer"}))
	// Architect needs 7; user has 3 -> diff 4 -> 0.3
	assert.Equal(t, 0.3, computeExperienceScore(user(3), &types.Posting{Title: "Senior Software Architect"}))
	// Intern needs 0; user has 1 -> 0.9
	assert.Equal(t, 0.9, computeExperienceScore(user(1), &types.Posting{Title: "Engineering Intern"}))
	// Unrecognized title assumes mid-level (3)
	assert.Equal(t, 1.0, computeExperienceScore(user(3), &types.Posting{Title: "Software Engineer"}))
	// Staff needs 10; user has 7 -> 0.5
	assert.Equal(t, 0.5, computeExperienceScore(user(7), &types.Posting{Title: "Staff Engineer"}))
	// Missing experience
	assert.Equal(t, 0.5, computeExperienceScore(&types.UserProfile{}, &types.Posting{Title: "Senior Engineer"}))
}

func TestExperienceExample_SeniorArchitectAgainstMidUser(t *testing.T) {
	user := &types.UserProfile{Profile: types.ProfileDetails{Experience: intPtr(3)}}
	posting := &types.Posting{Title: "Senior Software Architect"}

	assert.LessOrEqual(t, computeExperienceScore(user, posting), 0.5)
}

func TestScore_Bounds(t *testing.T) {
	users := []*types.UserProfile{
		nil,
		{},
		userWithSkills("javascript", "react"),
		{
			Skills:      []types.SkillTag{{Name: "go"}},
			Profile:     types.ProfileDetails{Location: &types.Location{City: "Mumbai"}, Experience: intPtr(4)},
			Preferences: types.UserPreferences{SalaryRange: &types.SalaryRange{Min: 100, Max: 200}},
		},
	}
	postings := []*types.Posting{
		{},
		{Title: "Senior Dev", Skills: []string{"go"}},
		{
			Title:    "Lead Architect",
			Skills:   []string{"javascript", "react", "node"},
			Location: types.Location{City: "Mumbai", Remote: true},
			Salary:   &types.Salary{Min: 150, Max: 300},
		},
	}

	for _, user := range users {
		for _, posting := range postings {
			score := Score(user, posting)
			assert.GreaterOrEqual(t, score, 0)
			assert.LessOrEqual(t, score, 100)

			result := Breakdown(user, posting)
			assert.Equal(t, score, result.Overall)
			for _, sub := range []int{result.Breakdown.Skills, result.Breakdown.Location,
				result.Breakdown.Salary, result.Breakdown.Experience} {
				assert.GreaterOrEqual(t, sub, 0)
				assert.LessOrEqual(t, sub, 100)
			}
		}
	}
}

func TestBreakdown_AgreesWithScore(t *testing.T) {
	user := &types.UserProfile{
		Skills:      []types.SkillTag{{Name: "javascript"}, {Name: "react"}},
		Profile:     types.ProfileDetails{Location: &types.Location{City: "Mumbai"}, Experience: intPtr(2)},
		Preferences: types.UserPreferences{SalaryRange: &types.SalaryRange{Min: 300000, Max: 600000}},
	}
	posting := &types.Posting{
		Title:    "Junior Frontend Developer",
		Skills:   []string{"javascript", "react"},
		Location: types.Location{City: "Mumbai", Country: "India"},
		Salary:   &types.Salary{Min: 350000, Max: 450000, Currency: "INR"},
	}

	result := Breakdown(user, posting)
	assert.Equal(t, Score(user, posting), result.Overall)

	// Recompute the overall from the reported sub-scores.
	recomputed := (float64(result.Breakdown.Skills)*skillWeight +
		float64(result.Breakdown.Location)*locationWeight +
		float64(result.Breakdown.Salary)*salaryWeight +
		float64(result.Breakdown.Experience)*experienceWeight) /
		(skillWeight + locationWeight + salaryWeight + experienceWeight)
	assert.InDelta(t, float64(result.Overall), recomputed, 1.0)
}

func TestRank_OrdersByScoreThenRecency(t *testing.T) {
	user := userWithSkills("go", "postgresql")
	now := time.Now()

	strong := types.Posting{Title: "Go Developer", Skills: []string{"go", "postgresql"}, PostedDate: now.Add(-48 * time.Hour)}
	weak := types.Posting{Title: "PHP Developer", Skills: []string{"php"}, PostedDate: now}
	tieOld := types.Posting{Title: "Backend Dev", Skills: []string{"ruby"}, PostedDate: now.Add(-72 * time.Hour)}
	tieNew := types.Posting{Title: "Platform Dev", Skills: []string{"ruby"}, PostedDate: now.Add(-time.Hour)}

	ranked := Rank(user, []types.Posting{weak, tieOld, strong, tieNew})
	require.Len(t, ranked, 4)

	assert.Equal(t, "Go Developer", ranked[0].Posting.Title)
	// Equal-score postings: newer first.
	assert.True(t, ranked[1].Match.Overall == ranked[2].Match.Overall ||
		ranked[1].Posting.PostedDate.After(ranked[2].Posting.PostedDate))

	for i := 1; i < len(ranked); i++ {
		assert.GreaterOrEqual(t, ranked[i-1].Match.Overall, ranked[i].Match.Overall)
	}
}

func TestScore_NilUser(t *testing.T) {
	// Scoring never fails: missing data degrades to neutral or zero.
	score := Score(nil, &types.Posting{Title: "Senior Engineer", Skills: []string{"go"}})
	assert.GreaterOrEqual(t, score, 0)
	assert.LessOrEqual(t, score, 100)
}
