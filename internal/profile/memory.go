package profile

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/jonathan/jobscout/internal/types"
)

// MemoryProvider is an in-process Provider for tests and single-node runs.
type MemoryProvider struct {
	mu       sync.RWMutex
	profiles map[string]types.UserProfile
}

// NewMemoryProvider returns an empty MemoryProvider.
func NewMemoryProvider() *MemoryProvider {
	return &MemoryProvider{profiles: make(map[string]types.UserProfile)}
}

// Put stores or replaces a profile keyed by its ID.
func (p *MemoryProvider) Put(profile types.UserProfile) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.profiles[profile.ID] = profile
}

// Profile returns the profile for userID or a *NotFoundError.
func (p *MemoryProvider) Profile(_ context.Context, userID string) (*types.UserProfile, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	profile, ok := p.profiles[userID]
	if !ok {
		return nil, &NotFoundError{UserID: userID}
	}
	return &profile, nil
}

// TopSkills aggregates skill popularity across all stored profiles. Skills
// are counted once per user, case-insensitively, and returned most popular
// first with ties broken alphabetically so the ordering is stable.
func (p *MemoryProvider) TopSkills(_ context.Context, limit int) ([]SkillDemand, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	counts := make(map[string]int)
	for _, profile := range p.profiles {
		seen := make(map[string]bool, len(profile.Skills))
		for _, tag := range profile.Skills {
			name := strings.ToLower(tag.Name)
			if name == "" || seen[name] {
				continue
			}
			seen[name] = true
			counts[name]++
		}
	}

	demand := make([]SkillDemand, 0, len(counts))
	for skill, users := range counts {
		demand = append(demand, SkillDemand{Skill: skill, Users: users})
	}
	sort.Slice(demand, func(i, j int) bool {
		if demand[i].Users != demand[j].Users {
			return demand[i].Users > demand[j].Users
		}
		return demand[i].Skill < demand[j].Skill
	})

	if limit > 0 && len(demand) > limit {
		demand = demand[:limit]
	}
	return demand, nil
}
