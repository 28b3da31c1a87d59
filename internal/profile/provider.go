// Package profile supplies user profiles and aggregated skill demand to the
// matching and scheduling layers. How users register and authenticate is
// outside this module; providers only read.
package profile

import (
	"context"
	"fmt"

	"github.com/jonathan/jobscout/internal/types"
)

// SkillDemand counts how many users carry a given skill. The scheduler
// turns the top entries into scrape keywords.
type SkillDemand struct {
	Skill string `json:"skill"`
	Users int    `json:"users"`
}

// Provider hands back user profiles and demand aggregates.
type Provider interface {
	// Profile returns the profile for userID or a *NotFoundError.
	Profile(ctx context.Context, userID string) (*types.UserProfile, error)

	// TopSkills returns up to limit skills ordered by how many users
	// carry them, most popular first.
	TopSkills(ctx context.Context, limit int) ([]SkillDemand, error)
}

// NotFoundError indicates no profile exists for the requested user.
type NotFoundError struct {
	UserID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no profile for user %s", e.UserID)
}
