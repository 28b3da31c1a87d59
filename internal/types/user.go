package types

// UserProfile is the read-only view of a user that scoring and scheduling
// consume. How profiles are created and authenticated is outside this
// module; the provider only hands back this shape.
type UserProfile struct {
	ID          string          `json:"id"`
	Skills      []SkillTag      `json:"skills"`
	Profile     ProfileDetails  `json:"profile"`
	Preferences UserPreferences `json:"preferences"`
}

// ProfileDetails holds location and experience data used for matching.
type ProfileDetails struct {
	Location   *Location `json:"location,omitempty"`
	Experience *int      `json:"experience,omitempty"` // years, nil if unknown
}

// UserPreferences holds matching preferences supplied by the user.
type UserPreferences struct {
	SalaryRange *SalaryRange `json:"salary_range,omitempty"`
	JobTypes    []string     `json:"job_types,omitempty"`
}

// SalaryRange is the user's desired compensation band. Zero Min means no
// lower bound; zero Max means no upper bound.
type SalaryRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}
