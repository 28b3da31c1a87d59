package types

// MatchResult is the per-factor breakdown of a compatibility score. It is a
// pure derived value: recomputed per request, never persisted.
type MatchResult struct {
	Overall   int          `json:"overall"` // 0-100
	Breakdown FactorScores `json:"breakdown"`
}

// FactorScores holds the four sub-scores, each scaled to 0-100.
type FactorScores struct {
	Skills     int `json:"skills"`
	Location   int `json:"location"`
	Salary     int `json:"salary"`
	Experience int `json:"experience"`
}
