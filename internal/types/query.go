package types

import "math"

// Filters narrows a posting query. Zero values mean "no constraint".
type Filters struct {
	Keywords  string   `json:"keywords,omitempty"`
	Location  string   `json:"location,omitempty"` // substring over city/state
	Skills    []string `json:"skills,omitempty"`   // any-of intersection
	Remote    *bool    `json:"remote,omitempty"`
	MinSalary int      `json:"min_salary,omitempty"` // salary.min >= MinSalary
	MaxSalary int      `json:"max_salary,omitempty"` // salary.max <= MaxSalary
	Page      int      `json:"page,omitempty"`
	Limit     int      `json:"limit,omitempty"`
	SortBy    string   `json:"sort_by,omitempty"`
}

// Page describes pagination metadata returned alongside query results.
type Page struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

// NewPage computes pagination metadata for a total result count.
func NewPage(page, limit, total int) Page {
	pages := 0
	if limit > 0 {
		pages = int(math.Ceil(float64(total) / float64(limit)))
	}
	return Page{Page: page, Limit: limit, Total: total, Pages: pages}
}
