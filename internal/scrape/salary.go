package scrape

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/jonathan/jobscout/internal/types"
)

// currencyMarker guards against mis-parsing arbitrary numbers (vacancy
// counts, dates) as salaries: the raw text must carry a currency symbol or
// an Indian scale word before any digits are trusted.
var currencyMarker = regexp.MustCompile(`(?i)₹|rs|lakh|thousand`)

// numberGroups matches numeric groups with optional thousands separators,
// including the Indian grouping style ("3,00,000").
var numberGroups = regexp.MustCompile(`[\d,]+`)

// ParseSalary extracts a salary range from text like
// "₹3,00,000 - ₹5,00,000 a year". Returns nil when the text carries no
// currency marker or no numbers. A single number is both min and max.
func ParseSalary(text string) *types.Salary {
	if !currencyMarker.MatchString(text) {
		return nil
	}

	var values []int
	for _, group := range numberGroups.FindAllString(text, -1) {
		digits := strings.ReplaceAll(group, ",", "")
		if digits == "" {
			continue
		}
		n, err := strconv.Atoi(digits)
		if err != nil {
			continue
		}
		values = append(values, n)
	}

	if len(values) == 0 {
		return nil
	}

	salary := &types.Salary{
		Min:      values[0],
		Max:      values[0],
		Currency: "INR",
	}
	if len(values) > 1 {
		salary.Max = values[1]
	}

	return salary
}
