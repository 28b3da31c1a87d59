package scrape

import (
	"regexp"
	"strings"

	"github.com/jonathan/jobscout/internal/types"
)

var remotePattern = regexp.MustCompile(`(?i)remote|work from home|wfh`)

var remoteInPrefix = regexp.MustCompile(`(?i)^remote in `)

// notSpecifiedCity is the sentinel for cards with no usable location text.
const notSpecifiedCity = "Not specified"

// ParseLocation interprets free-form location text from a job card.
// Handles "Mumbai, Maharashtra", "Bangalore", "Remote in Delhi". The
// country is asserted from the source, not parsed.
func ParseLocation(text, country string) types.Location {
	remote := remotePattern.MatchString(text)

	clean := strings.TrimSpace(remoteInPrefix.ReplaceAllString(strings.TrimSpace(text), ""))

	loc := types.Location{Country: country, Remote: remote}

	city, state, found := strings.Cut(clean, ",")
	city = strings.TrimSpace(city)
	if city == "" {
		city = notSpecifiedCity
	}
	loc.City = city
	if found {
		loc.State = strings.TrimSpace(state)
	}

	return loc
}

// defaultLocation is the fallback when no location selector matches.
func defaultLocation(country string) types.Location {
	return types.Location{City: notSpecifiedCity, Country: country, Remote: false}
}
