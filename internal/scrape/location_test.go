package scrape

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLocation_CityState(t *testing.T) {
	loc := ParseLocation("Mumbai, Maharashtra", "India")

	assert.Equal(t, "Mumbai", loc.City)
	assert.Equal(t, "Maharashtra", loc.State)
	assert.Equal(t, "India", loc.Country)
	assert.False(t, loc.Remote)
}

func TestParseLocation_CityOnly(t *testing.T) {
	loc := ParseLocation("Bangalore", "India")

	assert.Equal(t, "Bangalore", loc.City)
	assert.Empty(t, loc.State)
	assert.False(t, loc.Remote)
}

func TestParseLocation_RemoteIn(t *testing.T) {
	loc := ParseLocation("Remote in Mumbai", "India")

	assert.True(t, loc.Remote)
	assert.Equal(t, "Mumbai", loc.City)
	assert.Equal(t, "India", loc.Country)
}

func TestParseLocation_RemoteIndicators(t *testing.T) {
	for _, text := range []string{"Remote", "Work from home", "WFH - Pune"} {
		loc := ParseLocation(text, "India")
		assert.True(t, loc.Remote, "expected %q to be remote", text)
	}
}

func TestParseLocation_CaseInsensitiveRemote(t *testing.T) {
	loc := ParseLocation("REMOTE IN Delhi", "India")

	assert.True(t, loc.Remote)
	assert.Equal(t, "Delhi", loc.City)
}

func TestParseLocation_WhitespaceTrimmed(t *testing.T) {
	loc := ParseLocation("  Pune ,  Maharashtra  ", "India")

	assert.Equal(t, "Pune", loc.City)
	assert.Equal(t, "Maharashtra", loc.State)
}
