package scrape

import (
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonathan/jobscout/internal/skills"
	"github.com/jonathan/jobscout/internal/types"
)

// Sentinels for card fields whose selectors all missed.
const (
	unknownCompany = "Unknown Company"
	noDescription  = "No description available"
)

// Parse extracts postings from a listing document. Card strategies are
// tried in order and the first one producing at least one match wins; a
// document where no strategy matches yields zero postings, not an error.
// Only a malformed or empty document is an ExtractionError.
func Parse(html string, source Source) ([]types.Posting, error) {
	if strings.TrimSpace(html) == "" {
		return nil, &ExtractionError{Message: "empty document"}
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, &ExtractionError{Message: "failed to parse HTML", Cause: err}
	}

	fields := source.Fields()
	postings := make([]types.Posting, 0)

	for _, cardSelector := range source.CardSelectors() {
		cards := doc.Find(cardSelector)
		if cards.Length() == 0 {
			continue
		}

		cards.Each(func(_ int, card *goquery.Selection) {
			if posting, ok := extractCard(card, fields, source); ok {
				postings = append(postings, posting)
			}
		})

		// First working strategy wins; never mix strategies in one pass.
		break
	}

	return postings, nil
}

// extractCard builds one posting from a matched card. Returns ok=false when
// the card fails the admission gate (no title).
func extractCard(card *goquery.Selection, fields FieldSelectors, source Source) (types.Posting, bool) {
	title := firstMatch(card, fields.Title)
	company := firstMatch(card, fields.Company)
	if company == "" {
		company = unknownCompany
	}

	// Admission gate: a card without a title and company is noise, not data.
	if title == "" || company == "" {
		return types.Posting{}, false
	}

	location := defaultLocation(source.Country())
	if locationText := firstMatch(card, fields.Location); locationText != "" {
		location = ParseLocation(locationText, source.Country())
	}

	var salary *types.Salary
	if salaryText := firstMatch(card, fields.Salary); salaryText != "" {
		salary = ParseSalary(salaryText)
	}

	description := firstMatch(card, fields.Description)
	if description == "" {
		description = noDescription
	}

	detailURL := firstMatch(card, fields.DetailURL)
	switch {
	case detailURL == "":
		detailURL = source.BaseURL()
	case !strings.HasPrefix(detailURL, "http"):
		detailURL = source.BaseURL() + detailURL
	}

	return types.Posting{
		Title:       title,
		Company:     company,
		Location:    location,
		Description: description,
		Skills:      skills.TagKeywords(description),
		Salary:      salary,
		Source: types.Source{
			Name:      source.Name(),
			URL:       detailURL,
			ScrapedAt: time.Now(),
		},
	}, true
}

// firstMatch evaluates an ordered fallback list against a card and returns
// the first non-empty value. Attr-bearing selectors prefer the attribute
// and fall back to element text.
func firstMatch(card *goquery.Selection, selectors []FieldSelector) string {
	for _, fs := range selectors {
		sel := card.Find(fs.Selector)
		if sel.Length() == 0 {
			continue
		}

		var value string
		if fs.Attr != "" {
			value = sel.First().AttrOr(fs.Attr, "")
		}
		if value == "" {
			value = sel.First().Text()
		}

		value = strings.TrimSpace(value)
		if value != "" {
			return value
		}
	}
	return ""
}
