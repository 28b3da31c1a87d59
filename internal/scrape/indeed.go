package scrape

import "net/url"

// IndeedSource scrapes the India Indeed job board. Indeed reshuffles its
// markup frequently, hence the long fallback lists; selectors observed in
// the wild stay in the list even after Indeed moves on, since old markup
// resurfaces in cached and A/B-tested pages.
type IndeedSource struct {
	baseURL string
}

// NewIndeedSource constructs the Indeed source definition.
func NewIndeedSource() *IndeedSource {
	return &IndeedSource{baseURL: "https://in.indeed.com"}
}

func (s *IndeedSource) Name() string    { return "Indeed" }
func (s *IndeedSource) Country() string { return "India" }
func (s *IndeedSource) BaseURL() string { return s.baseURL }

// SearchURL builds the first results page for a keyword/location query.
func (s *IndeedSource) SearchURL(q Query) string {
	keywords := q.Keywords
	if keywords == "" {
		keywords = "developer"
	}
	location := q.Location
	if location == "" {
		location = "Mumbai"
	}

	params := url.Values{}
	params.Set("q", keywords)
	params.Set("l", location)
	params.Set("start", "0")

	return s.baseURL + "/jobs?" + params.Encode()
}

func (s *IndeedSource) CardSelectors() []string {
	return []string{
		`[data-testid="job-tile"]`,
		`.jobsearch-SerpJobCard`,
		`.slider_container .slider_item`,
		`.job_seen_beacon`,
	}
}

func (s *IndeedSource) Fields() FieldSelectors {
	return FieldSelectors{
		Title: []FieldSelector{
			{Selector: `h2 a[data-testid="job-title"]`, Attr: "title"},
			{Selector: `h2 a span[title]`, Attr: "title"},
			{Selector: `.jobTitle a span`},
			{Selector: `h2.jobTitle a`},
			{Selector: `.jobTitle-color-purple`},
			{Selector: `h2 span[title]`, Attr: "title"},
		},
		Company: []FieldSelector{
			{Selector: `[data-testid="company-name"]`},
			{Selector: `span.companyName`},
			{Selector: `[data-testid="company-name"] a`},
			{Selector: `.company`},
			{Selector: `[data-company-name]`},
		},
		Location: []FieldSelector{
			{Selector: `[data-testid="text-location"]`},
			{Selector: `.companyLocation`},
			{Selector: `[data-testid="job-location"]`},
			{Selector: `.location`},
		},
		Salary: []FieldSelector{
			{Selector: `[data-testid="attribute_snippet_testid"]`},
			{Selector: `.salary-snippet`},
			{Selector: `.salaryText`},
			{Selector: `[data-testid="salary-snippet"]`},
		},
		Description: []FieldSelector{
			{Selector: `.job-snippet`},
			{Selector: `[data-testid="job-snippet"]`},
			{Selector: `.summary`},
			{Selector: `.job-snippet-text`},
		},
		DetailURL: []FieldSelector{
			{Selector: `h2 a[href*="/rc/clk"]`, Attr: "href"},
			{Selector: `h2 a[href*="/viewjob"]`, Attr: "href"},
			{Selector: `a[data-jk]`, Attr: "href"},
			{Selector: `h2 a[href]`, Attr: "href"},
		},
	}
}

func (s *IndeedSource) Headers() map[string]string {
	return map[string]string{
		"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8",
		"Accept-Language": "en-US,en;q=0.9",
		"Connection":      "keep-alive",
	}
}
