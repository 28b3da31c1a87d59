package scrape

// Query describes one scrape target.
type Query struct {
	Keywords string
	Location string
}

// FieldSelector locates one field inside a card. If Attr is set, the
// attribute value is preferred and the element text is the fallback.
type FieldSelector struct {
	Selector string
	Attr     string
}

// FieldSelectors groups the ordered fallback lists for every posting field.
// Lists are evaluated in sequence with first-success short-circuit, so
// supporting a new page layout means appending selectors, not adding code.
type FieldSelectors struct {
	Title       []FieldSelector
	Company     []FieldSelector
	Location    []FieldSelector
	Salary      []FieldSelector
	Description []FieldSelector
	DetailURL   []FieldSelector
}

// Source is the capability a job board must provide to be scraped. The
// generic pipeline composes it with a fetcher; no per-source subclassing,
// strategies are data.
type Source interface {
	// Name identifies the source in posting records and logs.
	Name() string
	// Country is asserted on every parsed location (single-country operation).
	Country() string
	// BaseURL resolves relative detail links and is the URL of last resort.
	BaseURL() string
	// SearchURL builds the listing URL for a query.
	SearchURL(q Query) string
	// CardSelectors returns the ordered card strategies. The first selector
	// producing at least one match wins; later ones are never tried.
	CardSelectors() []string
	// Fields returns the per-field fallback selector lists.
	Fields() FieldSelectors
	// Headers returns extra request headers for this source.
	Headers() map[string]string
}
