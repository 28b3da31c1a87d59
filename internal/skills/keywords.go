package skills

import "regexp"

// postingKeywords is the flat keyword list used to tag posting
// descriptions. Postings get boolean skill presence only; the
// confidence-weighted extraction above is reserved for resumes. The two
// paths intentionally stay separate so posting scores don't shift when the
// resume lexicon grows.
var postingKeywords = []string{
	"javascript", "js", "typescript", "python", "java", "react", "angular", "vue",
	"node", "nodejs", "express", "django", "flask", "spring", "mongodb", "sql",
	"mysql", "postgresql", "redis", "aws", "azure", "gcp", "docker", "kubernetes",
	"git", "ci/cd", "agile", "scrum", "rest", "api", "html", "css", "sass",
	"webpack", "babel", "jest", "testing", "tdd", "microservices",
}

var keywordPatterns = make(map[string]*regexp.Regexp, len(postingKeywords))

func init() {
	for _, kw := range postingKeywords {
		keywordPatterns[kw] = compileWordPattern(kw)
	}
}

// TagKeywords scans a posting description for known skill keywords using
// case-insensitive word-boundary matching. Returns lowercase keywords,
// deduplicated, in first-seen dictionary order. Empty input yields an
// empty slice.
func TagKeywords(description string) []string {
	found := make([]string, 0)
	if description == "" {
		return found
	}

	seen := make(map[string]bool)
	for _, kw := range postingKeywords {
		if seen[kw] {
			continue
		}
		if keywordPatterns[kw].MatchString(description) {
			seen[kw] = true
			found = append(found, kw)
		}
	}

	return found
}
