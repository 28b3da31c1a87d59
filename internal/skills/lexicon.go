// Package skills provides the alias-dictionary skill extractor shared by
// posting ingestion and resume processing. The dictionary maps each
// category to canonical skill names with their surface-text aliases.
package skills

import (
	"regexp"

	"github.com/jonathan/jobscout/internal/types"
)

// skillEntry is one canonical skill with its ordered alias list. Aliases
// are checked in order and the first match wins for that skill.
type skillEntry struct {
	name    string // canonical, lowercase
	aliases []string
}

// categoryEntry groups entries under one category. The lexicon is a slice,
// not a map, so extraction output order is deterministic.
type categoryEntry struct {
	category types.SkillCategory
	entries  []skillEntry
}

var lexicon = []categoryEntry{
	{
		category: types.CategoryTechnical,
		entries: []skillEntry{
			// Programming languages
			{"javascript", []string{"javascript", "js", "ecmascript", "es6", "es2015"}},
			{"python", []string{"python", "py", "python3"}},
			{"java", []string{"java", "jdk", "jvm"}},
			{"typescript", []string{"typescript", "ts"}},
			{"c++", []string{"c++", "cpp", "cplusplus"}},
			{"c#", []string{"c#", "csharp", "c-sharp"}},
			{"php", []string{"php"}},
			{"ruby", []string{"ruby", "rb"}},
			{"go", []string{"golang", "go"}},
			{"rust", []string{"rust"}},
			{"swift", []string{"swift"}},
			{"kotlin", []string{"kotlin"}},
			{"scala", []string{"scala"}},
			{"r", []string{"r programming", "r language"}},
			{"matlab", []string{"matlab"}},

			// Frontend frameworks
			{"react", []string{"react", "reactjs", "react.js"}},
			{"angular", []string{"angular", "angularjs"}},
			{"vue.js", []string{"vue", "vuejs", "vue.js"}},
			{"html", []string{"html", "html5"}},
			{"css", []string{"css", "css3"}},
			{"bootstrap", []string{"bootstrap"}},
			{"tailwind", []string{"tailwind", "tailwindcss"}},
			{"jquery", []string{"jquery"}},
			{"sass", []string{"sass", "scss"}},
			{"less", []string{"less"}},

			// Backend frameworks
			{"node.js", []string{"node", "nodejs", "node.js"}},
			{"express", []string{"express", "expressjs"}},
			{"django", []string{"django"}},
			{"flask", []string{"flask"}},
			{"spring", []string{"spring boot", "spring framework"}},
			{"laravel", []string{"laravel"}},
			{"ruby on rails", []string{"rails", "ruby on rails"}},
			{"asp.net", []string{"asp.net", "aspnet"}},
			{"fastapi", []string{"fastapi"}},

			// Databases
			{"mongodb", []string{"mongodb", "mongo"}},
			{"mysql", []string{"mysql"}},
			{"postgresql", []string{"postgresql", "postgres"}},
			{"sqlite", []string{"sqlite"}},
			{"redis", []string{"redis"}},
			{"cassandra", []string{"cassandra"}},
			{"oracle", []string{"oracle database"}},
			{"sql server", []string{"sql server", "mssql"}},
			{"sql", []string{"sql", "structured query language"}},
		},
	},
	{
		category: types.CategoryTool,
		entries: []skillEntry{
			{"git", []string{"git", "version control"}},
			{"github", []string{"github"}},
			{"gitlab", []string{"gitlab"}},
			{"docker", []string{"docker", "containerization"}},
			{"kubernetes", []string{"kubernetes", "k8s"}},
			{"jenkins", []string{"jenkins", "ci/cd"}},
			{"webpack", []string{"webpack"}},
			{"vs code", []string{"vscode", "visual studio code"}},
			{"intellij", []string{"intellij", "intellij idea"}},
			{"postman", []string{"postman"}},
			{"figma", []string{"figma"}},
			{"jira", []string{"jira"}},
			{"slack", []string{"slack"}},
		},
	},
	{
		category: types.CategoryCloud,
		entries: []skillEntry{
			{"aws", []string{"aws", "amazon web services"}},
			{"azure", []string{"azure", "microsoft azure"}},
			{"google cloud", []string{"gcp", "google cloud platform", "google cloud"}},
			{"firebase", []string{"firebase"}},
			{"heroku", []string{"heroku"}},
			{"netlify", []string{"netlify"}},
			{"vercel", []string{"vercel"}},
		},
	},
	{
		category: types.CategoryNonTechnical,
		entries: []skillEntry{
			{"leadership", []string{"leadership", "team lead", "managing teams"}},
			{"communication", []string{"communication", "presentation skills"}},
			{"project management", []string{"project management", "agile", "scrum"}},
			{"problem solving", []string{"problem solving", "analytical thinking"}},
			{"teamwork", []string{"teamwork", "collaboration", "team player"}},
			{"time management", []string{"time management", "multitasking"}},
			{"critical thinking", []string{"critical thinking", "decision making"}},
		},
	},
	{
		category: types.CategoryIndustry,
		entries: []skillEntry{
			{"fintech", []string{"fintech", "financial technology"}},
			{"e-commerce", []string{"e-commerce", "ecommerce", "online retail"}},
			{"healthcare", []string{"healthcare", "healthtech", "medical software"}},
			{"edtech", []string{"edtech", "education technology"}},
			{"saas", []string{"saas", "software as a service"}},
		},
	},
}

// aliasPatterns holds one compiled regex per alias, keyed by alias text.
// Compiled once at package load; both extraction entry points are pure and
// safe for concurrent use.
var aliasPatterns = map[string]*regexp.Regexp{}

// totalAliases is the alias count across the entire dictionary, the
// denominator of the confidence ratio.
var totalAliases int

func init() {
	for _, cat := range lexicon {
		for _, entry := range cat.entries {
			totalAliases += len(entry.aliases)
			for _, alias := range entry.aliases {
				if _, ok := aliasPatterns[alias]; !ok {
					aliasPatterns[alias] = compileWordPattern(alias)
				}
			}
		}
	}
}

// compileWordPattern builds a case-insensitive word-boundary matcher for an
// alias. \b misbehaves when the alias starts or ends with a non-word rune
// (c++, c#, ci/cd), so those edges use explicit non-word-char anchors.
func compileWordPattern(alias string) *regexp.Regexp {
	leading := `\b`
	trailing := `\b`
	if !isWordChar(alias[0]) {
		leading = `(?:^|[^\w])`
	}
	if !isWordChar(alias[len(alias)-1]) {
		trailing = `(?:[^\w]|$)`
	}
	return regexp.MustCompile(`(?i)` + leading + regexp.QuoteMeta(alias) + trailing)
}

func isWordChar(b byte) bool {
	return b == '_' ||
		(b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

// TotalAliases exposes the dictionary-wide alias count.
func TotalAliases() int {
	return totalAliases
}
