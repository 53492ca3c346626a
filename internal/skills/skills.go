// Package skills finds canonical technology and process terms in free text.
package skills

import (
	"regexp"
	"strings"
	"sync"
	"unicode"
)

// Vocabulary is the canonical skill list. Extraction results follow its order.
var Vocabulary = []string{
	"JavaScript", "TypeScript", "Python", "Java", "C++", "C#", "Go", "Rust",
	"React", "Vue.js", "Angular", "Next.js", "Svelte", "Express", "Node.js",
	"Django", "Flask", "FastAPI", "Spring", "Laravel", "Ruby on Rails",
	"SQL", "NoSQL", "MongoDB", "PostgreSQL", "MySQL", "Firebase", "Redis",
	"AWS", "Azure", "Google Cloud", "Docker", "Kubernetes", "CI/CD",
	"Git", "REST API", "GraphQL", "WebSocket", "OAuth", "JWT",
	"HTML", "CSS", "Sass", "Tailwind", "Bootstrap",
	"Testing", "Jest", "Pytest", "Selenium", "Cypress",
	"Agile", "Scrum", "Kanban", "DevOps", "Linux",
}

// compile is swapped in tests to exercise the containment fallback.
var compile = regexp.Compile

type term struct {
	name    string
	lower   string
	pattern *regexp.Regexp
}

// Extractor matches a fixed vocabulary against text.
// It is safe for concurrent use.
type Extractor struct {
	terms []term
}

// New builds an Extractor for vocabulary. Duplicate entries (case-insensitive) are dropped.
// A term whose pattern cannot be compiled is matched by plain containment instead.
func New(vocabulary []string) *Extractor {
	seen := make(map[string]struct{}, len(vocabulary))
	terms := make([]term, 0, len(vocabulary))

	for _, name := range vocabulary {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		lower := strings.ToLower(name)
		if _, ok := seen[lower]; ok {
			continue
		}
		seen[lower] = struct{}{}

		t := term{name: name, lower: lower}
		if re, err := compile(Pattern(name)); err == nil {
			t.pattern = re
		}
		terms = append(terms, t)
	}

	return &Extractor{terms: terms}
}

var defaultExtractor = New(Vocabulary)

// Extract returns the canonical skills found in text using the default vocabulary.
func Extract(text string) []string {
	return defaultExtractor.Extract(text)
}

// Extract returns the vocabulary entries present in text as whole words.
// Empty text yields an empty, non-nil slice.
func (e *Extractor) Extract(text string) []string {
	found := make([]string, 0)
	if strings.TrimSpace(text) == "" {
		return found
	}

	lowerText := strings.ToLower(text)
	for _, t := range e.terms {
		if t.matches(text, lowerText) {
			found = append(found, t.name)
		}
	}

	return found
}

// Vocabulary returns the terms the extractor knows, in match order.
func (e *Extractor) Vocabulary() []string {
	names := make([]string, len(e.terms))
	for i, t := range e.terms {
		names[i] = t.name
	}
	return names
}

func (t term) matches(text, lowerText string) bool {
	if t.pattern != nil {
		return t.pattern.MatchString(text)
	}
	return strings.Contains(lowerText, t.lower)
}

// Pattern returns the case-insensitive whole-word pattern for a skill name.
// Word boundaries are only asserted on edges that are word characters, so
// names such as "C++" or "C#" can still be matched as standalone words.
func Pattern(name string) string {
	var b strings.Builder
	b.WriteString("(?i)")

	runes := []rune(name)
	if len(runes) > 0 && isWordRune(runes[0]) {
		b.WriteString(`\b`)
	} else {
		b.WriteString(`(?:^|\W)`)
	}

	b.WriteString(regexp.QuoteMeta(name))

	if len(runes) > 0 && isWordRune(runes[len(runes)-1]) {
		b.WriteString(`\b`)
	} else {
		b.WriteString(`(?:\W|$)`)
	}

	return b.String()
}

// wordPatterns memoizes ContainsWord patterns by skill name.
var wordPatterns sync.Map

// ContainsWord reports whether name occurs in text as a whole word, ignoring case.
func ContainsWord(text, name string) bool {
	if cached, ok := wordPatterns.Load(name); ok {
		return cached.(*regexp.Regexp).MatchString(text)
	}

	re, err := compile(Pattern(name))
	if err != nil {
		return strings.Contains(strings.ToLower(text), strings.ToLower(name))
	}
	wordPatterns.Store(name, re)

	return re.MatchString(text)
}

func isWordRune(r rune) bool {
	return r == '_' || (r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)))
}
