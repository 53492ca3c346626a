// Package textclean turns raw document or listing text into plain single-line text.
package textclean

import (
	"regexp"
	"strings"
)

var (
	tagPattern        = regexp.MustCompile(`<[^>]*>`)
	whitespacePattern = regexp.MustCompile(`\s+`)

	entityReplacer = strings.NewReplacer(
		"&nbsp;", " ",
		"&amp;", "&",
		"&lt;", "<",
		"&gt;", ">",
		"&quot;", `"`,
		"&#39;", "'",
	)

	// boilerplate is stripped after entity decoding.
	boilerplate = []*regexp.Regexp{
		regexp.MustCompile(`(?i)Page\s+\d+\s+of\s+\d+`),
		regexp.MustCompile(`(?:©|Â©)\s*\d{4}`),
		regexp.MustCompile(`Confidential`),
		regexp.MustCompile(`Resume\s*of`),
		regexp.MustCompile(`Curriculum\s*Vitae`),
		regexp.MustCompile(`-\s*\d+\s*-`),
		regexp.MustCompile(`https?://\S+`),
		regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`),
	}
)

// Normalize strips HTML, decodes the common entities, removes page and
// contact boilerplate and collapses whitespace. Empty input yields "".
func Normalize(raw string) string {
	if raw == "" {
		return ""
	}

	text := StripHTML(raw)
	for _, pattern := range boilerplate {
		text = pattern.ReplaceAllString(text, " ")
	}

	return collapse(text)
}

// StripHTML removes tags and decodes entities, collapsing whitespace, but
// keeps URLs, emails and other boilerplate intact.
func StripHTML(raw string) string {
	if raw == "" {
		return ""
	}

	text := tagPattern.ReplaceAllString(raw, " ")
	text = entityReplacer.Replace(text)

	return collapse(text)
}

func collapse(text string) string {
	return strings.TrimSpace(whitespacePattern.ReplaceAllString(text, " "))
}
