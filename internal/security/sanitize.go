package security

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// MaxSanitizedLen is the hard length clip applied at the end of the
// sanitizer chain.
const MaxSanitizedLen = 10_000

var (
	scriptBlockRe  = regexp.MustCompile(`(?is)<\s*script\b[^>]*>.*?<\s*/\s*script\s*>`)
	scriptTagRe    = regexp.MustCompile(`(?i)<\s*/?\s*script\b[^>]*>`)
	eventAttrRe    = regexp.MustCompile(`(?i)\bon(?:error|load|click|dblclick|mouseover|mouseout|mousemove|focus|blur|keydown|keyup|keypress|submit|change|input|wheel|drag|drop)\s*=\s*(?:"[^"]*"|'[^']*'|[^\s>]+)`)
	jsSchemeRe     = regexp.MustCompile(`(?i)javascript\s*:`)
	whitespaceRe   = regexp.MustCompile(`\s+`)
	entityReplacer = strings.NewReplacer(`<`, "&lt;", `>`, "&gt;", `"`, "&quot;", `'`, "&#39;")
)

// Sanitize produces a safe-to-display, safe-to-forward version of untrusted
// input. The transform order is fixed and matters: stripping runs before
// entity escaping so escaped entities are never re-interpreted as stripping
// targets.
func Sanitize(input string) string {
	s := scriptBlockRe.ReplaceAllString(input, "")
	s = scriptTagRe.ReplaceAllString(s, "")
	s = eventAttrRe.ReplaceAllString(s, "")
	s = jsSchemeRe.ReplaceAllString(s, "")
	s = entityReplacer.Replace(s)
	s = whitespaceRe.ReplaceAllString(s, " ")
	s = strings.TrimSpace(s)
	return truncateRunes(s, MaxSanitizedLen)
}

// truncateRunes clips s to at most limit characters. Limits are counted in
// runes, not bytes, so a multi-byte character is never cut in half.
func truncateRunes(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	return string([]rune(s)[:limit])
}
