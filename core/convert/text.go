package convert

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// markdownPunctuation is the ASCII punctuation CommonMark treats as
// significant; every occurrence in plain text is backslash-escaped.
const markdownPunctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

var (
	trailingSpaceRun = regexp.MustCompile(`[ \t]+\n`)
	newlineRun       = regexp.MustCompile(`[\n\f]+`)
	horizontalRun    = regexp.MustCompile(`[ \t]+`)
)

// normalizeSpace collapses whitespace in non-preformatted text: trailing
// horizontal whitespace before a newline is dropped, embedded newline
// and form-feed runs collapse to one newline, and horizontal runs
// collapse to one space. Single leading and trailing spaces survive so
// inter-element spacing is preserved.
func normalizeSpace(s string) string {
	s = trailingSpaceRun.ReplaceAllString(s, "\n")
	s = newlineRun.ReplaceAllString(s, "\n")
	return horizontalRun.ReplaceAllString(s, " ")
}

// escapePunctuation backslash-escapes ASCII Markdown punctuation.
// Strings that already carry an absolute URL scheme are passed through
// so link targets stay readable.
func escapePunctuation(s string) string {
	if hasURLScheme(s) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) * 2)
	for _, r := range s {
		if r < utf8.RuneSelf && strings.ContainsRune(markdownPunctuation, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
