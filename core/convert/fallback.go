package convert

import (
	"regexp"
	"strings"

	"github.com/gaurav-prasanna/markpipe/core"
)

var tagPattern = regexp.MustCompile(`<[^>]*>`)

// extractText is the degraded conversion path: it re-walks the token
// stream collecting only text-node content in document order, discarding
// all markup. If that itself faults, stripTags takes over. It never
// fails and always returns some string.
func (c *Converter) extractText(raw string) (text string) {
	defer func() {
		if rec := recover(); rec != nil {
			text = stripTags(raw)
		}
	}()

	sc, err := c.newScanner(raw)
	if err != nil {
		return stripTags(raw)
	}
	var b strings.Builder
	for sc.Next() {
		if sc.Kind() == core.TokenText {
			b.WriteString(sc.Text())
		}
	}
	return strings.TrimSpace(b.String())
}

// stripTags removes anything between '<' and '>' from the raw input.
// Last-resort extraction when no scanner can be built at all.
func stripTags(raw string) string {
	return strings.TrimSpace(tagPattern.ReplaceAllString(raw, ""))
}
