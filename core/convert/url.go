package convert

import "strings"

// absoluteSchemes are the URL scheme prefixes left untouched by
// resolution and escaping.
var absoluteSchemes = []string{
	"http://", "https://", "mailto:", "ftp://", "tel:", "sms:",
}

func hasURLScheme(s string) bool {
	for _, scheme := range absoluteSchemes {
		if strings.HasPrefix(s, scheme) {
			return true
		}
	}
	return false
}

// resolveURL resolves href against base. A URL carrying an absolute
// scheme prefix is returned unchanged; anything else is concatenated
// onto the effective base (default "/") with exactly one slash at the
// join. No dot-segment normalization or percent-encoding is performed.
func resolveURL(href, base string) string {
	if hasURLScheme(href) {
		return href
	}
	if base == "" {
		base = "/"
	}
	switch {
	case strings.HasSuffix(base, "/") && strings.HasPrefix(href, "/"):
		return base + strings.TrimPrefix(href, "/")
	case !strings.HasSuffix(base, "/") && !strings.HasPrefix(href, "/"):
		return base + "/" + href
	}
	return base + href
}
