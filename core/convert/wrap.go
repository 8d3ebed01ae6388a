package convert

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/npillmayer/uax/segment"
	"github.com/npillmayer/uax/uax29"
	"github.com/rivo/uniseg"
)

// trailingPunctuation is the set of characters that may never open a
// wrapped line; an overflowing run of them is glued to the prior content.
const trailingPunctuation = ",.?!"

// wrapUnit is one unbreakable chunk of a line.
type wrapUnit struct {
	text        string
	spaceBefore bool
	punctuation bool
}

// wrap greedily wraps text to the configured width. The first emitted
// line carries first, every further line carries cont. A literal newline
// in the text hard-breaks the line and restarts width accounting at the
// continuation prefix.
func (r *run) wrap(text, first, cont string) []string {
	var lines []string
	prefix := first
	for _, seg := range strings.Split(text, "\n") {
		seg = strings.Trim(seg, " \t")
		if seg == "" {
			continue
		}
		lines = append(lines, wrapSegment(seg, prefix, cont, r.width)...)
		prefix = cont
	}
	if len(lines) == 0 {
		lines = append(lines, strings.TrimRight(first, " "))
	}
	return lines
}

// wrapSegment wraps a single newline-free segment. Widths are measured
// in grapheme clusters, so combining sequences and emoji count as one.
// A unit longer than the width is emitted on its own line rather than
// split mid-word.
func wrapSegment(text, first, cont string, width int) []string {
	units := segmentUnits(text)
	if len(units) == 0 {
		return nil
	}

	var (
		lines    []string
		line     strings.Builder
		col      = uniseg.GraphemeClusterCount(first)
		contCols = uniseg.GraphemeClusterCount(cont)
	)
	line.WriteString(first)

	for i, u := range units {
		w := uniseg.GraphemeClusterCount(u.text)
		gap := 0
		if i > 0 && u.spaceBefore {
			gap = 1
		}
		if i > 0 && col+gap+w > width && !u.punctuation {
			lines = append(lines, line.String())
			line.Reset()
			line.WriteString(cont)
			line.WriteString(u.text)
			col = contCols + w
			continue
		}
		if gap == 1 {
			line.WriteByte(' ')
			col++
		}
		line.WriteString(u.text)
		col += w
	}
	lines = append(lines, line.String())
	return lines
}

// segmentUnits splits text at UAX#29 word boundaries and reassembles the
// word tokens into wrap units. Breaks are kept only between two
// word-like tokens (letters, digits, ideographs); punctuation and format
// characters glue to their neighbor so attached punctuation and inline
// Markdown markers never open a line on their own.
func segmentUnits(text string) []wrapUnit {
	seg := segment.NewSegmenter(uax29.NewWordBreaker(1))
	seg.BreakOnZero(true, false)
	seg.Init(strings.NewReader(text))

	var units []wrapUnit
	space := false
	for seg.Next() {
		tok := seg.Text()
		if strings.TrimSpace(tok) == "" {
			space = true
			continue
		}
		units, space = appendToken(units, tok, space)
	}
	return units
}

// appendToken adds one segmenter token to the unit list, accounting for
// whitespace the segmenter may have attached to the token itself.
func appendToken(units []wrapUnit, tok string, space bool) ([]wrapUnit, bool) {
	if strings.TrimSpace(tok) != tok {
		space = space || strings.TrimLeft(tok, " \t") != tok
		trailing := strings.TrimRight(tok, " \t") != tok
		for i, field := range strings.Fields(tok) {
			units, _ = appendToken(units, field, space || i > 0)
		}
		return units, trailing
	}

	if n := len(units); n > 0 && !space && !breakableBoundary(units[n-1].text, tok) {
		units[n-1].text += tok
		units[n-1].punctuation = punctuationRun(units[n-1].text)
		return units, false
	}
	units = append(units, wrapUnit{
		text:        tok,
		spaceBefore: space,
		punctuation: punctuationRun(tok),
	})
	return units, false
}

// breakableBoundary reports whether a line may break between two
// adjacent tokens that are not separated by whitespace.
func breakableBoundary(prev, next string) bool {
	p, _ := utf8.DecodeLastRuneInString(prev)
	n, _ := utf8.DecodeRuneInString(next)
	return wordRune(p) && wordRune(n)
}

func wordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsNumber(r)
}

// punctuationRun reports whether s consists solely of trailing
// punctuation characters.
func punctuationRun(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !strings.ContainsRune(trailingPunctuation, r) {
			return false
		}
	}
	return true
}
