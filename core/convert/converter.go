// Package convert implements the HTML-to-Markdown conversion engine.
//
// The engine pulls tokens from a core.TokenScanner one at a time and
// dispatches per tag, accumulating output through a small set of mutable
// layout state: a line buffer, a stack of block-context frames, inline
// formatting depth counters, and list counters. Conversion never fails;
// scanner faults and runtime faults degrade to a plain-text fallback.
package convert

import (
	"strings"

	"github.com/gaurav-prasanna/markpipe/core"
	"github.com/gaurav-prasanna/markpipe/core/scan"
)

// DefaultWidth is the target column width used when none is configured.
const DefaultWidth = 80

// sep is an invisible separator (U+2063) bracketing emphasis markers so
// they never fuse ambiguously with adjacent literal text.
const sep = "\u2063"

// minUsefulOutput is the output length below which a flagged scanner
// error discards the conversion in favor of the fallback extractor.
const minUsefulOutput = 16

// Converter converts HTML documents to Markdown. A Converter holds only
// configuration; every call to Convert constructs fresh per-call state,
// so a single Converter is safe for concurrent use.
type Converter struct {
	baseURL string
	width   int

	// newScanner builds the token scanner for one conversion. Tests
	// substitute it to exercise the failure paths.
	newScanner func(html string) (core.TokenScanner, error)
}

// New creates a Converter. Relative URLs resolve against baseURL (the
// document may override an empty baseURL with its first <base> tag).
// A width of zero or less selects DefaultWidth.
func New(baseURL string, width int) *Converter {
	if width <= 0 {
		width = DefaultWidth
	}
	return &Converter{
		baseURL: baseURL,
		width:   width,
		newScanner: func(src string) (core.TokenScanner, error) {
			return scan.NewFromString(src)
		},
	}
}

// Convert converts HTML to Markdown with the given base URL and width.
func Convert(html, baseURL string, width int) string {
	return New(baseURL, width).Convert(html)
}

// Convert converts the given HTML document to Markdown. It is
// deterministic for identical inputs and never fails: scanner
// construction failures, flagged parse errors with near-empty output,
// and unexpected faults all degrade to plain-text extraction.
func (c *Converter) Convert(html string) (markdown string) {
	defer func() {
		if rec := recover(); rec != nil {
			markdown = c.extractText(html)
		}
	}()

	src := preprocess(html)
	sc, err := c.newScanner(src)
	if err != nil {
		return c.extractText(html)
	}

	r := &run{sc: sc, baseURL: c.baseURL, width: c.width}
	markdown = r.process()

	if sc.Err() != nil && len(markdown) < minUsefulOutput {
		return c.extractText(html)
	}
	return markdown
}

// Normalize implements core.Normalizer, adapting the engine to the
// pipeline's canonical HTML-to-Markdown stage.
func (c *Converter) Normalize(html string) (string, error) {
	return c.Convert(html), nil
}

// preprocess follows the HTML preprocess-the-input-stream algorithm:
// normalize CRLF and stray CR to LF. No other transform.
func preprocess(html string) string {
	html = strings.ReplaceAll(html, "\r\n", "\n")
	return strings.ReplaceAll(html, "\r", "\n")
}

// run is the mutable state of one conversion call. It is created per
// call and discarded at return; nothing is shared across calls.
type run struct {
	sc      core.TokenScanner
	baseURL string
	width   int

	out    strings.Builder
	line   strings.Builder
	frames []*frame

	emDepth     int
	strongDepth int

	linkSwap  string
	linkHref  string
	linkTitle string

	// rootSublists counts unordered lists opened directly at document
	// scope, keying the *, +, - marker rotation for sibling lists.
	rootSublists int
}

// process drives the conversion loop: pull a token, dispatch, repeat.
func (r *run) process() string {
	for r.sc.Next() {
		switch r.sc.Kind() {
		case core.TokenText:
			r.handleText(r.sc.Text())
		case core.TokenTagOpen:
			r.handleTag(r.sc.Name(), false)
		case core.TokenTagClose:
			r.handleTag(r.sc.Name(), true)
		}
	}
	r.flush()
	return strings.TrimSpace(r.out.String())
}

// handleText appends a text token to the line buffer. Outside
// preformatted regions the text is whitespace-normalized and
// punctuation-escaped; pure inter-element layout whitespace is dropped.
func (r *run) handleText(text string) {
	if text == "" {
		return
	}
	if r.inPre() {
		r.line.WriteString(text)
		return
	}
	if strings.TrimSpace(text) == "" && strings.Contains(text, "\n") {
		return
	}
	r.line.WriteString(escapePunctuation(normalizeSpace(text)))
}

// handleTag dispatches one tag token on its semantic name and closer flag.
func (r *run) handleTag(name string, closer bool) {
	switch name {
	case "a":
		r.handleLink(closer)

	case "b", "strong":
		r.toggleInline("**", &r.strongDepth, closer)

	case "i", "em":
		r.toggleInline("_", &r.emDepth, closer)

	case "base":
		if closer || r.baseURL != "" {
			return
		}
		if href, ok := r.sc.Attr("href"); ok {
			if href = strings.TrimSpace(href); href != "" {
				r.baseURL = href
			}
		}

	case "br":
		if r.line.Len() > 0 {
			r.flushHard()
		} else {
			r.blankLine()
		}

	case "code":
		r.handleCode(closer)

	case "pre":
		if closer {
			r.flush()
			r.popKind(framePre)
		} else {
			r.push(&frame{kind: framePre})
		}

	case "h1", "h2", "h3", "h4", "h5", "h6":
		r.handleHeading(name, closer)

	case "hr":
		r.flush()
		// '*' is chosen over '-' so the rule never collides with a
		// setext-heading underline.
		r.line.WriteString("***")
		r.flush()

	case "img":
		r.handleImage()

	case "li":
		if closer {
			return
		}
		r.flush()
		if top := r.top(); top != nil && top.kind == frameItem {
			r.pop()
		}
		if list := r.nearestList(); list != nil {
			list.counter++
			r.push(&frame{kind: frameItem})
		}

	case "ol", "ul":
		r.handleList(name, closer)

	case "blockquote":
		r.flush()
		if closer {
			r.popKind(frameBlockquote)
			r.blankLine()
		} else {
			r.blankLine()
			r.push(&frame{kind: frameBlockquote})
		}

	case "p":
		r.flush()
		if !r.inList() {
			r.blankLine()
		}

	default:
		// No direct effect; descendant text still flows through the
		// text rule.
	}
}

// handleLink captures the line buffer while inside an anchor so the link
// label can be isolated, then emits [label](url "title") on close.
func (r *run) handleLink(closer bool) {
	if !closer {
		r.linkHref, _ = r.sc.Attr("href")
		r.linkTitle, _ = r.sc.Attr("title")
		r.linkSwap = r.line.String()
		r.line.Reset()
		return
	}

	label := strings.TrimSpace(r.line.String())
	r.line.Reset()
	r.line.WriteString(r.linkSwap)
	r.linkSwap = ""

	if strings.TrimSpace(r.linkHref) == "" {
		r.line.WriteString(label)
		return
	}
	url := escapePunctuation(resolveURL(r.linkHref, r.baseURL))
	r.line.WriteString("[" + label + "](" + url + titleClause(r.linkTitle) + ")")
}

// handleImage emits ![alt](url "title") for an <img> tag.
func (r *run) handleImage() {
	alt, _ := r.sc.Attr("alt")
	src, _ := r.sc.Attr("src")
	title, _ := r.sc.Attr("title")

	url := escapePunctuation(resolveURL(strings.TrimSpace(src), r.baseURL))
	r.line.WriteString("![" + alt + "](" + url + titleClause(title) + ")")
}

// titleClause renders the optional title of a link or image.
func titleClause(title string) string {
	if title == "" {
		return ""
	}
	return ` "` + escapePunctuation(title) + `"`
}

// toggleInline adjusts an inline formatting depth counter and emits the
// marker only at the 0→1 and 1→0 transitions, so nested same-kind tags
// collapse to a single pair. Unbalanced closers are clamped at zero.
func (r *run) toggleInline(marker string, depth *int, closer bool) {
	if closer {
		if *depth == 0 {
			return
		}
		*depth--
		if *depth == 0 {
			r.line.WriteString(marker + sep)
		}
		return
	}
	*depth++
	if *depth == 1 {
		r.line.WriteString(sep + marker)
	}
}

// handleCode emits a fenced block when an ancestor <pre> is open, and an
// inline backtick span otherwise.
func (r *run) handleCode(closer bool) {
	if !r.inPre() {
		r.line.WriteString("`")
		return
	}
	if closer {
		r.flush()
		r.popKind(frameCode)
		r.line.WriteString("```")
		r.flush()
		return
	}
	r.flush()
	fence := "```"
	if lang := r.inferLanguage(); lang != "" {
		fence += lang
	}
	r.line.WriteString(fence)
	r.flush()
	r.push(&frame{kind: frameCode})
}

// handleHeading emits the # marker on open and flushes the heading as a
// single unwrapped line on close.
func (r *run) handleHeading(name string, closer bool) {
	if closer {
		r.trimLine()
		r.flush()
		r.popKind(frameHeading)
		return
	}
	r.flush()
	r.blankLine()
	level := int(name[1] - '0')
	r.push(&frame{kind: frameHeading, level: level})
	r.line.WriteString(strings.Repeat("#", level) + " ")
}

// handleList maintains the list-context stack and the sibling-occurrence
// counters driving the unordered marker rotation.
func (r *run) handleList(name string, closer bool) {
	r.flush()
	if closer {
		if top := r.top(); top != nil && top.kind == frameItem {
			r.pop()
		}
		r.popKind(frameList)
		if !r.inList() {
			r.blankLine()
		}
		return
	}
	if !r.inList() {
		r.blankLine()
	}
	f := &frame{kind: frameList, list: listOrdered}
	if name == "ul" {
		f.list = listUnordered
		if scope := r.nearestItem(); scope != nil {
			f.occurrence = scope.sublists
			scope.sublists++
		} else {
			f.occurrence = r.rootSublists
			r.rootSublists++
		}
	}
	r.push(f)
}

// trimLine trims surrounding whitespace off the line buffer.
func (r *run) trimLine() {
	trimmed := strings.TrimSpace(r.line.String())
	r.line.Reset()
	r.line.WriteString(trimmed)
}
