package convert

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func conv(html string) string {
	return New("", 0).Convert(html)
}

func TestPlainTextPassesThrough(t *testing.T) {
	assert.Equal(t, "hello world", conv("hello world"))
}

func TestInlineFormatting(t *testing.T) {
	got := conv(`<p><strong>Bold</strong> and <em>italic</em> text</p>`)
	want := sep + "**Bold**" + sep + " and " + sep + "_italic_" + sep + " text"
	assert.Equal(t, want, got)
}

func TestNestedStrongCollapsesToOnePair(t *testing.T) {
	got := conv(`<b>x<b>y</b>z</b>`)
	want := sep + "**xyz**" + sep
	assert.Equal(t, want, got)
	assert.Equal(t, 2, strings.Count(got, "**"))
}

func TestUnbalancedCloserIsClamped(t *testing.T) {
	r := &run{}
	r.toggleInline("**", &r.strongDepth, true)
	assert.Equal(t, 0, r.strongDepth)
	assert.Empty(t, r.line.String())
}

func TestHeadings(t *testing.T) {
	got := conv(`<h1>Title</h1><h2>Subtitle</h2>`)
	assert.Equal(t, "# Title\n\n## Subtitle", got)
}

func TestHeadingContentIsNeverWrapped(t *testing.T) {
	long := strings.Repeat("word ", 30)
	got := New("", 20).Convert("<h3>" + long + "</h3>")
	lines := strings.Split(got, "\n")
	require.Len(t, lines, 1)
	assert.True(t, strings.HasPrefix(lines[0], "### word"))
}

func TestOrderedListWithImpliedClosers(t *testing.T) {
	got := conv(`<ol><li>a<li>b<li>c</ol>`)
	assert.Equal(t, "1. a\n2. b\n3. c", got)
}

func TestSiblingUnorderedListMarkerRotation(t *testing.T) {
	got := conv(`<ul><li>a</li></ul><ul><li>b</li></ul><ul><li>c</li></ul>`)
	assert.Equal(t, "* a\n\n+ b\n\n- c", got)
}

func TestOrderedMarkerClamp(t *testing.T) {
	list := &frame{kind: frameList, list: listOrdered, counter: 0}
	assert.Equal(t, "1.", listMarker(list))
	list.counter = maxOrdinal + 5
	assert.Equal(t, "999999999.", listMarker(list))
}

func TestNestedListIndentation(t *testing.T) {
	got := conv(`<ul><li>x<ul><li>y</li></ul></li></ul>`)
	lines := strings.Split(got, "\n")
	require.GreaterOrEqual(t, len(lines), 2)
	assert.Equal(t, "* x", lines[0])
	assert.Contains(t, lines, "  * y")
}

func TestLinkWithBaseAndTitle(t *testing.T) {
	got := New("https://e.com", 0).Convert(`<a href="/p" title="T">L</a>`)
	assert.Equal(t, `[L](https://e.com/p "T")`, got)
}

func TestLinkWithEmptyHrefKeepsLabel(t *testing.T) {
	assert.Equal(t, "L", conv(`<a href="">L</a>`))
	assert.Equal(t, "L", conv(`<a>L</a>`))
}

func TestLinkLabelSurroundingTextIsRestored(t *testing.T) {
	got := conv(`<p>see <a href="https://x.org">here</a> now</p>`)
	assert.Equal(t, "see [here](https://x.org) now", got)
}

func TestImage(t *testing.T) {
	got := conv(`<img src="image.jpg" alt="desc">`)
	assert.Equal(t, `![desc](\/image\.jpg)`, got)
}

func TestImageWithTitleAndBase(t *testing.T) {
	got := New("https://e.com", 0).Convert(`<img src="/i.png" alt="a" title="t">`)
	assert.Equal(t, `![a](https://e.com/i.png "t")`, got)
}

func TestBaseTagAdoptedOnce(t *testing.T) {
	html := `<base href="https://x.org/"><base href="https://y.org/"><a href="p">t</a>`
	assert.Equal(t, "[t](https://x.org/p)", conv(html))
}

func TestExternalBaseWinsOverBaseTag(t *testing.T) {
	html := `<base href="https://y.org/"><a href="/p">t</a>`
	got := New("https://x.org", 0).Convert(html)
	assert.Equal(t, "[t](https://x.org/p)", got)
}

func TestFencedCodeBlockWithLanguageClass(t *testing.T) {
	got := conv(`<pre><code class="language-python">x</code></pre>`)
	assert.Equal(t, "```python\n    x\n```", got)
}

func TestFencedCodeBlockLanguageFromAttribute(t *testing.T) {
	got := conv(`<pre><code data-lang="rust">y</code></pre>`)
	assert.Equal(t, "```rust\n    y\n```", got)
}

func TestPreservesPreformattedWhitespace(t *testing.T) {
	got := conv("<pre><code>a  b\nc</code></pre>")
	assert.Equal(t, "```\n    a  b\n    c\n```", got)
}

func TestInlineCodeSpan(t *testing.T) {
	got := conv(`<p>use <code>go</code> here</p>`)
	assert.Equal(t, "use `go` here", got)
}

func TestHardBreak(t *testing.T) {
	got := conv(`<p>a<br>b</p>`)
	assert.Equal(t, "a  \nb", got)
}

func TestHorizontalRule(t *testing.T) {
	got := conv(`a<hr>b`)
	assert.Equal(t, "a\n***\nb", got)
}

func TestBlockquote(t *testing.T) {
	got := conv(`<blockquote><p>q</p></blockquote>`)
	assert.Equal(t, "> q", got)
}

func TestBlockquoteSeparatesFromFollowingText(t *testing.T) {
	got := conv(`<blockquote>q</blockquote>after`)
	assert.Equal(t, "> q\n\nafter", got)
}

func TestParagraphSeparation(t *testing.T) {
	got := conv("<p>a</p>\n<p>b</p>")
	assert.Equal(t, "a\n\nb", got)
}

func TestLayoutWhitespaceIsDropped(t *testing.T) {
	got := conv("<div>a</div>\n   \n<div>b</div>")
	assert.NotContains(t, got, "   ")
}

func TestPunctuationIsEscaped(t *testing.T) {
	got := conv("<p>5 &gt; 4 &amp; a*b</p>")
	assert.Equal(t, `5 \> 4 \& a\*b`, got)
}

func TestDefaultWidth(t *testing.T) {
	assert.Equal(t, DefaultWidth, New("", 0).width)
	assert.Equal(t, DefaultWidth, New("", -3).width)
	assert.Equal(t, 40, New("", 40).width)
}

func TestConvertNeverPanics(t *testing.T) {
	inputs := []string{
		"",
		"<",
		"<div",
		"<<<<>",
		"<a href=",
		"<ol><li>",
		"<pre><code>unterminated",
		"</b></b></em>",
		strings.Repeat("<div>", 200),
		"\x00\xff<b>x",
	}
	for _, in := range inputs {
		in := in
		require.NotPanics(t, func() {
			_ = conv(in)
		}, "input %q", in)
	}
}

func TestConvertIsDeterministic(t *testing.T) {
	html := `<h1>T</h1><p>body <b>bold</b></p><ul><li>i</li></ul>`
	first := conv(html)
	for i := 0; i < 3; i++ {
		assert.Equal(t, first, conv(html))
	}
}

func TestWrappedLinesRespectWidth(t *testing.T) {
	text := strings.Repeat("word ", 40)
	got := New("", 20).Convert("<p>" + text + "</p>")
	for _, line := range strings.Split(got, "\n") {
		assert.LessOrEqual(t, len(line), 20, "line %q", line)
	}
}

func TestCRLFNormalization(t *testing.T) {
	assert.Equal(t, "```\n    a\n    b\n```", conv("<pre><code>a\r\nb</code></pre>"))
}
