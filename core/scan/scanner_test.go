package scan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaurav-prasanna/markpipe/core"
)

type tok struct {
	kind core.TokenKind
	name string
}

func collect(t *testing.T, src string) []tok {
	t.Helper()
	sc, err := NewFromString(src)
	require.NoError(t, err)
	var out []tok
	for sc.Next() {
		out = append(out, tok{sc.Kind(), sc.Name()})
	}
	require.NoError(t, sc.Err())
	return out
}

func TestDocumentStructureIsSynthesized(t *testing.T) {
	got := collect(t, "<p>a</p>")
	want := []tok{
		{core.TokenTagOpen, "html"},
		{core.TokenTagOpen, "head"},
		{core.TokenTagClose, "head"},
		{core.TokenTagOpen, "body"},
		{core.TokenTagOpen, "p"},
		{core.TokenText, core.TextNodeName},
		{core.TokenTagClose, "p"},
		{core.TokenTagClose, "body"},
		{core.TokenTagClose, "html"},
	}
	assert.Equal(t, want, got)
}

func TestBreadcrumbsAtTextToken(t *testing.T) {
	sc, err := NewFromString("<p>a</p>")
	require.NoError(t, err)
	for sc.Next() {
		if sc.Kind() == core.TokenText {
			assert.Equal(t,
				[]string{"html", "body", "p", core.TextNodeName},
				sc.Breadcrumbs())
			assert.Equal(t, "a", sc.Text())
			return
		}
	}
	t.Fatal("no text token produced")
}

func TestTagTokenBreadcrumbsIncludeSelf(t *testing.T) {
	sc, err := NewFromString("<div><span>x</span></div>")
	require.NoError(t, err)
	for sc.Next() {
		if sc.Kind() == core.TokenTagOpen && sc.Name() == "span" {
			assert.Equal(t, []string{"html", "body", "div", "span"}, sc.Breadcrumbs())
			return
		}
	}
	t.Fatal("no span token produced")
}

func TestImpliedListItemClosers(t *testing.T) {
	got := collect(t, "<ol><li>a<li>b<li>c</ol>")
	var opens, closes int
	for _, tk := range got {
		if tk.name != "li" {
			continue
		}
		if tk.kind == core.TokenTagOpen {
			opens++
		} else {
			closes++
		}
	}
	assert.Equal(t, 3, opens)
	assert.Equal(t, 3, closes)
}

func TestVoidElementsProduceNoCloser(t *testing.T) {
	got := collect(t, "a<br>b<hr><img src=x>")
	for _, tk := range got {
		switch tk.name {
		case "br", "hr", "img":
			assert.Equal(t, core.TokenTagOpen, tk.kind)
		}
	}
}

func TestVoidElementBreadcrumbsIncludeSelf(t *testing.T) {
	sc, err := NewFromString("<p><br></p>")
	require.NoError(t, err)
	for sc.Next() {
		if sc.Name() == "br" {
			assert.Equal(t, []string{"html", "body", "p", "br"}, sc.Breadcrumbs())
			return
		}
	}
	t.Fatal("no br token produced")
}

func TestBooleanAttribute(t *testing.T) {
	sc, err := NewFromString("<input disabled>")
	require.NoError(t, err)
	for sc.Next() {
		if sc.Name() == "input" {
			v, ok := sc.Attr("disabled")
			assert.True(t, ok)
			assert.Empty(t, v)

			_, ok = sc.Attr("checked")
			assert.False(t, ok)
			return
		}
	}
	t.Fatal("no input token produced")
}

func TestClassList(t *testing.T) {
	sc, err := NewFromString(`<code class=" language-go  hl ">x</code>`)
	require.NoError(t, err)
	for sc.Next() {
		if sc.Name() == "code" && sc.Kind() == core.TokenTagOpen {
			assert.Equal(t, []string{"language-go", "hl"}, sc.ClassList())
			return
		}
	}
	t.Fatal("no code token produced")
}

func TestCommentToken(t *testing.T) {
	sc, err := NewFromString("<!-- note -->x")
	require.NoError(t, err)
	for sc.Next() {
		if sc.Kind() == core.TokenComment {
			assert.Equal(t, core.CommentNodeName, sc.Name())
			assert.Equal(t, " note ", sc.Text())
			return
		}
	}
	t.Fatal("no comment token produced")
}

func TestGarbageInputStillScans(t *testing.T) {
	for _, src := range []string{"", "<", "<<<>", "<div", "</nope>", "\x00\xff"} {
		sc, err := NewFromString(src)
		require.NoError(t, err, "input %q", src)
		for sc.Next() {
		}
		assert.NoError(t, sc.Err(), "input %q", src)
	}
}

func TestTagNamesAreLowercased(t *testing.T) {
	got := collect(t, "<DIV><SPAN>x</SPAN></DIV>")
	for _, tk := range got {
		assert.Equal(t, tk.name, lower(tk.name))
	}
}

func lower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + 32
		}
	}
	return string(b)
}
