// Package scan implements the core.TokenScanner contract on top of
// golang.org/x/net/html.
//
// The input is parsed up front with the full HTML5 tree-construction
// algorithm, then the tree is walked depth-first, surfacing one token per
// call to Next. Parsing first means malformed input arrives at the
// converter already repaired: unclosed <li> and <p> elements get their
// implied closers, stray tags are relocated, and html/head/body are
// synthesized when missing.
package scan

import (
	"fmt"
	"io"
	"strings"

	"github.com/gaurav-prasanna/markpipe/core"
	"golang.org/x/net/html"
)

// voidElements never contain content and therefore never produce a
// closing token.
var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true,
	"embed": true, "hr": true, "img": true, "input": true,
	"link": true, "meta": true, "param": true, "source": true,
	"track": true, "wbr": true,
}

type event struct {
	node   *html.Node
	closer bool
}

// Scanner walks a parsed HTML tree in document order.
type Scanner struct {
	events     []event
	path       []string
	popPending bool

	kind   core.TokenKind
	name   string
	closer bool
	attrs  []html.Attribute
	text   string
	err    error
}

// New parses the HTML from r and returns a Scanner positioned before the
// first token.
func New(r io.Reader) (*Scanner, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}
	s := &Scanner{}
	s.pushChildren(doc)
	return s, nil
}

// NewFromString parses the given HTML source.
func NewFromString(src string) (*Scanner, error) {
	return New(strings.NewReader(src))
}

// Next advances to the next token in document order.
func (s *Scanner) Next() bool {
	if s.popPending {
		s.path = s.path[:len(s.path)-1]
		s.popPending = false
	}
	for len(s.events) > 0 {
		e := s.events[len(s.events)-1]
		s.events = s.events[:len(s.events)-1]

		if e.closer {
			s.setTag(e.node, true)
			// The element stays on the path until the caller has seen
			// the closing token.
			s.popPending = true
			return true
		}

		switch e.node.Type {
		case html.ElementNode:
			name := strings.ToLower(e.node.Data)
			if !voidElements[name] {
				s.events = append(s.events, event{node: e.node, closer: true})
				s.pushChildren(e.node)
				s.path = append(s.path, name)
			}
			s.setTag(e.node, false)
			return true
		case html.TextNode:
			s.kind = core.TokenText
			s.name = core.TextNodeName
			s.closer = false
			s.attrs = nil
			s.text = e.node.Data
			return true
		case html.CommentNode:
			s.kind = core.TokenComment
			s.name = core.CommentNodeName
			s.closer = false
			s.attrs = nil
			s.text = e.node.Data
			return true
		default:
			// Document and doctype nodes produce no token of their own.
			s.pushChildren(e.node)
		}
	}
	return false
}

// pushChildren schedules the children of n, first child on top.
func (s *Scanner) pushChildren(n *html.Node) {
	for c := n.LastChild; c != nil; c = c.PrevSibling {
		s.events = append(s.events, event{node: c})
	}
}

func (s *Scanner) setTag(n *html.Node, closer bool) {
	s.name = strings.ToLower(n.Data)
	s.closer = closer
	s.attrs = n.Attr
	s.text = ""
	if closer {
		s.kind = core.TokenTagClose
	} else {
		s.kind = core.TokenTagOpen
	}
}

// Kind reports the kind of the current token.
func (s *Scanner) Kind() core.TokenKind { return s.kind }

// Name reports the lowercased name of the current token.
func (s *Scanner) Name() string { return s.name }

// IsCloser reports whether the current token is a closing tag.
func (s *Scanner) IsCloser() bool { return s.closer }

// Attr looks up an attribute by name on the current tag.
// Boolean attributes report ("", true).
func (s *Scanner) Attr(name string) (string, bool) {
	for _, a := range s.attrs {
		if a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

// Text returns the raw character data of a text or comment token.
func (s *Scanner) Text() string { return s.text }

// Breadcrumbs returns the ancestor path at the current token, root-first.
// Tag tokens include themselves; text tokens end in the #text sentinel.
func (s *Scanner) Breadcrumbs() []string {
	crumbs := make([]string, len(s.path), len(s.path)+1)
	copy(crumbs, s.path)
	switch {
	case s.kind == core.TokenText:
		crumbs = append(crumbs, core.TextNodeName)
	case s.kind == core.TokenTagOpen && voidElements[s.name]:
		crumbs = append(crumbs, s.name)
	}
	return crumbs
}

// ClassList returns the class names of the current tag.
func (s *Scanner) ClassList() []string {
	class, ok := s.Attr("class")
	if !ok {
		return nil
	}
	return strings.Fields(class)
}

// Err reports a parse fault flagged mid-stream. The tree scanner parses
// up front, so faults surface at construction instead; Err exists to
// satisfy the scanner contract.
func (s *Scanner) Err() error { return s.err }
