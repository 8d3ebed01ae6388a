// Package core defines the pipeline interfaces and shared types for MarkPipe.
// Each stage of the pipeline is a clean, testable interface.
package core

import "context"

// TokenKind identifies the kind of a token produced by a TokenScanner.
type TokenKind int

const (
	// TokenTagOpen is an opening (or void) element tag.
	TokenTagOpen TokenKind = iota
	// TokenTagClose is a closing element tag.
	TokenTagClose
	// TokenText is a run of character data.
	TokenText
	// TokenComment is an HTML comment.
	TokenComment
)

// TextNodeName is the sentinel node name reported for text tokens.
const TextNodeName = "#text"

// CommentNodeName is the sentinel node name reported for comment tokens.
const CommentNodeName = "#comment"

// TokenScanner is the capability surface the conversion engine requires
// from an HTML tokenizer. Any standards-conformant HTML5 parser exposing
// this introspection suffices; the engine never depends on how the token
// stream is produced.
//
// A scanner instance is owned by exactly one in-flight conversion and
// must not be reused afterward.
type TokenScanner interface {
	// Next advances to the next token and reports whether one is available.
	Next() bool
	// Kind reports the kind of the current token.
	Kind() TokenKind
	// Name reports the lowercased tag name of the current token, or the
	// TextNodeName / CommentNodeName sentinels for non-element tokens.
	Name() string
	// IsCloser reports whether the current token is a closing tag.
	IsCloser() bool
	// Attr looks up an attribute on the current tag. Boolean attributes
	// report ("", true); absent attributes report ("", false).
	Attr(name string) (string, bool)
	// Text returns the raw character data of a text or comment token.
	Text() string
	// Breadcrumbs returns the ancestor element names at the current token,
	// root-first, including the current element for tag tokens and the
	// TextNodeName sentinel for text tokens.
	Breadcrumbs() []string
	// ClassList returns the class names of the current tag.
	ClassList() []string
	// Err reports a parse fault flagged by the scanner, if any.
	Err() error
}

// FetchResult holds the raw HTML and response metadata from a fetch.
type FetchResult struct {
	URL        string
	StatusCode int
	HTML       string
}

// PageMetadata holds metadata derived from the page and its URL.
type PageMetadata struct {
	URL       string
	Domain    string
	Title     string
	FetchedAt string // ISO8601
}

// Fetcher retrieves raw HTML from a URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*FetchResult, error)
}

// Extractor pulls the main content from raw HTML, stripping noise.
type Extractor interface {
	Extract(html string) (string, error)
}

// Normalizer converts HTML into Markdown (the canonical format).
type Normalizer interface {
	Normalize(html string) (string, error)
}

// Renderer converts Markdown (and metadata) into a final output format.
type Renderer interface {
	Render(markdown string, meta PageMetadata) ([]byte, error)
	// Extension returns the file extension for this renderer (e.g. ".md").
	Extension() string
}
