// Package render provides output renderers for the MarkPipe pipeline.
// This file implements the Markdown renderer, which is a near-passthrough.
package render

import (
	"github.com/gaurav-prasanna/markpipe/core"
)

// MarkdownRenderer writes Markdown as-is. It's the simplest renderer
// since Markdown is already the canonical pipeline format.
type MarkdownRenderer struct{}

// NewMarkdownRenderer creates a MarkdownRenderer.
func NewMarkdownRenderer() *MarkdownRenderer {
	return &MarkdownRenderer{}
}

// Render returns the Markdown as bytes with a trailing newline.
func (r *MarkdownRenderer) Render(markdown string, meta core.PageMetadata) ([]byte, error) {
	if markdown == "" || markdown[len(markdown)-1] == '\n' {
		return []byte(markdown), nil
	}
	return []byte(markdown + "\n"), nil
}

// Extension returns the file extension for Markdown output.
func (r *MarkdownRenderer) Extension() string {
	return ".md"
}
