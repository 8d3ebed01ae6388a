// Package render — PDF renderer.
// Converts Markdown into a styled PDF using gofpdf.
// Handles headings (variable font sizes), paragraphs, code blocks,
// blockquotes, and both list marker families the converter emits.
package render

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/gaurav-prasanna/markpipe/core"
	"github.com/jung-kurt/gofpdf"
)

// PDFRenderer renders Markdown content as a PDF document.
type PDFRenderer struct{}

// NewPDFRenderer creates a PDFRenderer.
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

var orderedItemPattern = regexp.MustCompile(`^\d+\.\s`)

// Render converts Markdown into PDF bytes.
func (r *PDFRenderer) Render(markdown string, meta core.PageMetadata) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	// Title from metadata.
	if meta.Title != "" {
		pdf.SetFont("Helvetica", "B", 18)
		pdf.MultiCell(0, 8, meta.Title, "", "L", false)
		pdf.Ln(4)
	}

	// Source URL.
	if meta.URL != "" {
		pdf.SetFont("Helvetica", "I", 9)
		pdf.SetTextColor(100, 100, 100)
		pdf.MultiCell(0, 5, "Source: "+meta.URL, "", "L", false)
		pdf.SetTextColor(0, 0, 0)
		pdf.Ln(6)
	}

	lines := strings.Split(markdown, "\n")
	inCodeBlock := false

	for _, line := range lines {
		// Toggle code block state.
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			inCodeBlock = !inCodeBlock
			pdf.Ln(2)
			continue
		}

		if inCodeBlock {
			pdf.SetFont("Courier", "", 9)
			pdf.SetFillColor(245, 245, 245)
			pdf.MultiCell(0, 4.5, strings.TrimPrefix(line, "    "), "", "L", true)
			continue
		}

		if strings.TrimSpace(line) == "" {
			pdf.Ln(3)
			continue
		}

		// Horizontal rule.
		if strings.TrimSpace(line) == "***" {
			pdf.Ln(2)
			x, y := pdf.GetXY()
			pageW, _ := pdf.GetPageSize()
			_, _, rightM, _ := pdf.GetMargins()
			pdf.Line(x, y, pageW-rightM, y)
			pdf.Ln(4)
			continue
		}

		// Headings.
		if strings.HasPrefix(line, "#") {
			level := 0
			for _, ch := range line {
				if ch != '#' {
					break
				}
				level++
			}
			text := strings.TrimSpace(strings.TrimLeft(line, "# "))
			renderHeading(pdf, text, level)
			continue
		}

		// Blockquotes.
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "> ") {
			pdf.SetFont("Helvetica", "I", 10)
			pdf.SetTextColor(80, 80, 80)
			pdf.MultiCell(0, 5, cleanInlineMarkdown(strings.TrimPrefix(trimmed, "> ")), "", "L", false)
			pdf.SetTextColor(0, 0, 0)
			continue
		}

		// Unordered list items; the converter rotates *, +, - markers.
		if len(trimmed) > 1 && strings.ContainsRune("*+-", rune(trimmed[0])) && trimmed[1] == ' ' {
			pdf.SetFont("Helvetica", "", 10)
			text := "• " + cleanInlineMarkdown(trimmed[2:])
			pdf.MultiCell(0, 5, text, "", "L", false)
			continue
		}

		// Numbered list items.
		if orderedItemPattern.MatchString(trimmed) {
			pdf.SetFont("Helvetica", "", 10)
			pdf.MultiCell(0, 5, cleanInlineMarkdown(trimmed), "", "L", false)
			continue
		}

		// Regular paragraph text.
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(0, 5, cleanInlineMarkdown(line), "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Extension returns the file extension for PDF output.
func (r *PDFRenderer) Extension() string {
	return ".pdf"
}

// renderHeading sets the font size based on heading level and writes text.
func renderHeading(pdf *gofpdf.Fpdf, text string, level int) {
	sizes := map[int]float64{1: 18, 2: 15, 3: 13, 4: 12, 5: 11, 6: 10}
	size, ok := sizes[level]
	if !ok {
		size = 10
	}
	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", size)
	pdf.MultiCell(0, size*0.6, cleanInlineMarkdown(text), "", "L", false)
	pdf.Ln(2)
}

var (
	inlineCodePattern = regexp.MustCompile("`([^`]+)`")
	linkPattern       = regexp.MustCompile(`\[([^\]]*)\]\([^)]+\)`)
	escapePattern     = regexp.MustCompile(`\\([!"#$%&'()*+,\-./:;<=>?@\[\\\]^_` + "`" + `{|}~])`)
)

// cleanInlineMarkdown strips the converter's inline syntax for PDF
// rendering: emphasis markers with their invisible separators, inline
// code backticks, link syntax, and punctuation escapes.
func cleanInlineMarkdown(text string) string {
	// Invisible separators bracket the emphasis markers; strip the
	// marker together with its separator so literal ** and _ survive.
	for _, pair := range []string{"\u2063**", "**\u2063", "\u2063_", "_\u2063"} {
		text = strings.ReplaceAll(text, pair, "")
	}
	text = inlineCodePattern.ReplaceAllString(text, "$1")
	text = linkPattern.ReplaceAllString(text, "$1")
	text = escapePattern.ReplaceAllString(text, "$1")
	return strings.TrimSpace(text)
}
