// Package cmd — fetch command.
// Orchestrates the full pipeline for a URL:
// fetch → extract → convert → render → write.
//
// It handles renderer selection and the single-page / --all modes.
package cmd

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/gaurav-prasanna/markpipe/core"
	"github.com/gaurav-prasanna/markpipe/core/convert"
	"github.com/gaurav-prasanna/markpipe/core/extract"
	"github.com/gaurav-prasanna/markpipe/core/fetch"
	"github.com/gaurav-prasanna/markpipe/core/output"
	"github.com/gaurav-prasanna/markpipe/core/render"
	"github.com/gaurav-prasanna/markpipe/crawl"
	"github.com/spf13/cobra"
)

var (
	flagPDF        bool
	flagAll        bool
	flagFetchWidth int
	flagOutputDir  string
)

var fetchCmd = &cobra.Command{
	Use:   "fetch <url>",
	Short: "Fetch a URL and convert it to Markdown or PDF",
	Long: `Fetch retrieves a webpage, extracts the main content, converts it to
Markdown, and writes the result. Relative links resolve against the
page's own origin.

Examples:
  markpipe fetch https://example.com
  markpipe fetch https://example.com --pdf --output_dir ./out
  markpipe fetch https://example.com --all`,
	Args: cobra.ExactArgs(1),
	RunE: runFetch,
}

func init() {
	rootCmd.AddCommand(fetchCmd)

	fetchCmd.Flags().BoolVar(&flagPDF, "pdf", false, "Render PDF instead of Markdown")
	fetchCmd.Flags().BoolVar(&flagAll, "all", false, "Convert all discovered sub-pages")
	fetchCmd.Flags().IntVar(&flagFetchWidth, "width", convert.DefaultWidth, "Target line width in display columns")
	fetchCmd.Flags().StringVar(&flagOutputDir, "output_dir", "", "Output directory (default: current directory)")
}

func runFetch(cmd *cobra.Command, args []string) error {
	rawURL := args[0]

	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("invalid URL: %s (must include scheme, e.g. https://example.com)", rawURL)
	}

	var renderer core.Renderer = render.NewMarkdownRenderer()
	if flagPDF {
		renderer = render.NewPDFRenderer()
	}

	fetcher := fetch.New()
	extractor := extract.New()

	writer, err := output.New(flagOutputDir)
	if err != nil {
		return fmt.Errorf("initializing output writer: %w", err)
	}

	ctx := context.Background()

	if flagAll {
		return runFetchAll(ctx, rawURL, fetcher, extractor, renderer, writer)
	}
	return runFetchOne(ctx, rawURL, fetcher, extractor, renderer, writer)
}

// runFetchOne processes a single URL through the pipeline.
func runFetchOne(
	ctx context.Context,
	rawURL string,
	fetcher core.Fetcher,
	extractor core.Extractor,
	renderer core.Renderer,
	writer *output.Writer,
) error {
	data, err := processURL(ctx, rawURL, fetcher, extractor, renderer)
	if err != nil {
		return err
	}

	path, err := writer.WritePage(rawURL, data, renderer.Extension())
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "✓ Written: %s\n", path)
	return nil
}

// runFetchAll discovers all internal pages and processes each.
func runFetchAll(
	ctx context.Context,
	rawURL string,
	fetcher core.Fetcher,
	extractor core.Extractor,
	renderer core.Renderer,
	writer *output.Writer,
) error {
	fmt.Fprintf(os.Stdout, "Discovering pages from %s...\n", rawURL)

	urls, err := crawl.DiscoverAll(ctx, rawURL, fetcher)
	if err != nil {
		return fmt.Errorf("discovering pages: %w", err)
	}

	fmt.Fprintf(os.Stdout, "Found %d pages to process\n", len(urls))

	var errCount int
	for i, pageURL := range urls {
		fmt.Fprintf(os.Stdout, "[%d/%d] Processing %s\n", i+1, len(urls), pageURL)

		data, err := processURL(ctx, pageURL, fetcher, extractor, renderer)
		if err != nil {
			fmt.Fprintf(os.Stderr, "  ✗ Error: %v\n", err)
			errCount++
			continue
		}

		path, err := writer.WriteMirrored(pageURL, data, renderer.Extension())
		if err != nil {
			fmt.Fprintf(os.Stderr, "  ✗ Write error: %v\n", err)
			errCount++
			continue
		}
		fmt.Fprintf(os.Stdout, "  ✓ Written: %s\n", path)
	}

	if errCount > 0 {
		fmt.Fprintf(os.Stderr, "\n%d/%d pages failed\n", errCount, len(urls))
	}
	return nil
}

// processURL runs a single URL through the full pipeline.
func processURL(
	ctx context.Context,
	rawURL string,
	fetcher core.Fetcher,
	extractor core.Extractor,
	renderer core.Renderer,
) ([]byte, error) {
	result, err := fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}

	content, err := extractor.Extract(result.HTML)
	if err != nil {
		// A page with no recognizable container still converts whole.
		content = result.HTML
	}

	markdown := convert.Convert(content, originOf(rawURL), flagFetchWidth)

	meta := buildMetadata(rawURL, result.HTML)

	data, err := renderer.Render(markdown, meta)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return data, nil
}

// originOf reduces a page URL to its scheme://host origin, the default
// base for resolving the page's relative links.
func originOf(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return rawURL
	}
	return parsed.Scheme + "://" + parsed.Host
}

// buildMetadata constructs PageMetadata from the URL and raw HTML.
func buildMetadata(rawURL string, html string) core.PageMetadata {
	parsed, _ := url.Parse(rawURL)

	return core.PageMetadata{
		URL:       rawURL,
		Domain:    parsed.Host,
		Title:     extract.Title(html),
		FetchedAt: time.Now().UTC().Format(time.RFC3339),
	}
}
