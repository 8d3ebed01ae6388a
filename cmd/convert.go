// Package cmd — convert command.
// Converts a local HTML document (file or stdin) to Markdown.
package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/gaurav-prasanna/markpipe/core/convert"
	"github.com/spf13/cobra"
)

var (
	flagBase  string
	flagWidth int
	flagOut   string
)

var convertCmd = &cobra.Command{
	Use:   "convert [file]",
	Short: "Convert an HTML file (or stdin) to Markdown",
	Long: `Convert reads an HTML document from the given file, or from stdin when
no file is named, and writes the Markdown rendition.

Examples:
  markpipe convert page.html
  markpipe convert page.html --base https://example.com --width 100
  curl -s https://example.com | markpipe convert --out page.md`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().StringVar(&flagBase, "base", "", "Base URL for resolving relative links")
	convertCmd.Flags().IntVar(&flagWidth, "width", convert.DefaultWidth, "Target line width in display columns")
	convertCmd.Flags().StringVar(&flagOut, "out", "", "Output file (default: stdout)")
}

func runConvert(cmd *cobra.Command, args []string) error {
	var (
		raw []byte
		err error
	)
	if len(args) == 1 {
		raw, err = os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading %s: %w", args[0], err)
		}
	} else {
		raw, err = io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
	}

	markdown := convert.Convert(string(raw), flagBase, flagWidth)

	if flagOut == "" {
		fmt.Fprintln(os.Stdout, markdown)
		return nil
	}
	if err := os.WriteFile(flagOut, []byte(markdown+"\n"), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", flagOut, err)
	}
	fmt.Fprintf(os.Stdout, "✓ Written: %s\n", flagOut)
	return nil
}
