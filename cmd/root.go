// Package cmd implements the CLI commands for MarkPipe using Cobra.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "markpipe",
	Short: "MarkPipe — convert HTML pages into plain-text Markdown",
	Long: `MarkPipe converts HTML into deterministic, plain-text-friendly Markdown.

Local documents go through the converter directly; URLs go through the
full fetch → extract → convert pipeline, optionally rendered as PDF or
mirrored across a whole site.

Usage:
  markpipe convert [file] [flags]
  markpipe fetch <url> [flags]
  markpipe serve [flags]`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
