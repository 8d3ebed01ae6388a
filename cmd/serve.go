// Package cmd — serve command.
// Runs the HTTP conversion API.
package cmd

import (
	"fmt"
	"os"

	"github.com/gaurav-prasanna/markpipe/server"
	"github.com/spf13/cobra"
)

var flagAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the conversion API over HTTP",
	Long: `Serve exposes the converter as a JSON API:

  POST /convert  {"html": "...", "baseUrl": "...", "width": 80}
  POST /fetch    {"url": "https://example.com", "width": 80}

Both respond with {"text": "..."} on success.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&flagAddr, "addr", ":8080", "Listen address")
}

func runServe(cmd *cobra.Command, args []string) error {
	fmt.Fprintf(os.Stdout, "Listening on %s\n", flagAddr)
	return server.New().ListenAndServe(flagAddr)
}
