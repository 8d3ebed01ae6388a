// Package server exposes the conversion pipeline over HTTP.
// Two JSON endpoints are provided: POST /convert turns submitted HTML
// into Markdown, and POST /fetch runs the full fetch → extract →
// convert pipeline for a URL.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/gaurav-prasanna/markpipe/core"
	"github.com/gaurav-prasanna/markpipe/core/convert"
	"github.com/gaurav-prasanna/markpipe/core/extract"
	"github.com/gaurav-prasanna/markpipe/core/fetch"
)

const (
	maxRequestBody = 8 << 20 // 8 MiB of HTML is plenty for one page
	fetchTimeout   = 45 * time.Second
)

// Server handles conversion requests over HTTP.
type Server struct {
	fetcher   core.Fetcher
	extractor core.Extractor
}

// New creates a Server with the default pipeline components.
func New() *Server {
	return &Server{
		fetcher:   fetch.New(),
		extractor: extract.New(),
	}
}

// Handler returns the HTTP handler serving the conversion endpoints.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/convert", s.handleConvert)
	mux.HandleFunc("/fetch", s.handleFetch)
	return mux
}

// ListenAndServe serves the conversion API on addr until the server fails.
func (s *Server) ListenAndServe(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return srv.ListenAndServe()
}

type convertRequest struct {
	HTML    string `json:"html"`
	BaseURL string `json:"baseUrl,omitempty"`
	Width   int    `json:"width,omitempty"`
}

type fetchRequest struct {
	URL   string `json:"url"`
	Width int    `json:"width,omitempty"`
}

type textResponse struct {
	Text string `json:"text"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// handleConvert converts a submitted HTML document to Markdown.
// Conversion itself never fails; only malformed requests are rejected.
func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, fmt.Errorf("use POST"))
		return
	}

	var req convertRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	text := convert.Convert(req.HTML, req.BaseURL, req.Width)
	writeJSON(w, http.StatusOK, textResponse{Text: text})
}

// handleFetch runs the full pipeline for a URL: fetch, extract the main
// content, convert to Markdown.
func (s *Server) handleFetch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, fmt.Errorf("use POST"))
		return
	}

	var req fetchRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if req.URL == "" {
		writeError(w, http.StatusBadRequest, fmt.Errorf("url is required"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), fetchTimeout)
	defer cancel()

	result, err := s.fetcher.Fetch(ctx, req.URL)
	if err != nil {
		writeError(w, http.StatusBadGateway, fmt.Errorf("fetch: %w", err))
		return
	}

	content, err := s.extractor.Extract(result.HTML)
	if err != nil {
		// Extraction failing just means we convert the whole page.
		content = result.HTML
	}

	text := convert.Convert(content, originOf(req.URL), req.Width)
	writeJSON(w, http.StatusOK, textResponse{Text: text})
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

// decodeJSON parses a single JSON object from the request body.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxRequestBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("decoding request: %w", err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}
