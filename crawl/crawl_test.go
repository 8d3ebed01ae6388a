package crawl

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaurav-prasanna/markpipe/core"
)

// stubFetcher serves canned HTML per URL.
type stubFetcher struct {
	pages map[string]string
}

func (s *stubFetcher) Fetch(_ context.Context, url string) (*core.FetchResult, error) {
	html, ok := s.pages[url]
	if !ok {
		return nil, fmt.Errorf("no page for %s", url)
	}
	return &core.FetchResult{URL: url, StatusCode: 200, HTML: html}, nil
}

func TestFrontierDeduplicates(t *testing.T) {
	f := NewFrontier()
	f.Enqueue("https://a.com/x")
	f.Enqueue("https://a.com/x")
	f.Enqueue("https://a.com/y")

	assert.Equal(t, 2, f.Seen())
	assert.Equal(t, []string{"https://a.com/x", "https://a.com/y"}, f.URLs())

	require.True(t, f.HasNext())
	assert.Equal(t, "https://a.com/x", f.Dequeue())
	assert.Equal(t, "https://a.com/y", f.Dequeue())
	assert.False(t, f.HasNext())
}

func TestDiscoverFromLinksFollowsInternalLinksOnly(t *testing.T) {
	fetcher := &stubFetcher{pages: map[string]string{
		"https://a.com": `<a href="/one">1</a>
			<a href="https://other.com/x">ext</a>
			<a href="/style.css">css</a>
			<a href="mailto:x@a.com">mail</a>`,
		"https://a.com/one": `<a href="/two#frag">2</a>`,
		"https://a.com/two": `<a href="/one">back</a>`,
	}}

	urls, err := discoverFromLinks(context.Background(), "https://a.com", "a.com", fetcher)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"https://a.com",
		"https://a.com/one",
		"https://a.com/two",
	}, urls)
}

func TestDiscoverSkipsFailedPages(t *testing.T) {
	fetcher := &stubFetcher{pages: map[string]string{
		"https://a.com": `<a href="/missing">m</a><a href="/ok">ok</a>`,
		"https://a.com/ok": `x`,
	}}

	urls, err := discoverFromLinks(context.Background(), "https://a.com", "a.com", fetcher)
	require.NoError(t, err)
	assert.Contains(t, urls, "https://a.com/ok")
	assert.Contains(t, urls, "https://a.com/missing")
}

func TestIsSameDomain(t *testing.T) {
	assert.True(t, IsSameDomain("https://a.com/p", "a.com"))
	assert.False(t, IsSameDomain("https://b.com/p", "a.com"))
	assert.False(t, IsSameDomain("://bad", "a.com"))
}

func TestIsStaticAsset(t *testing.T) {
	assert.True(t, IsStaticAsset("https://a.com/x.png"))
	assert.True(t, IsStaticAsset("https://a.com/app.JS"))
	assert.False(t, IsStaticAsset("https://a.com/docs/page"))
}

func TestNormalizeURL(t *testing.T) {
	assert.Equal(t, "https://a.com/p", NormalizeURL("https://a.com/p/"))
	assert.Equal(t, "https://a.com/p", NormalizeURL("https://a.com/p#frag"))
	assert.Equal(t, "https://a.com/", NormalizeURL("https://a.com/"))
}

func TestExtractLinksResolvesRelative(t *testing.T) {
	links, err := extractLinks(`<a href="sub">s</a><a href="/abs">a</a>`, "https://a.com/docs/")
	require.NoError(t, err)
	assert.Equal(t, []string{"https://a.com/docs/sub", "https://a.com/abs"}, links)
}
