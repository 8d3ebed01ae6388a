package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractPrefersMainContainer(t *testing.T) {
	html := `<html><body>
		<nav>menu</nav>
		<main><p>the content</p></main>
		<footer>legal</footer>
	</body></html>`

	got, err := New().Extract(html)
	require.NoError(t, err)
	assert.Contains(t, got, "the content")
	assert.NotContains(t, got, "menu")
	assert.NotContains(t, got, "legal")
}

func TestExtractFallsBackToArticleThenBody(t *testing.T) {
	got, err := New().Extract(`<body><article><p>a</p></article></body>`)
	require.NoError(t, err)
	assert.Contains(t, got, "<article>")

	got, err = New().Extract(`<body><p>plain</p></body>`)
	require.NoError(t, err)
	assert.Contains(t, got, "plain")
}

func TestExtractRemovesScriptsAndChrome(t *testing.T) {
	html := `<body>
		<script>alert(1)</script>
		<div class="sidebar">links</div>
		<p>keep me</p>
	</body>`

	got, err := New().Extract(html)
	require.NoError(t, err)
	assert.Contains(t, got, "keep me")
	assert.NotContains(t, got, "alert")
	assert.NotContains(t, got, "links")
}

func TestExtractKeepsImages(t *testing.T) {
	html := `<body><p>text</p><img src="/pic.png" alt="pic"></body>`

	got, err := New().Extract(html)
	require.NoError(t, err)
	assert.Contains(t, got, "<img")
	assert.Contains(t, got, "/pic.png")
}

func TestTitle(t *testing.T) {
	assert.Equal(t, "My Page", Title("<head><title> My Page </title></head><body>x</body>"))
	assert.Equal(t, "", Title("<body>no title</body>"))
}
