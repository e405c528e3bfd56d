package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const page = `<html><body>
<nav><a href="/">Home</a></nav>
<main>
  <h1>Guide</h1>
  <script>track()</script>
  <p>Intro</p>
  <img src="a.png" alt="A">
  <div class="ads">Buy</div>
</main>
<footer>(c)</footer>
</body></html>`

func TestExtractPrefersMain(t *testing.T) {
	e, err := New()
	require.NoError(t, err)

	got, err := e.Extract(page)
	require.NoError(t, err)
	assert.Contains(t, got, "<main>")
	assert.Contains(t, got, "<h1>Guide</h1>")
	assert.Contains(t, got, `<img src="a.png" alt="A"/>`)
	assert.NotContains(t, got, "track()")
	assert.NotContains(t, got, "Buy")
	assert.NotContains(t, got, "Home")
	assert.NotContains(t, got, "(c)")
}

func TestExtractFallsBackToBody(t *testing.T) {
	e, err := New()
	require.NoError(t, err)

	got, err := e.Extract("<p>just text</p>")
	require.NoError(t, err)
	assert.Contains(t, got, "<body>")
	assert.Contains(t, got, "just text")
}

func TestExtraSelectors(t *testing.T) {
	e, err := New(".cookie-banner")
	require.NoError(t, err)

	got, err := e.Extract(`<article><p class="cookie-banner">cookies</p><p>kept</p></article>`)
	require.NoError(t, err)
	assert.NotContains(t, got, "cookies")
	assert.Contains(t, got, "kept")
}

func TestInvalidSelector(t *testing.T) {
	_, err := New("[[")
	assert.Error(t, err)
}
