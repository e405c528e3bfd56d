package assemble

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaurav-prasanna/markgen/core"
	"github.com/gaurav-prasanna/markgen/core/extract"
	"github.com/gaurav-prasanna/markgen/core/generator"
	"github.com/gaurav-prasanna/markgen/core/normalize"
)

const guidePage = `<!doctype html>
<html><head><title>Guide | Site</title></head>
<body>
<nav><a href="/">Home</a></nav>
<main>
  <h1>Guide</h1>
  <p>Read <strong>this</strong> first.</p>
  <h2>Setup</h2>
  <ul><li>Install</li><li>Run   it</li></ul>
  <h3>Details</h3>
  <ol><li>One</li><li>Two</li></ol>
  <p><img src="img/shot.png" alt="Shot" title="Screen"></p>
  <p><a href="/docs">Docs</a></p>
  <p><em>Note</em></p>
  <hr>
  <div><section>
    <table>
      <tr><th>Key</th><th>Value</th></tr>
      <tr><td>a</td></tr>
    </table>
  </section></div>
</main>
<footer>(c)</footer>
</body></html>`

func newGuide(t *testing.T) *HTMLOutline {
	t.Helper()
	ex, err := extract.New()
	require.NoError(t, err)
	h, err := NewHTMLOutline(guidePage, "https://example.com/guide/",
		WithExtractor(ex),
		WithNormalizer(normalize.New()),
	)
	require.NoError(t, err)
	return h
}

func TestHTMLOutlineRST(t *testing.T) {
	got, err := generator.New(nil, core.RST, newGuide(t)).Render()
	require.NoError(t, err)

	want := "=====\nGuide\n=====\n\n" +
		"Read this first.\n\n" +
		"Setup\n=====\n\n" +
		"* Install\n* Run it\n\n" +
		"Details\n-------\n\n" +
		"1. One\n#. Two\n\n" +
		".. image:: https://example.com/guide/img/shot.png\n    :alt: Shot\n\n" +
		".. _Docs: https://example.com/docs\n\n" +
		"*Note*\n\n" +
		"----------------\n\n" +
		"===== ===== \nKey   Value \n===== ===== \na           \n===== ===== \n"
	assert.Equal(t, want, got)
}

func TestHTMLOutlineMarkdownKeepsInlineFormatting(t *testing.T) {
	blocks, err := generator.New(nil, core.Markdown, newGuide(t)).Blocks()
	require.NoError(t, err)
	require.NotEmpty(t, blocks)

	assert.Equal(t, core.Block{Kind: core.KindTitle, Markup: "# Guide"}, blocks[0])
	assert.Equal(t, core.Block{Kind: core.KindText, Markup: "Read **this** first."}, blocks[1])
	assert.Equal(t, `![Shot](https://example.com/guide/img/shot.png "Screen")`, blocks[6].Markup)
}

func TestHTMLOutlineFallsBackToPageTitle(t *testing.T) {
	h, err := NewHTMLOutline(`<html><head><title>Only title</title></head><body><p>Body</p></body></html>`, "")
	require.NoError(t, err)
	assert.Equal(t, "Only title", h.PageTitle())

	got, err := generator.New(nil, core.Markdown, h).Render()
	require.NoError(t, err)
	assert.Equal(t, "# Only title\n\nBody\n", got)
}

func TestHTMLOutlineSkipsEmptyHeadings(t *testing.T) {
	h, err := NewHTMLOutline(`<html><head><title>Fallback</title></head><body>
<h1>  </h1><h2></h2><p>x</p></body></html>`, "")
	require.NoError(t, err)

	got, err := generator.New(nil, core.RST, h).Render()
	require.NoError(t, err)
	assert.Equal(t, "========\nFallback\n========\n\nx\n", got)
}

func TestHTMLOutlineRelativeWithoutBase(t *testing.T) {
	h, err := NewHTMLOutline(`<p><a href="/x">/x</a></p>`, "")
	require.NoError(t, err)

	got, err := generator.New(nil, core.RST, h).Render()
	require.NoError(t, err)
	assert.Equal(t, ".. _/x: /x\n", got)
}

func TestTableRowsPadRaggedRows(t *testing.T) {
	h, err := NewHTMLOutline(`<table><tr><td>a</td><td>b</td><td>c</td></tr><tr><td>d</td></tr></table>`, "")
	require.NoError(t, err)

	doc, err := h.Build(nil, core.Markdown)
	require.NoError(t, err)
	require.Len(t, doc, 1)
	out, err := doc[0].Render(core.Markdown)
	require.NoError(t, err)
	assert.Equal(t, "| a | b | c |\n| - | - | - |\n| d |   |   |", out)
}
