// Package extract implements the Extractor interface.
// It isolates the main content of an HTML page before an outline is built:
//  1. Removing noise elements (nav, footer, scripts, forms, etc.)
//  2. Picking the best content container (<main>, <article>, or <body>)
//
// Images and figures are kept; they become Image elements.
package extract

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
)

// noiseSelectors are HTML elements removed before extraction.
var noiseSelectors = []string{
	"script", "style", "noscript", "template",
	"nav", "footer", "header", "aside",
	"iframe", "video", "audio", "svg", "canvas",
	"form", "button", "input", "select", "textarea",
	".sidebar", ".menu", ".navigation", ".ads", ".advertisement",
}

// containers are tried in order; the first match holds the content.
var containers = []cascadia.Selector{
	cascadia.MustCompile("main"),
	cascadia.MustCompile("article"),
	cascadia.MustCompile("body"),
}

// HTMLExtractor strips noise from HTML and returns the main content fragment.
type HTMLExtractor struct {
	noise cascadia.Selector
}

// New creates an HTMLExtractor. Extra selectors are removed in addition to
// the built-in noise list.
func New(extra ...string) (*HTMLExtractor, error) {
	sels := append(append([]string(nil), noiseSelectors...), extra...)
	group, err := cascadia.Compile(strings.Join(sels, ", "))
	if err != nil {
		return nil, fmt.Errorf("compiling noise selectors: %w", err)
	}
	return &HTMLExtractor{noise: group}, nil
}

// Extract takes raw HTML and returns a cleaned HTML fragment containing only
// the main content.
func (e *HTMLExtractor) Extract(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("parsing HTML: %w", err)
	}

	doc.FindMatcher(e.noise).Remove()

	var content *goquery.Selection
	for _, m := range containers {
		if sel := doc.FindMatcher(m); sel.Length() > 0 {
			content = sel.First()
			break
		}
	}
	if content == nil {
		return "", fmt.Errorf("no content container found in HTML")
	}

	result, err := goquery.OuterHtml(content)
	if err != nil {
		return "", fmt.Errorf("serializing content: %w", err)
	}
	return result, nil
}
