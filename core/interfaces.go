// Package core defines the document model and pipeline interfaces for markgen.
// Elements render themselves per dialect; each pipeline stage around the
// generator (fetch, extract, normalize, encode) is a small, testable interface.
package core

import (
	"context"
	"fmt"
	"strings"
)

// Dialect selects the output markup syntax.
type Dialect string

const (
	// RST is the block dialect (reStructuredText).
	RST Dialect = "rst"
	// Markdown is the inline-marker dialect.
	Markdown Dialect = "md"
)

// Dialects returns every supported dialect in a stable order.
func Dialects() []Dialect {
	return []Dialect{RST, Markdown}
}

// ParseDialect resolves a user-supplied dialect name.
func ParseDialect(s string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "rst", "restructuredtext":
		return RST, nil
	case "md", "markdown":
		return Markdown, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownDialect, s)
	}
}

// Valid reports whether d is one of the supported dialects.
func (d Dialect) Valid() bool {
	return d == RST || d == Markdown
}

// Extension returns the file extension for markup written in this dialect.
func (d Dialect) Extension() string {
	switch d {
	case RST:
		return ".rst"
	case Markdown:
		return ".md"
	default:
		return ".txt"
	}
}

// Element is a single unit of document content.
// Render returns "" when the element has nothing to contribute.
type Element interface {
	Kind() Kind
	Render(d Dialect) (string, error)
}

// Data is the opaque input mapping handed to a Builder.
type Data map[string]any

// Builder assembles the ordered element sequence of a document.
type Builder interface {
	Build(data Data, d Dialect) ([]Element, error)
}

// BuilderFunc adapts a plain function to the Builder interface.
type BuilderFunc func(data Data, d Dialect) ([]Element, error)

// Build calls f(data, d).
func (f BuilderFunc) Build(data Data, d Dialect) ([]Element, error) {
	return f(data, d)
}

// Block is the rendered form of one element that produced output.
type Block struct {
	Kind   Kind   `json:"kind"`
	Markup string `json:"markup"`
}

// DocumentMeta describes where a rendered document came from.
type DocumentMeta struct {
	Name        string  `json:"name"`
	Source      string  `json:"source"`
	Dialect     Dialect `json:"dialect"`
	GeneratedAt string  `json:"generated_at"` // ISO8601
}

// Output is a fully rendered document ready for encoding.
type Output struct {
	Meta   DocumentMeta
	Markup string
	Blocks []Block
}

// FetchResult holds the raw body and response metadata from a fetch.
type FetchResult struct {
	URL         string
	StatusCode  int
	ContentType string
	Body        string
}

// Fetcher retrieves a remote document.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*FetchResult, error)
}

// Extractor pulls the main content from raw HTML, stripping noise.
type Extractor interface {
	Extract(html string) (string, error)
}

// Normalizer converts an HTML fragment into Markdown inline text.
type Normalizer interface {
	Normalize(html string) (string, error)
}

// Encoder converts a rendered document into its final file format.
type Encoder interface {
	Encode(out Output) ([]byte, error)
	// Extension returns the file extension for this encoder (e.g. ".rst", ".pdf").
	Extension() string
}
