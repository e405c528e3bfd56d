// Package generator assembles a document from a Builder and joins the
// rendered elements into the final markup.
//
// Every element that renders to a non-empty string is followed by exactly one
// blank line; elements that render empty contribute nothing. A document whose
// last element rendered therefore ends in a single trailing newline.
package generator

import (
	"fmt"
	"strings"

	"github.com/gaurav-prasanna/markgen/core"
)

// Generator renders the document a Builder assembles from its data.
type Generator struct {
	data    core.Data
	dialect core.Dialect
	builder core.Builder
}

// New creates a Generator. The data mapping is passed to the builder as-is.
func New(data core.Data, dialect core.Dialect, builder core.Builder) *Generator {
	return &Generator{data: data, dialect: dialect, builder: builder}
}

// Dialect returns the configured output dialect.
func (g *Generator) Dialect() core.Dialect { return g.dialect }

// Document runs the builder and returns the assembled elements.
func (g *Generator) Document() ([]core.Element, error) {
	if !g.dialect.Valid() {
		return nil, fmt.Errorf("%w %q", core.ErrUnknownDialect, string(g.dialect))
	}
	if g.builder == nil {
		return nil, fmt.Errorf("generator: builder is required")
	}
	doc, err := g.builder.Build(g.data, g.dialect)
	if err != nil {
		return nil, fmt.Errorf("building document: %w", err)
	}
	return doc, nil
}

// Blocks renders the document and returns one block per non-empty element.
func (g *Generator) Blocks() ([]core.Block, error) {
	doc, err := g.Document()
	if err != nil {
		return nil, err
	}
	return RenderBlocks(doc, g.dialect)
}

// Render returns the complete markup of the document.
func (g *Generator) Render() (string, error) {
	blocks, err := g.Blocks()
	if err != nil {
		return "", err
	}
	return Join(blocks), nil
}

// RenderBlocks renders each element of doc, dropping empty results.
func RenderBlocks(doc []core.Element, d core.Dialect) ([]core.Block, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("%w %q", core.ErrUnknownDialect, string(d))
	}
	blocks := make([]core.Block, 0, len(doc))
	for i, elem := range doc {
		if elem == nil {
			continue
		}
		markup, err := elem.Render(d)
		if err != nil {
			return nil, fmt.Errorf("element %d (%s): %w", i, elem.Kind(), err)
		}
		if markup == "" {
			continue
		}
		blocks = append(blocks, core.Block{Kind: elem.Kind(), Markup: markup})
	}
	return blocks, nil
}

// Render renders doc without a Builder.
func Render(doc []core.Element, d core.Dialect) (string, error) {
	blocks, err := RenderBlocks(doc, d)
	if err != nil {
		return "", err
	}
	return Join(blocks), nil
}

// Join concatenates blocks, each followed by one blank line.
func Join(blocks []core.Block) string {
	lines := make([]string, 0, 2*len(blocks))
	for _, b := range blocks {
		lines = append(lines, b.Markup, "")
	}
	return strings.Join(lines, "\n")
}
