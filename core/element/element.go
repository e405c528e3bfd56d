// Package element implements the document elements markgen can render.
//
// Every element is immutable once constructed and renders itself for either
// dialect through an exhaustive switch on core.Dialect:
//
//	doc := []core.Element{
//		element.NewTitle("Report"),
//		element.NewSection("Summary", element.WithLevel(2)),
//		element.NewUnorderedList("A", "B"),
//	}
//
// Widths (title rules, section underlines, table columns) are measured in
// runes, so multi-byte text lines up the same way it reads.
package element

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/gaurav-prasanna/markgen/core"
)

// ruleWidth is the fixed length of a horizontal line.
const ruleWidth = 16

// indent prefixes RST directive attributes.
const indent = "    "

func width(s string) int {
	return utf8.RuneCountInString(s)
}

func repeat(ch string, n int) string {
	return strings.Repeat(ch, n)
}

func unknownDialect(k core.Kind, d core.Dialect) error {
	return fmt.Errorf("%s: %w %q", k, core.ErrUnknownDialect, string(d))
}

// optional is a string option that remembers whether it was supplied.
type optional struct {
	value string
	set   bool
}

func some(v string) optional { return optional{value: v, set: true} }

// Get returns the value and whether it was supplied.
func (o optional) Get() (string, bool) { return o.value, o.set }
