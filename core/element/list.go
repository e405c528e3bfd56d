package element

import (
	"strings"

	"github.com/gaurav-prasanna/markgen/core"
)

// UnorderedList is a bulleted list. An empty list renders nothing.
type UnorderedList struct {
	items []string
}

// NewUnorderedList creates an UnorderedList.
func NewUnorderedList(items ...string) UnorderedList {
	return UnorderedList{items: append([]string(nil), items...)}
}

// Items returns a copy of the list items.
func (l UnorderedList) Items() []string { return append([]string(nil), l.items...) }

func (l UnorderedList) Kind() core.Kind { return core.KindUnorderedList }

func (l UnorderedList) Render(d core.Dialect) (string, error) {
	if !d.Valid() {
		return "", unknownDialect(l.Kind(), d)
	}
	return prefixLines(l.items, func(int) string { return "* " }), nil
}

// OrderedList is a numbered list. An empty list renders nothing.
type OrderedList struct {
	items []string
}

// NewOrderedList creates an OrderedList.
func NewOrderedList(items ...string) OrderedList {
	return OrderedList{items: append([]string(nil), items...)}
}

// Items returns a copy of the list items.
func (l OrderedList) Items() []string { return append([]string(nil), l.items...) }

func (l OrderedList) Kind() core.Kind { return core.KindOrderedList }

// Render numbers the first RST item explicitly and auto-numbers the rest.
// Markdown repeats "1." and leaves numbering to the reader.
func (l OrderedList) Render(d core.Dialect) (string, error) {
	switch d {
	case core.RST:
		return prefixLines(l.items, func(i int) string {
			if i == 0 {
				return "1. "
			}
			return "#. "
		}), nil
	case core.Markdown:
		return prefixLines(l.items, func(int) string { return "1. " }), nil
	default:
		return "", unknownDialect(l.Kind(), d)
	}
}

func prefixLines(items []string, marker func(i int) string) string {
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = marker(i) + item
	}
	return strings.Join(lines, "\n")
}
