package element

import "github.com/gaurav-prasanna/markgen/core"

// Text is a paragraph rendered verbatim.
type Text struct {
	content string
}

// NewText creates a Text.
func NewText(content string) Text {
	return Text{content: content}
}

// Content returns the paragraph text.
func (t Text) Content() string { return t.content }

func (t Text) Kind() core.Kind { return core.KindText }

func (t Text) Render(d core.Dialect) (string, error) {
	if !d.Valid() {
		return "", unknownDialect(t.Kind(), d)
	}
	return t.content, nil
}

// Emphasis is italic text.
type Emphasis struct {
	Text
}

// NewEmphasis creates an Emphasis.
func NewEmphasis(content string) Emphasis {
	return Emphasis{Text: NewText(content)}
}

func (e Emphasis) Kind() core.Kind { return core.KindEmphasis }

func (e Emphasis) Render(d core.Dialect) (string, error) {
	switch d {
	case core.RST:
		return "*" + e.content + "*", nil
	case core.Markdown:
		return "_" + e.content + "_", nil
	default:
		return "", unknownDialect(e.Kind(), d)
	}
}

// Bold is strong text. Both dialects share the same markers.
type Bold struct {
	Text
}

// NewBold creates a Bold.
func NewBold(content string) Bold {
	return Bold{Text: NewText(content)}
}

func (b Bold) Kind() core.Kind { return core.KindBold }

func (b Bold) Render(d core.Dialect) (string, error) {
	if !d.Valid() {
		return "", unknownDialect(b.Kind(), d)
	}
	return "**" + b.content + "**", nil
}

// HorizontalLine is a fixed-width rule.
type HorizontalLine struct{}

// NewHorizontalLine creates a HorizontalLine.
func NewHorizontalLine() HorizontalLine {
	return HorizontalLine{}
}

func (h HorizontalLine) Kind() core.Kind { return core.KindHorizontalLine }

func (h HorizontalLine) Render(d core.Dialect) (string, error) {
	if !d.Valid() {
		return "", unknownDialect(h.Kind(), d)
	}
	return repeat("-", ruleWidth), nil
}
