package element

import (
	"fmt"

	"github.com/gaurav-prasanna/markgen/core"
)

// Title is the document title.
type Title struct {
	content string
}

// NewTitle creates a Title.
func NewTitle(content string) Title {
	return Title{content: content}
}

// Content returns the title text.
func (t Title) Content() string { return t.content }

func (t Title) Kind() core.Kind { return core.KindTitle }

// Render boxes the title between two '=' rules in RST and uses a single '#'
// heading in Markdown.
func (t Title) Render(d core.Dialect) (string, error) {
	switch d {
	case core.RST:
		line := repeat("=", width(t.content))
		return line + "\n" + t.content + "\n" + line, nil
	case core.Markdown:
		return "# " + t.content, nil
	default:
		return "", unknownDialect(t.Kind(), d)
	}
}

// MinLevel and MaxLevel bound section levels.
const (
	MinLevel = 1
	MaxLevel = 5
)

// underlines maps a section level to its RST underline character.
var underlines = map[int]string{
	1: "=",
	2: "-",
	3: "*",
	4: "~",
	5: "^",
}

// Section is a heading below the title.
type Section struct {
	content string
	level   int
}

// SectionOption configures a Section.
type SectionOption func(*Section)

// WithLevel sets the section depth, 1 (default) through 5.
func WithLevel(level int) SectionOption {
	return func(s *Section) {
		s.level = level
	}
}

// NewSection creates a Section.
func NewSection(content string, opts ...SectionOption) Section {
	s := Section{content: content, level: MinLevel}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// Content returns the heading text.
func (s Section) Content() string { return s.content }

// Level returns the section depth.
func (s Section) Level() int { return s.level }

func (s Section) Kind() core.Kind { return core.KindSection }

func (s Section) Render(d core.Dialect) (string, error) {
	if !d.Valid() {
		return "", unknownDialect(s.Kind(), d)
	}
	if s.level < MinLevel || s.level > MaxLevel {
		return "", fmt.Errorf("%s %q: %w %d", s.Kind(), s.content, core.ErrUnknownLevel, s.level)
	}

	if d == core.RST {
		return s.content + "\n" + repeat(underlines[s.level], width(s.content)), nil
	}
	// Level 1 sits one below the title, so it gets two markers.
	return repeat("#", s.level+1) + " " + s.content, nil
}
