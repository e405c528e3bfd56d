package render

import (
	"fmt"
	"io"

	"github.com/charmbracelet/glamour"

	"github.com/gaurav-prasanna/markgen/core"
)

// Preview writes markup to w for reading in a terminal. Markdown is styled
// with glamour; RST has no terminal renderer and is written unchanged.
func Preview(w io.Writer, markup string, d core.Dialect, style string, width int) error {
	if d != core.Markdown {
		_, err := io.WriteString(w, markup)
		return err
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return fmt.Errorf("failed to create renderer: %w", err)
	}

	out, err := r.Render(markup)
	if err != nil {
		return fmt.Errorf("failed to render markdown: %w", err)
	}

	_, err = io.WriteString(w, out)
	return err
}
