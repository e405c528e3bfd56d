package element

import (
	"fmt"
	"strings"

	"github.com/gaurav-prasanna/markgen/core"
)

// Table is a grid whose first row is the header. All columns share one width:
// the longest cell anywhere in the grid.
type Table struct {
	rows [][]string
}

// NewTable creates a Table. Content is validated at render time.
func NewTable(rows [][]string) Table {
	cp := make([][]string, len(rows))
	for i, row := range rows {
		cp[i] = append([]string(nil), row...)
	}
	return Table{rows: cp}
}

// Rows returns a copy of the grid.
func (t Table) Rows() [][]string {
	return NewTable(t.rows).rows
}

// Cols is the cell count of the header row.
func (t Table) Cols() int {
	if len(t.rows) == 0 {
		return 0
	}
	return len(t.rows[0])
}

// MaxWidth is the rune length of the longest cell.
func (t Table) MaxWidth() int {
	longest := 0
	for _, row := range t.rows {
		for _, cell := range row {
			if w := width(cell); w > longest {
				longest = w
			}
		}
	}
	return longest
}

// Validate reports empty or ragged content.
func (t Table) Validate() error {
	if len(t.rows) == 0 {
		return fmt.Errorf("%w: no rows", core.ErrMalformedTable)
	}
	cols := len(t.rows[0])
	if cols == 0 {
		return fmt.Errorf("%w: header row has no cells", core.ErrMalformedTable)
	}
	for i, row := range t.rows[1:] {
		if len(row) != cols {
			return fmt.Errorf("%w: row %d has %d cells, header has %d", core.ErrMalformedTable, i+1, len(row), cols)
		}
	}
	return nil
}

func (t Table) Kind() core.Kind { return core.KindTable }

func (t Table) Render(d core.Dialect) (string, error) {
	if !d.Valid() {
		return "", unknownDialect(t.Kind(), d)
	}
	if err := t.Validate(); err != nil {
		return "", err
	}

	w := t.MaxWidth()
	if d == core.RST {
		return t.renderRST(w), nil
	}
	return t.renderMarkdown(w), nil
}

func (t Table) renderRST(w int) string {
	divider := repeat(repeat("=", w)+" ", t.Cols())
	lines := []string{divider, t.row(0, "", w), divider}
	for i := 1; i < len(t.rows); i++ {
		lines = append(lines, t.row(i, "", w))
	}
	lines = append(lines, divider)
	return strings.Join(lines, "\n")
}

func (t Table) renderMarkdown(w int) string {
	divider := repeat("| "+repeat("-", w)+" ", t.Cols()) + "|"
	lines := []string{t.row(0, "| ", w) + "|", divider}
	for i := 1; i < len(t.rows); i++ {
		lines = append(lines, t.row(i, "| ", w)+"|")
	}
	return strings.Join(lines, "\n")
}

// row pads every cell to w and follows it with one space.
func (t Table) row(i int, cellPrefix string, w int) string {
	var b strings.Builder
	for _, cell := range t.rows[i] {
		b.WriteString(cellPrefix)
		b.WriteString(cell)
		b.WriteString(repeat(" ", w-width(cell)))
		b.WriteString(" ")
	}
	return b.String()
}
