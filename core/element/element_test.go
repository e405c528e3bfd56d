package element_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaurav-prasanna/markgen/core"
	"github.com/gaurav-prasanna/markgen/core/element"
)

func render(t *testing.T, e core.Element, d core.Dialect) string {
	t.Helper()
	out, err := e.Render(d)
	require.NoError(t, err)
	return out
}

func TestRST(t *testing.T) {
	tests := []struct {
		name string
		elem core.Element
		want string
	}{
		{"title", element.NewTitle("test_string"), "===========\ntest_string\n==========="},
		{"section default", element.NewSection("test_string"), "test_string\n==========="},
		{"section 1", element.NewSection("test_string", element.WithLevel(1)), "test_string\n==========="},
		{"section 2", element.NewSection("test_string", element.WithLevel(2)), "test_string\n-----------"},
		{"section 3", element.NewSection("test_string", element.WithLevel(3)), "test_string\n***********"},
		{"section 4", element.NewSection("test_string", element.WithLevel(4)), "test_string\n~~~~~~~~~~~"},
		{"section 5", element.NewSection("test_string", element.WithLevel(5)), "test_string\n^^^^^^^^^^^"},
		{"text", element.NewText("§¶•ĽľŁÓ-test_string-Ń™ŹĆŻ€ßį"), "§¶•ĽľŁÓ-test_string-Ń™ŹĆŻ€ßį"},
		{"emphasis", element.NewEmphasis("test string"), "*test string*"},
		{"bold", element.NewBold("test string"), "**test string**"},
		{"rule", element.NewHorizontalLine(), "----------------"},
		{"unordered", element.NewUnorderedList("A", "B", "C", "D"), "* A\n* B\n* C\n* D"},
		{"ordered", element.NewOrderedList("A", "B", "C", "D"), "1. A\n#. B\n#. C\n#. D"},
		{"image bare", element.NewImage("path_to_file"), ".. image:: path_to_file"},
		{
			"image attributes",
			element.NewImage("path_to_file",
				element.WithAlt("Alt Text"),
				element.WithImageTitle("Title"),
				element.WithScale("50"),
				element.WithAlign("right"),
			),
			".. image:: path_to_file\n    :alt: Alt Text\n    :scale: 50 %\n    :align: right",
		},
		{"image align only", element.NewImage("p", element.WithAlign("left")), ".. image:: p\n    :align: left"},
		{"link", element.NewLink("http://example.com"), ".. _http://example.com: http://example.com"},
		{"link titled", element.NewLink("http://example.com", element.WithLinkTitle("Example.com")), ".. _Example.com: http://example.com"},
		{
			"table",
			element.NewTable([][]string{{"Col1", "Col2"}, {"Cell1", "Cell2"}, {"Cell3", "Cell4"}}),
			"===== ===== \nCol1  Col2  \n===== ===== \nCell1 Cell2 \nCell3 Cell4 \n===== ===== ",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, render(t, tt.elem, core.RST))
		})
	}
}

func TestMarkdown(t *testing.T) {
	tests := []struct {
		name string
		elem core.Element
		want string
	}{
		{"title", element.NewTitle("test_string_Ń™€ßį§¶•Ľľ"), "# test_string_Ń™€ßį§¶•Ľľ"},
		{"section default", element.NewSection("test_string"), "## test_string"},
		{"section 2", element.NewSection("test_string", element.WithLevel(2)), "### test_string"},
		{"section 5", element.NewSection("test_string", element.WithLevel(5)), "###### test_string"},
		{"text", element.NewText("§¶•ĽľŁÓ-test_string-Ń™ŹĆŻ€ßį"), "§¶•ĽľŁÓ-test_string-Ń™ŹĆŻ€ßį"},
		{"emphasis", element.NewEmphasis("test string"), "_test string_"},
		{"bold", element.NewBold("test string"), "**test string**"},
		{"rule", element.NewHorizontalLine(), "----------------"},
		{"unordered", element.NewUnorderedList("A", "B", "C", "D"), "* A\n* B\n* C\n* D"},
		{"ordered", element.NewOrderedList("A", "B", "C", "D"), "1. A\n1. B\n1. C\n1. D"},
		{"image bare", element.NewImage("path_to_file"), "![](path_to_file)"},
		{
			"image alt and title",
			element.NewImage("path_to_file", element.WithAlt("Alt Text"), element.WithImageTitle("Title")),
			`![Alt Text](path_to_file "Title")`,
		},
		{"image title only", element.NewImage("p", element.WithImageTitle("T")), `![](p "T")`},
		{"image ignores rst attributes", element.NewImage("p", element.WithScale("50"), element.WithAlign("right")), "![](p)"},
		{"link", element.NewLink("http://example.com"), "[http://example.com](http://example.com)"},
		{"link titled", element.NewLink("http://example.com", element.WithLinkTitle("Example.com")), "[Example.com](http://example.com)"},
		{
			"table",
			element.NewTable([][]string{{"Col1", "Col2"}, {"Cell1", "Cell2"}, {"Cell3", "Cell4"}}),
			"| Col1  | Col2  |\n| ----- | ----- |\n| Cell1 | Cell2 |\n| Cell3 | Cell4 |",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, render(t, tt.elem, core.Markdown))
		})
	}
}

func TestTitleRulesMatchContentWidth(t *testing.T) {
	for _, s := range []string{"", "a", "data6", "Łódź ünïcödé", "with spaces and   gaps"} {
		lines := strings.Split(render(t, element.NewTitle(s), core.RST), "\n")
		require.Len(t, lines, 3)
		want := strings.Repeat("=", len([]rune(s)))
		assert.Equal(t, want, lines[0])
		assert.Equal(t, s, lines[1])
		assert.Equal(t, want, lines[2])
	}
}

func TestSectionLevels(t *testing.T) {
	chars := map[int]string{1: "=", 2: "-", 3: "*", 4: "~", 5: "^"}
	for level := element.MinLevel; level <= element.MaxLevel; level++ {
		s := element.NewSection("heading", element.WithLevel(level))

		rst := strings.Split(render(t, s, core.RST), "\n")
		require.Len(t, rst, 2)
		assert.Equal(t, strings.Repeat(chars[level], len("heading")), rst[1])

		md := render(t, s, core.Markdown)
		assert.Equal(t, strings.Repeat("#", level+1)+" heading", md)
	}
}

func TestSectionLevelOutOfRange(t *testing.T) {
	for _, level := range []int{0, 6, -1} {
		s := element.NewSection("x", element.WithLevel(level))
		for _, d := range core.Dialects() {
			_, err := s.Render(d)
			assert.ErrorIs(t, err, core.ErrUnknownLevel, "level %d dialect %s", level, d)
		}
	}
}

func TestUnknownDialect(t *testing.T) {
	elems := []core.Element{
		element.NewTitle("x"),
		element.NewSection("x"),
		element.NewText("x"),
		element.NewEmphasis("x"),
		element.NewBold("x"),
		element.NewHorizontalLine(),
		element.NewUnorderedList("x"),
		element.NewOrderedList("x"),
		element.NewImage("x"),
		element.NewLink("x"),
		element.NewTable([][]string{{"x"}}),
	}
	for _, e := range elems {
		out, err := e.Render(core.Dialect("html"))
		assert.ErrorIs(t, err, core.ErrUnknownDialect, e.Kind().String())
		assert.Empty(t, out)
	}
}

func TestHorizontalLineIsConstant(t *testing.T) {
	for _, d := range core.Dialects() {
		assert.Equal(t, "----------------", render(t, element.NewHorizontalLine(), d))
	}
}

func TestLinkLabelFallback(t *testing.T) {
	url := "https://example.com/x"
	for _, d := range core.Dialects() {
		assert.Equal(t,
			render(t, element.NewLink(url, element.WithLinkTitle(url)), d),
			render(t, element.NewLink(url), d),
		)
	}
}

func TestImagePresentButEmptyOption(t *testing.T) {
	img := element.NewImage("p", element.WithAlt(""))
	assert.Equal(t, ".. image:: p\n    :alt: ", render(t, img, core.RST))
	assert.Equal(t, "![](p)", render(t, img, core.Markdown))
}

func TestEmptyLists(t *testing.T) {
	for _, d := range core.Dialects() {
		assert.Empty(t, render(t, element.NewUnorderedList(), d))
		assert.Empty(t, render(t, element.NewOrderedList(), d))
	}
}

func TestTableCellCount(t *testing.T) {
	grid := [][]string{
		{"Column1", "Column2", "Column3"},
		{"Cell1", "data2", "Cell3"},
		{"Cell4", "Cell5", "data3"},
	}
	table := element.NewTable(grid)

	rst := strings.Split(render(t, table, core.RST), "\n")
	require.Len(t, rst, len(grid)+3)
	for _, line := range rst {
		assert.Len(t, strings.Fields(line), 3, line)
	}

	md := strings.Split(render(t, table, core.Markdown), "\n")
	require.Len(t, md, len(grid)+1)
	for _, line := range md {
		assert.Equal(t, 4, strings.Count(line, "|"), line)
	}
}

func TestTableWidthUsesRunes(t *testing.T) {
	table := element.NewTable([][]string{{"ä", "b"}, {"ccc", "d"}})
	assert.Equal(t, "=== === \nä   b   \n=== === \nccc d   \n=== === ", render(t, table, core.RST))
}

func TestMalformedTable(t *testing.T) {
	tests := map[string][][]string{
		"empty":        nil,
		"empty header": {{}},
		"ragged":       {{"a", "b"}, {"c"}},
	}
	for name, rows := range tests {
		t.Run(name, func(t *testing.T) {
			for _, d := range core.Dialects() {
				_, err := element.NewTable(rows).Render(d)
				assert.ErrorIs(t, err, core.ErrMalformedTable)
			}
		})
	}
}

func TestElementsAreImmutable(t *testing.T) {
	items := []string{"A", "B"}
	list := element.NewUnorderedList(items...)
	items[0] = "Z"
	list.Items()[1] = "Y"
	assert.Equal(t, []string{"A", "B"}, list.Items())

	rows := [][]string{{"a", "b"}}
	table := element.NewTable(rows)
	rows[0][0] = "z"
	table.Rows()[0][1] = "y"
	assert.Equal(t, [][]string{{"a", "b"}}, table.Rows())
}

func TestKinds(t *testing.T) {
	assert.Equal(t, core.KindEmphasis, element.NewEmphasis("x").Kind())
	assert.Equal(t, core.KindText, element.NewEmphasis("x").Text.Kind())
	assert.Equal(t, "x", element.NewBold("x").Content())
}
