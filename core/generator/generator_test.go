package generator_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"

	"github.com/gaurav-prasanna/markgen/core"
	"github.com/gaurav-prasanna/markgen/core/element"
	"github.com/gaurav-prasanna/markgen/core/generator"
)

// reportBuilder assembles the same document for any dialect, appending the
// table only when data["with_table"] is true.
func reportBuilder(data core.Data, _ core.Dialect) ([]core.Element, error) {
	title := data["title"].(string)
	doc := []core.Element{
		element.NewTitle(title),
		element.NewSection(title),
		element.NewSection(title, element.WithLevel(2)),
		element.NewSection(title, element.WithLevel(3)),
		element.NewText(data["text1"].(string)),
		element.NewSection(title, element.WithLevel(3)),
		element.NewBold(data["bold1"].(string)),
		element.NewSection(title, element.WithLevel(2)),
		element.NewSection(title, element.WithLevel(3)),
		element.NewEmphasis(data["text2"].(string)),
		element.NewHorizontalLine(),
		element.NewSection(title, element.WithLevel(4)),
		element.NewUnorderedList("A", "B", "C"),
		element.NewSection(title, element.WithLevel(4)),
		element.NewOrderedList("A", "B", "C"),
		element.NewHorizontalLine(),
	}
	if withTable, _ := data["with_table"].(bool); withTable {
		doc = append(doc, element.NewTable([][]string{
			{"Column1", "Column2", "Column3"},
			{"Cell1", data["cell1"].(string), "Cell3"},
			{"Cell4", "Cell5", data["cell2"].(string)},
		}))
	}
	return doc, nil
}

func reportData() core.Data {
	return core.Data{
		"bold1":      "data1",
		"cell1":      "data2",
		"cell2":      "data3",
		"text1":      "data4",
		"text2":      "data5",
		"title":      "data6",
		"with_table": true,
	}
}

const wantRST = "=====\ndata6\n=====\n\ndata6\n=====\n\ndata6\n-----\n\ndata6" +
	"\n*****\n\ndata4\n\ndata6\n*****\n\n**data1**\n\ndata6\n-----" +
	"\n\ndata6\n*****\n\n*data5*\n\n----------------\n\ndata6\n~~~" +
	"~~\n\n* A\n* B\n* C\n\ndata6\n~~~~~\n\n1. A\n#. B\n#. C\n\n--" +
	"--------------\n\n======= ======= ======= \nColumn1 Column2 C" +
	"olumn3 \n======= ======= ======= \nCell1   data2   Cell3   \n" +
	"Cell4   Cell5   data3   \n======= ======= ======= \n"

const wantMarkdown = "# data6\n\n## data6\n\n### data6\n\n#### data6\n\ndata4\n\n##" +
	"## data6\n\n**data1**\n\n### data6\n\n#### data6\n\n_data5_\n" +
	"\n----------------\n\n##### data6\n\n* A\n* B\n* C\n\n##### d" +
	"ata6\n\n1. A\n1. B\n1. C\n\n----------------\n\n| Column1 | C" +
	"olumn2 | Column3 |\n| ------- | ------- | ------- |\n| Cell1 " +
	"  | data2   | Cell3   |\n| Cell4   | Cell5   | data3   |\n"

func TestRenderDocument(t *testing.T) {
	tests := []struct {
		dialect core.Dialect
		want    string
	}{
		{core.RST, wantRST},
		{core.Markdown, wantMarkdown},
	}
	for _, tt := range tests {
		t.Run(string(tt.dialect), func(t *testing.T) {
			g := generator.New(reportData(), tt.dialect, core.BuilderFunc(reportBuilder))
			got, err := g.Render()
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("document mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestOptionalTableOmitted(t *testing.T) {
	data := reportData()
	data["with_table"] = false

	got, err := generator.New(data, core.RST, core.BuilderFunc(reportBuilder)).Render()
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(got, "--------------\n"))
	assert.NotContains(t, got, "Column1")
}

// emptyElement always renders to nothing.
type emptyElement struct{}

func (emptyElement) Kind() core.Kind { return core.KindText }
func (emptyElement) Render(core.Dialect) (string, error) { return "", nil }

func TestEmptyRenderContributesNothing(t *testing.T) {
	doc := []core.Element{
		element.NewText("before"),
		emptyElement{},
		element.NewText(""),
		element.NewUnorderedList(),
		element.NewText("after"),
	}
	for _, d := range core.Dialects() {
		got, err := generator.Render(doc, d)
		require.NoError(t, err)
		assert.Equal(t, "before\n\nafter\n", got)
		assert.NotContains(t, got, "\n\n\n")
	}
}

func TestTitleScenario(t *testing.T) {
	doc := []core.Element{element.NewTitle("data6")}

	rst, err := generator.RenderBlocks(doc, core.RST)
	require.NoError(t, err)
	require.Len(t, rst, 1)
	assert.Equal(t, "=====\ndata6\n=====", rst[0].Markup)

	md, err := generator.RenderBlocks(doc, core.Markdown)
	require.NoError(t, err)
	require.Len(t, md, 1)
	assert.Equal(t, core.Block{Kind: core.KindTitle, Markup: "# data6"}, md[0])
}

func TestEmptyDocument(t *testing.T) {
	got, err := generator.Render(nil, core.Markdown)
	require.NoError(t, err)
	assert.Equal(t, "", got)
}

func TestUnknownDialectFailsBeforeBuild(t *testing.T) {
	called := false
	b := core.BuilderFunc(func(core.Data, core.Dialect) ([]core.Element, error) {
		called = true
		return nil, nil
	})
	_, err := generator.New(nil, core.Dialect("wiki"), b).Render()
	assert.ErrorIs(t, err, core.ErrUnknownDialect)
	assert.False(t, called)
}

func TestElementErrorNamesPosition(t *testing.T) {
	doc := []core.Element{
		element.NewText("ok"),
		element.NewTable([][]string{{"a", "b"}, {"c"}}),
	}
	_, err := generator.Render(doc, core.RST)
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrMalformedTable)
	assert.Contains(t, err.Error(), "element 1 (table)")
}

func TestNilBuilder(t *testing.T) {
	_, err := generator.New(nil, core.RST, nil).Document()
	assert.Error(t, err)
}

// TestMarkdownParsesAsIntended checks the Markdown dialect against a real
// CommonMark+GFM parser: heading levels and table shape must survive.
func TestMarkdownParsesAsIntended(t *testing.T) {
	src := []byte(wantMarkdown)
	md := goldmark.New(goldmark.WithExtensions(extension.Table))
	root := md.Parser().Parse(text.NewReader(src))

	var levels []int
	var cellsPerRow []int
	err := ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.Heading:
			levels = append(levels, node.Level)
		case *east.TableHeader, *east.TableRow:
			cellsPerRow = append(cellsPerRow, node.ChildCount())
		}
		return ast.WalkContinue, nil
	})
	require.NoError(t, err)

	assert.Equal(t, []int{1, 2, 3, 4, 4, 3, 4, 5, 5}, levels)
	assert.Equal(t, []int{3, 3, 3}, cellsPerRow)
}
