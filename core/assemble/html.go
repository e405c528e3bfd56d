package assemble

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/gaurav-prasanna/markgen/core"
	"github.com/gaurav-prasanna/markgen/core/element"
)

// HTMLOutline builds a flat document from the block structure of an HTML
// page. Nested containers are flattened in document order.
type HTMLOutline struct {
	page       string
	base       *url.URL
	extractor  core.Extractor
	normalizer core.Normalizer
}

// HTMLOption configures an HTMLOutline.
type HTMLOption func(*HTMLOutline)

// WithExtractor strips page noise before the outline is read.
func WithExtractor(e core.Extractor) HTMLOption {
	return func(h *HTMLOutline) { h.extractor = e }
}

// WithNormalizer keeps inline formatting of paragraphs in the Markdown dialect.
func WithNormalizer(n core.Normalizer) HTMLOption {
	return func(h *HTMLOutline) { h.normalizer = n }
}

// NewHTMLOutline creates an outline builder for page. Relative links and
// image sources are resolved against pageURL when it is non-empty.
func NewHTMLOutline(page, pageURL string, opts ...HTMLOption) (*HTMLOutline, error) {
	h := &HTMLOutline{page: page}
	if pageURL != "" {
		base, err := url.Parse(pageURL)
		if err != nil {
			return nil, fmt.Errorf("parsing page URL: %w", err)
		}
		h.base = base
	}
	for _, opt := range opts {
		opt(h)
	}
	return h, nil
}

// PageTitle returns the text of the page's <title> element, if any.
func (h *HTMLOutline) PageTitle() string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(h.page))
	if err != nil {
		return ""
	}
	return collapse(doc.Find("title").First().Text())
}

// Build implements core.Builder. The data mapping is not consulted; the page
// itself is the input. When the content has no <h1>, the page <title>
// becomes the document title.
func (h *HTMLOutline) Build(_ core.Data, d core.Dialect) ([]core.Element, error) {
	content := h.page
	if h.extractor != nil {
		var err error
		content, err = h.extractor.Extract(h.page)
		if err != nil {
			return nil, fmt.Errorf("extracting content: %w", err)
		}
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	w := &outlineWalker{outline: h, dialect: d}
	w.walk(doc.Find("body").Contents())
	if w.err != nil {
		return nil, w.err
	}

	if !w.sawTitle {
		if title := h.PageTitle(); title != "" {
			w.doc = append([]core.Element{element.NewTitle(title)}, w.doc...)
		}
	}
	return w.doc, nil
}

type outlineWalker struct {
	outline  *HTMLOutline
	dialect  core.Dialect
	doc      []core.Element
	sawTitle bool
	err      error
}

func (w *outlineWalker) add(e core.Element) {
	w.doc = append(w.doc, e)
}

func (w *outlineWalker) walk(sel *goquery.Selection) {
	sel.EachWithBreak(func(_ int, s *goquery.Selection) bool {
		w.node(s)
		return w.err == nil
	})
}

func (w *outlineWalker) node(s *goquery.Selection) {
	n := s.Get(0)
	switch n.Type {
	case html.TextNode:
		if text := collapse(n.Data); text != "" {
			w.add(element.NewText(text))
		}
		return
	case html.ElementNode:
	default:
		return
	}

	switch n.DataAtom {
	case atom.H1:
		// Empty headings are skipped so the page title can stand in.
		if text := collapse(s.Text()); text != "" {
			w.sawTitle = true
			w.add(element.NewTitle(text))
		}
	case atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
		if text := collapse(s.Text()); text != "" {
			level := int(n.Data[1]-'0') - 1
			w.add(element.NewSection(text, element.WithLevel(level)))
		}
	case atom.P:
		w.paragraph(s)
	case atom.Hr:
		w.add(element.NewHorizontalLine())
	case atom.Ul:
		w.add(element.NewUnorderedList(w.listItems(s)...))
	case atom.Ol:
		w.add(element.NewOrderedList(w.listItems(s)...))
	case atom.Img:
		w.add(w.image(s))
	case atom.A:
		w.add(w.link(s))
	case atom.Strong, atom.B:
		w.add(element.NewBold(collapse(s.Text())))
	case atom.Em, atom.I:
		w.add(element.NewEmphasis(collapse(s.Text())))
	case atom.Table:
		if rows := tableRows(s); len(rows) > 0 {
			w.add(element.NewTable(rows))
		}
	case atom.Pre:
		if text := strings.TrimRight(s.Text(), "\n"); text != "" {
			w.add(element.NewText(text))
		}
	case atom.Blockquote, atom.Figcaption, atom.Dd, atom.Dt:
		w.inline(s)
	case atom.Br:
	default:
		w.walk(s.Contents())
	}
}

// paragraph emits a single element when the paragraph wraps exactly one
// image, link, bold or emphasis span, and a Text element otherwise.
func (w *outlineWalker) paragraph(s *goquery.Selection) {
	if only := soleChild(s); only != nil {
		switch only.Get(0).DataAtom {
		case atom.Img, atom.A, atom.Strong, atom.B, atom.Em, atom.I:
			w.node(only)
			return
		}
	}
	w.inline(s)
}

func (w *outlineWalker) inline(s *goquery.Selection) {
	text, err := w.inlineText(s)
	if err != nil {
		w.err = err
		return
	}
	if text != "" {
		w.add(element.NewText(text))
	}
}

func (w *outlineWalker) inlineText(s *goquery.Selection) (string, error) {
	if w.dialect != core.Markdown || w.outline.normalizer == nil {
		return collapse(s.Text()), nil
	}
	inner, err := s.Html()
	if err != nil {
		return "", fmt.Errorf("serializing paragraph: %w", err)
	}
	text, err := w.outline.normalizer.Normalize(inner)
	if err != nil {
		return "", err
	}
	return text, nil
}

func (w *outlineWalker) listItems(s *goquery.Selection) []string {
	var items []string
	s.ChildrenFiltered("li").Each(func(_ int, li *goquery.Selection) {
		items = append(items, collapse(li.Text()))
	})
	return items
}

func (w *outlineWalker) image(s *goquery.Selection) core.Element {
	src, _ := s.Attr("src")
	var opts []element.ImageOption
	if alt, ok := s.Attr("alt"); ok {
		opts = append(opts, element.WithAlt(alt))
	}
	if title, ok := s.Attr("title"); ok {
		opts = append(opts, element.WithImageTitle(title))
	}
	if align, ok := s.Attr("align"); ok {
		opts = append(opts, element.WithAlign(align))
	}
	return element.NewImage(w.outline.resolve(src), opts...)
}

func (w *outlineWalker) link(s *goquery.Selection) core.Element {
	href, _ := s.Attr("href")
	target := w.outline.resolve(href)
	var opts []element.LinkOption
	if label := collapse(s.Text()); label != "" && label != target {
		opts = append(opts, element.WithLinkTitle(label))
	}
	return element.NewLink(target, opts...)
}

// resolve makes href absolute against the page URL.
func (h *HTMLOutline) resolve(href string) string {
	if h.base == nil || href == "" {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return h.base.ResolveReference(ref).String()
}

// tableRows reads every row of a table, padding short rows with empty cells
// so the grid is rectangular.
func tableRows(s *goquery.Selection) [][]string {
	var rows [][]string
	cols := 0
	s.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		var row []string
		tr.ChildrenFiltered("th, td").Each(func(_ int, cell *goquery.Selection) {
			row = append(row, collapse(cell.Text()))
		})
		if len(row) == 0 {
			return
		}
		if len(row) > cols {
			cols = len(row)
		}
		rows = append(rows, row)
	})
	for i, row := range rows {
		for len(row) < cols {
			row = append(row, "")
		}
		rows[i] = row
	}
	return rows
}

// soleChild returns the only element child of s when s has no other
// non-blank content.
func soleChild(s *goquery.Selection) *goquery.Selection {
	var only *goquery.Selection
	ok := true
	s.Contents().EachWithBreak(func(_ int, c *goquery.Selection) bool {
		n := c.Get(0)
		switch n.Type {
		case html.TextNode:
			if strings.TrimSpace(n.Data) != "" {
				ok = false
			}
		case html.ElementNode:
			if only != nil {
				ok = false
			}
			only = c
		}
		return ok
	})
	if !ok {
		return nil
	}
	return only
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
