package assemble

import (
	"fmt"
	"reflect"
	"strings"
	"text/template"

	"github.com/gaurav-prasanna/markgen/core"
	"github.com/gaurav-prasanna/markgen/core/element"
)

// Template builds a document from block specs. String fields are expanded as
// text/template templates against the generator data.
type Template struct {
	blocks []BlockSpec
}

// NewTemplate creates a Template builder.
func NewTemplate(blocks []BlockSpec) *Template {
	return &Template{blocks: append([]BlockSpec(nil), blocks...)}
}

// Build implements core.Builder.
func (t *Template) Build(data core.Data, d core.Dialect) ([]core.Element, error) {
	x := &expander{data: data, dialect: d}
	doc := make([]core.Element, 0, len(t.blocks))
	for i, spec := range t.blocks {
		if !spec.included(data) {
			continue
		}
		elem, err := x.element(spec)
		if err != nil {
			return nil, fmt.Errorf("block %d (%s): %w", i, spec.Kind, err)
		}
		doc = append(doc, elem)
	}
	return doc, nil
}

func (s BlockSpec) included(data core.Data) bool {
	if s.When != "" {
		v, ok := Lookup(data, s.When)
		if !ok || !truthy(v) {
			return false
		}
	}
	if s.Unless != "" {
		if v, ok := Lookup(data, s.Unless); ok && truthy(v) {
			return false
		}
	}
	return true
}

type expander struct {
	data    core.Data
	dialect core.Dialect
}

func (x *expander) funcs() template.FuncMap {
	return template.FuncMap{
		"upper":   strings.ToUpper,
		"lower":   strings.ToLower,
		"trim":    strings.TrimSpace,
		"join":    func(sep string, v []any) string { return strings.Join(stringsOf(v), sep) },
		"dialect": func() string { return string(x.dialect) },
		"default": func(def string, v any) string {
			if v == nil || fmt.Sprint(v) == "" {
				return def
			}
			return fmt.Sprint(v)
		},
	}
}

func (x *expander) expand(s string) (string, error) {
	if !strings.Contains(s, "{{") {
		return s, nil
	}
	tmpl, err := template.New("block").Option("missingkey=error").Funcs(x.funcs()).Parse(s)
	if err != nil {
		return "", fmt.Errorf("parsing template %q: %w", s, err)
	}
	var b strings.Builder
	if err := tmpl.Execute(&b, map[string]any(x.data)); err != nil {
		return "", fmt.Errorf("expanding template %q: %w", s, err)
	}
	return b.String(), nil
}

func (x *expander) expandAll(in []string) ([]string, error) {
	out := make([]string, len(in))
	for i, s := range in {
		v, err := x.expand(s)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func (x *expander) element(spec BlockSpec) (core.Element, error) {
	kind, err := core.ParseKind(spec.Kind)
	if err != nil {
		return nil, err
	}
	content, err := x.expand(spec.Content)
	if err != nil {
		return nil, err
	}

	switch kind {
	case core.KindTitle:
		return element.NewTitle(content), nil
	case core.KindSection:
		var opts []element.SectionOption
		if spec.Level != nil {
			opts = append(opts, element.WithLevel(*spec.Level))
		}
		return element.NewSection(content, opts...), nil
	case core.KindText:
		return element.NewText(content), nil
	case core.KindEmphasis:
		return element.NewEmphasis(content), nil
	case core.KindBold:
		return element.NewBold(content), nil
	case core.KindHorizontalLine:
		return element.NewHorizontalLine(), nil
	case core.KindUnorderedList, core.KindOrderedList:
		items, err := x.items(spec)
		if err != nil {
			return nil, err
		}
		if kind == core.KindOrderedList {
			return element.NewOrderedList(items...), nil
		}
		return element.NewUnorderedList(items...), nil
	case core.KindImage:
		opts, err := x.imageOptions(spec.Options)
		if err != nil {
			return nil, err
		}
		return element.NewImage(content, opts...), nil
	case core.KindLink:
		var opts []element.LinkOption
		if title, ok := spec.Options["title"]; ok {
			title, err = x.expand(title)
			if err != nil {
				return nil, err
			}
			opts = append(opts, element.WithLinkTitle(title))
		}
		return element.NewLink(content, opts...), nil
	case core.KindTable:
		rows, err := x.rows(spec)
		if err != nil {
			return nil, err
		}
		return element.NewTable(rows), nil
	default:
		return nil, fmt.Errorf("unsupported element kind %q", spec.Kind)
	}
}

// imageOptions maps the recognized option keys; others are left unused.
func (x *expander) imageOptions(options map[string]string) ([]element.ImageOption, error) {
	setters := []struct {
		key string
		fn  func(string) element.ImageOption
	}{
		{"alt", element.WithAlt},
		{"scale", element.WithScale},
		{"align", element.WithAlign},
		{"title", element.WithImageTitle},
	}
	var opts []element.ImageOption
	for _, s := range setters {
		raw, ok := options[s.key]
		if !ok {
			continue
		}
		v, err := x.expand(raw)
		if err != nil {
			return nil, err
		}
		opts = append(opts, s.fn(v))
	}
	return opts, nil
}

func (x *expander) items(spec BlockSpec) ([]string, error) {
	if spec.From == "" {
		return x.expandAll(spec.Items)
	}
	v, ok := Lookup(x.data, spec.From)
	if !ok {
		return nil, fmt.Errorf("data key %q not found", spec.From)
	}
	list, ok := asSlice(v)
	if !ok {
		return nil, fmt.Errorf("data key %q is not a list", spec.From)
	}
	return stringsOf(list), nil
}

func (x *expander) rows(spec BlockSpec) ([][]string, error) {
	if spec.From == "" {
		rows := make([][]string, len(spec.Rows))
		for i, row := range spec.Rows {
			cells, err := x.expandAll(row)
			if err != nil {
				return nil, err
			}
			rows[i] = cells
		}
		return rows, nil
	}

	v, ok := Lookup(x.data, spec.From)
	if !ok {
		return nil, fmt.Errorf("data key %q not found", spec.From)
	}
	list, ok := asSlice(v)
	if !ok {
		return nil, fmt.Errorf("data key %q is not a list of rows", spec.From)
	}
	rows := make([][]string, len(list))
	for i, r := range list {
		cells, ok := asSlice(r)
		if !ok {
			return nil, fmt.Errorf("data key %q: row %d is not a list", spec.From, i)
		}
		rows[i] = stringsOf(cells)
	}
	return rows, nil
}

// Lookup resolves a dotted key ("report.title") in nested maps.
func Lookup(data core.Data, key string) (any, bool) {
	var cur any = map[string]any(data)
	for _, part := range strings.Split(key, ".") {
		m, ok := asMap(cur)
		if !ok {
			return nil, false
		}
		cur, ok = m[part]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case core.Data:
		return m, true
	default:
		return nil, false
	}
}

func asSlice(v any) ([]any, bool) {
	if s, ok := v.([]any); ok {
		return s, true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

func stringsOf(v []any) []string {
	out := make([]string, len(v))
	for i, item := range v {
		out[i] = fmt.Sprint(item)
	}
	return out
}

// truthy follows YAML intuition: false, zero, "", "false", "no", "0" and
// empty collections are false.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "", "false", "no", "off", "0":
			return false
		}
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() != 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Uint() != 0
	case reflect.Float32, reflect.Float64:
		return rv.Float() != 0
	case reflect.Slice, reflect.Map:
		return rv.Len() > 0
	}
	return true
}
