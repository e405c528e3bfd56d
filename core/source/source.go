// Package source loads the inputs markgen renders: document descriptions,
// HTML pages and extra data files, from disk or over HTTP.
package source

import (
	"context"
	"fmt"
	"maps"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gaurav-prasanna/markgen/core"
)

// Kind tells which builder a source feeds.
type Kind string

const (
	// KindTemplate is a YAML or JSON document description.
	KindTemplate Kind = "template"
	// KindHTML is an HTML page read as an outline.
	KindHTML Kind = "html"
)

// ParseKind resolves a --from value. Empty means "infer".
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return "", nil
	case "template", "yaml", "yml", "json":
		return KindTemplate, nil
	case "html", "htm":
		return KindHTML, nil
	default:
		return "", fmt.Errorf("unknown source kind %q (want template or html)", s)
	}
}

// Source is a loaded input.
type Source struct {
	Ref  string // path or URL as given
	URL  string // set for remote sources
	Kind Kind
	Body []byte
}

// IsRemote reports whether ref is an http(s) URL.
func IsRemote(ref string) bool {
	u, err := url.Parse(ref)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// Load reads ref from disk, or through fetcher when ref is a URL. An empty
// kind is inferred from the extension and, for remote sources, the content
// type.
func Load(ctx context.Context, ref string, kind Kind, fetcher core.Fetcher) (*Source, error) {
	src := &Source{Ref: ref, Kind: kind}

	var contentType string
	if IsRemote(ref) {
		if fetcher == nil {
			return nil, fmt.Errorf("loading %s: no fetcher configured", ref)
		}
		res, err := fetcher.Fetch(ctx, ref)
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", ref, err)
		}
		src.URL = res.URL
		src.Body = []byte(res.Body)
		contentType = res.ContentType
	} else {
		body, err := os.ReadFile(ref)
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", ref, err)
		}
		src.Body = body
	}

	if src.Kind == "" {
		src.Kind = inferKind(ref, contentType)
	}
	return src, nil
}

func inferKind(ref, contentType string) Kind {
	ext := strings.ToLower(filepath.Ext(ref))
	if IsRemote(ref) {
		if u, err := url.Parse(ref); err == nil {
			ext = strings.ToLower(path.Ext(u.Path))
		}
	}
	switch ext {
	case ".html", ".htm", ".xhtml":
		return KindHTML
	case ".yaml", ".yml", ".json":
		return KindTemplate
	}
	if strings.Contains(contentType, "html") {
		return KindHTML
	}
	if IsRemote(ref) && contentType == "" {
		return KindHTML
	}
	return KindTemplate
}

// LoadData reads a YAML or JSON data file into a mapping.
func LoadData(p string) (core.Data, error) {
	body, err := os.ReadFile(p)
	if err != nil {
		return nil, fmt.Errorf("reading data file: %w", err)
	}
	data := core.Data{}
	if err := yaml.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("decoding data file %s: %w", p, err)
	}
	return data, nil
}

// Merge copies every key of src into dst, descending into nested maps.
func Merge(dst, src core.Data) core.Data {
	if dst == nil {
		dst = core.Data{}
	}
	for k, v := range src {
		if sm, ok := v.(map[string]any); ok {
			if dm, ok := dst[k].(map[string]any); ok {
				dst[k] = map[string]any(Merge(core.Data(dm), core.Data(sm)))
				continue
			}
		}
		dst[k] = v
	}
	return dst
}

// ApplySets applies key=value overrides. Dotted keys create nested maps;
// "true"/"false" and integers in canonical form are typed, everything else
// stays a string. Keys apply in sorted order, so a nested key replaces a
// scalar set on its parent.
func ApplySets(data core.Data, sets map[string]string) core.Data {
	if data == nil {
		data = core.Data{}
	}
	for _, key := range slices.Sorted(maps.Keys(sets)) {
		raw := sets[key]
		parts := strings.Split(key, ".")
		cur := map[string]any(data)
		for _, part := range parts[:len(parts)-1] {
			next, ok := cur[part].(map[string]any)
			if !ok {
				next = map[string]any{}
				cur[part] = next
			}
			cur = next
		}
		cur[parts[len(parts)-1]] = typed(raw)
	}
	return data
}

func typed(raw string) any {
	if b, err := strconv.ParseBool(raw); err == nil && (raw == "true" || raw == "false") {
		return b
	}
	// "02134" and "+1" keep their spelling.
	if n, err := strconv.Atoi(raw); err == nil && strconv.Itoa(n) == raw {
		return n
	}
	return raw
}
