// Package output handles file naming and writing for generated documents.
// Single documents are written flat (report.rst, example_com_docs.md);
// in --all mode, filenames mirror the URL path structure.
package output

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// Writer writes encoded documents to disk.
type Writer struct {
	OutputDir string
}

// New creates a Writer targeting the given output directory.
// If outputDir is empty, it defaults to the current working directory.
func New(outputDir string) (*Writer, error) {
	if outputDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting working directory: %w", err)
		}
		outputDir = wd
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	return &Writer{OutputDir: outputDir}, nil
}

// WriteOnly writes a single document as OutputDir/name+ext.
func (w *Writer) WriteOnly(name string, data []byte, ext string) (string, error) {
	if name == "" {
		name = "document"
	}
	path := filepath.Join(w.OutputDir, sanitize(name)+ext)

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing file %s: %w", path, err)
	}
	return path, nil
}

// WriteAll writes output for --all mode, mirroring the URL path structure.
// Example: https://site.com/docs/intro → OutputDir/docs/intro.md
func (w *Writer) WriteAll(pageURL string, data []byte, ext string) (string, error) {
	parsed, err := url.Parse(pageURL)
	if err != nil {
		return "", fmt.Errorf("parsing URL: %w", err)
	}

	var segs []string
	for _, seg := range strings.Split(strings.Trim(parsed.Path, "/"), "/") {
		// ".." and "." must never escape OutputDir.
		if seg == "" || seg == "." || seg == ".." {
			continue
		}
		segs = append(segs, sanitize(seg))
	}
	if len(segs) == 0 {
		segs = []string{"index"}
	}

	fullPath := filepath.Join(append([]string{w.OutputDir}, segs...)...) + ext

	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating directory %s: %w", dir, err)
	}

	if err := os.WriteFile(fullPath, data, 0o644); err != nil {
		return "", fmt.Errorf("writing file %s: %w", fullPath, err)
	}
	return fullPath, nil
}

// FilenameFor derives a flat output name (without extension) from a source
// reference. Local paths keep their base name; URLs become host_path.
// Example: https://example.com/docs/intro → example_com_docs_intro
func FilenameFor(ref string) string {
	parsed, err := url.Parse(ref)
	if err != nil || parsed.Host == "" {
		base := filepath.Base(ref)
		return sanitize(strings.TrimSuffix(base, filepath.Ext(base)))
	}

	parts := []string{sanitize(parsed.Host)}
	p := strings.Trim(parsed.Path, "/")
	if p != "" {
		p = strings.TrimSuffix(p, filepath.Ext(p))
		for _, seg := range strings.Split(p, "/") {
			parts = append(parts, sanitize(seg))
		}
	}
	return strings.Join(parts, "_")
}

// sanitize replaces characters other than letters, digits, '-' and '_' with underscores.
func sanitize(s string) string {
	var b strings.Builder
	for _, ch := range s {
		if (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || (ch >= '0' && ch <= '9') ||
			ch == '-' || ch == '_' {
			b.WriteRune(ch)
		} else {
			b.WriteRune('_')
		}
	}
	return b.String()
}
