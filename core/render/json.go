// JSON encoder. Emits a manifest of the rendered document: metadata, the
// complete markup, and one entry per element that produced output.

package render

import (
	"encoding/json"
	"fmt"

	"github.com/gaurav-prasanna/markgen/core"
)

// Manifest is the JSON output for a single document.
type Manifest struct {
	Metadata core.DocumentMeta `json:"metadata"`
	Markup   string            `json:"markup"`
	Blocks   []core.Block      `json:"blocks"`
	Stats    ManifestStats     `json:"stats"`
}

// ManifestStats counts blocks by kind.
type ManifestStats struct {
	Blocks int            `json:"blocks"`
	Kinds  map[string]int `json:"kinds"`
}

// JSONEncoder produces the JSON manifest.
type JSONEncoder struct{}

// NewJSONEncoder creates a JSONEncoder.
func NewJSONEncoder() *JSONEncoder {
	return &JSONEncoder{}
}

// Encode converts a rendered document into the manifest.
func (e *JSONEncoder) Encode(out core.Output) ([]byte, error) {
	blocks := out.Blocks
	if blocks == nil {
		blocks = []core.Block{}
	}
	kinds := make(map[string]int)
	for _, b := range blocks {
		kinds[b.Kind.String()]++
	}

	m := Manifest{
		Metadata: out.Meta,
		Markup:   out.Markup,
		Blocks:   blocks,
		Stats:    ManifestStats{Blocks: len(blocks), Kinds: kinds},
	}
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling JSON: %w", err)
	}
	return data, nil
}

// Extension returns the file extension for JSON output.
func (e *JSONEncoder) Extension() string {
	return ".json"
}
