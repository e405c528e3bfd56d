// Package assemble provides the document builders markgen ships with.
//
// A builder turns caller data into the ordered element sequence a
// generator renders. Template reads a YAML or JSON document description;
// HTMLOutline reads the structure of an HTML page.
package assemble

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/gaurav-prasanna/markgen/core"
)

// Description is a document description file.
//
//	name: report
//	dialect: rst
//	data:
//	  title: Quarterly report
//	  with_table: true
//	document:
//	  - kind: title
//	    content: "{{ .title }}"
//	  - kind: table
//	    when: with_table
//	    rows: [[Name, Value], [a, "1"]]
type Description struct {
	Name     string      `yaml:"name" json:"name"`
	Dialect  string      `yaml:"dialect,omitempty" json:"dialect,omitempty"`
	Data     core.Data   `yaml:"data,omitempty" json:"data,omitempty"`
	Document []BlockSpec `yaml:"document" json:"document"`
}

// BlockSpec describes one element. Which fields apply depends on Kind.
type BlockSpec struct {
	Kind    string            `yaml:"kind" json:"kind"`
	Content string            `yaml:"content,omitempty" json:"content,omitempty"`
	Level   *int              `yaml:"level,omitempty" json:"level,omitempty"`
	Items   []string          `yaml:"items,omitempty" json:"items,omitempty"`
	Rows    [][]string        `yaml:"rows,omitempty" json:"rows,omitempty"`
	Options map[string]string `yaml:"options,omitempty" json:"options,omitempty"`

	// From names a data key holding list items or table rows.
	From string `yaml:"from,omitempty" json:"from,omitempty"`
	// When and Unless name data keys whose truthiness gates the block.
	When   string `yaml:"when,omitempty" json:"when,omitempty"`
	Unless string `yaml:"unless,omitempty" json:"unless,omitempty"`
}

// ParseDescription decodes a YAML or JSON description.
func ParseDescription(body []byte) (*Description, error) {
	var desc Description
	dec := yaml.NewDecoder(bytes.NewReader(body))
	dec.KnownFields(true)
	if err := dec.Decode(&desc); err != nil {
		return nil, fmt.Errorf("decoding description: %w", err)
	}
	if len(desc.Document) == 0 {
		return nil, fmt.Errorf("decoding description: document has no blocks")
	}
	if desc.Data == nil {
		desc.Data = core.Data{}
	}
	return &desc, nil
}
