// Package render provides output encoders for rendered documents.
// This file implements the markup encoder, a passthrough of the generated text.
package render

import (
	"github.com/gaurav-prasanna/markgen/core"
)

// MarkupEncoder writes the generated markup as-is.
type MarkupEncoder struct {
	dialect core.Dialect
}

// NewMarkupEncoder creates a MarkupEncoder for the given dialect.
func NewMarkupEncoder(d core.Dialect) *MarkupEncoder {
	return &MarkupEncoder{dialect: d}
}

// Encode returns the markup as bytes (passthrough).
func (e *MarkupEncoder) Encode(out core.Output) ([]byte, error) {
	return []byte(out.Markup), nil
}

// Extension returns ".rst" or ".md" depending on the dialect.
func (e *MarkupEncoder) Extension() string {
	return e.dialect.Extension()
}
