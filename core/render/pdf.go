// PDF encoder. Typesets the generated markup with gofpdf. The markup is printed verbatim in
// a monospace font so RST tables and underlines stay aligned; the document
// name and source head the first page.

package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/gaurav-prasanna/markgen/core"
)

// DefaultPDFFontSize is the body font size in points.
const DefaultPDFFontSize = 10.0

// PDFEncoder renders markup as a PDF document.
type PDFEncoder struct {
	FontSize float64
}

// NewPDFEncoder creates a PDFEncoder. Non-positive sizes use the default.
func NewPDFEncoder(fontSize float64) *PDFEncoder {
	if fontSize <= 0 {
		fontSize = DefaultPDFFontSize
	}
	return &PDFEncoder{FontSize: fontSize}
}

// Encode converts markup into PDF bytes.
func (e *PDFEncoder) Encode(out core.Output) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.SetTitle(out.Meta.Name, true)
	pdf.SetCreator("markgen", true)
	pdf.AddPage()

	// Core fonts are cp1252; translate UTF-8 text on the way in.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	if out.Meta.Name != "" {
		pdf.SetFont("Helvetica", "B", 16)
		pdf.MultiCell(0, 8, tr(out.Meta.Name), "", "L", false)
		pdf.Ln(2)
	}
	if out.Meta.Source != "" {
		pdf.SetFont("Helvetica", "I", 9)
		pdf.SetTextColor(100, 100, 100)
		pdf.MultiCell(0, 5, tr("Source: "+out.Meta.Source), "", "L", false)
		pdf.SetTextColor(0, 0, 0)
		pdf.Ln(4)
	}

	lineHeight := e.FontSize * 0.45
	pdf.SetFont("Courier", "", e.FontSize)
	for _, line := range strings.Split(strings.TrimRight(out.Markup, "\n"), "\n") {
		if line == "" {
			pdf.Ln(lineHeight)
			continue
		}
		pdf.MultiCell(0, lineHeight, tr(line), "", "L", false)
	}

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("typesetting PDF: %w", err)
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("writing PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// Extension returns the file extension for PDF output.
func (e *PDFEncoder) Extension() string {
	return ".pdf"
}
