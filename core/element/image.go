package element

import (
	"strings"

	"github.com/gaurav-prasanna/markgen/core"
)

// Image references a picture by path or URL.
type Image struct {
	src   string
	alt   optional
	scale optional
	align optional
	title optional
}

// ImageOption configures an Image.
type ImageOption func(*Image)

// WithAlt sets the alternative text.
func WithAlt(alt string) ImageOption {
	return func(i *Image) { i.alt = some(alt) }
}

// WithScale sets the RST scale in percent, e.g. "50".
func WithScale(scale string) ImageOption {
	return func(i *Image) { i.scale = some(scale) }
}

// WithAlign sets the RST alignment, e.g. "right".
func WithAlign(align string) ImageOption {
	return func(i *Image) { i.align = some(align) }
}

// WithImageTitle sets the Markdown title shown on hover.
func WithImageTitle(title string) ImageOption {
	return func(i *Image) { i.title = some(title) }
}

// NewImage creates an Image.
func NewImage(src string, opts ...ImageOption) Image {
	img := Image{src: src}
	for _, opt := range opts {
		opt(&img)
	}
	return img
}

// Src returns the image path or URL.
func (i Image) Src() string { return i.src }

// Alt returns the alternative text and whether it was supplied.
func (i Image) Alt() (string, bool) { return i.alt.Get() }

// Scale returns the scale and whether it was supplied.
func (i Image) Scale() (string, bool) { return i.scale.Get() }

// Align returns the alignment and whether it was supplied.
func (i Image) Align() (string, bool) { return i.align.Get() }

// Title returns the title and whether it was supplied.
func (i Image) Title() (string, bool) { return i.title.Get() }

func (i Image) Kind() core.Kind { return core.KindImage }

// Render writes an RST image directive with only the supplied attributes, or
// a Markdown image whose alt and title are spliced into "![](src)".
func (i Image) Render(d core.Dialect) (string, error) {
	switch d {
	case core.RST:
		lines := []string{".. image:: " + i.src}
		if alt, ok := i.alt.Get(); ok {
			lines = append(lines, indent+":alt: "+alt)
		}
		if scale, ok := i.scale.Get(); ok {
			lines = append(lines, indent+":scale: "+scale+" %")
		}
		if align, ok := i.align.Get(); ok {
			lines = append(lines, indent+":align: "+align)
		}
		return strings.Join(lines, "\n"), nil
	case core.Markdown:
		out := "![](" + i.src + ")"
		if alt, ok := i.alt.Get(); ok {
			out = out[:2] + alt + out[2:]
		}
		if title, ok := i.title.Get(); ok {
			out = out[:len(out)-1] + ` "` + title + `"` + out[len(out)-1:]
		}
		return out, nil
	default:
		return "", unknownDialect(i.Kind(), d)
	}
}
