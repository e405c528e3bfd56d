package element

import "github.com/gaurav-prasanna/markgen/core"

// Link is a hyperlink target.
type Link struct {
	url   string
	title optional
}

// LinkOption configures a Link.
type LinkOption func(*Link)

// WithLinkTitle sets the link label. Without it the URL labels itself.
func WithLinkTitle(title string) LinkOption {
	return func(l *Link) { l.title = some(title) }
}

// NewLink creates a Link.
func NewLink(url string, opts ...LinkOption) Link {
	l := Link{url: url}
	for _, opt := range opts {
		opt(&l)
	}
	return l
}

// URL returns the link target.
func (l Link) URL() string { return l.url }

// Label returns the title if supplied, else the URL.
func (l Link) Label() string {
	if title, ok := l.title.Get(); ok {
		return title
	}
	return l.url
}

func (l Link) Kind() core.Kind { return core.KindLink }

func (l Link) Render(d core.Dialect) (string, error) {
	switch d {
	case core.RST:
		return ".. _" + l.Label() + ": " + l.url, nil
	case core.Markdown:
		return "[" + l.Label() + "](" + l.url + ")", nil
	default:
		return "", unknownDialect(l.Kind(), d)
	}
}
