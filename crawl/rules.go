package crawl

import (
	"net/url"
	"path"
	"strings"
)

// pageExtensions are the only path extensions treated as documents; paths
// without an extension are assumed to be pages.
var pageExtensions = map[string]bool{
	"":       true,
	".html":  true,
	".htm":   true,
	".xhtml": true,
	".php":   true,
	".asp":   true,
	".aspx":  true,
}

// Scope decides which discovered URLs belong to a crawl.
type Scope struct {
	Host   string
	Prefix string // path prefix, "" for the whole host
}

// NewScope derives a Scope from the crawl's start URL. Pages below a
// directory-like start path stay under it; a start at a leaf or root covers
// the whole host.
func NewScope(start *url.URL) Scope {
	s := Scope{Host: canonicalHost(start.Scheme, start.Host)}
	if p := start.Path; strings.HasSuffix(p, "/") && p != "/" {
		s.Prefix = p
	}
	return s
}

// Allows reports whether rawURL is an in-scope http(s) page.
func (s Scope) Allows(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	if canonicalHost(u.Scheme, u.Host) != s.Host || !IsPage(u) {
		return false
	}
	if s.Prefix == "" {
		return true
	}
	p := u.Path
	if !strings.HasSuffix(p, "/") {
		p += "/"
	}
	return strings.HasPrefix(p, s.Prefix)
}

// IsPage reports whether u looks like an HTML page rather than an asset.
func IsPage(u *url.URL) bool {
	return pageExtensions[strings.ToLower(path.Ext(u.Path))]
}

// NormalizeURL strips fragments, default ports and trailing slashes so the
// same page is only queued once.
func NormalizeURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	u.Fragment = ""
	u.RawFragment = ""
	u.Host = canonicalHost(u.Scheme, u.Host)
	switch {
	case u.Path == "" && u.Host != "":
		u.Path = "/"
	case u.Path != "/":
		u.Path = strings.TrimSuffix(u.Path, "/")
	}
	return u.String()
}

// canonicalHost lowercases host and drops the scheme's default port.
func canonicalHost(scheme, host string) string {
	host = strings.ToLower(host)
	switch {
	case scheme == "http" && strings.HasSuffix(host, ":80"):
		return strings.TrimSuffix(host, ":80")
	case scheme == "https" && strings.HasSuffix(host, ":443"):
		return strings.TrimSuffix(host, ":443")
	}
	return host
}
