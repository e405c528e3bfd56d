// Package crawl discovers the internal pages of a site for --all mode.
// Pages come from sitemap.xml when the site publishes one, otherwise from a
// breadth-first walk over same-host links.
package crawl

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"log"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"

	"github.com/gaurav-prasanna/markgen/core"
)

// DefaultMaxPages bounds discovery when MaxPages is unset.
const DefaultMaxPages = 100

var anchors = cascadia.MustCompile("a[href]")

// Discoverer finds crawlable pages starting from a base URL.
type Discoverer struct {
	Fetcher  core.Fetcher
	MaxPages int
	Logger   *log.Logger
}

// sitemap covers both <urlset> and <sitemapindex> documents.
type sitemap struct {
	XMLName xml.Name
	URLs    []struct {
		Loc string `xml:"loc"`
	} `xml:"url"`
	Sitemaps []struct {
		Loc string `xml:"loc"`
	} `xml:"sitemap"`
}

// Discover returns the in-scope pages reachable from baseURL, base first.
func (d *Discoverer) Discover(ctx context.Context, baseURL string) ([]string, error) {
	if d.Fetcher == nil {
		return nil, errors.New("crawl: no fetcher")
	}
	start, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}
	if start.Scheme == "" || start.Host == "" {
		return nil, fmt.Errorf("invalid base URL %q: scheme and host required", baseURL)
	}
	scope := NewScope(start)

	q := newFrontier(d.maxPages())
	q.push(NormalizeURL(baseURL))

	sitemapURL := fmt.Sprintf("%s://%s/sitemap.xml", start.Scheme, start.Host)
	found, err := d.fromSitemap(ctx, sitemapURL, scope, q)
	if err != nil {
		d.logf("crawl: sitemap unavailable: %v", err)
	}
	if found > 0 {
		d.logf("crawl: %d pages from %s", found, sitemapURL)
		return q.all(), nil
	}

	if err := d.fromLinks(ctx, scope, q); err != nil {
		return nil, err
	}
	return q.all(), nil
}

func (d *Discoverer) maxPages() int {
	if d.MaxPages <= 0 {
		return DefaultMaxPages
	}
	return d.MaxPages
}

// fromSitemap queues sitemap entries, following one level of sitemap index.
func (d *Discoverer) fromSitemap(ctx context.Context, sitemapURL string, scope Scope, q *frontier) (int, error) {
	sm, err := d.fetchSitemap(ctx, sitemapURL)
	if err != nil {
		return 0, err
	}

	var found int
	for _, u := range sm.URLs {
		loc := strings.TrimSpace(u.Loc)
		if scope.Allows(loc) && q.push(NormalizeURL(loc)) {
			found++
		}
	}
	for _, child := range sm.Sitemaps {
		if q.full() {
			break
		}
		nested, err := d.fetchSitemap(ctx, strings.TrimSpace(child.Loc))
		if err != nil {
			d.logf("crawl: skipping sitemap %s: %v", child.Loc, err)
			continue
		}
		for _, u := range nested.URLs {
			loc := strings.TrimSpace(u.Loc)
			if scope.Allows(loc) && q.push(NormalizeURL(loc)) {
				found++
			}
		}
	}
	return found, nil
}

func (d *Discoverer) fetchSitemap(ctx context.Context, sitemapURL string) (*sitemap, error) {
	res, err := d.Fetcher.Fetch(ctx, sitemapURL)
	if err != nil {
		return nil, err
	}
	var sm sitemap
	if err := xml.Unmarshal([]byte(res.Body), &sm); err != nil {
		return nil, fmt.Errorf("parsing sitemap: %w", err)
	}
	return &sm, nil
}

// fromLinks walks the frontier breadth first, queuing in-scope anchors.
func (d *Discoverer) fromLinks(ctx context.Context, scope Scope, q *frontier) error {
	for q.pending() {
		if err := ctx.Err(); err != nil {
			return err
		}
		current := q.pop()

		res, err := d.Fetcher.Fetch(ctx, current)
		if err != nil {
			d.logf("crawl: skipping %s: %v", current, err)
			continue
		}

		links, err := extractLinks(res.Body, current)
		if err != nil {
			d.logf("crawl: parsing %s: %v", current, err)
			continue
		}
		for _, link := range links {
			if scope.Allows(link) {
				q.push(NormalizeURL(link))
			}
		}
	}
	return nil
}

func (d *Discoverer) logf(format string, args ...any) {
	if d.Logger != nil {
		d.Logger.Printf(format, args...)
	}
}

// extractLinks returns anchor targets resolved against pageURL.
func extractLinks(page string, pageURL string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return nil, err
	}
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, err
	}
	// <base href> overrides the document URL for relative links.
	if href, ok := doc.Find("head base[href]").First().Attr("href"); ok {
		if b, err := base.Parse(href); err == nil {
			base = b
		}
	}

	var links []string
	doc.FindMatcher(anchors).Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		if resolved := resolveURL(strings.TrimSpace(href), base); resolved != "" {
			links = append(links, resolved)
		}
	})
	return links, nil
}

func resolveURL(href string, base *url.URL) string {
	if href == "" || strings.HasPrefix(href, "#") {
		return ""
	}
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	resolved := base.ResolveReference(ref)
	resolved.Fragment = ""
	return resolved.String()
}
