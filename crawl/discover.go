// Package crawl discovers the pages of a site for a site-wide audit.
// It reads sitemap.xml when the site has one and otherwise follows
// same-domain links breadth first. Crawling is kept apart from analysis:
// it only yields URLs.
package crawl

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/url"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/gaurav-prasanna/accesslens/core"
	"github.com/gaurav-prasanna/accesslens/core/document"
)

// DefaultMaxPages bounds a discovery run.
const DefaultMaxPages = 100

// sitemapURL holds a URL from a sitemap.xml.
type sitemapURL struct {
	Loc string `xml:"loc"`
}

// sitemapIndex is the root element of a sitemap.xml.
type sitemapIndex struct {
	URLs []sitemapURL `xml:"url"`
}

// Discoverer finds the internal pages of a site.
type Discoverer struct {
	fetcher  core.Fetcher
	maxPages int
}

// NewDiscoverer creates a Discoverer. maxPages <= 0 uses DefaultMaxPages.
func NewDiscoverer(fetcher core.Fetcher, maxPages int) *Discoverer {
	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}
	return &Discoverer{fetcher: fetcher, maxPages: maxPages}
}

// Discover returns up to maxPages internal URLs starting from baseURL.
// The sitemap is tried first; link crawling is the fallback. baseURL is
// always the first result.
func (d *Discoverer) Discover(ctx context.Context, baseURL string) ([]string, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}
	scope := NewScope(parsed)

	sitemap := fmt.Sprintf("%s://%s/sitemap.xml", parsed.Scheme, parsed.Host)
	urls, err := d.fromSitemap(ctx, baseURL, sitemap, scope)
	if err == nil && len(urls) > 1 {
		return urls, nil
	}
	if err != nil {
		log.Debug().Err(err).Str("sitemap", sitemap).Msg("sitemap unavailable, crawling links")
	}

	return d.fromLinks(ctx, baseURL, scope)
}

func (d *Discoverer) fromSitemap(ctx context.Context, baseURL, sitemapURL string, scope Scope) ([]string, error) {
	result, err := d.fetcher.Fetch(ctx, sitemapURL)
	if err != nil {
		return nil, err
	}

	var sitemap sitemapIndex
	if err := xml.Unmarshal([]byte(result.HTML), &sitemap); err != nil {
		return nil, fmt.Errorf("parsing sitemap: %w", err)
	}

	queue := NewQueue(d.maxPages)
	queue.Add(baseURL)
	for _, u := range sitemap.URLs {
		loc := strings.TrimSpace(u.Loc)
		if scope.Allows(loc) && !queue.Add(loc) {
			break
		}
	}
	return queue.All(), nil
}

// fromLinks crawls same-site links breadth first.
func (d *Discoverer) fromLinks(ctx context.Context, startURL string, scope Scope) ([]string, error) {
	queue := NewQueue(d.maxPages)
	queue.Add(startURL)

	for !queue.Full() {
		current, ok := queue.Pop()
		if !ok {
			break
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		result, err := d.fetcher.Fetch(ctx, current)
		if err != nil {
			log.Debug().Err(err).Str("url", current).Msg("skipping page during discovery")
			continue
		}

		for _, link := range ExtractLinks(result.HTML, current) {
			if scope.Allows(link) && !queue.Add(link) {
				break
			}
		}
	}

	return queue.All(), nil
}

// ExtractLinks returns every href of an <a> element, resolved against
// baseURL. Non-navigational schemes and in-page anchors are skipped.
func ExtractLinks(html string, baseURL string) []string {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil
	}

	var links []string
	for _, a := range document.Parse(html).Query("a[href]") {
		href, _ := a.Attr("href")
		if resolved := resolveURL(strings.TrimSpace(href), base); resolved != "" {
			links = append(links, resolved)
		}
	}
	return links
}

// resolveURL resolves a potentially relative URL against a base.
func resolveURL(href string, base *url.URL) string {
	if href == "" || strings.HasPrefix(href, "#") {
		return ""
	}
	for _, scheme := range []string{"mailto:", "javascript:", "tel:", "data:"} {
		if strings.HasPrefix(strings.ToLower(href), scheme) {
			return ""
		}
	}

	parsed, err := url.Parse(href)
	if err != nil {
		return ""
	}

	resolved := base.ResolveReference(parsed)
	resolved.Fragment = ""
	return resolved.String()
}
