package crawl

import (
	"net/url"
	"path"
	"strings"
)

// assetExtensions name files that are never HTML pages.
var assetExtensions = func() map[string]struct{} {
	exts := []string{
		".png", ".jpg", ".jpeg", ".gif", ".svg", ".webp", ".ico", ".bmp",
		".css", ".js", ".mjs", ".json", ".xml", ".rss", ".atom",
		".woff", ".woff2", ".ttf", ".eot",
		".mp4", ".webm", ".mp3", ".wav", ".ogg",
		".zip", ".tar", ".gz",
		".pdf", ".doc", ".docx", ".xls", ".xlsx", ".ppt", ".pptx",
	}
	set := make(map[string]struct{}, len(exts))
	for _, e := range exts {
		set[e] = struct{}{}
	}
	return set
}()

// Scope decides which discovered URLs belong to a site audit.
type Scope struct {
	host string
}

// NewScope limits discovery to the host of siteURL.
func NewScope(siteURL *url.URL) Scope {
	return Scope{host: siteURL.Host}
}

// Allows reports whether rawURL is an http(s) page on the audited host.
func (s Scope) Allows(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return false
	}
	return strings.EqualFold(u.Host, s.host) && !isAsset(u)
}

// IsSameDomain reports whether rawURL is on host, ignoring case.
func IsSameDomain(rawURL, host string) bool {
	u, err := url.Parse(rawURL)
	return err == nil && strings.EqualFold(u.Host, host)
}

// IsStaticAsset reports whether rawURL names a non-HTML file.
func IsStaticAsset(rawURL string) bool {
	u, err := url.Parse(rawURL)
	return err == nil && isAsset(u)
}

func isAsset(u *url.URL) bool {
	_, ok := assetExtensions[strings.ToLower(path.Ext(u.Path))]
	return ok
}

// NormalizeURL drops the fragment and any trailing slash other than the
// root's, so equivalent links deduplicate.
func NormalizeURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	u.Fragment = ""
	u.Host = strings.ToLower(u.Host)
	if u.Path != "/" {
		u.Path = strings.TrimSuffix(u.Path, "/")
	}
	return u.String()
}
