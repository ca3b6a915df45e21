package seo

import (
	"encoding/xml"
	"fmt"
	"time"
)

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

// BuildSitemapXML renders a sitemap for the given site-relative paths. The
// lastmod date is applied to every entry; pass the build clock's current time.
func BuildSitemapXML(siteURL string, paths []string, lastmod time.Time) (string, error) {
	set := sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  make([]sitemapURL, 0, len(paths)),
	}
	mod := lastmod.UTC().Format("2006-01-02")
	for _, p := range paths {
		set.URLs = append(set.URLs, sitemapURL{Loc: CanonicalURL(siteURL, p), LastMod: mod})
	}
	out, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal sitemap: %w", err)
	}
	return xml.Header + string(out) + "\n", nil
}
