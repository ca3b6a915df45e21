// Package seo builds the shared head markup, sitemap, and robots policy for
// the generated site. All helpers are pure string builders; the site URL is
// resolved once by the caller and threaded through.
package seo

import (
	"fmt"
	"html"
	"strings"
)

// DefaultSiteURL is the production origin used when SITE_URL is not set.
const DefaultSiteURL = "https://abigaelawino.dev"

// HeadInput carries everything needed to build the per-page head tags.
type HeadInput struct {
	SiteURL     string
	SiteName    string
	Pathname    string // resolved route pathname, e.g. "/about/"
	Title       string
	Description string
	ImagePath   string // site-relative Open Graph image path
	Robots      string // optional; defaults to "index, follow"
}

// BuildHead returns the canonical link, robots meta, Open Graph, and Twitter
// Card tags for one page.
func BuildHead(in HeadInput) string {
	canonical := CanonicalURL(in.SiteURL, in.Pathname)
	image := CanonicalURL(in.SiteURL, in.ImagePath)
	robots := in.Robots
	if robots == "" {
		robots = "index, follow"
	}
	title := html.EscapeString(in.Title)
	description := html.EscapeString(in.Description)

	var b strings.Builder
	fmt.Fprintf(&b, "<link rel=\"canonical\" href=\"%s\">\n", canonical)
	fmt.Fprintf(&b, "<meta name=\"description\" content=\"%s\">\n", description)
	fmt.Fprintf(&b, "<meta name=\"robots\" content=\"%s\">\n", html.EscapeString(robots))
	fmt.Fprintf(&b, "<meta property=\"og:type\" content=\"website\">\n")
	fmt.Fprintf(&b, "<meta property=\"og:site_name\" content=\"%s\">\n", html.EscapeString(in.SiteName))
	fmt.Fprintf(&b, "<meta property=\"og:url\" content=\"%s\">\n", canonical)
	fmt.Fprintf(&b, "<meta property=\"og:title\" content=\"%s\">\n", title)
	fmt.Fprintf(&b, "<meta property=\"og:description\" content=\"%s\">\n", description)
	fmt.Fprintf(&b, "<meta property=\"og:image\" content=\"%s\">\n", image)
	fmt.Fprintf(&b, "<meta name=\"twitter:card\" content=\"summary_large_image\">\n")
	fmt.Fprintf(&b, "<meta name=\"twitter:title\" content=\"%s\">\n", title)
	fmt.Fprintf(&b, "<meta name=\"twitter:description\" content=\"%s\">\n", description)
	fmt.Fprintf(&b, "<meta name=\"twitter:image\" content=\"%s\">", image)
	return b.String()
}

// CanonicalURL joins the site origin and a site-relative pathname.
func CanonicalURL(siteURL, pathname string) string {
	base := strings.TrimRight(siteURL, "/")
	if !strings.HasPrefix(pathname, "/") {
		pathname = "/" + pathname
	}
	return base + pathname
}

// BuildRobotsTxt returns the robots policy. allowAll=false blocks all crawling
// (used for preview deploys).
func BuildRobotsTxt(siteURL string, allowAll bool) string {
	var b strings.Builder
	b.WriteString("User-agent: *\n")
	if allowAll {
		b.WriteString("Allow: /\n")
	} else {
		b.WriteString("Disallow: /\n")
	}
	fmt.Fprintf(&b, "\nSitemap: %s\n", CanonicalURL(siteURL, "/sitemap.xml"))
	return b.String()
}

// ResolveSiteURL returns the site origin from the environment, falling back to
// the production default. getenv is injectable for tests.
func ResolveSiteURL(getenv func(string) string) string {
	if v := strings.TrimSpace(getenv("SITE_URL")); v != "" {
		return strings.TrimRight(v, "/")
	}
	return DefaultSiteURL
}
