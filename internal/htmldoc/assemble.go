// Package htmldoc wraps rendered page bodies in the full HTML document:
// navigation chrome, SEO head tags, a per-document CSP meta tag, and the
// analytics bootstrap. Every document embeds exactly one nonce; the CSP
// directive and every emitted script tag must carry the same value or the
// page breaks under CSP enforcement.
package htmldoc

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"html"
	"strings"

	"github.com/abigaelawino/portfolio/internal/seo"
)

// PageSpec describes one page to assemble. Created by the site builder per
// route and consumed once.
type PageSpec struct {
	Path        string // relative output path, e.g. "about/index.html"
	Title       string
	Description string
	Body        string // pre-rendered HTML fragment
	Robots      string // optional robots meta override
}

// Assembler builds complete HTML documents. The nonce source is injectable so
// tests can assert exact output; the default draws 16 random bytes per call.
type Assembler struct {
	SiteURL         string
	SiteName        string
	AnalyticsDomain string // empty disables the snippet and tightens the CSP
	AnalyticsHost   string

	// NonceSource returns one base64 nonce per invocation. Nil selects the
	// crypto/rand default.
	NonceSource func() (string, error)
}

// OGImagePath is the fixed Open Graph image location inside the output tree.
const OGImagePath = "/assets/og.png"

// New returns an assembler with the default nonce source.
func New(siteURL, siteName, analyticsDomain, analyticsHost string) *Assembler {
	return &Assembler{
		SiteURL:         siteURL,
		SiteName:        siteName,
		AnalyticsDomain: analyticsDomain,
		AnalyticsHost:   strings.TrimRight(analyticsHost, "/"),
	}
}

// RandomNonce returns 16 random bytes, base64-encoded.
func RandomNonce() (string, error) {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", fmt.Errorf("read nonce bytes: %w", err)
	}
	return base64.StdEncoding.EncodeToString(b[:]), nil
}

// AssembleDocument builds the full document for one page. pathname is the
// resolved route pathname ("/about/"), used for the canonical URL.
func (a *Assembler) AssembleDocument(spec PageSpec, pathname string) (string, error) {
	nonceSource := a.NonceSource
	if nonceSource == nil {
		nonceSource = RandomNonce
	}
	nonce, err := nonceSource()
	if err != nil {
		return "", err
	}

	head := seo.BuildHead(seo.HeadInput{
		SiteURL:     a.SiteURL,
		SiteName:    a.SiteName,
		Pathname:    pathname,
		Title:       spec.Title,
		Description: spec.Description,
		ImagePath:   OGImagePath,
		Robots:      spec.Robots,
	})

	var b strings.Builder
	b.WriteString("<!doctype html>\n<html lang=\"en\">\n<head>\n")
	b.WriteString("<meta charset=\"utf-8\">\n")
	b.WriteString("<meta name=\"viewport\" content=\"width=device-width, initial-scale=1\">\n")
	fmt.Fprintf(&b, "<meta http-equiv=\"Content-Security-Policy\" content=\"%s\">\n", a.buildCSP(nonce))
	fmt.Fprintf(&b, "<title>%s · %s</title>\n", html.EscapeString(spec.Title), html.EscapeString(a.SiteName))
	b.WriteString(head)
	b.WriteString("\n<link rel=\"stylesheet\" href=\"/assets/shell.css\">\n")
	b.WriteString("</head>\n<body>\n")
	b.WriteString("<a class=\"skip-link\" href=\"#main\">Skip to content</a>\n")
	b.WriteString(navChrome)
	b.WriteString("<main id=\"main\">\n")
	b.WriteString(spec.Body)
	b.WriteString("\n</main>\n")
	b.WriteString(footerChrome)
	if a.AnalyticsDomain != "" {
		b.WriteString(a.analyticsBootstrap(nonce))
	}
	fmt.Fprintf(&b, "<script src=\"/assets/analytics.js\" defer nonce=\"%s\"></script>\n", nonce)
	b.WriteString("</body>\n</html>\n")
	return b.String(), nil
}

// navChrome is identical on every page: brand link plus primary navigation.
const navChrome = `<header class="site-header">
<nav aria-label="Primary">
<a class="brand" href="/">Abigael Awino</a>
<a href="/projects/">Projects</a>
<a href="/about/">About</a>
<a href="/contact/">Contact</a>
</nav>
</header>
`

const footerChrome = `<footer class="site-footer">
<p><a href="/resume/">Resume</a> · <a href="/blog/">Blog</a></p>
</footer>
`

// buildCSP assembles the per-document policy. With analytics disabled,
// script-src is exactly 'self'; enabled, it additionally allows the nonce and
// the analytics host, and connect-src gains the host for event submission.
func (a *Assembler) buildCSP(nonce string) string {
	scriptSrc := "'self'"
	connectSrc := "'self'"
	if a.AnalyticsDomain != "" {
		scriptSrc = fmt.Sprintf("'self' 'nonce-%s' %s", nonce, a.AnalyticsHost)
		connectSrc = "'self' " + a.AnalyticsHost
	}
	directives := []string{
		"default-src 'self'",
		"script-src " + scriptSrc,
		"style-src 'self' 'unsafe-inline'",
		"img-src 'self' data:",
		"font-src 'self'",
		"connect-src " + connectSrc,
		"frame-ancestors 'none'",
		"form-action 'self'",
	}
	return strings.Join(directives, "; ")
}

// analyticsBootstrap emits the inline Plausible loader. It bows out when any
// of four do-not-track signals is set or when the page is served from a local
// hostname, then installs the queueing stub and injects the deferred loader
// script, all tagged with the document nonce.
func (a *Assembler) analyticsBootstrap(nonce string) string {
	js := `(function(){
var sig=[navigator.doNotTrack,window.doNotTrack,navigator.msDoNotTrack,navigator.globalPrivacyControl&&"1"];
for(var i=0;i<sig.length;i++){if(sig[i]==="1"||sig[i]==="yes")return;}
var h=location.hostname;
if(h===""||h==="localhost"||h==="127.0.0.1"||h==="0.0.0.0"||h.endsWith(".local"))return;
window.plausible=window.plausible||function(){(window.plausible.q=window.plausible.q||[]).push(arguments)};
var s=document.createElement("script");
s.defer=true;
s.dataset.domain="` + a.AnalyticsDomain + `";
s.src="` + a.AnalyticsHost + `/js/script.js";
s.nonce="` + nonce + `";
document.head.appendChild(s);
})();`
	return fmt.Sprintf("<script nonce=\"%s\">%s</script>\n", nonce, js)
}
