package site

import (
	"strings"

	"github.com/abigaelawino/portfolio/internal/content"
	"github.com/abigaelawino/portfolio/internal/pages"
)

// Route binds one output file to its renderer and page metadata.
type Route struct {
	Path        string // relative output path, e.g. "about/index.html"
	Title       string
	Description string
	Robots      string // optional robots meta override
	Render      func(*content.Index) (string, error)
}

// Routes returns the six fixed page routes, in output order. The resume route
// is separate because it also produces the PDF asset.
func Routes() []Route {
	return []Route{
		{Path: "index.html", Title: "Home", Description: "Portfolio of Abigael Awino, software engineer.", Render: pages.Home},
		{Path: "about/index.html", Title: "About", Description: "About Abigael Awino.", Render: pages.About},
		{Path: "contact/index.html", Title: "Contact", Description: "Get in touch.", Render: pages.Contact},
		{Path: "contact/thanks/index.html", Title: "Thanks", Description: "Message received.", Robots: "noindex", Render: pages.ContactThanks},
		{Path: "projects/index.html", Title: "Projects", Description: "Selected projects and case studies.", Render: pages.Projects},
		{Path: "blog/index.html", Title: "Blog", Description: "Notes on engineering and the web.", Render: pages.Blog},
	}
}

// ResumeRoute is the seventh page; the builder writes the PDF alongside it.
func ResumeRoute() Route {
	return Route{Path: "resume/index.html", Title: "Resume", Description: "Resume of Abigael Awino.", Render: pages.Resume}
}

// ResumePDFPath is the output location of the PDF resume.
const ResumePDFPath = "resume/abigael-awino-resume.pdf"

// RoutePathname maps a relative output path to its canonical URL pathname:
// "index.html" -> "/", "X/index.html" -> "/X/", anything else -> "/X" with
// the .html extension dropped.
func RoutePathname(rel string) string {
	rel = strings.TrimPrefix(strings.ReplaceAll(rel, "\\", "/"), "/")
	if rel == "index.html" {
		return "/"
	}
	if dir, ok := strings.CutSuffix(rel, "/index.html"); ok {
		return "/" + dir + "/"
	}
	return "/" + strings.TrimSuffix(rel, ".html")
}

// SitemapPaths returns the canonical pathname of every page route.
func SitemapPaths() []string {
	routes := append(Routes(), ResumeRoute())
	paths := make([]string, 0, len(routes))
	for _, r := range routes {
		paths = append(paths, RoutePathname(r.Path))
	}
	return paths
}
