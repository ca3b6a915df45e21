// Package pages holds the per-route body renderers. Each renderer is a pure
// function from content-index data to an HTML fragment; the site builder
// wraps the fragments into full documents.
package pages

import (
	"fmt"
	"html"
	"strings"

	"github.com/abigaelawino/portfolio/internal/content"
)

// Home renders the landing page: intro plus the most recent projects.
func Home(idx *content.Index) (string, error) {
	var b strings.Builder
	b.WriteString("<section class=\"hero\">\n")
	b.WriteString("<h1>Abigael Awino</h1>\n")
	b.WriteString("<p>Software engineer building reliable web infrastructure.</p>\n")
	b.WriteString("</section>\n")

	if len(idx.Projects) > 0 {
		b.WriteString("<section class=\"featured\">\n<h2>Recent work</h2>\n<ul>\n")
		limit := len(idx.Projects)
		if limit > 3 {
			limit = 3
		}
		for _, p := range idx.Projects[:limit] {
			fmt.Fprintf(&b, "<li><a href=\"/projects/#%s\">%s</a> — %s</li>\n",
				html.EscapeString(p.Slug), html.EscapeString(p.Title), html.EscapeString(p.Summary))
		}
		b.WriteString("</ul>\n</section>\n")
	}
	return b.String(), nil
}

// About renders the static about page.
func About(_ *content.Index) (string, error) {
	return `<article class="prose">
<h1>About</h1>
<p>I design and build web systems with a focus on performance, accessibility,
and boring, dependable infrastructure.</p>
<p>Based in Nairobi, working with teams everywhere.</p>
</article>
`, nil
}

// Contact renders the contact form page. The form posts to the static-host
// form endpoint; the thanks page is the redirect target.
func Contact(_ *content.Index) (string, error) {
	return `<article class="prose">
<h1>Contact</h1>
<form method="POST" action="/contact" name="contact" data-netlify="true">
<label>Name <input type="text" name="name" required></label>
<label>Email <input type="email" name="email" required></label>
<label>Message <textarea name="message" rows="6" required></textarea></label>
<button type="submit">Send</button>
</form>
</article>
`, nil
}

// ContactThanks renders the post-submission page.
func ContactThanks(_ *content.Index) (string, error) {
	return `<article class="prose">
<h1>Thanks</h1>
<p>Your message is on its way. I usually reply within two working days.</p>
<p><a href="/">Back to the homepage</a></p>
</article>
`, nil
}

// Projects renders the full project list. Bodies are markdown.
func Projects(idx *content.Index) (string, error) {
	var b strings.Builder
	b.WriteString("<h1>Projects</h1>\n")
	for _, p := range idx.Projects {
		fmt.Fprintf(&b, "<article class=\"project\" id=\"%s\">\n", html.EscapeString(p.Slug))
		if p.Link != "" {
			fmt.Fprintf(&b, "<h2><a href=\"%s\">%s</a></h2>\n", html.EscapeString(p.Link), html.EscapeString(p.Title))
		} else {
			fmt.Fprintf(&b, "<h2>%s</h2>\n", html.EscapeString(p.Title))
		}
		fmt.Fprintf(&b, "<p>%s</p>\n", html.EscapeString(p.Summary))
		if len(p.Tags) > 0 {
			b.WriteString("<ul class=\"tags\">")
			for _, tag := range p.Tags {
				fmt.Fprintf(&b, "<li>%s</li>", html.EscapeString(tag))
			}
			b.WriteString("</ul>\n")
		}
		if p.Body != "" {
			rendered, err := RenderMarkdown(p.Body)
			if err != nil {
				return "", fmt.Errorf("render project %q body: %w", p.Slug, err)
			}
			b.WriteString(rendered)
		}
		b.WriteString("</article>\n")
	}
	return b.String(), nil
}

// Blog renders the post list with rendered bodies.
func Blog(idx *content.Index) (string, error) {
	var b strings.Builder
	b.WriteString("<h1>Blog</h1>\n")
	for _, p := range idx.Posts {
		fmt.Fprintf(&b, "<article class=\"post\" id=\"%s\">\n", html.EscapeString(p.Slug))
		fmt.Fprintf(&b, "<h2>%s</h2>\n", html.EscapeString(p.Title))
		if p.Date != "" {
			fmt.Fprintf(&b, "<time datetime=\"%s\">%s</time>\n", html.EscapeString(p.Date), html.EscapeString(p.Date))
		}
		fmt.Fprintf(&b, "<p>%s</p>\n", html.EscapeString(p.Summary))
		if p.Body != "" {
			rendered, err := RenderMarkdown(p.Body)
			if err != nil {
				return "", fmt.Errorf("render post %q body: %w", p.Slug, err)
			}
			b.WriteString(rendered)
		}
		b.WriteString("</article>\n")
	}
	return b.String(), nil
}

// Resume renders the on-site resume page. ResumeLines feeds the PDF variant.
func Resume(_ *content.Index) (string, error) {
	var b strings.Builder
	b.WriteString("<article class=\"prose resume\">\n<h1>Resume</h1>\n")
	for _, line := range ResumeLines()[1:] {
		if line == "" {
			continue
		}
		fmt.Fprintf(&b, "<p>%s</p>\n", html.EscapeString(line))
	}
	b.WriteString("<p><a href=\"/resume/abigael-awino-resume.pdf\">Download as PDF</a></p>\n</article>\n")
	return b.String(), nil
}

// ResumeLines is the ordered text content of the PDF resume. The first line
// is the document title.
func ResumeLines() []string {
	return []string{
		"Abigael Awino — Resume",
		"",
		"Software Engineer",
		"Nairobi, Kenya · hello@abigaelawino.dev",
		"",
		"Experience",
		"Senior Engineer, Distributed Systems (2023–present)",
		"Engineer, Web Platform (2020–2023)",
		"",
		"Skills",
		"Go, TypeScript, PostgreSQL, Kubernetes, observability tooling",
	}
}
