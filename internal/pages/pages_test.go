package pages

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abigaelawino/portfolio/internal/content"
)

func testIndex() *content.Index {
	return &content.Index{
		Projects: []content.Project{
			{Title: "Alpha", Summary: "First", Slug: "alpha", Tags: []string{"go"}},
			{Title: "Beta <x>", Summary: "Second", Slug: "beta", Link: "https://example.test/beta"},
		},
		Posts: []content.Post{
			{Title: "Post One", Summary: "S1", Slug: "post-one", Date: "2026-01-10", Body: "Some **bold** text."},
		},
	}
}

func TestHome(t *testing.T) {
	out, err := Home(testIndex())
	require.NoError(t, err)
	assert.Contains(t, out, "<h1>Abigael Awino</h1>")
	assert.Contains(t, out, `href="/projects/#alpha"`)
	// Titles are escaped.
	assert.Contains(t, out, "Beta &lt;x&gt;")
}

func TestHome_EmptyIndex(t *testing.T) {
	out, err := Home(&content.Index{})
	require.NoError(t, err)
	assert.NotContains(t, out, "Recent work")
}

func TestProjects(t *testing.T) {
	out, err := Projects(testIndex())
	require.NoError(t, err)
	assert.Contains(t, out, `<article class="project" id="alpha">`)
	assert.Contains(t, out, `<a href="https://example.test/beta">`)
	assert.Contains(t, out, "<li>go</li>")
}

func TestBlog_RendersMarkdownBody(t *testing.T) {
	out, err := Blog(testIndex())
	require.NoError(t, err)
	assert.Contains(t, out, `<time datetime="2026-01-10">`)
	assert.Contains(t, out, "<strong>bold</strong>")
}

func TestStaticPages(t *testing.T) {
	for name, fn := range map[string]func(*content.Index) (string, error){
		"about":   About,
		"contact": Contact,
		"thanks":  ContactThanks,
	} {
		out, err := fn(nil)
		require.NoError(t, err, name)
		assert.NotEmpty(t, out, name)
	}
}

func TestResume(t *testing.T) {
	out, err := Resume(nil)
	require.NoError(t, err)
	assert.Contains(t, out, `href="/resume/abigael-awino-resume.pdf"`)
	assert.Contains(t, out, "Software Engineer")
}

func TestResumeLines(t *testing.T) {
	lines := ResumeLines()
	require.NotEmpty(t, lines)
	assert.Equal(t, "Abigael Awino — Resume", lines[0])
}

func TestRenderMarkdown_GFM(t *testing.T) {
	out, err := RenderMarkdown("~~gone~~ and [link](https://example.test)")
	require.NoError(t, err)
	assert.Contains(t, out, "<del>gone</del>")
	assert.Contains(t, out, `<a href="https://example.test">link</a>`)
}
