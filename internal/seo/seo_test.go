package seo

import (
	"encoding/xml"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildHead(t *testing.T) {
	head := BuildHead(HeadInput{
		SiteURL:     "https://example.test/",
		SiteName:    "Abigael Awino",
		Pathname:    "/about/",
		Title:       `About <Abigael> & "friends"`,
		Description: "Portfolio & blog",
		ImagePath:   "/assets/og.png",
	})

	assert.Contains(t, head, `<link rel="canonical" href="https://example.test/about/">`)
	assert.Contains(t, head, `<meta property="og:image" content="https://example.test/assets/og.png">`)
	assert.Contains(t, head, `<meta name="robots" content="index, follow">`)
	// Interpolated text must be escaped.
	assert.Contains(t, head, "About &lt;Abigael&gt; &amp;")
	assert.NotContains(t, head, "<Abigael>")
}

func TestBuildHead_CustomRobots(t *testing.T) {
	head := BuildHead(HeadInput{SiteURL: "https://x.test", Pathname: "/", Robots: "noindex"})
	assert.Contains(t, head, `<meta name="robots" content="noindex">`)
}

func TestBuildSitemapXML(t *testing.T) {
	paths := []string{"/", "/about/", "/blog/"}
	out, err := BuildSitemapXML("https://example.test", paths, time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	var set struct {
		URLs []struct {
			Loc     string `xml:"loc"`
			LastMod string `xml:"lastmod"`
		} `xml:"url"`
	}
	require.NoError(t, xml.Unmarshal([]byte(out), &set))
	require.Len(t, set.URLs, 3)
	assert.Equal(t, "https://example.test/", set.URLs[0].Loc)
	assert.Equal(t, "https://example.test/about/", set.URLs[1].Loc)
	for _, u := range set.URLs {
		assert.Equal(t, "2026-03-14", u.LastMod)
	}
	assert.True(t, strings.HasPrefix(out, xml.Header))
}

func TestBuildRobotsTxt(t *testing.T) {
	allow := BuildRobotsTxt("https://example.test", true)
	assert.Contains(t, allow, "Allow: /")
	assert.Contains(t, allow, "Sitemap: https://example.test/sitemap.xml")

	deny := BuildRobotsTxt("https://example.test", false)
	assert.Contains(t, deny, "Disallow: /")
}

func TestResolveSiteURL(t *testing.T) {
	env := map[string]string{}
	getenv := func(k string) string { return env[k] }

	assert.Equal(t, DefaultSiteURL, ResolveSiteURL(getenv))

	env["SITE_URL"] = "https://preview.example.test/"
	assert.Equal(t, "https://preview.example.test", ResolveSiteURL(getenv))
}
