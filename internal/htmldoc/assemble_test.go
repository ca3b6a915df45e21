package htmldoc

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func fixedNonce(v string) func() (string, error) {
	return func() (string, error) { return v, nil }
}

func testAssembler(domain string) *Assembler {
	a := New("https://example.test", "Abigael Awino", domain, "https://plausible.io")
	return a
}

// collectScriptNonces parses the document and returns the nonce attribute of
// every script element, in document order.
func collectScriptNonces(t *testing.T, doc string) []string {
	t.Helper()
	root, err := html.Parse(strings.NewReader(doc))
	require.NoError(t, err)

	var nonces []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "script" {
			for _, attr := range n.Attr {
				if attr.Key == "nonce" {
					nonces = append(nonces, attr.Val)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return nonces
}

func TestAssembleDocument_NonceConsistency(t *testing.T) {
	a := testAssembler("abigaelawino.dev")
	a.NonceSource = fixedNonce("FIXEDNONCE==")

	doc, err := a.AssembleDocument(PageSpec{Title: "Home", Description: "d", Body: "<h1>Hi</h1>"}, "/")
	require.NoError(t, err)

	// CSP carries the nonce.
	assert.Contains(t, doc, "'nonce-FIXEDNONCE=='")

	// Inline bootstrap and both script tags carry the identical nonce.
	nonces := collectScriptNonces(t, doc)
	require.Len(t, nonces, 2) // bootstrap + deferred analytics asset
	for _, n := range nonces {
		assert.Equal(t, "FIXEDNONCE==", n)
	}
}

func TestAssembleDocument_NoncesDifferAcrossCalls(t *testing.T) {
	a := testAssembler("abigaelawino.dev")
	first, err := a.AssembleDocument(PageSpec{Title: "A", Body: ""}, "/")
	require.NoError(t, err)
	second, err := a.AssembleDocument(PageSpec{Title: "A", Body: ""}, "/")
	require.NoError(t, err)

	re := regexp.MustCompile(`'nonce-([^']+)'`)
	m1 := re.FindStringSubmatch(first)
	m2 := re.FindStringSubmatch(second)
	require.NotNil(t, m1)
	require.NotNil(t, m2)
	assert.NotEqual(t, m1[1], m2[1])
}

func TestAssembleDocument_AnalyticsDisabled(t *testing.T) {
	a := testAssembler("")
	a.NonceSource = fixedNonce("N")

	doc, err := a.AssembleDocument(PageSpec{Title: "Home", Body: ""}, "/")
	require.NoError(t, err)

	assert.NotContains(t, doc, "plausible")
	assert.Contains(t, doc, "script-src 'self';")
	assert.NotContains(t, doc, "script-src 'self' 'nonce-")
	assert.Contains(t, doc, "connect-src 'self';")

	// The deferred analytics asset tag is always present, nonce-tagged.
	nonces := collectScriptNonces(t, doc)
	require.Len(t, nonces, 1)
	assert.Equal(t, "N", nonces[0])
}

func TestAssembleDocument_AnalyticsEnabledCSP(t *testing.T) {
	a := testAssembler("abigaelawino.dev")
	a.NonceSource = fixedNonce("N")

	doc, err := a.AssembleDocument(PageSpec{Title: "Home", Body: ""}, "/")
	require.NoError(t, err)

	assert.Contains(t, doc, "script-src 'self' 'nonce-N' https://plausible.io")
	assert.Contains(t, doc, "connect-src 'self' https://plausible.io")
	assert.Contains(t, doc, `s.src="https://plausible.io/js/script.js"`)
	assert.Contains(t, doc, `s.dataset.domain="abigaelawino.dev"`)
	// DNT signals and local-host bailouts present in the bootstrap.
	assert.Contains(t, doc, "doNotTrack")
	assert.Contains(t, doc, `"127.0.0.1"`)
	assert.Contains(t, doc, `.endsWith(".local")`)
}

func TestAssembleDocument_HostTrailingSlashStripped(t *testing.T) {
	a := New("https://example.test", "S", "d.example", "https://stats.example/")
	a.NonceSource = fixedNonce("N")
	doc, err := a.AssembleDocument(PageSpec{Title: "T", Body: ""}, "/")
	require.NoError(t, err)
	assert.Contains(t, doc, `s.src="https://stats.example/js/script.js"`)
	assert.NotContains(t, doc, "stats.example//js")
}

func TestAssembleDocument_TitleEscaped(t *testing.T) {
	a := testAssembler("")
	a.NonceSource = fixedNonce("N")
	doc, err := a.AssembleDocument(PageSpec{Title: `<b>"bold" & brash</b>`, Body: ""}, "/")
	require.NoError(t, err)
	assert.Contains(t, doc, "&lt;b&gt;")
	assert.NotContains(t, doc, "<title><b>")
}

func TestAssembleDocument_ChromeAndBody(t *testing.T) {
	a := testAssembler("")
	a.NonceSource = fixedNonce("N")
	doc, err := a.AssembleDocument(PageSpec{Title: "T", Body: "<p>body-marker</p>"}, "/about/")
	require.NoError(t, err)

	assert.Contains(t, doc, `<a class="skip-link" href="#main">`)
	assert.Contains(t, doc, `<a class="brand" href="/">`)
	assert.Contains(t, doc, `<a href="/projects/">Projects</a>`)
	assert.Contains(t, doc, `<a href="/about/">About</a>`)
	assert.Contains(t, doc, `<a href="/contact/">Contact</a>`)
	assert.Contains(t, doc, "<p>body-marker</p>")
	assert.Contains(t, doc, `<link rel="canonical" href="https://example.test/about/">`)
}

func TestRandomNonce(t *testing.T) {
	a, err := RandomNonce()
	require.NoError(t, err)
	b, err := RandomNonce()
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
	assert.Len(t, a, 24) // 16 bytes base64-encoded
}
