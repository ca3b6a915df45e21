package pdfenc

import (
	"bytes"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncode_XrefOffsets(t *testing.T) {
	cases := [][]string{
		nil,
		{"one line"},
		{"Abigael Awino — Resume", "Nairobi, Kenya", "hello@abigaelawino.dev"},
		{"paren (test)", `back\slash`, ""},
	}
	for _, lines := range cases {
		t.Run(fmt.Sprintf("%d-lines", len(lines)), func(t *testing.T) {
			buf := EncodeSimplePDF(lines)

			require.True(t, bytes.HasPrefix(buf, []byte("%PDF-1.4\n")))
			require.True(t, bytes.HasSuffix(buf, []byte("%%EOF\n")))

			// Trailer object count is always 5 objects + free-list head.
			require.Contains(t, string(buf), "/Size 6")

			xrefIdx := bytes.Index(buf, []byte("xref\n"))
			require.GreaterOrEqual(t, xrefIdx, 0)

			// startxref points at the xref keyword.
			re := regexp.MustCompile(`startxref\n(\d+)\n`)
			m := re.FindSubmatch(buf)
			require.NotNil(t, m)
			start, err := strconv.Atoi(string(m[1]))
			require.NoError(t, err)
			require.Equal(t, xrefIdx, start)

			// Each xref entry points at the start of the matching "N 0 obj".
			section := string(buf[xrefIdx:])
			entryRe := regexp.MustCompile(`(?m)^(\d{10}) 00000 n $`)
			entries := entryRe.FindAllStringSubmatch(section, -1)
			require.Len(t, entries, 5)
			for i, e := range entries {
				off, err := strconv.Atoi(e[1])
				require.NoError(t, err)
				want := fmt.Sprintf("%d 0 obj", i+1)
				require.True(t, bytes.HasPrefix(buf[off:], []byte(want)),
					"offset %d does not point at %q", off, want)
			}
		})
	}
}

func TestEncode_ContentStreamLength(t *testing.T) {
	buf := EncodeSimplePDF([]string{"a", "b"})
	re := regexp.MustCompile(`<< /Length (\d+) >>\nstream\n`)
	m := re.FindSubmatchIndex(buf)
	require.NotNil(t, m)
	length, err := strconv.Atoi(string(buf[m[2]:m[3]]))
	require.NoError(t, err)
	streamStart := m[1]
	end := bytes.Index(buf[streamStart:], []byte("\nendstream"))
	require.GreaterOrEqual(t, end, 0)
	require.Equal(t, length, end)
}

func TestEncode_TextOperators(t *testing.T) {
	buf := string(EncodeSimplePDF([]string{"first", "second", "third"}))
	require.Contains(t, buf, "BT\n/F1 14 Tf\n72 720 Td\n(first) Tj\n0 -18 Td\n(second) Tj\n0 -18 Td\n(third) Tj\nET")
}

func TestEncode_EmptyInput(t *testing.T) {
	buf := string(EncodeSimplePDF(nil))
	require.Contains(t, buf, "BT\n/F1 14 Tf\n72 720 Td\nET")
}

func TestEscapeText_RoundTrip(t *testing.T) {
	cases := []string{
		`plain`,
		`with (parens)`,
		`back\slash`,
		`\(already escaped\)`,
		`)((\\`,
		``,
	}
	for _, in := range cases {
		escaped := EscapeText(in)
		require.Equal(t, in, UnescapeText(escaped), "input %q escaped to %q", in, escaped)
	}
}

func TestEncode_EscapedInStream(t *testing.T) {
	buf := string(EncodeSimplePDF([]string{`Go (golang) \ friends`}))
	require.Contains(t, buf, `(Go \(golang\) \\ friends) Tj`)
	require.NotContains(t, buf, "(Go (golang)")
}

func TestEncode_CustomLayout(t *testing.T) {
	buf := string(Encode([]string{"x", "y"}, Options{FontSize: 10, StartX: 36, StartY: 800, Leading: 12}))
	require.True(t, strings.Contains(buf, "/F1 10 Tf\n36 800 Td\n(x) Tj\n0 -12 Td\n(y) Tj"))
}
