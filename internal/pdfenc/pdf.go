// Package pdfenc builds the downloadable resume as a minimal single-page,
// single-font PDF. The file carries exactly five indirect objects plus an
// xref table whose offsets are recorded as the buffer is appended, so the
// output is byte-exact for a given input line sequence.
package pdfenc

import (
	"bytes"
	"fmt"
	"strings"
)

// Options control text placement inside the page. The coordinates are
// presentational constants with no deeper meaning; defaults match the
// production resume.
type Options struct {
	FontSize int
	StartX   int
	StartY   int
	Leading  int // vertical advance between lines
}

// DefaultOptions returns the production layout parameters.
func DefaultOptions() Options {
	return Options{FontSize: 14, StartX: 72, StartY: 720, Leading: 18}
}

// EncodeSimplePDF renders the given lines top to bottom on a single US-Letter
// page using the built-in Helvetica font. An empty slice is legal and yields
// a page with no visible text.
func EncodeSimplePDF(lines []string) []byte {
	return Encode(lines, DefaultOptions())
}

// Encode renders lines with explicit layout options.
func Encode(lines []string, opts Options) []byte {
	var content strings.Builder
	content.WriteString("BT\n")
	fmt.Fprintf(&content, "/F1 %d Tf\n", opts.FontSize)
	fmt.Fprintf(&content, "%d %d Td\n", opts.StartX, opts.StartY)
	for i, line := range lines {
		if i > 0 {
			fmt.Fprintf(&content, "0 -%d Td\n", opts.Leading)
		}
		fmt.Fprintf(&content, "(%s) Tj\n", EscapeText(line))
	}
	content.WriteString("ET")
	stream := content.String()

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")

	// Object byte offsets, recorded relative to the start of the file as each
	// object is appended; written verbatim into the xref table below.
	var offsets []int
	addObject := func(body string) {
		offsets = append(offsets, buf.Len())
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", len(offsets), body)
	}

	addObject("<< /Type /Catalog /Pages 2 0 R >>")
	addObject("<< /Type /Pages /Kids [3 0 R] /Count 1 >>")
	addObject("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Contents 4 0 R /Resources << /Font << /F1 5 0 R >> >> >>")
	addObject(fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(stream), stream))
	addObject("<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>")

	xrefOffset := buf.Len()
	buf.WriteString("xref\n")
	fmt.Fprintf(&buf, "0 %d\n", len(offsets)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\n", len(offsets)+1)
	fmt.Fprintf(&buf, "startxref\n%d\n%%%%EOF\n", xrefOffset)
	return buf.Bytes()
}

// EscapeText escapes a line for embedding in a parenthesized PDF string
// literal. Backslashes are doubled first so the parenthesis escapes are not
// themselves re-escaped.
func EscapeText(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `(`, `\(`)
	s = strings.ReplaceAll(s, `)`, `\)`)
	return s
}

// UnescapeText reverses EscapeText. It exists for round-trip verification of
// extracted content streams.
func UnescapeText(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			i++
			b.WriteByte(s[i])
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
