// Package pngenc produces the default social-preview image as a minimal
// standards-valid RGBA PNG. The image is a procedural three-tone diagonal
// gradient; every pixel is a pure function of its coordinates, so the output
// is byte-stable for a given size and palette.
package pngenc

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"sync"
)

// Color is an RGBA quadruplet written verbatim into the raw scanlines.
type Color [4]byte

// Options control the generated gradient. The fractions are presentational
// constants; the defaults reproduce the production preview image.
type Options struct {
	Width  int
	Height int

	// BandFraction is the diagonal accent band threshold as a fraction of
	// the width: a pixel falls in the band when x - y*0.9 < width*BandFraction.
	BandFraction float64
	// HighlightXFraction / HighlightYFraction bound the near-white corner
	// patch. The patch check runs after the band check and overrides it.
	HighlightXFraction float64
	HighlightYFraction float64

	Background Color
	Accent     Color
	Highlight  Color
}

// DefaultOptions returns the production gradient parameters for the given size.
func DefaultOptions(width, height int) Options {
	return Options{
		Width:              width,
		Height:             height,
		BandFraction:       0.18,
		HighlightXFraction: 0.72,
		HighlightYFraction: 0.22,
		Background:         Color{0x0b, 0x12, 0x20, 0xff}, // dark navy
		Accent:             Color{0x25, 0x63, 0xeb, 0xff}, // accent blue
		Highlight:          Color{0xf1, 0xf5, 0xf9, 0xff}, // near white
	}
}

// EncodeDefaultImage renders the default preview gradient at the given size.
// It is a pure function of width and height.
func EncodeDefaultImage(width, height int) []byte {
	return Encode(DefaultOptions(width, height))
}

// Encode renders the gradient described by opts and wraps it as a PNG with a
// single IDAT chunk.
func Encode(opts Options) []byte {
	w, h := opts.Width, opts.Height

	// Raw image data: per scanline a filter-type byte (0 = none) followed by
	// 4 bytes per pixel.
	raw := make([]byte, 0, h*(1+w*4))
	for y := 0; y < h; y++ {
		raw = append(raw, 0)
		for x := 0; x < w; x++ {
			c := opts.Background
			if float64(x)-float64(y)*0.9 < float64(w)*opts.BandFraction {
				c = opts.Accent
			}
			if float64(x) > float64(w)*opts.HighlightXFraction && float64(y) < float64(h)*opts.HighlightYFraction {
				c = opts.Highlight
			}
			raw = append(raw, c[:]...)
		}
	}

	var compressed bytes.Buffer
	zw, _ := zlib.NewWriterLevel(&compressed, zlib.BestCompression)
	_, _ = zw.Write(raw)
	_ = zw.Close()

	ihdr := make([]byte, 13)
	binary.BigEndian.PutUint32(ihdr[0:4], uint32(w))
	binary.BigEndian.PutUint32(ihdr[4:8], uint32(h))
	ihdr[8] = 8  // bit depth
	ihdr[9] = 6  // color type: RGBA
	ihdr[10] = 0 // compression
	ihdr[11] = 0 // filter
	ihdr[12] = 0 // interlace

	var out bytes.Buffer
	out.Write([]byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'})
	writeChunk(&out, "IHDR", ihdr)
	writeChunk(&out, "IDAT", compressed.Bytes())
	writeChunk(&out, "IEND", nil)
	return out.Bytes()
}

// writeChunk appends one PNG chunk: big-endian data length, 4-byte type code,
// data, and a CRC-32 over type+data.
func writeChunk(out *bytes.Buffer, typ string, data []byte) {
	var be [4]byte
	binary.BigEndian.PutUint32(be[:], uint32(len(data)))
	out.Write(be[:])
	out.WriteString(typ)
	out.Write(data)
	binary.BigEndian.PutUint32(be[:], crcSum([]byte(typ), data))
	out.Write(be[:])
}

var (
	crcOnce  sync.Once
	crcTable [256]uint32
)

// crcSum computes the PNG CRC-32 (reflected polynomial 0xEDB88320, seed and
// final XOR 0xFFFFFFFF) over the concatenation of the given slices. The
// lookup table is built once on first use.
func crcSum(parts ...[]byte) uint32 {
	crcOnce.Do(func() {
		for n := range crcTable {
			c := uint32(n)
			for k := 0; k < 8; k++ {
				if c&1 != 0 {
					c = 0xEDB88320 ^ (c >> 1)
				} else {
					c >>= 1
				}
			}
			crcTable[n] = c
		}
	})
	c := uint32(0xFFFFFFFF)
	for _, p := range parts {
		for _, b := range p {
			c = crcTable[(c^uint32(b))&0xFF] ^ (c >> 8)
		}
	}
	return c ^ 0xFFFFFFFF
}
