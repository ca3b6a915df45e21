package pngenc

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"image"
	"image/png"
	"testing"

	"github.com/stretchr/testify/require"
)

var pngSignature = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

// walkChunks decodes the chunk sequence, verifying each stored CRC against an
// independent recomputation (stdlib hash/crc32 uses the same IEEE polynomial).
func walkChunks(t *testing.T, buf []byte) []string {
	t.Helper()
	require.True(t, bytes.HasPrefix(buf, pngSignature), "missing PNG signature")

	var types []string
	rest := buf[len(pngSignature):]
	for len(rest) > 0 {
		require.GreaterOrEqual(t, len(rest), 12, "truncated chunk header")
		length := binary.BigEndian.Uint32(rest[0:4])
		typ := string(rest[4:8])
		require.GreaterOrEqual(t, uint32(len(rest)-12), length, "chunk data truncated")
		stored := binary.BigEndian.Uint32(rest[8+length : 12+length])
		require.Equal(t, crc32.ChecksumIEEE(rest[4:8+length]), stored, "CRC mismatch for %s", typ)
		types = append(types, typ)
		rest = rest[12+length:]
	}
	return types
}

func TestEncodeDefaultImage_ChunkStructure(t *testing.T) {
	for _, size := range []struct{ w, h int }{{1, 1}, {3, 2}, {64, 48}, {1200, 630}} {
		buf := EncodeDefaultImage(size.w, size.h)
		types := walkChunks(t, buf)
		require.Equal(t, []string{"IHDR", "IDAT", "IEND"}, types, "size %dx%d", size.w, size.h)
	}
}

func TestEncodeDefaultImage_Decodable(t *testing.T) {
	buf := EncodeDefaultImage(120, 63)
	img, err := png.Decode(bytes.NewReader(buf))
	require.NoError(t, err)
	require.Equal(t, 120, img.Bounds().Dx())
	require.Equal(t, 63, img.Bounds().Dy())

	_, ok := img.(*image.NRGBA)
	require.True(t, ok, "expected 8-bit RGBA image, got %T", img)
}

func TestEncode_GradientRule(t *testing.T) {
	opts := DefaultOptions(100, 100)
	buf := Encode(opts)
	img, err := png.Decode(bytes.NewReader(buf))
	require.NoError(t, err)

	at := func(x, y int) Color {
		r, g, b, a := img.At(x, y).RGBA()
		return Color{byte(r >> 8), byte(g >> 8), byte(b >> 8), byte(a >> 8)}
	}

	// x=0, y=0: 0 - 0 < 18, accent band.
	require.Equal(t, opts.Accent, at(0, 0))
	// x=99, y=50: 99 - 45 = 54 >= 18, background.
	require.Equal(t, opts.Background, at(99, 50))
	// x=90, y=5: outside the band but inside the highlight patch.
	require.Equal(t, opts.Highlight, at(90, 5))
	// x=50, y=99: 50 - 89.1 < 18, accent band; below the highlight patch.
	require.Equal(t, opts.Accent, at(50, 99))
}

func TestEncode_Deterministic(t *testing.T) {
	a := EncodeDefaultImage(40, 30)
	b := EncodeDefaultImage(40, 30)
	require.Equal(t, a, b)
}
