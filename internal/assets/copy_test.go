package assets

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCopyDir(t *testing.T) {
	src := t.TempDir()
	dst := filepath.Join(t.TempDir(), "out")

	require.NoError(t, os.MkdirAll(filepath.Join(src, "css"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "css", "a.css"), []byte("body{}"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(src, "analytics.js"), []byte("// js"), 0o644))

	require.NoError(t, CopyDir(src, dst))

	got, err := os.ReadFile(filepath.Join(dst, "css", "a.css"))
	require.NoError(t, err)
	assert.Equal(t, "body{}", string(got))
	_, err = os.Stat(filepath.Join(dst, "analytics.js"))
	assert.NoError(t, err)
}

func TestCopyDir_MissingSource(t *testing.T) {
	err := CopyDir(filepath.Join(t.TempDir(), "absent"), t.TempDir())
	require.Error(t, err)
}

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
}

func TestCopyImages_SmallImageVerbatim(t *testing.T) {
	src := t.TempDir()
	dst := filepath.Join(t.TempDir(), "images")
	writePNG(t, filepath.Join(src, "small.png"), 100, 80)
	original, err := os.ReadFile(filepath.Join(src, "small.png"))
	require.NoError(t, err)

	require.NoError(t, CopyImages(src, dst))

	copied, err := os.ReadFile(filepath.Join(dst, "small.png"))
	require.NoError(t, err)
	assert.Equal(t, original, copied)
}

func TestCopyImages_Downscales(t *testing.T) {
	src := t.TempDir()
	dst := filepath.Join(t.TempDir(), "images")
	writePNG(t, filepath.Join(src, "wide.png"), MaxImageWidth*2, 400)

	require.NoError(t, CopyImages(src, dst))

	f, err := os.Open(filepath.Join(dst, "wide.png"))
	require.NoError(t, err)
	defer f.Close()
	cfg, _, err := image.DecodeConfig(f)
	require.NoError(t, err)
	assert.Equal(t, MaxImageWidth, cfg.Width)
	assert.Equal(t, 200, cfg.Height)
}

func TestCopyImages_NonImagePassthrough(t *testing.T) {
	src := t.TempDir()
	dst := filepath.Join(t.TempDir(), "images")
	require.NoError(t, os.WriteFile(filepath.Join(src, "notes.txt"), []byte("hello"), 0o644))
	// Corrupt "png" falls back to a verbatim copy.
	require.NoError(t, os.WriteFile(filepath.Join(src, "broken.png"), []byte("not a png"), 0o644))

	require.NoError(t, CopyImages(src, dst))

	got, err := os.ReadFile(filepath.Join(dst, "notes.txt"))
	require.NoError(t, err)
	assert.Equal(t, "hello", string(got))
	got, err = os.ReadFile(filepath.Join(dst, "broken.png"))
	require.NoError(t, err)
	assert.Equal(t, "not a png", string(got))
}
