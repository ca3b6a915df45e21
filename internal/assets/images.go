package assets

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/draw"
)

// MaxImageWidth caps rasters copied through CopyImages. Wider images are
// downscaled with Catmull-Rom resampling; everything else copies verbatim.
const MaxImageWidth = 1600

const jpegQuality = 85

// CopyImages mirrors src into dst, downscaling oversized PNG/JPEG files.
// Files that fail to decode fall back to a verbatim copy; the source may be
// an intentionally odd format the browser still understands.
func CopyImages(src, dst string) error {
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		switch strings.ToLower(filepath.Ext(path)) {
		case ".png", ".jpg", ".jpeg":
			if err := copyRaster(path, target); err != nil {
				slog.Warn("Image copy fell back to verbatim", "source", path, "error", err)
				return copyFile(path, target)
			}
			return nil
		default:
			return copyFile(path, target)
		}
	})
}

// copyRaster decodes, optionally downscales, and re-encodes one image in its
// original format. Images at or under the cap copy verbatim to stay
// byte-stable.
func copyRaster(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= MaxImageWidth {
		if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
			return err
		}
		return os.WriteFile(dst, data, 0o644)
	}

	newH := h * MaxImageWidth / w
	scaled := image.NewRGBA(image.Rect(0, 0, MaxImageWidth, newH))
	draw.CatmullRom.Scale(scaled, scaled.Bounds(), img, bounds, draw.Over, nil)

	var buf bytes.Buffer
	switch format {
	case "jpeg":
		err = jpeg.Encode(&buf, scaled, &jpeg.Options{Quality: jpegQuality})
	default:
		err = png.Encode(&buf, scaled)
	}
	if err != nil {
		return fmt.Errorf("encode %s: %w", format, err)
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	slog.Debug("Downscaled image", "source", src, "width", MaxImageWidth, "height", newH)
	return os.WriteFile(dst, buf.Bytes(), 0o644)
}
