package render

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"golang.org/x/image/draw"
)

// ImageFormat names a snapshot encoding.
type ImageFormat string

const (
	FormatPNG  ImageFormat = "png"
	FormatWebP ImageFormat = "webp"
)

// FormatFromPath picks an encoding from a file extension.
func FormatFromPath(path string) (ImageFormat, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".png":
		return FormatPNG, nil
	case ".webp":
		return FormatWebP, nil
	default:
		return "", fmt.Errorf("unsupported image format %q (use .png or .webp)", ext)
	}
}

// WriteImage encodes img to w.
func WriteImage(w io.Writer, img image.Image, format ImageFormat) error {
	switch format {
	case FormatPNG:
		return png.Encode(w, img)
	case FormatWebP:
		return nativewebp.Encode(w, img, nil)
	default:
		return fmt.Errorf("unsupported image format %q", format)
	}
}

// SaveImage writes img to path, choosing the encoding from the extension.
func SaveImage(path string, img image.Image) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteImage(f, img, format); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// Upscale enlarges img by an integer factor. Nearest-neighbor keeps hard
// pixel edges; smooth uses Catmull-Rom. A factor below 2 returns a copy.
func Upscale(img image.Image, factor int, smooth bool) *image.RGBA {
	b := img.Bounds()
	factor = max(factor, 1)
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))

	var scaler draw.Scaler = draw.NearestNeighbor
	if smooth {
		scaler = draw.CatmullRom
	}
	scaler.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}
