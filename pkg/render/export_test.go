package render

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func testImage() *image.RGBA {
	fb := NewFramebuffer(4, 3)
	fb.Clear(0x102030)
	fb.Point(1, 1, 0, 0xFF8000)
	return fb.ToImage()
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path    string
		want    ImageFormat
		wantErr bool
	}{
		{"frame.png", FormatPNG, false},
		{"out/Frame.PNG", FormatPNG, false},
		{"frame.webp", FormatWebP, false},
		{"frame.jpg", "", true},
		{"frame", "", true},
	}
	for _, tc := range tests {
		t.Run(tc.path, func(t *testing.T) {
			got, err := FormatFromPath(tc.path)
			if (err != nil) != tc.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tc.wantErr)
			}
			if got != tc.want {
				t.Errorf("format = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestWriteImagePNG(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteImage(&buf, testImage(), FormatPNG); err != nil {
		t.Fatalf("WriteImage: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if img.Bounds().Dx() != 4 || img.Bounds().Dy() != 3 {
		t.Errorf("bounds = %v", img.Bounds())
	}
	r, g, b, _ := img.At(1, 1).RGBA()
	if r>>8 != 0xFF || g>>8 != 0x80 || b>>8 != 0x00 {
		t.Errorf("pixel = %02x%02x%02x, want ff8000", r>>8, g>>8, b>>8)
	}
}

func TestWriteImageWebP(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteImage(&buf, testImage(), FormatWebP); err != nil {
		t.Fatalf("WriteImage: %v", err)
	}
	data := buf.Bytes()
	if len(data) < 12 || string(data[:4]) != "RIFF" || string(data[8:12]) != "WEBP" {
		t.Errorf("output is not a RIFF/WEBP container: % x", data[:min(len(data), 12)])
	}
}

func TestWriteImageUnknownFormat(t *testing.T) {
	if err := WriteImage(&bytes.Buffer{}, testImage(), "gif"); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestSaveImage(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.png", "b.webp"} {
		path := filepath.Join(dir, name)
		if err := SaveImage(path, testImage()); err != nil {
			t.Fatalf("SaveImage(%s): %v", name, err)
		}
		info, err := os.Stat(path)
		if err != nil || info.Size() == 0 {
			t.Errorf("%s not written: %v", name, err)
		}
	}
	if err := SaveImage(filepath.Join(dir, "c.bmp"), testImage()); err == nil {
		t.Error("expected error for .bmp")
	}
}

func TestUpscale(t *testing.T) {
	src := testImage()

	t.Run("nearest", func(t *testing.T) {
		dst := Upscale(src, 3, false)
		if dst.Bounds().Dx() != 12 || dst.Bounds().Dy() != 9 {
			t.Fatalf("bounds = %v", dst.Bounds())
		}
		for y := 3; y < 6; y++ {
			for x := 3; x < 6; x++ {
				if dst.RGBAAt(x, y) != src.RGBAAt(1, 1) {
					t.Errorf("pixel (%d,%d) = %v, want %v", x, y, dst.RGBAAt(x, y), src.RGBAAt(1, 1))
				}
			}
		}
	})

	t.Run("smooth", func(t *testing.T) {
		dst := Upscale(src, 2, true)
		if dst.Bounds().Dx() != 8 || dst.Bounds().Dy() != 6 {
			t.Errorf("bounds = %v", dst.Bounds())
		}
	})

	t.Run("factor below one", func(t *testing.T) {
		dst := Upscale(src, 0, false)
		if dst.Bounds() != src.Bounds() {
			t.Errorf("bounds = %v, want %v", dst.Bounds(), src.Bounds())
		}
	})
}
