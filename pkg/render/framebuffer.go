package render

import (
	"image"
	"math"
)

// Framebuffer holds packed 0xRRGGBB colors and a depth value per pixel.
// Color and Depth are row-major and always the same length.
type Framebuffer struct {
	Width  int
	Height int
	Color  []uint32
	Depth  []float64
}

// NewFramebuffer creates a framebuffer cleared to black.
func NewFramebuffer(width, height int) *Framebuffer {
	width, height = max(width, 0), max(height, 0)
	fb := &Framebuffer{
		Width:  width,
		Height: height,
		Color:  make([]uint32, width*height),
		Depth:  make([]float64, width*height),
	}
	fb.Clear(0)
	return fb
}

// Bounds returns the pixel rectangle covered by the framebuffer.
func (fb *Framebuffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, fb.Width, fb.Height)
}

// Clear sets every pixel to background and every depth to +Inf.
func (fb *Framebuffer) Clear(background uint32) {
	n := len(fb.Color)
	if n == 0 {
		return
	}
	// Copy-doubling fill.
	fb.Color[0] = background
	fb.Depth[0] = math.Inf(1)
	for i := 1; i < n; i *= 2 {
		copy(fb.Color[i:], fb.Color[:i])
		copy(fb.Depth[i:], fb.Depth[:i])
	}
}

// Point writes c at (x, y) if depth is strictly nearer than the stored
// depth. Equal depths keep the earlier write. Out-of-range coordinates are
// ignored. It reports whether the pixel was written.
func (fb *Framebuffer) Point(x, y int, depth float64, c uint32) bool {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return false
	}
	i := y*fb.Width + x
	if !(depth < fb.Depth[i]) {
		return false
	}
	fb.Color[i] = c
	fb.Depth[i] = depth
	return true
}

// nearer reports whether depth would pass the depth test at (x, y). The
// caller guarantees the coordinates are in range.
func (fb *Framebuffer) nearer(x, y int, depth float64) bool {
	return depth < fb.Depth[y*fb.Width+x]
}

// At returns the packed color at (x, y), or 0 when out of range.
func (fb *Framebuffer) At(x, y int) uint32 {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return 0
	}
	return fb.Color[y*fb.Width+x]
}

// DepthAt returns the stored depth at (x, y), or +Inf when out of range.
func (fb *Framebuffer) DepthAt(x, y int) float64 {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return math.Inf(1)
	}
	return fb.Depth[y*fb.Width+x]
}

// DrawLine draws a line from (x0, y0) to (x1, y1) using Bresenham's
// algorithm. Lines ignore and do not update depth.
func (fb *Framebuffer) DrawLine(x0, y0, x1, y1 int, c uint32) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	for {
		fb.set(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func (fb *Framebuffer) set(x, y int, c uint32) {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return
	}
	fb.Color[y*fb.Width+x] = c
}

// Pen is a draw context carrying a current color.
type Pen struct {
	fb    *Framebuffer
	Color uint32
}

// Pen returns a draw context that writes c.
func (fb *Framebuffer) Pen(c uint32) Pen {
	return Pen{fb: fb, Color: c}
}

// Point is a depth-tested write of the pen color.
func (p Pen) Point(x, y int, depth float64) bool {
	return p.fb.Point(x, y, depth, p.Color)
}

// Line draws a line in the pen color.
func (p Pen) Line(x0, y0, x1, y1 int) {
	p.fb.DrawLine(x0, y0, x1, y1, p.Color)
}

// ToImage converts the framebuffer to an opaque image.RGBA.
func (fb *Framebuffer) ToImage() *image.RGBA {
	img := image.NewRGBA(fb.Bounds())
	for y := 0; y < fb.Height; y++ {
		row := fb.Color[y*fb.Width : (y+1)*fb.Width]
		for x, c := range row {
			img.SetRGBA(x, y, HexToRGBA(c))
		}
	}
	return img
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
