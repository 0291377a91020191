package render

import (
	"image/color"
	"math"
)

// Color is a linear RGB color with channels nominally in [0, 1]. Arithmetic
// does not clamp; Hex clamps when packing.
type Color struct {
	R, G, B float64
}

// RGB creates a color from 8-bit channel values.
func RGB(r, g, b uint8) Color {
	return Color{float64(r) / 255, float64(g) / 255, float64(b) / 255}
}

// FromHex unpacks a 0xRRGGBB value.
func FromHex(hex uint32) Color {
	return RGB(uint8(hex>>16), uint8(hex>>8), uint8(hex))
}

// Add returns the channel-wise sum.
func (c Color) Add(o Color) Color {
	return Color{c.R + o.R, c.G + o.G, c.B + o.B}
}

// Scale multiplies every channel by s.
func (c Color) Scale(s float64) Color {
	return Color{c.R * s, c.G * s, c.B * s}
}

// Mul returns the channel-wise product.
func (c Color) Mul(o Color) Color {
	return Color{c.R * o.R, c.G * o.G, c.B * o.B}
}

// Lerp blends from c to o. t is clamped to [0, 1].
func (c Color) Lerp(o Color, t float64) Color {
	t = clamp01(t)
	return Color{
		c.R + (o.R-c.R)*t,
		c.G + (o.G-c.G)*t,
		c.B + (o.B-c.B)*t,
	}
}

// Hex packs the color as 0xRRGGBB. Channels outside [0, 1] saturate
// instead of wrapping.
func (c Color) Hex() uint32 {
	return uint32(channel8(c.R))<<16 | uint32(channel8(c.G))<<8 | uint32(channel8(c.B))
}

// weightedColor blends three colors with barycentric weights.
func weightedColor(c0, c1, c2 Color, w0, w1, w2 float64) Color {
	return Color{
		c0.R*w0 + c1.R*w1 + c2.R*w2,
		c0.G*w0 + c1.G*w1 + c2.G*w2,
		c0.B*w0 + c1.B*w1 + c2.B*w2,
	}
}

// HexToRGBA converts a packed pixel to an opaque color.RGBA.
func HexToRGBA(hex uint32) color.RGBA {
	return color.RGBA{uint8(hex >> 16), uint8(hex >> 8), uint8(hex), 255}
}

func channel8(v float64) uint8 {
	return uint8(math.Round(clamp01(v) * 255))
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
