package render

import (
	"math"
	"testing"
)

func TestColorHex(t *testing.T) {
	tests := []struct {
		name string
		c    Color
		want uint32
	}{
		{"black", Color{0, 0, 0}, 0x000000},
		{"white", Color{1, 1, 1}, 0xFFFFFF},
		{"half", Color{0.5, 0.5, 0.5}, 0x808080},
		{"overbright saturates", Color{100, 0.9 * 100, 0.5 * 100}, 0xFFFFFF},
		{"negative clamps", Color{-1, 2, 0.5}, 0x00FF80},
		{"nan is zero", Color{math.NaN(), 1, 0}, 0x00FF00},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.c.Hex(); got != tc.want {
				t.Errorf("Hex() = %06x, want %06x", got, tc.want)
			}
		})
	}
}

func TestColorFromHex(t *testing.T) {
	for _, hex := range []uint32{0x000000, 0xFFFFFF, 0xB0C4DE, 0x708090, 0x123456} {
		if got := FromHex(hex).Hex(); got != hex {
			t.Errorf("FromHex(%06x).Hex() = %06x", hex, got)
		}
	}
}

func TestColorLerpClampsT(t *testing.T) {
	a, b := Color{0, 0, 0}, Color{1, 0.5, 0.25}
	tests := []struct {
		t    float64
		want Color
	}{
		{-1, a},
		{0, a},
		{0.5, Color{0.5, 0.25, 0.125}},
		{1, b},
		{7, b},
	}
	for _, tc := range tests {
		if got := a.Lerp(b, tc.t); !colorNear(got, tc.want) {
			t.Errorf("Lerp(t=%v) = %v, want %v", tc.t, got, tc.want)
		}
	}
}

func TestColorArithmetic(t *testing.T) {
	c := Color{0.2, 0.4, 0.6}
	if got := c.Add(Color{1, 1, 1}); !colorNear(got, Color{1.2, 1.4, 1.6}) {
		t.Errorf("Add = %v", got)
	}
	if got := c.Scale(2); got != (Color{0.4, 0.8, 1.2}) {
		t.Errorf("Scale = %v", got)
	}
	if got := c.Mul(Color{0.5, 0, 1}); got != (Color{0.1, 0, 0.6}) {
		t.Errorf("Mul = %v", got)
	}
}

func colorNear(a, b Color) bool {
	const eps = 1e-12
	return math.Abs(a.R-b.R) < eps && math.Abs(a.G-b.G) < eps && math.Abs(a.B-b.B) < eps
}
