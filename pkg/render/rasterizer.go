// Package render provides the software rasterization pipeline for orrery:
// vertex transform, triangle coverage, depth-tested framebuffer writes and
// presentation to a terminal or an image file.
package render

import (
	"image"
	"iter"
	"math"

	"github.com/taigrr/orrery/pkg/math3d"
)

// EdgeRule decides which triangle owns pixels that fall exactly on an edge.
type EdgeRule int

const (
	// EdgeTopLeft includes a pixel center on an edge only when the edge is
	// a top or left edge. Triangles sharing an edge never both cover, and
	// never both miss, a pixel on it.
	EdgeTopLeft EdgeRule = iota
	// EdgeInclusive includes every pixel whose center lies on any edge.
	EdgeInclusive
)

// degenerateArea is the smallest doubled screen-space area a triangle may
// have before it is treated as zero-area and skipped.
const degenerateArea = 1e-9

// String returns the rule name.
func (r EdgeRule) String() string {
	switch r {
	case EdgeTopLeft:
		return "top-left"
	case EdgeInclusive:
		return "inclusive"
	default:
		return "unknown"
	}
}

// setup holds the per-triangle state computed once before the pixel loop.
type setup struct {
	v       [3]Vertex
	p       [3]math3d.Vec2
	invArea float64
	owned   [3]bool // owned[i] is the edge opposite v[i]
	rule    EdgeRule
}

// Rasterize yields a fragment for every pixel of clip whose center lies
// inside the screen-space triangle v0 v1 v2. Pixel (x, y) is sampled at
// (x, y). Both windings produce the same coverage. Zero-area and
// non-finite triangles produce nothing. Attributes are interpolated with
// screen-space barycentric weights; there is no perspective correction.
func Rasterize(v0, v1, v2 Vertex, clip image.Rectangle, rule EdgeRule) iter.Seq[Fragment] {
	return func(yield func(Fragment) bool) {
		s, ok := newSetup(v0, v1, v2, rule)
		if !ok {
			return
		}
		minX, minY, maxX, maxY, ok := s.bounds(clip)
		if !ok {
			return
		}

		for y := minY; y <= maxY; y++ {
			for x := minX; x <= maxX; x++ {
				w0, w1, w2, inside := s.weights(float64(x), float64(y))
				if !inside {
					continue
				}
				if !yield(s.fragment(x, y, w0, w1, w2)) {
					return
				}
			}
		}
	}
}

func newSetup(v0, v1, v2 Vertex, rule EdgeRule) (setup, bool) {
	s := setup{v: [3]Vertex{v0, v1, v2}, rule: rule}
	for i := range 3 {
		if !s.v[i].Transformed.IsFinite() {
			return s, false
		}
		s.p[i] = math3d.V2(s.v[i].Transformed.X, s.v[i].Transformed.Y)
	}

	area := edge(s.p[0], s.p[1], s.p[2])
	if math.IsNaN(area) || math.IsInf(area, 0) || math.Abs(area) < degenerateArea {
		return s, false
	}
	if area < 0 {
		s.v[1], s.v[2] = s.v[2], s.v[1]
		s.p[1], s.p[2] = s.p[2], s.p[1]
		area = edge(s.p[0], s.p[1], s.p[2])
	}
	s.invArea = 1 / area

	// Edge i runs between the two vertices other than v[i].
	s.owned[0] = ownsEdge(s.p[1], s.p[2])
	s.owned[1] = ownsEdge(s.p[2], s.p[0])
	s.owned[2] = ownsEdge(s.p[0], s.p[1])
	return s, true
}

// bounds returns the inclusive pixel range to scan, clamped to clip in
// float space so far-off vertices cannot overflow the int conversion.
func (s *setup) bounds(clip image.Rectangle) (minX, minY, maxX, maxY int, ok bool) {
	fminX := math.Max(math.Ceil(min3(s.p[0].X, s.p[1].X, s.p[2].X)), float64(clip.Min.X))
	fmaxX := math.Min(math.Floor(max3(s.p[0].X, s.p[1].X, s.p[2].X)), float64(clip.Max.X-1))
	fminY := math.Max(math.Ceil(min3(s.p[0].Y, s.p[1].Y, s.p[2].Y)), float64(clip.Min.Y))
	fmaxY := math.Min(math.Floor(max3(s.p[0].Y, s.p[1].Y, s.p[2].Y)), float64(clip.Max.Y-1))
	if fminX > fmaxX || fminY > fmaxY {
		return 0, 0, 0, 0, false
	}
	return int(fminX), int(fminY), int(fmaxX), int(fmaxY), true
}

// weights returns the barycentric weights of (x, y) and whether the point
// is covered under the triangle's edge rule.
func (s *setup) weights(x, y float64) (w0, w1, w2 float64, inside bool) {
	p := math3d.V2(x, y)
	e0 := edge(s.p[1], s.p[2], p)
	e1 := edge(s.p[2], s.p[0], p)
	e2 := edge(s.p[0], s.p[1], p)
	if !s.covers(e0, 0) || !s.covers(e1, 1) || !s.covers(e2, 2) {
		return 0, 0, 0, false
	}
	return e0 * s.invArea, e1 * s.invArea, e2 * s.invArea, true
}

func (s *setup) covers(e float64, i int) bool {
	if e > 0 {
		return true
	}
	if e < 0 {
		return false
	}
	return s.rule == EdgeInclusive || s.owned[i]
}

func (s *setup) fragment(x, y int, w0, w1, w2 float64) Fragment {
	a, b, c := &s.v[0], &s.v[1], &s.v[2]
	return Fragment{
		X:         x,
		Y:         y,
		Color:     weightedColor(a.Color, b.Color, c.Color, w0, w1, w2),
		Depth:     a.Transformed.Z*w0 + b.Transformed.Z*w1 + c.Transformed.Z*w2,
		Normal:    math3d.Weighted(a.TransformedNormal, b.TransformedNormal, c.TransformedNormal, w0, w1, w2),
		Reference: math3d.Weighted(a.Position, b.Position, c.Position, w0, w1, w2),
		World:     math3d.Weighted(a.World, b.World, c.World, w0, w1, w2),
	}
}

// edge is the signed doubled area of (a, b, p): positive when p lies to the
// interior side of a->b for a triangle with positive area. The endpoints
// are put in a canonical order first so that two triangles sharing an edge
// compute bit-identical magnitudes for it.
func edge(a, b, p math3d.Vec2) float64 {
	if b.X < a.X || (b.X == a.X && b.Y < a.Y) {
		return -orient(b, a, p)
	}
	return orient(a, b, p)
}

func orient(a, b, p math3d.Vec2) float64 {
	return (b.X-a.X)*(p.Y-a.Y) - (b.Y-a.Y)*(p.X-a.X)
}

// ownsEdge reports whether a->b is a top or left edge of a triangle with
// positive area. Screen y grows downward.
func ownsEdge(a, b math3d.Vec2) bool {
	dx, dy := b.X-a.X, b.Y-a.Y
	return (dy == 0 && dx > 0) || dy < 0
}

func min3(a, b, c float64) float64 {
	return math.Min(a, math.Min(b, c))
}

func max3(a, b, c float64) float64 {
	return math.Max(a, math.Max(b, c))
}
