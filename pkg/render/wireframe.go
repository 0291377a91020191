package render

import (
	"math"

	"github.com/taigrr/orrery/pkg/math3d"
)

// Wireframe draws unshaded lines into a framebuffer. Lines are not depth
// tested and never write depth.
type Wireframe struct {
	fb    *Framebuffer
	tf    transformer
	vp    math3d.Mat4 // object space to screen space before the divide
	limit float64     // endpoints farther off screen than this are skipped
}

// NewWireframe creates a wireframe drawer for fb using the matrices in u.
func NewWireframe(fb *Framebuffer, u *Uniforms) *Wireframe {
	return &Wireframe{
		fb:    fb,
		tf:    newTransformer(u),
		vp:    u.Viewport.Mul(u.Projection).Mul(u.View).Mul(u.Model),
		limit: 4 * float64(max(fb.Width, fb.Height, 1)),
	}
}

// Project maps an object-space point to pixel coordinates. It reports false
// for points behind the camera or far outside the framebuffer.
func (w *Wireframe) Project(p math3d.Vec3) (x, y int, ok bool) {
	clip := w.vp.MulVec4(math3d.V4FromV3(p, 1))
	if clip.W <= 0 {
		return 0, 0, false
	}
	sx, sy := clip.X/clip.W, clip.Y/clip.W
	if !(math.Abs(sx) <= w.limit && math.Abs(sy) <= w.limit) {
		return 0, 0, false
	}
	return int(math.Round(sx)), int(math.Round(sy)), true
}

// Line3D draws the segment from a to b. Segments with an endpoint that
// does not project are skipped.
func (w *Wireframe) Line3D(a, b math3d.Vec3, c uint32) bool {
	x0, y0, ok0 := w.Project(a)
	x1, y1, ok1 := w.Project(b)
	if !ok0 || !ok1 {
		return false
	}
	w.fb.Pen(c).Line(x0, y0, x1, y1)
	return true
}

// Polyline draws consecutive segments through points, closing the loop
// when closed is set. It returns the number of segments drawn.
func (w *Wireframe) Polyline(points []math3d.Vec3, closed bool, c uint32) int {
	n := len(points)
	if n < 2 {
		return 0
	}
	segments := n - 1
	if closed {
		segments = n
	}
	drawn := 0
	for i := range segments {
		if w.Line3D(points[i], points[(i+1)%n], c) {
			drawn++
		}
	}
	return drawn
}

// Triangles draws the edges of every whole triangle in vertices, displaced
// the same way Renderer.Draw displaces them. Triangles with a vertex that
// fails to transform are skipped. It returns the number drawn.
func (w *Wireframe) Triangles(vertices []Vertex, c uint32) int {
	drawn := 0
	for i := 0; i+2 < len(vertices); i += 3 {
		var pts [3]math3d.Vec3
		ok := true
		for k := range 3 {
			v, vok := w.tf.apply(vertices[i+k])
			pts[k] = v.Transformed
			ok = ok && vok
		}
		if !ok {
			continue
		}
		for k := range 3 {
			a, b := pts[k], pts[(k+1)%3]
			if !(math.Abs(a.X) <= w.limit && math.Abs(a.Y) <= w.limit &&
				math.Abs(b.X) <= w.limit && math.Abs(b.Y) <= w.limit) {
				continue
			}
			w.fb.DrawLine(int(math.Round(a.X)), int(math.Round(a.Y)), int(math.Round(b.X)), int(math.Round(b.Y)), c)
		}
		drawn++
	}
	return drawn
}
