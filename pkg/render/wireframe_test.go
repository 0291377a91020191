package render

import (
	"testing"

	"github.com/taigrr/orrery/pkg/math3d"
)

func screenUniforms() *Uniforms {
	// Identity MVP with a viewport that maps NDC x,y in [-1,1] onto a
	// 20x20 framebuffer.
	u := NewUniforms(nil)
	u.Viewport = math3d.Viewport(20, 20)
	return u
}

func countColor(fb *Framebuffer, c uint32) int {
	n := 0
	for _, p := range fb.Color {
		if p == c {
			n++
		}
	}
	return n
}

func TestWireframeProject(t *testing.T) {
	fb := NewFramebuffer(20, 20)
	w := NewWireframe(fb, screenUniforms())

	x, y, ok := w.Project(math3d.V3(0, 0, 0))
	if !ok {
		t.Fatal("origin did not project")
	}
	if x < 9 || x > 10 || y < 9 || y > 10 {
		t.Errorf("origin projected to (%d,%d), want the center", x, y)
	}

	if _, _, ok := w.Project(math3d.V3(1e9, 0, 0)); ok {
		t.Error("far off-screen point projected")
	}
}

func TestWireframeBehindCamera(t *testing.T) {
	fb := NewFramebuffer(20, 20)
	u := screenUniforms()
	u.Projection = math3d.Perspective(1, 1, 0.1, 100)
	w := NewWireframe(fb, u)

	// The camera looks down -Z; +Z is behind it.
	if w.Line3D(math3d.V3(0, 0, 5), math3d.V3(1, 0, 5), 0xFFFFFF) {
		t.Error("segment behind the camera was drawn")
	}
	if countColor(fb, 0xFFFFFF) != 0 {
		t.Error("pixels written for a skipped segment")
	}
	if !w.Line3D(math3d.V3(-1, 0, -5), math3d.V3(1, 0, -5), 0xFFFFFF) {
		t.Error("segment in front of the camera was skipped")
	}
}

func TestWireframePolyline(t *testing.T) {
	fb := NewFramebuffer(20, 20)
	w := NewWireframe(fb, screenUniforms())
	square := []math3d.Vec3{
		math3d.V3(-0.5, -0.5, 0),
		math3d.V3(0.5, -0.5, 0),
		math3d.V3(0.5, 0.5, 0),
		math3d.V3(-0.5, 0.5, 0),
	}

	if n := w.Polyline(square, false, 0x00FF00); n != 3 {
		t.Errorf("open polyline drew %d segments, want 3", n)
	}
	if n := w.Polyline(square, true, 0x00FF00); n != 4 {
		t.Errorf("closed polyline drew %d segments, want 4", n)
	}
	if n := w.Polyline(square[:1], true, 0x00FF00); n != 0 {
		t.Errorf("single point drew %d segments", n)
	}
	if countColor(fb, 0x00FF00) == 0 {
		t.Error("no pixels drawn")
	}
	for _, d := range fb.Depth {
		if d < 1e300 {
			t.Fatal("wireframe wrote depth")
		}
	}
}

func TestWireframeTriangles(t *testing.T) {
	fb := NewFramebuffer(20, 20)
	w := NewWireframe(fb, screenUniforms())
	tri := []Vertex{
		{Position: math3d.V3(-0.5, -0.5, 0)},
		{Position: math3d.V3(0.5, -0.5, 0)},
		{Position: math3d.V3(0, 0.5, 0)},
		{Position: math3d.V3(0, 0, 0)}, // leftover
	}
	if n := w.Triangles(tri, 0xFF0000); n != 1 {
		t.Errorf("Triangles drew %d, want 1", n)
	}
	if countColor(fb, 0xFF0000) == 0 {
		t.Error("no edge pixels drawn")
	}
}
