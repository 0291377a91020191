package math3d

import (
	"math"
	"testing"
)

func approxVec3(a, b Vec3, eps float64) bool {
	return math.Abs(a.X-b.X) <= eps && math.Abs(a.Y-b.Y) <= eps && math.Abs(a.Z-b.Z) <= eps
}

func TestViewportMapsNDCCorners(t *testing.T) {
	vp := Viewport(800, 600)

	tests := []struct {
		name string
		ndc  Vec3
		want Vec3
	}{
		{"center", V3(0, 0, 0.5), V3(400, 300, 0.5)},
		{"top left", V3(-1, 1, 0), V3(0, 0, 0)},
		{"bottom right", V3(1, -1, -1), V3(800, 600, -1)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := vp.MulVec4(V4FromV3(tc.ndc, 1)).Vec3()
			if !approxVec3(got, tc.want, 1e-9) {
				t.Errorf("Viewport(%v) = %v, want %v", tc.ndc, got, tc.want)
			}
		})
	}
}

func TestModelAppliesScaleThenTranslation(t *testing.T) {
	m := Model(V3(10, 0, 0), 2, Zero3())
	got := m.MulVec3(V3(1, 1, 1))
	want := V3(12, 2, 2)
	if !approxVec3(got, want, 1e-9) {
		t.Errorf("Model point = %v, want %v", got, want)
	}
}

func TestMat3Inverse(t *testing.T) {
	m := Model(V3(5, 6, 7), 3, V3(0.4, 1.1, -0.2)).Upper3()
	inv, ok := m.Inverse()
	if !ok {
		t.Fatal("rotation*scale should be invertible")
	}

	v := V3(1, -2, 0.5)
	back := inv.MulVec3(m.MulVec3(v))
	if !approxVec3(back, v, 1e-9) {
		t.Errorf("inverse round trip = %v, want %v", back, v)
	}
}

func TestMat3InverseSingular(t *testing.T) {
	m := Scale(V3(1, 0, 1)).Upper3()
	inv, ok := m.Inverse()
	if ok {
		t.Error("flattened scale should be singular")
	}
	if inv != Identity3() {
		t.Errorf("singular inverse = %v, want identity", inv)
	}
}

func TestNormalMatrix(t *testing.T) {
	t.Run("uniform scale keeps direction", func(t *testing.T) {
		n := NormalMatrix(ScaleUniform(4)).MulVec3(V3(0, 1, 0)).Normalize()
		if !approxVec3(n, V3(0, 1, 0), 1e-9) {
			t.Errorf("normal = %v, want (0,1,0)", n)
		}
	})

	t.Run("non-uniform scale stays perpendicular", func(t *testing.T) {
		model := Scale(V3(4, 1, 1))
		// Plane x + y = 0 contains tangent (1,-1,0); normal (1,1,0).
		tangent := model.Upper3().MulVec3(V3(1, -1, 0))
		normal := NormalMatrix(model).MulVec3(V3(1, 1, 0))
		if d := tangent.Dot(normal); math.Abs(d) > 1e-9 {
			t.Errorf("transformed normal not perpendicular, dot = %v", d)
		}
	})

	t.Run("singular falls back to identity", func(t *testing.T) {
		n := NormalMatrix(Scale(V3(0, 0, 0))).MulVec3(V3(0.3, 0.4, 0.5))
		if !approxVec3(n, V3(0.3, 0.4, 0.5), 0) {
			t.Errorf("normal = %v, want unchanged", n)
		}
	})
}

func TestPerspectiveDivide(t *testing.T) {
	p, ok := V4(2, 4, 6, 2).PerspectiveDivide()
	if !ok || p != V3(1, 2, 3) {
		t.Errorf("PerspectiveDivide = %v, %v", p, ok)
	}
	if _, ok := V4(1, 1, 1, 0).PerspectiveDivide(); ok {
		t.Error("w=0 should not divide")
	}
	if _, ok := V4(math.Inf(1), 1, 1, 1).PerspectiveDivide(); ok {
		t.Error("infinite input should not divide")
	}
}

func TestPerspectiveDepthOrdering(t *testing.T) {
	proj := Perspective(math.Pi/3, 1, 0.1, 100)
	near, _ := proj.MulVec4(V4(0, 0, -1, 1)).PerspectiveDivide()
	far, _ := proj.MulVec4(V4(0, 0, -50, 1)).PerspectiveDivide()
	if near.Z >= far.Z {
		t.Errorf("nearer point should have smaller depth: near=%v far=%v", near.Z, far.Z)
	}
}
