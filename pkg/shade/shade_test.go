package shade

import (
	"math"
	"testing"

	"github.com/taigrr/orrery/pkg/math3d"
	"github.com/taigrr/orrery/pkg/noise"
	"github.com/taigrr/orrery/pkg/render"
)

func near(a, b render.Color, eps float64) bool {
	return math.Abs(a.R-b.R) < eps && math.Abs(a.G-b.G) < eps && math.Abs(a.B-b.B) < eps
}

func fragmentAt(ref, normal math3d.Vec3) render.Fragment {
	return render.Fragment{Reference: ref, World: ref, Normal: normal}
}

func TestSunIgnoresNormalAndTime(t *testing.T) {
	sampler := noise.New(noise.DefaultOptions())
	want := render.Color{R: 1, G: 0.9, B: 0.5}

	tests := []struct {
		name   string
		normal math3d.Vec3
		time   int
	}{
		{"facing up", math3d.V3(0, 1, 0), 0},
		{"facing away", math3d.V3(0, -1, 0), 0},
		{"zero normal", math3d.Vec3{}, 500},
		{"late frame", math3d.V3(1, 1, 1), 1 << 20},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			u := render.NewUniforms(sampler)
			u.Time = tc.time
			got := Dispatch(Sun, fragmentAt(math3d.V3(0.3, -0.2, 0.9), tc.normal), u)
			if got != want {
				t.Errorf("sun = %v, want %v", got, want)
			}
		})
	}

	if m := Default().Material(Sun); m.Emission != SunEmission {
		t.Errorf("sun emission = %d, want %d", m.Emission, SunEmission)
	}
}

func TestDispatchFallsBackToSun(t *testing.T) {
	u := render.NewUniforms(noise.New(noise.DefaultOptions()))
	f := fragmentAt(math3d.V3(1, 2, 3), math3d.V3(0, 0, 1))
	want := Dispatch(Sun, f, u)

	for _, idx := range []int{-1, 9, 42, math.MaxInt} {
		if got := Dispatch(idx, f, u); got != want {
			t.Errorf("Dispatch(%d) = %v, want sun %v", idx, got, want)
		}
	}
}

func TestRingBand(t *testing.T) {
	tests := []struct {
		r    float64
		band int
		fade float64
	}{
		{0, 0, 1},
		{0.5, 0, 1},
		{0.55, 0, 0.6},
		{0.7, 1, 0.4},
		{0.8, 2, 0.6},
		{0.95, 3, 0.4},
		{1.05, 0, 0.6}, // wraps after four bands
	}
	for _, tc := range tests {
		band, fade := RingBand(tc.r)
		if band != tc.band || math.Abs(fade-tc.fade) > 1e-9 {
			t.Errorf("RingBand(%v) = %d, %v, want %d, %v", tc.r, band, fade, tc.band, tc.fade)
		}
	}
}

func TestRingSpanShowsEveryBand(t *testing.T) {
	seen := map[int]bool{}
	const steps = 400
	for i := range steps {
		r := RingInnerRadius + (1-RingInnerRadius)*float64(i)/steps
		band, _ := RingBand(r)
		if i == 0 && band != 0 {
			t.Errorf("inner edge in band %d, want 0", band)
		}
		seen[band] = true
	}
	if len(seen) != RingBands {
		t.Errorf("ring span covers bands %v, want all %d", seen, RingBands)
	}
}

func TestRingShader(t *testing.T) {
	u := render.NewUniforms(nil)
	// r = 0.7 lies in band 1, 60% into it.
	f := fragmentAt(math3d.V3(0.42, 5, 0.56), math3d.V3(0, 1, 0))
	got := Dispatch(Ring, f, u)
	want := render.FromHex(0x708090).Scale(0.4)
	if !near(got, want, 1e-9) {
		t.Errorf("ring = %v, want %v", got, want)
	}

	// The ring ignores lighting: flipping the normal changes nothing.
	f.Normal = math3d.V3(0, -1, 0)
	if again := Dispatch(Ring, f, u); again != got {
		t.Errorf("ring depends on normal: %v vs %v", again, got)
	}
}

func TestLocalLight(t *testing.T) {
	base := render.Color{R: 1, G: 0.5, B: 0.25}
	l := LocalLight{Position: math3d.V3(0, 10, 0), K1: 0.1, K2: 0.02, Ambient: 0.15}

	t.Run("facing light", func(t *testing.T) {
		f := fragmentAt(math3d.Zero3(), math3d.V3(0, 2, 0))
		att := 1 / (1 + 0.1*10 + 0.02*100)
		want := base.Scale(0.15 + att)
		if got := l.Apply(base, f); !near(got, want, 1e-12) {
			t.Errorf("Apply = %v, want %v", got, want)
		}
	})

	t.Run("facing away is ambient only", func(t *testing.T) {
		f := fragmentAt(math3d.Zero3(), math3d.V3(0, -1, 0))
		if got := l.Apply(base, f); !near(got, base.Scale(0.15), 1e-12) {
			t.Errorf("Apply = %v, want ambient %v", got, base.Scale(0.15))
		}
	})

	t.Run("no attenuation", func(t *testing.T) {
		flat := LocalLight{Position: math3d.V3(0, 100, 0), Ambient: 0.15}
		f := fragmentAt(math3d.Zero3(), math3d.V3(0, 1, 0))
		if got := flat.Apply(base, f); !near(got, base.Scale(1.15), 1e-12) {
			t.Errorf("Apply = %v, want %v", got, base.Scale(1.15))
		}
	})
}

func TestPointLight(t *testing.T) {
	base := render.Color{R: 0.2, G: 0.4, B: 0.6}
	l := Light{Position: math3d.Zero3(), Color: render.Color{R: 1, G: 1, B: 1}, Intensity: 3}

	t.Run("unlit side keeps base", func(t *testing.T) {
		f := fragmentAt(math3d.V3(5, 0, 0), math3d.V3(1, 0, 0))
		if got := l.Apply(base, f); got != base {
			t.Errorf("Apply = %v, want %v", got, base)
		}
	})

	t.Run("lit side blends toward light", func(t *testing.T) {
		f := fragmentAt(math3d.V3(5, 0, 0), math3d.V3(-1, 0, 0))
		att := 1 / (1 + 0.1*5 + 0.01*25)
		effect := l.Color.Scale(3 * att)
		want := base.Lerp(effect, 1)
		if got := l.Apply(base, f); !near(got, want, 1e-12) {
			t.Errorf("Apply = %v, want %v", got, want)
		}
	})
}

func TestPlanetMaterialsAreFinite(t *testing.T) {
	sampler := noise.New(noise.DefaultOptions())
	u := render.NewUniforms(sampler)
	u.Time = 37

	for _, idx := range []int{Mercury, Venus, Earth, Mars, Jupiter, Saturn, Uranus, Ring} {
		for i := range 50 {
			a := float64(i) * 0.37
			ref := math3d.V3(math.Cos(a), math.Sin(a*1.3), math.Sin(a))
			c := Dispatch(idx, fragmentAt(ref, ref), u)
			for _, ch := range []float64{c.R, c.G, c.B} {
				if math.IsNaN(ch) || math.IsInf(ch, 0) || ch < 0 {
					t.Fatalf("material %d at %v produced %v", idx, ref, c)
				}
			}
		}
	}
}

// stepNoise is 0 for x < 0.5 and 1 otherwise.
type stepNoise struct{}

func (stepNoise) Noise2(x, _ float64) float64 {
	if x < 0.5 {
		return 0
	}
	return 1
}
func (stepNoise) Noise3(x, _, _ float64) float64 { return 0 }

func TestUranusAnimatesWithTime(t *testing.T) {
	u := render.NewUniforms(stepNoise{})
	f := fragmentAt(math3d.Zero3(), math3d.V3(-1, 0, 0))

	still := Dispatch(Uranus, f, u)
	u.Time = 10
	moved := Dispatch(Uranus, f, u)
	if still == moved {
		t.Errorf("uranus did not change with time: %v", still)
	}
}

func TestMaterialsWithoutNoise(t *testing.T) {
	u := render.NewUniforms(nil)
	f := fragmentAt(math3d.V3(1, 0, 0), math3d.V3(1, 0, 0))
	// Venus with zero noise is its bare surface color.
	if got := Dispatch(Venus, f, u); got != render.RGB(218, 165, 32) {
		t.Errorf("venus = %v", got)
	}
	// Saturn with zero noise is 1.2 x warm yellow.
	if got, want := Dispatch(Saturn, f, u), render.RGB(255, 225, 180).Scale(1.2); !near(got, want, 1e-12) {
		t.Errorf("saturn = %v, want %v", got, want)
	}
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	u := render.NewUniforms(nil)
	f := render.Fragment{}

	if got := r.Shade(3, f, u); got != (render.Color{}) {
		t.Errorf("empty registry shaded %v, want black", got)
	}

	red := render.Color{R: 1}
	r.Register(0, Material{Name: "red", Shade: func(render.Fragment, *render.Uniforms) render.Color { return red }})
	if got := r.Shade(7, f, u); got != red {
		t.Errorf("fallback = %v, want %v", got, red)
	}
	if _, ok := r.Lookup(7); ok {
		t.Error("Lookup(7) found a material")
	}

	blue := render.Color{B: 1}
	r.Register(0, Material{Name: "blue", Shade: func(render.Fragment, *render.Uniforms) render.Color { return blue }})
	if got := r.Shader(0).Shade(f, u); got != blue {
		t.Errorf("replaced material = %v, want %v", got, blue)
	}

	if got := Default().Indices(); len(got) != 9 || got[0] != Sun || got[8] != Ring {
		t.Errorf("default indices = %v", got)
	}
}
