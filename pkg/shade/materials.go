package shade

import (
	"math"

	"github.com/taigrr/orrery/pkg/math3d"
	"github.com/taigrr/orrery/pkg/render"
)

// Material identifiers of the solar system.
const (
	Sun = iota
	Mercury
	Venus
	Earth
	Mars
	Jupiter
	Saturn
	Uranus
	Ring
)

// SunEmission is the emission strength of the sun material.
const SunEmission = 100

// Ring banding. The ring mesh spans radii RingInnerRadius to 1, and the
// band width splits that span into RingBands bands, so band 0 starts at the
// inner edge.
const (
	RingBands       = 4
	RingInnerRadius = 0.5
	RingBandWidth   = (1 - RingInnerRadius) / RingBands
)

// RingPalette holds one color per ring band, innermost first.
var RingPalette = [RingBands]render.Color{
	render.FromHex(0xB0C4DE),
	render.FromHex(0x708090),
	render.FromHex(0xA9A9A9),
	render.FromHex(0xF5F5DC),
}

var sunColor = render.Color{R: 1, G: 0.9, B: 0.5}

var (
	mercuryLight = LocalLight{Position: math3d.Zero3(), K1: 0.1, K2: 0.02, Ambient: 0.15}
	marsLight    = LocalLight{Position: math3d.V3(0, 8, 9), Ambient: 0.15}
	jupiterLight = LocalLight{Position: math3d.V3(-10, 8, 9), Ambient: 0.15}
	uranusLight  = LocalLight{Position: math3d.V3(-20, 8, 9), K1: 0.1, K2: 0.02, Ambient: 0.2}
)

func noise2(u *render.Uniforms, x, y float64) float64 {
	if u == nil || u.Noise == nil {
		return 0
	}
	return u.Noise.Noise2(x, y)
}

func noise3(u *render.Uniforms, x, y, z float64) float64 {
	if u == nil || u.Noise == nil {
		return 0
	}
	return u.Noise.Noise3(x, y, z)
}

// ramp blends a to b over [0, 0.5) and b to c over [0.5, 1] of the
// clamped sample t.
func ramp(a, b, c render.Color, t float64) render.Color {
	t = math.Max(0, math.Min(1, t))
	if t < 0.5 {
		return a.Lerp(b, t*2)
	}
	return b.Lerp(c, (t-0.5)*2)
}

func sunShader(render.Fragment, *render.Uniforms) render.Color {
	return sunColor
}

func mercuryShader(f render.Fragment, u *render.Uniforms) render.Color {
	var (
		base      = render.RGB(169, 169, 169)
		crater    = render.RGB(105, 105, 105)
		highlight = render.RGB(200, 200, 200)
	)
	p := f.Reference
	n := noise2(u, p.X*20, p.Y*20)

	var c render.Color
	if n < -0.2 {
		c = crater.Lerp(base, n+0.2)
	} else {
		c = base.Lerp(highlight, n)
	}
	return mercuryLight.Apply(c, f)
}

func venusShader(f render.Fragment, u *render.Uniforms) render.Color {
	var (
		surface = render.RGB(218, 165, 32)
		cloud   = render.RGB(255, 228, 181)
	)
	p := f.Reference
	return surface.Lerp(cloud, math.Abs(noise2(u, p.X*8, p.Y*8)))
}

func earthShader(f render.Fragment, u *render.Uniforms) render.Color {
	var (
		land      = render.RGB(34, 139, 34)
		ocean     = render.RGB(30, 144, 255)
		deepOcean = render.RGB(25, 105, 210)
		snow      = render.RGB(255, 250, 250)
		cloud     = render.RGB(255, 255, 255)
	)
	p := f.Reference
	n := noise3(u, p.X*15, p.Y*15, p.Z*15)

	var surface render.Color
	switch {
	case n < -0.3:
		surface = ocean.Lerp(deepOcean, (n+0.3)/0.3)
	case n > 0.7:
		surface = land.Lerp(snow, (n-0.7)/0.3)
	default:
		surface = ocean.Lerp(land, n+0.3)
	}

	clouds := cloud.Scale(cloudLayer(u, p, 10, 0.3)).Add(cloud.Scale(cloudLayer(u, p, 8, 0.4)))
	return SunLight.Apply(surface.Lerp(clouds, 0.5), f)
}

// cloudLayer samples a domain-warped cloud field and returns its opacity
// in [0, 1].
func cloudLayer(u *render.Uniforms, p math3d.Vec3, zoom, warp float64) float64 {
	dx := noise2(u, p.X*zoom, p.Y*zoom) * warp
	dz := noise2(u, p.Z*zoom, p.Y*zoom) * warp
	n := noise3(u, p.X*zoom+dx, p.Y*zoom, p.Z*zoom+dz)
	return math.Max(0, math.Min(1, n*0.5+0.5))
}

func marsShader(f render.Fragment, u *render.Uniforms) render.Color {
	c := ramp(
		render.Color{R: 0.4, G: 0.1, B: 0.1},
		render.Color{R: 0.6, G: 0.3, B: 0.1},
		render.Color{R: 0.8, G: 0.4, B: 0.1},
		noise2(u, f.Reference.X, f.Reference.Y),
	)
	return marsLight.Apply(c, f)
}

func jupiterShader(f render.Fragment, u *render.Uniforms) render.Color {
	c := ramp(
		render.Color{R: 1, G: 0.71, B: 0.76},
		render.Color{R: 0.87, G: 0.63, B: 0.87},
		render.Color{R: 1, G: 1, B: 1},
		noise2(u, f.Reference.X, f.Reference.Y),
	)
	return jupiterLight.Apply(c, f)
}

func saturnShader(f render.Fragment, u *render.Uniforms) render.Color {
	p := f.Reference
	c := ramp(
		render.RGB(255, 225, 180),
		render.RGB(255, 200, 150),
		render.RGB(240, 230, 210),
		noise2(u, p.X*10, p.Y*10),
	)
	return c.Scale(0.2).Add(c)
}

func uranusShader(f render.Fragment, u *render.Uniforms) render.Color {
	var time float64
	if u != nil {
		time = float64(u.Time)
	}
	p := f.Reference
	c := ramp(
		render.RGB(173, 216, 230),
		render.RGB(0, 255, 255),
		render.RGB(240, 248, 255),
		noise2(u, p.X*8+time*0.1, p.Y*8),
	)
	return uranusLight.Apply(c, f)
}

// RingBand returns the palette index and the edge fade for a radial
// distance r from the ring center.
func RingBand(r float64) (band int, fade float64) {
	q := r / RingBandWidth
	band = int(math.Floor(q)) % RingBands
	if band < 0 {
		band += RingBands
	}
	fade = math.Max(0, math.Min(1, 1-(q-math.Floor(q))))
	return band, fade
}

func ringShader(f render.Fragment, _ *render.Uniforms) render.Color {
	r := math.Hypot(f.Reference.X, f.Reference.Z)
	band, fade := RingBand(r)
	return RingPalette[band].Scale(fade)
}
