package shade

import (
	"github.com/taigrr/orrery/pkg/math3d"
	"github.com/taigrr/orrery/pkg/render"
)

// LocalLight is the additive ambient plus Lambert model most planets use.
// K1 and K2 are the linear and quadratic attenuation terms; zero for both
// disables attenuation.
type LocalLight struct {
	Position math3d.Vec3
	K1, K2   float64
	Ambient  float64
}

// Apply lights base at the fragment's world position.
func (l LocalLight) Apply(base render.Color, f render.Fragment) render.Color {
	diff, d := diffuse(l.Position, f)
	att := 1 / (1 + l.K1*d + l.K2*d*d)
	return base.Scale(l.Ambient).Add(base.Scale(diff * att))
}

// Light is a colored point light. Apply blends the base color toward the
// light color in proportion to the diffuse term instead of adding to it.
type Light struct {
	Position  math3d.Vec3
	Color     render.Color
	Intensity float64
}

// SunLight is the point light at the center of the system.
var SunLight = Light{
	Position:  math3d.Zero3(),
	Color:     render.RGB(255, 255, 200),
	Intensity: 3.0,
}

const (
	pointLightK1 = 0.1
	pointLightK2 = 0.01
)

// Apply lights base at the fragment's world position.
func (l Light) Apply(base render.Color, f render.Fragment) render.Color {
	diff, d := diffuse(l.Position, f)
	att := 1 / (1 + pointLightK1*d + pointLightK2*d*d)
	effect := l.Color.Scale(diff * l.Intensity * att)
	return base.Lerp(effect, diff)
}

// diffuse returns the Lambert term for a light at world position pos and
// the distance from the fragment to the light.
func diffuse(pos math3d.Vec3, f render.Fragment) (diff, dist float64) {
	toLight := pos.Sub(f.World)
	dist = toLight.Len()
	diff = max(0, f.Normal.Normalize().Dot(toLight.Normalize()))
	return diff, dist
}
