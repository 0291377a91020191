// Package scene builds and renders the solar system: the bodies table, the
// spring-driven camera and the per-frame draw calls.
package scene

import (
	"math"

	"github.com/taigrr/orrery/pkg/math3d"
	"github.com/taigrr/orrery/pkg/shade"
)

// Body is one sphere of the system, circling the origin in the XZ plane.
type Body struct {
	Name       string
	Key        string  // Keyboard shortcut that focuses the body
	Distance   float64 // Orbit radius
	Radius     float64
	OrbitSpeed float64 // Radians per frame
	Material   int
	Rings      bool
}

// Position returns the body's center at the given frame.
func (b Body) Position(frame int) math3d.Vec3 {
	a := b.OrbitSpeed * float64(frame)
	return math3d.V3(b.Distance*math.Cos(a), 0, b.Distance*math.Sin(a))
}

// SolarSystem is the default bodies table: the sun and seven planets.
var SolarSystem = []Body{
	{Name: "Sun", Distance: 0, Radius: 3.0, OrbitSpeed: 0, Material: shade.Sun},
	{Name: "Mercury", Key: "m", Distance: 20, Radius: 0.5, OrbitSpeed: 0.003, Material: shade.Mercury},
	{Name: "Venus", Key: "v", Distance: 40, Radius: 0.8, OrbitSpeed: 0.005, Material: shade.Venus},
	{Name: "Earth", Key: "e", Distance: 60, Radius: 1.0, OrbitSpeed: 0.007, Material: shade.Earth},
	{Name: "Mars", Key: "r", Distance: 80, Radius: 0.7, OrbitSpeed: 0.009, Material: shade.Mars},
	{Name: "Jupiter", Key: "j", Distance: 100, Radius: 2.0, OrbitSpeed: 0.001, Material: shade.Jupiter},
	{Name: "Saturn", Key: "n", Distance: 120, Radius: 1.8, OrbitSpeed: 0.003, Material: shade.Saturn, Rings: true},
	{Name: "Uranus", Key: "u", Distance: 140, Radius: 1.5, OrbitSpeed: 0.005, Material: shade.Uranus},
}
