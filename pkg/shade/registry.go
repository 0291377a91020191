// Package shade holds the material registry and the procedural materials
// of the solar system bodies.
package shade

import (
	"sort"
	"sync"

	"github.com/taigrr/orrery/pkg/render"
)

// Func computes a color for one fragment. It must be pure.
type Func func(f render.Fragment, u *render.Uniforms) render.Color

// Material is a named shading function with an emission strength.
type Material struct {
	Name     string
	Emission int
	Shade    Func
}

func black(render.Fragment, *render.Uniforms) render.Color { return render.Color{} }

// Registry maps material identifiers to materials. Lookups of unknown
// identifiers fall back to identifier 0.
type Registry struct {
	mu        sync.RWMutex
	materials map[int]Material
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{materials: make(map[int]Material)}
}

// Register adds m under index, replacing any existing entry.
func (r *Registry) Register(index int, m Material) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.materials[index] = m
}

// Lookup returns the material registered under index without fallback.
func (r *Registry) Lookup(index int) (Material, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.materials[index]
	return m, ok
}

// Material returns the material for index, or the fallback material when
// index is unknown. With an empty registry it returns a material that
// shades black.
func (r *Registry) Material(index int) Material {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.materials[index]
	if !ok {
		m = r.materials[Sun]
	}
	if m.Shade == nil {
		m.Shade = black
	}
	return m
}

// Indices returns the registered identifiers in ascending order.
func (r *Registry) Indices() []int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]int, 0, len(r.materials))
	for i := range r.materials {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

// Shade colors f with the material for index.
func (r *Registry) Shade(index int, f render.Fragment, u *render.Uniforms) render.Color {
	return r.Material(index).Shade(f, u)
}

// Shader resolves index once and returns the material as a render.Shader,
// so a draw call does not touch the registry per fragment.
func (r *Registry) Shader(index int) render.Shader {
	return render.ShaderFunc(r.Material(index).Shade)
}

var defaultRegistry = newDefaultRegistry()

// Default returns the registry holding the solar system materials.
func Default() *Registry { return defaultRegistry }

// Dispatch shades f with material index from the default registry. It is
// total: unknown indices use the sun material.
func Dispatch(index int, f render.Fragment, u *render.Uniforms) render.Color {
	return defaultRegistry.Shade(index, f, u)
}

func newDefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(Sun, Material{Name: "sun", Emission: SunEmission, Shade: sunShader})
	r.Register(Mercury, Material{Name: "mercury", Shade: mercuryShader})
	r.Register(Venus, Material{Name: "venus", Shade: venusShader})
	r.Register(Earth, Material{Name: "earth", Shade: earthShader})
	r.Register(Mars, Material{Name: "mars", Shade: marsShader})
	r.Register(Jupiter, Material{Name: "jupiter", Shade: jupiterShader})
	r.Register(Saturn, Material{Name: "saturn", Shade: saturnShader})
	r.Register(Uranus, Material{Name: "uranus", Shade: uranusShader})
	r.Register(Ring, Material{Name: "ring", Shade: ringShader})
	return r
}
