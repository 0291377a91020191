package render

import (
	"github.com/taigrr/orrery/pkg/math3d"
)

// Sampler is the coherent noise capability shared by vertex displacement
// and materials. Both queries return values in [-1, 1] and must be safe
// for concurrent use.
type Sampler interface {
	Noise2(x, y float64) float64
	Noise3(x, y, z float64) float64
}

// Uniforms are the per-frame parameters shared by every vertex and
// fragment of a draw call. A draw treats them as read-only.
type Uniforms struct {
	Model      math3d.Mat4
	View       math3d.Mat4
	Projection math3d.Mat4
	Viewport   math3d.Mat4
	Time       int
	Noise      Sampler
}

// NewUniforms returns uniforms with identity transforms.
func NewUniforms(noise Sampler) *Uniforms {
	return &Uniforms{
		Model:      math3d.Identity(),
		View:       math3d.Identity(),
		Projection: math3d.Identity(),
		Viewport:   math3d.Identity(),
		Noise:      noise,
	}
}

// WithModel returns a copy of u with only the model matrix replaced. The
// noise sampler is shared, not copied. Instanced draws use this to vary
// placement without touching the frame's uniforms.
func (u *Uniforms) WithModel(model math3d.Mat4) *Uniforms {
	c := *u
	c.Model = model
	return &c
}
