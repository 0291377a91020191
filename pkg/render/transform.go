package render

import (
	"github.com/taigrr/orrery/pkg/math3d"
)

const (
	// DisplacementZoom scales object-space positions before sampling the
	// relief noise.
	DisplacementZoom = 5.0
	// DisplacementAmplitude scales the noise offset along the normal.
	DisplacementAmplitude = 0.5
)

// transformer caches the matrices derived from one set of uniforms so a
// draw call computes them once instead of per vertex.
type transformer struct {
	model    math3d.Mat4
	mvp      math3d.Mat4
	viewport math3d.Mat4
	normal   math3d.Mat3
	noise    Sampler
}

func newTransformer(u *Uniforms) transformer {
	return transformer{
		model:    u.Model,
		mvp:      u.Projection.Mul(u.View).Mul(u.Model),
		viewport: u.Viewport,
		normal:   math3d.NormalMatrix(u.Model),
		noise:    u.Noise,
	}
}

// TransformVertex displaces v along its normal by the relief noise, projects
// it to screen space and computes its shading normal. It reports false when
// the clip-space W is zero or the projection is not finite; callers drop
// the triangle in that case.
func TransformVertex(v Vertex, u *Uniforms) (Vertex, bool) {
	tf := newTransformer(u)
	return tf.apply(v)
}

func (tf *transformer) apply(v Vertex) (Vertex, bool) {
	pos := v.Position
	if tf.noise != nil {
		d := tf.noise.Noise3(
			pos.X*DisplacementZoom,
			pos.Y*DisplacementZoom,
			pos.Z*DisplacementZoom,
		)
		pos = pos.Add(v.Normal.Scale(d * DisplacementAmplitude))
	}

	clip := tf.mvp.MulVec4(math3d.V4FromV3(pos, 1))
	ndc, ok := clip.PerspectiveDivide()
	if !ok {
		return v, false
	}

	screen := tf.viewport.MulVec4(math3d.V4FromV3(ndc, 1))

	out := v
	out.Transformed = screen.Vec3()
	out.TransformedNormal = tf.normal.MulVec3(v.Normal)
	out.World = tf.model.MulVec3(pos)
	return out, out.Transformed.IsFinite()
}
