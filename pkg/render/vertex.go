package render

import (
	"github.com/taigrr/orrery/pkg/math3d"
)

// Vertex carries the object-space attributes of a mesh vertex and, once
// TransformVertex has produced it, the screen-space position and shading
// normal. Vertices are plain values; transforming one yields a new value.
type Vertex struct {
	Position  math3d.Vec3 // Object-space position
	Normal    math3d.Vec3 // Object-space normal
	TexCoords math3d.Vec2 // Texture coordinates (carried, not sampled)
	Color     Color       // Base color

	Transformed       math3d.Vec3 // Screen x, screen y, depth
	TransformedNormal math3d.Vec3 // World-space shading normal
	World             math3d.Vec3 // World-space displaced position
}

// Fragment is one covered pixel of one triangle. It is produced by
// Rasterize and consumed immediately by a Shader and the framebuffer.
type Fragment struct {
	X, Y      int         // Pixel coordinates
	Color     Color       // Interpolated base color
	Depth     float64     // Interpolated depth
	Normal    math3d.Vec3 // Interpolated shading normal (not normalized)
	Intensity float64     // Reserved; the rasterizer leaves it at zero
	Reference math3d.Vec3 // Interpolated object-space position for surface patterns
	World     math3d.Vec3 // Interpolated world-space position for lighting
}
