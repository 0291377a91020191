package scene

import (
	"fmt"
	"math"
	"strings"

	"github.com/taigrr/orrery/pkg/math3d"
	"github.com/taigrr/orrery/pkg/models"
	"github.com/taigrr/orrery/pkg/render"
	"github.com/taigrr/orrery/pkg/shade"
)

// Fixed camera placements.
var (
	overviewEye  = math3d.V3(50, 100, 250)
	birdsEyeEye  = math3d.V3(0, 500, 200)
	systemCenter = math3d.Zero3()
)

// Options controls scene construction.
type Options struct {
	SphereStacks  int
	SphereSlices  int
	OrbitSegments int
	OrbitColor    uint32
	Background    uint32
	FPS           int

	// RingScales lists the size of each ring instance relative to the
	// body radius. One draw is issued per entry.
	RingScales []float64
	RingInner  float64 // Inner radius of the ring mesh, outer is 1

	// BodyMesh replaces the procedural sphere when set. The scene draws a
	// copy centered and scaled to unit radius.
	BodyMesh *models.Mesh
}

// DefaultOptions returns the settings used by the CLI.
func DefaultOptions() Options {
	return Options{
		SphereStacks:  16,
		SphereSlices:  24,
		OrbitSegments: 100,
		OrbitColor:    0xAAAAAA,
		Background:    0x000000,
		FPS:           30,
		RingScales:    []float64{1.9, 2.4},
		RingInner:     shade.RingInnerRadius,
	}
}

// FrameStats summarizes one Frame call.
type FrameStats struct {
	Drawn  int
	Culled int
	Render render.Stats
}

// Scene owns the bodies, the camera and the prepared vertex arrays.
type Scene struct {
	Bodies []Body
	Camera *Camera

	opts     Options
	noise    render.Sampler
	registry *shade.Registry
	sphere   []render.Vertex
	ring     []render.Vertex

	frame     int
	focus     int // index into Bodies, -1 for none
	birdsEye  bool
	wireframe bool
}

// wireColor is the line color of bodies in wireframe mode.
const wireColor = 0x00FF80

// New prepares the meshes and places the camera at the overview position.
func New(bodies []Body, opts Options, noise render.Sampler, registry *shade.Registry) (*Scene, error) {
	if len(bodies) == 0 {
		return nil, fmt.Errorf("scene has no bodies")
	}
	if registry == nil {
		registry = shade.Default()
	}

	for _, b := range bodies {
		if _, ok := registry.Lookup(b.Material); !ok {
			return nil, fmt.Errorf("body %s: material %d not registered", b.Name, b.Material)
		}
		if _, ok := registry.Lookup(shade.Ring); b.Rings && !ok {
			return nil, fmt.Errorf("body %s: ring material not registered", b.Name)
		}
	}

	var body *models.Mesh
	if opts.BodyMesh != nil {
		body = opts.BodyMesh.Clone()
		body.Normalize()
	} else {
		body = models.NewUVSphere(opts.SphereStacks, opts.SphereSlices)
	}
	ring, err := models.NewRing(opts.RingInner, 1, opts.SphereSlices*2)
	if err != nil {
		return nil, fmt.Errorf("ring mesh: %w", err)
	}

	white := render.Color{R: 1, G: 1, B: 1}
	return &Scene{
		Bodies:   bodies,
		Camera:   NewCamera(overviewEye, systemCenter, opts.FPS),
		opts:     opts,
		noise:    noise,
		registry: registry,
		sphere:   body.VertexArray(white),
		ring:     ring.VertexArray(white),
		focus:    -1,
	}, nil
}

// Time returns the current frame counter.
func (s *Scene) Time() int { return s.frame }

// Step advances time by one frame and moves the camera.
func (s *Scene) Step() {
	s.frame++
	s.Camera.Update()
}

// Focused returns the focused body, if any.
func (s *Scene) Focused() (Body, bool) {
	if s.focus < 0 {
		return Body{}, false
	}
	return s.Bodies[s.focus], true
}

// ViewName describes the current view for status lines.
func (s *Scene) ViewName() string {
	switch {
	case s.focus >= 0:
		return s.Bodies[s.focus].Name
	case s.birdsEye:
		return "birds-eye"
	default:
		return "overview"
	}
}

// Focus flies the camera to body i and renders it alone. Focusing the
// already focused body returns to the overview.
func (s *Scene) Focus(i int) {
	if i < 0 || i >= len(s.Bodies) {
		return
	}
	if s.focus == i {
		s.Overview()
		return
	}
	b := s.Bodies[i]
	s.focus = i
	s.birdsEye = false
	s.Camera.MoveTo(
		math3d.V3(b.Distance+20, b.Radius*2, 0),
		math3d.V3(b.Distance, 0, 0),
	)
}

// FocusKey focuses the body bound to key. It reports whether any body
// uses the key.
func (s *Scene) FocusKey(key string) bool {
	for i, b := range s.Bodies {
		if b.Key != "" && b.Key == key {
			s.Focus(i)
			return true
		}
	}
	return false
}

// FocusName focuses the body with the given name, ignoring case.
func (s *Scene) FocusName(name string) error {
	for i, b := range s.Bodies {
		if strings.EqualFold(b.Name, name) {
			if s.focus != i {
				s.Focus(i)
			}
			return nil
		}
	}
	return fmt.Errorf("unknown body %q", name)
}

// ToggleWireframe switches bodies between shaded and wireframe drawing.
func (s *Scene) ToggleWireframe() { s.wireframe = !s.wireframe }

// Overview returns to the default view of the whole system.
func (s *Scene) Overview() {
	s.focus = -1
	s.birdsEye = false
	s.Camera.MoveTo(overviewEye, systemCenter)
}

// BirdsEye toggles the high view from above the system.
func (s *Scene) BirdsEye() {
	if s.birdsEye {
		s.Overview()
		return
	}
	s.focus = -1
	s.birdsEye = true
	s.Camera.MoveTo(birdsEyeEye, systemCenter)
}

// uniforms builds the per-frame parameters for r's framebuffer.
func (s *Scene) uniforms(fb *render.Framebuffer) *render.Uniforms {
	aspect := 1.0
	if fb.Height > 0 {
		aspect = float64(fb.Width) / float64(fb.Height)
	}
	u := render.NewUniforms(s.noise)
	u.View = s.Camera.View()
	u.Projection = s.Camera.Projection(aspect)
	u.Viewport = math3d.Viewport(float64(fb.Width), float64(fb.Height))
	u.Time = s.frame
	return u
}

// Frame clears the framebuffer and draws the current frame.
func (s *Scene) Frame(r *render.Renderer) FrameStats {
	fb := r.Framebuffer()
	fb.Clear(s.opts.Background)
	r.ResetStats()

	u := s.uniforms(fb)
	frustum := render.NewFrustumFromMatrix(u.Projection.Mul(u.View))

	wire := render.NewWireframe(fb, u)

	var stats FrameStats
	if b, ok := s.Focused(); ok {
		s.drawBody(r, u, b, math3d.V3(b.Distance, 0, 0))
		stats.Drawn++
	} else {
		for _, b := range s.Bodies {
			if b.Distance > 0 {
				s.drawOrbit(wire, b.Distance)
			}
			pos := b.Position(s.frame)
			if !frustum.IntersectsSphere(pos, s.boundingRadius(b)) {
				stats.Culled++
				continue
			}
			s.drawBody(r, u, b, pos)
			stats.Drawn++
		}
	}
	stats.Render = r.Stats()
	return stats
}

// boundingRadius covers the displaced sphere and any rings.
func (s *Scene) boundingRadius(b Body) float64 {
	r := b.Radius * (1 + render.DisplacementAmplitude)
	if b.Rings {
		for _, k := range s.opts.RingScales {
			r = math.Max(r, b.Radius*k)
		}
	}
	return r
}

func (s *Scene) drawBody(r *render.Renderer, u *render.Uniforms, b Body, pos math3d.Vec3) {
	draw := func(vertices []render.Vertex, material int, scale float64) {
		mu := u.WithModel(math3d.Model(pos, scale, math3d.Zero3()))
		if s.wireframe {
			render.NewWireframe(r.Framebuffer(), mu).Triangles(vertices, wireColor)
			return
		}
		r.Draw(vertices, s.registry.Shader(material), mu)
	}

	draw(s.sphere, b.Material, b.Radius)
	if b.Rings {
		for _, k := range s.opts.RingScales {
			draw(s.ring, shade.Ring, b.Radius*k)
		}
	}
}

// drawOrbit draws the orbit circle as a projected polyline.
func (s *Scene) drawOrbit(w *render.Wireframe, radius float64) {
	segments := max(s.opts.OrbitSegments, 3)
	points := make([]math3d.Vec3, segments)
	for i := range points {
		a := 2 * math.Pi * float64(i) / float64(segments)
		points[i] = math3d.V3(radius*math.Cos(a), 0, radius*math.Sin(a))
	}
	w.Polyline(points, true, s.opts.OrbitColor)
}
