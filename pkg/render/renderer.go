package render

import (
	"image"

	"golang.org/x/sync/errgroup"
)

// Shader computes the color of a fragment. Implementations must be pure so
// that band workers can call them concurrently.
type Shader interface {
	Shade(f Fragment, u *Uniforms) Color
}

// ShaderFunc adapts a function to the Shader interface.
type ShaderFunc func(f Fragment, u *Uniforms) Color

// Shade calls fn.
func (fn ShaderFunc) Shade(f Fragment, u *Uniforms) Color {
	return fn(f, u)
}

// Stats counts pipeline work since the last ResetStats.
type Stats struct {
	Triangles int // Triangles submitted
	Dropped   int // Triangles dropped by a failed vertex transform
	Fragments int // Fragments produced by the rasterizer
	Writes    int // Fragments that passed the depth test
}

// Renderer runs the per-draw pipeline against one framebuffer.
type Renderer struct {
	fb      *Framebuffer
	workers int
	rule    EdgeRule
	stats   Stats
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithWorkers splits rasterization into n horizontal bands rendered
// concurrently. Values below 2 render sequentially.
func WithWorkers(n int) Option {
	return func(r *Renderer) {
		r.workers = max(n, 1)
	}
}

// WithEdgeRule selects how pixels on triangle edges are assigned.
func WithEdgeRule(rule EdgeRule) Option {
	return func(r *Renderer) {
		r.rule = rule
	}
}

// NewRenderer creates a renderer drawing into fb.
func NewRenderer(fb *Framebuffer, opts ...Option) *Renderer {
	r := &Renderer{fb: fb, workers: 1, rule: EdgeTopLeft}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Framebuffer returns the render target.
func (r *Renderer) Framebuffer() *Framebuffer { return r.fb }

// Workers returns the number of bands used per draw.
func (r *Renderer) Workers() int { return r.workers }

// Stats returns the counters accumulated since the last reset.
func (r *Renderer) Stats() Stats { return r.stats }

// ResetStats zeroes the counters.
func (r *Renderer) ResetStats() { r.stats = Stats{} }

// Resize replaces the framebuffer with a cleared one of the given size.
func (r *Renderer) Resize(width, height int) {
	r.fb = NewFramebuffer(width, height)
}

// Draw transforms vertices, groups them into triangles of three, and
// rasterizes, shades and depth-tests every triangle. Trailing vertices that
// do not form a whole triangle are ignored. A triangle with any vertex that
// fails to transform is dropped.
func (r *Renderer) Draw(vertices []Vertex, shader Shader, u *Uniforms) {
	count := len(vertices) / 3
	if count == 0 || r.fb.Width == 0 || r.fb.Height == 0 {
		return
	}
	r.stats.Triangles += count

	tf := newTransformer(u)
	tris := make([][3]Vertex, 0, count)
	for i := range count {
		var tri [3]Vertex
		ok := true
		for k := range 3 {
			v, vok := tf.apply(vertices[i*3+k])
			tri[k] = v
			ok = ok && vok
		}
		if !ok {
			r.stats.Dropped++
			continue
		}
		tris = append(tris, tri)
	}

	bands := r.bands()
	results := make([]Stats, len(bands))
	if len(bands) == 1 {
		results[0] = r.drawBand(tris, shader, u, bands[0])
	} else {
		var g errgroup.Group
		for i, band := range bands {
			g.Go(func() error {
				results[i] = r.drawBand(tris, shader, u, band)
				return nil
			})
		}
		_ = g.Wait()
	}

	for _, s := range results {
		r.stats.Fragments += s.Fragments
		r.stats.Writes += s.Writes
	}
}

// bands splits the framebuffer into disjoint horizontal strips, one per
// worker.
func (r *Renderer) bands() []image.Rectangle {
	n := min(r.workers, r.fb.Height)
	if n <= 1 {
		return []image.Rectangle{r.fb.Bounds()}
	}
	out := make([]image.Rectangle, 0, n)
	step := (r.fb.Height + n - 1) / n
	for y := 0; y < r.fb.Height; y += step {
		out = append(out, image.Rect(0, y, r.fb.Width, min(y+step, r.fb.Height)))
	}
	return out
}

// drawBand renders every triangle, in submission order, restricted to
// band. Only pixels inside band are read or written.
func (r *Renderer) drawBand(tris [][3]Vertex, shader Shader, u *Uniforms, band image.Rectangle) Stats {
	var s Stats
	for _, tri := range tris {
		for f := range Rasterize(tri[0], tri[1], tri[2], band, r.rule) {
			s.Fragments++
			// Early depth test; shaders are pure.
			if !r.fb.nearer(f.X, f.Y, f.Depth) {
				continue
			}
			if r.fb.Point(f.X, f.Y, f.Depth, shader.Shade(f, u).Hex()) {
				s.Writes++
			}
		}
	}
	return s
}
