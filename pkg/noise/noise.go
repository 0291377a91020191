// Package noise provides the coherent noise field sampled by vertex
// displacement and the body materials.
package noise

import (
	"math"

	"github.com/ojrac/opensimplex-go"
)

// Options configures a Sampler.
type Options struct {
	Seed       int64   // Permutation seed
	Frequency  float64 // Input scale applied before sampling
	Octaves    int     // Number of fBm layers (1 = plain noise)
	Lacunarity float64 // Frequency multiplier per octave
	Gain       float64 // Amplitude multiplier per octave
}

// DefaultOptions returns a single-octave field at frequency 1.
func DefaultOptions() Options {
	return Options{
		Seed:       1337,
		Frequency:  1,
		Octaves:    1,
		Lacunarity: 2,
		Gain:       0.5,
	}
}

// Sampler is a read-only coherent noise field. After New returns it holds
// no mutable state, so one Sampler may be shared by every worker of a
// frame without locking.
type Sampler struct {
	src  opensimplex.Noise
	opts Options
	norm float64 // 1 / sum of octave amplitudes
}

// New builds a sampler. Zero-valued fields in opts fall back to
// DefaultOptions.
func New(opts Options) *Sampler {
	def := DefaultOptions()
	if opts.Frequency == 0 {
		opts.Frequency = def.Frequency
	}
	if opts.Octaves < 1 {
		opts.Octaves = def.Octaves
	}
	if opts.Lacunarity == 0 {
		opts.Lacunarity = def.Lacunarity
	}
	if opts.Gain == 0 {
		opts.Gain = def.Gain
	}

	var sum, amp float64 = 0, 1
	for range opts.Octaves {
		sum += amp
		amp *= opts.Gain
	}

	return &Sampler{
		src:  opensimplex.New(opts.Seed),
		opts: opts,
		norm: 1 / sum,
	}
}

// Options returns the configuration the sampler was built with.
func (s *Sampler) Options() Options {
	return s.opts
}

// Noise2 samples the 2D field. The result is in [-1, 1].
func (s *Sampler) Noise2(x, y float64) float64 {
	freq, amp := s.opts.Frequency, 1.0
	var v float64
	for range s.opts.Octaves {
		v += s.src.Eval2(x*freq, y*freq) * amp
		freq *= s.opts.Lacunarity
		amp *= s.opts.Gain
	}
	return clampUnit(v * s.norm)
}

// Noise3 samples the 3D field. The result is in [-1, 1].
func (s *Sampler) Noise3(x, y, z float64) float64 {
	freq, amp := s.opts.Frequency, 1.0
	var v float64
	for range s.opts.Octaves {
		v += s.src.Eval3(x*freq, y*freq, z*freq) * amp
		freq *= s.opts.Lacunarity
		amp *= s.opts.Gain
	}
	return clampUnit(v * s.norm)
}

func clampUnit(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(-1, math.Min(1, v))
}
