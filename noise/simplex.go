package noise

import (
	"math"

	opensimplex "github.com/ojrac/opensimplex-go"
)

// SimplexField wraps github.com/ojrac/opensimplex-go for the initial
// alpha/beta/gamma noise generators of the environment-init record
// (gen_params type=1). It is kept separate from Field (the rain
// generator) because the environment-init generators want a 2-D tiled
// field, not the epoch-indexed 3-D rain axis.
type SimplexField struct {
	noise opensimplex.Noise
}

// NewSimplexField builds a generator seeded deterministically.
func NewSimplexField(seed int64) *SimplexField {
	return &SimplexField{noise: opensimplex.New(seed)}
}

// Eval2D returns a value in [0,1] at (x,y).
func (s *SimplexField) Eval2D(x, y float64) float64 {
	return (s.noise.Eval2(x, y) + 1) * 0.5
}

// Layered2D sums octaves octaves of Eval2D at doubling frequency, halving
// amplitude, normalized into [0,1], then raised to contrast.
func (s *SimplexField) Layered2D(x, y float64, octaves int, scale, contrast float64) float64 {
	if octaves < 1 {
		octaves = 1
	}
	var sum, amp, norm float64
	freq := scale
	amp = 1.0
	for i := 0; i < octaves; i++ {
		sum += s.Eval2D(x*freq, y*freq) * amp
		norm += amp
		amp *= 0.5
		freq *= 2.0
	}
	v := sum / norm
	if contrast != 1.0 && v > 0 {
		v = math.Pow(v, contrast)
	}
	return v
}
