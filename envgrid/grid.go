// Package envgrid implements the environment grids (alpha/beta/gamma,
// derived slope, RGB trail) and their diffusion kernels.
package envgrid

import "math"

// Grid holds the three scalar fields, their derived slope, and the trail
// field, all at a fixed square resolution R, indexed row-major.
type Grid struct {
	R int // resolution

	Alpha []float32
	Beta  []float32
	Gamma []float32

	SlopeX []float32
	SlopeY []float32

	TrailR []float32
	TrailG []float32
	TrailB []float32

	// WorldSize is the world-space span the grid covers (spec's grid_size).
	WorldSize float64
}

// New allocates a grid of resolution r covering a world-space span of
// worldSize, all channels zeroed.
func New(r int, worldSize float64) *Grid {
	n := r * r
	return &Grid{
		R:         r,
		Alpha:     make([]float32, n),
		Beta:      make([]float32, n),
		Gamma:     make([]float32, n),
		SlopeX:    make([]float32, n),
		SlopeY:    make([]float32, n),
		TrailR:    make([]float32, n),
		TrailG:    make([]float32, n),
		TrailB:    make([]float32, n),
		WorldSize: worldSize,
	}
}

// Idx returns the row-major index for a clamped (x,y) cell coordinate. No
// cell reads index -1 or R: both axes are clamped to [0, R).
func (g *Grid) Idx(x, y int) int {
	if x < 0 {
		x = 0
	} else if x >= g.R {
		x = g.R - 1
	}
	if y < 0 {
		y = 0
	} else if y >= g.R {
		y = g.R - 1
	}
	return y*g.R + x
}

// WorldToCell maps a world-space position to a clamped cell coordinate.
func (g *Grid) WorldToCell(wx, wy float32) (int, int) {
	cellSize := g.WorldSize / float64(g.R)
	cx := int(float64(wx) / cellSize)
	cy := int(float64(wy) / cellSize)
	if cx < 0 {
		cx = 0
	} else if cx >= g.R {
		cx = g.R - 1
	}
	if cy < 0 {
		cy = 0
	} else if cy >= g.R {
		cy = g.R - 1
	}
	return cx, cy
}

// SampleBilinear bilinearly samples a channel at a world-space position,
// clamping at the grid boundary (no toroidal wrap: the simulation world is
// a fixed [0,W]x[0,W] rectangle, not a torus).
func (g *Grid) SampleBilinear(channel []float32, wx, wy float32) float32 {
	cellSize := g.WorldSize / float64(g.R)
	fx := float64(wx)/cellSize - 0.5
	fy := float64(wy)/cellSize - 0.5

	x0 := int(math.Floor(fx))
	y0 := int(math.Floor(fy))
	tx := float32(fx - float64(x0))
	ty := float32(fy - float64(y0))

	v00 := channel[g.Idx(x0, y0)]
	v10 := channel[g.Idx(x0+1, y0)]
	v01 := channel[g.Idx(x0, y0+1)]
	v11 := channel[g.Idx(x0+1, y0+1)]

	top := v00 + (v10-v00)*tx
	bot := v01 + (v11-v01)*tx
	return top + (bot-top)*ty
}

// AddClamped adds delta to channel[idx] and clamps the result to [0,1].
// Grid writes inside process_agents are small additive/transfer
// operations tolerated as a benign race across lanes (spec §5); this
// helper performs the plain (non-atomic) read-modify-write the spec
// explicitly allows.
func AddClamped(channel []float32, idx int, delta float32) {
	v := channel[idx] + delta
	if v < 0 {
		v = 0
	} else if v > 1 {
		v = 1
	}
	channel[idx] = v
}

// Clamp01 clamps v to [0,1].
func Clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// ClampAll clamps alpha/beta/gamma/trail channels to [0,1]. Slope is left
// unbounded but stays small in practice.
func (g *Grid) ClampAll() {
	for i := range g.Alpha {
		g.Alpha[i] = Clamp01(g.Alpha[i])
		g.Beta[i] = Clamp01(g.Beta[i])
		g.Gamma[i] = Clamp01(g.Gamma[i])
		g.TrailR[i] = Clamp01(g.TrailR[i])
		g.TrailG[i] = Clamp01(g.TrailG[i])
		g.TrailB[i] = Clamp01(g.TrailB[i])
	}
}
