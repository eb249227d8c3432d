package envgrid

import (
	"math"

	"github.com/ribossome/ribossome/config"
	"github.com/ribossome/ribossome/noise"
)

// Seed populates a freshly-allocated grid from an environment-init record
// (spec §6 "Environment-init record"): either flat values or layered
// simplex noise per channel, plus the gen_params generator list applied in
// order.
func Seed(g *Grid, init config.EnvironmentInit) {
	alphaNoise := noise.NewSimplexField(init.Seed + 1)
	betaNoise := noise.NewSimplexField(init.Seed + 2)
	gammaNoise := noise.NewSimplexField(init.Seed + 3)

	lo, hi := init.AlphaRange[0], init.AlphaRange[1]
	for y := 0; y < g.R; y++ {
		for x := 0; x < g.R; x++ {
			idx := y*g.R + x
			n := alphaNoise.Layered2D(float64(x), float64(y), init.AlphaOctaves, init.AlphaScale/float64(g.R), init.AlphaContrast)
			g.Alpha[idx] = float32(lo + n*(hi-lo))
		}
	}

	lo, hi = init.BetaRange[0], init.BetaRange[1]
	for y := 0; y < g.R; y++ {
		for x := 0; x < g.R; x++ {
			idx := y*g.R + x
			n := betaNoise.Layered2D(float64(x), float64(y), init.BetaOctaves, init.BetaScale/float64(g.R), init.BetaContrast)
			g.Beta[idx] = float32(lo + n*(hi-lo))
		}
	}

	lo, hi = init.GammaRange[0], init.GammaRange[1]
	for y := 0; y < g.R; y++ {
		for x := 0; x < g.R; x++ {
			idx := y*g.R + x
			n := gammaNoise.Layered2D(float64(x), float64(y), init.GammaOctaves, init.GammaScale/float64(g.R), init.GammaContrast)
			g.Gamma[idx] = float32(lo + n*(hi-lo))
		}
	}

	for i := range g.TrailR {
		g.TrailR[i] = float32(init.TrailInitialColor[0])
		g.TrailG[i] = float32(init.TrailInitialColor[1])
		g.TrailB[i] = float32(init.TrailInitialColor[2])
	}

	for _, gp := range init.Generators {
		applyGenerator(g, gp, init)
	}

	RecomputeSlope(g, 0, 0)
}

// applyGenerator applies one gen_params triple: flat fill or noise
// overwrite, scoped to the requested channel mode.
func applyGenerator(g *Grid, gp config.GenParams, init config.EnvironmentInit) {
	var target []float32
	switch gp.Mode {
	case 1:
		target = g.Alpha
	case 2:
		target = g.Beta
	case 3:
		target = g.Gamma
	default:
		// mode 0: all channels
	}

	apply := func(channel []float32, octaves int, scale, contrast float64) {
		field := noise.NewSimplexField(gp.Seed)
		for y := 0; y < g.R; y++ {
			for x := 0; x < g.R; x++ {
				idx := y*g.R + x
				if gp.Type == 1 {
					channel[idx] = float32(field.Layered2D(float64(x), float64(y), octaves, scale/float64(g.R), contrast))
				} else {
					channel[idx] = math.Float32frombits(gp.ValueBits)
				}
			}
		}
	}

	switch gp.Mode {
	case 1:
		apply(target, init.AlphaOctaves, init.AlphaScale, init.AlphaContrast)
	case 2:
		apply(target, init.BetaOctaves, init.BetaScale, init.BetaContrast)
	case 3:
		apply(target, init.GammaOctaves, init.GammaScale, init.GammaContrast)
	default:
		apply(g.Alpha, init.AlphaOctaves, init.AlphaScale, init.AlphaContrast)
		apply(g.Beta, init.BetaOctaves, init.BetaScale, init.BetaContrast)
		apply(g.Gamma, init.GammaOctaves, init.GammaScale, init.GammaContrast)
	}
}

