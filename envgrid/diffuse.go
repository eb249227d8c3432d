package envgrid

import "github.com/ribossome/ribossome/noise"

// DiffuseParams carries the subset of config.Params the diffusion kernel
// needs, decoupled from the config package to avoid an import cycle with
// the orchestrator.
type DiffuseParams struct {
	AlphaBlur               float32
	BetaBlur                float32
	GammaBlur               float32
	AlphaSlopeBias          float32
	BetaSlopeBias           float32
	AlphaMultiplier         float32
	BetaMultiplier          float32
	ChemicalSlopeScaleAlpha float32
	ChemicalSlopeScaleBeta  float32
	PerlinNoiseScale        float64
	PerlinNoiseSpeed        float64
	PerlinNoiseContrast     float64
	Epoch                   int64
}

// rainOctaves is the octave count for the layered value noise driving rain;
// spec's noise-octaves knob is reserved for the environment-init generators
// (config.GenParams), not the rain field.
const rainOctaves = 4

// RainFields holds the two independent 3-D noise generators used for the
// stochastic alpha/beta rain (spec §4.6: seeds 12345 and 67890).
type RainFields struct {
	Alpha *noise.Field
	Beta  *noise.Field
}

// NewRainFields builds the two rain generators with their fixed seeds.
func NewRainFields() *RainFields {
	return &RainFields{
		Alpha: noise.NewField(12345),
		Beta:  noise.NewField(67890),
	}
}

func mean3x3(g *Grid, channel []float32, x, y int) float32 {
	var sum float32
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			sum += channel[g.Idx(x+dx, y+dy)]
		}
	}
	return sum / 9
}

func blurChannel(g *Grid, channel []float32, rate float32) {
	out := make([]float32, len(channel))
	for y := 0; y < g.R; y++ {
		for x := 0; x < g.R; x++ {
			idx := g.Idx(x, y)
			m := mean3x3(g, channel, x, y)
			out[idx] = channel[idx] + (m-channel[idx])*rate
		}
	}
	copy(channel, out)
}

// slopeAdvect applies the mass-conserving slope-advected flux of spec
// §4.6 step 2 to one channel, using slopeX/slopeY as the per-cell
// terrain-derived gradient.
func slopeAdvect(g *Grid, channel []float32, slopeX, slopeY []float32, bias float32) {
	if bias == 0 {
		return
	}
	out := make([]float32, len(channel))
	copy(out, channel)

	// Each cardinal neighbour transfers along its own axis: east/west
	// follow the X slope component, north/south follow Y.
	type nbr struct{ dx, dy int }
	neighbours := [4]nbr{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

	axisSlope := func(idx int, n nbr) float32 {
		if n.dx != 0 {
			return slopeX[idx]
		}
		return slopeY[idx]
	}

	for y := 0; y < g.R; y++ {
		for x := 0; x < g.R; x++ {
			idx := g.Idx(x, y)
			selfVal := channel[idx]

			var net float32
			for _, n := range neighbours {
				nidx := g.Idx(x+n.dx, y+n.dy)
				selfSlope := axisSlope(idx, n)
				nSlope := axisSlope(nidx, n)
				nVal := channel[nidx]

				outbound := maxf(selfSlope, 0) * selfVal
				inbound := maxf(-nSlope, 0) * nVal
				net += outbound - inbound
			}
			net *= bias / 8

			out[idx] = Clamp01(channel[idx] - net)
		}
	}
	copy(channel, out)
}

func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

// Diffuse runs the per-tick environment diffusion kernel: 3x3 blur,
// slope-advected flux, and stochastic Perlin rain, followed by a clamp.
func Diffuse(g *Grid, p DiffuseParams, rain *RainFields) {
	blurChannel(g, g.Alpha, p.AlphaBlur)
	blurChannel(g, g.Beta, p.BetaBlur)
	blurChannel(g, g.Gamma, p.GammaBlur)

	slopeAdvect(g, g.Alpha, g.SlopeX, g.SlopeY, p.AlphaSlopeBias)
	slopeAdvect(g, g.Beta, g.SlopeX, g.SlopeY, p.BetaSlopeBias)

	applyRain(g, g.Alpha, rain.Alpha, p, p.AlphaMultiplier, 1000)
	applyRain(g, g.Beta, rain.Beta, p, p.BetaMultiplier, 5000)

	g.ClampAll()
}

// applyRain samples layered 3-D value noise at (x/R, y/R, epoch*speed) and
// stochastically saturates cells to 1.0, per spec §4.6 step 3.
func applyRain(g *Grid, channel []float32, field *noise.Field, p DiffuseParams, multiplier float32, timeOffset float64) {
	if multiplier <= 0 {
		return
	}
	t := float64(p.Epoch)*p.PerlinNoiseSpeed + timeOffset
	scale := p.PerlinNoiseScale
	if scale == 0 {
		scale = 1
	}
	contrast := p.PerlinNoiseContrast
	if contrast == 0 {
		contrast = 1
	}
	for y := 0; y < g.R; y++ {
		for x := 0; x < g.R; x++ {
			idx := y*g.R + x
			nx := float64(x) / float64(g.R) * scale
			ny := float64(y) / float64(g.R) * scale
			n := field.LayeredNoise01(nx, ny, t, rainOctaves, contrast)
			prob := n * float64(multiplier) * 0.05
			h := hashCellEpoch(x, y, p.Epoch)
			if h < prob {
				channel[idx] = 1.0
			}
		}
	}
}

// hashCellEpoch derives a uniform [0,1) value from cell coordinates and
// epoch via a small integer hash, matching the RNG-reconstruction policy
// of spec §9 (no global RNG; per-lane state from a hash of identity).
func hashCellEpoch(x, y int, epoch int64) float64 {
	h := uint64(x)*2654435761 ^ uint64(y)*2246822519 ^ uint64(epoch)*3266489917
	h ^= h >> 33
	h *= 0xff51afd7ed558ccd
	h ^= h >> 33
	return float64(h%1_000_000) / 1_000_000
}

// RecomputeSlope computes the 8-neighbour Sobel-style gradient of
// height := gamma + cAlpha*alpha + cBeta*beta, weighting cardinals by 1
// and diagonals by 1/sqrt(2) (spec §4.6 "Slope recompute").
func RecomputeSlope(g *Grid, cAlpha, cBeta float32) {
	const diag = float32(0.7071067811865476)
	height := make([]float32, len(g.Gamma))
	for i := range height {
		height[i] = g.Gamma[i] + cAlpha*g.Alpha[i] + cBeta*g.Beta[i]
	}

	for y := 0; y < g.R; y++ {
		for x := 0; x < g.R; x++ {
			idx := g.Idx(x, y)

			n := height[g.Idx(x, y-1)]
			s := height[g.Idx(x, y+1)]
			e := height[g.Idx(x+1, y)]
			w := height[g.Idx(x-1, y)]
			ne := height[g.Idx(x+1, y-1)]
			nw := height[g.Idx(x-1, y-1)]
			se := height[g.Idx(x+1, y+1)]
			sw := height[g.Idx(x-1, y+1)]

			gx := (e - w) + diag*((ne-nw)+(se-sw))
			gy := (s - n) + diag*((se-ne)+(sw-nw))

			g.SlopeX[idx] = gx
			g.SlopeY[idx] = gy
		}
	}
}

// DiffuseTrail applies the trail kernel's 3x3 blur and multiplicative
// decay (spec §4.6 "Trail diffusion").
func DiffuseTrail(g *Grid, diffusion, decay float32) {
	blurChannel(g, g.TrailR, diffusion)
	blurChannel(g, g.TrailG, diffusion)
	blurChannel(g, g.TrailB, diffusion)
	for i := range g.TrailR {
		g.TrailR[i] = Clamp01(g.TrailR[i] * decay)
		g.TrailG[i] = Clamp01(g.TrailG[i] * decay)
		g.TrailB[i] = Clamp01(g.TrailB[i] * decay)
	}
}
