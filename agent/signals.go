package agent

import (
	"math"
	"math/rand"

	"github.com/ribossome/ribossome/envgrid"
)

const (
	sensorSamples      = 14
	sensorDiskRadius   = 100.0
	sensorSigma        = 15.0
	signalUpdateRate   = 0.75 // 25% inertia blend
	condenserCapacity  = 10.0
	condenserAbsorb    = 0.1
	condenserEmit      = 0.2
)

// worldPart returns a body part's world-space position, rotating its
// local offset by the agent's rotation and translating by the agent's
// world position.
func worldPart(rec *Record, i int) (float32, float32) {
	lx := rec.Body[i].PosX
	ly := rec.Body[i].PosY
	cosR := float32(math.Cos(float64(rec.Rotation)))
	sinR := float32(math.Sin(float64(rec.Rotation)))
	wx := rec.PosX + lx*cosR - ly*sinR
	wy := rec.PosY + lx*sinR + ly*cosR
	return wx, wy
}

// segmentPerpendicular returns the world-space left-hand normal of the
// segment axis at part i, derived from neighbour positions (or the part's
// own position for a single-part body).
func segmentPerpendicular(rec *Record, i int, n int) (float32, float32) {
	var axisX, axisY float32
	switch {
	case n <= 1:
		axisX, axisY = 1, 0
	case i == 0:
		axisX = rec.Body[1].PosX - rec.Body[0].PosX
		axisY = rec.Body[1].PosY - rec.Body[0].PosY
	case i == n-1:
		axisX = rec.Body[i].PosX - rec.Body[i-1].PosX
		axisY = rec.Body[i].PosY - rec.Body[i-1].PosY
	default:
		axisX = rec.Body[i+1].PosX - rec.Body[i-1].PosX
		axisY = rec.Body[i+1].PosY - rec.Body[i-1].PosY
	}
	mag := float32(math.Hypot(float64(axisX), float64(axisY)))
	if mag < 1e-6 {
		axisX, axisY, mag = 1, 0, 1
	}
	axisX /= mag
	axisY /= mag
	// left-hand normal
	localNX, localNY := -axisY, axisX
	cosR := float32(math.Cos(float64(rec.Rotation)))
	sinR := float32(math.Sin(float64(rec.Rotation)))
	return localNX*cosR - localNY*sinR, localNX*sinR + localNY*cosR
}

// sampleSensor performs the stochastic Gaussian disk sample of spec §4.3.
func sampleSensor(rng *rand.Rand, grid *envgrid.Grid, channel []float32, wx, wy, normalX, normalY float32) float32 {
	var weightedSum, weightSum float64
	for s := 0; s < sensorSamples; s++ {
		dist := rng.Float64() * sensorDiskRadius
		ang := rng.Float64() * 2 * math.Pi
		ox := dist * math.Cos(ang)
		oy := dist * math.Sin(ang)

		gauss := math.Exp(-(dist * dist) / (2 * sensorSigma * sensorSigma))

		norm := math.Hypot(ox, oy)
		var dot float64
		if norm > 1e-9 {
			dot = (ox/norm)*float64(normalX) + (oy/norm)*float64(normalY)
		}
		dirWeight := (dot + 1) / 2

		w := gauss * dirWeight
		v := float64(grid.SampleBilinear(channel, wx+float32(ox), wy+float32(oy)))

		weightedSum += v * w
		weightSum += w
	}
	if weightSum < 1e-9 {
		return 0
	}
	mean := weightedSum / weightSum
	if mean < 0 {
		mean = 0
	} else if mean > 1 {
		mean = 1
	}
	return float32(math.Sqrt(mean))
}

func linmap(v, inLo, inHi, outLo, outHi float32) float32 {
	t := (v - inLo) / (inHi - inLo)
	return outLo + t*(outHi-outLo)
}

// PropagateSignals steps every part's alpha/beta signal from prev (the
// previous tick's values) per spec §4.3: sensors sample the environment,
// non-sensor parts diffuse from neighbours and decay, and then all signals
// blend with inertia and clamp.
func PropagateSignals(rec *Record, prev [MaxParts]BodyPart, grid *envgrid.Grid, isotropic bool, rng *rand.Rand) {
	n := int(rec.BodyCount)
	if n == 0 {
		return
	}

	newAlpha := make([]float32, n)
	newBeta := make([]float32, n)

	poison := poisonResistance(countKindGluInBody(rec, n))

	for i := 0; i < n; i++ {
		kind := rec.Body[i].Kind()
		props := Props(kind)

		var a, b float32

		switch {
		case props.IsAlphaSensor:
			wx, wy := worldPart(rec, i)
			nx, ny := segmentPerpendicular(rec, i, n)
			sample := sampleSensor(rng, grid, grid.Alpha, wx, wy, nx, ny)
			a = prev[i].AlphaSignal + sample
			b = prev[i].BetaSignal
		case props.IsBetaSensor:
			wx, wy := worldPart(rec, i)
			nx, ny := segmentPerpendicular(rec, i, n)
			sample := sampleSensor(rng, grid, grid.Beta, wx, wy, nx, ny)
			b = prev[i].BetaSignal + sample
			a = prev[i].AlphaSignal
		case props.IsEnergySensor:
			e := rec.Energy / 50
			a = prev[i].AlphaSignal + linmap(e, 0, 1, -0.5, 1.3)
			b = prev[i].BetaSignal + linmap(e, 0, 1, 0.5, -0.7)
		default:
			var leftA, rightA, leftB, rightB float32
			hasLeft, hasRight := i > 0, i < n-1
			if hasLeft {
				leftA, leftB = prev[i-1].AlphaSignal, prev[i-1].BetaSignal
			}
			if hasRight {
				rightA, rightB = prev[i+1].AlphaSignal, prev[i+1].BetaSignal
			}

			if n == 1 {
				a, b = prev[i].AlphaSignal, prev[i].BetaSignal
			} else if isotropic {
				count := float32(0)
				if hasLeft {
					a += leftA
					b += leftB
					count++
				}
				if hasRight {
					a += rightA
					b += rightB
					count++
				}
				if count > 0 {
					a /= count
					b /= count
				}
			} else {
				a = leftA*props.MulAlphaLeft + rightA*props.MulAlphaRight
				b = leftB*props.MulBetaLeft + rightB*props.MulBetaRight
			}
			a *= props.SignalDecay * poison
			b *= props.SignalDecay * poison
		}

		if props.IsCondenser {
			a, b = applyCondenser(&rec.Body[i], rec.Body[i].OrganParam(), a, b)
		}

		a = clampf(prev[i].AlphaSignal+(a-prev[i].AlphaSignal)*signalUpdateRate, -1, 1)
		b = clampf(prev[i].BetaSignal+(b-prev[i].BetaSignal)*signalUpdateRate, -1, 1)

		newAlpha[i] = a
		newBeta[i] = b
	}

	for i := 0; i < n; i++ {
		rec.Body[i].AlphaSignal = newAlpha[i]
		rec.Body[i].BetaSignal = newBeta[i]
	}
}

func countKindGluInBody(rec *Record, n int) int {
	c := 0
	for i := 0; i < n; i++ {
		if rec.Body[i].Kind() == KindGlu {
			c++
		}
	}
	return c
}

// applyCondenser implements the charge/discharge mechanic of spec §4.3.
// Scratch2's sign encodes mode: negative = charging, positive =
// discharging, 0 = empty (about to start charging).
//
// KindCondenser covers both the P-family's 7-13 modifier sub-range and
// the whole H-family range, so the alpha/beta split spec §4.3 requires
// ("β-condensers act on β") comes from the packed organ parameter
// rather than the kind itself: low half of the 0-255 range condenses
// alpha, high half condenses beta.
func applyCondenser(part *BodyPart, organParam uint8, a, b float32) (float32, float32) {
	actsOnAlpha := organParam < 128

	charge := part.Scratch2
	mode := chargeMode(charge)
	mag := float32(math.Abs(float64(charge)))

	switch mode {
	case -1, 0: // charging
		var signal *float32
		if actsOnAlpha {
			signal = &a
		} else {
			signal = &b
		}
		take := float32(math.Min(condenserAbsorb, float64(*signal)))
		if take < 0 {
			take = 0
		}
		*signal -= take
		mag += take
		if mag >= condenserCapacity {
			mag = condenserCapacity
			part.Scratch2 = mag // switch to discharging
		} else {
			part.Scratch2 = -mag
		}
	case 1: // discharging
		emit := float32(math.Min(condenserEmit, float64(mag)))
		mag -= emit
		if actsOnAlpha {
			a += emit
		} else {
			b += emit
		}
		if mag <= 0 {
			mag = 0
			part.Scratch2 = -mag // back to charging (empty)
			if part.Scratch2 == 0 {
				part.Scratch2 = -0.0001 // nudge negative so mode stays "charging"
			}
		} else {
			part.Scratch2 = mag
		}
	}

	return a, b
}

func chargeMode(charge float32) int {
	switch {
	case charge < 0:
		return -1
	case charge > 0:
		return 1
	default:
		return 0
	}
}
