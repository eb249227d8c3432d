package agent

import "math"

// Global morphology constants (spec §4.2, §9 GLOSSARY: ΔMAX).
const (
	deltaMax  = 0.2 // ΔMAX, per-tick signal-induced angle cap
	gAlpha    = 1.0 // gα global gain
	gBeta     = 1.0 // gβ global gain
)

func clampf(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// poisonResistance is 0.9^(count of kind-E amino parts), shared by
// morphology signal attenuation, feeding, maintenance, and reproduction.
func poisonResistance(countKindE int) float32 {
	return float32(math.Pow(0.9, float64(countKindE)))
}

func countKindGlu(parts []TranslatedPart) int {
	n := 0
	for _, p := range parts {
		if p.Kind == KindGlu {
			n++
		}
	}
	return n
}

// BuildMorphology builds the kinematic chain from translated parts,
// re-centers it on the mass-weighted center, and folds any net rotation
// caused by signal-driven reshaping into the agent's world rotation. prev
// supplies each slot's previous-tick alpha/beta signal, read by index
// before this tick's signal propagation overwrites it.
func BuildMorphology(rec *Record, parts []TranslatedPart, prev [MaxParts]BodyPart) {
	if len(parts) == 0 {
		rec.Alive = 0
		rec.BodyCount = 0
		return
	}
	if len(parts) > MaxParts {
		parts = parts[:MaxParts]
	}

	n := len(parts)
	poison := poisonResistance(countKindGlu(parts))

	var theta float32
	sign := float32(1)

	var body [MaxParts]BodyPart
	var x, y float32

	var massWeightedTheta, totalMass float32
	var weightedX, weightedY float32

	for i, tp := range parts {
		props := Props(tp.Kind)

		var prevAlpha, prevBeta float32
		if i < MaxParts {
			prevAlpha = prev[i].AlphaSignal
			prevBeta = prev[i].BetaSignal
		}

		delta := clampf(props.SensAlpha*prevAlpha*gAlpha+props.SensBeta*prevBeta*gBeta, -deltaMax, deltaMax)
		delta *= poison

		theta += sign * (props.BaseAngle + delta)

		if tp.Kind == KindLeu && props.IsChiralityFlipper {
			// A raw Leucine not consumed as a promoter flips chirality for
			// every subsequent part.
			sign = -sign
		}

		x += props.SegmentLength * float32(math.Cos(float64(theta)))
		y += props.SegmentLength * float32(math.Sin(float64(theta)))

		size := props.Thickness
		switch {
		case props.IsAlphaSensor, props.IsBetaSensor, props.IsEnergySensor:
			size *= 1.4
		case props.IsCondenser:
			size *= 0.75
		}

		mass := props.MassFloored()
		body[i] = BodyPart{
			PosX:     x,
			PosY:     y,
			Size:     size,
			PartType: packPartType(tp.Kind, tp.OrganParam),
			Scratch1: delta,
			// Running physics-chirality sign at this part, read back by
			// the propeller thrust-direction computation in physics.go.
			Scratch2: sign,
		}

		weightedX += x * mass
		weightedY += y * mass
		massWeightedTheta += theta * mass
		totalMass += mass
	}

	if totalMass < 0.01 {
		totalMass = 0.01
	}
	cx := weightedX / totalMass
	cy := weightedY / totalMass
	thetaBar := massWeightedTheta / totalMass

	cosT := float32(math.Cos(float64(-thetaBar)))
	sinT := float32(math.Sin(float64(-thetaBar)))

	for i := 0; i < n; i++ {
		lx := body[i].PosX - cx
		ly := body[i].PosY - cy
		body[i].PosX = lx*cosT - ly*sinT
		body[i].PosY = lx*sinT + ly*cosT
	}

	originX := -cx
	originY := -cy
	rOriginX := originX*cosT - originY*sinT
	rOriginY := originX*sinT + originY*cosT

	var capacity float32
	for _, tp := range parts {
		capacity += Props(tp.Kind).EnergyStorage
	}

	rec.MorphOriginX = rOriginX
	rec.MorphOriginY = rOriginY
	rec.Rotation += thetaBar
	rec.TotalMass = totalMass
	rec.EnergyCapacity = capacity
	rec.BodyCount = uint32(n)
	rec.Alive = 1

	// Preserve previous-tick alpha/beta for slots that already existed;
	// signal propagation overwrites AlphaSignal/BetaSignal immediately
	// after this call. Condenser charge state (also carried in Scratch2)
	// survives across ticks in place of the chirality-sign latch, since a
	// condenser part never reads the chirality sign.
	for i := 0; i < n; i++ {
		body[i].AlphaSignal = prev[i].AlphaSignal
		body[i].BetaSignal = prev[i].BetaSignal
		if Props(body[i].Kind()).IsCondenser {
			body[i].Scratch2 = prev[i].Scratch2
		}
	}

	rec.Body = body
}
