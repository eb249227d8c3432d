package agent

import (
	"math"
	"math/rand"

	"github.com/ribossome/ribossome/config"
	"github.com/ribossome/ribossome/envgrid"
)

// amplification sums, over all enabler parts, max(0, 1-dist/40) clipped
// to 1 (spec §4.4).
func amplification(rec *Record, i, n int) float32 {
	var sum float32
	px, py := rec.Body[i].PosX, rec.Body[i].PosY
	for j := 0; j < n; j++ {
		if !Props(rec.Body[j].Kind()).IsEnabler {
			continue
		}
		dx := rec.Body[j].PosX - px
		dy := rec.Body[j].PosY - py
		dist := float32(math.Hypot(float64(dx), float64(dy)))
		sum += maxf32(0, 1-dist/40)
	}
	if sum > 1 {
		sum = 1
	}
	return sum
}

func maxf32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

func rotateVec(x, y, rotation float32) (float32, float32) {
	cosR := float32(math.Cos(float64(rotation)))
	sinR := float32(math.Sin(float64(rotation)))
	return x*cosR - y*sinR, x*sinR + y*cosR
}

// ComputePhysics runs the per-tick physics/actuation/feeding/maintenance/
// death pass of spec §4.4 for one live agent, reading and writing the
// shared environment grid with the benign-race additive writes spec §5
// explicitly allows.
func ComputePhysics(rec *Record, grid *envgrid.Grid, p *config.Params, rng *rand.Rand) {
	n := int(rec.BodyCount)
	if n == 0 {
		return
	}

	poison := poisonResistance(countKindGluInBody(rec, n))

	var forceX, forceY, torque float32
	var sumMR2 float32
	var totalThrust, maxThrust float32
	var maintenance float32

	type feedPart struct {
		idx  int
		rAlpha, rBeta float32
	}
	var feeders []feedPart

	for i := 0; i < n; i++ {
		part := &rec.Body[i]
		kind := part.Kind()
		props := Props(kind)
		mass := props.MassFloored()

		wx, wy := worldPart(rec, i)
		cx, cy := grid.WorldToCell(wx, wy)
		cellIdx := grid.Idx(cx, cy)

		// Slope force.
		gx := -grid.SlopeX[cellIdx] * float32(p.GammaStrength) * mass
		gy := -grid.SlopeY[cellIdx] * float32(p.GammaStrength) * mass
		forceX += gx
		forceY += gy
		torque += crossLever(part.PosX, part.PosY, gx, gy)
		sumMR2 += mass * (part.PosX*part.PosX + part.PosY*part.PosY)

		amp := amplification(rec, i, n)

		switch {
		case props.IsPropeller:
			maxThrust = maxf32(maxThrust, props.ThrustMagnitude*3)
			if rec.Energy < props.OrganCost {
				continue
			}
			nx, ny := segmentPerpendicular(rec, i, n)
			physSign := part.Scratch2
			thrustMag := props.ThrustMagnitude * 3 * amp * amp
			totalThrust += thrustMag
			fx := nx * thrustMag * physSign
			fy := ny * thrustMag * physSign
			forceX += fx
			forceY += fy
			torque += crossLever(part.PosX, part.PosY, fx, fy) * 6

			washFrac := float32(p.PropWashStrength) * amp * 0.05 * (mass / maxf32(rec.TotalMass, 0.01))
			propWash(grid, wx, wy, nx, ny, washFrac)

		case props.IsDisplacer:
			if rec.Energy < props.OrganCost {
				continue
			}
			nx, ny := segmentPerpendicular(rec, i, n)
			frac := clampf(float32(p.PropWashStrength)*amp, 0, 0.5)
			propWash(grid, wx, wy, nx, ny, frac)

		case props.IsMouth:
			speedMul := float32(math.Exp(-8 * float64(speedOf(rec)) / p.VMax))
			rA := props.AbsorbRateAlpha * speedMul * amp
			rB := props.AbsorbRateBeta * speedMul * amp
			feeders = append(feeders, feedPart{idx: i, rAlpha: rA, rBeta: rB})
		}

		switch {
		case props.IsMouth:
			maintenance += props.OrganCost
		case props.IsPropeller:
			maintenance += props.OrganCost
		case props.IsDisplacer:
			maintenance += props.OrganCost + props.OrganCost*amp*amp*1.5
		case props.IsEnabler, props.IsAlphaSensor, props.IsBetaSensor, props.IsEnergySensor, props.IsCondenser:
			maintenance += props.OrganCost * amp * 1.5
		default:
			maintenance += float32(p.AminoMaintenanceCost)
		}
	}

	if maxThrust > 0 {
		// Recompute propeller maintenance share now that totalThrust/maxThrust is known.
		for i := 0; i < n; i++ {
			if Props(rec.Body[i].Kind()).IsPropeller {
				maintenance += Props(rec.Body[i].Kind()).OrganCost * (totalThrust / maxThrust) * 1.5
			}
		}
	}

	// Feeding: split a shared capture budget proportional to availability*rate.
	for _, f := range feeders {
		wx, wy := worldPart(rec, f.idx)
		cx, cy := grid.WorldToCell(wx, wy)
		idx := grid.Idx(cx, cy)
		availA := grid.Alpha[idx]
		availB := grid.Beta[idx]
		wA := availA * f.rAlpha
		wB := availB * f.rBeta
		total := wA + wB
		if total <= 1e-9 {
			continue
		}
		budget := f.rAlpha + f.rBeta
		consumedA := budget * (wA / total)
		consumedB := budget * (wB / total)
		if consumedA > availA {
			consumedA = availA
		}
		if consumedB > availB {
			consumedB = availB
		}
		envgrid.AddClamped(grid.Alpha, idx, -consumedA)
		envgrid.AddClamped(grid.Beta, idx, -consumedB)
		rec.Energy += consumedA*float32(p.FoodPower) - consumedB*float32(p.PoisonPower)*poison
	}

	// Overdamped physics integration.
	mass := maxf32(rec.TotalMass, 0.01)
	newVelX := forceX / (mass * 0.5)
	newVelY := forceY / (mass * 0.5)

	smooth := clampf(1-2.5*mass, 0.1, 0.95)
	rec.VelX = rec.VelX + (newVelX-rec.VelX)*smooth
	rec.VelY = rec.VelY + (newVelY-rec.VelY)*smooth

	speed := speedOf(rec)
	if speed > float32(p.VMax) {
		scale := float32(p.VMax) / speed
		rec.VelX *= scale
		rec.VelY *= scale
	}

	denom := maxf32(sumMR2*20, 0.01)
	newOmega := torque / denom
	omega := clampf(newOmega*0.6+rec.TorqueDebug*0.4, -float32(p.OmegaMax), float32(p.OmegaMax))
	rec.TorqueDebug = omega

	rec.Rotation += omega
	rec.PosX = clampf(rec.PosX+rec.VelX, 0, float32(30720))
	rec.PosY = clampf(rec.PosY+rec.VelY, 0, float32(30720))

	depositTrail(rec, grid, n)

	rec.Energy -= maintenance * poison
	rec.Energy = clampf(rec.Energy, 0, rec.EnergyCapacity)

	deathProb := float32(p.DeathProbability) / maxf32(rec.Energy, 0.01)
	if rng.Float32() < deathProb {
		killAgent(rec, grid, n)
	}
}

func speedOf(rec *Record) float32 {
	return float32(math.Hypot(float64(rec.VelX), float64(rec.VelY)))
}

func crossLever(lx, ly, fx, fy float32) float32 {
	return lx*fy - ly*fx
}

// propWash moves up to frac of alpha/beta/gamma from a part's cell into
// the single cell three cell-widths along (nx,ny), honouring destination
// capacities (clamped to [0,1]). Nothing moves when that cell is the
// source cell itself.
func propWash(grid *envgrid.Grid, wx, wy, nx, ny, frac float32) {
	if frac <= 0 {
		return
	}
	srcX, srcY := grid.WorldToCell(wx, wy)
	srcIdx := grid.Idx(srcX, srcY)

	cellSize := float32(grid.WorldSize) / float32(grid.R)
	dstX, dstY := grid.WorldToCell(wx+nx*cellSize*3, wy+ny*cellSize*3)
	dstIdx := grid.Idx(dstX, dstY)
	if dstIdx == srcIdx {
		return
	}

	moveChannel := func(channel []float32) {
		amount := channel[srcIdx] * frac
		room := 1 - channel[dstIdx]
		if amount > room {
			amount = room
		}
		if amount <= 0 {
			return
		}
		envgrid.AddClamped(channel, srcIdx, -amount)
		envgrid.AddClamped(channel, dstIdx, amount)
	}
	moveChannel(grid.Alpha)
	moveChannel(grid.Beta)
	moveChannel(grid.Gamma)
}

// depositTrail blends the trail cell at each part's position toward the
// agent's identity color at strength 0.08.
func depositTrail(rec *Record, grid *envgrid.Grid, n int) {
	r, g, b := identityColor(rec, n)
	for i := 0; i < n; i++ {
		wx, wy := worldPart(rec, i)
		cx, cy := grid.WorldToCell(wx, wy)
		idx := grid.Idx(cx, cy)
		grid.TrailR[idx] = envgrid.Clamp01(grid.TrailR[idx] + (r-grid.TrailR[idx])*0.08)
		grid.TrailG[idx] = envgrid.Clamp01(grid.TrailG[idx] + (g-grid.TrailG[idx])*0.08)
		grid.TrailB[idx] = envgrid.Clamp01(grid.TrailB[idx] + (b-grid.TrailB[idx])*0.08)
	}
}

// identityColor derives a stable per-agent color from a hash-like sine of
// the sum of per-kind color-damage values.
func identityColor(rec *Record, n int) (float32, float32, float32) {
	var sum float32
	for i := 0; i < n; i++ {
		sum += Props(rec.Body[i].Kind()).ColorDamage
	}
	r := (float32(math.Sin(float64(sum)*12.9898)) + 1) / 2
	g := (float32(math.Sin(float64(sum)*78.233)) + 1) / 2
	b := (float32(math.Sin(float64(sum)*37.719)) + 1) / 2
	return r, g, b
}

// killAgent marks the agent dead and deposits a fixed total of 1.0 beta
// and 0.3 alpha spread equally across parts. It returns nothing and does
// not touch the selection flag; the sticky-selection handoff is left to
// the orchestrator's compaction pass.
func killAgent(rec *Record, grid *envgrid.Grid, n int) {
	rec.Alive = 0
	if n == 0 {
		return
	}
	perPartBeta := float32(1.0) / float32(n)
	perPartAlpha := float32(0.3) / float32(n)
	for i := 0; i < n; i++ {
		wx, wy := worldPart(rec, i)
		cx, cy := grid.WorldToCell(wx, wy)
		idx := grid.Idx(cx, cy)
		envgrid.AddClamped(grid.Beta, idx, perPartBeta)
		envgrid.AddClamped(grid.Alpha, idx, perPartAlpha)
	}
}
