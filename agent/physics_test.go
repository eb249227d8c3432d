package agent

import (
	"math/rand"
	"testing"

	"github.com/ribossome/ribossome/config"
	"github.com/ribossome/ribossome/envgrid"
)

func TestComputePhysicsPropellerAcceleratesAgent(t *testing.T) {
	grid := envgrid.New(50, 500)

	var rec Record
	rec.Alive = 1
	rec.BodyCount = 2
	rec.PosX, rec.PosY = 250, 250
	rec.Energy = 10
	rec.EnergyCapacity = 20
	// Propeller and a co-located Enabler: amplification is zero without an
	// enabler organ in range, which would silence thrust entirely.
	rec.Body[0] = BodyPart{PartType: packPartType(KindPropeller, 0), Scratch2: 1}
	rec.Body[1] = BodyPart{PartType: packPartType(KindEnabler, 0)}
	rec.TotalMass = Props(KindPropeller).MassFloored() + Props(KindEnabler).MassFloored()

	p := &config.Params{VMax: 100, OmegaMax: 10}

	ComputePhysics(&rec, grid, p, rand.New(rand.NewSource(1)))

	if !approxEqual(rec.VelX, 0, 1e-4) {
		t.Fatalf("expected no lateral velocity from a forward-facing propeller, got VelX=%v", rec.VelX)
	}
	if !approxEqual(rec.VelY, 0.24, 1e-3) {
		t.Fatalf("expected forward thrust to produce VelY~=0.24, got %v", rec.VelY)
	}
	if !approxEqual(rec.PosY, 250.24, 1e-2) {
		t.Fatalf("expected the agent to move forward along Y, got PosY=%v", rec.PosY)
	}
	if !approxEqual(rec.Energy, 9.9565, 1e-3) {
		t.Fatalf("expected maintenance (propeller+enabler, amplified by thrust share) to deduct ~0.0435 energy, got %v", rec.Energy)
	}
	if rec.Alive != 1 {
		t.Fatalf("expected the agent to stay alive with zero death probability, got Alive=%v", rec.Alive)
	}
}

func TestComputePhysicsMouthFeedsFromGridAndCostsMaintenance(t *testing.T) {
	grid := envgrid.New(50, 500)

	var rec Record
	rec.Alive = 1
	rec.BodyCount = 2
	rec.PosX, rec.PosY = 250, 250
	rec.Energy = 5
	rec.EnergyCapacity = 50
	// Mouth plus a co-located Enabler, same amplification requirement as
	// the propeller case above.
	rec.Body[0] = BodyPart{PartType: packPartType(KindMouth, 0)}
	rec.Body[1] = BodyPart{PartType: packPartType(KindEnabler, 0)}
	rec.TotalMass = Props(KindMouth).MassFloored() + Props(KindEnabler).MassFloored()

	cx, cy := grid.WorldToCell(250, 250)
	idx := grid.Idx(cx, cy)
	grid.Alpha[idx] = 1.0
	grid.Beta[idx] = 1.0

	p := &config.Params{VMax: 100, OmegaMax: 10, FoodPower: 2.0, PoisonPower: 1.0}

	ComputePhysics(&rec, grid, p, rand.New(rand.NewSource(1)))

	if !approxEqual(grid.Alpha[idx], 0.4, 1e-3) {
		t.Fatalf("expected the mouth to consume 0.6 of the cell's alpha, got %v", grid.Alpha[idx])
	}
	if !approxEqual(grid.Beta[idx], 0.6, 1e-3) {
		t.Fatalf("expected the mouth to consume 0.4 of the cell's beta, got %v", grid.Beta[idx])
	}
	if !approxEqual(rec.Energy, 5.786, 1e-3) {
		t.Fatalf("expected fed energy (0.6*foodPower - 0.4*poisonPower) minus maintenance to net ~5.786, got %v", rec.Energy)
	}
}

func TestComputePhysicsKillsAgentWhenDeathProbabilityExceedsEnergy(t *testing.T) {
	grid := envgrid.New(10, 200)

	var rec Record
	rec.Alive = 1
	rec.BodyCount = 1
	rec.PosX, rec.PosY = 100, 100
	rec.Energy = 0.01
	rec.EnergyCapacity = 10
	rec.Body[0] = BodyPart{PartType: packPartType(KindAla, 0)}
	rec.TotalMass = Props(KindAla).MassFloored()

	p := &config.Params{VMax: 100, OmegaMax: 10, DeathProbability: 1.0}

	cx, cy := grid.WorldToCell(100, 100)
	idx := grid.Idx(cx, cy)

	ComputePhysics(&rec, grid, p, rand.New(rand.NewSource(1)))

	if rec.Alive != 0 {
		t.Fatalf("expected a death probability far exceeding available energy to kill the agent, Alive=%v", rec.Alive)
	}
	if !approxEqual(grid.Beta[idx], 1.0, 1e-4) {
		t.Fatalf("expected death to deposit the full 1.0 beta at the agent's single part, got %v", grid.Beta[idx])
	}
	if !approxEqual(grid.Alpha[idx], 0.3, 1e-4) {
		t.Fatalf("expected death to deposit the full 0.3 alpha at the agent's single part, got %v", grid.Alpha[idx])
	}
}

func TestAmplificationClipsAtOneAndIgnoresDistantEnablers(t *testing.T) {
	var rec Record
	rec.BodyCount = 4
	rec.Body[0] = BodyPart{PosX: 0, PosY: 0, PartType: packPartType(KindMouth, 0)}
	// Two co-located enablers would sum to 2 without the spec's clip to 1.
	rec.Body[1] = BodyPart{PosX: 0, PosY: 0, PartType: packPartType(KindEnabler, 0)}
	rec.Body[2] = BodyPart{PosX: 0, PosY: 0, PartType: packPartType(KindEnabler, 0)}
	rec.Body[3] = BodyPart{PosX: 1000, PosY: 1000, PartType: packPartType(KindEnabler, 0)}

	amp := amplification(&rec, 0, 4)
	if amp != 1 {
		t.Fatalf("expected two co-located enablers to clip amplification at 1, got %v", amp)
	}

	// With only the distant enabler (about 1414 units away, beyond the 40
	// unit falloff), the mouth gets no amplification at all.
	var far Record
	far.BodyCount = 2
	far.Body[0] = BodyPart{PosX: 0, PosY: 0, PartType: packPartType(KindMouth, 0)}
	far.Body[1] = BodyPart{PosX: 1000, PosY: 1000, PartType: packPartType(KindEnabler, 0)}
	if farAmp := amplification(&far, 0, 2); farAmp != 0 {
		t.Fatalf("expected a distant enabler to contribute no amplification, got %v", farAmp)
	}
}
