package agent

import (
	"math/rand"

	"github.com/ribossome/ribossome/config"
	"github.com/ribossome/ribossome/envgrid"
)

// ProcessAgent runs one lane of the process_agents dispatch (spec §4,
// "Morphology / Signal / Physics Kernel") for a single live agent: genome
// re-translation, morphology rebuild, signal propagation, physics and
// actuation, feeding, maintenance, death roll, and reproduction. It
// mutates rec in place and returns a spawned child record, if any.
func ProcessAgent(rec *Record, grid *envgrid.Grid, p *config.Params, rng *rand.Rand, stagingFull func() bool) (Record, bool) {
	if rec.Alive == 0 {
		return Record{}, false
	}

	oldBody := rec.Body
	parts := TranslateGenome(&rec.Genome, p.RequireStartCodon, p.IgnoreStopCodons)

	BuildMorphology(rec, parts, oldBody)
	if rec.Alive == 0 {
		return Record{}, false
	}

	PropagateSignals(rec, oldBody, grid, p.InteriorIsotropic, rng)
	ComputePhysics(rec, grid, p, rng)
	rec.Age++

	if rec.Alive == 0 {
		return Record{}, false
	}

	cx, cy := grid.WorldToCell(rec.PosX, rec.PosY)
	betaHere := grid.Beta[grid.Idx(cx, cy)]

	outcome := AttemptReproduction(rec, p, betaHere, rng, stagingFull)
	return outcome.Child, outcome.Spawned
}
