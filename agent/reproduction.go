package agent

import (
	"math"
	"math/rand"

	"github.com/ribossome/ribossome/config"
)

var complement = map[byte]byte{'A': 'U', 'U': 'A', 'G': 'C', 'C': 'G'}

// activeRegion returns the [start,end) byte range of the maximal
// contiguous span containing no 'X' padding.
func activeRegion(genome *[GenomeBytes]byte) (int, int) {
	start, end := -1, -1
	bestStart, bestEnd := 0, 0
	for i := 0; i <= GenomeBytes; i++ {
		live := i < GenomeBytes && genome[i] != 'X'
		if live && start < 0 {
			start = i
		}
		if !live && start >= 0 {
			end = i
			if end-start > bestEnd-bestStart {
				bestStart, bestEnd = start, end
			}
			start = -1
		}
	}
	return bestStart, bestEnd
}

// ReverseComplement returns the reverse-complement of the active region of
// genome, re-centered in a fresh 128-byte buffer with X padding on both
// sides. Applying it twice recovers the original active-region bytes
// (spec §8 functional law), modulo leading/trailing X that re-centering
// does not preserve position-for-position.
func ReverseComplement(genome *[GenomeBytes]byte) [GenomeBytes]byte {
	start, end := activeRegion(genome)
	n := end - start
	out := [GenomeBytes]byte{}
	for i := range out {
		out[i] = 'X'
	}
	if n <= 0 {
		return out
	}
	rc := make([]byte, n)
	for i := 0; i < n; i++ {
		rc[i] = complement[genome[end-1-i]]
	}
	recenterInto(&out, rc)
	return out
}

// recenterInto writes active bytes into the middle of a 128-byte buffer,
// X-padding both sides, capping at GenomeBytes.
func recenterInto(out *[GenomeBytes]byte, active []byte) {
	if len(active) > GenomeBytes {
		active = active[:GenomeBytes]
	}
	pad := (GenomeBytes - len(active)) / 2
	for i := range out {
		out[i] = 'X'
	}
	copy(out[pad:], active)
}

var liveBases = [4]byte{'A', 'U', 'G', 'C'}

func randomLiveBase(rng *rand.Rand) byte {
	return liveBases[rng.Intn(4)]
}

// mutate applies structural (insertion/deletion) then point mutations to
// the active region of genome in place, per spec §4.5 steps 4-5.
func mutate(genome *[GenomeBytes]byte, mu float32, rng *rand.Rand) {
	start, end := activeRegion(genome)
	active := append([]byte(nil), genome[start:end]...)

	if rng.Float32() < 0.20*mu {
		k := 1 + rng.Intn(5)
		if len(active)+k > GenomeBytes {
			k = GenomeBytes - len(active)
		}
		if k > 0 {
			pos := []int{0, len(active), len(active) / 2}[rng.Intn(3)]
			ins := make([]byte, k)
			for i := range ins {
				ins[i] = randomLiveBase(rng)
			}
			next := make([]byte, 0, len(active)+k)
			next = append(next, active[:pos]...)
			next = append(next, ins...)
			next = append(next, active[pos:]...)
			active = next
		}
	}

	const minActiveFloor = 6
	if rng.Float32() < 0.35*mu && len(active) > minActiveFloor {
		surplus := len(active) - minActiveFloor
		k := 1 + rng.Intn(5)
		if k > surplus {
			k = surplus
		}
		if k > 0 {
			pos := rng.Intn(len(active) - k + 1)
			active = append(active[:pos], active[pos+k:]...)
		}
	}

	for i := range active {
		if rng.Float32() < mu {
			active[i] = randomLiveBase(rng)
		}
	}

	recenterInto(genome, active)
}

// ReproductionOutcome reports what AttemptReproduction did this tick.
type ReproductionOutcome struct {
	Spawned bool
	Child   Record
}

// AttemptReproduction runs the pairing-counter / mutation logic of spec
// §4.5 for one live agent. betaHere is the beta grid value at the agent's
// position.
func AttemptReproduction(rec *Record, p *config.Params, betaHere float32, rng *rand.Rand, stagingFull func() bool) ReproductionOutcome {
	L := rec.GeneLength()
	poison := poisonResistance(countKindGluInBody(rec, int(rec.BodyCount)))

	if int(rec.PairingCounter) < L {
		radiation := 1 / (1 + betaHere)
		prob := clampf(float32(p.SpawnProbability)*float32(math.Sqrt(float64(rec.Energy+1)))*0.1*radiation*poison, 0, 1)
		if rng.Float32() < prob && rec.Energy >= float32(p.PairingCost) {
			rec.Energy -= float32(p.PairingCost)
			rec.PairingCounter++
		}
		return ReproductionOutcome{}
	}

	if stagingFull() {
		return ReproductionOutcome{}
	}

	var childGenome [GenomeBytes]byte
	if p.AsexualReproduction {
		childGenome = rec.Genome
	} else {
		childGenome = ReverseComplement(&rec.Genome)
	}

	mu := clampf(float32(p.MutationRate)*(1+pow3(betaHere)*4), 0, 1)
	mutate(&childGenome, mu, rng)

	child := Record{
		PosX:       rec.PosX,
		PosY:       rec.PosY,
		Rotation:   float32(rng.Float64() * 2 * math.Pi),
		Energy:     rec.Energy * 0.5,
		Alive:      1,
		Generation: rec.Generation + 1,
		Genome:     childGenome,
	}

	rec.Energy *= 0.5
	rec.PairingCounter = 0

	return ReproductionOutcome{Spawned: true, Child: child}
}

func pow3(v float32) float32 { return v * v * v }
