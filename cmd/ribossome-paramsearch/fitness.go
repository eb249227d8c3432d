package main

import (
	"math"
	"math/rand"
	"sync"

	"gonum.org/v1/gonum/stat"

	"github.com/ribossome/ribossome/agent"
	"github.com/ribossome/ribossome/config"
	"github.com/ribossome/ribossome/envgrid"
	"github.com/ribossome/ribossome/sim"
)

// FitnessEvaluator runs headless simulations and scores how long and how
// stably a population survives, grounded on the teacher's
// cmd/optimize/fitness.go FitnessEvaluator (seeds run in parallel,
// fitness is negative survival so CMA-ES's minimizer maximizes survival).
type FitnessEvaluator struct {
	params     *ParamVector
	maxTicks   int64
	seeds      []int64
	baseConfig *config.Config

	mu          sync.Mutex
	lastQuality float64
}

func NewFitnessEvaluator(params *ParamVector, maxTicks int64, seeds []int64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{params: params, maxTicks: maxTicks, seeds: seeds, baseConfig: baseCfg}
}

// LastQuality returns the stability-quality component of the most recent
// Evaluate call.
func (fe *FitnessEvaluator) LastQuality() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastQuality
}

const minViableAlive = 3

// Evaluate computes fitness for a raw (denormalized) parameter vector.
// Lower is better: fitness is -(survivalTicks * (1 + 0.2*quality)).
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	results := make([]seedResult, len(fe.seeds))
	var wg sync.WaitGroup
	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			results[idx] = fe.runSimulation(x, s)
		}(i, seed)
	}
	wg.Wait()

	var totalFitness, totalQuality float64
	for _, r := range results {
		totalFitness += r.fitness
		totalQuality += r.quality
	}
	n := float64(len(fe.seeds))

	fe.mu.Lock()
	fe.lastQuality = totalQuality / n
	fe.mu.Unlock()

	return totalFitness / n
}

type seedResult struct {
	fitness float64
	quality float64
}

func (fe *FitnessEvaluator) runSimulation(x []float64, seed int64) seedResult {
	params := fe.baseConfig.Params
	fe.params.ApplyToParams(&params, x)
	params.RandomSeed = seed

	grid := envgrid.New(fe.baseConfig.Environment.Resolution, fe.baseConfig.Derived.WorldSize)
	envgrid.Seed(grid, fe.baseConfig.Environment)

	orch := sim.New(&params, grid)
	rng := rand.New(rand.NewSource(seed))
	for i := 0; i < params.AgentCount; i++ {
		orch.QueueSpawn(agent.SpawnRequest{
			Seed:            rng.Int63(),
			GenomeSeed:      rng.Int63(),
			InitialEnergy:   float32(params.FoodPower * 10),
			InitialRotation: rng.Float32() * 6.2831853,
		})
	}

	warmup := fe.maxTicks / 20
	aliveSamples := make([]float64, 0, fe.maxTicks)

	var survived int64
	for tick := int64(0); tick < fe.maxTicks; tick++ {
		orch.Tick()
		alive := orch.AliveCount()
		survived = tick

		if tick < warmup {
			continue
		}
		aliveSamples = append(aliveSamples, float64(alive))
		if alive < minViableAlive {
			break
		}
	}

	quality := fe.computeQuality(aliveSamples)
	fitness := -(float64(survived) * (1.0 + 0.2*quality))
	return seedResult{fitness: fitness, quality: quality}
}

// computeQuality scores population-count stability in [0,1]: low
// coefficient-of-variation in the alive-count trajectory (computed via
// gonum/stat.StdDev) scores near 1, erratic trajectories score near 0.
func (fe *FitnessEvaluator) computeQuality(samples []float64) float64 {
	if len(samples) < 2 {
		return 0
	}
	mean := stat.Mean(samples, nil)
	if mean == 0 {
		return 0
	}
	sd := stat.StdDev(samples, nil)
	cv := sd / mean
	return math.Exp(-cv * cv)
}
