package telemetry

import (
	"log/slog"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// PopulationStats holds aggregated population statistics for a time
// window, written as one row of population.csv.
type PopulationStats struct {
	WindowStartTick int64   `csv:"-"`
	WindowEndTick   int64   `csv:"window_end"`
	Epoch           int64   `csv:"epoch"`

	AliveCount    int `csv:"alive"`
	Births        int `csv:"births"`
	Deaths        int `csv:"deaths"`
	OverflowDrops int `csv:"overflow_drops"`

	MeanGeneration float64 `csv:"generation_mean"`
	MaxGeneration  float64 `csv:"generation_max"`

	EnergyMean float64 `csv:"energy_mean"`
	EnergyP10  float64 `csv:"energy_p10"`
	EnergyP50  float64 `csv:"energy_p50"`
	EnergyP90  float64 `csv:"energy_p90"`

	BodyCountMean float64 `csv:"body_count_mean"`
	AgeMean       float64 `csv:"age_mean"`
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// ComputeDistribution calculates mean and percentiles from a set of
// values, matching the shape of any per-tick per-agent sample (energy,
// age, body count, generation).
func ComputeDistribution(values []float64) (mean, p10, p50, p90 float64) {
	n := len(values)
	if n == 0 {
		return 0, 0, 0, 0
	}

	var sum float64
	for _, v := range values {
		sum += v
	}
	mean = sum / float64(n)

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	p10 = Percentile(sorted, 0.10)
	p50 = Percentile(sorted, 0.50)
	p90 = Percentile(sorted, 0.90)

	return mean, p10, p50, p90
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func maxOf(values []float64) float64 {
	m := math.Inf(-1)
	for _, v := range values {
		if v > m {
			m = v
		}
	}
	if math.IsInf(m, -1) {
		return 0
	}
	return m
}

// GenomeDivergence reports the mean and variance of a population's
// pairwise (or reference-relative) Hamming distances between active
// genome regions, using gonum/stat rather than a hand-rolled variance
// accumulator. Spec §8 scenario 4 ("reproduction under mutagen") calls
// for population genome divergence to grow from an identical-genome
// seed population; this is the natural stat.MeanVariance consumer for
// that property.
func GenomeDivergence(hammingDistances []float64) (mean, variance float64) {
	if len(hammingDistances) == 0 {
		return 0, 0
	}
	if len(hammingDistances) == 1 {
		return hammingDistances[0], 0
	}
	return stat.MeanVariance(hammingDistances, nil)
}

// LogValue implements slog.LogValuer for structured logging.
func (s PopulationStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("window_end", s.WindowEndTick),
		slog.Int64("epoch", s.Epoch),
		slog.Int("alive", s.AliveCount),
		slog.Int("births", s.Births),
		slog.Int("deaths", s.Deaths),
		slog.Int("overflow_drops", s.OverflowDrops),
		slog.Float64("generation_mean", s.MeanGeneration),
		slog.Float64("generation_max", s.MaxGeneration),
		slog.Float64("energy_mean", s.EnergyMean),
		slog.Float64("energy_p10", s.EnergyP10),
		slog.Float64("energy_p50", s.EnergyP50),
		slog.Float64("energy_p90", s.EnergyP90),
		slog.Float64("body_count_mean", s.BodyCountMean),
		slog.Float64("age_mean", s.AgeMean),
	)
}

// LogStats logs the population stats using slog.
func (s PopulationStats) LogStats() {
	slog.Info("population", "stats", s)
}
