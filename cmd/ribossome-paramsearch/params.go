// Package main searches for parameter blocks that produce stable,
// long-lived populations, grounded on the teacher's cmd/optimize
// ParamVector/Specs normalization scheme.
package main

import (
	"github.com/ribossome/ribossome/config"
)

// ParamSpec defines one optimizable scalar field of config.Params.
type ParamSpec struct {
	Name    string
	Min     float64
	Max     float64
	Default float64
}

// ParamVector holds the set of all optimizable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of searchable parameters:
// the energy/death/mutation/physics coefficients most responsible for
// whether a population persists (spec §8 scenario 5, "long-run
// population stability").
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			{Name: "energy_cost", Min: 0.0005, Max: 0.01, Default: 0.002},
			{Name: "amino_maintenance_cost", Min: 0.0001, Max: 0.005, Default: 0.001},
			{Name: "food_power", Min: 0.01, Max: 0.5, Default: 0.1},
			{Name: "poison_power", Min: 0.01, Max: 0.5, Default: 0.1},
			{Name: "repulsion_strength", Min: 0.0, Max: 2.0, Default: 0.5},
			{Name: "gamma_strength", Min: 0.0, Max: 2.0, Default: 0.5},
			{Name: "prop_wash_strength", Min: 0.0, Max: 2.0, Default: 0.3},
			{Name: "spawn_probability", Min: 0.0001, Max: 0.05, Default: 0.01},
			{Name: "death_probability", Min: 0.0, Max: 0.02, Default: 0.002},
			{Name: "mutation_rate", Min: 0.0, Max: 0.1, Default: 0.01},
			{Name: "pairing_cost", Min: 0.0, Max: 0.5, Default: 0.1},
			{Name: "drag", Min: 0.5, Max: 0.999, Default: 0.9},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int { return len(pv.Specs) }

// DefaultVector returns the default parameter values.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, s := range pv.Specs {
		v[i] = s.Default
	}
	return v
}

// Normalize maps raw values into [0,1] per spec bound.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	out := make([]float64, len(pv.Specs))
	for i, s := range pv.Specs {
		out[i] = (raw[i] - s.Min) / (s.Max - s.Min)
	}
	return out
}

// Denormalize maps [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(norm []float64) []float64 {
	out := make([]float64, len(pv.Specs))
	for i, s := range pv.Specs {
		out[i] = s.Min + norm[i]*(s.Max-s.Min)
	}
	return out
}

// Clamp bounds values to their configured [Min,Max].
func (pv *ParamVector) Clamp(v []float64) []float64 {
	out := make([]float64, len(pv.Specs))
	for i, s := range pv.Specs {
		val := v[i]
		if val < s.Min {
			val = s.Min
		}
		if val > s.Max {
			val = s.Max
		}
		out[i] = val
	}
	return out
}

// ApplyToParams writes clamped values onto the given parameter block in
// Specs order.
func (pv *ParamVector) ApplyToParams(p *config.Params, values []float64) {
	clamped := pv.Clamp(values)
	p.EnergyCost = clamped[0]
	p.AminoMaintenanceCost = clamped[1]
	p.FoodPower = clamped[2]
	p.PoisonPower = clamped[3]
	p.RepulsionStrength = clamped[4]
	p.GammaStrength = clamped[5]
	p.PropWashStrength = clamped[6]
	p.SpawnProbability = clamped[7]
	p.DeathProbability = clamped[8]
	p.MutationRate = clamped[9]
	p.PairingCost = clamped[10]
	p.Drag = clamped[11]
}
