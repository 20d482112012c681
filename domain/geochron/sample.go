package geochron

import (
	"fmt"
	"math"
	"sort"

	"geoks/domain/core"
)

// Observation is a single measured date and its one-sigma analytical
// uncertainty. Callers supply two-sigma uncertainties; NewSample halves them
// on ingest so everything downstream works in one-sigma units.
type Observation struct {
	Value float64 `json:"value"`
	Sigma float64 `json:"sigma"`
}

// Sample is an ascending-by-value sequence of observations. It is built once
// per test or filter invocation and never mutated afterwards; the xenocryst
// filter produces a new Sample for its retained subset.
type Sample struct {
	Label        core.SampleLabel `json:"label"`
	Observations []Observation    `json:"observations"`
}

// NewSample builds a Sample from parallel values and two-sigma uncertainty
// slices. Pairs where either entry is NaN are dropped before any validation,
// so partially-missing spreadsheet rows never reach the numeric core.
func NewSample(label core.SampleLabel, values, twoSigma []float64) (*Sample, error) {
	if len(values) != len(twoSigma) {
		return nil, core.NewSampleError(label, fmt.Errorf("%w: %d values, %d uncertainties",
			core.ErrLengthMismatch, len(values), len(twoSigma)))
	}

	obs := make([]Observation, 0, len(values))
	for i := range values {
		if math.IsNaN(values[i]) || math.IsNaN(twoSigma[i]) {
			continue
		}
		if twoSigma[i] <= 0 {
			return nil, core.NewSampleError(label, fmt.Errorf("%w: index %d has 2-sigma %v",
				core.ErrNonPositiveUncertainty, i, twoSigma[i]))
		}
		obs = append(obs, Observation{Value: values[i], Sigma: twoSigma[i] / 2})
	}

	sort.Slice(obs, func(i, j int) bool { return obs[i].Value < obs[j].Value })

	return &Sample{Label: label, Observations: obs}, nil
}

// FromObservations builds a Sample from observations already in one-sigma
// units (the filter's retained subset takes this path).
func FromObservations(label core.SampleLabel, obs []Observation) *Sample {
	sorted := make([]Observation, len(obs))
	copy(sorted, obs)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Value < sorted[j].Value })
	return &Sample{Label: label, Observations: sorted}
}

// Len returns the number of observations
func (s *Sample) Len() int {
	return len(s.Observations)
}

// Values returns the observed dates in ascending order
func (s *Sample) Values() []float64 {
	out := make([]float64, len(s.Observations))
	for i, o := range s.Observations {
		out[i] = o.Value
	}
	return out
}

// Sigmas returns the one-sigma uncertainties, parallel to Values
func (s *Sample) Sigmas() []float64 {
	out := make([]float64, len(s.Observations))
	for i, o := range s.Observations {
		out[i] = o.Sigma
	}
	return out
}

// ScaledSigmas returns the one-sigma uncertainties multiplied by scale,
// parallel to Values. The xenocryst filter evaluates its mixture at half the
// one-sigma spread, so it reads sigmas through this with scale 0.5.
func (s *Sample) ScaledSigmas(scale float64) []float64 {
	out := make([]float64, len(s.Observations))
	for i, o := range s.Observations {
		out[i] = o.Sigma * scale
	}
	return out
}

// MaxSigma returns the largest one-sigma uncertainty, or 0 for an empty sample
func (s *Sample) MaxSigma() float64 {
	max := 0.0
	for _, o := range s.Observations {
		if o.Sigma > max {
			max = o.Sigma
		}
	}
	return max
}

// HasDuplicateValues reports whether any two observations share an exact value
func (s *Sample) HasDuplicateValues() bool {
	for i := 1; i < len(s.Observations); i++ {
		if s.Observations[i].Value == s.Observations[i-1].Value {
			return true
		}
	}
	return false
}
