// Package testkit generates deterministic synthetic age samples for tests
// and CLI demos.
package testkit

import (
	"fmt"
	"math/rand"
	"sort"

	"geoks/domain/core"
	"geoks/domain/geochron"
)

// Generator produces synthetic radiometric age data from a fixed seed, so
// every run of the same scenario sees identical values.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator creates a generator with a fixed seed
func NewGenerator(seed int64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

// AgeCluster draws n ages from a normal population centered on center with
// the given spread, sorted ascending.
func (g *Generator) AgeCluster(n int, center, spread float64) []float64 {
	values := make([]float64, n)
	for i := range values {
		values[i] = center + g.rng.NormFloat64()*spread
	}
	sort.Float64s(values)
	return values
}

// WithXenocrysts appends count anomalously old ages offset above the cluster,
// the shape the xenocryst scan is meant to excise.
func (g *Generator) WithXenocrysts(values []float64, count int, offset, spread float64) []float64 {
	oldest := values[len(values)-1]
	out := make([]float64, len(values), len(values)+count)
	copy(out, values)
	for i := 0; i < count; i++ {
		out = append(out, oldest+offset+g.rng.NormFloat64()*spread)
	}
	sort.Float64s(out)
	return out
}

// TwoSigma builds two-sigma uncertainties as a fixed fraction of each value,
// matching how analytical uncertainty is usually reported.
func TwoSigma(values []float64, frac float64) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = v * frac
	}
	return out
}

// Sample builds a geochron.Sample from a cluster with fractional two-sigma
// uncertainties. It panics on invalid parameters, which only happen when the
// scenario itself is wrong.
func (g *Generator) Sample(label core.SampleLabel, n int, center, spread, twoSigmaFrac float64) *geochron.Sample {
	values := g.AgeCluster(n, center, spread)
	s, err := geochron.NewSample(label, values, TwoSigma(values, twoSigmaFrac))
	if err != nil {
		panic(fmt.Sprintf("testkit: bad scenario: %v", err))
	}
	return s
}
