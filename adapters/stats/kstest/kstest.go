// Package kstest implements a modified two-sample Kolmogorov-Smirnov test
// for radiometric age data. Instead of treating each date as an exact point,
// each sample's empirical CDF is the equal-weight mixture of per-date normal
// distributions, so analytical uncertainty widens the curves the statistic is
// taken from. The p-value comes from the exact Smirnov null distribution over
// the post-filter sample sizes.
package kstest

import (
	"fmt"
	"log"
	"math"
	"sort"

	"geoks/adapters/stats/mixture"
	"geoks/adapters/stats/smirnov"
	"geoks/domain/core"
	"geoks/domain/geochron"
)

// Method is the label attached to every result.
const Method = "Two-sample Kolmogorov-Smirnov test with analytical uncertainties"

// NullDistribution evaluates P(D < d) under the two-sided null hypothesis for
// the sample sizes it was built with.
type NullDistribution interface {
	CDF(d float64) (float64, error)
}

// NullProvider builds a null distribution for a pair of sample sizes. The
// test requires an exact provider; an asymptotic one may be substituted only
// by a caller that deliberately opts out of exactness.
type NullProvider func(n1, n2 int) NullDistribution

// ExactProvider is the default: the exact combinatorial Smirnov distribution.
func ExactProvider(n1, n2 int) NullDistribution {
	return smirnov.ExactDist{N1: n1, N2: n2}
}

// AsymptoticProvider is the Kolmogorov limiting form, offered as an external
// extension point only. Run never falls back to it on its own.
func AsymptoticProvider(n1, n2 int) NullDistribution {
	return smirnov.Asymptotic{N1: n1, N2: n2}
}

// Options control one test run.
type Options struct {
	// Filter runs the xenocryst scan on both samples before testing.
	Filter bool `json:"filter"`
	// FilterOptions apply when Filter is set. Zero fields are substituted
	// with the package defaults; see the FilterOptions doc.
	FilterOptions FilterOptions `json:"filter_options"`
}

// Tester runs uncertainty-weighted K-S comparisons against a pluggable null
// distribution.
type Tester struct {
	null NullProvider
}

// NewTester creates a Tester backed by the exact Smirnov distribution
func NewTester() *Tester {
	return &Tester{null: ExactProvider}
}

// NewTesterWithNull creates a Tester with a caller-supplied null provider
func NewTesterWithNull(provider NullProvider) *Tester {
	return &Tester{null: provider}
}

// Run compares two samples and produces an immutable TestResult. Fatal
// conditions (filter failures, missing null distribution, empty samples)
// abort with sample attribution; low-sample-size and cross-sample-tie
// advisories are attached to the result and execution continues.
func (t *Tester) Run(x, y *geochron.Sample, opts Options) (*geochron.TestResult, error) {
	if x.Len() == 0 {
		return nil, core.NewSampleError(x.Label, core.ErrEmptySample)
	}
	if y.Len() == 0 {
		return nil, core.NewSampleError(y.Label, core.ErrEmptySample)
	}

	inputHash := core.ComputeInputHash(x.Values(), x.Sigmas(), y.Values(), y.Sigmas())

	var warnings []geochron.Warning
	for _, s := range []*geochron.Sample{x, y} {
		if s.Len() <= 6 {
			w := geochron.Warning{
				Code:    geochron.WarningLowSampleSize,
				Message: fmt.Sprintf("sample %q has only %d observations; the test proceeds but has little power", s.Label, s.Len()),
			}
			warnings = append(warnings, w)
			log.Printf("[KSTest] %s", w.Message)
		}
	}

	var filterX, filterY *geochron.FilterResult
	if opts.Filter {
		fopts := opts.FilterOptions
		if fopts.Threshold == 0 {
			fopts.Threshold = DefaultSlopeThreshold
		}
		if fopts.SigmaScale == 0 {
			fopts.SigmaScale = DefaultFilterSigmaScale
		}

		var err error
		if filterX, err = FilterXenocrysts(x, fopts); err != nil {
			return nil, err
		}
		if filterY, err = FilterXenocrysts(y, fopts); err != nil {
			return nil, err
		}
		if filterX.Found() {
			x = filterX.RetainedSample()
		}
		if filterY.Found() {
			y = filterY.RetainedSample()
		}
	}

	if w, tied := crossSampleTie(x, y); tied {
		warnings = append(warnings, w)
		log.Printf("[KSTest] %s", w.Message)
	}

	pooled := make([]float64, 0, x.Len()+y.Len())
	pooled = append(pooled, x.Values()...)
	pooled = append(pooled, y.Values()...)
	sort.Float64s(pooled)

	px, err := mixture.EvalOver(pooled, x.Values(), x.Sigmas(), true)
	if err != nil {
		return nil, core.NewSampleError(x.Label, err)
	}
	py, err := mixture.EvalOver(pooled, y.Values(), y.Sigmas(), true)
	if err != nil {
		return nil, core.NewSampleError(y.Label, err)
	}

	statistic := 0.0
	for i := range pooled {
		if diff := math.Abs(px[i] - py[i]); diff > statistic {
			statistic = diff
		}
	}
	// All pooled points attaining the maximum are winners; symmetric
	// configurations can tie at several points.
	var winners []float64
	for i := range pooled {
		if math.Abs(px[i]-py[i]) == statistic {
			winners = append(winners, pooled[i])
		}
	}

	if t.null == nil {
		return nil, core.NewDistributionError(x.Len(), y.Len(), fmt.Errorf("no null distribution provider configured"))
	}
	dist := t.null(x.Len(), y.Len())
	cdf, err := dist.CDF(statistic)
	if err != nil {
		return nil, core.NewDistributionError(x.Len(), y.Len(), err)
	}
	pValue := 1 - cdf
	if pValue < 0 {
		pValue = 0
	}
	if pValue > 1 {
		pValue = 1
	}

	result := &geochron.TestResult{
		ID:          core.NewResultID(),
		Statistic:   statistic,
		PValue:      pValue,
		Winners:     winners,
		Alternative: "two-sided",
		Method:      Method,
		NX:          x.Len(),
		NY:          y.Len(),
		PooledN:     len(pooled),
		Warnings:    warnings,
		FilterX:     filterX,
		FilterY:     filterY,
		InputHash:   inputHash,
		CreatedAt:   core.Now(),
	}

	log.Printf("[KSTest] D=%.6f p=%.6f n_x=%d n_y=%d winners=%d", statistic, pValue, result.NX, result.NY, len(winners))
	return result, nil
}

// crossSampleTie reports the first value shared by both samples. Ties weaken
// the interpretation of the exact p-value but do not stop the test.
func crossSampleTie(x, y *geochron.Sample) (geochron.Warning, bool) {
	seen := make(map[float64]bool, x.Len())
	for _, v := range x.Values() {
		seen[v] = true
	}
	for _, v := range y.Values() {
		if seen[v] {
			return geochron.Warning{
				Code:    geochron.WarningTiedValues,
				Message: fmt.Sprintf("value %v appears in both samples; exact p-value interpretation is weaker near ties", v),
			}, true
		}
	}
	return geochron.Warning{}, false
}
