package kstest

import (
	"fmt"
	"log"

	"geoks/adapters/stats/mixture"
	"geoks/domain/core"
	"geoks/domain/geochron"
)

const (
	// DefaultSlopeThreshold is 1/0.45. For a near-step mixture the local CDF
	// slope over a gap is roughly one probability step per age unit, so this
	// permits at most ~0.45 age units between consecutive accepted dates.
	DefaultSlopeThreshold = 1.0 / 0.45

	// DefaultFilterSigmaScale halves the one-sigma uncertainties once more
	// inside the filter's mixture, so the scan runs at one quarter of the
	// reported two-sigma spread. This reproduces the source behavior; it is
	// configurable because the extra halving is inconsistent with the
	// one-sigma convention the test itself uses.
	DefaultFilterSigmaScale = 0.5

	// MinFilterSampleSize is the smallest sample the scan accepts. Anything
	// smaller fails with ErrInsufficientSampleSize.
	MinFilterSampleSize = 7
)

// FilterOptions control the xenocryst scan. A zero field means "use the
// default": Run substitutes DefaultSlopeThreshold and DefaultFilterSigmaScale
// before invoking the scan. Neither zero is a meaningful setting on its own --
// mixture CDF slopes are strictly positive, so a literal zero threshold could
// never cut, and a zero sigma scale collapses every component of the mixture.
// Callers invoking FilterXenocrysts directly should start from
// DefaultFilterOptions.
type FilterOptions struct {
	// Threshold is the maximum local CDF slope still considered a gap.
	Threshold float64 `json:"threshold"`
	// SigmaScale multiplies the one-sigma uncertainties inside the scan's
	// mixture. 1.0 evaluates at the one-sigma spread itself.
	SigmaScale float64 `json:"sigma_scale"`
}

// DefaultFilterOptions returns the scan parameters matching the source behavior
func DefaultFilterOptions() FilterOptions {
	return FilterOptions{
		Threshold:  DefaultSlopeThreshold,
		SigmaScale: DefaultFilterSigmaScale,
	}
}

// FilterXenocrysts scans a sample, youngest to oldest, for a trailing run of
// anomalously old dates. At each consecutive pair it takes the local slope of
// the normalized mixture CDF built from the whole sample; the first pair
// whose slope drops to the threshold or below marks the cut, and that date
// plus everything older is classified xenocrystic en bloc. A scan that never
// qualifies returns a FilterResult with no xenocrysts, which is a normal
// outcome rather than an error.
func FilterXenocrysts(sample *geochron.Sample, opts FilterOptions) (*geochron.FilterResult, error) {
	n := sample.Len()
	if n < MinFilterSampleSize {
		return nil, core.NewFilterError(sample.Label,
			fmt.Errorf("%w: %d observations, need at least %d",
				core.ErrInsufficientSampleSize, n, MinFilterSampleSize))
	}
	if sample.HasDuplicateValues() {
		return nil, core.NewFilterError(sample.Label,
			fmt.Errorf("%w: slope denominator would vanish", core.ErrDuplicateValues))
	}

	values := sample.Values()
	sigmas := sample.ScaledSigmas(opts.SigmaScale)

	probs, err := mixture.EvalOver(values, values, sigmas, true)
	if err != nil {
		return nil, core.NewFilterError(sample.Label, err)
	}

	result := &geochron.FilterResult{
		Label:      sample.Label,
		Threshold:  opts.Threshold,
		SigmaScale: opts.SigmaScale,
		Xenocrysts: []geochron.Observation{},
		Retained:   sample.Observations,
	}

	for i := 1; i < n; i++ {
		slope := (probs[i] - probs[i-1]) / (values[i] - values[i-1])
		if slope <= opts.Threshold {
			// First qualifying gap wins; the older tail is discarded as a
			// block, not re-evaluated pair by pair.
			result.Xenocrysts = sample.Observations[i:]
			result.Retained = sample.Observations[:i]
			log.Printf("[XenocrystFilter] sample %q: cut at %v (slope %.4f <= %.4f), %d of %d dates excised",
				sample.Label, values[i], slope, opts.Threshold, n-i, n)
			return result, nil
		}
	}

	log.Printf("[XenocrystFilter] sample %q: no xenocrysts found (%d dates)", sample.Label, n)
	return result, nil
}
