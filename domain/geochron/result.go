package geochron

import (
	"geoks/domain/core"
)

// Warning codes for non-fatal advisories attached to a TestResult.
const (
	WarningLowSampleSize = "low_sample_size"
	WarningTiedValues    = "tied_values"
)

// Warning is a non-fatal advisory. The test still returns a full result;
// warnings qualify how much weight its p-value should carry.
type Warning struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// FilterResult is the outcome of one xenocryst scan over one sample.
// Empty Xenocrysts is the normal "no xenocrysts found" variant, not an error.
type FilterResult struct {
	Label      core.SampleLabel `json:"label"`
	Threshold  float64          `json:"threshold"`
	SigmaScale float64          `json:"sigma_scale"`
	Xenocrysts []Observation    `json:"xenocrysts"`
	Retained   []Observation    `json:"retained"`
}

// Found reports whether the scan classified any observation as xenocrystic
func (r *FilterResult) Found() bool {
	return len(r.Xenocrysts) > 0
}

// RetainedSample rebuilds a Sample from the retained observations
func (r *FilterResult) RetainedSample() *Sample {
	return FromObservations(r.Label, r.Retained)
}

// XenocrystValues returns just the excised dates, oldest-first order preserved
func (r *FilterResult) XenocrystValues() []float64 {
	out := make([]float64, len(r.Xenocrysts))
	for i, o := range r.Xenocrysts {
		out[i] = o.Value
	}
	return out
}

// TestResult is the immutable output of one uncertainty-weighted K-S test run.
type TestResult struct {
	ID          core.ResultID  `json:"id"`
	Statistic   float64        `json:"statistic"`
	PValue      float64        `json:"p_value"`
	Winners     []float64      `json:"winners"`
	Alternative string         `json:"alternative"`
	Method      string         `json:"method"`
	NX          int            `json:"n_x"`
	NY          int            `json:"n_y"`
	PooledN     int            `json:"pooled_n"`
	Warnings    []Warning      `json:"warnings,omitempty"`
	FilterX     *FilterResult  `json:"filter_x,omitempty"`
	FilterY     *FilterResult  `json:"filter_y,omitempty"`
	InputHash   core.InputHash `json:"input_hash"`
	CreatedAt   core.Timestamp `json:"created_at"`
}

// Filtered reports whether xenocryst filtering was part of this run
func (r *TestResult) Filtered() bool {
	return r.FilterX != nil || r.FilterY != nil
}

// HasWarning reports whether a warning with the given code was emitted
func (r *TestResult) HasWarning(code string) bool {
	for _, w := range r.Warnings {
		if w.Code == code {
			return true
		}
	}
	return false
}
