package geochron

import (
	"errors"
	"math"
	"testing"

	"geoks/domain/core"
)

func TestNewSample_HalvesTwoSigmaAndSorts(t *testing.T) {
	sample, err := NewSample("zircon-a", []float64{90.3, 88.7, 89.5}, []float64{1.2, 0.8, 1.0})
	if err != nil {
		t.Fatalf("NewSample returned error: %v", err)
	}

	wantValues := []float64{88.7, 89.5, 90.3}
	wantSigmas := []float64{0.4, 0.5, 0.6}
	if sample.Len() != 3 {
		t.Fatalf("Len = %d, want 3", sample.Len())
	}
	for i, v := range sample.Values() {
		if v != wantValues[i] {
			t.Errorf("Values[%d] = %v, want %v", i, v, wantValues[i])
		}
	}
	for i, s := range sample.Sigmas() {
		if math.Abs(s-wantSigmas[i]) > 1e-12 {
			t.Errorf("Sigmas[%d] = %v, want %v", i, s, wantSigmas[i])
		}
	}
}

func TestNewSample_DropsNaNPairs(t *testing.T) {
	values := []float64{88.5, math.NaN(), 89.2, 90.0}
	twoSigma := []float64{1.0, 1.0, math.NaN(), 1.0}

	sample, err := NewSample("partial", values, twoSigma)
	if err != nil {
		t.Fatalf("NewSample returned error: %v", err)
	}
	if sample.Len() != 2 {
		t.Fatalf("Len = %d, want 2 after dropping NaN pairs", sample.Len())
	}
	got := sample.Values()
	if got[0] != 88.5 || got[1] != 90.0 {
		t.Errorf("retained values = %v, want [88.5 90]", got)
	}
}

func TestNewSample_RejectsLengthMismatch(t *testing.T) {
	_, err := NewSample("bad", []float64{1, 2, 3}, []float64{0.1, 0.1})
	if err == nil {
		t.Fatal("expected error on length mismatch")
	}
	if !errors.Is(err, core.ErrLengthMismatch) {
		t.Errorf("error %v does not wrap ErrLengthMismatch", err)
	}
}

func TestNewSample_RejectsNonPositiveUncertainty(t *testing.T) {
	for _, bad := range []float64{0, -0.5} {
		_, err := NewSample("bad", []float64{10.0}, []float64{bad})
		if err == nil {
			t.Fatalf("expected error for 2-sigma %v", bad)
		}
		if !errors.Is(err, core.ErrNonPositiveUncertainty) {
			t.Errorf("error %v does not wrap ErrNonPositiveUncertainty", err)
		}
	}
}

func TestNewSample_NaNUncertaintyDropsPairBeforeValidation(t *testing.T) {
	// A NaN pair drops before the positivity check, so a NaN uncertainty
	// never errors.
	sample, err := NewSample("gap", []float64{10.0, 11.0}, []float64{math.NaN(), 0.5})
	if err != nil {
		t.Fatalf("NewSample returned error: %v", err)
	}
	if sample.Len() != 1 || sample.Values()[0] != 11.0 {
		t.Errorf("got %v, want just the 11.0 observation", sample.Values())
	}
}

func TestScaledSigmas(t *testing.T) {
	sample, err := NewSample("s", []float64{100.0}, []float64{2.0})
	if err != nil {
		t.Fatalf("NewSample returned error: %v", err)
	}
	// 2-sigma 2.0 ingests as 1-sigma 1.0; scaled by 0.5 gives 0.5.
	got := sample.ScaledSigmas(0.5)
	if len(got) != 1 || math.Abs(got[0]-0.5) > 1e-12 {
		t.Errorf("ScaledSigmas(0.5) = %v, want [0.5]", got)
	}
}

func TestHasDuplicateValues(t *testing.T) {
	dup, _ := NewSample("dup", []float64{1, 2, 2, 3}, []float64{1, 1, 1, 1})
	if !dup.HasDuplicateValues() {
		t.Error("expected duplicates to be detected")
	}
	clean, _ := NewSample("clean", []float64{1, 2, 3}, []float64{1, 1, 1})
	if clean.HasDuplicateValues() {
		t.Error("no duplicates expected")
	}
}

func TestFromObservations_SortsCopy(t *testing.T) {
	obs := []Observation{{Value: 3, Sigma: 0.1}, {Value: 1, Sigma: 0.2}}
	sample := FromObservations("resort", obs)

	if got := sample.Values(); got[0] != 1 || got[1] != 3 {
		t.Errorf("Values = %v, want ascending", got)
	}
	// The input slice is untouched.
	if obs[0].Value != 3 {
		t.Error("FromObservations mutated its input")
	}
}

func TestDescribe(t *testing.T) {
	sample, err := NewSample("desc", []float64{1, 2, 3, 4, 5}, []float64{0.2, 0.2, 0.2, 0.2, 0.4})
	if err != nil {
		t.Fatalf("NewSample returned error: %v", err)
	}
	summary, err := sample.Describe()
	if err != nil {
		t.Fatalf("Describe returned error: %v", err)
	}
	if summary.N != 5 || summary.Mean != 3 || summary.Median != 3 || summary.Min != 1 || summary.Max != 5 {
		t.Errorf("unexpected summary: %+v", summary)
	}
	if math.Abs(summary.StdDev-math.Sqrt(2.5)) > 1e-12 {
		t.Errorf("StdDev = %v, want sqrt(2.5)", summary.StdDev)
	}
	if math.Abs(summary.MaxSigma-0.2) > 1e-12 {
		t.Errorf("MaxSigma = %v, want 0.2 (half of the largest 2-sigma)", summary.MaxSigma)
	}

	empty := &Sample{Label: "empty"}
	zero, err := empty.Describe()
	if err != nil {
		t.Fatalf("Describe on empty sample returned error: %v", err)
	}
	if zero.N != 0 || zero.Mean != 0 {
		t.Errorf("empty summary = %+v, want zero values", zero)
	}
}
