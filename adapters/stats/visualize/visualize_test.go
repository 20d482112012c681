package visualize

import (
	"math"
	"testing"

	"geoks/adapters/stats/kstest"
	"geoks/domain/core"
	"geoks/domain/geochron"
)

func mustSample(t *testing.T, label core.SampleLabel, values, twoSigma []float64) *geochron.Sample {
	t.Helper()
	s, err := geochron.NewSample(label, values, twoSigma)
	if err != nil {
		t.Fatalf("NewSample(%q): %v", label, err)
	}
	return s
}

func TestCurve_ProbabilityMode(t *testing.T) {
	sample := mustSample(t, "curve", []float64{10, 11, 12}, []float64{0.2, 0.2, 0.2})

	series, err := Curve(sample, ModeProbability, 101)
	if err != nil {
		t.Fatalf("Curve returned error: %v", err)
	}
	if series.Label != "curve" || series.Mode != ModeProbability {
		t.Errorf("series header = %q/%q", series.Label, series.Mode)
	}
	if len(series.Points) != 101 {
		t.Fatalf("got %d points, want 101", len(series.Points))
	}

	// The domain pads three max-sigma past the extremes.
	wantLo, wantHi := 10-3*0.1, 12+3*0.1
	if math.Abs(series.Points[0].X-wantLo) > 1e-12 {
		t.Errorf("domain start = %v, want %v", series.Points[0].X, wantLo)
	}
	if math.Abs(series.Points[100].X-wantHi) > 1e-12 {
		t.Errorf("domain end = %v, want %v", series.Points[100].X, wantHi)
	}

	// Probability curves are non-decreasing and bounded by [0,1].
	prev := -1.0
	for _, p := range series.Points {
		if p.Y < prev {
			t.Fatalf("curve decreased at x=%v", p.X)
		}
		if p.Y < 0 || p.Y > 1 {
			t.Fatalf("curve left [0,1] at x=%v: %v", p.X, p.Y)
		}
		prev = p.Y
	}
	if series.Points[0].Y > 0.01 || series.Points[100].Y < 0.99 {
		t.Errorf("curve should run edge to edge: %v .. %v", series.Points[0].Y, series.Points[100].Y)
	}
}

func TestCurve_DensityModeScalesWithN(t *testing.T) {
	sample := mustSample(t, "dens", []float64{10, 11, 12, 13}, []float64{0.2, 0.2, 0.2, 0.2})

	series, err := Curve(sample, ModeDensity, 51)
	if err != nil {
		t.Fatalf("Curve returned error: %v", err)
	}
	top := series.Points[len(series.Points)-1].Y
	if math.Abs(top-4.0) > 0.01 {
		t.Errorf("density curve tops out at %v, want ~4", top)
	}
}

func TestCurve_DefaultsGridPoints(t *testing.T) {
	sample := mustSample(t, "dflt", []float64{5, 6}, []float64{0.1, 0.1})

	series, err := Curve(sample, ModeProbability, 0)
	if err != nil {
		t.Fatalf("Curve returned error: %v", err)
	}
	if len(series.Points) != DefaultGridPoints {
		t.Errorf("got %d points, want DefaultGridPoints=%d", len(series.Points), DefaultGridPoints)
	}
}

func TestCurve_EmptySample(t *testing.T) {
	empty := &geochron.Sample{Label: "none"}
	if _, err := Curve(empty, ModeProbability, 10); err == nil {
		t.Error("expected error for empty sample")
	}
}

func TestCompare_SpansAndWinners(t *testing.T) {
	xv := []float64{88.78, 89.003, 89.04, 89.64, 89.72, 89.74, 89.753, 89.84, 89.891, 90.301}
	yv := []float64{88.343, 88.427, 88.478, 88.481, 88.482, 88.515, 90.115}
	twoSigmaX := make([]float64, len(xv))
	for i, v := range xv {
		twoSigmaX[i] = v * 0.015
	}
	twoSigmaY := make([]float64, len(yv))
	for i, v := range yv {
		twoSigmaY[i] = v * 0.015
	}
	x := mustSample(t, "x", xv, twoSigmaX)
	y := mustSample(t, "y", yv, twoSigmaY)

	result, err := kstest.NewTester().Run(x, y, kstest.Options{})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	comp, err := Compare(x, y, result, 200)
	if err != nil {
		t.Fatalf("Compare returned error: %v", err)
	}

	if len(comp.CurveX.Points) != 200 || len(comp.CurveY.Points) != 200 {
		t.Fatalf("curves have %d/%d points, want 200 each",
			len(comp.CurveX.Points), len(comp.CurveY.Points))
	}
	// Shared domain: both curves start and end at the same x.
	if comp.CurveX.Points[0].X != comp.CurveY.Points[0].X {
		t.Error("curves do not share a domain start")
	}

	if len(comp.Spans) != x.Len()+y.Len() {
		t.Fatalf("got %d spans, want one per pooled observation (%d)", len(comp.Spans), x.Len()+y.Len())
	}

	var winners, largest int
	maxGap := -1.0
	for i, s := range comp.Spans {
		if s.YHigh < s.YLow {
			t.Fatalf("span %d inverted: [%v, %v]", i, s.YLow, s.YHigh)
		}
		if i > 0 && s.X < comp.Spans[i-1].X {
			t.Fatal("spans not in ascending x order")
		}
		if gap := s.YHigh - s.YLow; gap > maxGap {
			maxGap, largest = gap, i
		}
		if s.Winner {
			winners++
		}
	}
	if winners != len(result.Winners) {
		t.Errorf("%d winner spans, want %d", winners, len(result.Winners))
	}
	if !comp.Spans[largest].Winner {
		t.Error("the widest span should be the flagged winner")
	}
	if math.Abs(maxGap-result.Statistic) > 1e-12 {
		t.Errorf("widest span %v does not match the statistic %v", maxGap, result.Statistic)
	}
}

func TestCompare_NilResultFlagsNothing(t *testing.T) {
	x := mustSample(t, "x", []float64{1, 2, 3}, []float64{0.2, 0.2, 0.2})
	y := mustSample(t, "y", []float64{1.5, 2.5, 3.5}, []float64{0.2, 0.2, 0.2})

	comp, err := Compare(x, y, nil, 50)
	if err != nil {
		t.Fatalf("Compare returned error: %v", err)
	}
	for _, s := range comp.Spans {
		if s.Winner {
			t.Fatal("no winner flags expected without a result")
		}
	}
}

func TestCompare_EmptySample(t *testing.T) {
	x := mustSample(t, "x", []float64{1, 2}, []float64{0.2, 0.2})
	empty := &geochron.Sample{Label: "none"}
	if _, err := Compare(x, empty, nil, 50); err == nil {
		t.Error("expected error for empty sample")
	}
}
