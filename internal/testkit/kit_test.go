package testkit

import (
	"sort"
	"testing"
)

func TestGenerator_Deterministic(t *testing.T) {
	a := NewGenerator(42).AgeCluster(20, 90.0, 0.3)
	b := NewGenerator(42).AgeCluster(20, 90.0, 0.3)

	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("same seed diverged at %d: %v vs %v", i, a[i], b[i])
		}
	}
	if !sort.Float64sAreSorted(a) {
		t.Error("AgeCluster output should be sorted ascending")
	}
}

func TestWithXenocrysts_AppendsOlderTail(t *testing.T) {
	g := NewGenerator(7)
	cluster := g.AgeCluster(10, 100.0, 0.05)
	withTail := g.WithXenocrysts(cluster, 3, 2.0, 0.05)

	if len(withTail) != 13 {
		t.Fatalf("len = %d, want 13", len(withTail))
	}
	// The appended dates sit beyond the original oldest by about the offset.
	oldest := cluster[len(cluster)-1]
	for _, v := range withTail[10:] {
		if v <= oldest+1.0 {
			t.Errorf("xenocryst %v not clearly older than the cluster max %v", v, oldest)
		}
	}
	// The source slice is untouched.
	if len(cluster) != 10 {
		t.Error("WithXenocrysts mutated its input")
	}
}

func TestTwoSigma_Fractional(t *testing.T) {
	got := TwoSigma([]float64{100, 200}, 0.015)
	if got[0] != 1.5 || got[1] != 3.0 {
		t.Errorf("TwoSigma = %v, want [1.5 3]", got)
	}
}

func TestSample_BuildsValidSample(t *testing.T) {
	s := NewGenerator(1).Sample("synthetic", 15, 88.0, 0.4, 0.015)
	if s.Len() != 15 {
		t.Errorf("Len = %d, want 15", s.Len())
	}
	if s.Label != "synthetic" {
		t.Errorf("Label = %q", s.Label)
	}
	values := s.Values()
	if !sort.Float64sAreSorted(values) {
		t.Error("sample values should be sorted")
	}
}
