// Package visualize produces diagnostic data series for mixture CDFs. It
// renders nothing: the output is (x, y) curves, plus vertical spans between
// two curves at the pooled sample points, for an external plotting sink.
package visualize

import (
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"geoks/adapters/stats/mixture"
	"geoks/domain/core"
	"geoks/domain/geochron"
)

// Mode selects the mixture evaluation: normalized probability in [0,1] or
// unnormalized density in [0,n].
type Mode string

const (
	ModeProbability Mode = "probability"
	ModeDensity     Mode = "density"
)

// DefaultGridPoints is the curve granularity when the caller does not choose one.
const DefaultGridPoints = 800

// Point is one evaluated position on a curve.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Series traces one sample's mixture CDF over an auto-ranged domain.
type Series struct {
	Label  core.SampleLabel `json:"label"`
	Mode   Mode             `json:"mode"`
	Points []Point          `json:"points"`
}

// Span is the vertical distance between two CDFs at one pooled sample point.
// Winner marks the span(s) where the K-S statistic was attained.
type Span struct {
	X      float64 `json:"x"`
	YLow   float64 `json:"y_low"`
	YHigh  float64 `json:"y_high"`
	Winner bool    `json:"winner"`
}

// Comparison is the full two-sample diagnostic: both curves plus the spans.
type Comparison struct {
	CurveX Series `json:"curve_x"`
	CurveY Series `json:"curve_y"`
	Spans  []Span `json:"spans"`
}

// Curve evaluates one sample's mixture CDF at gridPoints evenly spaced
// positions across [min - 3*maxSigma, max + 3*maxSigma].
func Curve(s *geochron.Sample, mode Mode, gridPoints int) (Series, error) {
	if s.Len() == 0 {
		return Series{}, fmt.Errorf("visualize: sample %q has no observations", s.Label)
	}
	if gridPoints <= 1 {
		gridPoints = DefaultGridPoints
	}

	lo, hi := domainBounds(s)
	return evalSeries(s, mode, grid(lo, hi, gridPoints))
}

// Compare evaluates both samples' curves over a shared domain and emits the
// vertical span between them at every pooled sample point. When a prior test
// result is supplied, the spans at its winner point(s) are flagged. The two
// curves are independent, so they are evaluated concurrently.
func Compare(x, y *geochron.Sample, result *geochron.TestResult, gridPoints int) (*Comparison, error) {
	if x.Len() == 0 || y.Len() == 0 {
		return nil, fmt.Errorf("visualize: both samples need observations")
	}
	if gridPoints <= 1 {
		gridPoints = DefaultGridPoints
	}

	loX, hiX := domainBounds(x)
	loY, hiY := domainBounds(y)
	lo, hi := loX, hiX
	if loY < lo {
		lo = loY
	}
	if hiY > hi {
		hi = hiY
	}
	points := grid(lo, hi, gridPoints)

	comp := &Comparison{}
	var g errgroup.Group
	g.Go(func() error {
		series, err := evalSeries(x, ModeProbability, points)
		comp.CurveX = series
		return err
	})
	g.Go(func() error {
		series, err := evalSeries(y, ModeProbability, points)
		comp.CurveY = series
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	winners := make(map[float64]bool)
	if result != nil {
		for _, w := range result.Winners {
			winners[w] = true
		}
	}

	pooled := append(x.Values(), y.Values()...)
	sort.Float64s(pooled)
	for _, p := range pooled {
		px, err := mixture.Probability(p, x.Values(), x.Sigmas())
		if err != nil {
			return nil, err
		}
		py, err := mixture.Probability(p, y.Values(), y.Sigmas())
		if err != nil {
			return nil, err
		}
		lo, hi := px, py
		if lo > hi {
			lo, hi = hi, lo
		}
		comp.Spans = append(comp.Spans, Span{X: p, YLow: lo, YHigh: hi, Winner: winners[p]})
	}

	return comp, nil
}

func domainBounds(s *geochron.Sample) (float64, float64) {
	values := s.Values()
	pad := 3 * s.MaxSigma()
	return values[0] - pad, values[len(values)-1] + pad
}

func grid(lo, hi float64, n int) []float64 {
	step := (hi - lo) / float64(n-1)
	points := make([]float64, n)
	for i := range points {
		points[i] = lo + float64(i)*step
	}
	return points
}

func evalSeries(s *geochron.Sample, mode Mode, points []float64) (Series, error) {
	ys, err := mixture.EvalOver(points, s.Values(), s.Sigmas(), mode == ModeProbability)
	if err != nil {
		return Series{}, err
	}
	series := Series{Label: s.Label, Mode: mode, Points: make([]Point, len(points))}
	for i := range points {
		series.Points[i] = Point{X: points[i], Y: ys[i]}
	}
	return series, nil
}
