// Package mixture evaluates the cumulative distribution of an equal-weight
// mixture of normal components, one per observation, each centered on a
// measured date with that date's own analytical spread. This is how
// per-measurement uncertainty propagates into the empirical distribution
// instead of every date being treated as an exact point.
package mixture

import (
	"fmt"

	"gonum.org/v1/gonum/stat/distuv"
)

// Density evaluates the unnormalized cumulative density at d:
// sum over components of Phi((d - mu_i) / sigma_i). The result lies in
// [0, len(mu)]. Every sigma must be positive and the slices equal length.
func Density(d float64, mu, sigma []float64) (float64, error) {
	if len(mu) != len(sigma) {
		return 0, fmt.Errorf("mixture: %d means but %d sigmas", len(mu), len(sigma))
	}

	sum := 0.0
	for i := range mu {
		if sigma[i] <= 0 {
			return 0, fmt.Errorf("mixture: component %d has non-positive sigma %v", i, sigma[i])
		}
		sum += distuv.UnitNormal.CDF((d - mu[i]) / sigma[i])
	}
	return sum, nil
}

// Probability evaluates the normalized cumulative probability at d, in [0,1].
// It equals Density(d)/n.
func Probability(d float64, mu, sigma []float64) (float64, error) {
	if len(mu) == 0 {
		return 0, fmt.Errorf("mixture: no components")
	}
	dens, err := Density(d, mu, sigma)
	if err != nil {
		return 0, err
	}
	return dens / float64(len(mu)), nil
}

// EvalOver evaluates the mixture at every point, normalized or not. Each
// point is independent of the others; the order of the output matches the
// order of the input.
func EvalOver(points, mu, sigma []float64, normalized bool) ([]float64, error) {
	out := make([]float64, len(points))
	for i, d := range points {
		var v float64
		var err error
		if normalized {
			v, err = Probability(d, mu, sigma)
		} else {
			v, err = Density(d, mu, sigma)
		}
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
