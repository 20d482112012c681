// Package smirnov computes the null distribution of the two-sample
// Kolmogorov-Smirnov statistic for given sample sizes. ExactDist is the
// exact (combinatorial) two-sided distribution; Asymptotic is the Kolmogorov
// limiting form, provided only as an explicitly-labeled substitute for
// callers that opt out of exactness.
package smirnov

import (
	"fmt"
	"math"
)

// ExactDist is the exact discrete null distribution of the two-sample K-S
// statistic D for samples of sizes N1 and N2 with no ties.
//
// CDF counts the monotone lattice paths from (0,0) to (N1,N2) that stay
// inside the band |i/N1 - j/N2| <= d, as a fraction of all C(N1+N2, N1)
// paths (Hodges 1958, "The significance probability of the Smirnov
// two-sample test"). The count is built by a single-row dynamic program with
// the path weights folded in as running fractions, so nothing overflows for
// large samples.
type ExactDist struct {
	N1, N2 int
}

// CDF returns P(D < d) under the null hypothesis that both samples come from
// the same continuous distribution. Runs in O(N1*N2) time.
func (s ExactDist) CDF(d float64) (float64, error) {
	m, n := s.N1, s.N2
	if m < 1 || n < 1 {
		return 0, fmt.Errorf("smirnov: sample sizes must be positive, got n1=%d n2=%d", m, n)
	}
	if d <= 0 {
		return 0, nil
	}
	if d > 1 {
		return 1, nil
	}

	md, nd := float64(m), float64(n)
	// Snap d onto the lattice of attainable statistic values. D only takes
	// values k/(m*n) for integer k, so nudge down to the band boundary just
	// below d; the 1e-7 guards against d sitting a rounding error above a
	// lattice point.
	q := (0.5 + math.Floor(d*md*nd-1e-7)) / (md * nd)

	u := make([]float64, n+1)
	for j := 0; j <= n; j++ {
		if float64(j)/nd > q {
			u[j] = 0
		} else {
			u[j] = 1
		}
	}
	for i := 1; i <= m; i++ {
		w := float64(i) / (float64(i) + nd)
		if float64(i)/md > q {
			u[0] = 0
		} else {
			u[0] = w * u[0]
		}
		for j := 1; j <= n; j++ {
			if math.Abs(float64(i)/md-float64(j)/nd) > q {
				u[j] = 0
			} else {
				u[j] = w*u[j] + u[j-1]
			}
		}
	}
	return u[n], nil
}

// Asymptotic is the large-sample Kolmogorov limiting distribution. It is NOT
// a valid substitute for ExactDist in the core test; it exists so that
// external callers with sample sizes far beyond geochronological practice can
// plug in an approximate null deliberately.
type Asymptotic struct {
	N1, N2 int
}

// CDF returns the limiting-form approximation to P(D < d).
func (s Asymptotic) CDF(d float64) (float64, error) {
	m, n := float64(s.N1), float64(s.N2)
	if s.N1 < 1 || s.N2 < 1 {
		return 0, fmt.Errorf("smirnov: sample sizes must be positive, got n1=%d n2=%d", s.N1, s.N2)
	}
	en := math.Sqrt(m * n / (m + n))
	return pks(en * d), nil
}

// pks is the Kolmogorov distribution function P(K < z), evaluated by the
// power series appropriate to each tail (Numerical Recipes 3rd ed., 6.14.56
// and 6.14.57).
func pks(z float64) float64 {
	if z <= 0 {
		return 0
	}
	if z < 1.18 {
		y := math.Exp(-1.23370055013616983 / (z * z))
		return 2.25675833419102515 * math.Sqrt(-math.Log(y)) *
			(y + math.Pow(y, 9) + math.Pow(y, 25) + math.Pow(y, 49))
	}
	x := math.Exp(-2 * z * z)
	return 1 - 2*(x-math.Pow(x, 4)+math.Pow(x, 9))
}
