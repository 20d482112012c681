package geochron

import (
	"github.com/montanaflynn/stats"
)

// SampleSummary holds descriptive statistics for one sample, used by reports
// and the API's sample profile endpoint.
type SampleSummary struct {
	N        int     `json:"n"`
	Mean     float64 `json:"mean"`
	Median   float64 `json:"median"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	StdDev   float64 `json:"std_dev"`
	MaxSigma float64 `json:"max_sigma"`
}

// Describe computes descriptive statistics over the sample's values.
// An empty sample yields a zero summary rather than an error.
func (s *Sample) Describe() (SampleSummary, error) {
	summary := SampleSummary{N: s.Len(), MaxSigma: s.MaxSigma()}
	if s.Len() == 0 {
		return summary, nil
	}

	values := s.Values()

	var err error
	if summary.Mean, err = stats.Mean(values); err != nil {
		return summary, err
	}
	if summary.Median, err = stats.Median(values); err != nil {
		return summary, err
	}
	if summary.Min, err = stats.Min(values); err != nil {
		return summary, err
	}
	if summary.Max, err = stats.Max(values); err != nil {
		return summary, err
	}
	if s.Len() > 1 {
		if summary.StdDev, err = stats.StandardDeviationSample(values); err != nil {
			return summary, err
		}
	}

	return summary, nil
}
