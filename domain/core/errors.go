package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Filter errors. Both are user-input failures: the xenocryst scan is
	// statistically meaningless on tiny samples, and exactly duplicated ages
	// make the local-slope denominator vanish.
	ErrInsufficientSampleSize = errors.New("insufficient sample size for xenocryst filtering")
	ErrDuplicateValues        = errors.New("duplicate age values in sample")

	// Test errors
	ErrMissingExactDistribution = errors.New("exact Smirnov distribution unavailable")
	ErrEmptySample              = errors.New("sample has no observations after cleaning")
	ErrLengthMismatch           = errors.New("values and uncertainties differ in length")
	ErrNonPositiveUncertainty   = errors.New("non-positive uncertainty")
)

// Error constructors with context

// NewFilterError attributes a filter failure to a specific sample.
func NewFilterError(label SampleLabel, err error) error {
	return fmt.Errorf("xenocryst filter on sample %q: %w", label, err)
}

// NewSampleError attributes an ingest failure to a specific sample.
func NewSampleError(label SampleLabel, err error) error {
	return fmt.Errorf("sample %q: %w", label, err)
}

// NewDistributionError attributes a null-distribution failure to the sizes requested.
func NewDistributionError(n1, n2 int, err error) error {
	return fmt.Errorf("%w: n1=%d n2=%d: %v", ErrMissingExactDistribution, n1, n2, err)
}

// Error checking helpers
func IsInsufficientSampleSize(err error) bool {
	return errors.Is(err, ErrInsufficientSampleSize)
}

func IsDuplicateValues(err error) bool {
	return errors.Is(err, ErrDuplicateValues)
}

func IsMissingExactDistribution(err error) bool {
	return errors.Is(err, ErrMissingExactDistribution)
}
