package cscv

import (
	"gopbo/domain/backtest"
	"gopbo/domain/core"

	"gonum.org/v1/gonum/stat"
)

// Summary carries the PBO estimate and pass-through diagnostics over
// the lambda distribution.
type Summary struct {
	PBO      float64
	Mean     float64
	Variance float64
}

// PBO reduces the lambda distribution to the empirical probability
// that the in-sample winner performed at or below the validation
// median, i.e. the fraction of combinations with lambda <= 0.
func PBO(lambdas backtest.LambdaDistribution) (float64, error) {
	if len(lambdas) == 0 {
		return 0, core.ErrEmptyDistribution
	}
	atOrBelow := 0
	for _, l := range lambdas {
		if l <= 0 {
			atOrBelow++
		}
	}
	return float64(atOrBelow) / float64(len(lambdas)), nil
}

// Summarize computes PBO plus mean/variance diagnostics for histogram
// and reporting use. It is a pure, total reduction: no retries, no
// partial results.
func Summarize(lambdas backtest.LambdaDistribution) (Summary, error) {
	pbo, err := PBO(lambdas)
	if err != nil {
		return Summary{}, err
	}
	s := Summary{PBO: pbo, Mean: stat.Mean(lambdas, nil)}
	if len(lambdas) > 1 {
		s.Variance = stat.Variance(lambdas, nil)
	}
	return s, nil
}
