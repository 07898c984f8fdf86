package metric

import (
	"fmt"
	"math"

	"gopbo/domain/core"

	"github.com/montanaflynn/stats"
)

// Func scores one configuration's slice of performance values. It is a
// pure function of the slice it receives and sees no cross-configuration
// information. A non-finite return value is surfaced by the calculator
// as a degenerate-metric failure; Funcs never coerce bad inputs.
type Func func(values []float64) float64

// Built-in metric names
const (
	NameMean   = "mean"
	NameSharpe = "sharpe"
)

// Mean scores a configuration by the average of its values.
func Mean(values []float64) float64 {
	m, err := stats.Mean(values)
	if err != nil {
		return math.NaN()
	}
	return m
}

// Sharpe scores a configuration by mean divided by sample standard
// deviation. Zero-variance columns produce a non-finite score, which
// the calculator rejects rather than silently coercing.
func Sharpe(values []float64) float64 {
	m, err := stats.Mean(values)
	if err != nil {
		return math.NaN()
	}
	sd, err := stats.StandardDeviationSample(values)
	if err != nil || sd == 0 {
		return math.NaN()
	}
	return m / sd
}

// ByName resolves a built-in metric by its configuration name.
func ByName(name string) (Func, error) {
	switch name {
	case NameMean:
		return Mean, nil
	case NameSharpe:
		return Sharpe, nil
	default:
		return nil, fmt.Errorf("%w: %q (supported: %s, %s)", core.ErrUnknownMetric, name, NameMean, NameSharpe)
	}
}
