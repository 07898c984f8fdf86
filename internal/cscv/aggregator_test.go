package cscv

import (
	"errors"
	"testing"

	"gopbo/domain/backtest"
	"gopbo/domain/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPBOCountsLambdaAtOrBelowZero(t *testing.T) {
	cases := []struct {
		name    string
		lambdas backtest.LambdaDistribution
		want    float64
	}{
		{"all positive", backtest.LambdaDistribution{0.5, 1.2, 3}, 0},
		{"all negative", backtest.LambdaDistribution{-0.5, -1.2, -3}, 1},
		{"zero counts as at-or-below", backtest.LambdaDistribution{0, 1}, 0.5},
		{"mixed", backtest.LambdaDistribution{-1, 0.5, 2, -0.1}, 0.5},
		{"single", backtest.LambdaDistribution{-0.01}, 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := PBO(tc.lambdas)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
			assert.GreaterOrEqual(t, got, 0.0)
			assert.LessOrEqual(t, got, 1.0)
		})
	}
}

func TestPBOEmptyDistribution(t *testing.T) {
	_, err := PBO(nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrEmptyDistribution))

	_, err = Summarize(backtest.LambdaDistribution{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrEmptyDistribution))
}

func TestSummarizeDiagnostics(t *testing.T) {
	lambdas := backtest.LambdaDistribution{-1, 1, 3}

	s, err := Summarize(lambdas)
	require.NoError(t, err)
	assert.InDelta(t, 1.0/3.0, s.PBO, 1e-12)
	assert.InDelta(t, 1.0, s.Mean, 1e-12)
	assert.InDelta(t, 4.0, s.Variance, 1e-12, "sample variance of {-1,1,3}")
}

func TestSummarizeSingleValue(t *testing.T) {
	s, err := Summarize(backtest.LambdaDistribution{2})
	require.NoError(t, err)
	assert.Equal(t, 0.0, s.PBO)
	assert.Equal(t, 2.0, s.Mean)
	assert.Zero(t, s.Variance)
}
