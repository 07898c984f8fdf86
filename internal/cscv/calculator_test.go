package cscv

import (
	"math"
	"testing"

	"gopbo/domain/backtest"
	"gopbo/domain/core"
	"gopbo/internal/metric"
	"gopbo/internal/testkit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pairsFor builds all train/val pairs for a matrix with the given block count.
func pairsFor(t *testing.T, m *backtest.PerformanceMatrix, blocks int) []backtest.TrainValPair {
	t.Helper()
	bs, err := Partition(m, blocks)
	require.NoError(t, err)
	pairs, err := EnumerateCombinations(bs, 0)
	require.NoError(t, err)
	return pairs
}

func TestLambdaForPairHandComputed(t *testing.T) {
	// Two blocks of two rows each. Under the mean metric, the in-sample
	// winner of either half is the worst column of the other half.
	m, err := backtest.NewPerformanceMatrix([][]float64{
		{1, 2, 3},
		{1, 2, 3},
		{3, 2, 1},
		{3, 2, 1},
	})
	require.NoError(t, err)

	pairs := pairsFor(t, m, 2)
	require.Len(t, pairs, 2)

	// Winner rank 1 of 3: omega = 1/4, lambda = ln(1/3).
	want := math.Log(1.0 / 3.0)
	for _, p := range pairs {
		lambda, err := LambdaForPair(p, metric.Mean)
		require.NoError(t, err)
		assert.InDelta(t, want, lambda, 1e-12)
	}
}

func TestLambdaForPairBestOutOfSample(t *testing.T) {
	m := testkit.DominantColumnMatrix(20, 4)
	pairs := pairsFor(t, m, 4)

	// Column 0 wins in-sample and ranks 4 of 4 out-of-sample:
	// omega = 4/5, lambda = ln(4).
	for _, p := range pairs {
		lambda, err := LambdaForPair(p, metric.Mean)
		require.NoError(t, err)
		assert.InDelta(t, math.Log(4), lambda, 1e-12)
	}
}

func TestLambdaForPairTiesAreDeterministic(t *testing.T) {
	// All columns identical: the winner is column 0 (lowest index) and
	// its fractional validation rank is exactly the median, so lambda
	// is exactly zero in every combination, every time.
	m := testkit.EqualColumnsMatrix(20, 4)
	pairs := pairsFor(t, m, 4)

	for _, p := range pairs {
		lambda, err := LambdaForPair(p, metric.Sharpe)
		require.NoError(t, err)
		assert.Zero(t, lambda)
	}
}

func TestFractionalRank(t *testing.T) {
	cases := []struct {
		name   string
		scores []float64
		target int
		want   float64
	}{
		{"no ties, worst", []float64{1, 2, 3, 4}, 0, 1},
		{"no ties, best", []float64{1, 2, 3, 4}, 3, 4},
		{"pair tie shares rank", []float64{1, 2, 2, 4}, 1, 2.5},
		{"pair tie shares rank, other member", []float64{1, 2, 2, 4}, 2, 2.5},
		{"all tied sit at median", []float64{5, 5, 5, 5}, 2, 2.5},
		{"single configuration", []float64{3}, 0, 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, fractionalRank(tc.scores, tc.target))
		})
	}
}

func TestOmegaStaysInsideUnitInterval(t *testing.T) {
	for n := 1; n <= 8; n++ {
		for r := 1; r <= n; r++ {
			omega := float64(r) / float64(n+1)
			assert.Greater(t, omega, 0.0)
			assert.Less(t, omega, 1.0)
			lambda := math.Log(omega / (1 - omega))
			assert.False(t, math.IsInf(lambda, 0), "lambda must be finite for r=%d n=%d", r, n)
			assert.False(t, math.IsNaN(lambda))
		}
	}
}

func TestComputeLambdaDegenerateMetric(t *testing.T) {
	// Constant cells: zero variance makes Sharpe non-finite, which must
	// abort the run with the failing combination attached rather than
	// silently dropping it.
	m := testkit.ConstantMatrix(20, 4, 0.5)
	pairs := pairsFor(t, m, 4)

	_, err := ComputeLambda(pairs, metric.Sharpe)
	require.Error(t, err)
	assert.True(t, core.IsDegenerateMetricError(err))
	assert.Contains(t, err.Error(), "combination 0")
}

func TestComputeLambdaLength(t *testing.T) {
	m := testkit.NoiseMatrix(40, 5, 3)
	pairs := pairsFor(t, m, 4)

	lambdas, err := ComputeLambda(pairs, metric.Mean)
	require.NoError(t, err)
	assert.Len(t, lambdas, CombinationCount(4))
}
