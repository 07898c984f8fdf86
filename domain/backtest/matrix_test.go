package backtest

import (
	"math"
	"testing"

	"gopbo/domain/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPerformanceMatrixValidation(t *testing.T) {
	cases := []struct {
		name string
		rows [][]float64
	}{
		{"no rows", nil},
		{"no configurations", [][]float64{{}}},
		{"ragged rows", [][]float64{{1, 2}, {1}}},
		{"NaN cell", [][]float64{{1, math.NaN()}}},
		{"infinite cell", [][]float64{{1, math.Inf(1)}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewPerformanceMatrix(tc.rows)
			require.Error(t, err)
			assert.ErrorIs(t, err, core.ErrInvalidMatrix)
		})
	}
}

func TestPerformanceMatrixShape(t *testing.T) {
	m, err := NewPerformanceMatrix([][]float64{
		{1, 2, 3},
		{4, 5, 6},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, m.Rows())
	assert.Equal(t, 3, m.Configs())
	assert.Equal(t, []float64{4, 5, 6}, m.Row(1))
}

func TestSampleSetConcatenatesBlocksInOrder(t *testing.T) {
	m, err := NewPerformanceMatrix([][]float64{
		{0, 10},
		{1, 11},
		{2, 12},
		{3, 13},
	})
	require.NoError(t, err)

	b0 := NewBlock(m, 0, 0, 2)
	b1 := NewBlock(m, 1, 2, 4)

	set := NewSampleSet([]Block{b0, b1})
	assert.Equal(t, 4, set.Rows())
	assert.Equal(t, 2, set.Configs())
	assert.Equal(t, []float64{0, 1, 2, 3}, set.Column(0))
	assert.Equal(t, []float64{10, 11, 12, 13}, set.Column(1))
}
