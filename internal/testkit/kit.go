package testkit

import (
	"fmt"
	"math/rand"

	"gopbo/domain/backtest"
)

// TestKit builds deterministic performance matrices for exercising the
// CSCV pipeline. All generators are seeded: re-running a fixture yields
// an identical matrix.

// DominantColumnMatrix returns a rows x configs matrix where column 0
// strictly dominates every other column in every row. The in-sample
// winner is always column 0 and it also wins out-of-sample, so the
// pipeline should report PBO = 0.
func DominantColumnMatrix(rows, configs int) *backtest.PerformanceMatrix {
	data := make([][]float64, rows)
	for i := range data {
		row := make([]float64, configs)
		row[0] = 10 + float64(i%7)
		for c := 1; c < configs; c++ {
			row[c] = float64(i%5) - float64(c)
		}
		data[i] = row
	}
	return must(data)
}

// SpecialistMatrix returns a matrix with one configuration per block:
// configuration c scores hugely inside block c and negatively, ordered
// by index, everywhere else. Every combination's in-sample winner is a
// training-block specialist that trails the validation-block
// specialists out-of-sample, so the pipeline should report PBO = 1.
func SpecialistMatrix(blocks, blockRows int) *backtest.PerformanceMatrix {
	data := make([][]float64, blocks*blockRows)
	for i := range data {
		block := i / blockRows
		row := make([]float64, blocks)
		for c := 0; c < blocks; c++ {
			if c == block {
				row[c] = 100
			} else {
				row[c] = -float64(c) - 1
			}
		}
		data[i] = row
	}
	return must(data)
}

// NoiseMatrix returns iid standard-normal observations: no
// configuration is systematically better, so the in-sample winner sits
// at the validation median on average and PBO concentrates near 0.5.
func NoiseMatrix(rows, configs int, seed int64) *backtest.PerformanceMatrix {
	rng := rand.New(rand.NewSource(seed))
	data := make([][]float64, rows)
	for i := range data {
		row := make([]float64, configs)
		for c := range row {
			row[c] = rng.NormFloat64()
		}
		data[i] = row
	}
	return must(data)
}

// EqualColumnsMatrix returns a matrix whose columns are all identical,
// for exercising the deterministic tie rules.
func EqualColumnsMatrix(rows, configs int) *backtest.PerformanceMatrix {
	data := make([][]float64, rows)
	for i := range data {
		row := make([]float64, configs)
		v := float64(i%11) - 5
		for c := range row {
			row[c] = v
		}
		data[i] = row
	}
	return must(data)
}

// ConstantMatrix returns a matrix where every cell holds the same
// value, which makes the Sharpe metric degenerate (zero variance).
func ConstantMatrix(rows, configs int, value float64) *backtest.PerformanceMatrix {
	data := make([][]float64, rows)
	for i := range data {
		row := make([]float64, configs)
		for c := range row {
			row[c] = value
		}
		data[i] = row
	}
	return must(data)
}

func must(rows [][]float64) *backtest.PerformanceMatrix {
	m, err := backtest.NewPerformanceMatrix(rows)
	if err != nil {
		panic(fmt.Sprintf("testkit fixture rejected: %v", err))
	}
	return m
}
