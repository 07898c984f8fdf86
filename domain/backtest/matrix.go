package backtest

import (
	"fmt"
	"math"

	"gopbo/domain/core"
)

// PerformanceMatrix holds T rows (time periods) by N columns (model
// configurations) of real-valued performance observations.
// INVARIANTS:
// - Rectangular: every row has exactly N entries
// - Every cell is finite
// - Rows are in time order and are never mutated after construction
type PerformanceMatrix struct {
	rows [][]float64
}

// NewPerformanceMatrix validates and wraps a raw T x N matrix. The
// backing rows are retained, not copied; the caller must not mutate
// them for the lifetime of the matrix.
func NewPerformanceMatrix(rows [][]float64) (*PerformanceMatrix, error) {
	if len(rows) == 0 {
		return nil, core.NewInvalidMatrixError("matrix has no rows")
	}
	width := len(rows[0])
	if width == 0 {
		return nil, core.NewInvalidMatrixError("matrix has no configurations")
	}
	for i, row := range rows {
		if len(row) != width {
			return nil, core.NewInvalidMatrixError(
				fmt.Sprintf("row %d has %d entries, expected %d", i, len(row), width))
		}
		for j, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, core.NewInvalidMatrixError(
					fmt.Sprintf("non-finite value at row %d, configuration %d", i, j))
			}
		}
	}
	return &PerformanceMatrix{rows: rows}, nil
}

// Rows returns T, the number of time periods.
func (m *PerformanceMatrix) Rows() int {
	return len(m.rows)
}

// Configs returns N, the number of configurations.
func (m *PerformanceMatrix) Configs() int {
	return len(m.rows[0])
}

// Row returns one time period's observations across all configurations.
func (m *PerformanceMatrix) Row(i int) []float64 {
	return m.rows[i]
}

// Block is a contiguous row-range view of a PerformanceMatrix,
// covering rows [Start, End). Blocks share the matrix's backing rows.
type Block struct {
	Index int
	Start int
	End   int
	rows  [][]float64
}

// Rows returns the number of time periods in the block.
func (b Block) Rows() int {
	return b.End - b.Start
}

// Row returns the i-th row of the block.
func (b Block) Row(i int) []float64 {
	return b.rows[i]
}

// NewBlock creates a block view over rows [start, end) of the matrix.
func NewBlock(m *PerformanceMatrix, index, start, end int) Block {
	return Block{
		Index: index,
		Start: start,
		End:   end,
		rows:  m.rows[start:end],
	}
}

// SampleSet is the row-concatenation of several blocks for one side
// (train or validation) of a single combination. Rows keep their
// original time order regardless of block selection order.
type SampleSet struct {
	rows [][]float64
}

// NewSampleSet concatenates the given blocks in the order supplied.
func NewSampleSet(blocks []Block) SampleSet {
	total := 0
	for _, b := range blocks {
		total += b.Rows()
	}
	rows := make([][]float64, 0, total)
	for _, b := range blocks {
		rows = append(rows, b.rows...)
	}
	return SampleSet{rows: rows}
}

// Rows returns the number of time periods in the set.
func (s SampleSet) Rows() int {
	return len(s.rows)
}

// Configs returns the number of configurations in the set.
func (s SampleSet) Configs() int {
	if len(s.rows) == 0 {
		return 0
	}
	return len(s.rows[0])
}

// Column copies configuration n's values out of the set, in time order.
func (s SampleSet) Column(n int) []float64 {
	col := make([]float64, len(s.rows))
	for i, row := range s.rows {
		col[i] = row[n]
	}
	return col
}
