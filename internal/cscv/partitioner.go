package cscv

import (
	"gopbo/domain/backtest"
	"gopbo/domain/core"
)

// Partition splits the matrix into the given number of contiguous,
// equal-length time blocks. Block i covers rows [i*T/blocks, (i+1)*T/blocks). Rows
// are never reordered or resampled: blocks stand in for regimes of the
// historical record, and shuffling would destroy that.
func Partition(m *backtest.PerformanceMatrix, blocks int) ([]backtest.Block, error) {
	rows := m.Rows()
	switch {
	case blocks < 2:
		return nil, core.NewInvalidPartitionError(rows, blocks, "need at least 2 blocks")
	case blocks%2 != 0:
		return nil, core.NewInvalidPartitionError(rows, blocks, "block count must be even")
	case rows%blocks != 0:
		return nil, core.NewInvalidPartitionError(rows, blocks, "row count not divisible by block count")
	}

	size := rows / blocks
	out := make([]backtest.Block, blocks)
	for i := 0; i < blocks; i++ {
		out[i] = backtest.NewBlock(m, i, i*size, (i+1)*size)
	}
	return out, nil
}
