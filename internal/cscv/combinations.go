package cscv

import (
	"gopbo/domain/backtest"
	"gopbo/domain/core"

	"gonum.org/v1/gonum/stat/combin"
)

// DefaultMaxCombinations is the conservative resource-guard ceiling on
// C(S, S/2). Doubling S roughly squares the combination count, so the
// guard is checked arithmetically before anything is materialized.
const DefaultMaxCombinations = 1_000_000

// CombinationCount returns C(S, S/2) for S blocks.
func CombinationCount(blocks int) int {
	return combin.Binomial(blocks, blocks/2)
}

// EnumerateCombinations produces every balanced train/validation
// assignment of the blocks: each size-S/2 subset appears exactly once
// as the training selection, with its complement as the validation
// selection. Enumeration is lexicographic over training indices, so
// TrainSet and ValSet rows are always concatenated in original time
// order. Fails before allocating any pair if C(S, S/2) exceeds
// maxCombinations (0 means DefaultMaxCombinations).
func EnumerateCombinations(blocks []backtest.Block, maxCombinations int) ([]backtest.TrainValPair, error) {
	if maxCombinations <= 0 {
		maxCombinations = DefaultMaxCombinations
	}
	s := len(blocks)
	total := CombinationCount(s)
	if total > maxCombinations {
		return nil, core.NewCombinationExplosionError(total, maxCombinations)
	}

	half := s / 2
	pairs := make([]backtest.TrainValPair, 0, total)
	for idx, trainIdx := range combin.Combinations(s, half) {
		valIdx := complement(trainIdx, s)

		trainBlocks := make([]backtest.Block, half)
		for i, b := range trainIdx {
			trainBlocks[i] = blocks[b]
		}
		valBlocks := make([]backtest.Block, half)
		for i, b := range valIdx {
			valBlocks[i] = blocks[b]
		}

		pairs = append(pairs, backtest.TrainValPair{
			Index:       idx,
			TrainBlocks: trainIdx,
			ValBlocks:   valIdx,
			Train:       backtest.NewSampleSet(trainBlocks),
			Val:         backtest.NewSampleSet(valBlocks),
		})
	}
	return pairs, nil
}

// complement returns the ascending block indices in [0, total) that are
// absent from the ascending slice chosen.
func complement(chosen []int, total int) []int {
	out := make([]int, 0, total-len(chosen))
	next := 0
	for i := 0; i < total; i++ {
		if next < len(chosen) && chosen[next] == i {
			next++
			continue
		}
		out = append(out, i)
	}
	return out
}
