package cscv

import (
	"math"

	"gopbo/domain/backtest"
	"gopbo/domain/core"
	"gopbo/internal/metric"
)

// ComputeLambda evaluates every train/validation pair sequentially and
// returns one logit per pair. See LambdaForPair for the per-pair
// algorithm. The parallel path lives in Pipeline.Run; both produce
// identical distributions because every tie rule is deterministic.
func ComputeLambda(pairs []backtest.TrainValPair, score metric.Func) (backtest.LambdaDistribution, error) {
	lambdas := make(backtest.LambdaDistribution, len(pairs))
	for i, pair := range pairs {
		lambda, err := LambdaForPair(pair, score)
		if err != nil {
			return nil, err
		}
		lambdas[i] = lambda
	}
	return lambdas, nil
}

// LambdaForPair computes the logit of the in-sample winner's relative
// out-of-sample rank for one combination:
//
//  1. score every configuration on the training set
//  2. winner n* = argmax, lowest column index on ties
//  3. score every configuration on the validation set
//  4. r = fractional (average) ascending rank of n* among validation
//     scores, so equal scores share a rank instead of biasing omega
//  5. omega = r/(N+1), strictly inside (0,1) even at r = N
//  6. lambda = ln(omega / (1-omega))
//
// A non-finite score on either side aborts with a degenerate-metric
// error naming the combination and configuration, because silently
// dropping a combination would bias the PBO estimate.
func LambdaForPair(pair backtest.TrainValPair, score metric.Func) (float64, error) {
	n := pair.Train.Configs()

	trainScores := make([]float64, n)
	for c := 0; c < n; c++ {
		v := score(pair.Train.Column(c))
		if !isFinite(v) {
			return 0, core.NewDegenerateMetricError(pair.Index, c, v)
		}
		trainScores[c] = v
	}

	// Lowest index wins ties: strict > while scanning ascending.
	winner := 0
	for c := 1; c < n; c++ {
		if trainScores[c] > trainScores[winner] {
			winner = c
		}
	}

	valScores := make([]float64, n)
	for c := 0; c < n; c++ {
		v := score(pair.Val.Column(c))
		if !isFinite(v) {
			return 0, core.NewDegenerateMetricError(pair.Index, c, v)
		}
		valScores[c] = v
	}

	rank := fractionalRank(valScores, winner)
	omega := rank / float64(n+1)
	return math.Log(omega / (1 - omega)), nil
}

// fractionalRank returns the 1-based ascending rank of valScores[target]
// (rank 1 = worst, rank N = best), averaging over ties.
func fractionalRank(valScores []float64, target int) float64 {
	below, equal := 0, 0
	for _, v := range valScores {
		switch {
		case v < valScores[target]:
			below++
		case v == valScores[target]:
			equal++
		}
	}
	// equal includes the target itself; ties share the mean of the
	// rank positions they span.
	return float64(below) + float64(equal+1)/2
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
