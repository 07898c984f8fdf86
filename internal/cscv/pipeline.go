package cscv

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"gopbo/domain/backtest"
	"gopbo/domain/core"
	"gopbo/internal/metric"

	"golang.org/x/sync/errgroup"
)

// Options configures one CSCV run.
type Options struct {
	// Blocks is S, the number of equal time blocks. Must be even, >= 2,
	// and divide the matrix row count. Values beyond ~20 are rarely
	// tractable; the combination guard below is the hard stop.
	Blocks int

	// MaxCombinations caps C(S, S/2) before enumeration; 0 means
	// DefaultMaxCombinations.
	MaxCombinations int

	// Workers bounds parallel combination scoring; <= 1 scores
	// sequentially, 0 falls back to GOMAXPROCS.
	Workers int

	// Metric scores one configuration's slice. MetricName is carried
	// into the report for the run ledger.
	Metric     metric.Func
	MetricName string
}

// Pipeline wires partitioner -> enumerator -> calculator -> aggregator.
// It holds no state across runs; every derived object lives only for
// the duration of one Run.
type Pipeline struct {
	opts Options
}

// NewPipeline validates options and returns a runnable pipeline.
func NewPipeline(opts Options) (*Pipeline, error) {
	if opts.Metric == nil {
		return nil, fmt.Errorf("%w: no metric supplied", core.ErrUnknownMetric)
	}
	if opts.Workers == 0 {
		opts.Workers = runtime.GOMAXPROCS(0)
	}
	return &Pipeline{opts: opts}, nil
}

// Run executes the full CSCV procedure over the matrix and returns the
// report. The matrix is read-only throughout; combination scoring fans
// out across a bounded worker pool with each worker writing only its
// own index in the lambda buffer, so no locking is needed. Any failing
// combination aborts the whole run: excluding combinations would bias
// the PBO estimate.
func (p *Pipeline) Run(ctx context.Context, m *backtest.PerformanceMatrix) (*backtest.Report, error) {
	blocks, err := Partition(m, p.opts.Blocks)
	if err != nil {
		return nil, err
	}

	pairs, err := EnumerateCombinations(blocks, p.opts.MaxCombinations)
	if err != nil {
		return nil, err
	}

	var lambdas backtest.LambdaDistribution
	if p.opts.Workers <= 1 {
		lambdas, err = ComputeLambda(pairs, p.opts.Metric)
	} else {
		lambdas, err = p.computeParallel(ctx, pairs)
	}
	if err != nil {
		return nil, err
	}

	summary, err := Summarize(lambdas)
	if err != nil {
		return nil, err
	}

	return &backtest.Report{
		RunID:        core.NewRunID(),
		Rows:         m.Rows(),
		Configs:      m.Configs(),
		Blocks:       p.opts.Blocks,
		Combinations: len(pairs),
		Metric:       p.opts.MetricName,
		PBO:          summary.PBO,
		LambdaMean:   summary.Mean,
		LambdaVar:    summary.Variance,
		Lambdas:      lambdas,
		ComputedAt:   time.Now().UTC(),
	}, nil
}

// computeParallel scores combinations across the worker pool. Results
// are index-addressed, so the distribution order matches the
// sequential path exactly.
func (p *Pipeline) computeParallel(ctx context.Context, pairs []backtest.TrainValPair) (backtest.LambdaDistribution, error) {
	lambdas := make(backtest.LambdaDistribution, len(pairs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.opts.Workers)
	for i, pair := range pairs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			lambda, err := LambdaForPair(pair, p.opts.Metric)
			if err != nil {
				return err
			}
			lambdas[i] = lambda
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return lambdas, nil
}
