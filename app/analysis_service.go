package app

import (
	"context"
	"fmt"

	"gopbo/adapters/matrixfile"
	"gopbo/domain/backtest"
	"gopbo/internal"
	"gopbo/internal/config"
	"gopbo/internal/cscv"
	"gopbo/internal/metric"
)

// RunStore persists completed run reports. Implemented by the
// PostgreSQL run repository; nil disables persistence.
type RunStore interface {
	Save(ctx context.Context, report *backtest.Report) error
}

// AnalysisService orchestrates one CSCV analysis: resolve the matrix,
// run the pipeline, record the outcome.
type AnalysisService struct {
	store  RunStore
	logger *internal.Logger
}

// NewAnalysisService creates the service; store may be nil when no run
// ledger is configured.
func NewAnalysisService(store RunStore) *AnalysisService {
	return &AnalysisService{
		store:  store,
		logger: internal.NewDefaultLogger("analysis"),
	}
}

// Analyze runs the CSCV pipeline over an in-memory matrix.
func (s *AnalysisService) Analyze(ctx context.Context, m *backtest.PerformanceMatrix, cfg config.AnalysisConfig) (*backtest.Report, error) {
	score, err := metric.ByName(cfg.Metric)
	if err != nil {
		return nil, err
	}

	pipeline, err := cscv.NewPipeline(cscv.Options{
		Blocks:          cfg.Blocks,
		MaxCombinations: cfg.MaxCombinations,
		Workers:         cfg.Workers,
		Metric:          score,
		MetricName:      cfg.Metric,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("running CSCV: T=%d N=%d S=%d metric=%s", m.Rows(), m.Configs(), cfg.Blocks, cfg.Metric)
	report, err := pipeline.Run(ctx, m)
	if err != nil {
		return nil, err
	}
	s.logger.Info("run %s: %d combinations, PBO=%.4f lambda mean=%.4f var=%.4f",
		report.RunID, report.Combinations, report.PBO, report.LambdaMean, report.LambdaVar)

	if s.store != nil {
		if err := s.store.Save(ctx, report); err != nil {
			return nil, fmt.Errorf("failed to persist run %s: %w", report.RunID, err)
		}
	}
	return report, nil
}

// AnalyzeFile loads a returns matrix from disk and analyzes it.
func (s *AnalysisService) AnalyzeFile(ctx context.Context, path string, cfg config.AnalysisConfig) (*backtest.Report, error) {
	file, err := matrixfile.NewReader(path).Read()
	if err != nil {
		return nil, err
	}
	return s.Analyze(ctx, file.Matrix, cfg)
}
