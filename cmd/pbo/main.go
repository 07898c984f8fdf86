package main

import (
	"fmt"
	"os"

	"gopbo/adapters/postgres"
	"gopbo/app"
	"gopbo/internal"
	"gopbo/internal/config"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	// Optional .env for local development; env vars win when both set
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "pbo",
		Short: "Probability of Backtest Overfitting via combinatorially symmetric cross-validation",
	}

	rootCmd.AddCommand(
		newRunCmd(),
		newHistoryCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRunCmd() *cobra.Command {
	var (
		blocks      int
		metricName  string
		workers     int
		maxCombos   int
		showLambdas bool
	)

	cmd := &cobra.Command{
		Use:   "run [matrix-file]",
		Short: "Estimate PBO for a T x N returns matrix (.xlsx or .csv, header row of configuration names)",
		Long: `Run the full CSCV procedure over a performance matrix: partition the
T time periods into S blocks, enumerate all C(S, S/2) balanced
train/validation combinations, compute the logit of the in-sample
winner's out-of-sample rank per combination, and report the fraction of
combinations where the winner sits at or below the validation median.

Example: pbo run returns.xlsx --blocks 8 --metric sharpe`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("blocks") {
				cfg.Analysis.Blocks = blocks
			}
			if cmd.Flags().Changed("metric") {
				cfg.Analysis.Metric = metricName
			}
			if cmd.Flags().Changed("workers") {
				cfg.Analysis.Workers = workers
			}
			if cmd.Flags().Changed("max-combinations") {
				cfg.Analysis.MaxCombinations = maxCombos
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			inputPath := cfg.Input.FilePath
			if len(args) == 1 {
				inputPath = args[0]
			}
			if inputPath == "" {
				return fmt.Errorf("no matrix file given (argument or PBO_INPUT)")
			}

			service, cleanup, err := buildService(cmd, cfg)
			if err != nil {
				return err
			}
			defer cleanup()

			report, err := service.AnalyzeFile(cmd.Context(), inputPath, cfg.Analysis)
			if err != nil {
				return err
			}

			fmt.Printf("run:          %s\n", report.RunID)
			fmt.Printf("matrix:       %d periods x %d configurations\n", report.Rows, report.Configs)
			fmt.Printf("blocks:       %d (%d combinations)\n", report.Blocks, report.Combinations)
			fmt.Printf("metric:       %s\n", report.Metric)
			fmt.Printf("PBO:          %.4f\n", report.PBO)
			fmt.Printf("lambda mean:  %.4f\n", report.LambdaMean)
			fmt.Printf("lambda var:   %.4f\n", report.LambdaVar)
			if showLambdas {
				for i, l := range report.Lambdas {
					fmt.Printf("lambda[%d] = %.6f\n", i, l)
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&blocks, "blocks", 8, "Number of time blocks S (even, must divide T)")
	cmd.Flags().StringVar(&metricName, "metric", "sharpe", "Evaluation metric: mean or sharpe")
	cmd.Flags().IntVar(&workers, "workers", 0, "Parallel combination scorers (0 = all cores, 1 = sequential)")
	cmd.Flags().IntVar(&maxCombos, "max-combinations", 0, "Ceiling on C(S, S/2) before the run is refused (0 = default 1,000,000)")
	cmd.Flags().BoolVar(&showLambdas, "lambdas", false, "Print the full lambda distribution")

	return cmd
}

func newHistoryCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent runs from the run ledger (requires DATABASE_URL)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if !cfg.Database.Enabled {
				return fmt.Errorf("DATABASE_URL is not set; the run ledger is disabled")
			}

			db, err := postgres.Connect(cfg.Database.URL)
			if err != nil {
				return fmt.Errorf("failed to connect to run ledger: %w", err)
			}
			defer db.Close()

			repo := postgres.NewRunRepository(db)
			reports, err := repo.ListRecent(cmd.Context(), limit)
			if err != nil {
				return err
			}
			for _, r := range reports {
				fmt.Printf("%s  %s  T=%d N=%d S=%d combos=%d metric=%s PBO=%.4f\n",
					r.ComputedAt.Format("2006-01-02 15:04:05"), r.RunID, r.Rows, r.Configs, r.Blocks, r.Combinations, r.Metric, r.PBO)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of runs to list")
	return cmd
}

// buildService wires the optional run ledger behind the analysis service.
func buildService(cmd *cobra.Command, cfg *config.Config) (*app.AnalysisService, func(), error) {
	logger := internal.NewDefaultLogger("pbo")

	if !cfg.Database.Enabled {
		return app.NewAnalysisService(nil), func() {}, nil
	}

	db, err := postgres.Connect(cfg.Database.URL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to run ledger: %w", err)
	}
	repo := postgres.NewRunRepository(db)
	if err := repo.EnsureSchema(cmd.Context()); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to prepare run ledger schema: %w", err)
	}
	logger.Info("run ledger enabled")
	return app.NewAnalysisService(repo), func() { db.Close() }, nil
}
