package backtest

import (
	"time"

	"gopbo/domain/core"
)

// TrainValPair is one balanced train/validation combination. TrainBlocks
// holds the S/2 block indices selected for training, ValBlocks the
// complementary indices, both ascending. Choosing subset A for training
// and later choosing complement(A) are two distinct pairs: the roles
// are not interchangeable.
type TrainValPair struct {
	Index       int
	TrainBlocks []int
	ValBlocks   []int
	Train       SampleSet
	Val         SampleSet
}

// LambdaDistribution is the ordered sequence of logit values, one per
// combination, length C(S, S/2).
type LambdaDistribution []float64

// Report is the final output of one CSCV run.
type Report struct {
	RunID        core.RunID         `json:"run_id" db:"run_id"`
	Rows         int                `json:"rows" db:"row_count"`
	Configs      int                `json:"configs" db:"config_count"`
	Blocks       int                `json:"blocks" db:"block_count"`
	Combinations int                `json:"combinations" db:"combination_count"`
	Metric       string             `json:"metric" db:"metric"`
	PBO          float64            `json:"pbo" db:"pbo"`
	LambdaMean   float64            `json:"lambda_mean" db:"lambda_mean"`
	LambdaVar    float64            `json:"lambda_variance" db:"lambda_variance"`
	Lambdas      LambdaDistribution `json:"lambdas" db:"-"`
	ComputedAt   time.Time          `json:"computed_at" db:"computed_at"`
}
