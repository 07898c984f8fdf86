package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Pipeline input errors
	ErrInvalidMatrix    = errors.New("invalid performance matrix")
	ErrInvalidPartition = errors.New("invalid partition")
	ErrUnknownMetric    = errors.New("unknown evaluation metric")

	// Resource guard errors
	ErrCombinationExplosion = errors.New("combination count exceeds ceiling")

	// Scoring errors
	ErrDegenerateMetric = errors.New("degenerate metric score")

	// Aggregation errors
	ErrEmptyDistribution = errors.New("empty lambda distribution")
)

// Error constructors with context

func NewInvalidPartitionError(rows, blocks int, reason string) error {
	return fmt.Errorf("%w: T=%d S=%d: %s", ErrInvalidPartition, rows, blocks, reason)
}

func NewCombinationExplosionError(count, ceiling int) error {
	return fmt.Errorf("%w: C(S, S/2)=%d > max %d", ErrCombinationExplosion, count, ceiling)
}

func NewDegenerateMetricError(combination, column int, value float64) error {
	return fmt.Errorf("%w: combination %d, configuration %d scored %v", ErrDegenerateMetric, combination, column, value)
}

func NewInvalidMatrixError(reason string) error {
	return fmt.Errorf("%w: %s", ErrInvalidMatrix, reason)
}

// Error checking helpers

func IsInvalidPartitionError(err error) bool {
	return errors.Is(err, ErrInvalidPartition)
}

func IsCombinationExplosionError(err error) bool {
	return errors.Is(err, ErrCombinationExplosion)
}

func IsDegenerateMetricError(err error) bool {
	return errors.Is(err, ErrDegenerateMetric)
}

func IsInputError(err error) bool {
	return errors.Is(err, ErrInvalidMatrix) ||
		errors.Is(err, ErrInvalidPartition) ||
		errors.Is(err, ErrUnknownMetric)
}
