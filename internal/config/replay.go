package config

import "fmt"

// ReplayConfig holds settings for batch replay of move scripts.
type ReplayConfig struct {
	// Workers is the number of replay goroutines (0 = one per CPU)
	Workers int

	// BufferSize is the work queue length (0 = twice the workers)
	BufferSize int

	// StopOnWin ends a script as soon as a side has won instead of
	// reporting the remaining moves as rejected
	StopOnWin bool

	// Duplicates flags scripts whose final position matches an earlier one
	Duplicates bool

	// ExactDuplicates also requires the same number of plies
	ExactDuplicates bool
}

// NewReplayConfig creates a ReplayConfig with default values.
func NewReplayConfig() *ReplayConfig {
	return &ReplayConfig{StopOnWin: true}
}

// Validate checks that the replay configuration is valid.
func (r *ReplayConfig) Validate() error {
	if r.Workers < 0 {
		return fmt.Errorf("workers (%d) must not be negative: %w", r.Workers, errInvalid)
	}
	if r.BufferSize < 0 {
		return fmt.Errorf("buffer size (%d) must not be negative: %w", r.BufferSize, errInvalid)
	}
	return nil
}
