package config

import (
	"fmt"
	"runtime"
)

// SoakConfig sizes a self-play soak run.
type SoakConfig struct {
	// Games is the number of games to play
	Games int

	// Workers is the number of games played concurrently
	Workers int

	// MaxPlies caps the length of a single game
	MaxPlies int

	// StopOnViolation skips the games not yet started once one game
	// reports a broken invariant
	StopOnViolation bool
}

// NewSoakConfig creates a SoakConfig with default values.
func NewSoakConfig() *SoakConfig {
	return &SoakConfig{
		Games:    100,
		Workers:  runtime.NumCPU(),
		MaxPlies: 200,
	}
}

// Validate checks that every count is positive.
func (s *SoakConfig) Validate() error {
	if s.Games <= 0 {
		return fmt.Errorf("soak games %d must be positive: %w", s.Games, errInvalid)
	}
	if s.Workers <= 0 {
		return fmt.Errorf("soak workers %d must be positive: %w", s.Workers, errInvalid)
	}
	if s.MaxPlies <= 0 {
		return fmt.Errorf("soak max plies %d must be positive: %w", s.MaxPlies, errInvalid)
	}
	return nil
}
