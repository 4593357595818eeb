package config

import (
	"fmt"

	"github.com/lgbarn/silly-chess-go/internal/engine"
)

// GameConfig holds settings for a single game instance.
type GameConfig struct {
	// SillyMode starts games with the silly variant enabled
	SillyMode bool

	// Seed seeds the game's random source
	Seed int64

	// StartFEN replaces the standard starting position when non-empty
	StartFEN string
}

// NewGameConfig creates a GameConfig with default values.
// Games start in the basic variant from the standard position.
func NewGameConfig() *GameConfig {
	return &GameConfig{Seed: 1}
}

// Validate checks that the start position, if any, parses into a board
// with one king per side.
func (g *GameConfig) Validate() error {
	if g.StartFEN == "" {
		return nil
	}
	pos, err := engine.NewPositionFromFEN(g.StartFEN)
	if err == nil {
		err = pos.Board.Validate()
	}
	if err != nil {
		return fmt.Errorf("start position %q (%v): %w", g.StartFEN, err, errInvalid)
	}
	return nil
}
