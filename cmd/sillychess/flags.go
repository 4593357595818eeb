package main

import (
	"flag"

	"github.com/lgbarn/silly-chess-go/internal/config"
)

// Command-line flags
var (
	// Game options
	sillyMode = flag.Bool("silly", false, "Start with silly mode enabled")
	seed      = flag.Int64("seed", 1, "Seed for the silly-mode random source")
	startFEN  = flag.String("fen", "", "Start from this FEN position instead of the initial position")

	// Output options
	outputFile   = flag.String("o", "", "Write output to file")
	appendOutput = flag.String("a", "", "Append output to file")
	jsonOutput   = flag.Bool("J", false, "Output results and states as JSON")
	noBoard      = flag.Bool("noboard", false, "Do not print the board after each command")
	noCoords     = flag.Bool("nocoords", false, "Print the board without coordinates")

	// Logging
	logFile   = flag.String("l", "", "Write diagnostics to log file")
	appendLog = flag.String("L", "", "Append diagnostics to log file")
	verbosity = flag.Int("verbosity", config.GameLevel, "Diagnostic level: 0 silent, 1 game, 2 commentary")

	// Other options
	quiet   = flag.Bool("s", false, "Silent mode (no diagnostics)")
	help    = flag.Bool("h", false, "Show help")
	version = flag.Bool("version", false, "Show version")
)

// applyFlags applies command-line flags to the configuration.
func applyFlags(cfg *config.Config) {
	applyGameFlags(cfg)
	applyOutputFlags(cfg)

	cfg.Verbosity = *verbosity
	if *quiet {
		cfg.Verbosity = config.Silent
	}
}

// applyGameFlags configures the game settings.
func applyGameFlags(cfg *config.Config) {
	cfg.Game.SillyMode = *sillyMode
	cfg.Game.Seed = *seed
	cfg.Game.StartFEN = *startFEN
}

// applyOutputFlags configures the output format.
func applyOutputFlags(cfg *config.Config) {
	cfg.Output.JSONFormat = *jsonOutput
	if *noBoard {
		cfg.Output.ShowBoard = false
	}
	if *noCoords {
		cfg.Output.ShowCoordinates = false
	}
}
