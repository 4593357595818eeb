package main

import (
	"flag"

	"github.com/lgbarn/silly-chess-go/internal/config"
)

// Command-line flags
var (
	// Soak options
	games    = flag.Int("games", 100, "Number of games to play")
	workers  = flag.Int("workers", 0, "Number of worker threads (0 = auto-detect based on CPU cores)")
	maxPlies = flag.Int("plies", 200, "Stop each game after this many plies")
	failFast = flag.Bool("failfast", false, "Stop scheduling games after the first violation")

	// Game options
	sillyMode = flag.Bool("silly", true, "Play with silly mode enabled")
	seed      = flag.Int64("seed", 1, "Seed of the first game; game i uses seed+i")
	startFEN  = flag.String("fen", "", "Start every game from this FEN position")

	// Output options
	outputFile  = flag.String("o", "", "Write the summary to file")
	jsonOutput  = flag.Bool("J", false, "Write the summary as JSON")
	showReports = flag.Bool("reports", false, "Include a line per game in the summary")

	// Logging
	logFile = flag.String("l", "", "Write diagnostics to log file")
	quiet   = flag.Bool("s", false, "Silent mode (no diagnostics)")

	help = flag.Bool("h", false, "Show help")
)

// applyFlags applies command-line flags to the configuration.
func applyFlags(cfg *config.Config) {
	cfg.Soak.Games = *games
	if *workers > 0 {
		cfg.Soak.Workers = *workers
	}
	cfg.Soak.MaxPlies = *maxPlies
	cfg.Soak.StopOnViolation = *failFast

	cfg.Game.SillyMode = *sillyMode
	cfg.Game.Seed = *seed
	cfg.Game.StartFEN = *startFEN

	cfg.Output.JSONFormat = *jsonOutput
	if *quiet {
		cfg.Verbosity = config.Silent
	}
}
