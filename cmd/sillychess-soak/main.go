// sillychess-soak plays many random games in parallel and checks the board
// invariants after every ply. It exits with status 1 if any invariant broke.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/lgbarn/silly-chess-go/internal/config"
	"github.com/lgbarn/silly-chess-go/internal/soak"
)

func main() {
	flag.Usage = usage
	flag.Parse()

	if *help {
		usage()
		os.Exit(0)
	}

	cfg := config.NewConfig()
	applyFlags(cfg)
	setupFiles(cfg)

	summary, err := soak.Run(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := writeSummary(cfg.OutputFile, summary, cfg.Output.JSONFormat, *showReports); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing summary: %v\n", err)
		os.Exit(1)
	}
	if !summary.OK() {
		os.Exit(1)
	}
}

// setupFiles opens the log and output files named on the command line.
func setupFiles(cfg *config.Config) {
	if *logFile != "" {
		file, err := os.Create(*logFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating log file %s: %v\n", *logFile, err)
			os.Exit(1)
		}
		cfg.SetLogFile(file)
	}

	if *outputFile != "" {
		file, err := os.Create(*outputFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating output file %s: %v\n", *outputFile, err)
			os.Exit(1)
		}
		cfg.SetOutput(file)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: sillychess-soak [options]\n\n")
	fmt.Fprintf(os.Stderr, "Play random games and check the rules engine invariants after every ply.\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
}
