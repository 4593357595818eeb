package main

import (
	"fmt"
	"io"

	"github.com/lgbarn/silly-chess-go/internal/output"
	"github.com/lgbarn/silly-chess-go/internal/soak"
)

// writeSummary reports a soak run. Per-game reports are included only
// when withReports is set.
func writeSummary(w io.Writer, s *soak.Summary, asJSON, withReports bool) error {
	if !withReports {
		trimmed := *s
		trimmed.Reports = nil
		s = &trimmed
	}
	if asJSON {
		return output.WriteJSON(w, s)
	}

	for _, r := range s.Reports {
		line := fmt.Sprintf("game %d seed %d: %s after %d plies", r.Index, r.Seed, r.Outcome, r.Plies)
		if r.Winner != "" {
			line += ", " + r.Winner + " wins"
		}
		if _, err := fmt.Fprintf(w, "%s (%d shifts, %d demotions)\n", line, r.Shifts, r.Demotions); err != nil {
			return err
		}
	}

	fmt.Fprintf(w, "%d game(s), %d plies: %d checkmate(s), %d stalemate(s), %d unfinished.\n",
		s.Games, s.Plies, s.Checkmates, s.Stalemates, s.Unfinished)
	fmt.Fprintf(w, "%d shift(s), %d demotion(s), %d repeated position(s), %d distinct final position(s).\n",
		s.Shifts, s.Demotions, s.Repeats, s.DistinctFinals)
	if s.OK() {
		_, err := fmt.Fprintln(w, "all invariants held.")
		return err
	}
	if s.Stopped {
		fmt.Fprintln(w, "stopped at the first violation.")
	}
	fmt.Fprintf(w, "%d violation(s):\n", len(s.Violations))
	for _, v := range s.Violations {
		if _, err := fmt.Fprintf(w, "  %v\n", v); err != nil {
			return err
		}
	}
	return nil
}
