package soak

import (
	"io"
	"testing"

	"github.com/lgbarn/silly-chess-go/internal/chess"
	"github.com/lgbarn/silly-chess-go/internal/config"
	"github.com/lgbarn/silly-chess-go/internal/errors"
	"github.com/lgbarn/silly-chess-go/internal/game"
	"github.com/lgbarn/silly-chess-go/internal/hashing"
	"github.com/lgbarn/silly-chess-go/internal/testutil"
	"github.com/lgbarn/silly-chess-go/internal/worker"
)

func soakConfig(games, plies int, sillyMode bool) *config.Config {
	return config.NewConfigBuilder().
		WithGames(games).
		WithWorkers(2).
		WithMaxPlies(plies).
		WithSeed(11).
		WithSillyMode(sillyMode).
		WithVerbosity(config.Silent).
		WithLogFile(io.Discard).
		Build()
}

func TestRun_InvariantsHold(t *testing.T) {
	tests := []struct {
		name      string
		sillyMode bool
	}{
		{"basic", false},
		{"silly", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			summary, err := Run(soakConfig(6, 80, tt.sillyMode))
			testutil.AssertNoError(t, err)
			for _, v := range summary.Violations {
				t.Errorf("violation: %v", v)
			}
			testutil.AssertTrue(t, summary.OK(), "summary OK")
			testutil.AssertEqual(t, summary.Games, 6)
			testutil.AssertEqual(t, summary.Checkmates+summary.Stalemates+summary.Unfinished, 6)
			testutil.AssertEqual(t, len(summary.Reports), 6)
			for i, r := range summary.Reports {
				testutil.AssertEqual(t, r.Index, i)
				testutil.AssertEqual(t, r.Seed, int64(11+i))
				testutil.AssertEqual(t, r.SillyMode, tt.sillyMode)
				testutil.AssertTrue(t, r.Plies <= 80, "ply cap")
			}
			if !tt.sillyMode {
				testutil.AssertEqual(t, summary.Shifts, 0)
			}
			testutil.AssertTrue(t, summary.DistinctFinals >= 1 && summary.DistinctFinals <= 6,
				"distinct finals %d", summary.DistinctFinals)
		})
	}
}

func TestPlayGame_Deterministic(t *testing.T) {
	cfg := soakConfig(1, 60, true)
	item := worker.WorkItem{Index: 0, Seed: 5, SillyMode: true}

	first, err := PlayGame(item, cfg)
	testutil.AssertNoError(t, err)
	second, err := PlayGame(item, cfg)
	testutil.AssertNoError(t, err)

	testutil.AssertEqual(t, second, first)
}

func TestPlayGame_FromMatedPosition(t *testing.T) {
	cfg := soakConfig(1, 10, false)
	cfg.Game.StartFEN = "R3k3/8/4K3/8/8/8/8/8 b - - 0 1"

	report, err := PlayGame(worker.WorkItem{Seed: 1}, cfg)

	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, report.Outcome, Checkmate)
	testutil.AssertEqual(t, report.Winner, "White")
	testutil.AssertEqual(t, report.Plies, 0)
	testutil.AssertEqual(t, len(report.Violations), 0)
}

func TestRun_InvalidConfig(t *testing.T) {
	cfg := soakConfig(0, 10, false)
	_, err := Run(cfg)
	testutil.AssertErrorIs(t, err, errors.ErrInvalidConfig)
}

func TestRun_StopOnViolation(t *testing.T) {
	cfg := soakConfig(5, 40, true)
	cfg.Soak.StopOnViolation = true

	summary, err := Run(cfg)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, summary.Games, 5)
	testutil.AssertFalse(t, summary.Stopped, "no violation, so every game runs")
	testutil.AssertTrue(t, summary.OK(), "violations: %v", summary.Violations)
}

func TestFailed(t *testing.T) {
	tests := []struct {
		name   string
		result worker.ProcessResult
		want   bool
	}{
		{"clean report", worker.ProcessResult{Report: &GameReport{}}, false},
		{"violation", worker.ProcessResult{Report: &GameReport{Violations: []Violation{{Message: "x"}}}}, true},
		{"error", worker.ProcessResult{Error: errors.ErrInvalidConfig}, true},
		{"no report", worker.ProcessResult{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testutil.AssertEqual(t, failed(tt.result), tt.want)
		})
	}
}

func TestSummary_Add(t *testing.T) {
	s := &Summary{}
	s.add(&GameReport{Outcome: Checkmate, Plies: 10, Shifts: 2, Demotions: 1, Repeats: 4})
	s.add(&GameReport{Outcome: Stalemate, Plies: 20})
	s.add(&GameReport{Outcome: PlyLimit, Plies: 30, Violations: []Violation{{Seed: 3, Ply: 4, Message: "x"}}})

	testutil.AssertEqual(t, s.Games, 3)
	testutil.AssertEqual(t, s.Checkmates, 1)
	testutil.AssertEqual(t, s.Stalemates, 1)
	testutil.AssertEqual(t, s.Unfinished, 1)
	testutil.AssertEqual(t, s.Plies, 60)
	testutil.AssertEqual(t, s.Shifts, 2)
	testutil.AssertEqual(t, s.Demotions, 1)
	testutil.AssertEqual(t, s.Repeats, 4)
	testutil.AssertFalse(t, s.OK(), "violation recorded")
	testutil.AssertEqual(t, s.Violations[0].String(), "seed 3 ply 4: x")
}

func TestPlayGame_RepeatedFinal(t *testing.T) {
	cfg := soakConfig(1, 10, false)
	cfg.Game.StartFEN = "R3k3/8/4K3/8/8/8/8/8 b - - 0 1"
	finals := hashing.NewThreadSafeDuplicateDetector(false, 0)

	first, err := playGame(worker.WorkItem{Seed: 1}, cfg, finals)
	testutil.AssertNoError(t, err)
	second, err := playGame(worker.WorkItem{Seed: 2}, cfg, finals)
	testutil.AssertNoError(t, err)

	testutil.AssertFalse(t, first.RepeatedFinal, "first game")
	testutil.AssertTrue(t, second.RepeatedFinal, "second game")
	testutil.AssertEqual(t, finals.UniqueCount(), 1)
}

func TestPlayer_RecordCountsRepeats(t *testing.T) {
	g, err := game.New(soakConfig(1, 10, false))
	testutil.AssertNoError(t, err)
	p := &player{g: g, seen: hashing.NewDuplicateDetector(false, 0), report: &GameReport{}}
	p.record()

	for _, m := range [][2]string{{"g1", "f3"}, {"g8", "f6"}, {"f3", "g1"}, {"f6", "g8"}} {
		piece := g.Board().At(chess.MustSquare(m[0]))
		testutil.AssertTrue(t, g.SelectPiece(piece.ID).Accepted, "select %s", m[0])
		testutil.AssertTrue(t, g.SelectSquare(chess.MustSquare(m[1])).Accepted, "move %s-%s", m[0], m[1])
		p.record()
	}

	testutil.AssertEqual(t, p.report.Repeats, 1)
}
