// Package soak plays many seeded games with uniformly random legal moves
// and checks the board and game-state invariants after every ply. It is a
// test harness for the rules engine, not a player: no move is preferred
// over another.
package soak

import (
	"fmt"
	"io"
	"math/rand"

	"github.com/lgbarn/silly-chess-go/internal/chess"
	"github.com/lgbarn/silly-chess-go/internal/config"
	"github.com/lgbarn/silly-chess-go/internal/engine"
	"github.com/lgbarn/silly-chess-go/internal/errors"
	"github.com/lgbarn/silly-chess-go/internal/game"
	"github.com/lgbarn/silly-chess-go/internal/hashing"
	"github.com/lgbarn/silly-chess-go/internal/worker"
)

// Outcome is how a soak game ended.
type Outcome string

const (
	Checkmate Outcome = "checkmate"
	Stalemate Outcome = "stalemate"
	PlyLimit  Outcome = "ply-limit"
	Aborted   Outcome = "aborted"
)

// Violation is a broken invariant found during a game.
type Violation struct {
	Seed    int64  `json:"seed"`
	Ply     int    `json:"ply"`
	Message string `json:"message"`
}

// String returns a one-line description.
func (v Violation) String() string {
	return fmt.Sprintf("seed %d ply %d: %s", v.Seed, v.Ply, v.Message)
}

// GameReport summarises one soak game.
type GameReport struct {
	Index         int         `json:"index"`
	Seed          int64       `json:"seed"`
	SillyMode     bool        `json:"sillyMode"`
	Plies         int         `json:"plies"`
	Outcome       Outcome     `json:"outcome"`
	Winner        string      `json:"winner,omitempty"`
	Captures      int         `json:"captures"`
	Shifts        int         `json:"shifts"`
	Demotions     int         `json:"demotions"`
	Refusals      int         `json:"refusals"`
	Repeats       int         `json:"repeats"`
	RepeatedFinal bool        `json:"repeatedFinal,omitempty"`
	FinalFEN      string      `json:"finalFEN"`
	Violations    []Violation `json:"violations,omitempty"`
}

// Summary aggregates a soak run.
type Summary struct {
	Games      int `json:"games"`
	Checkmates int `json:"checkmates"`
	Stalemates int `json:"stalemates"`
	Unfinished int `json:"unfinished"`
	Plies      int `json:"plies"`
	Shifts     int `json:"shifts"`
	Demotions  int `json:"demotions"`
	Repeats    int `json:"repeats"`

	// DistinctFinals counts the different positions games ended in.
	DistinctFinals int `json:"distinctFinals"`

	// Stopped is set when a violation ended the run before every game was played.
	Stopped bool `json:"stopped,omitempty"`

	Violations []Violation   `json:"violations,omitempty"`
	Reports    []*GameReport `json:"reports,omitempty"`
}

// OK reports whether no invariant was broken.
func (s *Summary) OK() bool {
	return len(s.Violations) == 0
}

// Run plays cfg.Soak.Games games on a pool of cfg.Soak.Workers workers.
// Game i is seeded with cfg.Game.Seed+i.
func Run(cfg *config.Config) (*Summary, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	items := make([]worker.WorkItem, cfg.Soak.Games)
	for i := range items {
		items[i] = worker.WorkItem{
			Index:     i,
			Seed:      cfg.Game.Seed + int64(i),
			SillyMode: cfg.Game.SillyMode,
		}
	}

	finals := hashing.NewThreadSafeDuplicateDetector(false, 0)
	process := func(item worker.WorkItem) worker.ProcessResult {
		report, err := playGame(item, cfg, finals)
		return worker.ProcessResult{Index: item.Index, Seed: item.Seed, Report: report, Error: err}
	}

	var results []worker.ProcessResult
	if cfg.Soak.StopOnViolation {
		pool := worker.NewPool(cfg.Soak.Workers, 2*cfg.Soak.Workers, process)
		cfg.Logf(config.GameLevel, "soak: %d games on %d workers, stopping at the first violation",
			len(items), pool.NumWorkers())
		results = pool.RunUntil(items, failed)
	} else {
		pool := worker.NewPoolWithOptions(process,
			worker.WithWorkers(cfg.Soak.Workers), worker.WithBufferSize(2*cfg.Soak.Workers))
		cfg.Logf(config.GameLevel, "soak: %d games on %d workers", len(items), pool.NumWorkers())
		results = pool.RunAll(items)
	}

	summary := &Summary{}
	for _, r := range results {
		if r.Error != nil {
			return nil, errors.Wrapf(r.Error, "soak game %d", r.Index)
		}
		report, ok := r.Report.(*GameReport)
		if !ok {
			return nil, fmt.Errorf("soak game %d returned no report", r.Index)
		}
		summary.add(report)
	}
	summary.DistinctFinals = finals.UniqueCount()
	summary.Stopped = summary.Games < len(items)
	cfg.Logf(config.GameLevel, "soak: %d games, %d checkmates, %d stalemates, %d violations",
		summary.Games, summary.Checkmates, summary.Stalemates, len(summary.Violations))
	return summary, nil
}

// failed reports whether a game errored or broke an invariant.
func failed(r worker.ProcessResult) bool {
	if r.Error != nil {
		return true
	}
	report, ok := r.Report.(*GameReport)
	return !ok || len(report.Violations) > 0
}

// add folds a game report into the summary.
func (s *Summary) add(r *GameReport) {
	s.Games++
	s.Plies += r.Plies
	s.Shifts += r.Shifts
	s.Demotions += r.Demotions
	s.Repeats += r.Repeats
	switch r.Outcome {
	case Checkmate:
		s.Checkmates++
	case Stalemate:
		s.Stalemates++
	default:
		s.Unfinished++
	}
	s.Violations = append(s.Violations, r.Violations...)
	s.Reports = append(s.Reports, r)
}

// candidate is one legal move on offer.
type candidate struct {
	id chess.PieceID
	to chess.Square
}

// player drives one game and records what it sees.
type player struct {
	g      *game.Game
	pick   *rand.Rand
	seen   *hashing.DuplicateDetector
	report *GameReport
}

// PlayGame plays one game for item. The game's own random source, which
// drives silly mode, is seeded from item.Seed; move choice uses a second
// source derived from it so the two streams stay independent.
func PlayGame(item worker.WorkItem, cfg *config.Config) (*GameReport, error) {
	return playGame(item, cfg, nil)
}

// playGame is PlayGame that also records the final position in finals
// when it is not nil.
func playGame(item worker.WorkItem, cfg *config.Config, finals *hashing.ThreadSafeDuplicateDetector) (*GameReport, error) {
	gameCfg := config.NewConfigBuilder().
		WithSeed(item.Seed).
		WithSillyMode(item.SillyMode).
		WithStartFEN(cfg.Game.StartFEN).
		WithVerbosity(config.Silent).
		WithLogFile(io.Discard).
		Build()
	g, err := game.New(gameCfg)
	if err != nil {
		return nil, err
	}

	p := &player{
		g:    g,
		pick: rand.New(rand.NewSource(item.Seed*7919 + 1)), //nolint:gosec // test harness
		seen: hashing.NewDuplicateDetector(false, cfg.Soak.MaxPlies+1),
		report: &GameReport{
			Index:     item.Index,
			Seed:      item.Seed,
			SillyMode: item.SillyMode,
			Outcome:   PlyLimit,
		},
	}
	p.checkInvariants()
	p.record()

	for g.Ply() < cfg.Soak.MaxPlies && !g.GameOver() {
		if !p.step() {
			p.report.Outcome = Aborted
			break
		}
	}

	if g.GameOver() {
		if winner, ok := g.Winner(); ok {
			p.report.Outcome = Checkmate
			p.report.Winner = winner.String()
		} else {
			p.report.Outcome = Stalemate
		}
	}
	p.report.Plies = g.Ply()
	p.report.FinalFEN = engine.BoardToFEN(g.Board(), g.CurrentPlayer())
	if finals != nil {
		p.report.RepeatedFinal = finals.CheckAndAdd(g.Board(), g.CurrentPlayer(), 0)
	}
	cfg.Logf(config.Commentary, "soak game %d (seed %d): %s after %d plies",
		item.Index, item.Seed, p.report.Outcome, p.report.Plies)
	return p.report, nil
}

// violation records a broken invariant at the current ply.
func (p *player) violation(format string, args ...interface{}) {
	p.report.Violations = append(p.report.Violations, Violation{
		Seed:    p.report.Seed,
		Ply:     p.g.Ply(),
		Message: fmt.Sprintf(format, args...),
	})
}

// legalMoves lists every legal move of the side on move.
func (p *player) legalMoves() []candidate {
	board := p.g.Board()
	var moves []candidate
	pieces := append([]*chess.Piece(nil), board.Pieces(p.g.CurrentPlayer())...)
	for _, piece := range pieces {
		for _, to := range p.g.LegalMoves(piece.ID) {
			moves = append(moves, candidate{id: piece.ID, to: to})
		}
	}
	return moves
}

// step plays one random legal move, sometimes probing an illegal one
// first. It returns false when the game cannot continue.
func (p *player) step() bool {
	moves := p.legalMoves()
	if len(moves) == 0 {
		p.violation("%v has no legal moves but the game is not over", p.g.CurrentPlayer())
		return false
	}
	if p.pick.Intn(4) == 0 {
		p.tryIllegal(moves)
	}

	m := moves[p.pick.Intn(len(moves))]
	mover := p.g.Board().PieceByID(m.id)
	from := mover.Square
	kind := mover.Kind

	if res := p.g.SelectPiece(m.id); !res.Accepted {
		p.violation("selecting %v rejected: %v", mover, res.Err)
		return false
	}
	res := p.g.SelectSquare(m.to)
	if !res.Accepted {
		p.violation("legal move %v %v-%v rejected: %v", kind, from, m.to, res.Err)
		return false
	}

	p.tally(res.Events)
	p.checkEnPassant(kind, from, m.to, res.Events)
	p.checkInvariants()
	p.record()
	return true
}

// record counts a return to a position already seen in this game.
func (p *player) record() {
	if p.seen.CheckAndAdd(p.g.Board(), p.g.CurrentPlayer(), p.g.Ply()) {
		p.report.Repeats++
	}
}

// tryIllegal tries a square the chosen piece cannot legally reach and checks
// that the attempt is refused without side effects.
func (p *player) tryIllegal(moves []candidate) {
	m := moves[p.pick.Intn(len(moves))]
	legal := make(map[chess.Square]bool)
	for _, c := range moves {
		if c.id == m.id {
			legal[c.to] = true
		}
	}
	to := chess.Sq(p.pick.Intn(chess.BoardSize), p.pick.Intn(chess.BoardSize))
	if legal[to] {
		return
	}
	p.report.Refusals++

	before := engine.BoardToFEN(p.g.Board(), p.g.CurrentPlayer())
	side := p.g.CurrentPlayer()

	p.g.SelectPiece(m.id)
	res := p.g.SelectSquare(to)
	if res.Accepted {
		p.violation("illegal move of piece %d to %v accepted", m.id, to)
		return
	}
	if !errors.Is(res.Err, errors.ErrIllegalMove) {
		p.violation("rejection of %v lacks ErrIllegalMove: %v", to, res.Err)
	}
	if after := engine.BoardToFEN(p.g.Board(), p.g.CurrentPlayer()); after != before {
		p.violation("rejected move changed the position: %s -> %s", before, after)
	}
	if p.g.CurrentPlayer() != side || p.g.Selected() != nil {
		p.violation("rejected move changed the turn or kept the selection")
	}
}

// tally counts captures, shifts and demotions and watches for kings
// leaving the board.
func (p *player) tally(events []game.Event) {
	for _, e := range events {
		switch e.Type {
		case game.PieceCaptured:
			p.report.Captures++
			if e.Kind == chess.King {
				p.violation("%v king captured", e.Colour)
			}
		case game.BoardShifted:
			p.report.Shifts++
		case game.PieceDemoted:
			p.report.Demotions++
			if e.Kind == chess.King {
				p.violation("%v king demoted", e.Colour)
			}
		}
	}
}

// checkEnPassant verifies the window opens on a double step and closes on
// every other move and after a shift.
func (p *player) checkEnPassant(kind chess.Kind, from, to chess.Square, events []game.Event) {
	board := p.g.Board()
	shifted := false
	for _, e := range events {
		if e.Type == game.BoardShifted {
			shifted = true
		}
	}
	double := kind == chess.Pawn && from.Col == to.Col && (to.Row-from.Row == 2 || from.Row-to.Row == 2)

	switch {
	case double && !shifted:
		if !board.EnPassant || board.EPSquare != chess.Sq((from.Row+to.Row)/2, from.Col) {
			p.violation("double step %v-%v did not open en passant on the crossed square", from, to)
		}
	case board.EnPassant:
		p.violation("en passant still open on %v after %v-%v", board.EPSquare, from, to)
	}
}

// checkInvariants verifies the board and game state after a move.
func (p *player) checkInvariants() {
	g := p.g
	board := g.Board()

	if err := board.Validate(); err != nil {
		p.violation("%v", err)
	}
	for _, c := range []chess.Colour{chess.White, chess.Black} {
		inCheck := engine.IsInCheck(board, c)
		if engine.IsCheckmate(board, c) && !inCheck {
			p.violation("%v checkmated without being in check", c)
		}
		if inCheck != g.InCheck(c) {
			p.violation("%v check status recorded as %v, board says %v", c, g.InCheck(c), inCheck)
		}
	}

	current := g.CurrentPlayer()
	if !g.GameOver() {
		if !engine.HasLegalMoves(board, current) {
			p.violation("%v to move without a legal move", current)
		}
		return
	}
	if winner, ok := g.Winner(); ok {
		if !engine.IsCheckmate(board, winner.Opposite()) {
			p.violation("%v declared winner but %v is not mated", winner, winner.Opposite())
		}
	} else if !engine.IsStalemate(board, current.Opposite()) && !engine.IsStalemate(board, current) {
		p.violation("stalemate declared but neither side is stalemated")
	}
}
