// Package game implements the move controller and game state of a silly
// chess game: two-phase piece selection, move commitment with all of its
// side effects, turn and game-over transitions, and the silly-mode toggle.
//
// Commands never panic and never return bare errors. Each returns a Result
// carrying whether it was accepted, the reason when it was not, and the
// events an adapter needs to redraw.
package game

import (
	"math/rand"

	"github.com/lgbarn/silly-chess-go/internal/chess"
	"github.com/lgbarn/silly-chess-go/internal/config"
	"github.com/lgbarn/silly-chess-go/internal/engine"
	"github.com/lgbarn/silly-chess-go/internal/errors"
	"github.com/lgbarn/silly-chess-go/internal/silly"
)

// Result is the outcome of a command.
type Result struct {
	Accepted bool
	Err      error
	Events   []Event
}

// rejected returns a Result refusing the command with err.
func rejected(err error) Result {
	return Result{Err: err}
}

// Option configures a Game.
type Option func(*Game)

// WithRandom replaces the seeded random source used by silly mode.
func WithRandom(rng silly.Random) Option {
	return func(g *Game) {
		g.rng = rng
	}
}

// Game is one game instance. It is not safe for concurrent use.
type Game struct {
	cfg   *config.Config
	rng   silly.Random
	shift *silly.Engine

	board    *chess.Board
	current  chess.Colour
	selected *chess.Piece
	previous *chess.Piece
	inCheck  [chess.NumColours]bool
	ply      int

	sillyMode bool
	over      bool
	hasWinner bool
	winner    chess.Colour
	closed    bool
}

// New creates a game from cfg. The start position, silly mode and random
// seed come from cfg.Game. A nil cfg uses the defaults.
func New(cfg *config.Config, opts ...Option) (*Game, error) {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	g := &Game{cfg: cfg, sillyMode: cfg.Game.SillyMode}
	for _, opt := range opts {
		opt(g)
	}
	if g.rng == nil {
		g.rng = rand.New(rand.NewSource(cfg.Game.Seed)) //nolint:gosec // game play, not cryptography
	}
	g.shift = silly.New(g.rng)

	if err := g.setup(); err != nil {
		return nil, err
	}
	cfg.Logf(config.GameLevel, "new game, silly mode %v", g.sillyMode)
	return g, nil
}

// setup builds a fresh board and game state.
func (g *Game) setup() error {
	g.current = chess.White
	if fen := g.cfg.Game.StartFEN; fen != "" {
		pos, err := engine.NewPositionFromFEN(fen)
		if err != nil {
			return errors.Wrap(err, "start position")
		}
		g.board = pos.Board
		g.current = pos.ToMove
	} else {
		g.board = chess.NewInitialBoard()
	}

	g.selected = nil
	g.previous = nil
	g.ply = 0
	g.over = false
	g.hasWinner = false

	white, black := engine.UpdateCheck(g.board)
	g.inCheck[chess.White] = white
	g.inCheck[chess.Black] = black

	switch {
	case engine.IsCheckmate(g.board, g.current):
		g.finish(true, g.current.Opposite())
	case engine.IsStalemate(g.board, g.current):
		g.finish(false, 0)
	}
	return nil
}

// finish ends the game.
func (g *Game) finish(hasWinner bool, winner chess.Colour) Event {
	g.over = true
	g.hasWinner = hasWinner
	g.winner = winner
	if hasWinner {
		g.cfg.Logf(config.GameLevel, "game over after %d plies: %v wins", g.ply, winner)
	} else {
		g.cfg.Logf(config.GameLevel, "game over after %d plies: stalemate", g.ply)
	}
	return Event{Type: GameOver, Colour: winner, HasWinner: hasWinner}
}

// playable returns the reason commands other than restart are refused.
func (g *Game) playable() error {
	if g.closed {
		return errors.ErrGameClosed
	}
	if g.over {
		return errors.ErrGameOver
	}
	return nil
}

// SelectPiece picks the piece to move. It is accepted only when nothing is
// selected and the piece belongs to the player on move.
func (g *Game) SelectPiece(id chess.PieceID) Result {
	if err := g.playable(); err != nil {
		return rejected(err)
	}
	if g.selected != nil {
		return rejected(errors.ErrAlreadySelected)
	}
	p := g.board.PieceByID(id)
	if p == nil {
		return rejected(errors.ErrUnknownPiece)
	}
	if p.Colour != g.current {
		return rejected(errors.ErrWrongPlayer)
	}
	g.selected = p
	g.cfg.Logf(config.Commentary, "selected %v", p)
	return Result{Accepted: true}
}

// SelectSquare moves the selected piece onto sq. The selection is cleared
// whether or not the move is legal. An illegal move changes nothing else
// and the same player stays on move.
func (g *Game) SelectSquare(sq chess.Square) Result {
	if err := g.playable(); err != nil {
		return rejected(err)
	}
	p := g.selected
	if p == nil {
		return rejected(errors.ErrNoSelection)
	}
	g.selected = nil

	if err := engine.CheckLegality(g.board, p, sq); err != nil {
		merr := &errors.MoveError{
			Err:    errors.Illegal(err),
			Piece:  p.Kind.String(),
			From:   p.Square.String(),
			To:     sq.String(),
			PlyNum: g.ply + 1,
		}
		g.cfg.Logf(config.GameLevel, "rejected: %v", merr)
		return rejected(merr)
	}
	return Result{Accepted: true, Events: g.commit(p, sq)}
}

// commit plays a legal move and everything that follows from it.
func (g *Game) commit(p *chess.Piece, to chess.Square) []Event {
	mover := g.current
	out := engine.ApplyMove(g.board, p, to)
	g.ply++
	g.previous = p
	g.cfg.Logf(config.Commentary, "ply %d: %v %v-%v", g.ply, p.Kind, out.From, out.To)

	var events []Event
	if out.Captured != nil {
		e := pieceEvent(PieceCaptured, out.Captured)
		e.From, e.To = out.CapturedAt, out.CapturedAt
		events = append(events, e)
	}
	events = append(events, moveEvent(p, out.From, out.To))
	if out.Castle {
		events = append(events, moveEvent(out.Rook, out.RookFrom, out.RookTo))
	}

	if g.sillyMode && silly.Triggers(out.Captured) {
		res := g.shift.Shift(g.board)
		events = append(events, shiftEvents(res)...)
		if g.board.PieceByID(g.previous.ID) == nil {
			g.previous = res.Replacement
		}
		g.cfg.Logf(config.Commentary, "board shifted %v", res.Direction)
	}

	events = append(events, g.refreshCheck()...)

	opponent := mover.Opposite()
	switch {
	case engine.IsCheckmate(g.board, opponent):
		events = append(events, g.finish(true, mover))
	case engine.IsCheckmate(g.board, mover):
		events = append(events, g.finish(true, opponent))
	case engine.IsStalemate(g.board, opponent):
		events = append(events, g.finish(false, 0))
	default:
		g.current = opponent
		events = append(events, Event{Type: CurrentPlayerChanged, Colour: opponent})
	}
	return events
}

// refreshCheck recomputes check for both sides and reports changes.
func (g *Game) refreshCheck() []Event {
	var events []Event
	white, black := engine.UpdateCheck(g.board)
	for _, side := range []struct {
		colour  chess.Colour
		inCheck bool
	}{{chess.White, white}, {chess.Black, black}} {
		if g.inCheck[side.colour] != side.inCheck {
			g.inCheck[side.colour] = side.inCheck
			events = append(events, Event{Type: CheckStatusChanged, Colour: side.colour, InCheck: side.inCheck})
		}
	}
	return events
}

// ToggleSillyMode switches the variant and restarts the game.
func (g *Game) ToggleSillyMode(on bool) Result {
	if g.closed {
		return rejected(errors.ErrGameClosed)
	}
	g.sillyMode = on
	g.cfg.Logf(config.GameLevel, "silly mode %v", on)
	return g.Restart()
}

// Restart discards the board and game state and starts again from the
// configured position. The silly toggle and random source are kept.
func (g *Game) Restart() Result {
	if g.closed {
		return rejected(errors.ErrGameClosed)
	}
	if err := g.setup(); err != nil {
		return rejected(err)
	}
	g.cfg.Logf(config.GameLevel, "game restarted")

	events := []Event{{Type: BoardReset}}
	for _, c := range []chess.Colour{chess.White, chess.Black} {
		if g.inCheck[c] {
			events = append(events, Event{Type: CheckStatusChanged, Colour: c, InCheck: true})
		}
	}
	if g.over {
		return Result{Accepted: true, Events: append(events, Event{Type: GameOver, Colour: g.winner, HasWinner: g.hasWinner})}
	}
	return Result{Accepted: true, Events: append(events, Event{Type: CurrentPlayerChanged, Colour: g.current})}
}

// Quit closes the game. Every later command is refused.
func (g *Game) Quit() Result {
	if g.closed {
		return rejected(errors.ErrGameClosed)
	}
	g.closed = true
	g.selected = nil
	g.cfg.Logf(config.GameLevel, "game closed after %d plies", g.ply)
	return Result{Accepted: true}
}

// Board returns the live board. Callers must not modify it.
func (g *Game) Board() *chess.Board {
	return g.board
}

// CurrentPlayer returns the colour on move.
func (g *Game) CurrentPlayer() chess.Colour {
	return g.current
}

// Selected returns the selected piece, or nil.
func (g *Game) Selected() *chess.Piece {
	return g.selected
}

// Previous returns the piece that made the last move, or nil.
func (g *Game) Previous() *chess.Piece {
	return g.previous
}

// GameOver reports whether the game has ended.
func (g *Game) GameOver() bool {
	return g.over
}

// Winner returns the winning colour. ok is false while the game is running
// and after a stalemate.
func (g *Game) Winner() (winner chess.Colour, ok bool) {
	return g.winner, g.over && g.hasWinner
}

// SillyMode reports whether the silly variant is on.
func (g *Game) SillyMode() bool {
	return g.sillyMode
}

// Closed reports whether Quit has been called.
func (g *Game) Closed() bool {
	return g.closed
}

// Ply returns the number of moves committed since the last restart.
func (g *Game) Ply() int {
	return g.ply
}

// InCheck reports the check status recorded after the last move.
func (g *Game) InCheck(c chess.Colour) bool {
	return g.inCheck[c]
}

// LegalMoves lists the squares the piece may move to. It is empty for
// unknown pieces, for the side not on move, and once play has stopped.
func (g *Game) LegalMoves(id chess.PieceID) []chess.Square {
	if g.playable() != nil {
		return nil
	}
	p := g.board.PieceByID(id)
	if p == nil || p.Colour != g.current {
		return nil
	}
	return engine.LegalMoves(g.board, p)
}
