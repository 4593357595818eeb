package game

import (
	"io"
	"strings"
	"testing"

	"github.com/lgbarn/silly-chess-go/internal/chess"
	"github.com/lgbarn/silly-chess-go/internal/config"
	"github.com/lgbarn/silly-chess-go/internal/engine"
	"github.com/lgbarn/silly-chess-go/internal/errors"
	"github.com/lgbarn/silly-chess-go/internal/silly"
	"github.com/lgbarn/silly-chess-go/internal/testutil"
)

// newTestGame creates a quiet game, optionally from a FEN position.
func newTestGame(t *testing.T, fen string, sillyMode bool, opts ...Option) *Game {
	t.Helper()
	cfg := config.NewConfigBuilder().
		WithVerbosity(config.Silent).
		WithLogFile(io.Discard).
		WithStartFEN(fen).
		WithSillyMode(sillyMode).
		Build()
	g, err := New(cfg, opts...)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	return g
}

// move selects the piece on from and then the square to.
func move(t *testing.T, g *Game, from, to string) Result {
	t.Helper()
	p := g.Board().At(chess.MustSquare(from))
	if p == nil {
		t.Fatalf("no piece on %s", from)
	}
	if res := g.SelectPiece(p.ID); !res.Accepted {
		t.Fatalf("SelectPiece(%s) rejected: %v", from, res.Err)
	}
	return g.SelectSquare(chess.MustSquare(to))
}

// play makes each "from-to" move and fails on the first rejection.
func play(t *testing.T, g *Game, moves ...string) Result {
	t.Helper()
	var res Result
	for _, m := range moves {
		from, to, _ := strings.Cut(m, "-")
		res = move(t, g, from, to)
		if !res.Accepted {
			t.Fatalf("move %s rejected: %v", m, res.Err)
		}
	}
	return res
}

// eventTypes lists the types of events in order.
func eventTypes(events []Event) []EventType {
	types := make([]EventType, len(events))
	for i, e := range events {
		types[i] = e.Type
	}
	return types
}

// findEvent returns the first event of type t.
func findEvent(t *testing.T, events []Event, typ EventType) Event {
	t.Helper()
	for _, e := range events {
		if e.Type == typ {
			return e
		}
	}
	t.Fatalf("no %v event in %v", typ, eventTypes(events))
	return Event{}
}

func TestNew_InitialState(t *testing.T) {
	g := newTestGame(t, "", false)

	testutil.AssertEqual(t, g.CurrentPlayer(), chess.White)
	testutil.AssertTrue(t, g.Selected() == nil, "nothing selected")
	testutil.AssertTrue(t, g.Previous() == nil, "no previous move")
	testutil.AssertFalse(t, g.GameOver(), "game over")
	testutil.AssertFalse(t, g.SillyMode(), "silly mode")
	testutil.AssertEqual(t, engine.BoardToFEN(g.Board(), g.CurrentPlayer()), engine.InitialFEN)
	testutil.AssertNoError(t, g.Board().Validate())
}

func TestNew_InvalidConfig(t *testing.T) {
	cfg := config.NewConfigBuilder().WithStartFEN("nonsense").WithLogFile(io.Discard).Build()
	_, err := New(cfg)
	testutil.AssertErrorIs(t, err, errors.ErrInvalidConfig)
}

func TestScholarsMate(t *testing.T) {
	g := newTestGame(t, "", false)

	res := play(t, g, "e2-e4", "e7-e5", "f1-c4", "b8-c6", "d1-h5", "g8-f6", "h5-f7")

	testutil.AssertEqual(t, eventTypes(res.Events), []EventType{
		PieceCaptured, PieceMoved, CheckStatusChanged, GameOver,
	})
	captured := findEvent(t, res.Events, PieceCaptured)
	testutil.AssertEqual(t, captured.Kind, chess.Pawn)
	testutil.AssertEqual(t, captured.From.String(), "f7")

	over := findEvent(t, res.Events, GameOver)
	testutil.AssertTrue(t, over.HasWinner, "has winner")
	testutil.AssertEqual(t, over.Colour, chess.White)

	testutil.AssertTrue(t, g.GameOver(), "game over")
	winner, ok := g.Winner()
	testutil.AssertTrue(t, ok, "winner known")
	testutil.AssertEqual(t, winner, chess.White)
	testutil.AssertTrue(t, g.InCheck(chess.Black), "black in check")
	testutil.AssertEqual(t, g.Ply(), 7)

	king := g.Board().King(chess.Black)
	testutil.AssertErrorIs(t, g.SelectPiece(king.ID).Err, errors.ErrGameOver)
	testutil.AssertErrorIs(t, g.SelectSquare(chess.MustSquare("e7")).Err, errors.ErrGameOver)
	testutil.AssertEqual(t, len(g.LegalMoves(king.ID)), 0)
}

func TestEnPassant(t *testing.T) {
	g := newTestGame(t, "", false)

	res := play(t, g, "e2-e4", "a7-a6", "e4-e5", "d7-d5", "e5-d6")

	captured := findEvent(t, res.Events, PieceCaptured)
	testutil.AssertEqual(t, captured.Kind, chess.Pawn)
	testutil.AssertEqual(t, captured.Colour, chess.Black)
	testutil.AssertEqual(t, captured.From.String(), "d5")

	board := g.Board()
	testutil.AssertTrue(t, board.At(chess.MustSquare("d5")) == nil, "d5 emptied")
	pawn := board.At(chess.MustSquare("d6"))
	testutil.AssertTrue(t, pawn != nil && pawn.Colour == chess.White && pawn.Kind == chess.Pawn, "white pawn on d6")
	testutil.AssertEqual(t, len(board.Pieces(chess.Black)), 15)
	testutil.AssertFalse(t, board.EnPassant, "window closed")
	testutil.AssertNoError(t, board.Validate())
}

func TestEnPassant_ExpiresAfterOneMove(t *testing.T) {
	g := newTestGame(t, "", false)
	play(t, g, "e2-e4", "a7-a6", "e4-e5", "d7-d5", "g1-f3", "a6-a5")
	before := engine.BoardToFEN(g.Board(), g.CurrentPlayer())

	res := move(t, g, "e5", "d6")

	testutil.AssertFalse(t, res.Accepted, "late en passant accepted")
	testutil.AssertErrorIs(t, res.Err, errors.ErrIllegalMove)
	testutil.AssertErrorIs(t, res.Err, errors.ErrGeometry)
	testutil.AssertEqual(t, engine.BoardToFEN(g.Board(), g.CurrentPlayer()), before)
}

func TestCastle(t *testing.T) {
	tests := []struct {
		name             string
		fen              string
		rook             string
		wantKing         string
		wantRook         string
		wantAccepted     bool
		wantReason       error
		wantPlayerAfter  chess.Colour
		wantKingHasMoved bool
	}{
		{
			name:             "kingside",
			fen:              "4k3/8/8/8/8/8/8/R3K2R w KQ - 0 1",
			rook:             "h1",
			wantKing:         "g1",
			wantRook:         "f1",
			wantAccepted:     true,
			wantPlayerAfter:  chess.Black,
			wantKingHasMoved: true,
		},
		{
			name:             "queenside",
			fen:              "4k3/8/8/8/8/8/8/R3K2R w KQ - 0 1",
			rook:             "a1",
			wantKing:         "c1",
			wantRook:         "d1",
			wantAccepted:     true,
			wantPlayerAfter:  chess.Black,
			wantKingHasMoved: true,
		},
		{
			name:            "rejected while in check",
			fen:             "4k3/8/8/8/8/8/4r3/R3K2R w KQ - 0 1",
			rook:            "h1",
			wantKing:        "e1",
			wantRook:        "h1",
			wantReason:      errors.ErrGeometry,
			wantPlayerAfter: chess.White,
		},
		{
			name:             "through an attacked square",
			fen:              "4k3/8/8/8/8/8/5r2/R3K2R w KQ - 0 1",
			rook:             "h1",
			wantKing:         "g1",
			wantRook:         "f1",
			wantAccepted:     true,
			wantPlayerAfter:  chess.Black,
			wantKingHasMoved: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGame(t, tt.fen, false)
			rookID := g.Board().At(chess.MustSquare(tt.rook)).ID

			res := move(t, g, "e1", tt.rook)

			testutil.AssertEqual(t, res.Accepted, tt.wantAccepted)
			if tt.wantReason != nil {
				testutil.AssertErrorIs(t, res.Err, errors.ErrIllegalMove)
				testutil.AssertErrorIs(t, res.Err, tt.wantReason)
			} else {
				testutil.AssertEqual(t, eventTypes(res.Events), []EventType{PieceMoved, PieceMoved, CurrentPlayerChanged})
			}

			king := g.Board().King(chess.White)
			testutil.AssertEqual(t, king.Square.String(), tt.wantKing)
			testutil.AssertEqual(t, king.HasMoved, tt.wantKingHasMoved)
			testutil.AssertEqual(t, g.Board().PieceByID(rookID).Square.String(), tt.wantRook)
			testutil.AssertEqual(t, g.CurrentPlayer(), tt.wantPlayerAfter)
			testutil.AssertTrue(t, g.Selected() == nil, "selection cleared")
		})
	}
}

func TestSelectPiece_Errors(t *testing.T) {
	g := newTestGame(t, "", false)
	board := g.Board()
	whitePawn := board.At(chess.MustSquare("e2")).ID
	blackPawn := board.At(chess.MustSquare("e7")).ID

	testutil.AssertErrorIs(t, g.SelectSquare(chess.MustSquare("e4")).Err, errors.ErrNoSelection)
	testutil.AssertErrorIs(t, g.SelectPiece(blackPawn).Err, errors.ErrWrongPlayer)
	testutil.AssertErrorIs(t, g.SelectPiece(chess.PieceID(999)).Err, errors.ErrUnknownPiece)

	testutil.AssertTrue(t, g.SelectPiece(whitePawn).Accepted, "first selection")
	testutil.AssertErrorIs(t, g.SelectPiece(whitePawn).Err, errors.ErrAlreadySelected)
	testutil.AssertEqual(t, g.Selected().ID, whitePawn)
}

func TestSelectSquare_RejectionChangesNothing(t *testing.T) {
	tests := []struct {
		name       string
		fen        string
		from, to   string
		wantReason error
	}{
		{"pawn too far", "", "e2", "e5", errors.ErrGeometry},
		{"onto own piece", "", "d1", "d2", errors.ErrGeometry},
		{"off the board", "", "e2", "", errors.ErrOutOfBounds},
		{"king into attack", "4k3/8/8/8/8/8/3r4/4K3 w - - 0 1", "e1", "f2", errors.ErrKingUnsafe},
		{"check ignored", "4k3/4r3/8/8/8/8/P7/4K3 w - - 0 1", "a2", "a3", errors.ErrCheckUnresolved},
		{"pinned bishop", "4k3/4r3/8/8/8/8/4B3/4K3 w - - 0 1", "e2", "d3", errors.ErrPinned},
		{"king capture", "8/8/8/8/8/3k4/8/3QK3 w - - 0 1", "d1", "d3", errors.ErrKingCapture},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGame(t, tt.fen, false)
			before := engine.BoardToFEN(g.Board(), g.CurrentPlayer())

			p := g.Board().At(chess.MustSquare(tt.from))
			testutil.AssertTrue(t, g.SelectPiece(p.ID).Accepted, "select")
			to := chess.Sq(-1, 0)
			if tt.to != "" {
				to = chess.MustSquare(tt.to)
			}
			res := g.SelectSquare(to)

			testutil.AssertFalse(t, res.Accepted, "accepted")
			testutil.AssertErrorIs(t, res.Err, errors.ErrIllegalMove)
			testutil.AssertErrorIs(t, res.Err, tt.wantReason)
			testutil.AssertEqual(t, len(res.Events), 0)
			testutil.AssertTrue(t, g.Selected() == nil, "selection cleared")
			testutil.AssertEqual(t, g.CurrentPlayer(), chess.White)
			testutil.AssertEqual(t, engine.BoardToFEN(g.Board(), g.CurrentPlayer()), before)

			var merr *errors.MoveError
			if errors.As(res.Err, &merr) {
				testutil.AssertEqual(t, merr.From, tt.from)
				testutil.AssertEqual(t, merr.PlyNum, 1)
			} else {
				t.Errorf("error %v is not a MoveError", res.Err)
			}
		})
	}
}

func TestCheckEvents(t *testing.T) {
	g := newTestGame(t, "4k3/8/8/8/8/8/8/R3K3 w - - 0 1", false)

	res := play(t, g, "a1-a8")
	check := findEvent(t, res.Events, CheckStatusChanged)
	testutil.AssertEqual(t, check.Colour, chess.Black)
	testutil.AssertTrue(t, check.InCheck, "black in check")
	testutil.AssertTrue(t, g.InCheck(chess.Black), "recorded")

	res = play(t, g, "e8-e7")
	check = findEvent(t, res.Events, CheckStatusChanged)
	testutil.AssertEqual(t, check.Colour, chess.Black)
	testutil.AssertFalse(t, check.InCheck, "black out of check")
	testutil.AssertEqual(t, g.CurrentPlayer(), chess.White)
}

func TestStalemateEndsWithoutWinner(t *testing.T) {
	g := newTestGame(t, "k7/8/1Q6/8/8/8/8/7K w - - 0 1", false)

	res := play(t, g, "b6-c7")

	over := findEvent(t, res.Events, GameOver)
	testutil.AssertFalse(t, over.HasWinner, "stalemate has no winner")
	testutil.AssertTrue(t, g.GameOver(), "game over")
	_, ok := g.Winner()
	testutil.AssertFalse(t, ok, "winner reported")
}

func TestSillyShiftLeavesKingsAdjacent(t *testing.T) {
	// Shifting left wraps the white king from a1 onto h1, beside the black
	// king on g1. Black can step away, White cannot, so Black wins.
	rng := testutil.NewScriptedRandom(2)
	g := newTestGame(t, "8/3n4/8/8/3R4/8/8/K6k w - - 0 1", true, WithRandom(rng))

	res := play(t, g, "d4-d7")

	testutil.AssertEqual(t, findEvent(t, res.Events, BoardShifted).Direction, silly.Left)
	testutil.AssertEqual(t, testutil.Diagram(g.Board()), []string{
		"........",
		"..R.....",
		"........",
		"........",
		"........",
		"........",
		"........",
		"......kK",
	})
	over := findEvent(t, res.Events, GameOver)
	testutil.AssertTrue(t, over.HasWinner, "game has a winner")
	testutil.AssertEqual(t, over.Colour, chess.Black)
	winner, ok := g.Winner()
	testutil.AssertTrue(t, ok, "winner reported")
	testutil.AssertEqual(t, winner, chess.Black)
	testutil.AssertTrue(t, g.InCheck(chess.White), "white in check")
	testutil.AssertTrue(t, g.InCheck(chess.Black), "black in check")
	testutil.AssertEqual(t, rng.Calls, []int{4})
}

func TestSillyShiftAfterCapture(t *testing.T) {
	rng := testutil.NewScriptedRandom(2, 0, 1)
	g := newTestGame(t, "4k3/8/8/3n4/8/8/R7/3QK3 w - - 0 1", true, WithRandom(rng))
	rookID := g.Board().At(chess.MustSquare("a2")).ID
	queenID := g.Board().At(chess.MustSquare("d1")).ID

	res := play(t, g, "d1-d5")

	testutil.AssertEqual(t, eventTypes(res.Events), []EventType{
		PieceCaptured, PieceMoved,
		BoardShifted, PieceMoved, PieceMoved, PieceMoved, PieceMoved,
		PieceDemoted, CurrentPlayerChanged,
	})
	testutil.AssertEqual(t, findEvent(t, res.Events, BoardShifted).Direction, silly.Left)

	demoted := findEvent(t, res.Events, PieceDemoted)
	testutil.AssertEqual(t, demoted.Piece, rookID)
	testutil.AssertEqual(t, demoted.Kind, chess.Rook)
	testutil.AssertEqual(t, demoted.ReplacementKind, chess.Knight)

	testutil.AssertEqual(t, testutil.Diagram(g.Board()), []string{
		"...k....",
		"........",
		"........",
		"..Q.....",
		"........",
		"........",
		".......n",
		"...K....",
	})
	testutil.AssertEqual(t, rng.Calls, []int{4, 1, 3})
	testutil.AssertTrue(t, g.Board().PieceByID(rookID) == nil, "rook removed")
	testutil.AssertEqual(t, g.Previous().ID, queenID)
	testutil.AssertEqual(t, g.CurrentPlayer(), chess.Black)
	testutil.AssertNoError(t, g.Board().Validate())
}

func TestSillyMode_NoShift(t *testing.T) {
	tests := []struct {
		name      string
		fen       string
		sillyMode bool
		from, to  string
	}{
		{"pawn capture", "4k3/8/8/3p4/4P3/8/8/4K3 w - - 0 1", true, "e4", "d5"},
		{"quiet move", "4k3/8/8/3n4/8/8/8/3QK3 w - - 0 1", true, "d1", "d2"},
		{"silly mode off", "4k3/8/8/3n4/8/8/8/3QK3 w - - 0 1", false, "d1", "d5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rng := testutil.NewScriptedRandom()
			g := newTestGame(t, tt.fen, tt.sillyMode, WithRandom(rng))

			res := play(t, g, tt.from+"-"+tt.to)

			for _, e := range res.Events {
				if e.Type == BoardShifted {
					t.Fatalf("unexpected shift: %v", eventTypes(res.Events))
				}
			}
			testutil.AssertEqual(t, len(rng.Calls), 0)
			testutil.AssertEqual(t, g.Board().At(chess.MustSquare(tt.to)).Square.String(), tt.to)
		})
	}
}

func TestToggleSillyMode_Restarts(t *testing.T) {
	g := newTestGame(t, "", false)
	play(t, g, "e2-e4")

	res := g.ToggleSillyMode(true)

	testutil.AssertTrue(t, res.Accepted, "toggle accepted")
	testutil.AssertEqual(t, eventTypes(res.Events), []EventType{BoardReset, CurrentPlayerChanged})
	testutil.AssertTrue(t, g.SillyMode(), "silly mode on")
	testutil.AssertEqual(t, g.Ply(), 0)
	testutil.AssertEqual(t, engine.BoardToFEN(g.Board(), g.CurrentPlayer()), engine.InitialFEN)

	g.ToggleSillyMode(false)
	testutil.AssertFalse(t, g.SillyMode(), "silly mode off")
}

func TestRestart_AfterGameOver(t *testing.T) {
	g := newTestGame(t, "", false)
	play(t, g, "f2-f3", "e7-e5", "g2-g4", "d8-h4")
	testutil.AssertTrue(t, g.GameOver(), "fool's mate")
	winner, _ := g.Winner()
	testutil.AssertEqual(t, winner, chess.Black)

	res := g.Restart()

	testutil.AssertTrue(t, res.Accepted, "restart accepted")
	testutil.AssertFalse(t, g.GameOver(), "game over after restart")
	testutil.AssertEqual(t, g.CurrentPlayer(), chess.White)
	testutil.AssertTrue(t, g.Previous() == nil, "previous cleared")
	testutil.AssertEqual(t, len(g.Board().AllPieces()), 32)
}

func TestRestart_MatedStartPosition(t *testing.T) {
	g := newTestGame(t, "R3k3/8/4K3/8/8/8/8/8 b - - 0 1", false)

	testutil.AssertTrue(t, g.GameOver(), "start position is mate")
	res := g.Restart()
	testutil.AssertEqual(t, eventTypes(res.Events), []EventType{BoardReset, CheckStatusChanged, GameOver})
}

func TestQuit(t *testing.T) {
	g := newTestGame(t, "", false)
	pawn := g.Board().At(chess.MustSquare("e2")).ID

	testutil.AssertTrue(t, g.Quit().Accepted, "quit accepted")
	testutil.AssertTrue(t, g.Closed(), "closed")

	testutil.AssertErrorIs(t, g.SelectPiece(pawn).Err, errors.ErrGameClosed)
	testutil.AssertErrorIs(t, g.SelectSquare(chess.MustSquare("e4")).Err, errors.ErrGameClosed)
	testutil.AssertErrorIs(t, g.Restart().Err, errors.ErrGameClosed)
	testutil.AssertErrorIs(t, g.ToggleSillyMode(true).Err, errors.ErrGameClosed)
	testutil.AssertErrorIs(t, g.Quit().Err, errors.ErrGameClosed)
	testutil.AssertEqual(t, len(g.LegalMoves(pawn)), 0)
}

func TestLegalMoves(t *testing.T) {
	g := newTestGame(t, "", false)
	board := g.Board()

	var got []string
	for _, sq := range g.LegalMoves(board.At(chess.MustSquare("g1")).ID) {
		got = append(got, sq.String())
	}
	testutil.AssertSameElements(t, got, []string{"f3", "h3"})

	testutil.AssertEqual(t, len(g.LegalMoves(board.At(chess.MustSquare("g8")).ID)), 0, "side not on move")
	testutil.AssertEqual(t, len(g.LegalMoves(chess.PieceID(999))), 0, "unknown piece")
}

func TestEvent_String(t *testing.T) {
	tests := []struct {
		event Event
		want  string
	}{
		{Event{Type: CurrentPlayerChanged, Colour: chess.Black}, "Black to move"},
		{Event{Type: CheckStatusChanged, Colour: chess.White, InCheck: true}, "White in check"},
		{Event{Type: GameOver}, "game over, stalemate"},
		{Event{Type: GameOver, Colour: chess.White, HasWinner: true}, "game over, White wins"},
		{Event{Type: PieceMoved, Colour: chess.White, Kind: chess.Knight,
			From: chess.MustSquare("g1"), To: chess.MustSquare("f3")}, "White Knight g1-f3"},
		{Event{Type: PieceDemoted, Colour: chess.White, Kind: chess.Rook,
			From: chess.MustSquare("h2"), ReplacementKind: chess.Knight}, "White Rook on h2 demoted to Black Knight"},
		{Event{Type: BoardShifted, Direction: silly.Up}, "board shifted up"},
		{Event{Type: EventType(42)}, "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			testutil.AssertEqual(t, tt.event.String(), tt.want)
		})
	}
}
