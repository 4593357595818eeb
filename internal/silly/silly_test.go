package silly

import (
	"math/rand"
	"testing"

	"github.com/lgbarn/silly-chess-go/internal/chess"
	"github.com/lgbarn/silly-chess-go/internal/testutil"
)

func TestShift_LeftIndexZero(t *testing.T) {
	board := chess.NewInitialBoard()
	rook := board.At(chess.MustSquare("a8"))
	// Left, first candidate on the h-file, then rank 1 (Knight) out of 3.
	rng := testutil.NewScriptedRandom(2, 0, 1)

	res := New(rng).Shift(board)

	testutil.AssertEqual(t, res.Direction, Left)
	testutil.AssertEqual(t, testutil.Diagram(board), []string{
		"nbqkbnrN",
		"pppppppp",
		"........",
		"........",
		"........",
		"........",
		"PPPPPPPP",
		"NBQKBNRR",
	})
	testutil.AssertEqual(t, rng.Calls, []int{4, 4, 3})

	if res.Selected != rook {
		t.Fatalf("Selected = %v, want the a8 rook after wrapping to h8", res.Selected)
	}
	if !res.Demoted() || res.Replacement.Colour != rook.Colour.Opposite() {
		t.Errorf("Replacement = %v, want a piece of colour %v", res.Replacement, rook.Colour.Opposite())
	}
	testutil.AssertEqual(t, res.Replacement.Kind, chess.Knight)
	testutil.AssertEqual(t, len(board.Pieces(chess.White)), 17)
	testutil.AssertEqual(t, len(board.Pieces(chess.Black)), 15)
	testutil.AssertNoError(t, board.Validate())
}

func TestShiftDirection_Layouts(t *testing.T) {
	start := []string{
		"....k...",
		"........",
		"........",
		"...Q....",
		"........",
		"........",
		"........",
		"R...K...",
	}

	tests := []struct {
		dir  Direction
		want []string
	}{
		{Up, []string{
			"........",
			"........",
			"...Q....",
			"........",
			"........",
			"........",
			"R...K...",
			"....k...",
		}},
		{Down, []string{
			"R...K...",
			"....k...",
			"........",
			"........",
			"...Q....",
			"........",
			"........",
			"........",
		}},
		{Left, []string{
			"...k....",
			"........",
			"........",
			"..Q.....",
			"........",
			"........",
			"........",
			"...K...R",
		}},
		{Right, []string{
			".....k..",
			"........",
			"........",
			"....Q...",
			"........",
			"........",
			"........",
			".R...K..",
		}},
	}

	for _, tt := range tests {
		t.Run(tt.dir.String(), func(t *testing.T) {
			board := testutil.BoardFromDiagram(t, start...)
			// An empty script draws 0 every time, so a piece on the
			// boundary line is demoted to a pawn.
			res := New(testutil.NewScriptedRandom()).ShiftDirection(board, tt.dir)

			testutil.AssertEqual(t, len(res.Moves), 4)
			for _, m := range res.Moves {
				if m.Piece.Square != m.To {
					t.Errorf("%v recorded at %v, moved to %v", m.Piece, m.Piece.Square, m.To)
				}
			}
			if res.Selected == nil {
				testutil.AssertEqual(t, testutil.Diagram(board), tt.want)
				return
			}
			// A demotion happened on the boundary: only that square differs.
			sq := res.Selected.Square
			got := testutil.Diagram(board)
			want := append([]string(nil), tt.want...)
			row := []byte(want[sq.Row])
			row[sq.Col] = board.At(sq).Symbol()
			want[sq.Row] = string(row)
			testutil.AssertEqual(t, got, want)
			testutil.AssertNoError(t, board.Validate())
		})
	}
}

func TestShift_KingsNeverDemoted(t *testing.T) {
	// Both kings wrap onto the h-file; the pawn does not.
	board := testutil.BoardFromDiagram(t,
		"k.......",
		"........",
		"........",
		"........",
		"........",
		"........",
		"........",
		"K......P",
	)
	res := New(testutil.NewScriptedRandom(0, 0)).ShiftDirection(board, Left)

	if res.Selected != nil {
		t.Errorf("Selected = %v, want nil", res.Selected)
	}
	testutil.AssertNoError(t, board.Validate())
}

func TestShift_PawnIsNotReplaced(t *testing.T) {
	board := testutil.BoardFromDiagram(t,
		"....k...",
		"........",
		"........",
		"........",
		"........",
		"........",
		"........",
		"P...K...",
	)
	pawn := board.At(chess.MustSquare("a1"))
	rng := testutil.NewScriptedRandom(0)

	res := New(rng).ShiftDirection(board, Left)

	if res.Selected != pawn || res.Demoted() {
		t.Errorf("Selected = %v, Replacement = %v, want the pawn left in place", res.Selected, res.Replacement)
	}
	testutil.AssertEqual(t, board.At(chess.MustSquare("h1")), pawn)
	testutil.AssertEqual(t, pawn.Colour, chess.White)
	testutil.AssertEqual(t, rng.Calls, []int{1})
}

func TestShift_ClosesEnPassant(t *testing.T) {
	board := chess.NewInitialBoard()
	pawn := board.At(chess.MustSquare("e2"))
	board.Relocate(pawn, chess.MustSquare("e4"))
	board.SetEnPassant(chess.MustSquare("e3"), pawn.ID)

	New(testutil.NewScriptedRandom(0, 0, 0)).Shift(board)

	if board.EnPassant {
		t.Error("EnPassant = true after a shift, want false")
	}
}

func TestShift_PreservesInvariantsWithRealRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	e := New(rng)
	board := chess.NewInitialBoard()

	for i := 0; i < 50; i++ {
		res := e.Shift(board)
		if err := board.Validate(); err != nil {
			t.Fatalf("shift %d (%v): Validate() = %v", i, res.Direction, err)
		}
		if res.Demoted() && res.Replacement.Kind.Rank() >= res.Selected.Kind.Rank() {
			t.Fatalf("shift %d: %v replaced by %v, want a lower rank", i, res.Selected.Kind, res.Replacement.Kind)
		}
	}
}

func TestTriggers(t *testing.T) {
	tests := []struct {
		captured *chess.Piece
		want     bool
	}{
		{nil, false},
		{&chess.Piece{Kind: chess.Pawn}, false},
		{&chess.Piece{Kind: chess.Knight}, true},
		{&chess.Piece{Kind: chess.Queen}, true},
	}
	for _, tt := range tests {
		if got := Triggers(tt.captured); got != tt.want {
			t.Errorf("Triggers(%v) = %v, want %v", tt.captured, got, tt.want)
		}
	}
}
